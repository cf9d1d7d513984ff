package recommend

import (
	"math/rand"
	"strings"

	"reelstream/models"
)

// fallbackCatalog is the last-resort dataset served when every live
// source fails. It mixes well-known English and Hindi titles across
// both content types so every filter combination still yields
// something.
var fallbackCatalog = []models.Candidate{
	{Title: "The Shawshank Redemption", Year: "1994", ExternalID: "tt0111161", ContentType: models.ContentTypeMovie, Genres: []string{"Drama"}, Rating: 9.3},
	{Title: "The Dark Knight", Year: "2008", ExternalID: "tt0468569", ContentType: models.ContentTypeMovie, Genres: []string{"Action", "Crime", "Drama"}, Rating: 9.0},
	{Title: "Inception", Year: "2010", ExternalID: "tt1375666", ContentType: models.ContentTypeMovie, Genres: []string{"Action", "Sci-Fi", "Thriller"}, Rating: 8.8},
	{Title: "Pulp Fiction", Year: "1994", ExternalID: "tt0110912", ContentType: models.ContentTypeMovie, Genres: []string{"Crime", "Drama"}, Rating: 8.9},
	{Title: "Forrest Gump", Year: "1994", ExternalID: "tt0109830", ContentType: models.ContentTypeMovie, Genres: []string{"Drama", "Romance"}, Rating: 8.8},
	{Title: "The Matrix", Year: "1999", ExternalID: "tt0133093", ContentType: models.ContentTypeMovie, Genres: []string{"Action", "Sci-Fi"}, Rating: 8.7},
	{Title: "Goodfellas", Year: "1990", ExternalID: "tt0099685", ContentType: models.ContentTypeMovie, Genres: []string{"Biography", "Crime", "Drama"}, Rating: 8.7},
	{Title: "Interstellar", Year: "2014", ExternalID: "tt0816692", ContentType: models.ContentTypeMovie, Genres: []string{"Adventure", "Drama", "Sci-Fi"}, Rating: 8.6},
	{Title: "The Conjuring", Year: "2013", ExternalID: "tt1457767", ContentType: models.ContentTypeMovie, Genres: []string{"Horror", "Mystery", "Thriller"}, Rating: 7.5},
	{Title: "Hereditary", Year: "2018", ExternalID: "tt7784604", ContentType: models.ContentTypeMovie, Genres: []string{"Drama", "Horror", "Mystery"}, Rating: 7.3},
	{Title: "Breaking Bad", Year: "2008–2013", ExternalID: "tt0903747", ContentType: models.ContentTypeSeries, Genres: []string{"Crime", "Drama", "Thriller"}, Rating: 9.5},
	{Title: "Game of Thrones", Year: "2011–2019", ExternalID: "tt0944947", ContentType: models.ContentTypeSeries, Genres: []string{"Action", "Adventure", "Drama"}, Rating: 9.2},
	{Title: "Stranger Things", Year: "2016–", ExternalID: "tt4574334", ContentType: models.ContentTypeSeries, Genres: []string{"Drama", "Fantasy", "Horror"}, Rating: 8.7},
	{Title: "The Office", Year: "2005–2013", ExternalID: "tt0386676", ContentType: models.ContentTypeSeries, Genres: []string{"Comedy"}, Rating: 9.0},
	{Title: "Friends", Year: "1994–2004", ExternalID: "tt0108778", ContentType: models.ContentTypeSeries, Genres: []string{"Comedy", "Romance"}, Rating: 8.9},
	{Title: "The Crown", Year: "2016–2023", ExternalID: "tt4786824", ContentType: models.ContentTypeSeries, Genres: []string{"Biography", "Drama", "History"}, Rating: 8.6},
	{Title: "The Mandalorian", Year: "2019–", ExternalID: "tt8111088", ContentType: models.ContentTypeSeries, Genres: []string{"Action", "Adventure", "Fantasy"}, Rating: 8.7},
	{Title: "Wednesday", Year: "2022–", ExternalID: "tt13443470", ContentType: models.ContentTypeSeries, Genres: []string{"Comedy", "Crime", "Family"}, Rating: 8.1},
	{Title: "Dangal", Year: "2016", ExternalID: "tt5074352", ContentType: models.ContentTypeMovie, Genres: []string{"Action", "Biography", "Drama"}, Rating: 8.4, Language: "Hindi"},
	{Title: "3 Idiots", Year: "2009", ExternalID: "tt1187043", ContentType: models.ContentTypeMovie, Genres: []string{"Comedy", "Drama"}, Rating: 8.4, Language: "Hindi"},
	{Title: "Lagaan", Year: "2001", ExternalID: "tt0169102", ContentType: models.ContentTypeMovie, Genres: []string{"Adventure", "Drama", "Music"}, Rating: 8.1, Language: "Hindi"},
	{Title: "Zindagi Na Milegi Dobara", Year: "2011", ExternalID: "tt1562872", ContentType: models.ContentTypeMovie, Genres: []string{"Adventure", "Comedy", "Drama"}, Rating: 8.2, Language: "Hindi"},
	{Title: "Queen", Year: "2013", ExternalID: "tt3322420", ContentType: models.ContentTypeMovie, Genres: []string{"Adventure", "Comedy", "Drama"}, Rating: 8.2, Language: "Hindi"},
	{Title: "Sacred Games", Year: "2018–2019", ExternalID: "tt6077448", ContentType: models.ContentTypeSeries, Genres: []string{"Action", "Crime", "Drama"}, Rating: 8.6, Language: "Hindi"},
	{Title: "Scam 1992: The Harshad Mehta Story", Year: "2020", ExternalID: "tt11126994", ContentType: models.ContentTypeSeries, Genres: []string{"Biography", "Crime", "Drama"}, Rating: 9.5, Language: "Hindi"},
	{Title: "The Family Man", Year: "2019–", ExternalID: "tt9544034", ContentType: models.ContentTypeSeries, Genres: []string{"Action", "Drama", "Thriller"}, Rating: 8.7, Language: "Hindi"},
	{Title: "Mirzapur", Year: "2018–", ExternalID: "tt6473300", ContentType: models.ContentTypeSeries, Genres: []string{"Action", "Crime", "Drama"}, Rating: 8.4, Language: "Hindi"},
}

// fallbackRecommendations filters the static catalog by content type,
// language, and genre (genre filter only applies if it matches
// anything), then shuffles and truncates.
func fallbackRecommendations(contentType string, limit int, selected []string, lang string) []models.Candidate {
	filtered := make([]models.Candidate, 0, len(fallbackCatalog))
	for _, c := range fallbackCatalog {
		if !c.MatchesContentType(contentType) {
			continue
		}
		switch lang {
		case models.LanguageHindi:
			if c.Language != "Hindi" {
				continue
			}
		case models.LanguageEnglish:
			if c.Language == "Hindi" {
				continue
			}
		}
		filtered = append(filtered, c)
	}

	if len(selected) > 0 {
		genreMatched := make([]models.Candidate, 0, len(filtered))
		for _, c := range filtered {
			joined := strings.ToLower(strings.Join(c.Genres, ", "))
			for _, g := range selected {
				if strings.Contains(joined, strings.ToLower(g)) {
					genreMatched = append(genreMatched, c)
					break
				}
			}
		}
		if len(genreMatched) > 0 {
			filtered = genreMatched
		}
	}

	rand.Shuffle(len(filtered), func(i, j int) {
		filtered[i], filtered[j] = filtered[j], filtered[i]
	})
	if limit > 0 && len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return filtered
}
