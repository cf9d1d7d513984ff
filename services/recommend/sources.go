package recommend

import (
	"context"
	"log"
	"math"
	"math/rand"
	"strconv"
	"strings"

	"reelstream/models"
	"reelstream/utils/dedupe"
)

// hindiIndicators flags likely Hindi/Bollywood content when the
// enriched Language field is missing. Matched against lowercased title
// and cast.
var hindiIndicators = []string{
	"shah rukh", "salman khan", "aamir khan", "amitabh bachchan",
	"akshay kumar", "hrithik roshan", "ranveer singh", "ranbir kapoor",
	"deepika padukone", "priyanka chopra", "kareena kapoor", "alia bhatt",
	"katrina kaif", "anushka sharma", "sonam kapoor", "vidya balan",
	"bollywood", "hindi", "mumbai", "delhi", "india", "indian",
	"baahubali", "dangal", "lagaan", "sholay", "dilwale",
	"zindagi", "kuch kuch", "kabhi", "hum", "tum", "hai", "ka", "ki",
	"yash raj", "dharma", "balaji", "eros", "reliance",
}

func isLikelyHindi(c models.Candidate) bool {
	title := strings.ToLower(c.Title)
	actors := strings.ToLower(c.Actors)
	for _, ind := range hindiIndicators {
		if strings.Contains(title, ind) || strings.Contains(actors, ind) {
			return true
		}
	}
	return false
}

// matchesLanguage applies the language filter using the enriched
// Language field plus the title/cast heuristic.
func matchesLanguage(c models.Candidate, lang string) bool {
	switch lang {
	case models.LanguageHindi:
		return strings.Contains(strings.ToLower(c.Language), "hindi") || isLikelyHindi(c)
	case models.LanguageEnglish:
		return strings.Contains(strings.ToLower(c.Language), "english") && !isLikelyHindi(c)
	default:
		return true
	}
}

// Per-genre discovery terms for the full-text index. Each list mixes
// plain descriptors, well-known franchises, and Hindi cinema markers so
// mixed-language discovery has breadth.
var genreSearchTerms = map[string][]string{
	"Action": {
		"action", "adventure", "superhero", "spy", "martial arts", "heist",
		"mission impossible", "john wick", "james bond", "mad max",
		"bollywood action", "hindi action", "dangal", "uri", "war",
	},
	"Comedy": {
		"comedy", "funny", "romantic comedy", "parody", "satire",
		"hangover", "superbad", "anchorman", "wedding crashers",
		"bollywood comedy", "hera pheri", "golmaal", "munna bhai",
	},
	"Drama": {
		"drama", "emotional", "family", "biography", "coming of age",
		"oscar winner", "based true story", "inspiring",
		"bollywood drama", "taare zameen par", "pink", "masaan",
	},
	"Horror": {
		"horror", "scary", "supernatural", "ghost", "haunted", "slasher",
		"conjuring", "insidious", "paranormal activity", "exorcist",
		"bollywood horror", "bhoot", "raaz", "stree",
	},
	"Sci-Fi": {
		"science fiction", "sci-fi", "space", "alien", "cyberpunk", "time travel",
		"star wars", "blade runner", "matrix", "interstellar",
		"bollywood sci-fi", "krrish", "robot", "brahmastra",
	},
	"Romance": {
		"romance", "love", "romantic", "love story", "wedding",
		"titanic", "notebook", "pretty woman", "love actually",
		"bollywood romance", "dilwale dulhania le jayenge", "jab we met",
	},
	"Thriller": {
		"thriller", "suspense", "mystery", "psychological thriller", "conspiracy",
		"gone girl", "shutter island", "zodiac", "memento",
		"bollywood thriller", "kahaani", "andhadhun", "drishyam",
	},
	"Fantasy": {
		"fantasy", "magic", "wizard", "dragon", "mythology", "fairy tale",
		"lord rings", "harry potter", "game thrones", "hobbit",
		"bollywood fantasy", "baahubali", "hanuman",
	},
	"Crime": {
		"crime", "detective", "mafia", "gangster", "noir", "serial killer",
		"godfather", "goodfellas", "pulp fiction", "heat",
		"gangs of wasseypur", "sacred games", "mirzapur", "satya",
	},
	"Animation": {
		"animation", "animated", "cartoon", "pixar", "anime", "stop motion",
		"toy story", "finding nemo", "spirited away", "up",
		"chhota bheem", "hanuman", "bal ganesh",
	},
}

// discoveryGenreTerms returns terms for one genre; withHindi toggles
// the Hindi cinema markers for the english-only source.
func discoveryGenreTerms(genre string, withHindi bool) []string {
	terms, ok := genreSearchTerms[genre]
	if !ok {
		return []string{strings.ToLower(genre)}
	}
	if withHindi {
		return terms
	}
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if !strings.Contains(t, "bollywood") && !isLikelyHindi(models.Candidate{Title: t}) {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return []string{strings.ToLower(genre)}
	}
	return out
}

var popularSearchTerms = []string{
	"Marvel", "Batman", "Star Wars", "Harry Potter", "Lord of the Rings",
	"Mission Impossible", "John Wick", "Avengers", "Jurassic Park",
	"Spider-Man", "Iron Man", "Deadpool", "Wonder Woman",
	"Breaking Bad", "Game of Thrones", "Stranger Things", "The Office",
	"Friends", "Narcos", "Money Heist", "Sherlock", "Peaky Blinders",
	"Godfather", "Shawshank Redemption", "Pulp Fiction", "Forrest Gump",
	"Titanic", "Matrix", "Inception", "Interstellar", "Dark Knight",
	"Top Gun Maverick", "Dune", "Joker", "Parasite",
	"Shah Rukh Khan", "Salman Khan", "Aamir Khan", "Amitabh Bachchan",
	"Dangal", "Baahubali", "KGF", "RRR", "3 Idiots", "Lagaan",
	"Sacred Games", "Mirzapur", "Scam 1992", "The Family Man",
	"Toy Story", "Finding Nemo", "Frozen", "Coco", "Inside Out",
}

var hindiBaseTerms = []string{
	"Shah Rukh Khan", "Salman Khan", "Aamir Khan", "Amitabh Bachchan",
	"Akshay Kumar", "Hrithik Roshan", "Ranveer Singh", "Ranbir Kapoor",
	"Deepika Padukone", "Priyanka Chopra", "Kareena Kapoor", "Alia Bhatt",
}

var hindiGenreTitles = map[string][]string{
	"Action":   {"Dangal", "Baahubali", "KGF", "War", "Uri"},
	"Comedy":   {"3 Idiots", "Hera Pheri", "Golmaal", "Housefull"},
	"Romance":  {"Dilwale Dulhania Le Jayenge", "Jab We Met", "Yeh Jawaani Hai Deewani"},
	"Drama":    {"Taare Zameen Par", "Pink", "Queen", "Article 15"},
	"Thriller": {"Andhadhun", "Kahaani", "Drishyam", "Talaash"},
}

var hindiTailTerms = []string{
	"Sacred Games", "Mirzapur", "Scam 1992", "The Family Man", "Arya",
	"Delhi Crime", "Mumbai Diaries", "Rocket Boys",
	"Bollywood", "Hindi movie", "Hindi film", "Indian cinema",
}

var randomDiscoveryTerms = []string{
	"2023", "2022", "2021", "2020", "2019", "2015", "2010", "2005", "2000", "1995",
	"adventure", "mystery", "western", "musical", "sport", "biography",
	"french", "german", "japanese", "korean", "spanish", "italian",
	"oscar", "golden globe", "cannes", "sundance", "bafta",
	"independent", "cult", "classic", "remake", "true story", "novel",
}

type recSource struct {
	name string
	// live marks sources that reach the network; static catalog
	// entries are not live.
	live bool
	run  func(ctx context.Context) []models.Candidate
}

// languageSources assembles the heuristic source chain for a request.
// Each entry targets a fraction of the limit; the mixes follow the
// language preference.
func (s *Service) languageSources(req models.RecommendRequest, selected []string) []recSource {
	limit := req.Limit
	frac := func(f float64) int { return int(math.Ceil(float64(limit) * f)) }

	switch req.Language {
	case models.LanguageHindi:
		return []recSource{
			{"latest releases", true, func(ctx context.Context) []models.Candidate {
				return s.latestReleases(ctx, req.ContentType, frac(0.2), req.Language)
			}},
			{"hindi discovery", true, func(ctx context.Context) []models.Candidate {
				return s.hindiDiscovery(ctx, selected, req.ContentType, frac(0.8))
			}},
			{"hindi fallback", false, func(ctx context.Context) []models.Candidate {
				return fallbackRecommendations(req.ContentType, frac(0.2), selected, req.Language)
			}},
		}
	case models.LanguageEnglish:
		return []recSource{
			{"latest releases", true, func(ctx context.Context) []models.Candidate {
				return s.latestReleases(ctx, req.ContentType, frac(0.25), req.Language)
			}},
			{"english genre discovery", true, func(ctx context.Context) []models.Candidate {
				return s.genreDiscovery(ctx, selected, req.ContentType, frac(0.6), false)
			}},
			{"english popular discovery", true, func(ctx context.Context) []models.Candidate {
				return s.popularDiscovery(ctx, req.ContentType, frac(0.3), true)
			}},
			{"english fallback", false, func(ctx context.Context) []models.Candidate {
				return fallbackRecommendations(req.ContentType, frac(0.1), selected, req.Language)
			}},
		}
	default:
		return []recSource{
			{"latest releases", true, func(ctx context.Context) []models.Candidate {
				return s.latestReleases(ctx, req.ContentType, frac(0.25), req.Language)
			}},
			{"genre discovery", true, func(ctx context.Context) []models.Candidate {
				return s.genreDiscovery(ctx, selected, req.ContentType, frac(0.2), true)
			}},
			{"popular discovery", true, func(ctx context.Context) []models.Candidate {
				return s.popularDiscovery(ctx, req.ContentType, frac(0.15), false)
			}},
			{"curated categories", true, func(ctx context.Context) []models.Candidate {
				return s.curatedCategories(ctx, selected, req.ContentType, frac(0.25))
			}},
			{"hindi discovery", true, func(ctx context.Context) []models.Candidate {
				return s.hindiDiscovery(ctx, selected, req.ContentType, frac(0.2))
			}},
			{"mixed fallback", false, func(ctx context.Context) []models.Candidate {
				return fallbackRecommendations(req.ContentType, frac(0.2), selected, req.Language)
			}},
		}
	}
}

// latestReleases discovers by recent year terms and keeps only items
// from the last three years matching the language preference.
func (s *Service) latestReleases(ctx context.Context, contentType string, limit int, lang string) []models.Candidate {
	currentYear := s.now().Year()
	perTerm := ceilDiv(limit, 2)

	var out []models.Candidate
	for i := 0; i < 6; i++ {
		term := strconv.Itoa(currentYear - i)
		items, err := s.metadata.Discover(ctx, term)
		if err != nil {
			log.Printf("[recommend] latest discovery %q failed: %v", term, err)
			continue
		}
		if len(items) > perTerm {
			items = items[:perTerm]
		}
		for _, c := range items {
			if !c.MatchesContentType(contentType) {
				continue
			}
			if lang == models.LanguageHindi && !isLikelyHindi(c) {
				continue
			}
			if lang == models.LanguageEnglish && isLikelyHindi(c) {
				continue
			}
			if year := numericYear(c.Year); year >= currentYear-3 {
				out = append(out, c)
			}
		}
	}
	out = dedupe.Candidates(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// genreDiscovery runs shuffled genre terms against the full-text index.
func (s *Service) genreDiscovery(ctx context.Context, selected []string, contentType string, limit int, withHindi bool) []models.Candidate {
	active := selected
	if len(active) == 0 {
		active = []string{"Action", "Comedy", "Drama"}
	}
	if len(active) > 3 {
		active = active[:3]
	}
	perTerm := ceilDiv(limit, len(active)*2)

	var out []models.Candidate
	for _, genre := range active {
		terms := append([]string(nil), discoveryGenreTerms(genre, withHindi)...)
		rand.Shuffle(len(terms), func(i, j int) { terms[i], terms[j] = terms[j], terms[i] })
		if len(terms) > 4 {
			terms = terms[:4]
		}
		for _, term := range terms {
			items, err := s.metadata.Discover(ctx, term)
			if err != nil {
				log.Printf("[recommend] genre discovery %q failed: %v", term, err)
				continue
			}
			if len(items) > perTerm {
				items = items[:perTerm]
			}
			for _, c := range items {
				if !c.MatchesContentType(contentType) {
					continue
				}
				if !withHindi && isLikelyHindi(c) {
					continue
				}
				out = append(out, c)
			}
		}
	}
	return out
}

// popularDiscovery samples well-known titles for broad appeal.
func (s *Service) popularDiscovery(ctx context.Context, contentType string, limit int, englishOnly bool) []models.Candidate {
	terms := append([]string(nil), popularSearchTerms...)
	rand.Shuffle(len(terms), func(i, j int) { terms[i], terms[j] = terms[j], terms[i] })
	if len(terms) > 8 {
		terms = terms[:8]
	}
	perTerm := ceilDiv(limit, 5)

	var out []models.Candidate
	for _, term := range terms {
		items, err := s.metadata.Discover(ctx, term)
		if err != nil {
			log.Printf("[recommend] popular discovery %q failed: %v", term, err)
			continue
		}
		if len(items) > perTerm {
			items = items[:perTerm]
		}
		for _, c := range items {
			if !c.MatchesContentType(contentType) {
				continue
			}
			if englishOnly && isLikelyHindi(c) {
				continue
			}
			out = append(out, c)
		}
	}
	return out
}

// curatedCategories maps selected genres onto the sample API's fixed
// category list.
func (s *Service) curatedCategories(ctx context.Context, selected []string, contentType string, limit int) []models.Candidate {
	available := []string{"animation", "comedy", "drama", "horror", "family"}
	var categories []string
	for _, g := range selected {
		lower := strings.ToLower(g)
		for _, cat := range available {
			if strings.Contains(lower, cat) {
				categories = append(categories, cat)
			}
		}
	}
	if len(categories) == 0 {
		categories = available[:2]
	}
	categories = uniqueStrings(categories)
	if len(categories) > 3 {
		categories = categories[:3]
	}
	perCategory := ceilDiv(limit, len(categories))

	var out []models.Candidate
	for _, category := range categories {
		items, err := s.metadata.SampleCategory(ctx, category)
		if err != nil {
			log.Printf("[recommend] curated category %q failed: %v", category, err)
			continue
		}
		rand.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
		if len(items) > perCategory {
			items = items[:perCategory]
		}
		for _, c := range items {
			if c.MatchesContentType(contentType) {
				out = append(out, c)
			}
		}
	}
	return out
}

// hindiDiscovery searches Bollywood-flavored terms and keeps only items
// the heuristic flags as Hindi content.
func (s *Service) hindiDiscovery(ctx context.Context, selected []string, contentType string, limit int) []models.Candidate {
	terms := append([]string(nil), hindiBaseTerms...)
	for _, g := range selected {
		terms = append(terms, hindiGenreTitles[g]...)
	}
	terms = append(terms, hindiTailTerms...)
	if len(terms) > 8 {
		terms = terms[:8]
	}
	perTerm := ceilDiv(limit, 8)

	var out []models.Candidate
	for _, term := range terms {
		items, err := s.metadata.Discover(ctx, term)
		if err != nil {
			log.Printf("[recommend] hindi discovery %q failed: %v", term, err)
			continue
		}
		if len(items) > perTerm {
			items = items[:perTerm]
		}
		for _, c := range items {
			if c.MatchesContentType(contentType) && isLikelyHindi(c) {
				out = append(out, c)
			}
		}
	}
	return out
}

// randomDiscovery adds a small slice of unrelated content for variety.
func (s *Service) randomDiscovery(ctx context.Context, contentType string, limit int) []models.Candidate {
	terms := append([]string(nil), randomDiscoveryTerms...)
	rand.Shuffle(len(terms), func(i, j int) { terms[i], terms[j] = terms[j], terms[i] })
	if len(terms) > 3 {
		terms = terms[:3]
	}
	perTerm := ceilDiv(limit, 3)

	var out []models.Candidate
	for _, term := range terms {
		items, err := s.metadata.Discover(ctx, term)
		if err != nil {
			log.Printf("[recommend] random discovery %q failed: %v", term, err)
			continue
		}
		if len(items) > perTerm {
			items = items[:perTerm]
		}
		for _, c := range items {
			if c.MatchesContentType(contentType) {
				out = append(out, c)
			}
		}
	}
	return out
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return a
	}
	return (a + b - 1) / b
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, s := range in {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
