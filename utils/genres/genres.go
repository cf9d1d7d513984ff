// Package genres canonicalizes the freeform genre labels returned by the
// upstream metadata services. Sources disagree on casing and synonyms
// ("Science Fiction", "sci-fi", "SciFi"), so every genre string funnels
// through Normalize before comparison or storage.
package genres

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Canonical is the fixed vocabulary used across the recommendation path.
var Canonical = []string{
	"Action", "Adventure", "Animation", "Biography", "Comedy", "Crime",
	"Documentary", "Drama", "Family", "Fantasy", "History", "Horror",
	"Music", "Mystery", "Romance", "Sci-Fi", "Sport", "Thriller", "War", "Western",
}

// synonyms maps lowercased source labels to their canonical form.
var synonyms = map[string]string{
	"science fiction": "Sci-Fi",
	"sci-fi":          "Sci-Fi",
	"scifi":           "Sci-Fi",
	"tv movie":        "Drama",
}

var titleCaser = cases.Title(language.English)

// Normalize maps a single genre label to its canonical form. Unknown labels
// are title-cased rather than dropped so user history in genres outside the
// canonical vocabulary still contributes signal. Normalize is idempotent.
func Normalize(genre string) string {
	text := strings.ToLower(strings.TrimSpace(genre))
	if text == "" {
		return ""
	}
	if canonical, ok := synonyms[text]; ok {
		return canonical
	}
	normalized := titleCaser.String(text)
	return strings.ReplaceAll(normalized, "Sci Fi", "Sci-Fi")
}

// Split breaks a comma-separated genre list into normalized labels,
// dropping empties.
func Split(genreList string) []string {
	if strings.TrimSpace(genreList) == "" {
		return nil
	}
	parts := strings.Split(genreList, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if g := Normalize(p); g != "" {
			out = append(out, g)
		}
	}
	return out
}

// queryTerms maps each canonical genre to the search terms the keyword
// retrieval pass issues for it.
var queryTerms = map[string][]string{
	"Action":      {"action", "adventure", "mission"},
	"Adventure":   {"adventure", "quest", "expedition"},
	"Animation":   {"animation", "animated", "pixar"},
	"Biography":   {"biography", "biopic", "true story"},
	"Comedy":      {"comedy", "funny", "humor"},
	"Crime":       {"crime", "detective", "mafia"},
	"Documentary": {"documentary", "docu", "real story"},
	"Drama":       {"drama", "emotional", "family"},
	"Family":      {"family", "kids", "children"},
	"Fantasy":     {"fantasy", "magic", "mythology"},
	"History":     {"history", "period", "historical"},
	"Horror":      {"horror", "scary", "haunted"},
	"Music":       {"music", "musical", "band"},
	"Mystery":     {"mystery", "investigation", "suspense"},
	"Romance":     {"romance", "love", "relationship"},
	"Sci-Fi":      {"sci-fi", "science fiction", "future"},
	"Sport":       {"sports", "athlete", "tournament"},
	"Thriller":    {"thriller", "psychological thriller", "suspense"},
	"War":         {"war", "military", "battle"},
	"Western":     {"western", "cowboy", "frontier"},
}

// QueryTerms returns the retrieval terms for a set of selected genres,
// deduplicated, capped at max. With no genres selected it falls back to
// generic discovery terms, and language-targeted terms are appended for
// non-"all" language filters.
func QueryTerms(selected []string, lang string, max int) []string {
	var terms []string
	if len(selected) > 0 {
		for _, g := range selected {
			normalized := Normalize(g)
			if mapped, ok := queryTerms[normalized]; ok {
				terms = append(terms, mapped...)
			} else {
				terms = append(terms, strings.ToLower(normalized))
			}
		}
	} else {
		terms = []string{"popular", "trending", "top rated", "new release"}
	}

	switch lang {
	case "hindi":
		terms = append(terms, "bollywood", "hindi movie", "indian cinema")
	case "english":
		terms = append(terms, "hollywood", "english movie")
	}

	seen := make(map[string]struct{}, len(terms))
	unique := terms[:0]
	for _, t := range terms {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		unique = append(unique, t)
	}
	if max > 0 && len(unique) > max {
		unique = unique[:max]
	}
	return unique
}

// Overlap returns the fraction of selected genres present in the item's
// genre list (both sides normalized). Zero when nothing is selected.
func Overlap(itemGenres, selected []string) float64 {
	if len(selected) == 0 || len(itemGenres) == 0 {
		return 0
	}
	have := make(map[string]struct{}, len(itemGenres))
	for _, g := range itemGenres {
		have[strings.ToLower(Normalize(g))] = struct{}{}
	}
	matched := 0
	for _, g := range selected {
		if _, ok := have[strings.ToLower(Normalize(g))]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(selected))
}
