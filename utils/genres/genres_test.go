package genres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSynonyms(t *testing.T) {
	assert.Equal(t, "Sci-Fi", Normalize("science fiction"))
	assert.Equal(t, "Sci-Fi", Normalize("Science Fiction"))
	assert.Equal(t, "Sci-Fi", Normalize("sci-fi"))
	assert.Equal(t, "Sci-Fi", Normalize("SciFi"))
	assert.Equal(t, "Drama", Normalize("TV Movie"))
}

func TestNormalizeCasing(t *testing.T) {
	assert.Equal(t, "Horror", Normalize("  horror "))
	assert.Equal(t, "Film Noir", Normalize("film noir"))
	assert.Equal(t, "", Normalize("   "))
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, g := range append([]string{"science fiction", "thriller", "film noir"}, Canonical...) {
		once := Normalize(g)
		assert.Equal(t, once, Normalize(once), "Normalize not idempotent for %q", g)
	}
}

func TestSplit(t *testing.T) {
	got := Split("Action, science fiction , ,Drama")
	assert.Equal(t, []string{"Action", "Sci-Fi", "Drama"}, got)
	assert.Nil(t, Split(""))
}

func TestQueryTermsSelectedGenres(t *testing.T) {
	terms := QueryTerms([]string{"Horror"}, "all", 12)
	assert.Contains(t, terms, "horror")
	assert.Contains(t, terms, "scary")
	assert.Contains(t, terms, "haunted")
}

func TestQueryTermsDefaultsAndLanguage(t *testing.T) {
	terms := QueryTerms(nil, "hindi", 12)
	assert.Contains(t, terms, "popular")
	assert.Contains(t, terms, "bollywood")

	capped := QueryTerms([]string{"Action", "Comedy", "Drama", "Horror", "Sci-Fi"}, "all", 12)
	assert.LessOrEqual(t, len(capped), 12)
}

func TestQueryTermsDeduplicates(t *testing.T) {
	// Thriller and Mystery both map to "suspense".
	terms := QueryTerms([]string{"Thriller", "Mystery"}, "all", 0)
	seen := map[string]int{}
	for _, term := range terms {
		seen[term]++
	}
	assert.Equal(t, 1, seen["suspense"])
}

func TestOverlap(t *testing.T) {
	item := []string{"Action", "Sci-Fi"}
	assert.Equal(t, 1.0, Overlap(item, []string{"action"}))
	assert.Equal(t, 0.5, Overlap(item, []string{"Action", "Comedy"}))
	assert.Equal(t, 0.0, Overlap(item, []string{"Romance"}))
	assert.Equal(t, 0.0, Overlap(item, nil))
	assert.Equal(t, 1.0, Overlap([]string{"science fiction"}, []string{"Sci-Fi"}))
}
