package models

import "strings"

// Content types for a Candidate.
const (
	ContentTypeMovie   = "movie"
	ContentTypeSeries  = "series"
	ContentTypeUnknown = "unknown"
)

// Content type filters accepted by the search and recommendation paths.
const (
	FilterAll    = "all"
	FilterMovies = "movies"
	FilterSeries = "series"
)

// Language filters for the recommendation path.
const (
	LanguageAll     = "all"
	LanguageEnglish = "english"
	LanguageHindi   = "hindi"
)

// Candidate is the common normalized record produced by every upstream
// metadata service. Identifiers from different services are not globally
// unique: services without a canonical id get a synthesized placeholder of
// the form "<service>:<secondary-id>", which DedupKey treats as absent.
type Candidate struct {
	Title       string   `json:"title"`
	Year        string   `json:"year,omitempty"` // single year or a range like "2008–2013"
	ExternalID  string   `json:"externalId"`
	ContentType string   `json:"contentType"`
	PosterURL   string   `json:"posterUrl,omitempty"`
	Genres      []string `json:"genres,omitempty"`
	Rating      float64  `json:"rating,omitempty"`    // 0 = unrated, otherwise 0.0-10.0
	Relevance   float64  `json:"relevance,omitempty"` // search path only
	AIScore     float64  `json:"aiScore,omitempty"`   // recommendation path only

	// Enrichment-only fields; used for language matching, never rendered.
	Language string `json:"language,omitempty"`
	Actors   string `json:"actors,omitempty"`
}

// HasCanonicalID reports whether ExternalID is a real upstream identifier
// rather than a synthesized "<service>:<id>" placeholder.
func (c Candidate) HasCanonicalID() bool {
	return c.ExternalID != "" && !strings.Contains(c.ExternalID, ":")
}

// DedupKey returns the key used to collapse duplicates across services:
// the canonical external id when present, else a (title, year) composite.
func (c Candidate) DedupKey() string {
	if c.HasCanonicalID() {
		return c.ExternalID
	}
	return strings.ToLower(strings.TrimSpace(c.Title)) + "-" + c.Year
}

// Score returns whichever ranking score the candidate carries. Search results
// carry Relevance, recommendations carry AIScore; a candidate never carries
// both.
func (c Candidate) Score() float64 {
	if c.AIScore > c.Relevance {
		return c.AIScore
	}
	return c.Relevance
}

// MatchesContentType reports whether the candidate passes a content type
// filter ("all" | "movies" | "series").
func (c Candidate) MatchesContentType(filter string) bool {
	switch filter {
	case FilterMovies:
		return c.ContentType == ContentTypeMovie
	case FilterSeries:
		return c.ContentType == ContentTypeSeries
	default:
		return true
	}
}
