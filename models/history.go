package models

import "time"

// WatchRecord is one entry in a user's watch history. Genre holds the raw
// comma-separated genre list as reported by the metadata service at watch
// time; consumers normalize it on read.
type WatchRecord struct {
	ExternalID  string    `json:"externalId"`
	Title       string    `json:"title"`
	ContentType string    `json:"contentType"` // movie | series
	Genre       string    `json:"genre,omitempty"`
	Year        string    `json:"year,omitempty"`
	PosterURL   string    `json:"posterUrl,omitempty"`
	WatchedAt   time.Time `json:"watchedAt"`
}

// PreferenceProfile is a derived view over a user's watch history, rebuilt
// from scratch on every recommendation request. It is never persisted.
type PreferenceProfile struct {
	GenreAffinity      map[string]float64 `json:"genreAffinity"`      // capped at 10 per genre
	WatchedGenreCounts map[string]int     `json:"watchedGenreCounts"` // raw frequencies
	TotalWatched       int                `json:"totalWatched"`
}

// NewPreferenceProfile returns an empty profile with initialized maps.
func NewPreferenceProfile() PreferenceProfile {
	return PreferenceProfile{
		GenreAffinity:      make(map[string]float64),
		WatchedGenreCounts: make(map[string]int),
	}
}
