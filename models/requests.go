package models

// RecommendRequest carries the parameters of one recommendation pass.
type RecommendRequest struct {
	UserID      string   `json:"userId"`
	Genres      []string `json:"genres"`
	ContentType string   `json:"type"`     // all | movies | series
	Limit       int      `json:"limit"`    // defaulted by the service when <= 0
	Language    string   `json:"language"` // all | english | hindi
}
