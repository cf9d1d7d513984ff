package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"reelstream/models"
	"reelstream/services/search"
)

type searchService interface {
	Search(ctx context.Context, query string) ([]models.Candidate, error)
}

var _ searchService = (*search.Service)(nil)

type SearchHandler struct {
	Service searchService
}

func NewSearchHandler(service searchService) *SearchHandler {
	return &SearchHandler{Service: service}
}

type searchResponse struct {
	Query     string             `json:"query"`
	Results   []models.Candidate `json:"results"`
	Exhausted bool               `json:"exhausted,omitempty"`
}

// Search handles GET /api/search?q=. A too-short query is a client
// error; exhausted providers still return 200 so the UI can render an
// empty state with a retry hint.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	results, err := h.Service.Search(r.Context(), query)
	if err != nil {
		switch {
		case errors.Is(err, search.ErrQueryTooShort):
			http.Error(w, "query must be at least 2 characters", http.StatusBadRequest)
			return
		case errors.Is(err, search.ErrNoResults):
			writeJSON(w, http.StatusOK, searchResponse{Query: query, Results: []models.Candidate{}, Exhausted: true})
			return
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
	if results == nil {
		results = []models.Candidate{}
	}
	writeJSON(w, http.StatusOK, searchResponse{Query: query, Results: results})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
