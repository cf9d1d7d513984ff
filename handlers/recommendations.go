package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"reelstream/models"
	"reelstream/services/recommend"
)

type recommendEngine interface {
	Recommend(ctx context.Context, req models.RecommendRequest) ([]models.Candidate, bool, error)
}

var _ recommendEngine = (*recommend.Service)(nil)

type RecommendationsHandler struct {
	Engine recommendEngine
}

func NewRecommendationsHandler(engine recommendEngine) *RecommendationsHandler {
	return &RecommendationsHandler{Engine: engine}
}

type recommendationsRequest struct {
	UserID   string   `json:"userId"`
	Genres   []string `json:"genres"`
	Type     string   `json:"type"`
	Limit    int      `json:"limit"`
	Language string   `json:"language"`
}

type recommendationsResponse struct {
	Items    []models.Candidate `json:"items"`
	Fallback bool               `json:"fallback,omitempty"`
	Busy     bool               `json:"busy,omitempty"`
}

// Recommend handles POST /api/recommendations. A busy engine is not an
// error from the client's point of view; it gets an empty page with a
// busy flag and retries later.
func (h *RecommendationsHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var body recommendationsRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	items, usedFallback, err := h.Engine.Recommend(r.Context(), models.RecommendRequest{
		UserID:      body.UserID,
		Genres:      body.Genres,
		ContentType: body.Type,
		Limit:       body.Limit,
		Language:    body.Language,
	})
	if err != nil {
		if errors.Is(err, recommend.ErrBusy) {
			writeJSON(w, http.StatusOK, recommendationsResponse{Items: []models.Candidate{}, Busy: true})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []models.Candidate{}
	}
	writeJSON(w, http.StatusOK, recommendationsResponse{Items: items, Fallback: usedFallback})
}
