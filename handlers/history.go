package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"reelstream/models"
	"reelstream/services/history"
)

type historyService interface {
	Record(userID string, rec models.WatchRecord) error
	List(userID string) ([]models.WatchRecord, error)
	Remove(userID, externalID string) error
	Clear(userID string) error
}

var _ historyService = (*history.Service)(nil)

type HistoryHandler struct {
	Service historyService
}

func NewHistoryHandler(service historyService) *HistoryHandler {
	return &HistoryHandler{Service: service}
}

func (h *HistoryHandler) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := strings.TrimSpace(mux.Vars(r)["userID"])
	if userID == "" {
		http.Error(w, "user id is required", http.StatusBadRequest)
		return "", false
	}
	return userID, true
}

func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	records, err := h.Service.List(userID)
	if err != nil {
		http.Error(w, err.Error(), historyStatus(err))
		return
	}
	if records == nil {
		records = []models.WatchRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *HistoryHandler) Record(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var rec models.WatchRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.Service.Record(userID, rec); err != nil {
		http.Error(w, err.Error(), historyStatus(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *HistoryHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	externalID := strings.TrimSpace(mux.Vars(r)["externalID"])
	if externalID == "" {
		http.Error(w, "external id is required", http.StatusBadRequest)
		return
	}

	if err := h.Service.Remove(userID, externalID); err != nil {
		http.Error(w, err.Error(), historyStatus(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *HistoryHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	if err := h.Service.Clear(userID); err != nil {
		http.Error(w, err.Error(), historyStatus(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func historyStatus(err error) int {
	if errors.Is(err, history.ErrUserIDRequired) || errors.Is(err, history.ErrExternalIDRequired) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
