package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"reelstream/models"
	"reelstream/services/users"
)

type userService interface {
	Create(name string) (models.User, error)
	Get(id string) (models.User, error)
	List() []models.User
	Delete(id string) error
}

var _ userService = (*users.Service)(nil)

type UsersHandler struct {
	Service userService
}

func NewUsersHandler(service userService) *UsersHandler {
	return &UsersHandler{Service: service}
}

func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Service.List())
}

func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	u, err := h.Service.Create(body.Name)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, users.ErrNameRequired) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(mux.Vars(r)["userID"])
	u, err := h.Service.Get(id)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, users.ErrUserNotFound) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(mux.Vars(r)["userID"])
	if err := h.Service.Delete(id); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, users.ErrUserNotFound) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
