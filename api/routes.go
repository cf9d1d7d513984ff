package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"reelstream/handlers"
)

// corsMiddleware handles CORS for API routes
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Register mounts API endpoints onto the provided router.
func Register(
	r *mux.Router,
	searchHandler *handlers.SearchHandler,
	recommendationsHandler *handlers.RecommendationsHandler,
	historyHandler *handlers.HistoryHandler,
	usersHandler *handlers.UsersHandler,
) {
	appAPI := r.PathPrefix("/api").Subrouter()
	appAPI.Use(corsMiddleware)

	appAPI.HandleFunc("/search", searchHandler.Search).Methods(http.MethodGet, http.MethodOptions)
	appAPI.HandleFunc("/recommendations", recommendationsHandler.Recommend).Methods(http.MethodPost, http.MethodOptions)

	appAPI.HandleFunc("/users", usersHandler.List).Methods(http.MethodGet, http.MethodOptions)
	appAPI.HandleFunc("/users", usersHandler.Create).Methods(http.MethodPost)
	appAPI.HandleFunc("/users/{userID}", usersHandler.Get).Methods(http.MethodGet, http.MethodOptions)
	appAPI.HandleFunc("/users/{userID}", usersHandler.Delete).Methods(http.MethodDelete)

	appAPI.HandleFunc("/users/{userID}/history", historyHandler.List).Methods(http.MethodGet, http.MethodOptions)
	appAPI.HandleFunc("/users/{userID}/history", historyHandler.Record).Methods(http.MethodPost)
	appAPI.HandleFunc("/users/{userID}/history", historyHandler.Clear).Methods(http.MethodDelete)
	appAPI.HandleFunc("/users/{userID}/history/{externalID}", historyHandler.Remove).Methods(http.MethodDelete, http.MethodOptions)

	appAPI.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet, http.MethodOptions)
}
