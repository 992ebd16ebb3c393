package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"tanah-scraper/models"
	"tanah-scraper/storage"
	"tanah-scraper/utils"
)

// ListingStore is what the API needs from storage.
type ListingStore interface {
	FetchAll() ([]*models.Listing, error)
}

// Server exposes stored listings over HTTP for downstream consumers that
// prefer JSON over the CSV file.
type Server struct {
	store  ListingStore
	logger *utils.Logger
}

// NewServer creates a Server backed by the given store.
func NewServer(store ListingStore, logger *utils.Logger) *Server {
	return &Server{store: store, logger: logger}
}

// Router builds the HTTP route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/listings", s.handleListings).Methods(http.MethodGet)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListings(w http.ResponseWriter, _ *http.Request) {
	listings, err := s.store.FetchAll()
	if err != nil {
		s.logger.Error("[api] Fetch listings failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "storage unavailable"})
		return
	}
	if listings == nil {
		listings = []*models.Listing{}
	}
	writeJSON(w, http.StatusOK, listings)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

var _ ListingStore = (*storage.PostgresWriter)(nil)
