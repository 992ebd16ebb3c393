package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"tanah-scraper/models"
	"tanah-scraper/utils"
)

type stubStore struct {
	listings []*models.Listing
	err      error
}

func (s *stubStore) FetchAll() ([]*models.Listing, error) {
	return s.listings, s.err
}

func TestHealthEndpoint(t *testing.T) {
	srv := NewServer(&stubStore{}, utils.NewLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rec.Code)
	}
}

func TestListingsEndpoint(t *testing.T) {
	store := &stubStore{listings: []*models.Listing{
		{Title: "Tanah Indah 2000m2", SurfaceSqm: 2000, PriceIdr: 5e9,
			Link: "https://example.co.id/bali/properti/tanah-indah"},
	}}
	srv := NewServer(store, utils.NewLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/listings", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	var got []*models.Listing
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Tanah Indah 2000m2" {
		t.Errorf("unexpected payload: %+v", got)
	}
}

func TestListingsEndpointEmptyIsArray(t *testing.T) {
	srv := NewServer(&stubStore{}, utils.NewLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/listings", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if body := rec.Body.String(); body != "[]\n" {
		t.Errorf("empty store should serialize as [], got %q", body)
	}
}

func TestListingsEndpointStorageError(t *testing.T) {
	srv := NewServer(&stubStore{err: errors.New("down")}, utils.NewLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/listings", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rec.Code)
	}
}
