package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tobyfell/movx/internal/models"
	"github.com/tobyfell/movx/internal/shared"
)

func TestOMDBClient(t *testing.T) {
	ctx := context.Background()

	t.Run("Search", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if q.Get("s") != "heat" {
				t.Errorf("Expected term query, got %v", q)
			}
			if q.Get("apikey") != "key123" {
				t.Errorf("Expected api key param, got %v", q)
			}
			json.NewEncoder(w).Encode(models.SearchPage{
				Search: []models.SearchResult{
					{Title: "Heat", Year: "1995", ImdbID: "tt0113277", Type: "movie"},
				},
				TotalResults: "1",
				Response:     "True",
			})
		}))
		defer server.Close()

		client := NewOMDBClient(server.URL, "key123", 0, nil)
		page, err := client.Search(ctx, "heat")
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(page.Search) != 1 || page.Search[0].ImdbID != "tt0113277" {
			t.Errorf("Unexpected page: %+v", page)
		}
	})

	t.Run("SearchNotFound", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(models.SearchPage{Response: "False", Error: "Movie not found!"})
		}))
		defer server.Close()

		client := NewOMDBClient(server.URL, "key123", 0, nil)
		_, err := client.Search(ctx, "zzzzzz")
		if !errors.Is(err, shared.ErrMovieNotFound) {
			t.Errorf("Expected ErrMovieNotFound, got %v", err)
		}
	})

	t.Run("Detail", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("i") != "tt0113277" {
				t.Errorf("Expected id query, got %v", r.URL.Query())
			}
			json.NewEncoder(w).Encode(models.MovieDetail{
				Title:    "Heat",
				Director: "Michael Mann",
				ImdbID:   "tt0113277",
				Response: "True",
			})
		}))
		defer server.Close()

		client := NewOMDBClient(server.URL, "key123", 0, nil)
		detail, err := client.Detail(ctx, "tt0113277")
		if err != nil {
			t.Fatalf("Detail failed: %v", err)
		}
		if detail.Director != "Michael Mann" {
			t.Errorf("Unexpected detail: %+v", detail)
		}
	})

	t.Run("EmptyInputs", func(t *testing.T) {
		client := NewOMDBClient("http://localhost:0", "key123", 0, nil)

		if _, err := client.Search(ctx, ""); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("Expected ErrInvalidInput for empty term, got %v", err)
		}
		if _, err := client.Detail(ctx, ""); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("Expected ErrInvalidInput for empty id, got %v", err)
		}
	})

	t.Run("MissingAPIKey", func(t *testing.T) {
		client := NewOMDBClient("http://localhost:0", "", 0, nil)

		if _, err := client.Search(ctx, "heat"); !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("Expected ErrMissingCredentials, got %v", err)
		}
	})
}
