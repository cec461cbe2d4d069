package stores

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tobyfell/movx/internal/models"
	"github.com/tobyfell/movx/internal/services"
	"github.com/tobyfell/movx/internal/shared"
	itesting "github.com/tobyfell/movx/internal/testing"
)

type fixedToken struct {
	token string
}

func (f fixedToken) Token() (string, bool) {
	return f.token, f.token != ""
}

func TestMovieStore(t *testing.T) {
	ctx := context.Background()

	t.Run("NoCredential", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Errorf("Unexpected request without credential: %s %s", r.Method, r.URL.Path)
		}))
		defer server.Close()

		notifier := &itesting.MockNotifier{}
		store := NewMovieStore(services.NewClient(server.URL, nil), fixedToken{}, notifier)

		if err := store.Fetch(ctx); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("Expected ErrNotAuthenticated, got %v", err)
		}

		if _, err := store.Add(ctx, models.MovieInput{Title: "Heat"}); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("Expected ErrNotAuthenticated, got %v", err)
		}

		if err := store.Delete(ctx, 1); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("Expected ErrNotAuthenticated, got %v", err)
		}

		if got := notifier.LastError(); got != "User is not authenticated." {
			t.Errorf("Expected authentication notice, got %q", got)
		}
	})

	t.Run("Fetch", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Authorization"); got != "Bearer tkn" {
				t.Errorf("Expected bearer token, got %q", got)
			}
			json.NewEncoder(w).Encode([]models.Movie{
				{ID: 1, ImdbID: "tt0113277", Title: "Heat", Year: "1995"},
				{ID: 2, ImdbID: "tt0137523", Title: "Fight Club", Year: "1999"},
			})
		}))
		defer server.Close()

		notifier := &itesting.MockNotifier{}
		store := NewMovieStore(services.NewClient(server.URL, nil), fixedToken{"tkn"}, notifier)

		if err := store.Fetch(ctx); err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}

		items := store.Items()
		if len(items) != 2 {
			t.Fatalf("Expected 2 movies, got %d", len(items))
		}
		if items[0].Title != "Heat" || items[1].Title != "Fight Club" {
			t.Errorf("Unexpected items: %+v", items)
		}
	})

	t.Run("FetchReplacesWholesale", func(t *testing.T) {
		lists := [][]models.Movie{
			{{ID: 1, Title: "Heat"}, {ID: 2, Title: "Fight Club"}},
			{{ID: 3, Title: "Alien"}},
		}
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(lists[calls])
			calls++
		}))
		defer server.Close()

		store := NewMovieStore(services.NewClient(server.URL, nil), fixedToken{"tkn"}, &itesting.MockNotifier{})

		store.Fetch(ctx)
		store.Fetch(ctx)

		items := store.Items()
		if len(items) != 1 || items[0].Title != "Alien" {
			t.Errorf("Expected second fetch to replace items, got %+v", items)
		}
	})

	t.Run("AddAppendsOnce", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var input models.MovieInput
			json.NewDecoder(r.Body).Decode(&input)
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(models.Movie{ID: 7, ImdbID: input.ImdbID, Title: input.Title, OwnerID: 3})
		}))
		defer server.Close()

		notifier := &itesting.MockNotifier{}
		store := NewMovieStore(services.NewClient(server.URL, nil), fixedToken{"tkn"}, notifier)

		movie, err := store.Add(ctx, models.MovieInput{ImdbID: "tt0113277", Title: "Heat"})
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if movie.ID != 7 || movie.OwnerID != 3 {
			t.Errorf("Expected server record, got %+v", movie)
		}

		items := store.Items()
		if len(items) != 1 {
			t.Fatalf("Expected 1 movie after add, got %d", len(items))
		}
		if got := notifier.LastSuccess(); got != "Movie added successfully!" {
			t.Errorf("Unexpected notification: %q", got)
		}
	})

	t.Run("DeleteRemovesMatch", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				json.NewEncoder(w).Encode([]models.Movie{{ID: 1, Title: "Heat"}, {ID: 2, Title: "Alien"}})
			case http.MethodDelete:
				if r.URL.Path != "/movies/1" {
					t.Errorf("Unexpected delete path: %s", r.URL.Path)
				}
				w.WriteHeader(http.StatusNoContent)
			}
		}))
		defer server.Close()

		notifier := &itesting.MockNotifier{}
		store := NewMovieStore(services.NewClient(server.URL, nil), fixedToken{"tkn"}, notifier)

		store.Fetch(ctx)
		if err := store.Delete(ctx, 1); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}

		items := store.Items()
		if len(items) != 1 || items[0].ID != 2 {
			t.Errorf("Expected only movie 2 to remain, got %+v", items)
		}
		if got := notifier.LastSuccess(); got != "Movie deleted successfully!" {
			t.Errorf("Unexpected notification: %q", got)
		}
	})

	t.Run("FetchFailureKeepsItems", func(t *testing.T) {
		fail := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if fail {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			json.NewEncoder(w).Encode([]models.Movie{{ID: 1, Title: "Heat"}})
		}))
		defer server.Close()

		notifier := &itesting.MockNotifier{}
		store := NewMovieStore(services.NewClient(server.URL, nil), fixedToken{"tkn"}, notifier)

		store.Fetch(ctx)
		fail = true

		if err := store.Fetch(ctx); err == nil {
			t.Fatal("Expected failed fetch to return an error")
		}

		if items := store.Items(); len(items) != 1 {
			t.Errorf("Expected prior items to survive the failure, got %+v", items)
		}
		if got := notifier.LastError(); got != "Failed to fetch movies." {
			t.Errorf("Unexpected notification: %q", got)
		}
	})

	t.Run("SessionExpiry", func(t *testing.T) {
		unauthorized := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if unauthorized {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"detail": "Could not validate credentials"})
				return
			}
			json.NewEncoder(w).Encode([]models.Movie{{ID: 1, Title: "Heat"}})
		}))
		defer server.Close()

		notifier := &itesting.MockNotifier{}
		store := NewMovieStore(services.NewClient(server.URL, nil), fixedToken{"tkn"}, notifier)

		store.Fetch(ctx)
		unauthorized = true

		err := store.Fetch(ctx)
		if !errors.Is(err, shared.ErrSessionExpired) {
			t.Fatalf("Expected ErrSessionExpired, got %v", err)
		}

		if notifier.Dismissed != 1 {
			t.Errorf("Expected prior notifications dismissed once, got %d", notifier.Dismissed)
		}
		if got := notifier.LastError(); got != "Session expired. Please log in again." {
			t.Errorf("Unexpected notification: %q", got)
		}
		if items := store.Items(); len(items) != 1 {
			t.Errorf("Expected items to survive the expiry, got %+v", items)
		}
	})

	t.Run("DetailSurfacedVerbatim", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Movie already saved"})
		}))
		defer server.Close()

		notifier := &itesting.MockNotifier{}
		store := NewMovieStore(services.NewClient(server.URL, nil), fixedToken{"tkn"}, notifier)

		if _, err := store.Add(ctx, models.MovieInput{Title: "Heat"}); err == nil {
			t.Fatal("Expected rejected add to return an error")
		}

		if got := notifier.LastError(); got != "Movie already saved" {
			t.Errorf("Expected backend detail verbatim, got %q", got)
		}
	})
}
