package tasks

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tobyfell/movx/internal/models"
	"github.com/tobyfell/movx/internal/repositories"
	"github.com/tobyfell/movx/internal/services"
	"github.com/tobyfell/movx/internal/shared"
	itesting "github.com/tobyfell/movx/internal/testing"
)

func exportBackend(t *testing.T) *httptest.Server {
	t.Helper()

	heat := models.Movie{ID: 1, ImdbID: "tt0113277", Title: "Heat", Year: "1995", Type: "movie"}
	alien := models.Movie{ID: 2, ImdbID: "tt0078748", Title: "Alien", Year: "1979", Type: "movie"}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/movies":
			json.NewEncoder(w).Encode([]models.Movie{heat, alien})
		case r.URL.Path == "/playlists":
			json.NewEncoder(w).Encode([]models.Playlist{{ID: 5, Name: "Noir"}, {ID: 6, Name: "Space"}})
		case r.URL.Path == "/playlists/5":
			json.NewEncoder(w).Encode(models.Playlist{ID: 5, Name: "Noir", Movies: []models.Movie{heat}})
		case r.URL.Path == "/playlists/6":
			json.NewEncoder(w).Encode(models.Playlist{ID: 6, Name: "Space", Movies: []models.Movie{alien}})
		default:
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Playlist not found"})
		}
	}))
	t.Cleanup(server.Close)

	return server
}

func snapshotRepos(t *testing.T) (*repositories.MovieRepository, *repositories.PlaylistRepository) {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return repositories.NewMovieRepository(db), repositories.NewPlaylistRepository(db)
}

func TestExportEngineRun(t *testing.T) {
	ctx := context.Background()

	t.Run("FullRun", func(t *testing.T) {
		server := exportBackend(t)
		movies, playlists := snapshotRepos(t)

		engine := NewExportEngine(services.NewClient(server.URL, nil), movies, playlists)
		dir := t.TempDir()

		prog := make(chan ProgressUpdate, 100)
		result, err := engine.Run(ctx, prog, "tkn", nil, ExportOpts{Format: "json", OutputDir: dir})
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}

		if result.TotalPlaylists != 2 || result.SuccessfulExports != 2 || result.FailedExports != 0 {
			t.Errorf("Unexpected counts: %+v", result)
		}
		if result.MoviesCaptured != 2 {
			t.Errorf("Expected 2 movies captured, got %d", result.MoviesCaptured)
		}

		itesting.AssertFileExists(t, filepath.Join(dir, "5.json"))
		itesting.AssertFileExists(t, filepath.Join(dir, "6.json"))
		itesting.AssertFileExists(t, result.ManifestPath)

		snapMovies, err := movies.List(map[string]any{})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(snapMovies) != 2 {
			t.Errorf("Expected 2 snapshot movies, got %d", len(snapMovies))
		}

		noir, err := playlists.GetByRemoteID(5)
		if err != nil {
			t.Fatalf("GetByRemoteID failed: %v", err)
		}
		memberIDs, err := playlists.Memberships(noir.ID())
		if err != nil {
			t.Fatalf("Memberships failed: %v", err)
		}
		if len(memberIDs) != 1 {
			t.Errorf("Expected 1 membership for Noir, got %d", len(memberIDs))
		}
	})

	t.Run("PartialFailure", func(t *testing.T) {
		server := exportBackend(t)

		engine := NewExportEngine(services.NewClient(server.URL, nil), nil, nil)
		dir := t.TempDir()

		result, err := engine.Run(ctx, nil, "tkn", []int{5, 99}, ExportOpts{Format: "json", OutputDir: dir})
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}

		if result.SuccessfulExports != 1 || result.FailedExports != 1 {
			t.Errorf("Expected 1 success and 1 failure, got %+v", result)
		}

		var manifest struct {
			Playlists []struct {
				ID    int    `json:"id"`
				Error string `json:"error"`
			} `json:"playlists"`
		}
		if err := json.Unmarshal([]byte(itesting.MustReadFile(t, result.ManifestPath)), &manifest); err != nil {
			t.Fatalf("Manifest is not valid JSON: %v", err)
		}
		if len(manifest.Playlists) != 2 {
			t.Fatalf("Expected 2 manifest entries, got %d", len(manifest.Playlists))
		}

		failed := false
		for _, entry := range manifest.Playlists {
			if entry.ID == 99 && entry.Error != "" {
				failed = true
			}
		}
		if !failed {
			t.Error("Expected manifest entry for the failed playlist")
		}
	})

	t.Run("CSVFormat", func(t *testing.T) {
		server := exportBackend(t)

		engine := NewExportEngine(services.NewClient(server.URL, nil), nil, nil)
		dir := t.TempDir()

		result, err := engine.Run(ctx, nil, "tkn", []int{5}, ExportOpts{Format: "csv", OutputDir: dir})
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		if result.SuccessfulExports != 1 {
			t.Fatalf("Expected 1 success, got %+v", result)
		}

		moviesCSV := filepath.Join(dir, "5_movies.csv")
		itesting.AssertFileExists(t, moviesCSV)
		if !strings.Contains(itesting.MustReadFile(t, moviesCSV), "tt0113277") {
			t.Error("Expected CSV to carry the movie rows")
		}
	})

	t.Run("RepeatRunDoesNotDuplicate", func(t *testing.T) {
		server := exportBackend(t)
		movies, playlists := snapshotRepos(t)

		engine := NewExportEngine(services.NewClient(server.URL, nil), movies, playlists)

		for i := 0; i < 2; i++ {
			if _, err := engine.Run(ctx, nil, "tkn", nil, ExportOpts{OutputDir: t.TempDir()}); err != nil {
				t.Fatalf("Run %d failed: %v", i+1, err)
			}
		}

		snapMovies, _ := movies.List(map[string]any{})
		if len(snapMovies) != 2 {
			t.Errorf("Expected upserted movies, got %d rows", len(snapMovies))
		}
		snapPlaylists, _ := playlists.List(map[string]any{})
		if len(snapPlaylists) != 2 {
			t.Errorf("Expected upserted playlists, got %d rows", len(snapPlaylists))
		}
	})

	t.Run("NilClient", func(t *testing.T) {
		engine := NewExportEngine(nil, nil, nil)
		if _, err := engine.Run(ctx, nil, "tkn", nil, ExportOpts{}); err == nil {
			t.Error("Expected error for uninitialized client")
		}
	})
}
