package repositories

import (
	"database/sql"
	"testing"
	"time"

	"github.com/tobyfell/movx/internal/models"
	"github.com/tobyfell/movx/internal/shared"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return db
}

func TestNextSequence(t *testing.T) {
	db := setupTestDB(t)

	first, err := NextSequence(db, "movies")
	if err != nil {
		t.Fatalf("NextSequence failed: %v", err)
	}
	second, err := NextSequence(db, "movies")
	if err != nil {
		t.Fatalf("NextSequence failed: %v", err)
	}

	if first != 1 || second != 2 {
		t.Errorf("Expected 1 then 2, got %d then %d", first, second)
	}

	playlistSeq, err := NextSequence(db, "playlists")
	if err != nil {
		t.Fatalf("NextSequence failed: %v", err)
	}
	if playlistSeq != 1 {
		t.Errorf("Expected independent playlist sequence, got %d", playlistSeq)
	}
}

func TestMovieRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMovieRepository(db)

	heat := models.Movie{
		ID:          11,
		ImdbID:      "tt0113277",
		Title:       "Heat",
		Year:        "1995",
		Type:        "movie",
		OwnerID:     3,
		CreatedDate: time.Now().Add(-24 * time.Hour),
	}

	t.Run("CreateAndGet", func(t *testing.T) {
		movie := models.NewSnapshotMovie(1, heat)
		if err := repo.Create(movie); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if movie.ID() == "" {
			t.Fatal("Expected generated id")
		}

		got, err := repo.Get(movie.ID())
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Title() != "Heat" || got.RemoteID() != 11 {
			t.Errorf("Round trip mismatch: %+v", got)
		}
	})

	t.Run("GetByRemoteID", func(t *testing.T) {
		got, err := repo.GetByRemoteID(11)
		if err != nil {
			t.Fatalf("GetByRemoteID failed: %v", err)
		}
		if got.ImdbID() != "tt0113277" {
			t.Errorf("Unexpected movie: %+v", got)
		}
	})

	t.Run("CreateRejectsInvalid", func(t *testing.T) {
		movie := models.NewSnapshotMovie(2, models.Movie{ImdbID: "tt0"})
		if err := repo.Create(movie); err == nil {
			t.Error("Expected validation error for missing title")
		}
	})

	t.Run("Update", func(t *testing.T) {
		got, _ := repo.GetByRemoteID(11)
		if err := repo.Update(got); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
	})

	t.Run("SoftDelete", func(t *testing.T) {
		got, _ := repo.GetByRemoteID(11)
		if err := repo.Delete(got.ID()); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}

		if _, err := repo.Get(got.ID()); err == nil {
			t.Error("Expected soft-deleted movie to be hidden")
		}
		if err := repo.Delete(got.ID()); err == nil {
			t.Error("Expected second delete to fail")
		}
	})

	t.Run("ListFiltersByType", func(t *testing.T) {
		repo.Create(models.NewSnapshotMovie(3, models.Movie{ID: 12, ImdbID: "tt0137523", Title: "Fight Club", Type: "movie"}))
		repo.Create(models.NewSnapshotMovie(4, models.Movie{ID: 13, ImdbID: "tt0903747", Title: "Breaking Bad", Type: "series"}))

		all, err := repo.List(map[string]any{})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(all) != 2 {
			t.Errorf("Expected 2 live movies, got %d", len(all))
		}

		series, err := repo.List(map[string]any{"media_type": "series"})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(series) != 1 || series[0].Title() != "Breaking Bad" {
			t.Errorf("Unexpected filtered list: %+v", series)
		}
	})
}

func TestPlaylistRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlaylistRepository(db)

	t.Run("CreateAndGet", func(t *testing.T) {
		playlist := models.NewSnapshotPlaylist(1, models.Playlist{ID: 5, Name: "Noir", OwnerID: 3})
		if err := repo.Create(playlist); err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		got, err := repo.Get(playlist.ID())
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Name() != "Noir" || got.RemoteID() != 5 {
			t.Errorf("Round trip mismatch: %+v", got)
		}
	})

	t.Run("CreateRejectsUnnamed", func(t *testing.T) {
		playlist := models.NewSnapshotPlaylist(2, models.Playlist{ID: 6})
		if err := repo.Create(playlist); err == nil {
			t.Error("Expected validation error for missing name")
		}
	})

	t.Run("Memberships", func(t *testing.T) {
		movies := NewMovieRepository(db)

		movie := models.NewSnapshotMovie(1, models.Movie{ID: 11, ImdbID: "tt0113277", Title: "Heat"})
		if err := movies.Create(movie); err != nil {
			t.Fatalf("Create movie failed: %v", err)
		}

		playlist, err := repo.GetByRemoteID(5)
		if err != nil {
			t.Fatalf("GetByRemoteID failed: %v", err)
		}

		if err := repo.AddMembership(playlist.ID(), movie.ID()); err != nil {
			t.Fatalf("AddMembership failed: %v", err)
		}
		// duplicate pair is ignored
		if err := repo.AddMembership(playlist.ID(), movie.ID()); err != nil {
			t.Fatalf("Duplicate AddMembership failed: %v", err)
		}

		memberIDs, err := repo.Memberships(playlist.ID())
		if err != nil {
			t.Fatalf("Memberships failed: %v", err)
		}
		if len(memberIDs) != 1 || memberIDs[0] != movie.ID() {
			t.Errorf("Unexpected memberships: %v", memberIDs)
		}
	})

	t.Run("SoftDelete", func(t *testing.T) {
		playlist, _ := repo.GetByRemoteID(5)
		if err := repo.Delete(playlist.ID()); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := repo.GetByRemoteID(5); err == nil {
			t.Error("Expected soft-deleted playlist to be hidden")
		}
	})
}
