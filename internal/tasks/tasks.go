// package tasks implements long-running catalog operations.
//
// The core type is ExportEngine, which captures the authenticated user's
// movies and playlists into local files and an optional snapshot database.
// Operations emit progress updates via channels for non-blocking status
// reporting to CLI/UI layers.
package tasks

import (
	"github.com/tobyfell/movx/internal/models"
	"github.com/tobyfell/movx/internal/repositories"
	"github.com/tobyfell/movx/internal/services"
)

// PlaylistExportJob carries one fetched playlist to an export worker.
type PlaylistExportJob struct {
	Playlist *models.Playlist
}

// PlaylistExportResult records the outcome of exporting a single playlist.
type PlaylistExportResult struct {
	PlaylistID   int
	PlaylistName string
	MovieCount   int
	Success      bool
	Files        []string
	Error        error
}

// ExportResult contains all data from a full export run.
type ExportResult struct {
	TotalPlaylists    int                    // Playlists attempted
	SuccessfulExports int                    // Playlists exported without error
	FailedExports     int                    // Playlists that failed
	MoviesCaptured    int                    // Movies written to the snapshot database
	OutputDirectory   string                 // Where files were written
	ManifestPath      string                 // Path of the manifest file
	Results           []PlaylistExportResult // Per-playlist outcomes
}

// ExportEngine captures backend state into local files and snapshot rows.
//
// The snapshot repositories are optional; without them the engine writes
// files only.
type ExportEngine struct {
	api       services.Catalog
	movies    *repositories.MovieRepository
	playlists *repositories.PlaylistRepository
}

// NewExportEngine creates an ExportEngine. movies and playlists may be nil to
// disable database capture.
func NewExportEngine(api services.Catalog, movies *repositories.MovieRepository, playlists *repositories.PlaylistRepository) *ExportEngine {
	return &ExportEngine{
		api:       api,
		movies:    movies,
		playlists: playlists,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *ExportEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}
