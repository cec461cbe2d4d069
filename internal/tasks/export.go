package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tobyfell/movx/internal/formatter"
	"github.com/tobyfell/movx/internal/models"
	"github.com/tobyfell/movx/internal/shared"
	"golang.org/x/time/rate"
)

// ExportOpts contains configuration for catalog exports.
type ExportOpts struct {
	Format     string  // Export format: json, csv, markdown, txt
	OutputDir  string  // Base output directory (default: movx_export_{epoch})
	NumWorkers int     // Concurrent workers (default: 5)
	RateLimit  float64 // Requests per second (default: 5)
}

// Run exports the user's catalog concurrently with rate limiting and progress tracking.
//
// Saved movies are captured into the snapshot database first, then playlists
// are fetched through a rate-limited producer and written out by a worker
// pool. Partial failures are recorded per playlist rather than aborting the
// run; a manifest file summarizes the results.
//
// ids limits the run to specific playlist ids; empty means all playlists.
func (e *ExportEngine) Run(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	token string,
	ids []int,
	opts ExportOpts,
) (*ExportResult, error) {
	if e.api == nil {
		return nil, fmt.Errorf("%w: catalog client not initialized", shared.ErrServiceUnavailable)
	}

	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("movx_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &ExportResult{
		OutputDirectory: opts.OutputDir,
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	e.sendProgress(prog, fetchingMoviesUpdate(1, 1))
	movies, err := e.api.ListMovies(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch movies: %v", shared.ErrAPIRequest, err)
	}

	snapshotIDs := make(map[int]string, len(movies))
	for i, movie := range movies {
		snapID, err := e.snapshotMovie(movie)
		if err != nil {
			return nil, fmt.Errorf("failed to capture movie %q: %w", movie.Title, err)
		}
		if snapID != "" {
			snapshotIDs[movie.ID] = snapID
			result.MoviesCaptured++
		}
		e.sendProgress(prog, snapshotUpdate(i+1, len(movies)))
	}

	if len(ids) == 0 {
		e.sendProgress(prog, fetchingPlaylistsUpdate(1, 1))
		playlists, err := e.api.ListPlaylists(ctx, token)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to fetch playlists: %v", shared.ErrAPIRequest, err)
		}
		for _, playlist := range playlists {
			ids = append(ids, playlist.ID)
		}
	}

	result.TotalPlaylists = len(ids)
	result.Results = make([]PlaylistExportResult, 0, len(ids))

	jobs := make(chan PlaylistExportJob, len(ids))
	results := make(chan PlaylistExportResult, len(ids))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, opts)
	}

	go func() {
		defer close(jobs)
		for i, playlistID := range ids {
			select {
			case <-ctx.Done():
				return
			default:
			}

			if err := limiter.Wait(ctx); err != nil {
				return
			}

			playlist, err := e.api.GetPlaylist(ctx, token, playlistID)
			if err != nil {
				results <- PlaylistExportResult{
					PlaylistID:   playlistID,
					PlaylistName: fmt.Sprintf("Unknown (%d)", playlistID),
					Success:      false,
					Error:        fmt.Errorf("failed to fetch playlist: %w", err),
				}
				continue
			}

			if err := e.snapshotPlaylist(playlist, snapshotIDs); err != nil {
				results <- PlaylistExportResult{
					PlaylistID:   playlistID,
					PlaylistName: playlist.Name,
					Success:      false,
					Error:        fmt.Errorf("failed to capture playlist: %w", err),
				}
				continue
			}

			jobs <- PlaylistExportJob{Playlist: playlist}

			e.sendProgress(prog, exportingPlaylistUpdate(i+1, len(ids), playlist.Name))
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			e.sendProgress(prog, exportCompletedUpdate(
				completed,
				len(ids),
				res.PlaylistName,
				len(res.Files),
			))
		} else {
			result.FailedExports++
			e.sendProgress(prog, exportFailedUpdate(
				completed,
				len(ids),
				res.PlaylistName,
				res.Error,
			))
		}
	}

	e.sendProgress(prog, writingManifestUpdate())
	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	if err := formatter.WriteExportManifest(buildManifest(result, opts.Format), manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// snapshotMovie upserts a movie into the snapshot database and returns the row id.
// Returns "" when database capture is disabled.
func (e *ExportEngine) snapshotMovie(movie models.Movie) (string, error) {
	if e.movies == nil {
		return "", nil
	}

	if existing, err := e.movies.GetByRemoteID(movie.ID); err == nil {
		return existing.ID(), nil
	}

	snap := models.NewSnapshotMovie(0, movie)
	if err := e.movies.Create(snap); err != nil {
		return "", err
	}

	return snap.ID(), nil
}

// snapshotPlaylist upserts a playlist and its memberships into the snapshot database.
func (e *ExportEngine) snapshotPlaylist(playlist *models.Playlist, movieSnapIDs map[int]string) error {
	if e.playlists == nil {
		return nil
	}

	snap, err := e.playlists.GetByRemoteID(playlist.ID)
	if err != nil {
		snap = models.NewSnapshotPlaylist(0, *playlist)
		if err := e.playlists.Create(snap); err != nil {
			return err
		}
	}

	for _, movie := range playlist.Movies {
		movieSnapID, ok := movieSnapIDs[movie.ID]
		if !ok {
			movieSnapID, err = e.snapshotMovie(movie)
			if err != nil {
				return err
			}
			movieSnapIDs[movie.ID] = movieSnapID
		}
		if err := e.playlists.AddMembership(snap.ID(), movieSnapID); err != nil {
			return err
		}
	}

	return nil
}

// exportWorker is a worker goroutine that exports playlists from the jobs channel.
func (e *ExportEngine) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan PlaylistExportJob,
	results chan<- PlaylistExportResult,
	opts ExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		results <- e.exportSinglePlaylist(job, opts)
	}
}

// exportSinglePlaylist exports a single playlist to the appropriate format.
func (e *ExportEngine) exportSinglePlaylist(j PlaylistExportJob, opts ExportOpts) PlaylistExportResult {
	result := PlaylistExportResult{
		PlaylistID:   j.Playlist.ID,
		PlaylistName: j.Playlist.Name,
		MovieCount:   len(j.Playlist.Movies),
		Success:      false,
		Files:        []string{},
	}

	switch opts.Format {
	case "csv":
		baseFilepath := filepath.Join(opts.OutputDir, fmt.Sprintf("%d", j.Playlist.ID))
		csvRes, err := formatter.WriteCSVExport(j.Playlist, baseFilepath)
		if err != nil {
			result.Error = fmt.Errorf("CSV export failed: %w", err)
			return result
		}
		result.Files = []string{csvRes.MoviesFile, csvRes.MetadataFile}
		result.Success = true

	case "markdown":
		outputDir := filepath.Join(opts.OutputDir, fmt.Sprintf("%d", j.Playlist.ID))

		var imageURL string
		if len(j.Playlist.Movies) > 0 {
			imageURL = j.Playlist.Movies[0].Poster
		}

		mdRes, err := formatter.WriteMarkdownExport(j.Playlist, outputDir, imageURL)
		if err != nil {
			result.Error = fmt.Errorf("markdown export failed: %w", err)
			return result
		}
		result.Files = mdRes.Files
		result.Success = true

	case "txt":
		txtPath := filepath.Join(opts.OutputDir, fmt.Sprintf("%d_movies.txt", j.Playlist.ID))
		path, err := formatter.WriteTextExport(j.Playlist, txtPath)
		if err != nil {
			result.Error = fmt.Errorf("text export failed: %w", err)
			return result
		}
		result.Files = []string{path}
		result.Success = true

	case "json":
		fallthrough
	default:
		jsonPath := filepath.Join(opts.OutputDir, fmt.Sprintf("%d.json", j.Playlist.ID))
		data, err := shared.MarshalJSON(j.Playlist, true)
		if err != nil {
			result.Error = fmt.Errorf("JSON marshal failed: %w", err)
			return result
		}
		if err := os.WriteFile(jsonPath, data, 0644); err != nil {
			result.Error = fmt.Errorf("JSON write failed: %w", err)
			return result
		}
		result.Files = []string{jsonPath}
		result.Success = true
	}
	return result
}

type manifestEntry struct {
	ID     int      `json:"id"`
	Name   string   `json:"name"`
	Movies int      `json:"movies"`
	Files  []string `json:"files,omitempty"`
	Error  string   `json:"error,omitempty"`
}

type exportManifest struct {
	Format            string          `json:"format"`
	OutputDirectory   string          `json:"output_directory"`
	TotalPlaylists    int             `json:"total_playlists"`
	SuccessfulExports int             `json:"successful_exports"`
	FailedExports     int             `json:"failed_exports"`
	MoviesCaptured    int             `json:"movies_captured"`
	Playlists         []manifestEntry `json:"playlists"`
}

// buildManifest converts an ExportResult into its serializable manifest form.
func buildManifest(result *ExportResult, format string) exportManifest {
	if format == "" {
		format = "json"
	}

	manifest := exportManifest{
		Format:            format,
		OutputDirectory:   result.OutputDirectory,
		TotalPlaylists:    result.TotalPlaylists,
		SuccessfulExports: result.SuccessfulExports,
		FailedExports:     result.FailedExports,
		MoviesCaptured:    result.MoviesCaptured,
		Playlists:         make([]manifestEntry, 0, len(result.Results)),
	}

	for _, res := range result.Results {
		entry := manifestEntry{
			ID:     res.PlaylistID,
			Name:   res.PlaylistName,
			Movies: res.MovieCount,
			Files:  res.Files,
		}
		if res.Error != nil {
			entry.Error = res.Error.Error()
		}
		manifest.Playlists = append(manifest.Playlists, entry)
	}

	return manifest
}
