package main

import (
	"context"
	"fmt"

	"github.com/tobyfell/movx/internal/repositories"
	"github.com/tobyfell/movx/internal/shared"
	"github.com/tobyfell/movx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes a starter config.toml.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("output")

	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	return r.writePlain("✓ Wrote %s\n", path)
}

// SetupDatabase initializes the snapshot database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("db")
	if path == "" {
		path = r.config.Database.Path
	}

	r.logger.Infof("initializing snapshot database at %v", path)

	db, err := shared.NewDatabase(path)
	if err != nil {
		return err
	}
	defer db.Close()

	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		return err
	}

	return r.writePlain("✓ Snapshot database ready at %s\n", path)
}

// ExportRun captures the catalog into local files and the snapshot database.
func (r *Runner) ExportRun(ctx context.Context, cmd *cli.Command) error {
	token, ok := r.session.Token()
	if !ok {
		return shared.ErrNotAuthenticated
	}

	var movieRepo *repositories.MovieRepository
	var playlistRepo *repositories.PlaylistRepository

	if !cmd.Bool("no-db") {
		db, err := shared.NewDatabase(r.config.Database.Path)
		if err != nil {
			return err
		}
		defer db.Close()

		shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

		if err := shared.RunMigrations(db); err != nil {
			return err
		}

		movieRepo = repositories.NewMovieRepository(db)
		playlistRepo = repositories.NewPlaylistRepository(db)
	}

	engine := tasks.NewExportEngine(r.api, movieRepo, playlistRepo)

	opts := tasks.ExportOpts{
		Format:     cmd.String("format"),
		OutputDir:  cmd.String("output"),
		NumWorkers: cmd.Int("workers"),
		RateLimit:  cmd.Float("rate"),
	}

	prog := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for update := range prog {
			r.logger.Info(update.Message, "phase", update.Phase.String())
		}
	}()

	result, err := engine.Run(ctx, prog, token, cmd.IntSlice("playlist"), opts)
	close(prog)
	<-done

	if err != nil {
		return err
	}

	r.writePlainHeader("Export Complete")
	r.writePlain("Playlists: %d exported, %d failed\n", result.SuccessfulExports, result.FailedExports)
	if result.MoviesCaptured > 0 {
		r.writePlain("Movies captured: %d\n", result.MoviesCaptured)
	}
	r.writePlain("Output: %s\n", result.OutputDirectory)
	r.writePlain("Manifest: %s\n", result.ManifestPath)

	if result.FailedExports > 0 {
		for _, res := range result.Results {
			if !res.Success {
				r.writePlain("  ✗ %s: %v\n", res.PlaylistName, res.Error)
			}
		}
		return fmt.Errorf("%d playlist export(s) failed", result.FailedExports)
	}

	return nil
}
