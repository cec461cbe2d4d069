package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tobyfell/movx/internal/models"
	"github.com/tobyfell/movx/internal/shared"
	"github.com/urfave/cli/v3"
)

// MoviesList fetches the saved movies and prints them.
func (r *Runner) MoviesList(ctx context.Context, cmd *cli.Command) error {
	if err := r.movies.Fetch(ctx); err != nil {
		return err
	}

	items := r.movies.Items()

	if cmd.Bool("json") {
		return r.writeJSON(items, cmd.Bool("pretty"))
	}

	if len(items) == 0 {
		return r.writePlain("No saved movies. Try `movx search` to find some.\n")
	}

	r.writePlainHeader(fmt.Sprintf("Saved Movies (%d)", len(items)))
	for _, movie := range items {
		r.writePlain("%-5d %-11s %-40s %s\n", movie.ID, movie.ImdbID, movie.Title, movie.Year)
	}

	return nil
}

// MoviesAdd saves a movie by IMDb id, filling its fields from the search API.
func (r *Runner) MoviesAdd(ctx context.Context, cmd *cli.Command) error {
	imdbID := cmd.StringArg("imdb-id")
	if imdbID == "" {
		return fmt.Errorf("%w: imdb-id is required", shared.ErrMissingArgument)
	}

	detail, err := r.searcher.Detail(ctx, imdbID)
	if err != nil {
		return err
	}

	movie, err := r.movies.Add(ctx, models.MovieInput{
		ImdbID: detail.ImdbID,
		Title:  detail.Title,
		Year:   detail.Year,
		Type:   detail.Type,
		Poster: detail.Poster,
	})
	if err != nil {
		return err
	}

	return r.writePlain("✓ Saved '%s' (record %d)\n", movie.Title, movie.ID)
}

// MoviesRemove deletes a saved movie by record id.
func (r *Runner) MoviesRemove(ctx context.Context, cmd *cli.Command) error {
	id, err := parseIDArg(cmd, "id")
	if err != nil {
		return err
	}

	if err := r.movies.Delete(ctx, id); err != nil {
		return err
	}

	return r.writePlain("✓ Removed movie %d\n", id)
}

// MoviesOpen opens a saved movie's IMDb page in the system browser.
func (r *Runner) MoviesOpen(ctx context.Context, cmd *cli.Command) error {
	id, err := parseIDArg(cmd, "id")
	if err != nil {
		return err
	}

	if err := r.movies.Fetch(ctx); err != nil {
		return err
	}

	for _, movie := range r.movies.Items() {
		if movie.ID == id {
			url := fmt.Sprintf("https://www.imdb.com/title/%s/", movie.ImdbID)
			r.logger.Infof("opening %v", url)
			return shared.OpenBrowser(url)
		}
	}

	return fmt.Errorf("%w: no saved movie with id %d", shared.ErrMovieNotFound, id)
}

// parseIDArg reads a positional argument as a numeric record id.
func parseIDArg(cmd *cli.Command, name string) (int, error) {
	raw := cmd.StringArg(name)
	if raw == "" {
		return 0, fmt.Errorf("%w: %s is required", shared.ErrMissingArgument, name)
	}

	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be numeric, got %q", shared.ErrInvalidArgument, name, raw)
	}

	return id, nil
}
