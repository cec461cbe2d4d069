package main

import (
	"context"
	"fmt"

	"github.com/tobyfell/movx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Search queries the movie-search API by term, or by exact IMDb id with --id.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	if imdbID := cmd.String("id"); imdbID != "" {
		detail, err := r.searcher.Detail(ctx, imdbID)
		if err != nil {
			return err
		}

		if cmd.Bool("json") {
			return r.writeJSON(detail, cmd.Bool("pretty"))
		}

		r.writePlainHeader(fmt.Sprintf("%s (%s)", detail.Title, detail.Year))
		r.writePlain("Director: %s\n", detail.Director)
		r.writePlain("Genre:    %s\n", detail.Genre)
		r.writePlain("Runtime:  %s\n", detail.Runtime)
		r.writePlain("Rating:   %s\n", detail.ImdbRating)
		r.writePlain("\n%s\n", detail.Plot)
		return nil
	}

	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: query is required", shared.ErrMissingArgument)
	}

	r.logger.Infof("searching for %v", query)

	page, err := r.searcher.Search(ctx, query)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Results for '%s' (%s total)", query, page.TotalResults))
	for _, result := range page.Search {
		r.writePlain("%-11s %-40s %-6s %s\n", result.ImdbID, result.Title, result.Year, result.Type)
	}

	return nil
}
