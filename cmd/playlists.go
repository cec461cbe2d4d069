package main

import (
	"context"
	"fmt"

	"github.com/tobyfell/movx/internal/shared"
	"github.com/urfave/cli/v3"
)

// PlaylistsList fetches the playlists and prints them.
func (r *Runner) PlaylistsList(ctx context.Context, cmd *cli.Command) error {
	if err := r.playlists.Fetch(ctx); err != nil {
		return err
	}

	items := r.playlists.Items()

	if cmd.Bool("json") {
		return r.writeJSON(items, cmd.Bool("pretty"))
	}

	if len(items) == 0 {
		return r.writePlain("No playlists yet. Try `movx playlists create <name>`.\n")
	}

	r.writePlainHeader(fmt.Sprintf("Playlists (%d)", len(items)))
	for _, playlist := range items {
		r.writePlain("%-5d %s\n", playlist.ID, playlist.Name)
	}

	return nil
}

// PlaylistsCreate creates a playlist from a name.
func (r *Runner) PlaylistsCreate(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: name is required", shared.ErrMissingArgument)
	}

	playlist, err := r.playlists.Add(ctx, name)
	if err != nil {
		return err
	}

	return r.writePlain("✓ Created playlist '%s' (id %d)\n", playlist.Name, playlist.ID)
}

// PlaylistsShow fetches a single playlist with its movies and prints it.
func (r *Runner) PlaylistsShow(ctx context.Context, cmd *cli.Command) error {
	id, err := parseIDArg(cmd, "id")
	if err != nil {
		return err
	}

	playlist, err := r.playlists.Get(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlist, true)
	}

	r.writePlainHeader(fmt.Sprintf("%s (%d movies)", playlist.Name, len(playlist.Movies)))
	for i, movie := range playlist.Movies {
		r.writePlain("%2d. %-40s %s  %s\n", i+1, movie.Title, movie.Year, movie.ImdbID)
	}

	return nil
}

// PlaylistsRename renames a playlist.
func (r *Runner) PlaylistsRename(ctx context.Context, cmd *cli.Command) error {
	id, err := parseIDArg(cmd, "id")
	if err != nil {
		return err
	}

	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: name is required", shared.ErrMissingArgument)
	}

	playlist, err := r.playlists.Update(ctx, id, name)
	if err != nil {
		return err
	}

	return r.writePlain("✓ Renamed playlist %d to '%s'\n", playlist.ID, playlist.Name)
}

// PlaylistsRemove deletes a playlist by id.
func (r *Runner) PlaylistsRemove(ctx context.Context, cmd *cli.Command) error {
	id, err := parseIDArg(cmd, "id")
	if err != nil {
		return err
	}

	if err := r.playlists.Delete(ctx, id); err != nil {
		return err
	}

	return r.writePlain("✓ Deleted playlist %d\n", id)
}

// PlaylistsAddMovie adds one saved movie to each of the given playlists.
func (r *Runner) PlaylistsAddMovie(ctx context.Context, cmd *cli.Command) error {
	movieID := cmd.Int("movie")
	playlistIDs := cmd.IntSlice("playlist")

	if err := r.playlists.AddMovie(ctx, movieID, playlistIDs); err != nil {
		return err
	}

	return r.writePlain("✓ Added movie %d to %d playlist(s)\n", movieID, len(playlistIDs))
}

// PlaylistsRemoveMovie removes one movie from one playlist.
func (r *Runner) PlaylistsRemoveMovie(ctx context.Context, cmd *cli.Command) error {
	movieID := cmd.Int("movie")
	playlistID := cmd.Int("playlist")

	if err := r.playlists.RemoveMovie(ctx, playlistID, movieID); err != nil {
		return err
	}

	return r.writePlain("✓ Removed movie %d from playlist %d\n", movieID, playlistID)
}
