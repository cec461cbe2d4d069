// package services defines clients for the catalog backend and the movie-search API
package services

import (
	"context"

	"github.com/tobyfell/movx/internal/models"
)

// Catalog defines the operations the catalog backend exposes.
//
// Authenticated operations take the bearer token explicitly; attaching it to
// the request is the client's concern, deciding whether one exists is the
// caller's.
type Catalog interface {
	// Login exchanges email/password for a credential. No retries.
	Login(ctx context.Context, email, password string) (*models.Credential, error)

	// Register creates an account and returns its first credential.
	Register(ctx context.Context, username, email, password string) (*models.Credential, error)

	ListMovies(ctx context.Context, token string) ([]models.Movie, error)
	CreateMovie(ctx context.Context, token string, input models.MovieInput) (*models.Movie, error)
	DeleteMovie(ctx context.Context, token string, id int) error

	ListPlaylists(ctx context.Context, token string) ([]models.Playlist, error)
	CreatePlaylist(ctx context.Context, token, name string) (*models.Playlist, error)
	// GetPlaylist returns the playlist with its movie memberships populated.
	GetPlaylist(ctx context.Context, token string, id int) (*models.Playlist, error)
	UpdatePlaylist(ctx context.Context, token string, id int, name string) (*models.Playlist, error)
	DeletePlaylist(ctx context.Context, token string, id int) error

	// AddMovieToPlaylist associates one movie with one playlist.
	AddMovieToPlaylist(ctx context.Context, token string, movieID, playlistID int) (*models.Membership, error)
	// RemoveMovieFromPlaylist dissolves one association by composite key.
	RemoveMovieFromPlaylist(ctx context.Context, token string, playlistID, movieID int) (*models.Membership, error)
}

// Searcher defines the read-only movie-search API surface.
type Searcher interface {
	// Search queries by term (the vendor's "s" parameter).
	Search(ctx context.Context, term string) (*models.SearchPage, error)

	// Detail fetches a single movie by exact id (the vendor's "i" parameter).
	Detail(ctx context.Context, imdbID string) (*models.MovieDetail, error)
}
