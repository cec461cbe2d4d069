package stores

import (
	"context"
	"sync"

	"github.com/tobyfell/movx/internal/models"
	"github.com/tobyfell/movx/internal/services"
	"github.com/tobyfell/movx/internal/shared"
)

// PlaylistStore owns the set of playlists and their movie memberships.
//
// Membership operations deliberately keep their asymmetric shapes: AddMovie
// fans one movie out to many playlists, RemoveMovie dissolves one composite
// association. Neither touches the held items; callers refetch to observe
// membership changes.
type PlaylistStore struct {
	mu       sync.Mutex
	api      services.Catalog
	session  CredentialSource
	notifier shared.Notifier
	items    []models.Playlist
}

// NewPlaylistStore creates a playlist store. A nil notifier falls back to logging.
func NewPlaylistStore(api services.Catalog, session CredentialSource, notifier shared.Notifier) *PlaylistStore {
	if notifier == nil {
		notifier = shared.NewLogNotifier(nil)
	}

	return &PlaylistStore{
		api:      api,
		session:  session,
		notifier: notifier,
	}
}

// Items returns a copy of the held playlists.
func (s *PlaylistStore) Items() []models.Playlist {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]models.Playlist, len(s.items))
	copy(items, s.items)
	return items
}

// Fetch replaces the held items with the backend's list, wholesale.
func (s *PlaylistStore) Fetch(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.session.Token()
	if !ok {
		return notAuthenticated(s.notifier)
	}

	playlists, err := s.api.ListPlaylists(ctx, token)
	if err != nil {
		return containError(s.notifier, err, "Failed to fetch playlists.")
	}

	s.items = playlists
	return nil
}

// Add creates a playlist from a name and appends the backend's record.
func (s *PlaylistStore) Add(ctx context.Context, name string) (*models.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.session.Token()
	if !ok {
		return nil, notAuthenticated(s.notifier)
	}

	playlist, err := s.api.CreatePlaylist(ctx, token, name)
	if err != nil {
		return nil, containError(s.notifier, err, "Failed to add playlist.")
	}

	s.items = append(s.items, *playlist)
	s.notifier.Success("Playlist added successfully!")

	return playlist, nil
}

// Get fetches one playlist with its movies and hands it straight to the
// caller. Read-through: the held items are not consulted or updated.
func (s *PlaylistStore) Get(ctx context.Context, id int) (*models.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.session.Token()
	if !ok {
		return nil, notAuthenticated(s.notifier)
	}

	playlist, err := s.api.GetPlaylist(ctx, token, id)
	if err != nil {
		return nil, containError(s.notifier, err, "Failed to fetch playlist.")
	}

	return playlist, nil
}

// Update renames a playlist and replaces the matching entry's fields in
// place, preserving its position.
func (s *PlaylistStore) Update(ctx context.Context, id int, name string) (*models.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.session.Token()
	if !ok {
		return nil, notAuthenticated(s.notifier)
	}

	updated, err := s.api.UpdatePlaylist(ctx, token, id, name)
	if err != nil {
		return nil, containError(s.notifier, err, "Failed to update playlist.")
	}

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i] = *updated
			break
		}
	}

	s.notifier.Success("Playlist updated successfully!")
	return updated, nil
}

// Delete removes a playlist by id and drops the matching entry.
func (s *PlaylistStore) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.session.Token()
	if !ok {
		return notAuthenticated(s.notifier)
	}

	if err := s.api.DeletePlaylist(ctx, token, id); err != nil {
		return containError(s.notifier, err, "Failed to delete playlist.")
	}

	kept := s.items[:0]
	for _, p := range s.items {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.items = kept

	s.notifier.Success("Playlist deleted successfully!")
	return nil
}

// AddMovie associates one movie with each of the given playlists, one
// request per playlist id. Stops at the first failure. The held items are
// not mutated; refetch to observe memberships.
func (s *PlaylistStore) AddMovie(ctx context.Context, movieID int, playlistIDs []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.session.Token()
	if !ok {
		return notAuthenticated(s.notifier)
	}

	for _, playlistID := range playlistIDs {
		if _, err := s.api.AddMovieToPlaylist(ctx, token, movieID, playlistID); err != nil {
			return containError(s.notifier, err, "Failed to add movie to playlist.")
		}
	}

	s.notifier.Success("Movie added to playlists!")
	return nil
}

// RemoveMovie dissolves one playlist/movie association. The held items are
// not mutated; callers refetch the single playlist to observe the change.
func (s *PlaylistStore) RemoveMovie(ctx context.Context, playlistID, movieID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.session.Token()
	if !ok {
		return notAuthenticated(s.notifier)
	}

	if _, err := s.api.RemoveMovieFromPlaylist(ctx, token, playlistID, movieID); err != nil {
		return containError(s.notifier, err, "Failed to remove movie from playlist.")
	}

	s.notifier.Success("Movie removed from playlist!")
	return nil
}
