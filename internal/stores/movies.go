package stores

import (
	"context"
	"sync"

	"github.com/tobyfell/movx/internal/models"
	"github.com/tobyfell/movx/internal/services"
	"github.com/tobyfell/movx/internal/shared"
)

// MovieStore owns the set of movies the user has saved.
//
// Operations serialize behind the store mutex, so a second Fetch cannot
// interleave with one already in flight.
type MovieStore struct {
	mu       sync.Mutex
	api      services.Catalog
	session  CredentialSource
	notifier shared.Notifier
	items    []models.Movie
}

// NewMovieStore creates a movie store. A nil notifier falls back to logging.
func NewMovieStore(api services.Catalog, session CredentialSource, notifier shared.Notifier) *MovieStore {
	if notifier == nil {
		notifier = shared.NewLogNotifier(nil)
	}

	return &MovieStore{
		api:      api,
		session:  session,
		notifier: notifier,
	}
}

// Items returns a copy of the held movie records.
func (s *MovieStore) Items() []models.Movie {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]models.Movie, len(s.items))
	copy(items, s.items)
	return items
}

// Fetch replaces the held items with the backend's list, wholesale.
//
// Without a credential no request is issued and items are left untouched.
// On failure (including 401) items keep their prior value.
func (s *MovieStore) Fetch(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.session.Token()
	if !ok {
		return notAuthenticated(s.notifier)
	}

	movies, err := s.api.ListMovies(ctx, token)
	if err != nil {
		return containError(s.notifier, err, "Failed to fetch movies.")
	}

	s.items = movies
	return nil
}

// Add saves a movie and appends the backend's record to the held items.
func (s *MovieStore) Add(ctx context.Context, input models.MovieInput) (*models.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.session.Token()
	if !ok {
		return nil, notAuthenticated(s.notifier)
	}

	movie, err := s.api.CreateMovie(ctx, token, input)
	if err != nil {
		return nil, containError(s.notifier, err, "Failed to add movie.")
	}

	s.items = append(s.items, *movie)
	s.notifier.Success("Movie added successfully!")

	return movie, nil
}

// Delete removes a saved movie by record id and drops the matching entry.
//
// Deleting an id the server no longer knows is contained like any other
// failure; the held items are not touched.
func (s *MovieStore) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.session.Token()
	if !ok {
		return notAuthenticated(s.notifier)
	}

	if err := s.api.DeleteMovie(ctx, token, id); err != nil {
		return containError(s.notifier, err, "Failed to delete movie.")
	}

	kept := s.items[:0]
	for _, m := range s.items {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	s.items = kept

	s.notifier.Success("Movie deleted successfully!")
	return nil
}
