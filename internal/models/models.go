// package models defines the data model for the movx catalog client
package models

import (
	"time"
)

// Model defines the base interface for all persistent models in the export snapshot database.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Update(model T) error                      // Update modifies an existing model in the database
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// User is the identity snapshot the backend issues alongside a token.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Credential is a bearer token plus the identity it was issued for.
//
// Persisted as JSON in a single slot file with a 7-day expiry stamp. ExpiresAt
// governs the slot only; the token itself is opaque to the client.
type Credential struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	User        User      `json:"user"`
	ExpiresAt   time.Time `json:"expires_at,omitzero"`
}

// Movie represents a saved movie record owned by the authenticated user.
//
// Field names follow the backend's wire format.
type Movie struct {
	ID          int       `json:"id"`
	ImdbID      string    `json:"imdbID"`
	Title       string    `json:"title"`
	Year        string    `json:"year"`
	Type        string    `json:"type"`
	Poster      string    `json:"poster"`
	OwnerID     int       `json:"owner_id"`
	CreatedDate time.Time `json:"createdDate,omitzero"`
}

// MovieInput is the body of the save-movie operation, copied from a search result.
type MovieInput struct {
	ImdbID string `json:"imdbID"`
	Title  string `json:"title"`
	Year   string `json:"year"`
	Type   string `json:"type"`
	Poster string `json:"poster"`
}

// Playlist is a named, owned collection of movie memberships.
//
// Movies is populated only by the single-playlist endpoint; list responses
// carry metadata alone.
type Playlist struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	OwnerID     int       `json:"owner_id"`
	CreatedDate time.Time `json:"createdDate,omitzero"`
	Movies      []Movie   `json:"movies,omitempty"`
}

// Membership associates a playlist id and a movie id, managed independently
// of either entity's own record.
type Membership struct {
	PlaylistID int `json:"playlistId"`
	MovieID    int `json:"movieId"`
}

// SearchResult is a single entry from the movie-search API.
// The vendor schema uses PascalCase keys.
type SearchResult struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	ImdbID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

// SearchPage is the movie-search API's response to a term query.
type SearchPage struct {
	Search       []SearchResult `json:"Search"`
	TotalResults string         `json:"totalResults"`
	Response     string         `json:"Response"`
	Error        string         `json:"Error,omitempty"`
}

// MovieDetail is the movie-search API's response to an exact-id query.
type MovieDetail struct {
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Rated      string `json:"Rated"`
	Released   string `json:"Released"`
	Runtime    string `json:"Runtime"`
	Genre      string `json:"Genre"`
	Director   string `json:"Director"`
	Actors     string `json:"Actors"`
	Plot       string `json:"Plot"`
	Poster     string `json:"Poster"`
	ImdbRating string `json:"imdbRating"`
	ImdbID     string `json:"imdbID"`
	Type       string `json:"Type"`
	Response   string `json:"Response"`
	Error      string `json:"Error,omitempty"`
}

// MovieFromSearch copies search-result fields into a save-movie payload.
func MovieFromSearch(r SearchResult) MovieInput {
	return MovieInput{
		ImdbID: r.ImdbID,
		Title:  r.Title,
		Year:   r.Year,
		Type:   r.Type,
		Poster: r.Poster,
	}
}
