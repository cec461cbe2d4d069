// HTTP client for the catalog backend's REST API
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/tobyfell/movx/internal/models"
	"github.com/tobyfell/movx/internal/shared"
	"golang.org/x/oauth2"
)

// APIError is a non-2xx response from the catalog backend.
//
// Detail carries the backend's "detail" field verbatim when present.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("api error: status %d", e.StatusCode)
}

// IsAuthError reports whether the response indicates an expired or rejected credential.
func (e *APIError) IsAuthError() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// Client implements [Catalog] against the backend REST API.
//
// Bearer tokens are attached per request through an [oauth2.StaticTokenSource]
// so the base transport stays reusable across identities.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a catalog client for the given base URL.
func NewClient(baseURL string, client *http.Client) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:8000/api"
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: client,
	}
}

// do performs a request, decoding a JSON result into result when non-nil.
//
// A non-2xx status is returned as *APIError; transport failures wrap
// [shared.ErrAPIRequest].
func (c *Client) do(ctx context.Context, method, path, token string, body, result any) error {
	fullURL := c.baseURL + path

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	httpClient := c.httpClient
	if token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
		httpClient = oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, c.httpClient), src)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var envelope struct {
			Detail string `json:"detail"`
		}
		if err := json.Unmarshal(data, &envelope); err == nil {
			apiErr.Detail = envelope.Detail
		}
		return apiErr
	}

	if result != nil && len(data) > 0 {
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Login exchanges email/password for a credential (POST /auth/login, 200).
func (c *Client) Login(ctx context.Context, email, password string) (*models.Credential, error) {
	body := map[string]string{"email": email, "password": password}

	var cred models.Credential
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", body, &cred); err != nil {
		return nil, err
	}

	return &cred, nil
}

// Register creates an account and returns its first credential (POST /auth/register, 201).
func (c *Client) Register(ctx context.Context, username, email, password string) (*models.Credential, error) {
	body := map[string]string{"username": username, "email": email, "password": password}

	var cred models.Credential
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", body, &cred); err != nil {
		return nil, err
	}

	return &cred, nil
}

// ListMovies retrieves the user's saved movies (GET /movies).
func (c *Client) ListMovies(ctx context.Context, token string) ([]models.Movie, error) {
	var movies []models.Movie
	if err := c.do(ctx, http.MethodGet, "/movies", token, nil, &movies); err != nil {
		return nil, err
	}

	return movies, nil
}

// CreateMovie saves a movie (POST /movies, 201).
func (c *Client) CreateMovie(ctx context.Context, token string, input models.MovieInput) (*models.Movie, error) {
	var movie models.Movie
	if err := c.do(ctx, http.MethodPost, "/movies", token, input, &movie); err != nil {
		return nil, err
	}

	return &movie, nil
}

// DeleteMovie removes a saved movie by record id.
//
// The backend answers 204 from some call paths and 200 from others; any 2xx
// counts as success.
func (c *Client) DeleteMovie(ctx context.Context, token string, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/movies/%d", id), token, nil, nil)
}

// ListPlaylists retrieves the user's playlists (GET /playlists).
func (c *Client) ListPlaylists(ctx context.Context, token string) ([]models.Playlist, error) {
	var playlists []models.Playlist
	if err := c.do(ctx, http.MethodGet, "/playlists", token, nil, &playlists); err != nil {
		return nil, err
	}

	return playlists, nil
}

// CreatePlaylist creates a playlist from a name alone (POST /playlists, 201).
func (c *Client) CreatePlaylist(ctx context.Context, token, name string) (*models.Playlist, error) {
	body := map[string]string{"name": name}

	var playlist models.Playlist
	if err := c.do(ctx, http.MethodPost, "/playlists", token, body, &playlist); err != nil {
		return nil, err
	}

	return &playlist, nil
}

// GetPlaylist retrieves a playlist with its movies (GET /playlists/{id}).
func (c *Client) GetPlaylist(ctx context.Context, token string, id int) (*models.Playlist, error) {
	var playlist models.Playlist
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/playlists/%d", id), token, nil, &playlist); err != nil {
		return nil, err
	}

	return &playlist, nil
}

// UpdatePlaylist renames a playlist (PUT /playlists/{id}) and returns the updated record.
func (c *Client) UpdatePlaylist(ctx context.Context, token string, id int, name string) (*models.Playlist, error) {
	body := map[string]string{"name": name}

	var playlist models.Playlist
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/playlists/%d", id), token, body, &playlist); err != nil {
		return nil, err
	}

	return &playlist, nil
}

// DeletePlaylist removes a playlist by id (DELETE /playlists/{id}).
func (c *Client) DeletePlaylist(ctx context.Context, token string, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/playlists/%d", id), token, nil, nil)
}

// AddMovieToPlaylist associates one movie with one playlist
// (POST /playlists/add/{movieID} with both ids in the body).
func (c *Client) AddMovieToPlaylist(ctx context.Context, token string, movieID, playlistID int) (*models.Membership, error) {
	body := models.Membership{PlaylistID: playlistID, MovieID: movieID}

	var membership models.Membership
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/playlists/add/%d", movieID), token, body, &membership); err != nil {
		return nil, err
	}

	return &membership, nil
}

// RemoveMovieFromPlaylist dissolves an association by composite key
// (DELETE /playlists/{playlistID}/movies/{movieID}).
func (c *Client) RemoveMovieFromPlaylist(ctx context.Context, token string, playlistID, movieID int) (*models.Membership, error) {
	var membership models.Membership
	path := fmt.Sprintf("/playlists/%d/movies/%d", playlistID, movieID)
	if err := c.do(ctx, http.MethodDelete, path, token, nil, &membership); err != nil {
		return nil, err
	}

	return &membership, nil
}
