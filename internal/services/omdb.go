// Movie-search API implementation of [Searcher]
//
// The vendor authenticates with an API key query parameter and answers in a
// PascalCase schema with a string "Response" flag instead of HTTP errors.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/tobyfell/movx/internal/models"
	"github.com/tobyfell/movx/internal/shared"
	"golang.org/x/time/rate"
)

const defaultSearchURL = "https://www.omdbapi.com/"

// OMDBClient implements [Searcher] for the external movie-search API.
//
// Requests are throttled with a [rate.Limiter]; the free tier rejects bursts.
type OMDBClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewOMDBClient creates a search client. rps <= 0 defaults to 5 requests per second.
func NewOMDBClient(baseURL, apiKey string, rps float64, client *http.Client) *OMDBClient {
	if baseURL == "" {
		baseURL = defaultSearchURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	if rps <= 0 {
		rps = 5.0
	}

	return &OMDBClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: client,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// get performs a rate-limited GET with the given query parameters and decodes the response.
func (c *OMDBClient) get(ctx context.Context, params url.Values, result any) error {
	if c.apiKey == "" {
		return fmt.Errorf("%w: search api key not configured", shared.ErrMissingCredentials)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter interrupted: %w", err)
	}

	params.Set("apikey", c.apiKey)
	fullURL := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: search API status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// Search queries the API by term.
func (c *OMDBClient) Search(ctx context.Context, term string) (*models.SearchPage, error) {
	if term == "" {
		return nil, fmt.Errorf("%w: empty search term", shared.ErrInvalidInput)
	}

	params := url.Values{}
	params.Set("s", term)

	var page models.SearchPage
	if err := c.get(ctx, params, &page); err != nil {
		return nil, err
	}

	if page.Response == "False" {
		return nil, fmt.Errorf("%w: %s", shared.ErrMovieNotFound, page.Error)
	}

	return &page, nil
}

// Detail fetches a single movie by exact id.
func (c *OMDBClient) Detail(ctx context.Context, imdbID string) (*models.MovieDetail, error) {
	if imdbID == "" {
		return nil, fmt.Errorf("%w: empty movie id", shared.ErrInvalidInput)
	}

	params := url.Values{}
	params.Set("i", imdbID)

	var detail models.MovieDetail
	if err := c.get(ctx, params, &detail); err != nil {
		return nil, err
	}

	if detail.Response == "False" {
		return nil, fmt.Errorf("%w: %s", shared.ErrMovieNotFound, detail.Error)
	}

	return &detail, nil
}
