// Spotify Web API implementation of [Catalog]
//
// Response types based on https://developer.spotify.com/documentation/web-api/reference/search
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/desertthunder/jukebox/internal/models"
	"github.com/desertthunder/jukebox/internal/shared"
)

const spotifyBaseURL = "https://api.spotify.com/v1"

// SpotifyImage represents an image resource.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// SpotifyArtist represents a simplified Spotify artist.
type SpotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SpotifyAlbum represents a simplified Spotify album.
type SpotifyAlbum struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Images []SpotifyImage `json:"images"`
}

// SpotifyTrack represents a Spotify track. PreviewURL is null for many tracks.
type SpotifyTrack struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Artists    []SpotifyArtist `json:"artists"`
	Album      SpotifyAlbum    `json:"album"`
	DurationMS int             `json:"duration_ms"`
	PreviewURL *string         `json:"preview_url"`
	URI        string          `json:"uri"`
}

// SpotifySearchResponse is the body returned by GET /search?type=track.
type SpotifySearchResponse struct {
	Tracks struct {
		Items  []SpotifyTrack `json:"items"`
		Total  int            `json:"total"`
		Limit  int            `json:"limit"`
		Offset int            `json:"offset"`
		Next   *string        `json:"next"`
	} `json:"tracks"`
}

// CatalogOpts configures a [SpotifyCatalog].
type CatalogOpts struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *log.Logger
	// RateLimit is requests per second. Zero or less disables pacing.
	RateLimit float64
	// Limit is the maximum number of results requested. Zero uses the API default.
	Limit  int
	Market string
}

// SpotifyCatalog implements [Catalog] against the Spotify Web API.
type SpotifyCatalog struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
	limit      int
	market     string
}

// NewSpotifyCatalog creates a catalog client from opts.
func NewSpotifyCatalog(opts CatalogOpts) *SpotifyCatalog {
	if opts.BaseURL == "" {
		opts.BaseURL = spotifyBaseURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}

	return &SpotifyCatalog{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: opts.HTTPClient,
		limiter:    rate.NewLimiter(limit, 1),
		logger:     opts.Logger,
		limit:      opts.Limit,
		market:     opts.Market,
	}
}

// SearchTracks searches for tracks matching query.
func (c *SpotifyCatalog) SearchTracks(ctx context.Context, query, token string) ([]models.Track, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, shared.ErrEmptyQuery
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "track")
	if c.limit > 0 {
		params.Set("limit", strconv.Itoa(c.limit))
	}
	if c.market != "" {
		params.Set("market", c.market)
	}

	var response SpotifySearchResponse
	if err := c.doRequest(ctx, "/search?"+params.Encode(), token, &response); err != nil {
		return nil, err
	}

	tracks := make([]models.Track, 0, len(response.Tracks.Items))
	for _, st := range response.Tracks.Items {
		if st.PreviewURL == nil || *st.PreviewURL == "" {
			continue
		}
		tracks = append(tracks, toTrack(st))
	}

	c.logger.Debug("search complete", "query", query, "total", response.Tracks.Total, "playable", len(tracks))
	return tracks, nil
}

// doRequest performs an authenticated GET request to the Spotify API.
func (c *SpotifyCatalog) doRequest(ctx context.Context, endpoint, token string, result any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("search request failed", "error", err)
		return fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", shared.ErrUnauthorized, apiMessage(resp))
	case resp.StatusCode == http.StatusServiceUnavailable:
		return fmt.Errorf("%w: status %d", shared.ErrServiceUnavailable, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%w: status %d: %s", shared.ErrAPIRequest, resp.StatusCode, apiMessage(resp))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
			return fmt.Errorf("%w: failed to decode response: %v", shared.ErrAPIRequest, err)
		}
		return fmt.Errorf("%w: failed to read response: %v", shared.ErrNetwork, err)
	}

	return nil
}

// apiMessage extracts the message from a Spotify error object, falling back to the status text.
func apiMessage(resp *http.Response) string {
	var body struct {
		Error struct {
			Status  int    `json:"status"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error.Message != "" {
		return body.Error.Message
	}
	return http.StatusText(resp.StatusCode)
}

func toTrack(st SpotifyTrack) models.Track {
	track := models.Track{
		ID:         st.ID,
		Name:       st.Name,
		PreviewURL: models.WithPreviewDuration(*st.PreviewURL),
		Album:      models.Album{Name: st.Album.Name},
	}
	for _, a := range st.Artists {
		track.Artists = append(track.Artists, models.Artist{Name: a.Name})
	}
	for _, img := range st.Album.Images {
		track.Album.Images = append(track.Album.Images, models.Image{URL: img.URL})
	}
	return track
}
