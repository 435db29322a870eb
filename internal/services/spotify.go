// Spotify API implementation of [SpotifyAPI]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/nafisuddinn/spotify-ai-analysis/internal/models"
	"github.com/nafisuddinn/spotify-ai-analysis/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const spotifyBaseURL = "https://api.spotify.com/v1"

// Spotify holds roughly 180 requests per rolling 30s window; stay well under.
const spotifyRequestsPerSecond = 5

// SpotifyUser represents a Spotify user profile.
type SpotifyUser struct {
	ID          string         `json:"id"`
	DisplayName string         `json:"display_name"`
	Email       string         `json:"email"`
	Country     string         `json:"country"`
	Images      []SpotifyImage `json:"images"`
}

// SpotifyImage represents an image resource.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Artists []SpotifyArtist `json:"artists"`
	URI     string          `json:"uri"`
}

type simplePlaylistTracks struct {
	Total int `json:"total"`
}

// SpotifySimplePlaylist represents a simplified playlist object (used in lists).
type SpotifySimplePlaylist struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Public      bool                 `json:"public"`
	Tracks      simplePlaylistTracks `json:"tracks"`
	Images      []SpotifyImage       `json:"images"`
	URI         string               `json:"uri"`
}

// SpotifyPaginatedPlaylists represents a paginated response of playlists.
//
// Items is a pointer so a response missing the collection field entirely is
// distinguishable from an empty collection.
type SpotifyPaginatedPlaylists struct {
	Items *[]SpotifySimplePlaylist `json:"items"`
	Total int                      `json:"total"`
}

// SpotifyPlaylistTrack represents a track within a playlist context.
//
// Track is nil for deleted or regionally unavailable entries.
type SpotifyPlaylistTrack struct {
	AddedAt string        `json:"added_at"`
	Track   *SpotifyTrack `json:"track"`
}

// SpotifyPaginatedTracks represents a paginated response of playlist tracks.
type SpotifyPaginatedTracks struct {
	Items []SpotifyPlaylistTrack `json:"items"`
	Total int                    `json:"total"`
}

// SpotifyService implements [SpotifyAPI] against the Spotify Web API.
//
// Stateless: the bearer token is supplied per call and turned into an
// [oauth2] transport for the request.
type SpotifyService struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewSpotifyService creates a Spotify gateway. An empty baseURL selects
// the public API; tests point it at an httptest server.
func NewSpotifyService(baseURL string, client *http.Client) *SpotifyService {
	if baseURL == "" {
		baseURL = spotifyBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &SpotifyService{
		baseURL:    baseURL,
		httpClient: client,
		limiter:    rate.NewLimiter(rate.Limit(spotifyRequestsPerSecond), 1),
	}
}

// authClient wraps the configured HTTP client with a bearer-token transport.
func (s *SpotifyService) authClient(ctx context.Context, token string) *http.Client {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
}

// doRequest performs an authenticated GET against the Spotify API and
// decodes the JSON body into result.
func (s *SpotifyService) doRequest(ctx context.Context, token, endpoint string, result any) error {
	if token == "" {
		return fmt.Errorf("%w: missing access token", shared.ErrNotAuthenticated)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.authClient(ctx, token).Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode == http.StatusUnauthorized {
			return fmt.Errorf("%w: spotify rejected token (status %d)", shared.ErrNotAuthenticated, resp.StatusCode)
		}
		return fmt.Errorf("%w: spotify API status %d", shared.ErrUpstream, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("%w: failed to decode response: %v", shared.ErrUpstream, err)
		}
	}

	return nil
}

// FetchProfile retrieves the current authenticated user's profile.
func (s *SpotifyService) FetchProfile(ctx context.Context, token string) (*models.UserProfile, error) {
	var user SpotifyUser
	if err := s.doRequest(ctx, token, "/me", &user); err != nil {
		return nil, err
	}

	return &models.UserProfile{
		ID:          user.ID,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		Country:     user.Country,
	}, nil
}

// FetchPlaylists retrieves the current user's playlists in provider order.
//
// A response without the items field yields an empty slice alongside
// [shared.ErrNoPlaylists] so callers can surface it as information rather
// than a failure.
func (s *SpotifyService) FetchPlaylists(ctx context.Context, token string) ([]models.Playlist, error) {
	var response SpotifyPaginatedPlaylists
	if err := s.doRequest(ctx, token, "/me/playlists", &response); err != nil {
		return nil, err
	}

	if response.Items == nil {
		return []models.Playlist{}, shared.ErrNoPlaylists
	}

	playlists := make([]models.Playlist, 0, len(*response.Items))
	for _, sp := range *response.Items {
		pl := models.Playlist{
			ID:          sp.ID,
			Name:        sp.Name,
			Description: sp.Description,
			TrackCount:  sp.Tracks.Total,
			Public:      sp.Public,
		}
		if len(sp.Images) > 0 {
			pl.CoverImageURL = sp.Images[0].URL
		}
		playlists = append(playlists, pl)
	}

	return playlists, nil
}

// FetchTracks retrieves a playlist's tracks and maps them to the analysis
// wire shape. Entries with an absent track reference are dropped.
func (s *SpotifyService) FetchTracks(ctx context.Context, token, playlistID string) ([]models.Track, error) {
	if playlistID == "" {
		return nil, fmt.Errorf("%w: missing playlist id", shared.ErrInvalidArgument)
	}

	var response SpotifyPaginatedTracks
	endpoint := fmt.Sprintf("/playlists/%s/tracks", playlistID)
	if err := s.doRequest(ctx, token, endpoint, &response); err != nil {
		return nil, err
	}

	tracks := make([]models.Track, 0, len(response.Items))
	for _, item := range response.Items {
		if item.Track == nil {
			continue
		}

		track := models.Track{
			Name: item.Track.Name,
			URI:  item.Track.URI,
		}
		if len(item.Track.Artists) > 0 {
			track.Artist = item.Track.Artists[0].Name
		}
		tracks = append(tracks, track)
	}

	return tracks, nil
}
