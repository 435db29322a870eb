package services

import (
	"context"

	"github.com/nafisuddinn/spotify-ai-analysis/internal/models"
)

// SpotifyAPI defines the read operations consumed from the Spotify Web API.
//
// Every operation requires a non-empty access token and fails with
// [shared.ErrNotAuthenticated] before any network activity otherwise.
type SpotifyAPI interface {
	// FetchProfile retrieves the authenticated user's profile.
	FetchProfile(ctx context.Context, token string) (*models.UserProfile, error)

	// FetchPlaylists retrieves the user's playlists in provider order.
	// A well-formed response without the playlist collection yields an
	// empty slice and [shared.ErrNoPlaylists].
	FetchPlaylists(ctx context.Context, token string) ([]models.Playlist, error)

	// FetchTracks retrieves a playlist's tracks, dropping entries whose
	// track reference is absent (deleted or unavailable tracks).
	FetchTracks(ctx context.Context, token, playlistID string) ([]models.Track, error)
}

// Backend defines the operations consumed from the companion analysis service.
type Backend interface {
	// LoginURL returns the provider authorize URL to redirect the user to.
	LoginURL(ctx context.Context) (string, error)

	// ExchangeCode swaps an authorization code for an access token.
	ExchangeCode(ctx context.Context, code string) (string, error)

	// Analyze submits a track listing and returns the generated summary.
	// The call has an external side effect (an AI inference request) and
	// must never be retried silently.
	Analyze(ctx context.Context, tracks []models.Track) (string, error)
}
