package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nafisuddinn/spotify-ai-analysis/internal/shared"
)

func TestSpotifyService(t *testing.T) {
	t.Run("NewSpotifyService", func(t *testing.T) {
		t.Run("With Defaults", func(t *testing.T) {
			srv := NewSpotifyService("", nil)

			if srv.baseURL != spotifyBaseURL {
				t.Errorf("expected public API base URL, got %s", srv.baseURL)
			}
			if srv.httpClient != http.DefaultClient {
				t.Error("expected http.DefaultClient to be used")
			}
			if srv.limiter == nil {
				t.Error("expected rate limiter to be configured")
			}
		})

		t.Run("With Custom BaseURL", func(t *testing.T) {
			srv := NewSpotifyService("http://example.com", nil)
			if srv.baseURL != "http://example.com" {
				t.Errorf("expected custom base URL, got %s", srv.baseURL)
			}
		})

		t.Run("Interface", func(t *testing.T) {
			var _ SpotifyAPI = NewSpotifyService("", nil)
		})
	})

	t.Run("FetchProfile", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/me" {
					t.Errorf("expected path '/me', got %s", r.URL.Path)
				}
				if got := r.Header.Get("Authorization"); got != "Bearer tok1" {
					t.Errorf("expected bearer token header, got %q", got)
				}

				json.NewEncoder(w).Encode(SpotifyUser{
					ID:          "user1",
					DisplayName: "Ann",
					Email:       "ann@example.com",
				})
			}))
			defer server.Close()

			srv := NewSpotifyService(server.URL, nil)
			profile, err := srv.FetchProfile(context.Background(), "tok1")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if profile.DisplayName != "Ann" {
				t.Errorf("expected display name 'Ann', got %s", profile.DisplayName)
			}
			if profile.ID != "user1" {
				t.Errorf("expected id 'user1', got %s", profile.ID)
			}
		})

		t.Run("Missing Token", func(t *testing.T) {
			called := false
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))
			defer server.Close()

			srv := NewSpotifyService(server.URL, nil)
			_, err := srv.FetchProfile(context.Background(), "")

			if !errors.Is(err, shared.ErrNotAuthenticated) {
				t.Errorf("expected ErrNotAuthenticated, got %v", err)
			}
			if called {
				t.Error("expected no network call without a token")
			}
		})

		t.Run("Non-2xx Status", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}))
			defer server.Close()

			srv := NewSpotifyService(server.URL, nil)
			_, err := srv.FetchProfile(context.Background(), "tok1")

			if !errors.Is(err, shared.ErrUpstream) {
				t.Errorf("expected ErrUpstream, got %v", err)
			}
		})

		t.Run("Rejected Token", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			}))
			defer server.Close()

			srv := NewSpotifyService(server.URL, nil)
			_, err := srv.FetchProfile(context.Background(), "expired")

			if !errors.Is(err, shared.ErrNotAuthenticated) {
				t.Errorf("expected ErrNotAuthenticated for 401, got %v", err)
			}
		})

		t.Run("Malformed Body", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			}))
			defer server.Close()

			srv := NewSpotifyService(server.URL, nil)
			_, err := srv.FetchProfile(context.Background(), "tok1")

			if !errors.Is(err, shared.ErrUpstream) {
				t.Errorf("expected ErrUpstream for malformed body, got %v", err)
			}
		})
	})

	t.Run("FetchPlaylists", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/me/playlists" {
					t.Errorf("expected path '/me/playlists', got %s", r.URL.Path)
				}

				w.Write([]byte(`{
					"items": [
						{"id": "p1", "name": "Morning Mix", "tracks": {"total": 12}, "images": [{"url": "http://img/p1.jpg"}]},
						{"id": "p2", "name": "Focus", "public": true, "tracks": {"total": 40}}
					],
					"total": 2
				}`))
			}))
			defer server.Close()

			srv := NewSpotifyService(server.URL, nil)
			playlists, err := srv.FetchPlaylists(context.Background(), "tok1")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(playlists) != 2 {
				t.Fatalf("expected 2 playlists, got %d", len(playlists))
			}
			if playlists[0].ID != "p1" || playlists[1].ID != "p2" {
				t.Error("expected provider order to be preserved")
			}
			if playlists[0].CoverImageURL != "http://img/p1.jpg" {
				t.Errorf("expected cover image URL, got %s", playlists[0].CoverImageURL)
			}
			if playlists[1].CoverImageURL != "" {
				t.Error("expected absent cover image to stay empty")
			}
			if playlists[0].TrackCount != 12 {
				t.Errorf("expected 12 tracks, got %d", playlists[0].TrackCount)
			}
		})

		t.Run("Missing Items Field", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"total": 0}`))
			}))
			defer server.Close()

			srv := NewSpotifyService(server.URL, nil)
			playlists, err := srv.FetchPlaylists(context.Background(), "tok1")

			if !errors.Is(err, shared.ErrNoPlaylists) {
				t.Errorf("expected ErrNoPlaylists, got %v", err)
			}
			if playlists == nil {
				t.Error("expected empty slice, not nil")
			}
			if len(playlists) != 0 {
				t.Errorf("expected no playlists, got %d", len(playlists))
			}
		})

		t.Run("Empty Items Field", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"items": [], "total": 0}`))
			}))
			defer server.Close()

			srv := NewSpotifyService(server.URL, nil)
			playlists, err := srv.FetchPlaylists(context.Background(), "tok1")

			if err != nil {
				t.Errorf("present-but-empty collection is not an error, got %v", err)
			}
			if len(playlists) != 0 {
				t.Errorf("expected no playlists, got %d", len(playlists))
			}
		})
	})

	t.Run("FetchTracks", func(t *testing.T) {
		t.Run("Filters Absent Track References", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if !strings.HasPrefix(r.URL.Path, "/playlists/p2/tracks") {
					t.Errorf("expected track sub-resource path, got %s", r.URL.Path)
				}

				w.Write([]byte(`{
					"items": [
						{"track": {"id": "t1", "name": "Song One", "artists": [{"name": "Artist A"}], "uri": "spotify:track:t1"}},
						{"track": null},
						{"track": {"id": "t3", "name": "Song Three", "artists": [{"name": "Artist C"}], "uri": "spotify:track:t3"}}
					],
					"total": 3
				}`))
			}))
			defer server.Close()

			srv := NewSpotifyService(server.URL, nil)
			tracks, err := srv.FetchTracks(context.Background(), "tok1", "p2")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(tracks) != 2 {
				t.Fatalf("expected 2 tracks after filtering, got %d", len(tracks))
			}
			if tracks[0].Name != "Song One" || tracks[0].Artist != "Artist A" {
				t.Errorf("unexpected first track: %+v", tracks[0])
			}
			if tracks[1].URI != "spotify:track:t3" {
				t.Errorf("unexpected second track URI: %s", tracks[1].URI)
			}
		})

		t.Run("Missing Playlist ID", func(t *testing.T) {
			srv := NewSpotifyService("http://example.invalid", nil)
			_, err := srv.FetchTracks(context.Background(), "tok1", "")

			if !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})

		t.Run("Non-2xx Status", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			}))
			defer server.Close()

			srv := NewSpotifyService(server.URL, nil)
			_, err := srv.FetchTracks(context.Background(), "tok1", "p1")

			if !errors.Is(err, shared.ErrUpstream) {
				t.Errorf("expected ErrUpstream, got %v", err)
			}
		})
	})
}
