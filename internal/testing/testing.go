// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/nafisuddinn/spotify-ai-analysis/internal/models"
)

// MockSpotify is a configurable test double for [services.SpotifyAPI].
//
// Each operation returns the configured func's result, or a zero value
// when unset, and counts its invocations.
type MockSpotify struct {
	ProfileFunc   func(ctx context.Context, token string) (*models.UserProfile, error)
	PlaylistsFunc func(ctx context.Context, token string) ([]models.Playlist, error)
	TracksFunc    func(ctx context.Context, token, playlistID string) ([]models.Track, error)

	ProfileCalls   int
	PlaylistsCalls int
	TracksCalls    int
}

func (m *MockSpotify) FetchProfile(ctx context.Context, token string) (*models.UserProfile, error) {
	m.ProfileCalls++
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx, token)
	}
	return &models.UserProfile{}, nil
}

func (m *MockSpotify) FetchPlaylists(ctx context.Context, token string) ([]models.Playlist, error) {
	m.PlaylistsCalls++
	if m.PlaylistsFunc != nil {
		return m.PlaylistsFunc(ctx, token)
	}
	return []models.Playlist{}, nil
}

func (m *MockSpotify) FetchTracks(ctx context.Context, token, playlistID string) ([]models.Track, error) {
	m.TracksCalls++
	if m.TracksFunc != nil {
		return m.TracksFunc(ctx, token, playlistID)
	}
	return []models.Track{}, nil
}

// MockBackend is a configurable test double for [services.Backend].
type MockBackend struct {
	LoginURLFunc func(ctx context.Context) (string, error)
	ExchangeFunc func(ctx context.Context, code string) (string, error)
	AnalyzeFunc  func(ctx context.Context, tracks []models.Track) (string, error)

	LoginURLCalls int
	ExchangeCalls int
	AnalyzeCalls  int
}

func (m *MockBackend) LoginURL(ctx context.Context) (string, error) {
	m.LoginURLCalls++
	if m.LoginURLFunc != nil {
		return m.LoginURLFunc(ctx)
	}
	return "https://accounts.spotify.com/authorize", nil
}

func (m *MockBackend) ExchangeCode(ctx context.Context, code string) (string, error) {
	m.ExchangeCalls++
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, code)
	}
	return "mock_token", nil
}

func (m *MockBackend) Analyze(ctx context.Context, tracks []models.Track) (string, error) {
	m.AnalyzeCalls++
	if m.AnalyzeFunc != nil {
		return m.AnalyzeFunc(ctx, tracks)
	}
	return "mock summary", nil
}

// MemoryStore is an in-memory token store satisfying tasks.SessionStore.
//
// Unavailable simulates broken durable storage: Get fails open (absent)
// while previously stored state is retained.
type MemoryStore struct {
	Token       string
	SetErr      error
	Unavailable bool
	SetCalls    int
}

func (s *MemoryStore) Set(token string) error {
	s.SetCalls++
	if s.SetErr != nil {
		return s.SetErr
	}
	s.Token = token
	return nil
}

func (s *MemoryStore) Get() (string, bool) {
	if s.Unavailable || s.Token == "" {
		return "", false
	}
	return s.Token, true
}

func (s *MemoryStore) Clear() error {
	s.Token = ""
	return nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if err == nil && !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return dir
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}
