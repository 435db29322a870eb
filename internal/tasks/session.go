package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/nafisuddinn/spotify-ai-analysis/internal/models"
	"github.com/nafisuddinn/spotify-ai-analysis/internal/services"
	"github.com/nafisuddinn/spotify-ai-analysis/internal/shared"
)

// AnalysisSession orchestrates the whole client session: authorization,
// the concurrent profile and playlist fetches, playlist selection, and the
// analyze request.
//
// All view state (profile, playlists, selection, result) is guarded by a
// single mutex and replaced whole on update. The observable status is
// derived from the set of operations in flight (see statusTracker), which
// guarantees every operation ends in a non-loading state on every exit
// path.
type AnalysisSession struct {
	spotify services.SpotifyAPI
	backend services.Backend
	store   SessionStore
	auth    *AuthFlow
	logger  *log.Logger
	tracker *statusTracker

	// analyzing fences the analyze sequence: the backend call is charged
	// per request, so a second trigger while one is in flight is rejected
	// rather than queued or raced.
	analyzing atomic.Bool

	mu        sync.Mutex
	profile   *models.UserProfile
	playlists []models.Playlist
	selected  string
	tracks    []models.Track
	result    *models.AnalysisResult
}

// NewAnalysisSession creates a session over the given gateways and store.
func NewAnalysisSession(spotify services.SpotifyAPI, backend services.Backend, store SessionStore, logger *log.Logger) *AnalysisSession {
	return &AnalysisSession{
		spotify: spotify,
		backend: backend,
		store:   store,
		auth:    NewAuthFlow(backend, store, logger),
		logger:  logger,
		tracker: newStatusTracker(),
	}
}

// sendProgress sends a progress update through the channel without blocking.
func (s *AnalysisSession) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Status returns the derived session status snapshot.
func (s *AnalysisSession) Status() Status {
	return s.tracker.Status()
}

// AuthState exposes the state of the underlying auth flow.
func (s *AnalysisSession) AuthState() AuthState {
	return s.auth.State()
}

// Authenticated reports whether a token is currently held.
func (s *AnalysisSession) Authenticated() bool {
	_, ok := s.store.Get()
	return ok
}

// Bootstrap runs the auth flow for a redirect authorization code and, on
// success, kicks off the library load. An empty code is "not mid-login"
// and is a no-op.
func (s *AnalysisSession) Bootstrap(ctx context.Context, code string, progress chan<- ProgressUpdate) error {
	if code == "" {
		return nil
	}

	s.tracker.begin(OpExchange)
	s.sendProgress(progress, exchangingUpdate())

	err := s.auth.Run(ctx, code)
	s.tracker.finish(OpExchange)
	if err != nil {
		s.tracker.fail(OpExchange, "Authentication failed. Please log in again.")
		return err
	}

	s.sendProgress(progress, authenticatedUpdate())
	return s.LoadLibrary(ctx, progress)
}

// LoadLibrary fetches the profile and the playlist collection concurrently.
//
// The two fetches are independent: neither cancels the other, each updates
// its own piece of state on completion, and a failure on one side leaves
// the other side's data visible. The returned error joins whatever failed.
func (s *AnalysisSession) LoadLibrary(ctx context.Context, progress chan<- ProgressUpdate) error {
	token, ok := s.store.Get()
	if !ok {
		return fmt.Errorf("%w: log in first", shared.ErrNotAuthenticated)
	}

	s.tracker.begin(OpProfile)
	s.tracker.begin(OpPlaylists)
	s.sendProgress(progress, fetchProfileUpdate())
	s.sendProgress(progress, fetchPlaylistsUpdate())

	var wg sync.WaitGroup
	var profileErr, playlistsErr error

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer s.tracker.finish(OpProfile)

		profile, err := s.spotify.FetchProfile(ctx, token)
		if err != nil {
			profileErr = err
			s.tracker.fail(OpProfile, "Failed to fetch user profile.")
			return
		}

		s.mu.Lock()
		s.profile = profile
		s.mu.Unlock()
		s.sendProgress(progress, profileLoadedUpdate(profile))
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer s.tracker.finish(OpPlaylists)

		playlists, err := s.spotify.FetchPlaylists(ctx, token)
		if errors.Is(err, shared.ErrNoPlaylists) {
			s.replacePlaylists(playlists)
			s.tracker.setInfo("No playlists found.")
			s.sendProgress(progress, playlistsLoadedUpdate(playlists))
			return
		}
		if err != nil {
			playlistsErr = err
			s.tracker.fail(OpPlaylists, "Failed to fetch playlists.")
			return
		}

		s.replacePlaylists(playlists)
		s.sendProgress(progress, playlistsLoadedUpdate(playlists))
	}()

	wg.Wait()

	return errors.Join(profileErr, playlistsErr)
}

// replacePlaylists swaps in a fresh playlist collection, clearing the
// selection if its id no longer exists.
func (s *AnalysisSession) replacePlaylists(playlists []models.Playlist) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.playlists = playlists

	if s.selected == "" {
		return
	}
	for _, pl := range playlists {
		if pl.ID == s.selected {
			return
		}
	}
	s.selected = ""
}

// Select records the playlist selection. Purely local: no network activity.
func (s *AnalysisSession) Select(playlistID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, pl := range s.playlists {
		if pl.ID == playlistID {
			s.selected = playlistID
			return nil
		}
	}

	return fmt.Errorf("%w: unknown playlist id %q", shared.ErrInvalidArgument, playlistID)
}

// Selected returns the currently selected playlist, if any.
func (s *AnalysisSession) Selected() (models.Playlist, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, pl := range s.playlists {
		if pl.ID == s.selected {
			return pl, true
		}
	}
	return models.Playlist{}, false
}

// Profile returns the fetched user profile, if any.
func (s *AnalysisSession) Profile() *models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// Playlists returns the current playlist collection.
func (s *AnalysisSession) Playlists() []models.Playlist {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playlists
}

// Result returns the live analysis result, if any.
func (s *AnalysisSession) Result() *models.AnalysisResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Tracks returns the tracks submitted with the live analysis, if any.
func (s *AnalysisSession) Tracks() []models.Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracks
}

// Analyze runs the analysis sequence for the selected playlist: track
// fetch, then the backend analyze call.
//
// Validation happens before any network activity: a selection and a stored
// token are both required. The prior result is cleared when the sequence
// starts and replaced only on success. At most one sequence runs at a
// time; a trigger while one is in flight returns ErrAnalysisInFlight and
// issues no request (the backend call is not safely repeatable).
func (s *AnalysisSession) Analyze(ctx context.Context, progress chan<- ProgressUpdate) (*models.AnalysisResult, error) {
	if !s.analyzing.CompareAndSwap(false, true) {
		return nil, shared.ErrAnalysisInFlight
	}
	defer s.analyzing.Store(false)

	playlist, ok := s.Selected()
	if !ok {
		return nil, fmt.Errorf("%w: select a playlist first", shared.ErrNoSelection)
	}

	token, ok := s.store.Get()
	if !ok {
		return nil, fmt.Errorf("%w: log in again", shared.ErrNotAuthenticated)
	}

	s.tracker.begin(OpAnalyze)
	defer s.tracker.finish(OpAnalyze)

	s.mu.Lock()
	s.result = nil
	s.tracks = nil
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.Info("starting analysis", "playlist", playlist.ID)
	}
	s.sendProgress(progress, fetchTracksUpdate(playlist))

	tracks, err := s.spotify.FetchTracks(ctx, token, playlist.ID)
	if err != nil {
		s.tracker.fail(OpAnalyze, "Failed to fetch playlist tracks.")
		return nil, err
	}

	s.sendProgress(progress, analyzingUpdate(len(tracks)))

	summary, err := s.backend.Analyze(ctx, tracks)
	if err != nil {
		s.tracker.fail(OpAnalyze, "Failed to analyze playlist.")
		return nil, err
	}

	result := &models.AnalysisResult{
		Summary:     summary,
		PlaylistID:  playlist.ID,
		TrackCount:  len(tracks),
		GeneratedAt: time.Now(),
	}

	s.mu.Lock()
	s.result = result
	s.tracks = tracks
	s.mu.Unlock()

	s.sendProgress(progress, analyzedUpdate(result))
	return result, nil
}
