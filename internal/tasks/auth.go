package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/nafisuddinn/spotify-ai-analysis/internal/services"
	"github.com/nafisuddinn/spotify-ai-analysis/internal/shared"
)

// AuthState enumerates the states of the authorization-code exchange.
type AuthState int

const (
	AuthNoCode AuthState = iota
	AuthExchanging
	AuthAuthenticated
	AuthFailed
)

func (s AuthState) String() string {
	switch s {
	case AuthNoCode:
		return "no_code"
	case AuthExchanging:
		return "exchanging"
	case AuthAuthenticated:
		return "authenticated"
	case AuthFailed:
		return "failed"
	default:
		return ""
	}
}

// SessionStore is the token persistence contract the flow writes to.
//
// Satisfied by [repositories.TokenStore].
type SessionStore interface {
	Set(token string) error
	Get() (string, bool)
	Clear() error
}

// AuthFlow exchanges a redirect authorization code for an access token and
// persists it.
//
// State machine: NoCode → Exchanging → Authenticated | Failed. Both end
// states are terminal for a given code value; a fresh code re-enters
// Exchanging. Recovery from Failed is user-initiated (a new login), never
// an automatic retry.
type AuthFlow struct {
	backend services.Backend
	store   SessionStore
	logger  *log.Logger

	mu       sync.Mutex
	state    AuthState
	lastCode string
	lastErr  error
}

// NewAuthFlow creates an AuthFlow writing to the given store.
func NewAuthFlow(backend services.Backend, store SessionStore, logger *log.Logger) *AuthFlow {
	return &AuthFlow{
		backend: backend,
		store:   store,
		logger:  logger,
		state:   AuthNoCode,
	}
}

// State returns the current flow state.
func (f *AuthFlow) State() AuthState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Run consumes an authorization code and drives the state machine to a
// terminal state. An empty code leaves the flow in NoCode ("not
// mid-login"). Re-running with a code already settled returns the settled
// outcome without a second exchange.
func (f *AuthFlow) Run(ctx context.Context, code string) error {
	if code == "" {
		return nil
	}

	f.mu.Lock()
	if code == f.lastCode && (f.state == AuthAuthenticated || f.state == AuthFailed) {
		err := f.lastErr
		f.mu.Unlock()
		return err
	}
	f.state = AuthExchanging
	f.lastCode = code
	f.lastErr = nil
	f.mu.Unlock()

	if f.logger != nil {
		f.logger.Info("exchanging authorization code")
	}

	token, err := f.backend.ExchangeCode(ctx, code)
	if err != nil {
		return f.settle(fmt.Errorf("code exchange rejected: %w", err))
	}

	if err := f.store.Set(token); err != nil {
		return f.settle(fmt.Errorf("%w: could not persist token: %v", shared.ErrAuthExchangeFailed, err))
	}

	if f.logger != nil {
		f.logger.Info("authenticated", "state", AuthAuthenticated)
	}

	return f.settle(nil)
}

// settle records the terminal state for the current code.
func (f *AuthFlow) settle(err error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastErr = err
	if err != nil {
		f.state = AuthFailed
	} else {
		f.state = AuthAuthenticated
	}

	return err
}
