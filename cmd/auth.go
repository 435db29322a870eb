package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/nafisuddinn/spotify-ai-analysis/internal/server"
	"github.com/nafisuddinn/spotify-ai-analysis/internal/shared"
	"github.com/urfave/cli/v3"
)

// Login runs the browser authorization flow.
//
// Fetches the authorization URL from the backend, starts a local HTTP server
// to capture the redirect, then exchanges the captured code through the
// backend and loads the user's library.
func (r *Runner) Login(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	authURL, err := r.backend.LoginURL(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch authorization URL: %w", err)
	}

	code, err := r.captureCode(ctx, authURL, cmd.Bool("no-browser"))
	if err != nil {
		return err
	}

	if err := r.session.Bootstrap(ctx, code, nil); err != nil {
		return err
	}

	r.writePlainln("✓ Authorization successful")
	if profile := r.session.Profile(); profile != nil {
		r.writePlain("Logged in as %s\n", profile.DisplayName)
	}
	r.writePlain("Found %d playlists. Run 'spotai analyze --id <playlist>' to analyze one.\n", len(r.session.Playlists()))

	return nil
}

// captureCode serves the authorization redirect on localhost and returns the code.
//
// The backend generates and validates the OAuth state embedded in the
// authorization URL, so the local handler only extracts the code.
func (r *Runner) captureCode(ctx context.Context, authURL string, noBrowser bool) (string, error) {
	callbackHandler := server.NewCallbackHandler("")
	router := server.NewBasicRouter()
	router.Use(server.Logging(r.logger))
	router.Handler(callbackHandler)

	serverAddr := r.config.Server.Addr()
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting callback server at %v", serverAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	if noBrowser {
		r.writePlain("Open this URL in your browser:\n%s\n\n", authURL)
	} else {
		r.writePlain("→ Opening browser for Spotify authorization...\n")
		if err := shared.OpenBrowser(authURL); err != nil {
			r.logger.Warnf("failed to open browser automatically %v", err)
			r.writePlainln("⚠ Could not open browser automatically.")
			r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
		}
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	timeout := time.NewTimer(2 * time.Minute)
	defer timeout.Stop()

	var result server.CallbackResult

	select {
	case result = <-callbackHandler.Result():
		// Got result from callback
	case err := <-serverErrors:
		return "", fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return "", fmt.Errorf("%w: authorization timed out after 2 minutes", shared.ErrTimeout)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	if result.Error() != nil {
		return "", fmt.Errorf("authorization failed: %w", result.Error())
	}

	if result.Code == "" {
		return "", fmt.Errorf("%w: no authorization code received", shared.ErrAuthExchangeFailed)
	}

	return result.Code, nil
}

// Logout clears the stored session token.
func (r *Runner) Logout(ctx context.Context, cmd *cli.Command) error {
	if r.store == nil {
		return fmt.Errorf("%w: run 'spotai setup' first", shared.ErrServiceUnavailable)
	}

	if err := r.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	return r.writePlain("✓ Logged out\n")
}
