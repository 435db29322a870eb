package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/nafisuddinn/spotify-ai-analysis/internal/formatter"
	"github.com/nafisuddinn/spotify-ai-analysis/internal/shared"
	"github.com/urfave/cli/v3"
)

// token returns the stored access token or ErrNotAuthenticated.
func (r *Runner) token() (string, error) {
	if r.store == nil {
		return "", fmt.Errorf("%w: run 'spotai setup' first", shared.ErrServiceUnavailable)
	}
	token, ok := r.store.Get()
	if !ok {
		return "", fmt.Errorf("%w: run 'spotai login' first", shared.ErrNotAuthenticated)
	}
	return token, nil
}

// Profile shows the authenticated user's Spotify profile.
func (r *Runner) Profile(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	token, err := r.token()
	if err != nil {
		return err
	}

	r.logger.Info("fetching user profile")

	profile, err := r.spotify.FetchProfile(ctx, token)
	if err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(profile, pretty)
	}

	return r.writePlain("%s", formatter.ProfileToText(profile))
}

// Playlists lists the user's Spotify playlists with an optional limit.
func (r *Runner) Playlists(ctx context.Context, cmd *cli.Command) error {
	limit := cmd.Int("limit")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	token, err := r.token()
	if err != nil {
		return err
	}

	r.logger.Infof("listing playlists with limit %v", limit)

	playlists, err := r.spotify.FetchPlaylists(ctx, token)
	if err != nil && !errors.Is(err, shared.ErrNoPlaylists) {
		return err
	}

	if limit > 0 && limit < len(playlists) {
		playlists = playlists[:limit]
	}

	if useJSON {
		return r.writeJSON(playlists, pretty)
	}

	return r.writePlain("%s", formatter.PlaylistsToText(playlists, ""))
}
