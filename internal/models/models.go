package models

import "time"

// UserProfile represents the authenticated Spotify user.
//
// Created once per successful profile fetch and read-only thereafter.
type UserProfile struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email,omitempty"`
	Country     string `json:"country,omitempty"`
}

// Playlist represents a playlist owned by the authenticated user.
//
// The collection order is the provider's order; a re-fetch replaces the
// whole collection rather than merging.
type Playlist struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	CoverImageURL string `json:"cover_image_url,omitempty"`
	TrackCount    int    `json:"track_count"`
	Public        bool   `json:"public"`
}

// Track is the shape submitted to the analysis backend.
//
// Transient: recomputed fresh for each analysis request, never cached.
type Track struct {
	Name   string `json:"name"`
	Artist string `json:"artist"`
	URI    string `json:"uri"`
}

// AnalysisResult holds the AI-generated summary for a playlist.
//
// Exactly one live result exists at a time; a new run clears it before
// submitting and replaces it on success.
type AnalysisResult struct {
	Summary     string    `json:"summary"`
	PlaylistID  string    `json:"playlist_id"`
	TrackCount  int       `json:"track_count"`
	GeneratedAt time.Time `json:"generated_at"`
}
