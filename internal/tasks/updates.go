package tasks

import (
	"fmt"

	"github.com/nafisuddinn/spotify-ai-analysis/internal/models"
)

// ProgressUpdate represents a progress event during a session operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Op      Op     // Operation this update belongs to
	Message string // Human-readable message for display
	Data    any    // Optional operation-specific data for advanced UIs
}

func exchangingUpdate() ProgressUpdate {
	return ProgressUpdate{
		Op:      OpExchange,
		Message: "Exchanging authorization code...",
	}
}

func authenticatedUpdate() ProgressUpdate {
	return ProgressUpdate{
		Op:      OpExchange,
		Message: "Login successful",
	}
}

func fetchProfileUpdate() ProgressUpdate {
	return ProgressUpdate{
		Op:      OpProfile,
		Message: "Fetching your profile...",
	}
}

func profileLoadedUpdate(profile *models.UserProfile) ProgressUpdate {
	return ProgressUpdate{
		Op:      OpProfile,
		Message: fmt.Sprintf("Welcome, %s", profile.DisplayName),
		Data:    profile,
	}
}

func fetchPlaylistsUpdate() ProgressUpdate {
	return ProgressUpdate{
		Op:      OpPlaylists,
		Message: "Fetching your playlists...",
	}
}

func playlistsLoadedUpdate(playlists []models.Playlist) ProgressUpdate {
	return ProgressUpdate{
		Op:      OpPlaylists,
		Message: fmt.Sprintf("Found %d playlists", len(playlists)),
		Data:    playlists,
	}
}

func fetchTracksUpdate(playlist models.Playlist) ProgressUpdate {
	return ProgressUpdate{
		Op:      OpAnalyze,
		Message: fmt.Sprintf("Fetching tracks for '%s'...", playlist.Name),
	}
}

func analyzingUpdate(trackCount int) ProgressUpdate {
	return ProgressUpdate{
		Op:      OpAnalyze,
		Message: fmt.Sprintf("Analyzing %d tracks...", trackCount),
	}
}

func analyzedUpdate(result *models.AnalysisResult) ProgressUpdate {
	return ProgressUpdate{
		Op:      OpAnalyze,
		Message: "Analysis complete",
		Data:    result,
	}
}
