// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for playlist analysis:
//  1. [PlaylistListView] : Browse and select Spotify playlists
//  2. [ConfirmView] : Confirm the analysis request
//  3. [AnalyzeView] : Monitor real-time progress updates
//  4. [ResultView] : Display the AI-generated summary
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the AnalysisSession, providing non-blocking status reporting while the analysis runs.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
