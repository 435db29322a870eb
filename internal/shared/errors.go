package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authentication errors
	ErrNotAuthenticated   = fmt.Errorf("not authenticated")
	ErrAuthExchangeFailed = fmt.Errorf("authorization code exchange failed")
	ErrTimeout            = fmt.Errorf("operation timed out")

	// API and service errors
	ErrUpstream           = fmt.Errorf("upstream request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrAnalysisFailed     = fmt.Errorf("playlist analysis failed")
	ErrAnalysisInFlight   = fmt.Errorf("analysis already in progress")

	// ErrNoPlaylists marks a well-formed response that lacks the playlist
	// collection. Informational, not a hard failure.
	ErrNoPlaylists = fmt.Errorf("no playlists found")

	// Input validation errors
	ErrNoSelection     = fmt.Errorf("no playlist selected")
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
