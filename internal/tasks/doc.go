// Package tasks implements the authentication and analysis orchestration
// flow.
//
// AuthFlow turns a redirect authorization code into a stored access token.
// AnalysisSession sequences the full session: auth, concurrent profile and
// playlist fetches, playlist selection, and the analyze request, deriving a
// single observable status from the set of operations in flight. Long
// operations emit progress updates via channels for non-blocking status
// reporting to CLI/UI layers.
package tasks
