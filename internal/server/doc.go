// Package server provides HTTP routing, middleware, and the authorization
// callback capture used during login.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Callback Capture
//
// [CallbackHandler] receives the Spotify authorization redirect on localhost.
//
// It validates the state parameter (CSRF protection) and hands the raw
// authorization code back through a channel. The code-for-token exchange
// itself happens server side, on the analysis backend, so the handler never
// touches client secrets.
//
// It only processes one callback to prevent replay attacks.
//
// # Current Usage
//
// When the user runs the login command, a temporary HTTP server starts on
// localhost, captures the redirect, and shuts down once a code (or an
// authorization error) has been delivered.
package server
