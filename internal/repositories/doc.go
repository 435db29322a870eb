// Package repositories provides the persistence layer for session state.
//
// The only persisted state is the current Spotify access token, held in a
// single SQLite row keyed by a fixed session key.
package repositories
