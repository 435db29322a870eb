// Package services contains typed HTTP gateways for the external
// collaborators: the Spotify Web API and the companion analysis backend.
//
// Gateways are pure request/response wrappers. They hold no session
// state; the access token is passed per call.
package services
