// Package models defines the data model for the playlist analysis client.
package models
