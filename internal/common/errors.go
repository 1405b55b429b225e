// Package common defines shared constants and sentinel errors used across
// the Magic Editor client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Storage errors.
	ErrNotFound = errors.New("not found")

	// Local validation errors.
	ErrEmptyPrompt        = errors.New("prompt cannot be empty")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotAuthenticated   = errors.New("not logged in, run 'magiceditor login' first")
	ErrUnknownTab         = errors.New("unknown tab")
	ErrUnknownTheme       = errors.New("unknown theme")

	// Protocol errors reported by the video poller.
	ErrNoVideoResult = errors.New("video generation completed, but no result was returned")
	ErrVideoTimeout  = errors.New("video generation did not finish in time")

	// Session token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
