package core

import (
	"errors"
)

var (
	// ErrUnsupportedCommand is returned for slash commands outside the supported set
	ErrUnsupportedCommand = errors.New("unsupported command")

	// ErrInvalidPayload marks interaction payloads or round-tripped button values that could not be decoded
	ErrInvalidPayload = errors.New("invalid payload")

	// ErrNotConfigured is returned by optional integrations that were not configured at startup
	ErrNotConfigured = errors.New("not configured")
)

// IsUnsupportedCommandError checks if an error is caused by an unsupported slash command
func IsUnsupportedCommandError(err error) bool {
	return errors.Is(err, ErrUnsupportedCommand)
}

// IsInvalidPayloadError checks if an error is caused by a malformed payload
func IsInvalidPayloadError(err error) bool {
	return errors.Is(err, ErrInvalidPayload)
}

// IsNotConfiguredError checks if an error comes from an integration that is switched off
func IsNotConfiguredError(err error) bool {
	return errors.Is(err, ErrNotConfigured)
}
