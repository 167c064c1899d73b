// ============================================================================
// voztype - Spanish speech to English text
// ============================================================================
//
// Package:     translate
// Description: Machine translation interface
// License:     MIT
// ============================================================================

package translate

import (
	"context"
)

// Translator converts Spanish text into literal English text.
type Translator interface {
	// Translate converts text from the source to the target language
	Translate(ctx context.Context, text string) (string, error)

	// HealthCheck reports whether the translation backend is reachable
	HealthCheck(ctx context.Context) error
}

// Config holds translation settings.
type Config struct {
	// ServerURL is the base URL of the local translation server
	ServerURL string

	// Source is the source language code
	Source string

	// Target is the target language code
	Target string

	// TimeoutSeconds bounds a single translation request
	TimeoutSeconds int
}

// DefaultConfig returns default translation configuration.
func DefaultConfig() Config {
	return Config{
		ServerURL:      "http://localhost:5000",
		Source:         "es",
		Target:         "en",
		TimeoutSeconds: 30,
	}
}
