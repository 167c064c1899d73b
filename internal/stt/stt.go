// ============================================================================
// voztype - Spanish speech to English text
// ============================================================================
//
// Package:     stt
// Description: Speech-to-text interface
// License:     MIT
// ============================================================================

package stt

import (
	"context"
	"errors"
)

// ErrModelNotFound is returned when the configured model file is missing.
var ErrModelNotFound = errors.New("transcription model not found")

// Transcriber converts recorded audio into text.
type Transcriber interface {
	// Transcribe converts audio samples to text
	Transcribe(ctx context.Context, samples []float32) (Result, error)

	// TranscribeFile transcribes audio from a WAV file
	TranscribeFile(ctx context.Context, path string) (Result, error)

	// Close releases resources
	Close() error
}

// Result holds a transcription.
type Result struct {
	// Text is the transcribed text
	Text string

	// Language is the language the model was asked for
	Language string
}

// Config holds STT configuration.
type Config struct {
	// ModelPath is the path to the ggml model file
	ModelPath string

	// Language forces the transcription language ("es" for this app)
	Language string

	// SampleRate is the audio sample rate the samples were captured at
	SampleRate int

	// Binary overrides whisper binary discovery
	Binary string
}

// DefaultConfig returns default STT configuration.
func DefaultConfig() Config {
	return Config{
		Language:   "es",
		SampleRate: 16000,
	}
}
