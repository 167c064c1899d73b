// ============================================================================
// voztype - Spanish speech to English text
// ============================================================================
//
// Package:     vad
// Description: Voice activity detection and silence tracking
// License:     MIT
// ============================================================================

package vad

import (
	"time"
)

// Detector decides whether a chunk of audio contains speech.
type Detector interface {
	// Process processes float32 samples and returns whether speech is detected
	Process(samples []float32) (bool, error)

	// Close releases resources
	Close() error
}

// Config holds VAD configuration
type Config struct {
	// SampleRate is the audio sample rate (8000, 16000, 32000 or 48000)
	SampleRate int

	// Mode is the WebRTC aggressiveness (0-3, higher filters more)
	Mode int

	// EnergyThreshold is the RMS level below which the energy detector
	// treats a chunk as silence
	EnergyThreshold float64

	// SilenceDuration is how long silence must last to end an utterance
	SilenceDuration time.Duration

	// MinSpeechDuration is the minimum speech length considered valid
	MinSpeechDuration time.Duration
}

// DefaultConfig returns default VAD configuration
func DefaultConfig() Config {
	return Config{
		SampleRate:        16000,
		Mode:              2,
		EnergyThreshold:   0.01,
		SilenceDuration:   2 * time.Second,
		MinSpeechDuration: 500 * time.Millisecond,
	}
}

// SpeechState is a snapshot of the tracker.
type SpeechState struct {
	IsSpeaking      bool
	SpeechStarted   time.Time
	LastSpeech      time.Time
	SilenceDuration time.Duration
	SpeechDuration  time.Duration
}

// SpeechTracker accumulates per-chunk VAD verdicts into utterance-level
// state: when speech began, how long the current pause has lasted and
// whether the recording should end.
type SpeechTracker struct {
	config        Config
	state         SpeechState
	speechStarted bool
	silenceStart  time.Time
}

// NewSpeechTracker creates a tracker with the given thresholds.
func NewSpeechTracker(cfg Config) *SpeechTracker {
	return &SpeechTracker{config: cfg}
}

// Update feeds one VAD verdict into the tracker.
func (t *SpeechTracker) Update(isSpeech bool) SpeechState {
	return t.updateAt(isSpeech, time.Now())
}

func (t *SpeechTracker) updateAt(isSpeech bool, now time.Time) SpeechState {
	if isSpeech {
		if !t.speechStarted {
			t.speechStarted = true
			t.state.SpeechStarted = now
			t.state.IsSpeaking = true
		}
		t.state.LastSpeech = now
		t.state.SilenceDuration = 0
		t.silenceStart = time.Time{}
		t.state.SpeechDuration = now.Sub(t.state.SpeechStarted)
		return t.state
	}

	if t.speechStarted {
		if t.silenceStart.IsZero() {
			t.silenceStart = now
		}
		t.state.SilenceDuration = now.Sub(t.silenceStart)
		if t.state.SilenceDuration >= t.config.SilenceDuration {
			t.state.IsSpeaking = false
		}
	}
	return t.state
}

// ShouldEndRecording reports whether the silence threshold has been reached
// after enough speech was captured.
func (t *SpeechTracker) ShouldEndRecording() bool {
	return t.speechStarted &&
		t.state.SilenceDuration >= t.config.SilenceDuration &&
		t.state.SpeechDuration >= t.config.MinSpeechDuration
}

// IsValidSpeech reports whether enough speech was captured to bother the
// transcriber with.
func (t *SpeechTracker) IsValidSpeech() bool {
	return t.state.SpeechDuration >= t.config.MinSpeechDuration
}

// Reset clears the tracker for the next utterance.
func (t *SpeechTracker) Reset() {
	t.state = SpeechState{}
	t.speechStarted = false
	t.silenceStart = time.Time{}
}

// State returns the current snapshot.
func (t *SpeechTracker) State() SpeechState {
	return t.state
}

// SetSilenceDuration updates the silence threshold at runtime.
func (t *SpeechTracker) SetSilenceDuration(d time.Duration) {
	t.config.SilenceDuration = d
}
