// ============================================================================
// voztype - Spanish speech to English text
// ============================================================================
//
// Package:     vad
// Description: WebRTC VAD detector
// License:     MIT
// ============================================================================

package vad

import (
	"fmt"

	webrtcvad "github.com/maxhawkins/go-webrtcvad"
)

// WebRTCVAD detects speech using the WebRTC voice activity detector.
type WebRTCVAD struct {
	vad        *webrtcvad.VAD
	sampleRate int
	mode       int
}

// NewWebRTCVAD creates a detector for the configured sample rate and mode.
func NewWebRTCVAD(cfg Config) (*WebRTCVAD, error) {
	v, err := webrtcvad.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create WebRTC VAD: %w", err)
	}

	mode := cfg.Mode
	if mode < 0 {
		mode = 0
	}
	if mode > 3 {
		mode = 3
	}
	if err := v.SetMode(mode); err != nil {
		return nil, fmt.Errorf("failed to set VAD mode: %w", err)
	}

	switch cfg.SampleRate {
	case 8000, 16000, 32000, 48000:
	default:
		return nil, fmt.Errorf("invalid sample rate %d for WebRTC VAD", cfg.SampleRate)
	}

	return &WebRTCVAD{
		vad:        v,
		sampleRate: cfg.SampleRate,
		mode:       mode,
	}, nil
}

// Process reports whether any 10ms frame in the chunk contains speech.
func (w *WebRTCVAD) Process(samples []float32) (bool, error) {
	pcm := make([]int16, len(samples))
	for i, s := range samples {
		if s > 1.0 {
			s = 1.0
		}
		if s < -1.0 {
			s = -1.0
		}
		pcm[i] = int16(s * 32767)
	}

	frameSize := w.sampleRate / 100 // 10ms

	if len(pcm) < frameSize {
		padded := make([]int16, frameSize)
		copy(padded, pcm)
		pcm = padded
	}

	for i := 0; i+frameSize <= len(pcm); i += frameSize {
		frame := int16ToBytes(pcm[i : i+frameSize])
		active, err := w.vad.Process(w.sampleRate, frame)
		if err != nil {
			return false, fmt.Errorf("VAD processing failed: %w", err)
		}
		if active {
			return true, nil
		}
	}
	return false, nil
}

// Close releases resources. The WebRTC VAD has none.
func (w *WebRTCVAD) Close() error {
	return nil
}

// int16ToBytes converts samples to little-endian bytes.
func int16ToBytes(samples []int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		out[i*2] = byte(s)
		out[i*2+1] = byte(s >> 8)
	}
	return out
}
