// ============================================================================
// voztype - Spanish speech to English text
// ============================================================================
//
// Package:     vad
// Description: Amplitude-threshold fallback detector
// License:     MIT
// ============================================================================

package vad

import (
	"math"
)

// EnergyDetector classifies a chunk as speech when its RMS level exceeds a
// fixed threshold. It is the fallback when the WebRTC detector cannot be
// initialized, and mirrors the plain silence-threshold behavior the settings
// dialog exposes.
type EnergyDetector struct {
	threshold float64
}

// NewEnergyDetector creates a detector with the given RMS threshold.
func NewEnergyDetector(threshold float64) *EnergyDetector {
	if threshold <= 0 {
		threshold = 0.01
	}
	return &EnergyDetector{threshold: threshold}
}

// Process reports whether the chunk's RMS level exceeds the threshold.
func (d *EnergyDetector) Process(samples []float32) (bool, error) {
	if len(samples) == 0 {
		return false, nil
	}
	var sum float64
	for _, s := range samples {
		sum += float64(s) * float64(s)
	}
	rms := math.Sqrt(sum / float64(len(samples)))
	return rms >= d.threshold, nil
}

// Close releases resources. The energy detector has none.
func (d *EnergyDetector) Close() error {
	return nil
}
