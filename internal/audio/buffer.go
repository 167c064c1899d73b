// ============================================================================
// voztype - Spanish speech to English text
// ============================================================================
//
// Package:     audio
// Description: Utterance buffer with bounded duration
// License:     MIT
// ============================================================================

package audio

import (
	"math"
	"sync"
)

// UtteranceBuffer collects the samples of one recording. It is bounded: once
// maxSamples is reached, further appends are discarded and Full reports true,
// so a runaway recording is truncated at the configured maximum instead of
// growing without limit.
type UtteranceBuffer struct {
	mu         sync.RWMutex
	samples    []float32
	maxSamples int
}

// NewUtteranceBuffer creates a buffer capped at maxSamples. A cap of zero or
// less means ten seconds at 16kHz.
func NewUtteranceBuffer(maxSamples int) *UtteranceBuffer {
	if maxSamples <= 0 {
		maxSamples = DefaultSampleRate * 10
	}
	return &UtteranceBuffer{
		samples:    make([]float32, 0, maxSamples),
		maxSamples: maxSamples,
	}
}

// Append adds samples up to the cap and reports whether the buffer is full
// afterwards. Samples beyond the cap are dropped.
func (b *UtteranceBuffer) Append(samples []float32) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	room := b.maxSamples - len(b.samples)
	if room <= 0 {
		return true
	}
	if len(samples) > room {
		samples = samples[:room]
	}
	b.samples = append(b.samples, samples...)
	return len(b.samples) >= b.maxSamples
}

// Get returns a copy of the buffered samples.
func (b *UtteranceBuffer) Get() []float32 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]float32, len(b.samples))
	copy(out, b.samples)
	return out
}

// Len returns the number of buffered samples.
func (b *UtteranceBuffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.samples)
}

// Full reports whether the cap has been reached.
func (b *UtteranceBuffer) Full() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.samples) >= b.maxSamples
}

// DurationSeconds returns the buffered duration at the given sample rate.
func (b *UtteranceBuffer) DurationSeconds(sampleRate float64) float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if sampleRate == 0 {
		return 0
	}
	return float64(len(b.samples)) / sampleRate
}

// Clear drops the buffered samples, keeping the cap.
func (b *UtteranceBuffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.samples = b.samples[:0]
}

// Normalize scales the buffered samples so the peak sits at 0.9, matching
// what the transcription models were tuned for. Silence is left untouched.
func (b *UtteranceBuffer) Normalize() {
	b.mu.Lock()
	defer b.mu.Unlock()

	var peak float32
	for _, s := range b.samples {
		if a := float32(math.Abs(float64(s))); a > peak {
			peak = a
		}
	}
	if peak == 0 {
		return
	}
	scale := 0.9 / peak
	for i := range b.samples {
		b.samples[i] *= scale
	}
}

// RMS computes the root-mean-square level of a chunk. The recording
// controller uses it for the amplitude-based silence threshold.
func RMS(samples []float32) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += float64(s) * float64(s)
	}
	return math.Sqrt(sum / float64(len(samples)))
}
