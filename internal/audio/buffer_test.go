// ============================================================================
// voztype - Spanish speech to English text
// ============================================================================
//
// Package:     audio
// Description: Tests for the utterance buffer
// License:     MIT
// ============================================================================

package audio

import (
	"math"
	"testing"
)

func TestUtteranceBufferTruncatesAtCap(t *testing.T) {
	buf := NewUtteranceBuffer(100)

	if full := buf.Append(make([]float32, 60)); full {
		t.Fatal("buffer should not be full at 60/100")
	}
	if full := buf.Append(make([]float32, 60)); !full {
		t.Fatal("buffer should be full after exceeding the cap")
	}
	if got := buf.Len(); got != 100 {
		t.Errorf("Len() = %d, want 100 (excess dropped)", got)
	}

	// further appends are discarded
	buf.Append(make([]float32, 50))
	if got := buf.Len(); got != 100 {
		t.Errorf("Len() after overflow append = %d, want 100", got)
	}
}

func TestUtteranceBufferClear(t *testing.T) {
	buf := NewUtteranceBuffer(100)
	buf.Append(make([]float32, 100))
	buf.Clear()

	if buf.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", buf.Len())
	}
	if buf.Full() {
		t.Error("cleared buffer should not be full")
	}
	if full := buf.Append(make([]float32, 10)); full {
		t.Error("cleared buffer should accept samples again")
	}
}

func TestUtteranceBufferDuration(t *testing.T) {
	buf := NewUtteranceBuffer(32000)
	buf.Append(make([]float32, 16000))

	if got := buf.DurationSeconds(16000); got != 1.0 {
		t.Errorf("DurationSeconds(16000) = %v, want 1.0", got)
	}
}

func TestNormalize(t *testing.T) {
	buf := NewUtteranceBuffer(10)
	buf.Append([]float32{0.1, -0.3, 0.2})
	buf.Normalize()

	samples := buf.Get()
	var peak float64
	for _, s := range samples {
		if a := math.Abs(float64(s)); a > peak {
			peak = a
		}
	}
	if math.Abs(peak-0.9) > 1e-6 {
		t.Errorf("peak after Normalize = %v, want 0.9", peak)
	}
}

func TestNormalizeSilence(t *testing.T) {
	buf := NewUtteranceBuffer(10)
	buf.Append([]float32{0, 0, 0})
	buf.Normalize()

	for _, s := range buf.Get() {
		if s != 0 {
			t.Fatal("silence must stay at zero")
		}
	}
}

func TestRMS(t *testing.T) {
	tests := []struct {
		name    string
		samples []float32
		want    float64
	}{
		{name: "empty", samples: nil, want: 0},
		{name: "silence", samples: []float32{0, 0, 0}, want: 0},
		{name: "constant", samples: []float32{0.5, 0.5, 0.5, 0.5}, want: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RMS(tt.samples)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("RMS() = %v, want %v", got, tt.want)
			}
		})
	}
}
