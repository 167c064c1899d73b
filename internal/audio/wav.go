// ============================================================================
// voztype - Spanish speech to English text
// ============================================================================
//
// Package:     audio
// Description: WAV encoding for model handoff
// License:     MIT
// ============================================================================

package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// WriteWAV writes float32 samples as 16-bit mono PCM to path.
func WriteWAV(path string, samples []float32, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create WAV file: %w", err)
	}
	defer f.Close()

	return EncodeWAV(f, samples, sampleRate)
}

// WAVBytes encodes float32 samples as an in-memory 16-bit mono PCM WAV.
func WAVBytes(samples []float32, sampleRate int) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeWAV(&buf, samples, sampleRate); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeWAV writes a RIFF/WAVE container with 16-bit mono PCM data.
func EncodeWAV(w io.Writer, samples []float32, sampleRate int) error {
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

	const (
		numChannels   = uint16(1)
		bitsPerSample = uint16(16)
	)
	byteRate := uint32(sampleRate) * uint32(numChannels) * uint32(bitsPerSample) / 8
	blockAlign := numChannels * bitsPerSample / 8
	dataSize := uint32(len(pcm) * 2)

	if _, err := w.Write([]byte("RIFF")); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(36+dataSize)); err != nil {
		return err
	}
	if _, err := w.Write([]byte("WAVE")); err != nil {
		return err
	}

	if _, err := w.Write([]byte("fmt ")); err != nil {
		return err
	}
	binary.Write(w, binary.LittleEndian, uint32(16)) // fmt chunk size
	binary.Write(w, binary.LittleEndian, uint16(1))  // PCM
	binary.Write(w, binary.LittleEndian, numChannels)
	binary.Write(w, binary.LittleEndian, uint32(sampleRate))
	binary.Write(w, binary.LittleEndian, byteRate)
	binary.Write(w, binary.LittleEndian, blockAlign)
	binary.Write(w, binary.LittleEndian, bitsPerSample)

	if _, err := w.Write([]byte("data")); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, dataSize); err != nil {
		return err
	}

	return binary.Write(w, binary.LittleEndian, pcm)
}
