// ============================================================================
// voztype - Spanish speech to English text
// ============================================================================
//
// Package:     stt
// Description: HTTP transcriber for a local faster-whisper server
// License:     MIT
// ============================================================================

package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"voztype/internal/audio"
)

// WhisperHTTP transcribes against an OpenAI-compatible transcription server
// (faster-whisper-server, LocalAI and the like).
type WhisperHTTP struct {
	baseURL    string
	language   string
	sampleRate int
	client     *http.Client
}

// NewWhisperHTTP creates an HTTP transcriber.
func NewWhisperHTTP(baseURL string, cfg Config) *WhisperHTTP {
	sampleRate := cfg.SampleRate
	if sampleRate == 0 {
		sampleRate = 16000
	}
	return &WhisperHTTP{
		baseURL:    baseURL,
		language:   cfg.Language,
		sampleRate: sampleRate,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Transcribe posts the samples as a WAV body.
func (w *WhisperHTTP) Transcribe(ctx context.Context, samples []float32) (Result, error) {
	wav, err := audio.WAVBytes(samples, w.sampleRate)
	if err != nil {
		return Result{}, fmt.Errorf("failed to encode WAV: %w", err)
	}
	return w.post(ctx, bytes.NewReader(wav))
}

// TranscribeFile posts the contents of a WAV file.
func (w *WhisperHTTP) TranscribeFile(ctx context.Context, path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer f.Close()
	return w.post(ctx, f)
}

func (w *WhisperHTTP) post(ctx context.Context, body io.Reader) (Result, error) {
	url := fmt.Sprintf("%s/v1/audio/transcriptions", w.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "audio/wav")

	q := req.URL.Query()
	q.Add("language", w.language)
	req.URL.RawQuery = q.Encode()

	resp, err := w.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("transcription request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return Result{}, fmt.Errorf("transcription server returned %d: %s", resp.StatusCode, string(data))
	}

	var payload struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Result{}, fmt.Errorf("failed to decode transcription response: %w", err)
	}

	return Result{
		Text:     payload.Text,
		Language: w.language,
	}, nil
}

// SetLanguage updates the transcription language.
func (w *WhisperHTTP) SetLanguage(language string) {
	w.language = language
}

// Close releases resources. The HTTP transcriber has none.
func (w *WhisperHTTP) Close() error {
	return nil
}
