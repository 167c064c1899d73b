// ============================================================================
// voztype - Spanish speech to English text
// ============================================================================
//
// Package:     stt
// Description: Tests for whisper output parsing and the HTTP transcriber
// License:     MIT
// ============================================================================

package stt

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParseWhisperOutput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "strips timestamps",
			input: "[00:00:00.000 --> 00:00:02.500]  hola mundo\n[00:00:02.500 --> 00:00:04.000]  cómo estás\n",
			want:  "hola mundo cómo estás",
		},
		{
			name:  "plain lines pass through",
			input: "hola mundo\n",
			want:  "hola mundo",
		},
		{
			name:  "blank lines dropped",
			input: "\n\nhola\n\n",
			want:  "hola",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "bracket without arrow kept",
			input: "[música] hola\n",
			want:  "[música] hola",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseWhisperOutput(tt.input)
			if got != tt.want {
				t.Errorf("ParseWhisperOutput(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestWhisperHTTPTranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/audio/transcriptions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("language"); got != "es" {
			t.Errorf("language = %q, want es", got)
		}
		if got := r.Header.Get("Content-Type"); got != "audio/wav" {
			t.Errorf("content type = %q, want audio/wav", got)
		}
		json.NewEncoder(w).Encode(map[string]string{"text": "hola mundo"})
	}))
	defer srv.Close()

	tr := NewWhisperHTTP(srv.URL, Config{Language: "es", SampleRate: 16000})
	defer tr.Close()

	result, err := tr.Transcribe(context.Background(), make([]float32, 1600))
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if result.Text != "hola mundo" {
		t.Errorf("Text = %q, want hola mundo", result.Text)
	}
	if result.Language != "es" {
		t.Errorf("Language = %q, want es", result.Language)
	}
}

func TestWhisperHTTPServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	tr := NewWhisperHTTP(srv.URL, Config{Language: "es"})
	if _, err := tr.Transcribe(context.Background(), make([]float32, 160)); err == nil {
		t.Fatal("expected an error from a 503 response")
	}
}
