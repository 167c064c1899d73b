// ============================================================================
// voztype - Spanish speech to English text
// ============================================================================
//
// Package:     translate
// Description: Tests for the HTTP translator
// License:     MIT
// ============================================================================

package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTranslate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/translate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req translateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Source != "es" || req.Target != "en" || req.Format != "text" {
			t.Errorf("unexpected request %+v", req)
		}
		json.NewEncoder(w).Encode(translateResponse{TranslatedText: " hello world "})
	}))
	defer srv.Close()

	tr := NewHTTPTranslator(Config{ServerURL: srv.URL, Source: "es", Target: "en"})

	got, err := tr.Translate(context.Background(), "hola mundo")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if got != "hello world" {
		t.Errorf("Translate() = %q, want trimmed %q", got, "hello world")
	}
}

func TestTranslateEmptyInput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for empty input")
	}))
	defer srv.Close()

	tr := NewHTTPTranslator(Config{ServerURL: srv.URL, Source: "es", Target: "en"})

	got, err := tr.Translate(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if got != "" {
		t.Errorf("Translate() = %q, want empty", got)
	}
}

func TestTranslateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	tr := NewHTTPTranslator(Config{ServerURL: srv.URL, Source: "es", Target: "en"})
	if _, err := tr.Translate(context.Background(), "hola"); err == nil {
		t.Fatal("expected an error from a 500 response")
	}
}

func TestHealthCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/languages" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	tr := NewHTTPTranslator(Config{ServerURL: srv.URL})
	if err := tr.HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck() error = %v", err)
	}
}
