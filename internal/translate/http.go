// ============================================================================
// voztype - Spanish speech to English text
// ============================================================================
//
// Package:     translate
// Description: HTTP client for a local opus-mt translation server
// License:     MIT
// ============================================================================

package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPTranslator talks to a LibreTranslate-compatible server hosting an
// opus-mt class model.
type HTTPTranslator struct {
	baseURL string
	source  string
	target  string
	client  *http.Client
}

// NewHTTPTranslator creates a translator client.
func NewHTTPTranslator(cfg Config) *HTTPTranslator {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &HTTPTranslator{
		baseURL: strings.TrimRight(cfg.ServerURL, "/"),
		source:  cfg.Source,
		target:  cfg.Target,
		client:  &http.Client{Timeout: timeout},
	}
}

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
}

// Translate sends text to the /translate endpoint.
func (t *HTTPTranslator) Translate(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	body, err := json.Marshal(translateRequest{
		Q:      text,
		Source: t.source,
		Target: t.target,
		Format: "text",
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := t.baseURL + "/translate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("translation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("translation server returned %d: %s", resp.StatusCode, string(data))
	}

	var payload translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode translation response: %w", err)
	}

	return strings.TrimSpace(payload.TranslatedText), nil
}

// HealthCheck probes the server's language listing.
func (t *HTTPTranslator) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"/languages", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("translation server unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("translation server unhealthy: status %d", resp.StatusCode)
	}
	return nil
}
