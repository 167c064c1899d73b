// ============================================================================
// voztype - Spanish speech to English text
// ============================================================================
//
// Package:     enhance
// Description: Ollama API client for the local enhancement model
// License:     MIT
// ============================================================================

package enhance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// OllamaClient is a client for a local Ollama server.
type OllamaClient struct {
	mu         sync.RWMutex
	baseURL    string
	model      string
	httpClient *http.Client
}

// OllamaConfig holds Ollama client configuration.
type OllamaConfig struct {
	BaseURL        string
	Model          string
	TimeoutSeconds int
}

// DefaultOllamaConfig returns default Ollama configuration.
func DefaultOllamaConfig() OllamaConfig {
	return OllamaConfig{
		BaseURL:        "http://localhost:11434",
		Model:          "qwen2.5:3b-instruct",
		TimeoutSeconds: 30,
	}
}

// NewOllamaClient creates a new Ollama client.
func NewOllamaClient(cfg OllamaConfig) *OllamaClient {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &OllamaClient{
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string         `json:"model"`
	Messages []chatMessage  `json:"messages"`
	Stream   bool           `json:"stream"`
	Options  map[string]any `json:"options,omitempty"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
	Done    bool        `json:"done"`
}

// Chat sends a system+user prompt and returns the model's reply. Generation
// is pinned to low temperature; the rewrites must stay deterministic.
func (c *OllamaClient) Chat(ctx context.Context, system, user string) (string, error) {
	c.mu.RLock()
	model := c.model
	c.mu.RUnlock()

	req := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Stream: false,
		Options: map[string]any{
			"temperature": 0.1,
		},
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base()+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ollama returned %d: %s", resp.StatusCode, string(data))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return chatResp.Message.Content, nil
}

// HealthCheck checks whether the Ollama server is reachable.
func (c *OllamaClient) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base()+"/api/tags", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama unhealthy: status %d", resp.StatusCode)
	}
	return nil
}

// ListModels returns the models the server has available.
func (c *OllamaClient) ListModels(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base()+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	models := make([]string, len(result.Models))
	for i, m := range result.Models {
		models[i] = m.Name
	}
	return models, nil
}

type generateRequest struct {
	Model     string `json:"model"`
	Prompt    string `json:"prompt,omitempty"`
	Stream    bool   `json:"stream"`
	KeepAlive int    `json:"keep_alive"`
}

// Unload asks the server to evict a model from memory immediately. A
// keep_alive of zero releases the weights as soon as the request returns.
func (c *OllamaClient) Unload(ctx context.Context, model string) error {
	return c.generate(ctx, generateRequest{Model: model, Stream: false, KeepAlive: 0})
}

// Warm loads a model into memory so the first utterance is not charged the
// load time.
func (c *OllamaClient) Warm(ctx context.Context, model string) error {
	return c.generate(ctx, generateRequest{Model: model, Stream: false, KeepAlive: -1})
}

func (c *OllamaClient) generate(ctx context.Context, req generateRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base()+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("generate request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama returned %d", resp.StatusCode)
	}
	return nil
}

// SwitchModel unloads the currently selected model, then selects and warms
// the new one. The unload completes before the new model is touched so
// memory use does not stack across switches.
func (c *OllamaClient) SwitchModel(ctx context.Context, model string) error {
	c.mu.Lock()
	previous := c.model
	c.mu.Unlock()

	if previous == model {
		return nil
	}

	if previous != "" {
		if err := c.Unload(ctx, previous); err != nil {
			return fmt.Errorf("failed to unload model %s: %w", previous, err)
		}
	}

	c.mu.Lock()
	c.model = model
	c.mu.Unlock()

	if err := c.Warm(ctx, model); err != nil {
		return fmt.Errorf("failed to load model %s: %w", model, err)
	}
	return nil
}

// Model returns the currently selected model.
func (c *OllamaClient) Model() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.model
}

// SetBaseURL updates the server URL.
func (c *OllamaClient) SetBaseURL(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = url
}

func (c *OllamaClient) base() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}
