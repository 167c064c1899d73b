// ============================================================================
// voztype - Spanish speech to English text
// ============================================================================
//
// Package:     enhance
// Description: LLM-backed text enhancement with output validation
// License:     MIT
// ============================================================================

package enhance

import (
	"context"
	"fmt"
	"strings"
)

// Enhancer improves pipeline text with a local language model. Both methods
// return the input unchanged together with ok=false when the model output
// fails validation, so callers can always use the returned string.
type Enhancer interface {
	// CleanSpanish fixes grammar and dictation artifacts in a Spanish
	// transcript without changing its meaning
	CleanSpanish(ctx context.Context, text string) (string, bool, error)

	// EnhanceTranslation makes a literal English translation read
	// naturally, using the Spanish source for context
	EnhanceTranslation(ctx context.Context, spanish, english string) (string, bool, error)

	// HealthCheck reports whether the model backend is reachable
	HealthCheck(ctx context.Context) error
}

const cleanSpanishSystem = `Eres un corrector de texto dictado en español. ` +
	`Corrige errores gramaticales y de puntuación, elimina muletillas y repeticiones. ` +
	`No cambies el significado, no añadas contenido, no traduzcas. ` +
	`Responde únicamente con el texto corregido.`

const enhanceSystem = `You are an editor for machine-translated text. ` +
	`Rewrite the English translation so it reads naturally, using the Spanish ` +
	`source only to resolve ambiguity. Keep the meaning and length. ` +
	`Respond with the improved English text only.`

// OllamaEnhancer is an Enhancer backed by a local Ollama server.
type OllamaEnhancer struct {
	client *OllamaClient
}

// NewOllamaEnhancer creates an enhancer on top of an Ollama client.
func NewOllamaEnhancer(client *OllamaClient) *OllamaEnhancer {
	return &OllamaEnhancer{client: client}
}

// CleanSpanish asks the model to tidy a Spanish transcript.
func (e *OllamaEnhancer) CleanSpanish(ctx context.Context, text string) (string, bool, error) {
	if strings.TrimSpace(text) == "" {
		return text, false, nil
	}

	reply, err := e.client.Chat(ctx, cleanSpanishSystem, text)
	if err != nil {
		return text, false, fmt.Errorf("cleanup request failed: %w", err)
	}

	cleaned, ok := ValidateCleanup(text, reply)
	if !ok {
		return text, false, nil
	}
	return cleaned, true, nil
}

// EnhanceTranslation asks the model to polish a literal translation.
func (e *OllamaEnhancer) EnhanceTranslation(ctx context.Context, spanish, english string) (string, bool, error) {
	if strings.TrimSpace(english) == "" {
		return english, false, nil
	}

	user := fmt.Sprintf("Spanish source: %s\n\nEnglish translation: %s", spanish, english)
	reply, err := e.client.Chat(ctx, enhanceSystem, user)
	if err != nil {
		return english, false, fmt.Errorf("enhancement request failed: %w", err)
	}

	enhanced, ok := ValidateEnhancement(english, reply)
	if !ok {
		return english, false, nil
	}
	return enhanced, true, nil
}

// HealthCheck probes the Ollama server.
func (e *OllamaEnhancer) HealthCheck(ctx context.Context) error {
	return e.client.HealthCheck(ctx)
}
