// ============================================================================
// voztype - Spanish speech to English text
// ============================================================================
//
// Package:     enhance
// Description: Tests for model output validation
// License:     MIT
// ============================================================================

package enhance

import (
	"testing"
)

func TestCleanResponse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "strips wrapping quotes",
			input: `"The build is ready."`,
			want:  "The build is ready.",
		},
		{
			name:  "strips label prefix",
			input: "English: The build is ready.",
			want:  "The build is ready.",
		},
		{
			name:  "nested quotes and label",
			input: `"Improved: all tests pass"`,
			want:  "all tests pass",
		},
		{
			name:  "plain text untouched",
			input: "Nothing to fix here.",
			want:  "Nothing to fix here.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanResponse(tt.input)
			if got != tt.want {
				t.Errorf("CleanResponse(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateEnhancement(t *testing.T) {
	original := "I want to upload the file to the repository today"

	tests := []struct {
		name      string
		candidate string
		wantOK    bool
	}{
		{
			name:      "good rewrite accepted",
			candidate: "I want to upload the file to the repository today.",
			wantOK:    true,
		},
		{
			name:      "empty rejected",
			candidate: "",
			wantOK:    false,
		},
		{
			name:      "too short rejected",
			candidate: "ok",
			wantOK:    false,
		},
		{
			name:      "role marker rejected",
			candidate: "assistant: I want to upload the file to the repository today",
			wantOK:    false,
		},
		{
			name:      "leading label stripped and accepted",
			candidate: "English: I want to upload the file to the repository today.",
			wantOK:    true,
		},
		{
			name:      "label leaking mid text rejected",
			candidate: "I want to upload the file Translation: to the repository today",
			wantOK:    false,
		},
		{
			name:      "duplicated opening rejected",
			candidate: "I want to upload the file I want to upload the file to the repository",
			wantOK:    false,
		},
		{
			name:      "spanish contamination rejected",
			candidate: "I want que upload porque the file está to pero repository como today",
			wantOK:    false,
		},
		{
			name:      "far too long rejected",
			candidate: "I want to upload the file to the repository today and also I should mention that repositories are a wonderful invention of modern software engineering practice",
			wantOK:    false,
		},
		{
			name:      "unrelated text rejected",
			candidate: "Completely different sentence about nothing relevant whatsoever honestly",
			wantOK:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ValidateEnhancement(original, tt.candidate)
			if ok != tt.wantOK {
				t.Errorf("ValidateEnhancement(%q) ok = %v, want %v", tt.candidate, ok, tt.wantOK)
			}
		})
	}
}

func TestValidateCleanup(t *testing.T) {
	original := "quiero subir el archivo al repositorio"

	tests := []struct {
		name      string
		candidate string
		wantOK    bool
	}{
		{
			name:      "good cleanup accepted",
			candidate: "Quiero subir el archivo al repositorio.",
			wantOK:    true,
		},
		{
			name:      "empty rejected",
			candidate: "",
			wantOK:    false,
		},
		{
			name:      "role marker rejected",
			candidate: "assistant: quiero subir el archivo",
			wantOK:    false,
		},
		{
			name:      "excessive length rejected",
			candidate: "Quiero subir el archivo al repositorio y además quiero explicar con mucho detalle por qué los repositorios son tan importantes para el desarrollo moderno",
			wantOK:    false,
		},
		{
			name:      "too many lines rejected",
			candidate: "uno\ndos\ntres\ncuatro",
			wantOK:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ValidateCleanup(original, tt.candidate)
			if ok != tt.wantOK {
				t.Errorf("ValidateCleanup(%q) ok = %v, want %v", tt.candidate, ok, tt.wantOK)
			}
		})
	}
}
