// ============================================================================
// voztype - Spanish speech to English text
// ============================================================================
//
// Package:     models
// Description: Tests for model discovery and recommendation
// License:     MIT
// ============================================================================

package models

import (
	"os"
	"path/filepath"
	"testing"
)

func writeModelFolder(t *testing.T, dir, id string, weightName string, weightSize int) {
	t.Helper()
	path := filepath.Join(dir, id)
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"config.json", "tokenizer.json", "tokenizer_config.json"} {
		if err := os.WriteFile(filepath.Join(path, name), []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if weightName != "" {
		if err := os.WriteFile(filepath.Join(path, weightName), make([]byte, weightSize), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestScanFindsCompleteFolders(t *testing.T) {
	dir := t.TempDir()
	writeModelFolder(t, dir, "qwen-3b", "model.safetensors", 1024)
	writeModelFolder(t, dir, "gemma-2b", "weights.gguf", 2048)

	// incomplete: no weights
	writeModelFolder(t, dir, "broken", "", 0)

	// incomplete: missing tokenizer
	incomplete := filepath.Join(dir, "half")
	os.MkdirAll(incomplete, 0o755)
	os.WriteFile(filepath.Join(incomplete, "config.json"), []byte("{}"), 0o644)
	os.WriteFile(filepath.Join(incomplete, "model.bin"), make([]byte, 64), 0o644)

	registry := NewRegistry(dir)
	if err := registry.Scan(); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	list := registry.List()
	if len(list) != 2 {
		t.Fatalf("List() returned %d models, want 2", len(list))
	}
	if list[0].ID != "gemma-2b" || list[1].ID != "qwen-3b" {
		t.Errorf("unexpected ids: %s, %s", list[0].ID, list[1].ID)
	}
}

func TestScanMissingDirectory(t *testing.T) {
	registry := NewRegistry(filepath.Join(t.TempDir(), "does-not-exist"))
	if err := registry.Scan(); err != nil {
		t.Fatalf("Scan() on missing directory should not fail, got %v", err)
	}
	if len(registry.List()) != 0 {
		t.Error("missing directory should yield no models")
	}
}

func TestScanAppliesProfiles(t *testing.T) {
	dir := t.TempDir()
	writeModelFolder(t, dir, "qwen-3b", "model.safetensors", 1024)

	profiles := `
qwen-3b:
  name: Qwen 2.5 3B Instruct
  min_ram_gb: 6
  quality: 4
  speed: 3
`
	if err := os.WriteFile(filepath.Join(dir, "profiles.yaml"), []byte(profiles), 0o644); err != nil {
		t.Fatal(err)
	}

	registry := NewRegistry(dir)
	if err := registry.Scan(); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	m, err := registry.Get("qwen-3b")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if m.Name != "Qwen 2.5 3B Instruct" {
		t.Errorf("Name = %q, want profile name", m.Name)
	}
	if m.MinRAMGB != 6 || m.Quality != 4 || m.SpeedRating != 3 {
		t.Errorf("profile metadata not applied: %+v", m)
	}
}

func TestGetUnknownModel(t *testing.T) {
	registry := NewRegistry(t.TempDir())
	registry.Scan()

	_, err := registry.Get("nope")
	if err == nil {
		t.Fatal("Get() should fail for an unknown model")
	}
}

func TestRecommend(t *testing.T) {
	dir := t.TempDir()
	writeModelFolder(t, dir, "big", "model.safetensors", 64)
	writeModelFolder(t, dir, "small", "model.safetensors", 64)

	profiles := `
big:
  min_ram_gb: 24
  quality: 5
  speed: 2
small:
  min_ram_gb: 4
  quality: 3
  speed: 4
`
	if err := os.WriteFile(filepath.Join(dir, "profiles.yaml"), []byte(profiles), 0o644); err != nil {
		t.Fatal(err)
	}

	registry := NewRegistry(dir)
	if err := registry.Scan(); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	tests := []struct {
		name    string
		ramGB   float64
		wantID  string
		wantErr bool
	}{
		{name: "plenty of memory picks best", ramGB: 32, wantID: "big"},
		{name: "limited memory picks what fits", ramGB: 8, wantID: "small"},
		{name: "nothing fits", ramGB: 2, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := registry.Recommend(tt.ramGB)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Recommend() should fail")
				}
				return
			}
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			if m.ID != tt.wantID {
				t.Errorf("Recommend(%.0f) = %s, want %s", tt.ramGB, m.ID, tt.wantID)
			}
		})
	}
}
