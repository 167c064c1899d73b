// ============================================================================
// voztype - Spanish speech to English text
// ============================================================================
//
// Package:     models
// Description: Discovery and selection of local enhancement models
// License:     MIT
// ============================================================================

package models

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrModelNotFound reports a model id that is not in the registry.
var ErrModelNotFound = errors.New("model not found")

// Model describes one discovered model folder.
type Model struct {
	// ID is the folder name, used to select the model
	ID string

	// Name is the human-readable name from the profile, or the ID
	Name string

	// Path is the absolute folder path
	Path string

	// SizeGB is the total size of the weight files
	SizeGB float64

	// MinRAMGB is the memory the profile says the model needs
	MinRAMGB float64

	// Quality is a coarse profile rating, higher is better
	Quality int

	// SpeedRating is a coarse profile rating, higher is faster
	SpeedRating int
}

// profile is one entry in an optional profiles.yaml next to the model
// folders. It supplies metadata discovery cannot infer from the files.
type profile struct {
	Name     string  `yaml:"name"`
	MinRAMGB float64 `yaml:"min_ram_gb"`
	Quality  int     `yaml:"quality"`
	Speed    int     `yaml:"speed"`
}

// Required files for a folder to count as a usable model.
var requiredFiles = []string{
	"config.json",
	"tokenizer.json",
	"tokenizer_config.json",
}

var weightExtensions = map[string]bool{
	".safetensors": true,
	".bin":         true,
	".gguf":        true,
}

// Registry scans a directory for model folders and answers selection
// queries.
type Registry struct {
	mu     sync.RWMutex
	dir    string
	models map[string]Model
}

// NewRegistry creates a registry over a models directory.
func NewRegistry(dir string) *Registry {
	return &Registry{
		dir:    dir,
		models: make(map[string]Model),
	}
}

// Scan walks the models directory and rebuilds the registry. Folders
// missing required metadata or weight files are skipped.
func (r *Registry) Scan() error {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if os.IsNotExist(err) {
			r.mu.Lock()
			r.models = make(map[string]Model)
			r.mu.Unlock()
			return nil
		}
		return fmt.Errorf("failed to read models directory: %w", err)
	}

	profiles := loadProfiles(filepath.Join(r.dir, "profiles.yaml"))

	found := make(map[string]Model)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(r.dir, entry.Name())
		m, ok := inspectFolder(entry.Name(), path)
		if !ok {
			continue
		}
		if p, has := profiles[entry.Name()]; has {
			if p.Name != "" {
				m.Name = p.Name
			}
			m.MinRAMGB = p.MinRAMGB
			m.Quality = p.Quality
			m.SpeedRating = p.Speed
		}
		found[m.ID] = m
	}

	r.mu.Lock()
	r.models = found
	r.mu.Unlock()
	return nil
}

func inspectFolder(id, path string) (Model, bool) {
	for _, name := range requiredFiles {
		if _, err := os.Stat(filepath.Join(path, name)); err != nil {
			return Model{}, false
		}
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return Model{}, false
	}

	var weightBytes int64
	hasWeights := false
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if weightExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			hasWeights = true
			if info, err := e.Info(); err == nil {
				weightBytes += info.Size()
			}
		}
	}
	if !hasWeights {
		return Model{}, false
	}

	return Model{
		ID:     id,
		Name:   id,
		Path:   path,
		SizeGB: float64(weightBytes) / (1 << 30),
	}, true
}

func loadProfiles(path string) map[string]profile {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var profiles map[string]profile
	if err := yaml.Unmarshal(data, &profiles); err != nil {
		return nil
	}
	return profiles
}

// List returns all discovered models sorted by ID.
func (r *Registry) List() []Model {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Model, 0, len(r.models))
	for _, m := range r.models {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Get looks up a model by ID.
func (r *Registry) Get(id string) (Model, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.models[id]
	if !ok {
		return Model{}, fmt.Errorf("%w: %s", ErrModelNotFound, id)
	}
	return m, nil
}

// Recommend picks the highest-quality model that fits in the given amount
// of system memory. Models without a profile RAM figure are assumed to need
// twice their weight size.
func (r *Registry) Recommend(availableRAMGB float64) (Model, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var best Model
	bestScore := -1
	for _, m := range r.models {
		need := m.MinRAMGB
		if need == 0 {
			need = m.SizeGB * 2
		}
		if need > availableRAMGB {
			continue
		}
		score := m.Quality*10 + m.SpeedRating
		if score > bestScore {
			best = m
			bestScore = score
		}
	}
	if bestScore < 0 {
		return Model{}, fmt.Errorf("%w: no model fits in %.1f GB", ErrModelNotFound, availableRAMGB)
	}
	return best, nil
}
