// ============================================================================
// voztype - Spanish speech to English text
// ============================================================================
//
// Package:     config
// Description: TOML configuration with defaults and persistence
// License:     MIT
// ============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the complete application configuration
type Config struct {
	General     GeneralConfig     `toml:"general"`
	Audio       AudioConfig       `toml:"audio"`
	Whisper     WhisperConfig     `toml:"whisper"`
	Translation TranslationConfig `toml:"translation"`
	LLM         LLMConfig         `toml:"llm"`
	Hotkeys     HotkeysConfig     `toml:"hotkeys"`
	Injection   InjectionConfig   `toml:"injection"`
	History     HistoryConfig     `toml:"history"`
	Logging     LoggingConfig     `toml:"logging"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	DataDir string `toml:"data_dir"`
}

// AudioConfig holds audio capture settings
type AudioConfig struct {
	SampleRate         int     `toml:"sample_rate"`
	Channels           int     `toml:"channels"`
	BufferSize         int     `toml:"buffer_size"`
	InputDevice        string  `toml:"input_device"`
	SilenceThreshold   float64 `toml:"silence_threshold"`
	SilenceDurationS   float64 `toml:"silence_duration_s"`
	MinSpeechS         float64 `toml:"min_speech_s"`
	MaxDurationS       float64 `toml:"max_duration_s"`
	NormalizeUtterance bool    `toml:"normalize"`
}

// WhisperConfig holds speech-to-text settings
type WhisperConfig struct {
	ModelPath      string `toml:"model_path"`
	Language       string `toml:"language"`
	Binary         string `toml:"binary"`
	ServerURL      string `toml:"server_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// TranslationConfig holds translation server settings
type TranslationConfig struct {
	ServerURL      string `toml:"server_url"`
	Source         string `toml:"source"`
	Target         string `toml:"target"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// LLMConfig holds enhancement settings
type LLMConfig struct {
	Enabled            bool   `toml:"enabled"`
	ServerURL          string `toml:"server_url"`
	Model              string `toml:"model"`
	ModelsDir          string `toml:"models_dir"`
	EnhanceTranslation bool   `toml:"enhance_translation"`
	CleanSpanish       bool   `toml:"clean_spanish"`
	TimeoutSeconds     int    `toml:"timeout_seconds"`
}

// HotkeysConfig holds global hotkey bindings
type HotkeysConfig struct {
	Record        string `toml:"record"`
	ToggleEnabled string `toml:"toggle_enabled"`
}

// InjectionConfig holds text injection settings
type InjectionConfig struct {
	Method         string `toml:"method"` // auto, paste, type, clipboard
	MaxTypeLen     int    `toml:"max_type_len"`
	RestoreDelayMs int    `toml:"restore_delay_ms"`
}

// HistoryConfig holds utterance history settings
type HistoryConfig struct {
	Enabled    bool   `toml:"enabled"`
	Path       string `toml:"path"`
	MaxEntries int    `toml:"max_entries"`
}

// LoggingConfig holds log output settings
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"`
}

// DefaultConfig returns the default configuration. Every key a config file
// may omit gets its value from here.
func DefaultConfig() Config {
	dataDir := defaultDataDir()

	return Config{
		General: GeneralConfig{
			DataDir: dataDir,
		},
		Audio: AudioConfig{
			SampleRate:         16000,
			Channels:           1,
			BufferSize:         512,
			InputDevice:        "default",
			SilenceThreshold:   0.01,
			SilenceDurationS:   2.0,
			MinSpeechS:         0.5,
			MaxDurationS:       30.0,
			NormalizeUtterance: true,
		},
		Whisper: WhisperConfig{
			ModelPath:      filepath.Join(dataDir, "whisper", "ggml-medium.bin"),
			Language:       "es",
			ServerURL:      "http://localhost:8000",
			TimeoutSeconds: 60,
		},
		Translation: TranslationConfig{
			ServerURL:      "http://localhost:5000",
			Source:         "es",
			Target:         "en",
			TimeoutSeconds: 30,
		},
		LLM: LLMConfig{
			Enabled:            true,
			ServerURL:          "http://localhost:11434",
			Model:              "qwen2.5:3b-instruct",
			ModelsDir:          filepath.Join(dataDir, "models"),
			EnhanceTranslation: true,
			CleanSpanish:       true,
			TimeoutSeconds:     30,
		},
		Hotkeys: HotkeysConfig{
			Record:        "ctrl+shift+r",
			ToggleEnabled: "ctrl+shift+e",
		},
		Injection: InjectionConfig{
			Method:         "auto",
			MaxTypeLen:     200,
			RestoreDelayMs: 500,
		},
		History: HistoryConfig{
			Enabled:    true,
			Path:       filepath.Join(dataDir, "history.db"),
			MaxEntries: 100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File:   filepath.Join(dataDir, "voztype.log"),
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "voztype", "config.toml")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "data"
	}
	return filepath.Join(home, ".local", "share", "voztype")
}

// Load reads the configuration from path. A missing file yields the defaults;
// keys missing from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Save writes the configuration back to path, creating directories as needed.
// Last writer wins; there is no merge.
func Save(cfg Config, path string) error {
	if path == "" {
		path = DefaultPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

// Validate checks the configuration for values the rest of the system cannot
// work with.
func (c *Config) Validate() error {
	switch c.Audio.SampleRate {
	case 8000, 16000, 32000, 48000:
	default:
		return fmt.Errorf("audio.sample_rate must be 8000, 16000, 32000 or 48000, got %d", c.Audio.SampleRate)
	}

	if c.Audio.Channels != 1 {
		return fmt.Errorf("audio.channels must be 1 (mono), got %d", c.Audio.Channels)
	}

	if c.Audio.MaxDurationS <= 0 {
		return fmt.Errorf("audio.max_duration_s must be positive, got %v", c.Audio.MaxDurationS)
	}

	if c.Audio.SilenceDurationS <= 0 {
		return fmt.Errorf("audio.silence_duration_s must be positive, got %v", c.Audio.SilenceDurationS)
	}

	switch c.Injection.Method {
	case "auto", "paste", "type", "clipboard":
	default:
		return fmt.Errorf("injection.method must be auto, paste, type or clipboard, got %q", c.Injection.Method)
	}

	return nil
}
