// ============================================================================
// voztype - Spanish speech to English text
// ============================================================================
//
// Package:     stt
// Description: whisper.cpp CLI transcriber
// License:     MIT
// ============================================================================

package stt

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"voztype/internal/audio"
)

// WhisperCLI transcribes by shelling out to a whisper.cpp binary.
type WhisperCLI struct {
	binaryPath string
	modelPath  string
	language   string
	sampleRate int
	tempDir    string
}

// NewWhisperCLI creates a whisper.cpp transcriber. It fails when the binary
// or the model file cannot be found.
func NewWhisperCLI(cfg Config) (*WhisperCLI, error) {
	binaryPath := cfg.Binary
	if binaryPath == "" {
		binaryPath = findWhisperBinary()
	}
	if binaryPath == "" {
		return nil, fmt.Errorf("whisper binary not found")
	}

	if cfg.ModelPath == "" {
		return nil, fmt.Errorf("%w: no model path configured", ErrModelNotFound)
	}
	if _, err := os.Stat(cfg.ModelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrModelNotFound, cfg.ModelPath)
	}

	tempDir, err := os.MkdirTemp("", "voztype-stt-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	sampleRate := cfg.SampleRate
	if sampleRate == 0 {
		sampleRate = 16000
	}

	return &WhisperCLI{
		binaryPath: binaryPath,
		modelPath:  cfg.ModelPath,
		language:   cfg.Language,
		sampleRate: sampleRate,
		tempDir:    tempDir,
	}, nil
}

func findWhisperBinary() string {
	for _, name := range []string{"whisper-cli", "whisper-cpp", "whisper"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	locations := []string{
		"/opt/homebrew/bin/whisper-cli",
		"/usr/local/bin/whisper-cli",
		"/usr/local/bin/whisper",
		"/usr/bin/whisper",
	}
	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}
	return ""
}

// Transcribe writes the samples to a temp WAV and transcribes the file.
func (w *WhisperCLI) Transcribe(ctx context.Context, samples []float32) (Result, error) {
	wavPath := filepath.Join(w.tempDir, fmt.Sprintf("utt_%d.wav", time.Now().UnixNano()))
	if err := audio.WriteWAV(wavPath, samples, w.sampleRate); err != nil {
		return Result{}, fmt.Errorf("failed to write WAV file: %w", err)
	}
	defer os.Remove(wavPath)

	return w.TranscribeFile(ctx, wavPath)
}

// TranscribeFile runs the whisper binary against a WAV file.
func (w *WhisperCLI) TranscribeFile(ctx context.Context, path string) (Result, error) {
	args := []string{
		"--model", w.modelPath,
		"--language", w.language,
		"--no-prints",
		path,
	}

	cmd := exec.CommandContext(ctx, w.binaryPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// Older builds only understand the short flags.
		cmd2 := exec.CommandContext(ctx, w.binaryPath, "-m", w.modelPath, "-l", w.language, "-np", path)
		stdout.Reset()
		stderr.Reset()
		cmd2.Stdout = &stdout
		cmd2.Stderr = &stderr
		if err2 := cmd2.Run(); err2 != nil {
			return Result{}, fmt.Errorf("whisper failed: %w, stderr: %s", err, stderr.String())
		}
	}

	return Result{
		Text:     ParseWhisperOutput(stdout.String()),
		Language: w.language,
	}, nil
}

// ParseWhisperOutput strips the timestamp prefixes whisper.cpp prints and
// joins the remaining lines into one string.
func ParseWhisperOutput(out string) string {
	var clean []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "[") && strings.Contains(line, "-->") {
			if idx := strings.Index(line, "]"); idx != -1 {
				line = strings.TrimSpace(line[idx+1:])
			}
		}
		if line != "" {
			clean = append(clean, line)
		}
	}
	return strings.Join(clean, " ")
}

// SetLanguage updates the transcription language.
func (w *WhisperCLI) SetLanguage(language string) {
	w.language = language
}

// Close removes the temp directory.
func (w *WhisperCLI) Close() error {
	if w.tempDir != "" {
		os.RemoveAll(w.tempDir)
	}
	return nil
}
