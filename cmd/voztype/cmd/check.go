// ============================================================================
// voztype - Spanish speech to English text
// ============================================================================
//
// Package:     cmd
// Description: Probe the local services voztype depends on
// License:     MIT
// ============================================================================

package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"voztype/internal/enhance"
	"voztype/internal/translate"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check whether the local services are reachable",
	Long: `Probes the translation server, the Ollama server and the whisper
model file, and reports what a recording would run into.

Examples:
  voztype check`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ok := true

	if _, err := os.Stat(cfg.Whisper.ModelPath); err != nil {
		fmt.Printf("whisper model:      missing (%s)\n", cfg.Whisper.ModelPath)
		fmt.Printf("                    will fall back to %s\n", cfg.Whisper.ServerURL)
	} else {
		fmt.Printf("whisper model:      ok (%s)\n", cfg.Whisper.ModelPath)
	}

	translator := translate.NewHTTPTranslator(translate.Config{
		ServerURL:      cfg.Translation.ServerURL,
		Source:         cfg.Translation.Source,
		Target:         cfg.Translation.Target,
		TimeoutSeconds: cfg.Translation.TimeoutSeconds,
	})
	if err := translator.HealthCheck(ctx); err != nil {
		fmt.Printf("translation server: unreachable (%v)\n", err)
		ok = false
	} else {
		fmt.Printf("translation server: ok (%s)\n", cfg.Translation.ServerURL)
	}

	if cfg.LLM.Enabled {
		client := enhance.NewOllamaClient(enhance.OllamaConfig{
			BaseURL:        cfg.LLM.ServerURL,
			Model:          cfg.LLM.Model,
			TimeoutSeconds: cfg.LLM.TimeoutSeconds,
		})
		if err := client.HealthCheck(ctx); err != nil {
			fmt.Printf("ollama server:      unreachable (%v)\n", err)
			fmt.Println("                    enhancement will be skipped")
		} else {
			fmt.Printf("ollama server:      ok (%s, model %s)\n", cfg.LLM.ServerURL, cfg.LLM.Model)
		}
	} else {
		fmt.Println("ollama server:      disabled")
	}

	if !ok {
		return fmt.Errorf("required services unavailable")
	}
	fmt.Println("\nall required services reachable")
	return nil
}
