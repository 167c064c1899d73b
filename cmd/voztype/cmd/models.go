// ============================================================================
// voztype - Spanish speech to English text
// ============================================================================
//
// Package:     cmd
// Description: Inspect local enhancement models
// License:     MIT
// ============================================================================

package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"voztype/internal/enhance"
	"voztype/internal/models"
)

var modelsRemote bool

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List enhancement models",
	Long: `Lists the local enhancement models found in llm.models_dir, or the
models an Ollama server reports with --remote.

Examples:
  voztype models             # scan the models directory
  voztype models --remote    # ask the Ollama server
  voztype models recommend   # pick the best model for this machine`,
	RunE: runModels,
}

var modelsRecommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend a model for this machine",
	RunE:  runModelsRecommend,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
	modelsCmd.AddCommand(modelsRecommendCmd)

	modelsCmd.Flags().BoolVar(&modelsRemote, "remote", false, "query the Ollama server instead of scanning the directory")
}

func runModels(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if modelsRemote {
		client := enhance.NewOllamaClient(enhance.OllamaConfig{
			BaseURL:        cfg.LLM.ServerURL,
			TimeoutSeconds: cfg.LLM.TimeoutSeconds,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		names, err := client.ListModels(ctx)
		if err != nil {
			printError("failed to query Ollama", err)
			return err
		}
		for _, name := range names {
			marker := " "
			if name == cfg.LLM.Model {
				marker = "*"
			}
			fmt.Printf("%s %s\n", marker, name)
		}
		return nil
	}

	registry := models.NewRegistry(cfg.LLM.ModelsDir)
	if err := registry.Scan(); err != nil {
		printError("failed to scan models directory", err)
		return err
	}

	list := registry.List()
	if len(list) == 0 {
		fmt.Printf("no models found in %s\n", cfg.LLM.ModelsDir)
		return nil
	}

	for _, m := range list {
		fmt.Printf("%-30s %6.1f GB  quality %d  speed %d\n", m.Name, m.SizeGB, m.Quality, m.SpeedRating)
	}
	return nil
}

func runModelsRecommend(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	registry := models.NewRegistry(cfg.LLM.ModelsDir)
	if err := registry.Scan(); err != nil {
		printError("failed to scan models directory", err)
		return err
	}

	ram := models.SystemRAMGB()
	m, err := registry.Recommend(ram)
	if err != nil {
		printError(fmt.Sprintf("no recommendation for %.1f GB RAM", ram), err)
		return err
	}

	fmt.Printf("recommended: %s (%.1f GB, quality %d, speed %d)\n", m.Name, m.SizeGB, m.Quality, m.SpeedRating)
	return nil
}
