// ============================================================================
// voztype - Spanish speech to English text
// ============================================================================
//
// Package:     cmd
// Description: CLI root command
// License:     MIT
// ============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"voztype/internal/config"
	"voztype/pkg/logger"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "voztype",
	Short: "voztype - dictate in Spanish, type in English",
	Long: `voztype sits in the system tray and turns Spanish speech into
English text in whatever window has focus.

Press the record hotkey, speak, and the transcription is translated,
optionally polished by a local LLM, and typed where your cursor is.
Everything runs locally; no audio or text leaves the machine.`,
	RunE: runApp,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/voztype/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig reads the config file and applies the verbose flag.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return cfg, err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

func newLogger(cfg config.Config) (*logger.Logger, error) {
	return logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	})
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
}
