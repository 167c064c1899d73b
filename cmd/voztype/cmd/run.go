// ============================================================================
// voztype - Spanish speech to English text
// ============================================================================
//
// Package:     cmd
// Description: Launch the tray application
// License:     MIT
// ============================================================================

package cmd

import (
	"github.com/spf13/cobra"

	"voztype/internal/app"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the tray application",
	Long: `Starts voztype in the system tray and registers the global
hotkeys. This is also what running voztype with no arguments does.`,
	RunE: runApp,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runApp(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		printError("failed to load config", err)
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		printError("failed to initialize logging", err)
		return err
	}
	defer log.Sync()

	application, err := app.New(cfg, cfgFile, log)
	if err != nil {
		printError("failed to start", err)
		return err
	}
	defer application.Shutdown()

	return application.Run()
}
