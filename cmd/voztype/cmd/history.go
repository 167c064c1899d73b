// ============================================================================
// voztype - Spanish speech to English text
// ============================================================================
//
// Package:     cmd
// Description: Show and clear the utterance history
// License:     MIT
// ============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"voztype/internal/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent utterances",
	Long: `Shows the most recently processed utterances with their Spanish
source and final English text.

Examples:
  voztype history
  voztype history -n 5
  voztype history clear`,
	RunE: runHistory,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all history entries",
	RunE:  runHistoryClear,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyClearCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of entries to show")
}

func openHistory() (*history.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.History.Enabled {
		return nil, fmt.Errorf("history is disabled in the config")
	}
	return history.Open(cfg.History.Path, cfg.History.MaxEntries)
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		printError("failed to open history", err)
		return err
	}
	defer store.Close()

	entries, err := store.List(historyLimit)
	if err != nil {
		printError("failed to read history", err)
		return err
	}

	if len(entries) == 0 {
		fmt.Println("history is empty")
		return nil
	}

	for _, e := range entries {
		enhanced := ""
		if e.Enhanced {
			enhanced = " (enhanced)"
		}
		fmt.Printf("%s%s\n  es: %s\n  en: %s\n\n",
			e.CreatedAt.Format("2006-01-02 15:04:05"), enhanced, e.Spanish, e.Final)
	}
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		printError("failed to open history", err)
		return err
	}
	defer store.Close()

	if err := store.Clear(); err != nil {
		printError("failed to clear history", err)
		return err
	}
	fmt.Println("history cleared")
	return nil
}
