// ============================================================================
// voztype - Spanish speech to English text
// ============================================================================
//
// Package:     cmd
// Description: List audio input devices
// License:     MIT
// ============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"voztype/internal/audio"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List audio input devices",
	Long: `Lists the microphones PortAudio can see. Put the exact name into
audio.input_device in the config to pick one.

Examples:
  voztype devices`,
	RunE: runDevices,
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}

func runDevices(cmd *cobra.Command, args []string) error {
	devices, err := audio.ListInputDevices()
	if err != nil {
		printError("failed to enumerate devices", err)
		return err
	}

	if len(devices) == 0 {
		fmt.Println("no input devices found")
		return nil
	}

	for _, d := range devices {
		marker := " "
		if d.IsDefault {
			marker = "*"
		}
		fmt.Printf("%s %-40s %d ch  %.0f Hz\n", marker, d.Name, d.MaxInputChannels, d.DefaultSampleRate)
	}
	fmt.Println("\n* = system default")
	return nil
}
