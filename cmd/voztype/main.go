// ============================================================================
// voztype - Spanish speech to English text
// ============================================================================
//
// Package:     main
// Description: voztype entry point
// License:     MIT
// ============================================================================

package main

import (
	"os"

	"voztype/cmd/voztype/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
