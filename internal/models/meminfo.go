// ============================================================================
// voztype - Spanish speech to English text
// ============================================================================
//
// Package:     models
// Description: System memory detection for model recommendation
// License:     MIT
// ============================================================================

package models

import (
	"bufio"
	"os"
	"strconv"
	"strings"
)

// SystemRAMGB returns the machine's total memory in gigabytes, or 8 when it
// cannot be determined.
func SystemRAMGB() float64 {
	if gb, ok := readMeminfoGB("/proc/meminfo"); ok {
		return gb
	}
	return 8
}

func readMeminfoGB(path string) (float64, bool) {
	f, err := os.Open(path)
	if err != nil {
		return 0, false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "MemTotal:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return 0, false
		}
		kb, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return 0, false
		}
		return kb / (1 << 20), true
	}
	return 0, false
}
