// ============================================================================
// voztype - Spanish speech to English text
// ============================================================================
//
// Package:     app
// Description: Tests for hotkey binding parsing
// License:     MIT
// ============================================================================

package app

import (
	"testing"

	"golang.design/x/hotkey"
)

func TestParseHotkey(t *testing.T) {
	tests := []struct {
		name     string
		binding  string
		wantMods []hotkey.Modifier
		wantKey  hotkey.Key
		wantErr  bool
	}{
		{
			name:     "record default",
			binding:  "ctrl+shift+r",
			wantMods: []hotkey.Modifier{hotkey.ModCtrl, hotkey.ModShift},
			wantKey:  hotkey.KeyR,
		},
		{
			name:     "single modifier",
			binding:  "ctrl+space",
			wantMods: []hotkey.Modifier{hotkey.ModCtrl},
			wantKey:  hotkey.KeySpace,
		},
		{
			name:     "case and spacing tolerated",
			binding:  " Ctrl + Shift + E ",
			wantMods: []hotkey.Modifier{hotkey.ModCtrl, hotkey.ModShift},
			wantKey:  hotkey.KeyE,
		},
		{
			name:     "function key",
			binding:  "ctrl+f9",
			wantMods: []hotkey.Modifier{hotkey.ModCtrl},
			wantKey:  hotkey.KeyF9,
		},
		{
			name:    "unknown modifier",
			binding: "hyper+r",
			wantErr: true,
		},
		{
			name:    "unknown key",
			binding: "ctrl+banana",
			wantErr: true,
		},
		{
			name:    "bare key without modifier",
			binding: "r",
			wantErr: true,
		},
		{
			name:    "empty binding",
			binding: "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mods, key, err := ParseHotkey(tt.binding)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHotkey(%q) error = %v, wantErr %v", tt.binding, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if key != tt.wantKey {
				t.Errorf("key = %v, want %v", key, tt.wantKey)
			}
			if len(mods) != len(tt.wantMods) {
				t.Fatalf("got %d modifiers, want %d", len(mods), len(tt.wantMods))
			}
			for i := range mods {
				if mods[i] != tt.wantMods[i] {
					t.Errorf("modifier[%d] = %v, want %v", i, mods[i], tt.wantMods[i])
				}
			}
		})
	}
}
