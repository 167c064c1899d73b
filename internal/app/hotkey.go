// ============================================================================
// voztype - Spanish speech to English text
// ============================================================================
//
// Package:     app
// Description: Global hotkey parsing and registration
// License:     MIT
// ============================================================================

package app

import (
	"fmt"
	"strings"

	"golang.design/x/hotkey"
)

var modifierNames = map[string]hotkey.Modifier{
	"ctrl":    hotkey.ModCtrl,
	"control": hotkey.ModCtrl,
	"shift":   hotkey.ModShift,
}

var keyNames = map[string]hotkey.Key{
	"a": hotkey.KeyA, "b": hotkey.KeyB, "c": hotkey.KeyC, "d": hotkey.KeyD,
	"e": hotkey.KeyE, "f": hotkey.KeyF, "g": hotkey.KeyG, "h": hotkey.KeyH,
	"i": hotkey.KeyI, "j": hotkey.KeyJ, "k": hotkey.KeyK, "l": hotkey.KeyL,
	"m": hotkey.KeyM, "n": hotkey.KeyN, "o": hotkey.KeyO, "p": hotkey.KeyP,
	"q": hotkey.KeyQ, "r": hotkey.KeyR, "s": hotkey.KeyS, "t": hotkey.KeyT,
	"u": hotkey.KeyU, "v": hotkey.KeyV, "w": hotkey.KeyW, "x": hotkey.KeyX,
	"y": hotkey.KeyY, "z": hotkey.KeyZ,
	"0": hotkey.Key0, "1": hotkey.Key1, "2": hotkey.Key2, "3": hotkey.Key3,
	"4": hotkey.Key4, "5": hotkey.Key5, "6": hotkey.Key6, "7": hotkey.Key7,
	"8": hotkey.Key8, "9": hotkey.Key9,
	"space":  hotkey.KeySpace,
	"return": hotkey.KeyReturn,
	"escape": hotkey.KeyEscape,
	"f1":     hotkey.KeyF1, "f2": hotkey.KeyF2, "f3": hotkey.KeyF3,
	"f4": hotkey.KeyF4, "f5": hotkey.KeyF5, "f6": hotkey.KeyF6,
	"f7": hotkey.KeyF7, "f8": hotkey.KeyF8, "f9": hotkey.KeyF9,
	"f10": hotkey.KeyF10, "f11": hotkey.KeyF11, "f12": hotkey.KeyF12,
}

// ParseHotkey turns a binding like "ctrl+shift+r" into modifiers and a key.
func ParseHotkey(binding string) ([]hotkey.Modifier, hotkey.Key, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(binding)), "+")
	if len(parts) == 0 {
		return nil, 0, fmt.Errorf("empty hotkey binding")
	}

	var mods []hotkey.Modifier
	for _, part := range parts[:len(parts)-1] {
		mod, ok := modifierNames[strings.TrimSpace(part)]
		if !ok {
			return nil, 0, fmt.Errorf("unknown modifier %q in binding %q", part, binding)
		}
		mods = append(mods, mod)
	}

	keyName := strings.TrimSpace(parts[len(parts)-1])
	key, ok := keyNames[keyName]
	if !ok {
		return nil, 0, fmt.Errorf("unknown key %q in binding %q", keyName, binding)
	}
	if len(mods) == 0 {
		return nil, 0, fmt.Errorf("binding %q needs at least one modifier", binding)
	}

	return mods, key, nil
}

// HotkeyManager registers global hotkeys and dispatches presses.
type HotkeyManager struct {
	hotkeys []*hotkey.Hotkey
	done    chan struct{}
}

// NewHotkeyManager creates an empty manager.
func NewHotkeyManager() *HotkeyManager {
	return &HotkeyManager{done: make(chan struct{})}
}

// Register binds a hotkey string to a handler. The handler runs on its own
// goroutine for every press.
func (h *HotkeyManager) Register(binding string, handler func()) error {
	mods, key, err := ParseHotkey(binding)
	if err != nil {
		return err
	}

	hk := hotkey.New(mods, key)
	if err := hk.Register(); err != nil {
		return fmt.Errorf("failed to register hotkey %q: %w", binding, err)
	}
	h.hotkeys = append(h.hotkeys, hk)

	go func() {
		for {
			select {
			case <-hk.Keydown():
				handler()
			case <-h.done:
				return
			}
		}
	}()
	return nil
}

// Close unregisters all hotkeys.
func (h *HotkeyManager) Close() error {
	close(h.done)
	var firstErr error
	for _, hk := range h.hotkeys {
		if err := hk.Unregister(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
