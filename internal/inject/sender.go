// ============================================================================
// voztype - Spanish speech to English text
// ============================================================================
//
// Package:     inject
// Description: Synthetic keyboard input via uinput/virtual key events
// License:     MIT
// ============================================================================

package inject

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/micmonay/keybd_event"
)

// keybdSender drives keybd_event for paste chords and character typing.
type keybdSender struct {
	kb keybd_event.KeyBonding
}

func newPlatformSender() (KeySender, error) {
	kb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return nil, fmt.Errorf("keyboard binding unavailable: %w", err)
	}
	// Linux needs a beat for the uinput device to register.
	if runtime.GOOS == "linux" {
		time.Sleep(2 * time.Second)
	}
	return &keybdSender{kb: kb}, nil
}

// SendPaste presses Ctrl+V (Cmd+V on macOS).
func (s *keybdSender) SendPaste() error {
	s.kb.Clear()
	s.kb.SetKeys(keybd_event.VK_V)
	if runtime.GOOS == "darwin" {
		s.kb.HasSuper(true)
	} else {
		s.kb.HasCTRL(true)
	}
	if err := s.kb.Launching(); err != nil {
		return fmt.Errorf("paste keystroke failed: %w", err)
	}
	return nil
}

// TypeText sends the text one character at a time. Characters without a
// virtual-key mapping abort so the caller can fall back to the clipboard.
func (s *keybdSender) TypeText(text string) error {
	for _, r := range text {
		vk, shift, ok := runeToKey(r)
		if !ok {
			return fmt.Errorf("no key mapping for %q", r)
		}
		s.kb.Clear()
		s.kb.SetKeys(vk)
		s.kb.HasSHIFT(shift)
		if err := s.kb.Launching(); err != nil {
			return fmt.Errorf("keystroke failed: %w", err)
		}
		time.Sleep(5 * time.Millisecond)
	}
	return nil
}

var letterKeys = map[rune]int{
	'a': keybd_event.VK_A, 'b': keybd_event.VK_B, 'c': keybd_event.VK_C,
	'd': keybd_event.VK_D, 'e': keybd_event.VK_E, 'f': keybd_event.VK_F,
	'g': keybd_event.VK_G, 'h': keybd_event.VK_H, 'i': keybd_event.VK_I,
	'j': keybd_event.VK_J, 'k': keybd_event.VK_K, 'l': keybd_event.VK_L,
	'm': keybd_event.VK_M, 'n': keybd_event.VK_N, 'o': keybd_event.VK_O,
	'p': keybd_event.VK_P, 'q': keybd_event.VK_Q, 'r': keybd_event.VK_R,
	's': keybd_event.VK_S, 't': keybd_event.VK_T, 'u': keybd_event.VK_U,
	'v': keybd_event.VK_V, 'w': keybd_event.VK_W, 'x': keybd_event.VK_X,
	'y': keybd_event.VK_Y, 'z': keybd_event.VK_Z,
}

var digitKeys = map[rune]int{
	'0': keybd_event.VK_0, '1': keybd_event.VK_1, '2': keybd_event.VK_2,
	'3': keybd_event.VK_3, '4': keybd_event.VK_4, '5': keybd_event.VK_5,
	'6': keybd_event.VK_6, '7': keybd_event.VK_7, '8': keybd_event.VK_8,
	'9': keybd_event.VK_9,
}

var punctKeys = map[rune]struct {
	vk    int
	shift bool
}{
	' ':  {keybd_event.VK_SPACE, false},
	'.':  {keybd_event.VK_DOT, false},
	',':  {keybd_event.VK_COMMA, false},
	';':  {keybd_event.VK_SEMICOLON, false},
	':':  {keybd_event.VK_SEMICOLON, true},
	'-':  {keybd_event.VK_MINUS, false},
	'_':  {keybd_event.VK_MINUS, true},
	'/':  {keybd_event.VK_SLASH, false},
	'?':  {keybd_event.VK_SLASH, true},
	'!':  {keybd_event.VK_1, true},
	'\'': {keybd_event.VK_APOSTROPHE, false},
	'"':  {keybd_event.VK_APOSTROPHE, true},
	'\n': {keybd_event.VK_ENTER, false},
}

func runeToKey(r rune) (vk int, shift bool, ok bool) {
	lower := []rune(strings.ToLower(string(r)))[0]
	if vk, found := letterKeys[lower]; found {
		return vk, r != lower, true
	}
	if vk, found := digitKeys[r]; found {
		return vk, false, true
	}
	if p, found := punctKeys[r]; found {
		return p.vk, p.shift, true
	}
	return 0, false, false
}
