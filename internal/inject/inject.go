// ============================================================================
// voztype - Spanish speech to English text
// ============================================================================
//
// Package:     inject
// Description: Delivers finished text into the focused window
// License:     MIT
// ============================================================================

package inject

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
)

// Method selects how text reaches the focused window.
type Method string

const (
	// MethodAuto pastes short text and falls back to clipboard-only for
	// long text or when synthetic input fails
	MethodAuto Method = "auto"

	// MethodPaste always goes through the clipboard plus Ctrl+V
	MethodPaste Method = "paste"

	// MethodType sends the text as individual keystrokes
	MethodType Method = "type"

	// MethodClipboard only places the text on the clipboard
	MethodClipboard Method = "clipboard"
)

// ErrInjectionFailed reports that no delivery path worked.
var ErrInjectionFailed = errors.New("text injection failed")

// Clipboard access behind variables so tests can run without a display.
var (
	clipboardRead  = clipboard.ReadAll
	clipboardWrite = clipboard.WriteAll
)

// KeySender abstracts synthetic keyboard input so tests can fake it.
type KeySender interface {
	// SendPaste presses the platform paste chord
	SendPaste() error

	// TypeText sends text as individual key events
	TypeText(text string) error
}

// Config holds injection settings.
type Config struct {
	// Method selects the delivery path
	Method Method

	// MaxTypeLen caps the length MethodType and MethodAuto will type or
	// paste; longer text goes to the clipboard only
	MaxTypeLen int

	// RestoreDelay is how long the pasted text stays on the clipboard
	// before the previous contents come back
	RestoreDelay time.Duration
}

// DefaultConfig returns default injection settings.
func DefaultConfig() Config {
	return Config{
		Method:       MethodAuto,
		MaxTypeLen:   200,
		RestoreDelay: 500 * time.Millisecond,
	}
}

// Injector writes text into whatever window has focus.
type Injector struct {
	cfg    Config
	sender KeySender
}

// New creates an injector using the platform key sender.
func New(cfg Config) (*Injector, error) {
	sender, err := newPlatformSender()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize key sender: %w", err)
	}
	return NewWithSender(cfg, sender), nil
}

// NewWithSender creates an injector with an explicit key sender.
func NewWithSender(cfg Config, sender KeySender) *Injector {
	if cfg.MaxTypeLen <= 0 {
		cfg.MaxTypeLen = 200
	}
	if cfg.RestoreDelay <= 0 {
		cfg.RestoreDelay = 500 * time.Millisecond
	}
	return &Injector{cfg: cfg, sender: sender}
}

// Inject delivers text according to the configured method. The returned
// method is the one that actually ran, which may be the clipboard fallback.
func (i *Injector) Inject(text string) (Method, error) {
	if strings.TrimSpace(text) == "" {
		return i.cfg.Method, nil
	}

	switch i.cfg.Method {
	case MethodClipboard:
		return MethodClipboard, i.copyOnly(text)

	case MethodType:
		if len(text) > i.cfg.MaxTypeLen {
			return MethodClipboard, i.copyOnly(text)
		}
		if err := i.sender.TypeText(text); err != nil {
			if cerr := i.copyOnly(text); cerr != nil {
				return MethodType, fmt.Errorf("%w: %v", ErrInjectionFailed, err)
			}
			return MethodClipboard, nil
		}
		return MethodType, nil

	case MethodPaste:
		return i.paste(text)

	case MethodAuto:
		if len(text) > i.cfg.MaxTypeLen {
			return MethodClipboard, i.copyOnly(text)
		}
		return i.paste(text)

	default:
		return i.cfg.Method, fmt.Errorf("unknown injection method %q", i.cfg.Method)
	}
}

// paste puts text on the clipboard, sends the paste chord, then restores
// the previous clipboard contents after a short delay.
func (i *Injector) paste(text string) (Method, error) {
	previous, prevErr := clipboardRead()

	if err := clipboardWrite(text); err != nil {
		return MethodPaste, fmt.Errorf("%w: clipboard write: %v", ErrInjectionFailed, err)
	}

	time.Sleep(80 * time.Millisecond)

	if err := i.sender.SendPaste(); err != nil {
		// The text is on the clipboard; the user can still paste by hand.
		return MethodClipboard, nil
	}

	time.Sleep(i.cfg.RestoreDelay)

	if prevErr == nil && previous != "" {
		clipboardWrite(previous)
	}

	return MethodPaste, nil
}

func (i *Injector) copyOnly(text string) error {
	if err := clipboardWrite(text); err != nil {
		return fmt.Errorf("%w: clipboard write: %v", ErrInjectionFailed, err)
	}
	return nil
}

// SetMethod changes the delivery method.
func (i *Injector) SetMethod(m Method) {
	i.cfg.Method = m
}

// ValidMethod reports whether a method string is recognized.
func ValidMethod(s string) bool {
	switch Method(s) {
	case MethodAuto, MethodPaste, MethodType, MethodClipboard:
		return true
	}
	return false
}
