// ============================================================================
// voztype - Spanish speech to English text
// ============================================================================
//
// Package:     inject
// Description: Tests for injection method selection and key mapping
// License:     MIT
// ============================================================================

package inject

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/micmonay/keybd_event"
)

type fakeSender struct {
	pasteErr error
	typeErr  error
	pastes   int
	typed    []string
}

func (f *fakeSender) SendPaste() error {
	f.pastes++
	return f.pasteErr
}

func (f *fakeSender) TypeText(text string) error {
	f.typed = append(f.typed, text)
	return f.typeErr
}

// fakeClipboard swaps the clipboard seam for the test's duration.
func fakeClipboard(t *testing.T) *struct{ content string } {
	t.Helper()
	state := &struct{ content string }{}
	origRead, origWrite := clipboardRead, clipboardWrite
	clipboardRead = func() (string, error) { return state.content, nil }
	clipboardWrite = func(s string) error {
		state.content = s
		return nil
	}
	t.Cleanup(func() {
		clipboardRead, clipboardWrite = origRead, origWrite
	})
	return state
}

func TestInjectPaste(t *testing.T) {
	clip := fakeClipboard(t)
	sender := &fakeSender{}

	inj := NewWithSender(Config{Method: MethodPaste, RestoreDelay: time.Millisecond}, sender)
	method, err := inj.Inject("hello world")
	if err != nil {
		t.Fatalf("Inject() error = %v", err)
	}
	if method != MethodPaste {
		t.Errorf("method = %s, want paste", method)
	}
	if sender.pastes != 1 {
		t.Errorf("paste chord sent %d times, want 1", sender.pastes)
	}
	_ = clip
}

func TestInjectPasteRestoresClipboard(t *testing.T) {
	clip := fakeClipboard(t)
	clip.content = "previous contents"
	sender := &fakeSender{}

	inj := NewWithSender(Config{Method: MethodPaste, RestoreDelay: time.Millisecond}, sender)
	if _, err := inj.Inject("new text"); err != nil {
		t.Fatalf("Inject() error = %v", err)
	}
	if clip.content != "previous contents" {
		t.Errorf("clipboard = %q, want previous contents restored", clip.content)
	}
}

func TestInjectPasteFailureFallsBackToClipboard(t *testing.T) {
	clip := fakeClipboard(t)
	sender := &fakeSender{pasteErr: errors.New("no display")}

	inj := NewWithSender(Config{Method: MethodPaste, RestoreDelay: time.Millisecond}, sender)
	method, err := inj.Inject("hello world")
	if err != nil {
		t.Fatalf("fallback must not error, got %v", err)
	}
	if method != MethodClipboard {
		t.Errorf("method = %s, want clipboard fallback", method)
	}
	if clip.content != "hello world" {
		t.Errorf("clipboard = %q, text must stay available", clip.content)
	}
}

func TestInjectLongTextGoesToClipboard(t *testing.T) {
	clip := fakeClipboard(t)
	sender := &fakeSender{}

	long := strings.Repeat("x", 300)
	inj := NewWithSender(Config{Method: MethodAuto, MaxTypeLen: 200}, sender)
	method, err := inj.Inject(long)
	if err != nil {
		t.Fatalf("Inject() error = %v", err)
	}
	if method != MethodClipboard {
		t.Errorf("method = %s, want clipboard for long text", method)
	}
	if sender.pastes != 0 {
		t.Error("no paste chord expected for clipboard-only delivery")
	}
	if clip.content != long {
		t.Error("full text must land on the clipboard")
	}
}

func TestInjectTypeFailureFallsBack(t *testing.T) {
	clip := fakeClipboard(t)
	sender := &fakeSender{typeErr: errors.New("unmapped rune")}

	inj := NewWithSender(Config{Method: MethodType}, sender)
	method, err := inj.Inject("hola ñandú")
	if err != nil {
		t.Fatalf("fallback must not error, got %v", err)
	}
	if method != MethodClipboard {
		t.Errorf("method = %s, want clipboard fallback", method)
	}
	if clip.content != "hola ñandú" {
		t.Errorf("clipboard = %q, text must not be lost", clip.content)
	}
}

func TestInjectEmptyTextNoOp(t *testing.T) {
	clip := fakeClipboard(t)
	clip.content = "untouched"
	sender := &fakeSender{}

	inj := NewWithSender(Config{Method: MethodPaste}, sender)
	if _, err := inj.Inject("   "); err != nil {
		t.Fatalf("Inject() error = %v", err)
	}
	if sender.pastes != 0 || clip.content != "untouched" {
		t.Error("blank text must not touch the clipboard or keyboard")
	}
}

func TestValidMethod(t *testing.T) {
	tests := []struct {
		method string
		want   bool
	}{
		{"auto", true},
		{"paste", true},
		{"type", true},
		{"clipboard", true},
		{"teleport", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidMethod(tt.method); got != tt.want {
			t.Errorf("ValidMethod(%q) = %v, want %v", tt.method, got, tt.want)
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Method != MethodAuto {
		t.Errorf("default method = %s, want auto", cfg.Method)
	}
	if cfg.MaxTypeLen != 200 {
		t.Errorf("default MaxTypeLen = %d, want 200", cfg.MaxTypeLen)
	}
}

func TestRuneToKey(t *testing.T) {
	tests := []struct {
		r         rune
		wantVK    int
		wantShift bool
		wantOK    bool
	}{
		{'a', keybd_event.VK_A, false, true},
		{'A', keybd_event.VK_A, true, true},
		{'7', keybd_event.VK_7, false, true},
		{' ', keybd_event.VK_SPACE, false, true},
		{'?', keybd_event.VK_SLASH, true, true},
		{'ñ', 0, false, false},
		{'€', 0, false, false},
	}

	for _, tt := range tests {
		vk, shift, ok := runeToKey(tt.r)
		if ok != tt.wantOK {
			t.Errorf("runeToKey(%q) ok = %v, want %v", tt.r, ok, tt.wantOK)
			continue
		}
		if !ok {
			continue
		}
		if vk != tt.wantVK || shift != tt.wantShift {
			t.Errorf("runeToKey(%q) = (%d, %v), want (%d, %v)", tt.r, vk, shift, tt.wantVK, tt.wantShift)
		}
	}
}
