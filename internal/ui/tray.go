// ============================================================================
// voztype - Spanish speech to English text
// ============================================================================
//
// Package:     ui
// Description: System tray menu and status display
// License:     MIT
// ============================================================================

package ui

import (
	"fmt"

	"fyne.io/systray"
)

// Status is what the tray icon currently reports.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusRecording  Status = "recording"
	StatusProcessing Status = "processing"
	StatusDisabled   Status = "disabled"
	StatusError      Status = "error"
)

// Callbacks connects tray menu actions to the application.
type Callbacks struct {
	// OnActivate toggles recording, same as the record hotkey
	OnActivate func()

	// OnToggleEnabled enables or disables the whole app
	OnToggleEnabled func()

	// OnSelectModel switches the enhancement model
	OnSelectModel func(id string)

	// OnToggleEnhance turns translation enhancement on or off
	OnToggleEnhance func(enabled bool)

	// OnQuit shuts the application down
	OnQuit func()
}

// Tray owns the system tray icon and menu.
type Tray struct {
	callbacks Callbacks
	models    []string
	current   string
	enhance   bool

	status     *systray.MenuItem
	activate   *systray.MenuItem
	toggle     *systray.MenuItem
	enhanceItm *systray.MenuItem
	modelItems map[string]*systray.MenuItem
	quit       *systray.MenuItem

	statusCh chan Status
	done     chan struct{}
}

// NewTray creates a tray. models lists enhancement model ids for the
// submenu; current is the selected one.
func NewTray(callbacks Callbacks, models []string, current string, enhance bool) *Tray {
	return &Tray{
		callbacks:  callbacks,
		models:     models,
		current:    current,
		enhance:    enhance,
		modelItems: make(map[string]*systray.MenuItem),
		statusCh:   make(chan Status, 8),
		done:       make(chan struct{}),
	}
}

// Run starts the tray event loop. It blocks until Quit and must run on the
// main thread.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// SetStatus updates the icon and status line.
func (t *Tray) SetStatus(s Status) {
	select {
	case t.statusCh <- s:
	default:
	}
}

// Quit stops the tray loop.
func (t *Tray) Quit() {
	systray.Quit()
}

func (t *Tray) onReady() {
	systray.SetIcon(iconIdle)
	systray.SetTitle("voztype")
	systray.SetTooltip("voztype: Spanish speech to English text")

	t.status = systray.AddMenuItem("Status: idle", "Current state")
	t.status.Disable()
	systray.AddSeparator()

	t.activate = systray.AddMenuItem("Start recording", "Record an utterance")
	t.toggle = systray.AddMenuItem("Disable", "Suspend hotkeys and recording")
	systray.AddSeparator()

	t.enhanceItm = systray.AddMenuItemCheckbox("Enhance translation", "Polish translations with the local LLM", t.enhance)

	if len(t.models) > 0 {
		modelMenu := systray.AddMenuItem("Enhancement model", "Select the local model")
		for _, id := range t.models {
			item := modelMenu.AddSubMenuItemCheckbox(id, "", id == t.current)
			t.modelItems[id] = item
		}
	}
	systray.AddSeparator()

	t.quit = systray.AddMenuItem("Quit", "Exit voztype")

	go t.loop()
}

func (t *Tray) loop() {
	modelClicks := t.modelClicks()
	for {
		select {
		case s := <-t.statusCh:
			t.applyStatus(s)

		case <-t.activate.ClickedCh:
			if t.callbacks.OnActivate != nil {
				t.callbacks.OnActivate()
			}

		case <-t.toggle.ClickedCh:
			if t.callbacks.OnToggleEnabled != nil {
				t.callbacks.OnToggleEnabled()
			}

		case <-t.enhanceItm.ClickedCh:
			t.enhance = !t.enhance
			if t.enhance {
				t.enhanceItm.Check()
			} else {
				t.enhanceItm.Uncheck()
			}
			if t.callbacks.OnToggleEnhance != nil {
				t.callbacks.OnToggleEnhance(t.enhance)
			}

		case <-t.quit.ClickedCh:
			if t.callbacks.OnQuit != nil {
				t.callbacks.OnQuit()
			}
			systray.Quit()
			return

		case <-t.done:
			return

		case id := <-modelClicks:
			t.selectModel(id)
		}
	}
}

// modelClicks fans the per-model click channels into one. The goroutines
// exit with the tray.
func (t *Tray) modelClicks() <-chan string {
	ch := make(chan string)
	for id, item := range t.modelItems {
		go func(id string, item *systray.MenuItem) {
			for {
				select {
				case <-item.ClickedCh:
					select {
					case ch <- id:
					case <-t.done:
						return
					}
				case <-t.done:
					return
				}
			}
		}(id, item)
	}
	return ch
}

func (t *Tray) selectModel(id string) {
	for mid, item := range t.modelItems {
		if mid == id {
			item.Check()
		} else {
			item.Uncheck()
		}
	}
	t.current = id
	if t.callbacks.OnSelectModel != nil {
		t.callbacks.OnSelectModel(id)
	}
}

func (t *Tray) applyStatus(s Status) {
	t.status.SetTitle(fmt.Sprintf("Status: %s", s))
	switch s {
	case StatusRecording:
		systray.SetIcon(iconRecording)
		t.activate.SetTitle("Stop recording")
	case StatusProcessing:
		systray.SetIcon(iconProcessing)
		t.activate.SetTitle("Start recording")
	case StatusDisabled:
		systray.SetIcon(iconDisabled)
		t.toggle.SetTitle("Enable")
	case StatusError:
		systray.SetIcon(iconError)
		t.activate.SetTitle("Start recording")
	default:
		systray.SetIcon(iconIdle)
		t.activate.SetTitle("Start recording")
		t.toggle.SetTitle("Disable")
	}
}

func (t *Tray) onExit() {
	close(t.done)
}
