// ============================================================================
// voztype - Spanish speech to English text
// ============================================================================
//
// Package:     app
// Description: Application state machine
// License:     MIT
// ============================================================================

package app

import (
	"fmt"
	"sync"
)

// State is one of the application's top-level states.
type State int

const (
	// StateIdle means waiting for a recording trigger
	StateIdle State = iota

	// StateRecording means audio is being captured
	StateRecording

	// StateProcessing means an utterance is in the pipeline
	StateProcessing

	// StateDisabled means hotkeys and recording are suspended
	StateDisabled

	// StateError means the last utterance failed; cleared by the next
	// trigger
	StateError
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateProcessing:
		return "processing"
	case StateDisabled:
		return "disabled"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

var validTransitions = map[State][]State{
	StateIdle:       {StateRecording, StateDisabled, StateError},
	StateRecording:  {StateProcessing, StateIdle, StateError},
	StateProcessing: {StateIdle, StateError},
	StateDisabled:   {StateIdle},
	StateError:      {StateIdle, StateRecording, StateDisabled},
}

// StateMachine enforces legal transitions between application states.
type StateMachine struct {
	mu        sync.RWMutex
	current   State
	listeners []func(from, to State)
}

// NewStateMachine creates a state machine starting in StateIdle.
func NewStateMachine() *StateMachine {
	return &StateMachine{current: StateIdle}
}

// Current returns the current state.
func (m *StateMachine) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// TransitionTo moves to the given state, failing on illegal transitions.
func (m *StateMachine) TransitionTo(to State) error {
	m.mu.Lock()
	from := m.current
	if from == to {
		m.mu.Unlock()
		return nil
	}

	allowed := false
	for _, s := range validTransitions[from] {
		if s == to {
			allowed = true
			break
		}
	}
	if !allowed {
		m.mu.Unlock()
		return fmt.Errorf("invalid state transition: %s -> %s", from, to)
	}

	m.current = to
	listeners := make([]func(from, to State), len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(from, to)
	}
	return nil
}

// OnTransition registers a listener called after every transition.
func (m *StateMachine) OnTransition(fn func(from, to State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// Is reports whether the machine is in the given state.
func (m *StateMachine) Is(s State) bool {
	return m.Current() == s
}
