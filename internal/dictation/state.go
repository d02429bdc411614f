package dictation

import (
	"errors"
	"fmt"
	"sync"
)

// State represents the lifecycle state of a dictation session.
type State int

const (
	// StateIdle - no recognition session is active.
	StateIdle State = iota
	// StateListening - a recognition session is active and may deliver results.
	StateListening
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateListening:
		return "LISTENING"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", s)
	}
}

// ErrAlreadyListening is returned when Start is called while a session
// is still active.
var ErrAlreadyListening = errors.New("dictation session already listening")

// Lifecycle manages the state machine for a dictation session.
// Thread-safe for concurrent access.
//
// State transitions:
//
//	IDLE → LISTENING   via BeginListening()
//	LISTENING → IDLE   via Ended() (recognizer end or error)
//
// The transition back to IDLE is only ever driven by the recognizer's
// own end or error notification; a stop request alone does not change
// the state.
type Lifecycle struct {
	mu    sync.RWMutex
	state State
}

// NewLifecycle creates a new lifecycle in IDLE state.
func NewLifecycle() *Lifecycle {
	return &Lifecycle{state: StateIdle}
}

// State returns the current state.
func (l *Lifecycle) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// Listening returns true if the session is active.
func (l *Lifecycle) Listening() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state == StateListening
}

// BeginListening transitions IDLE → LISTENING.
func (l *Lifecycle) BeginListening() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state == StateListening {
		return ErrAlreadyListening
	}
	l.state = StateListening
	return nil
}

// Ended transitions LISTENING → IDLE. Returns true if a transition
// happened, false if the session was already idle. Idempotent.
func (l *Lifecycle) Ended() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state == StateIdle {
		return false
	}
	l.state = StateIdle
	return true
}
