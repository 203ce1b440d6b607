package domain

import (
	"fmt"
	"time"
)

// ReadyState represents the lifecycle phase of a WebSocket session
type ReadyState int

const (
	// StateConnecting indicates the opening handshake is in progress
	StateConnecting ReadyState = iota
	// StateOpen indicates the handshake completed and the session is ready
	StateOpen
	// StateClosing indicates the session is closing
	StateClosing
	// StateClosed indicates the session is closed
	StateClosed
)

// String returns the string representation of the ready state
func (s ReadyState) String() string {
	switch s {
	case StateConnecting:
		return "Connecting"
	case StateOpen:
		return "Open"
	case StateClosing:
		return "Closing"
	case StateClosed:
		return "Closed"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// Session represents one handshake attempt and, once open, the resulting
// WebSocket session. The negotiated sub-protocol is owned by the session and
// is released when the session is torn down or replaced.
type Session struct {
	Address      string     // Remote address (host:port)
	State        ReadyState // Current ready state
	Protocol     string     // Negotiated sub-protocol, if any
	LastActivity time.Time  // Last activity timestamp
}

// NewSession creates a new session for the given remote address, starting in
// the Connecting state
func NewSession(address string) *Session {
	return &Session{
		Address:      address,
		State:        StateConnecting,
		LastActivity: time.Now(),
	}
}

// CanTransitionTo checks if the session can transition to the given state
func (s *Session) CanTransitionTo(newState ReadyState) bool {
	switch s.State {
	case StateConnecting:
		return newState == StateOpen || newState == StateClosed
	case StateOpen:
		return newState == StateClosing || newState == StateClosed
	case StateClosing:
		return newState == StateClosed
	case StateClosed:
		return false
	default:
		return false
	}
}

// TransitionTo transitions the session to the given state
func (s *Session) TransitionTo(newState ReadyState) error {
	if !s.CanTransitionTo(newState) {
		return fmt.Errorf("%w: cannot transition from %s to %s", ErrInvalidState, s.State, newState)
	}
	s.State = newState
	return nil
}

// UpdateActivity updates the last activity timestamp
func (s *Session) UpdateActivity() {
	s.LastActivity = time.Now()
}

// IsOpen returns true if the session is open
func (s *Session) IsOpen() bool {
	return s.State == StateOpen
}

// IsClosed returns true if the session is closed
func (s *Session) IsClosed() bool {
	return s.State == StateClosed
}
