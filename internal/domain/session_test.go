package domain

import (
	"errors"
	"testing"
	"time"
)

func TestNewSession(t *testing.T) {
	address := "example.com:8000"

	sess := NewSession(address)

	if sess.Address != address {
		t.Errorf("expected Address to be %s, got %s", address, sess.Address)
	}
	if sess.State != StateConnecting {
		t.Errorf("expected State to be Connecting, got %s", sess.State)
	}
	if sess.Protocol != "" {
		t.Errorf("expected no negotiated protocol, got %q", sess.Protocol)
	}
	if time.Since(sess.LastActivity) > time.Second {
		t.Error("expected LastActivity to be recent")
	}
}

func TestReadyStateString(t *testing.T) {
	tests := []struct {
		state    ReadyState
		expected string
	}{
		{StateConnecting, "Connecting"},
		{StateOpen, "Open"},
		{StateClosing, "Closing"},
		{StateClosed, "Closed"},
		{ReadyState(99), "Unknown(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.state.String(); got != tt.expected {
				t.Errorf("String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSessionCanTransitionTo(t *testing.T) {
	tests := []struct {
		name      string
		fromState ReadyState
		toState   ReadyState
		expected  bool
	}{
		// From Connecting
		{"Connecting to Open", StateConnecting, StateOpen, true},
		{"Connecting to Closed", StateConnecting, StateClosed, true},
		{"Connecting to Closing", StateConnecting, StateClosing, false},
		{"Connecting to Connecting", StateConnecting, StateConnecting, false},

		// From Open
		{"Open to Closing", StateOpen, StateClosing, true},
		{"Open to Closed", StateOpen, StateClosed, true},
		{"Open to Connecting", StateOpen, StateConnecting, false},
		{"Open to Open", StateOpen, StateOpen, false},

		// From Closing
		{"Closing to Closed", StateClosing, StateClosed, true},
		{"Closing to Open", StateClosing, StateOpen, false},
		{"Closing to Connecting", StateClosing, StateConnecting, false},
		{"Closing to Closing", StateClosing, StateClosing, false},

		// From Closed
		{"Closed to Open", StateClosed, StateOpen, false},
		{"Closed to Connecting", StateClosed, StateConnecting, false},
		{"Closed to Closing", StateClosed, StateClosing, false},
		{"Closed to Closed", StateClosed, StateClosed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := &Session{State: tt.fromState}
			if got := sess.CanTransitionTo(tt.toState); got != tt.expected {
				t.Errorf("CanTransitionTo() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSessionTransitionTo(t *testing.T) {
	tests := []struct {
		name      string
		fromState ReadyState
		toState   ReadyState
		wantErr   bool
	}{
		{"valid transition: Connecting to Open", StateConnecting, StateOpen, false},
		{"valid transition: Connecting to Closed", StateConnecting, StateClosed, false},
		{"valid transition: Open to Closing", StateOpen, StateClosing, false},
		{"valid transition: Closing to Closed", StateClosing, StateClosed, false},
		{"invalid transition: Connecting to Closing", StateConnecting, StateClosing, true},
		{"invalid transition: Closed to Open", StateClosed, StateOpen, true},
		{"invalid transition: Open to Connecting", StateOpen, StateConnecting, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := &Session{State: tt.fromState}
			err := sess.TransitionTo(tt.toState)

			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				if !errors.Is(err, ErrInvalidState) {
					t.Errorf("expected ErrInvalidState, got %v", err)
				}
			} else {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				if sess.State != tt.toState {
					t.Errorf("expected state to be %s, got %s", tt.toState, sess.State)
				}
			}
		})
	}
}

func TestSessionLifecycle(t *testing.T) {
	// Full lifecycle of a successful handshake attempt
	sess := NewSession("example.com:8000")

	if sess.State != StateConnecting {
		t.Errorf("expected initial state to be Connecting, got %s", sess.State)
	}

	if err := sess.TransitionTo(StateOpen); err != nil {
		t.Errorf("unexpected error transitioning to Open: %v", err)
	}
	if !sess.IsOpen() {
		t.Error("expected session to be open")
	}

	if err := sess.TransitionTo(StateClosing); err != nil {
		t.Errorf("unexpected error transitioning to Closing: %v", err)
	}

	if err := sess.TransitionTo(StateClosed); err != nil {
		t.Errorf("unexpected error transitioning to Closed: %v", err)
	}
	if !sess.IsClosed() {
		t.Error("expected session to be closed")
	}

	// Transitions are monotonic within one attempt
	if err := sess.TransitionTo(StateOpen); err == nil {
		t.Error("expected error when transitioning from Closed state")
	}
}

func TestSessionFailedAttempt(t *testing.T) {
	// A failed handshake forces Connecting straight to Closed
	sess := NewSession("example.com:8000")

	if err := sess.TransitionTo(StateClosed); err != nil {
		t.Errorf("unexpected error transitioning to Closed: %v", err)
	}
	if !sess.IsClosed() {
		t.Error("expected session to be closed")
	}
}

func TestSessionUpdateActivity(t *testing.T) {
	sess := NewSession("example.com:8000")
	oldActivity := sess.LastActivity

	// Wait a bit to ensure time difference
	time.Sleep(10 * time.Millisecond)

	sess.UpdateActivity()

	if !sess.LastActivity.After(oldActivity) {
		t.Error("expected LastActivity to be updated")
	}
}
