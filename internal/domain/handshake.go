package domain

import "fmt"

// HandshakeResult accumulates the requirements satisfied while parsing a
// handshake response. The zero value has no requirement satisfied; each flag
// is only ever set, never cleared, so duplicate headers cannot undo an
// already-satisfied requirement.
type HandshakeResult struct {
	UpgradeValid    bool   // Upgrade header present with value "websocket"
	ConnectionValid bool   // Connection header present with value "Upgrade"
	SecKeyValid     bool   // Sec-WebSocket-Accept matched the expected value
	Protocol        string // Sub-protocol selected by the server, if any
}

// Complete returns true if every required header was present and valid
func (r *HandshakeResult) Complete() bool {
	return r.UpgradeValid && r.ConnectionValid && r.SecKeyValid
}

// Err returns the failure cause for the first unsatisfied requirement,
// checked in fixed order: Upgrade, Connection, Sec-WebSocket-Accept. Returns
// nil if the handshake is complete.
func (r *HandshakeResult) Err() error {
	if !r.UpgradeValid {
		return fmt.Errorf("%w: Upgrade header is missing", ErrUpgradeRequired)
	}
	if !r.ConnectionValid {
		return fmt.Errorf("%w: Connection header is missing", ErrUpgradeRequired)
	}
	if !r.SecKeyValid {
		return fmt.Errorf("%w: Sec-WebSocket-Accept header missing or invalid", ErrBadRequest)
	}
	return nil
}
