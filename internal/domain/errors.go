package domain

import "errors"

// Domain errors
var (
	// Terminal handshake failure causes
	ErrConnectionRefused = errors.New("connection refused")
	ErrRequestTimeout    = errors.New("request timeout")
	ErrUpgradeRequired   = errors.New("upgrade required")
	ErrBadRequest        = errors.New("bad request")

	// Session errors
	ErrInvalidState     = errors.New("invalid session state")
	ErrConnectionClosed = errors.New("connection is closed")

	// Parsing errors
	ErrLineTooLong = errors.New("header line exceeds buffer capacity")
)
