package infrastructure

import (
	"websocket-client/internal/domain"
)

// OverflowPolicy declares what happens when a header line exceeds the fixed
// buffer capacity.
type OverflowPolicy int

const (
	// OverflowTruncate silently drops bytes past capacity; the line still
	// terminates at the next line feed
	OverflowTruncate OverflowPolicy = iota
	// OverflowReject aborts the line with ErrLineTooLong
	OverflowReject
)

// String returns the string representation of the overflow policy
func (p OverflowPolicy) String() string {
	switch p {
	case OverflowTruncate:
		return "Truncate"
	case OverflowReject:
		return "Reject"
	default:
		return "Unknown"
	}
}

// LineBuffer accumulates one header line at a time within a fixed capacity.
// The same buffer is reused across all lines of a request or response.
type LineBuffer struct {
	buf       []byte
	n         int
	policy    OverflowPolicy
	truncated bool
}

// NewLineBuffer creates a line buffer with the given capacity and overflow
// policy
func NewLineBuffer(capacity int, policy OverflowPolicy) *LineBuffer {
	return &LineBuffer{
		buf:    make([]byte, capacity),
		policy: policy,
	}
}

// Append adds one byte to the current line. Past capacity it either drops
// the byte (OverflowTruncate) or fails with ErrLineTooLong (OverflowReject).
func (b *LineBuffer) Append(c byte) error {
	if b.n == len(b.buf) {
		if b.policy == OverflowReject {
			return domain.ErrLineTooLong
		}
		b.truncated = true
		return nil
	}
	b.buf[b.n] = c
	b.n++
	return nil
}

// AppendString appends every byte of s
func (b *LineBuffer) AppendString(s string) error {
	for i := 0; i < len(s); i++ {
		if err := b.Append(s[i]); err != nil {
			return err
		}
	}
	return nil
}

// Bytes returns a view of the accumulated line. The view aliases the reusable
// buffer and is only valid until the next Append or Reset; callers retaining
// a value past that point must copy it.
func (b *LineBuffer) Bytes() []byte {
	return b.buf[:b.n]
}

// Len returns the number of accumulated bytes
func (b *LineBuffer) Len() int {
	return b.n
}

// Truncated reports whether any byte was dropped since the last Reset
func (b *LineBuffer) Truncated() bool {
	return b.truncated
}

// Reset clears the buffer for the next line
func (b *LineBuffer) Reset() {
	b.n = 0
	b.truncated = false
}
