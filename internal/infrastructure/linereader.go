package infrastructure

import (
	"io"
	"time"

	"websocket-client/internal/domain"
	"websocket-client/pkg/protocol"
)

// LineReader splits the response byte stream into discrete header lines. The
// stream carries no buffering guarantees, so the reader consumes it one byte
// at a time, accumulating into a fixed-capacity buffer that is reused across
// all lines of a single response.
type LineReader struct {
	transport Transport
	buf       *LineBuffer
}

// NewLineReader creates a line reader over the given transport
func NewLineReader(t Transport, policy OverflowPolicy) *LineReader {
	return &LineReader{
		transport: t,
		buf:       NewLineBuffer(protocol.LineBufferSize, policy),
	}
}

// AwaitResponse waits for the first response byte, polling at a fixed
// interval up to maxAttempts. The wait budget is soft: real-time duration is
// maxAttempts times the interval granularity. Fails with ErrRequestTimeout if
// no byte arrives within the budget.
func (r *LineReader) AwaitResponse(maxAttempts int, interval time.Duration) error {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if r.transport.Available() > 0 {
			return nil
		}
		time.Sleep(interval)
	}

	if r.transport.Available() > 0 {
		return nil
	}

	return domain.ErrRequestTimeout
}

// ReadLine consumes stream bytes until a line feed and returns the line
// content with the trailing CR stripped. A zero-length return with nil error
// marks the end of the header section. When the stream is exhausted before a
// line feed, any partial line is discarded and io.EOF is returned.
//
// The returned slice aliases the reader's reusable buffer; it is only valid
// until the next ReadLine call.
func (r *LineReader) ReadLine() ([]byte, error) {
	r.buf.Reset()

	for {
		c, ok := r.transport.ReadByte()
		if !ok {
			return nil, io.EOF
		}

		if c == '\n' {
			line := r.buf.Bytes()
			if len(line) > 0 && line[len(line)-1] == '\r' {
				line = line[:len(line)-1]
			}
			return line, nil
		}

		if err := r.buf.Append(c); err != nil {
			return nil, err
		}
	}
}
