package infrastructure

import (
	"bufio"
	"net"
	"strconv"
	"time"
)

// Transport is the raw byte stream the opening handshake runs over. TCP
// connect/read/write details live behind this interface so the handshake
// logic can be driven byte-by-byte in tests.
type Transport interface {
	// Connect establishes the underlying stream to host:port
	Connect(host string, port uint16) error
	// Connected reports stream liveness
	Connected() bool
	// Available returns the number of bytes ready to read without blocking
	Available() int
	// ReadByte returns the next stream byte, or false if none is available
	ReadByte() (byte, bool)
	// WriteLine writes one line followed by CRLF
	WriteLine(line []byte) error
	// Flush pushes buffered writes onto the stream
	Flush() error
	// Close terminates the stream
	Close() error
}

// TCPTransport implements Transport over a plain TCP connection with
// buffered reads and writes.
type TCPTransport struct {
	conn        net.Conn
	r           *bufio.Reader
	w           *bufio.Writer
	dialTimeout time.Duration
	readTimeout time.Duration
	closed      bool
}

// NewTCPTransport creates a TCP transport. dialTimeout bounds Connect;
// readTimeout bounds each single-byte read once a response has started.
func NewTCPTransport(dialTimeout, readTimeout time.Duration) *TCPTransport {
	return &TCPTransport{
		dialTimeout: dialTimeout,
		readTimeout: readTimeout,
	}
}

// Connect dials host:port over TCP
func (t *TCPTransport) Connect(host string, port uint16) error {
	addr := net.JoinHostPort(host, strconv.Itoa(int(port)))

	conn, err := net.DialTimeout("tcp", addr, t.dialTimeout)
	if err != nil {
		return err
	}

	t.conn = conn
	t.r = bufio.NewReader(conn)
	t.w = bufio.NewWriter(conn)
	t.closed = false

	return nil
}

// Connected reports whether the connection is still alive. A peer that has
// silently closed is detected on the next liveness probe.
func (t *TCPTransport) Connected() bool {
	if t.conn == nil || t.closed {
		return false
	}
	t.fill()
	return !t.closed
}

// Available returns the number of buffered bytes ready to read
func (t *TCPTransport) Available() int {
	if t.conn == nil || t.closed {
		return 0
	}
	t.fill()
	return t.r.Buffered()
}

// ReadByte reads a single byte, waiting at most the configured read timeout.
// Returns false if no byte arrived or the stream ended.
func (t *TCPTransport) ReadByte() (byte, bool) {
	if t.conn == nil || t.closed {
		return 0, false
	}

	t.conn.SetReadDeadline(time.Now().Add(t.readTimeout))
	c, err := t.r.ReadByte()
	t.conn.SetReadDeadline(time.Time{})

	if err != nil {
		if !isTimeout(err) {
			t.closed = true
		}
		return 0, false
	}

	return c, true
}

// WriteLine writes line followed by CRLF into the write buffer
func (t *TCPTransport) WriteLine(line []byte) error {
	if t.conn == nil {
		return net.ErrClosed
	}
	if _, err := t.w.Write(line); err != nil {
		return err
	}
	_, err := t.w.WriteString("\r\n")
	return err
}

// Flush pushes buffered writes onto the wire
func (t *TCPTransport) Flush() error {
	if t.conn == nil {
		return net.ErrClosed
	}
	return t.w.Flush()
}

// Close terminates the connection. Safe to call when not connected.
func (t *TCPTransport) Close() error {
	if t.conn == nil {
		return nil
	}

	conn := t.conn
	t.conn = nil
	t.closed = true

	return conn.Close()
}

// fill probes the connection without blocking: a short-deadline peek either
// buffers pending bytes or reveals that the peer has gone away.
func (t *TCPTransport) fill() {
	if t.r.Buffered() > 0 {
		return
	}

	t.conn.SetReadDeadline(time.Now().Add(time.Millisecond))
	_, err := t.r.Peek(1)
	t.conn.SetReadDeadline(time.Time{})

	if err != nil && !isTimeout(err) {
		t.closed = true
	}
}

func isTimeout(err error) bool {
	ne, ok := err.(net.Error)
	return ok && ne.Timeout()
}
