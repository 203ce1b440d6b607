package infrastructure

import "bytes"

// stubTransport scripts a fixed response stream for driving the handshake
// components byte-by-byte in tests.
type stubTransport struct {
	response  []byte
	pos       int
	delay     int // number of Available calls reporting no data yet
	calls     int
	written   bytes.Buffer
	connected bool
	closed    bool
}

func (s *stubTransport) Connect(host string, port uint16) error {
	s.connected = true
	return nil
}

func (s *stubTransport) Connected() bool {
	return s.connected && !s.closed
}

func (s *stubTransport) Available() int {
	s.calls++
	if s.calls <= s.delay {
		return 0
	}
	return len(s.response) - s.pos
}

func (s *stubTransport) ReadByte() (byte, bool) {
	if s.pos >= len(s.response) {
		return 0, false
	}
	c := s.response[s.pos]
	s.pos++
	return c, true
}

func (s *stubTransport) WriteLine(line []byte) error {
	s.written.Write(line)
	s.written.WriteString("\r\n")
	return nil
}

func (s *stubTransport) Flush() error {
	return nil
}

func (s *stubTransport) Close() error {
	s.closed = true
	s.connected = false
	return nil
}
