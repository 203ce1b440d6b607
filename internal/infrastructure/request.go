package infrastructure

import (
	"fmt"
	"strings"

	"websocket-client/pkg/protocol"
)

// RequestWriter emits the client side of the opening handshake:
//
//	[1] GET /chat HTTP/1.1
//	[2] Host: example.com:8000
//	[3] Upgrade: websocket
//	[4] Connection: Upgrade
//	[5] Sec-WebSocket-Key: dGhlIHNhbXBsZSBub25jZQ==
//	[6] Sec-WebSocket-Version: 13
//	[7]
//
// Every formatted line passes through the same fixed-capacity buffer, so an
// over-long host or path follows the configured overflow policy.
type RequestWriter struct {
	buf *LineBuffer
}

// NewRequestWriter creates a request writer with the given overflow policy
func NewRequestWriter(policy OverflowPolicy) *RequestWriter {
	return &RequestWriter{
		buf: NewLineBuffer(protocol.LineBufferSize, policy),
	}
}

// WriteRequest writes the upgrade request onto the transport, one
// CRLF-terminated line at a time, then flushes. protocols, if non-empty, is
// offered as Sec-WebSocket-Protocol.
func (w *RequestWriter) WriteRequest(t Transport, host string, port uint16, path, key string, protocols []string) error {
	lines := []string{
		fmt.Sprintf("GET %s HTTP/1.1", path),
		fmt.Sprintf("%s: %s:%d", protocol.HeaderHost, host, port),
		protocol.HeaderUpgrade + ": " + protocol.HeaderValueWebSocket,
		protocol.HeaderConnection + ": " + protocol.HeaderValueUpgrade,
		protocol.HeaderSecWebSocketKey + ": " + key,
	}

	if len(protocols) > 0 {
		lines = append(lines, protocol.HeaderSecWebSocketProtocol+": "+strings.Join(protocols, ", "))
	}

	lines = append(lines,
		protocol.HeaderSecWebSocketVersion+": "+protocol.WebSocketVersion,
		"", // end of headers
	)

	for _, line := range lines {
		if err := w.writeLine(t, line); err != nil {
			return err
		}
	}

	return t.Flush()
}

// writeLine pushes one line through the bounded buffer onto the transport
func (w *RequestWriter) writeLine(t Transport, line string) error {
	w.buf.Reset()
	if err := w.buf.AppendString(line); err != nil {
		return err
	}
	return t.WriteLine(w.buf.Bytes())
}
