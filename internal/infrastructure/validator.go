package infrastructure

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"websocket-client/internal/domain"
	"websocket-client/pkg/protocol"
)

// ResponseValidator checks the server side of the opening handshake:
//
//	[1] HTTP/1.1 101 Switching Protocols
//	[2] Upgrade: websocket
//	[3] Connection: Upgrade
//	[4] Sec-WebSocket-Accept: s3pPLMBiTxaQ9kYGzzhZRbK+xOo=
//	[5]
//
// The expected accept value must be computed from the same key that was sent
// in the request.
type ResponseValidator struct {
	expectedAccept string
	logger         *slog.Logger
}

// NewResponseValidator creates a validator expecting the given
// Sec-WebSocket-Accept value. A nil logger selects slog.Default().
func NewResponseValidator(expectedAccept string, logger *slog.Logger) *ResponseValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &ResponseValidator{
		expectedAccept: expectedAccept,
		logger:         logger,
	}
}

// ValidateResponse drains header lines from the reader and classifies each
// one, accumulating satisfied requirements. Parsing stops at the blank-line
// terminator, leaving any response body unread, or at stream end. After the
// loop a final check requires every flag to be set.
func (v *ResponseValidator) ValidateResponse(r *LineReader) (*domain.HandshakeResult, error) {
	result := &domain.HandshakeResult{}

	for index := 0; ; index++ {
		line, err := r.ReadLine()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		v.logger.Debug("handshake line", slog.Int("index", index), slog.String("line", string(line)))

		if index == 0 {
			if !bytes.HasPrefix(line, []byte(protocol.SwitchingProtocolsPrefix)) {
				return nil, fmt.Errorf("%w: invalid status line %q", domain.ErrBadRequest, line)
			}
			continue
		}

		if len(line) == 0 {
			// end of the header section
			break
		}

		if err := v.validateHeader(line, result); err != nil {
			return nil, err
		}
	}

	if err := result.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// validateHeader classifies a single header line. Lines without a colon are
// tolerated and ignored, as are headers the handshake does not care about.
func (v *ResponseValidator) validateHeader(line []byte, result *domain.HandshakeResult) error {
	name, rest, found := bytes.Cut(line, []byte{':'})
	if !found {
		return nil
	}

	value := firstToken(rest)

	switch {
	case equalFold(name, protocol.HeaderUpgrade):
		if !strings.EqualFold(value, protocol.HeaderValueWebSocket) {
			return fmt.Errorf("%w: Upgrade header value is not websocket: %q", domain.ErrUpgradeRequired, value)
		}
		result.UpgradeValid = true

	case equalFold(name, protocol.HeaderConnection):
		if !strings.EqualFold(value, protocol.HeaderValueUpgrade) {
			return fmt.Errorf("%w: Connection header value is not Upgrade: %q", domain.ErrUpgradeRequired, value)
		}
		result.ConnectionValid = true

	case equalFold(name, protocol.HeaderSecWebSocketAccept):
		if value != v.expectedAccept {
			return fmt.Errorf("%w: incorrect Sec-WebSocket-Accept value", domain.ErrBadRequest)
		}
		result.SecKeyValid = true

	case equalFold(name, protocol.HeaderSecWebSocketProtocol):
		if value != "" {
			result.Protocol = value
		}

	default:
		// don't care about other headers
	}

	return nil
}

// firstToken returns the first whitespace-delimited token of b as an owned
// string, or "" if there is none. Copying here keeps retained values (the
// negotiated protocol) independent of the reader's reusable buffer.
func firstToken(b []byte) string {
	fields := bytes.Fields(b)
	if len(fields) == 0 {
		return ""
	}
	return string(fields[0])
}

func equalFold(name []byte, header string) bool {
	return strings.EqualFold(string(name), header)
}
