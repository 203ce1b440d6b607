package protocol

// WebSocket opening-handshake constants as defined in RFC 6455

const (
	// WebSocketGUID is the magic string combined with the handshake key to
	// compute the expected Sec-WebSocket-Accept value
	WebSocketGUID = "258EAFA5-E914-47DA-95CA-C5AB0DC85B11"

	// WebSocket version
	WebSocketVersion = "13"

	// Header names
	HeaderHost                 = "Host"
	HeaderUpgrade              = "Upgrade"
	HeaderConnection           = "Connection"
	HeaderSecWebSocketKey      = "Sec-WebSocket-Key"
	HeaderSecWebSocketAccept   = "Sec-WebSocket-Accept"
	HeaderSecWebSocketVersion  = "Sec-WebSocket-Version"
	HeaderSecWebSocketProtocol = "Sec-WebSocket-Protocol"

	// Header values
	HeaderValueWebSocket = "websocket"
	HeaderValueUpgrade   = "Upgrade"

	// SwitchingProtocolsPrefix is the exact text every accepted status line
	// must begin with
	SwitchingProtocolsPrefix = "HTTP/1.1 101"

	// Handshake key sizes
	NonceSize  = 16
	KeySize    = 24 // base64.StdEncoding.EncodedLen(NonceSize)
	AcceptSize = 28 // base64.StdEncoding.EncodedLen(sha1.Size)

	// LineBufferSize bounds one header line during request emission and
	// response parsing
	LineBufferSize = 128

	// Close status codes
	StatusNormalClosure           = 1000
	StatusGoingAway               = 1001
	StatusProtocolError           = 1002
	StatusUnsupportedData         = 1003
	StatusNoStatusReceived        = 1005
	StatusAbnormalClosure         = 1006
	StatusInvalidFramePayloadData = 1007
	StatusPolicyViolation         = 1008
	StatusMessageTooBig           = 1009
	StatusMandatoryExtension      = 1010
	StatusInternalServerError     = 1011
)
