package client

import (
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"time"

	"websocket-client/internal/domain"
	"websocket-client/internal/infrastructure"
	"websocket-client/pkg/protocol"
)

// Config carries the tunables of a handshake client
type Config struct {
	// MaxResponseAttempts and ResponseInterval bound the wait for the first
	// response byte: attempts times interval is the soft timeout budget
	MaxResponseAttempts int
	ResponseInterval    time.Duration

	// DialTimeout bounds the TCP connect
	DialTimeout time.Duration

	// ReadTimeout bounds each single-byte read once the response has started
	ReadTimeout time.Duration

	// Overflow declares what happens to a header line longer than the fixed
	// buffer capacity
	Overflow infrastructure.OverflowPolicy

	// RandSource overrides the handshake key randomness source
	RandSource io.Reader

	Logger *slog.Logger
}

// DefaultConfig returns a config with a ~3 second response budget
func DefaultConfig() Config {
	return Config{
		MaxResponseAttempts: 300,
		ResponseInterval:    10 * time.Millisecond,
		DialTimeout:         5 * time.Second,
		ReadTimeout:         500 * time.Millisecond,
		Overflow:            infrastructure.OverflowTruncate,
		Logger:              slog.Default(),
	}
}

// Client performs the client side of the WebSocket opening handshake and
// tracks the resulting session. It is single-threaded by design: all
// operations are synchronous, callbacks run on the caller's stack, and no
// method is safe to call from multiple goroutines at once.
type Client struct {
	cfg       Config
	transport infrastructure.Transport
	keys      *infrastructure.KeyGenerator
	session   *domain.Session
	logger    *slog.Logger

	// single-slot callbacks, last registration wins
	onOpen  func(*Client)
	onError func(error)
	onClose func(*Client, int)
	onFrame func(infrastructure.Transport)
}

// New creates a client over a plain TCP transport
func New(cfg Config) *Client {
	return NewWithTransport(cfg, infrastructure.NewTCPTransport(cfg.DialTimeout, cfg.ReadTimeout))
}

// NewWithTransport creates a client over the given transport
func NewWithTransport(cfg Config, t infrastructure.Transport) *Client {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Client{
		cfg:       cfg,
		transport: t,
		keys:      infrastructure.NewKeyGenerator(cfg.RandSource),
		logger:    cfg.Logger,
	}
}

// OnOpen registers the open notification. One slot: a later registration
// replaces the earlier one.
func (c *Client) OnOpen(fn func(*Client)) {
	c.onOpen = fn
}

// OnError registers the error notification, fired exactly once per failed
// handshake attempt with the specific cause
func (c *Client) OnError(fn func(error)) {
	c.onError = fn
}

// OnClose registers the close notification, fired by Poll with a close code
// when the transport has silently disconnected
func (c *Client) OnClose(fn func(*Client, int)) {
	c.onClose = fn
}

// OnFrame registers the frame-read hook Poll delegates to when data is
// pending on an open session. Frame decoding is layered above this client.
func (c *Client) OnFrame(fn func(infrastructure.Transport)) {
	c.onFrame = fn
}

// Open runs a full handshake attempt against host:port. Any prior session is
// force-closed first, so two transports are never open simultaneously. On
// failure the transport is terminated, the state returns to Closed, the error
// notification fires once with the specific cause and the error is returned.
// On success the state becomes Open and the open notification fires once.
func (c *Client) Open(host string, port uint16, path string, protocols ...string) error {
	c.Close()

	if err := c.transport.Connect(host, port); err != nil {
		c.logger.Error("connection establishment failed", slog.String("error", err.Error()))
		return c.fail(fmt.Errorf("%w: %v", domain.ErrConnectionRefused, err))
	}

	addr := net.JoinHostPort(host, strconv.Itoa(int(port)))
	c.session = domain.NewSession(addr)

	key := c.keys.GenerateKey()

	writer := infrastructure.NewRequestWriter(c.cfg.Overflow)
	if err := writer.WriteRequest(c.transport, host, port, path, key, protocols); err != nil {
		return c.fail(err)
	}

	reader := infrastructure.NewLineReader(c.transport, c.cfg.Overflow)
	if err := reader.AwaitResponse(c.cfg.MaxResponseAttempts, c.cfg.ResponseInterval); err != nil {
		c.logger.Error("connection establishment timed out", slog.String("address", addr))
		return c.fail(err)
	}

	validator := infrastructure.NewResponseValidator(c.keys.AcceptKey(key), c.logger)

	result, err := validator.ValidateResponse(reader)
	if err != nil {
		c.logger.Error("handshake failed", slog.String("error", err.Error()))
		return c.fail(err)
	}

	c.session.Protocol = result.Protocol
	if err := c.session.TransitionTo(domain.StateOpen); err != nil {
		return c.fail(err)
	}

	c.logger.Info("handshake complete",
		slog.String("address", addr),
		slog.String("protocol", result.Protocol),
	)

	if c.onOpen != nil {
		c.onOpen(c)
	}

	return nil
}

// Poll checks transport liveness and performs at most one unit of read work.
// It is non-blocking and meant to be driven by the caller's own loop once the
// session is open. A silent disconnect while open transitions to Closed and
// fires the close notification with an abnormal-closure code.
func (c *Client) Poll() {
	if c.session == nil {
		return
	}

	if !c.transport.Connected() {
		if c.session.IsOpen() {
			c.terminate()
			if c.onClose != nil {
				c.onClose(c, protocol.StatusAbnormalClosure)
			}
		}
		return
	}

	if c.transport.Available() > 0 {
		c.session.UpdateActivity()
		if c.onFrame != nil {
			c.onFrame(c.transport)
		}
	}
}

// Close terminates the current session, if any. Idempotent.
func (c *Client) Close() {
	if c.session == nil {
		return
	}

	c.logger.Debug("closing session", slog.String("address", c.session.Address))
	c.terminate()
}

// ReadyState returns the current session lifecycle phase
func (c *Client) ReadyState() domain.ReadyState {
	if c.session == nil {
		return domain.StateClosed
	}
	return c.session.State
}

// Protocol returns the sub-protocol selected by the server, or "" if none
// was negotiated or no session is open
func (c *Client) Protocol() string {
	if c.session == nil {
		return ""
	}
	return c.session.Protocol
}

// fail terminates the transport, forces the state to Closed and fires the
// error notification exactly once with the specific cause
func (c *Client) fail(err error) error {
	c.terminate()
	if c.onError != nil {
		c.onError(err)
	}
	return err
}

// terminate tears the session down: the transport is closed unconditionally
// and dropping the session releases the negotiated protocol
func (c *Client) terminate() {
	if c.session != nil && !c.session.IsClosed() {
		_ = c.session.TransitionTo(domain.StateClosed)
	}
	c.session = nil
	_ = c.transport.Close()
}
