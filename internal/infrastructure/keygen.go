package infrastructure

import (
	"crypto/sha1"
	"encoding/base64"
	"io"
	"math/rand/v2"

	"websocket-client/pkg/protocol"
)

// KeyGenerator produces handshake keys and computes the accept value the
// server must echo back. The randomness source is replaceable; the default is
// a process-wide pseudo-random source. RFC 6455 does not treat the key as a
// security boundary, only as an anti-cache token, so weak entropy is
// acceptable here.
type KeyGenerator struct {
	source io.Reader
}

// NewKeyGenerator creates a KeyGenerator reading nonce bytes from source.
// A nil source selects the default pseudo-random source.
func NewKeyGenerator(source io.Reader) *KeyGenerator {
	if source == nil {
		source = pseudoRandom{}
	}
	return &KeyGenerator{source: source}
}

// GenerateKey produces a fresh Sec-WebSocket-Key value: 16 random bytes,
// base64-encoded to exactly 24 characters. It never fails: if the configured
// source cannot deliver enough bytes, the remainder is filled from the
// default pseudo-random source.
func (g *KeyGenerator) GenerateKey() string {
	nonce := make([]byte, protocol.NonceSize)
	if _, err := io.ReadFull(g.source, nonce); err != nil {
		fillPseudoRandom(nonce)
	}
	return base64.StdEncoding.EncodeToString(nonce)
}

// AcceptKey computes the expected Sec-WebSocket-Accept value for a key.
// According to RFC 6455: base64(SHA1(key + "258EAFA5-E914-47DA-95CA-C5AB0DC85B11"))
func (g *KeyGenerator) AcceptKey(key string) string {
	hash := sha1.Sum([]byte(key + protocol.WebSocketGUID))
	return base64.StdEncoding.EncodeToString(hash[:])
}

// pseudoRandom adapts the process-wide math/rand source to io.Reader so a
// stronger source such as crypto/rand can be substituted without touching
// parsing logic.
type pseudoRandom struct{}

func (pseudoRandom) Read(p []byte) (int, error) {
	fillPseudoRandom(p)
	return len(p), nil
}

func fillPseudoRandom(p []byte) {
	for i := range p {
		p[i] = byte(rand.Uint32())
	}
}
