package qrtoken

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/crypto/hkdf"

	"ticketcheckin/internal/domain"
)

// MinSecretLen is the shortest signing secret NewSigner accepts.
const MinSecretLen = 32

const keyInfo = "ticket-qr/v1"

// ErrWeakSecret is returned by NewSigner for secrets shorter than MinSecretLen.
var ErrWeakSecret = fmt.Errorf("qrtoken: signing secret must be at least %d bytes", MinSecretLen)

// Signer computes and verifies QR claim signatures with HMAC-SHA256 under a
// key derived from the process signing secret. It is safe for concurrent use.
type Signer struct {
	key []byte
}

// NewSigner derives the claim MAC key from secret.
func NewSigner(secret []byte) (*Signer, error) {
	if len(secret) < MinSecretLen {
		return nil, ErrWeakSecret
	}
	key := make([]byte, sha256.Size)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(keyInfo)), key); err != nil {
		return nil, fmt.Errorf("qrtoken: derive key: %w", err)
	}
	return &Signer{key: key}, nil
}

// Sign returns the signature over (ticketID, eventID, nonce).
func (s *Signer) Sign(ticketID, eventID string, nonce []byte) []byte {
	mac := hmac.New(sha256.New, s.key)
	writeField(mac, []byte(ticketID))
	writeField(mac, []byte(eventID))
	writeField(mac, nonce)
	return mac.Sum(nil)
}

// Verify reports whether c carries the signature Sign would produce.
func (s *Signer) Verify(c domain.Claim) bool {
	expected := s.Sign(c.TicketID, c.EventID, c.Nonce)
	return hmac.Equal(expected, c.Signature)
}

// String keeps the key out of fmt output.
func (s *Signer) String() string { return "qrtoken.Signer[redacted]" }

// LogValue keeps the key out of slog output.
func (s *Signer) LogValue() slog.Value { return slog.StringValue("[redacted]") }

// writeField writes a uint16 length prefix then b, so that field boundaries
// are part of the MAC input.
func writeField(w io.Writer, b []byte) {
	var n [2]byte
	binary.BigEndian.PutUint16(n[:], uint16(len(b)))
	_, _ = w.Write(n[:])
	_, _ = w.Write(b)
}

// Issuer mints signed QR payloads for existing tickets.
type Issuer struct {
	signer *Signer
	codec  domain.ClaimCodec
	rand   io.Reader
}

// NewIssuer returns an Issuer that signs with signer.
func NewIssuer(signer *Signer, codec domain.ClaimCodec) *Issuer {
	return &Issuer{signer: signer, codec: codec, rand: rand.Reader}
}

// Issue returns the QR payload for the ticket.
func (i *Issuer) Issue(ticketID, eventID string) (string, error) {
	if ticketID == "" || eventID == "" {
		return "", errors.New("qrtoken: ticket and event ids are required")
	}
	nonce := make([]byte, MinNonceLen)
	if _, err := io.ReadFull(i.rand, nonce); err != nil {
		return "", fmt.Errorf("qrtoken: read nonce: %w", err)
	}
	return i.codec.Encode(domain.Claim{
		TicketID:  ticketID,
		EventID:   eventID,
		Nonce:     nonce,
		Signature: i.signer.Sign(ticketID, eventID, nonce),
	})
}
