package qrtoken

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"ticketcheckin/internal/domain"
)

// Payload limits. A scanner that hands us more than MaxPayloadLen bytes is not
// holding one of our tickets.
const (
	MaxPayloadLen = 1024
	MinNonceLen   = 16
	MaxNonceLen   = 64
	SignatureLen  = 32
)

var b64 = base64.RawURLEncoding.Strict()

// wireClaim is the JSON shape printed into the QR code.
type wireClaim struct {
	TicketID  string `json:"tid"`
	EventID   string `json:"eid"`
	Nonce     string `json:"n"`
	Signature string `json:"sig"`
}

type jsonCodec struct{}

// NewCodec returns the JSON claim codec.
func NewCodec() domain.ClaimCodec {
	return jsonCodec{}
}

// Encode serializes c. It rejects claims Decode would not accept, so every
// encoded payload round-trips.
func (jsonCodec) Encode(c domain.Claim) (string, error) {
	if err := checkClaim(c); err != nil {
		return "", err
	}
	raw, err := json.Marshal(wireClaim{
		TicketID:  c.TicketID,
		EventID:   c.EventID,
		Nonce:     b64.EncodeToString(c.Nonce),
		Signature: b64.EncodeToString(c.Signature),
	})
	if err != nil {
		return "", fmt.Errorf("encode claim: %w", err)
	}
	if len(raw) > MaxPayloadLen {
		return "", malformed(errors.New("encoded claim exceeds payload limit"))
	}
	return string(raw), nil
}

// Decode parses an untrusted scan. Every failure is ErrMalformedToken.
func (jsonCodec) Decode(raw string) (domain.Claim, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.Claim{}, malformed(errors.New("empty payload"))
	}
	if len(raw) > MaxPayloadLen {
		return domain.Claim{}, malformed(fmt.Errorf("payload is %d bytes", len(raw)))
	}

	w, err := decodeWire(raw)
	if err != nil {
		return domain.Claim{}, malformed(err)
	}

	nonce, err := b64.DecodeString(w.Nonce)
	if err != nil {
		return domain.Claim{}, malformed(fmt.Errorf("nonce: %w", err))
	}
	sig, err := b64.DecodeString(w.Signature)
	if err != nil {
		return domain.Claim{}, malformed(fmt.Errorf("signature: %w", err))
	}

	c := domain.Claim{
		TicketID:  w.TicketID,
		EventID:   w.EventID,
		Nonce:     nonce,
		Signature: sig,
	}
	if err := checkClaim(c); err != nil {
		return domain.Claim{}, err
	}
	return c, nil
}

// decodeWire reads exactly one JSON object whose keys are the four wire keys,
// each once and with exact case. encoding/json on its own matches keys
// case-insensitively and keeps the last duplicate.
func decodeWire(raw string) (wireClaim, error) {
	var w wireClaim
	fields := map[string]*string{
		"tid": &w.TicketID,
		"eid": &w.EventID,
		"n":   &w.Nonce,
		"sig": &w.Signature,
	}
	seen := make(map[string]bool, len(fields))

	dec := json.NewDecoder(strings.NewReader(raw))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return wireClaim{}, errors.New("claim is not a json object")
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return wireClaim{}, err
		}
		key, _ := tok.(string)
		dst, ok := fields[key]
		if !ok {
			return wireClaim{}, fmt.Errorf("unknown key %q", key)
		}
		if seen[key] {
			return wireClaim{}, fmt.Errorf("duplicate key %q", key)
		}
		seen[key] = true
		if err := dec.Decode(dst); err != nil {
			return wireClaim{}, fmt.Errorf("%s: %w", key, err)
		}
	}
	if tok, err := dec.Token(); err != nil || tok != json.Delim('}') {
		return wireClaim{}, errors.New("unterminated claim object")
	}
	if len(seen) != len(fields) {
		return wireClaim{}, fmt.Errorf("claim has %d of %d keys", len(seen), len(fields))
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return wireClaim{}, errors.New("trailing data after claim")
	}
	return w, nil
}

func checkClaim(c domain.Claim) error {
	if !isCanonicalUUID(c.TicketID) {
		return malformed(errors.New("tid is not a uuid"))
	}
	if !isCanonicalUUID(c.EventID) {
		return malformed(errors.New("eid is not a uuid"))
	}
	if n := len(c.Nonce); n < MinNonceLen || n > MaxNonceLen {
		return malformed(fmt.Errorf("nonce length %d", n))
	}
	if len(c.Signature) != SignatureLen {
		return malformed(fmt.Errorf("signature length %d", len(c.Signature)))
	}
	return nil
}

// isCanonicalUUID accepts only the lowercase 8-4-4-4-12 form, so that one
// ticket has exactly one valid encoding.
func isCanonicalUUID(s string) bool {
	id, err := uuid.Parse(s)
	if err != nil {
		return false
	}
	return id.String() == s
}

func malformed(cause error) error {
	return domain.NewError(domain.KindMalformedToken, cause)
}
