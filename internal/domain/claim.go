package domain

import "bytes"

// Claim is the structured content of a scanned QR payload. It is derived on
// every scan and never persisted.
type Claim struct {
	TicketID  string
	EventID   string
	Nonce     []byte
	Signature []byte
}

// Equal reports whether two claims carry identical fields.
func (c Claim) Equal(o Claim) bool {
	return c.TicketID == o.TicketID &&
		c.EventID == o.EventID &&
		bytes.Equal(c.Nonce, o.Nonce) &&
		bytes.Equal(c.Signature, o.Signature)
}

// ClaimCodec converts between the QR wire format and Claim.
type ClaimCodec interface {
	Encode(c Claim) (string, error)
	// Decode fails only with ErrMalformedToken.
	Decode(raw string) (Claim, error)
}

// ClaimVerifier checks a claim's signature against the server secret.
type ClaimVerifier interface {
	Verify(c Claim) bool
}
