package qrtoken

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketcheckin/internal/domain"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef-test")

func newTestSigner(t *testing.T) *Signer {
	t.Helper()
	s, err := NewSigner(testSecret)
	require.NoError(t, err)
	return s
}

func signedClaim(s *Signer) domain.Claim {
	nonce := bytes.Repeat([]byte{0x42}, MinNonceLen)
	return domain.Claim{
		TicketID:  testTicketID,
		EventID:   testEventID,
		Nonce:     nonce,
		Signature: s.Sign(testTicketID, testEventID, nonce),
	}
}

func TestNewSigner_rejects_short_secret(t *testing.T) {
	_, err := NewSigner([]byte("too-short"))
	assert.ErrorIs(t, err, ErrWeakSecret)
}

func TestSigner_Sign_is_deterministic(t *testing.T) {
	s := newTestSigner(t)
	nonce := []byte("nonce-nonce-nonce")
	a := s.Sign(testTicketID, testEventID, nonce)
	b := s.Sign(testTicketID, testEventID, nonce)
	assert.Equal(t, a, b)
	assert.Len(t, a, SignatureLen)
}

func TestSigner_Verify_valid(t *testing.T) {
	s := newTestSigner(t)
	assert.True(t, s.Verify(signedClaim(s)))
}

func TestSigner_Verify_rejects_any_flipped_signature_byte(t *testing.T) {
	s := newTestSigner(t)
	c := signedClaim(s)

	for i := range c.Signature {
		for _, mask := range []byte{0x01, 0x80, 0xff} {
			tampered := c
			tampered.Signature = bytes.Clone(c.Signature)
			tampered.Signature[i] ^= mask
			assert.False(t, s.Verify(tampered), "byte %d mask %#x", i, mask)
		}
	}
}

func TestSigner_Verify_rejects_changed_fields(t *testing.T) {
	s := newTestSigner(t)
	c := signedClaim(s)

	otherEvent := c
	otherEvent.EventID = "9f8e7d6c-5b4a-4392-8170-6f5e4d3c2b1a"
	assert.False(t, s.Verify(otherEvent), "cross-event replay")

	otherTicket := c
	otherTicket.TicketID = testEventID
	assert.False(t, s.Verify(otherTicket))

	otherNonce := c
	otherNonce.Nonce = bytes.Repeat([]byte{0x43}, MinNonceLen)
	assert.False(t, s.Verify(otherNonce))
}

func TestSigner_Verify_rejects_other_secret(t *testing.T) {
	s := newTestSigner(t)
	other, err := NewSigner(append(bytes.Clone(testSecret), 'x'))
	require.NoError(t, err)
	assert.False(t, other.Verify(signedClaim(s)))
}

func TestSigner_field_boundaries_are_bound(t *testing.T) {
	s := newTestSigner(t)
	a := s.Sign("ab", "c", []byte("n"))
	b := s.Sign("a", "bc", []byte("n"))
	assert.NotEqual(t, a, b)
}

func TestSigner_does_not_print_key(t *testing.T) {
	s := newTestSigner(t)

	assert.NotContains(t, fmt.Sprintf("%v %s", s, s), string(s.key))

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	logger.Info("signer", "signer", s)
	assert.True(t, strings.Contains(buf.String(), "[redacted]"))
}

func TestIssuer_Issue_produces_verifiable_payload(t *testing.T) {
	s := newTestSigner(t)
	codec := NewCodec()
	issuer := NewIssuer(s, codec)

	raw, err := issuer.Issue(testTicketID, testEventID)
	require.NoError(t, err)

	c, err := codec.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, testTicketID, c.TicketID)
	assert.Equal(t, testEventID, c.EventID)
	assert.True(t, s.Verify(c))

	again, err := issuer.Issue(testTicketID, testEventID)
	require.NoError(t, err)
	assert.NotEqual(t, raw, again, "fresh nonce per issue")
}

func TestIssuer_Issue_rejects_non_uuid_ids(t *testing.T) {
	issuer := NewIssuer(newTestSigner(t), NewCodec())
	_, err := issuer.Issue("ticket-1", testEventID)
	assert.ErrorIs(t, err, domain.ErrMalformedToken)

	_, err = issuer.Issue("", testEventID)
	assert.Error(t, err)
}
