package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure the check-in core can report.
// The set is closed: callers map each kind to a transport status without
// inspecting error messages.
type ErrorKind string

const (
	KindMalformedToken     ErrorKind = "malformed_token"
	KindInvalidSignature   ErrorKind = "invalid_signature"
	KindTicketNotFound     ErrorKind = "ticket_not_found"
	KindNotAuthorized      ErrorKind = "not_authorized"
	KindAlreadyCheckedIn   ErrorKind = "already_checked_in"
	KindStorageUnavailable ErrorKind = "storage_unavailable"
)

// ErrorKinds lists every kind in a stable order.
var ErrorKinds = []ErrorKind{
	KindMalformedToken,
	KindInvalidSignature,
	KindTicketNotFound,
	KindNotAuthorized,
	KindAlreadyCheckedIn,
	KindStorageUnavailable,
}

// Message returns the client-facing text for the kind.
func (k ErrorKind) Message() string {
	switch k {
	case KindMalformedToken:
		return "invalid QR code format"
	case KindInvalidSignature:
		return "invalid QR code signature"
	case KindTicketNotFound:
		return "ticket not found"
	case KindNotAuthorized:
		return "not authorized to check in this ticket"
	case KindAlreadyCheckedIn:
		return "ticket already checked in"
	case KindStorageUnavailable:
		return "ticket storage unavailable"
	default:
		return "unknown error"
	}
}

// ValidationError carries an ErrorKind and, optionally, the underlying cause.
// Two ValidationErrors match under errors.Is when their kinds are equal.
type ValidationError struct {
	Kind ErrorKind
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Err == nil {
		return e.Kind.Message()
	}
	return fmt.Sprintf("%s: %v", e.Kind.Message(), e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func (e *ValidationError) Is(target error) bool {
	var t *ValidationError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinel errors, one per kind. Compare with errors.Is.
var (
	ErrMalformedToken     = &ValidationError{Kind: KindMalformedToken}
	ErrInvalidSignature   = &ValidationError{Kind: KindInvalidSignature}
	ErrTicketNotFound     = &ValidationError{Kind: KindTicketNotFound}
	ErrNotAuthorized      = &ValidationError{Kind: KindNotAuthorized}
	ErrAlreadyCheckedIn   = &ValidationError{Kind: KindAlreadyCheckedIn}
	ErrStorageUnavailable = &ValidationError{Kind: KindStorageUnavailable}
)

// NewError wraps cause with the given kind.
func NewError(kind ErrorKind, cause error) error {
	return &ValidationError{Kind: kind, Err: cause}
}

// KindOf returns the kind carried by err, if any.
func KindOf(err error) (ErrorKind, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Kind, true
	}
	return "", false
}
