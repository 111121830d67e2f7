package domain

// ValidationResult is the uniform outcome of a validate or check-in call.
type ValidationResult struct {
	Valid  bool
	Ticket *TicketSnapshot
	Error  ErrorKind
	// Cause is the underlying error, kept for logging only.
	Cause error
}

// NewValidationResult folds a service return pair into a ValidationResult.
// Errors without a kind are reported as KindStorageUnavailable so that an
// unexpected fault is never shown to the client as a bad QR code.
func NewValidationResult(snap *TicketSnapshot, err error) ValidationResult {
	if err == nil {
		return ValidationResult{Valid: true, Ticket: snap}
	}
	kind, ok := KindOf(err)
	if !ok {
		kind = KindStorageUnavailable
	}
	return ValidationResult{Valid: false, Error: kind, Cause: err}
}
