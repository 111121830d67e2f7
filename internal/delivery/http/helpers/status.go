package helpers

import (
	"net/http"

	"ticketcheckin/internal/domain"
)

// kindStatus maps every validation error kind to its HTTP status. A scanned
// code that is bad in any way is a client error; only storage faults are 500.
var kindStatus = map[domain.ErrorKind]int{
	domain.KindMalformedToken:     http.StatusBadRequest,
	domain.KindInvalidSignature:   http.StatusBadRequest,
	domain.KindTicketNotFound:     http.StatusBadRequest,
	domain.KindNotAuthorized:      http.StatusBadRequest,
	domain.KindAlreadyCheckedIn:   http.StatusBadRequest,
	domain.KindStorageUnavailable: http.StatusInternalServerError,
}

// StatusForKind returns the HTTP status for kind, or 500 for an unknown kind.
func StatusForKind(kind domain.ErrorKind) int {
	if status, ok := kindStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// WriteKindError writes the error response for a validation error kind.
func WriteKindError(w http.ResponseWriter, kind domain.ErrorKind) {
	WriteJSONError(w, StatusForKind(kind), string(kind), kind.Message())
}

// WriteInternalError writes the generic 500 response for unexpected faults.
func WriteInternalError(w http.ResponseWriter) {
	WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, "Internal server error")
}
