package domain

import (
	"context"
	"time"
)

// Holder is the person admitted with a ticket.
// swagger:model TicketHolder
type Holder struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// Ticket is the persisted ticket record. It is owned by the storage layer;
// the check-in core only reads it and flips CheckedIn once.
type Ticket struct {
	ID            string     `json:"id"`
	EventID       string     `json:"event_id"`
	TicketTypeID  string     `json:"ticket_type_id"`
	OwnerUserID   string     `json:"owner_user_id"`
	Holder        *Holder    `json:"holder,omitempty"`
	CheckedIn     bool       `json:"checked_in"`
	CheckInTime   *time.Time `json:"check_in_time,omitempty"`
	TransactionID string     `json:"transaction_id"`
}

// TicketSnapshot is a ticket as read at one point in time, enriched with
// everything a gate response needs. It is not assumed fresh after it is read.
type TicketSnapshot struct {
	Ticket
	EventTitle       string
	EventOrganizerID string
	TicketTypeName   string
	OwnerName        string
	OwnerEmail       string
}

// DisplayHolder returns the ticket holder if one was recorded at purchase,
// otherwise the purchasing user's details.
func (s *TicketSnapshot) DisplayHolder() Holder {
	if s.Holder != nil && (s.Holder.FullName != "" || s.Holder.Email != "") {
		return *s.Holder
	}
	return Holder{FullName: s.OwnerName, Email: s.OwnerEmail}
}

// TicketRepository is the storage collaborator for check-in.
type TicketRepository interface {
	// GetSnapshotByID reads a ticket by primary key. Returns ErrTicketNotFound
	// or an error of kind KindStorageUnavailable.
	GetSnapshotByID(ctx context.Context, ticketID string) (*TicketSnapshot, error)
	// CheckIn atomically sets checked_in = true when it is still false and
	// returns the committed snapshot. Returns ErrAlreadyCheckedIn when another
	// attempt won, ErrTicketNotFound when the row is gone.
	CheckIn(ctx context.Context, ticketID string, at time.Time) (*TicketSnapshot, error)
}

// TicketValidationService validates scanned QR payloads and admits tickets.
type TicketValidationService interface {
	// Validate decodes and verifies rawQR and returns the current ticket state.
	// It has no side effects.
	Validate(ctx context.Context, rawQR string) (*TicketSnapshot, error)
	// ValidateAndCheckIn additionally requires organizerID to own the ticket's
	// event and performs the check-in.
	ValidateAndCheckIn(ctx context.Context, rawQR, organizerID string) (*TicketSnapshot, error)
}
