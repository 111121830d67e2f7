package domain

import (
	"context"
	"time"
)

// SubjectTicketCheckedIn is published once per successful check-in.
const SubjectTicketCheckedIn = "ticket.checked_in"

// TicketCheckedInEvent is the payload published after a check-in commits.
// Dashboards consume it to update live attendance counts.
type TicketCheckedInEvent struct {
	TicketID     string    `json:"ticket_id"`
	EventID      string    `json:"event_id"`
	TicketTypeID string    `json:"ticket_type_id"`
	OrganizerID  string    `json:"organizer_id"`
	CheckInTime  time.Time `json:"check_in_time"`
}

// EventPublisher publishes domain events to the message bus.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, payload any) error
	Close() error
}

// RateLimiter admits or rejects one request for key.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
