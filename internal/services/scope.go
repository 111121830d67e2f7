package services

import "ticketcheckin/internal/domain"

// Authorize reports whether organizerID owns the event the ticket was issued for.
func Authorize(organizerID string, snap *domain.TicketSnapshot) bool {
	if organizerID == "" || snap == nil {
		return false
	}
	return snap.EventOrganizerID == organizerID
}
