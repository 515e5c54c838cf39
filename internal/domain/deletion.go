package domain

import "time"

// DeletionKind type of record a deletion ticket targets
type DeletionKind string

const (
	DeletionBooking DeletionKind = "booking"
	DeletionVendor  DeletionKind = "vendor"
)

// DeletionTicket pending confirmation of a two-phase delete
type DeletionTicket struct {
	Token       string
	Kind        DeletionKind
	TargetID    string
	RequestedBy string
	ExpiresAt   time.Time
}

// Expired returns true if the ticket can no longer be confirmed
func (t *DeletionTicket) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// Matches returns true if the ticket authorizes deleting target by actor
func (t *DeletionTicket) Matches(kind DeletionKind, targetID, actorID string) bool {
	return t.Kind == kind && t.TargetID == targetID && SameVendor(t.RequestedBy, actorID)
}
