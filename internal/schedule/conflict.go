// Package schedule holds the booking rules shared by every write path:
// the conflict window, market recommendations and sales aggregation.
// All functions are pure and recomputed on read.
package schedule

import (
	"github.com/m04kA/SMC-StallCalendar/internal/domain"
)

// HasConflict reports whether a booking of marketID on date would fall
// within the conflict window of an existing booking of the same market.
// excludeBookingID skips the booking being edited.
func HasConflict(bookings []*domain.Booking, marketID, date, excludeBookingID string) bool {
	return len(FindConflicts(bookings, marketID, date, excludeBookingID)) > 0
}

// FindConflicts returns the bookings that conflict with the candidate, in input order
func FindConflicts(bookings []*domain.Booking, marketID, date, excludeBookingID string) []*domain.Booking {
	if marketID == "" {
		return nil
	}

	candidate, err := domain.ParseDate(date)
	if err != nil {
		return nil
	}

	var conflicts []*domain.Booking
	for _, b := range bookings {
		if b == nil || b.Market.ID != marketID {
			continue
		}
		if excludeBookingID != "" && b.ID == excludeBookingID {
			continue
		}

		existing, err := b.Day()
		if err != nil {
			continue
		}

		gap := candidate.Sub(existing)
		if gap < 0 {
			gap = -gap
		}
		if gap < domain.ConflictWindow {
			conflicts = append(conflicts, b)
		}
	}

	return conflicts
}
