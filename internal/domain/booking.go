package domain

import "time"

// MarketSnapshot market fields copied into a booking at write time.
// Not kept in sync with later renames of the market.
type MarketSnapshot struct {
	ID   string
	City string
	Name string
}

// VendorSnapshot vendor fields copied into a booking at write time
type VendorSnapshot struct {
	ID   string
	Name string
}

// Booking represents a claim by one vendor on one market for one calendar date
type Booking struct {
	ID            string
	Date          string // YYYY-MM-DD
	Market        MarketSnapshot
	Vendor        VendorSnapshot
	Remark        string
	SalesQuantity int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnedBy returns true if the booking belongs to the vendor
func (b *Booking) OwnedBy(vendorID string) bool {
	return SameVendor(b.Vendor.ID, vendorID)
}

// Day returns the parsed booking date
func (b *Booking) Day() (time.Time, error) {
	return ParseDate(b.Date)
}

// BookingFilter filter for listing bookings
type BookingFilter struct {
	VendorID *string // case-insensitive
	MarketID *string
	FromDate *string // inclusive
	ToDate   *string // inclusive
}
