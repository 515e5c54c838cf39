package domain

// Role capability set of an account
type Role string

const (
	RoleVendor Role = "vendor"
	RoleAdmin  Role = "admin"
)

// CanManageRoster returns true if the role may create, edit and delete vendors
func (r Role) CanManageRoster() bool {
	return r == RoleAdmin
}

// CanManageCatalog returns true if the role may edit and delete markets
func (r Role) CanManageCatalog() bool {
	return r == RoleAdmin
}

// CanPublishAnnouncements returns true if the role may post and remove announcements
func (r Role) CanPublishAnnouncements() bool {
	return r == RoleAdmin
}

// CanExchangeBookings returns true if the role may bulk export and import bookings
func (r Role) CanExchangeBookings() bool {
	return r == RoleAdmin
}

// CanReadSalesOf returns true if the role may read the sales figures of another vendor
func (r Role) CanReadSalesOf(actorID, vendorID string) bool {
	return r == RoleAdmin || SameVendor(actorID, vendorID)
}

// CanModifyBooking returns true if the actor may edit or delete the booking.
// Admins have no override on bookings of other vendors.
func (r Role) CanModifyBooking(actorID string, b *Booking) bool {
	return b.OwnedBy(actorID)
}
