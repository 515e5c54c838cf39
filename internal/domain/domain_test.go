package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate_UTCMidnight(t *testing.T) {
	d, err := ParseDate("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, d.Location())
	assert.Equal(t, 0, d.Hour())

	next, err := ParseDate("2024-03-08")
	require.NoError(t, err)
	assert.Equal(t, ConflictWindow, next.Sub(d))

	_, err = ParseDate("2024/03/01")
	assert.Error(t, err)
}

func TestParseMonth(t *testing.T) {
	first, last, err := ParseMonth("2024-02")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", first)
	assert.Equal(t, "2024-02-29", last)

	_, _, err = ParseMonth("2024-13")
	assert.Error(t, err)
}

func TestBooking_OwnedByIsCaseInsensitive(t *testing.T) {
	b := &Booking{Vendor: VendorSnapshot{ID: "Vendor-A"}}
	assert.True(t, b.OwnedBy("vendor-a"))
	assert.False(t, b.OwnedBy("vendor-b"))
}

func TestRole_AdminHasNoBookingOverride(t *testing.T) {
	b := &Booking{Vendor: VendorSnapshot{ID: "vendor-a"}}
	admin := &Vendor{ID: "sd", IsAdmin: true}

	assert.True(t, admin.Role().CanManageRoster())
	assert.False(t, admin.Role().CanModifyBooking(admin.ID, b))
	assert.True(t, RoleVendor.CanModifyBooking("VENDOR-A", b))
	assert.False(t, RoleVendor.CanExchangeBookings())
	assert.True(t, RoleVendor.CanReadSalesOf("vendor-a", "Vendor-A"))
	assert.True(t, RoleAdmin.CanReadSalesOf("sd", "vendor-a"))
}

func TestDeletionTicket(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	ticket := &DeletionTicket{
		Kind:        DeletionBooking,
		TargetID:    "b1",
		RequestedBy: "vendor-a",
		ExpiresAt:   now.Add(time.Minute),
	}

	assert.False(t, ticket.Expired(now))
	assert.True(t, ticket.Expired(now.Add(time.Minute)))
	assert.True(t, ticket.Matches(DeletionBooking, "b1", "VENDOR-A"))
	assert.False(t, ticket.Matches(DeletionVendor, "b1", "vendor-a"))
	assert.False(t, ticket.Matches(DeletionBooking, "b2", "vendor-a"))
}

func TestParseCollection(t *testing.T) {
	c, ok := ParseCollection("bookings")
	assert.True(t, ok)
	assert.Equal(t, CollectionBookings, c)

	_, ok = ParseCollection("users")
	assert.False(t, ok)
}

func TestConflictPolicy_Permits(t *testing.T) {
	assert.False(t, ConflictPolicyStrict.Permits(true))
	assert.False(t, ConflictPolicyWarn.Permits(false))
	assert.True(t, ConflictPolicyWarn.Permits(true))
}
