package domain

import (
	"strings"
	"time"
)

// Vendor represents a stallholder account
type Vendor struct {
	ID           string
	Name         string
	IsAdmin      bool
	PasswordHash *string // nil = no password set
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Key returns the case-insensitive lookup key of the vendor ID
func (v *Vendor) Key() string {
	return VendorKey(v.ID)
}

// HasPassword returns true if the vendor has a password set
func (v *Vendor) HasPassword() bool {
	return v.PasswordHash != nil && *v.PasswordHash != ""
}

// Role returns the capability set of the vendor
func (v *Vendor) Role() Role {
	if v.IsAdmin {
		return RoleAdmin
	}
	return RoleVendor
}

// VendorKey normalizes a vendor ID for case-insensitive comparison
func VendorKey(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// SameVendor compares two vendor IDs case-insensitively
func SameVendor(a, b string) bool {
	return VendorKey(a) == VendorKey(b)
}
