package domain

import "time"

// ConflictWindow bookings of the same market closer than this are in conflict
const ConflictWindow = 7 * 24 * time.Hour

// Default configuration values
const (
	DefaultRecencyDays         = 14
	DefaultRecommendationLimit = 3
	MaxRecommendationLimit     = 5
)

// Business validation constants
const (
	MaxRemarkLength       = 500
	MaxNameLength         = 100
	MaxVendorIDLength     = 64
	MaxAnnouncementLength = 2000
	MinPasswordLength     = 4
	MaxPasswordBytes      = 72 // предел bcrypt
	MaxSalesQuantity      = 1_000_000
)

// Time format constants
const (
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM
)

// UnknownVendorName shown when neither the roster nor the snapshot has a name
const UnknownVendorName = "unknown"
