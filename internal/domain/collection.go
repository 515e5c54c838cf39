package domain

// Collection name of a live-updated record set
type Collection string

const (
	CollectionVendors       Collection = "vendors"
	CollectionMarkets       Collection = "markets"
	CollectionBookings      Collection = "bookings"
	CollectionAnnouncements Collection = "announcements"
)

// Collections all collections, in a stable order
var Collections = []Collection{
	CollectionVendors,
	CollectionMarkets,
	CollectionBookings,
	CollectionAnnouncements,
}

// ParseCollection returns the collection by name
func ParseCollection(name string) (Collection, bool) {
	for _, c := range Collections {
		if string(c) == name {
			return c, true
		}
	}
	return "", false
}
