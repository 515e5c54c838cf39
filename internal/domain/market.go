package domain

import "time"

// Market represents a venue where vendors set up their stalls
type Market struct {
	ID        string
	City      string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Snapshot returns the display fields of the market as of now
func (m *Market) Snapshot() MarketSnapshot {
	return MarketSnapshot{ID: m.ID, City: m.City, Name: m.Name}
}

// Label returns "city name" for display and prompts
func (m *Market) Label() string {
	if m.City == "" {
		return m.Name
	}
	return m.City + " " + m.Name
}
