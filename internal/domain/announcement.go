package domain

import "time"

// Announcement admin-authored broadcast; only the latest one is displayed
type Announcement struct {
	ID        string
	Content   string
	CreatedAt time.Time
}
