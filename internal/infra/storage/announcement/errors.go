package announcement

import "errors"

var (
	// ErrAnnouncementNotFound возвращается, когда объявление не найдено
	ErrAnnouncementNotFound = errors.New("announcement.repository: announcement not found")

	ErrBuildQuery = errors.New("announcement.repository: failed to build query")
	ErrExecQuery  = errors.New("announcement.repository: failed to execute query")
	ErrScanRow    = errors.New("announcement.repository: failed to scan row")
)
