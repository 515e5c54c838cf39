package models

import (
	"time"

	"github.com/m04kA/SMC-StallCalendar/internal/domain"
)

// CreateAnnouncementRequest запрос на публикацию объявления
type CreateAnnouncementRequest struct {
	Content string `json:"content"`
}

// AnnouncementResponse ответ с объявлением
type AnnouncementResponse struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// LatestResponse последнее объявление; null, если объявлений нет
type LatestResponse struct {
	Announcement *AnnouncementResponse `json:"announcement"`
}

// FromDomainAnnouncement конвертирует domain модель в DTO
func FromDomainAnnouncement(a *domain.Announcement) *AnnouncementResponse {
	if a == nil {
		return nil
	}
	return &AnnouncementResponse{ID: a.ID, Content: a.Content, CreatedAt: a.CreatedAt}
}
