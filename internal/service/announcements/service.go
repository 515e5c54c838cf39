package announcements

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StallCalendar/internal/domain"
	announcementRepo "github.com/m04kA/SMC-StallCalendar/internal/infra/storage/announcement"
	vendorRepo "github.com/m04kA/SMC-StallCalendar/internal/infra/storage/vendor"
	"github.com/m04kA/SMC-StallCalendar/internal/service/announcements/models"
)

// Service сервис объявлений администратора
type Service struct {
	announcementRepo AnnouncementRepository
	vendorRepo       VendorRepository
	notifier         Notifier
	timeProvider     TimeProvider
	logger           Logger
}

// NewService создает новый экземпляр сервиса объявлений
func NewService(
	announcementRepo AnnouncementRepository,
	vendorRepo VendorRepository,
	notifier Notifier,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		announcementRepo: announcementRepo,
		vendorRepo:       vendorRepo,
		notifier:         notifier,
		timeProvider:     timeProvider,
		logger:           logger,
	}
}

// Latest возвращает последнее объявление
func (s *Service) Latest(ctx context.Context) (*models.LatestResponse, error) {
	latest, err := s.announcementRepo.Latest(ctx, 1)
	if err != nil {
		s.logger.Error("Latest: repository error: %v", err)
		return nil, fmt.Errorf("%w: Latest - %v", ErrStore, err)
	}

	resp := &models.LatestResponse{}
	if len(latest) > 0 {
		resp.Announcement = models.FromDomainAnnouncement(latest[0])
	}
	return resp, nil
}

// Create публикует объявление; доступно только администратору
func (s *Service) Create(ctx context.Context, actorID string, req *models.CreateAnnouncementRequest) (*models.AnnouncementResponse, error) {
	if err := s.requireAdmin(ctx, "Create", actorID); err != nil {
		return nil, err
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(content) > domain.MaxAnnouncementLength {
		return nil, fmt.Errorf("%w: content is longer than %d characters", ErrInvalidInput, domain.MaxAnnouncementLength)
	}

	a := &domain.Announcement{
		ID:        uuid.NewString(),
		Content:   content,
		CreatedAt: s.timeProvider.Now(),
	}
	if err := s.announcementRepo.Create(ctx, a); err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - %v", ErrStore, err)
	}

	s.notifier.Notify(ctx, domain.CollectionAnnouncements)
	s.logger.Info("Create: announcement id=%s published by actor=%s", a.ID, actorID)
	return models.FromDomainAnnouncement(a), nil
}

// Delete удаляет объявление; доступно только администратору
func (s *Service) Delete(ctx context.Context, actorID, id string) error {
	if err := s.requireAdmin(ctx, "Delete", actorID); err != nil {
		return err
	}

	if err := s.announcementRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, announcementRepo.ErrAnnouncementNotFound) {
			return ErrAnnouncementNotFound
		}
		s.logger.Error("Delete: repository error for announcement id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - %v", ErrStore, err)
	}

	s.notifier.Notify(ctx, domain.CollectionAnnouncements)
	return nil
}

func (s *Service) requireAdmin(ctx context.Context, op, actorID string) error {
	actor, err := s.vendorRepo.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, vendorRepo.ErrVendorNotFound) {
			return ErrAccessDenied
		}
		return fmt.Errorf("%w: %s - %v", ErrStore, op, err)
	}
	if !actor.Role().CanPublishAnnouncements() {
		s.logger.Warn("%s: actor=%s is not an admin", op, actorID)
		return ErrAccessDenied
	}
	return nil
}
