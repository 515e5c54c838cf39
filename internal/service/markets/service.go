package markets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StallCalendar/internal/domain"
	marketRepo "github.com/m04kA/SMC-StallCalendar/internal/infra/storage/market"
	vendorRepo "github.com/m04kA/SMC-StallCalendar/internal/infra/storage/vendor"
	"github.com/m04kA/SMC-StallCalendar/internal/service/markets/models"
)

// Service сервис справочника рынков
type Service struct {
	marketRepo   MarketRepository
	vendorRepo   VendorRepository
	notifier     Notifier
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса рынков
func NewService(
	marketRepo MarketRepository,
	vendorRepo VendorRepository,
	notifier Notifier,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		marketRepo:   marketRepo,
		vendorRepo:   vendorRepo,
		notifier:     notifier,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// List возвращает рынки, отсортированные по городу и названию
func (s *Service) List(ctx context.Context) (*models.MarketListResponse, error) {
	markets, err := s.marketRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - %v", ErrStore, err)
	}
	return models.FromDomainMarketList(markets), nil
}

// GetByID получает рынок по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.MarketResponse, error) {
	market, err := s.marketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("GetByID", id, err)
	}
	return models.FromDomainMarket(market), nil
}

// Create добавляет рынок; доступно любому продавцу
// Если рынок с таким же городом и названием уже есть, возвращается он и created=false
func (s *Service) Create(ctx context.Context, req *models.MarketRequest) (*models.MarketResponse, bool, error) {
	city, name, err := normalize(req)
	if err != nil {
		return nil, false, err
	}

	existing, err := s.marketRepo.FindByName(ctx, name, city)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, false, fmt.Errorf("%w: Create - %v", ErrStore, err)
	}
	if len(existing) > 0 {
		s.logger.Info("Create: market %s/%s already exists as id=%s", city, name, existing[0].ID)
		return models.FromDomainMarket(existing[0]), false, nil
	}

	now := s.timeProvider.Now()
	market := &domain.Market{
		ID:        uuid.NewString(),
		City:      city,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.marketRepo.Create(ctx, market); err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, false, fmt.Errorf("%w: Create - %v", ErrStore, err)
	}

	s.notifier.Notify(ctx, domain.CollectionMarkets)
	s.logger.Info("Create: market id=%s (%s) added", market.ID, market.Label())
	return models.FromDomainMarket(market), true, nil
}

// Update переименовывает рынок; доступно только администратору
// Снимки в уже созданных бронированиях не меняются
func (s *Service) Update(ctx context.Context, actorID, id string, req *models.MarketRequest) (*models.MarketResponse, error) {
	if err := s.requireAdmin(ctx, "Update", actorID); err != nil {
		return nil, err
	}

	city, name, err := normalize(req)
	if err != nil {
		return nil, err
	}

	market, err := s.marketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("Update", id, err)
	}
	market.City = city
	market.Name = name
	market.UpdatedAt = s.timeProvider.Now()

	if err := s.marketRepo.Update(ctx, market); err != nil {
		return nil, s.mapRepoError("Update", id, err)
	}

	s.notifier.Notify(ctx, domain.CollectionMarkets)
	return models.FromDomainMarket(market), nil
}

// Delete удаляет рынок; доступно только администратору
// Бронирования рынка сохраняются со своими снимками
func (s *Service) Delete(ctx context.Context, actorID, id string) error {
	if err := s.requireAdmin(ctx, "Delete", actorID); err != nil {
		return err
	}

	if err := s.marketRepo.Delete(ctx, id); err != nil {
		return s.mapRepoError("Delete", id, err)
	}

	s.notifier.Notify(ctx, domain.CollectionMarkets)
	s.logger.Info("Delete: market id=%s deleted by actor=%s", id, actorID)
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
	if !actor.Role().CanManageCatalog() {
		s.logger.Warn("%s: actor=%s is not an admin", op, actorID)
		return ErrAccessDenied
	}
	return nil
}

func (s *Service) mapRepoError(op, id string, err error) error {
	if errors.Is(err, marketRepo.ErrMarketNotFound) {
		s.logger.Warn("%s: market id=%s not found", op, id)
		return ErrMarketNotFound
	}
	s.logger.Error("%s: repository error for market id=%s: %v", op, id, err)
	return fmt.Errorf("%w: %s - %v", ErrStore, op, err)
}

func normalize(req *models.MarketRequest) (string, string, error) {
	city := strings.TrimSpace(req.City)
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return "", "", fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxNameLength || utf8.RuneCountInString(city) > domain.MaxNameLength {
		return "", "", fmt.Errorf("%w: city and name must be at most %d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	return city, name, nil
}
