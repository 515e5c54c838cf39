package assistant

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StallCalendar/internal/domain"
	bookingRepo "github.com/m04kA/SMC-StallCalendar/internal/infra/storage/booking"
	marketRepo "github.com/m04kA/SMC-StallCalendar/internal/infra/storage/market"
	vendorRepo "github.com/m04kA/SMC-StallCalendar/internal/infra/storage/vendor"
	"github.com/m04kA/SMC-StallCalendar/internal/service/assistant/models"
)

const (
	KindPromo    = "promo"
	KindAnalysis = "analysis"
)

// Options настройки сервиса ассистента
type Options struct {
	Brand             string
	RecencyDays       int
	RequestsPerMinute float64
	Burst             int
}

// Service генерирует рекламные тексты и краткий анализ рынков
type Service struct {
	generator    TextGenerator
	bookingRepo  BookingRepository
	marketRepo   MarketRepository
	vendorRepo   VendorRepository
	limiter      *vendorLimiter
	opts         Options
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса ассистента
func NewService(
	generator TextGenerator,
	bookingRepo BookingRepository,
	marketRepo MarketRepository,
	vendorRepo VendorRepository,
	opts Options,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		generator:    generator,
		bookingRepo:  bookingRepo,
		marketRepo:   marketRepo,
		vendorRepo:   vendorRepo,
		limiter:      newVendorLimiter(opts.RequestsPerMinute, opts.Burst),
		opts:         opts,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Promo генерирует рекламный пост для бронирования
// Доступно только владельцу бронирования
func (s *Service) Promo(ctx context.Context, actorID, bookingID string) (*models.GeneratedTextResponse, error) {
	s.logger.Info("Promo: booking id=%s by vendor=%s", bookingID, actorID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: Promo - %v", ErrStore, err)
	}

	actor, err := s.getActor(ctx, "Promo", actorID)
	if err != nil {
		return nil, err
	}
	if !actor.Role().CanModifyBooking(actor.ID, booking) {
		return nil, ErrAccessDenied
	}

	label := (&domain.Market{City: booking.Market.City, Name: booking.Market.Name}).Label()
	text, err := s.generate(ctx, "Promo", actor.ID, promoPrompt(s.opts.Brand, booking.Vendor.Name, booking.Date, label))
	if err != nil {
		return nil, err
	}

	return &models.GeneratedTextResponse{Kind: KindPromo, Subject: booking.ID, Text: text}, nil
}

// MarketAnalysis генерирует краткое обоснование, стоит ли ехать на рынок
func (s *Service) MarketAnalysis(ctx context.Context, actorID, marketID string) (*models.GeneratedTextResponse, error) {
	s.logger.Info("MarketAnalysis: market id=%s by vendor=%s", marketID, actorID)

	market, err := s.marketRepo.GetByID(ctx, marketID)
	if err != nil {
		if errors.Is(err, marketRepo.ErrMarketNotFound) {
			return nil, ErrMarketNotFound
		}
		return nil, fmt.Errorf("%w: MarketAnalysis - %v", ErrStore, err)
	}

	actor, err := s.getActor(ctx, "MarketAnalysis", actorID)
	if err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.ListByMarket(ctx, marketID)
	if err != nil {
		return nil, fmt.Errorf("%w: MarketAnalysis - %v", ErrStore, err)
	}

	facts := collectFacts(bookings, s.timeProvider.Now(), s.opts.RecencyDays)
	text, err := s.generate(ctx, "MarketAnalysis", actor.ID, analysisPrompt(s.opts.Brand, market.Label(), facts))
	if err != nil {
		return nil, err
	}

	return &models.GeneratedTextResponse{Kind: KindAnalysis, Subject: market.ID, Text: text}, nil
}

func (s *Service) generate(ctx context.Context, op, vendorID, prompt string) (string, error) {
	if !s.limiter.Allow(vendorID) {
		s.logger.Warn("%s: rate limit exceeded for vendor=%s", op, vendorID)
		return "", ErrRateLimited
	}

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Error("%s: text generation failed: %v", op, err)
		return "", fmt.Errorf("%w: %v", ErrExternalService, err)
	}
	return text, nil
}

func (s *Service) getActor(ctx context.Context, op, actorID string) (*domain.Vendor, error) {
	actor, err := s.vendorRepo.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, vendorRepo.ErrVendorNotFound) {
			return nil, ErrAccessDenied
		}
		return nil, fmt.Errorf("%w: %s - %v", ErrStore, op, err)
	}
	return actor, nil
}
