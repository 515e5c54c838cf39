package get_recommendations

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-StallCalendar/internal/domain"
	"github.com/m04kA/SMC-StallCalendar/internal/schedule"
)

// UseCase use case рекомендаций рынков
// Результат пересчитывается на каждый запрос и нигде не хранится
type UseCase struct {
	bookingRepo  BookingRepository
	marketRepo   MarketRepository
	recencyDays  int
	defaultLimit int
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	marketRepo MarketRepository,
	recencyDays int,
	defaultLimit int,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		marketRepo:   marketRepo,
		recencyDays:  recencyDays,
		defaultLimit: defaultLimit,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute выполняет use case
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if strings.TrimSpace(req.VendorID) == "" {
		return nil, fmt.Errorf("%w: vendorID is required", ErrInvalidInput)
	}

	limit := uc.defaultLimit
	if req.Limit != nil {
		if *req.Limit < 1 {
			return nil, fmt.Errorf("%w: limit must be positive", ErrInvalidInput)
		}
		limit = *req.Limit
	}

	// Бронирования и рынки загружаются параллельно
	var (
		bookings []*domain.Booking
		markets  []*domain.Market
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bookings, err = uc.bookingRepo.List(gctx, domain.BookingFilter{})
		if err != nil {
			return fmt.Errorf("%w: failed to list bookings: %v", ErrStore, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		markets, err = uc.marketRepo.List(gctx)
		if err != nil {
			return fmt.Errorf("%w: failed to list markets: %v", ErrStore, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		uc.logger.Error("GetRecommendations: %v", err)
		return nil, err
	}

	suggestions := schedule.Recommend(bookings, markets, schedule.Options{
		VendorID:    req.VendorID,
		Now:         uc.timeProvider.Now(),
		RecencyDays: uc.recencyDays,
		Limit:       limit,
	})

	resp := &Response{
		RecencyDays:     uc.recencyDays,
		Recommendations: make([]Recommendation, 0, len(suggestions)),
	}
	for _, s := range suggestions {
		resp.Recommendations = append(resp.Recommendations, Recommendation{
			MarketID:     s.Market.ID,
			MarketCity:   s.Market.City,
			MarketName:   s.Market.Name,
			Category:     string(s.Category),
			BookingCount: s.BookingCount,
			VendorCount:  s.VendorCount,
			LastBooked:   s.LastBooked,
		})
	}

	uc.logger.Info("GetRecommendations: vendor=%s, %d market(s) from %d", req.VendorID, len(resp.Recommendations), len(markets))
	return resp, nil
}
