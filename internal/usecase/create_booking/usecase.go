package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StallCalendar/internal/domain"
	marketRepo "github.com/m04kA/SMC-StallCalendar/internal/infra/storage/market"
	vendorRepo "github.com/m04kA/SMC-StallCalendar/internal/infra/storage/vendor"
	"github.com/m04kA/SMC-StallCalendar/internal/schedule"
	"github.com/m04kA/SMC-StallCalendar/pkg/ptr"
	"github.com/m04kA/SMC-StallCalendar/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	marketRepo   MarketRepository
	vendorRepo   VendorRepository
	txManager    TransactionManager
	notifier     Notifier
	outcomes     OutcomeRecorder
	policy       domain.ConflictPolicy
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	marketRepo MarketRepository,
	vendorRepo VendorRepository,
	txManager TransactionManager,
	notifier Notifier,
	outcomes OutcomeRecorder,
	policy domain.ConflictPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		marketRepo:   marketRepo,
		vendorRepo:   vendorRepo,
		txManager:    txManager,
		notifier:     notifier,
		outcomes:     outcomes,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования
// Проверка конфликтов и запись выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: vendor=%s, market=%s, date=%s, allowConflict=%t",
		req.VendorID, req.MarketID, req.Date, req.AllowConflict)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.outcomes.BookingOutcome("create", "rejected")
		return nil, err
	}

	// 2. Продавец - источник снимка имени
	vendor, err := uc.vendorRepo.GetByID(ctx, req.VendorID)
	if err != nil {
		if errors.Is(err, vendorRepo.ErrVendorNotFound) {
			uc.logger.Warn("CreateBooking: vendor id=%s not found", req.VendorID)
			return nil, ErrVendorNotFound
		}
		uc.logger.Error("CreateBooking: failed to get vendor id=%s: %v", req.VendorID, err)
		return nil, fmt.Errorf("%w: failed to get vendor: %v", ErrStore, err)
	}

	var (
		result    *domain.Booking
		conflicts []*domain.Booking
	)

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Рынок - источник снимка города и названия
		market, err := uc.marketRepo.GetByID(txCtx, req.MarketID)
		if err != nil {
			if errors.Is(err, marketRepo.ErrMarketNotFound) {
				uc.logger.Warn("CreateBooking: market id=%s not found", req.MarketID)
				return ErrMarketNotFound
			}
			return fmt.Errorf("%w: failed to get market: %w", ErrStore, err)
		}

		// 3.2. Все бронирования рынка с блокировкой (FOR UPDATE)
		existing, err := uc.bookingRepo.ListByMarket(txCtx, req.MarketID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings of market=%s: %v", req.MarketID, err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrStore, err)
		}

		// 3.3. Проверка конфликтов и политика
		conflicts = schedule.FindConflicts(existing, req.MarketID, req.Date, "")
		if len(conflicts) > 0 {
			if !uc.policy.Permits(req.AllowConflict) {
				uc.logger.Warn("CreateBooking: %d conflict(s) for market=%s date=%s", len(conflicts), req.MarketID, req.Date)
				return &ConflictError{Conflicts: conflicts}
			}
			uc.logger.Info("CreateBooking: writing despite %d conflict(s), acknowledged by vendor=%s", len(conflicts), vendor.ID)
		}

		// 3.4. Создаем бронирование со снимками
		now := uc.timeProvider.Now()
		booking := &domain.Booking{
			ID:            uuid.NewString(),
			Date:          req.Date,
			Market:        market.Snapshot(),
			Vendor:        domain.VendorSnapshot{ID: vendor.ID, Name: vendor.Name},
			Remark:        ptr.Deref(req.Remark, ""),
			SalesQuantity: ptr.Deref(req.SalesQuantity, 0),
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		if err := uc.bookingRepo.Create(txCtx, booking); err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrStore, err)
		}

		result = booking
		return nil
	})

	if err != nil {
		return nil, uc.mapTxError(err)
	}

	uc.outcomes.BookingOutcome("create", "ok")
	uc.notifier.Notify(ctx, domain.CollectionBookings)

	uc.logger.Info("CreateBooking: successfully created booking id=%s", result.ID)
	return &Response{Booking: result, Conflicts: conflicts}, nil
}

func (uc *UseCase) mapTxError(err error) error {
	switch {
	case errors.Is(err, ErrBookingConflict):
		uc.outcomes.BookingOutcome("create", "conflict")
		return err
	case errors.Is(err, txmanager.ErrSerialization):
		uc.logger.Warn("CreateBooking: serialization failure: %v", err)
		uc.outcomes.BookingOutcome("create", "conflict")
		return fmt.Errorf("%w: %v", ErrConcurrentModification, err)
	case errors.Is(err, ErrMarketNotFound):
		uc.outcomes.BookingOutcome("create", "rejected")
		return err
	case errors.Is(err, ErrStore):
		uc.outcomes.BookingOutcome("create", "failed")
		return err
	case errors.Is(err, txmanager.ErrTransaction):
		uc.logger.Error("CreateBooking: transaction error: %v", err)
		uc.outcomes.BookingOutcome("create", "failed")
		return fmt.Errorf("%w: %v", ErrStore, err)
	default:
		uc.outcomes.BookingOutcome("create", "failed")
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
