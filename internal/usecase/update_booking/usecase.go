package update_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StallCalendar/internal/domain"
	bookingRepo "github.com/m04kA/SMC-StallCalendar/internal/infra/storage/booking"
	marketRepo "github.com/m04kA/SMC-StallCalendar/internal/infra/storage/market"
	vendorRepo "github.com/m04kA/SMC-StallCalendar/internal/infra/storage/vendor"
	"github.com/m04kA/SMC-StallCalendar/internal/schedule"
	"github.com/m04kA/SMC-StallCalendar/pkg/txmanager"
)

// UseCase use case для изменения бронирования
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
	timeProvider TimeProvider,
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
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute выполняет use case изменения бронирования
// Снимки рынка и продавца берутся заново из текущих записей
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBooking: booking=%s, vendor=%s, market=%s, date=%s, allowConflict=%t",
		req.BookingID, req.VendorID, req.MarketID, req.Date, req.AllowConflict)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBooking: validation failed: %v", err)
		uc.outcomes.BookingOutcome("update", "rejected")
		return nil, err
	}

	// 2. Продавец: права и источник снимка имени
	vendor, err := uc.vendorRepo.GetByID(ctx, req.VendorID)
	if err != nil {
		if errors.Is(err, vendorRepo.ErrVendorNotFound) {
			return nil, ErrAccessDenied
		}
		return nil, fmt.Errorf("%w: failed to get vendor: %v", ErrStore, err)
	}

	var (
		result    *domain.Booking
		conflicts []*domain.Booking
	)

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Бронирование и проверка владельца
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %w", ErrStore, err)
		}
		if !vendor.Role().CanModifyBooking(vendor.ID, booking) {
			uc.logger.Warn("UpdateBooking: vendor=%s does not own booking=%s", vendor.ID, booking.ID)
			return ErrAccessDenied
		}

		// 3.2. Рынок
		market, err := uc.marketRepo.GetByID(txCtx, req.MarketID)
		if err != nil {
			if errors.Is(err, marketRepo.ErrMarketNotFound) {
				return ErrMarketNotFound
			}
			return fmt.Errorf("%w: failed to get market: %w", ErrStore, err)
		}

		// 3.3. Конфликты без учета самого бронирования
		existing, err := uc.bookingRepo.ListByMarket(txCtx, req.MarketID)
		if err != nil {
			return fmt.Errorf("%w: failed to get bookings: %w", ErrStore, err)
		}
		conflicts = schedule.FindConflicts(existing, req.MarketID, req.Date, booking.ID)
		if len(conflicts) > 0 && !uc.policy.Permits(req.AllowConflict) {
			uc.logger.Warn("UpdateBooking: %d conflict(s) for market=%s date=%s", len(conflicts), req.MarketID, req.Date)
			return &ConflictError{Conflicts: conflicts}
		}

		// 3.4. Обновляем поля и снимки
		booking.Date = req.Date
		booking.Market = market.Snapshot()
		booking.Vendor = domain.VendorSnapshot{ID: booking.Vendor.ID, Name: vendor.Name}
		if req.Remark != nil {
			booking.Remark = *req.Remark
		}
		if req.SalesQuantity != nil {
			booking.SalesQuantity = *req.SalesQuantity
		}
		booking.UpdatedAt = uc.timeProvider.Now()

		if err := uc.bookingRepo.Update(txCtx, booking); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to update booking: %w", ErrStore, err)
		}

		result = booking
		return nil
	})

	if err != nil {
		return nil, uc.mapTxError(err)
	}

	uc.outcomes.BookingOutcome("update", "ok")
	uc.notifier.Notify(ctx, domain.CollectionBookings)

	uc.logger.Info("UpdateBooking: successfully updated booking id=%s", result.ID)
	return &Response{Booking: result, Conflicts: conflicts}, nil
}

func (uc *UseCase) mapTxError(err error) error {
	switch {
	case errors.Is(err, ErrBookingConflict):
		uc.outcomes.BookingOutcome("update", "conflict")
		return err
	case errors.Is(err, txmanager.ErrSerialization):
		uc.logger.Warn("UpdateBooking: serialization failure: %v", err)
		uc.outcomes.BookingOutcome("update", "conflict")
		return fmt.Errorf("%w: %v", ErrConcurrentModification, err)
	case errors.Is(err, ErrBookingNotFound), errors.Is(err, ErrAccessDenied), errors.Is(err, ErrMarketNotFound):
		uc.outcomes.BookingOutcome("update", "rejected")
		return err
	case errors.Is(err, ErrStore):
		uc.logger.Error("UpdateBooking: store error: %v", err)
		uc.outcomes.BookingOutcome("update", "failed")
		return err
	case errors.Is(err, txmanager.ErrTransaction):
		uc.logger.Error("UpdateBooking: transaction error: %v", err)
		uc.outcomes.BookingOutcome("update", "failed")
		return fmt.Errorf("%w: %v", ErrStore, err)
	default:
		uc.outcomes.BookingOutcome("update", "failed")
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
