package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StallCalendar/internal/domain"
	bookingRepo "github.com/m04kA/SMC-StallCalendar/internal/infra/storage/booking"
	vendorRepo "github.com/m04kA/SMC-StallCalendar/internal/infra/storage/vendor"
	"github.com/m04kA/SMC-StallCalendar/internal/schedule"
	"github.com/m04kA/SMC-StallCalendar/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo     BookingRepository
	vendorRepo      VendorRepository
	deletions       DeletionStore
	notifier        Notifier
	outcomes        OutcomeRecorder
	confirmationTTL time.Duration
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	vendorRepo VendorRepository,
	deletions DeletionStore,
	notifier Notifier,
	outcomes OutcomeRecorder,
	confirmationTTL time.Duration,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:     bookingRepo,
		vendorRepo:      vendorRepo,
		deletions:       deletions,
		notifier:        notifier,
		outcomes:        outcomes,
		confirmationTTL: confirmationTTL,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
// Календарь общий, поэтому читать можно любое бронирование
func (s *Service) GetByID(ctx context.Context, id string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s", id)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return models.FromDomainBooking(booking), nil
}

// List получает бронирования по дню, месяцу или продавцу
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter := domain.BookingFilter{VendorID: req.VendorID}

	switch {
	case req.Date != nil && req.Month != nil:
		return nil, fmt.Errorf("%w: date and month are mutually exclusive", ErrInvalidInput)
	case req.Date != nil:
		if _, err := domain.ParseDate(*req.Date); err != nil {
			s.logger.Warn("List: invalid date=%s", *req.Date)
			return nil, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, *req.Date)
		}
		filter.FromDate = req.Date
		filter.ToDate = req.Date
	case req.Month != nil:
		first, last, err := domain.ParseMonth(*req.Month)
		if err != nil {
			s.logger.Warn("List: invalid month=%s", *req.Month)
			return nil, fmt.Errorf("%w: invalid month %q", ErrInvalidInput, *req.Month)
		}
		filter.FromDate = &first
		filter.ToDate = &last
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - %v", ErrStore, err)
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// PreviewConflicts проверяет конфликты до сохранения, ничего не изменяя
// Пустой рынок означает отсутствие конфликта
func (s *Service) PreviewConflicts(ctx context.Context, req *models.ConflictPreviewRequest) (*models.ConflictPreviewResponse, error) {
	resp := &models.ConflictPreviewResponse{Conflicts: []models.BookingResponse{}}

	if strings.TrimSpace(req.MarketID) == "" {
		return resp, nil
	}
	if _, err := domain.ParseDate(req.Date); err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, req.Date)
	}

	existing, err := s.bookingRepo.ListByMarket(ctx, req.MarketID)
	if err != nil {
		s.logger.Error("PreviewConflicts: repository error for market=%s: %v", req.MarketID, err)
		return nil, fmt.Errorf("%w: PreviewConflicts - %v", ErrStore, err)
	}

	conflicts := schedule.FindConflicts(existing, req.MarketID, req.Date, req.ExcludeBookingID)
	resp.HasConflict = len(conflicts) > 0
	resp.Conflicts = models.FromDomainBookings(conflicts)
	return resp, nil
}

// RequestDeletion выдает одноразовое подтверждение удаления бронирования
// Удалить бронирование может только его владелец
func (s *Service) RequestDeletion(ctx context.Context, bookingID, vendorID string) (*models.DeletionTicketResponse, error) {
	s.logger.Info("RequestDeletion: booking id=%s by vendor=%s", bookingID, vendorID)

	booking, err := s.getBooking(ctx, "RequestDeletion", bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.checkOwnership(ctx, booking, vendorID); err != nil {
		s.logger.Warn("RequestDeletion: access denied for vendor=%s to booking id=%s", vendorID, bookingID)
		return nil, err
	}

	ticket := domain.DeletionTicket{
		Token:       uuid.NewString(),
		Kind:        domain.DeletionBooking,
		TargetID:    booking.ID,
		RequestedBy: vendorID,
		ExpiresAt:   s.timeProvider.Now().Add(s.confirmationTTL),
	}
	if err := s.deletions.Put(ticket); err != nil {
		s.logger.Error("RequestDeletion: failed to store ticket for booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: RequestDeletion - %v", ErrInternal, err)
	}

	return &models.DeletionTicketResponse{Token: ticket.Token, ExpiresAt: ticket.ExpiresAt}, nil
}

// ConfirmDeletion удаляет бронирование по ранее выданному подтверждению
func (s *Service) ConfirmDeletion(ctx context.Context, bookingID, vendorID, token string) error {
	s.logger.Info("ConfirmDeletion: booking id=%s by vendor=%s", bookingID, vendorID)

	now := s.timeProvider.Now()
	_, err := s.deletions.TakeIf(token, func(t domain.DeletionTicket) bool {
		return t.Matches(domain.DeletionBooking, bookingID, vendorID) && !t.Expired(now)
	})
	if err != nil {
		s.logger.Warn("ConfirmDeletion: invalid confirmation for booking id=%s", bookingID)
		s.outcomes.BookingOutcome("delete", "rejected")
		return ErrConfirmationInvalid
	}

	booking, err := s.getBooking(ctx, "ConfirmDeletion", bookingID)
	if err != nil {
		return err
	}

	// Права могли измениться между запросом и подтверждением
	if err := s.checkOwnership(ctx, booking, vendorID); err != nil {
		s.outcomes.BookingOutcome("delete", "rejected")
		return err
	}

	if err := s.bookingRepo.Delete(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("ConfirmDeletion: repository error for booking id=%s: %v", bookingID, err)
		s.outcomes.BookingOutcome("delete", "failed")
		return fmt.Errorf("%w: ConfirmDeletion - %v", ErrStore, err)
	}

	s.outcomes.BookingOutcome("delete", "ok")
	s.notifier.Notify(ctx, domain.CollectionBookings)

	s.logger.Info("ConfirmDeletion: successfully deleted booking id=%s", bookingID)
	return nil
}

// Sales возвращает сводку продаж продавца за период
// Продавец видит свои продажи, администратор любые
func (s *Service) Sales(ctx context.Context, req *models.SalesRequest) (*models.SalesResponse, error) {
	s.logger.Info("Sales: vendor=%s from=%s to=%s by actor=%s", req.VendorID, req.From, req.To, req.ActorID)

	if err := schedule.ValidateRange(req.From, req.To); err != nil {
		s.logger.Warn("Sales: invalid range from=%q to=%q", req.From, req.To)
		return nil, fmt.Errorf("%w: from=%q to=%q", ErrInvalidInput, req.From, req.To)
	}

	actor, err := s.vendorRepo.GetByID(ctx, req.ActorID)
	if err != nil {
		if errors.Is(err, vendorRepo.ErrVendorNotFound) {
			return nil, ErrAccessDenied
		}
		return nil, fmt.Errorf("%w: Sales - %v", ErrStore, err)
	}
	if !actor.Role().CanReadSalesOf(actor.ID, req.VendorID) {
		s.logger.Warn("Sales: actor=%s cannot read sales of vendor=%s", req.ActorID, req.VendorID)
		return nil, ErrAccessDenied
	}

	vendorID := req.VendorID
	bookings, err := s.bookingRepo.List(ctx, domain.BookingFilter{
		VendorID: &vendorID,
		FromDate: &req.From,
		ToDate:   &req.To,
	})
	if err != nil {
		s.logger.Error("Sales: repository error for vendor=%s: %v", req.VendorID, err)
		return nil, fmt.Errorf("%w: Sales - %v", ErrStore, err)
	}

	summary, err := schedule.SummarizeSales(bookings, req.VendorID, req.From, req.To)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return models.FromSalesSummary(summary), nil
}

func (s *Service) getBooking(ctx context.Context, op, id string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - %v", ErrStore, op, err)
	}
	return booking, nil
}

// checkOwnership проверяет, что продавец существует и владеет бронированием
func (s *Service) checkOwnership(ctx context.Context, booking *domain.Booking, vendorID string) error {
	vendor, err := s.vendorRepo.GetByID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, vendorRepo.ErrVendorNotFound) {
			return ErrAccessDenied
		}
		return fmt.Errorf("%w: checkOwnership - %v", ErrStore, err)
	}

	if !vendor.Role().CanModifyBooking(vendor.ID, booking) {
		return ErrAccessDenied
	}
	return nil
}
