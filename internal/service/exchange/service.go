package exchange

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-StallCalendar/internal/domain"
	vendorRepo "github.com/m04kA/SMC-StallCalendar/internal/infra/storage/vendor"
	"github.com/m04kA/SMC-StallCalendar/internal/service/exchange/models"
)

const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Service выгрузка бронирований в CSV и XLSX
type Service struct {
	bookingRepo  BookingRepository
	vendorRepo   VendorRepository
	brand        string
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса выгрузки
func NewService(
	bookingRepo BookingRepository,
	vendorRepo VendorRepository,
	brand string,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		vendorRepo:   vendorRepo,
		brand:        brand,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Export выгружает все бронирования; доступно только администратору
func (s *Service) Export(ctx context.Context, actorID string, format models.Format) (*models.ExportFile, error) {
	s.logger.Info("Export: format=%s by actor=%s", format, actorID)

	if format != models.FormatCSV && format != models.FormatXLSX {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	actor, err := s.vendorRepo.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, vendorRepo.ErrVendorNotFound) {
			return nil, ErrAccessDenied
		}
		return nil, fmt.Errorf("%w: Export - %v", ErrStore, err)
	}
	if !actor.Role().CanExchangeBookings() {
		s.logger.Warn("Export: actor=%s is not an admin", actorID)
		return nil, ErrAccessDenied
	}

	bookings, err := s.bookingRepo.List(ctx, domain.BookingFilter{})
	if err != nil {
		s.logger.Error("Export: repository error: %v", err)
		return nil, fmt.Errorf("%w: Export - %v", ErrStore, err)
	}
	vendors, err := s.vendorRepo.List(ctx)
	if err != nil {
		s.logger.Error("Export: repository error: %v", err)
		return nil, fmt.Errorf("%w: Export - %v", ErrStore, err)
	}

	rows := BuildRows(bookings, vendors)
	name := fmt.Sprintf("%s_%s.%s", s.brand, domain.FormatDate(s.timeProvider.Now()), format)

	var file *models.ExportFile
	switch format {
	case models.FormatXLSX:
		data, err := EncodeXLSX(rows)
		if err != nil {
			return nil, err
		}
		file = &models.ExportFile{Filename: name, ContentType: contentTypeXLSX, Data: data}
	default:
		data, err := EncodeCSV(rows)
		if err != nil {
			return nil, err
		}
		file = &models.ExportFile{Filename: name, ContentType: contentTypeCSV, Data: data}
	}

	s.logger.Info("Export: %d rows written to %s", len(rows), name)
	return file, nil
}

// BuildRows строит строки выгрузки, отсортированные по дате и названию рынка
// Имя продавца берется из текущего списка, затем из снимка, затем "unknown"
func BuildRows(bookings []*domain.Booking, vendors []*domain.Vendor) []models.Row {
	names := make(map[string]string, len(vendors))
	for _, v := range vendors {
		names[v.Key()] = v.Name
	}

	rows := make([]models.Row, 0, len(bookings))
	for _, b := range bookings {
		name := names[domain.VendorKey(b.Vendor.ID)]
		if name == "" {
			name = b.Vendor.Name
		}
		if name == "" {
			name = domain.UnknownVendorName
		}
		rows = append(rows, models.Row{
			Date:       b.Date,
			MarketCity: b.Market.City,
			MarketName: b.Market.Name,
			VendorID:   b.Vendor.ID,
			VendorName: name,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date < rows[j].Date
		}
		return rows[i].MarketName < rows[j].MarketName
	})
	return rows
}
