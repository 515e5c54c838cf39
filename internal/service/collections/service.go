// Package collections собирает полные снимки коллекций для живых подписок
package collections

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-StallCalendar/internal/domain"
	announcementModels "github.com/m04kA/SMC-StallCalendar/internal/service/announcements/models"
	bookingModels "github.com/m04kA/SMC-StallCalendar/internal/service/bookings/models"
	marketModels "github.com/m04kA/SMC-StallCalendar/internal/service/markets/models"
	vendorModels "github.com/m04kA/SMC-StallCalendar/internal/service/vendors/models"
)

type VendorLister interface {
	List(ctx context.Context) (*vendorModels.VendorListResponse, error)
}

type MarketLister interface {
	List(ctx context.Context) (*marketModels.MarketListResponse, error)
}

type BookingLister interface {
	List(ctx context.Context, req *bookingModels.ListBookingsRequest) (*bookingModels.BookingListResponse, error)
}

type AnnouncementReader interface {
	Latest(ctx context.Context) (*announcementModels.LatestResponse, error)
}

// Snapshot сообщение с текущим состоянием коллекции
type Snapshot struct {
	Collection domain.Collection `json:"collection"`
	Data       interface{}       `json:"data"`
}

// Service загружает снимки коллекций через сервисы предметной области
type Service struct {
	vendors       VendorLister
	markets       MarketLister
	bookings      BookingLister
	announcements AnnouncementReader
}

func NewService(vendors VendorLister, markets MarketLister, bookings BookingLister, announcements AnnouncementReader) *Service {
	return &Service{vendors: vendors, markets: markets, bookings: bookings, announcements: announcements}
}

// Load возвращает полный снимок коллекции
func (s *Service) Load(ctx context.Context, collection domain.Collection) (*Snapshot, error) {
	var (
		data interface{}
		err  error
	)

	switch collection {
	case domain.CollectionVendors:
		data, err = s.vendors.List(ctx)
	case domain.CollectionMarkets:
		data, err = s.markets.List(ctx)
	case domain.CollectionBookings:
		data, err = s.bookings.List(ctx, &bookingModels.ListBookingsRequest{})
	case domain.CollectionAnnouncements:
		data, err = s.announcements.Latest(ctx)
	default:
		return nil, fmt.Errorf("collections: unknown collection %q", collection)
	}
	if err != nil {
		return nil, err
	}

	return &Snapshot{Collection: collection, Data: data}, nil
}
