package models

import (
	"time"

	"github.com/m04kA/SMC-StallCalendar/internal/domain"
	"github.com/m04kA/SMC-StallCalendar/internal/schedule"
)

// Request модели

// ListBookingsRequest запрос списка бронирований
// Date и Month взаимоисключающие
type ListBookingsRequest struct {
	Date     *string // YYYY-MM-DD
	Month    *string // YYYY-MM
	VendorID *string
}

// ConflictPreviewRequest запрос предварительной проверки конфликтов
type ConflictPreviewRequest struct {
	MarketID         string
	Date             string
	ExcludeBookingID string
}

// SalesRequest запрос сводки продаж
type SalesRequest struct {
	ActorID  string
	VendorID string
	From     string
	To       string
}

// Response модели

// MarketSnapshotResponse снимок рынка на момент записи
type MarketSnapshotResponse struct {
	ID   string `json:"id"`
	City string `json:"city"`
	Name string `json:"name"`
}

// VendorSnapshotResponse снимок продавца на момент записи
type VendorSnapshotResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            string                 `json:"id"`
	Date          string                 `json:"date"` // "2024-03-01"
	Market        MarketSnapshotResponse `json:"market"`
	Vendor        VendorSnapshotResponse `json:"vendor"`
	Remark        string                 `json:"remark"`
	SalesQuantity int                    `json:"salesQuantity"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// ConflictPreviewResponse результат проверки конфликтов
type ConflictPreviewResponse struct {
	HasConflict bool              `json:"hasConflict"`
	Conflicts   []BookingResponse `json:"conflicts"`
}

// DeletionTicketResponse подтверждение, которое нужно передать для удаления
type DeletionTicketResponse struct {
	Token     string    `json:"confirmation"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// MarketSalesResponse продажи по рынку
type MarketSalesResponse struct {
	MarketID   string `json:"marketId"`
	MarketCity string `json:"marketCity"`
	MarketName string `json:"marketName"`
	Total      int    `json:"total"`
	Bookings   int    `json:"bookings"`
}

// SalesResponse сводка продаж продавца за период
type SalesResponse struct {
	VendorID string                `json:"vendorId"`
	From     string                `json:"from"`
	To       string                `json:"to"`
	Total    int                   `json:"total"`
	Bookings int                   `json:"bookings"`
	Mean     float64               `json:"mean"`
	Median   float64               `json:"median"`
	ByMarket []MarketSalesResponse `json:"byMarket"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:   b.ID,
		Date: b.Date,
		Market: MarketSnapshotResponse{
			ID:   b.Market.ID,
			City: b.Market.City,
			Name: b.Market.Name,
		},
		Vendor: VendorSnapshotResponse{
			ID:   b.Vendor.ID,
			Name: b.Vendor.Name,
		},
		Remark:        b.Remark,
		SalesQuantity: b.SalesQuantity,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// FromDomainBookings конвертирует список domain моделей в DTO
func FromDomainBookings(bookings []*domain.Booking) []BookingResponse {
	result := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		if resp := FromDomainBooking(b); resp != nil {
			result = append(result, *resp)
		}
	}
	return result
}

// FromDomainBookingList конвертирует список domain моделей в ответ со списком
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	return &BookingListResponse{Bookings: FromDomainBookings(bookings)}
}

// FromSalesSummary конвертирует сводку продаж в DTO
func FromSalesSummary(s *schedule.SalesSummary) *SalesResponse {
	resp := &SalesResponse{
		VendorID: s.VendorID,
		From:     s.From,
		To:       s.To,
		Total:    s.Total,
		Bookings: s.Bookings,
		Mean:     s.Mean,
		Median:   s.Median,
		ByMarket: make([]MarketSalesResponse, 0, len(s.ByMarket)),
	}
	for _, m := range s.ByMarket {
		resp.ByMarket = append(resp.ByMarket, MarketSalesResponse{
			MarketID:   m.MarketID,
			MarketCity: m.MarketCity,
			MarketName: m.MarketName,
			Total:      m.Total,
			Bookings:   m.Bookings,
		})
	}
	return resp
}
