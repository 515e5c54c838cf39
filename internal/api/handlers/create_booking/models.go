package create_booking

import (
	"github.com/m04kA/SMC-StallCalendar/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-StallCalendar/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	MarketID      string  `json:"marketId"`
	Date          string  `json:"date"` // "2024-03-01"
	Remark        *string `json:"remark,omitempty"`
	SalesQuantity *int    `json:"salesQuantity,omitempty"`
	AllowConflict bool    `json:"allowConflict"`
}

// BookingResponse HTTP response model
// Warnings заполняется, когда запись прошла несмотря на конфликт
type BookingResponse struct {
	Booking  *models.BookingResponse  `json:"booking"`
	Warnings []models.BookingResponse `json:"warnings,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(vendorID string) *createBooking.Request {
	return &createBooking.Request{
		VendorID:      vendorID,
		MarketID:      r.MarketID,
		Date:          r.Date,
		Remark:        r.Remark,
		SalesQuantity: r.SalesQuantity,
		AllowConflict: r.AllowConflict,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	result := &BookingResponse{Booking: models.FromDomainBooking(resp.Booking)}
	if len(resp.Conflicts) > 0 {
		result.Warnings = models.FromDomainBookings(resp.Conflicts)
	}
	return result
}
