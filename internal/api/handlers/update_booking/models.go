package update_booking

import (
	"github.com/m04kA/SMC-StallCalendar/internal/service/bookings/models"
	updateBooking "github.com/m04kA/SMC-StallCalendar/internal/usecase/update_booking"
)

// UpdateBookingRequest HTTP request model
// remark и salesQuantity меняются, только если переданы
type UpdateBookingRequest struct {
	MarketID      string  `json:"marketId"`
	Date          string  `json:"date"`
	Remark        *string `json:"remark,omitempty"`
	SalesQuantity *int    `json:"salesQuantity,omitempty"`
	AllowConflict bool    `json:"allowConflict"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	Booking  *models.BookingResponse  `json:"booking"`
	Warnings []models.BookingResponse `json:"warnings,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateBookingRequest) ToUseCaseRequest(vendorID, bookingID string) *updateBooking.Request {
	return &updateBooking.Request{
		VendorID:      vendorID,
		BookingID:     bookingID,
		MarketID:      r.MarketID,
		Date:          r.Date,
		Remark:        r.Remark,
		SalesQuantity: r.SalesQuantity,
		AllowConflict: r.AllowConflict,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateBooking.Response) *BookingResponse {
	result := &BookingResponse{Booking: models.FromDomainBooking(resp.Booking)}
	if len(resp.Conflicts) > 0 {
		result.Warnings = models.FromDomainBookings(resp.Conflicts)
	}
	return result
}
