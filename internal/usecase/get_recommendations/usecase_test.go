package get_recommendations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StallCalendar/internal/domain"
	"github.com/m04kA/SMC-StallCalendar/pkg/logger"
	"github.com/m04kA/SMC-StallCalendar/pkg/ptr"
)

type fakeBookings struct {
	bookings []*domain.Booking
	err      error
}

func (f fakeBookings) List(context.Context, domain.BookingFilter) ([]*domain.Booking, error) {
	return f.bookings, f.err
}

type fakeMarkets []*domain.Market

func (f fakeMarkets) List(context.Context) ([]*domain.Market, error) { return f, nil }

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func booking(market, vendor, date string) *domain.Booking {
	return &domain.Booking{Date: date, Market: domain.MarketSnapshot{ID: market}, Vendor: domain.VendorSnapshot{ID: vendor}}
}

func TestExecute(t *testing.T) {
	markets := fakeMarkets{
		{ID: "market1", City: "彰化縣", Name: "和美市場"},
		{ID: "market2", City: "台中市", Name: "向上市場"},
		{ID: "market3", City: "彰化縣", Name: "員林第一市場"},
	}
	bookings := fakeBookings{bookings: []*domain.Booking{
		booking("market1", "vendor-a", "2024-01-05"),
		booking("market1", "vendor-a", "2024-01-20"),
		booking("market2", "vendor-b", "2024-02-10"),
		booking("market3", "vendor-b", "2024-03-08"), // в пределах 14 дней
	}}
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	uc := NewUseCase(bookings, markets, 14, 3, fixedTime{now: now}, logger.NewNop())
	resp, err := uc.Execute(context.Background(), &Request{VendorID: "vendor-a"})
	require.NoError(t, err)
	require.Len(t, resp.Recommendations, 2)
	assert.Equal(t, "market1", resp.Recommendations[0].MarketID)
	assert.Equal(t, "best_match", resp.Recommendations[0].Category)
	assert.Equal(t, 2, resp.Recommendations[0].VendorCount)
	assert.Equal(t, "market2", resp.Recommendations[1].MarketID)
	assert.Equal(t, "popular", resp.Recommendations[1].Category)

	resp, err = uc.Execute(context.Background(), &Request{VendorID: "vendor-a", Limit: ptr.Ptr(1)})
	require.NoError(t, err)
	assert.Len(t, resp.Recommendations, 1)

	_, err = uc.Execute(context.Background(), &Request{VendorID: "vendor-a", Limit: ptr.Ptr(0)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_StoreFailure(t *testing.T) {
	uc := NewUseCase(fakeBookings{err: errors.New("connection refused")}, fakeMarkets{}, 14, 3,
		fixedTime{now: time.Now()}, logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{VendorID: "vendor-a"})
	assert.ErrorIs(t, err, ErrStore)
	assert.Contains(t, err.Error(), "connection refused")
}
