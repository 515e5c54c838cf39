package update_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StallCalendar/internal/domain"
	bookingRepo "github.com/m04kA/SMC-StallCalendar/internal/infra/storage/booking"
	marketRepo "github.com/m04kA/SMC-StallCalendar/internal/infra/storage/market"
	"github.com/m04kA/SMC-StallCalendar/internal/infra/storage/storagetest"
	vendorRepo "github.com/m04kA/SMC-StallCalendar/internal/infra/storage/vendor"
	"github.com/m04kA/SMC-StallCalendar/pkg/logger"
	"github.com/m04kA/SMC-StallCalendar/pkg/metrics"
	"github.com/m04kA/SMC-StallCalendar/pkg/ptr"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, domain.Collection) {}

var now = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func setup(t *testing.T, policy domain.ConflictPolicy) (*UseCase, *bookingRepo.Repository, *marketRepo.Repository, *vendorRepo.Repository) {
	t.Helper()
	env := storagetest.New(t)
	ctx := context.Background()

	bookings := bookingRepo.NewRepository(env.DB, env.Builder, storagetest.Namespace)
	markets := marketRepo.NewRepository(env.DB, env.Builder, storagetest.Namespace)
	vendors := vendorRepo.NewRepository(env.DB, env.Builder, storagetest.Namespace)

	require.NoError(t, vendors.Create(ctx, &domain.Vendor{ID: "vendor-a", Name: "攤商A"}))
	require.NoError(t, vendors.Create(ctx, &domain.Vendor{ID: "vendor-b", Name: "攤商B"}))
	require.NoError(t, vendors.Create(ctx, &domain.Vendor{ID: "sd", Name: "admin", IsAdmin: true}))
	m1 := &domain.Market{ID: "market1", City: "彰化縣", Name: "和美市場"}
	m2 := &domain.Market{ID: "market2", City: "台中市", Name: "向上市場"}
	require.NoError(t, markets.Create(ctx, m1))
	require.NoError(t, markets.Create(ctx, m2))

	for _, b := range []*domain.Booking{
		{ID: "b1", Date: "2024-03-01", Market: m1.Snapshot(), Vendor: domain.VendorSnapshot{ID: "vendor-a", Name: "old name"}, Remark: "keep", SalesQuantity: 7},
		{ID: "b2", Date: "2024-03-20", Market: m1.Snapshot(), Vendor: domain.VendorSnapshot{ID: "vendor-b", Name: "攤商B"}},
	} {
		require.NoError(t, bookings.Create(ctx, b))
	}

	uc := NewUseCase(bookings, markets, vendors, env.Tx, nopNotifier{}, (*metrics.Metrics)(nil),
		policy, fixedTime{now: now}, logger.NewNop())
	return uc, bookings, markets, vendors
}

func TestExecute_UpdatesAndResnapshots(t *testing.T) {
	uc, bookings, markets, _ := setup(t, domain.ConflictPolicyStrict)
	ctx := context.Background()

	require.NoError(t, markets.Update(ctx, &domain.Market{ID: "market2", City: "台中市", Name: "向上市場(新)", UpdatedAt: now}))

	resp, err := uc.Execute(ctx, &Request{
		VendorID: "vendor-a", BookingID: "b1", MarketID: "market2", Date: "2024-03-02", SalesQuantity: ptr.Ptr(9),
	})
	require.NoError(t, err)
	assert.Equal(t, "向上市場(新)", resp.Booking.Market.Name)
	assert.Equal(t, "攤商A", resp.Booking.Vendor.Name)
	assert.Equal(t, "keep", resp.Booking.Remark)
	assert.Equal(t, 9, resp.Booking.SalesQuantity)

	stored, err := bookings.GetByID(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, "market2", stored.Market.ID)
	assert.Equal(t, "2024-03-02", stored.Date)
	assert.Equal(t, now, stored.UpdatedAt)
}

func TestExecute_ExcludesItselfFromConflicts(t *testing.T) {
	uc, _, _, _ := setup(t, domain.ConflictPolicyStrict)
	ctx := context.Background()

	// сдвиг на 3 дня конфликтовал бы с самим собой
	_, err := uc.Execute(ctx, &Request{VendorID: "vendor-a", BookingID: "b1", MarketID: "market1", Date: "2024-03-04"})
	require.NoError(t, err)

	// 2024-03-15 в 5 днях от b2
	_, err = uc.Execute(ctx, &Request{VendorID: "vendor-a", BookingID: "b1", MarketID: "market1", Date: "2024-03-15"})
	assert.ErrorIs(t, err, ErrBookingConflict)
}

func TestExecute_Ownership(t *testing.T) {
	uc, _, _, _ := setup(t, domain.ConflictPolicyStrict)
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{VendorID: "vendor-b", BookingID: "b1", MarketID: "market1", Date: "2024-03-01"})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = uc.Execute(ctx, &Request{VendorID: "sd", BookingID: "b1", MarketID: "market1", Date: "2024-03-01"})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = uc.Execute(ctx, &Request{VendorID: "vendor-a", BookingID: "missing", MarketID: "market1", Date: "2024-03-01"})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = uc.Execute(ctx, &Request{VendorID: "vendor-a", BookingID: "b1", MarketID: "", Date: "2024-03-01"})
	assert.ErrorIs(t, err, ErrMarketRequired)
}

func TestExecute_WarnPolicyAllowsAcknowledgedConflict(t *testing.T) {
	uc, _, _, _ := setup(t, domain.ConflictPolicyWarn)

	resp, err := uc.Execute(context.Background(), &Request{
		VendorID: "vendor-a", BookingID: "b1", MarketID: "market1", Date: "2024-03-15", AllowConflict: true,
	})
	require.NoError(t, err)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, "b2", resp.Conflicts[0].ID)
}
