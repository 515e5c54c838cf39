package bookings

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StallCalendar/internal/domain"
	bookingRepo "github.com/m04kA/SMC-StallCalendar/internal/infra/storage/booking"
	"github.com/m04kA/SMC-StallCalendar/internal/infra/storage/deletion"
	"github.com/m04kA/SMC-StallCalendar/internal/infra/storage/storagetest"
	vendorRepo "github.com/m04kA/SMC-StallCalendar/internal/infra/storage/vendor"
	"github.com/m04kA/SMC-StallCalendar/internal/service/bookings/models"
	"github.com/m04kA/SMC-StallCalendar/pkg/logger"
	"github.com/m04kA/SMC-StallCalendar/pkg/metrics"
	"github.com/m04kA/SMC-StallCalendar/pkg/ptr"
)

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type recordingNotifier struct {
	mu    sync.Mutex
	calls []domain.Collection
}

func (n *recordingNotifier) Notify(_ context.Context, c domain.Collection) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, c)
}

type fixture struct {
	svc      *Service
	bookings *bookingRepo.Repository
	clock    *fixedTime
	notifier *recordingNotifier
}

func setup(t *testing.T) *fixture {
	t.Helper()
	env := storagetest.New(t)
	ctx := context.Background()

	bookings := bookingRepo.NewRepository(env.DB, env.Builder, storagetest.Namespace)
	vendors := vendorRepo.NewRepository(env.DB, env.Builder, storagetest.Namespace)
	clock := &fixedTime{now: time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)}
	notifier := &recordingNotifier{}

	for _, v := range []*domain.Vendor{
		{ID: "sd", Name: "admin", IsAdmin: true},
		{ID: "vendor-a", Name: "A"},
		{ID: "vendor-b", Name: "B"},
	} {
		v.CreatedAt, v.UpdatedAt = clock.now, clock.now
		require.NoError(t, vendors.Create(ctx, v))
	}

	seed := []struct {
		id, date, market, vendor string
		sales                    int
	}{
		{"b1", "2024-03-01", "market1", "vendor-a", 10},
		{"b2", "2024-03-05", "market2", "vendor-a", 0},
		{"b3", "2024-03-09", "market1", "vendor-b", 4},
		{"b4", "2024-04-02", "market1", "vendor-a", 5},
	}
	for _, s := range seed {
		require.NoError(t, bookings.Create(ctx, &domain.Booking{
			ID:            s.id,
			Date:          s.date,
			Market:        domain.MarketSnapshot{ID: s.market, City: "彰化縣", Name: s.market},
			Vendor:        domain.VendorSnapshot{ID: s.vendor, Name: s.vendor},
			SalesQuantity: s.sales,
			CreatedAt:     clock.now,
			UpdatedAt:     clock.now,
		}))
	}

	svc := NewService(bookings, vendors, deletion.NewStore(), notifier, (*metrics.Metrics)(nil),
		2*time.Minute, clock, logger.NewNop())
	return &fixture{svc: svc, bookings: bookings, clock: clock, notifier: notifier}
}

func TestService_List(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	resp, err := f.svc.List(ctx, &models.ListBookingsRequest{Month: ptr.Ptr("2024-03")})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 3)

	resp, err = f.svc.List(ctx, &models.ListBookingsRequest{Date: ptr.Ptr("2024-03-05")})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "b2", resp.Bookings[0].ID)

	resp, err = f.svc.List(ctx, &models.ListBookingsRequest{VendorID: ptr.Ptr("VENDOR-A")})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 3)

	_, err = f.svc.List(ctx, &models.ListBookingsRequest{Date: ptr.Ptr("2024-03-05"), Month: ptr.Ptr("2024-03")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.List(ctx, &models.ListBookingsRequest{Month: ptr.Ptr("March")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_PreviewConflicts(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	resp, err := f.svc.PreviewConflicts(ctx, &models.ConflictPreviewRequest{MarketID: "market1", Date: "2024-03-05"})
	require.NoError(t, err)
	assert.True(t, resp.HasConflict)
	assert.Len(t, resp.Conflicts, 2)

	resp, err = f.svc.PreviewConflicts(ctx, &models.ConflictPreviewRequest{MarketID: "market1", Date: "2024-03-16"})
	require.NoError(t, err)
	assert.False(t, resp.HasConflict)

	resp, err = f.svc.PreviewConflicts(ctx, &models.ConflictPreviewRequest{Date: "2024-03-05"})
	require.NoError(t, err)
	assert.False(t, resp.HasConflict)

	resp, err = f.svc.PreviewConflicts(ctx, &models.ConflictPreviewRequest{
		MarketID: "market1", Date: "2024-03-12", ExcludeBookingID: "b3",
	})
	require.NoError(t, err)
	assert.False(t, resp.HasConflict)

	_, err = f.svc.PreviewConflicts(ctx, &models.ConflictPreviewRequest{MarketID: "market1", Date: "2024-3-5"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_TwoPhaseDeletion(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	ticket, err := f.svc.RequestDeletion(ctx, "b1", "Vendor-A")
	require.NoError(t, err)
	assert.NotEmpty(t, ticket.Token)
	assert.Equal(t, f.clock.now.Add(2*time.Minute), ticket.ExpiresAt)

	// подтверждение другого продавца не подходит, но токен владельца остается в силе
	err = f.svc.ConfirmDeletion(ctx, "b1", "vendor-b", ticket.Token)
	assert.ErrorIs(t, err, ErrConfirmationInvalid)
	err = f.svc.ConfirmDeletion(ctx, "b2", "vendor-a", ticket.Token)
	assert.ErrorIs(t, err, ErrConfirmationInvalid)

	require.NoError(t, f.svc.ConfirmDeletion(ctx, "b1", "vendor-a", ticket.Token))
	assert.Equal(t, []domain.Collection{domain.CollectionBookings}, f.notifier.calls)

	_, err = f.svc.GetByID(ctx, "b1")
	assert.ErrorIs(t, err, ErrBookingNotFound)

	// повторное использование
	err = f.svc.ConfirmDeletion(ctx, "b1", "vendor-a", ticket.Token)
	assert.ErrorIs(t, err, ErrConfirmationInvalid)
}

func TestService_DeletionRequiresOwnership(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.RequestDeletion(ctx, "b1", "vendor-b")
	assert.ErrorIs(t, err, ErrAccessDenied)

	// у администратора нет особых прав на чужие бронирования
	_, err = f.svc.RequestDeletion(ctx, "b1", "sd")
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.RequestDeletion(ctx, "missing", "vendor-a")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_DeletionTicketExpires(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	ticket, err := f.svc.RequestDeletion(ctx, "b1", "vendor-a")
	require.NoError(t, err)

	f.clock.now = f.clock.now.Add(3 * time.Minute)
	err = f.svc.ConfirmDeletion(ctx, "b1", "vendor-a", ticket.Token)
	assert.ErrorIs(t, err, ErrConfirmationInvalid)
	assert.Empty(t, f.notifier.calls)
}

func TestService_Sales(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	resp, err := f.svc.Sales(ctx, &models.SalesRequest{
		ActorID: "vendor-a", VendorID: "vendor-a", From: "2024-03-01", To: "2024-04-30",
	})
	require.NoError(t, err)
	assert.Equal(t, 15, resp.Total)
	assert.Equal(t, 3, resp.Bookings)
	assert.InDelta(t, 5.0, resp.Median, 0.001)
	require.Len(t, resp.ByMarket, 2)
	assert.Equal(t, "market1", resp.ByMarket[0].MarketID)

	_, err = f.svc.Sales(ctx, &models.SalesRequest{
		ActorID: "vendor-b", VendorID: "vendor-a", From: "2024-03-01", To: "2024-03-31",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err = f.svc.Sales(ctx, &models.SalesRequest{
		ActorID: "sd", VendorID: "vendor-b", From: "2024-03-01", To: "2024-03-31",
	})
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Total)

	_, err = f.svc.Sales(ctx, &models.SalesRequest{
		ActorID: "vendor-a", VendorID: "vendor-a", From: "2024-03-31", To: "2024-03-01",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

type countingBookings struct {
	*bookingRepo.Repository
	lists int
}

func (c *countingBookings) List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	c.lists++
	return c.Repository.List(ctx, filter)
}

func TestService_SalesRejectsRangeBeforeQuery(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	env := storagetest.New(t)
	repo := &countingBookings{Repository: f.bookings}
	vendors := vendorRepo.NewRepository(env.DB, env.Builder, storagetest.Namespace)
	require.NoError(t, vendors.Create(ctx, &domain.Vendor{ID: "vendor-a", Name: "A", CreatedAt: f.clock.now, UpdatedAt: f.clock.now}))
	svc := NewService(repo, vendors, deletion.NewStore(), f.notifier, (*metrics.Metrics)(nil),
		2*time.Minute, f.clock, logger.NewNop())

	for _, r := range []struct{ from, to string }{
		{"2024-03-31", "2024-03-01"},
		{"2024/03/01", "2024-03-31"},
		{"2024-03-01", ""},
	} {
		_, err := svc.Sales(ctx, &models.SalesRequest{ActorID: "vendor-a", VendorID: "vendor-a", From: r.from, To: r.to})
		assert.ErrorIs(t, err, ErrInvalidInput, "%s..%s", r.from, r.to)
	}
	assert.Zero(t, repo.lists)

	resp, err := svc.Sales(ctx, &models.SalesRequest{ActorID: "vendor-a", VendorID: "vendor-a", From: "2024-03-01", To: "2024-03-31"})
	require.NoError(t, err)
	assert.Equal(t, 10, resp.Total)
	assert.Equal(t, 1, repo.lists)
}
