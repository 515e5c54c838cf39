package import_bookings

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StallCalendar/internal/domain"
	bookingRepo "github.com/m04kA/SMC-StallCalendar/internal/infra/storage/booking"
	marketRepo "github.com/m04kA/SMC-StallCalendar/internal/infra/storage/market"
	"github.com/m04kA/SMC-StallCalendar/internal/infra/storage/storagetest"
	vendorRepo "github.com/m04kA/SMC-StallCalendar/internal/infra/storage/vendor"
	"github.com/m04kA/SMC-StallCalendar/internal/service/exchange"
	"github.com/m04kA/SMC-StallCalendar/pkg/logger"
	"github.com/m04kA/SMC-StallCalendar/pkg/metrics"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type recordingNotifier struct{ calls []domain.Collection }

func (n *recordingNotifier) Notify(_ context.Context, c domain.Collection) { n.calls = append(n.calls, c) }

type store struct {
	bookings *bookingRepo.Repository
	markets  *marketRepo.Repository
	vendors  *vendorRepo.Repository
	env      *storagetest.Env
}

func newStore(t *testing.T) *store {
	t.Helper()
	env := storagetest.New(t)
	s := &store{
		bookings: bookingRepo.NewRepository(env.DB, env.Builder, storagetest.Namespace),
		markets:  marketRepo.NewRepository(env.DB, env.Builder, storagetest.Namespace),
		vendors:  vendorRepo.NewRepository(env.DB, env.Builder, storagetest.Namespace),
		env:      env,
	}
	ctx := context.Background()
	require.NoError(t, s.vendors.Create(ctx, &domain.Vendor{ID: "sd", Name: "admin", IsAdmin: true}))
	require.NoError(t, s.vendors.Create(ctx, &domain.Vendor{ID: "vendor-a", Name: "攤商A"}))
	require.NoError(t, s.vendors.Create(ctx, &domain.Vendor{ID: "vendor-b", Name: "攤商B"}))
	require.NoError(t, s.markets.Create(ctx, &domain.Market{ID: "market1", City: "彰化縣", Name: "和美市場"}))
	return s
}

func (s *store) useCase(n Notifier) *UseCase {
	return NewUseCase(s.bookings, s.markets, s.vendors, s.env.Tx, n, (*metrics.Metrics)(nil),
		fixedTime{now: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}, logger.NewNop())
}

type triple struct{ date, market, vendor string }

func triples(t *testing.T, s *store) []triple {
	t.Helper()
	all, err := s.bookings.List(context.Background(), domain.BookingFilter{})
	require.NoError(t, err)
	out := make([]triple, 0, len(all))
	for _, b := range all {
		out = append(out, triple{b.Date, b.Market.Name, b.Vendor.ID})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].date != out[j].date {
			return out[i].date < out[j].date
		}
		return out[i].vendor < out[j].vendor
	})
	return out
}

func TestExecute_ExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newStore(t)
	require.NoError(t, src.markets.Create(ctx, &domain.Market{ID: "market2", City: "台中市", Name: "向上市場"}))
	for _, b := range []*domain.Booking{
		{ID: "b1", Date: "2024-03-01", Market: domain.MarketSnapshot{ID: "market1", City: "彰化縣", Name: "和美市場"}, Vendor: domain.VendorSnapshot{ID: "vendor-a"}},
		{ID: "b2", Date: "2024-03-05", Market: domain.MarketSnapshot{ID: "market2", City: "台中市", Name: "向上市場"}, Vendor: domain.VendorSnapshot{ID: "vendor-b"}},
		{ID: "b3", Date: "2024-03-05", Market: domain.MarketSnapshot{ID: "market1", City: "彰化縣", Name: "和美市場"}, Vendor: domain.VendorSnapshot{ID: "vendor-b"}},
	} {
		require.NoError(t, src.bookings.Create(ctx, b))
	}

	bookings, err := src.bookings.List(ctx, domain.BookingFilter{})
	require.NoError(t, err)
	vendors, err := src.vendors.List(ctx)
	require.NoError(t, err)
	data, err := exchange.EncodeCSV(exchange.BuildRows(bookings, vendors))
	require.NoError(t, err)

	dst := newStore(t)
	notifier := &recordingNotifier{}
	resp, err := dst.useCase(notifier).Execute(ctx, &Request{ActorID: "sd", Data: data})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Imported)
	assert.Equal(t, 1, resp.CreatedMarkets)
	assert.Empty(t, resp.Errors)
	assert.Equal(t, []domain.Collection{domain.CollectionMarkets, domain.CollectionBookings}, notifier.calls)

	assert.Equal(t, triples(t, src), triples(t, dst))

	// повторный импорт того же файла ничего не добавляет
	resp, err = dst.useCase(notifier).Execute(ctx, &Request{ActorID: "sd", Data: data})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Imported)
	assert.Equal(t, 3, resp.Skipped)
}

func TestExecute_RowErrorsAndLenientDates(t *testing.T) {
	s := newStore(t)
	csv := "\ufeffdate,marketName,vendorId,marketCity\n" +
		"2024/3/1,和美市場,VENDOR-A,\n" +
		"2024/3/1,和美市場,vendor-a,\n" +
		"not a date,和美市場,vendor-a,\n" +
		"2024-03-02,和美市場,ghost,\n" +
		"2024-03-03,無名市場,vendor-a,\n" +
		"2024-03-04,,vendor-a,\n"

	resp, err := s.useCase(&recordingNotifier{}).Execute(context.Background(), &Request{ActorID: "sd", Data: []byte(csv)})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Imported)
	assert.Equal(t, 1, resp.Skipped)
	require.Len(t, resp.Errors, 4)
	assert.Equal(t, 4, resp.Errors[0].Line)
	assert.Equal(t, 5, resp.Errors[1].Line)
	assert.Contains(t, resp.Errors[2].Message, "無名市場")

	got := triples(t, s)
	require.Len(t, got, 1)
	assert.Equal(t, triple{"2024-03-01", "和美市場", "vendor-a"}, got[0])
}

func TestExecute_RejectsBadRequests(t *testing.T) {
	s := newStore(t)
	uc := s.useCase(&recordingNotifier{})
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{ActorID: "vendor-a", Data: []byte("date,marketName,vendorId\n")})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = uc.Execute(ctx, &Request{ActorID: "sd", Data: []byte("date,vendorId\n2024-03-01,vendor-a\n")})
	assert.ErrorIs(t, err, ErrInvalidFile)
}
