package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StallCalendar/internal/domain"
)

func salesFixture() []*domain.Booking {
	return []*domain.Booking{
		booking("1", "m1", "V1", "2024-03-01", 10),
		booking("2", "m2", "V1", "2024-03-10", 0),
		booking("3", "m1", "v1", "2024-03-31", 5),
		booking("4", "m1", "V1", "2024-04-01", 100), // outside range
		booking("5", "m1", "V2", "2024-03-15", 7),   // other vendor
	}
}

func TestSumSales_Scenario(t *testing.T) {
	assert.Equal(t, 15, SumSales(salesFixture(), "V1", "2024-03-01", "2024-03-31"))
}

func TestSumSales_Additive(t *testing.T) {
	all := salesFixture()
	whole := SumSales(all, "V1", "2024-03-01", "2024-04-30")

	parts := SumSales(all, "V1", "2024-03-01", "2024-03-09") +
		SumSales(all, "V1", "2024-03-10", "2024-03-31") +
		SumSales(all, "V1", "2024-04-01", "2024-04-30")

	assert.Equal(t, whole, parts)
	assert.Equal(t, 115, whole)
}

func TestSumSales_OrderIndependent(t *testing.T) {
	all := salesFixture()
	reversed := make([]*domain.Booking, len(all))
	for i, b := range all {
		reversed[len(all)-1-i] = b
	}
	assert.Equal(t, SumSales(all, "V1", "2024-01-01", "2024-12-31"), SumSales(reversed, "V1", "2024-01-01", "2024-12-31"))
}

func TestSumSales_InvalidRange(t *testing.T) {
	assert.Equal(t, 0, SumSales(salesFixture(), "V1", "bad", "2024-03-31"))
	assert.Equal(t, 0, SumSales(salesFixture(), "V1", "2024-03-31", "2024-03-01"))
}

func TestSummarizeSales(t *testing.T) {
	summary, err := SummarizeSales(salesFixture(), "V1", "2024-03-01", "2024-03-31")
	require.NoError(t, err)

	assert.Equal(t, 15, summary.Total)
	assert.Equal(t, 3, summary.Bookings)
	assert.InDelta(t, 5.0, summary.Mean, 0.0001)
	assert.InDelta(t, 5.0, summary.Median, 0.0001)
	require.Len(t, summary.ByMarket, 2)
	assert.Equal(t, "m1", summary.ByMarket[0].MarketID)
	assert.Equal(t, 15, summary.ByMarket[0].Total)
	assert.Equal(t, 2, summary.ByMarket[0].Bookings)
	assert.Equal(t, 0, summary.ByMarket[1].Total)
}

func TestSummarizeSales_Empty(t *testing.T) {
	summary, err := SummarizeSales(nil, "V1", "2024-03-01", "2024-03-31")
	require.NoError(t, err)
	assert.Zero(t, summary.Total)
	assert.Zero(t, summary.Mean)
	assert.Empty(t, summary.ByMarket)
}

func TestSummarizeSales_InvalidRange(t *testing.T) {
	_, err := SummarizeSales(nil, "V1", "2024-03-31", "2024-03-01")
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestValidateRange(t *testing.T) {
	assert.NoError(t, ValidateRange("2024-03-01", "2024-03-01"))
	assert.ErrorIs(t, ValidateRange("2024-03-02", "2024-03-01"), ErrInvalidRange)
	assert.ErrorIs(t, ValidateRange("2024-3-1", "2024-03-31"), ErrInvalidRange)
	assert.ErrorIs(t, ValidateRange("2024-03-01", ""), ErrInvalidRange)
}
