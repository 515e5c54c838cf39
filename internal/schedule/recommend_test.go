package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StallCalendar/internal/domain"
)

var testNow = time.Date(2024, 6, 30, 15, 0, 0, 0, time.UTC)

func markets(ids ...string) []*domain.Market {
	result := make([]*domain.Market, 0, len(ids))
	for _, id := range ids {
		result = append(result, &domain.Market{ID: id, City: "city", Name: "market " + id})
	}
	return result
}

func ids(suggestions []Suggestion) []string {
	result := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		result = append(result, s.Market.ID)
	}
	return result
}

func TestRecommend_Categories(t *testing.T) {
	bookings := []*domain.Booking{
		// V1 uses m1 three times, m2 once, m3 twice; all stale
		booking("1", "m1", "V1", "2024-01-01", 0),
		booking("2", "m1", "V1", "2024-02-01", 0),
		booking("3", "m1", "V1", "2024-03-01", 0),
		booking("4", "m2", "V1", "2024-01-10", 0),
		booking("5", "m3", "V1", "2024-01-15", 0),
		booking("6", "m3", "V1", "2024-02-15", 0),
		// m4 is popular with other vendors
		booking("7", "m4", "V2", "2024-01-01", 0),
		booking("8", "m4", "V2", "2024-02-01", 0),
		booking("9", "m4", "V3", "2024-03-01", 0),
		booking("10", "m4", "V3", "2024-04-01", 0),
	}

	result := Recommend(bookings, markets("m1", "m2", "m3", "m4"), Options{
		VendorID:    "v1",
		Now:         testNow,
		RecencyDays: 14,
		Limit:       3,
	})

	require.Len(t, result, 3)
	assert.Equal(t, []string{"m1", "m2", "m4"}, ids(result))
	assert.Equal(t, CategoryBestMatch, result[0].Category)
	assert.Equal(t, CategoryUnderExplored, result[1].Category)
	assert.Equal(t, CategoryPopular, result[2].Category)
	assert.Equal(t, 3, result[0].VendorCount)
	assert.Equal(t, "2024-03-01", result[0].LastBooked)
	assert.Equal(t, 4, result[2].BookingCount)
}

func TestRecommend_ExcludesRecentlyBooked(t *testing.T) {
	bookings := []*domain.Booking{
		booking("1", "m1", "V1", "2024-06-20", 0), // 10 days ago
		booking("2", "m2", "V2", "2024-06-16", 0), // exactly 14 days ago
		booking("3", "m3", "V2", "2024-06-15", 0), // 15 days ago
		booking("4", "m4", "V2", "2024-07-10", 0), // future
	}

	result := Recommend(bookings, markets("m1", "m2", "m3", "m4", "m5"), Options{
		VendorID:    "V1",
		Now:         testNow,
		RecencyDays: 14,
		Limit:       5,
	})

	assert.Equal(t, []string{"m3", "m5"}, ids(result))
	assert.Equal(t, "", result[1].LastBooked)
}

func TestRecommend_NeverIncludesRecentMarkets(t *testing.T) {
	dates := []string{"2024-06-29", "2024-06-01", "2024-05-01", "2024-06-17", "2024-06-25"}
	var bookings []*domain.Booking
	for i, d := range dates {
		bookings = append(bookings, booking(string(rune('a'+i)), "m"+string(rune('1'+i)), "V1", d, 0))
	}

	threshold := domain.Today(testNow).AddDate(0, 0, -14)
	result := Recommend(bookings, markets("m1", "m2", "m3", "m4", "m5"), Options{VendorID: "V1", Now: testNow, RecencyDays: 14, Limit: 5})

	for _, s := range result {
		for _, b := range bookings {
			if b.Market.ID != s.Market.ID {
				continue
			}
			day, err := b.Day()
			require.NoError(t, err)
			assert.True(t, day.Before(threshold), "market %s booked on %s", s.Market.ID, b.Date)
		}
	}
}

func TestRecommend_NoBookings(t *testing.T) {
	result := Recommend(nil, markets("m3", "m1", "m2", "m4"), Options{VendorID: "V1", Now: testNow, RecencyDays: 14})

	assert.Equal(t, []string{"m1", "m2", "m3"}, ids(result))
	for _, s := range result {
		assert.Equal(t, CategoryPopular, s.Category)
	}
}

func TestRecommend_TieBreaks(t *testing.T) {
	bookings := []*domain.Booking{
		booking("1", "m2", "V1", "2024-01-01", 0),
		booking("2", "m1", "V1", "2024-01-01", 0),
		booking("3", "m3", "V2", "2024-03-01", 0),
		booking("4", "m4", "V2", "2024-02-01", 0),
	}

	result := Recommend(bookings, markets("m1", "m2", "m3", "m4"), Options{VendorID: "V1", Now: testNow, RecencyDays: 14, Limit: 4})

	// equal vendor counts break by ID, equal global counts prefer the staler market
	assert.Equal(t, []string{"m1", "m2", "m4", "m3"}, ids(result))
}

func TestRecommend_IgnoresUnknownMarkets(t *testing.T) {
	bookings := []*domain.Booking{booking("1", "gone", "V1", "2024-01-01", 0)}

	result := Recommend(bookings, markets("m1"), Options{VendorID: "V1", Now: testNow, RecencyDays: 14})
	require.Len(t, result, 1)
	assert.Equal(t, "m1", result[0].Market.ID)
}

func TestRecommend_LimitClamped(t *testing.T) {
	all := markets("m1", "m2", "m3", "m4", "m5", "m6", "m7")

	assert.Len(t, Recommend(nil, all, Options{Now: testNow, Limit: 50}), domain.MaxRecommendationLimit)
	assert.Len(t, Recommend(nil, all, Options{Now: testNow, Limit: 0}), domain.DefaultRecommendationLimit)
	assert.Len(t, Recommend(nil, all, Options{Now: testNow, Limit: 1}), 1)
}
