package schedule

import (
	"errors"
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/m04kA/SMC-StallCalendar/internal/domain"
)

// ErrInvalidRange возвращается, когда границы периода некорректны
var ErrInvalidRange = errors.New("schedule: invalid date range")

// SumSales sums SalesQuantity of the vendor's bookings dated within
// [startDate, endDate] inclusive. Invalid bounds yield 0.
func SumSales(bookings []*domain.Booking, vendorID, startDate, endDate string) int {
	total := 0
	for _, b := range salesInRange(bookings, vendorID, startDate, endDate) {
		total += b.SalesQuantity
	}
	return total
}

// MarketSales sales of one market within a summary
type MarketSales struct {
	MarketID   string
	MarketCity string
	MarketName string
	Total      int
	Bookings   int
}

// SalesSummary aggregated sales of a vendor over a period
type SalesSummary struct {
	VendorID string
	From     string
	To       string
	Total    int
	Bookings int
	Mean     float64
	Median   float64
	ByMarket []MarketSales // sorted by total desc, then market ID
}

// ValidateRange checks that both bounds are YYYY-MM-DD dates and start is not after end
func ValidateRange(startDate, endDate string) error {
	from, errFrom := domain.ParseDate(startDate)
	to, errTo := domain.ParseDate(endDate)
	if errFrom != nil || errTo != nil || to.Before(from) {
		return ErrInvalidRange
	}
	return nil
}

// SummarizeSales extends SumSales with per-booking statistics and per-market totals
func SummarizeSales(bookings []*domain.Booking, vendorID, startDate, endDate string) (*SalesSummary, error) {
	if err := ValidateRange(startDate, endDate); err != nil {
		return nil, err
	}

	matched := salesInRange(bookings, vendorID, startDate, endDate)

	summary := &SalesSummary{
		VendorID: vendorID,
		From:     startDate,
		To:       endDate,
		Bookings: len(matched),
		ByMarket: make([]MarketSales, 0),
	}

	quantities := make(stats.Float64Data, 0, len(matched))
	byMarket := make(map[string]*MarketSales)
	for _, b := range matched {
		summary.Total += b.SalesQuantity
		quantities = append(quantities, float64(b.SalesQuantity))

		ms, ok := byMarket[b.Market.ID]
		if !ok {
			ms = &MarketSales{MarketID: b.Market.ID, MarketCity: b.Market.City, MarketName: b.Market.Name}
			byMarket[b.Market.ID] = ms
		}
		ms.Total += b.SalesQuantity
		ms.Bookings++
	}

	if len(quantities) > 0 {
		// ошибки возможны только на пустых данных
		summary.Mean, _ = stats.Mean(quantities)
		summary.Median, _ = stats.Median(quantities)
	}

	for _, ms := range byMarket {
		summary.ByMarket = append(summary.ByMarket, *ms)
	}
	sort.Slice(summary.ByMarket, func(i, j int) bool {
		a, b := summary.ByMarket[i], summary.ByMarket[j]
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		return a.MarketID < b.MarketID
	})

	return summary, nil
}

func salesInRange(bookings []*domain.Booking, vendorID, startDate, endDate string) []*domain.Booking {
	from, err := domain.ParseDate(startDate)
	if err != nil {
		return nil
	}
	to, err := domain.ParseDate(endDate)
	if err != nil {
		return nil
	}

	var matched []*domain.Booking
	for _, b := range bookings {
		if b == nil || !b.OwnedBy(vendorID) {
			continue
		}
		day, err := b.Day()
		if err != nil {
			continue
		}
		if day.Before(from) || day.After(to) {
			continue
		}
		matched = append(matched, b)
	}
	return matched
}
