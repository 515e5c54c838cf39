package schedule

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-StallCalendar/internal/domain"
)

// Category why a market was suggested
type Category string

const (
	CategoryBestMatch     Category = "best_match"
	CategoryUnderExplored Category = "under_explored"
	CategoryPopular       Category = "popular"
)

// Options parameters of a recommendation request
type Options struct {
	VendorID    string
	Now         time.Time
	RecencyDays int // markets booked within this many days are not suggested
	Limit       int // 1..MaxRecommendationLimit, 0 = default
}

// Suggestion a recommended market
type Suggestion struct {
	Market       *domain.Market
	Category     Category
	BookingCount int    // all vendors
	VendorCount  int    // requesting vendor only
	LastBooked   string // empty if never booked
}

type marketStats struct {
	market      *domain.Market
	count       int
	vendorCount int
	last        time.Time
	booked      bool
}

// Recommend ranks markets that have not been booked recently.
//
// Precedence: the vendor's most booked eligible market, then the vendor's
// least booked eligible market among the ones they have used, then the
// remaining eligible markets by global booking count.
func Recommend(bookings []*domain.Booking, markets []*domain.Market, opts Options) []Suggestion {
	limit := clampLimit(opts.Limit)

	stats := make(map[string]*marketStats, len(markets))
	for _, m := range markets {
		if m == nil {
			continue
		}
		stats[m.ID] = &marketStats{market: m}
	}

	for _, b := range bookings {
		if b == nil {
			continue
		}
		st, ok := stats[b.Market.ID]
		if !ok {
			continue
		}
		day, err := b.Day()
		if err != nil {
			continue
		}

		st.count++
		if opts.VendorID != "" && b.OwnedBy(opts.VendorID) {
			st.vendorCount++
		}
		if !st.booked || day.After(st.last) {
			st.last = day
			st.booked = true
		}
	}

	threshold := domain.Today(opts.Now).AddDate(0, 0, -opts.RecencyDays)

	eligible := make([]*marketStats, 0, len(stats))
	for _, st := range stats {
		if !st.booked || st.last.Before(threshold) {
			eligible = append(eligible, st)
		}
	}
	sort.Slice(eligible, func(i, j int) bool {
		return eligible[i].market.ID < eligible[j].market.ID
	})

	result := make([]Suggestion, 0, limit)
	taken := make(map[string]bool)
	add := func(st *marketStats, category Category) {
		if len(result) >= limit || taken[st.market.ID] {
			return
		}
		taken[st.market.ID] = true
		result = append(result, toSuggestion(st, category))
	}

	var used []*marketStats
	for _, st := range eligible {
		if st.vendorCount > 0 {
			used = append(used, st)
		}
	}

	if len(used) > 0 {
		best := used[0]
		for _, st := range used[1:] {
			if st.vendorCount > best.vendorCount {
				best = st
			}
		}
		add(best, CategoryBestMatch)

		var under *marketStats
		for _, st := range used {
			if st == best {
				continue
			}
			if under == nil || st.vendorCount < under.vendorCount {
				under = st
			}
		}
		if under != nil {
			add(under, CategoryUnderExplored)
		}
	}

	popular := make([]*marketStats, len(eligible))
	copy(popular, eligible)
	sort.SliceStable(popular, func(i, j int) bool {
		a, b := popular[i], popular[j]
		if a.count != b.count {
			return a.count > b.count
		}
		if a.booked && b.booked && !a.last.Equal(b.last) {
			return a.last.Before(b.last)
		}
		return a.market.ID < b.market.ID
	})
	for _, st := range popular {
		add(st, CategoryPopular)
	}

	return result
}

func toSuggestion(st *marketStats, category Category) Suggestion {
	s := Suggestion{
		Market:       st.market,
		Category:     category,
		BookingCount: st.count,
		VendorCount:  st.vendorCount,
	}
	if st.booked {
		s.LastBooked = domain.FormatDate(st.last)
	}
	return s
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return domain.DefaultRecommendationLimit
	case limit > domain.MaxRecommendationLimit:
		return domain.MaxRecommendationLimit
	default:
		return limit
	}
}
