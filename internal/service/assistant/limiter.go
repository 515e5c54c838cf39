package assistant

import (
	"sync"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-StallCalendar/internal/domain"
)

// vendorLimiter ограничивает частоту запросов отдельно для каждого продавца
type vendorLimiter struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	limiters map[string]*rate.Limiter
}

func newVendorLimiter(perMinute float64, burst int) *vendorLimiter {
	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Limit(perMinute / 60)
	}
	if burst < 1 {
		burst = 1
	}
	return &vendorLimiter{limit: limit, burst: burst, limiters: make(map[string]*rate.Limiter)}
}

func (l *vendorLimiter) Allow(vendorID string) bool {
	key := domain.VendorKey(vendorID)

	l.mu.Lock()
	lim, ok := l.limiters[key]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.limiters[key] = lim
	}
	l.mu.Unlock()

	return lim.Allow()
}
