package get_recommendations

// Request модель запроса рекомендаций
type Request struct {
	VendorID string
	Limit    *int // nil - значение из конфигурации
}

// Recommendation рекомендованный рынок
type Recommendation struct {
	MarketID     string
	MarketCity   string
	MarketName   string
	Category     string // best_match | under_explored | popular
	BookingCount int
	VendorCount  int
	LastBooked   string
}

// Response модель ответа
type Response struct {
	RecencyDays     int
	Recommendations []Recommendation
}
