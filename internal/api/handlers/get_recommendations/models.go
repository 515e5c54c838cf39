package get_recommendations

import getRecommendations "github.com/m04kA/SMC-StallCalendar/internal/usecase/get_recommendations"

// RecommendationResponse рекомендованный рынок
type RecommendationResponse struct {
	MarketID     string `json:"marketId"`
	MarketCity   string `json:"marketCity"`
	MarketName   string `json:"marketName"`
	Category     string `json:"category"`
	BookingCount int    `json:"bookingCount"`
	VendorCount  int    `json:"vendorCount"`
	LastBooked   string `json:"lastBooked,omitempty"`
}

// RecommendationsResponse HTTP response model
type RecommendationsResponse struct {
	RecencyDays     int                      `json:"recencyDays"`
	Recommendations []RecommendationResponse `json:"recommendations"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getRecommendations.Response) *RecommendationsResponse {
	result := &RecommendationsResponse{
		RecencyDays:     resp.RecencyDays,
		Recommendations: make([]RecommendationResponse, 0, len(resp.Recommendations)),
	}
	for _, r := range resp.Recommendations {
		result.Recommendations = append(result.Recommendations, RecommendationResponse(r))
	}
	return result
}
