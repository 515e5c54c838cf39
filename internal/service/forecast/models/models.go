package models

import "github.com/m04kA/SMC-StallCalendar/internal/integrations/weather"

// ForecastResponse прогноз погоды на день торговли
// Available=false, когда прогноз получить не удалось
type ForecastResponse struct {
	Available                bool     `json:"available"`
	City                     string   `json:"city"`
	Date                     string   `json:"date"`
	PrecipitationProbability *float64 `json:"precipitationProbability,omitempty"`
	TemperatureMin           *float64 `json:"temperatureMin,omitempty"`
	TemperatureMax           *float64 `json:"temperatureMax,omitempty"`
}

// FromForecast конвертирует ответ клиента в DTO
func FromForecast(f *weather.Forecast) *ForecastResponse {
	return &ForecastResponse{
		Available:                true,
		City:                     f.City,
		Date:                     f.Date,
		PrecipitationProbability: f.PrecipitationProbability,
		TemperatureMin:           f.TemperatureMin,
		TemperatureMax:           f.TemperatureMax,
	}
}
