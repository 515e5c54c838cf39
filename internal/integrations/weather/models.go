package weather

// Forecast прогноз на день для города
type Forecast struct {
	City                     string
	Date                     string
	PrecipitationProbability *float64 // %, nil если нет данных
	TemperatureMin           *float64 // °C
	TemperatureMax           *float64 // °C
}

type geocodeResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"results"`
}

type forecastResponse struct {
	Daily struct {
		Time                        []string   `json:"time"`
		PrecipitationProbabilityMax []*float64 `json:"precipitation_probability_max"`
		Temperature2mMax            []*float64 `json:"temperature_2m_max"`
		Temperature2mMin            []*float64 `json:"temperature_2m_min"`
	} `json:"daily"`
}
