package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент сервиса прогноза погоды (геокодирование + дневной прогноз)
type Client struct {
	geocodeURL  string
	forecastURL string
	httpClient  *http.Client
	log         Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(geocodeURL, forecastURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		geocodeURL:  geocodeURL,
		forecastURL: forecastURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetForecast получает прогноз для города на дату (YYYY-MM-DD)
func (c *Client) GetForecast(ctx context.Context, city, date string) (*Forecast, error) {
	lat, lon, err := c.geocode(ctx, city)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', 4, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', 4, 64))
	params.Set("daily", "precipitation_probability_max,temperature_2m_max,temperature_2m_min")
	params.Set("timezone", "auto")
	params.Set("start_date", date)
	params.Set("end_date", date)

	var resp forecastResponse
	if err := c.getJSON(ctx, c.forecastURL+"?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	for i, day := range resp.Daily.Time {
		if day != date {
			continue
		}
		return &Forecast{
			City:                     city,
			Date:                     date,
			PrecipitationProbability: at(resp.Daily.PrecipitationProbabilityMax, i),
			TemperatureMin:           at(resp.Daily.Temperature2mMin, i),
			TemperatureMax:           at(resp.Daily.Temperature2mMax, i),
		}, nil
	}

	return nil, ErrNoForecast
}

// GetForecastWithGracefulDegradation получает прогноз с graceful degradation
// Любая ошибка превращается в ErrServiceDegraded: прогноз только для отображения
func (c *Client) GetForecastWithGracefulDegradation(ctx context.Context, city, date string) (*Forecast, error) {
	c.log.Info("Fetching forecast for city=%s date=%s", city, date)

	forecast, err := c.GetForecast(ctx, city, date)
	if err != nil {
		if errors.Is(err, ErrCityNotFound) || errors.Is(err, ErrNoForecast) {
			c.log.Info("No forecast for city=%s date=%s: %v", city, date, err)
		} else {
			c.log.Error("Weather service unavailable, applying graceful degradation for city=%s: %v", city, err)
		}
		return nil, fmt.Errorf("%w: city=%s, date=%s, error=%v", ErrServiceDegraded, city, date, err)
	}

	return forecast, nil
}

func (c *Client) geocode(ctx context.Context, city string) (float64, float64, error) {
	params := url.Values{}
	params.Set("name", city)
	params.Set("count", "1")
	params.Set("format", "json")

	var resp geocodeResponse
	if err := c.getJSON(ctx, c.geocodeURL+"?"+params.Encode(), &resp); err != nil {
		return 0, 0, err
	}
	if len(resp.Results) == 0 {
		return 0, 0, ErrCityNotFound
	}
	return resp.Results[0].Latitude, resp.Results[0].Longitude, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}

func at(values []*float64, i int) *float64 {
	if i < len(values) {
		return values[i]
	}
	return nil
}
