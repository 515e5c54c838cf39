package forecast

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-StallCalendar/internal/domain"
	"github.com/m04kA/SMC-StallCalendar/internal/integrations/weather"
	"github.com/m04kA/SMC-StallCalendar/internal/service/forecast/models"
)

// ErrInvalidInput возвращается при некорректных входных данных
var ErrInvalidInput = errors.New("invalid input data")

// WeatherClient клиент прогноза погоды
type WeatherClient interface {
	GetForecastWithGracefulDegradation(ctx context.Context, city, date string) (*weather.Forecast, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Service прогноз погоды для дня торговли
// Прогноз только информирует и никогда не блокирует бронирование
type Service struct {
	client WeatherClient // nil, если прогноз отключен
	logger Logger
}

func NewService(client WeatherClient, logger Logger) *Service {
	return &Service{client: client, logger: logger}
}

// Get возвращает прогноз или available=false при любой ошибке сервиса погоды
func (s *Service) Get(ctx context.Context, city, date string) (*models.ForecastResponse, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, fmt.Errorf("%w: city is required", ErrInvalidInput)
	}
	if _, err := domain.ParseDate(date); err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, date)
	}

	unavailable := &models.ForecastResponse{Available: false, City: city, Date: date}
	if s.client == nil {
		return unavailable, nil
	}

	forecast, err := s.client.GetForecastWithGracefulDegradation(ctx, city, date)
	if err != nil {
		s.logger.Warn("Get: forecast unavailable for city=%s date=%s: %v", city, date, err)
		return unavailable, nil
	}
	return models.FromForecast(forecast), nil
}
