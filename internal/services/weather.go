package services

import (
	"context"
	"errors"
	"time"

	"skysense/internal/config"
	"skysense/internal/models"
	"skysense/pkg/client"

	"go.uber.org/zap"
)

// ErrWeatherNotConfigured is returned before any network call when the
// weather provider credential is missing.
var ErrWeatherNotConfigured = errors.New("weather service not configured: missing OPENWEATHER_API_KEY")

// WeatherService is the gateway to the upstream weather provider. The
// "current" call is mandatory; the "forecast" call is best-effort and
// degrades to an empty forecast list on failure.
type WeatherService struct {
	client     *client.OpenWeatherClient
	logger     *zap.Logger
	configured bool
}

func NewWeatherService(cfg *config.Config, logger *zap.Logger) *WeatherService {
	clientConfig := client.ClientConfig{
		Timeout:        cfg.OpenWeather.Timeout,
		BreakerTimeout: cfg.CircuitBreaker.Timeout,
	}

	return &WeatherService{
		client:     client.NewOpenWeatherClient(cfg.OpenWeather.APIKey, cfg.OpenWeather.BaseURL, clientConfig, logger),
		logger:     logger,
		configured: cfg.OpenWeather.APIKey != "",
	}
}

// IsConfigured reports whether a weather API credential is present. Callers
// must check this before invoking a fetch.
func (s *WeatherService) IsConfigured() bool {
	return s.configured
}

// GetByCity fetches current weather and a 5-day forecast for a named city.
func (s *WeatherService) GetByCity(ctx context.Context, city string) (*models.WeatherData, error) {
	return s.fetch(ctx,
		func(ctx context.Context) (*models.Observation, error) {
			return s.client.CurrentByCity(ctx, city)
		},
		func(ctx context.Context) ([]models.ForecastSample, error) {
			return s.client.ForecastByCity(ctx, city)
		})
}

// GetByCoordinates fetches current weather and a 5-day forecast for a
// coordinate pair.
func (s *WeatherService) GetByCoordinates(ctx context.Context, lat, lon float64) (*models.WeatherData, error) {
	return s.fetch(ctx,
		func(ctx context.Context) (*models.Observation, error) {
			return s.client.CurrentByCoordinates(ctx, lat, lon)
		},
		func(ctx context.Context) ([]models.ForecastSample, error) {
			return s.client.ForecastByCoordinates(ctx, lat, lon)
		})
}

type forecastResult struct {
	samples []models.ForecastSample
	err     error
}

// fetch runs the mandatory current-weather call and the best-effort forecast
// call concurrently. A forecast failure is logged and swallowed into an
// empty list; it never fails or cancels the current-weather result.
func (s *WeatherService) fetch(
	ctx context.Context,
	current func(context.Context) (*models.Observation, error),
	forecast func(context.Context) ([]models.ForecastSample, error),
) (*models.WeatherData, error) {
	if !s.configured {
		return nil, ErrWeatherNotConfigured
	}

	forecastCh := make(chan forecastResult, 1)
	go func() {
		samples, err := forecast(ctx)
		forecastCh <- forecastResult{samples: samples, err: err}
	}()

	observation, err := current(ctx)

	result := <-forecastCh

	if err != nil {
		return nil, err
	}

	var days []models.ForecastDay
	if result.err != nil {
		s.logger.Warn("Forecast fetch failed, continuing with current weather only",
			zap.String("location", observation.Location.Name),
			zap.Error(result.err))
		days = []models.ForecastDay{}
	} else {
		days = AggregateDaily(result.samples)
	}

	return &models.WeatherData{
		Location:  observation.Location,
		Current:   observation.Current,
		Forecast:  days,
		Timestamp: time.Now().UTC(),
	}, nil
}
