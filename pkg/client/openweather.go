package client

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"time"

	"skysense/internal/models"

	"go.uber.org/zap"
)

// OpenWeatherClient adapts the OpenWeatherMap "current" and "forecast"
// endpoints. Both are queried by city name or by coordinates, metric units.
type OpenWeatherClient struct {
	*BaseClient
	apiKey  string
	baseURL string
}

type openWeatherCurrentResponse struct {
	Coord struct {
		Lon float64 `json:"lon"`
		Lat float64 `json:"lat"`
	} `json:"coord"`
	Weather []struct {
		ID          int    `json:"id"`
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		TempMin   float64 `json:"temp_min"`
		TempMax   float64 `json:"temp_max"`
		Pressure  float64 `json:"pressure"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   float64 `json:"deg"`
	} `json:"wind"`
	Visibility int   `json:"visibility"`
	Dt         int64 `json:"dt"`
	Sys        struct {
		Country string `json:"country"`
	} `json:"sys"`
	Name string `json:"name"`
}

type openWeatherForecastResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  int     `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			ID          int    `json:"id"`
			Main        string `json:"main"`
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
		Pop float64 `json:"pop"`
	} `json:"list"`
	City struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"city"`
}

func NewOpenWeatherClient(apiKey, baseURL string, config ClientConfig, logger *zap.Logger) *OpenWeatherClient {
	baseClient := NewBaseClient("openweather", config, logger)
	return &OpenWeatherClient{
		BaseClient: baseClient,
		apiKey:     apiKey,
		baseURL:    baseURL,
	}
}

// CurrentByCity fetches current conditions for a named city.
func (c *OpenWeatherClient) CurrentByCity(ctx context.Context, city string) (*models.Observation, error) {
	return c.current(ctx, "q="+url.QueryEscape(city))
}

// CurrentByCoordinates fetches current conditions for a coordinate pair.
func (c *OpenWeatherClient) CurrentByCoordinates(ctx context.Context, lat, lon float64) (*models.Observation, error) {
	return c.current(ctx, fmt.Sprintf("lat=%g&lon=%g", lat, lon))
}

// ForecastByCity fetches the 3-hour-interval forecast feed for a named city.
func (c *OpenWeatherClient) ForecastByCity(ctx context.Context, city string) ([]models.ForecastSample, error) {
	return c.forecast(ctx, "q="+url.QueryEscape(city))
}

// ForecastByCoordinates fetches the forecast feed for a coordinate pair.
func (c *OpenWeatherClient) ForecastByCoordinates(ctx context.Context, lat, lon float64) ([]models.ForecastSample, error) {
	return c.forecast(ctx, fmt.Sprintf("lat=%g&lon=%g", lat, lon))
}

func (c *OpenWeatherClient) current(ctx context.Context, query string) (*models.Observation, error) {
	reqURL := fmt.Sprintf("%s/weather?%s&appid=%s&units=metric&lang=en", c.baseURL, query, c.apiKey)

	data, err := c.Get(ctx, reqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch current weather: %w", err)
	}

	var response openWeatherCurrentResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, parseError("openweather", err)
	}
	if len(response.Weather) == 0 {
		return nil, parseError("openweather", fmt.Errorf("response missing weather block"))
	}

	observation := &models.Observation{
		Location: models.Location{
			Name:    response.Name,
			Country: response.Sys.Country,
			Coordinates: models.Coordinates{
				Lat: response.Coord.Lat,
				Lon: response.Coord.Lon,
			},
		},
		Current: models.CurrentConditions{
			Temperature: int(math.Round(response.Main.Temp)),
			FeelsLike:   int(math.Round(response.Main.FeelsLike)),
			Condition:   models.ParseCondition(response.Weather[0].Main),
			Description: response.Weather[0].Description,
			Humidity:    response.Main.Humidity,
			WindSpeed:   response.Wind.Speed,
			Visibility:  float64(response.Visibility) / 1000,
			UVIndex:     0, // not available from these endpoints
			Icon:        response.Weather[0].Icon,
		},
	}

	return observation, nil
}

func (c *OpenWeatherClient) forecast(ctx context.Context, query string) ([]models.ForecastSample, error) {
	reqURL := fmt.Sprintf("%s/forecast?%s&appid=%s&units=metric&lang=en", c.baseURL, query, c.apiKey)

	data, err := c.Get(ctx, reqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch forecast: %w", err)
	}

	var response openWeatherForecastResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, parseError("openweather", err)
	}

	samples := make([]models.ForecastSample, 0, len(response.List))
	for _, item := range response.List {
		if len(item.Weather) == 0 {
			continue
		}
		samples = append(samples, models.ForecastSample{
			Timestamp:                time.Unix(item.Dt, 0).UTC(),
			Temperature:              item.Main.Temp,
			Condition:                models.ParseCondition(item.Weather[0].Main),
			Description:              item.Weather[0].Description,
			PrecipitationProbability: item.Pop,
			Icon:                     item.Weather[0].Icon,
		})
	}

	return samples, nil
}
