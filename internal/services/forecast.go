package services

import (
	"math"

	"skysense/internal/models"
)

// maxForecastDays caps the daily summaries returned per request.
const maxForecastDays = 5

// dayBucket accumulates one calendar date's samples. The first sample of the
// date fixes the representative condition, description, icon and
// precipitation probability; later samples only contribute temperatures.
type dayBucket struct {
	date         string
	temperatures []float64
	condition    models.Condition
	description  string
	pop          float64
	icon         string
}

// AggregateDaily collapses a time-ordered forecast feed into at most five
// daily summaries. Samples are grouped by the UTC calendar date of their
// timestamp, keyed as YYYY-MM-DD. Input is expected sorted by ascending
// timestamp; unsorted input yields the first five dates encountered, not the
// five nearest. Empty input yields an empty slice, never an error.
func AggregateDaily(samples []models.ForecastSample) []models.ForecastDay {
	buckets := make(map[string]*dayBucket)
	order := make([]string, 0, maxForecastDays)

	for _, sample := range samples {
		key := sample.Timestamp.UTC().Format("2006-01-02")

		bucket, exists := buckets[key]
		if !exists {
			bucket = &dayBucket{
				date:        key,
				condition:   sample.Condition,
				description: sample.Description,
				pop:         sample.PrecipitationProbability,
				icon:        sample.Icon,
			}
			buckets[key] = bucket
			order = append(order, key)
		}
		bucket.temperatures = append(bucket.temperatures, sample.Temperature)
	}

	if len(order) > maxForecastDays {
		order = order[:maxForecastDays]
	}

	days := make([]models.ForecastDay, 0, len(order))
	for _, key := range order {
		bucket := buckets[key]

		minTemp, maxTemp := bucket.temperatures[0], bucket.temperatures[0]
		for _, temp := range bucket.temperatures[1:] {
			if temp < minTemp {
				minTemp = temp
			}
			if temp > maxTemp {
				maxTemp = temp
			}
		}

		days = append(days, models.ForecastDay{
			Date: bucket.date,
			Temperature: models.TemperatureRange{
				Min: int(math.Round(minTemp)),
				Max: int(math.Round(maxTemp)),
			},
			Condition:           bucket.condition,
			Description:         bucket.description,
			PrecipitationChance: int(math.Round(bucket.pop * 100)),
			Icon:                bucket.icon,
		})
	}

	return days
}
