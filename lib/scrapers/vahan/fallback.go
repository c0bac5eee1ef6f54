package vahan

import (
	"math/rand"
	"time"
	"vahan-dashboard/lib/timezone"
	"vahan-dashboard/services/registry"
)

// Manufacturer rosters for the bundled sample dataset, sized to mirror
// real market composition per category.
var fallbackManufacturers = map[string][]string{
	registry.CategoryTwoWheeler: {
		"Hero MotoCorp",
		"Honda Motorcycle",
		"TVS Motor",
		"Bajaj Auto",
		"Royal Enfield",
	},
	registry.CategoryThreeWheeler: {
		"Bajaj Auto",
		"Mahindra",
		"Piaggio",
		"Force Motors",
		"Atul Auto",
	},
	registry.CategoryFourWheeler: {
		"Maruti Suzuki",
		"Hyundai",
		"Tata Motors",
		"Mahindra",
		"Honda Cars",
	},
}

// rough quarterly volume per manufacturer, before growth and jitter
var fallbackBaseVolume = map[string]int64{
	registry.CategoryTwoWheeler:   120_000,
	registry.CategoryThreeWheeler: 9_000,
	registry.CategoryFourWheeler:  45_000,
}

// FallbackRecords builds the bundled sample dataset covering the given
// year range, one row per manufacturer per category per quarter. The
// generator is seeded with a constant so every invocation yields the
// same batch, refresh runs against an unreachable portal must not churn
// the store.
func FallbackRecords(r Range) []registry.Record {
	startYear := r.StartYear
	endYear := r.EndYear
	if startYear == 0 {
		startYear = 2022
	}
	if endYear == 0 {
		endYear = 2024
	}
	if endYear < startYear {
		endYear = startYear
	}

	rng := rand.New(rand.NewSource(42))

	var records []registry.Record
	for _, category := range []string{
		registry.CategoryTwoWheeler,
		registry.CategoryThreeWheeler,
		registry.CategoryFourWheeler,
	} {
		for rank, manufacturer := range fallbackManufacturers[category] {
			// leaders get a larger share, tail brands a smaller one
			share := 1.0 - 0.15*float64(rank)
			for year := startYear; year <= endYear; year++ {
				// modest industry-wide growth year over year
				growth := 1.0 + 0.08*float64(year-startYear)
				for quarter := 1; quarter <= 4; quarter++ {
					// festival-season skew toward later quarters
					seasonal := 0.9 + 0.06*float64(quarter)
					jitter := 0.9 + rng.Float64()*0.2
					count := float64(fallbackBaseVolume[category]) * share * growth * seasonal * jitter

					records = append(records, registry.Record{
						Date:         timezone.Date(year, time.Month((quarter-1)*3+1), 1),
						Category:     category,
						Manufacturer: manufacturer,
						Count:        int64(count),
					})
				}
			}
		}
	}
	return records
}
