package services

import (
	"slices"
	"strings"

	"shipment-dashboard/internal/models"
)

// Presentation shaping lives here, not in the aggregator: the metrics maps
// carry no ordering guarantee, so every "top N" view sorts its own copy.

// TopRouteDelays returns up to limit routes ordered by delay rate descending,
// then shipment count descending, then route key ascending so repeated calls
// render identically.
func TopRouteDelays(m models.DashboardMetrics, limit int) []models.RouteDelay {
	rows := make([]models.RouteDelay, 0, len(m.Routes))
	for _, bucket := range m.Routes {
		rows = append(rows, models.RouteDelay{
			Route:     bucket.Key,
			Count:     bucket.Count,
			Delayed:   bucket.Delayed,
			DelayRate: bucket.DelayRate,
		})
	}
	slices.SortFunc(rows, func(a, b models.RouteDelay) int {
		if c := compareDesc(a.DelayRate, b.DelayRate); c != 0 {
			return c
		}
		if c := compareDesc(float64(a.Count), float64(b.Count)); c != 0 {
			return c
		}
		return strings.Compare(a.Route, b.Route)
	})
	return clip(rows, limit)
}

// TopSKUDelays returns up to limit SKUs ordered the same way as route rows.
func TopSKUDelays(m models.DashboardMetrics, limit int) []models.SKUDelay {
	rows := make([]models.SKUDelay, 0, len(m.SKUs))
	for _, bucket := range m.SKUs {
		rows = append(rows, models.SKUDelay{
			SKU:       bucket.Key,
			Count:     bucket.Count,
			Delayed:   bucket.Delayed,
			DelayRate: bucket.DelayRate,
		})
	}
	slices.SortFunc(rows, func(a, b models.SKUDelay) int {
		if c := compareDesc(a.DelayRate, b.DelayRate); c != 0 {
			return c
		}
		if c := compareDesc(float64(a.Count), float64(b.Count)); c != 0 {
			return c
		}
		return strings.Compare(a.SKU, b.SKU)
	})
	return clip(rows, limit)
}

func compareDesc(a, b float64) int {
	if a > b {
		return -1
	}
	if a < b {
		return 1
	}
	return 0
}

func clip[T any](rows []T, limit int) []T {
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}
