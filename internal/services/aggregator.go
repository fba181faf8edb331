package services

import (
	"math"

	"shipment-dashboard/internal/models"
)

// routeSeparator joins source and destination codes into a route key.
const routeSeparator = "->"

// Aggregate folds a record set into dashboard metrics in a single pass.
// It is a pure function: no shared state, a fresh result on every call, and
// bit-identical output for identical input. Rounding happens only at the end
// of the pass so intermediate accumulators never compound rounding error.
func Aggregate(records []models.ShipmentRecord) models.DashboardMetrics {
	m := models.DashboardMetrics{
		Routes: make(map[string]models.DimensionBucket),
		SKUs:   make(map[string]models.DimensionBucket),
	}

	delayDaysSum := 0
	for _, rec := range records {
		m.TotalShipments++

		outcome := Classify(rec.ExpectedArrival, rec.ArrivedAt, rec.Status)

		switch rec.Status {
		case models.StatusArrived:
			m.ArrivedCount++
			if outcome.Delayed {
				m.DelayedCount++
				delayDaysSum += outcome.DelayDays
			}
		case models.StatusInTransit:
			m.InTransitCount++
		default:
			// Unrecognized lifecycle status (e.g. cancelled): counted in
			// totals and buckets, in neither the arrived nor in-transit tally.
			m.OtherStatusCount++
		}

		routeKey := rec.Source + routeSeparator + rec.Destination
		bumpBucket(m.Routes, routeKey, outcome.Delayed)
		bumpBucket(m.SKUs, rec.SKU, outcome.Delayed)
	}

	if m.TotalShipments > 0 {
		if m.ArrivedCount > 0 {
			m.OnTimePercentage = round2(float64(m.ArrivedCount-m.DelayedCount) / float64(m.ArrivedCount) * 100)
		}
		// Delay percentage is derived from the on-time percentage, never
		// measured independently, so the two always sum to exactly 100.
		// With zero arrivals the on-time share is 0 and the delay share 100.
		m.DelayPercentage = 100 - m.OnTimePercentage
	}

	if m.DelayedCount > 0 {
		m.AverageDelayDays = round2(float64(delayDaysSum) / float64(m.DelayedCount))
	}

	for key, bucket := range m.Routes {
		bucket.DelayRate = round2(float64(bucket.Delayed) / float64(bucket.Count) * 100)
		m.Routes[key] = bucket
	}
	for key, bucket := range m.SKUs {
		bucket.DelayRate = round2(float64(bucket.Delayed) / float64(bucket.Count) * 100)
		m.SKUs[key] = bucket
	}

	return m
}

func bumpBucket(buckets map[string]models.DimensionBucket, key string, delayed bool) {
	bucket, ok := buckets[key]
	if !ok {
		bucket = models.DimensionBucket{Key: key}
	}
	bucket.Count++
	if delayed {
		bucket.Delayed++
	}
	buckets[key] = bucket
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
