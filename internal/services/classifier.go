package services

import (
	"math"
	"time"

	"shipment-dashboard/internal/models"
)

// Classify decides whether a concluded shipment arrived late and by how many
// whole days. In-transit shipments are never delayed regardless of date math,
// and a missing or unparsable timestamp (the zero time) is treated as absence
// of evidence, not lateness. A shipment arriving exactly on the expected
// timestamp is on time — the comparison is strict.
func Classify(expected, actual time.Time, status string) models.DelayOutcome {
	if status != models.StatusArrived {
		return models.DelayOutcome{}
	}
	if actual.IsZero() || expected.IsZero() {
		return models.DelayOutcome{}
	}
	if !actual.After(expected) {
		return models.DelayOutcome{}
	}
	return models.DelayOutcome{
		Delayed:   true,
		DelayDays: delayDays(expected, actual),
	}
}

// delayDays is the ceiling of the overrun in whole days, floored at zero.
func delayDays(expected, actual time.Time) int {
	days := int(math.Ceil(actual.Sub(expected).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}
