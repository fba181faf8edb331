package services

import (
	"testing"
	"time"

	"shipment-dashboard/internal/models"
)

func TestClassify(t *testing.T) {
	expected := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		expected time.Time
		actual   time.Time
		status   string
		want     models.DelayOutcome
	}{
		{
			name:     "in transit is never delayed regardless of date math",
			expected: expected,
			actual:   expected.Add(5 * 24 * time.Hour),
			status:   models.StatusInTransit,
			want:     models.DelayOutcome{},
		},
		{
			name:     "missing actual arrival is not delayed",
			expected: expected,
			actual:   time.Time{},
			status:   models.StatusArrived,
			want:     models.DelayOutcome{},
		},
		{
			name:     "missing expected arrival is not delayed",
			expected: time.Time{},
			actual:   expected,
			status:   models.StatusArrived,
			want:     models.DelayOutcome{},
		},
		{
			name:     "exactly on time is not delayed",
			expected: expected,
			actual:   expected,
			status:   models.StatusArrived,
			want:     models.DelayOutcome{},
		},
		{
			name:     "early arrival contributes zero delay days",
			expected: expected,
			actual:   expected.Add(-3 * 24 * time.Hour),
			status:   models.StatusArrived,
			want:     models.DelayOutcome{},
		},
		{
			name:     "two days late",
			expected: expected,
			actual:   expected.Add(2 * 24 * time.Hour),
			status:   models.StatusArrived,
			want:     models.DelayOutcome{Delayed: true, DelayDays: 2},
		},
		{
			name:     "partial day rounds up",
			expected: expected,
			actual:   expected.Add(25 * time.Hour),
			status:   models.StatusArrived,
			want:     models.DelayOutcome{Delayed: true, DelayDays: 2},
		},
		{
			name:     "one hour late is one whole day",
			expected: expected,
			actual:   expected.Add(time.Hour),
			status:   models.StatusArrived,
			want:     models.DelayOutcome{Delayed: true, DelayDays: 1},
		},
		{
			name:     "unrecognized status is not delayed",
			expected: expected,
			actual:   expected.Add(4 * 24 * time.Hour),
			status:   "cancelled",
			want:     models.DelayOutcome{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.expected, tt.actual, tt.status)
			if got != tt.want {
				t.Errorf("Classify() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestClassify_DelayDaysNeverNegative(t *testing.T) {
	expected := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	for days := -10; days <= 10; days++ {
		actual := expected.Add(time.Duration(days) * 24 * time.Hour)
		got := Classify(expected, actual, models.StatusArrived)
		if got.DelayDays < 0 {
			t.Errorf("delay days must never be negative, got %d for offset %d", got.DelayDays, days)
		}
		if days <= 0 && (got.Delayed || got.DelayDays != 0) {
			t.Errorf("arrival at or before expected must be on time, got %+v for offset %d", got, days)
		}
	}
}
