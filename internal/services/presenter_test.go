package services

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"shipment-dashboard/internal/models"
)

func metricsWithRoutes(buckets ...models.DimensionBucket) models.DashboardMetrics {
	m := models.DashboardMetrics{
		Routes: make(map[string]models.DimensionBucket),
		SKUs:   make(map[string]models.DimensionBucket),
	}
	for _, b := range buckets {
		m.Routes[b.Key] = b
		m.SKUs[b.Key] = b
	}
	return m
}

func TestTopRouteDelays_Ordering(t *testing.T) {
	m := metricsWithRoutes(
		models.DimensionBucket{Key: "A->B", Count: 10, Delayed: 5, DelayRate: 50.0},
		models.DimensionBucket{Key: "A->C", Count: 4, Delayed: 3, DelayRate: 75.0},
		models.DimensionBucket{Key: "B->C", Count: 20, Delayed: 10, DelayRate: 50.0},
		models.DimensionBucket{Key: "C->D", Count: 10, Delayed: 5, DelayRate: 50.0},
	)

	rows := TopRouteDelays(m, 0)

	want := []models.RouteDelay{
		{Route: "A->C", Count: 4, Delayed: 3, DelayRate: 75.0},
		{Route: "B->C", Count: 20, Delayed: 10, DelayRate: 50.0},
		{Route: "A->B", Count: 10, Delayed: 5, DelayRate: 50.0},
		{Route: "C->D", Count: 10, Delayed: 5, DelayRate: 50.0},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("unexpected ordering (-want +got):\n%s", diff)
	}
}

func TestTopRouteDelays_Deterministic(t *testing.T) {
	m := metricsWithRoutes(
		models.DimensionBucket{Key: "A->B", Count: 10, Delayed: 5, DelayRate: 50.0},
		models.DimensionBucket{Key: "C->D", Count: 10, Delayed: 5, DelayRate: 50.0},
		models.DimensionBucket{Key: "B->C", Count: 10, Delayed: 5, DelayRate: 50.0},
	)

	first := TopRouteDelays(m, 0)
	for i := 0; i < 20; i++ {
		if diff := cmp.Diff(first, TopRouteDelays(m, 0)); diff != "" {
			t.Fatalf("ordering varied across calls:\n%s", diff)
		}
	}
}

func TestTopRouteDelays_Limit(t *testing.T) {
	m := metricsWithRoutes(
		models.DimensionBucket{Key: "A->B", Count: 1, DelayRate: 10},
		models.DimensionBucket{Key: "B->C", Count: 1, DelayRate: 20},
		models.DimensionBucket{Key: "C->D", Count: 1, DelayRate: 30},
	)

	if got := len(TopRouteDelays(m, 2)); got != 2 {
		t.Errorf("limit 2 returned %d rows", got)
	}
	if got := len(TopRouteDelays(m, 10)); got != 3 {
		t.Errorf("limit above size returned %d rows, want 3", got)
	}
	if got := len(TopRouteDelays(m, 0)); got != 3 {
		t.Errorf("limit 0 (unlimited) returned %d rows, want 3", got)
	}
}

func TestTopSKUDelays_Ordering(t *testing.T) {
	m := metricsWithRoutes(
		models.DimensionBucket{Key: "SKU-2", Count: 5, Delayed: 1, DelayRate: 20.0},
		models.DimensionBucket{Key: "SKU-1", Count: 5, Delayed: 4, DelayRate: 80.0},
	)

	rows := TopSKUDelays(m, 0)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].SKU != "SKU-1" {
		t.Errorf("highest delay rate should sort first, got %q", rows[0].SKU)
	}
}

func TestTopDelays_EmptyMetrics(t *testing.T) {
	m := Aggregate(nil)

	if rows := TopRouteDelays(m, 10); len(rows) != 0 {
		t.Errorf("expected no route rows, got %d", len(rows))
	}
	if rows := TopSKUDelays(m, 10); len(rows) != 0 {
		t.Errorf("expected no SKU rows, got %d", len(rows))
	}
}
