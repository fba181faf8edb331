package models

import "time"

// Shipment lifecycle statuses recognized by the metrics engine. Anything else
// (e.g. a cancelled shipment) still counts toward totals and dimension buckets
// but toward neither the arrived nor the in-transit tally.
const (
	StatusInTransit = "in_transit"
	StatusArrived   = "arrived"
)

// ShipmentRecord is one row of the input dataset. Records are built once per
// parse pass and never mutated. ArrivedAt is the zero time when the shipment
// has not concluded or the source value could not be parsed.
type ShipmentRecord struct {
	ID              string
	Source          string
	Destination     string
	DepartedAt      time.Time
	ExpectedArrival time.Time
	ArrivedAt       time.Time
	Status          string
	SKU             string
	Quantity        int
}

// DelayOutcome is the per-record classification result. DelayDays is always
// >= 0; shipments that arrive early or on time contribute zero delay days.
type DelayOutcome struct {
	Delayed   bool
	DelayDays int
}

// DimensionBucket aggregates all records sharing a grouping key, either a
// route ("SRC->DST") or a SKU code.
type DimensionBucket struct {
	Key       string  `json:"key"`
	Count     int     `json:"count"`
	Delayed   int     `json:"delayed"`
	DelayRate float64 `json:"delay_rate_pct"`
}

// DashboardMetrics is the aggregation result consumed by the presentation
// layer. It is a freshly allocated snapshot on every aggregation pass.
type DashboardMetrics struct {
	TotalShipments   int                        `json:"total_shipments"`
	ArrivedCount     int                        `json:"arrived_count"`
	InTransitCount   int                        `json:"in_transit_count"`
	OtherStatusCount int                        `json:"other_status_count"`
	DelayedCount     int                        `json:"delayed_count"`
	OnTimePercentage float64                    `json:"on_time_percentage"`
	DelayPercentage  float64                    `json:"delay_percentage"`
	AverageDelayDays float64                    `json:"average_delay_days"`
	Routes           map[string]DimensionBucket `json:"routes"`
	SKUs             map[string]DimensionBucket `json:"skus"`
}

// RouteDelay is a presentation row for the route delay table.
type RouteDelay struct {
	Route     string  `json:"route"`
	Count     int     `json:"shipment_count"`
	Delayed   int     `json:"delayed_count"`
	DelayRate float64 `json:"delay_rate_pct"`
}

// SKUDelay is a presentation row for the SKU delay table.
type SKUDelay struct {
	SKU       string  `json:"sku"`
	Count     int     `json:"shipment_count"`
	Delayed   int     `json:"delayed_count"`
	DelayRate float64 `json:"delay_rate_pct"`
}

// Prediction is an independently sourced ETA forecast for an in-transit
// shipment. DelayRisk is supplied by the upstream predictor and trusted
// as given; confidence-range bucketing is the only classification this
// service performs on it.
type Prediction struct {
	ShipmentID       string  `json:"shipment_id"`
	Route            string  `json:"route"`
	DepartedAt       string  `json:"departed_at"`
	ExpectedArrival  string  `json:"expected_arrival"`
	PredictedArrival string  `json:"predicted_arrival"`
	PredictedDays    float64 `json:"predicted_days"`
	Confidence       float64 `json:"confidence"`
	DelayRisk        string  `json:"delay_risk"`
	Status           string  `json:"status"`
}

// RiskSummary tallies predictions by supplied risk label and by confidence
// range. Percentages are computed over TotalPredictions, so unrecognized
// labels lower every percentage instead of silently renormalizing.
type RiskSummary struct {
	TotalPredictions  int                `json:"total_predictions"`
	RiskCounts        map[string]int     `json:"risk_counts"`
	RiskPercentages   map[string]float64 `json:"risk_percentages"`
	ConfidenceBuckets map[string]int     `json:"confidence_buckets"`
}
