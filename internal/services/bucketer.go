package services

import "shipment-dashboard/internal/models"

// Confidence range labels used for display grouping.
const (
	ConfidenceTop    = "90-100%"
	ConfidenceHigh   = "80-89%"
	ConfidenceMedium = "70-79%"
	ConfidenceLow    = "<70%"
)

// Risk labels supplied by the upstream predictor.
var knownRiskLabels = []string{"LOW", "MEDIUM", "HIGH"}

// BucketConfidence maps a 0-100 confidence score onto a coarse display range.
// Boundaries are half-open: a score of exactly 90, 80 or 70 belongs to the
// higher bucket.
func BucketConfidence(score float64) string {
	switch {
	case score >= 90:
		return ConfidenceTop
	case score >= 80:
		return ConfidenceHigh
	case score >= 70:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// TallyRisk counts predictions by their supplied delay-risk label and by
// confidence range. The risk label is trusted as given; a prediction whose
// label is not LOW, MEDIUM or HIGH contributes to none of the three counts.
// Percentages use the true prediction total as the denominator, so they do
// not renormalize when unrecognized labels are present.
func TallyRisk(predictions []models.Prediction) models.RiskSummary {
	summary := models.RiskSummary{
		TotalPredictions:  len(predictions),
		RiskCounts:        make(map[string]int, len(knownRiskLabels)),
		RiskPercentages:   make(map[string]float64, len(knownRiskLabels)),
		ConfidenceBuckets: make(map[string]int),
	}
	for _, label := range knownRiskLabels {
		summary.RiskCounts[label] = 0
	}

	for _, p := range predictions {
		if _, known := summary.RiskCounts[p.DelayRisk]; known {
			summary.RiskCounts[p.DelayRisk]++
		}
		summary.ConfidenceBuckets[BucketConfidence(p.Confidence)]++
	}

	for _, label := range knownRiskLabels {
		if summary.TotalPredictions > 0 {
			summary.RiskPercentages[label] = round2(float64(summary.RiskCounts[label]) / float64(summary.TotalPredictions) * 100)
		} else {
			summary.RiskPercentages[label] = 0
		}
	}

	return summary
}
