package metrics

import (
	"trendboard/internal/domain/dashboard"
)

// Status thresholds. Business constants, not tunables.
const (
	// Emerging: high current engagement, significant growth, not already huge.
	emergingCurrentMin = 5000.0
	emergingGrowthMin  = 0.30
	emergingPrevCap    = 10000.0

	// Declining: was significant and is now dropping substantially.
	decliningPrevMin   = 3000.0
	decliningGrowthMax = -0.20

	// Second emerging case: medium engagement with very high growth.
	surgeCurrentMin = 2000.0
	surgeGrowthMin  = 0.50
)

// ClassifyStatus maps the current-half score, previous-half score, and
// growth fraction onto a trend status. Rules are checked in order; the
// first match wins.
func ClassifyStatus(currentScore, prevScore, growthPct float64) dashboard.TrendStatus {
	if currentScore >= emergingCurrentMin && growthPct >= emergingGrowthMin && prevScore < emergingPrevCap {
		return dashboard.StatusEmerging
	}

	if prevScore >= decliningPrevMin && growthPct <= decliningGrowthMax {
		return dashboard.StatusDeclining
	}

	if currentScore >= surgeCurrentMin && growthPct >= surgeGrowthMin {
		return dashboard.StatusEmerging
	}

	return dashboard.StatusStable
}
