package planner

// RiskBand classifies how rough the morning after is likely to be.
type RiskBand string

const (
	RiskLow    RiskBand = "low"
	RiskMedium RiskBand = "medium"
	RiskHigh   RiskBand = "high"
)

// Risk policy thresholds. These encode a deliberately conservative margin,
// not a clinical claim.
const (
	lowRiskMinGapHours    = 10.0
	lowRiskMaxPeakBAC     = 0.08
	mediumRiskMinGapHours = 6.0
	highRiskPeakBAC       = 0.10
)

// Rank orders bands low < medium < high.
func (b RiskBand) Rank() int {
	switch b {
	case RiskLow:
		return 0
	case RiskMedium:
		return 1
	default:
		return 2
	}
}

// ClassifyRisk returns the band for a peak BAC and the hours between the last
// drink and the target. Rules are checked in order:
//
//	gap >= 10 and peak < 0.08  -> low
//	gap >= 6  and peak < 0.10  -> medium
//	peak >= 0.10 or gap < 6    -> high
//	otherwise                  -> medium
func ClassifyRisk(peakBAC, gapHours float64) RiskBand {
	if gapHours >= lowRiskMinGapHours && peakBAC < lowRiskMaxPeakBAC {
		return RiskLow
	}
	if gapHours >= mediumRiskMinGapHours && peakBAC < highRiskPeakBAC {
		return RiskMedium
	}
	if peakBAC >= highRiskPeakBAC || gapHours < mediumRiskMinGapHours {
		return RiskHigh
	}
	return RiskMedium
}

// Message returns the advisory shown for a band.
func (b RiskBand) Message() string {
	switch b {
	case RiskLow:
		return "You're on track. Stay hydrated and get some sleep."
	case RiskMedium:
		return "You might feel a bit off. Consider stopping soon and drinking water."
	default:
		return "High chance of a rough morning. Stop drinking now, have water, and get rest."
	}
}
