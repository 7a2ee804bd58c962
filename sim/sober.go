package sim

import "math"

// soberDecimals is the precision of HoursUntilSoberFromNow.
const soberDecimals = 2

// TimeToSoberFromFirstDose returns the hours from the first dose until BAC
// falls to SoberThreshold after the last dose. Returns 0 for an empty schedule
// and SoberScanCapHours when the scan reaches its cap without crossing the
// threshold.
func (m Model) TimeToSoberFromFirstDose(doses []Dose, p Profile) float64 {
	if len(doses) == 0 {
		return 0
	}
	return m.soberOffset(doses, p, FirstDoseTime(doses), LastDoseTime(doses))
}

// HoursUntilSoberFromNow returns the offset from the reference instant 0 of the
// first sample at or below SoberThreshold, rounded to 2 decimals. Planned doses
// do not delay it: someone sober now reads 0.
func (m Model) HoursUntilSoberFromNow(doses []Dose, p Profile) float64 {
	if len(doses) == 0 {
		return 0
	}
	return RoundTo(m.soberOffset(doses, p, 0, math.Inf(-1)), soberDecimals)
}

// soberOffset scans a curve anchored at anchor (capped SoberScanCapHours later)
// and returns the offset of the first sample at or below the sober threshold
// whose time is at least notBefore. When the curve ends between grid points
// above the threshold, the natural end is exact and is returned instead.
func (m Model) soberOffset(doses []Dose, p Profile, anchor, notBefore float64) float64 {
	limit := anchor + SoberScanCapHours
	points := m.Curve(doses, p, CurveOptions{Step: DefaultStepHours, Start: &anchor, MaxHours: &limit})
	for _, pt := range points {
		if pt.Time >= notBefore && pt.BAC <= m.params.SoberThreshold {
			return pt.Time - anchor
		}
	}
	if end := m.NaturalEnd(doses, p); end < limit {
		return math.Max(end, anchor) - anchor
	}
	return SoberScanCapHours
}
