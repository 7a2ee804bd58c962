package sim

import "math"

// sampleEpsilon absorbs float error when deciding whether the last grid point
// still lies within [start, end].
const sampleEpsilon = 1e-9

// CurvePoint is one sample of a BAC curve.
type CurvePoint struct {
	Time float64 `json:"t" yaml:"t"`     // hours from now
	BAC  float64 `json:"bac" yaml:"bac"` // percent, >= 0
}

// CurveOptions controls sampling. Zero values select the defaults:
// Step = DefaultStepHours, Start = 0, no cap.
type CurveOptions struct {
	Step     float64  // sampling interval in hours
	Start    *float64 // first sample time; nil means 0
	MaxHours *float64 // absolute time cap on the end of the curve; nil means uncapped
}

// NaturalEnd returns the time at which every dose has decayed to zero on its
// own clock: the maximum of doseTime + rise/elimination over doses.
// Returns 0 when doses is empty.
func (m Model) NaturalEnd(doses []Dose, p Profile) float64 {
	if len(doses) == 0 {
		return 0
	}
	end := math.Inf(-1)
	for _, d := range doses {
		end = math.Max(end, d.Time+m.decayHours(d, p))
	}
	return end
}

// Curve samples ConcentrationAt from start to end inclusive at a fixed step.
// End is the natural end of the schedule, capped by opts.MaxHours and never
// earlier than start. Returns nil when there are no doses.
//
// Sample times are computed as start + i×step rather than by accumulation so
// long curves do not drift off the grid.
func (m Model) Curve(doses []Dose, p Profile, opts CurveOptions) []CurvePoint {
	if len(doses) == 0 {
		return nil
	}
	step := opts.Step
	if step <= 0 {
		step = DefaultStepHours
	}
	start := 0.0
	if opts.Start != nil {
		start = *opts.Start
	}
	end := m.NaturalEnd(doses, p)
	if opts.MaxHours != nil {
		end = math.Min(end, *opts.MaxHours)
	}
	end = math.Max(end, start)

	n := int(math.Floor((end-start)/step + sampleEpsilon))
	points := make([]CurvePoint, 0, n+1)
	for i := 0; i <= n; i++ {
		t := start + float64(i)*step
		points = append(points, CurvePoint{Time: t, BAC: m.ConcentrationAt(t, doses, p)})
	}
	return points
}

// PeakOf returns the highest BAC in points, or 0 for an empty curve.
func PeakOf(points []CurvePoint) float64 {
	peak := 0.0
	for _, pt := range points {
		peak = math.Max(peak, pt.BAC)
	}
	return peak
}
