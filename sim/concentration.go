package sim

import "math"

// RiseFromGrams returns the immediate BAC rise (%) from one dose (Widmark):
//
//	rise = grams / (weightLb × 454 × r) × 100
//
// weightLb must be > 0; the model does not guard against division by zero.
func (m Model) RiseFromGrams(grams, weightLb float64, sex Sex) float64 {
	bodyGrams := weightLb * m.params.GramsPerPound
	return grams / (bodyGrams * m.ratio(sex)) * 100.0
}

// contribution is what one dose adds to BAC at time t. It is zero before the
// dose is taken and never negative afterwards.
func (m Model) contribution(t float64, d Dose, p Profile) float64 {
	if t < d.Time {
		return 0
	}
	rise := m.RiseFromGrams(d.Grams, p.WeightLb, p.Sex)
	elapsed := t - d.Time
	return math.Max(0, rise-m.params.EliminationPerHour*elapsed)
}

// ConcentrationAt returns total BAC (%) at time t, rounded to 4 decimals.
// Each dose decays on its own clock starting at its dose time; contributions
// are clamped at zero individually and then summed, so doses never interact.
func (m Model) ConcentrationAt(t float64, doses []Dose, p Profile) float64 {
	bac := 0.0
	for _, d := range doses {
		bac += m.contribution(t, d, p)
	}
	return RoundTo(bac, bacDecimals)
}

// decayHours is how long the body needs to clear one dose on its own.
func (m Model) decayHours(d Dose, p Profile) float64 {
	return m.RiseFromGrams(d.Grams, p.WeightLb, p.Sex) / m.params.EliminationPerHour
}
