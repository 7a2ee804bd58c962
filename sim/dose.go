package sim

import "sort"

// Nutrition carries reporting-only fields of a drink. The concentration model
// never reads it.
type Nutrition struct {
	Calories int     `json:"calories" yaml:"calories"`
	CarbsG   float64 `json:"carbs_g" yaml:"carbs_g"`
	SugarG   float64 `json:"sugar_g" yaml:"sugar_g"`
}

// Add returns the field-wise sum of n and o.
func (n Nutrition) Add(o Nutrition) Nutrition {
	return Nutrition{
		Calories: n.Calories + o.Calories,
		CarbsG:   n.CarbsG + o.CarbsG,
		SugarG:   n.SugarG + o.SugarG,
	}
}

// Dose is one alcohol intake.
// Time is in hours relative to "now" (0.0): negative is in the past, positive is planned.
type Dose struct {
	Time      float64 // hours from now
	Grams     float64 // grams of pure ethanol
	Nutrition Nutrition
}

// SortDoses returns a copy of doses ordered by time. Doses at equal times keep
// their relative order.
func SortDoses(doses []Dose) []Dose {
	out := make([]Dose, len(doses))
	copy(out, doses)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}

// FirstDoseTime returns the earliest dose time, or 0 when doses is empty.
func FirstDoseTime(doses []Dose) float64 {
	if len(doses) == 0 {
		return 0
	}
	first := doses[0].Time
	for _, d := range doses[1:] {
		if d.Time < first {
			first = d.Time
		}
	}
	return first
}

// LastDoseTime returns the latest dose time, or 0 when doses is empty.
func LastDoseTime(doses []Dose) float64 {
	if len(doses) == 0 {
		return 0
	}
	last := doses[0].Time
	for _, d := range doses[1:] {
		if d.Time > last {
			last = d.Time
		}
	}
	return last
}

// DosesUpTo returns the doses taken at or before t, preserving order.
func DosesUpTo(doses []Dose, t float64) []Dose {
	out := make([]Dose, 0, len(doses))
	for _, d := range doses {
		if d.Time <= t {
			out = append(out, d)
		}
	}
	return out
}
