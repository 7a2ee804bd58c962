package planner

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/bac-sim/bac-sim/sim"
	"github.com/bac-sim/bac-sim/sim/drinks"
)

// Pace is a recent consumption rate.
type Pace struct {
	GramsPerHour  float64 `json:"grams_per_hour"`
	DrinksPerHour float64 `json:"drinks_per_hour"` // GramsPerHour / 14
	Doses         int     `json:"doses"`           // doses inside the window
}

// EstimatePace measures consumption over the windowHours before now (0).
// The rate divides total grams by the hours since the earliest dose in the
// window, but never by less than one hour, so a single fresh drink reads as
// one drink per hour rather than infinity.
func EstimatePace(doses []sim.Dose, windowHours float64) Pace {
	grams := make([]float64, 0, len(doses))
	earliest := 0.0
	for _, d := range doses {
		if d.Time < -windowHours || d.Time > 0 {
			continue
		}
		grams = append(grams, d.Grams)
		earliest = math.Min(earliest, d.Time)
	}
	if len(grams) == 0 {
		return Pace{}
	}
	rate := floats.Sum(grams) / math.Max(1, -earliest)
	return Pace{
		GramsPerHour:  rate,
		DrinksPerHour: rate / drinks.StandardDrinkGrams,
		Doses:         len(grams),
	}
}
