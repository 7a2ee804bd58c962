package sim

import "github.com/shopspring/decimal"

// RoundTo rounds x half away from zero to the given number of decimal places.
// Rounding goes through the shortest decimal representation of x, so 0.00005
// rounds to 0.0001 rather than to whatever its binary neighbour would give.
func RoundTo(x float64, places int32) float64 {
	return decimal.NewFromFloat(x).Round(places).InexactFloat64()
}

// FloorTo rounds x toward negative infinity at the given number of decimal places.
func FloorTo(x float64, places int32) float64 {
	return decimal.NewFromFloat(x).RoundFloor(places).InexactFloat64()
}
