// Package drinks converts drink descriptions into grams of pure ethanol.
package drinks

import "sort"

// StandardDrinkGrams is one US standard drink of pure ethanol. It is also the
// fallback dose whenever a drink cannot be identified.
const StandardDrinkGrams = 14.0

// Conversion constants.
const (
	MillilitersPerOz = 29.5735 // US fluid ounce
	EthanolDensity   = 0.789   // g/mL
)

// Category is a generic drink type with a default serving.
type Category struct {
	Key             string
	Name            string
	ABV             float64 // fraction, e.g. 0.05 for 5%
	DefaultOz       float64 // serving size in fluid ounces
	GramsPerServing float64 // grams of ethanol in one default serving
}

// categories lists the built-in drink types. Each default serving is counted
// as one standard drink.
var categories = map[string]Category{
	"beer":    {Key: "beer", Name: "Beer (5%)", ABV: 0.05, DefaultOz: 12.0, GramsPerServing: StandardDrinkGrams},
	"wine":    {Key: "wine", Name: "Wine (12%)", ABV: 0.12, DefaultOz: 5.0, GramsPerServing: StandardDrinkGrams},
	"liquor":  {Key: "liquor", Name: "Spirit (40%)", ABV: 0.40, DefaultOz: 1.5, GramsPerServing: StandardDrinkGrams},
	"seltzer": {Key: "seltzer", Name: "Hard seltzer (5%)", ABV: 0.05, DefaultOz: 12.0, GramsPerServing: StandardDrinkGrams},
}

// GramsFromVolumeABV converts fluid ounces at an ABV fraction (0–1) to grams of
// ethanol. A zero ABV yields zero grams.
func GramsFromVolumeABV(volumeOz, abv float64) float64 {
	if abv <= 0 {
		return 0
	}
	ml := volumeOz * MillilitersPerOz
	return ml * abv * EthanolDensity
}

// GramsFromDrink returns grams of ethanol for count servings of a category.
// An explicit volumeOz overrides the serving size (count is then ignored).
// Unknown keys fall back to count standard drinks.
func GramsFromDrink(key string, volumeOz *float64, count float64) float64 {
	c, ok := categories[key]
	if !ok {
		return count * StandardDrinkGrams
	}
	if volumeOz != nil {
		return GramsFromVolumeABV(*volumeOz, c.ABV)
	}
	return count * c.GramsPerServing
}

// Lookup returns the category for key.
func Lookup(key string) (Category, bool) {
	c, ok := categories[key]
	return c, ok
}

// IsValidCategory reports whether key names a built-in category.
func IsValidCategory(key string) bool {
	_, ok := categories[key]
	return ok
}

// Categories returns all built-in categories sorted by key.
func Categories() []Category {
	out := make([]Category, 0, len(categories))
	for _, c := range categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
