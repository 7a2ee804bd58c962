package drinks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGramsFromDrink_StandardServings(t *testing.T) {
	assert.Equal(t, StandardDrinkGrams, GramsFromDrink("beer", nil, 1))
	assert.Equal(t, StandardDrinkGrams*2, GramsFromDrink("beer", nil, 2))
	assert.Equal(t, StandardDrinkGrams*0.5, GramsFromDrink("wine", nil, 0.5))
}

func TestGramsFromDrink_UnknownKey_FallsBackToStandardDrinks(t *testing.T) {
	assert.Equal(t, 3*StandardDrinkGrams, GramsFromDrink("mead", nil, 3))
	oz := 20.0
	assert.Equal(t, StandardDrinkGrams, GramsFromDrink("mead", &oz, 1))
}

func TestGramsFromDrink_ExplicitVolumeUsesCategoryABV(t *testing.T) {
	oz := 16.0
	got := GramsFromDrink("beer", &oz, 5)
	assert.InDelta(t, 16*29.5735*0.05*0.789, got, 1e-9)
}

func TestGramsFromVolumeABV(t *testing.T) {
	// 12 oz at 5% is ~14 g, close to one standard drink
	assert.InDelta(t, 14.0, GramsFromVolumeABV(12, 0.05), 0.1)
	assert.Equal(t, 0.0, GramsFromVolumeABV(12, 0))
	assert.Equal(t, 0.0, GramsFromVolumeABV(0, 0.4))
}

func TestCategories_SortedAndComplete(t *testing.T) {
	cats := Categories()
	keys := make([]string, len(cats))
	for i, c := range cats {
		keys[i] = c.Key
	}
	assert.Equal(t, []string{"beer", "liquor", "seltzer", "wine"}, keys)
	assert.True(t, IsValidCategory("liquor"))
	assert.False(t, IsValidCategory("cocktail"))

	c, ok := Lookup("wine")
	assert.True(t, ok)
	assert.Equal(t, 5.0, c.DefaultOz)
}
