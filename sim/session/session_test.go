package session

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bac-sim/bac-sim/sim"
	"github.com/bac-sim/bac-sim/sim/drinks"
	"github.com/bac-sim/bac-sim/sim/planner"
)

func newTestSession() *Session {
	return New(sim.NewProfile(160, true))
}

func TestSession_AddDrinkAgo_MatchesEngine(t *testing.T) {
	// GIVEN a 160 lb male who had a double an hour ago
	s := newTestSession()
	s.AddDrinkAgo(1, "beer", 2)

	// THEN the session answers the same as the engine would
	assert.Equal(t, 0.0417, s.BACNow())
	assert.Equal(t, 0.0567, s.BACAt(-1))
	assert.Equal(t, 2.75, s.HoursUntilSoberFromNow())
	assert.Equal(t, 3.75, s.HoursUntilSober())
	assert.Equal(t, 28.0, s.TotalGrams())
}

func TestSession_Events_SortedCopyWithIDs(t *testing.T) {
	s := newTestSession()
	late := s.AddDrink(0, "wine", 1)
	early := s.AddDrinkAgo(2, "liquor", 1)
	s.AddGrams(-1, 10, sim.Nutrition{})

	events := s.Events()
	require.Len(t, events, 3)
	assert.Equal(t, early.ID, events[0].ID)
	assert.Equal(t, late.ID, events[2].ID)
	assert.Equal(t, SourceGrams, events[1].Source)
	assert.NotEqual(t, uuid.Nil, events[1].ID)
	assert.NotEqual(t, events[0].ID, events[2].ID)

	// mutating the copy leaves the log untouched
	events[0].Dose.Grams = 999
	assert.Equal(t, drinks.StandardDrinkGrams, s.Events()[0].Dose.Grams)

	doses := s.Doses()
	assert.Equal(t, []float64{-2, -1, 0}, []float64{doses[0].Time, doses[1].Time, doses[2].Time})
}

func TestSession_AddCatalogDrink_AccumulatesNutrition(t *testing.T) {
	s := newTestSession()
	s.AddCatalogDrink(1, "bud-light", 2)
	s.AddCatalogDrink(0, "margarita", 1)

	n := s.Nutrition()
	assert.Equal(t, 400, n.Calories)
	assert.InDelta(t, 21.2, n.CarbsG, 1e-9)
	assert.InDelta(t, 7.0, n.SugarG, 1e-9)

	ev := s.Events()[0]
	assert.Equal(t, SourceCatalog, ev.Source)
	assert.Equal(t, "bud-light", ev.Ref)
	assert.Equal(t, -1.0, ev.Dose.Time)
}

func TestSession_AddCatalogDrink_UnknownCountsStandardDrinks(t *testing.T) {
	s := newTestSession()
	ev := s.AddCatalogDrink(0, "mystery-punch", 2)
	assert.Equal(t, 2*drinks.StandardDrinkGrams, ev.Dose.Grams)
	assert.Zero(t, s.Nutrition())
}

func TestSession_AddDrinkVolume(t *testing.T) {
	s := newTestSession()
	ev := s.AddDrinkVolume(0, "wine", 10)
	assert.InDelta(t, drinks.GramsFromVolumeABV(10, 0.12), ev.Dose.Grams, 1e-9)
	assert.Equal(t, 1.0, ev.Count)
}

func TestSession_Reset_KeepsProfile(t *testing.T) {
	s := newTestSession()
	s.AddDrink(0, "beer", 1)
	s.Reset()

	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0.0, s.BACNow())
	assert.Equal(t, 0.0, s.HoursUntilSoberFromNow())
	assert.Nil(t, s.Curve(sim.CurveOptions{}))
	assert.Equal(t, 160.0, s.Profile().WeightLb)
}

func TestSession_DisplayCurve_Window(t *testing.T) {
	s := newTestSession()
	s.AddDrinkAgo(1, "beer", 2)

	points := s.DisplayCurve()
	require.NotEmpty(t, points)
	assert.Equal(t, -1.5, points[0].Time)
	assert.Equal(t, 0.0, points[0].BAC)
	assert.Len(t, points, 18)
	assert.LessOrEqual(t, points[len(points)-1].Time, 3.75)
}

func TestSession_DisplayCurve_Empty(t *testing.T) {
	assert.Nil(t, newTestSession().DisplayCurve())
}

func TestSession_Plan_DelegatesToPlanner(t *testing.T) {
	s := newTestSession()
	s.AddDrinkAgo(1, "beer", 2)
	s.AddDrink(0, "beer", 1)

	plan := s.Plan(10)
	assert.Equal(t, planner.RiskLow, plan.HangoverRisk)
	assert.Equal(t, 0.07, plan.PeakBAC)
	assert.Equal(t, 7.4, plan.StopByPaceAware)
	assert.Equal(t, 0.0, plan.StopByFixed)
}
