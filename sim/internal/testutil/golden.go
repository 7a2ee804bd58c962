// Package testutil provides shared test infrastructure for the bac-sim engine.
// It consolidates golden dataset types and assertion helpers used across
// sim/ and sim/planner/ test packages.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/bac-sim/bac-sim/sim"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase represents a single dose schedule and its expected outputs.
type GoldenTestCase struct {
	Name        string         `json:"name"`
	WeightLb    float64        `json:"weight_lb"`
	Sex         string         `json:"sex"`
	Doses       []GoldenDose   `json:"doses"`
	TargetHours float64        `json:"target_hours"`
	Expect      GoldenExpected `json:"expect"`
}

// GoldenDose is one (time, grams) pair.
type GoldenDose struct {
	Time  float64 `json:"time"`
	Grams float64 `json:"grams"`
}

// GoldenSample is an expected BAC at a time.
type GoldenSample struct {
	Time float64 `json:"time"`
	BAC  float64 `json:"bac"`
}

// GoldenExpected holds the expected engine and planner outputs for a case.
type GoldenExpected struct {
	BACAt                    []GoldenSample `json:"bac_at"`
	HoursUntilSoberFromNow   float64        `json:"hours_until_sober_from_now"`
	TimeToSoberFromFirstDose float64        `json:"time_to_sober_from_first_dose"`
	CurvePoints              int            `json:"curve_points"`
	PeakBAC                  float64        `json:"peak_bac"`
	HangoverRisk             string         `json:"hangover_risk"`
	PaceGramsPerHour         float64        `json:"pace_grams_per_hour"`
	StopByPace               float64        `json:"stop_by_pace"`
	StopByFixed              float64        `json:"stop_by_fixed"`
}

// Profile returns the case's engine profile.
func (tc GoldenTestCase) Profile() sim.Profile {
	return sim.NewProfile(tc.WeightLb, tc.Sex != string(sim.SexFemale))
}

// SimDoses returns the case's schedule as engine doses.
func (tc GoldenTestCase) SimDoses() []sim.Dose {
	doses := make([]sim.Dose, len(tc.Doses))
	for i, d := range tc.Doses {
		doses[i] = sim.Dose{Time: d.Time, Grams: d.Grams}
	}
	return doses
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
