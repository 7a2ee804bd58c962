// Package planner turns a dose schedule into hangover guidance: a risk band,
// a recommended stop-by time and the current drinking pace.
//
// Two stop-by values are produced. The fixed one keeps a flat buffer before the
// target; the pace-aware one projects the current pace forward and bisects for
// the latest stop time that still reaches the sober threshold by the target.
package planner

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/bac-sim/bac-sim/sim"
	"github.com/bac-sim/bac-sim/sim/drinks"
	"github.com/bac-sim/bac-sim/sim/trace"
)

// noDrinksGapHours stands in for the gap between last drink and target when
// nothing has been logged.
const noDrinksGapHours = 999.0

// Config groups the planner's policy constants.
type Config struct {
	PeakWindowHours         float64 // peak BAC is searched this long after the first dose
	PeakStepHours           float64 // sampling interval for the peak search
	FixedBufferHours        float64 // fixed stop-by buffer before the target
	PaceWindowHours         float64 // doses this recent feed the pace estimate
	ProjectionIntervalHours float64 // projected doses are spaced this far apart
	SearchIterations        int     // bisection steps of the stop-by search
	FallbackGramsPerHour    float64 // projected pace when no recent doses exist
}

// DefaultConfig returns the standard planning policy.
func DefaultConfig() Config {
	return Config{
		PeakWindowHours:         24,
		PeakStepHours:           0.25,
		FixedBufferHours:        10,
		PaceWindowHours:         3,
		ProjectionIntervalHours: 0.5,
		SearchIterations:        24,
		FallbackGramsPerHour:    drinks.StandardDrinkGrams,
	}
}

// Validate checks that every step, interval and window is a finite positive
// number and that the search runs at least once.
func (c Config) Validate() error {
	positive := []struct {
		name string
		val  float64
	}{
		{"PeakWindowHours", c.PeakWindowHours},
		{"PeakStepHours", c.PeakStepHours},
		{"PaceWindowHours", c.PaceWindowHours},
		{"ProjectionIntervalHours", c.ProjectionIntervalHours},
		{"FallbackGramsPerHour", c.FallbackGramsPerHour},
	}
	for _, f := range positive {
		if math.IsNaN(f.val) || math.IsInf(f.val, 0) || f.val <= 0 {
			return fmt.Errorf("%s must be a finite positive number, got %f", f.name, f.val)
		}
	}
	if math.IsNaN(c.FixedBufferHours) || math.IsInf(c.FixedBufferHours, 0) {
		return fmt.Errorf("FixedBufferHours must be a finite number, got %f", c.FixedBufferHours)
	}
	if c.SearchIterations < 1 {
		return fmt.Errorf("SearchIterations must be at least 1, got %d", c.SearchIterations)
	}
	return nil
}

// withDefaults replaces unusable fields with their DefaultConfig values, the
// way Curve falls back to DefaultStepHours for a non-positive step.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	usable := func(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0 }
	if !usable(c.PeakWindowHours) {
		c.PeakWindowHours = d.PeakWindowHours
	}
	if !usable(c.PeakStepHours) {
		c.PeakStepHours = d.PeakStepHours
	}
	if !usable(c.PaceWindowHours) {
		c.PaceWindowHours = d.PaceWindowHours
	}
	if !usable(c.ProjectionIntervalHours) {
		c.ProjectionIntervalHours = d.ProjectionIntervalHours
	}
	if !usable(c.FallbackGramsPerHour) {
		c.FallbackGramsPerHour = d.FallbackGramsPerHour
	}
	if math.IsNaN(c.FixedBufferHours) || math.IsInf(c.FixedBufferHours, 0) {
		c.FixedBufferHours = d.FixedBufferHours
	}
	if c.SearchIterations < 1 {
		c.SearchIterations = d.SearchIterations
	}
	return c
}

// Option applies a configuration option to the Planner.
type Option func(*Planner)

// WithConfig replaces the policy constants. Fields that fail Validate fall
// back to their DefaultConfig values.
func WithConfig(cfg Config) Option {
	return func(p *Planner) {
		p.cfg = cfg
	}
}

// WithModel sets the concentration model used for every evaluation.
func WithModel(m sim.Model) Option {
	return func(p *Planner) {
		p.model = m
	}
}

// WithTrace records the stop-by search into st. A Planner with a trace must
// not be shared between goroutines.
func WithTrace(st *trace.SearchTrace) Option {
	return func(p *Planner) {
		p.trace = st
	}
}

// Planner computes plans. Without a trace it holds no mutable state and may be
// used concurrently.
type Planner struct {
	model sim.Model
	cfg   Config
	trace *trace.SearchTrace
}

// New creates a Planner with the default model and policy, then applies opts.
func New(opts ...Option) *Planner {
	p := &Planner{
		model: sim.DefaultModel(),
		cfg:   DefaultConfig(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.cfg = p.cfg.withDefaults()
	return p
}

// Plan is the derived guidance for one schedule and target.
type Plan struct {
	HoursUntilTarget   float64  `json:"hours_until_target"`
	HangoverRisk       RiskBand `json:"hangover_risk"`
	StopByHoursFromNow float64  `json:"stop_by_hours_from_now"` // pace-aware when doses exist, else fixed
	StopByFixed        float64  `json:"stop_by_fixed"`
	StopByPaceAware    float64  `json:"stop_by_pace_aware"`
	PeakBAC            float64  `json:"peak_bac"`
	GapHours           float64  `json:"gap_hours"` // last drink to target
	Pace               Pace     `json:"pace"`
	Message            string   `json:"message"`
}

// PeakBAC samples BAC every PeakStepHours across PeakWindowHours from the
// earliest dose and returns the highest sample.
func (p *Planner) PeakBAC(doses []sim.Dose, profile sim.Profile) float64 {
	if len(doses) == 0 {
		return 0
	}
	start := sim.FirstDoseTime(doses)
	n := int(p.cfg.PeakWindowHours / p.cfg.PeakStepHours)
	samples := make([]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		t := start + float64(i)*p.cfg.PeakStepHours
		samples = append(samples, p.model.ConcentrationAt(t, doses, profile))
	}
	return floats.Max(samples)
}

// Plan builds the full plan for "I need to be sharp in targetHours hours".
func (p *Planner) Plan(doses []sim.Dose, profile sim.Profile, targetHours float64) Plan {
	peak := p.PeakBAC(doses, profile)

	gap := targetHours + noDrinksGapHours
	if len(doses) > 0 {
		gap = targetHours - sim.LastDoseTime(doses)
	}
	risk := ClassifyRisk(peak, gap)

	pace := EstimatePace(doses, p.cfg.PaceWindowHours)
	fixed := sim.RoundTo(FixedStopBy(targetHours, p.cfg.FixedBufferHours), 1)
	stopBy := fixed
	paceAware := fixed
	if len(doses) > 0 {
		// Floor so the rounded value never lands past the safe cutoff.
		paceAware = sim.FloorTo(p.paceAwareStopBy(doses, profile, targetHours, pace.GramsPerHour), 1)
		stopBy = paceAware
	}

	return Plan{
		HoursUntilTarget:   targetHours,
		HangoverRisk:       risk,
		StopByHoursFromNow: stopBy,
		StopByFixed:        fixed,
		StopByPaceAware:    paceAware,
		PeakBAC:            sim.RoundTo(peak, 4),
		GapHours:           gap,
		Pace:               pace,
		Message:            risk.Message(),
	}
}

// GetPlan is Plan with the default model and policy.
func GetPlan(doses []sim.Dose, profile sim.Profile, targetHours float64) Plan {
	return New().Plan(doses, profile, targetHours)
}
