package planner

import (
	"math"

	"github.com/bac-sim/bac-sim/sim"
	"github.com/bac-sim/bac-sim/sim/trace"
)

// FixedStopBy returns the flat-buffer recommendation: the last drink should be
// at least bufferHours before the target. Negative means the cutoff has passed.
func FixedStopBy(targetHours, bufferHours float64) float64 {
	return targetHours - bufferHours
}

// projectSchedule extends past with doses at the given rate from now until
// hour until, one dose per interval and a partial dose for the final chunk.
// Projected doses land at the end of the chunk they represent.
func projectSchedule(past []sim.Dose, gramsPerHour, until, interval float64) ([]sim.Dose, float64) {
	out := make([]sim.Dose, len(past), len(past)+int(math.Ceil(until/interval))+1)
	copy(out, past)
	total := 0.0
	prev := 0.0
	for i := 1; prev < until; i++ {
		t := math.Min(float64(i)*interval, until)
		g := gramsPerHour * (t - prev)
		out = append(out, sim.Dose{Time: t, Grams: g})
		total += g
		prev = t
	}
	return out, total
}

// paceAwareStopBy finds the latest hour X in [0, target] such that drinking on
// at gramsPerHour until X still leaves BAC at the target at or below the sober
// threshold. If BAC at the target already exceeds the threshold with no more
// drinking, it returns how many hours ago the cutoff passed, as a negative
// number: -(excess / elimination).
//
// Only doses at or before now count as already drunk: planned future doses
// are left out of both the shortcut and the projection, which replaces them
// with drinking at gramsPerHour.
func (p *Planner) paceAwareStopBy(doses []sim.Dose, profile sim.Profile, targetHours, gramsPerHour float64) float64 {
	params := p.model.Params()
	threshold := params.SoberThreshold
	past := sim.DosesUpTo(doses, 0)

	if p.trace.Enabled() {
		p.trace.Threshold = threshold
		p.trace.Target = targetHours
	}

	projected := p.model.ConcentrationAt(targetHours, past, profile)
	if projected > threshold {
		excess := projected - threshold
		stopBy := -(excess / params.EliminationPerHour)
		if p.trace.Enabled() {
			p.trace.RecordShortcut(trace.ShortcutRecord{ProjectedBAC: projected, ExcessBAC: excess, StopBy: stopBy})
		}
		return stopBy
	}

	if gramsPerHour <= 0 {
		gramsPerHour = p.cfg.FallbackGramsPerHour
	}
	lo, hi := 0.0, math.Max(0, targetHours)
	for i := 0; i < p.cfg.SearchIterations; i++ {
		mid := (lo + hi) / 2
		schedule, grams := projectSchedule(past, gramsPerHour, mid, p.cfg.ProjectionIntervalHours)
		bac := p.model.ConcentrationAt(targetHours, schedule, profile)
		ok := bac <= threshold
		if p.trace.Enabled() {
			p.trace.RecordIteration(trace.SearchRecord{
				Iteration: i, Lo: lo, Hi: hi, Candidate: mid,
				ProjectedDose: grams, ProjectedBAC: bac, Accepted: ok,
			})
		}
		if ok {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}
