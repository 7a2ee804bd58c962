package planner_test

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/bac-sim/bac-sim/sim"
	"github.com/bac-sim/bac-sim/sim/planner"
	"github.com/bac-sim/bac-sim/sim/trace"
)

var male160 = sim.Profile{WeightLb: 160, Sex: sim.SexMale}

func TestClassifyRisk(t *testing.T) {
	Convey("Given the risk policy", t, func() {
		Convey("When the gap is long and the peak is low", func() {
			Convey("Then the risk is low", func() {
				So(planner.ClassifyRisk(0.05, 12), ShouldEqual, planner.RiskLow)
				So(planner.ClassifyRisk(0.0799, 10), ShouldEqual, planner.RiskLow)
			})
		})

		Convey("When the gap is moderate and the peak is below 0.10", func() {
			Convey("Then the risk is medium", func() {
				So(planner.ClassifyRisk(0.05, 8), ShouldEqual, planner.RiskMedium)
				So(planner.ClassifyRisk(0.09, 12), ShouldEqual, planner.RiskMedium)
			})
		})

		Convey("When the peak reaches 0.10 or the gap is under six hours", func() {
			Convey("Then the risk is high", func() {
				So(planner.ClassifyRisk(0.10, 20), ShouldEqual, planner.RiskHigh)
				So(planner.ClassifyRisk(0.01, 5.9), ShouldEqual, planner.RiskHigh)
			})
		})

		Convey("When the peak rises with the gap held fixed", func() {
			Convey("Then the risk never goes down", func() {
				for _, gap := range []float64{0, 3, 6, 8, 10, 15, 1000} {
					prev := -1
					for peak := 0.0; peak <= 0.3; peak += 0.005 {
						rank := planner.ClassifyRisk(peak, gap).Rank()
						So(rank, ShouldBeGreaterThanOrEqualTo, prev)
						prev = rank
					}
				}
			})
		})

		Convey("When the gap grows with the peak held fixed", func() {
			Convey("Then the risk never goes up", func() {
				for _, peak := range []float64{0, 0.05, 0.08, 0.095, 0.10, 0.2} {
					prev := math.MaxInt
					for gap := 0.0; gap <= 24; gap += 0.25 {
						rank := planner.ClassifyRisk(peak, gap).Rank()
						So(rank, ShouldBeLessThanOrEqualTo, prev)
						prev = rank
					}
				}
			})
		})
	})
}

func TestRiskBand_Message(t *testing.T) {
	Convey("Given each risk band", t, func() {
		Convey("Then every band has a distinct advisory", func() {
			low, medium, high := planner.RiskLow.Message(), planner.RiskMedium.Message(), planner.RiskHigh.Message()
			So(low, ShouldContainSubstring, "on track")
			So(medium, ShouldContainSubstring, "a bit off")
			So(high, ShouldContainSubstring, "rough morning")
		})
	})
}

func TestEstimatePace(t *testing.T) {
	Convey("Given a drink log", t, func() {
		Convey("When there are no recent drinks", func() {
			pace := planner.EstimatePace([]sim.Dose{{Time: -5, Grams: 14}, {Time: 1, Grams: 14}}, 3)
			Convey("Then the pace is zero", func() {
				So(pace.GramsPerHour, ShouldEqual, 0.0)
				So(pace.Doses, ShouldEqual, 0)
			})
		})

		Convey("When a single drink was just had", func() {
			pace := planner.EstimatePace([]sim.Dose{{Time: 0, Grams: 14}}, 3)
			Convey("Then the divisor is at least one hour", func() {
				So(pace.GramsPerHour, ShouldEqual, 14.0)
				So(pace.DrinksPerHour, ShouldEqual, 1.0)
			})
		})

		Convey("When drinks span two hours", func() {
			pace := planner.EstimatePace([]sim.Dose{{Time: -2, Grams: 28}, {Time: -1, Grams: 14}, {Time: 0, Grams: 14}}, 3)
			Convey("Then grams are divided by the hours since the earliest", func() {
				So(pace.GramsPerHour, ShouldEqual, 28.0)
				So(pace.DrinksPerHour, ShouldEqual, 2.0)
				So(pace.Doses, ShouldEqual, 3)
			})
		})
	})
}

func TestPlanner_Plan(t *testing.T) {
	Convey("Given a 160 lb male with a double an hour ago and a drink now", t, func() {
		doses := []sim.Dose{{Time: -1, Grams: 28}, {Time: 0, Grams: 14}}

		Convey("When planning for a target ten hours away", func() {
			plan := planner.GetPlan(doses, male160, 10)

			Convey("Then the plan is complete and consistent", func() {
				So([]planner.RiskBand{planner.RiskLow, planner.RiskMedium, planner.RiskHigh}, ShouldContain, plan.HangoverRisk)
				So(math.IsInf(plan.StopByHoursFromNow, 0) || math.IsNaN(plan.StopByHoursFromNow), ShouldBeFalse)
				So(plan.StopByHoursFromNow, ShouldEqual, plan.StopByPaceAware)
				So(plan.StopByFixed, ShouldEqual, 0.0)
				So(plan.Message, ShouldEqual, plan.HangoverRisk.Message())
				So(plan.Pace.GramsPerHour, ShouldEqual, 42.0)
				So(plan.Pace.DrinksPerHour, ShouldEqual, 3.0)
				So(plan.GapHours, ShouldEqual, 10.0)
			})

			Convey("Then the peak is at least every sampled BAC", func() {
				points := sim.DefaultModel().Curve(doses, male160, sim.CurveOptions{Start: &doses[0].Time})
				for _, p := range points {
					So(plan.PeakBAC, ShouldBeGreaterThanOrEqualTo, p.BAC)
				}
			})
		})
	})

	Convey("Given no drinks at all", t, func() {
		plan := planner.GetPlan(nil, male160, 14)

		Convey("Then the fixed recommendation is used and risk is low", func() {
			So(plan.StopByHoursFromNow, ShouldEqual, 4.0)
			So(plan.StopByPaceAware, ShouldEqual, 4.0)
			So(plan.PeakBAC, ShouldEqual, 0.0)
			So(plan.HangoverRisk, ShouldEqual, planner.RiskLow)
			So(plan.GapHours, ShouldEqual, 1013.0)
		})
	})

	Convey("Given a heavy night with a target four hours away", t, func() {
		doses := []sim.Dose{{Time: -2, Grams: 140}, {Time: 0, Grams: 42}}
		plan := planner.GetPlan(doses, male160, 4)

		Convey("Then the stop-by is negative by the excess over elimination", func() {
			excess := sim.DefaultModel().ConcentrationAt(4, doses, male160) - sim.SoberThreshold
			So(plan.StopByPaceAware, ShouldAlmostEqual, -excess/sim.EliminationPerHour, 0.1)
			So(plan.StopByPaceAware, ShouldBeLessThan, 0.0)
			So(plan.HangoverRisk, ShouldEqual, planner.RiskHigh)
		})
	})
}

func TestPlanner_PaceAwareStopBy(t *testing.T) {
	Convey("Given a recorded search", t, func() {
		st := trace.NewSearchTrace(trace.TraceLevelSearch)
		p := planner.New(planner.WithTrace(st))
		doses := []sim.Dose{{Time: -1, Grams: 28}, {Time: 0, Grams: 14}}
		plan := p.Plan(doses, male160, 10)

		Convey("Then the search ran its full iteration budget", func() {
			So(st.Shortcut, ShouldBeNil)
			So(len(st.Iterations), ShouldEqual, planner.DefaultConfig().SearchIterations)
			So(st.Target, ShouldEqual, 10.0)
		})

		Convey("Then the recommendation is within the target window", func() {
			So(plan.StopByPaceAware, ShouldBeBetweenOrEqual, 0.0, 10.0)
		})

		Convey("Then every accepted candidate kept BAC at the target sober", func() {
			for _, r := range st.Iterations {
				if r.Accepted {
					So(r.ProjectedBAC, ShouldBeLessThanOrEqualTo, sim.SoberThreshold)
				} else {
					So(r.ProjectedBAC, ShouldBeGreaterThan, sim.SoberThreshold)
				}
			}
		})

		Convey("Then the summary agrees with the plan", func() {
			summary := trace.Summarize(st)
			So(summary.TotalIterations, ShouldEqual, 24)
			So(summary.FinalCandidate, ShouldBeGreaterThanOrEqualTo, plan.StopByPaceAware)
			So(summary.FinalBracket, ShouldBeLessThan, 1e-5)
		})
	})

	Convey("Given a faster pace", t, func() {
		slow := planner.GetPlan([]sim.Dose{{Time: -2, Grams: 14}, {Time: 0, Grams: 14}}, male160, 10)
		fast := planner.GetPlan([]sim.Dose{{Time: -2, Grams: 42}, {Time: 0, Grams: 42}}, male160, 10)

		Convey("Then the recommended stop comes earlier", func() {
			So(fast.StopByPaceAware, ShouldBeLessThan, slow.StopByPaceAware)
		})
	})

	Convey("Given only old drinks and no recent pace", t, func() {
		st := trace.NewSearchTrace(trace.TraceLevelSearch)
		plan := planner.New(planner.WithTrace(st)).Plan([]sim.Dose{{Time: -6, Grams: 14}}, male160, 8)

		Convey("Then one standard drink per hour is projected", func() {
			So(plan.Pace.GramsPerHour, ShouldEqual, 0.0)
			So(plan.StopByPaceAware, ShouldBeLessThan, 8.0)
			So(len(st.Iterations), ShouldEqual, 24)
		})
	})

	Convey("Given a shortcut search", t, func() {
		st := trace.NewSearchTrace(trace.TraceLevelSearch)
		planner.New(planner.WithTrace(st)).Plan([]sim.Dose{{Time: 0, Grams: 140}}, male160, 2)

		Convey("Then the trace records the shortcut and no iterations", func() {
			So(st.Shortcut, ShouldNotBeNil)
			So(st.Shortcut.StopBy, ShouldBeLessThan, 0.0)
			So(st.Iterations, ShouldBeEmpty)
			So(trace.Summarize(st).Shortcut, ShouldBeTrue)
		})
	})
}

func TestPlanner_PeakBAC(t *testing.T) {
	Convey("Given two drinks an hour apart", t, func() {
		doses := []sim.Dose{{Time: 0, Grams: 14}, {Time: 1, Grams: 14}}
		Convey("Then the peak is the BAC right after the second", func() {
			So(planner.New().PeakBAC(doses, male160), ShouldEqual, 0.0417)
		})
	})

	Convey("Given a custom window", t, func() {
		cfg := planner.DefaultConfig()
		cfg.PeakWindowHours = 0.5
		p := planner.New(planner.WithConfig(cfg))
		doses := []sim.Dose{{Time: 0, Grams: 14}, {Time: 1, Grams: 14}}
		Convey("Then later doses outside the window are not sampled", func() {
			So(p.PeakBAC(doses, male160), ShouldEqual, 0.0283)
		})
	})
}

func TestFixedStopBy(t *testing.T) {
	Convey("Given a target", t, func() {
		So(planner.FixedStopBy(12, 10), ShouldEqual, 2.0)
		So(planner.FixedStopBy(4, 10), ShouldEqual, -6.0)
	})
}

func TestConfig_Validate(t *testing.T) {
	Convey("Given the planner policy", t, func() {
		Convey("The default config is valid", func() {
			So(planner.DefaultConfig().Validate(), ShouldBeNil)
		})

		Convey("A zero projection interval is rejected", func() {
			cfg := planner.DefaultConfig()
			cfg.ProjectionIntervalHours = 0
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("A non-finite peak step is rejected", func() {
			cfg := planner.DefaultConfig()
			cfg.PeakStepHours = math.Inf(1)
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("A search without iterations is rejected", func() {
			cfg := planner.DefaultConfig()
			cfg.SearchIterations = 0
			So(cfg.Validate(), ShouldNotBeNil)
		})
	})
}

func TestPlanner_UnusableConfig_FallsBackToDefaults(t *testing.T) {
	Convey("Given a config with zero step, interval and iterations", t, func() {
		cfg := planner.DefaultConfig()
		cfg.PeakStepHours = 0
		cfg.ProjectionIntervalHours = 0
		cfg.SearchIterations = 0
		doses := []sim.Dose{{Time: -1, Grams: 28}, {Time: 0, Grams: 14}}

		Convey("When planning", func() {
			plan := planner.New(planner.WithConfig(cfg)).Plan(doses, male160, 10)

			Convey("Then the plan matches the default policy", func() {
				So(plan, ShouldResemble, planner.GetPlan(doses, male160, 10))
				So(plan.StopByPaceAware, ShouldEqual, 7.4)
			})
		})
	})
}

func TestPlanner_PlannedDrinksIgnoredByPaceAwareStopBy(t *testing.T) {
	Convey("Given drinks so far and a large drink planned later", t, func() {
		past := []sim.Dose{{Time: -1, Grams: 28}, {Time: 0, Grams: 14}}
		withPlanned := append(append([]sim.Dose{}, past...), sim.Dose{Time: 5, Grams: 100})

		Convey("Then the pace-aware stop-by only counts what was already drunk", func() {
			So(planner.GetPlan(withPlanned, male160, 10).StopByPaceAware, ShouldEqual,
				planner.GetPlan(past, male160, 10).StopByPaceAware)
		})
	})
}
