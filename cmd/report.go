package cmd

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/bac-sim/bac-sim/sim/planner"
	"github.com/bac-sim/bac-sim/sim/session"
	"github.com/bac-sim/bac-sim/sim/trace"
)

// printer formats numbers with grouping so large calorie counts stay readable.
var printer = message.NewPrinter(language.English)

// writeReport prints the human-readable summary for a session and its plan.
func writeReport(w io.Writer, s *session.Session, plan planner.Plan) {
	p := s.Profile()
	printer.Fprintf(w, "Profile: %.0f lb, %s\n", p.WeightLb, p.Sex)
	printer.Fprintf(w, "Drinks logged: %d (%.1f g ethanol)\n", s.Len(), s.TotalGrams())

	n := s.Nutrition()
	if n.Calories > 0 || n.CarbsG > 0 {
		printer.Fprintf(w, "Nutrition: %d kcal, %.1f g carbs, %.1f g sugar\n", n.Calories, n.CarbsG, n.SugarG)
	}

	printer.Fprintf(w, "BAC now: %.3f%%\n", s.BACNow())
	printer.Fprintf(w, "Peak BAC: %.3f%%\n", plan.PeakBAC)
	printer.Fprintf(w, "Hours until sober (from now): %.2fh\n", s.HoursUntilSoberFromNow())
	printer.Fprintf(w, "Hours until sober (from first drink): %.2fh\n", s.HoursUntilSober())
	writePlan(w, plan)
}

// writePlan prints the planner section of the report.
func writePlan(w io.Writer, plan planner.Plan) {
	printer.Fprintf(w, "Target: %.1fh from now\n", plan.HoursUntilTarget)
	printer.Fprintf(w, "Pace: %.1f g/h (%.2f drinks/h)\n", plan.Pace.GramsPerHour, plan.Pace.DrinksPerHour)
	printer.Fprintf(w, "Hangover risk: %s\n", plan.HangoverRisk)
	printer.Fprintf(w, "Stop by: %+.1fh (fixed buffer %+.1fh, pace-aware %+.1fh)\n",
		plan.StopByHoursFromNow, plan.StopByFixed, plan.StopByPaceAware)
	printer.Fprintf(w, "%s\n", plan.Message)
}

// writeSearchSummary prints the aggregate of a traced stop-by search.
func writeSearchSummary(w io.Writer, st *trace.SearchTrace) {
	sum := trace.Summarize(st)
	if sum.Shortcut {
		printer.Fprintf(w, "Search: skipped, already over the sober threshold at the target (excess %.4f%%)\n", st.Shortcut.ExcessBAC)
		return
	}
	printer.Fprintf(w, "Search: %d iterations (%d accepted, %d rejected), final candidate %.3fh, bracket %.2g h, max projected BAC %.4f%%\n",
		sum.TotalIterations, sum.AcceptedCount, sum.RejectedCount, sum.FinalCandidate, sum.FinalBracket, sum.MaxProjectedBAC)
}
