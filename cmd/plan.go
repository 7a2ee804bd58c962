package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bac-sim/bac-sim/sim/planner"
	"github.com/bac-sim/bac-sim/sim/trace"
)

var (
	planFormat    string // text or json
	planSearchCSV string // Path for the traced search iterations
)

// planOutput is the JSON form of the plan command.
type planOutput struct {
	Plan   planner.Plan         `json:"plan"`
	Search *trace.SearchSummary `json:"search,omitempty"`
}

// writePlanOutput encodes plan (and the search summary when traced).
func writePlanOutput(w io.Writer, plan planner.Plan, st *trace.SearchTrace, format string) error {
	switch format {
	case "text":
		writePlan(w, plan)
		if st.Enabled() {
			writeSearchSummary(w, st)
		}
		return nil
	case "json":
		out := planOutput{Plan: plan}
		if st.Enabled() {
			out.Search = trace.Summarize(st)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	default:
		return fmt.Errorf("unknown format %q; valid: text, json", format)
	}
}

// planCmd prints the hangover plan for a session
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print the hangover risk and stop-by plan for a session",
	Run: func(cmd *cobra.Command, args []string) {
		in := setup(cmd)
		st := newPlanTrace(in.cfg)
		if planSearchCSV != "" && st == nil {
			st = trace.NewSearchTrace(trace.TraceLevelSearch)
		}
		plan := computePlan(in, st)

		if err := writePlanOutput(os.Stdout, plan, st, planFormat); err != nil {
			logrus.Fatalf("%v", err)
		}
		if planSearchCSV != "" {
			if err := writeSearchFile(planSearchCSV, st); err != nil {
				logrus.Fatalf("%v", err)
			}
		}
		if in.cfg.MetricsTextfile != "" {
			if err := exportMetrics(in.cfg.MetricsTextfile, in.session, plan); err != nil {
				logrus.Fatalf("%v", err)
			}
		}
	},
}

func writeSearchFile(path string, st *trace.SearchTrace) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating search trace file: %w", err)
	}
	if err := trace.WriteSearchCSV(f, st); err != nil {
		_ = f.Close()
		return err
	}
	logrus.Infof("Search trace written to %s", path)
	return f.Close()
}

func init() {
	planCmd.Flags().StringVar(&planFormat, "format", "text", "Output format (text, json)")
	planCmd.Flags().StringVar(&planSearchCSV, "search-csv", "", "Write every stop-by search iteration to this CSV file")
}
