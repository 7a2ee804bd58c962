package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bac-sim/bac-sim/sim/planner"
	"github.com/bac-sim/bac-sim/sim/trace"
)

var (
	// CLI flags shared by every subcommand
	configPath      string  // Host config file (YAML)
	logLevel        string  // Log verbosity level
	sessionPath     string  // Session file (YAML); demo session when empty
	weightLb        float64 // Body weight in pounds
	female          bool    // Use the female distribution ratio
	targetHours     float64 // Hours from now until the user must be sober
	stepHours       float64 // Curve sampling step in hours
	catalogPath     string  // Replacement drink catalog (YAML)
	traceLevel      string  // Stop-by search trace level
	metricsTextfile string  // Prometheus textfile output path
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "bac-sim",
	Short: "Blood alcohol concentration simulator and hangover planner",
}

// setup loads the layered config, applies the log level and builds the inputs.
func setup(cmd *cobra.Command) *inputs {
	cfg, err := LoadConfig(configPath, cmd.Flags())
	if err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}
	level, _ := logrus.ParseLevel(cfg.LogLevel)
	logrus.SetLevel(level)

	in, err := buildInputs(cfg, sessionPath, cmd.Flags().Changed("target"))
	if err != nil {
		logrus.Fatalf("Unable to build session: %v", err)
	}
	return in
}

// newPlanTrace returns a search trace when the config asks for one.
func newPlanTrace(cfg *Config) *trace.SearchTrace {
	if trace.TraceLevel(cfg.TraceLevel) != trace.TraceLevelSearch {
		return nil
	}
	return trace.NewSearchTrace(trace.TraceLevelSearch)
}

// computePlan runs the planner over the session, recording into st when non-nil.
func computePlan(in *inputs, st *trace.SearchTrace) planner.Plan {
	var opts []planner.Option
	if st != nil {
		opts = append(opts, planner.WithTrace(st))
	}
	return in.session.Plan(in.targetHours, opts...)
}

// runCmd prints the full report for a session
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Report BAC, time to sober and a stop-by plan for a session",
	Run: func(cmd *cobra.Command, args []string) {
		in := setup(cmd)
		st := newPlanTrace(in.cfg)
		plan := computePlan(in, st)

		logrus.Infof("Computing report: %d drinks, target %.1fh", in.session.Len(), in.targetHours)
		writeReport(os.Stdout, in.session, plan)
		if st.Enabled() {
			writeSearchSummary(os.Stdout, st)
		}
		if in.cfg.MetricsTextfile != "" {
			if err := exportMetrics(in.cfg.MetricsTextfile, in.session, plan); err != nil {
				logrus.Fatalf("%v", err)
			}
			logrus.Infof("Metrics written to %s", in.cfg.MetricsTextfile)
		}
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Config file (YAML); defaults to $BACSIM_CONFIG")
	pf.StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	pf.StringVar(&sessionPath, "session", "", "Session file (YAML); uses a demo session when empty")
	pf.Float64Var(&weightLb, "weight", 160, "Body weight (lb)")
	pf.BoolVar(&female, "female", false, "Use the female distribution ratio")
	pf.Float64Var(&targetHours, "target", 10, "Hours from now until you need to be sober")
	pf.Float64Var(&stepHours, "step", 0.25, "Curve sampling step (hours)")
	pf.StringVar(&catalogPath, "catalog", "", "Drink catalog file (YAML); uses the built-in catalog when empty")
	pf.StringVar(&traceLevel, "trace", "none", "Stop-by search trace level (none, search)")
	pf.StringVar(&metricsTextfile, "metrics-textfile", "", "Write a Prometheus textfile snapshot to this path")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(curveCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(catalogCmd)
}
