package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bac-sim/bac-sim/sim"
	"github.com/bac-sim/bac-sim/sim/trace"
)

var (
	curveStart    float64 // First sample hour
	curveMaxHours float64 // Absolute cap on the last sample hour
	curveFormat   string  // csv, json or yaml
)

// writeCurve encodes points in the requested format.
func writeCurve(w io.Writer, points []sim.CurvePoint, format string) error {
	switch format {
	case "csv":
		return trace.WriteCurveCSV(w, points)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(points)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(points)
	default:
		return fmt.Errorf("unknown format %q; valid: csv, json, yaml", format)
	}
}

// curveOptions builds sampling options from the config and the flags that
// were set explicitly.
func curveOptions(cmd *cobra.Command, cfg *Config) sim.CurveOptions {
	opts := sim.CurveOptions{Step: cfg.StepHours}
	if cmd.Flags().Changed("start") {
		start := curveStart
		opts.Start = &start
	}
	if cmd.Flags().Changed("max-hours") {
		end := curveMaxHours
		opts.MaxHours = &end
	}
	return opts
}

// curveCmd samples the BAC curve of a session
var curveCmd = &cobra.Command{
	Use:   "curve",
	Short: "Print the sampled BAC curve of a session",
	Run: func(cmd *cobra.Command, args []string) {
		in := setup(cmd)
		points := in.session.Curve(curveOptions(cmd, in.cfg))
		logrus.Infof("Curve has %d points (peak %.4f%%)", len(points), sim.PeakOf(points))
		if err := writeCurve(os.Stdout, points, curveFormat); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

func init() {
	curveCmd.Flags().Float64Var(&curveStart, "start", 0, "First sample, hours from now (negative for the past)")
	curveCmd.Flags().Float64Var(&curveMaxHours, "max-hours", sim.SoberScanCapHours, "Last sample cap, hours from now")
	curveCmd.Flags().StringVar(&curveFormat, "format", "csv", "Output format (csv, json, yaml)")
}
