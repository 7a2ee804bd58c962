package trace

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/bac-sim/bac-sim/sim"
)

// curveHeader is the first row of an exported curve.
var curveHeader = []string{"hours_from_now", "bac_percent"}

// WriteCurveCSV writes points as a two-column CSV with a header row.
func WriteCurveCSV(w io.Writer, points []sim.CurvePoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(curveHeader); err != nil {
		return fmt.Errorf("writing curve header: %w", err)
	}
	for _, pt := range points {
		row := []string{
			strconv.FormatFloat(pt.Time, 'f', 2, 64),
			strconv.FormatFloat(pt.BAC, 'f', 4, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing curve row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSearchCSV writes the recorded bisection steps of st, one row per
// iteration. A nil or shortcut-only trace writes just the header.
func WriteSearchCSV(w io.Writer, st *SearchTrace) error {
	cw := csv.NewWriter(w)
	header := []string{"iteration", "lo", "hi", "candidate", "projected_dose_g", "projected_bac", "accepted"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing search header: %w", err)
	}
	if st != nil {
		for _, r := range st.Iterations {
			row := []string{
				strconv.Itoa(r.Iteration),
				strconv.FormatFloat(r.Lo, 'f', 6, 64),
				strconv.FormatFloat(r.Hi, 'f', 6, 64),
				strconv.FormatFloat(r.Candidate, 'f', 6, 64),
				strconv.FormatFloat(r.ProjectedDose, 'f', 3, 64),
				strconv.FormatFloat(r.ProjectedBAC, 'f', 4, 64),
				strconv.FormatBool(r.Accepted),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("writing search row: %w", err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
