// Package sim provides the BAC simulation engine for bac-sim.
//
// # Reading Guide
//
// Start with these files to understand the model:
//   - params.go: physiological constants and the Model value that closes over them
//   - concentration.go: Widmark rise and the summed, independently decaying dose model
//   - curve.go: fixed-step sampling of a dose schedule into a BAC curve
//   - sober.go: forward scans for the first sober sample
//
// # Architecture
//
// Everything in this package is a pure function of its arguments. Callers pass a
// Profile and a slice of Dose values with times in hours relative to "now" (0.0)
// and get fresh values back; nothing is cached or mutated, so a Model can be shared
// across goroutines without locking.
//
// Sub-packages build on the engine:
//   - sim/drinks/: volume and ABV to grams of ethanol, drink category defaults
//   - sim/catalog/: branded drink catalog with nutrition, loaded from YAML
//   - sim/planner/: hangover-risk bands, pace estimation, stop-by search
//   - sim/session/: a mutable drink log and its YAML file format
//   - sim/trace/: recording of stop-by search iterations and CSV export
//
// Inputs are trusted: weight > 0, step > 0 and finite numbers are the caller's
// responsibility. The session loader and the CLI validate before calling in.
package sim
