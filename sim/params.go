package sim

// Widmark distribution ratios and elimination constants.
const (
	MaleDistributionRatio   = 0.68  // Widmark r, male physiology
	FemaleDistributionRatio = 0.55  // Widmark r, female physiology
	EliminationPerHour      = 0.015 // %BAC removed per hour (zero-order)
	GramsPerPound           = 454.0 // body-weight conversion used by the rise formula
	SoberThreshold          = 0.001 // %BAC treated as sober
)

// Sampling and scan defaults.
const (
	DefaultStepHours  = 0.25 // curve sampling interval
	SoberScanCapHours = 48.0 // sober scans give up after this many hours from their anchor
	bacDecimals       = 4    // BAC values are reported to 4 decimal places
)

// ModelParams groups the physiological constants of the concentration model.
// A ModelParams value is never mutated after construction; Model copies it.
type ModelParams struct {
	MaleRatio          float64 // Widmark r for SexMale
	FemaleRatio        float64 // Widmark r for SexFemale
	EliminationPerHour float64 // %BAC per hour, independent of current BAC
	GramsPerPound      float64 // body weight conversion
	SoberThreshold     float64 // %BAC at or below which a person counts as sober
}

// DefaultModelParams returns the constants of the standard Widmark model.
func DefaultModelParams() ModelParams {
	return ModelParams{
		MaleRatio:          MaleDistributionRatio,
		FemaleRatio:        FemaleDistributionRatio,
		EliminationPerHour: EliminationPerHour,
		GramsPerPound:      GramsPerPound,
		SoberThreshold:     SoberThreshold,
	}
}

// Model evaluates BAC for dose schedules under a fixed set of ModelParams.
// Model is a value type with no mutable state; it is safe for concurrent use.
type Model struct {
	params ModelParams
}

// NewModel creates a Model closed over params.
func NewModel(params ModelParams) Model {
	return Model{params: params}
}

// DefaultModel returns a Model using DefaultModelParams.
func DefaultModel() Model {
	return NewModel(DefaultModelParams())
}

// Params returns the constants this model was built with.
func (m Model) Params() ModelParams {
	return m.params
}

func (m Model) ratio(sex Sex) float64 {
	if sex == SexFemale {
		return m.params.FemaleRatio
	}
	return m.params.MaleRatio
}
