package sim

import (
	"fmt"
	"strings"
)

// Plausible body-weight range in pounds. Hosts clamp user input into this range
// before building a Profile.
const (
	MinWeightLb = 80.0
	MaxWeightLb = 400.0
)

// Sex selects the Widmark distribution ratio.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// ParseSex maps a user-supplied string to a Sex. Empty input means SexMale.
func ParseSex(s string) (Sex, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "m", "male":
		return SexMale, nil
	case "f", "female":
		return SexFemale, nil
	default:
		return "", fmt.Errorf("unknown sex %q; valid: male, female", s)
	}
}

// Profile describes the person a computation is for.
type Profile struct {
	WeightLb float64 // body weight in pounds (must be > 0)
	Sex      Sex
}

// NewProfile builds a Profile from a weight and a male flag.
func NewProfile(weightLb float64, isMale bool) Profile {
	if isMale {
		return Profile{WeightLb: weightLb, Sex: SexMale}
	}
	return Profile{WeightLb: weightLb, Sex: SexFemale}
}

// IsMale reports whether the profile uses the male distribution ratio.
func (p Profile) IsMale() bool {
	return p.Sex != SexFemale
}

// ClampWeight bounds weightLb to [MinWeightLb, MaxWeightLb].
func ClampWeight(weightLb float64) float64 {
	if weightLb < MinWeightLb {
		return MinWeightLb
	}
	if weightLb > MaxWeightLb {
		return MaxWeightLb
	}
	return weightLb
}
