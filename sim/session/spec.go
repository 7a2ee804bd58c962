package session

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/bac-sim/bac-sim/sim"
	"github.com/bac-sim/bac-sim/sim/catalog"
	"github.com/bac-sim/bac-sim/sim/drinks"
)

// Input bounds applied when building a session from a file. Values outside are
// clamped with a warning rather than rejected.
const (
	minCount    = 0.25
	maxCount    = 20.0
	maxHoursAgo = 24.0
)

// Spec is the top-level session file.
// Loaded from YAML via LoadSpec(path).
type Spec struct {
	Version     string      `yaml:"version"`
	Profile     ProfileSpec `yaml:"profile"`
	TargetHours *float64    `yaml:"target_hours,omitempty"`
	Drinks      []DrinkSpec `yaml:"drinks"`
}

// ProfileSpec describes the drinker.
type ProfileSpec struct {
	WeightLb float64 `yaml:"weight_lb"`
	Sex      string  `yaml:"sex"`
}

// DrinkSpec is one logged drink. Exactly one of Drink, CatalogID or Grams
// identifies the dose; at most one of HoursAgo or AtHours places it in time
// (neither means now).
type DrinkSpec struct {
	HoursAgo  *float64 `yaml:"hours_ago,omitempty"`
	AtHours   *float64 `yaml:"at_hours,omitempty"`
	Drink     string   `yaml:"drink,omitempty"`
	CatalogID string   `yaml:"catalog_id,omitempty"`
	Grams     *float64 `yaml:"grams,omitempty"`
	VolumeOz  *float64 `yaml:"volume_oz,omitempty"`
	Count     float64  `yaml:"count,omitempty"` // servings; 0 means 1
	Calories  int      `yaml:"calories,omitempty"`
	CarbsG    float64  `yaml:"carbs_g,omitempty"`
	SugarG    float64  `yaml:"sugar_g,omitempty"`
}

var validVersions = map[string]bool{"": true, "1": true}

// LoadSpec reads and parses a YAML session file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadSpec(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading session spec: %w", err)
	}
	return ParseSpec(data)
}

// ParseSpec decodes a YAML session document.
func ParseSpec(data []byte) (*Spec, error) {
	var spec Spec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing session spec: %w", err)
	}
	return &spec, nil
}

// Validate checks that all fields of the session file are valid.
func (s *Spec) Validate() error {
	if !validVersions[s.Version] {
		return fmt.Errorf("unsupported version %q; valid: 1", s.Version)
	}
	if err := validateFinitePositive("profile.weight_lb", s.Profile.WeightLb); err != nil {
		return err
	}
	if _, err := sim.ParseSex(s.Profile.Sex); err != nil {
		return fmt.Errorf("profile.sex: %w", err)
	}
	if s.TargetHours != nil {
		if err := validateFiniteNonNegative("target_hours", *s.TargetHours); err != nil {
			return err
		}
	}
	for i := range s.Drinks {
		if err := validateDrink(&s.Drinks[i], i); err != nil {
			return err
		}
	}
	return nil
}

func validateDrink(d *DrinkSpec, idx int) error {
	prefix := fmt.Sprintf("drinks[%d]", idx)
	kinds := 0
	if d.Drink != "" {
		kinds++
	}
	if d.CatalogID != "" {
		kinds++
	}
	if d.Grams != nil {
		kinds++
	}
	if kinds != 1 {
		return fmt.Errorf("%s: exactly one of drink, catalog_id, grams is required", prefix)
	}
	if d.HoursAgo != nil && d.AtHours != nil {
		return fmt.Errorf("%s: hours_ago and at_hours are mutually exclusive", prefix)
	}
	if d.HoursAgo != nil {
		if err := validateFiniteNonNegative(prefix+".hours_ago", *d.HoursAgo); err != nil {
			return err
		}
	}
	if d.AtHours != nil {
		if err := validateFinite(prefix+".at_hours", *d.AtHours); err != nil {
			return err
		}
	}
	if d.Grams != nil {
		if err := validateFiniteNonNegative(prefix+".grams", *d.Grams); err != nil {
			return err
		}
	}
	if d.VolumeOz != nil {
		if d.Drink == "" {
			return fmt.Errorf("%s: volume_oz requires drink", prefix)
		}
		if err := validateFinitePositive(prefix+".volume_oz", *d.VolumeOz); err != nil {
			return err
		}
	}
	if err := validateFiniteNonNegative(prefix+".count", d.Count); err != nil {
		return err
	}
	if d.Calories < 0 {
		return fmt.Errorf("%s.calories must be non-negative, got %d", prefix, d.Calories)
	}
	if err := validateFiniteNonNegative(prefix+".carbs_g", d.CarbsG); err != nil {
		return err
	}
	return validateFiniteNonNegative(prefix+".sugar_g", d.SugarG)
}

// Build validates the session file and turns it into a Session. Weight, counts and
// hours_ago are clamped into their plausible ranges with a warning.
func (s *Spec) Build(cat *catalog.Catalog, opts ...Option) (*Session, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	sex, _ := sim.ParseSex(s.Profile.Sex)
	weight := sim.ClampWeight(s.Profile.WeightLb)
	if weight != s.Profile.WeightLb {
		logrus.Warnf("weight_lb %.1f outside [%.0f, %.0f]; clamped to %.1f",
			s.Profile.WeightLb, sim.MinWeightLb, sim.MaxWeightLb, weight)
	}
	if cat != nil {
		opts = append(opts, WithCatalog(cat))
	}
	sess := New(sim.Profile{WeightLb: weight, Sex: sex}, opts...)

	for i, d := range s.Drinks {
		at := drinkTime(d, i)
		count := clampCount(d.Count, i)
		switch {
		case d.Grams != nil:
			n := sim.Nutrition{Calories: d.Calories, CarbsG: d.CarbsG, SugarG: d.SugarG}
			sess.AddGrams(at, *d.Grams, n)
		case d.CatalogID != "":
			sess.AddCatalogDrink(-at, d.CatalogID, count)
		case d.VolumeOz != nil:
			sess.AddDrinkVolume(at, d.Drink, *d.VolumeOz)
		default:
			if !drinks.IsValidCategory(d.Drink) {
				logrus.Warnf("drinks[%d]: unknown drink %q; counting %.2f standard drinks", i, d.Drink, count)
			}
			sess.AddDrink(at, d.Drink, count)
		}
	}
	return sess, nil
}

func drinkTime(d DrinkSpec, idx int) float64 {
	switch {
	case d.AtHours != nil:
		return *d.AtHours
	case d.HoursAgo != nil:
		ago := *d.HoursAgo
		if ago > maxHoursAgo {
			logrus.Warnf("drinks[%d]: hours_ago %.2f clamped to %.0f", idx, ago, maxHoursAgo)
			ago = maxHoursAgo
		}
		return -ago
	default:
		return 0
	}
}

func clampCount(count float64, idx int) float64 {
	if count == 0 {
		return 1
	}
	clamped := math.Max(minCount, math.Min(maxCount, count))
	if clamped != count {
		logrus.Warnf("drinks[%d]: count %.2f clamped to %.2f", idx, count, clamped)
	}
	return clamped
}

func validateFinite(name string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return fmt.Errorf("%s must be a finite number, got %f", name, val)
	}
	return nil
}

func validateFinitePositive(name string, val float64) error {
	if err := validateFinite(name, val); err != nil {
		return err
	}
	if val <= 0 {
		return fmt.Errorf("%s must be positive, got %f", name, val)
	}
	return nil
}

func validateFiniteNonNegative(name string, val float64) error {
	if err := validateFinite(name, val); err != nil {
		return err
	}
	if val < 0 {
		return fmt.Errorf("%s must be non-negative, got %f", name, val)
	}
	return nil
}
