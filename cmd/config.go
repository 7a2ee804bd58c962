package cmd

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/bac-sim/bac-sim/sim"
	"github.com/bac-sim/bac-sim/sim/trace"
)

// ErrInvalidConfig wraps every validation failure returned by LoadConfig.
var ErrInvalidConfig = errors.New("invalid config")

const (
	envPrefix     = "BACSIM_"
	configPathEnv = "BACSIM_CONFIG"
)

// Config holds host settings. The engine itself takes no configuration
// beyond the profile and doses; these only choose inputs and outputs.
type Config struct {
	LogLevel        string  `koanf:"log_level"`
	WeightLb        float64 `koanf:"weight_lb"`
	Sex             string  `koanf:"sex"`
	TargetHours     float64 `koanf:"target_hours"`
	StepHours       float64 `koanf:"step_hours"`
	CatalogPath     string  `koanf:"catalog_path"`
	TraceLevel      string  `koanf:"trace_level"`
	MetricsTextfile string  `koanf:"metrics_textfile"`
}

// DefaultConfig returns the settings used when nothing overrides them.
func DefaultConfig() Config {
	return Config{
		LogLevel:    "warn",
		WeightLb:    160,
		Sex:         string(sim.SexMale),
		TargetHours: 10,
		StepHours:   sim.DefaultStepHours,
		TraceLevel:  string(trace.TraceLevelNone),
	}
}

// flagKeys maps CLI flag names to config keys. Only flags the user set
// explicitly override lower layers.
var flagKeys = map[string]string{
	"log":              "log_level",
	"weight":           "weight_lb",
	"target":           "target_hours",
	"step":             "step_hours",
	"catalog":          "catalog_path",
	"trace":            "trace_level",
	"metrics-textfile": "metrics_textfile",
}

// LoadConfig builds a Config by layering, lowest precedence first:
//  1. DefaultConfig()
//  2. YAML file at path, or at $BACSIM_CONFIG when path is empty
//  3. environment variables BACSIM_<KEY> (e.g. BACSIM_WEIGHT_LB)
//  4. flags in fs that were set on the command line
func LoadConfig(path string, fs *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
		logrus.Debugf("loaded config from %s", path)
	}

	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}
	// BACSIM_CONFIG names the file, it is not a setting.
	k.Delete("config")

	if fs != nil {
		if err := applyFlags(k, fs); err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyFlags(k *koanf.Koanf, fs *pflag.FlagSet) error {
	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		if f.Name == "female" {
			female, perr := fs.GetBool("female")
			if perr != nil {
				err = perr
				return
			}
			if female {
				err = k.Set("sex", string(sim.SexFemale))
			} else {
				err = k.Set("sex", string(sim.SexMale))
			}
			return
		}
		key, ok := flagKeys[f.Name]
		if !ok {
			return
		}
		err = k.Set(key, f.Value.String())
	})
	return err
}

// Validate checks every field and wraps the first failure in ErrInvalidConfig.
func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %v", ErrInvalidConfig, err)
	}
	if math.IsNaN(c.WeightLb) || math.IsInf(c.WeightLb, 0) || c.WeightLb <= 0 {
		return fmt.Errorf("%w: weight_lb must be a finite positive number, got %f", ErrInvalidConfig, c.WeightLb)
	}
	if _, err := sim.ParseSex(c.Sex); err != nil {
		return fmt.Errorf("%w: sex: %v", ErrInvalidConfig, err)
	}
	if math.IsNaN(c.TargetHours) || math.IsInf(c.TargetHours, 0) || c.TargetHours < 0 {
		return fmt.Errorf("%w: target_hours must be a finite non-negative number, got %f", ErrInvalidConfig, c.TargetHours)
	}
	if math.IsNaN(c.StepHours) || math.IsInf(c.StepHours, 0) || c.StepHours <= 0 {
		return fmt.Errorf("%w: step_hours must be a finite positive number, got %f", ErrInvalidConfig, c.StepHours)
	}
	if !trace.IsValidTraceLevel(c.TraceLevel) {
		return fmt.Errorf("%w: unknown trace_level %q; valid: none, search", ErrInvalidConfig, c.TraceLevel)
	}
	return nil
}

// Profile returns the configured profile with weight clamped into range.
func (c *Config) Profile() sim.Profile {
	sex, _ := sim.ParseSex(c.Sex)
	weight := sim.ClampWeight(c.WeightLb)
	if weight != c.WeightLb {
		logrus.Warnf("weight %.1f lb outside [%.0f, %.0f]; clamped to %.1f", c.WeightLb, sim.MinWeightLb, sim.MaxWeightLb, weight)
	}
	return sim.Profile{WeightLb: weight, Sex: sex}
}
