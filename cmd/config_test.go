package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bac-sim/bac-sim/sim"
)

func writeConfigFile(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bacsim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))
	return path
}

func testFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Float64("weight", 160, "")
	fs.Bool("female", false, "")
	fs.Float64("target", 10, "")
	fs.String("trace", "none", "")
	fs.String("log", "warn", "")
	return fs
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv(configPathEnv, "")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), *cfg)
	assert.Equal(t, sim.Profile{WeightLb: 160, Sex: sim.SexMale}, cfg.Profile())
}

func TestLoadConfig_Layering(t *testing.T) {
	// GIVEN a file, an env override and an explicit flag
	path := writeConfigFile(t, "weight_lb: 150\nsex: female\ntarget_hours: 8\nlog_level: info\n")
	t.Setenv("BACSIM_TARGET_HOURS", "6")
	t.Setenv("BACSIM_WEIGHT_LB", "170")
	fs := testFlagSet()
	require.NoError(t, fs.Parse([]string{"--weight=190"}))

	// WHEN loaded
	cfg, err := LoadConfig(path, fs)
	require.NoError(t, err)

	// THEN each key comes from the highest layer that set it
	assert.Equal(t, 190.0, cfg.WeightLb, "flag beats env")
	assert.Equal(t, 6.0, cfg.TargetHours, "env beats file")
	assert.Equal(t, "female", cfg.Sex, "file beats default")
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, sim.DefaultStepHours, cfg.StepHours, "default kept")
}

func TestLoadConfig_UnchangedFlagsDoNotOverride(t *testing.T) {
	path := writeConfigFile(t, "weight_lb: 150\n")
	fs := testFlagSet()
	require.NoError(t, fs.Parse(nil))

	cfg, err := LoadConfig(path, fs)
	require.NoError(t, err)
	assert.Equal(t, 150.0, cfg.WeightLb)
}

func TestLoadConfig_FemaleFlag(t *testing.T) {
	t.Setenv(configPathEnv, "")
	fs := testFlagSet()
	require.NoError(t, fs.Parse([]string{"--female", "--trace=search"}))

	cfg, err := LoadConfig("", fs)
	require.NoError(t, err)
	assert.Equal(t, sim.SexFemale, cfg.Profile().Sex)
	assert.Equal(t, "search", cfg.TraceLevel)
}

func TestLoadConfig_PathFromEnv(t *testing.T) {
	path := writeConfigFile(t, "target_hours: 3\n")
	t.Setenv(configPathEnv, path)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, 3.0, cfg.TargetHours)
}

func TestLoadConfig_MissingFile_ReturnsError(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}

func TestLoadConfig_Invalid_WrapsSentinel(t *testing.T) {
	cases := map[string]string{
		"log level": "log_level: loud\n",
		"weight":    "weight_lb: 0\n",
		"sex":       "sex: x\n",
		"target":    "target_hours: -2\n",
		"step":      "step_hours: 0\n",
		"trace":     "trace_level: decisions\n",
	}
	for name, doc := range cases {
		_, err := LoadConfig(writeConfigFile(t, doc), nil)
		require.Error(t, err, name)
		assert.True(t, errors.Is(err, ErrInvalidConfig), name)
	}
}

func TestConfig_Profile_ClampsWeight(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WeightLb = 50
	assert.Equal(t, sim.MinWeightLb, cfg.Profile().WeightLb)
}

func TestLoadConfig_ExampleFile(t *testing.T) {
	// GIVEN the bacsim.yaml example config
	cfg, err := LoadConfig(filepath.Join("..", "examples", "bacsim.yaml"), nil)
	require.NoError(t, err, "failed to load bacsim.yaml")

	// THEN every key is applied
	assert.Equal(t, 135.0, cfg.WeightLb)
	assert.Equal(t, sim.SexFemale, cfg.Profile().Sex)
	assert.Equal(t, 8.0, cfg.TargetHours)
	assert.Equal(t, "search", cfg.TraceLevel)
	assert.Equal(t, "info", cfg.LogLevel)
}
