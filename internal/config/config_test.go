package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAreValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, 50, c.NumLEDs)
	assert.Equal(t, 60, c.FPS)
	assert.Equal(t, []float64{0.18, 0.30, 0.45}, c.BrightLevels)
	assert.Equal(t, 1, c.BrightIndex)
	assert.Equal(t, 1, c.Scene)
	assert.Equal(t, 700, c.Button.LongPressMS)
	assert.Equal(t, -1, c.Button.Line)
	assert.Equal(t, "", c.HTTPAddr)
	assert.False(t, c.StartupFlash)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plasmaglow.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
num_leds: 120
bright_levels: [0.1, 0.9]
color_order: grb
driver: nrz
button:
  pin: GPIO3
power:
  budget_ma: 2000
self_test: [rgb_channels, index_sweep]
`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, c.Validate())
	assert.Equal(t, 120, c.NumLEDs)
	assert.Equal(t, []float64{0.1, 0.9}, c.BrightLevels)
	assert.Equal(t, "nrz", c.Driver)
	assert.Equal(t, "GPIO3", c.Button.Pin)
	assert.Equal(t, 700, c.Button.LongPressMS, "untouched keys keep defaults")
	assert.Equal(t, 60, c.FPS)
	assert.Equal(t, 2000.0, c.Power.BudgetMA)
	assert.Equal(t, []string{"rgb_channels", "index_sweep"}, c.SelfTest)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
	require.NotNil(t, c)
	assert.Equal(t, Default(), c)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("num_leds: [oops"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"no leds":        func(c *Config) { c.NumLEDs = 0 },
		"no presets":     func(c *Config) { c.BrightLevels = nil },
		"preset too big": func(c *Config) { c.BrightLevels = []float64{0.2, 1.5} },
		"bad order":      func(c *Config) { c.ColorOrder = "RGX" },
		"bad driver":     func(c *Config) { c.Driver = "pwm" },
		"no longpress":   func(c *Config) { c.Button.LongPressMS = 0 },
		"no bpm":         func(c *Config) { c.HeartbeatBPM = 0 },
		"bad self test":  func(c *Config) { c.SelfTest = []string{"plane_z"} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := Default()
			mutate(c)
			assert.ErrorIs(t, c.Validate(), ErrInvalid)
		})
	}
}
