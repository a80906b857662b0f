package main

import (
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper(t *testing.T, config string) *viper.Viper {
	t.Helper()
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(config)))
	return v
}

func newTestLogger() (*logrus.Entry, *test.Hook) {
	logger, hook := test.NewNullLogger()
	return logger.WithField("component", "test"), hook
}

func TestParseConfigDefaults(t *testing.T) {
	logger, hook := newTestLogger()
	settings, err := parseConfig(newTestViper(t, ""), logger)
	require.NoError(t, err)

	assert.Equal(t, PaletteConfig{HueStart: 0, HueEnd: 360, Steps: 15, Saturation: 60, Lightness: 50}, settings.Palette)
	assert.Equal(t, OutputSettings{Format: formatText, Width: 900, Height: 300, Labels: true}, settings.Output)
	assert.False(t, settings.Watch)
	assert.Zero(t, settings.Poll)
	assert.Empty(t, hook.AllEntries())
}

func TestParseConfigFile(t *testing.T) {
	logger, _ := newTestLogger()
	settings, err := parseConfig(newTestViper(t, `
hue:
  start: 30
  end: 90
steps: 6
saturation: 80
lightness: 40
output:
  format: png
  width: 600
  height: 200
  labels: false
watch: true
poll: 250ms
`), logger)
	require.NoError(t, err)

	assert.Equal(t, PaletteConfig{HueStart: 30, HueEnd: 90, Steps: 6, Saturation: 80, Lightness: 40}, settings.Palette)
	assert.Equal(t, OutputSettings{Format: formatPNG, File: defaultPNGOut, Width: 600, Height: 200}, settings.Output)
	assert.True(t, settings.Watch)
	assert.Equal(t, 250*time.Millisecond, settings.Poll)
}

func TestParseConfigClamps(t *testing.T) {
	logger, hook := newTestLogger()
	settings, err := parseConfig(newTestViper(t, `
hue:
  start: -20
  end: 400
steps: 99
saturation: 120
lightness: -5
`), logger)
	require.NoError(t, err)

	assert.Equal(t, PaletteConfig{HueStart: 0, HueEnd: 360, Steps: maxSteps, Saturation: 100, Lightness: 0}, settings.Palette)
	assert.Len(t, hook.AllEntries(), 5)
	for _, entry := range hook.AllEntries() {
		assert.Equal(t, logrus.WarnLevel, entry.Level)
		assert.Equal(t, "test", entry.Data["component"])
	}
}

func TestParseConfigLeavesStepsValidationToPalette(t *testing.T) {
	logger, _ := newTestLogger()
	settings, err := parseConfig(newTestViper(t, "steps: 0\n"), logger)
	require.NoError(t, err)

	_, err = BuildPalette(settings.Palette)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestParseConfigRejectsBadOutput(t *testing.T) {
	logger, _ := newTestLogger()
	for _, config := range []string{
		"output:\n  format: svg\n",
		"output:\n  format: png\n  width: 0\n",
		"poll: -1s\n",
	} {
		_, err := parseConfig(newTestViper(t, config), logger)
		assert.Error(t, err, config)
	}
}

func TestParseConfigEnv(t *testing.T) {
	t.Setenv("HS_STEPS", "8")
	t.Setenv("HS_HUE_END", "180")

	v := newTestViper(t, "steps: 4\n")
	v.SetEnvPrefix("HS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	logger, _ := newTestLogger()
	settings, err := parseConfig(v, logger)
	require.NoError(t, err)
	assert.Equal(t, 8, settings.Palette.Steps)
	assert.Equal(t, 180.0, settings.Palette.HueEnd)
}
