package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandStructure(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"run", "schedule", "sample", "validate", "version"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}

func TestPersistentFlags(t *testing.T) {
	flags := rootCmd.PersistentFlags()

	for _, name := range []string{"config", "log-level", "log-format", "interval", "metrics-path"} {
		assert.NotNil(t, flags.Lookup(name), "missing flag %q", name)
	}

	cfg := flags.Lookup("config")
	require.NotNil(t, cfg)
	assert.Equal(t, "pipeline.yaml", cfg.DefValue)
}

func TestGetCLIOverrides(t *testing.T) {
	origLevel, origFormat := logLevel, logFormat
	origInterval, origMetrics := intervalMinutes, metricsPath
	defer func() {
		logLevel, logFormat = origLevel, origFormat
		intervalMinutes, metricsPath = origInterval, origMetrics
	}()

	logLevel = "debug"
	logFormat = "json"
	intervalMinutes = 7
	metricsPath = "m.json"

	got := GetCLIOverrides()
	assert.Equal(t, "debug", got.LogLevel)
	assert.Equal(t, "json", got.LogFormat)
	assert.Equal(t, 7, got.IntervalMinutes)
	assert.Equal(t, "m.json", got.MetricsPath)
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	c := &cobra.Command{}
	c.SetOut(&buf)

	runVersion(c, nil)

	out := buf.String()
	assert.Contains(t, out, "etl version "+Version)
	assert.Contains(t, out, "Go version:")
	assert.Contains(t, out, "OS/Arch:")
}

func TestValidateCommand_DefaultsAreValid(t *testing.T) {
	origCfg := cfgFile
	defer func() { cfgFile = origCfg; resetOutputWriter() }()

	// A missing config file falls back to the valid defaults.
	cfgFile = filepath.Join(t.TempDir(), "absent.yaml")
	var buf bytes.Buffer
	setOutputWriter(&buf)

	err := runValidate(validateCmd, nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Configuration is valid")
	assert.Contains(t, buf.String(), "sources: 2")
}
