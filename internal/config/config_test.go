package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"burnoutlens/internal/comparison"
	"burnoutlens/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "GIN_MODE", "BURNOUT_CONFIG", "BURNOUT_SERVER_PORT", "BURNOUT_DATA_FILE", "BURNOUT_COMPARISON_ALPHA", "BURNOUT_COMPARISON_METHOD"} {
		t.Setenv(k, "")
	}
}

// TestLoad_Defaults verifies the configuration without any override
func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "cleaned_data.csv", cfg.Data.File)
	assert.Equal(t, ';', cfg.DelimiterRune())
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, comparison.DefaultAlpha, cfg.Comparison.Alpha)
	assert.Equal(t, comparison.MethodAuto, cfg.ComparisonMethod())
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL())
	assert.Equal(t, 1000, cfg.Chart.Width)
}

// TestLoad_EnvironmentOverrides verifies prefixed variables and the PORT alias
func TestLoad_EnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("BURNOUT_DATA_FILE", "/data/survey.xlsx")
	t.Setenv("BURNOUT_COMPARISON_ALPHA", "0.01")
	t.Setenv("BURNOUT_COMPARISON_METHOD", "asymptotic")
	t.Setenv("PORT", "9090")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/data/survey.xlsx", cfg.Data.File)
	assert.Equal(t, 0.01, cfg.Comparison.Alpha)
	assert.Equal(t, comparison.MethodAsymptotic, cfg.ComparisonMethod())
	assert.Equal(t, "9090", cfg.Server.Port)
}

// TestSaveAndLoad verifies a saved file is read back by Load
func TestSaveAndLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "conf", "burnoutlens.yaml")

	cfg := Default()
	cfg.Data.File = "other.csv"
	cfg.Session.TTL = "2h"
	cfg.Log.Level = "debug"
	require.NoError(t, Save(cfg, path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "file: other.csv")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "other.csv", loaded.Data.File)
	assert.Equal(t, 2*time.Hour, loaded.SessionTTL())
	assert.Equal(t, "debug", loaded.Log.Level)
}

// TestLoad_MissingConfigFile verifies an explicit but absent file is a configuration error
func TestLoad_MissingConfigFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"empty data file", func(c *Config) { c.Data.File = "" }},
		{"long delimiter", func(c *Config) { c.Data.Delimiter = ";;" }},
		{"bad port", func(c *Config) { c.Server.Port = "http" }},
		{"bad gin mode", func(c *Config) { c.Server.GinMode = "verbose" }},
		{"bad ttl", func(c *Config) { c.Session.TTL = "-5m" }},
		{"alpha too large", func(c *Config) { c.Comparison.Alpha = 1.5 }},
		{"unknown method", func(c *Config) { c.Comparison.Method = "bootstrap" }},
		{"negative chart", func(c *Config) { c.Chart.Width = -1 }},
	}

	require.NoError(t, Validate(Default()))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := Validate(cfg)
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}
