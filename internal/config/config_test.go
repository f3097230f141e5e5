package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/rely/internal/domain"
)

// chdir moves the working directory for the duration of a test so the
// implicit rely.yaml lookup cannot pick up a stray file.
func chdir(t *testing.T, dir string) {
	t.Helper()

	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.Pretty)
	assert.Equal(t, string(domain.ValueIncurred), cfg.ValueType)
	assert.Equal(t, "accident", cfg.YearBasis)
	assert.Equal(t, string(domain.AverageVolume), cfg.AveragingMethod)
	assert.Equal(t, string(domain.CurveExponential), cfg.CurveFamily)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rely.yaml")
	content := []byte("log_level: debug\npretty: false\nvalue_type: paid\naveraging_method: medial\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.Pretty)
	assert.Equal(t, "paid", cfg.ValueType)
	assert.Equal(t, "medial", cfg.AveragingMethod)
	// Untouched keys keep their defaults.
	assert.Equal(t, "accident", cfg.YearBasis)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rely.yaml")
	require.NoError(t, os.WriteFile(path, []byte("value_type: paid\n"), 0o644))

	t.Setenv("RELY_VALUE_TYPE", "incurred")
	t.Setenv("RELY_YEAR_BASIS", "underwriting")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "incurred", cfg.ValueType)
	assert.Equal(t, "underwriting", cfg.YearBasis)
}

func TestLoadInvalidValue(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("RELY_AVERAGING_METHOD", "geometric")

	_, err := Load("")
	var confErr domain.ConfigurationError
	require.Error(t, err)
	assert.ErrorAs(t, err, &confErr)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
