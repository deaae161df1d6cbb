package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frankigoes6/ProjetFoncier/internal/cleaner"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Cleaning.MinArea = 9
	cfg.Cleaning.MaxYear = 2023
	cfg.Logging.Format = "json"
	cfg.Encodings = []string{"utf-8", "windows-1252"}

	path := filepath.Join(t.TempDir(), "dvf.yaml")
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, cleaner.DefaultConfig(), cfg.Cleaning)
	assert.InDelta(t, 1000, cfg.Cleaning.MaxArea, 0.001)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Empty(t, cfg.Encodings)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dvf.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cleaning:\n  min_area: 12\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.InDelta(t, 12, cfg.Cleaning.MinArea, 0.001)
	assert.InDelta(t, 1000, cfg.Cleaning.MaxArea, 0.001)
	assert.Equal(t, cleaner.DefaultRequiredFields, cfg.Cleaning.RequiredFields)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dvf.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cleaning: [unclosed"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "parsing config")
}

func TestResolveExplicitMissing(t *testing.T) {
	_, err := Resolve(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestResolveDefaultFileMissing(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DVF_CLEANING_MAX_AREA", "250")
	t.Setenv("DVF_CLEANING_REQUIRED_FIELDS", "valeur_fonciere,code_postal")
	t.Setenv("DVF_CLEANING_MIN_YEAR", "2020")
	t.Setenv("DVF_LOGGING_LEVEL", "debug")
	t.Setenv("DVF_ENCODINGS", "utf-8,iso-8859-1")

	path := filepath.Join(t.TempDir(), "dvf.yaml")
	require.NoError(t, Save(path, Default()))

	cfg, err := Resolve(path)
	require.NoError(t, err)
	assert.InDelta(t, 250, cfg.Cleaning.MaxArea, 0.001)
	assert.Equal(t, []string{"valeur_fonciere", "code_postal"}, cfg.Cleaning.RequiredFields)
	assert.Equal(t, 2020, cfg.Cleaning.MinYear)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, []string{"utf-8", "iso-8859-1"}, cfg.Encodings)
}

func TestEnvInvalidValue(t *testing.T) {
	t.Setenv("DVF_CLEANING_MAX_AREA", "lots")
	err := ApplyEnv(Default())
	assert.ErrorContains(t, err, "reading environment")
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dvf.yaml")
	require.NoError(t, Save(path, Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "max_area: 1000")
	assert.Contains(t, contents, "- valeur_fonciere")
	assert.Contains(t, contents, "level: info")
	assert.Contains(t, contents, "format: text")
}

func TestEnvIgnoresUnprefixedNames(t *testing.T) {
	t.Setenv("FORMAT", "xml")
	t.Setenv("LEVEL", "debug")
	t.Setenv("MAX_AREA", "5")
	t.Setenv("MIN_YEAR", "2020")
	t.Setenv("ENCODINGS", "ebcdic")

	path := filepath.Join(t.TempDir(), "dvf.yaml")
	require.NoError(t, Save(path, Default()))

	cfg, err := Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
