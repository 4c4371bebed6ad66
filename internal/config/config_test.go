package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "flexmap.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultFormat, cfg.Format)
	assert.Equal(t, DefaultDebounce, cfg.Debounce)
	assert.False(t, cfg.Strict)
	assert.Empty(t, cfg.Schemas)
	assert.Empty(t, cfg.Options)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
schemas: [tree.yaml, forest.yaml]
similarity: levenshtein
strict: true
debounce: 1s
options:
  fuzzyMatchingThreshold: 3
  orphansAsTopLevel: true
`)

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"tree.yaml", "forest.yaml"}, cfg.Schemas)
	assert.Equal(t, "levenshtein", cfg.Similarity)
	assert.True(t, cfg.Strict)
	assert.Equal(t, time.Second, cfg.Debounce)

	// viper lowercases map keys
	assert.Equal(t, map[string]string{
		"fuzzymatchingthreshold": "3",
		"orphansastoplevel":      "true",
	}, cfg.Options)
	assert.Equal(t, []string{"fuzzymatchingthreshold", "orphansastoplevel"}, cfg.OptionKeys())
}

func TestLoad_DiscoversWorkingDirectoryFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "flexmap.yaml"), []byte("format: yaml\n"), 0o600))
	t.Chdir(dir)

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.Format)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "log_level: debug\n")
	t.Setenv("FLEXMAP_LOG_LEVEL", "error")

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoad_BoundValueWins(t *testing.T) {
	path := writeConfig(t, "similarity: lcs\n")

	v := viper.New()
	v.Set(KeySimilarity, "levenshtein")

	cfg, err := Load(v, path)
	require.NoError(t, err)
	assert.Equal(t, "levenshtein", cfg.Similarity)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestConfig_Merge(t *testing.T) {
	cfg := &Config{Options: map[string]string{"a": "1", "b": "2"}}

	merged := cfg.Merge(map[string]string{"b": "3", "c": "4"})
	assert.Equal(t, map[string]string{"a": "1", "b": "3", "c": "4"}, merged)
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, cfg.Options)
}
