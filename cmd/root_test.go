package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestParse_Defaults(t *testing.T) {
	config, err := Parse(nil, envMap(nil))
	require.NoError(t, err)

	assert.Empty(t, config.SeedPath)
	assert.Empty(t, config.PrefsPath)
	assert.Equal(t, slog.LevelInfo, config.LogLevel)
	assert.False(t, config.NoMouse)
}

func TestParse_EnvFallbacks(t *testing.T) {
	config, err := Parse(nil, envMap(map[string]string{
		"BACKOFFICE_SEED":      "fixture.yaml",
		"BACKOFFICE_LOG_LEVEL": "debug",
		"BACKOFFICE_PREFS":     "prefs.json",
	}))
	require.NoError(t, err)

	assert.Equal(t, "fixture.yaml", config.SeedPath)
	assert.Equal(t, "prefs.json", config.PrefsPath)
	assert.Equal(t, slog.LevelDebug, config.LogLevel)
}

func TestParse_FlagsOverrideEnv(t *testing.T) {
	config, err := Parse(
		[]string{"-seed", "other.yaml", "-log-level", "warn", "-no-mouse"},
		envMap(map[string]string{"BACKOFFICE_SEED": "fixture.yaml", "BACKOFFICE_LOG_LEVEL": "debug"}),
	)
	require.NoError(t, err)

	assert.Equal(t, "other.yaml", config.SeedPath)
	assert.Equal(t, slog.LevelWarn, config.LogLevel)
	assert.True(t, config.NoMouse)
}

func TestParse_NoDatabaseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "store.db")

	_, err := Parse([]string{"-db", path}, envMap(nil))

	require.Error(t, err, "records are kept in memory only")
	assert.NoDirExists(t, filepath.Dir(path))
}

func TestParse_RejectsUnknownLevel(t *testing.T) {
	_, err := Parse([]string{"-log-level", "loud"}, envMap(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestNewLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	logger, closer, err := NewLogger(&Config{LogPath: path, LogLevel: slog.LevelWarn})
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "shown")
	assert.NotContains(t, string(data), "hidden")
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "# comment\nBACKOFFICE_TEST_SEED=\"seed.yaml\"\nBACKOFFICE_TEST_SET=kept\nmalformed\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	t.Setenv("BACKOFFICE_TEST_SET", "original")
	t.Setenv("BACKOFFICE_TEST_SEED", "")

	loadDotEnv(path)

	assert.Equal(t, "seed.yaml", os.Getenv("BACKOFFICE_TEST_SEED"))
	assert.Equal(t, "original", os.Getenv("BACKOFFICE_TEST_SET"))
}
