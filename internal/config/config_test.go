package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, 3978, cfg.Gateway.Port)
	assert.Equal(t, "sqlite", cfg.Session.Store)
	assert.True(t, cfg.Persistence.BlockOnWriteFailure)
	assert.Equal(t, "en-US", cfg.Interview.Locale)
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
gateway:
  port: 9090
session:
  store: memory
persistence:
  blockOnWriteFailure: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Gateway.Port)
	assert.Equal(t, "memory", cfg.Session.Store)
	assert.False(t, cfg.Persistence.BlockOnWriteFailure)
	// Untouched keys keep their defaults.
	assert.Equal(t, "en-US", cfg.Interview.Locale)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "gateway: [not a map")

	_, err := Load(path)
	require.Error(t, err)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestLoad_ExpandsAuthToken(t *testing.T) {
	t.Setenv("FINBOT_TEST_TOKEN", "s3cret")
	path := writeConfig(t, `
gateway:
  auth:
    token: ${FINBOT_TEST_TOKEN}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Gateway.Auth.Token)
}

func TestExpandEnvVars_UnsetLeftAlone(t *testing.T) {
	assert.Equal(t, "${FINBOT_DOES_NOT_EXIST}", expandEnvVars("${FINBOT_DOES_NOT_EXIST}"))
}

func TestValidate_OK(t *testing.T) {
	cfg := Defaults()
	assert.Nil(t, Validate(&cfg))
}

func TestValidate_Issues(t *testing.T) {
	cfg := Defaults()
	cfg.Gateway.Port = 70000
	cfg.Session.Store = "postgres"
	cfg.Logging.Level = "verbose"
	cfg.Interview.Locale = ""

	issues := Validate(&cfg)
	require.Len(t, issues, 4)

	paths := make([]string, 0, len(issues))
	for _, issue := range issues {
		paths = append(paths, issue.Path)
	}
	assert.Contains(t, paths, "gateway.port")
	assert.Contains(t, paths, "session.store")
	assert.Contains(t, paths, "logging.level")
	assert.Contains(t, paths, "interview.locale")
}

func TestResolvePaths_HomeOverride(t *testing.T) {
	base := t.TempDir()
	t.Setenv("FINBOT_HOME", base)

	paths, err := ResolvePaths()
	require.NoError(t, err)
	assert.Equal(t, base, paths.Base)
	assert.Equal(t, filepath.Join(base, "config.yaml"), paths.Config)

	require.NoError(t, paths.EnsureDirs())
	assert.DirExists(t, paths.Data)
	assert.DirExists(t, paths.Cards)
}
