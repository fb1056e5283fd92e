package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	require.NoError(t, LoadConfig(""))

	assert.Equal(t, "development", Env.Env)
	assert.Equal(t, "http://registry:9991/api/profiles", Env.Registry.URL)
	assert.Equal(t, "/engine/user_data/engine-config.json", Env.Engine.ConfigPath)
	assert.Equal(t, 3600, Env.Sync.IntervalSeconds)
	assert.True(t, Env.Engine.Reload)
	assert.Equal(t, 10*time.Second, Env.Engine.Timeout)
	assert.Equal(t, "8080", Env.Port["http"])
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("REGISTRY_URL", "http://localhost:19991/api/profiles")
	t.Setenv("ENGINE_USERNAME", "ops")
	t.Setenv("SYNC_INTERVAL_SECONDS", "120")

	require.NoError(t, LoadConfig(""))

	assert.Equal(t, "http://localhost:19991/api/profiles", Env.Registry.URL)
	assert.Equal(t, "ops", Env.Engine.Username)
	assert.Equal(t, 120, Env.Sync.IntervalSeconds)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	raw := "env: production\nsync:\n    interval_seconds: 900\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	require.NoError(t, LoadConfig(path))

	assert.Equal(t, "production", Env.Env)
	assert.Equal(t, 900, Env.Sync.IntervalSeconds)
	assert.Equal(t, "http://engine:8755/api/v1", Env.Engine.APIURL)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	require.Error(t, LoadConfig(filepath.Join(t.TempDir(), "absent.yml")))
}
