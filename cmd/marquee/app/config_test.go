package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/marquee/pkg/constants"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("MARQUEE_CONFIG", "")

	config, err := loadConfig(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, constants.DefaultBaseURL, config.BaseURL)
	assert.Equal(t, constants.DefaultSearchTerm, config.SearchTerm)
	assert.Equal(t, constants.DefaultSearchYear, config.SearchYear)
	assert.Equal(t, "files", config.Store.Driver)
	assert.Equal(t, constants.DefaultDataPath, config.Store.Path)
	assert.Equal(t, "auto", config.LogFormat)
}

func TestLoadConfigEnvironment(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("MARQUEE_CONFIG", "")
	t.Setenv("OMDB_API_KEY", "env-key")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("CATALOG_YEAR", "1999")
	t.Setenv("REDIS_DB", "3")

	config, err := loadConfig(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "env-key", config.APIKey)
	assert.Equal(t, "sqlite", config.Store.Driver)
	assert.Equal(t, 1999, config.SearchYear)
	assert.Equal(t, 3, config.Store.RedisDB)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
omdb_api_key: file-key
catalog:
  term: batman
store:
  driver: redis
redis:
  addr: cache:6379
  prefix: "test:"
`), 0o600))

	config, err := loadConfig(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, path, config.ConfigFile)
	assert.Equal(t, "file-key", config.APIKey)
	assert.Equal(t, "batman", config.SearchTerm)
	assert.Equal(t, "redis", config.Store.Driver)
	assert.Equal(t, "cache:6379", config.Store.RedisAddr)
	assert.Equal(t, "test:", config.Store.RedisPrefix)
}

func TestUpdateFromFlags(t *testing.T) {
	config := &Config{Output: "yaml", LogLevel: "info"}

	config.UpdateFromFlags(true, false, true, "", "")
	assert.True(t, config.Verbose)
	assert.True(t, config.NoColor)
	assert.Equal(t, "yaml", config.Output)
	assert.Equal(t, "info", config.LogLevel)

	config.UpdateFromFlags(false, false, false, "json", "debug")
	assert.Equal(t, "json", config.Output)
	assert.Equal(t, "debug", config.LogLevel)
}
