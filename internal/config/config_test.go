package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateEnv points the user config dir and working directory at a temp dir
// so a developer's real configuration cannot leak into the test.
func isolateEnv(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv(EnvConfigPath, "")
	t.Setenv(EnvUsersURL, "")
	t.Setenv(EnvAuthURL, "")
	t.Chdir(tmpDir)

	return tmpDir
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultUsersURL, cfg.API.UsersURL)
	assert.Equal(t, DefaultAuthURL, cfg.API.AuthURL)
	assert.Equal(t, 30*time.Second, cfg.API.RequestTimeout)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Empty(t, cfg.Log.File)
	assert.True(t, cfg.Output.Color)
}

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	assert.NotNil(t, loader)
	assert.NotNil(t, loader.v)
}

func TestLoader_LoadFromFile(t *testing.T) {
	isolateEnv(t)
	configPath := filepath.Join(t.TempDir(), "test-config.yaml")

	configContent := `
api:
  users_url: http://localhost:9999/users
  request_timeout: 5s
log:
  level: debug
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	cfg, err := NewLoader().LoadFromFile(configPath)

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999/users", cfg.API.UsersURL)
	assert.Equal(t, 5*time.Second, cfg.API.RequestTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Unset keys keep their defaults
	assert.Equal(t, DefaultAuthURL, cfg.API.AuthURL)
	assert.True(t, cfg.Output.Color)
}

func TestLoader_LoadFromFile_NonExistent(t *testing.T) {
	_, err := NewLoader().LoadFromFile("/nonexistent/path/config.yaml")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoader_LoadFromFile_InvalidStructure(t *testing.T) {
	isolateEnv(t)
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidContent := `
api:
  - this is not valid yaml for this structure
`
	require.NoError(t, os.WriteFile(configPath, []byte(invalidContent), 0644))

	_, err := NewLoader().LoadFromFile(configPath)

	assert.Error(t, err)
}

func TestLoader_LoadFromFile_JSON(t *testing.T) {
	isolateEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.json")

	jsonContent := `{
		"api": {
			"auth_url": "http://json.example/api"
		}
	}`
	require.NoError(t, os.WriteFile(configPath, []byte(jsonContent), 0644))

	cfg, err := NewLoader().LoadFromFile(configPath)

	require.NoError(t, err)
	assert.Equal(t, "http://json.example/api", cfg.API.AuthURL)
}

func TestLoader_Load_DefaultsWithNoConfigFile(t *testing.T) {
	isolateEnv(t)

	cfg, err := NewLoader().Load()

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoader_Load_ConfigInWorkingDir(t *testing.T) {
	dir := isolateEnv(t)
	content := "log:\n  level: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644))

	loader := NewLoader()
	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.NotEmpty(t, loader.ConfigFileUsed())
}

func TestLoader_Load_WithConfigPathEnv(t *testing.T) {
	isolateEnv(t)
	configPath := filepath.Join(t.TempDir(), "custom-config.yaml")

	configContent := `
api:
  users_url: http://from-env-path/users
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	t.Setenv(EnvConfigPath, configPath)

	cfg, err := NewLoader().Load()

	require.NoError(t, err)
	assert.Equal(t, "http://from-env-path/users", cfg.API.UsersURL)
}

func TestLoader_Load_EnvOverridesTakePrecedence(t *testing.T) {
	isolateEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	configContent := `
api:
  users_url: http://from-file/users
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	t.Setenv(EnvConfigPath, configPath)
	t.Setenv(EnvUsersURL, "http://from-env/users")

	cfg, err := NewLoader().Load()

	require.NoError(t, err)
	assert.Equal(t, "http://from-env/users", cfg.API.UsersURL)
}

func TestLoader_Load_PrefixedEnv(t *testing.T) {
	isolateEnv(t)
	t.Setenv("CTPOSTMAN_LOG_LEVEL", "error")
	t.Setenv("CTPOSTMAN_API_REQUEST_TIMEOUT", "2m")

	cfg, err := NewLoader().Load()

	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, 2*time.Minute, cfg.API.RequestTimeout)
}

func TestMustLoad_Success(t *testing.T) {
	isolateEnv(t)

	cfg := MustLoad()
	assert.NotNil(t, cfg)
}

func TestConfigDir(t *testing.T) {
	configDir, err := ConfigDir()
	require.NoError(t, err)
	assert.Contains(t, configDir, "ctpostman")
}

func TestDefaultConfigPath(t *testing.T) {
	configPath, err := DefaultConfigPath()
	require.NoError(t, err)
	assert.Contains(t, configPath, "ctpostman")
	assert.Contains(t, configPath, "config.yaml")
}

func TestEnsureConfigDir(t *testing.T) {
	isolateEnv(t)

	require.NoError(t, EnsureConfigDir())

	dir, err := ConfigDir()
	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestSave_RoundTrip(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	want := DefaultConfig()
	want.API.UsersURL = "http://saved/users"
	want.API.RequestTimeout = 45 * time.Second
	want.Output.Color = false

	require.NoError(t, Save(want, path, false))

	got, err := NewLoader().LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")
}

func TestSave_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\n"), 0644))

	err := Save(DefaultConfig(), path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, Save(DefaultConfig(), path, true))
}

func TestMarshal_UsesLoaderKeys(t *testing.T) {
	data, err := Marshal(DefaultConfig())
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "users_url:")
	assert.Contains(t, out, "request_timeout: 30s")
	assert.Contains(t, out, "color: true")
}
