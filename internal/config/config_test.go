package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "credcheck.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, StoreReload, cfg.Store.Mode)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.True(t, cfg.Prompt.HidePassword)
}

func TestLoad_File(t *testing.T) {
	p := writeConfig(t, `
log:
  level: info
  dir: /var/log/credcheck
store:
  mode: snapshot
prompt:
  hide_password: false
hash:
  memory: 19456
  time: 2
  threads: 1
`)
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "/var/log/credcheck", cfg.Log.Dir)
	assert.Equal(t, StoreSnapshot, cfg.Store.Mode)
	assert.False(t, cfg.Prompt.HidePassword)
	assert.Equal(t, HashConfig{Memory: 19456, Time: 2, Threads: 1}, cfg.Hash)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "store:\n  mode: snapshot\n"))
	require.NoError(t, err)
	assert.Equal(t, StoreSnapshot, cfg.Store.Mode)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, Default().Hash, cfg.Hash)
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "store:\n  mode: sometimes\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Load(writeConfig(t, "log:\n  level: chatty\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Load(writeConfig(t, "unknown_key: 1\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "store: [\n"))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(envMap(map[string]string{
		EnvLogLevel:  "error",
		EnvLogDir:    "/tmp/cc",
		EnvStoreMode: " Snapshot ",
		EnvHide:      "false",
	}))
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, "/tmp/cc", cfg.Log.Dir)
	assert.Equal(t, StoreSnapshot, cfg.Store.Mode)
	assert.False(t, cfg.Prompt.HidePassword)
}

func TestApplyEnv_EnvOverridesFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, "store:\n  mode: snapshot\n"))
	require.NoError(t, err)
	require.NoError(t, cfg.ApplyEnv(envMap(map[string]string{EnvStoreMode: "reload"})))
	assert.Equal(t, StoreReload, cfg.Store.Mode)
}

func TestApplyEnv_Invalid(t *testing.T) {
	cfg := Default()
	assert.ErrorIs(t, cfg.ApplyEnv(envMap(map[string]string{EnvHide: "maybe"})), ErrInvalidConfig)

	cfg = Default()
	assert.ErrorIs(t, cfg.ApplyEnv(envMap(map[string]string{EnvStoreMode: "never"})), ErrInvalidConfig)
}
