package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/behave/pkg/domain"
)

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, Dir), 0755))
	require.NoError(t, os.WriteFile(Path(dir), []byte(body), 0644))
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
catalog: scripts/util_verbs.nss
store:
  backend: redis
  redis:
    addr: redis:6379
http:
  port: 9000
`)
	t.Setenv("BEHAVE_STORE_REDIS_DB", "3")
	t.Setenv("BEHAVE_HTTP_PORT", "9100")
	t.Setenv("BEHAVE_LOG_LEVEL", "debug")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "scripts/util_verbs.nss", cfg.Catalog)
	assert.Equal(t, BackendRedis, cfg.Store.Backend)
	assert.Equal(t, "redis:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, "behave:script:", cfg.Store.Redis.Prefix)
	assert.Equal(t, 3, cfg.Store.Redis.DB)
	assert.Equal(t, 9100, cfg.HTTP.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown key", "colour: red\n"},
		{"bad backend", "store:\n  backend: s3\n"},
		{"bad catalog name", "catalog: verbs.nss\n"},
		{"bad port", "http:\n  port: high\n"},
		{"malformed yaml", "store: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.body)
			_, err := Load(dir)
			assert.Error(t, err)
		})
	}
}

func TestLoadFile_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"mcp": {"transport": "sse", "port": 7000}}`), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, TransportSSE, cfg.MCP.Transport)
	assert.Equal(t, 7000, cfg.MCP.Port)
}

func TestSetAndSave(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()

	require.NoError(t, cfg.Set("store.backend", "memory"))
	require.NoError(t, cfg.Set("limits.max_script_bytes", "2048"))
	assert.Error(t, cfg.Set("store.backend", "tape"))
	assert.Equal(t, BackendMemory, cfg.Store.Backend)
	assert.Error(t, cfg.Set("nope", "1"))

	err := cfg.Set("catalog", "other.nss")
	var fe *domain.FilenameError
	require.ErrorAs(t, err, &fe)
	require.NoError(t, cfg.SetCatalogPath("mod/util_verbs.nss"))

	require.NoError(t, Save(dir, cfg))
	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "BEHAVE_LIMITS_MAX_SCRIPT_BYTES", EnvName("limits.max_script_bytes"))
}
