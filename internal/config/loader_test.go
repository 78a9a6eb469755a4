package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalYAML = `
http:
  listen_addr: ":8080"
database:
  driver: sqlite
  dsn: "file::memory:"
builder:
  domain_suffix: example.com
auth:
  cookie_secret: "0123456789abcdef0123456789abcdef"
  callback_token: "cb-token"
`

func writeConf(t *testing.T, yaml string) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "conf"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "conf", "global.yaml"), []byte(yaml), 0o644))
	return root
}

func TestLoadFromAppliesDefaults(t *testing.T) {
	root := writeConf(t, minimalYAML)
	cfg, err := LoadFrom(root)
	require.NoError(t, err)

	assert.Equal(t, root, cfg.Paths.Root)
	assert.Equal(t, 15*time.Second, cfg.Builder.SaveTimeout)
	assert.Equal(t, "@every 5m", cfg.Builder.EvictSchedule)
	assert.Equal(t, 50, cfg.Builder.PreviewLength)
	assert.Equal(t, "sql", cfg.Storage.Backend)
	assert.Same(t, cfg, Get())
}

func TestEnvOverride(t *testing.T) {
	root := writeConf(t, minimalYAML)
	t.Setenv("BUILDER_BUILDER__SAVE_TIMEOUT", "20s")
	t.Setenv("BUILDER_HTTP__LISTEN_ADDR", ":9090")

	cfg, err := LoadFrom(root)
	require.NoError(t, err)
	assert.Equal(t, 20*time.Second, cfg.Builder.SaveTimeout)
	assert.Equal(t, ":9090", cfg.HTTP.ListenAddr)
}

func TestValidationFailures(t *testing.T) {
	for name, yaml := range map[string]string{
		"mongo without uri": minimalYAML + "storage:\n  backend: mongo\n",
		"missing dsn":       "http:\n  listen_addr: \":8080\"\n",
		"bad log level":     minimalYAML + "log:\n  level: loud\n",
	} {
		_, err := LoadFrom(writeConf(t, yaml))
		assert.Error(t, err, name)
	}
}

func TestCronRule(t *testing.T) {
	root := writeConf(t, `
http:
  listen_addr: ":8080"
database:
  driver: sqlite
  dsn: x
builder:
  domain_suffix: example.com
  evict_schedule: "every now and then"
auth:
  cookie_secret: s
  callback_token: t
`)
	_, err := LoadFrom(root)
	assert.Error(t, err)
}
