package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfigYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  mode: debug
diagram:
  default_title: "Outcrop A"
  default_bin_width: 15
  default_palette: turbo
  dpi: 150
log:
  level: debug
  format: console
redis:
  enabled: true
  addr: "cache:6379"
  ttl: 30m
kafka:
  brokers: ["k1:9092", "k2:9092"]
`

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FromFile(t *testing.T) {
	cfg, err := Load(createTempConfigFile(t, validConfigYAML))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "Outcrop A", cfg.Diagram.DefaultTitle)
	assert.Equal(t, 15, cfg.Diagram.DefaultBinWidth)
	assert.Equal(t, "turbo", cfg.Diagram.DefaultPalette)
	assert.Equal(t, 150, cfg.Diagram.DPI)
	assert.Equal(t, 10.0, cfg.Diagram.WidthInches, "unset keys fall back to defaults")
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 30*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.False(t, cfg.Kafka.Enabled)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, ErrConfigFileNotFound)
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(createTempConfigFile(t, "server: ["))
	assert.ErrorIs(t, err, ErrConfigParse)
}

func TestLoad_ValidationFailure(t *testing.T) {
	_, err := Load(createTempConfigFile(t, "diagram:\n  default_bin_width: 120\n"))
	assert.ErrorIs(t, err, ErrConfigInvalid)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GEOROSE_DIAGRAM_DPI", "72")
	t.Setenv("GEOROSE_SERVER_PORT", "7000")
	t.Setenv("GEOROSE_LOG_LEVEL", "warn")

	cfg, err := Load(createTempConfigFile(t, validConfigYAML))
	require.NoError(t, err)
	assert.Equal(t, 72, cfg.Diagram.DPI)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadFromEnv_NoFile(t *testing.T) {
	t.Setenv("GEOROSE_DIAGRAM_DEFAULT_PALETTE", "magma")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "magma", cfg.Diagram.DefaultPalette)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
}

func TestWatch_MissingFile(t *testing.T) {
	err := Watch(filepath.Join(t.TempDir(), "missing.yaml"), func(*Config) {}, nil)
	assert.ErrorIs(t, err, ErrConfigParse)
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	path := createTempConfigFile(t, validConfigYAML)
	changed := make(chan *Config, 4)
	require.NoError(t, Watch(path, func(c *Config) { changed <- c }, nil))

	updated := validConfigYAML + "\n" + "metrics:\n  namespace: reloaded\n"
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o644))

	select {
	case cfg := <-changed:
		assert.Equal(t, "debug", cfg.Log.Level)
	case <-time.After(5 * time.Second):
		t.Skip("no fsnotify event delivered on this filesystem")
	}
}

func TestMustLoad_Panics(t *testing.T) {
	assert.Panics(t, func() { MustLoad(filepath.Join(t.TempDir(), "missing.yaml")) })
}

//Personal.AI order the ending
