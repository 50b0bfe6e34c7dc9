package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lox/xyzbattle/internal/locale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "xyzbattle.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
	assert.True(t, cfg.ColorEnabled())
	assert.Equal(t, 10*time.Minute, cfg.IdleTimeout())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
game {
  seed     = 42
  language = "ja"
}

ui {
  color     = false
  log_level = "debug"
}

server {
  address      = ":9000"
  max_sessions = 5
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.NotNil(t, cfg.Game.Seed)
	assert.Equal(t, int64(42), *cfg.Game.Seed)
	assert.Equal(t, locale.Japanese, cfg.Language())
	assert.False(t, cfg.ColorEnabled())
	assert.Equal(t, "debug", cfg.UI.LogLevel)
	assert.Equal(t, "xyzbattle.log", cfg.UI.LogFile, "unset values take defaults")
	assert.Equal(t, ":9000", cfg.Server.Address)
	assert.Equal(t, 5, cfg.Server.MaxSessions)
	assert.Equal(t, 600, cfg.Server.IdleTimeoutSeconds)
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Nil(t, cfg.Game.Seed)
	assert.Equal(t, Default().Server, cfg.Server)
	assert.NoError(t, cfg.Validate())
}

func TestLoadRejectsBadHCL(t *testing.T) {
	_, err := Load(writeConfig(t, `game {`))
	assert.ErrorContains(t, err, "parse")

	_, err = Load(writeConfig(t, `game { unknown = 1 }`))
	assert.ErrorContains(t, err, "decode")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"language", func(c *Config) { c.Game.Language = "fr" }},
		{"ui log level", func(c *Config) { c.UI.LogLevel = "verbose" }},
		{"server log level", func(c *Config) { c.Server.LogLevel = "trace" }},
		{"address", func(c *Config) { c.Server.Address = "" }},
		{"idle timeout", func(c *Config) { c.Server.IdleTimeoutSeconds = -1 }},
		{"max sessions", func(c *Config) { c.Server.MaxSessions = -3 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLanguageAuto(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "ja_JP.UTF-8")
	assert.Equal(t, locale.Japanese, Default().Language())

	t.Setenv("LANG", "C")
	assert.Equal(t, locale.English, Default().Language())
}
