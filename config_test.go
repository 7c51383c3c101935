package debuglog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.True(t, cfg.Enabled)
	assert.True(t, cfg.WriteChronological)
	assert.False(t, cfg.WriteGroups)
	assert.Equal(t, "Warning", cfg.LogLevel)
	assert.Equal(t, float64(20), cfg.FlushIntervalS)
	assert.Equal(t, float64(5), cfg.SizeLimitMB)
	assert.Equal(t, "./Debug/Logs", cfg.RootDirectory)
	assert.Equal(t, "./Mods", cfg.ContentDirectory)
}

func TestConfigClone(t *testing.T) {
	cfg1 := DefaultConfig()
	cfg1.LogLevel = "Debug"
	cfg1.RootDirectory = "/custom/path"

	cfg2 := cfg1.Clone()

	// Verify deep copy
	assert.Equal(t, cfg1.LogLevel, cfg2.LogLevel)
	assert.Equal(t, cfg1.RootDirectory, cfg2.RootDirectory)

	// Modify original
	cfg1.LogLevel = "Error"

	// Verify clone unchanged
	assert.Equal(t, "Debug", cfg2.LogLevel)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantError string
	}{
		{
			name:      "valid config",
			modify:    func(c *Config) {},
			wantError: "",
		},
		{
			name:      "empty root directory",
			modify:    func(c *Config) { c.RootDirectory = "  " },
			wantError: "root_directory cannot be empty",
		},
		{
			name:      "invalid log level",
			modify:    func(c *Config) { c.LogLevel = "chatty" },
			wantError: "invalid log_level",
		},
		{
			name:      "negative flush interval",
			modify:    func(c *Config) { c.FlushIntervalS = -1 },
			wantError: "flush_interval_s cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)

			err := cfg.validate()
			if tt.wantError == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
			}
		})
	}
}

func TestConfigSizeLimitBytes(t *testing.T) {
	cfg := DefaultConfig()

	cfg.SizeLimitMB = 5
	assert.Equal(t, int64(5_000_000), cfg.sizeLimitBytes())

	cfg.SizeLimitMB = 0.0002
	assert.Equal(t, int64(200), cfg.sizeLimitBytes())

	cfg.SizeLimitMB = -1
	assert.Equal(t, int64(-1), cfg.sizeLimitBytes())
}

func TestNewConfigFromDefaults(t *testing.T) {
	cfg, err := NewConfigFromDefaults(map[string]any{
		"log_level":        "Debug",
		"write_groups":     true,
		"flush_interval_s": 0,
	})
	require.NoError(t, err)

	assert.Equal(t, "Debug", cfg.LogLevel)
	assert.True(t, cfg.WriteGroups)
	assert.Equal(t, float64(0), cfg.FlushIntervalS)
	// Untouched keys keep their defaults
	assert.True(t, cfg.WriteChronological)

	_, err = NewConfigFromDefaults(map[string]any{"no_such_key": true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown config key")

	_, err = NewConfigFromDefaults(map[string]any{"log_level": "chatty"})
	require.Error(t, err)
}

func TestNewConfigFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "debug.toml")

	content := `
[debug]
  logging_enabled = true
  write_groups = true
  log_level = "Info"
  flush_interval_s = 2.5
  log_size_limit_mb = 1.0
  root_directory = "` + filepath.ToSlash(tmpDir) + `"
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := NewConfigFromFile(configPath)
	require.NoError(t, err)

	assert.True(t, cfg.Enabled)
	assert.True(t, cfg.WriteGroups)
	assert.Equal(t, "Info", cfg.LogLevel)
	assert.Equal(t, 2.5, cfg.FlushIntervalS)
	assert.Equal(t, 1.0, cfg.SizeLimitMB)

	// A missing file falls back to defaults
	cfg, err = NewConfigFromFile(filepath.Join(tmpDir, "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, "Warning", cfg.LogLevel)
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("Warning")
	require.NoError(t, err)
	assert.Equal(t, LevelWarning, level)

	level, err = ParseLevel("  debug ")
	require.NoError(t, err)
	assert.Equal(t, LevelDebug, level)

	_, err = ParseLevel("chatty")
	require.Error(t, err)
}
