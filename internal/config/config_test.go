package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	assert.Equal(t, Config{
		Log:     Log{Level: "info", Format: "text"},
		Storage: Storage{Backend: "memory", Path: "quanta.db", Key: "data"},
		Display: Display{FontSizePx: 16, DevicePixelRatio: 1},
		Driver:  Driver{RefreshHz: 60, ChainWarn: 64},
		Assets:  Assets{Root: ".", HTTPTimeoutMs: 10000},
	}, cfg)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quanta.cue")
	require.NoError(t, os.WriteFile(path, []byte(`
log: level: "debug"
storage: {
	backend: "sqlite"
}
display: device_pixel_ratio: 2.5
driver: refresh_hz: 120
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, slog.LevelDebug, cfg.Log.SlogLevel())
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "data", cfg.Storage.Key)
	assert.Equal(t, 2.5, cfg.Display.DevicePixelRatio)
	assert.Equal(t, 16.0, cfg.Display.FontSizePx)
	assert.Equal(t, 120, cfg.Driver.RefreshHz)
	assert.Equal(t, time.Second/120, cfg.Driver.FrameInterval())
	assert.Equal(t, 10*time.Second, cfg.Assets.HTTPTimeout())
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown field", `bogus: 1`},
		{"unknown backend", `storage: backend: "redis"`},
		{"empty key", `storage: key: ""`},
		{"zero ratio", `display: device_pixel_ratio: 0`},
		{"negative chain warn", `driver: chain_warn: -1`},
		{"bad level", `log: level: "trace"`},
		{"syntax", `log: {`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("test.cue", []byte(tt.src))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.cue"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, Log{Level: "warn"}.SlogLevel())
	assert.Equal(t, slog.LevelError, Log{Level: "error"}.SlogLevel())
	assert.Equal(t, slog.LevelInfo, Log{Level: ""}.SlogLevel())
}
