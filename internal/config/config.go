// Package config loads runtime configuration from CUE files.
//
// The schema is embedded. A configuration file is unified with #Config, so
// unknown fields and out-of-range values are rejected and omitted fields take
// their defaults.
package config

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed schema.cue
var schemaSrc string

// Config is the decoded runtime configuration.
type Config struct {
	Log     Log     `json:"log"`
	Storage Storage `json:"storage"`
	Display Display `json:"display"`
	Driver  Driver  `json:"driver"`
	Assets  Assets  `json:"assets"`
}

type Log struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

type Storage struct {
	Backend string `json:"backend"`
	Path    string `json:"path"`
	Key     string `json:"key"`
}

// Display holds the host metrics used when the host cannot report its own.
type Display struct {
	FontSizePx       float64 `json:"font_size_px"`
	DevicePixelRatio float64 `json:"device_pixel_ratio"`
}

type Driver struct {
	RefreshHz int `json:"refresh_hz"`
	ChainWarn int `json:"chain_warn"`
}

type Assets struct {
	Root          string `json:"root"`
	HTTPTimeoutMs int    `json:"http_timeout_ms"`
}

// FrameInterval returns the time between frames for hosts that pace
// themselves.
func (d Driver) FrameInterval() time.Duration {
	return time.Second / time.Duration(d.RefreshHz)
}

// HTTPTimeout returns the remote asset timeout.
func (a Assets) HTTPTimeout() time.Duration {
	return time.Duration(a.HTTPTimeoutMs) * time.Millisecond
}

// SlogLevel maps the configured level to slog.
func (l Log) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Default returns the schema defaults.
func Default() (Config, error) {
	return Parse("default.cue", []byte{})
}

// Load reads and validates the CUE file at path.
func Load(path string) (Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(path, src)
}

// Parse validates src against the schema. filename is used in error
// positions.
func Parse(filename string, src []byte) (Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSrc, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Config{}, fmt.Errorf("compile schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))

	file := ctx.CompileBytes(src, cue.Filename(filename))
	if err := file.Err(); err != nil {
		return Config{}, fmt.Errorf("compile %s: %w", filename, err)
	}

	v := def.Unify(file)
	if err := v.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate %s: %w", filename, err)
	}

	var cfg Config
	if err := v.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode %s: %w", filename, err)
	}
	return cfg, nil
}
