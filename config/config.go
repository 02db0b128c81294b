// Package config holds host settings: tile size, batch size, frame pacing,
// audio and logging switches, with the tile-size driven batch defaults and the
// viewport to grid dimension mapping.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Tile size bounds, same scale as the batch formula expects
const (
	MinTileSize     = 10
	MaxTileSize     = 60
	DefaultTileSize = 25

	// DefaultHeaderRows is the terminal rows reserved for the status header
	DefaultHeaderRows = 2

	// DefaultFrameIntervalMs is the frame cadence, ~60 FPS
	DefaultFrameIntervalMs = 16
)

// Environment overrides
const (
	EnvAudio = "TILEBFS_AUDIO"
	EnvDebug = "TILEBFS_DEBUG"
)

var ErrInvalid = errors.New("config: invalid value")

// Config is the host configuration, loadable from TOML
type Config struct {
	TileSize        int    `toml:"tile_size"`
	Batch           int    `toml:"batch"` // 0 = derive from tile size
	FrameIntervalMs int    `toml:"frame_interval_ms"`
	HeaderRows      int    `toml:"header_rows"`
	Audio           bool   `toml:"audio"`
	Debug           bool   `toml:"debug"`
	LogDir          string `toml:"log_dir"`
	PresetDir       string `toml:"preset_dir"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		TileSize:        DefaultTileSize,
		FrameIntervalMs: DefaultFrameIntervalMs,
		HeaderRows:      DefaultHeaderRows,
		Audio:           true,
		LogDir:          "logs",
		PresetDir:       "presets",
	}
}

// Load reads a TOML file over the defaults, a missing file yields defaults
// Environment overrides are applied last
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvAudio); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Audio = b
		}
	}
	if v := os.Getenv(EnvDebug); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = b
		}
	}
}

// Validate rejects values the host cannot run with
func (c Config) Validate() error {
	if c.TileSize < MinTileSize || c.TileSize > MaxTileSize {
		return fmt.Errorf("%w: tile_size %d outside [%d, %d]", ErrInvalid, c.TileSize, MinTileSize, MaxTileSize)
	}
	if c.Batch < 0 {
		return fmt.Errorf("%w: batch %d", ErrInvalid, c.Batch)
	}
	if c.FrameIntervalMs <= 0 {
		return fmt.Errorf("%w: frame_interval_ms %d", ErrInvalid, c.FrameIntervalMs)
	}
	if c.HeaderRows < 0 {
		return fmt.Errorf("%w: header_rows %d", ErrInvalid, c.HeaderRows)
	}
	return nil
}

// FrameInterval returns the frame cadence as a duration
func (c Config) FrameInterval() time.Duration {
	return time.Duration(c.FrameIntervalMs) * time.Millisecond
}

// InitialBatch returns the configured batch or the tile size default, clamped
func (c Config) InitialBatch() int {
	if c.Batch > 0 {
		return ClampBatch(c.Batch, c.TileSize)
	}
	batch, _ := DefaultsForTileSize(c.TileSize)
	return batch
}

// DefaultsForTileSize returns the auto batch size and slider maximum for a tile size
// Smaller tiles mean more cells, so the batch grows to keep run time comparable
func DefaultsForTileSize(ts int) (batch, max int) {
	f := float64(ts)
	b := math.Round(-1981.731797/f + 1562.452388/(f-5.385) + 9.613661)
	extra := 0.0
	if ts < 20 {
		extra = 250
	}
	m := int(math.Round(1500/f + extra))
	if m < 1 {
		m = 1
	}
	batch = int(b)
	if batch < 1 {
		batch = 1
	}
	if batch > m {
		batch = m
	}
	return batch, m
}

// ClampBatch bounds n to [1, max] for the given tile size
func ClampBatch(n, ts int) int {
	_, m := DefaultsForTileSize(ts)
	if n < 1 {
		return 1
	}
	if n > m {
		return m
	}
	return n
}

// ClampTileSize bounds ts to [MinTileSize, MaxTileSize]
func ClampTileSize(ts int) int {
	if ts < MinTileSize {
		return MinTileSize
	}
	if ts > MaxTileSize {
		return MaxTileSize
	}
	return ts
}

// TileCells returns the terminal cells covered by one tile
// Terminal cells are about twice as tall as wide, hence w = 2*h
func TileCells(ts int) (w, h int) {
	scale := ts / MinTileSize
	if scale < 1 {
		scale = 1
	}
	return 2 * scale, scale
}

// Dimensions maps a terminal viewport to grid columns and rows
func Dimensions(width, height, headerRows, ts int) (cols, rows int) {
	w, h := TileCells(ts)
	usable := height - headerRows
	if width <= 0 || usable <= 0 {
		return 0, 0
	}
	return width / w, usable / h
}
