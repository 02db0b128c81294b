// Package preset loads, saves and applies predefined obstacle layouts.
//
// The record mirrors the grid export of the visualizer: tile size, batch,
// explorer position and the blocked cells as parallel X/Y coordinate lists.
// Presets are dimension independent; applying one to a grid drops cells that
// fall outside it and keeps the goal free.
package preset

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/tile-bfs/grid"
)

var (
	ErrMalformed = errors.New("preset: malformed record")
	ErrFormat    = errors.New("preset: unsupported format")
)

// Format selects the on-disk encoding
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

//go:embed builtin/*.toml
var builtinFS embed.FS

// Coord is a serialisable cell coordinate
type Coord struct {
	X int `toml:"x" yaml:"x"`
	Y int `toml:"y" yaml:"y"`
}

// Preset is one predefined grid
type Preset struct {
	Name         string `toml:"name" yaml:"name"`
	TileSize     int    `toml:"tile_size" yaml:"tileSize"`
	Batch        int    `toml:"batch" yaml:"batch"`
	Explorer     Coord  `toml:"explorer" yaml:"explorer"`
	NumOfBlocked int    `toml:"num_of_blocked" yaml:"numOfBlocked"`
	BlockedX     []int  `toml:"blocked_x" yaml:"blockedX"`
	BlockedY     []int  `toml:"blocked_y" yaml:"blockedY"`
}

// Export captures the current editor state as a preset
func Export(name string, tileSize, batch int, explorer grid.Point, g grid.Grid) Preset {
	blocked := g.Blocked()
	p := Preset{
		Name:         name,
		TileSize:     tileSize,
		Batch:        batch,
		Explorer:     Coord{X: explorer.X, Y: explorer.Y},
		NumOfBlocked: len(blocked),
		BlockedX:     make([]int, len(blocked)),
		BlockedY:     make([]int, len(blocked)),
	}
	for i, c := range blocked {
		p.BlockedX[i] = c.X
		p.BlockedY[i] = c.Y
	}
	return p
}

// Validate checks the parallel coordinate lists agree
func (p Preset) Validate() error {
	if len(p.BlockedX) != len(p.BlockedY) {
		return fmt.Errorf("%w: %q has %d x and %d y coordinates", ErrMalformed, p.Name, len(p.BlockedX), len(p.BlockedY))
	}
	if p.NumOfBlocked != len(p.BlockedX) {
		return fmt.Errorf("%w: %q declares %d blocked cells, lists %d", ErrMalformed, p.Name, p.NumOfBlocked, len(p.BlockedX))
	}
	return nil
}

// Blocked returns the blocked cells as points
func (p Preset) Blocked() []grid.Point {
	out := make([]grid.Point, 0, len(p.BlockedX))
	for i := 0; i < len(p.BlockedX) && i < len(p.BlockedY); i++ {
		out = append(out, grid.Point{X: p.BlockedX[i], Y: p.BlockedY[i]})
	}
	return out
}

// ExplorerPoint returns the explorer position
func (p Preset) ExplorerPoint() grid.Point {
	return grid.Point{X: p.Explorer.X, Y: p.Explorer.Y}
}

// Grid applies the preset to a cols×rows grid
func (p Preset) Grid(cols, rows int) grid.Grid {
	return grid.FromBlocked(cols, rows, p.Blocked())
}

// FormatFromPath picks the encoding from the file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrFormat, filepath.Ext(path))
	}
}

// Decode reads and validates one preset
func Decode(r io.Reader, f Format) (Preset, error) {
	var p Preset
	data, err := io.ReadAll(r)
	if err != nil {
		return p, fmt.Errorf("preset: read: %w", err)
	}
	switch f {
	case FormatTOML:
		err = toml.Unmarshal(data, &p)
	case FormatYAML:
		err = yaml.Unmarshal(data, &p)
	default:
		return p, fmt.Errorf("%w: %q", ErrFormat, f)
	}
	if err != nil {
		return p, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return p, p.Validate()
}

// Encode writes one preset
func Encode(w io.Writer, f Format, p Preset) error {
	if err := p.Validate(); err != nil {
		return err
	}
	var (
		data []byte
		err  error
	)
	switch f {
	case FormatTOML:
		data, err = toml.Marshal(p)
	case FormatYAML:
		data, err = yaml.Marshal(p)
	default:
		return fmt.Errorf("%w: %q", ErrFormat, f)
	}
	if err != nil {
		return fmt.Errorf("preset: encode %q: %w", p.Name, err)
	}
	_, err = w.Write(data)
	return err
}

// LoadFile reads a preset, format chosen by extension
func LoadFile(path string) (Preset, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return Preset{}, err
	}
	file, err := os.Open(path)
	if err != nil {
		return Preset{}, fmt.Errorf("preset: open %s: %w", path, err)
	}
	defer file.Close()

	p, err := Decode(file, f)
	if err != nil {
		return p, fmt.Errorf("%s: %w", path, err)
	}
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return p, nil
}

// SaveFile writes a preset, creating parent directories
func SaveFile(path string, p Preset) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, f, p); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("preset: mkdir: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("preset: write %s: %w", path, err)
	}
	return nil
}

// LoadDir reads every preset file in dir sorted by file name
// A missing directory yields no presets and no error
func LoadDir(dir string) ([]Preset, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("preset: read dir %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, err := FormatFromPath(e.Name()); err == nil {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	out := make([]Preset, 0, len(names))
	for _, name := range names {
		p, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return out, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Builtin returns the embedded presets in file name order
func Builtin() ([]Preset, error) {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil, fmt.Errorf("preset: builtin: %w", err)
	}
	out := make([]Preset, 0, len(entries))
	for _, e := range entries {
		data, err := builtinFS.ReadFile("builtin/" + e.Name())
		if err != nil {
			return out, fmt.Errorf("preset: builtin %s: %w", e.Name(), err)
		}
		p, err := Decode(bytes.NewReader(data), FormatTOML)
		if err != nil {
			return out, fmt.Errorf("preset: builtin %s: %w", e.Name(), err)
		}
		out = append(out, p)
	}
	return out, nil
}
