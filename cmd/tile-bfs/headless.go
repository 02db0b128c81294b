package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/tile-bfs/config"
	"github.com/lixenwraith/tile-bfs/grid"
	"github.com/lixenwraith/tile-bfs/maze"
	"github.com/lixenwraith/tile-bfs/preset"
	"github.com/lixenwraith/tile-bfs/search"
	"github.com/lixenwraith/tile-bfs/session"
)

// Headless viewport when no -cols/-rows given
const (
	headlessWidth  = 80
	headlessHeight = 24
)

var ErrPresetNotFound = errors.New("preset not found")

type headlessOptions struct {
	cols, rows int
	tileSize   int
	batch      int // 0 = preset or tile default
	preset     string
	seed       int64
}

// runHeadless performs one search synchronously and prints the outcome
// A preset tile size overrides opts.tileSize, as when cycling presets interactively
func runHeadless(w io.Writer, cfg config.Config, opts headlessOptions, log logrus.FieldLogger) error {
	var (
		p         preset.Preset
		hasPreset bool
	)
	if opts.preset != "" {
		var err error
		if p, err = resolvePreset(opts.preset, cfg.PresetDir); err != nil {
			return err
		}
		hasPreset = true
	}

	ts := config.ClampTileSize(opts.tileSize)
	if hasPreset && p.TileSize > 0 {
		ts = config.ClampTileSize(p.TileSize)
	}
	cols, rows := opts.cols, opts.rows
	if cols <= 0 || rows <= 0 {
		cols, rows = config.Dimensions(headlessWidth, headlessHeight, cfg.HeaderRows, ts)
	}

	batch, _ := config.DefaultsForTileSize(ts)
	sess := session.New(cols, rows, batch, session.WithLogger(log))

	source := "maze"
	if hasPreset {
		sess.LoadPreset(p)
		source = "preset " + p.Name
	} else {
		res := maze.Generate(maze.Config{Cols: cols, Rows: rows, Braiding: mazeBraiding, Seed: opts.seed})
		sess.LoadGrid(res.Grid, res.Start)
	}
	if opts.batch > 0 {
		sess.SetBatchSize(config.ClampBatch(opts.batch, ts))
	}

	token, err := sess.Trigger()
	if err != nil {
		return fmt.Errorf("start search: %w", err)
	}
	for sess.Running() {
		sess.Tick(token)
	}

	log.WithField("stats", strings.Join(sess.Stats().Lines(), " ")).Debug("headless run done")

	v := sess.View()
	fmt.Fprintf(w, "source:   %s\n", source)
	fmt.Fprintf(w, "grid:     %dx%d batch %d\n", cols, rows, v.Batch)
	fmt.Fprintf(w, "status:   %s\n", v.Status)
	fmt.Fprintf(w, "ticks:    %d\n", v.Ticks)
	fmt.Fprintf(w, "explored: %d\n", v.ExploredCount)
	if v.Status == search.PathFound {
		fmt.Fprintf(w, "path:     %d steps\n", len(v.Path)-1)
	}
	fmt.Fprint(w, drawASCII(v))
	return nil
}

// resolvePreset looks up ref as a builtin name, a file path, then a name in dir
func resolvePreset(ref, dir string) (preset.Preset, error) {
	var all []preset.Preset
	if builtin, err := preset.Builtin(); err == nil {
		all = append(all, builtin...)
	}
	if _, err := os.Stat(ref); err == nil {
		return preset.LoadFile(ref)
	}
	if fromDir, err := preset.LoadDir(dir); err == nil {
		all = append(all, fromDir...)
	}
	for _, p := range all {
		if p.Name == ref {
			return p, nil
		}
	}
	return preset.Preset{}, fmt.Errorf("%w: %s", ErrPresetNotFound, ref)
}

// drawASCII renders S explorer, G goal, # blocked, * path, . explored
func drawASCII(v session.View) string {
	onPath := make(map[grid.Point]bool, len(v.Path))
	for _, p := range v.Path {
		onPath[p] = true
	}

	var b strings.Builder
	for y := 0; y < v.Grid.Rows(); y++ {
		for x := 0; x < v.Grid.Cols(); x++ {
			p := grid.Point{X: x, Y: y}
			switch {
			case p == v.Explorer:
				b.WriteByte('S')
			case p == v.Goal:
				b.WriteByte('G')
			case v.Grid.IsBlocked(p):
				b.WriteByte('#')
			case onPath[p]:
				b.WriteByte('*')
			case v.IsExplored(p):
				b.WriteByte('.')
			default:
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
