// Command grid-gen writes a generated maze as a tile-bfs preset.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lixenwraith/tile-bfs/config"
	"github.com/lixenwraith/tile-bfs/grid"
	"github.com/lixenwraith/tile-bfs/maze"
	"github.com/lixenwraith/tile-bfs/preset"
)

func main() {
	cols := flag.Int("cols", 35, "Grid columns [odd preferred]")
	rows := flag.Int("rows", 19, "Grid rows [odd preferred]")
	braid := flag.Float64("braid", 0.2, "Braiding factor [0.0 - 1.0]")
	seed := flag.Int64("seed", 0, "Random seed (0 = time based)")
	tile := flag.Int("tile", config.DefaultTileSize, "Tile size stored in the preset")
	out := flag.String("out", "", "Output file, .toml or .yaml (empty = print only)")
	name := flag.String("name", "", "Preset name (default: output file name)")
	flag.Parse()

	if err := run(os.Stdout, options{
		cols: *cols, rows: *rows, braid: *braid, seed: *seed,
		tile: *tile, out: *out, name: *name,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "grid-gen: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	cols, rows int
	braid      float64
	seed       int64
	tile       int
	out        string
	name       string
}

func run(w io.Writer, opts options) error {
	if opts.cols <= 0 || opts.rows <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d", opts.cols, opts.rows)
	}
	braid := clamp01(opts.braid)
	tile := config.ClampTileSize(opts.tile)

	startT := time.Now()
	res := maze.Generate(maze.Config{Cols: opts.cols, Rows: opts.rows, Braiding: braid, Seed: opts.seed})
	fmt.Fprintf(w, "Done in %v\n", time.Since(startT))
	fmt.Fprintf(w, "Grid Dimensions: %dx%d, blocked %d\n", res.Grid.Cols(), res.Grid.Rows(), res.Grid.BlockedCount())

	if res.Solution != nil {
		fmt.Fprintf(w, "Solution Path Length: %d steps\n", len(res.Solution)-1)
	} else {
		fmt.Fprintln(w, "Status: Unsolvable")
	}
	draw(w, res)

	if opts.out == "" {
		return nil
	}
	name := opts.name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(opts.out), filepath.Ext(opts.out))
	}
	batch, _ := config.DefaultsForTileSize(tile)
	p := preset.Export(name, tile, batch, res.Start, res.Grid)
	if err := preset.SaveFile(opts.out, p); err != nil {
		return err
	}
	fmt.Fprintf(w, "Wrote %s\n", opts.out)
	return nil
}

func draw(w io.Writer, res maze.Result) {
	pathMap := make(map[grid.Point]bool, len(res.Solution))
	for _, p := range res.Solution {
		pathMap[p] = true
	}
	goal := res.Grid.Goal()

	var b strings.Builder
	for y := 0; y < res.Grid.Rows(); y++ {
		for x := 0; x < res.Grid.Cols(); x++ {
			p := grid.Point{X: x, Y: y}
			switch {
			case p == res.Start:
				b.WriteString("S")
			case p == goal:
				b.WriteString("E")
			case res.Grid.IsBlocked(p):
				b.WriteString("█")
			case pathMap[p]:
				b.WriteString("•")
			default:
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")
	}
	fmt.Fprint(w, b.String())
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
