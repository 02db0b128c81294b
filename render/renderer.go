// Package render draws a session view onto a tcell screen.
package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tile-bfs/config"
	"github.com/lixenwraith/tile-bfs/grid"
	"github.com/lixenwraith/tile-bfs/search"
	"github.com/lixenwraith/tile-bfs/session"
)

// Tile styles
var (
	StyleFree     = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	StyleBlocked  = tcell.StyleDefault.Background(tcell.ColorGray)
	StyleExplored = tcell.StyleDefault.Background(tcell.ColorDarkGreen)
	StyleFrontier = tcell.StyleDefault.Background(tcell.ColorDarkCyan)
	StylePath     = tcell.StyleDefault.Background(tcell.ColorLime)
	StyleExplorer = tcell.StyleDefault.Background(tcell.ColorRed)
	StyleGoal     = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	StyleHeader   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
	StyleNotice   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

// Tile glyphs
const (
	glyphFree = '·'
	glyphGoal = '▚'
)

// HelpText lists the key bindings shown when there is no notice
const HelpText = "Enter run  arrows move  mouse paint  c clear  p preset  m maze  +/- tile  [/] batch  e export  x cancel  q quit"

// Renderer maps grid tiles to terminal cells below a header
type Renderer struct {
	headerRows   int
	tileSize     int
	tileW, tileH int
}

// New creates a renderer for a tile size and header height
func New(tileSize, headerRows int) *Renderer {
	r := &Renderer{headerRows: headerRows}
	r.SetTileSize(tileSize)
	return r
}

// SetTileSize updates the tile to cell mapping
func (r *Renderer) SetTileSize(ts int) {
	r.tileSize = ts
	r.tileW, r.tileH = config.TileCells(ts)
}

func (r *Renderer) TileSize() int { return r.tileSize }

// TileAt maps a screen cell to a tile, false on the header or past the grid
func (r *Renderer) TileAt(x, y int, g grid.Grid) (grid.Point, bool) {
	if x < 0 || y < r.headerRows {
		return grid.Point{}, false
	}
	p := grid.Point{X: x / r.tileW, Y: (y - r.headerRows) / r.tileH}
	if !g.InBounds(p) {
		return grid.Point{}, false
	}
	return p, true
}

// Draw renders the full frame, revealed limits how many path cells are shown
func (r *Renderer) Draw(screen tcell.Screen, v session.View, revealed int) {
	screen.Clear()
	width, _ := screen.Size()

	r.drawHeader(screen, width, v)

	onPath := make(map[grid.Point]bool, len(v.Path))
	for i, p := range v.Path {
		if i >= revealed {
			break
		}
		onPath[p] = true
	}
	inFrontier := make(map[grid.Point]bool, len(v.Frontier))
	for _, p := range v.Frontier {
		inFrontier[p] = true
	}

	for y := 0; y < v.Grid.Rows(); y++ {
		for x := 0; x < v.Grid.Cols(); x++ {
			p := grid.Point{X: x, Y: y}
			glyph, style := ' ', StyleFree
			switch {
			case p == v.Explorer:
				style = StyleExplorer
			case p == v.Goal:
				glyph, style = glyphGoal, StyleGoal
			case onPath[p]:
				style = StylePath
			case v.Grid.IsBlocked(p):
				style = StyleBlocked
			case inFrontier[p]:
				style = StyleFrontier
			case v.IsExplored(p):
				style = StyleExplored
			default:
				glyph = glyphFree
			}
			r.fillTile(screen, p, glyph, style)
		}
	}

	screen.Show()
}

func (r *Renderer) fillTile(screen tcell.Screen, p grid.Point, glyph rune, style tcell.Style) {
	x0 := p.X * r.tileW
	y0 := r.headerRows + p.Y*r.tileH
	for dy := 0; dy < r.tileH; dy++ {
		for dx := 0; dx < r.tileW; dx++ {
			ch := glyph
			// dot only in the top-left cell of a free tile
			if glyph == glyphFree && (dx != 0 || dy != 0) {
				ch = ' '
			}
			screen.SetContent(x0+dx, y0+dy, ch, nil, style)
		}
	}
}

func (r *Renderer) drawHeader(screen tcell.Screen, width int, v session.View) {
	if r.headerRows < 1 {
		return
	}
	status := fmt.Sprintf(" tile-bfs | %s | %dx%d | tile %d | batch %d | run #%d | ticks %d | explored %d",
		v.Status, v.Grid.Cols(), v.Grid.Rows(), r.tileSize, v.Batch, v.Token, v.Ticks, v.ExploredCount)
	if v.Status == search.PathFound {
		status += fmt.Sprintf(" | path %d", len(v.Path))
	}
	drawText(screen, 0, 0, width, status, StyleHeader, true)

	if r.headerRows < 2 {
		return
	}
	if v.Notice != "" {
		drawText(screen, 0, 1, width, " "+v.Notice, StyleNotice, false)
		return
	}
	drawText(screen, 0, 1, width, " "+HelpText, tcell.StyleDefault, false)
}

// drawText writes s from (x, y), clipped to width, optionally padding the line with style
func drawText(screen tcell.Screen, x, y, width int, s string, style tcell.Style, pad bool) {
	col := x
	for _, ch := range s {
		if col >= width {
			return
		}
		screen.SetContent(col, y, ch, nil, style)
		col++
	}
	for pad && col < width {
		screen.SetContent(col, y, ' ', nil, style)
		col++
	}
}
