package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"github.com/lixenwraith/tile-bfs/audio"
	"github.com/lixenwraith/tile-bfs/config"
	"github.com/lixenwraith/tile-bfs/grid"
	"github.com/lixenwraith/tile-bfs/maze"
	"github.com/lixenwraith/tile-bfs/preset"
	"github.com/lixenwraith/tile-bfs/render"
	"github.com/lixenwraith/tile-bfs/search"
	"github.com/lixenwraith/tile-bfs/session"
)

const (
	tileStep       = 5
	mazeBraiding   = 0.1
	revealDuration = 400 * time.Millisecond
)

// app is the interactive host, all methods run on the main loop goroutine
type app struct {
	cfg    config.Config
	screen tcell.Screen
	log    logrus.FieldLogger

	sess     *session.Session
	sched    *session.FrameScheduler
	renderer *render.Renderer
	reveal   *render.PathReveal
	notifier *audio.Notifier

	presets   []preset.Preset
	presetIdx int
	tileSize  int

	// Cells toggled by the current drag, nil when no button is held
	painted mapset.Set[grid.Point]
	drag    bool
}

func newApp(cfg config.Config, screen tcell.Screen, log logrus.FieldLogger, notifier *audio.Notifier, presets []preset.Preset) *app {
	a := &app{
		cfg:      cfg,
		screen:   screen,
		log:      log,
		sched:    session.NewFrameScheduler(cfg.FrameInterval()),
		renderer: render.New(cfg.TileSize, cfg.HeaderRows),
		reveal:   render.NewPathReveal(revealDuration),
		notifier: notifier,
		presets:  presets,
		tileSize: cfg.TileSize,
	}

	cols, rows := a.dimensions()
	a.sess = session.New(cols, rows, cfg.InitialBatch(),
		session.WithLogger(log),
		session.WithScheduler(a.sched),
		session.WithOnFinish(a.onFinish),
	)
	return a
}

func (a *app) dimensions() (int, int) {
	w, h := a.screen.Size()
	return config.Dimensions(w, h, a.cfg.HeaderRows, a.tileSize)
}

// run drives events and frames until quit
func (a *app) run(events <-chan tcell.Event) {
	a.sched.Start()
	defer a.sched.Stop()
	defer func() {
		a.log.WithFields(logrus.Fields{
			"stats":  strings.Join(a.sess.Stats().Lines(), " "),
			"frames": a.sched.Delivered(),
		}).Info("tile-bfs stopped")
	}()

	animTicker := time.NewTicker(a.cfg.FrameInterval())
	defer animTicker.Stop()

	a.draw()
	last := time.Now()
	for {
		select {
		case ev := <-events:
			if !a.handleEvent(ev) {
				return
			}
			a.draw()

		case f := <-a.sched.Frames():
			a.onFrame(f)

		case now := <-animTicker.C:
			dt := now.Sub(last)
			last = now
			if a.reveal.Active() {
				a.reveal.Update(dt)
				a.draw()
			}
		}
	}
}

func (a *app) onFrame(f session.Frame) {
	if _, ok := a.sess.Tick(f.Token); ok {
		a.draw()
	}
}

func (a *app) onFinish(res search.StepResult) {
	switch res.Status {
	case search.PathFound:
		a.reveal.Start(len(res.Path))
		a.notifier.Play(audio.PathFound)
	case search.NoPathFound:
		a.reveal.Reset()
		a.notifier.Play(audio.NoPath)
	}
}

func (a *app) draw() {
	a.renderer.Draw(a.screen, a.sess.View(), a.reveal.Shown())
}

// handleEvent applies one terminal event, false means quit
func (a *app) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventResize:
		a.screen.Sync()
		a.resize()
	}
	return true
}

func (a *app) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyEnter:
		a.trigger()
	case tcell.KeyUp:
		a.moveExplorer(grid.DirUp)
	case tcell.KeyRight:
		a.moveExplorer(grid.DirRight)
	case tcell.KeyDown:
		a.moveExplorer(grid.DirDown)
	case tcell.KeyLeft:
		a.moveExplorer(grid.DirLeft)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'r':
			a.trigger()
		case 'c':
			a.reveal.Reset()
			a.sess.Clear()
		case 'p':
			a.nextPreset()
		case 'm':
			a.generateMaze()
		case '+', '=':
			a.setTileSize(a.tileSize + tileStep)
		case '-', '_':
			a.setTileSize(a.tileSize - tileStep)
		case ']':
			a.adjustBatch(+1)
		case '[':
			a.adjustBatch(-1)
		case 'e':
			a.export()
		case 'x':
			a.sess.Cancel()
		}
	}
	return true
}

// handleMouse paints with the left button, each tile at most once per drag
// The right button places the explorer
func (a *app) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	p, onGrid := a.renderer.TileAt(x, y, a.sess.Grid())

	switch {
	case ev.Buttons()&tcell.Button1 != 0:
		if !a.drag {
			a.drag = true
			a.painted = mapset.New[grid.Point]()
		}
		if onGrid && !a.painted.Has(p) {
			a.painted.Put(p)
			if a.sess.Toggle(p) {
				a.reveal.Reset()
			}
		}
	case ev.Buttons()&tcell.Button2 != 0:
		if onGrid && a.sess.SetExplorer(p) {
			a.reveal.Reset()
		}
	case ev.Buttons() == tcell.ButtonNone:
		a.drag = false
		a.painted = nil
	}
}

func (a *app) trigger() {
	a.reveal.Reset()
	if _, err := a.sess.Trigger(); err != nil {
		a.notifier.Play(audio.Rejected)
	}
}

func (a *app) moveExplorer(d grid.Direction) {
	if a.sess.MoveExplorer(d) {
		a.reveal.Reset()
	}
}

func (a *app) resize() {
	cols, rows := a.dimensions()
	if a.sess.Resize(cols, rows) {
		a.reveal.Reset()
	}
}

// setTileSize re-derives the grid and resets the batch to the tile default
func (a *app) setTileSize(ts int) {
	ts = config.ClampTileSize(ts)
	if ts == a.tileSize {
		return
	}
	a.tileSize = ts
	a.renderer.SetTileSize(ts)
	a.resize()
	batch, _ := config.DefaultsForTileSize(ts)
	a.sess.SetBatchSize(batch)
	a.log.WithFields(logrus.Fields{"tile": ts, "batch": batch}).Debug("tile size changed")
}

func (a *app) adjustBatch(dir int) {
	cur := a.sess.BatchSize()
	step := cur / 5
	if step < 1 {
		step = 1
	}
	a.sess.SetBatchSize(config.ClampBatch(cur+dir*step, a.tileSize))
}

func (a *app) nextPreset() {
	if len(a.presets) == 0 {
		a.sess.SetNotice("no presets available")
		return
	}
	p := a.presets[a.presetIdx%len(a.presets)]
	a.presetIdx++

	if p.TileSize > 0 {
		a.setTileSize(p.TileSize)
	}
	a.reveal.Reset()
	a.sess.LoadPreset(p)
	if p.Batch > 0 {
		a.sess.SetBatchSize(config.ClampBatch(p.Batch, a.tileSize))
	}
	a.sess.SetNotice(fmt.Sprintf("preset %q", p.Name))
}

func (a *app) generateMaze() {
	g := a.sess.Grid()
	res := maze.Generate(maze.Config{Cols: g.Cols(), Rows: g.Rows(), Braiding: mazeBraiding})
	a.reveal.Reset()
	a.sess.LoadGrid(res.Grid, res.Start)
	a.sess.SetNotice(fmt.Sprintf("maze %dx%d", g.Cols(), g.Rows()))
}

func (a *app) export() {
	name := "grid-" + time.Now().Format("20060102-150405")
	path := filepath.Join(a.cfg.PresetDir, name+".toml")
	p := a.sess.Export(name, a.tileSize)
	if err := preset.SaveFile(path, p); err != nil {
		a.log.WithError(err).Warn("export failed")
		a.sess.SetNotice(fmt.Sprintf("export failed: %v", err))
		return
	}
	a.presets = append(a.presets, p)
	a.sess.SetNotice("exported " + path)
}
