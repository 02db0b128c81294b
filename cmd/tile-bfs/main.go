// Command tile-bfs is a terminal breadth-first search visualizer.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/tile-bfs/audio"
	"github.com/lixenwraith/tile-bfs/config"
	"github.com/lixenwraith/tile-bfs/preset"
)

var (
	configFlag    = flag.String("config", "tile-bfs.toml", "Config file (TOML)")
	tileFlag      = flag.Int("tile", config.DefaultTileSize, "Tile size [10-60]")
	batchFlag     = flag.Int("batch", 0, "Cells per frame (0 = derive from tile size)")
	debugFlag     = flag.Bool("debug", false, "Write debug log to the log directory")
	noAudioFlag   = flag.Bool("no-audio", false, "Disable sound")
	presetDirFlag = flag.String("preset-dir", "", "Directory for exported and extra presets")
	headlessFlag  = flag.Bool("headless", false, "Run one search without a terminal and print the result")
	colsFlag      = flag.Int("cols", 0, "Headless grid columns (0 = 80x24 viewport)")
	rowsFlag      = flag.Int("rows", 0, "Headless grid rows (0 = 80x24 viewport)")
	presetFlag    = flag.String("preset", "", "Headless preset name or file (empty = generated maze)")
	seedFlag      = flag.Int64("seed", 0, "Headless maze seed (0 = random)")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tile-bfs: %v\n", err)
		os.Exit(2)
	}
	cfg = applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "tile-bfs: %v\n", err)
		os.Exit(2)
	}

	logger, logFile := setupLogging(cfg.LogDir, cfg.Debug)
	if logFile != nil {
		defer logFile.Close()
	}

	if *headlessFlag {
		opts := headlessOptions{
			cols:     *colsFlag,
			rows:     *rowsFlag,
			tileSize: cfg.TileSize,
			batch:    cfg.Batch,
			preset:   *presetFlag,
			seed:     *seedFlag,
		}
		if err := runHeadless(os.Stdout, cfg, opts, logger); err != nil {
			fmt.Fprintf(os.Stderr, "tile-bfs: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := runInteractive(cfg, logger); err != nil {
		fmt.Fprintf(os.Stderr, "tile-bfs: %v\n", err)
		os.Exit(1)
	}
}

// applyFlags overrides file values with explicitly set flags
func applyFlags(cfg config.Config) config.Config {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "tile":
			cfg.TileSize = *tileFlag
		case "batch":
			cfg.Batch = *batchFlag
		case "debug":
			cfg.Debug = *debugFlag
		case "no-audio":
			cfg.Audio = !*noAudioFlag
		case "preset-dir":
			cfg.PresetDir = *presetDirFlag
		}
	})
	return cfg
}

func runInteractive(cfg config.Config, logger *logrus.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()
	// Normal exit terminal cleanup
	defer screen.Fini()

	// Panic Recovery: restore the terminal before printing the trace
	setCrashScreen(screen)
	defer func() {
		handleCrash(recover())
	}()

	notifier := audio.NewNotifier(cfg.Audio, logger)
	if err := notifier.Init(); err != nil {
		logger.WithError(err).Warn("audio init failed, continuing without audio")
	}
	defer notifier.Close()

	presets, err := preset.Builtin()
	if err != nil {
		logger.WithError(err).Warn("builtin presets unavailable")
	}
	extra, err := preset.LoadDir(cfg.PresetDir)
	if err != nil {
		logger.WithError(err).Warn("preset dir skipped")
	}
	presets = append(presets, extra...)

	a := newApp(cfg, screen, logger, notifier, presets)

	events := make(chan tcell.Event, 256)
	goSafe(func() {
		for {
			ev := screen.PollEvent()
			// nil after Fini
			if ev == nil {
				return
			}
			events <- ev
		}
	})

	logger.WithFields(logrus.Fields{
		"tile":  cfg.TileSize,
		"batch": cfg.InitialBatch(),
		"audio": notifier.Enabled(),
	}).Info("tile-bfs started")

	a.run(events)
	return nil
}
