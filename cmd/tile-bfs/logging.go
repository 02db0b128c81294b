package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	logFileName = "tile-bfs.log"
	maxLogSize  = 10 * 1024 * 1024 // 10MB
)

// renameFile is swapped in tests to fail rotation
var renameFile = os.Rename

// setupLogging routes logs to dir/tile-bfs.log when debug is set, otherwise discards them
// The terminal is in raw mode while running, so logs never go to stdout or stderr
func setupLogging(dir string, debug bool) (*logrus.Logger, *os.File) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})

	if !debug {
		return logger, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return logger, nil
	}

	logPath := filepath.Join(dir, logFileName)

	// Rotate oversized log, a failure is reported once the file is open
	var rotateErr error
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(dir, fmt.Sprintf("tile-bfs-%s.log", time.Now().Format("20060102-150405")))
		rotateErr = renameFile(logPath, rotated)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return logger, nil
	}

	logger.SetOutput(f)
	logger.SetLevel(logrus.DebugLevel)
	logger.WithField("pid", os.Getpid()).Info("logging started")
	if rotateErr != nil {
		logger.WithError(rotateErr).Warn("log rotation failed, appending to oversized log")
	}
	return logger, f
}
