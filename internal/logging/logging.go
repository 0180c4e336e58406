// Package logging sets up the editor's slog logger. While the editor runs the
// terminal belongs to the screen, so records go to a size-rotated file.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	appDirName  = "core-editor"
	logFileName = "editor.log"
	maxBackups  = 3
)

// Options configures New.
type Options struct {
	Path      string // empty selects DefaultPath
	Level     slog.Level
	MaxSizeMB int
}

// New returns a text logger writing to a rotating file, and the closer that
// flushes it.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	path := opts.Path
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, nil, err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	sink := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: maxBackups,
	}
	h := slog.NewTextHandler(sink, &slog.HandlerOptions{Level: opts.Level})
	return slog.New(h), sink, nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// DefaultPath is $XDG_DATA_HOME/core-editor/editor.log, defaulting to
// ~/.local/share.
func DefaultPath() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, appDirName, logFileName), nil
}
