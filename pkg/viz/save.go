// Package viz renders pipeline diagnostics as PNG charts with gonum/plot.
package viz

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// DefaultDir is the directory charts are written to.
const DefaultDir = "image"

// Saver writes plots into Dir. An existing file with the same name is
// removed before the new one is written.
type Saver struct {
	Dir    string
	Logger *slog.Logger
}

// NewSaver returns a Saver for dir, or DefaultDir when dir is empty.
func NewSaver(dir string, logger *slog.Logger) *Saver {
	if dir == "" {
		dir = DefaultDir
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Saver{Dir: dir, Logger: logger}
}

// Save renders p at the given size to Dir/filename and returns the path.
// The format follows the file extension.
func (s *Saver) Save(p *plot.Plot, filename string, w, h vg.Length) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create plot dir: %w", err)
	}
	path := filepath.Join(s.Dir, filename)
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("remove old plot: %w", err)
	}
	if err := p.Save(w, h, path); err != nil {
		return "", fmt.Errorf("save plot %s: %w", path, err)
	}
	s.Logger.Info("Plot saved to "+path, slog.String("path", path))
	return path, nil
}
