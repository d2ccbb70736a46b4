// Package logging builds the debug logger. The TUI owns the terminal, so
// log output goes to a file or nowhere.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New returns a logger writing to path, or a no-op logger when path is empty.
func New(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("open debug log %s: %w", path, err)
	}
	return logger, nil
}
