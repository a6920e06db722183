package app

import (
	"strings"

	"go.uber.org/zap"
)

// buildLogger returns a file-backed logger when a debug log path is
// configured, and a no-op logger otherwise. The TUI owns the terminal, so
// nothing may write to stderr while it runs.
func buildLogger(path string) (*zap.Logger, error) {
	if strings.TrimSpace(path) == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}
