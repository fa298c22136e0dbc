// Package logging configures the shared zap logger. The TUI owns stdout, so
// interactive runs log to a file under the user state directory; one-shot
// CLI commands log to stderr.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Categories used with Named(); keeps log lines grep-able per subsystem.
const (
	CategoryBoot    = "boot"
	CategoryCatalog = "catalog"
	CategoryCart    = "cart"
	CategoryGateway = "gateway"
	CategoryMedia   = "media"
	CategoryUI      = "ui"
)

// NewCLI builds a stderr logger for one-shot commands.
func NewCLI(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}
	return logger, nil
}

// NewFile builds a file logger under dir for interactive runs. When debug is
// false a no-op logger is returned so normal sessions write nothing.
func NewFile(dir string, debug bool) (*zap.Logger, error) {
	if !debug {
		return zap.NewNop(), nil
	}
	logsDir := filepath.Join(dir, "logs")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.OutputPaths = []string{filepath.Join(logsDir, "lumina.log")}
	cfg.ErrorOutputPaths = cfg.OutputPaths
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("initialize file logger: %w", err)
	}
	return logger, nil
}
