// Package common provides logger setup and build metadata shared by the
// command line tools.
package common

import (
	"log/slog"
	"os"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// PackageName tags log output of this project's tools.
const PackageName = "mdm-cert-reconciler"

// LoggingOpts configures SetupLogger.
type LoggingOpts struct {
	// Debug lowers the handler level to debug.
	Debug bool
	// JSON switches to the JSON handler.
	JSON bool
	// Service is added as a 'service' attribute when set.
	Service string
	// Version is added as a 'version' attribute when set.
	Version string
}

// SetupLogger creates the process logger. Components receive it explicitly
// by reference; nothing in this project logs through package-level state.
func SetupLogger(opts *LoggingOpts) *slog.Logger {
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}

	logger := slog.New(handler)
	if opts.Service != "" {
		logger = logger.With(slog.String("service", opts.Service))
	}
	if opts.Version != "" {
		logger = logger.With(slog.String("version", opts.Version))
	}
	return logger
}
