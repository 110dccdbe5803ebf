package pxscale

import (
	"log/slog"
	"sync/atomic"
)

// silent drops every record; its handler reports every level as disabled, so
// log calls on it never format their attributes.
var silent = slog.New(slog.DiscardHandler)

var logger atomic.Pointer[slog.Logger]

func init() { logger.Store(silent) }

// SetLogger routes pxscale diagnostics to l. The library is silent until
// SetLogger is called; nil makes it silent again. The registered
// GPUAccelerator, if any, receives l as well.
//
// Records by level:
//   - [slog.LevelDebug]: which path ran, source, intermediate and output sizes
//   - [slog.LevelInfo]: accelerator registration and GPU adapter selection
//   - [slog.LevelWarn]: hardware to software and fractional to nearest fallbacks
//
// Example:
//
//	pxscale.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
//
// A single call can log elsewhere with WithLogger.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	logger.Store(l)
	if a := Accelerator(); a != nil {
		propagateLogger(a, l)
	}
}

// Logger returns the logger set by SetLogger. The gpu and view packages log
// through it.
func Logger() *slog.Logger { return logger.Load() }

func propagateLogger(a GPUAccelerator, l *slog.Logger) {
	if s, ok := a.(interface{ SetLogger(*slog.Logger) }); ok {
		s.SetLogger(l)
	}
}
