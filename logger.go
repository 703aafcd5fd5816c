package textnode

import (
	"log/slog"
	"sync/atomic"
)

var logger atomic.Pointer[slog.Logger]

var discard = slog.New(slog.DiscardHandler)

func init() { logger.Store(discard) }

// SetLogger sets the logger shared by every textnode package. Nil restores
// the default, which discards everything. It may be called concurrently
// with logging.
//
// Debug records describe layout passes: attempts, the fitted font size,
// multi-length variant switches and relayout for a new render owner. Warn
// records report image loads that failed, once per URL and cache, and use
// of a line accessor outside a layout pass.
//
//	textnode.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//		Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = discard
	}
	logger.Store(l)
}

// Logger returns the logger set by SetLogger.
func Logger() *slog.Logger { return logger.Load() }
