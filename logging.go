// logging.go - structured logging for the hydrogen engine.
//
// Logging is a package-level concern: the engine has exactly one
// logging configuration regardless of how many Server instances an
// embedder runs, mirroring the eventloop package this engine is modeled
// on. SetLogger installs a github.com/joeycumines/logiface logger (e.g.
// backed by github.com/joeycumines/stumpy for JSON output); until one is
// installed, log calls are no-ops.
package hydrogen

import (
	"os"
	"sync"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

var globalLogger struct {
	sync.RWMutex
	logger *logiface.Logger[logiface.Event]
}

// SetLogger installs the structured logger used by the engine. Passing
// nil restores the no-op default.
func SetLogger(l *logiface.Logger[logiface.Event]) {
	globalLogger.Lock()
	defer globalLogger.Unlock()
	globalLogger.logger = l
}

// NewDefaultLogger returns a stumpy-backed JSON logger writing to
// os.Stderr at the given minimum level, suitable for passing to
// SetLogger. It exists purely as a convenience default; embedders with
// their own logiface backend (zerolog, slog, logrus) should construct
// their own *logiface.Logger instead.
func NewDefaultLogger(level logiface.Level) *logiface.Logger[logiface.Event] {
	return stumpy.L.New(
		stumpy.L.WithStumpy(stumpy.WithWriter(os.Stderr)),
		stumpy.L.WithLevel(level),
	).Logger()
}

func logger() *logiface.Logger[logiface.Event] {
	globalLogger.RLock()
	defer globalLogger.RUnlock()
	if globalLogger.logger != nil {
		return globalLogger.logger
	}
	return nopLogger
}

var nopLogger = logiface.New[logiface.Event]().Logger()
