package hydrogen

import (
	"errors"
	"fmt"
)

// Stages at which a per-connection error can originate, recorded on
// LatchedError for diagnostic logging.
const (
	StageRecv    = "recv"
	StageSend    = "send"
	StageArm     = "arm"
	StageRearm   = "rearm"
	StageHangup  = "hangup"
	StageHandler = "handler"
)

// ErrConnectionAborted is latched when the kernel reports an error,
// hang-up, or peer-hangup condition, or when a readiness event carries
// neither a readable nor a writable bit.
var ErrConnectionAborted = errors.New("hydrogen: connection aborted")

// ErrListenerSetup is returned (never latched) when the listening socket
// cannot be created; this is a fatal-setup error.
var ErrListenerSetup = errors.New("hydrogen: listener setup failed")

// ErrPollerSetup is returned when the kernel epoll instance (or its wake
// eventfd) cannot be created; this is a fatal-setup error. A failing
// epoll_wait is not returned: the event loop panics instead.
var ErrPollerSetup = errors.New("hydrogen: poller setup failed")

// ErrServerClosed is returned by operations attempted after Server.Close.
var ErrServerClosed = errors.New("hydrogen: server closed")

// ErrNilHandler is returned by New when handler is nil.
var ErrNilHandler = errors.New("hydrogen: handler must not be nil")

// LatchedError wraps a per-connection error with the stage that produced
// it, so on_connection_removed and logging can distinguish a stream
// failure from a kernel arm/rearm failure without string matching.
type LatchedError struct {
	Stage string
	Err   error
}

func (e *LatchedError) Error() string {
	if e.Stage == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Stage, e.Err.Error())
}

func (e *LatchedError) Unwrap() error { return e.Err }

// latch wraps err with its originating stage. A nil err yields a nil
// *LatchedError error value is avoided by the caller; latch is only ever
// called with a non-nil err.
func latch(stage string, err error) *LatchedError {
	return &LatchedError{Stage: stage, Err: err}
}

// WrapError wraps an error with a message and cause, matching the
// convention used throughout this package for annotated propagation.
func WrapError(message string, cause error) error {
	return fmt.Errorf("%s: %w", message, cause)
}

// isInformationalEOF reports whether err represents an expected
// end-of-stream condition (unexpected-EOF, connection-reset,
// connection-aborted) that should be logged at a lower severity than a
// genuinely unexpected recv error.
func isInformationalEOF(err error) bool {
	return errors.Is(err, errConnReset) ||
		errors.Is(err, errConnAborted) ||
		errors.Is(err, errUnexpectedEOF)
}
