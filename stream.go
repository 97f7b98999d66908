package hydrogen

import (
	"errors"
	"io"
	"syscall"
)

// Stream is the byte-stream capability supplied by the embedder for
// each accepted connection. It owns read/write buffers and performs
// non-blocking framing against the underlying descriptor; encryption,
// if any, is entirely the Stream's concern.
type Stream interface {
	// Recv reads and decodes until would-block or error, returning all
	// complete messages produced during this call. It must not block.
	Recv() ([]any, error)

	// Send enqueues buf and attempts to flush. An empty buf means
	// "flush whatever is already buffered internally" and must never
	// add bytes to the outbound stream. It must not block; a full
	// kernel send buffer is reported as ErrWouldBlock.
	Send(buf []byte) error

	// Shutdown requests an orderly close of the stream.
	Shutdown() error
}

// ErrWouldBlock is returned by Stream.Recv/Send when the operation
// cannot complete without blocking.
var ErrWouldBlock = errors.New("hydrogen: would block")

// Sentinel causes recognized as informational-EOF: expected
// end-of-stream indications that are latched but logged at lower
// severity than a genuinely unexpected recv error.
var (
	errConnReset     = syscall.ECONNRESET
	errConnAborted   = syscall.ECONNABORTED
	errUnexpectedEOF = io.ErrUnexpectedEOF
)
