package hydrogen

import "sync"

// Connection is per-peer state shared by the event loop, the worker
// pool, and any outstanding Socket handles. Its lifetime is the longest
// of those holders: the struct itself is never pooled or reused, it is
// simply garbage collected once the last reference drops.
//
// The stream field is mutable but is only ever touched under writeMu
// (for sends) or under the single-consumer discipline one-shot
// readiness provides (for recv: only one read pass runs per Connection
// at a time, because the fd is disarmed until re-armed).
type Connection struct {
	fd     int
	stream Stream

	// writeMu totally orders outbound writes for this Connection: every
	// call to stream.Send, from either the worker pool's write pass or
	// a handler-initiated Socket.Send, holds it across the call.
	writeMu sync.Mutex

	errMu   sync.Mutex
	errSet  bool
	latched *LatchedError
}

func newConnection(fd int, stream Stream) *Connection {
	return &Connection{fd: fd, stream: stream}
}

// FD returns the underlying file descriptor, for identification/logging.
func (c *Connection) FD() int { return c.fd }

// latchError sets the error slot if it is not already set. Concurrent
// setters are permitted; only the first observed value is retained, and
// every caller after the first is a harmless no-op, satisfying the
// idempotent-latch invariant.
func (c *Connection) latchError(stage string, err error) {
	if err == nil {
		return
	}
	c.errMu.Lock()
	defer c.errMu.Unlock()
	if c.errSet {
		return
	}
	c.errSet = true
	c.latched = latch(stage, err)
}

// condemned reports whether the error slot has been latched.
func (c *Connection) condemned() bool {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	return c.errSet
}

// condemnedError returns the latched error, or nil if not condemned.
func (c *Connection) condemnedError() error {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	if !c.errSet {
		return nil
	}
	return c.latched
}
