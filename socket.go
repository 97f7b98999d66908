package hydrogen

import "golang.org/x/sys/unix"

// Socket is the capability exposed to a Handler during OnDataReceived.
// It is bound to one Connection; handlers may retain clones to push
// data outside the callback.
type Socket struct {
	conn  *Connection
	rearm rearmFunc
}

func newSocket(c *Connection, rearm rearmFunc) *Socket {
	return &Socket{conn: c, rearm: rearm}
}

// Send acquires the write-serialisation lock and calls stream.Send(buf).
// On would-block it requests a future write pass via the re-arm
// primitive; on any other error it latches the error onto the
// Connection. Safe to call from any goroutine at any time; ordering
// between concurrent senders is the write lock's acquisition order.
func (s *Socket) Send(buf []byte) {
	s.conn.writeMu.Lock()
	err := s.conn.stream.Send(buf)
	s.conn.writeMu.Unlock()

	if err == nil {
		return
	}
	if err == ErrWouldBlock {
		s.rearm(s.conn, uint32(unix.EPOLLOUT))
		return
	}
	s.conn.latchError(StageSend, err)
}

// Shutdown requests an orderly close of the underlying stream.
func (s *Socket) Shutdown() error {
	return s.conn.stream.Shutdown()
}

// FD returns the underlying descriptor, for identification/logging.
func (s *Socket) FD() int { return s.conn.fd }

// Clone produces an independent handle over the same Connection.
func (s *Socket) Clone() *Socket {
	return &Socket{conn: s.conn, rearm: s.rearm}
}
