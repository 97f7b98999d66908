package hydrogen

import (
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// Server wires together the acceptor, event loop, I/O sentinel, and
// worker pool described in the package documentation. Construct one with
// New, then call ListenAndServe.
type Server struct {
	cfg     config
	handler Handler

	listenFD int
	staging  *stagingSet
	queue    *ioWorkQueue
	pool     *workerPool
	loop     *eventLoop
	sentinel *ioSentinel
	acceptor *acceptor

	closeOnce sync.Once
	closed    chan struct{}
}

// New constructs a Server. The listening socket is not created until
// ListenAndServe is called.
func New(handler Handler, opts ...Option) (*Server, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	cfg := resolveOptions(opts)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Server{
		cfg:     cfg,
		handler: handler,
		closed:  make(chan struct{}),
	}, nil
}

// ListenAndServe binds the listening socket, starts the acceptor, event
// loop, I/O sentinel, and worker pool, and blocks until the acceptor
// exits (normally only in response to Close). Fatal setup errors (bind,
// listen, epoll_create) are returned directly rather than latched,
// wrapping ErrListenerSetup or ErrPollerSetup. Called after Close, it
// returns ErrServerClosed.
func (s *Server) ListenAndServe() error {
	select {
	case <-s.closed:
		return ErrServerClosed
	default:
	}

	applyProcessTuning(s.cfg)

	fd, err := listenTCP(s.cfg.addr, s.cfg.port)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrListenerSetup, err)
	}
	s.listenFD = fd

	s.handler.OnServerCreated(fd)

	s.staging = newStagingSet(s.cfg.preAllocated)
	s.queue = newIOWorkQueue()
	s.pool = newWorkerPool(s.cfg.maxThreads)

	loop, err := newEventLoop(s.staging, s.queue, s.pool, s.handler, s.cfg.preAllocated)
	if err != nil {
		_ = unix.Close(fd)
		s.pool.close()
		return fmt.Errorf("%w: %w", ErrPollerSetup, err)
	}
	s.loop = loop
	s.sentinel = newIOSentinel(s.queue, s.pool, s.loop)
	s.acceptor = newAcceptor(fd, s.handler, s.staging)

	go s.loop.run()
	go s.sentinel.run()

	logger().Info().Str("component", "server").Int("port", s.cfg.port).Log("server started")

	s.acceptor.run()
	return nil
}

// Close tears down the engine's own goroutines and descriptors: the
// acceptor stops (by shutting down the listening socket, which is then
// closed), the event loop is
// woken and closes every live descriptor, the sentinel stops, and the
// worker pool drains its task channel and exits. This is not graceful
// drain: in-flight reads/writes are not waited on before their
// descriptors are closed.
func (s *Server) Close() error {
	var err error
	s.closeOnce.Do(func() {
		if s.listenFD != 0 {
			// shutdown, not close: unblocks a thread parked in accept(2)
			// without the close-from-another-thread race close(2) would
			// have on a still-in-use descriptor.
			err = unix.Shutdown(s.listenFD, unix.SHUT_RDWR)
		}
		if s.acceptor != nil {
			<-s.acceptor.done
		}
		if s.listenFD != 0 {
			_ = unix.Close(s.listenFD)
		}
		if s.loop != nil {
			s.loop.stop()
			<-s.loop.done
		}
		if s.sentinel != nil {
			s.sentinel.close()
			<-s.sentinel.done
		}
		if s.pool != nil {
			s.pool.close()
		}
		close(s.closed)
	})
	return err
}

// Done returns a channel closed once Close has completed.
func (s *Server) Done() <-chan struct{} { return s.closed }
