package hydrogen

import (
	"net"

	"golang.org/x/sys/unix"
)

// listenTCP creates, binds, and listens on a raw blocking TCP socket
// bound to addr:port, returning its descriptor. The socket is handed to
// the accept loop and to Handler.OnServerCreated, never wrapped in
// net.Listener: the engine owns raw descriptors end to end so the
// Connection's fd can be registered directly with epoll.
func listenTCP(addr string, port int) (int, error) {
	ip := net.ParseIP(addr)
	if ip == nil {
		ip = net.IPv4zero
	}

	var domain int
	var sa unix.Sockaddr
	if ip4 := ip.To4(); ip4 != nil {
		domain = unix.AF_INET
		var a [4]byte
		copy(a[:], ip4)
		sa = &unix.SockaddrInet4{Port: port, Addr: a}
	} else {
		domain = unix.AF_INET6
		var a [16]byte
		copy(a[:], ip.To16())
		sa = &unix.SockaddrInet6{Port: port, Addr: a}
	}

	// The listening socket itself stays blocking: accept(2) blocking is
	// how the acceptor goroutine parks without busy-spinning. Only the
	// per-connection descriptors accept4 returns are non-blocking,
	// required for correct edge-triggered epoll semantics.
	fd, err := unix.Socket(domain, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return -1, WrapError("socket", err)
	}

	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		_ = unix.Close(fd)
		return -1, WrapError("setsockopt SO_REUSEADDR", err)
	}

	if err := unix.Bind(fd, sa); err != nil {
		_ = unix.Close(fd)
		return -1, WrapError("bind", err)
	}

	if err := unix.Listen(fd, unix.SOMAXCONN); err != nil {
		_ = unix.Close(fd)
		return -1, WrapError("listen", err)
	}

	return fd, nil
}

// acceptor is the dedicated goroutine that accepts connections on the
// listening descriptor and stages them for promotion.
type acceptor struct {
	listenFD int
	handler  Handler
	staging  *stagingSet
	done     chan struct{}
}

func newAcceptor(listenFD int, handler Handler, staging *stagingSet) *acceptor {
	return &acceptor{listenFD: listenFD, handler: handler, staging: staging, done: make(chan struct{})}
}

// run blocks in an accept loop until the listening socket is shut down
// (accept then fails with EBADF or EINVAL). Other accept errors are
// logged and the loop continues; only setup errors (already surfaced by
// listenTCP) are fatal to the process.
func (a *acceptor) run() {
	defer close(a.done)
	for {
		fd, _, err := unix.Accept4(a.listenFD, unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			if err == unix.EBADF || err == unix.EINVAL {
				// listening socket was shut down out from under us: Server.Close.
				return
			}
			logger().Warning().Str("component", "acceptor").Err(err).Log("accept failed")
			continue
		}

		stream, err := a.handler.OnNewConnection(fd)
		if err != nil {
			logger().Warning().Str("component", "acceptor").Int("fd", fd).Err(err).Log("handler rejected new connection")
			_ = unix.Close(fd)
			continue
		}

		a.staging.insert(newConnection(fd, stream))
	}
}
