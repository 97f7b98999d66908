//go:build linux

package hydrogen

import (
	"golang.org/x/sys/unix"
)

// maxEventsPerWait bounds both the epoll_wait event buffer and the I/O
// work queue's capacity hint.
const maxEventsPerWait = 100

// waitTimeoutMillis bounds epoll_wait so reaping and promotion run at
// least once per second even under no readiness traffic.
const waitTimeoutMillis = 1000

// defaultInterestMask is the mask every Connection is armed and
// re-armed with: readable, peer-hangup, edge-triggered, one-shot.
const defaultInterestMask = unix.EPOLLIN | unix.EPOLLRDHUP | unix.EPOLLET | unix.EPOLLONESHOT

// poller wraps a single epoll instance. It is owned exclusively by the
// EventLoop: besides initial registration at promotion (poller.add) and
// the re-arm primitive (poller.rearm), nothing else touches the kernel
// side of an existing descriptor.
type poller struct {
	epfd int
}

func newPoller() (*poller, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, WrapError("epoll_create1", err)
	}
	return &poller{epfd: epfd}, nil
}

func (p *poller) close() error {
	return unix.Close(p.epfd)
}

// add registers fd under the default interest mask.
func (p *poller) add(fd int) error {
	ev := unix.EpollEvent{Events: uint32(defaultInterestMask), Fd: int32(fd)}
	return unix.EpollCtl(p.epfd, unix.EPOLL_CTL_ADD, fd, &ev)
}

// rearm re-registers fd with the default mask OR'd with extra bits
// (e.g. EPOLLOUT when a write left a backlog), preserving edge-triggered
// and one-shot.
func (p *poller) rearm(fd int, extra uint32) error {
	ev := unix.EpollEvent{Events: uint32(defaultInterestMask) | extra, Fd: int32(fd)}
	return unix.EpollCtl(p.epfd, unix.EPOLL_CTL_MOD, fd, &ev)
}

// addControlFD registers a control descriptor (the wake eventfd) under
// plain level-triggered readable interest — it is not a Connection and
// does not participate in the one-shot re-arm protocol.
func (p *poller) addControlFD(fd int) error {
	ev := unix.EpollEvent{Events: unix.EPOLLIN, Fd: int32(fd)}
	return unix.EpollCtl(p.epfd, unix.EPOLL_CTL_ADD, fd, &ev)
}

// del removes fd from the interest list. Errors are not actionable: by
// the time this is called the descriptor is about to be (or already)
// closed, which implicitly drops kernel interest anyway.
func (p *poller) del(fd int) {
	_ = unix.EpollCtl(p.epfd, unix.EPOLL_CTL_DEL, fd, nil)
}

// wait blocks for up to waitTimeoutMillis and returns the ready events,
// reusing buf as scratch space.
func (p *poller) wait(buf []unix.EpollEvent) ([]unix.EpollEvent, error) {
	n, err := unix.EpollWait(p.epfd, buf, waitTimeoutMillis)
	if err != nil {
		if err == unix.EINTR {
			return nil, nil
		}
		return nil, err
	}
	return buf[:n], nil
}
