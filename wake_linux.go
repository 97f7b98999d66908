//go:build linux

package hydrogen

import "golang.org/x/sys/unix"

// wakeFD is an eventfd registered with the poller under plain
// level-triggered readable interest, used solely to interrupt a blocked
// epoll_wait so Server.Close doesn't have to wait out the 1s timeout.
// Built on unix.Eventfd.
type wakeFD struct {
	fd int
}

func newWakeFD() (*wakeFD, error) {
	fd, err := unix.Eventfd(0, unix.EFD_CLOEXEC|unix.EFD_NONBLOCK)
	if err != nil {
		return nil, WrapError("eventfd", err)
	}
	return &wakeFD{fd: fd}, nil
}

// signal wakes up anything blocked in epoll_wait on this fd.
func (w *wakeFD) signal() {
	var one [8]byte
	one[7] = 1
	_, _ = unix.Write(w.fd, one[:])
}

// drain clears the eventfd counter after a wake-triggered wait returns,
// so repeated wakes don't accumulate.
func (w *wakeFD) drain() {
	var buf [8]byte
	for {
		_, err := unix.Read(w.fd, buf[:])
		if err != nil {
			return
		}
	}
}

func (w *wakeFD) close() error {
	return unix.Close(w.fd)
}
