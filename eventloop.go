package hydrogen

import (
	"golang.org/x/sys/unix"
)

// eventLoop owns the kernel readiness instance and performs, each
// iteration, in order: reap, promote, wait, classify.
type eventLoop struct {
	poller  *poller
	wake    *wakeFD
	staging *stagingSet
	live    *liveRegistry
	queue   *ioWorkQueue
	pool    *workerPool
	handler Handler

	eventBuf []unix.EpollEvent
	stopping bool
	done     chan struct{}
}

func newEventLoop(staging *stagingSet, queue *ioWorkQueue, pool *workerPool, handler Handler, preAllocated int) (*eventLoop, error) {
	p, err := newPoller()
	if err != nil {
		return nil, err
	}
	w, err := newWakeFD()
	if err != nil {
		_ = p.close()
		return nil, err
	}
	if err := p.addControlFD(w.fd); err != nil {
		_ = w.close()
		_ = p.close()
		return nil, WrapError("register wake fd", err)
	}
	return &eventLoop{
		poller:   p,
		wake:     w,
		staging:  staging,
		live:     newLiveRegistry(preAllocated),
		queue:    queue,
		pool:     pool,
		handler:  handler,
		eventBuf: make([]unix.EpollEvent, maxEventsPerWait),
		done:     make(chan struct{}),
	}, nil
}

// stop requests the loop to exit and interrupts a blocked epoll_wait.
func (l *eventLoop) stop() {
	l.stopping = true
	l.wake.signal()
}

func (l *eventLoop) run() {
	defer close(l.done)
	for !l.stopping {
		l.reap()
		l.promote()

		events, err := l.poller.wait(l.eventBuf)
		if err != nil {
			logger().Crit().Err(err).Log("epoll_wait failed, terminating")
			panic(WrapError("epoll_wait", err))
		}
		l.classify(events)
	}
	l.closeAll()
}

// reap walks the live registry; any Connection whose error slot is
// latched is removed, its descriptor closed, and on_connection_removed
// dispatched onto the worker pool without blocking this goroutine —
// workers must never stall promotion or the next epoll_wait.
func (l *eventLoop) reap() {
	for _, c := range l.live.all() {
		if !c.condemned() {
			continue
		}
		l.live.remove(c.fd)
		l.poller.del(c.fd)
		_ = unix.Close(c.fd)

		err := c.condemnedError()
		fd := c.fd
		l.pool.dispatchAsync(func() {
			l.handler.OnConnectionRemoved(fd, err)
		})

		if isInformationalEOF(err) {
			logger().Info().Int("fd", fd).Err(err).Log("connection removed")
		} else {
			logger().Err().Int("fd", fd).Err(err).Log("connection removed")
		}
	}
}

// promote drains the staging set and registers each Connection with the
// kernel under the default mask. A registration failure latches the
// error immediately; the next iteration's reap picks it up.
func (l *eventLoop) promote() {
	for _, c := range l.staging.drain() {
		l.live.insert(c)
		if err := l.poller.add(c.fd); err != nil {
			c.latchError(StageArm, err)
		}
	}
}

// classify derives an event class from each ready event's mask and
// enqueues one ioWorkItem per Connection event, or latches
// ErrConnectionAborted and skips queueing for error/hangup events.
func (l *eventLoop) classify(events []unix.EpollEvent) {
	for _, ev := range events {
		fd := int(ev.Fd)
		if fd == l.wake.fd {
			l.wake.drain()
			continue
		}

		c, ok := l.live.lookup(fd)
		if !ok {
			logger().Warning().Int("fd", fd).Log("event for unregistered fd")
			continue
		}

		if ev.Events&(unix.EPOLLERR|unix.EPOLLHUP|unix.EPOLLRDHUP) != 0 {
			c.latchError(StageHangup, ErrConnectionAborted)
			continue
		}

		readable := ev.Events&unix.EPOLLIN != 0
		writable := ev.Events&unix.EPOLLOUT != 0
		if !readable && !writable {
			c.latchError(StageHangup, ErrConnectionAborted)
			continue
		}

		var class eventClass
		switch {
		case readable && writable:
			class = eventReadableAndWritable
		case readable:
			class = eventReadable
		default:
			class = eventWritable
		}

		l.queue.push(ioWorkItem{class: class, conn: c})
	}
}

// rearm is the EventLoop-owned implementation of the re-arm primitive,
// bound into rearmFunc values handed to workers and sockets.
func (l *eventLoop) rearm(c *Connection, extraBits uint32) {
	if err := l.poller.rearm(c.fd, extraBits); err != nil {
		c.latchError(StageRearm, err)
	}
}

func (l *eventLoop) closeAll() {
	for _, c := range l.live.all() {
		l.live.remove(c.fd)
		l.poller.del(c.fd)
		_ = unix.Close(c.fd)
	}
	_ = l.wake.close()
	_ = l.poller.close()
}
