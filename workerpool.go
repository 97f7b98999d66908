package hydrogen

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sys/unix"
)

// workerPool is a fixed-size pool of goroutines that executes dispatched
// closures: the read/write passes the sentinel hands it, and the
// connection-removed notifications the event loop's reap hands it.
type workerPool struct {
	tasks    chan func()
	wg       sync.WaitGroup
	overflow sync.WaitGroup
}

func newWorkerPool(size int) *workerPool {
	p := &workerPool{tasks: make(chan func(), size*4)}
	p.wg.Add(size)
	for i := 0; i < size; i++ {
		go func() {
			defer p.wg.Done()
			for task := range p.tasks {
				task()
			}
		}()
	}
	return p
}

// dispatch enqueues task for execution on the pool. Blocking send is
// intentional: it is FIFO backpressure against the queue that fed it.
func (p *workerPool) dispatch(task func()) {
	p.tasks <- task
}

// dispatchAsync enqueues task without ever blocking the caller, even
// when the pool's channel is saturated. The fast path is a non-blocking
// send; if that would block, a dedicated goroutine takes the blocking
// send instead. Use this for notifications the caller must not stall
// on, such as the event loop's reap dispatching on-connection-removed
// between its reads of the staging set and the kernel.
func (p *workerPool) dispatchAsync(task func()) {
	select {
	case p.tasks <- task:
	default:
		p.overflow.Add(1)
		go func() {
			defer p.overflow.Done()
			p.tasks <- task
		}()
	}
}

func (p *workerPool) close() {
	p.overflow.Wait()
	close(p.tasks)
	p.wg.Wait()
}

// runIOWorkItem executes the write pass then the read pass for the
// classes requested by item, in that order, then re-arms with the
// accumulated mask if neither pass aborted.
func runIOWorkItem(item ioWorkItem, loop *eventLoop) {
	c := item.conn
	var rearmBits uint32
	aborted := false

	if item.class.wantsWrite() {
		bits, ok := writePass(c)
		if !ok {
			aborted = true
		} else {
			rearmBits |= bits
		}
	}

	if !aborted && item.class.wantsRead() {
		bits, ok := readPass(c, loop.handler, loop.rearm)
		if !ok {
			aborted = true
		} else {
			rearmBits |= bits
		}
	}

	if aborted {
		return
	}
	loop.rearm(c, rearmBits)
}

// writePass flushes whatever the stream had buffered. Returns the
// re-arm bits to contribute and whether the pass succeeded (false means
// it latched an error and the task should abort without re-arming).
func writePass(c *Connection) (uint32, bool) {
	c.writeMu.Lock()
	err := c.stream.Send(nil)
	c.writeMu.Unlock()

	if err == nil {
		return 0, true
	}
	if err == ErrWouldBlock {
		return uint32(unix.EPOLLOUT), true
	}
	c.latchError(StageSend, err)
	return 0, false
}

// readPass drains recv() and delivers each decoded message to the
// handler synchronously, in order, before re-arming. A fresh Socket is
// constructed per call so handler-initiated sends route through the
// same write lock and re-arm primitive as the engine's own write pass.
// If such a send asks for the writable bit, the returned bits include
// EPOLLOUT too, so the task's final re-arm keeps that write interest.
func readPass(c *Connection, handler Handler, rearm rearmFunc) (uint32, bool) {
	messages, err := c.stream.Recv()
	if err == nil {
		var wantWrite atomic.Bool
		sockRearm := func(c *Connection, extraBits uint32) {
			if extraBits&uint32(unix.EPOLLOUT) != 0 {
				wantWrite.Store(true)
			}
			rearm(c, extraBits)
		}
		for _, msg := range messages {
			handler.OnDataReceived(newSocket(c, sockRearm), msg)
		}
		if wantWrite.Load() {
			return uint32(unix.EPOLLIN | unix.EPOLLOUT), true
		}
		return uint32(unix.EPOLLIN), true
	}

	if err == ErrWouldBlock {
		return uint32(unix.EPOLLIN), true
	}

	if isInformationalEOF(err) {
		c.latchError(StageRecv, err)
	} else {
		logger().Err().Int("fd", c.fd).Err(err).Log("unexpected error during recv")
		c.latchError(StageRecv, err)
	}
	return 0, false
}
