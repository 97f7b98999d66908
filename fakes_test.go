package hydrogen

import "sync"

// fakeStream is a scriptable Stream double used across the package's
// tests. recvResults[i]/recvErrs[i] are returned by the i-th call to Recv
// (once both are exhausted, Recv reports ErrWouldBlock); sendErr is
// returned verbatim by Send and every buf passed to it is recorded.
type fakeStream struct {
	mu sync.Mutex

	recvResults [][]any
	recvErrs    []error
	recvCalls   int

	sendErr   error
	sent      [][]byte
	sendCalls int

	shutdownErr   error
	shutdownCalls int
}

func (f *fakeStream) Recv() ([]any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.recvCalls
	f.recvCalls++
	if i < len(f.recvResults) || i < len(f.recvErrs) {
		var msgs []any
		if i < len(f.recvResults) {
			msgs = f.recvResults[i]
		}
		var err error
		if i < len(f.recvErrs) {
			err = f.recvErrs[i]
		}
		return msgs, err
	}
	return nil, ErrWouldBlock
}

func (f *fakeStream) Send(buf []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sendCalls++
	f.sent = append(f.sent, buf)
	return f.sendErr
}

func (f *fakeStream) Shutdown() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shutdownCalls++
	return f.shutdownErr
}

// fakeHandler is a scriptable Handler double recording every callback.
type fakeHandler struct {
	mu sync.Mutex

	serverCreatedFDs []int

	newConnFD     map[int]Stream
	newConnErr    map[int]error
	newConnCalled []int

	received []fakeReceived

	removed []fakeRemoved
}

type fakeReceived struct {
	socket  *Socket
	message any
}

type fakeRemoved struct {
	fd  int
	err error
}

func newFakeHandler() *fakeHandler {
	return &fakeHandler{
		newConnFD:  make(map[int]Stream),
		newConnErr: make(map[int]error),
	}
}

func (h *fakeHandler) OnServerCreated(listenFD int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.serverCreatedFDs = append(h.serverCreatedFDs, listenFD)
}

func (h *fakeHandler) OnNewConnection(fd int) (Stream, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.newConnCalled = append(h.newConnCalled, fd)
	return h.newConnFD[fd], h.newConnErr[fd]
}

func (h *fakeHandler) OnDataReceived(socket *Socket, message any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.received = append(h.received, fakeReceived{socket: socket, message: message})
}

func (h *fakeHandler) OnConnectionRemoved(fd int, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removed = append(h.removed, fakeRemoved{fd: fd, err: err})
}

func (h *fakeHandler) removedCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.removed)
}

func (h *fakeHandler) receivedCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.received)
}

func (h *fakeHandler) newConnCalledCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.newConnCalled)
}
