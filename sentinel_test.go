package hydrogen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIOSentinel_DrainsQueueAndRunsWorkItem(t *testing.T) {
	h := newFakeHandler()
	loop, _, queue, pool := newTestEventLoop(t, h)
	defer loop.closeAll()

	stream := &fakeStream{recvResults: [][]any{{"hi"}}}
	c := newConnection(77, stream)
	queue.push(ioWorkItem{class: eventReadable, conn: c})

	s := newIOSentinel(queue, pool, loop)
	go s.run()
	defer s.close()

	require.Eventually(t, func() bool { return h.receivedCount() == 1 }, time.Second, time.Millisecond)
}

func TestIOSentinel_CloseStopsRun(t *testing.T) {
	h := newFakeHandler()
	loop, _, queue, pool := newTestEventLoop(t, h)
	defer loop.closeAll()

	s := newIOSentinel(queue, pool, loop)
	go s.run()
	s.close()

	select {
	case <-s.done:
	case <-time.After(2 * time.Second):
		t.Fatal("sentinel did not stop after close")
	}
}
