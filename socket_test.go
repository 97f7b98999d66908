package hydrogen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestSocket_SendSuccess(t *testing.T) {
	stream := &fakeStream{}
	c := newConnection(1, stream)
	var rearmed []uint32
	s := newSocket(c, func(_ *Connection, extra uint32) { rearmed = append(rearmed, extra) })

	s.Send([]byte("hello"))

	require.Len(t, stream.sent, 1)
	assert.Equal(t, []byte("hello"), stream.sent[0])
	assert.Empty(t, rearmed)
	assert.False(t, c.condemned())
}

func TestSocket_SendWouldBlockRearmsForWrite(t *testing.T) {
	stream := &fakeStream{sendErr: ErrWouldBlock}
	c := newConnection(1, stream)
	var rearmed []uint32
	s := newSocket(c, func(_ *Connection, extra uint32) { rearmed = append(rearmed, extra) })

	s.Send([]byte("hello"))

	require.Len(t, rearmed, 1)
	assert.Equal(t, uint32(unix.EPOLLOUT), rearmed[0])
	assert.False(t, c.condemned())
}

func TestSocket_SendOtherErrorLatches(t *testing.T) {
	boom := errors.New("boom")
	stream := &fakeStream{sendErr: boom}
	c := newConnection(1, stream)
	s := newSocket(c, func(*Connection, uint32) {})

	s.Send(nil)

	require.True(t, c.condemned())
	var latched *LatchedError
	require.ErrorAs(t, c.condemnedError(), &latched)
	assert.Equal(t, StageSend, latched.Stage)
}

func TestSocket_CloneSharesConnection(t *testing.T) {
	c := newConnection(11, &fakeStream{})
	s := newSocket(c, func(*Connection, uint32) {})
	clone := s.Clone()

	assert.Equal(t, s.FD(), clone.FD())
	assert.Same(t, c, clone.conn)
}

func TestSocket_Shutdown(t *testing.T) {
	stream := &fakeStream{}
	c := newConnection(1, stream)
	s := newSocket(c, func(*Connection, uint32) {})

	require.NoError(t, s.Shutdown())
	assert.Equal(t, 1, stream.shutdownCalls)
}
