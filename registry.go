package hydrogen

import "sync"

// stagingSet is an ordered insertion buffer of Connections awaiting
// promotion into the live registry. The acceptor inserts; the event
// loop drains it wholesale once per wait cycle. A mutex-guarded slice
// drained in bulk, simplified here since there is no scavenging
// concern: every staged Connection is either promoted or condemned,
// never merely forgotten.
type stagingSet struct {
	mu   sync.Mutex
	conn []*Connection
}

func newStagingSet(capacity int) *stagingSet {
	return &stagingSet{conn: make([]*Connection, 0, capacity)}
}

// insert appends a newly accepted Connection. No wake-up is signaled;
// the event loop polls this set once per epoll_wait cycle.
func (s *stagingSet) insert(c *Connection) {
	s.mu.Lock()
	s.conn = append(s.conn, c)
	s.mu.Unlock()
}

// drain removes and returns all currently staged Connections in
// insertion order, replacing the backing slice to minimize lock hold
// time.
func (s *stagingSet) drain() []*Connection {
	s.mu.Lock()
	if len(s.conn) == 0 {
		s.mu.Unlock()
		return nil
	}
	out := s.conn
	s.conn = make([]*Connection, 0, cap(out))
	s.mu.Unlock()
	return out
}

// liveRegistry is the indexed container of Connections currently armed
// with the kernel. Only the event-loop goroutine mutates or reads it
// directly; workers reach their Connection through the reference they
// already hold from the dispatched I/O work item, never through this
// registry.
type liveRegistry struct {
	byFD map[int]*Connection
}

func newLiveRegistry(capacity int) *liveRegistry {
	return &liveRegistry{byFD: make(map[int]*Connection, capacity)}
}

func (r *liveRegistry) insert(c *Connection) { r.byFD[c.fd] = c }

func (r *liveRegistry) remove(fd int) { delete(r.byFD, fd) }

func (r *liveRegistry) lookup(fd int) (*Connection, bool) {
	c, ok := r.byFD[fd]
	return c, ok
}

// all returns every live Connection. Used by the reap pass and by
// closeAll, which need a stable snapshot to iterate while removing
// entries.
func (r *liveRegistry) all() []*Connection {
	out := make([]*Connection, 0, len(r.byFD))
	for _, c := range r.byFD {
		out = append(out, c)
	}
	return out
}

func (r *liveRegistry) len() int { return len(r.byFD) }
