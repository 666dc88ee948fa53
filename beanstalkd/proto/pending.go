package proto

import (
	"github.com/1xyz/beanbag/beanstalkd/core"
	"sync"
)

// pendingQueue is the ordered list of commands written to the connection
// and still waiting for a reply.
//
// The server answers commands in the order it receives them, so the queue
// is strictly FIFO: Push appends at the tail, Pop removes from the head.
type pendingQueue struct {
	mu sync.Mutex

	q []*command

	// no pushes are accepted once sealed (after a quit), pops continue
	sealed bool

	// no pushes or pops once closed
	closed bool
}

func newPendingQueue() *pendingQueue {
	return &pendingQueue{
		mu: sync.Mutex{},
		q:  nil,
	}
}

// Push appends cmd at the tail. Returns ErrConnectionClosed if the queue
// is sealed or closed.
func (pq *pendingQueue) Push(cmd *command) error {
	pq.mu.Lock()
	defer pq.mu.Unlock()

	if pq.sealed || pq.closed {
		return core.ErrConnectionClosed
	}

	pq.q = append(pq.q, cmd)
	measurePending(len(pq.q))
	return nil
}

// Pop removes the oldest command. Returns false if the queue is empty
// or closed.
func (pq *pendingQueue) Pop() (*command, bool) {
	pq.mu.Lock()
	defer pq.mu.Unlock()

	if pq.closed || len(pq.q) == 0 {
		return nil, false
	}

	cmd := pq.q[0]
	pq.q[0] = nil
	pq.q = pq.q[1:]
	if len(pq.q) == 0 {
		pq.q = nil
	}

	measurePending(len(pq.q))
	return cmd, true
}

func (pq *pendingQueue) Len() int {
	pq.mu.Lock()
	defer pq.mu.Unlock()
	return len(pq.q)
}

// Seal stops accepting new commands while the ones already queued still
// wait for their replies. Returns false if the queue is already closed.
func (pq *pendingQueue) Seal() bool {
	pq.mu.Lock()
	defer pq.mu.Unlock()

	if pq.closed {
		return false
	}

	pq.sealed = true
	return true
}

// Close stops accepting new commands and returns everything still
// pending, oldest first. Subsequent calls return nil.
func (pq *pendingQueue) Close() []*command {
	pq.mu.Lock()
	defer pq.mu.Unlock()

	pq.closed = true
	result := pq.q
	pq.q = nil
	measurePending(0)
	return result
}
