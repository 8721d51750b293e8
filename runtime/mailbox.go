package runtime

import (
	"context"
	"sync"
)

type task struct {
	// droppable tasks may be refused when the backlog is full.
	droppable bool
	run       func(ctx context.Context)
}

// mailbox is an unbounded FIFO of tasks with a wake-up signal.
// push never blocks so callers on the request path are never held by a slow fan-out.
type mailbox struct {
	mu     sync.Mutex
	queue  []task
	notify chan struct{}
}

func newMailbox() *mailbox {
	return &mailbox{notify: make(chan struct{}, 1)}
}

func (m *mailbox) push(t task, limit int) bool {
	m.mu.Lock()
	if t.droppable && limit > 0 && len(m.queue) >= limit {
		m.mu.Unlock()
		return false
	}
	m.queue = append(m.queue, t)
	m.mu.Unlock()

	select {
	case m.notify <- struct{}{}:
	default:
	}
	return true
}

func (m *mailbox) pop() (task, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.queue) == 0 {
		return task{}, false
	}
	t := m.queue[0]
	m.queue[0] = task{}
	m.queue = m.queue[1:]
	return t, true
}

func (m *mailbox) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}
