package reactive

import "sync"

// Scheduler decides where a listener callback runs.
type Scheduler interface {
	Schedule(fn func())
}

type direct struct{}

func (direct) Schedule(fn func()) {
	if fn != nil {
		fn()
	}
}

// DirectScheduler runs fn on the publishing goroutine before returning.
var DirectScheduler Scheduler = direct{}

// Queue holds callbacks until its owner calls Flush. Schedule may be called
// from any goroutine; Flush belongs to the owning loop.
type Queue struct {
	mu  sync.Mutex
	buf []func()
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return new(Queue)
}

func (q *Queue) Schedule(fn func()) {
	if q == nil || fn == nil {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.buf = append(q.buf, fn)
}

// Len is the number of callbacks waiting for Flush.
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.buf)
}

// Flush drains the queue in FIFO order and reports how many callbacks ran.
// Anything scheduled by those callbacks waits for the next Flush.
func (q *Queue) Flush() int {
	if q == nil {
		return 0
	}
	q.mu.Lock()
	batch := q.buf
	q.buf = nil
	q.mu.Unlock()

	for i := range batch {
		batch[i]()
		batch[i] = nil
	}
	return len(batch)
}
