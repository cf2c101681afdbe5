package tui

import (
	"sync/atomic"

	"github.com/odvcencio/furry-feed/reactive"
)

// QueueScheduler enqueues container callbacks and wakes the app to run
// them on the UI goroutine.
type QueueScheduler struct {
	queue   *reactive.Queue
	post    PostFunc
	pending atomic.Bool
}

// NewQueueScheduler wires a queue to a post function.
func NewQueueScheduler(queue *reactive.Queue, post PostFunc) *QueueScheduler {
	if queue == nil {
		queue = reactive.NewQueue()
	}
	return &QueueScheduler{queue: queue, post: post}
}

// Schedule enqueues fn and posts one flush message per batch.
func (s *QueueScheduler) Schedule(fn func()) {
	if s == nil || fn == nil {
		return
	}
	s.queue.Schedule(fn)
	if s.post == nil {
		return
	}
	if s.pending.CompareAndSwap(false, true) {
		if !s.post(QueueFlushMsg{}) {
			s.pending.Store(false)
		}
	}
}

// Flush runs queued callbacks and re-arms the flush message.
func (s *QueueScheduler) Flush() int {
	if s == nil {
		return 0
	}
	s.pending.Store(false)
	return s.queue.Flush()
}

// Invalidator posts an invalidate message with coalescing.
type Invalidator struct {
	post    PostFunc
	pending atomic.Bool
}

// NewInvalidator creates an invalidator wired to a post function.
func NewInvalidator(post PostFunc) *Invalidator {
	return &Invalidator{post: post}
}

// Invalidate requests a render pass.
func (i *Invalidator) Invalidate() {
	if i == nil || i.post == nil {
		return
	}
	if i.pending.CompareAndSwap(false, true) {
		if !i.post(InvalidateMsg{}) {
			i.pending.Store(false)
		}
	}
}

func (i *Invalidator) resetPending() {
	if i != nil {
		i.pending.Store(false)
	}
}

var _ reactive.Scheduler = (*QueueScheduler)(nil)
