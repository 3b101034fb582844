package parallel

import "sync/atomic"

// Queue is the bounded, multi-producer/multi-consumer FIFO of Subproblems
// for a single search depth (§4.E). A worker claims the right to be this
// depth's producer with WantProducer, seeds the queue (directly, or by
// stealing from shallower depths' steal points), then calls
// ProducerDone so DequeueBlocking can report end-of-work once the queue
// drains instead of blocking forever.
type Queue struct {
	ch      chan Subproblem
	claimed atomic.Bool
}

// NewQueue returns a queue with the given buffer capacity.
func NewQueue(capacity int) *Queue {
	return &Queue{ch: make(chan Subproblem, capacity)}
}

// WantProducer atomically claims the producer slot for this queue; it
// returns true for exactly one caller.
func (q *Queue) WantProducer() bool {
	return q.claimed.CompareAndSwap(false, true)
}

// Enqueue adds a subproblem. Safe to call from the producer only.
func (q *Queue) Enqueue(sp Subproblem) {
	q.ch <- sp
}

// ProducerDone closes the queue once the producer has enqueued everything
// it will: once drained, DequeueBlocking reports no more work instead of
// blocking.
func (q *Queue) ProducerDone() {
	close(q.ch)
}

// DequeueBlocking blocks until a subproblem is available or the queue has
// been both marked done and drained, in which case it returns
// (Subproblem{}, false).
func (q *Queue) DequeueBlocking() (Subproblem, bool) {
	sp, ok := <-q.ch
	return sp, ok
}
