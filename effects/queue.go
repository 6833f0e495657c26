package effects

import "sync/atomic"

const queueSize = 1024

// Queue is a fixed-size lock-free ring of effect events. Posts are safe
// from any goroutine (CAS claim); Drain assumes a single consumer. When
// the ring is full the oldest events are overwritten, which is
// acceptable for effects: the consumer only loses visuals.
type Queue struct {
	events [queueSize]Event
	head   atomic.Uint64
	tail   atomic.Uint64
}

func NewQueue() *Queue {
	return &Queue{}
}

// Post adds an event, overwriting the oldest if the ring is full.
func (q *Queue) Post(ev Event) {
	for {
		tail := q.tail.Load()
		if !q.tail.CompareAndSwap(tail, tail+1) {
			continue
		}
		q.events[tail%queueSize] = ev

		if head := q.head.Load(); tail+1-head > queueSize {
			q.head.CompareAndSwap(head, tail+1-queueSize)
		}
		return
	}
}

// Drain returns all pending events in FIFO order and marks them consumed.
func (q *Queue) Drain() []Event {
	head := q.head.Load()
	tail := q.tail.Load()
	n := tail - head
	if n == 0 {
		return nil
	}
	if n > queueSize {
		n = queueSize
		head = tail - queueSize
	}
	out := make([]Event, n)
	for i := uint64(0); i < n; i++ {
		out[i] = q.events[(head+i)%queueSize]
	}
	for !q.head.CompareAndSwap(head, tail) {
		head = q.head.Load()
		tail = q.tail.Load()
		if head == tail {
			break
		}
	}
	return out
}

// Peek returns pending events without consuming them.
func (q *Queue) Peek() []Event {
	head := q.head.Load()
	tail := q.tail.Load()
	n := tail - head
	if n == 0 {
		return nil
	}
	if n > queueSize {
		n = queueSize
		head = tail - queueSize
	}
	out := make([]Event, n)
	for i := uint64(0); i < n; i++ {
		out[i] = q.events[(head+i)%queueSize]
	}
	return out
}

// Len returns the number of pending events, capped at capacity.
func (q *Queue) Len() int {
	n := q.tail.Load() - q.head.Load()
	if n > queueSize {
		return queueSize
	}
	return int(n)
}
