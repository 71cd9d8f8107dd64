package event

import "sync"

// Queue is an unbounded FIFO of events that is safe for one or more producers and a
// consumer running concurrently.
type Queue struct {
	mu     sync.Mutex
	events []Event
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends e to the end of the queue.
func (q *Queue) Push(e Event) {
	q.mu.Lock()
	q.events = append(q.events, e)
	q.mu.Unlock()
}

// Len returns how many events are waiting. It never blocks on an empty queue.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// Drain removes and returns every event currently waiting, in arrival order. Events
// pushed after Drain returns are kept for the next call. Drain returns nil when the
// queue is empty.
func (q *Queue) Drain() []Event {
	q.mu.Lock()
	events := q.events
	q.events = nil
	q.mu.Unlock()
	return events
}
