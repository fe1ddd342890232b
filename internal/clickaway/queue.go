package clickaway

import "sync"

// Queue is a FIFO of deferred tasks, drained by its owner once per turn of
// an event loop. It implements Scheduler.
type Queue struct {
	mu    sync.Mutex
	tasks []func()
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Defer implements Scheduler.
func (q *Queue) Defer(task func()) {
	if task == nil {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, task)
}

// Flush runs every task queued before the call, in order, and returns how
// many ran. Tasks deferred while flushing wait for the next Flush.
func (q *Queue) Flush() int {
	q.mu.Lock()
	tasks := q.tasks
	q.tasks = nil
	q.mu.Unlock()

	for _, task := range tasks {
		task()
	}
	return len(tasks)
}

// Len returns the number of queued tasks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}
