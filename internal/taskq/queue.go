// Package taskq provides a serial task queue: tasks run strictly in enqueue
// order on a single worker, so an operation enqueued later never begins
// before an earlier one completes. The game loop uses it to linearize reward
// application and save writes per player.
package taskq

import "sync"

// Queue is a FIFO queue with one worker goroutine.
type Queue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	pending []func()
	running bool
	closed  bool
	done    chan struct{}
}

// New creates a Queue and starts its worker.
func New() *Queue {
	q := &Queue{done: make(chan struct{})}
	q.cond = sync.NewCond(&q.mu)
	go q.run()
	return q
}

// Enqueue appends a task. Tasks enqueued after Close are dropped.
func (q *Queue) Enqueue(task func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.pending = append(q.pending, task)
	q.cond.Broadcast()
}

// Clear drops every task that has not yet started. A task already running is
// unaffected and completes normally.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = nil
	q.cond.Broadcast()
}

// Wait blocks until the queue is idle: no pending tasks and none running.
func (q *Queue) Wait() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.pending) > 0 || q.running {
		q.cond.Wait()
	}
}

// Close drains remaining tasks and stops the worker. Blocks until the last
// task finishes. Safe to call once.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.cond.Broadcast()
	q.mu.Unlock()
	<-q.done
}

func (q *Queue) run() {
	q.mu.Lock()
	for {
		for len(q.pending) == 0 && !q.closed {
			q.cond.Wait()
		}
		if len(q.pending) == 0 && q.closed {
			break
		}

		task := q.pending[0]
		q.pending = q.pending[1:]
		q.running = true
		q.mu.Unlock()

		task()

		q.mu.Lock()
		q.running = false
		q.cond.Broadcast()
	}
	q.mu.Unlock()
	close(q.done)
}
