package easel

import (
	"container/heap"
	"fmt"
	"sync/atomic"
)

// EventRunner is the body of a scheduled event. It runs on the tick
// goroutine, outside the canvas lock, so it may create drawables and
// schedule further work. A returned error is logged and reported to the
// canvas error hook; it does not stop the painter.
type EventRunner func(c *Canvas) error

// Event is a frame-keyed callback. A one-shot event (period 0) fires once,
// on the first tick whose frame is at or after its target. A recurring event
// re-arms at firedFrame+period right after firing.
type Event struct {
	name   string
	period int
	runner EventRunner

	target atomic.Int64
	fires  atomic.Int64

	// queue bookkeeping, guarded by the canvas lock
	seq   uint64
	index int
}

// Name returns the label given at scheduling time, used in logs.
func (e *Event) Name() string { return e.name }

// Target returns the next frame the event is due at.
func (e *Event) Target() int { return int(e.target.Load()) }

// Period returns the re-arm interval in frames, 0 for one-shot events.
func (e *Event) Period() int { return e.period }

// Recurring reports whether the event re-arms after firing.
func (e *Event) Recurring() bool { return e.period > 0 }

// Fires returns how many times the runner has been invoked.
func (e *Event) Fires() int { return int(e.fires.Load()) }

// run invokes the runner, converting a panic into an error.
func (e *Event) run(c *Canvas) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	e.fires.Add(1)
	return e.runner(c)
}

// eventQueue is a min-heap ordered by target frame, then scheduling
// sequence, so events due on the same frame fire in the order they were
// scheduled.
type eventQueue []*Event

func (q eventQueue) Len() int { return len(q) }

func (q eventQueue) Less(i, j int) bool {
	ti, tj := q[i].target.Load(), q[j].target.Load()
	if ti != tj {
		return ti < tj
	}
	return q[i].seq < q[j].seq
}

func (q eventQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *eventQueue) Push(x any) {
	e := x.(*Event)
	e.index = len(*q)
	*q = append(*q, e)
}

func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*q = old[:n-1]
	return e
}

// popDue removes and returns every event due at frame, in firing order.
func (q *eventQueue) popDue(frame int) []*Event {
	var due []*Event
	for q.Len() > 0 && (*q)[0].Target() <= frame {
		due = append(due, heap.Pop(q).(*Event))
	}
	return due
}

// oneShots counts pending events that are not recurring.
func (q eventQueue) oneShots() int {
	n := 0
	for _, e := range q {
		if e.period == 0 {
			n++
		}
	}
	return n
}
