// Package timerq is the Timer Service's ordered deadline structure (spec
// §3/§4.3): a min-heap of (deadline, task) pairs supporting Add, Remove,
// PeekMin and ExpireDue in better-than-linear time, as spec §9 recommends
// for "capable targets". Modeled directly on the pack's own worked example
// of this structure, go-eventloop's timerHeap in loop.go, which solves the
// identical problem (wake the earliest-deadline entry first) the same way:
// container/heap over a slice, with each item's backing slot able to record
// its own heap index for O(log n) removal.
package timerq

import (
	"container/heap"
	"time"

	"github.com/nanocoro/nanocoro/task"
)

// entry pairs a task with the deadline it is waiting on. seq breaks ties
// between equal deadlines in insertion order, since a plain binary heap
// does not otherwise guarantee FIFO order among equal keys (spec §5:
// "tasks with equal deadlines are woken in insertion order").
type entry struct {
	deadline time.Time
	seq      uint64
	t        *task.Task
}

// items implements container/heap.Interface, ordered by (deadline, seq).
type items []entry

func (h items) Len() int { return len(h) }
func (h items) Less(i, j int) bool {
	if !h[i].deadline.Equal(h[j].deadline) {
		return h[i].deadline.Before(h[j].deadline)
	}
	return h[i].seq < h[j].seq
}
func (h items) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].t.SetTimerIndex(i)
	h[j].t.SetTimerIndex(j)
}

func (h *items) Push(x any) {
	e := x.(entry)
	e.t.SetTimerIndex(len(*h))
	*h = append(*h, e)
}

func (h *items) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = entry{}
	*h = old[:n-1]
	e.t.SetTimerIndex(-1)
	return e
}

// Queue is the Timer Service's deadline-ordered structure. The zero value
// is an empty queue. Not safe for concurrent use; only the scheduler's own
// goroutine touches it (spec §5).
type Queue struct {
	h       items
	nextSeq uint64
}

// Add registers t to wake at deadline. t must not already be registered;
// callers (package sched) enforce this by always Remove-ing before
// re-Adding.
func (q *Queue) Add(t *task.Task, deadline time.Time) {
	q.nextSeq++
	heap.Push(&q.h, entry{deadline: deadline, seq: q.nextSeq, t: t})
}

// Remove deregisters t if present, reporting whether it was found. Safe to
// call on a task that is not registered (reports false, does nothing) -
// CancelWait relies on this.
func (q *Queue) Remove(t *task.Task) bool {
	idx := t.TimerIndex()
	if idx < 0 || idx >= len(q.h) || q.h[idx].t != t {
		return false
	}
	heap.Remove(&q.h, idx)
	return true
}

// PeekMin returns the earliest deadline currently registered and true, or
// the zero time and false if the queue is empty.
func (q *Queue) PeekMin() (time.Time, bool) {
	if len(q.h) == 0 {
		return time.Time{}, false
	}
	return q.h[0].deadline, true
}

// ExpireDue pops every entry whose deadline is <= now, in nondecreasing
// (deadline, insertion order) and calls fn for each.
func (q *Queue) ExpireDue(now time.Time, fn func(*task.Task)) {
	for len(q.h) > 0 && !q.h[0].deadline.After(now) {
		e := heap.Pop(&q.h).(entry)
		fn(e.t)
	}
}

// Len reports how many tasks are currently registered.
func (q *Queue) Len() int { return len(q.h) }
