// Package task implements the Task record and the pure-Go realization of the
// platform context-switch primitive described in spec §4.1: make_context and
// jump_context, here named newContext/Resume/Pause.
//
// A Task's "stack" is a real goroutine parked on a channel. Exactly one
// goroutine is ever runnable past that channel op at a time, so this gives
// nanocoro true single-threaded cooperative semantics (spec §5 invariant:
// no two tasks RUNNING simultaneously) while letting a task suspend at
// arbitrary call depth - the same property stackful coroutines get from a
// real machine-context switch. Scheduling policy (which task runs next,
// idle wait, timers) lives entirely in package sched; this package only
// knows how to start, resume and pause one task's goroutine.
package task

import "fmt"

// Task is a cooperatively scheduled unit of execution with its own stack.
// The caller owns the memory backing the stack (see Create) and must keep
// it alive for the lifetime of the Task.
type Task struct {
	// ID is a small integer assigned at creation, unique among the tasks of
	// the scheduler that created it (separate schedulers number their tasks
	// independently). Useful for logging and for deterministic test output.
	ID uint64

	// Stack is the caller-supplied region this Task was created on. nanocoro
	// never reads or writes it directly; it exists so the caller's stack
	// stays reachable (and so a future platform-asm backend has somewhere
	// to put a real machine stack).
	Stack []byte

	entry func(arg any)
	ctx   *context

	state State

	// next links this Task into at most one of: the scheduler's run queue,
	// a Mutex/Event wait queue. Per spec §3 invariant, a Task is linked into
	// at most one such container at any instant.
	next *Task

	// timerIndex is this Task's position in the timer service's heap, or -1
	// if the Task is not currently registered for a deadline. Owned by
	// internal/timerq; Task does not interpret it.
	timerIndex int

	// waitObj is the Mutex or Event this task is blocked on, the Task it is
	// parked in Join on, or nil.
	waitObj any

	// cancelled is set by CancelWait and observed by the suspending call
	// the task is parked in, to distinguish a normal wake from a forced one.
	cancelled bool

	// timedOut is set when a timed wait (event wait-with-timeout) is woken
	// by its deadline rather than by the object being signalled, so the
	// suspending call can report the distinguished failure spec §9
	// recommends separating from cancellation.
	timedOut bool

	// joinWaiter is the task (if any) parked in Join on this task.
	joinWaiter *Task
}

// Queue is a FIFO container of tasks linked through Task.next. The zero
// value is an empty queue. Not safe for concurrent use: only the
// scheduler's own goroutine ever touches a Queue (spec §5).
type Queue struct {
	head, tail *Task
}

// Push appends t to the tail of the queue.
func (q *Queue) Push(t *Task) {
	t.next = nil
	if q.tail != nil {
		q.tail.next = t
	} else {
		q.head = t
	}
	q.tail = t
}

// Pop removes and returns the head of the queue, or nil if empty.
func (q *Queue) Pop() *Task {
	t := q.head
	if t == nil {
		return nil
	}
	q.head = t.next
	if q.head == nil {
		q.tail = nil
	}
	t.next = nil
	return t
}

// Remove deletes t from the queue if present, reporting whether it was
// found. Needed by cancellation, which may have to pull a task out from the
// middle of a wait queue.
func (q *Queue) Remove(t *Task) bool {
	if q.head == t {
		q.head = t.next
		if q.head == nil {
			q.tail = nil
		}
		t.next = nil
		return true
	}
	for p := q.head; p != nil; p = p.next {
		if p.next == t {
			p.next = t.next
			if q.tail == t {
				q.tail = p
			}
			t.next = nil
			return true
		}
	}
	return false
}

// Empty reports whether the queue has no tasks.
func (q *Queue) Empty() bool { return q.head == nil }

// Len reports how many tasks are in the queue. O(n); intended for
// diagnostics (package corostat), not hot-path scheduling decisions.
func (q *Queue) Len() int {
	n := 0
	for p := q.head; p != nil; p = p.next {
		n++
	}
	return n
}

// Peek returns the head of the queue without removing it, or nil if empty.
func (q *Queue) Peek() *Task { return q.head }

// State returns the task's current lifecycle state.
func (t *Task) State() State { return t.state }

// SetState is used by the scheduler to drive the task's lifecycle. Exported
// for use by package sched; not meant for general callers.
func (t *Task) SetState(s State) { t.state = s }

// TimerIndex and SetTimerIndex back internal/timerq's heap bookkeeping.
func (t *Task) TimerIndex() int       { return t.timerIndex }
func (t *Task) SetTimerIndex(idx int) { t.timerIndex = idx }

// WaitObj returns the synchronization object this task is parked on, or nil.
func (t *Task) WaitObj() any       { return t.waitObj }
func (t *Task) SetWaitObj(obj any) { t.waitObj = obj }

// Cancelled reports whether CancelWait was applied to this task's current
// (or most recently completed) suspension.
func (t *Task) Cancelled() bool     { return t.cancelled }
func (t *Task) SetCancelled(c bool) { t.cancelled = c }

// TimedOut reports whether this task's current (or most recently completed)
// timed wait was woken by its deadline rather than by the wait object.
func (t *Task) TimedOut() bool     { return t.timedOut }
func (t *Task) SetTimedOut(v bool) { t.timedOut = v }

// JoinWaiter returns the task parked in Join on this task, or nil.
func (t *Task) JoinWaiter() *Task     { return t.joinWaiter }
func (t *Task) SetJoinWaiter(j *Task) { t.joinWaiter = j }

func (t *Task) String() string {
	if t == nil {
		return "task<nil>"
	}
	return fmt.Sprintf("task#%d(%s)", t.ID, t.state)
}

// Create builds a Task that will run entry(arg) on the given stack, in
// state Runnable, ready for the scheduler to enqueue. stack is caller-owned
// memory (spec §3: "the caller owns the stack memory and guarantees it
// outlives the Task"); nanocoro only keeps a slice header to it.
//
// onDone is invoked, on the task's own backing goroutine, the instant entry
// returns and the task's state has been set to Dead - it is the scheduler's
// hook (package sched) to wake a joiner and switch to whatever runs next,
// keeping package task itself free of scheduling policy.
func Create(id uint64, stack []byte, entry func(arg any), arg any, onDone func(*Task)) *Task {
	t := &Task{
		ID:         id,
		Stack:      stack,
		entry:      entry,
		state:      Runnable,
		timerIndex: -1,
	}
	t.ctx = newContext()
	go func() {
		t.ctx.park()
		t.entry(arg)
		t.state = Dead
		onDone(t)
	}()
	return t
}

// NewRoot wraps the calling goroutine itself as a Task, representing the
// "main" pseudo-task spec §4.2 describes: "its context is captured lazily
// at the first suspension." No backing goroutine is spawned; the caller's
// own goroutine plays that role, by calling Pause/Resume directly.
func NewRoot(id uint64) *Task {
	return &Task{
		ID:         id,
		state:      Runnable,
		timerIndex: -1,
		ctx:        newContext(),
	}
}

// Resume hands control to t. Must be called by the goroutine currently
// relinquishing control (typically immediately before that goroutine calls
// Pause on itself), never concurrently with another Resume or Pause on t.
func Resume(t *Task) { t.ctx.resume() }

// Pause blocks self's own backing goroutine until some later Resume(self)
// call hands control back to it. Must be called from within self's own
// goroutine.
func Pause(self *Task) { self.ctx.park() }
