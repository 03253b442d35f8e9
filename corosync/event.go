package corosync

import (
	"time"

	"github.com/nanocoro/nanocoro/sched"
	"github.com/nanocoro/nanocoro/task"
)

// Event is the spec §4.6 auto-reset, edge-triggered event: a boolean latch
// plus a strict-FIFO wait queue. A Set with no waiters latches; the next
// Wait then returns immediately without suspending and clears the latch. A
// Set with waiters wakes exactly the queue head and never latches.
type Event struct {
	s     *sched.Scheduler
	set   bool
	waitQ task.Queue
}

// NewEvent returns a cleared Event bound to s.
func NewEvent(s *sched.Scheduler) *Event {
	return &Event{s: s}
}

// Wait implements event_wait: returns immediately if the event is latched
// (clearing the latch), otherwise suspends until Set wakes this task.
// Returns ErrCancelled if CancelWait was applied while waiting.
func (e *Event) Wait() error {
	return e.wait(0, false)
}

// WaitTimeout implements event_wait_timeout: as Wait, but also registers a
// deadline. Returns ErrTimeout (distinguished from ErrCancelled, per the
// spec §9 open question resolved in favor of distinguishing them) if
// timeout elapses first.
func (e *Event) WaitTimeout(timeout time.Duration) error {
	return e.wait(timeout, true)
}

func (e *Event) wait(timeout time.Duration, timed bool) error {
	if e.set {
		e.set = false
		return nil
	}
	self := e.s.Current()
	self.SetState(task.Waiting)
	self.SetWaitObj(e)
	e.waitQ.Push(self)
	if timed {
		if timeout <= 0 {
			// Already in the past: spec §8 boundary behavior - a deadline
			// already due returns without suspension, as a timeout.
			e.waitQ.Remove(self)
			self.SetWaitObj(nil)
			self.SetState(task.Runnable)
			return sched.ErrTimeout
		}
		e.s.AddTimeout(self, timeout)
	}
	return e.s.Park()
}

// Set implements event_set: wakes exactly one waiter (the queue head) if
// any are waiting, otherwise latches the event so the next Wait returns
// immediately. Does not yield.
func (e *Event) Set() {
	next := e.waitQ.Pop()
	if next == nil {
		e.set = true
		return
	}
	e.s.RemoveTimeout(next)
	e.s.MakeRunnable(next)
}

// RemoveWaiter implements sched.WaitQueue so CancelWait can pull a blocked
// task back out of this event's wait queue.
func (e *Event) RemoveWaiter(t *task.Task) bool {
	return e.waitQ.Remove(t)
}
