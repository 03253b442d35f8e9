// Package corosync implements the core's wait-queue synchronization
// objects (spec §4.5/§4.6): Mutex and Event, built entirely on top of
// package sched's Park/MakeRunnable primitives. It is named corosync rather
// than sync to avoid colliding with the standard library package it is
// deliberately not a drop-in replacement for (no Locker interface, no
// re-entrancy, FIFO hand-off rather than the runtime-assisted starvation
// mode sync.Mutex uses).
package corosync

import (
	"github.com/nanocoro/nanocoro/sched"
	"github.com/nanocoro/nanocoro/task"
)

// Mutex is the spec §4.5 mutex: an owner pointer plus a strict-FIFO wait
// queue. Re-entrancy is not supported - locking twice from the same task
// deadlocks it against itself, exactly as the source documents.
type Mutex struct {
	s     *sched.Scheduler
	owner *task.Task
	waitQ task.Queue
}

// NewMutex returns an unlocked Mutex bound to s.
func NewMutex(s *sched.Scheduler) *Mutex {
	return &Mutex{s: s}
}

// Lock implements mutex_lock: acquires the mutex immediately if free,
// otherwise parks the current task at the wait queue tail until Unlock
// hands ownership directly to it. Returns ErrCancelled if CancelWait was
// applied while waiting - the caller does not hold the mutex in that case.
func (m *Mutex) Lock() error {
	self := m.s.Current()
	if m.owner == nil {
		m.owner = self
		return nil
	}
	self.SetState(task.Waiting)
	self.SetWaitObj(m)
	m.waitQ.Push(self)
	if err := m.s.Park(); err != nil {
		return err
	}
	// Woken by Unlock's hand-off (see Unlock): ownership was already
	// assigned to self there, not here, so no other task's Lock can take the
	// mutex between the hand-off and this task running. A waiter cancelled
	// while still queued is pulled out by RemoveWaiter and never becomes
	// owner; once popped it is Runnable, and CancelWait does nothing to it.
	return nil
}

// Unlock implements mutex_unlock: precondition owner == the calling task.
// Hands ownership directly to the next waiter (if any) and makes it
// runnable, preserving strict FIFO with no barging - a concurrent Lock
// call can never jump the queue ahead of an already-queued waiter. Does
// not yield.
func (m *Mutex) Unlock() {
	self := m.s.Current()
	assertMutexOwner(m.owner, self)
	next := m.waitQ.Pop()
	if next == nil {
		m.owner = nil
		return
	}
	m.owner = next
	m.s.MakeRunnable(next)
}

// RemoveWaiter implements sched.WaitQueue so CancelWait can pull a blocked
// task back out of this mutex's wait queue.
func (m *Mutex) RemoveWaiter(t *task.Task) bool {
	return m.waitQ.Remove(t)
}
