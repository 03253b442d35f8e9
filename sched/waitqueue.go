package sched

import "github.com/nanocoro/nanocoro/task"

// WaitQueue is implemented by synchronization objects (package corosync)
// that can deposit a task on their own FIFO wait queue. CancelWait uses it
// to pull a task back out of whatever object it is blocked on without
// package sched importing corosync (corosync imports sched, not the
// reverse, to keep the dependency graph acyclic per spec §2's leaves-first
// ordering).
type WaitQueue interface {
	// RemoveWaiter deletes t from the wait queue if present, reporting
	// whether it was found.
	RemoveWaiter(t *task.Task) bool
}
