// Package corostat exposes a zero-allocation snapshot of scheduler state,
// the kind of cheap introspection go-eventloop's FastState gauge provides
// for its own run/sleep/terminated counters - scaled here to nanocoro's run
// queue and Timer Service population instead of loop phase.
package corostat

// Snapshot is a point-in-time view of a scheduler's task population. All
// fields are plain counters; taking a Snapshot never allocates.
//
// Tasks parked on a Mutex or Event with no timeout are not visible here:
// their wait queues are owned by the individual corosync.Mutex/Event
// instance, not by the scheduler, so counting them would require a
// process-wide task registry the core does not otherwise need.
type Snapshot struct {
	// RunQueueLen is the number of tasks currently runnable and queued
	// (excluding the task presently executing).
	RunQueueLen int
	// TimerCount is the number of tasks registered in the Timer Service:
	// plain sleepers plus any timed Event.WaitTimeout waiters.
	TimerCount int
}

// Counter is implemented by package sched's Scheduler; kept as a narrow
// interface here so corostat does not need to import sched, avoiding any
// risk of a dependency cycle as the scheduler grows.
type Counter interface {
	RunQueueLen() int
	TimerCount() int
}

// Take builds a Snapshot from c.
func Take(c Counter) Snapshot {
	return Snapshot{
		RunQueueLen: c.RunQueueLen(),
		TimerCount:  c.TimerCount(),
	}
}
