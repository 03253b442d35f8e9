package sched

import "errors"

// ErrCancelled is returned by a suspending call when Scheduler.CancelWait was
// applied to the blocked task. Kept distinct from ErrTimeout per the open
// question in spec §9: the source collapses both to -1; this reimplementation
// distinguishes them since Go gives us an error value to spend on it for
// free.
var ErrCancelled = errors.New("nanocoro: wait cancelled")

// ErrTimeout is returned by corosync's Event.WaitTimeout when the timeout
// elapses before the event is set.
var ErrTimeout = errors.New("nanocoro: wait timed out")

// ErrAlreadyInitialized is returned by Init when called more than once on
// the process-wide scheduler (spec §4.2: "Fails only on re-init").
var ErrAlreadyInitialized = errors.New("nanocoro: scheduler already initialized")

// ErrDeadlock is the value the scheduler's idle wait panics with when it has
// nothing left to wake it: the run queue and timer service are empty and no
// external waiter is bound, so no further progress is possible.
var ErrDeadlock = errors.New("nanocoro: no runnable, sleeping or waiting tasks left")
