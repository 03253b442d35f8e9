package task

// State is the lifecycle state of a Task, per the core's data model: a task
// is always in exactly one of these four states.
type State uint8

const (
	// Runnable means the task is on the scheduler's run queue (or is the
	// task currently executing, which is conceptually still runnable).
	Runnable State = iota
	// Sleeping means the task is parked in the timer service waiting for a
	// deadline, with no other wait object involved.
	Sleeping
	// Waiting means the task is parked on a Mutex or Event wait queue,
	// optionally also registered in the timer service for a timeout, or is
	// parked in Join on another task.
	Waiting
	// Dead means the task's entry function has returned. The Task value
	// remains addressable (a joiner may still be waiting on it) until the
	// caller reclaims its stack.
	Dead
)

func (s State) String() string {
	switch s {
	case Runnable:
		return "runnable"
	case Sleeping:
		return "sleeping"
	case Waiting:
		return "waiting"
	case Dead:
		return "dead"
	default:
		return "unknown"
	}
}
