// Package sched implements the Task/Scheduler core of spec §4.2: a
// single-threaded cooperative scheduler with a strict-FIFO run queue, a
// Timer Service for sleep/timeout, and the hooks synchronization objects
// (package corosync) need to park and wake tasks.
//
// Exactly one goroutine is ever doing scheduler work at a time - the
// goroutine currently "current" - so every exported method here assumes it
// is being called from that goroutine, never concurrently from another one.
// That invariant is spec §5's single-threaded cooperative model; external
// concurrency only enters through a bound extevent.Waiter's Notify, which
// must be marshaled back in through the idle wait rather than touching
// scheduler state directly.
package sched

import (
	"time"

	"github.com/nanocoro/nanocoro/clock"
	"github.com/nanocoro/nanocoro/corolog"
	"github.com/nanocoro/nanocoro/extevent"
	"github.com/nanocoro/nanocoro/internal/timerq"
	"github.com/nanocoro/nanocoro/task"
)

// foreverWait is used as the idle-wait timeout when no timer is pending but
// an extevent.Waiter is bound: there is no deadline to wait for, only
// external activity, so the wait should block indefinitely. A very long
// bounded duration is used instead of a literal "forever" so the Waiter
// interface doesn't need a second sentinel value.
const foreverWait = 365 * 24 * time.Hour

// Config configures a Scheduler. The zero value is valid: it runs with the
// real system clock, no external event integration, and a no-op logger.
type Config struct {
	// Clock supplies Now/Sleep. Defaults to clock.System. Tests should pass
	// a *clock.Fake for deterministic timer behavior.
	Clock clock.Clock

	// Waiter optionally binds an external event source (spec §4.4). When
	// nil, the idle wait falls back to a plain Clock.Sleep.
	Waiter extevent.Waiter

	// OnExternalActivity, when set, is called from the scheduler's own
	// goroutine immediately after every idle-wait wake (whether caused by
	// Notify or by timer expiry). It is the embedder's one safe place to
	// drain an external work queue and call Scheduler methods (e.g.
	// CancelWait, Spawn) without violating the single-goroutine invariant -
	// the same role go-eventloop's post-wake drain of its external ingress
	// queue plays after submitWakeup wakes the poller.
	OnExternalActivity func(*Scheduler)

	// Logger receives structured lifecycle events. Defaults to corolog.NoOp.
	Logger corolog.Logger
}

// Scheduler is the process-wide (or, for tests, per-instance) cooperative
// scheduler described in spec §3: a current-task pointer, a run queue, the
// Timer Service, and the ambient clock/external-event/logging dependencies.
type Scheduler struct {
	current *task.Task
	runQ    task.Queue
	timers  timerq.Queue

	clk    clock.Clock
	waiter extevent.Waiter
	onExt  func(*Scheduler)
	log    corolog.Logger

	nextID uint64
}

// New builds a standalone Scheduler with its own main pseudo-task,
// independent of the process-wide Default instance. Intended for tests that
// want isolated, parallel-safe scheduler instances (spec.md only specifies
// one process-wide instance; this is a Go-idiomatic testability addition,
// the same way go-eventloop's New() returns an independent *Loop per call
// rather than a forced singleton).
func New(cfg Config) *Scheduler {
	if cfg.Clock == nil {
		cfg.Clock = clock.System{}
	}
	if cfg.Logger == nil {
		cfg.Logger = corolog.NoOp{}
	}
	s := &Scheduler{
		clk:    cfg.Clock,
		waiter: cfg.Waiter,
		onExt:  cfg.OnExternalActivity,
		log:    cfg.Logger,
		nextID: 1,
	}
	s.current = task.NewRoot(0)
	return s
}

// Current returns the task presently executing on this scheduler.
func (s *Scheduler) Current() *task.Task { return s.current }

// RunQueueLen reports how many tasks are runnable and queued, excluding the
// one currently executing. Satisfies corostat.Counter.
func (s *Scheduler) RunQueueLen() int { return s.runQ.Len() }

// TimerCount reports how many tasks are registered in the Timer Service
// (sleeping, or waiting on a synchronization object with a timeout).
// Satisfies corostat.Counter.
func (s *Scheduler) TimerCount() int { return s.timers.Len() }

// Spawn implements task_create (spec §4.2): builds a Task running
// entry(arg) on stack, enqueues it on the run queue tail, and returns it
// immediately without suspending the caller.
func (s *Scheduler) Spawn(stack []byte, entry func(arg any), arg any) *task.Task {
	id := s.nextID
	s.nextID++
	t := task.Create(id, stack, entry, arg, s.onTaskDone)
	s.runQ.Push(t)
	corolog.Debugf(s.log, "sched", id, "spawned")
	return t
}

// Yield implements task_yield: the current task moves to the run queue
// tail and the scheduler switches to the head. Among tasks that yield
// without blocking, order is strict FIFO (spec §8).
func (s *Scheduler) Yield() {
	self := s.current
	self.SetState(task.Runnable)
	s.runQ.Push(self)
	s.switchTo(self, s.pickNext())
}

// Sleep implements task_sleep: parks the current task in the Timer Service
// for d and switches away. Sleep(0) or negative d is equivalent to Yield
// (spec §8 boundary behavior). Returns ErrCancelled if CancelWait was
// applied while sleeping.
func (s *Scheduler) Sleep(d time.Duration) error {
	if d <= 0 {
		s.Yield()
		return nil
	}
	self := s.current
	self.SetState(task.Sleeping)
	s.timers.Add(self, s.clk.Now().Add(d))
	return s.Park()
}

// Join implements task_join: suspends the caller until t reaches Dead.
// Returns immediately if t is already Dead. Only one joiner per task is
// supported; a second concurrent Join is a programming error, asserted
// against in debug builds (spec §9 open question).
func (s *Scheduler) Join(t *task.Task) error {
	if t.State() == task.Dead {
		return nil
	}
	assertNoJoinWaiter(t)
	self := s.current
	t.SetJoinWaiter(self)
	self.SetState(task.Waiting)
	self.SetWaitObj(t)
	return s.Park()
}

// Park suspends the current task until another call (CancelWait, an
// explicit MakeRunnable, or a Timer Service expiry) makes it runnable
// again. Callers - Sleep, Join, and corosync's Mutex/Event - must have
// already set self's state, wait object and/or Timer Service registration
// before calling Park, since the scheduler may switch to a task that
// observes that state immediately.
//
// Reports ErrCancelled if CancelWait was applied, ErrTimeout if a
// registered deadline fired before the wait object woke the task, or nil on
// a normal wake.
func (s *Scheduler) Park() error {
	self := s.current
	s.switchTo(self, s.pickNext())
	switch {
	case self.Cancelled():
		self.SetCancelled(false)
		return ErrCancelled
	case self.TimedOut():
		self.SetTimedOut(false)
		return ErrTimeout
	default:
		return nil
	}
}

// MakeRunnable moves t directly onto the run queue, clearing any wait
// object and removing it from the Timer Service if registered. Used by
// corosync's Mutex/Event to hand a specific waiter ownership or a wake
// without going through the cancellation path.
func (s *Scheduler) MakeRunnable(t *task.Task) {
	s.timers.Remove(t)
	t.SetWaitObj(nil)
	t.SetState(task.Runnable)
	s.runQ.Push(t)
}

// AddTimeout registers t to be forcibly woken (with ErrTimeout, unless it
// wakes some other way first) after d. Used by Event.WaitTimeout.
func (s *Scheduler) AddTimeout(t *task.Task, d time.Duration) {
	s.timers.Add(t, s.clk.Now().Add(d))
}

// RemoveTimeout deregisters t from the Timer Service if present, reporting
// whether it was found. Callers that wake a task through their own wait
// queue (rather than through timer expiry) must call this first, or a
// stale timer entry will later fire against a task that has moved on.
func (s *Scheduler) RemoveTimeout(t *task.Task) bool {
	return s.timers.Remove(t)
}

// CancelWait implements task_cancel_wait: the sole cancellation mechanism
// (spec §5). It forcibly makes t runnable, removing it from the Timer
// Service and from whatever wait queue it sits on, and marks its current
// (or most recently completed) suspension as cancelled. Idempotent on
// Runnable and Dead tasks. Safe to call from any task on any other task,
// but only from the scheduler's own goroutine (spec §5: not safe from a
// signal handler).
func (s *Scheduler) CancelWait(t *task.Task) {
	switch t.State() {
	case task.Runnable, task.Dead:
		return
	}
	switch wo := t.WaitObj().(type) {
	case WaitQueue:
		wo.RemoveWaiter(t)
	case *task.Task:
		// t was parked in Join(wo); clear wo's back-reference so a later
		// onTaskDone doesn't try to wake a joiner that moved on.
		if wo.JoinWaiter() == t {
			wo.SetJoinWaiter(nil)
		}
	}
	t.SetCancelled(true)
	s.MakeRunnable(t)
	corolog.Debugf(s.log, "sched", t.ID, "cancelled")
}

// pickNext implements the scheduler's pick-next routine (spec §4.2): pop
// the run queue head, idle-waiting on timers/external events when it is
// empty, until some task becomes runnable.
func (s *Scheduler) pickNext() *task.Task {
	for {
		if t := s.runQ.Pop(); t != nil {
			return t
		}
		s.idleWait()
	}
}

// idleWait implements spec §4.3's idle behavior: compute the delta to the
// nearest deadline, block for that long (via the external waiter if bound,
// else a plain clock sleep), then expire due timers onto the run queue.
func (s *Scheduler) idleWait() {
	now := s.clk.Now()
	deadline, hasTimer := s.timers.PeekMin()

	switch {
	case hasTimer:
		delta := deadline.Sub(now)
		if delta > 0 {
			if s.waiter != nil {
				s.waiter.Wait(delta)
			} else {
				s.clk.Sleep(delta)
			}
		}
	case s.waiter != nil:
		s.waiter.Wait(foreverWait)
	default:
		// Nothing left that could ever make the scheduler runnable again:
		// no timers pending and no external event source bound.
		panic(ErrDeadlock)
	}

	if s.onExt != nil {
		s.onExt(s)
	}

	s.timers.ExpireDue(s.clk.Now(), func(t *task.Task) {
		// A task with a wait object registered was on a synchronization
		// object's timed wait (event_wait_timeout); its deadline firing
		// first means the wait timed out rather than succeeded, so it must
		// also be pulled out of that object's wait queue. A task with no
		// wait object is a plain Sleep, which has no timeout outcome to
		// report (spec §4.2: task_sleep only ever returns ok or cancelled).
		if wq, ok := t.WaitObj().(WaitQueue); ok {
			wq.RemoveWaiter(t)
			t.SetTimedOut(true)
		}
		t.SetWaitObj(nil)
		t.SetState(task.Runnable)
		s.runQ.Push(t)
	})
}

// switchTo hands control to next and blocks self (the caller) until some
// later switchTo call resumes it. self must be the task the scheduler
// currently considers current; all of self's own state (queue membership,
// Timer Service registration) must already be updated by the caller before
// this is invoked, since next may start running concurrently with self's
// final instructions before it parks.
//
// next == self happens whenever self was the only runnable task (e.g. it
// Yields alone): the round trip through the run queue lands self right back
// as its own pick-next result. Resuming and parking the same context in
// that case would deadlock (the send in Resume has no concurrent receiver
// until the Pause that follows it), so it is short-circuited to a no-op.
func (s *Scheduler) switchTo(self, next *task.Task) {
	if next == self {
		return
	}
	s.current = next
	task.Resume(next)
	task.Pause(self)
}

// onTaskDone is Task.Create's completion hook (spec: "on return marks the
// task DEAD and yields"). It runs on the dying task's own goroutine, which
// is still the scheduler's current task at this point. It wakes a pending
// joiner, if any, then switches to whatever the scheduler picks next -
// without parking itself, since this goroutine is about to exit.
func (s *Scheduler) onTaskDone(t *task.Task) {
	corolog.Debugf(s.log, "sched", t.ID, "done")
	if jw := t.JoinWaiter(); jw != nil {
		s.MakeRunnable(jw)
		t.SetJoinWaiter(nil)
	}
	next := s.pickNext()
	s.current = next
	task.Resume(next)
}
