// Command nanocoro-demo runs the end-to-end scenarios spec §8 calls out,
// one after another against the real system clock, printing what each
// stage does as it runs - the same plain fmt.Println-driven demo style as
// the toy scheduler this package grew out of.
package main

import (
	"fmt"
	"time"

	"github.com/nanocoro/nanocoro/corolog"
	"github.com/nanocoro/nanocoro/corosync"
	"github.com/nanocoro/nanocoro/sched"
	"github.com/nanocoro/nanocoro/task"
)

func main() {
	log := corolog.NewWriter(nil, corolog.LevelInfo)
	s := sched.New(sched.Config{Logger: log})

	fmt.Println("=== sleep + join ===")
	sleepAndJoin(s)

	fmt.Println("=== mutex FIFO contention ===")
	mutexFIFO(s)

	fmt.Println("=== event latch and wake-one ===")
	eventLatchAndWakeOne(s)

	fmt.Println("=== cancellation ===")
	cancellation(s)

	fmt.Println("=== timeout ===")
	timeout(s)

	fmt.Println("all task is over")
}

// sleepAndJoin is scenario 1: two sub-tasks sleep 1s and 2s respectively
// from main; main yields 4 times then joins both.
func sleepAndJoin(s *sched.Scheduler) {
	stack1 := make([]byte, 4096)
	stack2 := make([]byte, 4096)

	t1 := s.Spawn(stack1, func(any) {
		for i := 1; i <= 5; i++ {
			if err := s.Sleep(time.Second); err != nil {
				return
			}
			fmt.Printf("subtask-1 iteration %d\n", i)
		}
	}, nil)

	t2 := s.Spawn(stack2, func(any) {
		for i := 1; i <= 5; i++ {
			if err := s.Sleep(2 * time.Second); err != nil {
				return
			}
			fmt.Printf("subtask-2 iteration %d\n", i)
		}
	}, nil)

	for i := 0; i < 4; i++ {
		fmt.Println("main")
		s.Yield()
	}

	_ = s.Join(t1)
	_ = s.Join(t2)
}

// mutexFIFO is scenario 2: three tasks enqueue on the same mutex in order
// A, B, C; acquisition order must be A, B, C regardless of wake timing.
func mutexFIFO(s *sched.Scheduler) {
	m := corosync.NewMutex(s)
	_ = m.Lock() // main holds it first, so A/B/C all contend.

	order := make(chan string, 3)
	spawnLocker := func(name string) {
		stack := make([]byte, 4096)
		s.Spawn(stack, func(any) {
			_ = m.Lock()
			order <- name
			m.Unlock()
		}, nil)
	}
	spawnLocker("A")
	s.Yield()
	spawnLocker("B")
	s.Yield()
	spawnLocker("C")
	s.Yield()

	m.Unlock() // release main's hold; A, B, C should drain in that order.
	for i := 0; i < 3; i++ {
		s.Yield()
	}
	close(order)
	for name := range order {
		fmt.Println("acquired:", name)
	}
}

// eventLatchAndWakeOne covers scenarios 3 and 4: a Set before any Wait
// latches (the next Wait returns without suspending); with two waiters
// queued, a single Set wakes exactly the head.
func eventLatchAndWakeOne(s *sched.Scheduler) {
	e := corosync.NewEvent(s)
	e.Set()
	if err := e.Wait(); err != nil {
		fmt.Println("unexpected error on latched wait:", err)
	} else {
		fmt.Println("latched wait returned immediately")
	}

	woke := make(chan string, 2)
	stackA := make([]byte, 4096)
	stackB := make([]byte, 4096)
	s.Spawn(stackA, func(any) {
		_ = e.Wait()
		woke <- "waiter-A"
	}, nil)
	s.Spawn(stackB, func(any) {
		_ = e.Wait()
		woke <- "waiter-B"
	}, nil)
	s.Yield()
	s.Yield()

	e.Set()
	s.Yield()
	s.Yield()
	close(woke)
	for name := range woke {
		fmt.Println("event woke:", name)
	}
}

// cancellation is scenario 5: task X waits on an event; another task
// cancels X; X resumes with ErrCancelled and is no longer queued on e.
func cancellation(s *sched.Scheduler) {
	e := corosync.NewEvent(s)
	var x *task.Task
	result := make(chan error, 1)
	stack := make([]byte, 4096)
	x = s.Spawn(stack, func(any) {
		result <- e.Wait()
	}, nil)
	s.Yield()

	s.CancelWait(x)
	s.Yield()
	s.Yield()

	close(result)
	fmt.Println("cancelled wait returned:", <-result)
}

// timeout is scenario 6: event_wait_timeout with no Set returns after the
// deadline with the documented failure return.
func timeout(s *sched.Scheduler) {
	e := corosync.NewEvent(s)
	result := make(chan error, 1)
	stack := make([]byte, 4096)
	t := s.Spawn(stack, func(any) {
		result <- e.WaitTimeout(50 * time.Millisecond)
	}, nil)

	// Join rather than poll Yield: a lone Yield with nothing else runnable
	// returns immediately without advancing the Timer Service (same as a
	// bare runtime.Gosched() would), so only a suspending wait - Join -
	// lets the idle wait actually run out the clock to the deadline.
	_ = s.Join(t)
	fmt.Println("timed-out wait returned:", <-result)
}
