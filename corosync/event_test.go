package corosync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nanocoro/nanocoro/clock"
	"github.com/nanocoro/nanocoro/sched"
)

func TestEventSetBeforeWaitLatches(t *testing.T) {
	s := sched.New(sched.Config{})
	e := NewEvent(s)
	e.Set()
	require.NoError(t, e.Wait())
}

func TestEventWaitBlocksUntilSet(t *testing.T) {
	s := sched.New(sched.Config{})
	e := NewEvent(s)
	var waitErr error
	woke := false
	s.Spawn(newStack(), func(any) {
		waitErr = e.Wait()
		woke = true
	}, nil)
	s.Yield() // let the waiter register and park.
	require.False(t, woke, "waiter ran before Set")

	e.Set()
	s.Yield()
	s.Yield()
	require.True(t, woke, "waiter never woke after Set")
	require.NoError(t, waitErr)
}

func TestEventSetWakesExactlyOneWaiter(t *testing.T) {
	s := sched.New(sched.Config{})
	e := NewEvent(s)
	woke := make(chan string, 2)
	s.Spawn(newStack(), func(any) {
		_ = e.Wait()
		woke <- "A"
	}, nil)
	s.Spawn(newStack(), func(any) {
		_ = e.Wait()
		woke <- "B"
	}, nil)
	s.Yield()
	s.Yield()

	e.Set()
	s.Yield()
	s.Yield()
	close(woke)

	var got []string
	for name := range woke {
		got = append(got, name)
	}
	require.Equal(t, []string{"A"}, got, "exactly the head waiter should be woken")
}

func TestEventWaitTimeoutNonPositiveFailsImmediately(t *testing.T) {
	s := sched.New(sched.Config{})
	e := NewEvent(s)
	require.ErrorIs(t, e.WaitTimeout(0), sched.ErrTimeout)
}

func TestEventWaitTimeoutFiresWithoutSet(t *testing.T) {
	fc := clock.NewFake()
	s := sched.New(sched.Config{Clock: fc})
	e := NewEvent(s)

	var waitErr error
	tk := s.Spawn(newStack(), func(any) {
		waitErr = e.WaitTimeout(5 * time.Second)
	}, nil)

	done := make(chan struct{})
	go func() {
		_ = s.Join(tk)
		close(done)
	}()

	deadline := time.After(5 * time.Second)
	for {
		select {
		case <-done:
			require.ErrorIs(t, waitErr, sched.ErrTimeout)
			return
		case <-deadline:
			t.Fatal("timed-out wait never fired")
		default:
			fc.Advance(time.Second)
			time.Sleep(time.Millisecond)
		}
	}
}

func TestEventWaitTimeoutRaceWonBySet(t *testing.T) {
	s := sched.New(sched.Config{})
	e := NewEvent(s)
	var waitErr error
	s.Spawn(newStack(), func(any) {
		waitErr = e.WaitTimeout(time.Hour)
	}, nil)
	s.Yield() // let it register the timed wait.

	e.Set()
	s.Yield()
	s.Yield()

	require.NoError(t, waitErr, "Set arrived before the deadline")
	require.Equal(t, 0, s.TimerCount(), "Set must deregister the pending timeout")
}

func TestCancelWaitOnEventWaiterRemovesFromQueue(t *testing.T) {
	s := sched.New(sched.Config{})
	e := NewEvent(s)
	var waitErr error
	x := s.Spawn(newStack(), func(any) {
		waitErr = e.Wait()
	}, nil)
	s.Yield()

	s.CancelWait(x)
	s.Yield()
	s.Yield()

	require.ErrorIs(t, waitErr, sched.ErrCancelled)

	// e must not think x is still queued: a subsequent Set should latch open
	// rather than trying to wake the now-gone x.
	e.Set()
	require.NoError(t, e.Wait())
}
