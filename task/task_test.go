package task

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQueueFIFO(t *testing.T) {
	var q Queue
	a := &Task{ID: 1}
	b := &Task{ID: 2}
	c := &Task{ID: 3}

	q.Push(a)
	q.Push(b)
	q.Push(c)

	require.False(t, q.Empty())
	require.Same(t, a, q.Pop())
	require.Same(t, b, q.Pop())
	require.Same(t, c, q.Pop())
	require.True(t, q.Empty())
	require.Nil(t, q.Pop())
}

func TestQueueRemoveMiddle(t *testing.T) {
	var q Queue
	a := &Task{ID: 1}
	b := &Task{ID: 2}
	c := &Task{ID: 3}
	q.Push(a)
	q.Push(b)
	q.Push(c)

	require.True(t, q.Remove(b), "Remove(b) should report found")
	require.False(t, q.Remove(b), "second Remove(b) should report not found")

	var got []*Task
	for tk := q.Pop(); tk != nil; tk = q.Pop() {
		got = append(got, tk)
	}
	require.Equal(t, []*Task{a, c}, got)
}

func TestQueueRemoveHeadAndTail(t *testing.T) {
	var q Queue
	a := &Task{ID: 1}
	q.Push(a)
	require.True(t, q.Remove(a))
	require.True(t, q.Empty())

	b := &Task{ID: 2}
	c := &Task{ID: 3}
	q.Push(b)
	q.Push(c)
	q.Remove(c) // tail removal must fix up q.tail
	q.Push(&Task{ID: 4})

	var got []uint64
	for tk := q.Pop(); tk != nil; tk = q.Pop() {
		got = append(got, tk.ID)
	}
	require.Equal(t, []uint64{2, 4}, got)
}

func TestCreateRunsEntryAndInvokesOnDone(t *testing.T) {
	done := make(chan *Task, 1)
	ran := make(chan struct{})
	root := NewRoot(0)

	tk := Create(1, make([]byte, 64), func(arg any) {
		close(ran)
	}, nil, func(t *Task) {
		done <- t
		Resume(root)
	})

	// Hand off to tk, then wait for it to signal completion back via onDone
	// resuming root - mirrors exactly what package sched's switchTo does.
	Resume(tk)
	Pause(root)

	select {
	case d := <-done:
		require.Same(t, tk, d)
	default:
		t.Fatal("onDone was not invoked before root was resumed")
	}
	select {
	case <-ran:
	default:
		t.Fatal("entry function did not run")
	}
	require.Equal(t, Dead, tk.State())
}

func TestStateString(t *testing.T) {
	cases := map[State]string{
		Runnable:  "runnable",
		Sleeping:  "sleeping",
		Waiting:   "waiting",
		Dead:      "dead",
		State(99): "unknown",
	}
	for s, want := range cases {
		require.Equal(t, want, s.String())
	}
}
