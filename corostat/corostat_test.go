package corostat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nanocoro/nanocoro/sched"
)

type fakeCounter struct {
	runQueueLen int
	timerCount  int
}

func (f fakeCounter) RunQueueLen() int { return f.runQueueLen }
func (f fakeCounter) TimerCount() int  { return f.timerCount }

func TestTakeReflectsCounter(t *testing.T) {
	got := Take(fakeCounter{runQueueLen: 3, timerCount: 2})
	require.Equal(t, Snapshot{RunQueueLen: 3, TimerCount: 2}, got)
}

func TestTakeAgainstRealScheduler(t *testing.T) {
	s := sched.New(sched.Config{})
	require.Equal(t, Snapshot{}, Take(s))

	s.Spawn(make([]byte, 4096), func(any) {
		_ = s.Sleep(time.Hour)
	}, nil)

	require.Equal(t, 1, Take(s).RunQueueLen, "spawned task not yet run")

	s.Yield() // let the spawned task register its sleep and park.

	got := Take(s)
	require.Equal(t, 0, got.RunQueueLen, "run queue should be empty once the sleeper parked")
	require.Equal(t, 1, got.TimerCount, "timer service should hold the sleeper's deadline")
}
