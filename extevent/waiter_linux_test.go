//go:build linux

package extevent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFDWaiterNotifyWakesWait(t *testing.T) {
	w, err := NewFDWaiter()
	require.NoError(t, err)
	defer w.Close()

	done := make(chan bool, 1)
	go func() { done <- w.Wait(time.Second) }()
	time.Sleep(10 * time.Millisecond)
	w.Notify()

	select {
	case woken := <-done:
		require.True(t, woken, "want true after Notify")
	case <-time.After(time.Second):
		t.Fatal("Notify did not wake the pending Wait")
	}
}

func TestFDWaiterWaitTimesOutWithNoNotify(t *testing.T) {
	w, err := NewFDWaiter()
	require.NoError(t, err)
	defer w.Close()

	require.False(t, w.Wait(20*time.Millisecond))
}

func TestFDWaiterNotifyLatchesBeforeWait(t *testing.T) {
	w, err := NewFDWaiter()
	require.NoError(t, err)
	defer w.Close()

	w.Notify()
	require.True(t, w.Wait(0), "a prior Notify should be pending")
}
