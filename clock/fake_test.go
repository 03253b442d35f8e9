package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFakeNowAdvancesOnAdvance(t *testing.T) {
	f := NewFake()
	start := f.Now()
	f.Advance(5 * time.Second)
	require.True(t, f.Now().Equal(start.Add(5*time.Second)))
}

func TestFakeSleepZeroOrNegativeReturnsImmediately(t *testing.T) {
	f := NewFake()
	done := make(chan struct{})
	go func() {
		f.Sleep(0)
		f.Sleep(-time.Second)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Sleep(0) / Sleep(negative) should return without blocking")
	}
}

func TestFakeSleepBlocksUntilAdvancePastTarget(t *testing.T) {
	f := NewFake()
	woke := make(chan struct{})
	go func() {
		f.Sleep(10 * time.Second)
		close(woke)
	}()

	select {
	case <-woke:
		t.Fatal("Sleep returned before the clock advanced far enough")
	case <-time.After(50 * time.Millisecond):
	}

	f.Advance(4 * time.Second)
	select {
	case <-woke:
		t.Fatal("Sleep returned after a partial advance")
	case <-time.After(50 * time.Millisecond):
	}

	f.Advance(6 * time.Second)
	select {
	case <-woke:
	case <-time.After(time.Second):
		t.Fatal("Sleep did not return after the clock reached its target")
	}
}

func TestFakeSleepWakesOnOvershootAdvance(t *testing.T) {
	f := NewFake()
	woke := make(chan struct{})
	go func() {
		f.Sleep(time.Second)
		close(woke)
	}()
	time.Sleep(20 * time.Millisecond)
	f.Advance(time.Hour) // a single large jump must still satisfy a small Sleep.
	select {
	case <-woke:
	case <-time.After(time.Second):
		t.Fatal("Sleep did not wake on an overshooting Advance")
	}
}
