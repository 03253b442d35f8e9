package sched

import "sync"

var (
	defaultMu  sync.Mutex
	defaultSch *Scheduler
)

// Init installs cfg as the process-wide scheduler, binding the calling host
// thread as the scheduler thread (spec §4.2: scheduler_init). It fails only
// on re-init.
func Init(cfg Config) error {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultSch != nil {
		return ErrAlreadyInitialized
	}
	defaultSch = New(cfg)
	return nil
}

// Default returns the process-wide scheduler installed by Init. Panics if
// Init has not been called - calling any scheduling primitive before
// scheduler_init is a caller bug, not a runtime condition (spec §7).
func Default() *Scheduler {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultSch == nil {
		panic("nanocoro: sched.Default called before sched.Init")
	}
	return defaultSch
}

// resetDefaultForTest clears the process-wide scheduler. Test-only escape
// hatch for package tests that need to call Init more than once per
// process; unexported so it cannot leak into embedder code.
func resetDefaultForTest() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultSch = nil
}
