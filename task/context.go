package task

// context is nanocoro's pure-Go stand-in for the external make_context /
// jump_context pair (spec §4.1). A real platform backend would save and
// restore CPU registers and the stack pointer; this one parks a real
// goroutine on a channel. Handing control to a task is an unbuffered send
// on resumeCh; giving control up is a receive on the same channel from
// within that task's own goroutine. Because the channel is unbuffered and
// every suspending call immediately blocks on it after handing off to
// whichever task runs next, at most one task's goroutine is ever doing
// anything besides waiting on this channel - which is what makes the
// cooperative, single-threaded semantics in spec §5 hold despite each task
// being backed by a real goroutine.
type context struct {
	resumeCh chan struct{}
}

func newContext() *context {
	return &context{resumeCh: make(chan struct{})}
}

// resume hands control to the task owning this context. Must be called by
// the goroutine currently relinquishing control (never concurrently).
func (c *context) resume() {
	c.resumeCh <- struct{}{}
}

// park blocks the calling goroutine - which must be the task's own backing
// goroutine - until another task's switch hands control back to it.
func (c *context) park() {
	<-c.resumeCh
}
