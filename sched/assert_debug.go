//go:build debug

package sched

import (
	"fmt"

	"github.com/nanocoro/nanocoro/task"
)

// assertNoJoinWaiter enforces the single-joiner precondition spec §9 flags
// as worth asserting rather than silently overwriting: "a robust
// reimplementation should assert this precondition rather than silently
// overwrite the join-waiter pointer." Only compiled into debug builds
// (-tags debug), matching spec §7: "programming errors ... must be caught
// by debug assertions, not runtime returns."
func assertNoJoinWaiter(t *task.Task) {
	if jw := t.JoinWaiter(); jw != nil {
		panic(fmt.Sprintf("nanocoro: %s already has a joiner %s, second Join is a programming error", t, jw))
	}
}
