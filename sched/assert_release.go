//go:build !debug

package sched

import "github.com/nanocoro/nanocoro/task"

// assertNoJoinWaiter is a no-op in release builds: a second join silently
// overwrites the join-waiter pointer, per spec §9's documented fallback.
func assertNoJoinWaiter(*task.Task) {}
