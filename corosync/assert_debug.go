//go:build debug

package corosync

import (
	"fmt"

	"github.com/nanocoro/nanocoro/task"
)

// assertMutexOwner enforces that Unlock is only ever called by the
// mutex's current owner (spec §7: unlocking an un-owned mutex is
// undefined behavior, to be caught by debug assertions).
func assertMutexOwner(owner, self *task.Task) {
	if owner != self {
		panic(fmt.Sprintf("nanocoro: Unlock called by %s, which does not own the mutex (owner %s)", self, owner))
	}
}
