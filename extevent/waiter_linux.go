//go:build linux

package extevent

import (
	"time"

	"golang.org/x/sys/unix"
)

// FDWaiter is a Waiter backed by a Linux eventfd, for embedders that already
// run an epoll/poll-based I/O engine on another OS thread and want the
// scheduler's idle wait to sit in that same poll set rather than spin up a
// dedicated goroutine. Grounded directly on go-eventloop's wakeup_linux.go:
// unix.Eventfd as a combined read/write wake descriptor, written with a
// single uint64 and drained by reading it back.
type FDWaiter struct {
	fd int
}

// NewFDWaiter creates a nonblocking, close-on-exec eventfd.
func NewFDWaiter() (*FDWaiter, error) {
	fd, err := unix.Eventfd(0, unix.EFD_CLOEXEC|unix.EFD_NONBLOCK)
	if err != nil {
		return nil, err
	}
	return &FDWaiter{fd: fd}, nil
}

// Wait polls the eventfd for up to timeout and drains it if readable.
func (w *FDWaiter) Wait(timeout time.Duration) bool {
	ms := int(timeout / time.Millisecond)
	if timeout > 0 && ms == 0 {
		ms = 1
	}
	if timeout <= 0 {
		ms = 0
	}
	fds := []unix.PollFd{{Fd: int32(w.fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, ms)
	if err != nil || n <= 0 {
		return false
	}
	var buf [8]byte
	_, _ = unix.Read(w.fd, buf[:])
	return true
}

// Notify writes to the eventfd, waking a blocked Wait.
func (w *FDWaiter) Notify() {
	var one uint64 = 1
	buf := []byte{byte(one), byte(one >> 8), byte(one >> 16), byte(one >> 24), 0, 0, 0, 0}
	_, _ = unix.Write(w.fd, buf)
}

// Close releases the eventfd.
func (w *FDWaiter) Close() error {
	return unix.Close(w.fd)
}
