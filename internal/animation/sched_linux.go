//go:build linux

package animation

import "golang.org/x/sys/unix"

// setRealtime moves the calling thread to SCHED_FIFO priority 1 so the box
// keeps a steady frame rate under load. It needs CAP_SYS_NICE.
func setRealtime() error {
	attr := unix.SchedAttr{
		Size:     unix.SizeofSchedAttr,
		Policy:   unix.SCHED_FIFO,
		Priority: 1,
	}
	return unix.SchedSetAttr(0, &attr, 0)
}
