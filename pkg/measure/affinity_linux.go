//go:build linux

package measure

import (
	"runtime"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// pinToCPU binds the calling goroutine to its OS thread and restricts that
// thread to a single CPU. The returned function restores the previous mask.
func pinToCPU(cpu int) (func(), error) {
	runtime.LockOSThread()

	var previous unix.CPUSet
	if err := unix.SchedGetaffinity(0, &previous); err != nil {
		runtime.UnlockOSThread()
		return nil, err
	}

	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		runtime.UnlockOSThread()
		return nil, err
	}
	log.Debugf("Measurement pinned to CPU %d", cpu)

	return func() {
		if err := unix.SchedSetaffinity(0, &previous); err != nil {
			log.Warnf("Failed to restore CPU affinity: %v", err)
		}
		runtime.UnlockOSThread()
	}, nil
}
