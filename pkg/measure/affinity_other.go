//go:build !linux

package measure

import (
	"runtime"

	log "github.com/sirupsen/logrus"
)

func pinToCPU(cpu int) (func(), error) {
	log.Warnf("CPU pinning is only supported on linux; measuring unpinned (requested CPU %d).", cpu)
	runtime.LockOSThread()

	return runtime.UnlockOSThread, nil
}
