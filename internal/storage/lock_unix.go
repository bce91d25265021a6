//go:build !windows

package storage

import (
	"errors"
	"fmt"
	"os"
	"syscall"
)

// flockAcquire takes a non-blocking exclusive flock on the data directory's
// lock file. Contention maps to ErrLockAlreadyHeld so AcquireTimeout can
// keep polling.
func flockAcquire(file *os.File) error {
	err := syscall.Flock(int(file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, syscall.EWOULDBLOCK), errors.Is(err, syscall.EAGAIN):
		return ErrLockAlreadyHeld
	default:
		return fmt.Errorf("%w: flock %s: %v", ErrLockAcquireFailed, file.Name(), err)
	}
}

func flockRelease(file *os.File) error {
	return syscall.Flock(int(file.Fd()), syscall.LOCK_UN)
}

// isProcessRunning reports whether pid, read from a leftover lock file,
// still belongs to a live process. Signal 0 probes without delivering.
// EPERM means the process exists under another user.
func isProcessRunning(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}
