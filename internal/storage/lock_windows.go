//go:build windows

package storage

import "os"

// flockAcquire is a no-op on Windows. Mutual exclusion between mitraa
// processes rests on the PID written into the lock file and the stale
// check in cleanStaleLock.
func flockAcquire(file *os.File) error {
	return nil
}

func flockRelease(file *os.File) error {
	return nil
}

// isProcessRunning reports whether pid still has a live process. On
// Windows FindProcess opens a handle and fails once the process is gone.
func isProcessRunning(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	_ = proc.Release()
	return true
}
