package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/manav03panchal/mitraa/internal/errors"
)

const (
	// MinFreeSpace is the minimum free space needed to open the database (10MB).
	MinFreeSpace = 10 * 1024 * 1024
	// MinFreeSpaceWarning is the threshold for warning about low disk space (50MB).
	MinFreeSpaceWarning = 50 * 1024 * 1024
)

// DiskSpaceInfo contains information about available disk space.
type DiskSpaceInfo struct {
	Path       string
	TotalBytes uint64
	FreeBytes  uint64
	UsedBytes  uint64
}

// FreePercent returns the percentage of free space.
func (d *DiskSpaceInfo) FreePercent() float64 {
	if d.TotalBytes == 0 {
		return 0
	}
	return float64(d.FreeBytes) / float64(d.TotalBytes) * 100
}

// existingAncestor returns path or its nearest existing parent.
func existingAncestor(path string) string {
	for {
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(path)
		if parent == path {
			return path
		}
		path = parent
	}
}

// CheckDiskSpace returns a *errors.StorageError wrapping errors.ErrDiskFull
// when the filesystem holding path has less than MinFreeSpace free. If the
// free space cannot be read the check passes.
func CheckDiskSpace(path string) error {
	info, err := GetDiskSpace(path)
	if err != nil {
		return nil
	}

	if info.FreeBytes < MinFreeSpace {
		return errors.NewStorageError("open", path, fmt.Errorf("%w: %d MB free, need at least %d MB",
			errors.ErrDiskFull,
			info.FreeBytes/(1024*1024),
			MinFreeSpace/(1024*1024)))
	}
	return nil
}

// CheckDiskSpaceWarning returns a warning message if disk space is low, or
// "" when it is adequate.
func CheckDiskSpaceWarning(path string) string {
	info, err := GetDiskSpace(path)
	if err != nil {
		return ""
	}

	if info.FreeBytes < MinFreeSpaceWarning {
		return fmt.Sprintf("low disk space (%d MB free)", info.FreeBytes/(1024*1024))
	}
	return ""
}

// EnsureDirectory creates the database directory with owner-only
// permissions after checking there is room for it.
func EnsureDirectory(path string) error {
	if err := CheckDiskSpace(path); err != nil {
		return err
	}

	if err := os.MkdirAll(path, 0700); err != nil {
		if isDiskFullError(err) {
			return errors.NewStorageError("mkdir", path, errors.ErrDiskFull)
		}
		return errors.NewStorageError("mkdir", path, err)
	}
	return nil
}

// wrapDiskFull maps an out-of-space write failure to errors.ErrDiskFull.
func wrapDiskFull(err error) error {
	if isDiskFullError(err) {
		return fmt.Errorf("%w: %v", errors.ErrDiskFull, err)
	}
	return err
}
