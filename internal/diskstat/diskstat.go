// Package diskstat reports free/total space on the filesystem backing a
// path, for the report's informational before/after summary.
package diskstat

import (
	"github.com/shirou/gopsutil/v4/disk"
)

// Usage holds total and free bytes on a filesystem. The zero value
// represents "unavailable".
type Usage struct {
	Total uint64
	Free  uint64
}

// ForPath returns the disk usage of the filesystem containing path. On
// failure (unsupported platform, permission denied, nonexistent path) it
// returns a zeroed Usage and a non-nil error; callers should degrade
// gracefully, never fail the scan or deletion on this error.
func ForPath(path string) (Usage, error) {
	stat, err := disk.Usage(path)
	if err != nil {
		return Usage{}, err
	}
	return Usage{Total: stat.Total, Free: stat.Free}, nil
}
