package deps

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// CheckBatchRoot verifies that the batch root exists, is writable, and sits
// on a filesystem with at least minFreeGiB gibibytes available.
func CheckBatchRoot(path string, minFreeGiB int) Status {
	status := Status{Name: "Batch root", Command: path, Description: "AIPs directory"}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			status.Detail = "does not exist"
		} else {
			status.Detail = fmt.Sprintf("stat: %v", err)
		}
		return status
	}
	if !info.IsDir() {
		status.Detail = "is not a directory"
		return status
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		status.Detail = fmt.Sprintf("insufficient permissions: %v", err)
		return status
	}

	free, err := FreeBytes(path)
	if err != nil {
		status.Detail = fmt.Sprintf("statfs: %v", err)
		return status
	}
	required := uint64(minFreeGiB) * 1 << 30
	if free < required {
		status.Detail = fmt.Sprintf("only %d GiB free, %d GiB required", free>>30, minFreeGiB)
		return status
	}

	status.Available = true
	status.Detail = fmt.Sprintf("%d GiB free", free>>30)
	return status
}

// FreeBytes reports the bytes available to unprivileged users on the
// filesystem containing path.
func FreeBytes(path string) (uint64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, err
	}
	return stat.Bavail * uint64(stat.Bsize), nil
}
