package filelock

import (
	"os"
	"strconv"
	"strings"
)

// HolderPID reads the process id recorded in the lock file at path. It
// reports false when the file does not exist, is empty, or does not contain
// a pid (acquisitions without WithPIDRecord leave no pid behind).
//
// This is a diagnostic read, not a liveness check: for the Create backend a
// recorded pid may belong to a crashed holder. Any staleness-recovery policy
// built on it (e.g. probing the pid and deleting the file) is an explicit
// caller decision; nothing in this package expires locks automatically.
func HolderPID(path string) (int, bool) {
	data, err := os.ReadFile(path) //#nosec G304 -- lock path is chosen by the caller
	if err != nil {
		return 0, false
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, true
}
