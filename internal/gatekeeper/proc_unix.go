//go:build !windows

package gatekeeper

import (
	"os"
	"syscall"
)

// processAlive reports whether a process with the given pid exists,
// using the null signal
func processAlive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}
