//go:build windows

package gatekeeper

import "os"

// processAlive reports whether a process with the given pid exists.
// On Windows FindProcess fails for dead pids, which is all we need.
func processAlive(pid int) bool {
	_, err := os.FindProcess(pid)
	return err == nil
}
