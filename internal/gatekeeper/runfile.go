package gatekeeper

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// The run file holds the pid of an in-flight session. It outlives the
// launch lock: the lock covers only the launch decision, while the run
// file guards against a second session starting mid-quiz.
const runFileName = "session.pid"

func runFilePath(dataDir string) string {
	return filepath.Join(dataDir, runFileName)
}

// MarkRunning records this process as the active session
func MarkRunning(dataDir string) error {
	return os.WriteFile(runFilePath(dataDir), []byte(strconv.Itoa(os.Getpid())), 0644)
}

// ClearRunning removes the active-session marker
func ClearRunning(dataDir string) {
	os.Remove(runFilePath(dataDir))
}

// SessionRunning reports whether a session process is currently alive.
// A run file pointing at a dead pid (crashed session) does not count.
func SessionRunning(dataDir string) bool {
	data, err := os.ReadFile(runFilePath(dataDir))
	if err != nil {
		return false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return false
	}
	return processAlive(pid)
}
