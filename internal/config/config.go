package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Default values for all recognized options
const (
	DefaultWindowStartHour  = 5  // earliest hour a session may launch (5:00)
	DefaultWindowEndHour    = 12 // latest hour a session may launch (12:00)
	DefaultLockStaleness    = 30 * time.Minute
	DefaultStampRetention   = 7 * 24 * time.Hour
	DefaultMasteryThreshold = 3
	DefaultEvaluatorMode    = "auto"
)

// Config holds all runtime options for the agent
type Config struct {
	// Directory holding the database, corpus file, lock and completion stamps
	DataDir string
	// Daily launch window, inclusive start hour and exclusive end hour
	WindowStartHour int
	WindowEndHour   int
	// Age beyond which a held lock is treated as abandoned
	LockStaleness time.Duration
	// How long completion stamps are kept before garbage collection
	StampRetention time.Duration
	// Sentence evaluator selection: "auto", "heuristic" or "external"
	EvaluatorMode string
	// Consecutive correct recalls before a word is retired from rotation
	MasteryThreshold int
	// Optional path overriding the embedded word corpus
	WordsFile string
}

// Load builds the configuration from environment variables,
// falling back to defaults for anything unset or out of range
func Load() *Config {
	cfg := &Config{
		DataDir:          defaultDataDir(),
		WindowStartHour:  DefaultWindowStartHour,
		WindowEndHour:    DefaultWindowEndHour,
		LockStaleness:    DefaultLockStaleness,
		StampRetention:   DefaultStampRetention,
		EvaluatorMode:    DefaultEvaluatorMode,
		MasteryThreshold: DefaultMasteryThreshold,
	}

	if dir := os.Getenv("VOCAB_DATA_DIR"); dir != "" {
		cfg.DataDir = dir
	}
	if h, ok := envHour("VOCAB_WINDOW_START"); ok {
		cfg.WindowStartHour = h
	}
	if h, ok := envHour("VOCAB_WINDOW_END"); ok {
		cfg.WindowEndHour = h
	}
	if d, ok := envDuration("VOCAB_LOCK_STALENESS"); ok {
		cfg.LockStaleness = d
	}
	if d, ok := envDuration("VOCAB_STAMP_RETENTION"); ok {
		cfg.StampRetention = d
	}
	switch mode := os.Getenv("VOCAB_EVALUATOR_MODE"); mode {
	case "auto", "heuristic", "external":
		cfg.EvaluatorMode = mode
	}
	if v := os.Getenv("VOCAB_MASTERY_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			cfg.MasteryThreshold = n
		}
	}
	if f := os.Getenv("VOCAB_WORDS_FILE"); f != "" {
		cfg.WordsFile = f
	}

	return cfg
}

// InWindow reports whether the given time falls inside the daily launch window
func (c *Config) InWindow(now time.Time) bool {
	hour := now.Hour()
	return hour >= c.WindowStartHour && hour < c.WindowEndHour
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".vocab-agent"
	}
	return filepath.Join(home, ".vocab-agent")
}

func envHour(name string) (int, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	if h, err := strconv.Atoi(v); err == nil && h >= 0 && h <= 23 {
		return h, true
	}
	return 0, false
}

func envDuration(name string) (time.Duration, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d, true
	}
	return 0, false
}
