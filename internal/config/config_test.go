package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, name := range []string{
		"VOCAB_DATA_DIR", "VOCAB_WINDOW_START", "VOCAB_WINDOW_END",
		"VOCAB_LOCK_STALENESS", "VOCAB_STAMP_RETENTION",
		"VOCAB_EVALUATOR_MODE", "VOCAB_MASTERY_THRESHOLD", "VOCAB_WORDS_FILE",
	} {
		t.Setenv(name, "")
	}

	cfg := Load()
	if cfg.WindowStartHour != 5 || cfg.WindowEndHour != 12 {
		t.Errorf("Expected default window 5-12, got %d-%d", cfg.WindowStartHour, cfg.WindowEndHour)
	}
	if cfg.LockStaleness != 30*time.Minute {
		t.Errorf("Expected default staleness 30m, got %s", cfg.LockStaleness)
	}
	if cfg.StampRetention != 7*24*time.Hour {
		t.Errorf("Expected default retention 7 days, got %s", cfg.StampRetention)
	}
	if cfg.EvaluatorMode != "auto" {
		t.Errorf("Expected default evaluator mode auto, got %s", cfg.EvaluatorMode)
	}
	if cfg.MasteryThreshold != 3 {
		t.Errorf("Expected default mastery threshold 3, got %d", cfg.MasteryThreshold)
	}
	if cfg.DataDir == "" {
		t.Error("Expected a default data directory")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("VOCAB_DATA_DIR", "/tmp/vocab-test")
	t.Setenv("VOCAB_WINDOW_START", "6")
	t.Setenv("VOCAB_WINDOW_END", "22")
	t.Setenv("VOCAB_LOCK_STALENESS", "10m")
	t.Setenv("VOCAB_EVALUATOR_MODE", "heuristic")
	t.Setenv("VOCAB_MASTERY_THRESHOLD", "5")

	cfg := Load()
	if cfg.DataDir != "/tmp/vocab-test" {
		t.Errorf("Expected data dir override, got %s", cfg.DataDir)
	}
	if cfg.WindowStartHour != 6 || cfg.WindowEndHour != 22 {
		t.Errorf("Expected window 6-22, got %d-%d", cfg.WindowStartHour, cfg.WindowEndHour)
	}
	if cfg.LockStaleness != 10*time.Minute {
		t.Errorf("Expected staleness 10m, got %s", cfg.LockStaleness)
	}
	if cfg.EvaluatorMode != "heuristic" {
		t.Errorf("Expected heuristic mode, got %s", cfg.EvaluatorMode)
	}
	if cfg.MasteryThreshold != 5 {
		t.Errorf("Expected mastery threshold 5, got %d", cfg.MasteryThreshold)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("VOCAB_WINDOW_START", "25")
	t.Setenv("VOCAB_WINDOW_END", "-1")
	t.Setenv("VOCAB_LOCK_STALENESS", "soon")
	t.Setenv("VOCAB_MASTERY_THRESHOLD", "0")
	t.Setenv("VOCAB_EVALUATOR_MODE", "psychic")

	cfg := Load()
	if cfg.WindowStartHour != 5 || cfg.WindowEndHour != 12 {
		t.Error("Expected out-of-range hours to fall back to defaults")
	}
	if cfg.LockStaleness != 30*time.Minute {
		t.Error("Expected unparseable staleness to fall back to the default")
	}
	if cfg.MasteryThreshold != 3 {
		t.Error("Expected non-positive threshold to fall back to the default")
	}
	if cfg.EvaluatorMode != "auto" {
		t.Error("Expected unknown evaluator mode to fall back to auto")
	}
}

func TestInWindow(t *testing.T) {
	cfg := &Config{WindowStartHour: 5, WindowEndHour: 12}

	cases := []struct {
		hour int
		want bool
	}{
		{4, false},
		{5, true},
		{11, true},
		{12, false},
		{19, false},
	}
	for _, tc := range cases {
		now := time.Date(2024, time.May, 10, tc.hour, 30, 0, 0, time.Local)
		if got := cfg.InWindow(now); got != tc.want {
			t.Errorf("InWindow at %d:30 = %v, want %v", tc.hour, got, tc.want)
		}
	}
}
