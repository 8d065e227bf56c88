// Package cli wires the executable's commands. The root command is the
// shared invocation surface for every trigger source: it runs the
// gatekeeper and always exits 0, so unattended triggers never report
// spurious failures.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/vocabagent/internal/config"
	"github.com/example/vocabagent/internal/corpus"
	"github.com/example/vocabagent/internal/database"
	"github.com/example/vocabagent/internal/dictionary"
	"github.com/example/vocabagent/internal/evaluator"
	"github.com/example/vocabagent/internal/gatekeeper"
	"github.com/example/vocabagent/internal/session"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vocabagent",
	Short: "Daily vocabulary learning session",
	Long: "Vocabagent delivers one vocabulary learning session per day.\n" +
		"Invoked with no arguments it arbitrates via the gatekeeper and,\n" +
		"if today's session has not yet run, starts it.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		runOnce()
		return nil
	},
}

// Execute runs the CLI. The exit code is 0 even on skip or denied
// outcomes; triggers run unattended and must never alarm the user.
func Execute() {
	rootCmd.Execute()
}

// runOnce performs a single trigger invocation
func runOnce() {
	cfg := config.Load()

	if err := database.Connect(cfg.DataDir); err != nil {
		log.Printf("Failed to open progress store: %v", err)
		return
	}
	defer database.Close()

	gate := gatekeeper.New(cfg, sessionLauncher(cfg))
	result := gate.AttemptLaunch(time.Now())
	if result == gatekeeper.Denied {
		// Benign: another invocation is arbitrating right now
		log.Printf("Launch denied, another invocation holds the lock")
	}
}

// sessionLauncher builds the LaunchFunc running the interactive session
// attached to the terminal
func sessionLauncher(cfg *config.Config) gatekeeper.LaunchFunc {
	return func(now time.Time) error {
		words, err := corpus.Load(cfg.WordsFile)
		if err != nil {
			return fmt.Errorf("failed to load corpus: %v", err)
		}

		sess := session.New(session.Options{
			Attempts:         database.NewAttemptRepository(),
			Words:            database.NewWordRepository(),
			Corpus:           words,
			Enricher:         dictionary.New(),
			Evaluator:        evaluator.New(cfg.EvaluatorMode),
			IO:               session.NewTerminal(os.Stdin, os.Stdout),
			MasteryThreshold: cfg.MasteryThreshold,
			WriteStamp: func(day time.Time) error {
				return gatekeeper.WriteStamp(cfg.DataDir, day)
			},
		})

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		switch err := sess.Run(ctx, now); {
		case err == nil:
			return nil
		case errors.Is(err, session.ErrAbandoned):
			// No stamp was written; the next eligible trigger today
			// relaunches from the top with a fresh attempt
			log.Printf("Session abandoned before completion")
			return nil
		case errors.Is(err, session.ErrCorpusExhausted):
			fmt.Println("You've mastered every word in the corpus. Impressive.")
			return nil
		default:
			// The one user-visible failure: the store broke mid-session.
			// The partial attempt is preserved for inspection but not
			// counted toward the streak.
			fmt.Fprintf(os.Stderr, "Session aborted: %v\n", err)
			return nil
		}
	}
}
