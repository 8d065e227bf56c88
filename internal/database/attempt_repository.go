package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/example/vocabagent/pkg/models"
)

// AttemptRepository handles database operations for daily attempts
type AttemptRepository struct{}

// NewAttemptRepository creates a new repository instance
func NewAttemptRepository() *AttemptRepository {
	return &AttemptRepository{}
}

// Begin records a fresh attempt for the given day. If a partial attempt
// already exists for that day it is overwritten, not merged: relaunching
// after an abandoned session always starts clean.
func (r *AttemptRepository) Begin(attempt *models.Attempt) error {
	_, err := DB.Exec(`
		INSERT INTO attempts (date, word)
		VALUES ($1, $2)
		ON CONFLICT (date) DO UPDATE SET
			word = $2,
			notes = '',
			recall_pass = FALSE,
			recall_response = '',
			define_pass = FALSE,
			define_response = '',
			sentence_pass = FALSE,
			sentence_response = '',
			completed = FALSE,
			completed_at = ''
	`, attempt.Date, attempt.Word)
	if err != nil {
		return fmt.Errorf("failed to begin attempt: %v", err)
	}
	return nil
}

// GetByDate returns the attempt for a calendar day, or nil if none exists
func (r *AttemptRepository) GetByDate(date string) (*models.Attempt, error) {
	var attempt models.Attempt
	err := DB.Get(&attempt, "SELECT * FROM attempts WHERE date = $1", date)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get attempt: %v", err)
	}
	return &attempt, nil
}

// SaveNotes stores the free-text notes on the day's attempt
func (r *AttemptRepository) SaveNotes(date, notes string) error {
	_, err := DB.Exec("UPDATE attempts SET notes = $1 WHERE date = $2", notes, date)
	if err != nil {
		return fmt.Errorf("failed to save notes: %v", err)
	}
	return nil
}

// RecordStep stores the outcome of a single quiz step on the day's attempt
func (r *AttemptRepository) RecordStep(date string, step models.QuizStep, pass bool, response string) error {
	var query string
	switch step {
	case models.StepRecall:
		query = "UPDATE attempts SET recall_pass = $1, recall_response = $2 WHERE date = $3"
	case models.StepDefine:
		query = "UPDATE attempts SET define_pass = $1, define_response = $2 WHERE date = $3"
	case models.StepSentence:
		query = "UPDATE attempts SET sentence_pass = $1, sentence_response = $2 WHERE date = $3"
	default:
		return fmt.Errorf("unknown quiz step: %s", step)
	}
	if _, err := DB.Exec(query, pass, response, date); err != nil {
		return fmt.Errorf("failed to record %s step: %v", step, err)
	}
	return nil
}

// Complete marks the day's attempt finished and updates the word's mastery
// bookkeeping in the same transaction: a correct recall extends the
// consecutive-recall run, a failed one resets it, and a run reaching
// masteryThreshold retires the word from rotation.
func (r *AttemptRepository) Complete(date string, completedAt time.Time, masteryThreshold int) error {
	tx, err := DB.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	var attempt models.Attempt
	if err := tx.Get(&attempt, "SELECT * FROM attempts WHERE date = $1", date); err != nil {
		return fmt.Errorf("failed to load attempt: %v", err)
	}

	_, err = tx.Exec(
		"UPDATE attempts SET completed = TRUE, completed_at = $1 WHERE date = $2",
		completedAt.Format(time.RFC3339), date,
	)
	if err != nil {
		return fmt.Errorf("failed to complete attempt: %v", err)
	}

	if attempt.RecallPass {
		_, err = tx.Exec(`
			UPDATE words_seen SET
				consecutive_recalls = consecutive_recalls + 1,
				mastered = mastered OR (consecutive_recalls + 1 >= $1)
			WHERE word = $2
		`, masteryThreshold, attempt.Word)
	} else {
		_, err = tx.Exec(
			"UPDATE words_seen SET consecutive_recalls = 0 WHERE word = $1",
			attempt.Word,
		)
	}
	if err != nil {
		return fmt.Errorf("failed to update word mastery: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit completion: %v", err)
	}
	return nil
}

// CompletedDates returns the distinct calendar days with a completed
// attempt, oldest first
func (r *AttemptRepository) CompletedDates() ([]string, error) {
	var dates []string
	err := DB.Select(&dates,
		"SELECT DISTINCT date FROM attempts WHERE completed = TRUE ORDER BY date ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to get completed dates: %v", err)
	}
	return dates, nil
}
