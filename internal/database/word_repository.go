package database

import (
	"database/sql"
	"fmt"

	"github.com/example/vocabagent/pkg/models"
)

// WordRepository handles database operations for per-word study history
type WordRepository struct{}

// NewWordRepository creates a new repository instance
func NewWordRepository() *WordRepository {
	return &WordRepository{}
}

// MarkShown records that a word was presented on the given day, caching the
// enriched word data so a relaunch can reuse it without a network lookup
func (r *WordRepository) MarkShown(word, date, enrichment string) error {
	_, err := DB.Exec(`
		INSERT INTO words_seen (word, first_shown, last_shown, times_shown, enrichment)
		VALUES ($1, $2, $2, 1, $3)
		ON CONFLICT (word) DO UPDATE SET
			last_shown = $2,
			times_shown = words_seen.times_shown + 1,
			enrichment = $3
	`, word, date, enrichment)
	if err != nil {
		return fmt.Errorf("failed to mark word shown: %v", err)
	}
	return nil
}

// History returns the study history for a word, or nil if never shown
func (r *WordRepository) History(word string) (*models.WordHistory, error) {
	var history models.WordHistory
	err := DB.Get(&history, "SELECT * FROM words_seen WHERE word = $1", word)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word history: %v", err)
	}
	return &history, nil
}

// All returns the history of every word ever shown
func (r *WordRepository) All() ([]models.WordHistory, error) {
	var histories []models.WordHistory
	err := DB.Select(&histories, "SELECT * FROM words_seen ORDER BY word ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list word history: %v", err)
	}
	return histories, nil
}
