// Package session drives one day's learning flow:
// Learn -> Notes -> QuizRecall -> QuizDefine -> QuizSentence -> Complete.
// Abandonment at any point leaves no completion stamp; the next eligible
// trigger relaunches from Learn with a fresh attempt.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/example/vocabagent/internal/corpus"
	"github.com/example/vocabagent/internal/evaluator"
	"github.com/example/vocabagent/internal/streak"
	"github.com/example/vocabagent/pkg/models"
)

// State identifies a stage of the session flow
type State int

const (
	StateLearn State = iota
	StateNotes
	StateQuizRecall
	StateQuizDefine
	StateQuizSentence
	StateComplete
	StateAbandoned
)

func (s State) String() string {
	switch s {
	case StateLearn:
		return "learn"
	case StateNotes:
		return "notes"
	case StateQuizRecall:
		return "quiz-recall"
	case StateQuizDefine:
		return "quiz-define"
	case StateQuizSentence:
		return "quiz-sentence"
	case StateComplete:
		return "complete"
	case StateAbandoned:
		return "abandoned"
	}
	return "unknown"
}

// ErrAbandoned is returned when the user exits before completing
var ErrAbandoned = errors.New("session abandoned")

// ErrCorpusExhausted is returned when every corpus word is mastered
var ErrCorpusExhausted = errors.New("all corpus words are mastered")

// AttemptStore is the slice of the progress store a session writes to
type AttemptStore interface {
	Begin(attempt *models.Attempt) error
	GetByDate(date string) (*models.Attempt, error)
	SaveNotes(date, notes string) error
	RecordStep(date string, step models.QuizStep, pass bool, response string) error
	Complete(date string, completedAt time.Time, masteryThreshold int) error
	CompletedDates() ([]string, error)
}

// WordStore is the slice of the progress store tracking per-word history
type WordStore interface {
	MarkShown(word, date, enrichment string) error
	History(word string) (*models.WordHistory, error)
	All() ([]models.WordHistory, error)
}

// Enricher merges external dictionary data over a corpus entry
type Enricher interface {
	Enrich(ctx context.Context, word models.Word) (models.Word, error)
}

// Options wires a session's collaborators
type Options struct {
	Attempts         AttemptStore
	Words            WordStore
	Corpus           *corpus.Corpus
	Enricher         Enricher // optional, nil disables enrichment
	Evaluator        evaluator.Evaluator
	IO               IO
	MasteryThreshold int
	// WriteStamp creates the day's completion stamp; the gatekeeper
	// package owns the stamp lifecycle, the session only invokes it
	WriteStamp func(day time.Time) error
}

// Session runs a single day's flow
type Session struct {
	opts  Options
	picks *wordPicker
}

// New creates a session from its collaborators
func New(opts Options) *Session {
	return &Session{
		opts:  opts,
		picks: &wordPicker{words: opts.Words, corpus: opts.Corpus},
	}
}

// Run executes the full state machine for the calendar day of now.
// It returns nil on completion, ErrAbandoned on user exit, and any
// other error for a persistence failure, which aborts the attempt
// cleanly: the row stays with completed=false and no stamp is written.
func (s *Session) Run(ctx context.Context, now time.Time) error {
	day := now.Format(streak.DateLayout)

	word, err := s.picks.pick(ctx, day, s.opts.Enricher)
	if err != nil {
		return err
	}

	// A fresh attempt always overwrites a same-day partial one
	if err := s.opts.Attempts.Begin(&models.Attempt{Date: day, Word: word.Headword}); err != nil {
		return err
	}

	s.showHeader(word, now)

	state := StateLearn
	for {
		var err error
		next := StateComplete

		switch state {
		case StateLearn:
			err = s.stepLearn(word)
			next = StateNotes
		case StateNotes:
			err = s.stepNotes(day)
			next = StateQuizRecall
		case StateQuizRecall:
			err = s.stepRecall(day, word)
			next = StateQuizDefine
		case StateQuizDefine:
			err = s.stepDefine(day, word)
			next = StateQuizSentence
		case StateQuizSentence:
			err = s.stepSentence(ctx, day, word)
			next = StateComplete
		case StateComplete:
			return s.complete(day, now, word)
		}

		if err != nil {
			if isUserExit(err) {
				return ErrAbandoned
			}
			return err
		}
		state = next
	}
}

func (s *Session) showHeader(word models.Word, now time.Time) {
	current := 0
	if dates, err := s.opts.Attempts.CompletedDates(); err == nil {
		current = streak.AsOfStrings(dates, now).Current
	}
	s.opts.IO.Say("")
	s.opts.IO.Say("==================================================")
	s.opts.IO.Say("  VOCAB AGENT  |  Streak: %d %s", current, plural(current, "day"))
	s.opts.IO.Say("==================================================")
	s.opts.IO.Say("  Today's word: %s", word.Headword)
	s.opts.IO.Say("--------------------------------------------------")
}

func (s *Session) stepLearn(word models.Word) error {
	s.opts.IO.Say("")
	s.opts.IO.Say("  %s  %s  (%s)", word.Headword, word.Phonetic, word.PartOfSpeech)
	s.opts.IO.Say("")
	for i, d := range word.Definitions {
		s.opts.IO.Say("  %d. %s", i+1, d.Text)
		if d.Example != "" {
			s.opts.IO.Say("     %q", d.Example)
		}
	}
	if len(word.Synonyms) > 0 {
		limit := len(word.Synonyms)
		if limit > 6 {
			limit = 6
		}
		s.opts.IO.Say("")
		s.opts.IO.Say("  Synonyms: %s", strings.Join(word.Synonyms[:limit], ", "))
	}
	s.opts.IO.Say("")
	_, err := s.prompt("  Take a moment to absorb. Press Enter to take notes. ")
	return err
}

func (s *Session) stepNotes(day string) error {
	s.opts.IO.Say("")
	s.opts.IO.Say("  Notes")
	s.opts.IO.Say("  Think about mnemonics, associations, when you'd use it.")
	notes, err := s.prompt("  Your notes: ")
	if err != nil {
		return err
	}
	if err := s.opts.Attempts.SaveNotes(day, notes); err != nil {
		return err
	}
	s.opts.IO.Say("  Notes saved.")
	return nil
}

// stepRecall shows the definition and asks for the headword. One retry
// is allowed (with a hint) before the step is marked failed; failure is
// recorded, not gating.
func (s *Session) stepRecall(day string, word models.Word) error {
	s.opts.IO.Say("")
	s.opts.IO.Say("  Quiz 1/3: Recall")
	s.opts.IO.Say("  Definition: %s", word.PrimaryDefinition())

	answer, err := s.prompt("  Word: ")
	if err != nil {
		return err
	}
	pass := answersMatch(answer, word.Headword)
	if !pass {
		s.opts.IO.Say("  Not quite. Hint: %s", hint(word.Headword))
		answer, err = s.prompt("  Word: ")
		if err != nil {
			return err
		}
		pass = answersMatch(answer, word.Headword)
	}

	if pass {
		s.opts.IO.Say("  Correct!")
	} else {
		s.opts.IO.Say("  The word was: %s", word.Headword)
	}
	return s.opts.Attempts.RecordStep(day, models.StepRecall, pass, answer)
}

// stepDefine records the user's own definition for self-review; there
// is no automatic correctness check
func (s *Session) stepDefine(day string, word models.Word) error {
	s.opts.IO.Say("")
	s.opts.IO.Say("  Quiz 2/3: Define")
	answer, err := s.prompt(fmt.Sprintf("  Define %q in your own words: ", word.Headword))
	if err != nil {
		return err
	}
	s.opts.IO.Say("  Saved for self-review.")
	return s.opts.Attempts.RecordStep(day, models.StepDefine, true, answer)
}

func (s *Session) stepSentence(ctx context.Context, day string, word models.Word) error {
	s.opts.IO.Say("")
	s.opts.IO.Say("  Quiz 3/3: Use It")
	sentence, err := s.prompt(fmt.Sprintf("  Write a sentence using %q: ", word.Headword))
	if err != nil {
		return err
	}
	judgment := s.opts.Evaluator.Judge(ctx, word, sentence)
	s.opts.IO.Say("  %s", judgment.Feedback)
	return s.opts.Attempts.RecordStep(day, models.StepSentence, judgment.Pass, sentence)
}

// complete persists the finished attempt atomically, writes the
// completion stamp, and refreshes the displayed streak
func (s *Session) complete(day string, now time.Time, word models.Word) error {
	if err := s.opts.Attempts.Complete(day, time.Now(), s.opts.MasteryThreshold); err != nil {
		return err
	}
	if err := s.opts.WriteStamp(now); err != nil {
		log.Printf("Failed to write completion stamp: %v", err)
	}

	current := 0
	if dates, err := s.opts.Attempts.CompletedDates(); err == nil {
		current = streak.AsOfStrings(dates, now).Current
	}

	s.opts.IO.Say("")
	s.opts.IO.Say("  ******************************************")
	s.opts.IO.Say("  Congratulations! You studied: %s", word.Headword)
	s.opts.IO.Say("  Current streak: %d %s", current, plural(current, "day"))
	s.opts.IO.Say("  Come back tomorrow for a new word!")
	s.opts.IO.Say("  ******************************************")
	return nil
}

// answersMatch compares a response against the headword after trimming,
// collapsing internal whitespace and folding case
func answersMatch(answer, headword string) bool {
	return normalize(answer) == normalize(headword)
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// hint masks all but the first letter of the word
func hint(word string) string {
	if word == "" {
		return ""
	}
	return word[:1] + strings.Repeat("_", len(word)-1)
}

func plural(n int, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}

// isUserExit distinguishes an explicit user exit from a store failure
func isUserExit(err error) bool {
	return errors.Is(err, errExit)
}

var errExit = errors.New("user exit")

// prompt reads a line, converting any IO failure (including EOF on
// Ctrl+D) into a user exit so the caller abandons instead of aborting
func (s *Session) prompt(p string) (string, error) {
	line, err := s.opts.IO.Prompt(p)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errExit, err)
	}
	return line, nil
}

var randIntn = rand.Intn

// wordPicker implements the selection policy: a random unseen word
// first, then the least-recently-shown unmastered word. A word already
// shown today resumes instead of burning a new corpus entry.
type wordPicker struct {
	words  WordStore
	corpus *corpus.Corpus
}

func (p *wordPicker) pick(ctx context.Context, day string, enricher Enricher) (models.Word, error) {
	histories, err := p.words.All()
	if err != nil {
		return models.Word{}, err
	}

	seen := make(map[string]models.WordHistory, len(histories))
	for _, h := range histories {
		seen[strings.ToLower(h.Word)] = h

		// Resume today's word after an abandoned session, reusing the
		// cached enrichment instead of a fresh network lookup
		if h.LastShown == day && !h.Mastered {
			if word, ok := cachedWord(h); ok {
				return word, nil
			}
			if word, ok := p.corpus.Lookup(h.Word); ok {
				return word, nil
			}
		}
	}

	word, ok := p.fresh(seen)
	if !ok {
		return models.Word{}, ErrCorpusExhausted
	}

	if enricher != nil {
		enriched, err := enricher.Enrich(ctx, word)
		if err != nil {
			log.Printf("Dictionary enrichment failed for %q: %v", word.Headword, err)
		} else {
			word = enriched
		}
	}

	enrichment, _ := json.Marshal(word)
	if err := p.words.MarkShown(word.Headword, day, string(enrichment)); err != nil {
		return models.Word{}, err
	}
	return word, nil
}

func (p *wordPicker) fresh(seen map[string]models.WordHistory) (models.Word, bool) {
	var unseen []models.Word
	for _, w := range p.corpus.Words() {
		if _, ok := seen[strings.ToLower(w.Headword)]; !ok {
			unseen = append(unseen, w)
		}
	}
	if len(unseen) > 0 {
		return unseen[randIntn(len(unseen))], true
	}

	// Every word has been shown: rotate through unmastered ones,
	// least recently studied first
	var best models.WordHistory
	found := false
	for _, h := range seen {
		if h.Mastered {
			continue
		}
		if !found || h.LastShown < best.LastShown {
			best = h
			found = true
		}
	}
	if !found {
		return models.Word{}, false
	}
	if word, ok := cachedWord(best); ok {
		return word, true
	}
	return p.corpus.Lookup(best.Word)
}

// cachedWord rebuilds a word from its stored enrichment JSON
func cachedWord(h models.WordHistory) (models.Word, bool) {
	if h.Enrichment == "" {
		return models.Word{}, false
	}
	var word models.Word
	if err := json.Unmarshal([]byte(h.Enrichment), &word); err != nil || word.Headword == "" {
		return models.Word{}, false
	}
	return word, true
}
