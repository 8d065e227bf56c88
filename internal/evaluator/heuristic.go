package evaluator

import (
	"context"
	"strings"

	"github.com/example/vocabagent/pkg/models"
)

// MinSentenceTokens is the minimum number of whitespace-separated tokens
// a sentence must have to pass the heuristic check
const MinSentenceTokens = 4

// inflectionSuffixes are the endings accepted as inflected forms of the
// headword when checking whole-token containment
var inflectionSuffixes = []string{"", "s", "es", "ed", "d", "ing", "ly"}

// Heuristic is the deterministic, side-effect-free evaluator variant.
// It passes a sentence iff it contains the headword (or an inflected
// form) as a whole token, has enough tokens, and is not a copy of a
// known example sentence.
type Heuristic struct{}

// Judge applies the heuristic rules. The context is unused; the check
// is purely local and never blocks.
func (Heuristic) Judge(_ context.Context, word models.Word, sentence string) Judgment {
	if len(strings.Fields(sentence)) < MinSentenceTokens {
		return Judgment{Feedback: "Please write a longer sentence."}
	}

	if !containsWordToken(sentence, word.Headword) {
		return Judgment{Feedback: "Your sentence must contain the word."}
	}

	lower := strings.ToLower(strings.TrimSpace(sentence))
	for _, example := range word.Examples() {
		ex := strings.ToLower(strings.TrimSpace(example))
		if ex == "" {
			continue
		}
		if strings.Contains(lower, ex) || strings.Contains(ex, lower) {
			return Judgment{Feedback: "Please write your own original sentence."}
		}
	}

	return Judgment{Pass: true, Feedback: "Nice sentence!"}
}

// containsWordToken reports whether any letter-token of the sentence is
// the headword or a simple inflected form of it, case-insensitive
func containsWordToken(sentence, headword string) bool {
	head := strings.ToLower(headword)
	for _, token := range letterTokens(sentence) {
		for _, suffix := range inflectionSuffixes {
			if token == head+suffix {
				return true
			}
		}
	}
	return false
}

// letterTokens splits text into lowercase runs of letters
func letterTokens(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= 'A' && r <= 'Z')
	})
}
