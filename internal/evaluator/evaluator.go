// Package evaluator judges the free-text sentence step of the quiz.
// Two variants exist behind one interface: a deterministic heuristic
// and an external language-model judge. The external variant always
// degrades to the heuristic on failure, so evaluation can never block
// or error out of a session.
package evaluator

import (
	"context"
	"log"
	"os"

	"github.com/example/vocabagent/pkg/models"
)

// Judgment is the uniform verdict returned by every evaluator variant
type Judgment struct {
	Pass     bool
	Feedback string
}

// Evaluator judges whether a sentence demonstrates understanding of a word
type Evaluator interface {
	Judge(ctx context.Context, word models.Word, sentence string) Judgment
}

// New selects an evaluator for the given mode: "heuristic" always uses
// the local rules, "external" requires OPENAI_API_KEY, and "auto" uses
// the external judge when configured, falling back to the heuristic.
func New(mode string) Evaluator {
	heuristic := Heuristic{}
	if mode == "heuristic" {
		return heuristic
	}

	external, err := NewExternal(os.Getenv("OPENAI_API_KEY"))
	if err != nil {
		if mode == "external" {
			log.Printf("External evaluator unavailable, using heuristic: %v", err)
		}
		return heuristic
	}

	return &fallbackEvaluator{external: external, heuristic: heuristic}
}

// fallbackEvaluator tries the external judge first and silently falls
// back to the heuristic on any failure
type fallbackEvaluator struct {
	external  *External
	heuristic Heuristic
}

func (f *fallbackEvaluator) Judge(ctx context.Context, word models.Word, sentence string) Judgment {
	judgment, err := f.external.Judge(ctx, word, sentence)
	if err != nil {
		log.Printf("External evaluation failed, using heuristic: %v", err)
		return f.heuristic.Judge(ctx, word, sentence)
	}
	return judgment
}
