package models

import "strings"

// Word represents an immutable vocabulary corpus entry
type Word struct {
	Headword     string       `json:"word"`
	Phonetic     string       `json:"phonetic,omitempty"`
	PartOfSpeech string       `json:"pos,omitempty"`
	Definitions  []Definition `json:"definitions"`
	Synonyms     []string     `json:"synonyms,omitempty"`
	Rank         int          `json:"rank,omitempty"` // 1-5 scale of difficulty
}

// Definition is a single sense of a word, optionally with an example sentence
type Definition struct {
	Text    string `json:"definition"`
	Example string `json:"example,omitempty"`
}

// PrimaryDefinition returns the first definition text, or an empty string
func (w *Word) PrimaryDefinition() string {
	if len(w.Definitions) == 0 {
		return ""
	}
	return w.Definitions[0].Text
}

// Examples returns all non-empty example sentences across definitions
func (w *Word) Examples() []string {
	var examples []string
	for _, d := range w.Definitions {
		if d.Example != "" {
			examples = append(examples, d.Example)
		}
	}
	return examples
}

// AllDefinitionText joins every definition into one string, used for
// keyword comparisons against user answers
func (w *Word) AllDefinitionText() string {
	parts := make([]string, 0, len(w.Definitions))
	for _, d := range w.Definitions {
		parts = append(parts, d.Text)
	}
	return strings.Join(parts, " ")
}
