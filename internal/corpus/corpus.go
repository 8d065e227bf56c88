// Package corpus loads the static vocabulary word list.
package corpus

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/example/vocabagent/pkg/models"
)

//go:embed words.json
var defaultWords []byte

// Corpus is the read-only collection of words available for study
type Corpus struct {
	words  []models.Word
	byHead map[string]models.Word
}

// Load reads the corpus from the given JSON file, or from the bundled
// default word list when path is empty
func Load(path string) (*Corpus, error) {
	data := defaultWords
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read words file: %v", err)
		}
		data = b
	}

	var words []models.Word
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, fmt.Errorf("failed to parse words file: %v", err)
	}

	c := &Corpus{
		words:  words,
		byHead: make(map[string]models.Word, len(words)),
	}
	for _, w := range words {
		c.byHead[strings.ToLower(w.Headword)] = w
	}
	return c, nil
}

// Words returns every corpus entry
func (c *Corpus) Words() []models.Word {
	return c.words
}

// Lookup finds a corpus entry by headword, case-insensitive
func (c *Corpus) Lookup(headword string) (models.Word, bool) {
	w, ok := c.byHead[strings.ToLower(headword)]
	return w, ok
}

// Len returns the number of corpus entries
func (c *Corpus) Len() int {
	return len(c.words)
}
