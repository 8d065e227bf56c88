// Package dictionary enriches corpus entries with data from the free
// Dictionary API. Enrichment is best-effort: any failure leaves the
// corpus entry untouched and never blocks a session.
package dictionary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/example/vocabagent/pkg/models"
)

const defaultBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en"

// Client looks up words against the Dictionary API
type Client struct {
	baseURL string
	client  *http.Client
}

// New creates a client with a short timeout so a dead network cannot
// stall the session
func New() *Client {
	return &Client{
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

// entry mirrors the subset of the API response we care about
type entry struct {
	Word      string `json:"word"`
	Phonetic  string `json:"phonetic"`
	Phonetics []struct {
		Text string `json:"text"`
	} `json:"phonetics"`
	Meanings []struct {
		PartOfSpeech string `json:"partOfSpeech"`
		Definitions  []struct {
			Definition string `json:"definition"`
			Example    string `json:"example"`
		} `json:"definitions"`
		Synonyms []string `json:"synonyms"`
	} `json:"meanings"`
}

// Enrich looks up the word's headword and merges the result over the
// corpus entry. Fields already present are only replaced when the API
// offers something; on any error the original word is returned as-is.
func (c *Client) Enrich(ctx context.Context, word models.Word) (models.Word, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/"+url.PathEscape(word.Headword), nil)
	if err != nil {
		return word, fmt.Errorf("failed to create request: %v", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return word, fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return word, fmt.Errorf("dictionary API returned status %d", resp.StatusCode)
	}

	var entries []entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return word, fmt.Errorf("failed to decode response: %v", err)
	}
	if len(entries) == 0 {
		return word, fmt.Errorf("no entries returned for %q", word.Headword)
	}

	return merge(word, &entries[0]), nil
}

// merge overlays API data on top of a corpus entry without discarding
// anything the corpus already provides
func merge(word models.Word, e *entry) models.Word {
	if word.Phonetic == "" {
		if e.Phonetic != "" {
			word.Phonetic = e.Phonetic
		} else {
			for _, ph := range e.Phonetics {
				if ph.Text != "" {
					word.Phonetic = ph.Text
					break
				}
			}
		}
	}

	for _, meaning := range e.Meanings {
		if word.PartOfSpeech == "" {
			word.PartOfSpeech = meaning.PartOfSpeech
		}
		var defs []models.Definition
		for _, d := range meaning.Definitions {
			if d.Definition == "" {
				continue
			}
			defs = append(defs, models.Definition{Text: d.Definition, Example: d.Example})
		}
		if len(defs) > 0 {
			word.Definitions = defs
		}
		if len(meaning.Synonyms) > 0 {
			word.Synonyms = meaning.Synonyms
		}
	}

	return word
}
