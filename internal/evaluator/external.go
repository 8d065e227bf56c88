package evaluator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/example/vocabagent/pkg/models"
)

// externalTimeout bounds the evaluation call. On expiry the caller falls
// back to the heuristic, so the session is never delayed longer than this.
const externalTimeout = 15 * time.Second

// External is the language-model evaluator variant, backed by the
// OpenAI chat completions API
type External struct {
	apiKey      string
	apiURL      string
	model       string
	maxTokens   int
	temperature float64
	client      *http.Client
}

// NewExternal creates an external evaluator, failing if no API key is set
func NewExternal(apiKey string) (*External, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
	}

	return &External{
		apiKey:      apiKey,
		apiURL:      "https://api.openai.com/v1/chat/completions",
		model:       "gpt-3.5-turbo",
		maxTokens:   100,
		temperature: 0.3,
		client:      &http.Client{Timeout: externalTimeout},
	}, nil
}

// Message represents a message in the chat conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents a request to the chat completions API
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

// ChatResponse represents a response from the chat completions API
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Judge asks the model whether the sentence demonstrates understanding
// of the word. The model must answer with one line starting PASS or
// FAIL; anything else is treated as a failure so the caller can fall
// back to the heuristic.
func (e *External) Judge(ctx context.Context, word models.Word, sentence string) (Judgment, error) {
	prompt := fmt.Sprintf(
		"You are evaluating whether a sentence correctly uses the word %q (meaning: %s).\n\n"+
			"Sentence: %q\n\n"+
			"Does this sentence demonstrate understanding of the word's meaning? "+
			"Be lenient - accept creative or informal usage as long as the meaning is roughly correct.\n\n"+
			"Reply with exactly one line: PASS or FAIL followed by a brief explanation.",
		word.Headword, word.PrimaryDefinition(), sentence,
	)

	request := ChatRequest{
		Model: e.model,
		Messages: []Message{
			{Role: "system", Content: "You are a strict but fair vocabulary tutor. Judge sentences concisely."},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   e.maxTokens,
		Temperature: e.temperature,
	}

	requestData, err := json.Marshal(request)
	if err != nil {
		return Judgment{}, fmt.Errorf("failed to marshal request: %v", err)
	}

	ctx, cancel := context.WithTimeout(ctx, externalTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.apiURL, bytes.NewBuffer(requestData))
	if err != nil {
		return Judgment{}, fmt.Errorf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return Judgment{}, fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	var response ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return Judgment{}, fmt.Errorf("failed to decode response: %v", err)
	}

	if response.Error != nil {
		return Judgment{}, fmt.Errorf("API error: %s", response.Error.Message)
	}

	if len(response.Choices) == 0 {
		return Judgment{}, fmt.Errorf("no response choices returned")
	}

	return parseVerdict(response.Choices[0].Message.Content)
}

// parseVerdict extracts the PASS/FAIL verdict from the model's first line
func parseVerdict(content string) (Judgment, error) {
	firstLine := strings.TrimSpace(content)
	if i := strings.IndexByte(firstLine, '\n'); i >= 0 {
		firstLine = strings.TrimSpace(firstLine[:i])
	}

	upper := strings.ToUpper(firstLine)
	switch {
	case strings.HasPrefix(upper, "PASS"):
		return Judgment{Pass: true, Feedback: firstLine}, nil
	case strings.HasPrefix(upper, "FAIL"):
		return Judgment{Pass: false, Feedback: firstLine}, nil
	}
	return Judgment{}, fmt.Errorf("could not parse verdict: %q", firstLine)
}
