package models

// QuizStep identifies one of the three quiz stages of a session
type QuizStep string

const (
	// StepRecall asks for the headword given its definition
	StepRecall QuizStep = "recall"
	// StepDefine asks for a definition in the user's own words
	StepDefine QuizStep = "define"
	// StepSentence asks for an original sentence using the word
	StepSentence QuizStep = "sentence"
)

// Attempt tracks one calendar day's full quiz interaction.
// The date is the primary key: at most one attempt exists per day,
// and relaunching after an abandoned session overwrites the partial row.
type Attempt struct {
	Date             string `json:"date" db:"date"` // ISO calendar day, local time zone
	Word             string `json:"word" db:"word"`
	Notes            string `json:"notes" db:"notes"`
	RecallPass       bool   `json:"recall_pass" db:"recall_pass"`
	RecallResponse   string `json:"recall_response" db:"recall_response"`
	DefinePass       bool   `json:"define_pass" db:"define_pass"`
	DefineResponse   string `json:"define_response" db:"define_response"`
	SentencePass     bool   `json:"sentence_pass" db:"sentence_pass"`
	SentenceResponse string `json:"sentence_response" db:"sentence_response"`
	Completed        bool   `json:"completed" db:"completed"`
	CompletedAt      string `json:"completed_at" db:"completed_at"` // RFC3339, empty until completed
}

// WordHistory tracks how a specific word has fared across sessions
type WordHistory struct {
	Word               string `json:"word" db:"word"`
	FirstShown         string `json:"first_shown" db:"first_shown"`
	LastShown          string `json:"last_shown" db:"last_shown"`
	TimesShown         int    `json:"times_shown" db:"times_shown"`
	ConsecutiveRecalls int    `json:"consecutive_recalls" db:"consecutive_recalls"` // correct recalls in a row
	Mastered           bool   `json:"mastered" db:"mastered"`                       // retired from rotation
	Enrichment         string `json:"enrichment" db:"enrichment"`                   // cached merged word JSON
}
