package models

// Streak holds the consecutive-completed-day counts derived from attempt history
type Streak struct {
	Current int `json:"current"` // run ending today or yesterday, zero after a gap
	Longest int `json:"longest"` // best run over all history
}
