package domain

import (
	"strings"
	"time"
)

// TotalDays is the fixed length of a journey.
const TotalDays = 14

// MaxUserTextLen is the longest reflection accepted at submission, in characters.
const MaxUserTextLen = 6000

// Entry is one user's stored submission and generated reflection for a single
// day. At most one Entry exists per (UserID, Day); an upsert on that key
// overwrites in place.
type Entry struct {
	ID          string
	UserID      string
	Day         int
	Title       string
	Question    string
	UserText    string
	AIText      string
	Mode        Mode
	IsCompleted bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasContent reports whether both the user's text and the generated text are
// non-blank. Wiping clears the texts but keeps IsCompleted, so a completed
// entry can still lack content.
func (e *Entry) HasContent() bool {
	return strings.TrimSpace(e.UserText) != "" && strings.TrimSpace(e.AIText) != ""
}

// DayStatus is the derived per-day display state. It is recomputed on every
// read and never persisted.
type DayStatus string

const (
	DayComplete   DayStatus = "complete"
	DayInProgress DayStatus = "in_progress"
	DayNotStarted DayStatus = "not_started"
)

// Status derives the display state for this entry's day.
func (e *Entry) Status() DayStatus {
	switch {
	case e.IsCompleted:
		return DayComplete
	case e.UserText != "":
		return DayInProgress
	default:
		return DayNotStarted
	}
}
