package domain

import "time"

// SurveyResponse is a user's one-time exit survey. Answers is the free-form
// answer set as submitted; Definition, ThoughtChange and WouldMiss are the
// fields projected into the admin at-a-glance view.
type SurveyResponse struct {
	ID            string
	UserID        string
	AccessCode    string
	Definition    string
	ThoughtChange string
	WouldMiss     string
	Answers       map[string]string
	SubmittedAt   time.Time
}
