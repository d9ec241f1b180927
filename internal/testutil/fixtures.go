package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"mirifer/internal/domain"
)

var accessCodeCounter atomic.Int64

// User options
type UserOption func(*domain.User)

func WithAccessCode(code string) UserOption {
	return func(u *domain.User) {
		u.AccessCode = code
	}
}

func WithInactive() UserOption {
	return func(u *domain.User) {
		u.IsActive = false
	}
}

func NewTestUser(displayName string, opts ...UserOption) *domain.User {
	u := &domain.User{
		ID:          uuid.New().String(),
		AccessCode:  fmt.Sprintf("TRIAL-%03d", accessCodeCounter.Add(1)),
		DisplayName: displayName,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Entry options
type EntryOption func(*domain.Entry)

func WithMode(m domain.Mode) EntryOption {
	return func(e *domain.Entry) {
		e.Mode = m
	}
}

func WithTexts(userText, aiText string) EntryOption {
	return func(e *domain.Entry) {
		e.UserText = userText
		e.AIText = aiText
	}
}

func WithIncomplete() EntryOption {
	return func(e *domain.Entry) {
		e.IsCompleted = false
	}
}

func WithTitle(title string) EntryOption {
	return func(e *domain.Entry) {
		e.Title = title
	}
}

// NewTestEntry builds a completed entry with non-blank texts for the given
// user and day.
func NewTestEntry(userID string, day int, opts ...EntryOption) *domain.Entry {
	e := &domain.Entry{
		ID:          uuid.New().String(),
		UserID:      userID,
		Day:         day,
		Title:       domain.DefaultTitle(day),
		Question:    fmt.Sprintf("Question for day %d?", day),
		UserText:    fmt.Sprintf("Reflection text for day %d.", day),
		AIText:      fmt.Sprintf("Mirrored response for day %d.", day),
		Mode:        domain.ModeMirror,
		IsCompleted: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Survey options
type SurveyOption func(*domain.SurveyResponse)

func WithSubmittedAt(t time.Time) SurveyOption {
	return func(s *domain.SurveyResponse) {
		s.SubmittedAt = t
	}
}

func NewTestSurvey(user *domain.User, opts ...SurveyOption) *domain.SurveyResponse {
	s := &domain.SurveyResponse{
		ID:            uuid.New().String(),
		UserID:        user.ID,
		AccessCode:    user.AccessCode,
		Definition:    "A mirror for my own thinking.",
		ThoughtChange: "I notice my framing more.",
		WouldMiss:     "The daily pause.",
		SubmittedAt:   time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
