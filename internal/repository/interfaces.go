package repository

import (
	"context"
	"errors"

	"mirifer/internal/domain"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert would violate a uniqueness
// constraint (one survey response per user).
var ErrDuplicate = errors.New("already exists")

type EntryRepo interface {
	// Get returns the entry for (userID, day), or ErrNotFound.
	Get(ctx context.Context, userID string, day int) (*domain.Entry, error)

	// ListByUser returns all of a user's entries ordered by day ascending.
	ListByUser(ctx context.Context, userID string) ([]*domain.Entry, error)

	// ListBefore returns up to limit entries with day < before,
	// ordered by day descending.
	ListBefore(ctx context.Context, userID string, before, limit int) ([]*domain.Entry, error)

	// ListThrough returns all entries with day <= through, ordered by day ascending.
	ListThrough(ctx context.Context, userID string, through int) ([]*domain.Entry, error)

	// Upsert writes the entry keyed on (UserID, Day), overwriting in place on
	// conflict. CreatedAt is preserved on overwrite; UpdatedAt is refreshed.
	Upsert(ctx context.Context, e *domain.Entry) error

	// WipeContent clears user_text and ai_text on all of a user's entries
	// while keeping is_completed and day metadata.
	WipeContent(ctx context.Context, userID string) error

	// ListAll returns every entry across all users, for cohort aggregation.
	ListAll(ctx context.Context) ([]*domain.Entry, error)
}

type UserRepo interface {
	// GetByAccessCode returns the active user holding the code, or ErrNotFound.
	GetByAccessCode(ctx context.Context, accessCode string) (*domain.User, error)

	// TouchLastLogin refreshes the user's last-login timestamp.
	TouchLastLogin(ctx context.Context, userID string) error

	Create(ctx context.Context, u *domain.User) error
}

type SurveyRepo interface {
	// GetByUser returns the user's survey response, or ErrNotFound.
	GetByUser(ctx context.Context, userID string) (*domain.SurveyResponse, error)

	// Create inserts a response; ErrDuplicate if the user already has one.
	Create(ctx context.Context, s *domain.SurveyResponse) error

	// ListRecent returns the most recent responses by submission time.
	ListRecent(ctx context.Context, limit int) ([]*domain.SurveyResponse, error)

	// Count returns the total number of responses.
	Count(ctx context.Context) (int, error)
}
