package journey

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mirifer/internal/domain"
	"mirifer/internal/llm"
	"mirifer/internal/repository"
)

// RespondInput is a validated day submission.
type RespondInput struct {
	Day      int
	UserText string
	Mode     string // optional explicit mode
	Title    string // optional, defaults to "Day N"
	Question string // optional
}

// RespondResult is what a successful submission returns to the caller.
type RespondResult struct {
	Text        string
	Mode        domain.Mode
	IsCompleted bool
}

// SaveInput is a manual save without generation. Completion is whatever the
// caller says it is; no field is required beyond the day.
type SaveInput struct {
	Day         int
	UserText    string
	Title       string
	Question    string
	AIText      string
	IsCompleted bool
	Mode        string
}

// Service orchestrates the journey write and read paths for one user at a
// time: generate-and-save, manual save, listing, wiping, and derived
// progress.
type Service interface {
	Respond(ctx context.Context, userID string, in RespondInput) (*RespondResult, error)
	Save(ctx context.Context, userID string, in SaveInput) error
	Entries(ctx context.Context, userID string) ([]*domain.Entry, error)
	WipeContent(ctx context.Context, userID string) error
	Progress(ctx context.Context, userID string) (State, error)
}

type service struct {
	entries   repository.EntryRepo
	assembler *Assembler
	client    llm.Client
	log       *zap.Logger
}

// NewService creates the journey Service.
func NewService(entries repository.EntryRepo, assembler *Assembler, client llm.Client, log *zap.Logger) Service {
	return &service{entries: entries, assembler: assembler, client: client, log: log}
}

// ValidateSubmission checks a respond submission before any side effect.
func ValidateSubmission(day int, userText string) error {
	if day < 1 || day > domain.TotalDays {
		return ErrInvalidDay
	}
	if userText == "" {
		return ErrMissingText
	}
	if len([]rune(userText)) > domain.MaxUserTextLen {
		return ErrTextTooLong
	}
	return nil
}

func (s *service) Respond(ctx context.Context, userID string, in RespondInput) (*RespondResult, error) {
	if err := ValidateSubmission(in.Day, in.UserText); err != nil {
		return nil, err
	}

	mode := SelectMode(in.Day, domain.Mode(in.Mode))
	bundle := s.assembler.BuildPrompt(ctx, userID, in.Day, mode, in.UserText)

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         bundle.Task,
		SystemPrompt: bundle.System,
		UserPrompt:   bundle.User,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	title := in.Title
	if title == "" {
		title = domain.DefaultTitle(in.Day)
	}

	entry := &domain.Entry{
		ID:          uuid.New().String(),
		UserID:      userID,
		Day:         in.Day,
		Title:       title,
		Question:    in.Question,
		UserText:    in.UserText,
		AIText:      resp.Text,
		Mode:        mode,
		IsCompleted: true, // a generation response attaches completion
	}
	if err := s.entries.Upsert(ctx, entry); err != nil {
		return nil, fmt.Errorf("saving entry: %w", err)
	}

	return &RespondResult{Text: resp.Text, Mode: mode, IsCompleted: true}, nil
}

func (s *service) Save(ctx context.Context, userID string, in SaveInput) error {
	if in.Day < 1 || in.Day > domain.TotalDays {
		return ErrInvalidDay
	}

	title := in.Title
	if title == "" {
		title = domain.DefaultTitle(in.Day)
	}
	mode := domain.Mode(in.Mode)
	if !domain.ValidModes[in.Mode] {
		mode = domain.ModeMirror
		if in.Day == domain.TotalDays {
			mode = domain.ModeSynthesis
		}
	}

	entry := &domain.Entry{
		ID:          uuid.New().String(),
		UserID:      userID,
		Day:         in.Day,
		Title:       title,
		Question:    in.Question,
		UserText:    in.UserText,
		AIText:      in.AIText,
		Mode:        mode,
		IsCompleted: in.IsCompleted,
	}
	if err := s.entries.Upsert(ctx, entry); err != nil {
		return fmt.Errorf("saving entry: %w", err)
	}
	return nil
}

func (s *service) Entries(ctx context.Context, userID string) ([]*domain.Entry, error) {
	return s.entries.ListByUser(ctx, userID)
}

func (s *service) WipeContent(ctx context.Context, userID string) error {
	return s.entries.WipeContent(ctx, userID)
}

func (s *service) Progress(ctx context.Context, userID string) (State, error) {
	entries, err := s.entries.ListByUser(ctx, userID)
	if err != nil {
		return State{}, fmt.Errorf("loading entries for progress: %w", err)
	}
	return DeriveState(entries), nil
}
