package report

import (
	"bytes"
	"context"
	"fmt"

	"go.uber.org/zap"

	"mirifer/internal/domain"
	"mirifer/internal/llm"
	"mirifer/internal/repository"
)

// Document is a rendered report ready to ship to the caller.
type Document struct {
	Body        []byte
	ContentType string
	Filename    string
}

// Service produces journey reports for a single user: it gates on data
// completeness, optionally generates the narrative summary, and delegates
// layout to the emitter.
type Service interface {
	Generate(ctx context.Context, user *domain.User, typ Type) (*Document, error)
}

type service struct {
	entries repository.EntryRepo
	client  llm.Client
	emitter Emitter
	log     *zap.Logger
}

// NewService creates the report Service.
func NewService(entries repository.EntryRepo, client llm.Client, emitter Emitter, log *zap.Logger) Service {
	return &service{entries: entries, client: client, emitter: emitter, log: log}
}

func (s *service) Generate(ctx context.Context, user *domain.User, typ Type) (*Document, error) {
	var all []*domain.Entry
	var err error
	if typ == Type7Day {
		all, err = s.entries.ListThrough(ctx, user.ID, 7)
	} else {
		all, err = s.entries.ListByUser(ctx, user.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading entries for report: %w", err)
	}

	eligible, rejection := CheckEligibility(all, typ)
	if rejection != nil {
		return nil, rejection
	}

	if typ == Type14Day && len(eligible) < domain.TotalDays {
		// Observed product behavior reuses the permissive one-intact-day
		// rule here; surface it rather than silently widening the report.
		s.log.Warn("producing 14-day report with fewer than 14 intact days",
			zap.String("user_id", user.ID), zap.Int("intact_days", len(eligible)))
	}

	// The narrative summary is best-effort: a generation failure never
	// blocks the report itself.
	var finalThoughts string
	if typ != Type7Day && len(eligible) >= finalThoughtsMinDays {
		finalThoughts, err = generateFinalThoughts(ctx, s.client, eligible)
		if err != nil {
			s.log.Warn("final thoughts generation failed, omitting section",
				zap.String("user_id", user.ID), zap.Error(err))
			finalThoughts = ""
		}
	}

	meta := Meta{
		AccessCode:    user.AccessCode,
		ReportType:    typ,
		DaysCompleted: len(eligible),
		FinalThoughts: finalThoughts,
	}

	var buf bytes.Buffer
	if err := s.emitter.Render(&buf, eligible, meta); err != nil {
		return nil, fmt.Errorf("rendering report: %w", err)
	}

	filename := fmt.Sprintf("mirifer-report-%ddays.%s", len(eligible), s.emitter.FileExt())
	if typ == Type7Day {
		filename = fmt.Sprintf("mirifer-7day-report.%s", s.emitter.FileExt())
	}

	return &Document{
		Body:        buf.Bytes(),
		ContentType: s.emitter.ContentType(),
		Filename:    filename,
	}, nil
}
