package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"mirifer/internal/db"
	"mirifer/internal/domain"
)

// SQLiteSurveyRepo implements SurveyRepo using a SQLite database.
type SQLiteSurveyRepo struct {
	db db.DBTX
}

// NewSQLiteSurveyRepo creates a new SQLiteSurveyRepo.
func NewSQLiteSurveyRepo(conn db.DBTX) *SQLiteSurveyRepo {
	return &SQLiteSurveyRepo{db: conn}
}

const surveyColumns = `id, trial_user_id, access_code, definition, thought_change, would_miss, answers, submitted_at`

func (r *SQLiteSurveyRepo) GetByUser(ctx context.Context, userID string) (*domain.SurveyResponse, error) {
	query := `SELECT ` + surveyColumns + ` FROM survey_responses WHERE trial_user_id = ?`
	row := r.db.QueryRowContext(ctx, query, userID)
	return r.scanSurvey(row)
}

func (r *SQLiteSurveyRepo) Create(ctx context.Context, s *domain.SurveyResponse) error {
	answers, err := json.Marshal(s.Answers)
	if err != nil {
		return fmt.Errorf("encoding survey answers: %w", err)
	}
	if s.SubmittedAt.IsZero() {
		s.SubmittedAt = time.Now().UTC().Truncate(time.Second)
	}

	query := `INSERT INTO survey_responses (` + surveyColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		s.ID,
		s.UserID,
		s.AccessCode,
		s.Definition,
		s.ThoughtChange,
		s.WouldMiss,
		string(answers),
		s.SubmittedAt.Format(time.RFC3339),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("survey response: %w", ErrDuplicate)
		}
		return fmt.Errorf("inserting survey response: %w", err)
	}
	return nil
}

func (r *SQLiteSurveyRepo) ListRecent(ctx context.Context, limit int) ([]*domain.SurveyResponse, error) {
	query := `SELECT ` + surveyColumns + ` FROM survey_responses ORDER BY submitted_at DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent surveys: %w", err)
	}
	defer rows.Close()

	var surveys []*domain.SurveyResponse
	for rows.Next() {
		var s domain.SurveyResponse
		var answers, submittedAtStr string
		err := rows.Scan(
			&s.ID, &s.UserID, &s.AccessCode, &s.Definition,
			&s.ThoughtChange, &s.WouldMiss, &answers, &submittedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning survey row: %w", err)
		}
		survey, parseErr := r.populateSurvey(&s, answers, submittedAtStr)
		if parseErr != nil {
			return nil, parseErr
		}
		surveys = append(surveys, survey)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating surveys: %w", err)
	}
	return surveys, nil
}

func (r *SQLiteSurveyRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM survey_responses`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting survey responses: %w", err)
	}
	return n, nil
}

// scanSurvey scans a single survey response from a *sql.Row.
func (r *SQLiteSurveyRepo) scanSurvey(row *sql.Row) (*domain.SurveyResponse, error) {
	var s domain.SurveyResponse
	var answers, submittedAtStr string

	err := row.Scan(
		&s.ID, &s.UserID, &s.AccessCode, &s.Definition,
		&s.ThoughtChange, &s.WouldMiss, &answers, &submittedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("survey response: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning survey response: %w", err)
	}

	return r.populateSurvey(&s, answers, submittedAtStr)
}

// populateSurvey fills in parsed fields after scanning raw strings.
func (r *SQLiteSurveyRepo) populateSurvey(s *domain.SurveyResponse, answers, submittedAtStr string) (*domain.SurveyResponse, error) {
	if err := json.Unmarshal([]byte(answers), &s.Answers); err != nil {
		return nil, fmt.Errorf("decoding survey answers: %w", err)
	}
	var parseErr error
	s.SubmittedAt, parseErr = time.Parse(time.RFC3339, submittedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing submitted_at: %w", parseErr)
	}
	return s, nil
}
