package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"mirifer/internal/db"
	"mirifer/internal/domain"
)

// SQLiteEntryRepo implements EntryRepo using a SQLite database.
type SQLiteEntryRepo struct {
	db db.DBTX
}

// NewSQLiteEntryRepo creates a new SQLiteEntryRepo.
func NewSQLiteEntryRepo(conn db.DBTX) *SQLiteEntryRepo {
	return &SQLiteEntryRepo{db: conn}
}

const entryColumns = `id, trial_user_id, day, title, question, user_text, ai_text, mode, is_completed, created_at, updated_at`

func (r *SQLiteEntryRepo) Get(ctx context.Context, userID string, day int) (*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE trial_user_id = ? AND day = ?`
	row := r.db.QueryRowContext(ctx, query, userID, day)
	return r.scanEntry(row)
}

func (r *SQLiteEntryRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE trial_user_id = ? ORDER BY day`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing entries by user: %w", err)
	}
	defer rows.Close()
	return r.scanEntries(rows)
}

func (r *SQLiteEntryRepo) ListBefore(ctx context.Context, userID string, before, limit int) ([]*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries
		WHERE trial_user_id = ? AND day < ?
		ORDER BY day DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, userID, before, limit)
	if err != nil {
		return nil, fmt.Errorf("listing entries before day %d: %w", before, err)
	}
	defer rows.Close()
	return r.scanEntries(rows)
}

func (r *SQLiteEntryRepo) ListThrough(ctx context.Context, userID string, through int) ([]*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries
		WHERE trial_user_id = ? AND day <= ?
		ORDER BY day`
	rows, err := r.db.QueryContext(ctx, query, userID, through)
	if err != nil {
		return nil, fmt.Errorf("listing entries through day %d: %w", through, err)
	}
	defer rows.Close()
	return r.scanEntries(rows)
}

func (r *SQLiteEntryRepo) Upsert(ctx context.Context, e *domain.Entry) error {
	query := `INSERT INTO entries (id, trial_user_id, day, title, question, user_text, ai_text, mode, is_completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(trial_user_id, day) DO UPDATE SET
			title = excluded.title,
			question = excluded.question,
			user_text = excluded.user_text,
			ai_text = excluded.ai_text,
			mode = excluded.mode,
			is_completed = excluded.is_completed,
			updated_at = excluded.updated_at`
	now := time.Now().UTC().Truncate(time.Second)
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.UserID,
		e.Day,
		e.Title,
		e.Question,
		e.UserText,
		e.AIText,
		string(e.Mode),
		boolToInt(e.IsCompleted),
		e.CreatedAt.Format(time.RFC3339),
		e.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting entry: %w", err)
	}
	return nil
}

func (r *SQLiteEntryRepo) WipeContent(ctx context.Context, userID string) error {
	query := `UPDATE entries SET user_text = '', ai_text = '', updated_at = ? WHERE trial_user_id = ?`
	_, err := r.db.ExecContext(ctx, query, nowUTC(), userID)
	if err != nil {
		return fmt.Errorf("wiping entry content: %w", err)
	}
	return nil
}

func (r *SQLiteEntryRepo) ListAll(ctx context.Context) ([]*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries ORDER BY trial_user_id, day`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing all entries: %w", err)
	}
	defer rows.Close()
	return r.scanEntries(rows)
}

// scanEntry scans a single entry from a *sql.Row.
func (r *SQLiteEntryRepo) scanEntry(row *sql.Row) (*domain.Entry, error) {
	var e domain.Entry
	var mode string
	var completed int
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&e.ID, &e.UserID, &e.Day, &e.Title, &e.Question,
		&e.UserText, &e.AIText, &mode, &completed, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("entry: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning entry: %w", err)
	}

	return r.populateEntry(&e, mode, completed, createdAtStr, updatedAtStr)
}

// scanEntries scans multiple entries from *sql.Rows.
func (r *SQLiteEntryRepo) scanEntries(rows *sql.Rows) ([]*domain.Entry, error) {
	var entries []*domain.Entry
	for rows.Next() {
		var e domain.Entry
		var mode string
		var completed int
		var createdAtStr, updatedAtStr string

		err := rows.Scan(
			&e.ID, &e.UserID, &e.Day, &e.Title, &e.Question,
			&e.UserText, &e.AIText, &mode, &completed, &createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning entry row: %w", err)
		}

		entry, parseErr := r.populateEntry(&e, mode, completed, createdAtStr, updatedAtStr)
		if parseErr != nil {
			return nil, parseErr
		}

		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries: %w", err)
	}
	return entries, nil
}

// populateEntry fills in parsed fields on an Entry after scanning raw values.
func (r *SQLiteEntryRepo) populateEntry(e *domain.Entry, mode string, completed int, createdAtStr, updatedAtStr string) (*domain.Entry, error) {
	e.Mode = domain.Mode(mode)
	e.IsCompleted = intToBool(completed)

	var parseErr error
	e.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	e.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}

	return e, nil
}
