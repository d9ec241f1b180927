package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"mirifer/internal/db"
	"mirifer/internal/domain"
)

// SQLiteUserRepo implements UserRepo using a SQLite database.
type SQLiteUserRepo struct {
	db db.DBTX
}

// NewSQLiteUserRepo creates a new SQLiteUserRepo.
func NewSQLiteUserRepo(conn db.DBTX) *SQLiteUserRepo {
	return &SQLiteUserRepo{db: conn}
}

func (r *SQLiteUserRepo) GetByAccessCode(ctx context.Context, accessCode string) (*domain.User, error) {
	query := `SELECT id, access_code, display_name, is_active, last_login_at, created_at
		FROM trial_users WHERE access_code = ? AND is_active = 1`
	row := r.db.QueryRowContext(ctx, query, accessCode)

	var u domain.User
	var active int
	var lastLogin sql.NullString
	var createdAtStr string

	err := row.Scan(&u.ID, &u.AccessCode, &u.DisplayName, &active, &lastLogin, &createdAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("trial user: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning trial user: %w", err)
	}

	u.IsActive = intToBool(active)
	u.LastLoginAt = parseNullableTime(lastLogin, time.RFC3339)
	u.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &u, nil
}

func (r *SQLiteUserRepo) TouchLastLogin(ctx context.Context, userID string) error {
	query := `UPDATE trial_users SET last_login_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, nowUTC(), userID)
	if err != nil {
		return fmt.Errorf("touching last login: %w", err)
	}
	return nil
}

func (r *SQLiteUserRepo) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO trial_users (id, access_code, display_name, is_active, last_login_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}
	_, err := r.db.ExecContext(ctx, query,
		u.ID,
		u.AccessCode,
		u.DisplayName,
		boolToInt(u.IsActive),
		nullableTimeToString(u.LastLoginAt, time.RFC3339),
		u.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting trial user: %w", err)
	}
	return nil
}
