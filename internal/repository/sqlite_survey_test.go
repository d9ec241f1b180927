package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mirifer/internal/testutil"
)

func TestSurveyRepo_CreateAndGetByUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	users := NewSQLiteUserRepo(db)
	repo := NewSQLiteSurveyRepo(db)
	ctx := context.Background()

	user := seedUser(t, users)
	survey := testutil.NewTestSurvey(user)
	survey.Answers = map[string]string{"extra": "free-form"}
	require.NoError(t, repo.Create(ctx, survey))

	fetched, err := repo.GetByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, survey.ID, fetched.ID)
	assert.Equal(t, user.AccessCode, fetched.AccessCode)
	assert.Equal(t, "free-form", fetched.Answers["extra"])
}

func TestSurveyRepo_GetByUser_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSurveyRepo(db)

	_, err := repo.GetByUser(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSurveyRepo_Create_DuplicatePerUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	users := NewSQLiteUserRepo(db)
	repo := NewSQLiteSurveyRepo(db)
	ctx := context.Background()

	user := seedUser(t, users)
	require.NoError(t, repo.Create(ctx, testutil.NewTestSurvey(user)))

	err := repo.Create(ctx, testutil.NewTestSurvey(user))
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestSurveyRepo_ListRecent_NewestFirstWithLimit(t *testing.T) {
	db := testutil.NewTestDB(t)
	users := NewSQLiteUserRepo(db)
	repo := NewSQLiteSurveyRepo(db)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		user := seedUser(t, users)
		survey := testutil.NewTestSurvey(user, testutil.WithSubmittedAt(base.Add(time.Duration(i)*time.Hour)))
		require.NoError(t, repo.Create(ctx, survey))
	}

	recent, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.True(t, recent[0].SubmittedAt.After(recent[1].SubmittedAt))
}

func TestSurveyRepo_Count(t *testing.T) {
	db := testutil.NewTestDB(t)
	users := NewSQLiteUserRepo(db)
	repo := NewSQLiteSurveyRepo(db)
	ctx := context.Background()

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, repo.Create(ctx, testutil.NewTestSurvey(seedUser(t, users))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestSurvey(seedUser(t, users))))

	n, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
