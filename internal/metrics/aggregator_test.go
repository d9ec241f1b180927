package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mirifer/internal/domain"
	"mirifer/internal/repository"
	"mirifer/internal/testutil"
)

func entriesFor(userID string, days ...int) []*domain.Entry {
	var entries []*domain.Entry
	for _, d := range days {
		entries = append(entries, testutil.NewTestEntry(userID, d))
	}
	return entries
}

func fullJourney(userID string) []*domain.Entry {
	days := make([]int, domain.TotalDays)
	for i := range days {
		days[i] = i + 1
	}
	return entriesFor(userID, days...)
}

func TestCompute_Empty(t *testing.T) {
	m := Compute(nil, 0)
	assert.Equal(t, 0, m.Overview.TotalUsers)
	assert.Equal(t, 0.0, m.Overview.CompletionRate)
	assert.Equal(t, 0.0, m.Overview.D1Retention)
	assert.Equal(t, 0, m.Overview.AvgReflectionWords)
	assert.Equal(t, 0.0, m.Overview.SurveyRate)
	require.Len(t, m.DropOff, domain.TotalDays)
	for i, p := range m.DropOff {
		assert.Equal(t, i+1, p.Day)
		assert.Equal(t, 0, p.Users)
	}
}

func TestCompute_CompletionRateRoundsToTwoDecimals(t *testing.T) {
	var entries []*domain.Entry
	entries = append(entries, fullJourney("alice")...)
	entries = append(entries, fullJourney("bob")...)
	entries = append(entries, entriesFor("carol", 1, 2)...)

	m := Compute(entries, 0)
	assert.Equal(t, 3, m.Overview.TotalUsers)
	assert.Equal(t, 2, m.Overview.CompletedUsers)
	assert.Equal(t, 66.67, m.Overview.CompletionRate)
}

func TestCompute_D1Retention(t *testing.T) {
	var entries []*domain.Entry
	entries = append(entries, entriesFor("alice", 1, 2)...)
	entries = append(entries, entriesFor("bob", 1)...)
	// Never started day 1; excluded from the retention denominator.
	entries = append(entries, entriesFor("carol", 3)...)

	m := Compute(entries, 0)
	assert.Equal(t, 50.0, m.Overview.D1Retention)
}

func TestCompute_AvgWordsSkipsBlankReflections(t *testing.T) {
	entries := entriesFor("alice", 1, 2)
	entries[0].UserText = "one two three four"
	entries[1].UserText = "one two three four five six seven"
	wiped := testutil.NewTestEntry("alice", 3, testutil.WithTexts("   ", "reply"))
	entries = append(entries, wiped)

	m := Compute(entries, 0)
	// (4 + 7) / 2 rounds to 6.
	assert.Equal(t, 6, m.Overview.AvgReflectionWords)
}

func TestCompute_SurveyRateOverCompletedUsers(t *testing.T) {
	var entries []*domain.Entry
	entries = append(entries, fullJourney("alice")...)
	entries = append(entries, fullJourney("bob")...)

	m := Compute(entries, 1)
	assert.Equal(t, 1, m.Overview.SurveySubmissions)
	assert.Equal(t, 50.0, m.Overview.SurveyRate)
}

func TestCompute_DropOffCountsPerDay(t *testing.T) {
	var entries []*domain.Entry
	entries = append(entries, entriesFor("alice", 1, 2, 3)...)
	entries = append(entries, entriesFor("bob", 1)...)
	// Incomplete entries never count.
	entries = append(entries, testutil.NewTestEntry("bob", 2, testutil.WithIncomplete()))

	m := Compute(entries, 0)
	assert.Equal(t, 2, m.DropOff[0].Users)
	assert.Equal(t, 1, m.DropOff[1].Users)
	assert.Equal(t, 1, m.DropOff[2].Users)
	assert.Equal(t, 0, m.DropOff[3].Users)
}

func TestAggregator_Collect(t *testing.T) {
	db := testutil.NewTestDB(t)
	entries := repository.NewSQLiteEntryRepo(db)
	users := repository.NewSQLiteUserRepo(db)
	surveys := repository.NewSQLiteSurveyRepo(db)
	agg := NewAggregator(entries, surveys)
	ctx := context.Background()

	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		user := testutil.NewTestUser("Cohort Member")
		require.NoError(t, users.Create(ctx, user))
		require.NoError(t, entries.Upsert(ctx, testutil.NewTestEntry(user.ID, 1)))
		survey := testutil.NewTestSurvey(user, testutil.WithSubmittedAt(base.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, surveys.Create(ctx, survey))
	}

	m, err := agg.Collect(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, m.Overview.TotalUsers)
	assert.Equal(t, 7, m.Overview.SurveySubmissions)
	// Only the five most recent surveys are projected.
	require.Len(t, m.RecentSurveys, 5)
	assert.True(t, m.RecentSurveys[0].SubmittedAt.After(m.RecentSurveys[4].SubmittedAt))
}
