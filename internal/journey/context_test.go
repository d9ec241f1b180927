package journey

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mirifer/internal/domain"
	"mirifer/internal/llm"
	"mirifer/internal/repository"
	"mirifer/internal/testutil"
)

func seedJourney(t *testing.T, entries *repository.SQLiteEntryRepo, users *repository.SQLiteUserRepo, days int) *domain.User {
	t.Helper()
	ctx := context.Background()
	user := testutil.NewTestUser("Context User")
	require.NoError(t, users.Create(ctx, user))
	for d := 1; d <= days; d++ {
		require.NoError(t, entries.Upsert(ctx, testutil.NewTestEntry(user.ID, d)))
	}
	return user
}

func TestBuildPrompt_MirrorDay1_NoHistory(t *testing.T) {
	db := testutil.NewTestDB(t)
	assembler := NewAssembler(repository.NewSQLiteEntryRepo(db), zap.NewNop())

	bundle := assembler.BuildPrompt(context.Background(), "u1", 1, domain.ModeMirror, "my first reflection")
	assert.Equal(t, llm.TaskMirror, bundle.Task)
	assert.Equal(t, "my first reflection", bundle.User)
	assert.Contains(t, bundle.System, "Uncertainty Reduction System")
}

func TestBuildPrompt_MirrorIncludesAtMostThreePriorDays(t *testing.T) {
	db := testutil.NewTestDB(t)
	entries := repository.NewSQLiteEntryRepo(db)
	users := repository.NewSQLiteUserRepo(db)
	assembler := NewAssembler(entries, zap.NewNop())

	user := seedJourney(t, entries, users, 5)

	bundle := assembler.BuildPrompt(context.Background(), user.ID, 6, domain.ModeMirror, "today's text")
	assert.Contains(t, bundle.User, "PREVIOUS DAYS CONTEXT:")
	assert.Contains(t, bundle.User, "CURRENT DAY 6:")
	assert.Contains(t, bundle.User, "today's text")

	// Only days 3-5 quoted, oldest first.
	assert.NotContains(t, bundle.User, "Day 2:")
	day3 := strings.Index(bundle.User, "Day 3:")
	day5 := strings.Index(bundle.User, "Day 5:")
	require.GreaterOrEqual(t, day3, 0)
	require.GreaterOrEqual(t, day5, 0)
	assert.Less(t, day3, day5)
}

func TestBuildPrompt_MirrorTruncatesPriorTexts(t *testing.T) {
	db := testutil.NewTestDB(t)
	entries := repository.NewSQLiteEntryRepo(db)
	users := repository.NewSQLiteUserRepo(db)
	assembler := NewAssembler(entries, zap.NewNop())

	ctx := context.Background()
	user := testutil.NewTestUser("Long Winded")
	require.NoError(t, users.Create(ctx, user))
	long := strings.Repeat("a", 250)
	require.NoError(t, entries.Upsert(ctx, testutil.NewTestEntry(user.ID, 1,
		testutil.WithTexts(long, strings.Repeat("b", 200)))))

	bundle := assembler.BuildPrompt(ctx, user.ID, 2, domain.ModeMirror, "short today")
	assert.Contains(t, bundle.User, strings.Repeat("a", 200)+"...")
	assert.NotContains(t, bundle.User, strings.Repeat("a", 201))
	assert.Contains(t, bundle.User, strings.Repeat("b", 150)+"...")
	assert.NotContains(t, bundle.User, strings.Repeat("b", 151))
}

func TestBuildPrompt_SynthesisDay7FetchesFirstWeekOnly(t *testing.T) {
	db := testutil.NewTestDB(t)
	entries := repository.NewSQLiteEntryRepo(db)
	users := repository.NewSQLiteUserRepo(db)
	assembler := NewAssembler(entries, zap.NewNop())

	user := seedJourney(t, entries, users, 9)

	bundle := assembler.BuildPrompt(context.Background(), user.ID, 7, domain.ModeSynthesis, "synthesis day")
	assert.Equal(t, llm.TaskSynthesis, bundle.Task)
	assert.Contains(t, bundle.System, "Days 1-7")
	assert.Contains(t, bundle.User, "JOURNEY CONTEXT:")
	assert.Contains(t, bundle.User, "Day 7 -")
	assert.NotContains(t, bundle.User, "Day 8 -")
	assert.Contains(t, bundle.User, "synthesize this 7-day journey")
}

func TestBuildPrompt_SynthesisMarksMissingReflections(t *testing.T) {
	db := testutil.NewTestDB(t)
	entries := repository.NewSQLiteEntryRepo(db)
	users := repository.NewSQLiteUserRepo(db)
	assembler := NewAssembler(entries, zap.NewNop())

	ctx := context.Background()
	user := testutil.NewTestUser("Wiped")
	require.NoError(t, users.Create(ctx, user))
	require.NoError(t, entries.Upsert(ctx, testutil.NewTestEntry(user.ID, 1, testutil.WithTexts("", ""))))

	bundle := assembler.BuildPrompt(ctx, user.ID, 14, domain.ModeSynthesis, "closing text")
	assert.Contains(t, bundle.User, "[No reflection]")
	assert.NotContains(t, bundle.User, "Mirifer's response:")
}

type failingEntryRepo struct {
	repository.EntryRepo
}

func (failingEntryRepo) ListBefore(context.Context, string, int, int) ([]*domain.Entry, error) {
	return nil, errors.New("db down")
}

func (failingEntryRepo) ListThrough(context.Context, string, int) ([]*domain.Entry, error) {
	return nil, errors.New("db down")
}

func TestBuildPrompt_DegradesToRawTextWhenHistoryUnreadable(t *testing.T) {
	assembler := NewAssembler(failingEntryRepo{}, zap.NewNop())
	ctx := context.Background()

	mirror := assembler.BuildPrompt(ctx, "u1", 5, domain.ModeMirror, "mirror text")
	assert.Equal(t, "mirror text", mirror.User)
	assert.Equal(t, llm.TaskMirror, mirror.Task)

	synthesis := assembler.BuildPrompt(ctx, "u1", 14, domain.ModeSynthesis, "synthesis text")
	assert.Equal(t, "synthesis text", synthesis.User)
	assert.Equal(t, llm.TaskSynthesis, synthesis.Task)
	assert.Contains(t, synthesis.System, "Synthesis Mode")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcde...", truncate("abcdefgh", 5))
	// Rune-safe on multibyte text.
	assert.Equal(t, "héllo...", truncate("héllo wörld", 5))
}
