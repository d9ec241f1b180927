package report

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mirifer/internal/domain"
	"mirifer/internal/llm"
	"mirifer/internal/repository"
	"mirifer/internal/testutil"
)

type fakeClient struct {
	text    string
	err     error
	called  bool
	lastReq llm.GenerateRequest
}

func (f *fakeClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	f.called = true
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &llm.GenerateResponse{Text: f.text, Model: "fake"}, nil
}

func seedReportUser(t *testing.T, entries *repository.SQLiteEntryRepo, users *repository.SQLiteUserRepo, days int) *domain.User {
	t.Helper()
	ctx := context.Background()
	user := testutil.NewTestUser("Report User")
	require.NoError(t, users.Create(ctx, user))
	for d := 1; d <= days; d++ {
		require.NoError(t, entries.Upsert(ctx, testutil.NewTestEntry(user.ID, d)))
	}
	return user
}

func TestReportService_PartialIncludesFinalThoughts(t *testing.T) {
	db := testutil.NewTestDB(t)
	entries := repository.NewSQLiteEntryRepo(db)
	users := repository.NewSQLiteUserRepo(db)
	client := &fakeClient{text: "The reflections revealed a steady arc."}
	svc := NewService(entries, client, TextEmitter{}, zap.NewNop())

	user := seedReportUser(t, entries, users, 5)

	doc, err := svc.Generate(context.Background(), user, TypePartial)
	require.NoError(t, err)
	assert.Equal(t, llm.TaskFinalThoughts, client.lastReq.Task)
	assert.Contains(t, string(doc.Body), "FINAL THOUGHTS")
	assert.Contains(t, string(doc.Body), "The reflections revealed a steady arc.")
	assert.Contains(t, string(doc.Body), user.AccessCode)
	assert.Equal(t, "mirifer-report-5days.txt", doc.Filename)
	assert.Equal(t, "text/plain; charset=utf-8", doc.ContentType)
}

func TestReportService_FinalThoughtsSkippedUnderThreeDays(t *testing.T) {
	db := testutil.NewTestDB(t)
	entries := repository.NewSQLiteEntryRepo(db)
	users := repository.NewSQLiteUserRepo(db)
	client := &fakeClient{text: "should not appear"}
	svc := NewService(entries, client, TextEmitter{}, zap.NewNop())

	user := seedReportUser(t, entries, users, 2)

	doc, err := svc.Generate(context.Background(), user, TypePartial)
	require.NoError(t, err)
	assert.False(t, client.called)
	assert.NotContains(t, string(doc.Body), "FINAL THOUGHTS")
}

func TestReportService_FinalThoughtsFailureDoesNotBlockReport(t *testing.T) {
	db := testutil.NewTestDB(t)
	entries := repository.NewSQLiteEntryRepo(db)
	users := repository.NewSQLiteUserRepo(db)
	client := &fakeClient{err: llm.ErrTimeout}
	svc := NewService(entries, client, TextEmitter{}, zap.NewNop())

	user := seedReportUser(t, entries, users, 6)

	doc, err := svc.Generate(context.Background(), user, TypePartial)
	require.NoError(t, err)
	assert.True(t, client.called)
	assert.NotContains(t, string(doc.Body), "FINAL THOUGHTS")
	assert.Contains(t, string(doc.Body), "Day 6")
}

func TestReportService_SevenDayOmitsFinalThoughts(t *testing.T) {
	db := testutil.NewTestDB(t)
	entries := repository.NewSQLiteEntryRepo(db)
	users := repository.NewSQLiteUserRepo(db)
	client := &fakeClient{text: "unused"}
	svc := NewService(entries, client, TextEmitter{}, zap.NewNop())

	user := seedReportUser(t, entries, users, 9)

	doc, err := svc.Generate(context.Background(), user, Type7Day)
	require.NoError(t, err)
	assert.False(t, client.called)
	assert.Contains(t, string(doc.Body), "Day 7")
	assert.NotContains(t, string(doc.Body), "Day 8")
	assert.Equal(t, "mirifer-7day-report.txt", doc.Filename)
}

func TestReportService_IneligibleSurfacesRejection(t *testing.T) {
	db := testutil.NewTestDB(t)
	entries := repository.NewSQLiteEntryRepo(db)
	users := repository.NewSQLiteUserRepo(db)
	svc := NewService(entries, &fakeClient{}, TextEmitter{}, zap.NewNop())

	ctx := context.Background()
	user := testutil.NewTestUser("Empty User")
	require.NoError(t, users.Create(ctx, user))

	_, err := svc.Generate(ctx, user, Type7Day)
	var rejection *IneligibleError
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, "REPORT_INCOMPLETE", rejection.Code)
	assert.Equal(t, ReasonMissingDays, rejection.Reason)
}
