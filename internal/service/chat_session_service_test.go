package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanish-jain-225/SilverCare-AI/internal/domain"
	"github.com/tanish-jain-225/SilverCare-AI/internal/repository"
	"github.com/tanish-jain-225/SilverCare-AI/internal/testutil"
)

func setupChatSessionService(t *testing.T) (ChatSessionService, *repository.SQLiteChatSessionRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteChatSessionRepo(database)
	return NewChatSessionService(repo, testutil.NewTestUoW(database)), repo
}

func TestChatSessionService_CreateAndLoad(t *testing.T) {
	svc, _ := setupChatSessionService(t)
	ctx := context.Background()

	snap, err := svc.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, snap.Sessions)
	assert.NotNil(t, snap.Sessions)
	assert.Equal(t, "", snap.CurrentSessionID)
	assert.Equal(t, 1, snap.SessionCounter)

	first, err := svc.Create(ctx, "u1", "Chat 1")
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, 0, first.MessageCount)
	assert.NotNil(t, first.Messages)

	snap, err = svc.Load(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, snap.Sessions, 1)
	assert.Equal(t, first.ID, snap.CurrentSessionID)
	assert.Equal(t, 2, snap.SessionCounter)
}

func TestChatSessionService_Create_Validation(t *testing.T) {
	svc, _ := setupChatSessionService(t)

	_, err := svc.Create(context.Background(), "u1", "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Create(context.Background(), "", "Chat")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Load(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestChatSessionService_ReplaceAll(t *testing.T) {
	svc, _ := setupChatSessionService(t)
	ctx := context.Background()

	old, err := svc.Create(ctx, "u1", "Old")
	require.NoError(t, err)
	other, err := svc.Create(ctx, "u2", "Someone else")
	require.NoError(t, err)

	base := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	incoming := []*domain.ChatSession{
		testutil.NewTestChatSession("ignored", "A", testutil.WithSessionCreatedAt(base),
			testutil.WithMessages(testutil.UserMsg("hi"), testutil.AssistantMsg("hello"))),
		testutil.NewTestChatSession("ignored", "B", testutil.WithSessionCreatedAt(base.Add(time.Minute))),
		nil,
	}
	saved, err := svc.ReplaceAll(ctx, "u1", incoming)
	require.NoError(t, err)
	assert.Equal(t, 2, saved)

	snap, err := svc.Load(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, snap.Sessions, 2)
	assert.Equal(t, "A", snap.Sessions[0].Name)
	assert.Equal(t, 2, snap.Sessions[0].MessageCount)
	for _, s := range snap.Sessions {
		assert.NotEqual(t, old.ID, s.ID)
		assert.Equal(t, "u1", s.UserID)
	}

	theirs, err := svc.Load(ctx, "u2")
	require.NoError(t, err)
	require.Len(t, theirs.Sessions, 1)
	assert.Equal(t, other.ID, theirs.Sessions[0].ID)
}

func TestChatSessionService_ReplaceAll_SkipsForeignSessionIDs(t *testing.T) {
	svc, repo := setupChatSessionService(t)
	ctx := context.Background()

	theirs, err := svc.Create(ctx, "u2", "Not yours")
	require.NoError(t, err)

	saved, err := svc.ReplaceAll(ctx, "u1", []*domain.ChatSession{
		testutil.NewTestChatSession("u1", "Mine"),
		testutil.NewTestChatSession("u1", "Hijack", testutil.WithSessionID(theirs.ID)),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, saved)

	mine, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Mine", mine[0].Name)

	kept, err := repo.GetByID(ctx, theirs.ID, "u2")
	require.NoError(t, err)
	assert.Equal(t, "Not yours", kept.Name)
}

func TestChatSessionService_ReplaceAll_RollsBackOnFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteChatSessionRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestChatSession("u1", "Keep me")))

	// The delete of the old set succeeds; the second upsert fails.
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 2, Match: "INSERT", Err: errors.New("disk full")}
	svc := NewChatSessionService(repo, uow)

	_, err := svc.ReplaceAll(ctx, "u1", []*domain.ChatSession{
		testutil.NewTestChatSession("u1", "New"),
		testutil.NewTestChatSession("u1", "Newer"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, 2, uow.Execs)

	list, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Keep me", list[0].Name)
}

func TestChatSessionService_UpdateMessagesAndTouch(t *testing.T) {
	svc, repo := setupChatSessionService(t)
	ctx := context.Background()

	sess, err := svc.Create(ctx, "u1", "Chat")
	require.NoError(t, err)

	msgs := []domain.ChatMessage{testutil.UserMsg("remind me"), testutil.AssistantMsg("done")}
	require.NoError(t, svc.UpdateMessages(ctx, sess.ID, "u1", msgs))
	require.NoError(t, svc.Touch(ctx, sess.ID, "u1"))

	fetched, err := repo.GetByID(ctx, sess.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, fetched.MessageCount)

	assert.ErrorIs(t, svc.UpdateMessages(ctx, sess.ID, "u2", msgs), repository.ErrNotFound)
	assert.ErrorIs(t, svc.Touch(ctx, "missing", "u1"), repository.ErrNotFound)
}

func TestChatSessionService_DeleteReturnsRemaining(t *testing.T) {
	svc, _ := setupChatSessionService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, "u1", "A")
	require.NoError(t, err)
	b, err := svc.Create(ctx, "u1", "B")
	require.NoError(t, err)

	remaining, err := svc.Delete(ctx, a.ID, "u1")
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, b.ID, remaining[0].ID)

	remaining, err = svc.Delete(ctx, b.ID, "u1")
	require.NoError(t, err)
	assert.NotNil(t, remaining)
	assert.Empty(t, remaining)

	_, err = svc.Delete(ctx, b.ID, "u1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
