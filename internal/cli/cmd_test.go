package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanish-jain-225/SilverCare-AI/internal/app"
	"github.com/tanish-jain-225/SilverCare-AI/internal/intelligence"
	"github.com/tanish-jain-225/SilverCare-AI/internal/news"
	"github.com/tanish-jain-225/SilverCare-AI/internal/repository"
	"github.com/tanish-jain-225/SilverCare-AI/internal/service"
	"github.com/tanish-jain-225/SilverCare-AI/internal/testutil"
)

var cliNow = time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC)

type stubAssistant struct {
	result *intelligence.MessageResult
	err    error
	reqs   []intelligence.MessageRequest
}

func (s *stubAssistant) HandleMessage(_ context.Context, req intelligence.MessageRequest) (*intelligence.MessageResult, error) {
	s.reqs = append(s.reqs, req)
	return s.result, s.err
}

type stubNews struct {
	result *news.SearchResult
	err    error
	texts  []string
}

func (s *stubNews) Search(_ context.Context, text string) (*news.SearchResult, error) {
	s.texts = append(s.texts, text)
	return s.result, s.err
}

// testApp wires an App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	db := testutil.NewTestDB(t)
	now := func() time.Time { return cliNow }

	return &App{
		Reminders: service.NewReminderServiceWithClock(repository.NewSQLiteReminderRepo(db), now),
		Sessions:  service.NewChatSessionService(repository.NewSQLiteChatSessionRepo(db), testutil.NewTestUoW(db)),
		Now:       now,
		// Assistant and News left nil; tests that need them set stubs.
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, a *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(a)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestRootCmd_NoArgs_ShowsHelp(t *testing.T) {
	output, err := executeCmd(t, testApp(t))
	require.NoError(t, err)
	assert.Contains(t, output, "silvercare")
	assert.Contains(t, output, "reminder")
	assert.Contains(t, output, "normalize")
}

// --- reminder ---

func TestReminderAdd_NormalizesAndLists(t *testing.T) {
	a := testApp(t)

	out, err := executeCmd(t, a, "reminder", "add", "--user", "u1", "--title", "Call Ana", "--date", "tomorrow", "--time", "7pm")
	require.NoError(t, err)
	assert.Contains(t, out, "Call Ana")
	assert.Contains(t, out, "2024-06-11 at 7:00 PM")

	_, err = executeCmd(t, a, "reminder", "add", "--user", "u1", "--title", "Take vitamins", "--date", "2024-06-11", "--time", "8:00 AM")
	require.NoError(t, err)

	out, err = executeCmd(t, a, "reminder", "list", "--user", "u1")
	require.NoError(t, err)
	assert.Contains(t, out, "REMINDERS")
	assert.Contains(t, out, "Tomorrow")
	assert.Less(t, bytes.Index([]byte(out), []byte("Take vitamins")), bytes.Index([]byte(out), []byte("Call Ana")),
		"8:00 AM sorts before 7:00 PM on the same day")
}

func TestReminderAdd_InfersMissingFields(t *testing.T) {
	a := testApp(t)
	_, err := executeCmd(t, a, "reminder", "add", "--user", "u1", "--title", "Dentist appointment")
	require.NoError(t, err)

	list, err := a.Reminders.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.NotEmpty(t, list[0].Date)
	assert.NotEmpty(t, list[0].Time)
}

func TestReminderAdd_NonInteractiveNeedsTitle(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "reminder", "add", "--user", "u1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--title is required")
}

func TestReminderAdd_RequiresUserFlag(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "reminder", "add", "--title", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user")
}

func TestReminderDelete(t *testing.T) {
	a := testApp(t)
	_, err := executeCmd(t, a, "reminder", "add", "--user", "u1", "--title", "Walk", "--date", "2024-06-12", "--time", "7am")
	require.NoError(t, err)
	list, err := a.Reminders.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	id := list[0].ID

	_, err = executeCmd(t, a, "reminder", "delete", id, "--user", "u2")
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrNotFound))

	out, err := executeCmd(t, a, "reminder", "rm", id, "--user", "u1")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted reminder "+id)

	out, err = executeCmd(t, a, "reminder", "list", "--user", "u1")
	require.NoError(t, err)
	assert.Contains(t, out, "No reminders yet.")
}

// --- session ---

func TestSessionCreateListDelete(t *testing.T) {
	a := testApp(t)

	out, err := executeCmd(t, a, "session", "create", "Morning chat", "--user", "u1")
	require.NoError(t, err)
	assert.Contains(t, out, "Created session")

	_, err = executeCmd(t, a, "session", "create", "Evening chat", "--user", "u1")
	require.NoError(t, err)

	out, err = executeCmd(t, a, "session", "list", "--user", "u1")
	require.NoError(t, err)
	assert.Contains(t, out, "Morning chat")
	assert.Contains(t, out, "Evening chat")

	snap, err := a.Sessions.Load(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, snap.Sessions, 2)
	var morningID string
	for _, s := range snap.Sessions {
		if s.Name == "Morning chat" {
			morningID = s.ID
		}
	}
	require.NotEmpty(t, morningID)

	out, err = executeCmd(t, a, "session", "delete", morningID, "--user", "u1")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted session")
	assert.Contains(t, out, "Evening chat")
	assert.NotContains(t, out, "Morning chat")
}

func TestSessionCreate_RequiresName(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "session", "create", "--user", "u1")
	assert.Error(t, err)
}

// --- ask ---

func TestAsk_DisabledWithoutAssistant(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "ask", "hello", "--user", "u1")
	require.Error(t, err)
	assert.ErrorIs(t, err, app.ErrAssistantUnavailable)
	assert.Contains(t, err.Error(), "SILVERCARE_LLM_API_KEY")
}

func TestAsk_PrintsReply(t *testing.T) {
	a := testApp(t)
	stub := &stubAssistant{result: &intelligence.MessageResult{
		Success:            true,
		Message:            "Good morning! How did you sleep?",
		ReminderConfidence: 0.05,
		Decision:           intelligence.DecisionGeneralChat,
	}}
	a.Assistant = stub

	out, err := executeCmd(t, a, "ask", "good morning", "--user", "u1", "--session", "s1", "-v")
	require.NoError(t, err)
	assert.Contains(t, out, "Good morning! How did you sleep?")
	assert.Contains(t, out, "decision")

	require.Len(t, stub.reqs, 1)
	assert.Equal(t, "good morning", stub.reqs[0].Message)
	assert.Equal(t, "u1", stub.reqs[0].UserID)
	assert.Equal(t, "s1", stub.reqs[0].SessionID)
}

func TestAsk_WrapsErrors(t *testing.T) {
	a := testApp(t)
	a.Assistant = &stubAssistant{err: errors.New("boom")}
	_, err := executeCmd(t, a, "ask", "hi", "--user", "u1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "assistant failed")
}

// --- chat ---

func TestChat_RequiresTerminal(t *testing.T) {
	a := testApp(t)
	a.Assistant = &stubAssistant{}
	_, err := executeCmd(t, a, "chat", "--user", "u1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}

// --- news ---

func TestNews_DefaultQueryAndText(t *testing.T) {
	a := testApp(t)
	stub := &stubNews{result: &news.SearchResult{
		Articles: []news.Article{{Title: "Gardening tips for spring", URL: "https://n/1"}},
		Total:    1,
	}}
	a.News = stub

	out, err := executeCmd(t, a, "news")
	require.NoError(t, err)
	assert.Contains(t, out, "Gardening tips for spring")

	_, err = executeCmd(t, a, "news", "senior", "health")
	require.NoError(t, err)
	assert.Equal(t, []string{"latest news", "senior health"}, stub.texts)
}

func TestNews_NotConfigured(t *testing.T) {
	a := testApp(t)
	a.News = &stubNews{err: news.ErrNotConfigured}
	_, err := executeCmd(t, a, "news", "weather")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WORLD_NEWS_API_KEY1")
}

// --- normalize ---

func TestNormalize(t *testing.T) {
	a := testApp(t)

	out, err := executeCmd(t, a, "normalize", "date", "tomorrow", "--now", "2024-06-10T14:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-11\n", out)

	out, err = executeCmd(t, a, "normalize", "time", "9pm")
	require.NoError(t, err)
	assert.Equal(t, "9:00 PM\n", out)

	out, err = executeCmd(t, a, "normalize", "defaults", "Dentist visit")
	require.NoError(t, err)
	assert.Contains(t, out, "rule: appointment")

	out, err = executeCmd(t, a, "normalize", "context", "--now", "2024-06-10 14:00")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-06-11")

	_, err = executeCmd(t, a, "normalize", "date", "today", "--now", "yesterday-ish")
	assert.Error(t, err)
}

// --- serve ---

func TestServe_PassesAddress(t *testing.T) {
	a := testApp(t)
	var got string
	a.Serve = func(ctx context.Context, addr string) error {
		got = addr
		return nil
	}
	_, err := executeCmd(t, a, "serve", "--addr", ":9090")
	require.NoError(t, err)
	assert.Equal(t, ":9090", got)

	a.Serve = nil
	_, err = executeCmd(t, a, "serve")
	assert.Error(t, err)
}
