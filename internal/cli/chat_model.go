package cli

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tanish-jain-225/SilverCare-AI/internal/app"
	"github.com/tanish-jain-225/SilverCare-AI/internal/cli/formatter"
	"github.com/tanish-jain-225/SilverCare-AI/internal/domain"
	"github.com/tanish-jain-225/SilverCare-AI/internal/intelligence"
	"github.com/tanish-jain-225/SilverCare-AI/internal/service"
)

// replyMsg carries the assistant's answer back into the update loop.
type replyMsg struct {
	result *intelligence.MessageResult
	err    error
}

// persistedMsg reports the outcome of saving the transcript to a session.
type persistedMsg struct {
	err error
}

// chatModel is the interactive chat shell. It keeps the conversation
// history and, when a session is given, mirrors it into that session.
type chatModel struct {
	ctx       context.Context
	assistant app.MessageUseCase
	sessions  service.ChatSessionService
	userID    string
	sessionID string
	verbose   bool

	input      textinput.Model
	history    []domain.ChatMessage
	transcript []string
	pending    bool

	// recall holds previously typed lines; recallIdx == len(recall) means
	// the input is not showing a recalled line.
	recall      []string
	recallIdx   int
	historyPath string
}

func newChatModel(ctx context.Context, assistant app.MessageUseCase, sessions service.ChatSessionService, userID, sessionID string, history []domain.ChatMessage) *chatModel {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.CharLimit = 1000
	ti.Placeholder = "Type a message, or /quit"

	m := &chatModel{
		ctx:       ctx,
		assistant: assistant,
		sessions:  sessions,
		userID:    userID,
		sessionID: sessionID,
		input:     ti,
		history:   append([]domain.ChatMessage(nil), history...),
	}
	m.transcript = append(m.transcript, formatter.Header("SilverCare chat"))
	if len(history) > 0 {
		m.transcript = append(m.transcript, formatter.Dim("Continuing a conversation with earlier messages."))
	}
	return m
}

func (m *chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyUp:
			m.recallStep(-1)
			return m, nil
		case tea.KeyDown:
			m.recallStep(1)
			return m, nil
		}

	case replyMsg:
		m.pending = false
		if msg.err != nil {
			m.transcript = append(m.transcript, formatter.StyleRed.Render("Error: ")+askError(msg.err).Error())
			return m, nil
		}
		m.history = append(m.history, domain.ChatMessage{Role: domain.RoleAssistant, Content: msg.result.Message})
		m.transcript = append(m.transcript, strings.TrimRight(formatter.FormatAssistantReply(msg.result, m.verbose), "\n"))
		return m, m.persist()

	case persistedMsg:
		if msg.err != nil {
			m.transcript = append(m.transcript, formatter.StyleYellow.Render("Could not save session: ")+msg.err.Error())
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *chatModel) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" || m.pending {
		return m, nil
	}
	m.input.Reset()
	if text == "/quit" || text == "/exit" {
		return m, tea.Quit
	}
	m.recall = append(m.recall, text)
	m.recallIdx = len(m.recall)
	appendInputHistory(m.historyPath, text)

	req := intelligence.MessageRequest{
		Message:   text,
		UserID:    m.userID,
		SessionID: m.sessionID,
		History:   append([]domain.ChatMessage(nil), m.history...),
	}
	m.history = append(m.history, domain.ChatMessage{Role: domain.RoleUser, Content: text})
	m.transcript = append(m.transcript, formatter.Dim("You: ")+text)
	m.pending = true

	ctx, assistant := m.ctx, m.assistant
	return m, func() tea.Msg {
		res, err := assistant.HandleMessage(ctx, req)
		return replyMsg{result: res, err: err}
	}
}

// withRecall seeds the arrow-key recall list from path and appends new
// lines to it.
func (m *chatModel) withRecall(path string) *chatModel {
	m.historyPath = path
	m.recall = loadInputHistory(path)
	m.recallIdx = len(m.recall)
	return m
}

func (m *chatModel) recallStep(delta int) {
	idx := m.recallIdx + delta
	if idx < 0 || idx > len(m.recall) {
		return
	}
	m.recallIdx = idx
	if idx == len(m.recall) {
		m.input.Reset()
		return
	}
	m.input.SetValue(m.recall[idx])
	m.input.CursorEnd()
}

func (m *chatModel) persist() tea.Cmd {
	if m.sessions == nil || m.sessionID == "" {
		return nil
	}
	ctx, sessions := m.ctx, m.sessions
	id, userID := m.sessionID, m.userID
	msgs := append([]domain.ChatMessage(nil), m.history...)
	return func() tea.Msg {
		return persistedMsg{err: sessions.UpdateMessages(ctx, id, userID, msgs)}
	}
}

func (m *chatModel) View() string {
	var b strings.Builder
	for _, line := range m.transcript {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if m.pending {
		b.WriteString(formatter.Dim("SilverCare is thinking..."))
		b.WriteString("\n")
	}
	b.WriteString(formatter.StylePurple.Render("you") + formatter.Dim("> "))
	b.WriteString(m.input.View())
	return b.String()
}
