package domain

import (
	"bytes"
	"encoding/json"
	"time"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one stored chat turn. Clients attach their own fields
// (ids, timestamps, flags); those round-trip untouched through Extra.
type ChatMessage struct {
	Role    string
	Content string
	Extra   map[string]json.RawMessage
}

// IsConversational reports whether the message can be replayed to the model
// as history.
func (m ChatMessage) IsConversational() bool {
	return (m.Role == RoleUser || m.Role == RoleAssistant) && m.Content != ""
}

func (m ChatMessage) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(m.Extra)+2)
	for k, v := range m.Extra {
		out[k] = v
	}
	if m.Role != "" {
		out["role"] = m.Role
	}
	if m.Content != "" {
		out["content"] = m.Content
	}
	return json.Marshal(out)
}

func (m *ChatMessage) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = ChatMessage{}
	if v, ok := raw["role"]; ok {
		// Non-string roles are kept in Extra rather than rejected.
		if json.Unmarshal(v, &m.Role) == nil {
			delete(raw, "role")
		}
	}
	if v, ok := raw["content"]; ok {
		if json.Unmarshal(v, &m.Content) == nil {
			delete(raw, "content")
		}
	}
	if len(raw) > 0 {
		m.Extra = raw
	}
	return nil
}

// ChatHistory is a client-supplied transcript. Entries that are not JSON
// objects are dropped when decoding instead of failing the whole list.
type ChatHistory []ChatMessage

func (h *ChatHistory) UnmarshalJSON(data []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	out := make(ChatHistory, 0, len(items))
	for _, item := range items {
		if !bytes.HasPrefix(bytes.TrimSpace(item), []byte("{")) {
			continue
		}
		var m ChatMessage
		if err := json.Unmarshal(item, &m); err != nil {
			return err
		}
		out = append(out, m)
	}
	*h = out
	return nil
}

type ChatSession struct {
	ID           string
	UserID       string
	Name         string
	Messages     []ChatMessage
	CreatedAt    time.Time
	LastActivity time.Time
	MessageCount int
}
