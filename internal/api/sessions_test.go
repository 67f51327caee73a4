package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessions_Lifecycle(t *testing.T) {
	env := newTestEnv(t)

	status, resp := env.do(t, http.MethodGet, "/loadChat?userId=u1", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, resp["sessions"])
	assert.Nil(t, resp["currentSessionId"])
	assert.EqualValues(t, 1, resp["sessionCounter"])

	status, resp = env.do(t, http.MethodPost, "/createChat", map[string]any{"sessionName": "Chat 1", "userId": "u1"})
	require.Equal(t, http.StatusOK, status)
	session := resp["session"].(map[string]any)
	id := session["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "Chat 1", session["name"])
	assert.Equal(t, []any{}, session["messages"])
	assert.EqualValues(t, 0, session["messageCount"])
	assert.Equal(t, "u1", session["userId"])
	assert.NotEmpty(t, session["createdAt"])

	status, resp = env.do(t, http.MethodPut, "/updateMessages/"+id+"/messages", map[string]any{
		"userId": "u1",
		"messages": []map[string]any{
			{"role": "user", "content": "hello", "timestamp": "10:00"},
			{"role": "assistant", "content": "Hi!"},
		},
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, resp["success"])

	status, resp = env.do(t, http.MethodPatch, "/updateActivity/"+id+"/activity", map[string]any{"userId": "u1"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, resp["success"])

	_, resp = env.do(t, http.MethodGet, "/loadChat?userId=u1", nil)
	assert.Equal(t, id, resp["currentSessionId"])
	assert.EqualValues(t, 2, resp["sessionCounter"])
	sessions := resp["sessions"].([]any)
	require.Len(t, sessions, 1)
	loaded := sessions[0].(map[string]any)
	assert.EqualValues(t, 2, loaded["messageCount"])
	msgs := loaded["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "10:00", msgs[0].(map[string]any)["timestamp"])
}

func TestSessions_OtherUsersCannotModify(t *testing.T) {
	env := newTestEnv(t)
	_, resp := env.do(t, http.MethodPost, "/createChat", map[string]any{"sessionName": "Mine", "userId": "u1"})
	id := resp["session"].(map[string]any)["id"].(string)

	status, resp := env.do(t, http.MethodPut, "/updateMessages/"+id+"/messages", map[string]any{
		"userId":   "intruder",
		"messages": []map[string]any{{"role": "user", "content": "x"}},
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, resp["success"])

	_, resp = env.do(t, http.MethodPatch, "/updateActivity/"+id+"/activity", map[string]any{"userId": "intruder"})
	assert.Equal(t, false, resp["success"])

	status, resp = env.do(t, http.MethodDelete, "/deleteChat/"+id+"?userId=intruder", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, resp["remainingSessions"])

	_, resp = env.do(t, http.MethodGet, "/loadChat?userId=u1", nil)
	assert.Len(t, resp["sessions"], 1)
}

func TestSessions_DeleteReturnsRemaining(t *testing.T) {
	env := newTestEnv(t)
	_, resp := env.do(t, http.MethodPost, "/createChat", map[string]any{"sessionName": "A", "userId": "u1"})
	first := resp["session"].(map[string]any)["id"].(string)
	env.do(t, http.MethodPost, "/createChat", map[string]any{"sessionName": "B", "userId": "u1"})

	status, resp := env.do(t, http.MethodDelete, "/deleteChat/"+first+"?userId=u1", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, resp["success"])
	remaining := resp["remainingSessions"].([]any)
	require.Len(t, remaining, 1)
	assert.Equal(t, "B", remaining[0].(map[string]any)["name"])
}

func TestSessions_SaveChatReplacesAll(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/createChat", map[string]any{"sessionName": "Old", "userId": "u1"})

	status, resp := env.do(t, http.MethodPut, "/saveChat", map[string]any{
		"userId": "u1",
		"sessions": []any{
			map[string]any{
				"id":           "client-1",
				"name":         "Morning chat",
				"messages":     []map[string]any{{"role": "user", "content": "good morning"}},
				"createdAt":    "2024-06-10T08:00:00.123456",
				"lastActivity": "2024-06-10T08:05:00Z",
			},
			nil,
			map[string]any{"id": "client-2", "name": "Evening chat"},
		},
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, resp["success"])
	assert.EqualValues(t, 2, resp["count"])

	_, resp = env.do(t, http.MethodGet, "/loadChat?userId=u1", nil)
	sessions := resp["sessions"].([]any)
	require.Len(t, sessions, 2)

	byID := map[string]map[string]any{}
	for _, s := range sessions {
		m := s.(map[string]any)
		byID[m["id"].(string)] = m
	}
	require.Contains(t, byID, "client-1")
	assert.Equal(t, "2024-06-10T08:00:00Z", byID["client-1"]["createdAt"])
	assert.EqualValues(t, 1, byID["client-1"]["messageCount"])
	require.Contains(t, byID, "client-2")
	assert.NotEmpty(t, byID["client-2"]["createdAt"])
}

func TestSessions_RequireUser(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.do(t, http.MethodGet, "/loadChat", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = env.do(t, http.MethodPost, "/createChat", map[string]any{"sessionName": "x"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = env.do(t, http.MethodPut, "/saveChat", map[string]any{"sessions": []any{}})
	assert.Equal(t, http.StatusBadRequest, status)
}
