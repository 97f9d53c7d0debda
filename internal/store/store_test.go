package store

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jerewitdashifts/chat-platform/internal/model"
	"github.com/jerewitdashifts/chat-platform/pkg/logger"
)

// memKV is an in-memory KV for tests.
type memKV struct {
	data map[string]string
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string]string)}
}

func (m *memKV) Get(key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(key, value string) error {
	m.data[key] = value
	return nil
}

func newTestStore(t *testing.T) (*Store, *memKV) {
	t.Helper()
	kv := newMemKV()
	s := New(kv, logger.NewNop())
	require.NoError(t, s.Load())
	return s, kv
}

func sampleConversation(id string) *model.Conversation {
	return &model.Conversation{
		ID:      id,
		Title:   "Sample",
		Section: model.SectionToday,
		Messages: []model.Message{
			{Role: model.RoleUser, Content: "hi", Timestamp: "09:00 AM"},
		},
		Model: model.TargetOpenAI,
	}
}

func TestLoad_MalformedSnapshotToleratedAsEmpty(t *testing.T) {
	kv := newMemKV()
	kv.data["conversations"] = "{not json"

	s := New(kv, logger.NewNop())
	require.NoError(t, s.Load())
	assert.Empty(t, s.List())
}

func TestLoad_WebToggle(t *testing.T) {
	kv := newMemKV()
	kv.data["useWeb"] = "false"

	s := New(kv, logger.NewNop())
	require.NoError(t, s.Load())
	assert.False(t, s.WebEnabled())

	// Default is on when nothing is persisted.
	s2 := New(newMemKV(), logger.NewNop())
	require.NoError(t, s2.Load())
	assert.True(t, s2.WebEnabled())
}

func TestAdd_PersistsSnapshot(t *testing.T) {
	s, kv := newTestStore(t)

	s.Add(sampleConversation("c1"))

	var persisted []model.Conversation
	require.NoError(t, json.Unmarshal([]byte(kv.data["conversations"]), &persisted))
	require.Len(t, persisted, 1)
	assert.Equal(t, "c1", persisted[0].ID)
}

func TestAppend(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add(sampleConversation("c1"))

	ok := s.Append("c1", model.Message{Role: model.RoleAssistant, Content: "hello", Timestamp: "09:01 AM"})
	require.True(t, ok)

	conv, found := s.Get("c1")
	require.True(t, found)
	require.Len(t, conv.Messages, 2)
	assert.Equal(t, model.RoleAssistant, conv.Messages[1].Role)

	assert.False(t, s.Append("missing", model.Message{}), "append to a missing conversation is a no-op")
}

func TestRename(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add(sampleConversation("c1"))

	require.True(t, s.Rename("c1", "Renamed"))
	conv, _ := s.Get("c1")
	assert.Equal(t, "Renamed", conv.Title)

	assert.False(t, s.Rename("missing", "x"))
}

func TestDelete_ClearsActivePointerOnlyWhenActive(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add(sampleConversation("c1"))
	s.Add(sampleConversation("c2"))

	require.True(t, s.SetActive("c1"))

	// Deleting a non-active conversation leaves the pointer unchanged.
	require.True(t, s.Delete("c2"))
	id, ok := s.ActiveID()
	require.True(t, ok)
	assert.Equal(t, "c1", id)

	// Deleting the active conversation clears the pointer.
	require.True(t, s.Delete("c1"))
	_, ok = s.ActiveID()
	assert.False(t, ok)
}

func TestDuplicate(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add(sampleConversation("c1"))

	dup, ok := s.Duplicate("c1")
	require.True(t, ok)

	assert.NotEqual(t, "c1", dup.ID)
	assert.Equal(t, "Sample (copy)", dup.Title)
	assert.Equal(t, model.TargetOpenAI, dup.Model)

	orig, _ := s.Get("c1")
	require.Equal(t, orig.Messages, dup.Messages)

	// The copy owns its own log; appending to it must not touch the original.
	s.Append(dup.ID, model.Message{Role: model.RoleUser, Content: "more"})
	orig, _ = s.Get("c1")
	assert.Len(t, orig.Messages, 1)

	_, ok = s.Duplicate("missing")
	assert.False(t, ok)
}

func TestSetActive_RequiresExistingConversation(t *testing.T) {
	s, _ := newTestStore(t)

	assert.False(t, s.SetActive("missing"))

	s.Add(sampleConversation("c1"))
	assert.True(t, s.SetActive("c1"))

	s.ClearActive()
	_, ok := s.ActiveID()
	assert.False(t, ok)
}

func TestSetWebEnabled_Persists(t *testing.T) {
	s, kv := newTestStore(t)

	s.SetWebEnabled(false)
	assert.False(t, s.WebEnabled())
	assert.Equal(t, "false", kv.data["useWeb"])

	s.SetWebEnabled(true)
	assert.Equal(t, "true", kv.data["useWeb"])
}

func TestRoundTrip(t *testing.T) {
	s, kv := newTestStore(t)
	s.Add(sampleConversation("c1"))
	s.Append("c1", model.Message{Role: model.RoleAssistant, Content: "hey", Timestamp: "09:02 AM"})

	s2 := New(kv, logger.NewNop())
	require.NoError(t, s2.Load())

	conv, found := s2.Get("c1")
	require.True(t, found)
	assert.Len(t, conv.Messages, 2)
	assert.Equal(t, model.SectionToday, conv.Section)
}
