package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jerewitdashifts/chat-platform/internal/model"
	"github.com/jerewitdashifts/chat-platform/internal/store"
	"github.com/jerewitdashifts/chat-platform/pkg/logger"
)

func newConversationService(t *testing.T) *ConversationService {
	t.Helper()
	st := store.New(newMemKV(), logger.NewNop())
	require.NoError(t, st.Load())

	svc := NewConversationService(st, logger.NewNop())
	svc.now = func() time.Time {
		return time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)
	}
	return svc
}

func TestNewProChat(t *testing.T) {
	svc := newConversationService(t)

	conv := svc.NewProChat()

	assert.Equal(t, model.TargetGroq, conv.Model)
	assert.Equal(t, "Pro Tech Dev Chat", conv.Title)
	assert.Equal(t, model.SectionToday, conv.Section)
	assert.Empty(t, conv.Messages)

	active := svc.Active()
	require.NotNil(t, active.ID)
	assert.Equal(t, conv.ID, *active.ID)
}

func TestDeleteActiveClearsPointer(t *testing.T) {
	svc := newConversationService(t)
	conv := svc.NewProChat()

	require.NoError(t, svc.Delete(conv.ID))
	assert.Nil(t, svc.Active().ID)

	assert.ErrorIs(t, svc.Delete(conv.ID), ErrNotFound)
}

func TestDuplicateLeavesOriginalUntouched(t *testing.T) {
	svc := newConversationService(t)
	conv := svc.NewProChat()

	dup, err := svc.Duplicate(conv.ID)
	require.NoError(t, err)
	assert.NotEqual(t, conv.ID, dup.ID)
	assert.Equal(t, "Pro Tech Dev Chat (copy)", dup.Title)

	orig, err := svc.Get(conv.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pro Tech Dev Chat", orig.Title)
}

func TestRename(t *testing.T) {
	svc := newConversationService(t)
	conv := svc.NewProChat()

	require.NoError(t, svc.Rename(conv.ID, "My Project"))

	got, err := svc.Get(conv.ID)
	require.NoError(t, err)
	assert.Equal(t, "My Project", got.Title)
}

func TestSetActive(t *testing.T) {
	svc := newConversationService(t)
	conv := svc.NewProChat()

	// nil id selects the new-chat state.
	require.NoError(t, svc.SetActive(nil))
	assert.Nil(t, svc.Active().ID)

	require.NoError(t, svc.SetActive(&conv.ID))
	require.NotNil(t, svc.Active().ID)

	missing := "00000000-0000-0000-0000-000000000000"
	assert.ErrorIs(t, svc.SetActive(&missing), ErrNotFound)
}

func TestList(t *testing.T) {
	svc := newConversationService(t)
	svc.NewProChat()
	svc.NewProChat()

	resp := svc.List()
	assert.Equal(t, 2, resp.Total)
	assert.Len(t, resp.Conversations, 2)
}
