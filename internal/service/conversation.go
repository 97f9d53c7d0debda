// Package service provides business logic for the chat platform.
package service

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jerewitdashifts/chat-platform/internal/model"
	"github.com/jerewitdashifts/chat-platform/internal/store"
	"github.com/jerewitdashifts/chat-platform/internal/summary"
	"github.com/jerewitdashifts/chat-platform/pkg/logger"
	"github.com/jerewitdashifts/chat-platform/pkg/metrics"
)

// ErrNotFound is returned when a conversation does not exist.
var ErrNotFound = errors.New("conversation not found")

// ConversationService handles conversation operations.
type ConversationService struct {
	store  *store.Store
	logger *logger.Logger

	now func() time.Time
}

// NewConversationService creates a new conversation service.
func NewConversationService(st *store.Store, log *logger.Logger) *ConversationService {
	return &ConversationService{
		store:  st,
		logger: log,
		now:    time.Now,
	}
}

// List returns all conversations in insertion order.
func (s *ConversationService) List() *model.ListConversationsResponse {
	convs := s.store.List()
	return &model.ListConversationsResponse{
		Conversations: convs,
		Total:         len(convs),
	}
}

// Get retrieves a conversation by id.
func (s *ConversationService) Get(id string) (*model.Conversation, error) {
	conv, ok := s.store.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return conv, nil
}

// NewProChat creates an empty dev-focused conversation bound to the Groq
// backend and makes it active.
func (s *ConversationService) NewProChat() *model.Conversation {
	now := s.now()
	conv := &model.Conversation{
		ID:       uuid.NewString(),
		Title:    "Pro Tech Dev Chat",
		Section:  summary.Classify(now, now),
		Messages: []model.Message{},
		Model:    model.TargetGroq,
	}

	s.store.Add(conv)
	s.store.SetActive(conv.ID)

	metrics.ConversationsTotal.WithLabelValues(string(model.TargetGroq)).Inc()
	s.logger.WithConversation(conv.ID).Info("pro chat created")

	return conv
}

// Rename sets a new title on a conversation.
func (s *ConversationService) Rename(id, title string) error {
	if !s.store.Rename(id, title) {
		return ErrNotFound
	}
	return nil
}

// Delete removes a conversation. The active pointer is cleared when it
// pointed at the deleted conversation.
func (s *ConversationService) Delete(id string) error {
	if !s.store.Delete(id) {
		return ErrNotFound
	}
	s.logger.WithConversation(id).Info("conversation deleted")
	return nil
}

// Duplicate deep-copies a conversation under a new id and copy-marked title.
func (s *ConversationService) Duplicate(id string) (*model.Conversation, error) {
	dup, ok := s.store.Duplicate(id)
	if !ok {
		return nil, ErrNotFound
	}
	return dup, nil
}

// Active returns the active-conversation pointer.
func (s *ConversationService) Active() *model.ActiveConversation {
	id, ok := s.store.ActiveID()
	if !ok {
		return &model.ActiveConversation{}
	}
	return &model.ActiveConversation{ID: &id}
}

// SetActive points the active pointer at a conversation, or clears it when
// id is nil (the new-chat state).
func (s *ConversationService) SetActive(id *string) error {
	if id == nil {
		s.store.ClearActive()
		return nil
	}
	if !s.store.SetActive(*id) {
		return ErrNotFound
	}
	return nil
}

// WebEnabled returns the persisted web-augmentation toggle.
func (s *ConversationService) WebEnabled() bool {
	return s.store.WebEnabled()
}

// SetWebEnabled flips the web-augmentation toggle.
func (s *ConversationService) SetWebEnabled(enabled bool) {
	s.store.SetWebEnabled(enabled)
}
