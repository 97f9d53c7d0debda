// Package store holds the conversation collection in memory and keeps it
// synchronized to the persistent key-value store on every change.
package store

import (
	"encoding/json"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jerewitdashifts/chat-platform/internal/model"
	"github.com/jerewitdashifts/chat-platform/pkg/logger"
)

const (
	// keyConversations holds the serialized conversation collection.
	keyConversations = "conversations"
	// keyUseWeb holds the web-augmentation toggle ("true"/"false").
	keyUseWeb = "useWeb"
)

// KV is the persistence surface the store needs: a string key-value store.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Store owns the conversation collection, the active-conversation pointer and
// the web toggle. All mutations persist a full snapshot before returning;
// persistence failures are logged, the in-memory state stays authoritative.
type Store struct {
	kv     KV
	logger *logger.Logger

	mu            sync.RWMutex
	conversations []*model.Conversation
	activeID      string // empty means the fresh new-chat state
	useWeb        bool
}

// New creates a store over the given key-value backend.
func New(kv KV, log *logger.Logger) *Store {
	return &Store{
		kv:     kv,
		logger: log,
		useWeb: true,
	}
}

// Load reads persisted state. Malformed conversation data is tolerated and
// treated as absent; Load never fails because of it.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.kv.Get(keyConversations)
	if err != nil {
		return err
	}
	if ok {
		var convs []*model.Conversation
		if err := json.Unmarshal([]byte(raw), &convs); err != nil {
			s.logger.Warn("failed to parse saved conversations, starting empty",
				zap.Error(err))
		} else {
			// No conversation may exist in an ambiguous-model state.
			for _, c := range convs {
				if !c.Model.Valid() {
					s.logger.Warn("conversation has unknown model, defaulting",
						zap.String("conversation_id", c.ID),
						zap.String("model", string(c.Model)))
					c.Model = model.TargetOpenAI
				}
			}
			s.conversations = convs
		}
	}

	rawWeb, ok, err := s.kv.Get(keyUseWeb)
	if err != nil {
		return err
	}
	if ok {
		s.useWeb = rawWeb == "true"
	}

	return nil
}

// save persists the full collection snapshot. Callers hold the write lock.
func (s *Store) save() {
	data, err := json.Marshal(s.conversations)
	if err != nil {
		s.logger.Error("failed to serialize conversations", zap.Error(err))
		return
	}
	if err := s.kv.Set(keyConversations, string(data)); err != nil {
		s.logger.Error("failed to persist conversations", zap.Error(err))
	}
}

// List returns a snapshot of all conversations in insertion order.
func (s *Store) List() []model.Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Conversation, 0, len(s.conversations))
	for _, c := range s.conversations {
		out = append(out, *c.Clone())
	}
	return out
}

// Get returns a copy of the conversation with the given id.
func (s *Store) Get(id string) (*model.Conversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.conversations {
		if c.ID == id {
			return c.Clone(), true
		}
	}
	return nil, false
}

// Add inserts a new conversation and persists.
func (s *Store) Add(conv *model.Conversation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conversations = append(s.conversations, conv.Clone())
	s.save()
}

// Append appends a message to the conversation with the given id and
// persists. Returns false when the conversation does not exist.
func (s *Store) Append(id string, msg model.Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.conversations {
		if c.ID == id {
			c.Messages = append(c.Messages, msg)
			s.save()
			return true
		}
	}
	return false
}

// Rename sets a new title on the conversation and persists.
func (s *Store) Rename(id, title string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.conversations {
		if c.ID == id {
			c.Title = title
			s.save()
			return true
		}
	}
	return false
}

// Delete removes the conversation and persists. Deleting the active
// conversation clears the active pointer.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.conversations {
		if c.ID == id {
			s.conversations = append(s.conversations[:i], s.conversations[i+1:]...)
			if s.activeID == id {
				s.activeID = ""
			}
			s.save()
			return true
		}
	}
	return false
}

// Duplicate deep-copies the conversation under a new id with a copy-marked
// title, persists, and returns the copy.
func (s *Store) Duplicate(id string) (*model.Conversation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.conversations {
		if c.ID == id {
			dup := c.Clone()
			dup.ID = uuid.NewString()
			dup.Title = c.Title + " (copy)"
			s.conversations = append(s.conversations, dup)
			s.save()
			return dup.Clone(), true
		}
	}
	return nil, false
}

// ActiveID returns the active conversation id; the bool is false in the
// fresh new-chat state.
func (s *Store) ActiveID() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.activeID == "" {
		return "", false
	}
	return s.activeID, true
}

// SetActive points the active pointer at an existing conversation. Returns
// false when the conversation does not exist.
func (s *Store) SetActive(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.conversations {
		if c.ID == id {
			s.activeID = id
			return true
		}
	}
	return false
}

// ClearActive resets to the fresh new-chat state.
func (s *Store) ClearActive() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.activeID = ""
}

// WebEnabled returns the web-augmentation toggle.
func (s *Store) WebEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.useWeb
}

// SetWebEnabled flips the web-augmentation toggle and persists it.
func (s *Store) SetWebEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.useWeb = enabled
	if err := s.kv.Set(keyUseWeb, strconv.FormatBool(enabled)); err != nil {
		s.logger.Error("failed to persist web toggle", zap.Error(err))
	}
}
