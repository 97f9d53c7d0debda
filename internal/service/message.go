package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jerewitdashifts/chat-platform/internal/llm"
	"github.com/jerewitdashifts/chat-platform/internal/model"
	"github.com/jerewitdashifts/chat-platform/internal/rules"
	"github.com/jerewitdashifts/chat-platform/internal/store"
	"github.com/jerewitdashifts/chat-platform/internal/summary"
	"github.com/jerewitdashifts/chat-platform/internal/websearch"
	"github.com/jerewitdashifts/chat-platform/pkg/logger"
	"github.com/jerewitdashifts/chat-platform/pkg/metrics"
)

var (
	// ErrEmptyMessage is returned for messages that are empty after trimming.
	ErrEmptyMessage = errors.New("message content is empty")

	// ErrSendInFlight is returned when a send is already running against the
	// same conversation.
	ErrSendInFlight = errors.New("a send is already in flight for this conversation")
)

const completionTemperature = 0.2

// WebFetcher is the web-context surface the router needs.
type WebFetcher interface {
	FetchFreshFact(ctx context.Context, query string) websearch.Result
}

// MessageService routes user messages: local answer first, then the
// conversation's fixed backend, with optional web augmentation on the
// general-purpose path.
type MessageService struct {
	store   *store.Store
	openai  llm.Client // nil when unconfigured
	groq    llm.Client // nil when unconfigured
	fetcher WebFetcher
	logger  *logger.Logger

	now func() time.Time

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewMessageService creates a new message service. Either client may be nil;
// sends on an unconfigured backend produce no reply rather than failing.
func NewMessageService(st *store.Store, openaiClient, groqClient llm.Client, fetcher WebFetcher, log *logger.Logger) *MessageService {
	return &MessageService{
		store:    st,
		openai:   openaiClient,
		groq:     groqClient,
		fetcher:  fetcher,
		logger:   log,
		now:      time.Now,
		inFlight: make(map[string]struct{}),
	}
}

// displayTime formats a message timestamp for display.
func displayTime(t time.Time) string {
	return t.Format("03:04 PM")
}

// Send implements the message routing pipeline against the active
// conversation. Completion failures never propagate: they are logged, counted
// and normalized to a nil reply.
func (s *MessageService) Send(ctx context.Context, content string) (*model.SendMessageResponse, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyMessage
	}

	now := s.now()
	userMsg := model.Message{
		Role:      model.RoleUser,
		Content:   content,
		Timestamp: displayTime(now),
	}

	// Resolve the target before touching the store so a send rejected by the
	// in-flight guard leaves no trace.
	convoID, target, isNew, stale := s.resolveTarget()
	log := s.logger.WithConversation(convoID)

	if err := s.acquire(convoID); err != nil {
		return nil, err
	}
	defer s.release(convoID)

	s.commitUserMessage(now, convoID, isNew, stale, userMsg)
	metrics.MessagesTotal.WithLabelValues(string(model.RoleUser)).Inc()

	// Local answer short-circuits any network call.
	if answer, ok := rules.ResolveAt(now, content); ok {
		metrics.LocalAnswersTotal.Inc()
		reply := s.appendReply(convoID, answer)
		log.Debug("local answer resolved")
		return &model.SendMessageResponse{ConversationID: convoID, Reply: reply}, nil
	}

	replyText := s.complete(ctx, log, target, content)
	if replyText == "" {
		return &model.SendMessageResponse{ConversationID: convoID}, nil
	}

	reply := s.appendReply(convoID, replyText)
	return &model.SendMessageResponse{ConversationID: convoID, Reply: reply}, nil
}

// resolveTarget picks the conversation a send routes to and its fixed
// backend. When nothing is active a fresh id is reserved for the conversation
// commitUserMessage will create; the store is not touched here.
func (s *MessageService) resolveTarget() (convoID string, target model.ModelTarget, isNew, stale bool) {
	target = model.TargetOpenAI
	if activeID, ok := s.store.ActiveID(); ok {
		convoID = activeID
		if conv, found := s.store.Get(activeID); found {
			target = conv.Model
		} else {
			stale = true
		}
		return convoID, target, false, stale
	}
	return uuid.NewString(), target, true, false
}

// commitUserMessage persists the user turn once the in-flight guard is held.
// A stale active pointer keeps the send flowing but turns appends into
// no-ops.
func (s *MessageService) commitUserMessage(now time.Time, convoID string, isNew, stale bool, userMsg model.Message) {
	switch {
	case isNew:
		conv := &model.Conversation{
			ID:       convoID,
			Title:    summary.Title(userMsg.Content),
			Section:  summary.Classify(now, now),
			Messages: []model.Message{userMsg},
			Model:    model.TargetOpenAI,
		}
		s.store.Add(conv)
		s.store.SetActive(conv.ID)
		metrics.ConversationsTotal.WithLabelValues(string(model.TargetOpenAI)).Inc()
	case stale:
		s.logger.Warn("active pointer references a deleted conversation",
			zap.String("conversation_id", convoID))
	default:
		s.store.Append(convoID, userMsg)
	}
}

// complete dispatches to the conversation's backend and returns the reply
// text, empty on any failure.
func (s *MessageService) complete(ctx context.Context, log *logger.Logger, target model.ModelTarget, content string) string {
	var client llm.Client
	var messages []llm.ChatMessage
	now := s.now()

	switch target {
	case model.TargetGroq:
		// Dev path: fixed senior-developer instruction, never web-augmented.
		client = s.groq
		messages = llm.BuildDevPrompt(content)

	case model.TargetOpenAI:
		client = s.openai

		var web websearch.Result
		if s.store.WebEnabled() || rules.NeedsFreshData(content) {
			if rules.NeedsFreshData(content) {
				metrics.FreshQueriesTotal.Inc()
			}
			web = s.fetcher.FetchFreshFact(ctx, content)
		}
		messages = llm.BuildGeneralPrompt(now, web.Text, web.Sources, content)

	default:
		log.Error("conversation has unknown backend", zap.String("model", string(target)))
		return ""
	}

	if client == nil {
		log.Warn("completion backend not configured, no reply produced",
			zap.String("model", string(target)))
		return ""
	}

	resp, err := client.Complete(ctx, &llm.CompletionRequest{
		Messages:    messages,
		Temperature: completionTemperature,
	})
	if err != nil {
		log.Error("completion call failed, no reply produced",
			zap.String("provider", client.Name()), zap.Error(err))
		metrics.RecordLLMRequest(client.Name(), "error", 0, 0, 0)
		return ""
	}

	metrics.RecordLLMRequest(client.Name(), "success",
		float64(resp.LatencyMs)/1000.0, resp.TokensIn, resp.TokensOut)

	return resp.Content
}

// appendReply appends an assistant message and returns it, or nil when the
// conversation no longer exists.
func (s *MessageService) appendReply(convoID, content string) *model.Message {
	reply := model.Message{
		Role:      model.RoleAssistant,
		Content:   content,
		Timestamp: displayTime(s.now()),
	}
	if !s.store.Append(convoID, reply) {
		return nil
	}
	metrics.MessagesTotal.WithLabelValues(string(model.RoleAssistant)).Inc()
	return &reply
}

func (s *MessageService) acquire(convoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inFlight[convoID]; busy {
		return ErrSendInFlight
	}
	s.inFlight[convoID] = struct{}{}
	return nil
}

func (s *MessageService) release(convoID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.inFlight, convoID)
}
