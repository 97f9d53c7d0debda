package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jerewitdashifts/chat-platform/internal/middleware"
	"github.com/jerewitdashifts/chat-platform/internal/model"
	"github.com/jerewitdashifts/chat-platform/internal/service"
	"github.com/jerewitdashifts/chat-platform/pkg/logger"
)

// MessageHandler handles message endpoints.
type MessageHandler struct {
	service *service.MessageService
	logger  *logger.Logger
}

// NewMessageHandler creates a new message handler.
func NewMessageHandler(svc *service.MessageService, log *logger.Logger) *MessageHandler {
	return &MessageHandler{
		service: svc,
		logger:  log,
	}
}

// Send handles POST /api/v1/messages. The message goes to the active
// conversation, or starts a new one when none is active. A response without
// a reply means the completion produced nothing; that is not an error.
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req model.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := middleware.ValidateMessageContent(req.Content); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.Send(r.Context(), req.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyMessage):
			writeError(w, http.StatusBadRequest, "message content is empty")
		case errors.Is(err, service.ErrSendInFlight):
			writeError(w, http.StatusConflict, "a send is already in flight for this conversation")
		default:
			h.logger.Error("failed to send message")
			writeError(w, http.StatusInternalServerError, "failed to send message")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
