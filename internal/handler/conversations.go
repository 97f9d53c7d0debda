// Package handler provides HTTP handlers for the API.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jerewitdashifts/chat-platform/internal/middleware"
	"github.com/jerewitdashifts/chat-platform/internal/model"
	"github.com/jerewitdashifts/chat-platform/internal/service"
	"github.com/jerewitdashifts/chat-platform/pkg/logger"
)

// ConversationHandler handles conversation endpoints.
type ConversationHandler struct {
	service *service.ConversationService
	logger  *logger.Logger
}

// NewConversationHandler creates a new conversation handler.
func NewConversationHandler(svc *service.ConversationService, log *logger.Logger) *ConversationHandler {
	return &ConversationHandler{
		service: svc,
		logger:  log,
	}
}

// List handles GET /api/v1/conversations
func (h *ConversationHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.List())
}

// Get handles GET /api/v1/conversations/{id}
func (h *ConversationHandler) Get(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "id")

	if err := middleware.ValidateConversationID(conversationID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	conv, err := h.service.Get(conversationID)
	if err != nil {
		writeError(w, http.StatusNotFound, "conversation not found")
		return
	}

	writeJSON(w, http.StatusOK, conv)
}

// CreatePro handles POST /api/v1/conversations/pro
func (h *ConversationHandler) CreatePro(w http.ResponseWriter, r *http.Request) {
	conv := h.service.NewProChat()
	writeJSON(w, http.StatusCreated, conv)
}

// Update handles PUT /api/v1/conversations/{id} (rename)
func (h *ConversationHandler) Update(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "id")

	if err := middleware.ValidateConversationID(conversationID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req model.UpdateConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := middleware.ValidateTitle(req.Title); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.Rename(conversationID, req.Title); err != nil {
		writeError(w, http.StatusNotFound, "conversation not found")
		return
	}

	conv, err := h.service.Get(conversationID)
	if err != nil {
		writeError(w, http.StatusNotFound, "conversation not found")
		return
	}

	writeJSON(w, http.StatusOK, conv)
}

// Delete handles DELETE /api/v1/conversations/{id}
func (h *ConversationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "id")

	if err := middleware.ValidateConversationID(conversationID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.Delete(conversationID); err != nil {
		writeError(w, http.StatusNotFound, "conversation not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Duplicate handles POST /api/v1/conversations/{id}/duplicate
func (h *ConversationHandler) Duplicate(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "id")

	if err := middleware.ValidateConversationID(conversationID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	dup, err := h.service.Duplicate(conversationID)
	if err != nil {
		writeError(w, http.StatusNotFound, "conversation not found")
		return
	}

	writeJSON(w, http.StatusCreated, dup)
}

// GetActive handles GET /api/v1/active
func (h *ConversationHandler) GetActive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Active())
}

// SetActive handles PUT /api/v1/active. A null id selects the new-chat state.
func (h *ConversationHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	var req model.ActiveConversation
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.ID != nil {
		if err := middleware.ValidateConversationID(*req.ID); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	if err := h.service.SetActive(req.ID); err != nil {
		writeError(w, http.StatusNotFound, "conversation not found")
		return
	}

	writeJSON(w, http.StatusOK, h.service.Active())
}
