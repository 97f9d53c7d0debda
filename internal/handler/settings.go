package handler

import (
	"encoding/json"
	"net/http"

	"github.com/jerewitdashifts/chat-platform/internal/model"
	"github.com/jerewitdashifts/chat-platform/internal/service"
	"github.com/jerewitdashifts/chat-platform/pkg/logger"
)

// SettingsHandler handles the web-augmentation toggle.
type SettingsHandler struct {
	service *service.ConversationService
	logger  *logger.Logger
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(svc *service.ConversationService, log *logger.Logger) *SettingsHandler {
	return &SettingsHandler{
		service: svc,
		logger:  log,
	}
}

// GetWeb handles GET /api/v1/settings/web
func (h *SettingsHandler) GetWeb(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.WebToggle{Enabled: h.service.WebEnabled()})
}

// SetWeb handles PUT /api/v1/settings/web
func (h *SettingsHandler) SetWeb(w http.ResponseWriter, r *http.Request) {
	var req model.WebToggle
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.service.SetWebEnabled(req.Enabled)
	writeJSON(w, http.StatusOK, model.WebToggle{Enabled: h.service.WebEnabled()})
}
