package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iconidentify/vidgate/internal/service"
	"github.com/iconidentify/vidgate/pkg/telegram"
)

// WebhookHandler is the entry point for Telegram updates.
type WebhookHandler struct {
	dispatcher *service.Dispatcher
	logger     *slog.Logger
}

// NewWebhookHandler creates a new webhook handler.
func NewWebhookHandler(dispatcher *service.Dispatcher, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Handle processes POST /telegram/webhook.
//
// The acknowledgement is unconditional: Telegram retries updates whose
// webhook call fails, so even a malformed payload gets a 200 "ok" after
// being logged. Video posts are dispatched to the background, so the
// reply here never waits on download or transcoding.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var update telegram.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.logger.Warn("malformed webhook payload", "error", err)
		h.ack(w)
		return
	}

	h.dispatcher.Dispatch(r.Context(), &update)
	h.ack(w)
}

func (h *WebhookHandler) ack(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
