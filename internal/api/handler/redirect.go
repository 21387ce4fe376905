package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/iconidentify/vidgate/pkg/telegram"
)

// identityAPI is the slice of the Telegram client used to resolve the
// bot's own username for deep links.
type identityAPI interface {
	GetMe(ctx context.Context) (*telegram.User, error)
}

// RedirectHandler turns /send/{videoID} into a Telegram deep link.
type RedirectHandler struct {
	bot    identityAPI
	logger *slog.Logger

	mu       sync.Mutex
	username string
}

// NewRedirectHandler creates a new deep-link redirect handler.
func NewRedirectHandler(bot identityAPI, logger *slog.Logger) *RedirectHandler {
	return &RedirectHandler{
		bot:    bot,
		logger: logger,
	}
}

// Redirect handles GET /send/{videoID}. The handler never touches the
// media store: the identifier is only carried through to the bot's
// /start command, which does the lookup.
func (h *RedirectHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "videoID")
	if videoID == "" {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	username, err := h.botUsername(r.Context())
	if err != nil {
		h.logger.Error("resolve bot username failed", "error", err)
		http.Error(w, "bot unavailable", http.StatusBadGateway)
		return
	}

	target := fmt.Sprintf("https://t.me/%s?start=%s", username, videoID)
	http.Redirect(w, r, target, http.StatusFound)
}

// botUsername resolves the bot's username once and caches it for the
// process lifetime.
func (h *RedirectHandler) botUsername(ctx context.Context) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.username != "" {
		return h.username, nil
	}

	me, err := h.bot.GetMe(ctx)
	if err != nil {
		return "", err
	}
	if me.Username == "" {
		return "", fmt.Errorf("bot has no username")
	}

	h.username = me.Username
	return h.username, nil
}
