package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/iconidentify/vidgate/internal/api/handler"
	mw "github.com/iconidentify/vidgate/internal/api/middleware"
)

// NewRouter creates the HTTP router with all routes configured.
func NewRouter(
	webhookHandler *handler.WebhookHandler,
	videoHandler *handler.VideoHandler,
	previewHandler *handler.PreviewHandler,
	redirectHandler *handler.RedirectHandler,
	healthHandler *handler.HealthHandler,
	uiHandler *handler.UIHandler,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CleanPath)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.Logger)
	r.Use(mw.Recovery)

	// Health endpoint
	r.Get("/health", healthHandler.Live)

	// Telegram update entry point. Always acks 200 so the platform
	// does not retry-storm on internal failures.
	r.Post("/telegram/webhook", webhookHandler.Handle)

	// Public listing page and its JSON backing
	r.Get("/", uiHandler.Index)
	r.Get("/api/videos", videoHandler.List)

	// Preview serving and deep-link redirect
	r.Get("/previews/{filename}", previewHandler.Serve)
	r.Get("/send/{videoID}", redirectHandler.Redirect)

	return r
}
