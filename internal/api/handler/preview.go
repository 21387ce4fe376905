package handler

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
)

// PreviewHandler streams stored preview clips.
type PreviewHandler struct {
	previewDir string
	logger     *slog.Logger
}

// NewPreviewHandler creates a new preview file handler.
func NewPreviewHandler(previewDir string, logger *slog.Logger) *PreviewHandler {
	return &PreviewHandler{
		previewDir: previewDir,
		logger:     logger,
	}
}

// Serve handles GET /previews/{filename}.
func (h *PreviewHandler) Serve(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	// Only bare filenames inside the preview directory are servable.
	if filename == "" || filename != filepath.Base(filename) || strings.Contains(filename, "..") {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	fullPath := filepath.Join(h.previewDir, filename)
	if _, err := os.Stat(fullPath); err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	http.ServeFile(w, r, fullPath)
}
