package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"path"
	"path/filepath"

	"github.com/iconidentify/vidgate/internal/repository"
)

// VideoHandler serves the public video listing.
type VideoHandler struct {
	repo    repository.VideoRepository
	baseURL string
	logger  *slog.Logger
}

// NewVideoHandler creates a new video listing handler. baseURL may be
// empty, in which case the listing carries relative URLs.
func NewVideoHandler(repo repository.VideoRepository, baseURL string, logger *slog.Logger) *VideoHandler {
	return &VideoHandler{
		repo:    repo,
		baseURL: baseURL,
		logger:  logger,
	}
}

// VideoEntry represents one video in the listing response.
type VideoEntry struct {
	VideoID     string `json:"video_id"`
	PreviewURL  string `json:"preview_url"`
	DeliveryURL string `json:"delivery_url"`
	MessageID   int64  `json:"message_id"`
}

// ListResponse contains the video listing, newest first.
type ListResponse struct {
	Videos []VideoEntry `json:"videos"`
	Total  int          `json:"total"`
}

// List handles GET /api/videos. Records come back ordered by source
// message ID descending, so the most recent channel post leads.
func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("list videos failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to list videos")
		return
	}

	response := ListResponse{
		Videos: make([]VideoEntry, 0, len(records)),
		Total:  len(records),
	}

	for _, rec := range records {
		response.Videos = append(response.Videos, VideoEntry{
			VideoID:     rec.ID.String(),
			PreviewURL:  h.baseURL + path.Join("/previews", filepath.Base(rec.PreviewPath)),
			DeliveryURL: h.baseURL + "/send/" + rec.ID.String(),
			MessageID:   rec.MessageID,
		})
	}

	h.writeJSON(w, http.StatusOK, response)
}

func (h *VideoHandler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *VideoHandler) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
