package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/iconidentify/vidgate/internal/domain"
	"github.com/iconidentify/vidgate/internal/repository"
	"github.com/iconidentify/vidgate/pkg/telegram"
)

// IngestService turns a channel video post into a stored preview plus
// a media store record. One invocation owns one temporary download
// artifact; the artifact is removed on every exit path.
type IngestService struct {
	bot       BotAPI
	trimmer   PreviewMaker
	repo      repository.VideoRepository
	channelID int64
	tempDir   string
	prevDir   string
	logger    *slog.Logger
}

// NewIngestService creates a new ingest service. A zero channelID
// disables ingestion: no post ever matches.
func NewIngestService(
	bot BotAPI,
	trimmer PreviewMaker,
	repo repository.VideoRepository,
	channelID int64,
	tempDir, previewDir string,
	logger *slog.Logger,
) *IngestService {
	return &IngestService{
		bot:       bot,
		trimmer:   trimmer,
		repo:      repo,
		channelID: channelID,
		tempDir:   tempDir,
		prevDir:   previewDir,
		logger:    logger,
	}
}

// Matches reports whether a channel post is a video from the configured
// origin channel.
func (s *IngestService) Matches(post *telegram.Message) bool {
	return post != nil && post.Video != nil && s.channelID != 0 && post.Chat.ID == s.channelID
}

// ProcessChannelPost downloads the posted video, trims a preview, and
// records the result. Non-matching posts are a no-op with zero side
// effects. No partial record is ever written: every failure path returns
// before the upsert.
func (s *IngestService) ProcessChannelPost(ctx context.Context, post *telegram.Message) error {
	if !s.Matches(post) {
		return nil
	}

	logger := s.logger.With("message_id", post.MessageID)
	logger.Info("processing channel video", "file_id", post.Video.FileID)

	tempPath := filepath.Join(s.tempDir, fmt.Sprintf("ingest_%s.mp4", uuid.NewString()))
	defer CleanupTempFile(tempPath)

	file, err := s.bot.GetFile(ctx, post.Video.FileID)
	if err != nil {
		logger.Error("resolve file failed", "error", err)
		return fmt.Errorf("resolve file: %w", err)
	}

	if err := s.bot.DownloadFile(ctx, file.FilePath, tempPath); err != nil {
		logger.Error("download failed", "error", err)
		return fmt.Errorf("download video: %w", err)
	}

	if _, err := os.Stat(tempPath); err != nil {
		logger.Error("downloaded file not found", "path", tempPath)
		return fmt.Errorf("%w: downloaded file missing", domain.ErrDownloadFailed)
	}

	previewID := uuid.NewString()
	previewPath := filepath.Join(s.prevDir, previewID+".mp4")

	if err := s.trimmer.Trim(ctx, tempPath, previewPath); err != nil {
		if errors.Is(err, domain.ErrFFmpegNotFound) {
			logger.Error("ffmpeg executable not found", "error", err)
		} else {
			// The trimmer error carries the exact invocation.
			logger.Error("preview generation failed", "error", err)
		}
		return fmt.Errorf("trim preview: %w", err)
	}

	record := &domain.VideoRecord{
		ID:          domain.VideoID(previewID),
		FileID:      post.Video.FileID,
		PreviewPath: previewPath,
		MessageID:   post.MessageID,
	}
	if err := s.repo.Upsert(ctx, record); err != nil {
		logger.Error("store video record failed", "error", err)
		return fmt.Errorf("store record: %w", err)
	}

	logger.Info("video processed", "video_id", previewID, "preview", previewPath)
	return nil
}

// CleanupTempFile removes a temporary artifact if it exists. Safe to
// call repeatedly and for files that were never created.
func CleanupTempFile(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		slog.Warn("temp file cleanup failed", "path", path, "error", err)
	}
}
