package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/iconidentify/vidgate/internal/domain"
	"github.com/iconidentify/vidgate/internal/repository"
)

// DeliveryService resolves /start deep links and sends the full
// original video back to the requesting user. Stateless across calls.
type DeliveryService struct {
	bot     BotAPI
	repo    repository.VideoRepository
	siteURL string
	logger  *slog.Logger
}

// NewDeliveryService creates a new delivery service. siteURL is the
// public listing page mentioned in the welcome message.
func NewDeliveryService(bot BotAPI, repo repository.VideoRepository, siteURL string, logger *slog.Logger) *DeliveryService {
	return &DeliveryService{
		bot:     bot,
		repo:    repo,
		siteURL: siteURL,
		logger:  logger,
	}
}

// HandleStart processes a /start command. An empty videoID means a
// plain /start with no deep link. Send failures are reported to the
// user as a generic message, never propagated.
func (s *DeliveryService) HandleStart(ctx context.Context, chatID int64, firstName, videoID string) error {
	if videoID == "" {
		return s.sendWelcome(ctx, chatID, firstName)
	}

	record, err := s.repo.Get(ctx, domain.VideoID(videoID))
	if err != nil {
		if errors.Is(err, domain.ErrVideoNotFound) {
			// A stale or mistyped link, not an error condition.
			return s.bot.SendMessage(ctx, chatID, "Invalid video ID. Please use a link from the website.")
		}
		return fmt.Errorf("lookup video: %w", err)
	}

	if err := s.bot.SendVideo(ctx, chatID, record.FileID); err != nil {
		s.logger.Error("failed to send video", "video_id", videoID, "error", err)
		return s.bot.SendMessage(ctx, chatID, "Failed to send video. Please try again later.")
	}

	return s.bot.SendMessage(ctx, chatID, "Full video sent to you!")
}

func (s *DeliveryService) sendWelcome(ctx context.Context, chatID int64, firstName string) error {
	if firstName == "" {
		firstName = "There"
	}

	text := fmt.Sprintf(
		"Hello %s!\n\n"+
			"This bot is a video gate keeper.\n"+
			"Please visit the website to select a video preview and click 'Get Full Video' "+
			"to receive the complete file here.",
		firstName,
	)
	if s.siteURL != "" {
		text += "\n\n" + s.siteURL
	}

	return s.bot.SendMessage(ctx, chatID, text)
}
