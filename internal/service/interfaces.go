package service

import (
	"context"

	"github.com/iconidentify/vidgate/pkg/telegram"
)

// BotAPI is the slice of the Telegram client the services consume.
type BotAPI interface {
	// GetFile resolves a file handle into a downloadable file path.
	GetFile(ctx context.Context, fileID string) (*telegram.File, error)

	// DownloadFile fetches file content to destPath.
	DownloadFile(ctx context.Context, filePath, destPath string) error

	// SendMessage sends a plain text message to a chat.
	SendMessage(ctx context.Context, chatID int64, text string) error

	// SendVideo sends a video to a chat by its file handle.
	SendVideo(ctx context.Context, chatID int64, fileID string) error
}

// PreviewMaker produces a duration-capped preview clip from a source
// video file.
type PreviewMaker interface {
	Trim(ctx context.Context, inputPath, outputPath string) error
}
