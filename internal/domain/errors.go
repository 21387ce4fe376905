package domain

import "errors"

// Domain errors.
var (
	// ErrVideoNotFound is returned when a video record cannot be found.
	ErrVideoNotFound = errors.New("video not found")

	// ErrDownloadFailed is returned when fetching the source video fails.
	ErrDownloadFailed = errors.New("video download failed")

	// ErrFFmpegNotFound is returned when the ffmpeg binary is not on PATH.
	ErrFFmpegNotFound = errors.New("ffmpeg executable not found")

	// ErrTelegramAPI is returned when the Telegram Bot API rejects a call.
	ErrTelegramAPI = errors.New("telegram API call failed")
)
