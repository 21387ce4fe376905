package domain

// VideoID is the public identifier of a processed video.
// It is generated at ingestion time and is the only handle
// ever exposed outside the bot.
type VideoID string

// String returns the string representation of the VideoID.
func (id VideoID) String() string {
	return string(id)
}

// VideoRecord ties a public preview identifier to the original
// Telegram file handle it gates.
type VideoRecord struct {
	// ID is the generated preview identifier; primary key.
	ID VideoID

	// FileID is the Telegram file handle of the full original video.
	// Immutable once set; used to re-send the original to a user.
	FileID string

	// PreviewPath is the filesystem path of the generated preview clip.
	PreviewPath string

	// MessageID is the ordinal of the source channel message.
	// Used only for newest-first display ordering.
	MessageID int64
}
