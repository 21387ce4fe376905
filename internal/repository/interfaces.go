package repository

import (
	"context"

	"github.com/iconidentify/vidgate/internal/domain"
)

// VideoRepository is the media store tying preview identifiers to
// original file handles.
type VideoRepository interface {
	// Upsert writes a record, replacing any existing record with the
	// same ID wholesale.
	Upsert(ctx context.Context, record *domain.VideoRecord) error

	// Get retrieves a record by ID.
	Get(ctx context.Context, id domain.VideoID) (*domain.VideoRecord, error)

	// List returns all records ordered by source message ID,
	// newest first.
	List(ctx context.Context) ([]*domain.VideoRecord, error)
}
