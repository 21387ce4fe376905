package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/iconidentify/vidgate/internal/domain"
)

// SQLiteVideoRepository implements VideoRepository on a SQLite database.
type SQLiteVideoRepository struct {
	db *sql.DB
}

// NewSQLiteVideoRepository opens (or creates) the database at path and
// ensures the schema exists.
func NewSQLiteVideoRepository(path string) (*SQLiteVideoRepository, error) {
	// Concurrent ingestion tasks share this handle; WAL keeps readers
	// (listing page) from blocking on upserts.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS videos (
			id           TEXT PRIMARY KEY,
			file_id      TEXT NOT NULL,
			preview_path TEXT NOT NULL,
			message_id   INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_videos_message_id ON videos(message_id);
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	return &SQLiteVideoRepository{db: db}, nil
}

// Close closes the underlying database handle.
func (r *SQLiteVideoRepository) Close() error {
	return r.db.Close()
}

// Upsert writes a record, replacing any existing record with the same ID.
func (r *SQLiteVideoRepository) Upsert(ctx context.Context, record *domain.VideoRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO videos (id, file_id, preview_path, message_id)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			file_id      = excluded.file_id,
			preview_path = excluded.preview_path,
			message_id   = excluded.message_id
	`, record.ID.String(), record.FileID, record.PreviewPath, record.MessageID)
	if err != nil {
		return fmt.Errorf("upsert video: %w", err)
	}
	return nil
}

// Get retrieves a record by ID.
func (r *SQLiteVideoRepository) Get(ctx context.Context, id domain.VideoID) (*domain.VideoRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, file_id, preview_path, message_id
		FROM videos WHERE id = ?
	`, id.String())

	var record domain.VideoRecord
	var rawID string
	err := row.Scan(&rawID, &record.FileID, &record.PreviewPath, &record.MessageID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrVideoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get video: %w", err)
	}
	record.ID = domain.VideoID(rawID)

	return &record, nil
}

// List returns all records ordered by source message ID, newest first.
func (r *SQLiteVideoRepository) List(ctx context.Context) ([]*domain.VideoRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, file_id, preview_path, message_id
		FROM videos ORDER BY message_id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	defer rows.Close()

	var records []*domain.VideoRecord
	for rows.Next() {
		var record domain.VideoRecord
		var rawID string
		if err := rows.Scan(&rawID, &record.FileID, &record.PreviewPath, &record.MessageID); err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		record.ID = domain.VideoID(rawID)
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate videos: %w", err)
	}

	return records, nil
}
