package handler

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/iconidentify/vidgate/internal/domain"
	"github.com/iconidentify/vidgate/internal/service"
	"github.com/iconidentify/vidgate/internal/worker"
	"github.com/iconidentify/vidgate/pkg/telegram"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// stubBot implements service.BotAPI and the redirect handler's
// identity interface.
type stubBot struct {
	mu         sync.Mutex
	username   string
	getMeErr   error
	getMeCalls int
}

func (b *stubBot) GetFile(ctx context.Context, fileID string) (*telegram.File, error) {
	return &telegram.File{FileID: fileID, FilePath: "videos/" + fileID + ".mp4"}, nil
}

func (b *stubBot) DownloadFile(ctx context.Context, filePath, destPath string) error {
	return os.WriteFile(destPath, []byte("bytes"), 0644)
}

func (b *stubBot) SendMessage(ctx context.Context, chatID int64, text string) error {
	return nil
}

func (b *stubBot) SendVideo(ctx context.Context, chatID int64, fileID string) error {
	return nil
}

func (b *stubBot) GetMe(ctx context.Context) (*telegram.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.getMeCalls++
	if b.getMeErr != nil {
		return nil, b.getMeErr
	}
	return &telegram.User{ID: 1, IsBot: true, FirstName: "Gate", Username: b.username}, nil
}

// stubRepo is a minimal in-memory video repository.
type stubRepo struct {
	mu      sync.Mutex
	listErr error
	records []*domain.VideoRecord
}

func (r *stubRepo) Upsert(ctx context.Context, record *domain.VideoRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *record
	r.records = append(r.records, &clone)
	return nil
}

func (r *stubRepo) Get(ctx context.Context, id domain.VideoID) (*domain.VideoRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.ID == id {
			clone := *rec
			return &clone, nil
		}
	}
	return nil, domain.ErrVideoNotFound
}

func (r *stubRepo) List(ctx context.Context) ([]*domain.VideoRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*domain.VideoRecord, 0, len(r.records))
	for _, rec := range r.records {
		clone := *rec
		out = append(out, &clone)
	}
	for i := 0; i < len(out)-1; i++ {
		for j := i + 1; j < len(out); j++ {
			if out[i].MessageID < out[j].MessageID {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (r *stubRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// blockingTrimmer blocks inside Trim until released.
type blockingTrimmer struct {
	release chan struct{}
}

func (b *blockingTrimmer) Trim(ctx context.Context, inputPath, outputPath string) error {
	if b.release != nil {
		<-b.release
	}
	return os.WriteFile(outputPath, []byte("preview"), 0644)
}

// newTestDispatcher wires a real dispatcher over stubbed collaborators.
func newTestDispatcher(t *testing.T, bot *stubBot, repo *stubRepo, trimmer service.PreviewMaker, channelID int64) (*service.Dispatcher, *worker.Supervisor) {
	t.Helper()

	logger := testLogger()
	ingest := service.NewIngestService(bot, trimmer, repo, channelID, t.TempDir(), t.TempDir(), logger)
	delivery := service.NewDeliveryService(bot, repo, "", logger)
	supervisor := worker.NewSupervisor(logger)
	return service.NewDispatcher(ingest, delivery, supervisor, logger), supervisor
}
