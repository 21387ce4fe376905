package service

import (
	"context"
	"os"
	"sync"

	"github.com/iconidentify/vidgate/internal/domain"
	"github.com/iconidentify/vidgate/pkg/telegram"
)

// fakeBot implements BotAPI for tests, recording every call.
type fakeBot struct {
	mu sync.Mutex

	getFileErr   error
	downloadErr  error
	sendVideoErr error

	getFileCalls  int
	downloadCalls int
	sentVideos    []sentVideo
	sentMessages  []sentMessage
}

type sentVideo struct {
	chatID int64
	fileID string
}

type sentMessage struct {
	chatID int64
	text   string
}

func (f *fakeBot) GetFile(ctx context.Context, fileID string) (*telegram.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getFileCalls++
	if f.getFileErr != nil {
		return nil, f.getFileErr
	}
	return &telegram.File{FileID: fileID, FilePath: "videos/" + fileID + ".mp4"}, nil
}

func (f *fakeBot) DownloadFile(ctx context.Context, filePath, destPath string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.downloadCalls++
	if f.downloadErr != nil {
		return f.downloadErr
	}
	return os.WriteFile(destPath, []byte("fake video bytes"), 0644)
}

func (f *fakeBot) SendMessage(ctx context.Context, chatID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sentMessages = append(f.sentMessages, sentMessage{chatID: chatID, text: text})
	return nil
}

func (f *fakeBot) SendVideo(ctx context.Context, chatID int64, fileID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendVideoErr != nil {
		return f.sendVideoErr
	}
	f.sentVideos = append(f.sentVideos, sentVideo{chatID: chatID, fileID: fileID})
	return nil
}

func (f *fakeBot) videos() []sentVideo {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentVideo(nil), f.sentVideos...)
}

func (f *fakeBot) messages() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMessage(nil), f.sentMessages...)
}

// fakeTrimmer implements PreviewMaker. When block is set, Trim waits
// until it is closed, simulating a slow transcode.
type fakeTrimmer struct {
	mu    sync.Mutex
	err   error
	block chan struct{}
	calls int
}

func (f *fakeTrimmer) Trim(ctx context.Context, inputPath, outputPath string) error {
	f.mu.Lock()
	f.calls++
	block := f.block
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(outputPath, []byte("fake preview bytes"), 0644)
}

func (f *fakeTrimmer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// memoryRepo is an in-memory VideoRepository for tests. List returns
// records ordered newest first, matching the SQLite contract.
type memoryRepo struct {
	mu      sync.Mutex
	records map[domain.VideoID]*domain.VideoRecord
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{records: make(map[domain.VideoID]*domain.VideoRecord)}
}

func (r *memoryRepo) Upsert(ctx context.Context, record *domain.VideoRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *record
	r.records[record.ID] = &clone
	return nil
}

func (r *memoryRepo) Get(ctx context.Context, id domain.VideoID) (*domain.VideoRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[id]
	if !ok {
		return nil, domain.ErrVideoNotFound
	}
	clone := *record
	return &clone, nil
}

func (r *memoryRepo) List(ctx context.Context) ([]*domain.VideoRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.VideoRecord
	for _, record := range r.records {
		clone := *record
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

func (r *memoryRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

func (r *memoryRepo) all() []*domain.VideoRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.VideoRecord
	for _, record := range r.records {
		clone := *record
		out = append(out, &clone)
	}
	return out
}
