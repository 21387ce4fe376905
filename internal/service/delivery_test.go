package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/iconidentify/vidgate/internal/domain"
)

func seedRecord(t *testing.T, repo *memoryRepo, id, fileID string) {
	t.Helper()
	err := repo.Upsert(context.Background(), &domain.VideoRecord{
		ID:          domain.VideoID(id),
		FileID:      fileID,
		PreviewPath: "previews/" + id + ".mp4",
		MessageID:   1,
	})
	if err != nil {
		t.Fatalf("seed record: %v", err)
	}
}

func TestDeliveryService_HandleStart_KnownID(t *testing.T) {
	bot := &fakeBot{}
	repo := newMemoryRepo()
	seedRecord(t, repo, "abc-123", "f1")

	svc := NewDeliveryService(bot, repo, "https://vid.example.com", testLogger())

	if err := svc.HandleStart(context.Background(), 555, "Alice", "abc-123"); err != nil {
		t.Fatalf("HandleStart failed: %v", err)
	}

	videos := bot.videos()
	if len(videos) != 1 {
		t.Fatalf("SendVideo calls = %d, want 1", len(videos))
	}
	if videos[0].chatID != 555 || videos[0].fileID != "f1" {
		t.Errorf("SendVideo(%d, %q), want (555, %q)", videos[0].chatID, videos[0].fileID, "f1")
	}

	messages := bot.messages()
	if len(messages) != 1 || !strings.Contains(messages[0].text, "Full video sent") {
		t.Errorf("expected confirmation message, got %v", messages)
	}
}

func TestDeliveryService_HandleStart_UnknownID(t *testing.T) {
	bot := &fakeBot{}
	repo := newMemoryRepo()

	svc := NewDeliveryService(bot, repo, "", testLogger())

	if err := svc.HandleStart(context.Background(), 555, "Alice", "nope"); err != nil {
		t.Fatalf("HandleStart failed: %v", err)
	}

	if len(bot.videos()) != 0 {
		t.Error("no video should be sent for an unknown ID")
	}

	messages := bot.messages()
	if len(messages) != 1 || !strings.Contains(messages[0].text, "Invalid video ID") {
		t.Errorf("expected invalid-id message, got %v", messages)
	}
}

func TestDeliveryService_HandleStart_NoArgument(t *testing.T) {
	bot := &fakeBot{}
	svc := NewDeliveryService(bot, newMemoryRepo(), "https://vid.example.com", testLogger())

	if err := svc.HandleStart(context.Background(), 555, "Alice", ""); err != nil {
		t.Fatalf("HandleStart failed: %v", err)
	}

	messages := bot.messages()
	if len(messages) != 1 {
		t.Fatalf("messages = %d, want 1", len(messages))
	}
	if !strings.Contains(messages[0].text, "Hello Alice!") {
		t.Errorf("welcome should be personalized, got %q", messages[0].text)
	}
	if !strings.Contains(messages[0].text, "https://vid.example.com") {
		t.Errorf("welcome should mention the site, got %q", messages[0].text)
	}
}

func TestDeliveryService_HandleStart_NoArgument_NoName(t *testing.T) {
	bot := &fakeBot{}
	svc := NewDeliveryService(bot, newMemoryRepo(), "", testLogger())

	if err := svc.HandleStart(context.Background(), 555, "", ""); err != nil {
		t.Fatalf("HandleStart failed: %v", err)
	}

	messages := bot.messages()
	if len(messages) != 1 || !strings.Contains(messages[0].text, "Hello There!") {
		t.Errorf("expected fallback greeting, got %v", messages)
	}
}

func TestDeliveryService_HandleStart_SendFailure(t *testing.T) {
	bot := &fakeBot{sendVideoErr: errors.New("blocked by user")}
	repo := newMemoryRepo()
	seedRecord(t, repo, "abc-123", "f1")

	svc := NewDeliveryService(bot, repo, "", testLogger())

	// A send failure is reported to the user, not propagated.
	if err := svc.HandleStart(context.Background(), 555, "Alice", "abc-123"); err != nil {
		t.Fatalf("HandleStart should not propagate send failure, got %v", err)
	}

	messages := bot.messages()
	if len(messages) != 1 || !strings.Contains(messages[0].text, "Failed to send video") {
		t.Errorf("expected generic failure message, got %v", messages)
	}
}
