package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/iconidentify/vidgate/internal/worker"
	"github.com/iconidentify/vidgate/pkg/telegram"
)

// Dispatcher classifies inbound updates and routes them. It is
// constructed once at startup and reused across all webhook requests.
//
// Matching channel video posts are handed to the background supervisor
// so the webhook reply never waits on download and transcoding; short
// commands are handled synchronously before the caller acknowledges.
type Dispatcher struct {
	ingest     *IngestService
	delivery   *DeliveryService
	supervisor *worker.Supervisor
	logger     *slog.Logger
}

// NewDispatcher creates a new dispatcher.
func NewDispatcher(ingest *IngestService, delivery *DeliveryService, supervisor *worker.Supervisor, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		ingest:     ingest,
		delivery:   delivery,
		supervisor: supervisor,
		logger:     logger,
	}
}

// Dispatch routes one update. It returns once the update has either
// been handled or submitted for background processing; errors from the
// synchronous path are logged here and never propagated, so the webhook
// acknowledgement is unconditional.
func (d *Dispatcher) Dispatch(ctx context.Context, update *telegram.Update) {
	if update == nil {
		return
	}

	// Long-running branch: detach and return immediately.
	if post := update.ChannelPost; d.ingest.Matches(post) {
		d.supervisor.Submit("ingest", func(taskCtx context.Context) error {
			return d.ingest.ProcessChannelPost(taskCtx, post)
		})
		return
	}

	// Short synchronous branch: commands in direct chats.
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	command, arg := splitCommand(msg.Text)
	if command != "/start" {
		return
	}

	if err := d.delivery.HandleStart(ctx, msg.Chat.ID, msg.From.FirstName, arg); err != nil {
		d.logger.Error("start command failed", "chat_id", msg.Chat.ID, "error", err)
	}
}

// splitCommand separates a bot command from its first argument.
// "/start abc def" -> ("/start", "abc"); bare text yields ("", "").
func splitCommand(text string) (command, arg string) {
	if !strings.HasPrefix(text, "/") {
		return "", ""
	}

	fields := strings.Fields(text)
	command = fields[0]

	// Commands in groups arrive as /start@botname.
	if at := strings.Index(command, "@"); at != -1 {
		command = command[:at]
	}

	if len(fields) > 1 {
		arg = fields[1]
	}
	return command, arg
}
