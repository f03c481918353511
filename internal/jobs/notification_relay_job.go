package jobs

import (
	"context"
	"log/slog"

	"tailoring/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

const DefaultRelayBatchSize = 100

type NotificationRelayHandler interface {
	Handle(ctx context.Context, cmd commands.RelayNotificationsCommand) (int, error)
}

// NotificationRelayJob moves queued notifications from the outbox to the broker every
// second. A run that is still publishing when the next tick fires makes that tick skip.
type NotificationRelayJob struct {
	handler   NotificationRelayHandler
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewNotificationRelayJob(handler NotificationRelayHandler, batchSize int, logger *slog.Logger) *NotificationRelayJob {
	if batchSize <= 0 {
		batchSize = DefaultRelayBatchSize
	}
	return &NotificationRelayJob{
		handler:   handler,
		batchSize: batchSize,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger.With("component", "notification_relay_job"),
	}
}

func (j *NotificationRelayJob) Start() error {
	if _, err := j.cron.AddFunc("* * * * * *", func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification relay job started (running every second)")
	return nil
}

// Run drains full batches until the outbox is empty or publishing fails.
func (j *NotificationRelayJob) Run(ctx context.Context) {
	cmd, err := commands.NewRelayNotificationsCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Notification relay job failed", "error", err)
		return
	}

	for {
		published, err := j.handler.Handle(ctx, cmd)
		if published > 0 {
			j.logger.DebugContext(ctx, "Notifications relayed", "count", published)
		}
		if err != nil {
			j.logger.ErrorContext(ctx, "Notification relay job failed", "published", published, "error", err)
			return
		}
		if published < j.batchSize {
			return
		}
	}
}

func (j *NotificationRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Notification relay job stopped")
}
