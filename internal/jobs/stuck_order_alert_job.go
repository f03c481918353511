package jobs

import (
	"context"
	"log/slog"
	"time"

	"tailoring/internal/core/application/usecases/commands"
	"tailoring/internal/core/domain/model/kernel"
	"tailoring/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

const (
	DefaultStuckOrderSchedule  = "0 5 0 * * *"
	DefaultStuckOrderThreshold = 24 * time.Hour
)

type StuckOrderAlertHandler interface {
	Handle(ctx context.Context, cmd commands.AlertStuckOrdersCommand) (int, error)
}

// StuckOrderAlertJob warns tailor managers about orders that have not moved for longer
// than the threshold.
type StuckOrderAlertJob struct {
	handler   StuckOrderAlertHandler
	schedule  string
	threshold time.Duration
	clock     kernel.Clock
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewStuckOrderAlertJob(
	handler StuckOrderAlertHandler,
	schedule string,
	threshold time.Duration,
	location *time.Location,
	clock kernel.Clock,
	logger *slog.Logger,
) *StuckOrderAlertJob {
	if schedule == "" {
		schedule = DefaultStuckOrderSchedule
	}
	if threshold <= 0 {
		threshold = DefaultStuckOrderThreshold
	}
	if location == nil {
		location = time.Local
	}
	if clock == nil {
		clock = kernel.SystemClock
	}
	return &StuckOrderAlertJob{
		handler:   handler,
		schedule:  schedule,
		threshold: threshold,
		clock:     clock,
		cron:      cron.New(cron.WithSeconds(), cron.WithLocation(location)),
		logger:    logger.With("component", "stuck_order_alert_job"),
	}
}

func (j *StuckOrderAlertJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stuck order alert job started",
		"schedule", j.schedule,
		"threshold", j.threshold.String(),
	)
	return nil
}

func (j *StuckOrderAlertJob) Run(ctx context.Context) {
	cmd, err := commands.NewAlertStuckOrdersCommand(j.clock(), j.threshold)
	if err != nil {
		j.logger.ErrorContext(ctx, "Stuck order alert job failed", "error", err)
		return
	}

	// a partial failure still queued the other alerts
	sent, err := j.handler.Handle(ctx, cmd)
	metrics.AuditMessages.WithLabelValues("stuck_order_alert").Add(float64(sent))
	if err != nil {
		j.logger.ErrorContext(ctx, "Stuck order alert job failed",
			"before", cmd.Before().Format(time.RFC3339),
			"alerts", sent,
			"error", err,
		)
		return
	}

	j.logger.InfoContext(ctx, "Stuck orders checked",
		"before", cmd.Before().Format(time.RFC3339),
		"alerts", sent,
	)
}

func (j *StuckOrderAlertJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Stuck order alert job stopped")
}
