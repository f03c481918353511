package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"tailoring/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

// Config carries the schedules of the audit jobs. Zero values select the defaults.
type Config struct {
	DailyReportSchedule string
	StuckOrderSchedule  string
	StuckOrderThreshold time.Duration
	ReportLocation      *time.Location
	RelayBatchSize      int
	Clock               kernel.Clock
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	relayJob       *NotificationRelayJob
	dailyReportJob *DailyReportJob
	stuckOrderJob  *StuckOrderAlertJob
}

func NewJobManager(
	cfg Config,
	relayHandler NotificationRelayHandler,
	dailyReportHandler DailyReportHandler,
	stuckOrderHandler StuckOrderAlertHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		relayJob: NewNotificationRelayJob(relayHandler, cfg.RelayBatchSize, logger),
		dailyReportJob: NewDailyReportJob(
			dailyReportHandler,
			cfg.DailyReportSchedule,
			cfg.ReportLocation,
			cfg.Clock,
			logger,
		),
		stuckOrderJob: NewStuckOrderAlertJob(
			stuckOrderHandler,
			cfg.StuckOrderSchedule,
			cfg.StuckOrderThreshold,
			cfg.ReportLocation,
			cfg.Clock,
			logger,
		),
	}
}

// StartAll starts all scheduled jobs. If one fails to start, the ones already running
// are stopped.
func (jm *JobManager) StartAll() error {
	if err := jm.relayJob.Start(); err != nil {
		return fmt.Errorf("failed to start notification relay job: %w", err)
	}

	if err := jm.dailyReportJob.Start(); err != nil {
		jm.relayJob.Stop()
		return fmt.Errorf("failed to start daily report job: %w", err)
	}

	if err := jm.stuckOrderJob.Start(); err != nil {
		jm.dailyReportJob.Stop()
		jm.relayJob.Stop()
		return fmt.Errorf("failed to start stuck order alert job: %w", err)
	}

	return nil
}

// StopAll stops the audits first so their last messages still get relayed.
func (jm *JobManager) StopAll() {
	jm.stuckOrderJob.Stop()
	jm.dailyReportJob.Stop()
	jm.relayJob.Stop()
}

// ValidateSchedule reports whether schedule is a valid six-field cron expression.
func ValidateSchedule(schedule string) error {
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", schedule, err)
	}
	return nil
}
