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

const DefaultDailyReportSchedule = "0 5 0 * * *"

type DailyReportHandler interface {
	Handle(ctx context.Context, cmd commands.SendDailyReportCommand) (int, error)
}

// DailyReportJob mails the owners the list of orders completed on the previous calendar
// day. The schedule is read in the report time zone.
type DailyReportJob struct {
	handler  DailyReportHandler
	schedule string
	location *time.Location
	clock    kernel.Clock
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewDailyReportJob(
	handler DailyReportHandler,
	schedule string,
	location *time.Location,
	clock kernel.Clock,
	logger *slog.Logger,
) *DailyReportJob {
	if schedule == "" {
		schedule = DefaultDailyReportSchedule
	}
	if location == nil {
		location = time.Local
	}
	if clock == nil {
		clock = kernel.SystemClock
	}
	return &DailyReportJob{
		handler:  handler,
		schedule: schedule,
		location: location,
		clock:    clock,
		cron:     cron.New(cron.WithSeconds(), cron.WithLocation(location)),
		logger:   logger.With("component", "daily_report_job"),
	}
}

func (j *DailyReportJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Daily report job started",
		"schedule", j.schedule,
		"timezone", j.location.String(),
	)
	return nil
}

// Run sends the report for the day before now.
func (j *DailyReportJob) Run(ctx context.Context) {
	cmd, err := commands.NewSendDailyReportCommand(j.clock(), j.location)
	if err != nil {
		j.logger.ErrorContext(ctx, "Daily report job failed", "error", err)
		return
	}

	sent, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Daily report job failed",
			"day", cmd.Day().Format(time.DateOnly),
			"error", err,
		)
		return
	}

	metrics.AuditMessages.WithLabelValues("daily_report").Add(float64(sent))
	j.logger.InfoContext(ctx, "Daily report processed",
		"day", cmd.Day().Format(time.DateOnly),
		"messages", sent,
	)
}

func (j *DailyReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Daily report job stopped")
}
