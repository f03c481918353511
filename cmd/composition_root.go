package cmd

import (
	"log/slog"

	"tailoring/internal/adapters/out/postgres"
	"tailoring/internal/adapters/out/postgres/reportrepo"
	"tailoring/internal/core/application/orchestrator"
	"tailoring/internal/core/application/usecases/commands"
	"tailoring/internal/core/application/usecases/queries"
	"tailoring/internal/core/ports"
	"tailoring/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler(submitter commands.StageSubmitter) commands.PlaceOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlaceOrderCommandHandler(f, submitter, nil)
}

func (c *CompositionRoot) CreateAdvanceStageCommandHandler() commands.AdvanceStageCommandHandler {
	var f commands.StageUoWFactory = FuncStageUoWFactory(func() commands.StageUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceStageCommandHandler(f, nil)
}

func (c *CompositionRoot) CreateResumeOrdersCommandHandler(submitter commands.StageSubmitter) commands.ResumeOrdersCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewResumeOrdersCommandHandler(f, submitter)
}

func (c *CompositionRoot) CreateSendDailyReportCommandHandler() commands.SendDailyReportCommandHandler {
	var f commands.AuditUoWFactory = FuncAuditUoWFactory(func() commands.AuditUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSendDailyReportCommandHandler(reportrepo.NewGormOrderReportReader(c.gormDB), f)
}

func (c *CompositionRoot) CreateAlertStuckOrdersCommandHandler() commands.AlertStuckOrdersCommandHandler {
	var f commands.AuditUoWFactory = FuncAuditUoWFactory(func() commands.AuditUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAlertStuckOrdersCommandHandler(reportrepo.NewGormOrderReportReader(c.gormDB), f)
}

func (c *CompositionRoot) CreateRelayNotificationsCommandHandler(
	publisher ports.NotificationPublisher,
) commands.RelayNotificationsCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRelayNotificationsCommandHandler(f, publisher, nil)
}

func (c *CompositionRoot) CreateDeliverNotificationCommandHandler(mailer ports.Mailer) commands.DeliverNotificationCommandHandler {
	return commands.NewDeliverNotificationCommandHandler(mailer)
}

func (c *CompositionRoot) CreateTrackOrderQueryHandler() queries.TrackOrderQueryHandler {
	return queries.NewTrackOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateOrchestrator() (*orchestrator.Orchestrator, error) {
	return orchestrator.New(orchestrator.Config{
		Advancer:   c.CreateAdvanceStageCommandHandler(),
		Workers:    c.configs.OrchestratorWorkers,
		QueueSize:  c.configs.OrchestratorQueueSize,
		StageDelay: c.configs.StageDelay,
		Logger:     c.logger,
	})
}

func (c *CompositionRoot) CreateJobManager(publisher ports.NotificationPublisher) (*jobs.JobManager, error) {
	loc, err := c.configs.ReportLocation()
	if err != nil {
		return nil, err
	}
	return jobs.NewJobManager(
		jobs.Config{
			DailyReportSchedule: c.configs.DailyReportSchedule,
			StuckOrderSchedule:  c.configs.StuckOrderSchedule,
			StuckOrderThreshold: c.configs.StuckOrderThreshold,
			ReportLocation:      loc,
		},
		c.CreateRelayNotificationsCommandHandler(publisher),
		c.CreateSendDailyReportCommandHandler(),
		c.CreateAlertStuckOrdersCommandHandler(),
		c.logger,
	), nil
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncStageUoWFactory func() commands.StageUoW

func (f FuncStageUoWFactory) Create() commands.StageUoW {
	return f()
}

type FuncAuditUoWFactory func() commands.AuditUoW

func (f FuncAuditUoWFactory) Create() commands.AuditUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
