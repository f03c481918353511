package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"tailoring/cmd"
	"tailoring/internal/adapters/in/consumer"
	httpin "tailoring/internal/adapters/in/http"
	"tailoring/internal/adapters/out/postgres"
	"tailoring/internal/adapters/out/rabbitmq"
	"tailoring/internal/adapters/out/smtp"
	"tailoring/internal/core/application/usecases/commands"
	"tailoring/internal/generated/servers"
	"tailoring/internal/pkg/logging"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs := getConfigs()

	appLogger := logging.Setup(configs.LogLevel, configs.LogFormat, os.Stdout)

	if err := configs.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	if _, err := servers.GetSwagger(); err != nil {
		log.Fatalf("load openapi document: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gormDB := mustGormOpen(configs.DSN())
	if err := postgres.Migrate(gormDB); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	publishConn, err := rabbitmq.NewConnection(configs.RabbitMQURL, appLogger)
	if err != nil {
		log.Fatalf("connect to RabbitMQ: %v", err)
	}
	if err = rabbitmq.SetupTopology(publishConn); err != nil {
		log.Fatalf("declare RabbitMQ topology: %v", err)
	}
	consumeConn, err := rabbitmq.NewConnection(configs.RabbitMQURL, appLogger)
	if err != nil {
		log.Fatalf("connect to RabbitMQ: %v", err)
	}

	mailer, err := smtp.NewMailer(smtp.Config{
		Host:     configs.SMTPHost,
		Port:     configs.SMTPPort,
		Username: configs.SMTPUser,
		Password: configs.SMTPPassword,
		From:     configs.SMTPFrom,
		SSL:      configs.SMTPSSL,
	}, appLogger)
	if err != nil {
		log.Fatalf("create mailer: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, appLogger)

	stageOrchestrator, err := app.CreateOrchestrator()
	if err != nil {
		log.Fatalf("create orchestrator: %v", err)
	}
	stageOrchestrator.Start(ctx)

	resumed, err := app.CreateResumeOrdersCommandHandler(stageOrchestrator).
		Handle(ctx, commands.NewResumeOrdersCommand())
	if err != nil {
		appLogger.ErrorContext(ctx, "resume orders", "resumed", resumed, "error", err)
	} else {
		appLogger.InfoContext(ctx, "orders resumed", "count", resumed)
	}

	publisher := rabbitmq.NewPublisher(publishConn, appLogger)

	jobManager, err := app.CreateJobManager(publisher)
	if err != nil {
		log.Fatalf("create jobs: %v", err)
	}
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("start jobs: %v", err)
	}

	mailConsumer := consumer.NewMailConsumer(
		consumeConn,
		app.CreateDeliverNotificationCommandHandler(mailer),
		appLogger,
		consumer.WithMaxDeliveries(configs.MailMaxDeliveries),
	)
	consumerDone := make(chan struct{})
	go func() {
		defer close(consumerDone)
		if err := mailConsumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			appLogger.Error("mail consumer stopped", "error", err)
		}
	}()

	server := httpin.NewServer(
		app.CreatePlaceOrderCommandHandler(stageOrchestrator),
		app.CreateTrackOrderQueryHandler(),
		appLogger,
	)
	e := httpin.NewRouter(server, appLogger,
		httpin.HealthCheck{Name: "rabbitmq publisher", Healthy: publishConn.IsConnected},
		httpin.HealthCheck{Name: "rabbitmq consumer", Healthy: consumeConn.IsConnected},
	)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("http shutdown", "error", err)
	}
	stageOrchestrator.Stop()
	jobManager.StopAll()
	mailConsumer.Stop()
	<-consumerDone

	closeQuietly(appLogger, "rabbitmq consumer connection", consumeConn.Close)
	closeQuietly(appLogger, "rabbitmq publisher connection", publishConn.Close)
	if sqlDB, err := gormDB.DB(); err == nil {
		closeQuietly(appLogger, "database", sqlDB.Close)
	}
}

func getConfigs() cmd.Config {
	// a missing .env is fine, the process environment is used as is
	_ = godotenv.Load(".env")

	return cmd.Config{
		HTTPPort:              envString("HTTP_PORT", "8080"),
		DBHost:                envString("DB_HOST", ""),
		DBPort:                envString("DB_PORT", "5432"),
		DBUser:                envString("DB_USER", ""),
		DBPassword:            envString("DB_PASSWORD", ""),
		DBName:                envString("DB_NAME", ""),
		DBSslMode:             envString("DB_SSLMODE", "disable"),
		RabbitMQURL:           envString("RABBITMQ_URL", ""),
		MailMaxDeliveries:     envInt("MAIL_MAX_DELIVERIES", consumer.DefaultMaxDeliveries),
		SMTPHost:              envString("SMTP_HOST", ""),
		SMTPPort:              envInt("SMTP_PORT", 0),
		SMTPUser:              envString("SMTP_USER", ""),
		SMTPPassword:          envString("SMTP_PASSWORD", ""),
		SMTPFrom:              envString("SMTP_FROM", ""),
		SMTPSSL:               envBool("SMTP_SSL", false),
		OrchestratorWorkers:   envInt("ORCHESTRATOR_WORKERS", 0),
		OrchestratorQueueSize: envInt("ORCHESTRATOR_QUEUE_SIZE", 0),
		StageDelay:            envDuration("STAGE_DELAY", 0),
		DailyReportSchedule:   envString("DAILY_REPORT_SCHEDULE", ""),
		StuckOrderSchedule:    envString("STUCK_ORDER_SCHEDULE", ""),
		StuckOrderThreshold:   envDuration("STUCK_ORDER_THRESHOLD", 0),
		ReportTimezone:        envString("REPORT_TIMEZONE", ""),
		LogLevel:              envString("LOG_LEVEL", "INFO"),
		LogFormat:             envString("LOG_FORMAT", "json"),
	}
}

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := envString(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("%s: %v", key, err)
	}
	return n
}

func envBool(key string, fallback bool) bool {
	v := envString(key, "")
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Fatalf("%s: %v", key, err)
	}
	return b
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := envString(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("%s: %v", key, err)
	}
	return d
}

func mustGormOpen(dsn string) *gorm.DB {
	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("connection to postgres through gorm: %v", err)
	}
	return gormDB
}

func closeQuietly(l *slog.Logger, name string, closeFn func() error) {
	if err := closeFn(); err != nil {
		l.Error("close "+name, "error", err)
	}
}
