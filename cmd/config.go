package cmd

import (
	"errors"
	"fmt"
	"time"

	"tailoring/internal/jobs"
)

type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RabbitMQURL       string
	MailMaxDeliveries int

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string
	SMTPSSL      bool

	OrchestratorWorkers   int
	OrchestratorQueueSize int
	StageDelay            time.Duration

	DailyReportSchedule string
	StuckOrderSchedule  string
	StuckOrderThreshold time.Duration
	ReportTimezone      string

	LogLevel  string
	LogFormat string
}

// DSN is the PostgreSQL connection string for GORM.
func (c Config) DSN() string {
	sslMode := c.DBSslMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, sslMode,
	)
}

// ReportLocation is the zone the audit schedules and the daily window are read in.
// An empty ReportTimezone means the host's local zone.
func (c Config) ReportLocation() (*time.Location, error) {
	if c.ReportTimezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.ReportTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_TIMEZONE %q: %w", c.ReportTimezone, err)
	}
	return loc, nil
}

// Validate reports every setting the service cannot start with.
func (c Config) Validate() error {
	var err error

	if c.HTTPPort == "" {
		err = errors.Join(err, errors.New("HTTP_PORT is required"))
	}
	if c.DBHost == "" || c.DBName == "" {
		err = errors.Join(err, errors.New("DB_HOST and DB_NAME are required"))
	}
	if c.RabbitMQURL == "" {
		err = errors.Join(err, errors.New("RABBITMQ_URL is required"))
	}
	if c.SMTPHost == "" || c.SMTPFrom == "" {
		err = errors.Join(err, errors.New("SMTP_HOST and SMTP_FROM are required"))
	}
	if c.MailMaxDeliveries < 0 {
		err = errors.Join(err, fmt.Errorf("MAIL_MAX_DELIVERIES %d is negative", c.MailMaxDeliveries))
	}
	if c.StageDelay < 0 {
		err = errors.Join(err, fmt.Errorf("STAGE_DELAY %s is negative", c.StageDelay))
	}
	if c.StuckOrderThreshold < 0 {
		err = errors.Join(err, fmt.Errorf("STUCK_ORDER_THRESHOLD %s is negative", c.StuckOrderThreshold))
	}
	for name, schedule := range map[string]string{
		"DAILY_REPORT_SCHEDULE": c.DailyReportSchedule,
		"STUCK_ORDER_SCHEDULE":  c.StuckOrderSchedule,
	} {
		if schedule == "" {
			continue
		}
		if serr := jobs.ValidateSchedule(schedule); serr != nil {
			err = errors.Join(err, fmt.Errorf("%s: %w", name, serr))
		}
	}
	if _, lerr := c.ReportLocation(); lerr != nil {
		err = errors.Join(err, lerr)
	}

	return err
}
