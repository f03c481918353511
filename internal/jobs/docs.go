// Package jobs provides scheduled background tasks for the tailoring service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// All schedules use the six-field form with a leading seconds field.
//
// # Available Jobs
//
// 1. NotificationRelayJob - Runs every second to publish queued notifications to the broker
// 2. DailyReportJob - Mails the owners the orders completed on the previous day (default "0 5 0 * * *")
// 3. StuckOrderAlertJob - Mails tailor managers about orders idle past the threshold (default "0 5 0 * * *")
//
// # Usage
//
//	jobManager := jobs.NewJobManager(cfg, relayHandler, dailyReportHandler, stuckOrderHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Job runs never panic or stop the schedule. Failures are logged and the next tick
// tries again; the audits write to the notification outbox, so a broker outage only
// delays their mail.
package jobs
