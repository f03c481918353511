// Package metrics holds the Prometheus collectors of the service. They are registered
// on the default registry and exposed by the HTTP adapter on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tailoring_orders_placed_total",
		Help: "Orders accepted by intake",
	})

	IntakeRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tailoring_intake_rejections_total",
		Help: "Intake requests rejected, by reason",
	}, []string{"reason"})

	StageTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tailoring_stage_transitions_total",
		Help: "Orders that entered a stage",
	}, []string{"stage"})

	StageFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tailoring_stage_failures_total",
		Help: "Stage transitions that failed and halted the order",
	}, []string{"stage"})

	NotificationsPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tailoring_notifications_published_total",
		Help: "Notifications confirmed by the broker",
	})

	NotificationsDelivered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tailoring_notifications_delivered_total",
		Help: "Consumed notifications, by outcome (sent, retry, dead_lettered, rejected)",
	}, []string{"outcome"})

	AuditMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tailoring_audit_messages_total",
		Help: "Messages queued by the audit jobs",
	}, []string{"job"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tailoring_http_requests_total",
		Help: "HTTP requests handled, by route and status code",
	}, []string{"route", "code"})
)
