// Package metrics exposes Prometheus counters for the volunteer hub.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Custom registry to avoid the default Go runtime collectors.
var registry = prometheus.NewRegistry()

var (
	HTTPRequests = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: "volunteer_hub",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route, and status code.",
	}, []string{"method", "route", "status"})

	MatchesCreated = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: "volunteer_hub",
		Name:      "matches_created_total",
		Help:      "Volunteer matches created, manual and automatic.",
	})

	AutoMatchRuns = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: "volunteer_hub",
		Name:      "auto_match_runs_total",
		Help:      "Auto-match invocations.",
	})

	NotificationsSent = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: "volunteer_hub",
		Name:      "notifications_sent_total",
		Help:      "Notification emails delivered by the poller.",
	})

	NotificationSendErrors = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: "volunteer_hub",
		Name:      "notification_send_errors_total",
		Help:      "Notification email delivery failures.",
	})
)

// Handler serves the /metrics endpoint for this registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
