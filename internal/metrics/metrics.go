package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "movesmart",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint and status.",
		},
		[]string{"endpoint", "status"},
	)

	bookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "movesmart",
			Name:      "bookings_created_total",
			Help:      "Bookings accepted through the intake form.",
		},
	)

	statusUpdates = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "movesmart",
			Name:      "booking_status_updates_total",
			Help:      "Admin status updates by target status.",
		},
		[]string{"status"},
	)

	notifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "movesmart",
			Name:      "notifications_total",
			Help:      "Notification attempts by channel, event and outcome.",
		},
		[]string{"channel", "event", "outcome"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, bookingsCreated, statusUpdates, notifications)
	})
}

// IncHTTP increments the request counter for an endpoint/status pair.
func IncHTTP(endpoint, status string) {
	httpRequests.WithLabelValues(endpoint, status).Inc()
}

// IncBookingCreated counts an accepted booking.
func IncBookingCreated() {
	bookingsCreated.Inc()
}

// IncStatusUpdate counts an admin status change.
func IncStatusUpdate(status string) {
	statusUpdates.WithLabelValues(status).Inc()
}

// IncNotification counts a notification attempt outcome ("sent" or "failed").
func IncNotification(channel, event, outcome string) {
	notifications.WithLabelValues(channel, event, outcome).Inc()
}
