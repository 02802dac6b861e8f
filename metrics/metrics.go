package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"path", "method", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crm_http_request_duration_seconds",
			Help:    "Histogram of response durations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)

	// EnquiryOperations counts enquiry store calls by operation and outcome.
	EnquiryOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_enquiry_operations_total",
			Help: "Enquiry operations by outcome",
		},
		[]string{"op", "outcome"},
	)

	NotificationsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_notifications_created_total",
			Help: "Notifications created by type",
		},
		[]string{"type"},
	)

	ReminderEmails = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_reminder_emails_total",
			Help: "Follow-up reminder e-mails by outcome",
		},
		[]string{"outcome"},
	)
)

var initOnce sync.Once

func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(HTTPRequests, RequestDuration, EnquiryOperations, NotificationsCreated, ReminderEmails)
	})
}

// Outcome labels an error for the operation counters.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
