// Package metrics - метрики Prometheus для HTTP и доменных событий.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// HTTPRequestsTotal - запросы по методу, шаблону маршрута и статусу
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rastaka_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rastaka_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// UploadsTotal - сохраненные файлы по типу (IMAGE/VIDEO) и результату
	UploadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rastaka_uploads_total",
			Help: "Stored uploads",
		},
		[]string{"file_type", "status"},
	)

	UploadBytesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rastaka_upload_bytes_total",
			Help: "Bytes written to storage",
		},
	)

	// SlugCollisionsTotal - вставки, отклоненные уникальным индексом slug
	SlugCollisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rastaka_slug_collisions_total",
			Help: "Slug unique index collisions on insert",
		},
		[]string{"entity"},
	)

	ContactSubmissionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rastaka_contact_submissions_total",
			Help: "Contact form submissions",
		},
	)

	EmailNotificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rastaka_email_notifications_total",
			Help: "Email notifications by outcome",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		UploadsTotal,
		UploadBytesTotal,
		SlugCollisionsTotal,
		ContactSubmissionsTotal,
		EmailNotificationsTotal,
	)
}
