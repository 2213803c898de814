package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	SyncRuns             prometheus.Counter
	SyncedRecords        *prometheus.CounterVec
	SyncFailures         *prometheus.CounterVec
	BookingsCreated      prometheus.Counter
	BookingRejections    *prometheus.CounterVec
	NotificationFailures prometheus.Counter
}

func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		SyncRuns: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_sync_runs_total",
			Help:      "The total number of catalog sync runs",
		}),
		SyncedRecords: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_synced_records_total",
			Help:      "The total number of records appended to the catalog",
		}, []string{"resource"}),
		SyncFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_sync_failures_total",
			Help:      "The total number of per-resource sync failures",
		}, []string{"resource"}),
		BookingsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_created_total",
			Help:      "The total number of committed bookings",
		}),
		BookingRejections: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_rejections_total",
			Help:      "The total number of rejected booking operations",
		}, []string{"reason"}),
		NotificationFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_failures_total",
			Help:      "The total number of confirmation publishes that failed",
		}),
	}
}
