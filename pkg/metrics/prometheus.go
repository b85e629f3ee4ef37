package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	RecordsInserted  *prometheus.CounterVec
	RecordsDeleted   *prometheus.CounterVec
	ImportRows       *prometheus.CounterVec
	ReportsGenerated *prometheus.CounterVec
	RequestDuration  prometheus.Histogram
	StorageErrors    prometheus.Counter
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		RecordsInserted: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_inserted_total",
			Help:      "The total number of records inserted, by entity kind",
		}, []string{"kind"}),
		RecordsDeleted: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_deleted_total",
			Help:      "The total number of records deleted, by entity kind",
		}, []string{"kind"}),
		ImportRows: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_rows_total",
			Help:      "The total number of CSV import rows, by outcome",
		}, []string{"outcome"}),
		ReportsGenerated: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_generated_total",
			Help:      "The total number of reports generated, by report kind",
		}, []string{"kind"}),
		RequestDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Time taken to serve API requests",
			Buckets:   prometheus.DefBuckets,
		}),
		StorageErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_errors_total",
			Help:      "The total number of storage unavailable errors",
		}),
	}
}
