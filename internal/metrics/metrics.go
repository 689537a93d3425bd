// Package metrics provides Prometheus metrics for the importer and the catalog
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Import metrics
	ImportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "product_import_attempts_total",
			Help: "Total number of import attempts by final status",
		},
		[]string{"status"},
	)

	ImportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "product_import_duration_seconds",
			Help:    "Time taken for one import attempt, from upload to report",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 120},
		},
		[]string{"file_type"},
	)

	RowsValidated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "product_import_rows_validated_total",
			Help: "Total number of rows validated by outcome",
		},
		[]string{"outcome"},
	)

	// Upload metrics
	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "product_import_uploads_total",
			Help: "Total number of batch upload requests sent to the catalog",
		},
		[]string{"result"},
	)

	UploadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "product_import_upload_duration_seconds",
			Help:    "Duration of batch upload requests",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Catalog metrics
	ProductsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_products_created_total",
			Help: "Total number of product create attempts by result",
		},
		[]string{"source", "result"},
	)
)

// Label values shared by callers
const (
	OutcomeValid   = "valid"
	OutcomeInvalid = "invalid"

	ResultSuccess = "success"
	ResultFailure = "failure"

	SourceSingle = "single"
	SourceBatch  = "batch"
)

// RecordImport records the end of an import attempt
func RecordImport(status, fileType string, duration time.Duration) {
	ImportsTotal.WithLabelValues(status).Inc()
	ImportDuration.WithLabelValues(fileType).Observe(duration.Seconds())
}

// RecordValidation records how many rows passed and failed validation
func RecordValidation(valid, invalid int) {
	RowsValidated.WithLabelValues(OutcomeValid).Add(float64(valid))
	RowsValidated.WithLabelValues(OutcomeInvalid).Add(float64(invalid))
}

// RecordUpload records one batch upload request
func RecordUpload(err error, duration time.Duration) {
	result := ResultSuccess
	if err != nil {
		result = ResultFailure
	}
	UploadsTotal.WithLabelValues(result).Inc()
	UploadDuration.Observe(duration.Seconds())
}

// RecordProductCreate records one catalog create attempt
func RecordProductCreate(source string, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultFailure
	}
	ProductsCreated.WithLabelValues(source, result).Inc()
}

// Timer is a helper for measuring duration
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Duration returns the elapsed time since the timer was created
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
