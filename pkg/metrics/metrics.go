// Package metrics exposes Prometheus collectors for the ingestion pipeline
// and the learning engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all registered collectors.
type Metrics struct {
	FilesParsed    *prometheus.CounterVec
	ParseDuration  prometheus.Histogram
	InvalidRows    prometheus.Counter
	RoomTypesFound prometheus.Counter
	Predictions    *prometheus.CounterVec
	Retrains       prometheus.Counter
	FeedbackItems  *prometheus.CounterVec
}

// New registers collectors on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		FilesParsed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "boq_files_parsed_total",
			Help: "Spreadsheet files parsed, labelled by layout variant and outcome.",
		}, []string{"variant", "outcome"}),
		ParseDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "boq_parse_duration_seconds",
			Help:    "Wall time spent parsing one workbook.",
			Buckets: prometheus.DefBuckets,
		}),
		InvalidRows: factory.NewCounter(prometheus.CounterOpts{
			Name: "boq_invalid_rows_total",
			Help: "Rows routed to the invalid-entries collection.",
		}),
		RoomTypesFound: factory.NewCounter(prometheus.CounterOpts{
			Name: "boq_room_types_total",
			Help: "Room types extracted from parsed workbooks.",
		}),
		Predictions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "learning_predictions_total",
			Help: "Predictions served, labelled by result (matched/uncategorized).",
		}, []string{"result"}),
		Retrains: factory.NewCounter(prometheus.CounterOpts{
			Name: "learning_retrains_total",
			Help: "Model retrain passes completed.",
		}),
		FeedbackItems: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "learning_feedback_total",
			Help: "Feedback items ingested, labelled by action.",
		}, []string{"action"}),
	}
}
