package projector

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	eventsApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aegis_indexer_events_applied_total",
			Help: "Total number of events applied to the projection, by kind",
		},
		[]string{"kind"},
	)

	duplicateEvents = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "aegis_indexer_duplicate_events_total",
			Help: "Total number of redelivered events skipped by the audit identity check",
		},
	)

	malformedLogs = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "aegis_indexer_malformed_logs_total",
			Help: "Total number of logs with a known topic that failed to decode",
		},
	)

	unrecognizedLogs = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "aegis_indexer_unrecognized_logs_total",
			Help: "Total number of logs whose topic matched no known event",
		},
	)

	lastProjectedBlock = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "aegis_indexer_last_projected_block",
			Help: "Block number of the most recently projected log",
		},
	)
)

func EventsAppliedInc(kind string) {
	eventsApplied.WithLabelValues(kind).Inc()
}

func DuplicateEventsInc() {
	duplicateEvents.Inc()
}

func MalformedLogsInc() {
	malformedLogs.Inc()
}

func UnrecognizedLogsInc() {
	unrecognizedLogs.Inc()
}

func LastProjectedBlockSet(block uint64) {
	lastProjectedBlock.Set(float64(block))
}
