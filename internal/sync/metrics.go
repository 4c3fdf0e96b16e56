package sync

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	logsFetched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "aegis_indexer_logs_fetched_total",
			Help: "Total number of logs fetched from the chain",
		},
	)

	syncErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "aegis_indexer_sync_errors_total",
			Help: "Total number of failed sync steps",
		},
	)

	lastSyncedBlock = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "aegis_indexer_last_synced_block",
			Help: "Highest block number fully synced",
		},
	)

	syncLag = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "aegis_indexer_sync_lag_blocks",
			Help: "Blocks between the sync cursor and the settled head",
		},
	)
)

func LogsFetchedAdd(n int) {
	logsFetched.Add(float64(n))
}

func SyncErrorsInc() {
	syncErrors.Inc()
}

func LastSyncedBlockSet(block uint64) {
	lastSyncedBlock.Set(float64(block))
}

func SyncLagSet(lag uint64) {
	syncLag.Set(float64(lag))
}
