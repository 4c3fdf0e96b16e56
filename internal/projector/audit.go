package projector

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/aegis-protocol/aegis-indexer/internal/events"
	"github.com/aegis-protocol/aegis-indexer/pkg/indexer"
)

// EventID builds the txHash-logIndex identity of one log.
func EventID(lg *indexer.Log) string {
	return fmt.Sprintf("%s-%d", lg.TxHash.Hex(), lg.Index)
}

// insertAudit records the decoded event in the append-only audit table.
//
// It reports whether the event was seen for the first time. A redelivered log
// hits the UNIQUE event_id constraint, inserts nothing, and returns false;
// every projection mutation is gated on that flag so replays cannot
// double-apply counters.
func (p *Projector) insertAudit(tx *sql.Tx, lg *indexer.Log, rec events.Record) (bool, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return false, fmt.Errorf("failed to marshal event payload: %w", err)
	}

	res, err := tx.Exec(
		`INSERT OR IGNORE INTO audit_events
		 (event_id, block_number, block_timestamp, tx_hash, log_index, address, kind, payload)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		EventID(lg),
		lg.BlockNumber,
		lg.BlockTimestamp,
		lg.TxHash.Hex(),
		lg.Index,
		lg.Address.Hex(),
		string(rec.Kind()),
		string(payload),
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert audit event: %w", err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return inserted > 0, nil
}
