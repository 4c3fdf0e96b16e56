// Package projector consumes decoded marketplace events and maintains the
// queryable projection: jobs, disputes, templates, arbitrators and aggregate
// statistics, plus the append-only audit trail.
package projector

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/aegis-protocol/aegis-indexer/internal/config"
	"github.com/aegis-protocol/aegis-indexer/internal/events"
	"github.com/aegis-protocol/aegis-indexer/internal/logger"
	"github.com/aegis-protocol/aegis-indexer/internal/projector/migrations"
	"github.com/aegis-protocol/aegis-indexer/pkg/indexer"
)

// Compile-time check that Projector satisfies the syncer contract.
var _ indexer.Indexer = (*Projector)(nil)

// Projector is the single writer of the projection database. Logs are applied
// strictly in chain order; every batch runs in one transaction.
type Projector struct {
	db  *sql.DB
	log *logger.Logger

	addresses  map[common.Address]struct{}
	startBlock uint64
}

// New runs the schema migrations and builds a projector over the given
// database.
func New(database *sql.DB, cfg *config.Config, log *logger.Logger) (*Projector, error) {
	if err := migrations.RunMigrations(log, database); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	addresses := make(map[common.Address]struct{})
	for _, addr := range cfg.Contracts.Addresses() {
		addresses[addr] = struct{}{}
	}

	return &Projector{
		db:         database,
		log:        log,
		addresses:  addresses,
		startBlock: cfg.Sync.StartBlock,
	}, nil
}

// AddressesToIndex returns the configured marketplace contract addresses.
func (p *Projector) AddressesToIndex() map[common.Address]struct{} {
	return p.addresses
}

// StartBlock returns the block the projection starts from.
func (p *Projector) StartBlock() uint64 {
	return p.startBlock
}

// HandleLogs decodes and applies a batch of logs in one transaction.
//
// Malformed logs are recorded in the log output and skipped; they never abort
// the batch. A log already present in the audit trail is counted as a
// duplicate and its projection effects are not re-applied.
func (p *Projector) HandleLogs(logs []indexer.Log) error {
	if len(logs) == 0 {
		return nil
	}

	tx, err := p.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			p.log.Errorf("failed to rollback transaction: %v", err)
		}
	}()

	applied := 0
	duplicates := 0

	for i := range logs {
		lg := &logs[i]

		rec, err := events.Parse(&lg.Log)
		if err != nil {
			p.log.Warnf("failed to decode log at block %d, tx %s: %v",
				lg.BlockNumber, lg.TxHash.Hex(), err)
			MalformedLogsInc()
			continue
		}

		if rec.Kind() == events.KindUnrecognized {
			p.log.Debugf("unrecognized topic %s at block %d, tx %s",
				rec.(*events.Unrecognized).Topic0.Hex(), lg.BlockNumber, lg.TxHash.Hex())
			UnrecognizedLogsInc()
			continue
		}

		firstSeen, err := p.insertAudit(tx, lg, rec)
		if err != nil {
			return err
		}
		if !firstSeen {
			duplicates++
			DuplicateEventsInc()
			continue
		}

		if err := p.apply(tx, lg, rec); err != nil {
			return fmt.Errorf("failed to apply %s at block %d, tx %s: %w",
				rec.Kind(), lg.BlockNumber, lg.TxHash.Hex(), err)
		}
		applied++
		EventsAppliedInc(string(rec.Kind()))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	if len(logs) > 0 {
		LastProjectedBlockSet(logs[len(logs)-1].BlockNumber)
	}

	p.log.Infof("projected %d events (%d duplicates) from %d logs", applied, duplicates, len(logs))

	return nil
}

// apply routes one first-seen event to its projection handler. Events with
// audit-only semantics fall through with no projection effect.
func (p *Projector) apply(tx *sql.Tx, lg *indexer.Log, rec events.Record) error {
	switch ev := rec.(type) {
	case *events.JobCreated:
		return p.applyJobCreated(tx, lg, ev)
	case *events.JobFunded:
		return p.applyJobFunded(tx, lg, ev)
	case *events.DeliverableSubmitted:
		return p.applyDeliverableSubmitted(tx, lg, ev)
	case *events.ValidationReceived:
		return p.applyValidationReceived(tx, lg, ev)
	case *events.JobSettled:
		return p.applyJobSettled(tx, lg, ev)
	case *events.JobRefunded:
		return p.applyJobRefunded(tx, lg, ev)
	case *events.JobCancelled:
		return p.applyJobCancelled(tx, lg, ev)
	case *events.DisputeRaised:
		return p.applyDisputeRaised(tx, lg, ev)
	case *events.ClientConfirmed:
		return p.applyClientConfirmed(tx, lg, ev)
	case *events.DisputeWindowStarted:
		return p.applyDisputeWindowStarted(tx, lg, ev)
	case *events.FeedbackSubmitted:
		return p.applyFeedbackSubmitted(tx, lg, ev)

	case *events.DisputeInitiated:
		return p.applyDisputeInitiated(tx, lg, ev)
	case *events.EvidenceSubmitted:
		return p.applyEvidenceSubmitted(tx, lg, ev)
	case *events.ArbitratorAssigned:
		return p.applyArbitratorAssigned(tx, lg, ev)
	case *events.DisputeResolved:
		return p.applyDisputeResolved(tx, lg, ev)
	case *events.ReValidationRequested:
		return p.applyReValidationRequested(tx, lg, ev)
	case *events.ArbitratorStaked:
		return p.applyArbitratorStaked(tx, lg, ev)
	case *events.ArbitratorUnstaked:
		return p.applyArbitratorUnstaked(tx, lg, ev)
	case *events.ArbitratorSlashed:
		return p.applyArbitratorSlashed(tx, lg, ev)

	case *events.TemplateCreated:
		return p.applyTemplateCreated(tx, lg, ev)
	case *events.TemplateUpdated:
		return p.applyTemplateUpdated(tx, lg, ev)
	case *events.TemplateDeactivated:
		return p.applyTemplateDeactivated(tx, lg, ev)
	case *events.JobCreatedFromTemplate:
		return p.applyJobCreatedFromTemplate(tx, lg, ev)

	default:
		// Treasury events, bond movements and contract parameter updates are
		// audit-only.
		return nil
	}
}

// HandleReorg rolls the projection back to before the given block.
//
// Projected entities are mutable and carry no per-block history, so the audit
// rows at or after the reorg point are dropped and the affected range must be
// replayed by the syncer. Replayed logs re-insert their audit rows and
// re-apply their effects.
func (p *Projector) HandleReorg(blockNum uint64) error {
	tx, err := p.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			p.log.Errorf("failed to rollback transaction: %v", err)
		}
	}()

	res, err := tx.Exec("DELETE FROM audit_events WHERE block_number >= ?", blockNum)
	if err != nil {
		return fmt.Errorf("failed to delete audit events: %w", err)
	}
	deleted, _ := res.RowsAffected()

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	if deleted > 0 {
		p.log.Warnf("reorg from block %d dropped %d audit events; "+
			"projection state from replayed blocks will be rebuilt on re-sync", blockNum, deleted)
	}

	return nil
}

// Close closes the underlying database.
func (p *Projector) Close() error {
	return p.db.Close()
}
