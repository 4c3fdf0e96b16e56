package projector

import (
	"database/sql"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/russross/meddler"

	"github.com/aegis-protocol/aegis-indexer/internal/events"
	"github.com/aegis-protocol/aegis-indexer/pkg/indexer"
)

func (p *Projector) applyDisputeInitiated(tx *sql.Tx, lg *indexer.Log, ev *events.DisputeInitiated) error {
	if _, found, err := getDispute(tx, ev.DisputeID); err != nil {
		return err
	} else if found {
		p.log.Warnf("dispute %s already exists, skipping creation at block %d", ev.DisputeID.Hex(), lg.BlockNumber)
		return nil
	}

	dispute := &Dispute{
		DisputeID:    ev.DisputeID,
		JobID:        ev.JobID,
		Initiator:    ev.Initiator,
		Method:       ResolutionNone,
		CreatedBlock: lg.BlockNumber,
		CreatedAt:    lg.BlockTimestamp,
		UpdatedAt:    lg.BlockTimestamp,
	}
	if err := meddler.Insert(tx, "disputes", dispute); err != nil {
		return fmt.Errorf("failed to insert dispute: %w", err)
	}

	return nil
}

func (p *Projector) applyEvidenceSubmitted(tx *sql.Tx, lg *indexer.Log, ev *events.EvidenceSubmitted) error {
	dispute, found, err := getDispute(tx, ev.DisputeID)
	if err != nil {
		return err
	}
	if !found {
		p.log.Warnf("EvidenceSubmitted for unknown dispute %s at block %d", ev.DisputeID.Hex(), lg.BlockNumber)
		return nil
	}

	if ev.Submitter == dispute.Initiator {
		dispute.InitiatorEvidenceURI = ev.EvidenceURI
	} else {
		dispute.RespondentEvidenceURI = ev.EvidenceURI
	}
	dispute.UpdatedAt = lg.BlockTimestamp

	return meddler.Update(tx, "disputes", dispute)
}

func (p *Projector) applyArbitratorAssigned(tx *sql.Tx, lg *indexer.Log, ev *events.ArbitratorAssigned) error {
	arb, err := getOrCreateArbitrator(tx, ev.Arbitrator, lg.BlockTimestamp)
	if err != nil {
		return err
	}
	arb.DisputesAssigned++
	arb.UpdatedAt = lg.BlockTimestamp
	if err := meddler.Update(tx, "arbitrators", arb); err != nil {
		return err
	}

	dispute, found, err := getDispute(tx, ev.DisputeID)
	if err != nil {
		return err
	}
	if !found {
		p.log.Warnf("ArbitratorAssigned for unknown dispute %s at block %d", ev.DisputeID.Hex(), lg.BlockNumber)
		return nil
	}

	arbitrator := ev.Arbitrator
	dispute.Arbitrator = &arbitrator
	dispute.UpdatedAt = lg.BlockTimestamp

	return meddler.Update(tx, "disputes", dispute)
}

func (p *Projector) applyDisputeResolved(tx *sql.Tx, lg *indexer.Log, ev *events.DisputeResolved) error {
	dispute, found, err := getDispute(tx, ev.DisputeID)
	if err != nil {
		return err
	}
	if !found {
		p.log.Warnf("DisputeResolved for unknown dispute %s at block %d", ev.DisputeID.Hex(), lg.BlockNumber)
	} else {
		dispute.Resolved = true
		dispute.Method = ev.Method
		dispute.ClientPercent = ev.ClientPercent
		dispute.ResolvedAt = lg.BlockTimestamp
		dispute.UpdatedAt = lg.BlockTimestamp
		if err := meddler.Update(tx, "disputes", dispute); err != nil {
			return err
		}

		// Only arbitrator rulings count toward the arbitrator's record.
		if ev.Method == ResolutionArbitrator && dispute.Arbitrator != nil {
			arb, err := getOrCreateArbitrator(tx, *dispute.Arbitrator, lg.BlockTimestamp)
			if err != nil {
				return err
			}
			arb.DisputesResolved++
			arb.UpdatedAt = lg.BlockTimestamp
			if err := meddler.Update(tx, "arbitrators", arb); err != nil {
				return err
			}
		}
	}

	job, found, err := getJob(tx, ev.JobID)
	if err != nil {
		return err
	}
	if !found {
		p.log.Warnf("DisputeResolved for unknown job %s at block %d", ev.JobID.Hex(), lg.BlockNumber)
		return nil
	}

	// Job.Resolution is only ever set by ClientConfirmed; the resolution
	// method of a dispute lives on the dispute row.
	job.State = JobStateResolved
	job.UpdatedAt = lg.BlockTimestamp

	return meddler.Update(tx, "jobs", job)
}

func (p *Projector) applyReValidationRequested(tx *sql.Tx, lg *indexer.Log, ev *events.ReValidationRequested) error {
	dispute, found, err := getDispute(tx, ev.DisputeID)
	if err != nil {
		return err
	}
	if !found {
		p.log.Warnf("ReValidationRequested for unknown dispute %s at block %d", ev.DisputeID.Hex(), lg.BlockNumber)
		return nil
	}

	dispute.NewValidationHash = ev.NewValidationHash
	dispute.UpdatedAt = lg.BlockTimestamp

	return meddler.Update(tx, "disputes", dispute)
}

func (p *Projector) applyArbitratorStaked(tx *sql.Tx, lg *indexer.Log, ev *events.ArbitratorStaked) error {
	arb, err := getOrCreateArbitrator(tx, ev.Arbitrator, lg.BlockTimestamp)
	if err != nil {
		return err
	}

	firstStake := arb.FirstStakedAt == 0 && ev.Amount != nil && ev.Amount.Sign() > 0

	arb.Staked = addBig(arb.Staked, ev.Amount)
	if firstStake {
		arb.FirstStakedAt = lg.BlockTimestamp
	}
	arb.UpdatedAt = lg.BlockTimestamp
	if err := meddler.Update(tx, "arbitrators", arb); err != nil {
		return err
	}

	stats, err := getOrCreateProtocolStats(tx)
	if err != nil {
		return err
	}
	if firstStake {
		stats.ActiveArbitrators++
	}
	stats.TotalStaked = addBig(stats.TotalStaked, ev.Amount)
	stats.UpdatedAt = lg.BlockTimestamp

	return meddler.Update(tx, "protocol_stats", stats)
}

func (p *Projector) applyArbitratorUnstaked(tx *sql.Tx, lg *indexer.Log, ev *events.ArbitratorUnstaked) error {
	return p.reduceArbitratorStake(tx, lg, ev.Arbitrator, ev.Amount, false)
}

func (p *Projector) applyArbitratorSlashed(tx *sql.Tx, lg *indexer.Log, ev *events.ArbitratorSlashed) error {
	return p.reduceArbitratorStake(tx, lg, ev.Arbitrator, ev.Amount, true)
}

// reduceArbitratorStake applies an unstake or a slash. When the remaining
// stake crosses to zero the arbitrator leaves the active set.
func (p *Projector) reduceArbitratorStake(tx *sql.Tx, lg *indexer.Log,
	addr common.Address, amount *big.Int, slashed bool) error {
	arb, err := getOrCreateArbitrator(tx, addr, lg.BlockTimestamp)
	if err != nil {
		return err
	}

	hadStake := arb.Staked != nil && arb.Staked.Sign() > 0
	arb.Staked = subBigFloor(arb.Staked, amount)
	if slashed {
		arb.TotalSlashed = addBig(arb.TotalSlashed, amount)
	}
	arb.UpdatedAt = lg.BlockTimestamp
	if err := meddler.Update(tx, "arbitrators", arb); err != nil {
		return err
	}

	stats, err := getOrCreateProtocolStats(tx)
	if err != nil {
		return err
	}
	if hadStake && arb.Staked.Sign() == 0 && stats.ActiveArbitrators > 0 {
		stats.ActiveArbitrators--
	}
	stats.TotalStaked = subBigFloor(stats.TotalStaked, amount)
	stats.UpdatedAt = lg.BlockTimestamp

	return meddler.Update(tx, "protocol_stats", stats)
}
