package projector

import (
	"database/sql"
	"fmt"

	"github.com/russross/meddler"

	"github.com/aegis-protocol/aegis-indexer/internal/events"
	"github.com/aegis-protocol/aegis-indexer/pkg/indexer"
)

func (p *Projector) applyJobCreated(tx *sql.Tx, lg *indexer.Log, ev *events.JobCreated) error {
	if _, found, err := getJob(tx, ev.JobID); err != nil {
		return err
	} else if found {
		p.log.Warnf("job %s already exists, skipping creation at block %d", ev.JobID.Hex(), lg.BlockNumber)
		return nil
	}

	job := &Job{
		JobID:           ev.JobID,
		ClientAgentID:   ev.ClientAgentID,
		ProviderAgentID: ev.ProviderAgentID,
		Amount:          ev.Amount,
		Validator:       ev.ValidatorAddress,
		Deadline:        ev.Deadline,
		State:           JobStateFunded,
		Resolution:      ResolutionNone,
		CreatedBlock:    lg.BlockNumber,
		CreatedAt:       lg.BlockTimestamp,
		UpdatedAt:       lg.BlockTimestamp,
	}
	if err := meddler.Insert(tx, "jobs", job); err != nil {
		return fmt.Errorf("failed to insert job: %w", err)
	}

	stats, err := getOrCreateProtocolStats(tx)
	if err != nil {
		return err
	}
	stats.TotalJobs++
	stats.TotalVolume = addBig(stats.TotalVolume, ev.Amount)
	stats.UpdatedAt = lg.BlockTimestamp
	if err := meddler.Update(tx, "protocol_stats", stats); err != nil {
		return err
	}

	daily, err := getOrCreateDailyStats(tx, lg.BlockTimestamp)
	if err != nil {
		return err
	}
	daily.JobsCreated++
	daily.Volume = addBig(daily.Volume, ev.Amount)
	daily.UpdatedAt = lg.BlockTimestamp

	return meddler.Update(tx, "daily_stats", daily)
}

func (p *Projector) applyJobFunded(tx *sql.Tx, lg *indexer.Log, ev *events.JobFunded) error {
	job, found, err := getJob(tx, ev.JobID)
	if err != nil {
		return err
	}
	if !found {
		p.log.Warnf("JobFunded for unknown job %s at block %d", ev.JobID.Hex(), lg.BlockNumber)
		return nil
	}

	job.Amount = ev.Amount
	job.UpdatedAt = lg.BlockTimestamp

	return meddler.Update(tx, "jobs", job)
}

func (p *Projector) applyDeliverableSubmitted(tx *sql.Tx, lg *indexer.Log, ev *events.DeliverableSubmitted) error {
	job, found, err := getJob(tx, ev.JobID)
	if err != nil {
		return err
	}
	if !found {
		p.log.Warnf("DeliverableSubmitted for unknown job %s at block %d", ev.JobID.Hex(), lg.BlockNumber)
		return nil
	}

	job.State = JobStateDelivered
	job.DeliverableURI = ev.DeliverableURI
	job.DeliverableHash = ev.DeliverableHash
	job.ValidationRequestHash = ev.ValidationRequestHash
	job.DeliveredAt = lg.BlockTimestamp
	job.UpdatedAt = lg.BlockTimestamp

	return meddler.Update(tx, "jobs", job)
}

func (p *Projector) applyValidationReceived(tx *sql.Tx, lg *indexer.Log, ev *events.ValidationReceived) error {
	job, found, err := getJob(tx, ev.JobID)
	if err != nil {
		return err
	}
	if !found {
		p.log.Warnf("ValidationReceived for unknown job %s at block %d", ev.JobID.Hex(), lg.BlockNumber)
		return nil
	}

	job.LastValidationScore = ev.Score
	job.LastValidationPassed = ev.PassedThreshold
	// A failed validation leaves the job in DELIVERED so it can be retried.
	if ev.PassedThreshold {
		job.State = JobStateValidating
	}
	job.UpdatedAt = lg.BlockTimestamp

	return meddler.Update(tx, "jobs", job)
}

func (p *Projector) applyJobSettled(tx *sql.Tx, lg *indexer.Log, ev *events.JobSettled) error {
	job, found, err := getJob(tx, ev.JobID)
	if err != nil {
		return err
	}
	if !found {
		p.log.Warnf("JobSettled for unknown job %s at block %d", ev.JobID.Hex(), lg.BlockNumber)
		return nil
	}

	wallet := ev.ProviderWallet
	job.State = JobStateSettled
	job.ProviderWallet = &wallet
	job.ProviderAmount = ev.ProviderAmount
	job.ProtocolFee = ev.ProtocolFee
	job.SettledAt = lg.BlockTimestamp
	job.UpdatedAt = lg.BlockTimestamp
	if err := meddler.Update(tx, "jobs", job); err != nil {
		return err
	}

	stats, err := getOrCreateProtocolStats(tx)
	if err != nil {
		return err
	}
	stats.TotalSettled++
	stats.TotalFeesCollected = addBig(stats.TotalFeesCollected, ev.ProtocolFee)
	stats.UpdatedAt = lg.BlockTimestamp
	if err := meddler.Update(tx, "protocol_stats", stats); err != nil {
		return err
	}

	daily, err := getOrCreateDailyStats(tx, lg.BlockTimestamp)
	if err != nil {
		return err
	}
	daily.JobsSettled++
	daily.FeesCollected = addBig(daily.FeesCollected, ev.ProtocolFee)
	daily.UpdatedAt = lg.BlockTimestamp

	return meddler.Update(tx, "daily_stats", daily)
}

func (p *Projector) applyJobRefunded(tx *sql.Tx, lg *indexer.Log, ev *events.JobRefunded) error {
	job, found, err := getJob(tx, ev.JobID)
	if err != nil {
		return err
	}
	if !found {
		p.log.Warnf("JobRefunded for unknown job %s at block %d", ev.JobID.Hex(), lg.BlockNumber)
		return nil
	}

	job.State = JobStateRefunded
	job.RefundAmount = ev.Amount
	client := ev.ClientAddress
	job.ClientAddress = &client
	job.UpdatedAt = lg.BlockTimestamp
	if err := meddler.Update(tx, "jobs", job); err != nil {
		return err
	}

	stats, err := getOrCreateProtocolStats(tx)
	if err != nil {
		return err
	}
	stats.TotalRefunded++
	stats.TotalRefundAmount = addBig(stats.TotalRefundAmount, ev.Amount)
	stats.UpdatedAt = lg.BlockTimestamp
	if err := meddler.Update(tx, "protocol_stats", stats); err != nil {
		return err
	}

	daily, err := getOrCreateDailyStats(tx, lg.BlockTimestamp)
	if err != nil {
		return err
	}
	daily.JobsRefunded++
	daily.UpdatedAt = lg.BlockTimestamp

	return meddler.Update(tx, "daily_stats", daily)
}

func (p *Projector) applyJobCancelled(tx *sql.Tx, lg *indexer.Log, ev *events.JobCancelled) error {
	job, found, err := getJob(tx, ev.JobID)
	if err != nil {
		return err
	}
	if !found {
		p.log.Warnf("JobCancelled for unknown job %s at block %d", ev.JobID.Hex(), lg.BlockNumber)
		return nil
	}

	job.State = JobStateCancelled
	job.UpdatedAt = lg.BlockTimestamp

	return meddler.Update(tx, "jobs", job)
}

func (p *Projector) applyDisputeRaised(tx *sql.Tx, lg *indexer.Log, ev *events.DisputeRaised) error {
	job, found, err := getJob(tx, ev.JobID)
	if err != nil {
		return err
	}
	if !found {
		p.log.Warnf("DisputeRaised for unknown job %s at block %d", ev.JobID.Hex(), lg.BlockNumber)
		return nil
	}

	job.State = JobStateDisputed
	job.UpdatedAt = lg.BlockTimestamp
	if err := meddler.Update(tx, "jobs", job); err != nil {
		return err
	}

	stats, err := getOrCreateProtocolStats(tx)
	if err != nil {
		return err
	}
	stats.TotalDisputed++
	stats.UpdatedAt = lg.BlockTimestamp
	if err := meddler.Update(tx, "protocol_stats", stats); err != nil {
		return err
	}

	daily, err := getOrCreateDailyStats(tx, lg.BlockTimestamp)
	if err != nil {
		return err
	}
	daily.JobsDisputed++
	daily.UpdatedAt = lg.BlockTimestamp

	return meddler.Update(tx, "daily_stats", daily)
}

func (p *Projector) applyClientConfirmed(tx *sql.Tx, lg *indexer.Log, ev *events.ClientConfirmed) error {
	job, found, err := getJob(tx, ev.JobID)
	if err != nil {
		return err
	}
	if !found {
		p.log.Warnf("ClientConfirmed for unknown job %s at block %d", ev.JobID.Hex(), lg.BlockNumber)
		return nil
	}

	job.Resolution = ResolutionClientConfirm
	job.UpdatedAt = lg.BlockTimestamp

	return meddler.Update(tx, "jobs", job)
}

func (p *Projector) applyDisputeWindowStarted(tx *sql.Tx, lg *indexer.Log, ev *events.DisputeWindowStarted) error {
	job, found, err := getJob(tx, ev.JobID)
	if err != nil {
		return err
	}
	if !found {
		p.log.Warnf("DisputeWindowStarted for unknown job %s at block %d", ev.JobID.Hex(), lg.BlockNumber)
		return nil
	}

	job.State = JobStateDisputeWindow
	job.DisputeWindowEnd = ev.WindowEnd
	job.UpdatedAt = lg.BlockTimestamp

	return meddler.Update(tx, "jobs", job)
}

func (p *Projector) applyFeedbackSubmitted(tx *sql.Tx, lg *indexer.Log, ev *events.FeedbackSubmitted) error {
	agent, err := getOrCreateAgent(tx, ev.AgentID, lg.BlockTimestamp)
	if err != nil {
		return err
	}

	agent.Score = addBig(agent.Score, ev.Value)
	agent.FeedbackCount++
	agent.UpdatedAt = lg.BlockTimestamp

	return meddler.Update(tx, "agent_reputation", agent)
}
