package projector

import (
	"database/sql"
	"fmt"

	"github.com/russross/meddler"

	"github.com/aegis-protocol/aegis-indexer/internal/events"
	"github.com/aegis-protocol/aegis-indexer/pkg/indexer"
)

func (p *Projector) applyTemplateCreated(tx *sql.Tx, lg *indexer.Log, ev *events.TemplateCreated) error {
	if _, found, err := getTemplate(tx, ev.TemplateID); err != nil {
		return err
	} else if found {
		p.log.Warnf("template %s already exists, skipping creation at block %d", ev.TemplateID, lg.BlockNumber)
		return nil
	}

	template := &JobTemplate{
		TemplateID:       ev.TemplateID,
		Creator:          ev.Creator,
		Name:             ev.Name,
		DefaultValidator: ev.DefaultValidator,
		DefaultTimeout:   ev.DefaultTimeout,
		MinValidation:    ev.MinValidation,
		Active:           true,
		CreatedBlock:     lg.BlockNumber,
		CreatedAt:        lg.BlockTimestamp,
		UpdatedAt:        lg.BlockTimestamp,
	}
	if err := meddler.Insert(tx, "job_templates", template); err != nil {
		return fmt.Errorf("failed to insert template: %w", err)
	}

	stats, err := getOrCreateProtocolStats(tx)
	if err != nil {
		return err
	}
	stats.TotalTemplates++
	stats.UpdatedAt = lg.BlockTimestamp

	return meddler.Update(tx, "protocol_stats", stats)
}

func (p *Projector) applyTemplateUpdated(tx *sql.Tx, lg *indexer.Log, ev *events.TemplateUpdated) error {
	template, found, err := getTemplate(tx, ev.TemplateID)
	if err != nil {
		return err
	}
	if !found {
		p.log.Warnf("TemplateUpdated for unknown template %s at block %d", ev.TemplateID, lg.BlockNumber)
		return nil
	}

	// The event carries no field values. The on-chain update is observable
	// only through the audit record; the projection just notes the touch.
	template.UpdatedAt = lg.BlockTimestamp

	return meddler.Update(tx, "job_templates", template)
}

func (p *Projector) applyTemplateDeactivated(tx *sql.Tx, lg *indexer.Log, ev *events.TemplateDeactivated) error {
	template, found, err := getTemplate(tx, ev.TemplateID)
	if err != nil {
		return err
	}
	if !found {
		p.log.Warnf("TemplateDeactivated for unknown template %s at block %d", ev.TemplateID, lg.BlockNumber)
		return nil
	}

	template.Active = false
	template.UpdatedAt = lg.BlockTimestamp

	return meddler.Update(tx, "job_templates", template)
}

func (p *Projector) applyJobCreatedFromTemplate(tx *sql.Tx, lg *indexer.Log, ev *events.JobCreatedFromTemplate) error {
	template, found, err := getTemplate(tx, ev.TemplateID)
	if err != nil {
		return err
	}
	if found {
		template.JobCount++
		template.UpdatedAt = lg.BlockTimestamp
		if err := meddler.Update(tx, "job_templates", template); err != nil {
			return err
		}
	} else {
		p.log.Warnf("JobCreatedFromTemplate for unknown template %s at block %d", ev.TemplateID, lg.BlockNumber)
	}

	job, found, err := getJob(tx, ev.JobID)
	if err != nil {
		return err
	}
	if !found {
		// JobCreated from the escrow contract may land later in the same
		// batch; the template link is then lost for this job, which the
		// audit trail still records.
		p.log.Warnf("JobCreatedFromTemplate for unknown job %s at block %d", ev.JobID.Hex(), lg.BlockNumber)
		return nil
	}

	job.TemplateID = ev.TemplateID
	job.UpdatedAt = lg.BlockTimestamp

	return meddler.Update(tx, "jobs", job)
}
