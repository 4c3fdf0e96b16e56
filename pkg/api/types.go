package api

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/aegis-protocol/aegis-indexer/internal/projector"
)

// JobResponse is the API view of a projected job.
type JobResponse struct {
	JobID            string `json:"job_id"`
	ClientAgentID    string `json:"client_agent_id"`
	ProviderAgentID  string `json:"provider_agent_id"`
	Amount           string `json:"amount"`
	ValidatorAddress string `json:"validator_address"`
	Deadline         uint64 `json:"deadline"`

	State      string `json:"state"`
	Resolution string `json:"resolution"`

	DeliverableURI        string `json:"deliverable_uri,omitempty"`
	DeliverableHash       string `json:"deliverable_hash,omitempty"`
	ValidationRequestHash string `json:"validation_request_hash,omitempty"`
	LastValidationScore   uint8  `json:"last_validation_score"`
	LastValidationPassed  bool   `json:"last_validation_passed"`

	ClientAddress  string `json:"client_address,omitempty"`
	ProviderWallet string `json:"provider_wallet,omitempty"`
	ProviderAmount string `json:"provider_amount,omitempty"`
	ProtocolFee    string `json:"protocol_fee,omitempty"`
	RefundAmount   string `json:"refund_amount,omitempty"`

	DisputeWindowEnd uint64 `json:"dispute_window_end,omitempty"`
	TemplateID       string `json:"template_id,omitempty"`

	CreatedBlock uint64 `json:"created_block"`
	CreatedAt    uint64 `json:"created_at"`
	DeliveredAt  uint64 `json:"delivered_at,omitempty"`
	SettledAt    uint64 `json:"settled_at,omitempty"`
	UpdatedAt    uint64 `json:"updated_at"`
}

// DisputeResponse is the API view of a projected dispute.
type DisputeResponse struct {
	DisputeID string `json:"dispute_id"`
	JobID     string `json:"job_id"`
	Initiator string `json:"initiator"`

	Arbitrator string `json:"arbitrator,omitempty"`

	InitiatorEvidenceURI  string `json:"initiator_evidence_uri,omitempty"`
	RespondentEvidenceURI string `json:"respondent_evidence_uri,omitempty"`
	NewValidationHash     string `json:"new_validation_hash,omitempty"`

	Resolved      bool   `json:"resolved"`
	Method        string `json:"method"`
	ClientPercent uint8  `json:"client_percent"`

	CreatedBlock uint64 `json:"created_block"`
	CreatedAt    uint64 `json:"created_at"`
	ResolvedAt   uint64 `json:"resolved_at,omitempty"`
}

// TemplateResponse is the API view of a projected job template.
type TemplateResponse struct {
	TemplateID       string `json:"template_id"`
	Creator          string `json:"creator"`
	Name             string `json:"name"`
	DefaultValidator string `json:"default_validator"`
	DefaultTimeout   uint64 `json:"default_timeout"`
	MinValidation    uint8  `json:"min_validation"`
	Active           bool   `json:"active"`
	JobCount         uint64 `json:"job_count"`
	CreatedAt        uint64 `json:"created_at"`
}

// ArbitratorResponse is the API view of a projected arbitrator.
type ArbitratorResponse struct {
	Address          string `json:"address"`
	Staked           string `json:"staked"`
	TotalSlashed     string `json:"total_slashed"`
	DisputesAssigned uint64 `json:"disputes_assigned"`
	DisputesResolved uint64 `json:"disputes_resolved"`
	FirstStakedAt    uint64 `json:"first_staked_at,omitempty"`
}

// AgentReputationResponse is the API view of an agent's feedback aggregate.
type AgentReputationResponse struct {
	AgentID       string `json:"agent_id"`
	Score         string `json:"score"`
	FeedbackCount uint64 `json:"feedback_count"`
}

// StatsResponse is the API view of the protocol-wide aggregates.
type StatsResponse struct {
	TotalJobs     uint64 `json:"total_jobs"`
	TotalSettled  uint64 `json:"total_settled"`
	TotalRefunded uint64 `json:"total_refunded"`
	TotalDisputed uint64 `json:"total_disputed"`

	TotalVolume        string `json:"total_volume"`
	TotalFeesCollected string `json:"total_fees_collected"`
	TotalRefundAmount  string `json:"total_refund_amount"`

	ActiveArbitrators uint64 `json:"active_arbitrators"`
	TotalStaked       string `json:"total_staked"`
	TotalTemplates    uint64 `json:"total_templates"`
}

// DailyStatsResponse is one day of aggregate activity.
type DailyStatsResponse struct {
	Day           uint64 `json:"day"`
	Date          string `json:"date"`
	JobsCreated   uint64 `json:"jobs_created"`
	JobsSettled   uint64 `json:"jobs_settled"`
	JobsDisputed  uint64 `json:"jobs_disputed"`
	JobsRefunded  uint64 `json:"jobs_refunded"`
	Volume        string `json:"volume"`
	FeesCollected string `json:"fees_collected"`
}

// AuditEventResponse is one decoded event from the audit trail.
type AuditEventResponse struct {
	EventID        string `json:"event_id"`
	BlockNumber    uint64 `json:"block_number"`
	BlockTimestamp uint64 `json:"block_timestamp"`
	TxHash         string `json:"tx_hash"`
	LogIndex       uint   `json:"log_index"`
	Address        string `json:"address"`
	Kind           string `json:"kind"`
	Payload        string `json:"payload"`
}

// ListResponse wraps a paginated collection.
type ListResponse struct {
	Items      interface{}      `json:"items"`
	Pagination PaginationResult `json:"pagination"`
}

// PaginationResult contains pagination metadata.
type PaginationResult struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
	LastBlock      uint64    `json:"last_block"`
	AuditEventRows int64     `json:"audit_event_rows"`
}

func bigString(v *big.Int) string {
	if v == nil {
		return "0"
	}

	return v.String()
}

func addrString(a *common.Address) string {
	if a == nil {
		return ""
	}

	return a.Hex()
}

func toJobResponse(job *projector.Job) JobResponse {
	return JobResponse{
		JobID:                 job.JobID.Hex(),
		ClientAgentID:         bigString(job.ClientAgentID),
		ProviderAgentID:       bigString(job.ProviderAgentID),
		Amount:                bigString(job.Amount),
		ValidatorAddress:      job.Validator.Hex(),
		Deadline:              job.Deadline,
		State:                 projector.JobStateLabel(job.State),
		Resolution:            projector.ResolutionLabel(job.Resolution),
		DeliverableURI:        job.DeliverableURI,
		DeliverableHash:       job.DeliverableHash.Hex(),
		ValidationRequestHash: job.ValidationRequestHash.Hex(),
		LastValidationScore:   job.LastValidationScore,
		LastValidationPassed:  job.LastValidationPassed,
		ClientAddress:         addrString(job.ClientAddress),
		ProviderWallet:        addrString(job.ProviderWallet),
		ProviderAmount:        bigString(job.ProviderAmount),
		ProtocolFee:           bigString(job.ProtocolFee),
		RefundAmount:          bigString(job.RefundAmount),
		DisputeWindowEnd:      job.DisputeWindowEnd,
		TemplateID:            bigString(job.TemplateID),
		CreatedBlock:          job.CreatedBlock,
		CreatedAt:             job.CreatedAt,
		DeliveredAt:           job.DeliveredAt,
		SettledAt:             job.SettledAt,
		UpdatedAt:             job.UpdatedAt,
	}
}

func toDisputeResponse(dispute *projector.Dispute) DisputeResponse {
	return DisputeResponse{
		DisputeID:             dispute.DisputeID.Hex(),
		JobID:                 dispute.JobID.Hex(),
		Initiator:             dispute.Initiator.Hex(),
		Arbitrator:            addrString(dispute.Arbitrator),
		InitiatorEvidenceURI:  dispute.InitiatorEvidenceURI,
		RespondentEvidenceURI: dispute.RespondentEvidenceURI,
		NewValidationHash:     dispute.NewValidationHash.Hex(),
		Resolved:              dispute.Resolved,
		Method:                projector.ResolutionLabel(dispute.Method),
		ClientPercent:         dispute.ClientPercent,
		CreatedBlock:          dispute.CreatedBlock,
		CreatedAt:             dispute.CreatedAt,
		ResolvedAt:            dispute.ResolvedAt,
	}
}

func toTemplateResponse(template *projector.JobTemplate) TemplateResponse {
	return TemplateResponse{
		TemplateID:       bigString(template.TemplateID),
		Creator:          template.Creator.Hex(),
		Name:             template.Name,
		DefaultValidator: template.DefaultValidator.Hex(),
		DefaultTimeout:   template.DefaultTimeout,
		MinValidation:    template.MinValidation,
		Active:           template.Active,
		JobCount:         template.JobCount,
		CreatedAt:        template.CreatedAt,
	}
}

func toArbitratorResponse(arb *projector.Arbitrator) ArbitratorResponse {
	return ArbitratorResponse{
		Address:          arb.Address.Hex(),
		Staked:           bigString(arb.Staked),
		TotalSlashed:     bigString(arb.TotalSlashed),
		DisputesAssigned: arb.DisputesAssigned,
		DisputesResolved: arb.DisputesResolved,
		FirstStakedAt:    arb.FirstStakedAt,
	}
}

func toAgentReputationResponse(agent *projector.AgentReputation) AgentReputationResponse {
	return AgentReputationResponse{
		AgentID:       bigString(agent.AgentID),
		Score:         bigString(agent.Score),
		FeedbackCount: agent.FeedbackCount,
	}
}

func toStatsResponse(stats *projector.ProtocolStats) StatsResponse {
	return StatsResponse{
		TotalJobs:          stats.TotalJobs,
		TotalSettled:       stats.TotalSettled,
		TotalRefunded:      stats.TotalRefunded,
		TotalDisputed:      stats.TotalDisputed,
		TotalVolume:        bigString(stats.TotalVolume),
		TotalFeesCollected: bigString(stats.TotalFeesCollected),
		TotalRefundAmount:  bigString(stats.TotalRefundAmount),
		ActiveArbitrators:  stats.ActiveArbitrators,
		TotalStaked:        bigString(stats.TotalStaked),
		TotalTemplates:     stats.TotalTemplates,
	}
}

func toDailyStatsResponse(daily *projector.DailyStats) DailyStatsResponse {
	return DailyStatsResponse{
		Day:           daily.Day,
		Date:          time.Unix(int64(daily.Day*86400), 0).UTC().Format("2006-01-02"),
		JobsCreated:   daily.JobsCreated,
		JobsSettled:   daily.JobsSettled,
		JobsDisputed:  daily.JobsDisputed,
		JobsRefunded:  daily.JobsRefunded,
		Volume:        bigString(daily.Volume),
		FeesCollected: bigString(daily.FeesCollected),
	}
}

func toAuditEventResponse(ev *projector.AuditEvent) AuditEventResponse {
	return AuditEventResponse{
		EventID:        ev.EventID,
		BlockNumber:    ev.BlockNumber,
		BlockTimestamp: ev.BlockTimestamp,
		TxHash:         ev.TxHash.Hex(),
		LogIndex:       ev.LogIndex,
		Address:        ev.Address.Hex(),
		Kind:           ev.Kind,
		Payload:        ev.Payload,
	}
}
