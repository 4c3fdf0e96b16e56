package projector

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Job state machine values.
const (
	JobStateCreated       uint8 = 0
	JobStateFunded        uint8 = 1
	JobStateDelivered     uint8 = 2
	JobStateValidating    uint8 = 3
	JobStateDisputeWindow uint8 = 4
	JobStateSettled       uint8 = 5
	JobStateDisputed      uint8 = 6
	JobStateResolved      uint8 = 7
	JobStateExpired       uint8 = 8
	JobStateRefunded      uint8 = 9
	JobStateCancelled     uint8 = 10
)

// Dispute resolution methods.
const (
	ResolutionNone           uint8 = 0
	ResolutionReValidation   uint8 = 1
	ResolutionArbitrator     uint8 = 2
	ResolutionTimeoutDefault uint8 = 3
	ResolutionClientConfirm  uint8 = 4
)

// Job is the projected state of one escrowed job.
type Job struct {
	ID              int64          `meddler:"id,pk"`
	JobID           common.Hash    `meddler:"job_id,hash"`
	ClientAgentID   *big.Int       `meddler:"client_agent_id,bigint"`
	ProviderAgentID *big.Int       `meddler:"provider_agent_id,bigint"`
	Amount          *big.Int       `meddler:"amount,bigint"`
	Validator       common.Address `meddler:"validator_address,address"`
	Deadline        uint64         `meddler:"deadline"`

	State      uint8 `meddler:"state"`
	Resolution uint8 `meddler:"resolution"`

	DeliverableURI        string      `meddler:"deliverable_uri"`
	DeliverableHash       common.Hash `meddler:"deliverable_hash,hash"`
	ValidationRequestHash common.Hash `meddler:"validation_request_hash,hash"`
	LastValidationScore   uint8       `meddler:"last_validation_score"`
	LastValidationPassed  bool        `meddler:"last_validation_passed"`

	// ClientAddress is the client's wallet. The raw log feed has no
	// transaction sender, so it is filled from events that carry it.
	ClientAddress *common.Address `meddler:"client_address,address"`

	ProviderWallet *common.Address `meddler:"provider_wallet,address"`
	ProviderAmount *big.Int        `meddler:"provider_amount,bigint"`
	ProtocolFee    *big.Int        `meddler:"protocol_fee,bigint"`
	RefundAmount   *big.Int        `meddler:"refund_amount,bigint"`

	DisputeWindowEnd uint64   `meddler:"dispute_window_end"`
	TemplateID       *big.Int `meddler:"template_id,bigint"`

	CreatedBlock uint64 `meddler:"created_block"`
	CreatedAt    uint64 `meddler:"created_at"`
	DeliveredAt  uint64 `meddler:"delivered_at"`
	SettledAt    uint64 `meddler:"settled_at"`
	UpdatedAt    uint64 `meddler:"updated_at"`
}

// Dispute is the projected state of one dispute case.
type Dispute struct {
	ID        int64          `meddler:"id,pk"`
	DisputeID common.Hash    `meddler:"dispute_id,hash"`
	JobID     common.Hash    `meddler:"job_id,hash"`
	Initiator common.Address `meddler:"initiator,address"`

	Arbitrator *common.Address `meddler:"arbitrator,address"`

	InitiatorEvidenceURI  string      `meddler:"initiator_evidence_uri"`
	RespondentEvidenceURI string      `meddler:"respondent_evidence_uri"`
	NewValidationHash     common.Hash `meddler:"new_validation_hash,hash"`

	Resolved      bool  `meddler:"resolved"`
	Method        uint8 `meddler:"method"`
	ClientPercent uint8 `meddler:"client_percent"`

	CreatedBlock uint64 `meddler:"created_block"`
	CreatedAt    uint64 `meddler:"created_at"`
	ResolvedAt   uint64 `meddler:"resolved_at"`
	UpdatedAt    uint64 `meddler:"updated_at"`
}

// JobTemplate is the projected state of one reusable job template.
type JobTemplate struct {
	ID               int64          `meddler:"id,pk"`
	TemplateID       *big.Int       `meddler:"template_id,bigint"`
	Creator          common.Address `meddler:"creator,address"`
	Name             string         `meddler:"name"`
	DefaultValidator common.Address `meddler:"default_validator,address"`
	DefaultTimeout   uint64         `meddler:"default_timeout"`
	MinValidation    uint8          `meddler:"min_validation"`
	Active           bool           `meddler:"active"`
	JobCount         uint64         `meddler:"job_count"`

	CreatedBlock uint64 `meddler:"created_block"`
	CreatedAt    uint64 `meddler:"created_at"`
	UpdatedAt    uint64 `meddler:"updated_at"`
}

// Arbitrator tracks one arbitrator's stake and case history.
type Arbitrator struct {
	ID      int64          `meddler:"id,pk"`
	Address common.Address `meddler:"address,address"`

	Staked           *big.Int `meddler:"staked,bigint"`
	TotalSlashed     *big.Int `meddler:"total_slashed,bigint"`
	DisputesAssigned uint64   `meddler:"disputes_assigned"`
	DisputesResolved uint64   `meddler:"disputes_resolved"`

	FirstStakedAt uint64 `meddler:"first_staked_at"`
	UpdatedAt     uint64 `meddler:"updated_at"`
}

// AgentReputation accumulates signed feedback deltas per marketplace agent.
type AgentReputation struct {
	ID            int64    `meddler:"id,pk"`
	AgentID       *big.Int `meddler:"agent_id,bigint"`
	Score         *big.Int `meddler:"score,bigint"`
	FeedbackCount uint64   `meddler:"feedback_count"`
	UpdatedAt     uint64   `meddler:"updated_at"`
}

// ProtocolStats is the protocol-wide aggregate row. Exactly one row exists.
type ProtocolStats struct {
	ID int64 `meddler:"id,pk"`

	TotalJobs     uint64 `meddler:"total_jobs"`
	TotalSettled  uint64 `meddler:"total_settled"`
	TotalRefunded uint64 `meddler:"total_refunded"`
	TotalDisputed uint64 `meddler:"total_disputed"`

	TotalVolume        *big.Int `meddler:"total_volume,bigint"`
	TotalFeesCollected *big.Int `meddler:"total_fees_collected,bigint"`
	TotalRefundAmount  *big.Int `meddler:"total_refund_amount,bigint"`

	ActiveArbitrators uint64   `meddler:"active_arbitrators"`
	TotalStaked       *big.Int `meddler:"total_staked,bigint"`

	TotalTemplates uint64 `meddler:"total_templates"`

	UpdatedAt uint64 `meddler:"updated_at"`
}

// DailyStats is the per-day aggregate row, keyed by unix day (timestamp / 86400).
type DailyStats struct {
	ID  int64  `meddler:"id,pk"`
	Day uint64 `meddler:"day"`

	JobsCreated   uint64   `meddler:"jobs_created"`
	JobsSettled   uint64   `meddler:"jobs_settled"`
	JobsDisputed  uint64   `meddler:"jobs_disputed"`
	JobsRefunded  uint64   `meddler:"jobs_refunded"`
	Volume        *big.Int `meddler:"volume,bigint"`
	FeesCollected *big.Int `meddler:"fees_collected,bigint"`

	UpdatedAt uint64 `meddler:"updated_at"`
}

// AuditEvent is one immutable decoded-event record. EventID is the
// txHash-logIndex identity that makes redelivered logs idempotent.
type AuditEvent struct {
	ID             int64          `meddler:"id,pk"`
	EventID        string         `meddler:"event_id"`
	BlockNumber    uint64         `meddler:"block_number"`
	BlockTimestamp uint64         `meddler:"block_timestamp"`
	TxHash         common.Hash    `meddler:"tx_hash,hash"`
	LogIndex       uint           `meddler:"log_index"`
	Address        common.Address `meddler:"address,address"`
	Kind           string         `meddler:"kind"`
	Payload        string         `meddler:"payload"`
}

// JobStateLabel returns the canonical display label for a job state.
func JobStateLabel(state uint8) string {
	switch state {
	case JobStateCreated:
		return "CREATED"
	case JobStateFunded:
		return "FUNDED"
	case JobStateDelivered:
		return "DELIVERED"
	case JobStateValidating:
		return "VALIDATING"
	case JobStateDisputeWindow:
		return "DISPUTE_WINDOW"
	case JobStateSettled:
		return "SETTLED"
	case JobStateDisputed:
		return "DISPUTED"
	case JobStateResolved:
		return "RESOLVED"
	case JobStateExpired:
		return "EXPIRED"
	case JobStateRefunded:
		return "REFUNDED"
	case JobStateCancelled:
		return "CANCELLED"
	default:
		return "UNKNOWN"
	}
}

// ResolutionLabel returns the canonical display label for a resolution method.
func ResolutionLabel(method uint8) string {
	switch method {
	case ResolutionNone:
		return "NONE"
	case ResolutionReValidation:
		return "RE_VALIDATION"
	case ResolutionArbitrator:
		return "ARBITRATOR"
	case ResolutionTimeoutDefault:
		return "TIMEOUT_DEFAULT"
	case ResolutionClientConfirm:
		return "CLIENT_CONFIRM"
	default:
		return "UNKNOWN"
	}
}
