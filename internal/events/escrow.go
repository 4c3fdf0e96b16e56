// Package events defines typed records for every event emitted by the Aegis
// marketplace contracts and pure parsers that reconstruct them from raw logs.
//
// One descriptor and one parser exist per event kind. Parsers return false
// when the log does not carry the event; callers must treat absence as "this
// log is not that event", never as an error.
package events

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/aegis-protocol/aegis-indexer/internal/abiword"
)

// Escrow contract event descriptors.
var (
	EvJobCreated = abiword.Event{
		Name: "JobCreated",
		Params: []abiword.Param{
			{Name: "jobId", Type: abiword.Bytes32, Indexed: true},
			{Name: "clientAgentId", Type: abiword.Uint256, Indexed: true},
			{Name: "providerAgentId", Type: abiword.Uint256, Indexed: true},
			{Name: "amount", Type: abiword.Uint256},
			{Name: "validatorAddress", Type: abiword.Address},
			{Name: "deadline", Type: abiword.Uint64},
		},
	}

	EvJobFunded = abiword.Event{
		Name: "JobFunded",
		Params: []abiword.Param{
			{Name: "jobId", Type: abiword.Bytes32, Indexed: true},
			{Name: "amount", Type: abiword.Uint256},
		},
	}

	EvDeliverableSubmitted = abiword.Event{
		Name: "DeliverableSubmitted",
		Params: []abiword.Param{
			{Name: "jobId", Type: abiword.Bytes32, Indexed: true},
			{Name: "deliverableURI", Type: abiword.String},
			{Name: "deliverableHash", Type: abiword.Bytes32},
			{Name: "validationRequestHash", Type: abiword.Bytes32},
		},
	}

	EvValidationReceived = abiword.Event{
		Name: "ValidationReceived",
		Params: []abiword.Param{
			{Name: "jobId", Type: abiword.Bytes32, Indexed: true},
			{Name: "score", Type: abiword.Uint8},
			{Name: "passedThreshold", Type: abiword.Bool},
		},
	}

	EvJobSettled = abiword.Event{
		Name: "JobSettled",
		Params: []abiword.Param{
			{Name: "jobId", Type: abiword.Bytes32, Indexed: true},
			{Name: "providerWallet", Type: abiword.Address, Indexed: true},
			{Name: "providerAmount", Type: abiword.Uint256},
			{Name: "protocolFee", Type: abiword.Uint256},
		},
	}

	EvJobRefunded = abiword.Event{
		Name: "JobRefunded",
		Params: []abiword.Param{
			{Name: "jobId", Type: abiword.Bytes32, Indexed: true},
			{Name: "clientAddress", Type: abiword.Address, Indexed: true},
			{Name: "amount", Type: abiword.Uint256},
		},
	}

	EvJobCancelled = abiword.Event{
		Name: "JobCancelled",
		Params: []abiword.Param{
			{Name: "jobId", Type: abiword.Bytes32, Indexed: true},
		},
	}

	EvDisputeRaised = abiword.Event{
		Name: "DisputeRaised",
		Params: []abiword.Param{
			{Name: "jobId", Type: abiword.Bytes32, Indexed: true},
			{Name: "initiator", Type: abiword.Address, Indexed: true},
		},
	}

	EvClientConfirmed = abiword.Event{
		Name: "ClientConfirmed",
		Params: []abiword.Param{
			{Name: "jobId", Type: abiword.Bytes32, Indexed: true},
		},
	}

	EvDisputeWindowStarted = abiword.Event{
		Name: "DisputeWindowStarted",
		Params: []abiword.Param{
			{Name: "jobId", Type: abiword.Bytes32, Indexed: true},
			{Name: "windowEnd", Type: abiword.Uint64},
		},
	}

	EvFeedbackSubmitted = abiword.Event{
		Name: "FeedbackSubmitted",
		Params: []abiword.Param{
			{Name: "jobId", Type: abiword.Bytes32, Indexed: true},
			{Name: "agentId", Type: abiword.Uint256, Indexed: true},
			{Name: "value", Type: abiword.Int128},
		},
	}

	EvProtocolFeeUpdated = abiword.Event{
		Name: "ProtocolFeeUpdated",
		Params: []abiword.Param{
			{Name: "oldFee", Type: abiword.Uint256},
			{Name: "newFee", Type: abiword.Uint256},
		},
	}

	EvDisputeWindowUpdated = abiword.Event{
		Name: "DisputeWindowUpdated",
		Params: []abiword.Param{
			{Name: "oldWindow", Type: abiword.Uint64},
			{Name: "newWindow", Type: abiword.Uint64},
		},
	}

	EvTreasuryUpdated = abiword.Event{
		Name: "TreasuryUpdated",
		Params: []abiword.Param{
			{Name: "oldTreasury", Type: abiword.Address},
			{Name: "newTreasury", Type: abiword.Address},
		},
	}

	EvDisputeContractUpdated = abiword.Event{
		Name: "DisputeContractUpdated",
		Params: []abiword.Param{
			{Name: "oldDispute", Type: abiword.Address},
			{Name: "newDispute", Type: abiword.Address},
		},
	}

	EvAuthorizedCallerUpdated = abiword.Event{
		Name: "AuthorizedCallerUpdated",
		Params: []abiword.Param{
			{Name: "caller", Type: abiword.Address, Indexed: true},
			{Name: "authorized", Type: abiword.Bool},
		},
	}
)

// JobCreated is emitted when a job is created and funded atomically.
type JobCreated struct {
	JobID            common.Hash    `json:"jobId"`
	ClientAgentID    *big.Int       `json:"clientAgentId"`
	ProviderAgentID  *big.Int       `json:"providerAgentId"`
	Amount           *big.Int       `json:"amount"`
	ValidatorAddress common.Address `json:"validatorAddress"`
	Deadline         uint64         `json:"deadline"`
}

func (*JobCreated) Kind() Kind { return KindJobCreated }

type JobFunded struct {
	JobID  common.Hash `json:"jobId"`
	Amount *big.Int    `json:"amount"`
}

func (*JobFunded) Kind() Kind { return KindJobFunded }

type DeliverableSubmitted struct {
	JobID                 common.Hash `json:"jobId"`
	DeliverableURI        string      `json:"deliverableURI"`
	DeliverableHash       common.Hash `json:"deliverableHash"`
	ValidationRequestHash common.Hash `json:"validationRequestHash"`
}

func (*DeliverableSubmitted) Kind() Kind { return KindDeliverableSubmitted }

type ValidationReceived struct {
	JobID           common.Hash `json:"jobId"`
	Score           uint8       `json:"score"`
	PassedThreshold bool        `json:"passedThreshold"`
}

func (*ValidationReceived) Kind() Kind { return KindValidationReceived }

type JobSettled struct {
	JobID          common.Hash    `json:"jobId"`
	ProviderWallet common.Address `json:"providerWallet"`
	ProviderAmount *big.Int       `json:"providerAmount"`
	ProtocolFee    *big.Int       `json:"protocolFee"`
}

func (*JobSettled) Kind() Kind { return KindJobSettled }

type JobRefunded struct {
	JobID         common.Hash    `json:"jobId"`
	ClientAddress common.Address `json:"clientAddress"`
	Amount        *big.Int       `json:"amount"`
}

func (*JobRefunded) Kind() Kind { return KindJobRefunded }

type JobCancelled struct {
	JobID common.Hash `json:"jobId"`
}

func (*JobCancelled) Kind() Kind { return KindJobCancelled }

type DisputeRaised struct {
	JobID     common.Hash    `json:"jobId"`
	Initiator common.Address `json:"initiator"`
}

func (*DisputeRaised) Kind() Kind { return KindDisputeRaised }

type ClientConfirmed struct {
	JobID common.Hash `json:"jobId"`
}

func (*ClientConfirmed) Kind() Kind { return KindClientConfirmed }

type DisputeWindowStarted struct {
	JobID     common.Hash `json:"jobId"`
	WindowEnd uint64      `json:"windowEnd"`
}

func (*DisputeWindowStarted) Kind() Kind { return KindDisputeWindowStarted }

// FeedbackSubmitted carries a signed reputation delta for an agent.
type FeedbackSubmitted struct {
	JobID   common.Hash `json:"jobId"`
	AgentID *big.Int    `json:"agentId"`
	Value   *big.Int    `json:"value"`
}

func (*FeedbackSubmitted) Kind() Kind { return KindFeedbackSubmitted }

type ProtocolFeeUpdated struct {
	OldFee *big.Int `json:"oldFee"`
	NewFee *big.Int `json:"newFee"`
}

func (*ProtocolFeeUpdated) Kind() Kind { return KindProtocolFeeUpdated }

type DisputeWindowUpdated struct {
	OldWindow uint64 `json:"oldWindow"`
	NewWindow uint64 `json:"newWindow"`
}

func (*DisputeWindowUpdated) Kind() Kind { return KindDisputeWindowUpdated }

type TreasuryUpdated struct {
	OldTreasury common.Address `json:"oldTreasury"`
	NewTreasury common.Address `json:"newTreasury"`
}

func (*TreasuryUpdated) Kind() Kind { return KindTreasuryUpdated }

type DisputeContractUpdated struct {
	OldDispute common.Address `json:"oldDispute"`
	NewDispute common.Address `json:"newDispute"`
}

func (*DisputeContractUpdated) Kind() Kind { return KindDisputeContractUpdated }

type AuthorizedCallerUpdated struct {
	Caller     common.Address `json:"caller"`
	Authorized bool           `json:"authorized"`
}

func (*AuthorizedCallerUpdated) Kind() Kind { return KindAuthorizedCallerUpdated }

func ParseJobCreated(lg *types.Log) (*JobCreated, bool) {
	d, err := EvJobCreated.DecodeLog(lg)
	if err != nil {
		return nil, false
	}
	return &JobCreated{
		JobID:            d.Hash("jobId"),
		ClientAgentID:    d.BigInt("clientAgentId"),
		ProviderAgentID:  d.BigInt("providerAgentId"),
		Amount:           d.BigInt("amount"),
		ValidatorAddress: d.Addr("validatorAddress"),
		Deadline:         d.Uint64("deadline"),
	}, true
}

func ParseJobFunded(lg *types.Log) (*JobFunded, bool) {
	d, err := EvJobFunded.DecodeLog(lg)
	if err != nil {
		return nil, false
	}
	return &JobFunded{
		JobID:  d.Hash("jobId"),
		Amount: d.BigInt("amount"),
	}, true
}

func ParseDeliverableSubmitted(lg *types.Log) (*DeliverableSubmitted, bool) {
	d, err := EvDeliverableSubmitted.DecodeLog(lg)
	if err != nil {
		return nil, false
	}
	return &DeliverableSubmitted{
		JobID:                 d.Hash("jobId"),
		DeliverableURI:        d.String("deliverableURI"),
		DeliverableHash:       d.Hash("deliverableHash"),
		ValidationRequestHash: d.Hash("validationRequestHash"),
	}, true
}

func ParseValidationReceived(lg *types.Log) (*ValidationReceived, bool) {
	d, err := EvValidationReceived.DecodeLog(lg)
	if err != nil {
		return nil, false
	}
	return &ValidationReceived{
		JobID:           d.Hash("jobId"),
		Score:           d.Uint8("score"),
		PassedThreshold: d.Bool("passedThreshold"),
	}, true
}

func ParseJobSettled(lg *types.Log) (*JobSettled, bool) {
	d, err := EvJobSettled.DecodeLog(lg)
	if err != nil {
		return nil, false
	}
	return &JobSettled{
		JobID:          d.Hash("jobId"),
		ProviderWallet: d.Addr("providerWallet"),
		ProviderAmount: d.BigInt("providerAmount"),
		ProtocolFee:    d.BigInt("protocolFee"),
	}, true
}

func ParseJobRefunded(lg *types.Log) (*JobRefunded, bool) {
	d, err := EvJobRefunded.DecodeLog(lg)
	if err != nil {
		return nil, false
	}
	return &JobRefunded{
		JobID:         d.Hash("jobId"),
		ClientAddress: d.Addr("clientAddress"),
		Amount:        d.BigInt("amount"),
	}, true
}

func ParseJobCancelled(lg *types.Log) (*JobCancelled, bool) {
	d, err := EvJobCancelled.DecodeLog(lg)
	if err != nil {
		return nil, false
	}
	return &JobCancelled{JobID: d.Hash("jobId")}, true
}

func ParseDisputeRaised(lg *types.Log) (*DisputeRaised, bool) {
	d, err := EvDisputeRaised.DecodeLog(lg)
	if err != nil {
		return nil, false
	}
	return &DisputeRaised{
		JobID:     d.Hash("jobId"),
		Initiator: d.Addr("initiator"),
	}, true
}

func ParseClientConfirmed(lg *types.Log) (*ClientConfirmed, bool) {
	d, err := EvClientConfirmed.DecodeLog(lg)
	if err != nil {
		return nil, false
	}
	return &ClientConfirmed{JobID: d.Hash("jobId")}, true
}

func ParseDisputeWindowStarted(lg *types.Log) (*DisputeWindowStarted, bool) {
	d, err := EvDisputeWindowStarted.DecodeLog(lg)
	if err != nil {
		return nil, false
	}
	return &DisputeWindowStarted{
		JobID:     d.Hash("jobId"),
		WindowEnd: d.Uint64("windowEnd"),
	}, true
}

func ParseFeedbackSubmitted(lg *types.Log) (*FeedbackSubmitted, bool) {
	d, err := EvFeedbackSubmitted.DecodeLog(lg)
	if err != nil {
		return nil, false
	}
	return &FeedbackSubmitted{
		JobID:   d.Hash("jobId"),
		AgentID: d.BigInt("agentId"),
		Value:   d.BigInt("value"),
	}, true
}

func ParseProtocolFeeUpdated(lg *types.Log) (*ProtocolFeeUpdated, bool) {
	d, err := EvProtocolFeeUpdated.DecodeLog(lg)
	if err != nil {
		return nil, false
	}
	return &ProtocolFeeUpdated{
		OldFee: d.BigInt("oldFee"),
		NewFee: d.BigInt("newFee"),
	}, true
}

func ParseDisputeWindowUpdated(lg *types.Log) (*DisputeWindowUpdated, bool) {
	d, err := EvDisputeWindowUpdated.DecodeLog(lg)
	if err != nil {
		return nil, false
	}
	return &DisputeWindowUpdated{
		OldWindow: d.Uint64("oldWindow"),
		NewWindow: d.Uint64("newWindow"),
	}, true
}

func ParseTreasuryUpdated(lg *types.Log) (*TreasuryUpdated, bool) {
	d, err := EvTreasuryUpdated.DecodeLog(lg)
	if err != nil {
		return nil, false
	}
	return &TreasuryUpdated{
		OldTreasury: d.Addr("oldTreasury"),
		NewTreasury: d.Addr("newTreasury"),
	}, true
}

func ParseDisputeContractUpdated(lg *types.Log) (*DisputeContractUpdated, bool) {
	d, err := EvDisputeContractUpdated.DecodeLog(lg)
	if err != nil {
		return nil, false
	}
	return &DisputeContractUpdated{
		OldDispute: d.Addr("oldDispute"),
		NewDispute: d.Addr("newDispute"),
	}, true
}

func ParseAuthorizedCallerUpdated(lg *types.Log) (*AuthorizedCallerUpdated, bool) {
	d, err := EvAuthorizedCallerUpdated.DecodeLog(lg)
	if err != nil {
		return nil, false
	}
	return &AuthorizedCallerUpdated{
		Caller:     d.Addr("caller"),
		Authorized: d.Bool("authorized"),
	}, true
}
