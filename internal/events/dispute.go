package events

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/aegis-protocol/aegis-indexer/internal/abiword"
)

// Dispute contract event descriptors.
var (
	EvDisputeInitiated = abiword.Event{
		Name: "DisputeInitiated",
		Params: []abiword.Param{
			{Name: "disputeId", Type: abiword.Bytes32, Indexed: true},
			{Name: "jobId", Type: abiword.Bytes32, Indexed: true},
			{Name: "initiator", Type: abiword.Address, Indexed: true},
		},
	}

	EvEvidenceSubmitted = abiword.Event{
		Name: "EvidenceSubmitted",
		Params: []abiword.Param{
			{Name: "disputeId", Type: abiword.Bytes32, Indexed: true},
			{Name: "submitter", Type: abiword.Address, Indexed: true},
			{Name: "evidenceURI", Type: abiword.String},
		},
	}

	EvArbitratorAssigned = abiword.Event{
		Name: "ArbitratorAssigned",
		Params: []abiword.Param{
			{Name: "disputeId", Type: abiword.Bytes32, Indexed: true},
			{Name: "arbitrator", Type: abiword.Address, Indexed: true},
		},
	}

	EvDisputeResolved = abiword.Event{
		Name: "DisputeResolved",
		Params: []abiword.Param{
			{Name: "disputeId", Type: abiword.Bytes32, Indexed: true},
			{Name: "jobId", Type: abiword.Bytes32, Indexed: true},
			{Name: "clientPercent", Type: abiword.Uint8},
			{Name: "method", Type: abiword.Uint8},
		},
	}

	EvReValidationRequested = abiword.Event{
		Name: "ReValidationRequested",
		Params: []abiword.Param{
			{Name: "disputeId", Type: abiword.Bytes32, Indexed: true},
			{Name: "newValidationHash", Type: abiword.Bytes32},
		},
	}

	EvArbitratorStaked = abiword.Event{
		Name: "ArbitratorStaked",
		Params: []abiword.Param{
			{Name: "arbitrator", Type: abiword.Address, Indexed: true},
			{Name: "amount", Type: abiword.Uint256},
		},
	}

	EvArbitratorUnstaked = abiword.Event{
		Name: "ArbitratorUnstaked",
		Params: []abiword.Param{
			{Name: "arbitrator", Type: abiword.Address, Indexed: true},
			{Name: "amount", Type: abiword.Uint256},
		},
	}

	EvArbitratorSlashed = abiword.Event{
		Name: "ArbitratorSlashed",
		Params: []abiword.Param{
			{Name: "arbitrator", Type: abiword.Address, Indexed: true},
			{Name: "amount", Type: abiword.Uint256},
		},
	}

	EvBondReturned = abiword.Event{
		Name: "BondReturned",
		Params: []abiword.Param{
			{Name: "disputeId", Type: abiword.Bytes32, Indexed: true},
			{Name: "to", Type: abiword.Address, Indexed: true},
			{Name: "amount", Type: abiword.Uint256},
		},
	}

	EvBondForfeited = abiword.Event{
		Name: "BondForfeited",
		Params: []abiword.Param{
			{Name: "disputeId", Type: abiword.Bytes32, Indexed: true},
			{Name: "from", Type: abiword.Address, Indexed: true},
			{Name: "amount", Type: abiword.Uint256},
		},
	}
)

type DisputeInitiated struct {
	DisputeID common.Hash    `json:"disputeId"`
	JobID     common.Hash    `json:"jobId"`
	Initiator common.Address `json:"initiator"`
}

func (*DisputeInitiated) Kind() Kind { return KindDisputeInitiated }

type EvidenceSubmitted struct {
	DisputeID   common.Hash    `json:"disputeId"`
	Submitter   common.Address `json:"submitter"`
	EvidenceURI string         `json:"evidenceURI"`
}

func (*EvidenceSubmitted) Kind() Kind { return KindEvidenceSubmitted }

type ArbitratorAssigned struct {
	DisputeID  common.Hash    `json:"disputeId"`
	Arbitrator common.Address `json:"arbitrator"`
}

func (*ArbitratorAssigned) Kind() Kind { return KindArbitratorAssigned }

type DisputeResolved struct {
	DisputeID     common.Hash `json:"disputeId"`
	JobID         common.Hash `json:"jobId"`
	ClientPercent uint8       `json:"clientPercent"`
	Method        uint8       `json:"method"`
}

func (*DisputeResolved) Kind() Kind { return KindDisputeResolved }

type ReValidationRequested struct {
	DisputeID         common.Hash `json:"disputeId"`
	NewValidationHash common.Hash `json:"newValidationHash"`
}

func (*ReValidationRequested) Kind() Kind { return KindReValidationRequested }

type ArbitratorStaked struct {
	Arbitrator common.Address `json:"arbitrator"`
	Amount     *big.Int       `json:"amount"`
}

func (*ArbitratorStaked) Kind() Kind { return KindArbitratorStaked }

type ArbitratorUnstaked struct {
	Arbitrator common.Address `json:"arbitrator"`
	Amount     *big.Int       `json:"amount"`
}

func (*ArbitratorUnstaked) Kind() Kind { return KindArbitratorUnstaked }

type ArbitratorSlashed struct {
	Arbitrator common.Address `json:"arbitrator"`
	Amount     *big.Int       `json:"amount"`
}

func (*ArbitratorSlashed) Kind() Kind { return KindArbitratorSlashed }

type BondReturned struct {
	DisputeID common.Hash    `json:"disputeId"`
	To        common.Address `json:"to"`
	Amount    *big.Int       `json:"amount"`
}

func (*BondReturned) Kind() Kind { return KindBondReturned }

type BondForfeited struct {
	DisputeID common.Hash    `json:"disputeId"`
	From      common.Address `json:"from"`
	Amount    *big.Int       `json:"amount"`
}

func (*BondForfeited) Kind() Kind { return KindBondForfeited }

func ParseDisputeInitiated(lg *types.Log) (*DisputeInitiated, bool) {
	d, err := EvDisputeInitiated.DecodeLog(lg)
	if err != nil {
		return nil, false
	}
	return &DisputeInitiated{
		DisputeID: d.Hash("disputeId"),
		JobID:     d.Hash("jobId"),
		Initiator: d.Addr("initiator"),
	}, true
}

func ParseEvidenceSubmitted(lg *types.Log) (*EvidenceSubmitted, bool) {
	d, err := EvEvidenceSubmitted.DecodeLog(lg)
	if err != nil {
		return nil, false
	}
	return &EvidenceSubmitted{
		DisputeID:   d.Hash("disputeId"),
		Submitter:   d.Addr("submitter"),
		EvidenceURI: d.String("evidenceURI"),
	}, true
}

func ParseArbitratorAssigned(lg *types.Log) (*ArbitratorAssigned, bool) {
	d, err := EvArbitratorAssigned.DecodeLog(lg)
	if err != nil {
		return nil, false
	}
	return &ArbitratorAssigned{
		DisputeID:  d.Hash("disputeId"),
		Arbitrator: d.Addr("arbitrator"),
	}, true
}

func ParseDisputeResolved(lg *types.Log) (*DisputeResolved, bool) {
	d, err := EvDisputeResolved.DecodeLog(lg)
	if err != nil {
		return nil, false
	}
	return &DisputeResolved{
		DisputeID:     d.Hash("disputeId"),
		JobID:         d.Hash("jobId"),
		ClientPercent: d.Uint8("clientPercent"),
		Method:        d.Uint8("method"),
	}, true
}

func ParseReValidationRequested(lg *types.Log) (*ReValidationRequested, bool) {
	d, err := EvReValidationRequested.DecodeLog(lg)
	if err != nil {
		return nil, false
	}
	return &ReValidationRequested{
		DisputeID:         d.Hash("disputeId"),
		NewValidationHash: d.Hash("newValidationHash"),
	}, true
}

func ParseArbitratorStaked(lg *types.Log) (*ArbitratorStaked, bool) {
	d, err := EvArbitratorStaked.DecodeLog(lg)
	if err != nil {
		return nil, false
	}
	return &ArbitratorStaked{
		Arbitrator: d.Addr("arbitrator"),
		Amount:     d.BigInt("amount"),
	}, true
}

func ParseArbitratorUnstaked(lg *types.Log) (*ArbitratorUnstaked, bool) {
	d, err := EvArbitratorUnstaked.DecodeLog(lg)
	if err != nil {
		return nil, false
	}
	return &ArbitratorUnstaked{
		Arbitrator: d.Addr("arbitrator"),
		Amount:     d.BigInt("amount"),
	}, true
}

func ParseArbitratorSlashed(lg *types.Log) (*ArbitratorSlashed, bool) {
	d, err := EvArbitratorSlashed.DecodeLog(lg)
	if err != nil {
		return nil, false
	}
	return &ArbitratorSlashed{
		Arbitrator: d.Addr("arbitrator"),
		Amount:     d.BigInt("amount"),
	}, true
}

func ParseBondReturned(lg *types.Log) (*BondReturned, bool) {
	d, err := EvBondReturned.DecodeLog(lg)
	if err != nil {
		return nil, false
	}
	return &BondReturned{
		DisputeID: d.Hash("disputeId"),
		To:        d.Addr("to"),
		Amount:    d.BigInt("amount"),
	}, true
}

func ParseBondForfeited(lg *types.Log) (*BondForfeited, bool) {
	d, err := EvBondForfeited.DecodeLog(lg)
	if err != nil {
		return nil, false
	}
	return &BondForfeited{
		DisputeID: d.Hash("disputeId"),
		From:      d.Addr("from"),
		Amount:    d.BigInt("amount"),
	}, true
}
