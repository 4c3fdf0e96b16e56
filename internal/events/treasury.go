package events

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/aegis-protocol/aegis-indexer/internal/abiword"
)

// Treasury contract event descriptors.
var (
	EvFeeReceived = abiword.Event{
		Name: "FeeReceived",
		Params: []abiword.Param{
			{Name: "source", Type: abiword.Address, Indexed: true},
			{Name: "amount", Type: abiword.Uint256},
			{Name: "treasuryShare", Type: abiword.Uint256},
			{Name: "arbitratorShare", Type: abiword.Uint256},
		},
	}

	EvTreasuryWithdrawal = abiword.Event{
		Name: "TreasuryWithdrawal",
		Params: []abiword.Param{
			{Name: "to", Type: abiword.Address, Indexed: true},
			{Name: "amount", Type: abiword.Uint256},
		},
	}

	EvArbitratorRewardsDistributed = abiword.Event{
		Name: "ArbitratorRewardsDistributed",
		Params: []abiword.Param{
			{Name: "amount", Type: abiword.Uint256},
		},
	}

	EvSourceAuthorized = abiword.Event{
		Name: "SourceAuthorized",
		Params: []abiword.Param{
			{Name: "source", Type: abiword.Address, Indexed: true},
			{Name: "authorized", Type: abiword.Bool},
		},
	}

	EvArbitratorPoolBpsUpdated = abiword.Event{
		Name: "ArbitratorPoolBpsUpdated",
		Params: []abiword.Param{
			{Name: "oldBps", Type: abiword.Uint256},
			{Name: "newBps", Type: abiword.Uint256},
		},
	}
)

type FeeReceived struct {
	Source          common.Address `json:"source"`
	Amount          *big.Int       `json:"amount"`
	TreasuryShare   *big.Int       `json:"treasuryShare"`
	ArbitratorShare *big.Int       `json:"arbitratorShare"`
}

func (*FeeReceived) Kind() Kind { return KindFeeReceived }

type TreasuryWithdrawal struct {
	To     common.Address `json:"to"`
	Amount *big.Int       `json:"amount"`
}

func (*TreasuryWithdrawal) Kind() Kind { return KindTreasuryWithdrawal }

type ArbitratorRewardsDistributed struct {
	Amount *big.Int `json:"amount"`
}

func (*ArbitratorRewardsDistributed) Kind() Kind { return KindArbitratorRewardsDistributed }

type SourceAuthorized struct {
	Source     common.Address `json:"source"`
	Authorized bool           `json:"authorized"`
}

func (*SourceAuthorized) Kind() Kind { return KindSourceAuthorized }

type ArbitratorPoolBpsUpdated struct {
	OldBps *big.Int `json:"oldBps"`
	NewBps *big.Int `json:"newBps"`
}

func (*ArbitratorPoolBpsUpdated) Kind() Kind { return KindArbitratorPoolBpsUpdated }

func ParseFeeReceived(lg *types.Log) (*FeeReceived, bool) {
	d, err := EvFeeReceived.DecodeLog(lg)
	if err != nil {
		return nil, false
	}
	return &FeeReceived{
		Source:          d.Addr("source"),
		Amount:          d.BigInt("amount"),
		TreasuryShare:   d.BigInt("treasuryShare"),
		ArbitratorShare: d.BigInt("arbitratorShare"),
	}, true
}

func ParseTreasuryWithdrawal(lg *types.Log) (*TreasuryWithdrawal, bool) {
	d, err := EvTreasuryWithdrawal.DecodeLog(lg)
	if err != nil {
		return nil, false
	}
	return &TreasuryWithdrawal{
		To:     d.Addr("to"),
		Amount: d.BigInt("amount"),
	}, true
}

func ParseArbitratorRewardsDistributed(lg *types.Log) (*ArbitratorRewardsDistributed, bool) {
	d, err := EvArbitratorRewardsDistributed.DecodeLog(lg)
	if err != nil {
		return nil, false
	}
	return &ArbitratorRewardsDistributed{Amount: d.BigInt("amount")}, true
}

func ParseSourceAuthorized(lg *types.Log) (*SourceAuthorized, bool) {
	d, err := EvSourceAuthorized.DecodeLog(lg)
	if err != nil {
		return nil, false
	}
	return &SourceAuthorized{
		Source:     d.Addr("source"),
		Authorized: d.Bool("authorized"),
	}, true
}

func ParseArbitratorPoolBpsUpdated(lg *types.Log) (*ArbitratorPoolBpsUpdated, bool) {
	d, err := EvArbitratorPoolBpsUpdated.DecodeLog(lg)
	if err != nil {
		return nil, false
	}
	return &ArbitratorPoolBpsUpdated{
		OldBps: d.BigInt("oldBps"),
		NewBps: d.BigInt("newBps"),
	}, true
}
