package events

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/aegis-protocol/aegis-indexer/internal/abiword"
)

// Kind identifies one event shape emitted by the marketplace contracts.
type Kind string

const (
	KindJobCreated              Kind = "JobCreated"
	KindJobFunded               Kind = "JobFunded"
	KindDeliverableSubmitted    Kind = "DeliverableSubmitted"
	KindValidationReceived      Kind = "ValidationReceived"
	KindJobSettled              Kind = "JobSettled"
	KindJobRefunded             Kind = "JobRefunded"
	KindJobCancelled            Kind = "JobCancelled"
	KindDisputeRaised           Kind = "DisputeRaised"
	KindClientConfirmed         Kind = "ClientConfirmed"
	KindDisputeWindowStarted    Kind = "DisputeWindowStarted"
	KindFeedbackSubmitted       Kind = "FeedbackSubmitted"
	KindProtocolFeeUpdated      Kind = "ProtocolFeeUpdated"
	KindDisputeWindowUpdated    Kind = "DisputeWindowUpdated"
	KindTreasuryUpdated         Kind = "TreasuryUpdated"
	KindDisputeContractUpdated  Kind = "DisputeContractUpdated"
	KindAuthorizedCallerUpdated Kind = "AuthorizedCallerUpdated"

	KindDisputeInitiated      Kind = "DisputeInitiated"
	KindEvidenceSubmitted     Kind = "EvidenceSubmitted"
	KindArbitratorAssigned    Kind = "ArbitratorAssigned"
	KindDisputeResolved       Kind = "DisputeResolved"
	KindReValidationRequested Kind = "ReValidationRequested"
	KindArbitratorStaked      Kind = "ArbitratorStaked"
	KindArbitratorUnstaked    Kind = "ArbitratorUnstaked"
	KindArbitratorSlashed     Kind = "ArbitratorSlashed"
	KindBondReturned          Kind = "BondReturned"
	KindBondForfeited         Kind = "BondForfeited"

	KindTemplateCreated        Kind = "TemplateCreated"
	KindTemplateUpdated        Kind = "TemplateUpdated"
	KindTemplateDeactivated    Kind = "TemplateDeactivated"
	KindJobCreatedFromTemplate Kind = "JobCreatedFromTemplate"

	KindFeeReceived                  Kind = "FeeReceived"
	KindTreasuryWithdrawal           Kind = "TreasuryWithdrawal"
	KindArbitratorRewardsDistributed Kind = "ArbitratorRewardsDistributed"
	KindSourceAuthorized             Kind = "SourceAuthorized"
	KindArbitratorPoolBpsUpdated     Kind = "ArbitratorPoolBpsUpdated"

	// KindUnrecognized marks a log whose topic0 matches no known event.
	KindUnrecognized Kind = "Unrecognized"
)

// Record is a decoded marketplace event.
type Record interface {
	Kind() Kind
}

// Unrecognized preserves the topic0 of a log that matched no descriptor.
type Unrecognized struct {
	Topic0 common.Hash `json:"topic0"`
}

func (*Unrecognized) Kind() Kind { return KindUnrecognized }

// AllEvents lists every descriptor the engine knows how to decode.
var AllEvents = []abiword.Event{
	EvJobCreated, EvJobFunded, EvDeliverableSubmitted, EvValidationReceived,
	EvJobSettled, EvJobRefunded, EvJobCancelled, EvDisputeRaised,
	EvClientConfirmed, EvDisputeWindowStarted, EvFeedbackSubmitted,
	EvProtocolFeeUpdated, EvDisputeWindowUpdated, EvTreasuryUpdated,
	EvDisputeContractUpdated, EvAuthorizedCallerUpdated,

	EvDisputeInitiated, EvEvidenceSubmitted, EvArbitratorAssigned,
	EvDisputeResolved, EvReValidationRequested, EvArbitratorStaked,
	EvArbitratorUnstaked, EvArbitratorSlashed, EvBondReturned, EvBondForfeited,

	EvTemplateCreated, EvTemplateUpdated, EvTemplateDeactivated,
	EvJobCreatedFromTemplate,

	EvFeeReceived, EvTreasuryWithdrawal, EvArbitratorRewardsDistributed,
	EvSourceAuthorized, EvArbitratorPoolBpsUpdated,
}

type parseFunc func(lg *types.Log) (Record, bool)

// wrap lifts a typed parser into the Record-returning form the dispatch
// table needs.
func wrap[T Record](parse func(lg *types.Log) (T, bool)) parseFunc {
	return func(lg *types.Log) (Record, bool) {
		rec, ok := parse(lg)
		if !ok {
			return nil, false
		}
		return rec, true
	}
}

var parsersByTopic0 = map[common.Hash]parseFunc{
	EvJobCreated.Topic0():              wrap(ParseJobCreated),
	EvJobFunded.Topic0():               wrap(ParseJobFunded),
	EvDeliverableSubmitted.Topic0():    wrap(ParseDeliverableSubmitted),
	EvValidationReceived.Topic0():      wrap(ParseValidationReceived),
	EvJobSettled.Topic0():              wrap(ParseJobSettled),
	EvJobRefunded.Topic0():             wrap(ParseJobRefunded),
	EvJobCancelled.Topic0():            wrap(ParseJobCancelled),
	EvDisputeRaised.Topic0():           wrap(ParseDisputeRaised),
	EvClientConfirmed.Topic0():         wrap(ParseClientConfirmed),
	EvDisputeWindowStarted.Topic0():    wrap(ParseDisputeWindowStarted),
	EvFeedbackSubmitted.Topic0():       wrap(ParseFeedbackSubmitted),
	EvProtocolFeeUpdated.Topic0():      wrap(ParseProtocolFeeUpdated),
	EvDisputeWindowUpdated.Topic0():    wrap(ParseDisputeWindowUpdated),
	EvTreasuryUpdated.Topic0():         wrap(ParseTreasuryUpdated),
	EvDisputeContractUpdated.Topic0():  wrap(ParseDisputeContractUpdated),
	EvAuthorizedCallerUpdated.Topic0(): wrap(ParseAuthorizedCallerUpdated),

	EvDisputeInitiated.Topic0():      wrap(ParseDisputeInitiated),
	EvEvidenceSubmitted.Topic0():     wrap(ParseEvidenceSubmitted),
	EvArbitratorAssigned.Topic0():    wrap(ParseArbitratorAssigned),
	EvDisputeResolved.Topic0():       wrap(ParseDisputeResolved),
	EvReValidationRequested.Topic0(): wrap(ParseReValidationRequested),
	EvArbitratorStaked.Topic0():      wrap(ParseArbitratorStaked),
	EvArbitratorUnstaked.Topic0():    wrap(ParseArbitratorUnstaked),
	EvArbitratorSlashed.Topic0():     wrap(ParseArbitratorSlashed),
	EvBondReturned.Topic0():          wrap(ParseBondReturned),
	EvBondForfeited.Topic0():         wrap(ParseBondForfeited),

	EvTemplateCreated.Topic0():        wrap(ParseTemplateCreated),
	EvTemplateUpdated.Topic0():        wrap(ParseTemplateUpdated),
	EvTemplateDeactivated.Topic0():    wrap(ParseTemplateDeactivated),
	EvJobCreatedFromTemplate.Topic0(): wrap(ParseJobCreatedFromTemplate),

	EvFeeReceived.Topic0():                  wrap(ParseFeeReceived),
	EvTreasuryWithdrawal.Topic0():           wrap(ParseTreasuryWithdrawal),
	EvArbitratorRewardsDistributed.Topic0(): wrap(ParseArbitratorRewardsDistributed),
	EvSourceAuthorized.Topic0():             wrap(ParseSourceAuthorized),
	EvArbitratorPoolBpsUpdated.Topic0():     wrap(ParseArbitratorPoolBpsUpdated),
}

// Parse decodes a raw log into its typed record.
//
// A log whose topic0 matches no descriptor yields an Unrecognized record and
// no error. A log whose topic0 is known but whose body cannot be decoded
// returns an error so the caller can surface the malformed log.
func Parse(lg *types.Log) (Record, error) {
	if len(lg.Topics) == 0 {
		return nil, fmt.Errorf("log %s-%d has no topics", lg.TxHash, lg.Index)
	}

	parse, known := parsersByTopic0[lg.Topics[0]]
	if !known {
		return &Unrecognized{Topic0: lg.Topics[0]}, nil
	}

	rec, ok := parse(lg)
	if !ok {
		return nil, fmt.Errorf("log %s-%d does not match event layout for topic %s",
			lg.TxHash, lg.Index, lg.Topics[0])
	}

	return rec, nil
}
