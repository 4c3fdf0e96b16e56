package events

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/aegis-protocol/aegis-indexer/internal/abiword"
)

// Factory contract event descriptors.
var (
	EvTemplateCreated = abiword.Event{
		Name: "TemplateCreated",
		Params: []abiword.Param{
			{Name: "templateId", Type: abiword.Uint256, Indexed: true},
			{Name: "creator", Type: abiword.Address, Indexed: true},
			{Name: "name", Type: abiword.String},
			{Name: "defaultValidator", Type: abiword.Address},
			{Name: "defaultTimeout", Type: abiword.Uint64},
			{Name: "minValidation", Type: abiword.Uint8},
		},
	}

	EvTemplateUpdated = abiword.Event{
		Name: "TemplateUpdated",
		Params: []abiword.Param{
			{Name: "templateId", Type: abiword.Uint256, Indexed: true},
		},
	}

	EvTemplateDeactivated = abiword.Event{
		Name: "TemplateDeactivated",
		Params: []abiword.Param{
			{Name: "templateId", Type: abiword.Uint256, Indexed: true},
		},
	}

	EvJobCreatedFromTemplate = abiword.Event{
		Name: "JobCreatedFromTemplate",
		Params: []abiword.Param{
			{Name: "jobId", Type: abiword.Bytes32, Indexed: true},
			{Name: "templateId", Type: abiword.Uint256, Indexed: true},
		},
	}
)

type TemplateCreated struct {
	TemplateID       *big.Int       `json:"templateId"`
	Creator          common.Address `json:"creator"`
	Name             string         `json:"name"`
	DefaultValidator common.Address `json:"defaultValidator"`
	DefaultTimeout   uint64         `json:"defaultTimeout"`
	MinValidation    uint8          `json:"minValidation"`
}

func (*TemplateCreated) Kind() Kind { return KindTemplateCreated }

type TemplateUpdated struct {
	TemplateID *big.Int `json:"templateId"`
}

func (*TemplateUpdated) Kind() Kind { return KindTemplateUpdated }

type TemplateDeactivated struct {
	TemplateID *big.Int `json:"templateId"`
}

func (*TemplateDeactivated) Kind() Kind { return KindTemplateDeactivated }

type JobCreatedFromTemplate struct {
	JobID      common.Hash `json:"jobId"`
	TemplateID *big.Int    `json:"templateId"`
}

func (*JobCreatedFromTemplate) Kind() Kind { return KindJobCreatedFromTemplate }

func ParseTemplateCreated(lg *types.Log) (*TemplateCreated, bool) {
	d, err := EvTemplateCreated.DecodeLog(lg)
	if err != nil {
		return nil, false
	}
	return &TemplateCreated{
		TemplateID:       d.BigInt("templateId"),
		Creator:          d.Addr("creator"),
		Name:             d.String("name"),
		DefaultValidator: d.Addr("defaultValidator"),
		DefaultTimeout:   d.Uint64("defaultTimeout"),
		MinValidation:    d.Uint8("minValidation"),
	}, true
}

func ParseTemplateUpdated(lg *types.Log) (*TemplateUpdated, bool) {
	d, err := EvTemplateUpdated.DecodeLog(lg)
	if err != nil {
		return nil, false
	}
	return &TemplateUpdated{TemplateID: d.BigInt("templateId")}, true
}

func ParseTemplateDeactivated(lg *types.Log) (*TemplateDeactivated, bool) {
	d, err := EvTemplateDeactivated.DecodeLog(lg)
	if err != nil {
		return nil, false
	}
	return &TemplateDeactivated{TemplateID: d.BigInt("templateId")}, true
}

func ParseJobCreatedFromTemplate(lg *types.Log) (*JobCreatedFromTemplate, bool) {
	d, err := EvJobCreatedFromTemplate.DecodeLog(lg)
	if err != nil {
		return nil, false
	}
	return &JobCreatedFromTemplate{
		JobID:      d.Hash("jobId"),
		TemplateID: d.BigInt("templateId"),
	}, true
}
