package abiword

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// Param describes one parameter of an event signature.
type Param struct {
	Name    string
	Type    Type
	Indexed bool
}

// Event is a static descriptor for a contract event: its name and ordered
// parameter list. Descriptors are declared once per event kind and shared.
type Event struct {
	Name   string
	Params []Param
}

// Signature returns the canonical event signature, e.g.
// "Transfer(address,address,uint256)".
func (e Event) Signature() string {
	parts := make([]string, len(e.Params))
	for i, p := range e.Params {
		parts[i] = string(p.Type)
	}
	return e.Name + "(" + strings.Join(parts, ",") + ")"
}

// Topic0 returns the Keccak-256 hash of the canonical signature, i.e. the
// value of the first topic in logs emitted for this event.
func (e Event) Topic0() common.Hash {
	return crypto.Keccak256Hash([]byte(e.Signature()))
}

func (e Event) indexedParams() []Param {
	out := make([]Param, 0, len(e.Params))
	for _, p := range e.Params {
		if p.Indexed {
			out = append(out, p)
		}
	}
	return out
}

func (e Event) dataParams() []Param {
	out := make([]Param, 0, len(e.Params))
	for _, p := range e.Params {
		if !p.Indexed {
			out = append(out, p)
		}
	}
	return out
}

// Decoded holds the field values extracted from a single log: indexed fields
// from topics 1..n and data fields from the data blob. Produced fresh per log
// and never persisted.
type Decoded struct {
	Indexed map[string]any
	Data    map[string]any
}

// field looks up a value by name, preferring indexed fields.
func (d *Decoded) field(name string) any {
	if v, ok := d.Indexed[name]; ok {
		return v
	}
	return d.Data[name]
}

// Typed accessors. A missing field or a type mismatch yields the zero value;
// descriptors and accessors are declared together per event kind, so a
// mismatch is a programming error that surfaces immediately in tests.

func (d *Decoded) BigInt(name string) *big.Int {
	if v, ok := d.field(name).(*big.Int); ok {
		return v
	}
	return new(big.Int)
}

func (d *Decoded) Hash(name string) common.Hash {
	v, _ := d.field(name).(common.Hash)
	return v
}

func (d *Decoded) Addr(name string) common.Address {
	v, _ := d.field(name).(common.Address)
	return v
}

func (d *Decoded) Uint64(name string) uint64 {
	v, _ := d.field(name).(uint64)
	return v
}

func (d *Decoded) Uint8(name string) uint8 {
	v, _ := d.field(name).(uint8)
	return v
}

func (d *Decoded) Bool(name string) bool {
	v, _ := d.field(name).(bool)
	return v
}

func (d *Decoded) String(name string) string {
	v, _ := d.field(name).(string)
	return v
}

func (d *Decoded) Bytes(name string) []byte {
	v, _ := d.field(name).([]byte)
	return v
}

// DecodeLog decodes a raw log against this descriptor.
//
// The log is rejected when its topic count does not equal 1 + the number of
// indexed parameters; topic 0 carries the event signature hash and is not
// matched here (callers pre-filter by topic0 when several event kinds share a
// stream). Indexed dynamic parameters are stored on-chain as their Keccak
// digest, so string/bytes indexed fields decode to that digest, not the
// original content.
//
// Decoding is a pure function of its inputs: the same log and descriptor
// always produce the same Decoded value or the same error.
func (e Event) DecodeLog(lg *types.Log) (*Decoded, error) {
	indexed := e.indexedParams()
	if len(lg.Topics) != 1+len(indexed) {
		return nil, fmt.Errorf("event %s: expected %d topics, got %d", e.Name, 1+len(indexed), len(lg.Topics))
	}

	out := &Decoded{
		Indexed: make(map[string]any, len(indexed)),
		Data:    make(map[string]any),
	}

	for i, p := range indexed {
		topic := lg.Topics[1+i]
		if p.Type.IsDynamic() {
			// Topics hold only the digest of dynamic values.
			out.Indexed[p.Name] = topic
			continue
		}
		v, err := DecodeWord(p.Type, topic.Bytes())
		if err != nil {
			return nil, fmt.Errorf("event %s: indexed field %s: %w", e.Name, p.Name, err)
		}
		out.Indexed[p.Name] = v
	}

	dataParams := e.dataParams()
	if len(dataParams) == 0 {
		return out, nil
	}

	if headSize := uint64(len(dataParams)) * WordSize; uint64(len(lg.Data)) < headSize {
		return nil, fmt.Errorf("event %s: data region is %d bytes, need at least %d", e.Name, len(lg.Data), headSize)
	}

	for i, p := range dataParams {
		head := lg.Data[i*WordSize : (i+1)*WordSize]

		var (
			v   any
			err error
		)
		if p.Type.IsDynamic() {
			// The head slot holds a byte offset into the tail region.
			var offset any
			offset, err = DecodeWord(Uint64, head)
			if err == nil {
				v, err = decodeDynamic(p.Type, lg.Data, offset.(uint64))
			}
		} else {
			v, err = DecodeWord(p.Type, head)
		}
		if err != nil {
			return nil, fmt.Errorf("event %s: data field %s: %w", e.Name, p.Name, err)
		}
		out.Data[p.Name] = v
	}

	return out, nil
}

// FindEvent scans a list of logs for the first one that decodes cleanly
// against the descriptor. Logs that fail to decode are skipped, since a
// transaction's log list routinely contains entries for unrelated event
// kinds. Returns false only after exhausting the list.
func FindEvent(logs []types.Log, e Event) (*Decoded, bool) {
	for i := range logs {
		if d, err := e.DecodeLog(&logs[i]); err == nil {
			return d, true
		}
	}
	return nil, false
}
