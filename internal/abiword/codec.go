// Package abiword decodes ABI-encoded event parameters from raw log words.
//
// It intentionally avoids a full contract-ABI runtime: event shapes are known
// statically, so decoding is done with explicit word arithmetic over byte
// slices. Correctness here is bit-exact by contract with the on-chain encoder.
package abiword

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ErrUnsupportedType is returned when a parameter carries a type tag the
// codec does not implement. Callers treat it as a decode mismatch.
var ErrUnsupportedType = errors.New("unsupported parameter type")

// Type identifies the ABI type of a single event parameter.
type Type string

const (
	Uint8   Type = "uint8"
	Uint64  Type = "uint64"
	Uint128 Type = "uint128"
	Uint256 Type = "uint256"
	Int128  Type = "int128"
	Bool    Type = "bool"
	Address Type = "address"
	Bytes32 Type = "bytes32"
	Bytes   Type = "bytes"
	String  Type = "string"
)

// WordSize is the size of one ABI slot in bytes.
const WordSize = 32

const int128Bytes = 16

var (
	int128SignBit = new(big.Int).Lsh(big.NewInt(1), 127)
	int128Modulus = new(big.Int).Lsh(big.NewInt(1), 128)
)

// IsDynamic reports whether the type's payload lives in the tail region of the
// data blob rather than directly in its head slot.
func (t Type) IsDynamic() bool {
	return t == Bytes || t == String
}

// DecodeWord decodes a single 32-byte word as the given static type.
//
// Returned concrete types:
//
//	uint8            -> uint8
//	uint64           -> uint64
//	uint128, uint256 -> *big.Int
//	int128           -> *big.Int (two's-complement corrected)
//	bool             -> bool
//	address          -> common.Address
//	bytes32          -> common.Hash
//
// Dynamic types (bytes, string) cannot be decoded from a lone word; use
// decodeDynamic with the full data region instead.
func DecodeWord(t Type, word []byte) (any, error) {
	if len(word) != WordSize {
		return nil, fmt.Errorf("expected %d-byte word, got %d bytes", WordSize, len(word))
	}

	switch t {
	case Uint8:
		v := new(big.Int).SetBytes(word)
		if !v.IsUint64() || v.Uint64() > 0xff {
			return nil, fmt.Errorf("uint8 value out of range: %s", v)
		}
		return uint8(v.Uint64()), nil
	case Uint64:
		v := new(big.Int).SetBytes(word)
		if !v.IsUint64() {
			return nil, fmt.Errorf("uint64 value out of range: %s", v)
		}
		return v.Uint64(), nil
	case Uint128, Uint256:
		return new(big.Int).SetBytes(word), nil
	case Int128:
		// Interpret the low 128 bits as unsigned, then apply two's-complement
		// correction. The encoder sign-extends into the upper half of the
		// word, so the sign must be read from bit 127, not bit 255.
		v := new(big.Int).SetBytes(word[WordSize-int128Bytes:])
		if v.Cmp(int128SignBit) >= 0 {
			v.Sub(v, int128Modulus)
		}
		return v, nil
	case Bool:
		return new(big.Int).SetBytes(word).Sign() != 0, nil
	case Address:
		return common.BytesToAddress(word[WordSize-common.AddressLength:]), nil
	case Bytes32:
		return common.BytesToHash(word), nil
	case Bytes, String:
		return nil, fmt.Errorf("dynamic type %s cannot be decoded from a single word", t)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, t)
	}
}

// decodeDynamic resolves a dynamic parameter whose head slot holds a byte
// offset into data. At that offset the first word is the payload length in
// bytes, followed by the payload itself (right-padded to a word boundary).
func decodeDynamic(t Type, data []byte, offset uint64) (any, error) {
	// Offset and length words come straight off the wire; the comparisons
	// must not wrap when either is near 2^64.
	size := uint64(len(data))
	if offset > size || size-offset < WordSize {
		return nil, fmt.Errorf("dynamic %s offset %d out of bounds (data is %d bytes)", t, offset, len(data))
	}

	lengthWord := new(big.Int).SetBytes(data[offset : offset+WordSize])
	if !lengthWord.IsUint64() {
		return nil, fmt.Errorf("dynamic %s length out of range: %s", t, lengthWord)
	}
	length := lengthWord.Uint64()

	start := offset + WordSize
	if length > size-start {
		return nil, fmt.Errorf("dynamic %s payload of %d bytes at offset %d out of bounds (data is %d bytes)",
			t, length, offset, len(data))
	}
	payload := data[start : start+length]

	switch t {
	case Bytes:
		out := make([]byte, len(payload))
		copy(out, payload)
		return out, nil
	case String:
		return decodeString(payload), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, t)
	}
}

// decodeString decodes a UTF-8 string payload, truncating at the first
// embedded NUL byte. The upstream encoder never emits NULs mid-string, and the
// reference decoder this projection mirrors stops there, so the behavior is
// kept deliberately. See the pinning test in codec_test.go.
func decodeString(payload []byte) string {
	for i, b := range payload {
		if b == 0 {
			return string(payload[:i])
		}
	}
	return string(payload)
}
