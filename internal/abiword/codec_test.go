package abiword

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

// encodeUnsigned left-pads a big.Int to one 32-byte word.
func encodeUnsigned(v *big.Int) []byte {
	word := make([]byte, WordSize)
	v.FillBytes(word)
	return word
}

// encodeInt128 sign-extends a signed value across the full word, the way the
// ABI encoder does.
func encodeInt128(v *big.Int) []byte {
	if v.Sign() >= 0 {
		return encodeUnsigned(v)
	}
	wrapped := new(big.Int).Add(new(big.Int).Lsh(big.NewInt(1), 256), v)
	return encodeUnsigned(wrapped)
}

func maxUint(bits uint) *big.Int {
	return new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), bits), big.NewInt(1))
}

func TestDecodeWord_UnsignedRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		typ      Type
		value    *big.Int
		expected any
	}{
		{name: "Uint8Zero", typ: Uint8, value: big.NewInt(0), expected: uint8(0)},
		{name: "Uint8Max", typ: Uint8, value: big.NewInt(255), expected: uint8(255)},
		{name: "Uint64Small", typ: Uint64, value: big.NewInt(1_700_000_000), expected: uint64(1_700_000_000)},
		{name: "Uint64Max", typ: Uint64, value: maxUint(64), expected: maxUint(64).Uint64()},
		{name: "Uint128Zero", typ: Uint128, value: big.NewInt(0), expected: big.NewInt(0)},
		{name: "Uint128Max", typ: Uint128, value: maxUint(128), expected: maxUint(128)},
		{name: "Uint256Volume", typ: Uint256, value: big.NewInt(10_000_000), expected: big.NewInt(10_000_000)},
		{name: "Uint256Max", typ: Uint256, value: maxUint(256), expected: maxUint(256)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := DecodeWord(tt.typ, encodeUnsigned(tt.value))
			require.NoError(t, err)
			switch want := tt.expected.(type) {
			case *big.Int:
				require.Zero(t, want.Cmp(got.(*big.Int)))
			default:
				require.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestDecodeWord_UnsignedOutOfRange(t *testing.T) {
	t.Parallel()

	_, err := DecodeWord(Uint8, encodeUnsigned(big.NewInt(256)))
	require.Error(t, err)

	_, err = DecodeWord(Uint64, encodeUnsigned(maxUint(65)))
	require.Error(t, err)
}

func TestDecodeWord_Int128TwosComplement(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value *big.Int
	}{
		{name: "Zero", value: big.NewInt(0)},
		{name: "SmallPositive", value: big.NewInt(5)},
		{name: "SmallNegative", value: big.NewInt(-5)},
		{name: "MinusOne", value: big.NewInt(-1)},
		{name: "MaxPositive", value: new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))},
		{name: "MinNegative", value: new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := DecodeWord(Int128, encodeInt128(tt.value))
			require.NoError(t, err)
			// -1 must come back as -1, not 2^128-1.
			require.Zero(t, tt.value.Cmp(got.(*big.Int)), "got %s, want %s", got, tt.value)
		})
	}
}

func TestDecodeWord_Bool(t *testing.T) {
	t.Parallel()

	got, err := DecodeWord(Bool, encodeUnsigned(big.NewInt(0)))
	require.NoError(t, err)
	require.False(t, got.(bool))

	got, err = DecodeWord(Bool, encodeUnsigned(big.NewInt(1)))
	require.NoError(t, err)
	require.True(t, got.(bool))

	// Any nonzero word is true.
	got, err = DecodeWord(Bool, encodeUnsigned(maxUint(256)))
	require.NoError(t, err)
	require.True(t, got.(bool))
}

func TestDecodeWord_Address(t *testing.T) {
	t.Parallel()

	addr := common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	word := make([]byte, WordSize)
	copy(word[WordSize-common.AddressLength:], addr.Bytes())

	got, err := DecodeWord(Address, word)
	require.NoError(t, err)
	require.Equal(t, addr, got)
}

func TestDecodeWord_Bytes32(t *testing.T) {
	t.Parallel()

	h := common.HexToHash("0x0000000000000000000000000000000000000000000000000000000000000042")
	got, err := DecodeWord(Bytes32, h.Bytes())
	require.NoError(t, err)
	require.Equal(t, h, got)
}

func TestDecodeWord_Errors(t *testing.T) {
	t.Parallel()

	_, err := DecodeWord(Uint256, []byte{0x01})
	require.Error(t, err, "short word must be rejected")

	_, err = DecodeWord(String, make([]byte, WordSize))
	require.Error(t, err, "dynamic type needs the full data region")

	_, err = DecodeWord(Type("uint512"), make([]byte, WordSize))
	require.ErrorIs(t, err, ErrUnsupportedType)
	require.Contains(t, err.Error(), "uint512")
}

func TestDecodeDynamic_Bounds(t *testing.T) {
	t.Parallel()

	// Offset beyond the buffer.
	_, err := decodeDynamic(String, make([]byte, WordSize), 64)
	require.Error(t, err)

	// Declared length longer than the remaining buffer.
	data := make([]byte, 2*WordSize)
	data[WordSize-1] = 200
	_, err = decodeDynamic(String, data, 0)
	require.Error(t, err)

	// Offset so large that adding the length-word size would wrap uint64.
	// Must be rejected, never used as a slice bound.
	require.NotPanics(t, func() {
		_, err = decodeDynamic(Bytes, make([]byte, 2*WordSize), ^uint64(0)-8)
		require.Error(t, err)
	})

	// Length word of 2^64-1: start+length wraps, payload slice would panic.
	huge := make([]byte, 2*WordSize)
	for i := WordSize - 8; i < WordSize; i++ {
		huge[i] = 0xff
	}
	require.NotPanics(t, func() {
		_, err = decodeDynamic(Bytes, huge, 0)
		require.Error(t, err)
	})
}

func TestDecodeString_NulTruncation(t *testing.T) {
	t.Parallel()

	// Decoding stops at the first embedded NUL byte. This pins the behavior
	// of the upstream reference decoder; change it only on purpose.
	require.Equal(t, "abc", decodeString([]byte("abc\x00def")))
	require.Equal(t, "", decodeString([]byte("\x00abc")))
	require.Equal(t, "plain", decodeString([]byte("plain")))
}
