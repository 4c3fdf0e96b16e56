package events

import (
	"encoding/binary"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"
)

func wordUint(v uint64) []byte {
	w := make([]byte, 32)
	binary.BigEndian.PutUint64(w[24:], v)

	return w
}

func wordBig(v *big.Int) []byte {
	w := make([]byte, 32)
	v.FillBytes(w)

	return w
}

func topicUint(v uint64) common.Hash {
	return common.BytesToHash(wordUint(v))
}

func topicAddr(a common.Address) common.Hash {
	return common.BytesToHash(a.Bytes())
}

// wordString encodes a head offset slot plus the length-prefixed padded tail
// for a single trailing dynamic string.
func wordString(s string, headSlots int) []byte {
	tailOffset := headSlots * 32
	out := wordUint(uint64(tailOffset))
	out = append(out, wordUint(uint64(len(s)))...)

	padded := ((len(s) + 31) / 32) * 32
	payload := make([]byte, padded)
	copy(payload, s)

	return append(out, payload...)
}

func TestParseJobCreated(t *testing.T) {
	t.Parallel()

	jobID := common.HexToHash("0x1111111111111111111111111111111111111111111111111111111111111111")
	validator := common.HexToAddress("0x2222222222222222222222222222222222222222")

	data := wordUint(10_000_000)
	data = append(data, topicAddr(validator).Bytes()...)
	data = append(data, wordUint(0x67890abc)...)

	lg := &types.Log{
		Topics: []common.Hash{EvJobCreated.Topic0(), jobID, topicUint(7), topicUint(9)},
		Data:   data,
	}

	rec, ok := ParseJobCreated(lg)
	require.True(t, ok)
	require.Equal(t, jobID, rec.JobID)
	require.Equal(t, int64(7), rec.ClientAgentID.Int64())
	require.Equal(t, int64(9), rec.ProviderAgentID.Int64())
	require.Equal(t, int64(10_000_000), rec.Amount.Int64())
	require.Equal(t, validator, rec.ValidatorAddress)
	require.Equal(t, uint64(0x67890abc), rec.Deadline)
}

func TestParseJobSettled(t *testing.T) {
	t.Parallel()

	jobID := common.HexToHash("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	provider := common.HexToAddress("0x3333333333333333333333333333333333333333")

	data := wordUint(975_000)
	data = append(data, wordUint(25_000)...)

	lg := &types.Log{
		Topics: []common.Hash{EvJobSettled.Topic0(), jobID, topicAddr(provider)},
		Data:   data,
	}

	rec, ok := ParseJobSettled(lg)
	require.True(t, ok)
	require.Equal(t, jobID, rec.JobID)
	require.Equal(t, provider, rec.ProviderWallet)
	require.Equal(t, int64(975_000), rec.ProviderAmount.Int64())
	require.Equal(t, int64(25_000), rec.ProtocolFee.Int64())
}

func TestParseDeliverableSubmitted_DynamicURI(t *testing.T) {
	t.Parallel()

	jobID := common.HexToHash("0x0101010101010101010101010101010101010101010101010101010101010101")
	delivHash := common.HexToHash("0x0202020202020202020202020202020202020202020202020202020202020202")
	reqHash := common.HexToHash("0x0303030303030303030303030303030303030303030303030303030303030303")

	uri := "ipfs://QmDeliverableManifest"
	data := wordUint(96) // offset past the three head slots
	data = append(data, delivHash.Bytes()...)
	data = append(data, reqHash.Bytes()...)
	data = append(data, wordUint(uint64(len(uri)))...)
	padded := make([]byte, 32)
	copy(padded, uri)
	data = append(data, padded...)

	lg := &types.Log{
		Topics: []common.Hash{EvDeliverableSubmitted.Topic0(), jobID},
		Data:   data,
	}

	rec, ok := ParseDeliverableSubmitted(lg)
	require.True(t, ok)
	require.Equal(t, uri, rec.DeliverableURI)
	require.Equal(t, delivHash, rec.DeliverableHash)
	require.Equal(t, reqHash, rec.ValidationRequestHash)
}

func TestParseValidationReceived(t *testing.T) {
	t.Parallel()

	jobID := common.HexToHash("0x0404040404040404040404040404040404040404040404040404040404040404")

	data := wordUint(87)
	data = append(data, wordUint(1)...)

	lg := &types.Log{
		Topics: []common.Hash{EvValidationReceived.Topic0(), jobID},
		Data:   data,
	}

	rec, ok := ParseValidationReceived(lg)
	require.True(t, ok)
	require.Equal(t, uint8(87), rec.Score)
	require.True(t, rec.PassedThreshold)
}

func TestParseFeedbackSubmitted_NegativeValue(t *testing.T) {
	t.Parallel()

	jobID := common.HexToHash("0x0505050505050505050505050505050505050505050505050505050505050505")

	// -3 sign-extended over the full word, as the contract emits it.
	data := make([]byte, 32)
	for i := range data {
		data[i] = 0xff
	}
	data[31] = 0xfd

	lg := &types.Log{
		Topics: []common.Hash{EvFeedbackSubmitted.Topic0(), jobID, topicUint(42)},
		Data:   data,
	}

	rec, ok := ParseFeedbackSubmitted(lg)
	require.True(t, ok)
	require.Equal(t, int64(42), rec.AgentID.Int64())
	require.Equal(t, int64(-3), rec.Value.Int64())
}

func TestParseDisputeInitiated(t *testing.T) {
	t.Parallel()

	disputeID := common.HexToHash("0x0606060606060606060606060606060606060606060606060606060606060606")
	jobID := common.HexToHash("0x0707070707070707070707070707070707070707070707070707070707070707")
	initiator := common.HexToAddress("0x4444444444444444444444444444444444444444")

	lg := &types.Log{
		Topics: []common.Hash{EvDisputeInitiated.Topic0(), disputeID, jobID, topicAddr(initiator)},
	}

	rec, ok := ParseDisputeInitiated(lg)
	require.True(t, ok)
	require.Equal(t, disputeID, rec.DisputeID)
	require.Equal(t, jobID, rec.JobID)
	require.Equal(t, initiator, rec.Initiator)
}

func TestParseDisputeResolved(t *testing.T) {
	t.Parallel()

	disputeID := common.HexToHash("0x0808080808080808080808080808080808080808080808080808080808080808")
	jobID := common.HexToHash("0x0909090909090909090909090909090909090909090909090909090909090909")

	data := wordUint(60)
	data = append(data, wordUint(2)...)

	lg := &types.Log{
		Topics: []common.Hash{EvDisputeResolved.Topic0(), disputeID, jobID},
		Data:   data,
	}

	rec, ok := ParseDisputeResolved(lg)
	require.True(t, ok)
	require.Equal(t, uint8(60), rec.ClientPercent)
	require.Equal(t, uint8(2), rec.Method)
}

func TestParseTemplateCreated_DynamicName(t *testing.T) {
	t.Parallel()

	creator := common.HexToAddress("0x5555555555555555555555555555555555555555")
	validator := common.HexToAddress("0x6666666666666666666666666666666666666666")

	// 4 head slots: name offset, defaultValidator, defaultTimeout, minValidation.
	data := wordUint(128)
	data = append(data, topicAddr(validator).Bytes()...)
	data = append(data, wordUint(3600)...)
	data = append(data, wordUint(80)...)
	name := "Code Review"
	data = append(data, wordUint(uint64(len(name)))...)
	padded := make([]byte, 32)
	copy(padded, name)
	data = append(data, padded...)

	lg := &types.Log{
		Topics: []common.Hash{EvTemplateCreated.Topic0(), topicUint(5), topicAddr(creator)},
		Data:   data,
	}

	rec, ok := ParseTemplateCreated(lg)
	require.True(t, ok)
	require.Equal(t, int64(5), rec.TemplateID.Int64())
	require.Equal(t, creator, rec.Creator)
	require.Equal(t, name, rec.Name)
	require.Equal(t, validator, rec.DefaultValidator)
	require.Equal(t, uint64(3600), rec.DefaultTimeout)
	require.Equal(t, uint8(80), rec.MinValidation)
}

func TestParse_Dispatch(t *testing.T) {
	t.Parallel()

	jobID := common.HexToHash("0x0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a")

	lg := &types.Log{
		Topics: []common.Hash{EvJobCancelled.Topic0(), jobID},
	}

	rec, err := Parse(lg)
	require.NoError(t, err)
	require.Equal(t, KindJobCancelled, rec.Kind())
	require.Equal(t, jobID, rec.(*JobCancelled).JobID)
}

func TestParse_UnknownTopicIsUnrecognized(t *testing.T) {
	t.Parallel()

	topic := common.HexToHash("0xdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeef")

	rec, err := Parse(&types.Log{Topics: []common.Hash{topic}})
	require.NoError(t, err)
	require.Equal(t, KindUnrecognized, rec.Kind())
	require.Equal(t, topic, rec.(*Unrecognized).Topic0)
}

func TestParse_KnownTopicMalformedBody(t *testing.T) {
	t.Parallel()

	// JobCreated requires 4 topics; give it only the selector.
	_, err := Parse(&types.Log{Topics: []common.Hash{EvJobCreated.Topic0()}})
	require.Error(t, err)
}

func TestParse_NoTopics(t *testing.T) {
	t.Parallel()

	_, err := Parse(&types.Log{})
	require.Error(t, err)
}

func TestAllEvents_DistinctTopics(t *testing.T) {
	t.Parallel()

	seen := map[common.Hash]string{}
	for _, ev := range AllEvents {
		topic := ev.Topic0()
		require.NotContains(t, seen, topic, "duplicate topic for %s and %s", ev.Name, seen[topic])
		seen[topic] = ev.Name
	}
	require.Len(t, seen, len(AllEvents))
}

func TestParseEvidenceSubmitted(t *testing.T) {
	t.Parallel()

	disputeID := common.HexToHash("0x0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b")
	submitter := common.HexToAddress("0x7777777777777777777777777777777777777777")

	lg := &types.Log{
		Topics: []common.Hash{EvEvidenceSubmitted.Topic0(), disputeID, topicAddr(submitter)},
		Data:   wordString("ipfs://QmEvidenceBundle", 1),
	}

	rec, ok := ParseEvidenceSubmitted(lg)
	require.True(t, ok)
	require.Equal(t, "ipfs://QmEvidenceBundle", rec.EvidenceURI)
	require.Equal(t, submitter, rec.Submitter)
}

func TestParseArbitratorStaked_LargeAmount(t *testing.T) {
	t.Parallel()

	arb := common.HexToAddress("0x8888888888888888888888888888888888888888")
	amount, ok := new(big.Int).SetString("500000000000000000000", 10)
	require.True(t, ok)

	lg := &types.Log{
		Topics: []common.Hash{EvArbitratorStaked.Topic0(), topicAddr(arb)},
		Data:   wordBig(amount),
	}

	rec, parsed := ParseArbitratorStaked(lg)
	require.True(t, parsed)
	require.Equal(t, arb, rec.Arbitrator)
	require.Zero(t, amount.Cmp(rec.Amount))
}
