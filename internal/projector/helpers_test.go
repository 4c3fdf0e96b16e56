package projector

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJobStateLabel(t *testing.T) {
	t.Parallel()

	require.Equal(t, "FUNDED", JobStateLabel(JobStateFunded))
	require.Equal(t, "DISPUTE_WINDOW", JobStateLabel(JobStateDisputeWindow))
	require.Equal(t, "CANCELLED", JobStateLabel(JobStateCancelled))
	require.Equal(t, "UNKNOWN", JobStateLabel(99))
}

func TestResolutionLabel(t *testing.T) {
	t.Parallel()

	require.Equal(t, "NONE", ResolutionLabel(ResolutionNone))
	require.Equal(t, "CLIENT_CONFIRM", ResolutionLabel(ResolutionClientConfirm))
	require.Equal(t, "UNKNOWN", ResolutionLabel(99))
}

func TestAddBig(t *testing.T) {
	t.Parallel()

	require.Equal(t, int64(5), addBig(nil, big.NewInt(5)).Int64())
	require.Equal(t, int64(5), addBig(big.NewInt(5), nil).Int64())
	require.Equal(t, int64(0), addBig(nil, nil).Int64())

	a := big.NewInt(3)
	sum := addBig(a, big.NewInt(4))
	require.Equal(t, int64(7), sum.Int64())
	require.Equal(t, int64(3), a.Int64(), "inputs must not be mutated")
}

func TestSubBigFloor(t *testing.T) {
	t.Parallel()

	require.Equal(t, int64(2), subBigFloor(big.NewInt(5), big.NewInt(3)).Int64())
	require.Equal(t, int64(0), subBigFloor(big.NewInt(3), big.NewInt(5)).Int64(), "underflow clamps to zero")
	require.Equal(t, int64(0), subBigFloor(nil, big.NewInt(5)).Int64())
	require.Equal(t, int64(4), subBigFloor(big.NewInt(4), nil).Int64())
}
