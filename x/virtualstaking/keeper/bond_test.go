package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/osmosis-labs/mesh-security/x/virtualstaking/types"
)

func TestBondAccumulatesRequest(t *testing.T) {
	k, ctx, _, _ := setupKeeper(t, math.NewInt(1000))
	require.NoError(t, k.Bond(ctx, "V1", math.NewInt(10)))
	require.NoError(t, k.Bond(ctx, "V1", math.NewInt(5)))

	amt, err := k.GetBondRequest(ctx, "V1")
	require.NoError(t, err)
	require.True(t, amt.Equal(math.NewInt(15)))
}

func TestUnbondFailsWhenExceedingOutstandingRequest(t *testing.T) {
	k, ctx, _, _ := setupKeeper(t, math.NewInt(1000))
	require.NoError(t, k.Bond(ctx, "V1", math.NewInt(10)))
	err := k.Unbond(ctx, "V1", math.NewInt(20))
	require.ErrorIs(t, err, types.ErrInsufficientBondRequest)
}

func TestUnbondReducesRequest(t *testing.T) {
	k, ctx, _, _ := setupKeeper(t, math.NewInt(1000))
	require.NoError(t, k.Bond(ctx, "V1", math.NewInt(10)))
	require.NoError(t, k.Unbond(ctx, "V1", math.NewInt(4)))

	amt, err := k.GetBondRequest(ctx, "V1")
	require.NoError(t, err)
	require.True(t, amt.Equal(math.NewInt(6)))
}
