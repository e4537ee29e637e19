package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/osmosis-labs/mesh-security/x/extstaking/types"
)

func TestBurnVirtualStakeFromSingleValidator(t *testing.T) {
	k, ctx, _, packets := setupKeeper(t)
	activateValidator(t, k, ctx, "V1")
	require.NoError(t, k.ReceiveVirtualStake(ctx, "alice", "V1", math.NewInt(100), 1))
	require.NoError(t, k.CommitStake(ctx, 1))

	require.NoError(t, k.BurnVirtualStake(ctx, "alice", "V1", math.NewInt(40)))

	stake, found, err := k.GetStake(ctx, "alice", "V1")
	require.NoError(t, err)
	require.True(t, found)
	require.True(t, stake.Amount.Equal(math.NewInt(60)))
	require.Len(t, packets.burns, 1)
	require.Equal(t, math.NewInt(40), packets.burns[0][0].Amount)
}

func TestBurnVirtualStakeEvenSplitAcrossValidators(t *testing.T) {
	k, ctx, _, _ := setupKeeper(t)
	activateValidator(t, k, ctx, "V1")
	activateValidator(t, k, ctx, "V2")
	require.NoError(t, k.ReceiveVirtualStake(ctx, "alice", "V1", math.NewInt(60), 1))
	require.NoError(t, k.CommitStake(ctx, 1))
	require.NoError(t, k.ReceiveVirtualStake(ctx, "alice", "V2", math.NewInt(40), 2))
	require.NoError(t, k.CommitStake(ctx, 2))

	// 50/2 = 25 evenly from each; both stakes have enough to absorb it, so
	// there is no rounding shortfall to assign.
	require.NoError(t, k.BurnVirtualStake(ctx, "alice", "", math.NewInt(50)))

	s1, found1, err := k.GetStake(ctx, "alice", "V1")
	require.NoError(t, err)
	require.True(t, found1)
	require.True(t, s1.Amount.Equal(math.NewInt(35)))

	s2, found2, err := k.GetStake(ctx, "alice", "V2")
	require.NoError(t, err)
	require.True(t, found2)
	require.True(t, s2.Amount.Equal(math.NewInt(15)))
}

func TestBurnVirtualStakeShortfallGoesToFirstValidatorWithCapacity(t *testing.T) {
	k, ctx, _, _ := setupKeeper(t)
	activateValidator(t, k, ctx, "V1")
	activateValidator(t, k, ctx, "V2")
	require.NoError(t, k.ReceiveVirtualStake(ctx, "alice", "V1", math.NewInt(100), 1))
	require.NoError(t, k.CommitStake(ctx, 1))
	require.NoError(t, k.ReceiveVirtualStake(ctx, "alice", "V2", math.NewInt(1), 2))
	require.NoError(t, k.CommitStake(ctx, 2))

	// 101/2 = 50 evenly; V2 can only absorb 1 of its even share, leaving a
	// shortfall of 50 (the 49 V2 could not take plus the 1 lost to the
	// division) that lands entirely on V1, the first validator with enough
	// remaining capacity to take it.
	require.NoError(t, k.BurnVirtualStake(ctx, "alice", "", math.NewInt(101)))

	// Both stakes are burned to zero, and SetStake prunes empty stakes.
	s1, found1, err := k.GetStake(ctx, "alice", "V1")
	require.NoError(t, err)
	require.False(t, found1)
	require.True(t, s1.Amount.Equal(math.NewInt(0)))

	s2, found2, err := k.GetStake(ctx, "alice", "V2")
	require.NoError(t, err)
	require.False(t, found2)
	require.True(t, s2.Amount.Equal(math.NewInt(0)))
}

func TestBurnVirtualStakeFailsWhenInsufficient(t *testing.T) {
	k, ctx, _, _ := setupKeeper(t)
	activateValidator(t, k, ctx, "V1")
	require.NoError(t, k.ReceiveVirtualStake(ctx, "alice", "V1", math.NewInt(10), 1))
	require.NoError(t, k.CommitStake(ctx, 1))

	err := k.BurnVirtualStake(ctx, "alice", "", math.NewInt(100))
	require.ErrorIs(t, err, types.ErrInsufficientDelegations)
}
