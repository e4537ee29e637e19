package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/osmosis-labs/mesh-security/x/extstaking/types"
)

func TestDistributeRewardsAndWithdraw(t *testing.T) {
	k, ctx, _, packets := setupKeeper(t)
	activateValidator(t, k, ctx, "V1")

	require.NoError(t, k.ReceiveVirtualStake(ctx, "alice", "V1", math.NewInt(100), 1))
	require.NoError(t, k.CommitStake(ctx, 1))

	require.NoError(t, k.DistributeRewards(ctx, "V1", math.NewInt(50), "uusdc"))

	_, reward, err := k.WithdrawRewards(ctx, "alice", "V1", "alice-remote")
	require.NoError(t, err)
	require.True(t, reward.Equal(math.NewInt(50)))
	require.Len(t, packets.transfers, 1)
}

func TestDistributeRewardsRejectsWrongDenom(t *testing.T) {
	k, ctx, _, _ := setupKeeper(t)
	err := k.DistributeRewards(ctx, "V1", math.NewInt(50), "uatom")
	require.ErrorIs(t, err, types.ErrInvalidDenom)
}

func TestWithdrawRewardsFailsWhenNothingAccrued(t *testing.T) {
	k, ctx, _, _ := setupKeeper(t)
	activateValidator(t, k, ctx, "V1")
	require.NoError(t, k.ReceiveVirtualStake(ctx, "alice", "V1", math.NewInt(100), 1))
	require.NoError(t, k.CommitStake(ctx, 1))

	_, _, err := k.WithdrawRewards(ctx, "alice", "V1", "alice-remote")
	require.ErrorIs(t, err, types.ErrNoRewards)
}

func TestCommitWithdrawRewardsAppliesWithdrawnFunds(t *testing.T) {
	k, ctx, _, _ := setupKeeper(t)
	activateValidator(t, k, ctx, "V1")
	require.NoError(t, k.ReceiveVirtualStake(ctx, "alice", "V1", math.NewInt(100), 1))
	require.NoError(t, k.CommitStake(ctx, 1))
	require.NoError(t, k.DistributeRewards(ctx, "V1", math.NewInt(50), "uusdc"))

	id, _, err := k.WithdrawRewards(ctx, "alice", "V1", "alice-remote")
	require.NoError(t, err)
	require.NoError(t, k.CommitWithdrawRewards(ctx, id))

	stake, found, err := k.GetStake(ctx, "alice", "V1")
	require.NoError(t, err)
	require.True(t, found)
	require.True(t, stake.WithdrawnFunds.Equal(math.NewInt(50)))

	_, _, err = k.WithdrawRewards(ctx, "alice", "V1", "alice-remote")
	require.ErrorIs(t, err, types.ErrNoRewards)
}

func TestWithdrawUnbondedReleasesMaturedAmountsOnly(t *testing.T) {
	k, ctx, vault, _ := setupKeeper(t)
	activateValidator(t, k, ctx, "V1")
	require.NoError(t, k.ReceiveVirtualStake(ctx, "alice", "V1", math.NewInt(100), 1))
	require.NoError(t, k.CommitStake(ctx, 1))

	id, err := k.Unstake(ctx, "alice", "V1", math.NewInt(40))
	require.NoError(t, err)
	require.NoError(t, k.CommitUnstake(ctx, id, 1000))

	released, err := k.WithdrawUnbonded(ctx, "alice", 1050)
	require.NoError(t, err)
	require.True(t, released.IsZero())

	released, err = k.WithdrawUnbonded(ctx, "alice", 1101)
	require.NoError(t, err)
	require.True(t, released.Equal(math.NewInt(40)))
	require.True(t, vault.released["alice"].Equal(math.NewInt(40)))
}
