package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/osmosis-labs/mesh-security/x/vault/types"
)

func TestCommitTxFailsForUnknownTx(t *testing.T) {
	k, ctx := setupKeeper(t)
	err := k.CommitTx(ctx, 9999)
	require.ErrorIs(t, err, types.ErrTxNotFound)
}

func TestRollbackTxFailsForUnknownTx(t *testing.T) {
	k, ctx := setupKeeper(t)
	err := k.RollbackTx(ctx, 9999)
	require.ErrorIs(t, err, types.ErrTxNotFound)
}

func TestDuplicateCommitFailsCleanly(t *testing.T) {
	k, ctx := setupKeeper(t)
	user := "user1"
	require.NoError(t, k.Bond(ctx, user, math.NewInt(300)))

	cross := &mockStakingKeeper{maxSlash: math.LegacyNewDecWithPrec(10, 2)}
	txID, err := k.StakeRemote(ctx, user, "contractA", math.NewInt(100), cross, "V1", nil)
	require.NoError(t, err)

	require.NoError(t, k.CommitTx(ctx, txID))
	err = k.CommitTx(ctx, txID)
	require.ErrorIs(t, err, types.ErrTxNotFound)
}
