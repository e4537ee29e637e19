package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/osmosis-labs/mesh-security/x/vault/types"
)

// TestBasicBondUnbond exercises scenario 1: user bonds 300, unbonds 200
// successfully, then a further unbond of 101 fails ClaimsLocked.
func TestBasicBondUnbond(t *testing.T) {
	k, ctx := setupKeeper(t)
	user := "user1"

	require.NoError(t, k.Bond(ctx, user, math.NewInt(300)))
	acc, found, err := k.GetUser(ctx, user)
	require.NoError(t, err)
	require.True(t, found)
	require.True(t, acc.Collateral.Equal(math.NewInt(300)))
	require.True(t, acc.FreeCollateral().Low.Equal(math.NewInt(300)))

	require.NoError(t, k.Unbond(ctx, user, math.NewInt(200)))
	acc, _, err = k.GetUser(ctx, user)
	require.NoError(t, err)
	require.True(t, acc.Collateral.Equal(math.NewInt(100)))

	err = k.Unbond(ctx, user, math.NewInt(101))
	require.ErrorIs(t, err, types.ErrClaimsLocked)
}

func TestBondRejectsNonPositiveAmount(t *testing.T) {
	k, ctx := setupKeeper(t)
	err := k.Bond(ctx, "user1", math.ZeroInt())
	require.ErrorIs(t, err, types.ErrInvalidRequest)
}

func TestUnbondFailsForUnknownUser(t *testing.T) {
	k, ctx := setupKeeper(t)
	err := k.Unbond(ctx, "nobody", math.NewInt(10))
	require.ErrorIs(t, err, types.ErrUserNotFound)
}
