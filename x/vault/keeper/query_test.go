package keeper_test

import (
	"fmt"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"
)

func TestListAccountsPaginatesWithDefaultLimit(t *testing.T) {
	k, ctx := setupKeeper(t)
	for i := 0; i < 15; i++ {
		require.NoError(t, k.Bond(ctx, fmt.Sprintf("user%02d", i), math.NewInt(1)))
	}

	page, err := k.ListAccounts(ctx, nil, 0)
	require.NoError(t, err)
	require.Len(t, page.Accounts, 10)
	require.NotEmpty(t, page.NextKey)

	next, err := k.ListAccounts(ctx, page.NextKey, 0)
	require.NoError(t, err)
	require.Len(t, next.Accounts, 5)
	require.Empty(t, next.NextKey)
}

func TestListAccountsClampsOversizedLimit(t *testing.T) {
	k, ctx := setupKeeper(t)
	for i := 0; i < 40; i++ {
		require.NoError(t, k.Bond(ctx, fmt.Sprintf("user%02d", i), math.NewInt(1)))
	}

	page, err := k.ListAccounts(ctx, nil, 1000)
	require.NoError(t, err)
	require.Len(t, page.Accounts, 30)
}

func TestListPendingTxsReturnsJournaledStakes(t *testing.T) {
	k, ctx := setupKeeper(t)
	require.NoError(t, k.Bond(ctx, "user1", math.NewInt(1000)))

	cross := &mockStakingKeeper{maxSlash: math.LegacyNewDecWithPrec(10, 2)}
	_, err := k.StakeRemote(ctx, "user1", "contractA", math.NewInt(10), cross, "V1", nil)
	require.NoError(t, err)
	_, err = k.StakeRemote(ctx, "user1", "contractB", math.NewInt(20), cross, "V2", nil)
	require.NoError(t, err)

	page, err := k.ListPendingTxs(ctx, nil, 0)
	require.NoError(t, err)
	require.Len(t, page.Txs, 2)
}
