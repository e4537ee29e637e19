package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/osmosis-labs/mesh-security/x/virtualstaking/types"
)

func TestHandleValsetUpdateTracksInactiveAndRelays(t *testing.T) {
	k, ctx, _, converter := setupKeeper(t, math.NewInt(100))

	update := types.ValsetUpdate{
		Height:    1,
		Time:      1000,
		Additions: []string{"V1"},
	}
	require.NoError(t, k.HandleValsetUpdate(ctx, update))

	inactive, err := k.GetInactive(ctx)
	require.NoError(t, err)
	require.False(t, inactive["V1"])

	update2 := types.ValsetUpdate{
		Height:   2,
		Time:     2000,
		Removals: []string{"V1"},
	}
	require.NoError(t, k.HandleValsetUpdate(ctx, update2))

	inactive, err = k.GetInactive(ctx)
	require.NoError(t, err)
	require.True(t, inactive["V1"])

	require.Len(t, converter.relayed, 2)
}

func TestHandleValsetUpdateQueuesSlashRequestsForNextEpoch(t *testing.T) {
	k, ctx, _, _ := setupKeeper(t, math.NewInt(100))
	require.NoError(t, k.Bond(ctx, "V1", math.NewInt(10)))
	require.NoError(t, k.HandleEpoch(ctx))

	update := types.ValsetUpdate{
		Height: 2,
		Time:   2000,
		Slashed: []types.SlashRequest{
			{Validator: "V1", Amount: math.NewInt(3)},
		},
	}
	require.NoError(t, k.HandleValsetUpdate(ctx, update))

	requests, err := k.GetSlashRequests(ctx)
	require.NoError(t, err)
	require.Len(t, requests, 1)

	require.NoError(t, k.HandleEpoch(ctx))

	bonded, err := k.GetBonded(ctx)
	require.NoError(t, err)
	var found bool
	for _, b := range bonded {
		if b.Validator == "V1" {
			found = true
			require.True(t, b.Amount.Equal(math.NewInt(7)))
		}
	}
	require.True(t, found)
}
