package txjournal_test

import (
	"testing"

	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/runtime"
	"github.com/cosmos/cosmos-sdk/testutil"
	"github.com/stretchr/testify/require"

	"github.com/osmosis-labs/mesh-security/pkg/txjournal"
)

func TestNextIDMonotonicWithinRange(t *testing.T) {
	key := storetypes.NewKVStoreKey("vault")
	sdkCtx := testutil.DefaultContextWithDB(t, key, storetypes.NewTransientStoreKey("transient_test")).Ctx
	svc := runtime.NewKVStoreService(key)

	j := txjournal.New(svc, []byte{0x01}, []byte{0x02}, txjournal.VaultRangeStart)

	id1, err := j.NextID(sdkCtx)
	require.NoError(t, err)
	require.Equal(t, txjournal.VaultRangeStart, id1)

	id2, err := j.NextID(sdkCtx)
	require.NoError(t, err)
	require.Equal(t, id1+1, id2)
}

func TestExternalStakingRangeStartsAtHighHalf(t *testing.T) {
	key := storetypes.NewKVStoreKey("ext")
	sdkCtx := testutil.DefaultContextWithDB(t, key, storetypes.NewTransientStoreKey("transient_test")).Ctx
	svc := runtime.NewKVStoreService(key)

	j := txjournal.New(svc, []byte{0x01}, []byte{0x02}, txjournal.ExternalStakingRangeStart)
	id, err := j.NextID(sdkCtx)
	require.NoError(t, err)
	require.Equal(t, txjournal.ExternalStakingRangeStart, id)
}

func TestPutGetRemoveRoundtrip(t *testing.T) {
	key := storetypes.NewKVStoreKey("vault")
	sdkCtx := testutil.DefaultContextWithDB(t, key, storetypes.NewTransientStoreKey("transient_test")).Ctx
	svc := runtime.NewKVStoreService(key)

	j := txjournal.New(svc, []byte{0x01}, []byte{0x02}, txjournal.VaultRangeStart)

	type payload struct {
		User   string
		Amount int64
	}
	require.NoError(t, j.Put(sdkCtx, 7, payload{User: "alice", Amount: 100}))

	var got payload
	found, err := j.Get(sdkCtx, 7, &got)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "alice", got.User)

	require.NoError(t, j.Remove(sdkCtx, 7))
	found, err = j.Get(sdkCtx, 7, &got)
	require.NoError(t, err)
	require.False(t, found, "a duplicate ack after removal must find nothing")
}
