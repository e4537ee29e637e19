package keeper_test

import (
	"context"
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"

	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/testutil"
	"github.com/stretchr/testify/require"

	"github.com/osmosis-labs/mesh-security/x/vault/keeper"
	"github.com/osmosis-labs/mesh-security/x/vault/types"
)

type mockBankKeeper struct{}

func (mockBankKeeper) SendCoinsFromAccountToModule(context.Context, sdk.AccAddress, string, sdk.Coins) error {
	return nil
}

func (mockBankKeeper) SendCoinsFromModuleToAccount(context.Context, string, sdk.AccAddress, sdk.Coins) error {
	return nil
}

// mockStakingKeeper satisfies both LocalStakingKeeper and CrossStakingKeeper
// with a fixed max-slash ratio, recording every forwarded call for
// assertions.
type mockStakingKeeper struct {
	maxSlash math.LegacyDec
	received []math.Int
}

func (m *mockStakingKeeper) MaxSlash(context.Context) (math.LegacyDec, error) {
	return m.maxSlash, nil
}

func (m *mockStakingKeeper) ReceiveStake(_ context.Context, _ string, amount math.Int, _ []byte) error {
	m.received = append(m.received, amount)
	return nil
}

func (m *mockStakingKeeper) BurnStake(context.Context, string, math.Int, string) error {
	return nil
}

func (m *mockStakingKeeper) ReceiveVirtualStake(_ context.Context, _ string, amount math.Int, _ uint64, _ string) error {
	m.received = append(m.received, amount)
	return nil
}

func (m *mockStakingKeeper) BurnVirtualStake(context.Context, string, math.Int, string) error {
	return nil
}

func setupKeeper(t *testing.T) (keeper.Keeper, context.Context) {
	t.Helper()
	key := storetypes.NewKVStoreKey(types.StoreKey)
	testCtx := testutil.DefaultContextWithDB(t, key, storetypes.NewTransientStoreKey("transient_test"))
	ctx := testCtx.Ctx.WithEventManager(sdk.NewEventManager()).WithLogger(log.NewNopLogger())
	storeService := runtime.NewKVStoreService(key)
	cdc := codec.NewProtoCodec(codectypes.NewInterfaceRegistry())

	k := keeper.NewKeeper(cdc, storeService, mockBankKeeper{})
	require.NoError(t, k.SetConfig(ctx, types.Config{Denom: "osmo", LocalStaking: "local1"}))
	return k, ctx
}
