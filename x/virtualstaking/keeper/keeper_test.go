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
	"github.com/cosmos/cosmos-sdk/testutil"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/osmosis-labs/mesh-security/x/virtualstaking/keeper"
	"github.com/osmosis-labs/mesh-security/x/virtualstaking/types"
)

type mockNativeStaking struct {
	bondCap   math.Int
	bonds     map[string]math.Int
	unbonds   map[string]math.Int
	withdraws []string
	balances  map[string]math.Int
	nextReply uint64
	failWithdrawFor map[string]bool
}

func newMockNativeStaking(bondCap math.Int) *mockNativeStaking {
	return &mockNativeStaking{
		bondCap:  bondCap,
		bonds:    map[string]math.Int{},
		unbonds:  map[string]math.Int{},
		balances: map[string]math.Int{},
		failWithdrawFor: map[string]bool{},
	}
}

func (m *mockNativeStaking) BondCap(ctx context.Context) (math.Int, error) { return m.bondCap, nil }

func (m *mockNativeStaking) Bond(ctx context.Context, validator string, amount math.Int) error {
	m.bonds[validator] = amount
	return nil
}

func (m *mockNativeStaking) Unbond(ctx context.Context, validator string, amount math.Int) error {
	m.unbonds[validator] = amount
	return nil
}

func (m *mockNativeStaking) WithdrawDelegatorReward(ctx context.Context, validator string) (uint64, error) {
	if m.failWithdrawFor[validator] {
		return 0, assertError{"withdraw failed"}
	}
	m.withdraws = append(m.withdraws, validator)
	m.nextReply++
	return m.nextReply, nil
}

func (m *mockNativeStaking) BalanceOf(ctx context.Context, denom string) (math.Int, error) {
	return m.balances[denom], nil
}

type assertError struct{ msg string }

func (e assertError) Error() string { return e.msg }

type mockConverter struct {
	distributed [][]types.RewardPayment
	relayed     []types.ValsetUpdate
}

func (m *mockConverter) DistributeRewards(ctx context.Context, payments []types.RewardPayment) error {
	m.distributed = append(m.distributed, payments)
	return nil
}

func (m *mockConverter) RelayValsetUpdate(ctx context.Context, update types.ValsetUpdate) error {
	m.relayed = append(m.relayed, update)
	return nil
}

func setupKeeper(t *testing.T, bondCap math.Int) (keeper.Keeper, context.Context, *mockNativeStaking, *mockConverter) {
	t.Helper()
	key := storetypes.NewKVStoreKey(types.StoreKey)
	sdkCtx := testutil.DefaultContextWithDB(t, key, storetypes.NewTransientStoreKey("transient_test")).Ctx
	sdkCtx = sdkCtx.WithEventManager(sdk.NewEventManager()).WithLogger(log.NewNopLogger())

	storeService := runtime.NewKVStoreService(key)
	cdc := codec.NewProtoCodec(codectypes.NewInterfaceRegistry())

	native := newMockNativeStaking(bondCap)
	converter := &mockConverter{}

	k := keeper.NewKeeper(cdc, storeService, native, converter)
	require.NoError(t, k.SetConfig(sdkCtx, types.Config{RewardsDenom: "uusdc", Converter: "converter1"}))
	return k, sdkCtx, native, converter
}
