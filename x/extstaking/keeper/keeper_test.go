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

	"github.com/osmosis-labs/mesh-security/x/extstaking/keeper"
	"github.com/osmosis-labs/mesh-security/x/extstaking/types"
)

type mockVaultKeeper struct {
	committed []uint64
	rolledBack []uint64
	released  map[string]math.Int
	crossSlashes []crossSlashCall
}

type crossSlashCall struct {
	sender     string
	validator  string
	slashes    []types.SlashInstruction
}

func newMockVaultKeeper() *mockVaultKeeper {
	return &mockVaultKeeper{released: map[string]math.Int{}}
}

func (m *mockVaultKeeper) CommitTx(ctx context.Context, txID uint64) error {
	m.committed = append(m.committed, txID)
	return nil
}

func (m *mockVaultKeeper) RollbackTx(ctx context.Context, txID uint64) error {
	m.rolledBack = append(m.rolledBack, txID)
	return nil
}

func (m *mockVaultKeeper) ReleaseCrossStake(ctx context.Context, user, contract string, amount math.Int) error {
	cur, ok := m.released[user]
	if !ok {
		cur = math.ZeroInt()
	}
	m.released[user] = cur.Add(amount)
	return nil
}

func (m *mockVaultKeeper) CrossSlash(ctx context.Context, sender string, slashes []types.SlashInstruction, validator string) error {
	m.crossSlashes = append(m.crossSlashes, crossSlashCall{sender: sender, validator: validator, slashes: slashes})
	return nil
}

type mockPacketSender struct {
	stakes    []string
	unstakes  []string
	burns     [][]types.BurnOutcome
	transfers []math.Int
}

func (m *mockPacketSender) SendStake(ctx context.Context, delegator, validator string, amount math.Int, txID uint64) error {
	m.stakes = append(m.stakes, delegator)
	return nil
}

func (m *mockPacketSender) SendUnstake(ctx context.Context, delegator, validator string, amount math.Int, txID uint64) error {
	m.unstakes = append(m.unstakes, delegator)
	return nil
}

func (m *mockPacketSender) SendBurn(ctx context.Context, outcomes []types.BurnOutcome) error {
	m.burns = append(m.burns, outcomes)
	return nil
}

func (m *mockPacketSender) SendTransferRewards(ctx context.Context, amount math.Int, recipient string, txID uint64) error {
	m.transfers = append(m.transfers, amount)
	return nil
}

func setupKeeper(t *testing.T) (keeper.Keeper, context.Context, *mockVaultKeeper, *mockPacketSender) {
	t.Helper()
	key := storetypes.NewKVStoreKey(types.StoreKey)
	sdkCtx := testutil.DefaultContextWithDB(t, key, storetypes.NewTransientStoreKey("transient_test")).Ctx
	sdkCtx = sdkCtx.WithEventManager(sdk.NewEventManager()).WithLogger(log.NewNopLogger())

	storeService := runtime.NewKVStoreService(key)
	cdc := codec.NewProtoCodec(codectypes.NewInterfaceRegistry())

	vault := newMockVaultKeeper()
	packets := &mockPacketSender{}

	k := keeper.NewKeeper(cdc, storeService, vault, packets)
	require.NoError(t, k.SetConfig(sdkCtx, types.Config{
		Denom:           "osmo",
		RewardsDenom:    "uusdc",
		Vault:           "vault1",
		UnbondingPeriod: 100,
		MaxSlashing:     math.LegacyNewDecWithPrec(10, 2),
	}))
	return k, sdkCtx, vault, packets
}

func activateValidator(t *testing.T, k keeper.Keeper, ctx context.Context, validator string) {
	t.Helper()
	require.NoError(t, k.SetValidator(ctx, types.ValidatorRecord{Address: validator, State: types.ValidatorActive}))
}
