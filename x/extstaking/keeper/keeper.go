// Package keeper implements the Validator-Set CRDT, the Stake/Distribution
// reward ledger, and the External-Staking Engine orchestrating
// stake/unstake/burn/reward-withdraw over the tx journal and valset CRDT,
// one instance per consumer.
package keeper

import (
	"context"
	"encoding/json"

	corestore "cosmossdk.io/core/store"
	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"

	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/osmosis-labs/mesh-security/pkg/txjournal"
	"github.com/osmosis-labs/mesh-security/x/extstaking/types"
)

// Keeper owns one consumer's External-Staking instance: its config, the
// validator-set CRDT, the per-(user,validator) stake ledger, the
// per-validator reward accumulator, and the pending-tx journal backing
// stake/unstake's two-phase commit.
type Keeper struct {
	storeService corestore.KVStoreService
	cdc          codec.BinaryCodec
	vault        types.VaultKeeper
	packets      types.PacketSender
	journal      txjournal.Journal
}

// NewKeeper constructs an External-Staking Keeper. Panics on a nil
// dependency, same as the other keepers in this module.
func NewKeeper(cdc codec.BinaryCodec, storeService corestore.KVStoreService, vault types.VaultKeeper, packets types.PacketSender) Keeper {
	if cdc == nil {
		panic("extstaking keeper: cdc is nil")
	}
	if storeService == nil {
		panic("extstaking keeper: store service is nil")
	}
	if vault == nil {
		panic("extstaking keeper: vault keeper is nil")
	}
	if packets == nil {
		panic("extstaking keeper: packet sender is nil")
	}
	return Keeper{
		storeService: storeService,
		cdc:          cdc,
		vault:        vault,
		packets:      packets,
		journal:      txjournal.New(storeService, types.TxCounterKey, types.PendingTxKeyPrefix, txjournal.ExternalStakingRangeStart),
	}
}

func (k Keeper) Logger(ctx context.Context) log.Logger {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.Logger().With("module", "x/"+types.ModuleName)
}

// ---- Config ----

func (k Keeper) GetConfig(ctx context.Context) (types.Config, error) {
	store := k.storeService.OpenKVStore(ctx)
	bz, err := store.Get(types.ConfigKey)
	if err != nil {
		return types.Config{}, err
	}
	if bz == nil {
		return types.Config{}, types.ErrInvalidRequest.Wrap("external-staking instance has no config set")
	}
	var cfg types.Config
	if err := json.Unmarshal(bz, &cfg); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

func (k Keeper) SetConfig(ctx context.Context, cfg types.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	bz, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	store := k.storeService.OpenKVStore(ctx)
	return store.Set(types.ConfigKey, bz)
}

// ---- Stake ----

func (k Keeper) GetStake(ctx context.Context, user, validator string) (types.Stake, bool, error) {
	store := k.storeService.OpenKVStore(ctx)
	bz, err := store.Get(types.StakeKey(user, validator))
	if err != nil {
		return types.Stake{}, false, err
	}
	if bz == nil {
		return types.NewStake(user, validator), false, nil
	}
	var s types.Stake
	if err := json.Unmarshal(bz, &s); err != nil {
		return types.Stake{}, false, err
	}
	return s, true, nil
}

func (k Keeper) SetStake(ctx context.Context, s types.Stake) error {
	store := k.storeService.OpenKVStore(ctx)
	if s.Empty() {
		return store.Delete(types.StakeKey(s.User, s.Validator))
	}
	bz, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return store.Set(types.StakeKey(s.User, s.Validator), bz)
}

// ListStakesByUser returns every stake belonging to user.
func (k Keeper) ListStakesByUser(ctx context.Context, user string) ([]types.Stake, error) {
	store := k.storeService.OpenKVStore(ctx)
	prefix := types.StakeUserPrefix(user)
	it, err := store.Iterator(prefix, storetypes.PrefixEndBytes(prefix))
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var out []types.Stake
	for ; it.Valid(); it.Next() {
		var s types.Stake
		if err := json.Unmarshal(it.Value(), &s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// ListStakesByValidator returns every stake delegated to validator, used by
// handle_slashing. Stakes are keyed by (user, validator) so this is a full
// scan with a filter rather than a contiguous prefix range.
func (k Keeper) ListStakesByValidator(ctx context.Context, validator string) ([]types.Stake, error) {
	store := k.storeService.OpenKVStore(ctx)
	it, err := store.Iterator(types.StakeKeyPrefix, storetypes.PrefixEndBytes(types.StakeKeyPrefix))
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var out []types.Stake
	for ; it.Valid(); it.Next() {
		var s types.Stake
		if err := json.Unmarshal(it.Value(), &s); err != nil {
			return nil, err
		}
		if s.Validator == validator {
			out = append(out, s)
		}
	}
	return out, nil
}

// ---- Distribution ----

func (k Keeper) GetDistribution(ctx context.Context, validator string) (types.Distribution, error) {
	store := k.storeService.OpenKVStore(ctx)
	bz, err := store.Get(types.DistributionKey(validator))
	if err != nil {
		return types.Distribution{}, err
	}
	if bz == nil {
		return types.NewDistribution(validator), nil
	}
	var d types.Distribution
	if err := json.Unmarshal(bz, &d); err != nil {
		return types.Distribution{}, err
	}
	return d, nil
}

func (k Keeper) SetDistribution(ctx context.Context, d types.Distribution) error {
	bz, err := json.Marshal(d)
	if err != nil {
		return err
	}
	store := k.storeService.OpenKVStore(ctx)
	return store.Set(types.DistributionKey(d.Validator), bz)
}

// ---- Validator CRDT ----

func (k Keeper) GetValidator(ctx context.Context, validator string) (types.ValidatorRecord, bool, error) {
	store := k.storeService.OpenKVStore(ctx)
	bz, err := store.Get(types.ValidatorKey(validator))
	if err != nil {
		return types.ValidatorRecord{}, false, err
	}
	if bz == nil {
		return types.ValidatorRecord{Address: validator, State: types.ValidatorUnbonded}, false, nil
	}
	var v types.ValidatorRecord
	if err := json.Unmarshal(bz, &v); err != nil {
		return types.ValidatorRecord{}, false, err
	}
	return v, true, nil
}

func (k Keeper) SetValidator(ctx context.Context, v types.ValidatorRecord) error {
	bz, err := json.Marshal(v)
	if err != nil {
		return err
	}
	store := k.storeService.OpenKVStore(ctx)
	return store.Set(types.ValidatorKey(v.Address), bz)
}
