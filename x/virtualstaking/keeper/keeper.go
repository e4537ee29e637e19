// Package keeper implements the Virtual-Staking Rebalancer: the
// consumer-side epoch control loop that maps a converter's requested
// delegation vector onto a capped native validator set.
package keeper

import (
	"context"
	"encoding/json"
	"sort"

	corestore "cosmossdk.io/core/store"
	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"

	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/osmosis-labs/mesh-security/x/virtualstaking/types"
)

// Keeper owns one consumer's Virtual-Staking Rebalancer instance: its
// config, the deferred bond-request vector, the last-applied bonded
// vector, the pending slash-request and inactive-validator sets, and the
// in-flight reward-withdraw reply queue.
type Keeper struct {
	storeService corestore.KVStoreService
	cdc          codec.BinaryCodec
	native       types.NativeStakingKeeper
	converter    types.ConverterKeeper
}

// NewKeeper constructs a Virtual-Staking Rebalancer Keeper. Panics on a nil
// dependency.
func NewKeeper(cdc codec.BinaryCodec, storeService corestore.KVStoreService, native types.NativeStakingKeeper, converter types.ConverterKeeper) Keeper {
	if cdc == nil {
		panic("virtualstaking keeper: cdc is nil")
	}
	if storeService == nil {
		panic("virtualstaking keeper: store service is nil")
	}
	if native == nil {
		panic("virtualstaking keeper: native staking keeper is nil")
	}
	if converter == nil {
		panic("virtualstaking keeper: converter keeper is nil")
	}
	return Keeper{storeService: storeService, cdc: cdc, native: native, converter: converter}
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
		return types.Config{}, types.ErrInvalidRequest.Wrap("virtual-staking instance has no config set")
	}
	var cfg types.Config
	if err := json.Unmarshal(bz, &cfg); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

func (k Keeper) SetConfig(ctx context.Context, cfg types.Config) error {
	if cfg.RewardsDenom == "" {
		return types.ErrInvalidRequest.Wrap("rewards_denom must be set")
	}
	if cfg.Converter == "" {
		return types.ErrInvalidRequest.Wrap("converter must be set")
	}
	bz, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	store := k.storeService.OpenKVStore(ctx)
	return store.Set(types.ConfigKey, bz)
}

// ---- bond_requests ----

func (k Keeper) GetBondRequest(ctx context.Context, validator string) (math.Int, error) {
	store := k.storeService.OpenKVStore(ctx)
	bz, err := store.Get(types.BondRequestKey(validator))
	if err != nil {
		return math.Int{}, err
	}
	if bz == nil {
		return math.ZeroInt(), nil
	}
	var amt math.Int
	if err := json.Unmarshal(bz, &amt); err != nil {
		return math.Int{}, err
	}
	return amt, nil
}

func (k Keeper) SetBondRequest(ctx context.Context, validator string, amount math.Int) error {
	store := k.storeService.OpenKVStore(ctx)
	if !amount.IsPositive() {
		return store.Delete(types.BondRequestKey(validator))
	}
	bz, err := json.Marshal(amount)
	if err != nil {
		return err
	}
	return store.Set(types.BondRequestKey(validator), bz)
}

// ListBondRequests returns every validator's current bond_requests entry as
// a map keyed by validator address; iteration over the map has no defined
// order.
func (k Keeper) ListBondRequests(ctx context.Context) (map[string]math.Int, error) {
	store := k.storeService.OpenKVStore(ctx)
	it, err := store.Iterator(types.BondRequestKeyPrefix, storetypes.PrefixEndBytes(types.BondRequestKeyPrefix))
	if err != nil {
		return nil, err
	}
	defer it.Close()

	out := map[string]math.Int{}
	for ; it.Valid(); it.Next() {
		validator := string(it.Key()[len(types.BondRequestKeyPrefix):])
		var amt math.Int
		if err := json.Unmarshal(it.Value(), &amt); err != nil {
			return nil, err
		}
		out[validator] = amt
	}
	return out, nil
}

// ---- bonded ----

func (k Keeper) GetBonded(ctx context.Context) ([]types.BondedValidator, error) {
	store := k.storeService.OpenKVStore(ctx)
	bz, err := store.Get(types.BondedKey)
	if err != nil {
		return nil, err
	}
	if bz == nil {
		return nil, nil
	}
	var out []types.BondedValidator
	if err := json.Unmarshal(bz, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (k Keeper) SetBonded(ctx context.Context, bonded []types.BondedValidator) error {
	sort.Slice(bonded, func(i, j int) bool { return bonded[i].Validator < bonded[j].Validator })
	bz, err := json.Marshal(bonded)
	if err != nil {
		return err
	}
	store := k.storeService.OpenKVStore(ctx)
	return store.Set(types.BondedKey, bz)
}

// ---- slash_requests ----

func (k Keeper) GetSlashRequests(ctx context.Context) ([]types.SlashRequest, error) {
	store := k.storeService.OpenKVStore(ctx)
	bz, err := store.Get(types.SlashRequestsKey)
	if err != nil {
		return nil, err
	}
	if bz == nil {
		return nil, nil
	}
	var out []types.SlashRequest
	if err := json.Unmarshal(bz, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (k Keeper) AppendSlashRequests(ctx context.Context, reqs []types.SlashRequest) error {
	if len(reqs) == 0 {
		return nil
	}
	existing, err := k.GetSlashRequests(ctx)
	if err != nil {
		return err
	}
	existing = append(existing, reqs...)
	bz, err := json.Marshal(existing)
	if err != nil {
		return err
	}
	store := k.storeService.OpenKVStore(ctx)
	return store.Set(types.SlashRequestsKey, bz)
}

func (k Keeper) clearSlashRequests(ctx context.Context) error {
	store := k.storeService.OpenKVStore(ctx)
	return store.Delete(types.SlashRequestsKey)
}

// ---- inactive ----

func (k Keeper) GetInactive(ctx context.Context) (map[string]bool, error) {
	store := k.storeService.OpenKVStore(ctx)
	bz, err := store.Get(types.InactiveKey)
	if err != nil {
		return nil, err
	}
	out := map[string]bool{}
	if bz == nil {
		return out, nil
	}
	var list []string
	if err := json.Unmarshal(bz, &list); err != nil {
		return nil, err
	}
	for _, v := range list {
		out[v] = true
	}
	return out, nil
}

func (k Keeper) SetInactive(ctx context.Context, set map[string]bool) error {
	list := make([]string, 0, len(set))
	for v, on := range set {
		if on {
			list = append(list, v)
		}
	}
	sort.Strings(list)
	bz, err := json.Marshal(list)
	if err != nil {
		return err
	}
	store := k.storeService.OpenKVStore(ctx)
	return store.Set(types.InactiveKey, bz)
}

// ---- reward queue ----

func (k Keeper) GetRewardQueue(ctx context.Context) (types.RewardQueue, error) {
	store := k.storeService.OpenKVStore(ctx)
	bz, err := store.Get(types.RewardQueueKey)
	if err != nil {
		return types.RewardQueue{}, err
	}
	if bz == nil {
		return types.RewardQueue{TotalSoFar: math.ZeroInt()}, nil
	}
	var q types.RewardQueue
	if err := json.Unmarshal(bz, &q); err != nil {
		return types.RewardQueue{}, err
	}
	return q, nil
}

func (k Keeper) setRewardQueue(ctx context.Context, q types.RewardQueue) error {
	bz, err := json.Marshal(q)
	if err != nil {
		return err
	}
	store := k.storeService.OpenKVStore(ctx)
	return store.Set(types.RewardQueueKey, bz)
}

func (k Keeper) clearRewardQueue(ctx context.Context) error {
	store := k.storeService.OpenKVStore(ctx)
	return store.Delete(types.RewardQueueKey)
}
