// Package keeper implements the Vault: the collateral custodian that
// maintains per-user liens, enforces the global solvency invariant, and
// drives slashing propagation.
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
	"github.com/osmosis-labs/mesh-security/x/vault/types"
)

// Keeper owns the vault's KV store: config, per-user accounts, liens, and
// the pending-tx journal backing stake_remote's two-phase commit.
type Keeper struct {
	storeService corestore.KVStoreService
	cdc          codec.BinaryCodec
	bankKeeper   types.BankKeeper
	journal      txjournal.Journal
}

// NewKeeper constructs a vault Keeper. Panics on a nil dependency: a
// missing dependency here is a programmer error, not a runtime condition.
func NewKeeper(cdc codec.BinaryCodec, storeService corestore.KVStoreService, bankKeeper types.BankKeeper) Keeper {
	if cdc == nil {
		panic("vault keeper: cdc is nil")
	}
	if storeService == nil {
		panic("vault keeper: store service is nil")
	}
	if bankKeeper == nil {
		panic("vault keeper: bank keeper is nil")
	}
	return Keeper{
		storeService: storeService,
		cdc:          cdc,
		bankKeeper:   bankKeeper,
		journal:      txjournal.New(storeService, types.TxCounterKey, types.PendingTxKeyPrefix, txjournal.VaultRangeStart),
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
		return types.Config{}, types.ErrInvalidRequest.Wrap("vault has no config set")
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

// ---- UserAccount ----

func (k Keeper) GetUser(ctx context.Context, user string) (types.UserAccount, bool, error) {
	store := k.storeService.OpenKVStore(ctx)
	bz, err := store.Get(types.UserKey(user))
	if err != nil {
		return types.UserAccount{}, false, err
	}
	if bz == nil {
		return types.NewUserAccount(), false, nil
	}
	var acc types.UserAccount
	if err := json.Unmarshal(bz, &acc); err != nil {
		return types.UserAccount{}, false, err
	}
	return acc, true, nil
}

func (k Keeper) SetUser(ctx context.Context, user string, acc types.UserAccount) error {
	bz, err := json.Marshal(acc)
	if err != nil {
		return err
	}
	store := k.storeService.OpenKVStore(ctx)
	return store.Set(types.UserKey(user), bz)
}

// ---- Lien ----

func (k Keeper) GetLien(ctx context.Context, user, holder string) (types.Lien, bool, error) {
	store := k.storeService.OpenKVStore(ctx)
	bz, err := store.Get(types.LienKey(user, holder))
	if err != nil {
		return types.Lien{}, false, err
	}
	if bz == nil {
		return types.Lien{}, false, nil
	}
	var lien types.Lien
	if err := json.Unmarshal(bz, &lien); err != nil {
		return types.Lien{}, false, err
	}
	return lien, true, nil
}

func (k Keeper) SetLien(ctx context.Context, lien types.Lien) error {
	store := k.storeService.OpenKVStore(ctx)
	if lien.Empty() {
		return store.Delete(types.LienKey(lien.User, lien.Holder))
	}
	bz, err := json.Marshal(lien)
	if err != nil {
		return err
	}
	return store.Set(types.LienKey(lien.User, lien.Holder), bz)
}

// ListLiens returns every lien belonging to user, used to recompute
// max_lien and to enumerate claims for slashing propagation.
func (k Keeper) ListLiens(ctx context.Context, user string) ([]types.Lien, error) {
	store := k.storeService.OpenKVStore(ctx)
	prefix := types.LienUserPrefix(user)
	it, err := store.Iterator(prefix, storetypes.PrefixEndBytes(prefix))
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var out []types.Lien
	for ; it.Valid(); it.Next() {
		var lien types.Lien
		if err := json.Unmarshal(it.Value(), &lien); err != nil {
			return nil, err
		}
		out = append(out, lien)
	}
	return out, nil
}

// RecomputeMaxLien recomputes a user's max_lien as the pointwise maximum
// over all of that user's liens' amount ranges, and persists the updated account.
func (k Keeper) RecomputeMaxLien(ctx context.Context, user string) error {
	acc, _, err := k.GetUser(ctx, user)
	if err != nil {
		return err
	}
	liens, err := k.ListLiens(ctx, user)
	if err != nil {
		return err
	}
	max := valuerangeZero()
	for _, l := range liens {
		max = maxRange(max, l.Amount)
	}
	acc.MaxLien = max
	return k.SetUser(ctx, user, acc)
}
