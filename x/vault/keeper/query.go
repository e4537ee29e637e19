package keeper

import (
	"context"
	"encoding/json"

	storetypes "cosmossdk.io/store/types"

	"github.com/osmosis-labs/mesh-security/x/vault/types"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 30
)

func clampPageLimit(limit int) int {
	if limit <= 0 {
		return defaultPageLimit
	}
	if limit > maxPageLimit {
		return maxPageLimit
	}
	return limit
}

// AccountsPage is one page of a ListAccounts range query.
type AccountsPage struct {
	Accounts []types.UserAccount
	Users    []string
	NextKey  []byte
}

// ListAccounts paginates over every user account in the vault. startAfter is
// the NextKey returned by a previous page (nil for the first page).
func (k Keeper) ListAccounts(ctx context.Context, startAfter []byte, limit int) (AccountsPage, error) {
	limit = clampPageLimit(limit)
	store := k.storeService.OpenKVStore(ctx)
	start := types.UserKeyPrefix
	if startAfter != nil {
		start = startAfter
	}
	it, err := store.Iterator(start, storetypes.PrefixEndBytes(types.UserKeyPrefix))
	if err != nil {
		return AccountsPage{}, err
	}
	defer it.Close()

	var page AccountsPage
	for ; it.Valid(); it.Next() {
		if len(page.Accounts) >= limit {
			page.NextKey = append([]byte{}, it.Key()...)
			break
		}
		var acc types.UserAccount
		if err := json.Unmarshal(it.Value(), &acc); err != nil {
			return AccountsPage{}, err
		}
		page.Accounts = append(page.Accounts, acc)
		page.Users = append(page.Users, string(it.Key()[len(types.UserKeyPrefix):]))
	}
	return page, nil
}

// PendingTxsPage is one page of a ListPendingTxs range query.
type PendingTxsPage struct {
	Txs     []types.InFlightStaking
	NextKey []byte
}

// ListPendingTxs paginates over every in-flight stake_remote tx journaled by
// this vault, in tx-id order.
func (k Keeper) ListPendingTxs(ctx context.Context, startAfter []byte, limit int) (PendingTxsPage, error) {
	limit = clampPageLimit(limit)
	store := k.storeService.OpenKVStore(ctx)
	prefixEnd := storetypes.PrefixEndBytes(types.PendingTxKeyPrefix)
	start := types.PendingTxKeyPrefix
	if startAfter != nil {
		start = startAfter
	}
	it, err := store.Iterator(start, prefixEnd)
	if err != nil {
		return PendingTxsPage{}, err
	}
	defer it.Close()

	var page PendingTxsPage
	for ; it.Valid(); it.Next() {
		if len(page.Txs) >= limit {
			page.NextKey = append([]byte{}, it.Key()...)
			break
		}
		var tx types.InFlightStaking
		if err := json.Unmarshal(it.Value(), &tx); err != nil {
			return PendingTxsPage{}, err
		}
		page.Txs = append(page.Txs, tx)
	}
	return page, nil
}
