// Package txjournal implements a monotonic tx-id generator and pending-tx
// table shared by the Vault's and the External-Staking Engine's two-phase
// commit layers.
//
// The Vault issues ids from [1, 2^63); External-Staking issues from
// [2^63, 2^64). Both ranges are monotonic within their half and ids are
// never reused, so a duplicate ack (after the tx has already been
// committed/rolled back) finds nothing and fails cleanly.
package txjournal

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	corestore "cosmossdk.io/core/store"
)

// VaultRangeStart is the first id issued by a Vault-owned journal.
const VaultRangeStart uint64 = 1

// ExternalStakingRangeStart is the first id issued by an External-Staking
// -owned journal; this is also the exclusive end of the Vault's range.
const ExternalStakingRangeStart uint64 = 1 << 63

// Journal manages tx-id allocation and the pending-tx table within a single
// KVStore keyspace. Each owning keeper embeds one, scoped under its own key
// prefix and its own half of the id space.
type Journal struct {
	storeService corestore.KVStoreService
	counterKey   []byte
	txPrefix     []byte
	rangeStart   uint64
}

// New builds a Journal that allocates ids starting at rangeStart (use
// VaultRangeStart or ExternalStakingRangeStart) and stores the counter and
// pending-tx table under the given keys/prefix.
func New(storeService corestore.KVStoreService, counterKey, txPrefix []byte, rangeStart uint64) Journal {
	if storeService == nil {
		panic("txjournal: store service is nil")
	}
	return Journal{storeService: storeService, counterKey: counterKey, txPrefix: txPrefix, rangeStart: rangeStart}
}

func txKey(prefix []byte, id uint64) []byte {
	bz := make([]byte, len(prefix)+8)
	copy(bz, prefix)
	binary.BigEndian.PutUint64(bz[len(prefix):], id)
	return bz
}

// NextID allocates and persists the next monotonic tx id in this journal's
// range.
func (j Journal) NextID(ctx context.Context) (uint64, error) {
	store := j.storeService.OpenKVStore(ctx)
	bz, err := store.Get(j.counterKey)
	if err != nil {
		return 0, err
	}
	next := j.rangeStart
	if bz != nil {
		if len(bz) != 8 {
			return 0, fmt.Errorf("txjournal: invalid counter encoding")
		}
		next = binary.BigEndian.Uint64(bz)
		if next < j.rangeStart {
			next = j.rangeStart
		}
	}
	out := make([]byte, 8)
	binary.BigEndian.PutUint64(out, next+1)
	if err := store.Set(j.counterKey, out); err != nil {
		return 0, err
	}
	return next, nil
}

// Put stores a pending tx payload (any JSON-serializable value) under id.
func (j Journal) Put(ctx context.Context, id uint64, tx interface{}) error {
	bz, err := json.Marshal(tx)
	if err != nil {
		return err
	}
	store := j.storeService.OpenKVStore(ctx)
	return store.Set(txKey(j.txPrefix, id), bz)
}

// Get loads a pending tx into dest (a pointer). Returns found=false if no
// such tx is pending — this is how a duplicate ack or a timeout racing an
// ack fails cleanly instead of double-applying.
func (j Journal) Get(ctx context.Context, id uint64, dest interface{}) (found bool, err error) {
	store := j.storeService.OpenKVStore(ctx)
	bz, err := store.Get(txKey(j.txPrefix, id))
	if err != nil {
		return false, err
	}
	if bz == nil {
		return false, nil
	}
	if err := json.Unmarshal(bz, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes a pending tx, making a later duplicate ack/timeout on the
// same id a clean no-op-turned-failure rather than a double-apply.
func (j Journal) Remove(ctx context.Context, id uint64) error {
	store := j.storeService.OpenKVStore(ctx)
	return store.Delete(txKey(j.txPrefix, id))
}
