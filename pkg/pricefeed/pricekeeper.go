// Package pricefeed implements a last-known-price store with a TTL. It is
// the provider-side anchor for oracle data supplied by pluggable IBC-feed
// variants (band, osmosis, simple, remote) — those data-source adapters
// live outside this package, which only implements the storage/staleness
// contract they feed into.
package pricefeed

import (
	"time"

	"cosmossdk.io/math"
)

// Info is the last price observation recorded by the keeper.
type Info struct {
	Time            time.Time    `json:"time"`
	NativePerForeign math.LegacyDec `json:"native_per_foreign"`
}

// Keeper stores the single latest price observation plus its TTL.
//
// It is intentionally storage-agnostic: callers own persistence (typically
// a single KVStore key) and pass the previously-loaded Info (or nil) into
// Update, then persist the returned Info.
type Keeper struct {
	TTL time.Duration
}

// NewKeeper builds a Keeper with the given staleness window.
func NewKeeper(ttl time.Duration) Keeper {
	return Keeper{TTL: ttl}
}

// Update applies a new (time, twap) observation on top of the previously
// stored one. Updates with a time strictly older than the currently stored
// observation are silently rejected (not an error) so that out-of-order
// feed delivery can never regress the price.
func (k Keeper) Update(stored *Info, at time.Time, nativePerForeign math.LegacyDec) Info {
	if stored != nil && stored.Time.After(at) {
		return *stored
	}
	return Info{Time: at, NativePerForeign: nativePerForeign}
}

// ErrNoPriceData is returned by Query when no observation has ever been
// recorded.
type ErrNoPriceData struct{}

func (ErrNoPriceData) Error() string { return "pricefeed: no price data available" }

// ErrOutdated is returned by Query when the last observation has aged past
// the TTL.
type ErrOutdated struct {
	Age time.Duration
	TTL time.Duration
}

func (e ErrOutdated) Error() string {
	return "pricefeed: outdated price data"
}

// Query returns the stored native-per-foreign rate if it is fresh enough,
// else ErrOutdated (stale) or ErrNoPriceData (never set).
func (k Keeper) Query(stored *Info, now time.Time) (math.LegacyDec, error) {
	if stored == nil {
		return math.LegacyDec{}, ErrNoPriceData{}
	}
	age := now.Sub(stored.Time)
	if age > k.TTL {
		return math.LegacyDec{}, ErrOutdated{Age: age, TTL: k.TTL}
	}
	return stored.NativePerForeign, nil
}
