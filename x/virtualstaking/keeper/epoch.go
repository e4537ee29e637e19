package keeper

import (
	"context"
	"math/big"
	"sort"

	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/osmosis-labs/mesh-security/x/virtualstaking/types"
)

// HandleEpoch runs the Rebalancer's once-per-epoch control loop: it sweeps
// rewards off every actively bonded validator, reconciles slash_requests
// against bonded/bond_requests, recomputes the desired bond vector under
// the native cap, and issues the native Unbond/Bond calls that move actual
// bonded power to match.
func (k Keeper) HandleEpoch(ctx context.Context) error {
	// Step 1: queue a reward sweep for every currently (positively) bonded
	// validator before anything else changes this epoch's numbers.
	bonded, err := k.GetBonded(ctx)
	if err != nil {
		return err
	}
	if err := k.startRewardSweep(ctx, bonded); err != nil {
		return err
	}

	// Step 2: a zero cap means the delegation proxy has been paused
	// upstream; drop all bonded power bookkeeping and stop.
	bondCap, err := k.native.BondCap(ctx)
	if err != nil {
		return err
	}
	if !bondCap.IsPositive() {
		if err := k.SetBonded(ctx, nil); err != nil {
			return err
		}
		return nil
	}

	// Step 3: reconcile pending slash_requests into bonded/bond_requests,
	// dedup the slashed validators into inactive, then clear the queue.
	slashes, err := k.GetSlashRequests(ctx)
	if err != nil {
		return err
	}
	if len(slashes) > 0 {
		bonded, err = k.applySlashRequests(ctx, bonded, slashes)
		if err != nil {
			return err
		}
		if err := k.clearSlashRequests(ctx); err != nil {
			return err
		}
	}

	// Step 4: desired = bond_requests, scaled down to fit under cap.
	requests, err := k.ListBondRequests(ctx)
	if err != nil {
		return err
	}
	desired := scaleToCap(requests, bondCap)

	// Step 5: diff vs bonded — unbonds first, then bonds.
	current := map[string]math.Int{}
	for _, b := range bonded {
		current[b.Validator] = b.Amount
	}
	if err := k.applyDiff(ctx, current, desired); err != nil {
		return err
	}

	// Step 6: bonded = desired.
	newBonded := make([]types.BondedValidator, 0, len(desired))
	for v, amt := range desired {
		if amt.IsPositive() {
			newBonded = append(newBonded, types.BondedValidator{Validator: v, Amount: amt})
		}
	}
	if err := k.SetBonded(ctx, newBonded); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(sdk.NewEvent(types.EventTypeHandleEpoch))
	return nil
}

// applySlashRequests subtracts every slash from both the bonded vector and
// the outstanding bond_requests for that validator, and marks it inactive.
func (k Keeper) applySlashRequests(ctx context.Context, bonded []types.BondedValidator, slashes []types.SlashRequest) ([]types.BondedValidator, error) {
	bondedByVal := map[string]math.Int{}
	for _, b := range bonded {
		bondedByVal[b.Validator] = b.Amount
	}

	inactive, err := k.GetInactive(ctx)
	if err != nil {
		return nil, err
	}

	for _, s := range slashes {
		if cur, ok := bondedByVal[s.Validator]; ok {
			bondedByVal[s.Validator] = subFloor(cur, s.Amount)
		}
		req, err := k.GetBondRequest(ctx, s.Validator)
		if err != nil {
			return nil, err
		}
		if err := k.SetBondRequest(ctx, s.Validator, subFloor(req, s.Amount)); err != nil {
			return nil, err
		}
		inactive[s.Validator] = true
	}
	if err := k.SetInactive(ctx, inactive); err != nil {
		return nil, err
	}

	out := make([]types.BondedValidator, 0, len(bondedByVal))
	for v, amt := range bondedByVal {
		out = append(out, types.BondedValidator{Validator: v, Amount: amt})
	}
	return out, nil
}

func subFloor(a, b math.Int) math.Int {
	out := a.Sub(b)
	if out.IsNegative() {
		return math.ZeroInt()
	}
	return out
}

// scaleToCap returns requests unchanged if their sum already fits under
// cap; otherwise it scales every entry down by cap/total using exact
// big.Int arithmetic (floor).
func scaleToCap(requests map[string]math.Int, bondCap math.Int) map[string]math.Int {
	total := math.ZeroInt()
	for _, amt := range requests {
		total = total.Add(amt)
	}
	out := make(map[string]math.Int, len(requests))
	if !total.IsPositive() || total.LTE(bondCap) {
		for v, amt := range requests {
			out[v] = amt
		}
		return out
	}

	totalBig := total.BigInt()
	capBig := bondCap.BigInt()
	for v, amt := range requests {
		prod := new(big.Int).Mul(amt.BigInt(), capBig)
		scaled := new(big.Int).Quo(prod, totalBig)
		out[v] = math.NewIntFromBigInt(scaled)
	}
	return out
}

// applyDiff issues native Unbond calls for every validator whose desired
// amount dropped, then native Bond calls for every validator whose desired
// amount rose, unbonding first so the proxy never asks the native module to
// bond more than it currently holds free.
func (k Keeper) applyDiff(ctx context.Context, current, desired map[string]math.Int) error {
	validators := map[string]bool{}
	for v := range current {
		validators[v] = true
	}
	for v := range desired {
		validators[v] = true
	}
	ordered := make([]string, 0, len(validators))
	for v := range validators {
		ordered = append(ordered, v)
	}
	sort.Strings(ordered)

	for _, v := range ordered {
		cur := current[v]
		if cur.IsNil() {
			cur = math.ZeroInt()
		}
		want := desired[v]
		if want.IsNil() {
			want = math.ZeroInt()
		}
		if want.LT(cur) {
			if err := k.native.Unbond(ctx, v, cur.Sub(want)); err != nil {
				return err
			}
		}
	}
	for _, v := range ordered {
		cur := current[v]
		if cur.IsNil() {
			cur = math.ZeroInt()
		}
		want := desired[v]
		if want.IsNil() {
			want = math.ZeroInt()
		}
		if want.GT(cur) {
			if err := k.native.Bond(ctx, v, want.Sub(cur)); err != nil {
				return err
			}
		}
	}
	return nil
}
