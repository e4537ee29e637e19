package keeper

import (
	"context"

	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/osmosis-labs/mesh-security/x/extstaking/types"
)

// distributeBurn tries to burn amount evenly across targets (amount /
// len(targets) from each, capped at what each stake actually has), then
// assigns whatever remains unburned after that even pass — rounding
// remainder or a stake too small to absorb its even share — to the first
// target with enough spare capacity to take it whole. Returns the total
// actually burned, which callers must compare against amount: it can fall
// short when the targets collectively can't absorb it even though their
// sum does, e.g. many small, unevenly sized stakes.
func distributeBurn(targets []types.Stake, amount math.Int) (math.Int, map[string]math.Int) {
	burns := make(map[string]math.Int, len(targets))
	burned := math.ZeroInt()
	even := amount.Quo(math.NewInt(int64(len(targets))))

	for _, s := range targets {
		b := s.Amount.Low
		if even.LT(b) {
			b = even
		}
		if b.IsZero() {
			continue
		}
		burns[s.Validator] = b
		burned = burned.Add(b)
	}

	if burned.LT(amount) {
		shortfall := amount.Sub(burned)
		for _, s := range targets {
			already := burns[s.Validator]
			if already.Add(shortfall).LTE(s.Amount.Low) {
				burns[s.Validator] = already.Add(shortfall)
				burned = burned.Add(shortfall)
				break
			}
		}
	}
	return burned, burns
}

// BurnVirtualStake removes amount of user's delegated stake outright (the
// burn the vault issues while propagating a slash): if validator is given, the
// whole amount comes from that one stake; otherwise distributeBurn spreads
// it evenly across every validator the user delegates to, assigning any
// shortfall to the first validator with room to take it.
func (k Keeper) BurnVirtualStake(ctx context.Context, user, validator string, amount math.Int) error {
	if !amount.IsPositive() {
		return types.ErrInvalidRequest.Wrap("amount must be positive")
	}

	var targets []types.Stake
	if validator != "" {
		s, found, err := k.GetStake(ctx, user, validator)
		if err != nil {
			return err
		}
		if !found {
			return types.ErrStakeNotFound.Wrapf("user %s validator %s", user, validator)
		}
		targets = []types.Stake{s}
	} else {
		stakes, err := k.ListStakesByUser(ctx, user)
		if err != nil {
			return err
		}
		targets = stakes
	}
	if len(targets) == 0 {
		return types.ErrInsufficientDelegations.Wrapf("user %s has no delegations", user)
	}

	burned, burns := distributeBurn(targets, amount)
	if burned.LT(amount) {
		return types.ErrInsufficientDelegations.Wrapf("have %s want %s", burned, amount)
	}

	outcomes := make([]types.BurnOutcome, 0, len(burns))
	for _, s := range targets {
		burn, ok := burns[s.Validator]
		if !ok || burn.IsZero() {
			continue
		}

		dist, err := k.GetDistribution(ctx, s.Validator)
		if err != nil {
			return err
		}
		s.Amount = s.Amount.SubClamped(burn, math.ZeroInt())
		dist.TotalStake = dist.TotalStake.Sub(burn)
		if dist.TotalStake.IsNegative() {
			dist.TotalStake = math.ZeroInt()
		}
		s.PointsAlignment = s.PointsAlignment.Add(burn.Mul(dist.PointsPerStake))

		if err := k.SetStake(ctx, s); err != nil {
			return err
		}
		if err := k.SetDistribution(ctx, dist); err != nil {
			return err
		}
		outcomes = append(outcomes, types.BurnOutcome{Validator: s.Validator, Amount: burn})
	}

	if err := k.packets.SendBurn(ctx, outcomes); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeBurnVirtualStake,
		sdk.NewAttribute(types.AttributeKeyUser, user),
		sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
	))
	return nil
}
