package keeper

import (
	"context"
	"strconv"

	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/osmosis-labs/mesh-security/x/extstaking/types"
)

// ValsetUpdate folds one consumer height's validator-set CRDT operations into
// the replicated records, then runs handle_slashing for every tombstoned or
// jailed validator that was active at this update's height immediately
// before the batch landed, and finally drains history outside the unbonding
// window for every validator touched this batch.
func (k Keeper) ValsetUpdate(ctx context.Context, update types.ValsetUpdate) error {
	cfg, err := k.GetConfig(ctx)
	if err != nil {
		return err
	}

	// is_active_at(height) is evaluated against each validator's pre-batch
	// record: checking after Apply would always see this batch's own
	// tombstoned/jailed transition and never fire handle_slashing.
	var slashTargets []string
	seen := map[string]bool{}
	for _, addr := range append(append([]string{}, update.Tombstoned...), update.Jailed...) {
		if seen[addr] {
			continue
		}
		seen[addr] = true
		v, _, err := k.GetValidator(ctx, addr)
		if err != nil {
			return err
		}
		if v.IsActiveAt(update.Height) {
			slashTargets = append(slashTargets, addr)
		}
	}

	touched := map[string]bool{}
	apply := func(addr string, state types.ValidatorState) error {
		v, _, err := k.GetValidator(ctx, addr)
		if err != nil {
			return err
		}
		v.Apply(update.Height, update.Time, state)
		touched[addr] = true
		return k.SetValidator(ctx, v)
	}

	// Precedence within a batch is enforced by ValidatorRecord.Apply itself;
	// the call order here only needs to cover every operation once.
	for _, addr := range update.Tombstoned {
		if err := apply(addr, types.ValidatorTombstoned); err != nil {
			return err
		}
	}
	for _, addr := range update.Jailed {
		if err := apply(addr, types.ValidatorJailed); err != nil {
			return err
		}
	}
	for _, addr := range update.Removals {
		if err := apply(addr, types.ValidatorUnbonded); err != nil {
			return err
		}
	}
	for _, addr := range update.Additions {
		if err := apply(addr, types.ValidatorActive); err != nil {
			return err
		}
	}
	for _, addr := range update.Updated {
		if err := apply(addr, types.ValidatorActive); err != nil {
			return err
		}
	}
	// unjailed is recorded in history with the validator's current state;
	// it never moves the record back to Active.
	for _, addr := range update.Unjailed {
		v, _, err := k.GetValidator(ctx, addr)
		if err != nil {
			return err
		}
		if err := apply(addr, v.State); err != nil {
			return err
		}
	}

	for _, addr := range slashTargets {
		if err := k.handleSlashing(ctx, addr, cfg.MaxSlashing); err != nil {
			return err
		}
	}

	for addr := range touched {
		v, _, err := k.GetValidator(ctx, addr)
		if err != nil {
			return err
		}
		v.Drain(update.Time, cfg.UnbondingPeriod)
		if err := k.SetValidator(ctx, v); err != nil {
			return err
		}
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeValsetUpdate,
		sdk.NewAttribute("height", strconv.FormatInt(update.Height, 10)),
	))
	return nil
}

// handleSlashing propagates a tombstoning or jailing to every stake
// delegated to validator, shrinking each stake's amount range and pending
// unbonds by ratio (always config.max_slashing; the caller has already
// confirmed the validator was active at the triggering height) while
// preserving each user's already-accrued, unwithdrawn reward, then forwards
// the aggregated per-user loss to the vault to slash the matching
// collateral.
func (k Keeper) handleSlashing(ctx context.Context, validator string, ratio math.LegacyDec) error {
	stakes, err := k.ListStakesByValidator(ctx, validator)
	if err != nil {
		return err
	}
	dist, err := k.GetDistribution(ctx, validator)
	if err != nil {
		return err
	}

	var instructions []types.SlashInstruction
	for _, s := range stakes {
		slash := ratio.MulInt(s.Amount.High).TruncateInt()
		if slash.IsZero() {
			continue
		}
		preReward := dist.Reward(s)

		s.Amount = s.Amount.SubClamped(slash, math.ZeroInt())
		dist.TotalStake = dist.TotalStake.Sub(slash)
		if dist.TotalStake.IsNegative() {
			dist.TotalStake = math.ZeroInt()
		}

		// Re-derive points_alignment so the stake's reward, recomputed against
		// the post-slash amount, still equals what it was pre-slash: only the
		// principal is lost to the infraction, not the accrued reward.
		s.PointsAlignment = preReward.Add(s.WithdrawnFunds).Mul(types.RewardScale).Sub(dist.PointsPerStake.Mul(s.Amount.Low))

		userLoss := slash
		for i, u := range s.PendingUnbonds {
			unbondSlash := ratio.MulInt(u.Amount).TruncateInt()
			s.PendingUnbonds[i].Amount = u.Amount.Sub(unbondSlash)
			userLoss = userLoss.Add(unbondSlash)
		}

		if err := k.SetStake(ctx, s); err != nil {
			return err
		}
		if userLoss.IsPositive() {
			instructions = append(instructions, types.SlashInstruction{User: s.User, Amount: userLoss})
		}
	}
	if err := k.SetDistribution(ctx, dist); err != nil {
		return err
	}

	if len(instructions) > 0 {
		if err := k.vault.CrossSlash(ctx, validator, instructions, validator); err != nil {
			return err
		}
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeHandleSlashing,
		sdk.NewAttribute(types.AttributeKeyValidator, validator),
	))
	return nil
}
