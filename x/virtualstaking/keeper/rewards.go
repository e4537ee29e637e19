package keeper

import (
	"context"

	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/osmosis-labs/mesh-security/x/virtualstaking/types"
)

// startRewardSweep emits one WithdrawDelegatorReward sub-request per
// actively bonded validator and seeds the reply queue with the target
// list in reverse order, so the handler below pops them tail-first in the
// same order they were requested.
func (k Keeper) startRewardSweep(ctx context.Context, bonded []types.BondedValidator) error {
	var targets []string
	for _, b := range bonded {
		if !b.Amount.IsPositive() {
			continue
		}
		if _, err := k.native.WithdrawDelegatorReward(ctx, b.Validator); err != nil {
			sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(sdk.NewEvent(
				types.EventTypeWithdrawFailed,
				sdk.NewAttribute(types.AttributeKeyValidator, b.Validator),
			))
			continue
		}
		targets = append(targets, b.Validator)
	}
	if len(targets) == 0 {
		return nil
	}

	reversed := make([]string, len(targets))
	for i, v := range targets {
		reversed[len(targets)-1-i] = v
	}
	return k.setRewardQueue(ctx, types.RewardQueue{
		Targets:    reversed,
		TotalSoFar: math.ZeroInt(),
	})
}

// HandleRewardReply processes one WithdrawDelegatorReward ack: it pops the
// next target off the queue, and on success diffs the contract's current
// rewards-denom balance against the running total already attributed this
// round; a failed withdraw is logged and the target popped unchanged with
// nothing added to the batch. Once the queue drains, the whole batch is
// forwarded to the converter as one DistributeRewards call.
func (k Keeper) HandleRewardReply(ctx context.Context, success bool) error {
	cfg, err := k.GetConfig(ctx)
	if err != nil {
		return err
	}
	q, err := k.GetRewardQueue(ctx)
	if err != nil {
		return err
	}
	if len(q.Targets) == 0 {
		return nil
	}

	target := q.Targets[len(q.Targets)-1]
	q.Targets = q.Targets[:len(q.Targets)-1]

	if !success {
		sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(sdk.NewEvent(
			types.EventTypeWithdrawFailed,
			sdk.NewAttribute(types.AttributeKeyValidator, target),
		))
	} else {
		balance, err := k.native.BalanceOf(ctx, cfg.RewardsDenom)
		if err != nil {
			return err
		}
		reward := balance.Sub(q.TotalSoFar)
		if reward.IsNegative() {
			reward = math.ZeroInt()
		}
		if reward.IsPositive() {
			q.Batch = append(q.Batch, types.RewardPayment{Validator: target, Amount: reward})
			q.TotalSoFar = q.TotalSoFar.Add(reward)
		}

		sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(sdk.NewEvent(
			types.EventTypeRewardReply,
			sdk.NewAttribute(types.AttributeKeyValidator, target),
			sdk.NewAttribute(types.AttributeKeyAmount, reward.String()),
		))
	}

	if len(q.Targets) > 0 {
		return k.setRewardQueue(ctx, q)
	}

	if len(q.Batch) > 0 {
		if err := k.converter.DistributeRewards(ctx, q.Batch); err != nil {
			return err
		}
		sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(sdk.NewEvent(types.EventTypeDistributeRewards))
	}
	return k.clearRewardQueue(ctx)
}
