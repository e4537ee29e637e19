package keeper

import (
	"context"

	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/osmosis-labs/mesh-security/x/extstaking/types"
)

// WithdrawUnbonded releases every matured pending_unbond for user across
// all of their stakes, and tells the vault to release the matching lien
// amount in one call.
func (k Keeper) WithdrawUnbonded(ctx context.Context, user string, now int64) (math.Int, error) {
	stakes, err := k.ListStakesByUser(ctx, user)
	if err != nil {
		return math.ZeroInt(), err
	}
	cfg, err := k.GetConfig(ctx)
	if err != nil {
		return math.ZeroInt(), err
	}

	released := math.ZeroInt()
	for _, s := range stakes {
		var remaining []types.PendingUnbond
		for _, u := range s.PendingUnbonds {
			if u.ReleaseAt <= now {
				released = released.Add(u.Amount)
				continue
			}
			remaining = append(remaining, u)
		}
		s.PendingUnbonds = remaining
		if err := k.SetStake(ctx, s); err != nil {
			return math.ZeroInt(), err
		}
	}

	if released.IsPositive() {
		if err := k.vault.ReleaseCrossStake(ctx, user, cfg.Vault, released); err != nil {
			return math.ZeroInt(), err
		}
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeWithdrawUnbonded,
		sdk.NewAttribute(types.AttributeKeyUser, user),
		sdk.NewAttribute(types.AttributeKeyAmount, released.String()),
	))
	return released, nil
}

// WithdrawRewards journals and forwards a TransferRewards packet for user's
// unwithdrawn reward on validator. The actual withdrawn_funds
// bump happens on commit; rollback is a no-op because no local state
// changed optimistically (the reward computation is read-only until ack).
func (k Keeper) WithdrawRewards(ctx context.Context, user, validator, remoteRecipient string) (txID uint64, reward math.Int, err error) {
	stake, found, err := k.GetStake(ctx, user, validator)
	if err != nil {
		return 0, math.ZeroInt(), err
	}
	if !found {
		return 0, math.ZeroInt(), types.ErrStakeNotFound.Wrapf("user %s validator %s", user, validator)
	}
	dist, err := k.GetDistribution(ctx, validator)
	if err != nil {
		return 0, math.ZeroInt(), err
	}
	r := dist.Reward(stake)
	if !r.IsPositive() {
		return 0, math.ZeroInt(), types.ErrNoRewards
	}

	id, err := k.journal.NextID(ctx)
	if err != nil {
		return 0, math.ZeroInt(), err
	}
	if err := k.journal.Put(ctx, id, types.PendingTx{Kind: types.PendingRewardsTransfer, User: user, Validator: validator, Amount: r}); err != nil {
		return 0, math.ZeroInt(), err
	}
	if err := k.packets.SendTransferRewards(ctx, r, remoteRecipient, id); err != nil {
		return 0, math.ZeroInt(), err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeWithdrawRewards,
		sdk.NewAttribute(types.AttributeKeyUser, user),
		sdk.NewAttribute(types.AttributeKeyValidator, validator),
		sdk.NewAttribute(types.AttributeKeyAmount, r.String()),
	))
	return id, r, nil
}

// CommitWithdrawRewards applies the withdrawn_funds bump once the transfer
// packet acks successfully.
func (k Keeper) CommitWithdrawRewards(ctx context.Context, txID uint64) error {
	tx, err := k.loadPendingTx(ctx, txID, types.PendingRewardsTransfer)
	if err != nil {
		return err
	}
	stake, found, err := k.GetStake(ctx, tx.User, tx.Validator)
	if err != nil {
		return err
	}
	if !found {
		return types.ErrStakeNotFound.Wrapf("user %s validator %s", tx.User, tx.Validator)
	}
	stake.WithdrawnFunds = stake.WithdrawnFunds.Add(tx.Amount)
	if err := k.SetStake(ctx, stake); err != nil {
		return err
	}
	return k.journal.Remove(ctx, txID)
}

// RollbackWithdrawRewards discards the pending transfer; no ledger state
// changed optimistically, so there is nothing to undo beyond the journal
// entry.
func (k Keeper) RollbackWithdrawRewards(ctx context.Context, txID uint64) error {
	if _, err := k.loadPendingTx(ctx, txID, types.PendingRewardsTransfer); err != nil {
		return err
	}
	return k.journal.Remove(ctx, txID)
}

// DistributeRewards folds an inbound reward payment for validator into its
// accumulator.
func (k Keeper) DistributeRewards(ctx context.Context, validator string, amount math.Int, denom string) error {
	cfg, err := k.GetConfig(ctx)
	if err != nil {
		return err
	}
	if denom != cfg.RewardsDenom {
		return types.ErrInvalidDenom.Wrapf("expected %s got %s", cfg.RewardsDenom, denom)
	}
	dist, err := k.GetDistribution(ctx, validator)
	if err != nil {
		return err
	}
	dist.AddRewards(amount)
	if err := k.SetDistribution(ctx, dist); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeDistributeRewards,
		sdk.NewAttribute(types.AttributeKeyValidator, validator),
		sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
	))
	return nil
}

// ValidatorReward is one entry of a DistributeRewardsBatch payload.
type ValidatorReward struct {
	Validator string
	Amount    math.Int
}

// DistributeRewardsBatch loops DistributeRewards over a batch, failing the
// whole batch on the first denom mismatch.
func (k Keeper) DistributeRewardsBatch(ctx context.Context, rewards []ValidatorReward, denom string) error {
	for _, r := range rewards {
		if err := k.DistributeRewards(ctx, r.Validator, r.Amount, denom); err != nil {
			return err
		}
	}
	return nil
}
