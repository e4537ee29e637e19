package keeper

import (
	"context"

	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/osmosis-labs/mesh-security/x/vault/types"
)

// release shrinks an already-settled lien held by holder by amount, on that
// holder's own initiative (a consumer's unstake completing, or native
// unbonding), and pulls the corresponding slashable exposure out of the
// user's total_slashable.
func (k Keeper) release(ctx context.Context, user, holder string, amount math.Int) error {
	if !amount.IsPositive() {
		return types.ErrInvalidRequest.Wrap("amount must be positive")
	}
	lien, found, err := k.GetLien(ctx, user, holder)
	if err != nil {
		return err
	}
	if !found {
		return types.ErrLienNotFound.Wrapf("user %s holder %s", user, holder)
	}

	newAmount, err := lien.Amount.Sub(amount, math.ZeroInt())
	if err != nil {
		return types.ErrInsufficientLien.Wrap(err.Error())
	}
	slashableDelta := amount.ToLegacyDec().Mul(lien.Slashable).TruncateInt()
	lien.Amount = newAmount
	if err := k.SetLien(ctx, lien); err != nil {
		return err
	}

	acc, _, err := k.GetUser(ctx, user)
	if err != nil {
		return err
	}
	newTotalSlashable, err := acc.TotalSlashable.Sub(slashableDelta, math.ZeroInt())
	if err != nil {
		return err
	}
	acc.TotalSlashable = newTotalSlashable

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

// ReleaseCrossStake is invoked by a cross-staking contract (non-payable:
// the funds already moved on the consumer side) once its own unstake has
// settled.
func (k Keeper) ReleaseCrossStake(ctx context.Context, user, contract string, amount math.Int) error {
	if err := k.release(ctx, user, contract, amount); err != nil {
		return err
	}
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeReleaseCrossStake,
		sdk.NewAttribute(types.AttributeKeyUser, user),
		sdk.NewAttribute(types.AttributeKeyLienHolder, contract),
		sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
	))
	return nil
}

// ReleaseLocalStake is invoked by the local-staking proxy (payable in the
// vault's denom: the caller attaches amount as it returns the funds).
func (k Keeper) ReleaseLocalStake(ctx context.Context, user string, amount math.Int) error {
	cfg, err := k.GetConfig(ctx)
	if err != nil {
		return err
	}
	if err := k.release(ctx, user, cfg.LocalStaking, amount); err != nil {
		return err
	}
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeReleaseLocalStake,
		sdk.NewAttribute(types.AttributeKeyUser, user),
		sdk.NewAttribute(types.AttributeKeyLienHolder, cfg.LocalStaking),
		sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
	))
	return nil
}
