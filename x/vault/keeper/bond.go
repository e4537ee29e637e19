package keeper

import (
	"context"

	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/osmosis-labs/mesh-security/x/vault/types"
)

// Bond credits amount of the vault's denom to user's collateral. The
// caller is responsible for the non-payable/payable enforcement at the
// message layer; by the time Bond runs, the coins have already moved into
// the vault's module account.
func (k Keeper) Bond(ctx context.Context, user string, amount math.Int) error {
	if !amount.IsPositive() {
		return types.ErrInvalidRequest.Wrap("amount must be positive")
	}
	acc, _, err := k.GetUser(ctx, user)
	if err != nil {
		return err
	}
	acc.Collateral = acc.Collateral.Add(amount)
	if err := k.SetUser(ctx, user, acc); err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeBonded,
		sdk.NewAttribute(types.AttributeKeyUser, user),
		sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
	))
	return nil
}

// Unbond releases amount of collateral back to user, requiring amount to be
// no more than the pessimistic (Low) reading of free collateral. The
// caller performs the actual coin transfer via BankKeeper after this
// succeeds.
func (k Keeper) Unbond(ctx context.Context, user string, amount math.Int) error {
	if !amount.IsPositive() {
		return types.ErrInvalidRequest.Wrap("amount must be positive")
	}
	acc, found, err := k.GetUser(ctx, user)
	if err != nil {
		return err
	}
	if !found {
		return types.ErrUserNotFound.Wrapf("user %s", user)
	}
	free := acc.FreeCollateral()
	if amount.GT(free.Low) {
		return types.ErrClaimsLocked.Wrapf("free collateral is %s", free.Low)
	}
	acc.Collateral = acc.Collateral.Sub(amount)
	if err := k.SetUser(ctx, user, acc); err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeUnbonded,
		sdk.NewAttribute(types.AttributeKeyUser, user),
		sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
	))
	return nil
}
