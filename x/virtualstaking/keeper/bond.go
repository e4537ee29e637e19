package keeper

import (
	"context"

	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/osmosis-labs/mesh-security/x/virtualstaking/types"
)

// Bond records a converter-issued request to increase validator's desired
// bond. The effect is deferred: it only changes bond_requests, and is
// applied against the native cap at the next handle_epoch.
func (k Keeper) Bond(ctx context.Context, validator string, amount math.Int) error {
	if !amount.IsPositive() {
		return types.ErrInvalidRequest.Wrap("amount must be positive")
	}
	cur, err := k.GetBondRequest(ctx, validator)
	if err != nil {
		return err
	}
	if err := k.SetBondRequest(ctx, validator, cur.Add(amount)); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeBond,
		sdk.NewAttribute(types.AttributeKeyValidator, validator),
		sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
	))
	return nil
}

// Unbond records a converter-issued request to decrease validator's desired
// bond, failing if it would drive the outstanding request negative.
func (k Keeper) Unbond(ctx context.Context, validator string, amount math.Int) error {
	if !amount.IsPositive() {
		return types.ErrInvalidRequest.Wrap("amount must be positive")
	}
	cur, err := k.GetBondRequest(ctx, validator)
	if err != nil {
		return err
	}
	if cur.LT(amount) {
		return types.ErrInsufficientBondRequest.Wrapf("validator %s has %s requested, asked to unbond %s", validator, cur, amount)
	}
	if err := k.SetBondRequest(ctx, validator, cur.Sub(amount)); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeUnbond,
		sdk.NewAttribute(types.AttributeKeyValidator, validator),
		sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
	))
	return nil
}
