package keeper

import (
	"context"

	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/osmosis-labs/mesh-security/x/vault/types"
)

// LocalSlash dispatches a batch of slash instructions raised by the native
// local-staking proxy.
func (k Keeper) LocalSlash(ctx context.Context, slashes []types.SlashInstruction, validator string) ([]types.BurnRequest, error) {
	cfg, err := k.GetConfig(ctx)
	if err != nil {
		return nil, err
	}
	return k.slash(ctx, cfg.LocalStaking, slashes, validator)
}

// CrossSlash dispatches a batch of slash instructions raised by a
// cross-staking contract, identified by sender.
func (k Keeper) CrossSlash(ctx context.Context, sender string, slashes []types.SlashInstruction, validator string) ([]types.BurnRequest, error) {
	return k.slash(ctx, sender, slashes, validator)
}

// slash implements the shared slashing-propagation algorithm. For
// each (user, slash_amount) it debits the originating lien and, if the loss
// cannot be absorbed out of the user's free collateral, propagates the
// shortfall by burning from the user's other liens to restore the solvency
// invariant. It returns the burn requests the caller must forward to the
// respective lien holders; their failure is logged, never rolled back.
func (k Keeper) slash(ctx context.Context, sender string, slashes []types.SlashInstruction, validator string) ([]types.BurnRequest, error) {
	cfg, err := k.GetConfig(ctx)
	if err != nil {
		return nil, err
	}

	var burns []types.BurnRequest
	for _, s := range slashes {
		reqs, err := k.slashOne(ctx, cfg.LocalStaking, sender, s.User, s.Amount, validator)
		if err != nil {
			return nil, err
		}
		burns = append(burns, reqs...)
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeSlash,
		sdk.NewAttribute(types.AttributeKeyLienHolder, sender),
		sdk.NewAttribute(types.AttributeKeyValidator, validator),
	))
	return burns, nil
}

func (k Keeper) slashOne(ctx context.Context, localStaking, sender, user string, slashAmount math.Int, validator string) ([]types.BurnRequest, error) {
	acc, found, err := k.GetUser(ctx, user)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, types.ErrUserNotFound.Wrapf("user %s", user)
	}
	preSlashCollateral := acc.Collateral
	newCollateral := acc.Collateral.Sub(slashAmount)
	if newCollateral.IsNegative() {
		return nil, types.ErrCollateralUnderflow.Wrapf("user %s", user)
	}

	lien, found, err := k.GetLien(ctx, user, sender)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, types.ErrLienNotFound.Wrapf("user %s holder %s", user, sender)
	}
	lien.Amount, err = lien.Amount.Sub(slashAmount, math.ZeroInt())
	if err != nil {
		return nil, types.ErrInsufficientLien.Wrap(err.Error())
	}
	acc.TotalSlashable, err = acc.TotalSlashable.Sub(slashAmount.ToLegacyDec().Mul(lien.Slashable).TruncateInt(), math.ZeroInt())
	if err != nil {
		return nil, err
	}
	if err := k.SetLien(ctx, lien); err != nil {
		return nil, err
	}
	if err := k.refreshMaxLien(ctx, &acc, user); err != nil {
		return nil, err
	}

	freeAfterSlash := preSlashCollateral.Sub(maxIntLocal(acc.MaxLien.High, acc.TotalSlashable.High))

	var burns []types.BurnRequest
	if slashAmount.GT(freeAfterSlash) {
		claimed := slashAmount.Sub(freeAfterSlash)
		liens, err := k.ListLiens(ctx, user)
		if err != nil {
			return nil, err
		}

		if acc.MaxLien.High.GTE(acc.TotalSlashable.High) {
			for _, l := range liens {
				if l.Amount.High.LTE(newCollateral) {
					continue
				}
				burnAmount := l.Amount.High.Sub(newCollateral)
				slashableDelta := burnAmount.ToLegacyDec().Mul(l.Slashable).TruncateInt()
				acc.TotalSlashable = acc.TotalSlashable.SubClamped(slashableDelta, math.ZeroInt())
				l.Amount = l.Amount.Clip(math.ZeroInt(), newCollateral)
				if err := k.SetLien(ctx, l); err != nil {
					return nil, err
				}
				burns = append(burns, burnRequestFor(l.Holder, localStaking, user, burnAmount, sender, validator))
			}
		} else {
			totalSlashable := math.LegacyZeroDec()
			for _, l := range liens {
				totalSlashable = totalSlashable.Add(l.Slashable)
			}
			if totalSlashable.IsPositive() {
				subAmount := ceilDivDec(claimed, totalSlashable)
				for _, l := range liens {
					l.Amount = l.Amount.SubClamped(subAmount, math.ZeroInt())
					slashableDelta := subAmount.ToLegacyDec().Mul(l.Slashable).TruncateInt()
					acc.TotalSlashable = acc.TotalSlashable.SubClamped(slashableDelta, math.ZeroInt())
					if err := k.SetLien(ctx, l); err != nil {
						return nil, err
					}
					burns = append(burns, burnRequestFor(l.Holder, localStaking, user, subAmount, sender, validator))
				}
			}
		}
	}

	acc.Collateral = newCollateral
	if err := k.refreshMaxLien(ctx, &acc, user); err != nil {
		return nil, err
	}
	if err := k.SetUser(ctx, user, acc); err != nil {
		return nil, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	for _, b := range burns {
		sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
			types.EventTypeSlashPropagated,
			sdk.NewAttribute(types.AttributeKeyUser, user),
			sdk.NewAttribute(types.AttributeKeyLienHolder, b.Holder),
			sdk.NewAttribute(types.AttributeKeyAmount, b.Amount.String()),
		))
	}
	return burns, nil
}

// refreshMaxLien recomputes acc.MaxLien in place from storage, for use
// mid-slashOne where the mutation must be visible to the next step before
// the account is persisted.
func (k Keeper) refreshMaxLien(ctx context.Context, acc *types.UserAccount, user string) error {
	liens, err := k.ListLiens(ctx, user)
	if err != nil {
		return err
	}
	max := valuerangeZero()
	for _, l := range liens {
		max = maxRange(max, l.Amount)
	}
	acc.MaxLien = max
	return nil
}

func burnRequestFor(holder, localStaking, user string, amount math.Int, sender, validator string) types.BurnRequest {
	req := types.BurnRequest{Holder: holder, User: user, Amount: amount, Kind: types.BurnKindCross}
	if holder == localStaking {
		req.Kind = types.BurnKindLocal
	}
	if holder == sender {
		req.Validator = validator
	}
	return req
}

func maxIntLocal(a, b math.Int) math.Int {
	if a.GT(b) {
		return a
	}
	return b
}

// ceilDivDec computes ceil(numerator / denominator) for a positive integer
// numerator and a positive decimal denominator, used by the
// total_slashable-binding propagation branch.
func ceilDivDec(numerator math.Int, denominator math.LegacyDec) math.Int {
	quotient := numerator.ToLegacyDec().Quo(denominator)
	truncated := quotient.TruncateInt()
	if quotient.Sub(truncated.ToLegacyDec()).IsPositive() {
		return truncated.Add(math.OneInt())
	}
	return truncated
}
