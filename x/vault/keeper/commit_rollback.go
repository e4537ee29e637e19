package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/osmosis-labs/mesh-security/x/vault/types"
)

// CommitTx finalizes a stake_remote prepared by StakeRemote: the lien and
// user totals that were optimistically raised on their high watermark now
// also commit on the pessimistic low watermark. Called when the
// cross-staking contract's receive_virtual_stake ack reports success.
func (k Keeper) CommitTx(ctx context.Context, txID uint64) error {
	var tx types.InFlightStaking
	found, err := k.journal.Get(ctx, txID, &tx)
	if err != nil {
		return err
	}
	if !found {
		return types.ErrTxNotFound.Wrapf("tx %d", txID)
	}

	lien, found, err := k.GetLien(ctx, tx.User, tx.LienHolder)
	if err != nil {
		return err
	}
	if !found {
		return types.ErrLienNotFound.Wrapf("user %s holder %s", tx.User, tx.LienHolder)
	}
	lien.Amount = lien.Amount.CommitAdd(tx.Amount)
	if err := k.SetLien(ctx, lien); err != nil {
		return err
	}

	acc, _, err := k.GetUser(ctx, tx.User)
	if err != nil {
		return err
	}
	slashableDelta := tx.Amount.ToLegacyDec().Mul(tx.Slashable).TruncateInt()
	acc.TotalSlashable = acc.TotalSlashable.CommitAdd(slashableDelta)

	liens, err := k.ListLiens(ctx, tx.User)
	if err != nil {
		return err
	}
	max := valuerangeZero()
	for _, l := range liens {
		max = maxRange(max, l.Amount)
	}
	acc.MaxLien = max

	if err := k.SetUser(ctx, tx.User, acc); err != nil {
		return err
	}

	if err := k.journal.Remove(ctx, txID); err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeCommitTx,
		sdk.NewAttribute(types.AttributeKeyUser, tx.User),
		sdk.NewAttribute(types.AttributeKeyLienHolder, tx.LienHolder),
	))
	return nil
}

// RollbackTx undoes a prepared stake_remote: the optimistic high-watermark
// raise made by StakeRemote is reversed and the pending tx is discarded.
// Called when the cross-staking contract's ack reports failure, or when
// the packet times out.
func (k Keeper) RollbackTx(ctx context.Context, txID uint64) error {
	var tx types.InFlightStaking
	found, err := k.journal.Get(ctx, txID, &tx)
	if err != nil {
		return err
	}
	if !found {
		return types.ErrTxNotFound.Wrapf("tx %d", txID)
	}

	lien, found, err := k.GetLien(ctx, tx.User, tx.LienHolder)
	if err != nil {
		return err
	}
	if found {
		lien.Amount = lien.Amount.RollbackAdd(tx.Amount)
		if err := k.SetLien(ctx, lien); err != nil {
			return err
		}
	}

	acc, _, err := k.GetUser(ctx, tx.User)
	if err != nil {
		return err
	}
	slashableDelta := tx.Amount.ToLegacyDec().Mul(tx.Slashable).TruncateInt()
	acc.TotalSlashable = acc.TotalSlashable.RollbackAdd(slashableDelta)

	liens, err := k.ListLiens(ctx, tx.User)
	if err != nil {
		return err
	}
	max := valuerangeZero()
	for _, l := range liens {
		max = maxRange(max, l.Amount)
	}
	acc.MaxLien = max

	if err := k.SetUser(ctx, tx.User, acc); err != nil {
		return err
	}

	if err := k.journal.Remove(ctx, txID); err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeRollbackTx,
		sdk.NewAttribute(types.AttributeKeyUser, tx.User),
		sdk.NewAttribute(types.AttributeKeyLienHolder, tx.LienHolder),
	))
	return nil
}
