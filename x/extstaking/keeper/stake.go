package keeper

import (
	"context"

	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/osmosis-labs/mesh-security/x/extstaking/types"
)

// ReceiveVirtualStake handles the Vault's forwarded stake_remote request.
// Caller verification (must equal config.vault) and denom matching are the
// message-layer's responsibility by the time this runs; callers pass
// amount already validated against config.denom.
func (k Keeper) ReceiveVirtualStake(ctx context.Context, user, validator string, amount math.Int, txID uint64) error {
	if !amount.IsPositive() {
		return types.ErrInvalidRequest.Wrap("amount must be positive")
	}
	v, _, err := k.GetValidator(ctx, validator)
	if err != nil {
		return err
	}
	if v.State != types.ValidatorActive {
		return types.ErrValidatorNotActive.Wrapf("validator %s", validator)
	}

	stake, _, err := k.GetStake(ctx, user, validator)
	if err != nil {
		return err
	}
	stake.Amount = stake.Amount.PrepareAdd(amount)
	if err := k.SetStake(ctx, stake); err != nil {
		return err
	}

	if err := k.journal.Put(ctx, txID, types.PendingTx{Kind: types.PendingStake, User: user, Validator: validator, Amount: amount}); err != nil {
		return err
	}

	if err := k.packets.SendStake(ctx, user, validator, amount, txID); err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeReceiveVirtualStake,
		sdk.NewAttribute(types.AttributeKeyUser, user),
		sdk.NewAttribute(types.AttributeKeyValidator, validator),
		sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
	))
	return nil
}

// Unstake begins unbonding amount of user's stake on validator.
// Unbonding a jailed or tombstoned validator is explicitly permitted: no
// validator-state check gates this path.
func (k Keeper) Unstake(ctx context.Context, user, validator string, amount math.Int) (txID uint64, err error) {
	if !amount.IsPositive() {
		return 0, types.ErrInvalidRequest.Wrap("amount must be positive")
	}
	stake, found, err := k.GetStake(ctx, user, validator)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, types.ErrStakeNotFound.Wrapf("user %s validator %s", user, validator)
	}
	newAmount, err := stake.Amount.PrepareSub(amount, math.ZeroInt())
	if err != nil {
		return 0, types.ErrNotEnoughStake.Wrapf("have %s", stake.Amount.Low)
	}
	stake.Amount = newAmount
	if err := k.SetStake(ctx, stake); err != nil {
		return 0, err
	}

	id, err := k.journal.NextID(ctx)
	if err != nil {
		return 0, err
	}
	if err := k.journal.Put(ctx, id, types.PendingTx{Kind: types.PendingUnstake, User: user, Validator: validator, Amount: amount}); err != nil {
		return 0, err
	}
	if err := k.packets.SendUnstake(ctx, user, validator, amount, id); err != nil {
		return 0, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeUnstake,
		sdk.NewAttribute(types.AttributeKeyUser, user),
		sdk.NewAttribute(types.AttributeKeyValidator, validator),
		sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
	))
	return id, nil
}

func (k Keeper) loadPendingTx(ctx context.Context, txID uint64, wantKind types.PendingTxKind) (types.PendingTx, error) {
	var tx types.PendingTx
	found, err := k.journal.Get(ctx, txID, &tx)
	if err != nil {
		return types.PendingTx{}, err
	}
	if !found {
		return types.PendingTx{}, types.ErrTxNotFound.Wrapf("tx %d", txID)
	}
	if tx.Kind != wantKind {
		return types.PendingTx{}, types.ErrWrongTypeTx.Wrapf("tx %d", txID)
	}
	return tx, nil
}

// CommitStake finalizes a receive_virtual_stake prepare on packet-ack
// success: the stake's pessimistic watermark catches up
// (saturating across any slash landed in the interim), the stake's
// points_alignment is offset by amount·points_per_stake so the new stake
// earns only rewards distributed from now on, and the vault is told to
// commit its own matching lien.
func (k Keeper) CommitStake(ctx context.Context, txID uint64) error {
	tx, err := k.loadPendingTx(ctx, txID, types.PendingStake)
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
	stake.Amount = stake.Amount.CommitAdd(tx.Amount)

	dist, err := k.GetDistribution(ctx, tx.Validator)
	if err != nil {
		return err
	}
	stake.PointsAlignment = stake.PointsAlignment.Sub(tx.Amount.Mul(dist.PointsPerStake))
	dist.TotalStake = dist.TotalStake.Add(tx.Amount)

	if err := k.SetStake(ctx, stake); err != nil {
		return err
	}
	if err := k.SetDistribution(ctx, dist); err != nil {
		return err
	}
	if err := k.journal.Remove(ctx, txID); err != nil {
		return err
	}
	if err := k.vault.CommitTx(ctx, txID); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeCommitStake,
		sdk.NewAttribute(types.AttributeKeyUser, tx.User),
		sdk.NewAttribute(types.AttributeKeyValidator, tx.Validator),
	))
	return nil
}

// RollbackStake undoes a receive_virtual_stake prepare on packet-ack
// failure or timeout.
func (k Keeper) RollbackStake(ctx context.Context, txID uint64) error {
	tx, err := k.loadPendingTx(ctx, txID, types.PendingStake)
	if err != nil {
		return err
	}

	stake, found, err := k.GetStake(ctx, tx.User, tx.Validator)
	if err != nil {
		return err
	}
	if found {
		stake.Amount = stake.Amount.RollbackAdd(tx.Amount)
		if err := k.SetStake(ctx, stake); err != nil {
			return err
		}
	}
	if err := k.journal.Remove(ctx, txID); err != nil {
		return err
	}
	if err := k.vault.RollbackTx(ctx, txID); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeRollbackStake,
		sdk.NewAttribute(types.AttributeKeyUser, tx.User),
		sdk.NewAttribute(types.AttributeKeyValidator, tx.Validator),
	))
	return nil
}

// CommitUnstake finalizes an unstake prepare: the committed delta
// saturates across any slash that landed between prepare and ack, the
// maturity clock starts (immediate if the validator has since left the
// active set, otherwise config.unbonding_period out), and distribution's
// total_stake shrinks symmetrically.
func (k Keeper) CommitUnstake(ctx context.Context, txID uint64, now int64) error {
	tx, err := k.loadPendingTx(ctx, txID, types.PendingUnstake)
	if err != nil {
		return err
	}
	cfg, err := k.GetConfig(ctx)
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
	newAmount, actual := stake.Amount.CommitSub(tx.Amount)
	stake.Amount = newAmount

	releaseAt := now + cfg.UnbondingPeriod
	v, _, err := k.GetValidator(ctx, tx.Validator)
	if err != nil {
		return err
	}
	if v.State == types.ValidatorUnbonded || v.State == types.ValidatorTombstoned {
		releaseAt = now
	}
	stake.PendingUnbonds = append(stake.PendingUnbonds, types.PendingUnbond{Amount: actual, ReleaseAt: releaseAt})

	dist, err := k.GetDistribution(ctx, tx.Validator)
	if err != nil {
		return err
	}
	stake.PointsAlignment = stake.PointsAlignment.Add(actual.Mul(dist.PointsPerStake))
	dist.TotalStake = dist.TotalStake.Sub(actual)
	if dist.TotalStake.IsNegative() {
		dist.TotalStake = math.ZeroInt()
	}

	if err := k.SetStake(ctx, stake); err != nil {
		return err
	}
	if err := k.SetDistribution(ctx, dist); err != nil {
		return err
	}
	if err := k.journal.Remove(ctx, txID); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeCommitUnstake,
		sdk.NewAttribute(types.AttributeKeyUser, tx.User),
		sdk.NewAttribute(types.AttributeKeyValidator, tx.Validator),
		sdk.NewAttribute(types.AttributeKeyAmount, actual.String()),
	))
	return nil
}

// RollbackUnstake undoes an unstake prepare.
func (k Keeper) RollbackUnstake(ctx context.Context, txID uint64) error {
	tx, err := k.loadPendingTx(ctx, txID, types.PendingUnstake)
	if err != nil {
		return err
	}
	stake, found, err := k.GetStake(ctx, tx.User, tx.Validator)
	if err != nil {
		return err
	}
	if found {
		stake.Amount = stake.Amount.RollbackSub(tx.Amount)
		if err := k.SetStake(ctx, stake); err != nil {
			return err
		}
	}
	if err := k.journal.Remove(ctx, txID); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeRollbackUnstake,
		sdk.NewAttribute(types.AttributeKeyUser, tx.User),
		sdk.NewAttribute(types.AttributeKeyValidator, tx.Validator),
	))
	return nil
}
