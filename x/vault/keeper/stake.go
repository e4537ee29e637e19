package keeper

import (
	"context"
	"strconv"

	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/osmosis-labs/mesh-security/x/vault/types"
)

// verifyCollateral enforces the solvency invariant on the pessimistic
// high-watermarks: the worst case the user could end up
// owing must never exceed what they have bonded.
func verifyCollateral(acc types.UserAccount) error {
	if !acc.Solvent() {
		return types.ErrInsufficientBalance
	}
	return nil
}

// StakeLocal takes a lien in favor of the native local-staking contract.
// Unlike stake_remote, this is non-transactional: the lien and user totals
// commit immediately, since the local staking proxy is in-process
// and cannot ack asynchronously the way a cross-chain contract does.
func (k Keeper) StakeLocal(ctx context.Context, user string, amount math.Int, localStaking types.LocalStakingKeeper, msg []byte) error {
	if localStaking == nil {
		return types.ErrInvalidRequest.Wrap("no local staking contract configured")
	}
	if !amount.IsPositive() {
		return types.ErrInvalidRequest.Wrap("amount must be positive")
	}

	cfg, err := k.GetConfig(ctx)
	if err != nil {
		return err
	}

	slashable, err := localStaking.MaxSlash(ctx)
	if err != nil {
		return err
	}

	acc, _, err := k.GetUser(ctx, user)
	if err != nil {
		return err
	}
	lien, found, err := k.GetLien(ctx, user, cfg.LocalStaking)
	if err != nil {
		return err
	}
	if !found {
		lien = types.Lien{User: user, Holder: cfg.LocalStaking, Amount: valuerangeZero(), Slashable: slashable}
	}

	lien.Amount = lien.Amount.PrepareAdd(amount).CommitAdd(amount)
	slashableDelta := amount.ToLegacyDec().Mul(slashable).TruncateInt()
	acc.TotalSlashable = acc.TotalSlashable.PrepareAdd(slashableDelta).CommitAdd(slashableDelta)
	acc.MaxLien = maxRange(acc.MaxLien, lien.Amount)

	if err := verifyCollateral(acc); err != nil {
		return err
	}

	if err := k.SetLien(ctx, lien); err != nil {
		return err
	}
	if err := k.SetUser(ctx, user, acc); err != nil {
		return err
	}

	if err := localStaking.ReceiveStake(ctx, user, amount, msg); err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeStakeLocal,
		sdk.NewAttribute(types.AttributeKeyUser, user),
		sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
	))
	return nil
}

// StakeRemote is the transactional counterpart of StakeLocal: it prepares a
// lien and user totals, verifies the solvency invariant on the pessimistic
// watermarks, journals an InFlightStaking tx, and forwards
// receive_virtual_stake to the cross-staking contract. The lien only
// commits once that contract's commit_tx callback lands.
func (k Keeper) StakeRemote(ctx context.Context, user, contract string, amount math.Int, crossStaking types.CrossStakingKeeper, validator string, msg []byte) (txID uint64, err error) {
	if crossStaking == nil {
		return 0, types.ErrInvalidRequest.Wrap("contract not found")
	}
	if !amount.IsPositive() {
		return 0, types.ErrInvalidRequest.Wrap("amount must be positive")
	}

	slashable, err := crossStaking.MaxSlash(ctx)
	if err != nil {
		return 0, err
	}

	acc, _, err := k.GetUser(ctx, user)
	if err != nil {
		return 0, err
	}
	lien, found, err := k.GetLien(ctx, user, contract)
	if err != nil {
		return 0, err
	}
	if !found {
		lien = types.Lien{User: user, Holder: contract, Amount: valuerangeZero(), Slashable: slashable}
	}

	lien.Amount = lien.Amount.PrepareAdd(amount)
	slashableDelta := amount.ToLegacyDec().Mul(slashable).TruncateInt()
	acc.TotalSlashable = acc.TotalSlashable.PrepareAdd(slashableDelta)
	acc.MaxLien = maxRange(acc.MaxLien, lien.Amount)

	if err := verifyCollateral(acc); err != nil {
		return 0, err
	}

	id, err := k.journal.NextID(ctx)
	if err != nil {
		return 0, err
	}
	tx := types.InFlightStaking{TxID: id, User: user, LienHolder: contract, Amount: amount, Slashable: slashable}
	if err := k.journal.Put(ctx, id, tx); err != nil {
		return 0, err
	}

	if err := k.SetLien(ctx, lien); err != nil {
		return 0, err
	}
	if err := k.SetUser(ctx, user, acc); err != nil {
		return 0, err
	}

	if err := crossStaking.ReceiveVirtualStake(ctx, user, amount, id, validator); err != nil {
		return 0, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeStakeRemote,
		sdk.NewAttribute(types.AttributeKeyUser, user),
		sdk.NewAttribute(types.AttributeKeyLienHolder, contract),
		sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		sdk.NewAttribute(types.AttributeKeyTxID, strconv.FormatUint(id, 10)),
	))
	return id, nil
}
