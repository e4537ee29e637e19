package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/osmosis-labs/mesh-security/x/virtualstaking/types"
)

// HandleValsetUpdate folds a relayed valset-update event into local state —
// queuing any reported slashes for the next epoch's reconciliation and
// keeping the inactive set current — then relays the whole event tuple to
// the converter unchanged.
func (k Keeper) HandleValsetUpdate(ctx context.Context, update types.ValsetUpdate) error {
	if err := k.AppendSlashRequests(ctx, update.Slashed); err != nil {
		return err
	}

	inactive, err := k.GetInactive(ctx)
	if err != nil {
		return err
	}
	for _, v := range update.Additions {
		delete(inactive, v)
	}
	for _, v := range update.Removals {
		inactive[v] = true
	}
	if err := k.SetInactive(ctx, inactive); err != nil {
		return err
	}

	if err := k.converter.RelayValsetUpdate(ctx, update); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(sdk.NewEvent(types.EventTypeValsetUpdate))
	return nil
}
