package types

import (
	"context"

	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// NOTE: keep these interfaces minimal; the vault should not depend on
// concrete keepers.

// BankKeeper is the vault's view of the bank module for bond/unbond coin
// movement.
type BankKeeper interface {
	SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error
	SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error
}

// LocalStakingKeeper is the vault's view of the native local-staking proxy
// factory. Thin per-user wrappers over host-chain native staking live
// outside this keeper; the vault only needs their slashable ratio and a
// place to forward the stake/burn request.
type LocalStakingKeeper interface {
	// MaxSlash returns the local staking proxy's slashable ratio.
	MaxSlash(ctx context.Context) (math.LegacyDec, error)
	// ReceiveStake forwards a stake_local request to the proxy factory.
	ReceiveStake(ctx context.Context, owner string, amount math.Int, msg []byte) error
	// BurnStake requests the proxy factory burn `amount` delegated by owner,
	// optionally scoped to a single validator.
	BurnStake(ctx context.Context, owner string, amount math.Int, validator string) error
}

// CrossStakingKeeper is the vault's view of a single consumer's
// External-Staking contract.
type CrossStakingKeeper interface {
	// MaxSlash returns the contract's configured max_slashing.
	MaxSlash(ctx context.Context) (math.LegacyDec, error)
	// ReceiveVirtualStake forwards receive_virtual_stake.
	ReceiveVirtualStake(ctx context.Context, owner string, amount math.Int, txID uint64, validator string) error
	// BurnVirtualStake forwards burn_virtual_stake.
	BurnVirtualStake(ctx context.Context, owner string, amount math.Int, validator string) error
}
