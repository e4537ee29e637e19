package types

import (
	"context"

	"cosmossdk.io/math"
)

// VaultKeeper is the External-Staking Engine's view back into the Vault: the
// two-phase commit callbacks and the slashing/release messages it must
// deliver once its own ledger mutations have settled.
type VaultKeeper interface {
	CommitTx(ctx context.Context, txID uint64) error
	RollbackTx(ctx context.Context, txID uint64) error
	ReleaseCrossStake(ctx context.Context, user, contract string, amount math.Int) error
	CrossSlash(ctx context.Context, sender string, slashes []SlashInstruction, validator string) error
}

// SlashInstruction mirrors the vault's (user, amount) slash pair so
// extstaking does not import x/vault/types directly (both sides depend
// only on this interface's shape).
type SlashInstruction struct {
	User   string
	Amount math.Int
}

// PacketSender is the External-Staking Engine's view of the outbound IBC
// packet path to its consumer. A thin seam so the keeper logic stays
// testable without a live channel.
type PacketSender interface {
	SendStake(ctx context.Context, delegator, validator string, amount math.Int, txID uint64) error
	SendUnstake(ctx context.Context, delegator, validator string, amount math.Int, txID uint64) error
	SendBurn(ctx context.Context, outcomes []BurnOutcome) error
	SendTransferRewards(ctx context.Context, amount math.Int, recipient string, txID uint64) error
}
