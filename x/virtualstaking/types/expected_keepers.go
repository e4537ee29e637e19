package types

import (
	"context"

	"cosmossdk.io/math"
)

// NOTE: keep these interfaces minimal; x/virtualstaking should not depend on
// concrete keepers.

// NativeStakingKeeper is the Rebalancer's binding to the consumer chain's
// own native staking module: the authority it actually moves bonded power
// through once an epoch's diff is computed.
type NativeStakingKeeper interface {
	// BondCap returns the maximum total this contract may have bonded
	// across all validators right now. A zero cap means the delegation
	// proxy has been paused or fully unwound upstream.
	BondCap(ctx context.Context) (math.Int, error)

	Bond(ctx context.Context, validator string, amount math.Int) error
	Unbond(ctx context.Context, validator string, amount math.Int) error

	// WithdrawDelegatorReward triggers the native reward sweep for
	// validator and returns a reply id the reward-reply handler will later
	// receive the ack under.
	WithdrawDelegatorReward(ctx context.Context, validator string) (replyID uint64, err error)

	// BalanceOf returns this contract's own current balance of denom, used
	// by the reward-reply handler to diff against the running batch total.
	BalanceOf(ctx context.Context, denom string) (math.Int, error)
}

// ConverterKeeper is the Rebalancer's binding to the converter contract: the
// counterparty that issues deferred bond/unbond instructions and receives
// reward/valset-update relays bound for the provider side.
type ConverterKeeper interface {
	DistributeRewards(ctx context.Context, payments []RewardPayment) error
	RelayValsetUpdate(ctx context.Context, update ValsetUpdate) error
}
