package types

import (
	"cosmossdk.io/math"
)

// Validate checks a Config's static invariants.
func (c Config) Validate() error {
	if c.Denom == "" {
		return ErrInvalidRequest.Wrap("denom must be set")
	}
	if c.RewardsDenom == "" {
		return ErrInvalidRequest.Wrap("rewards_denom must be set")
	}
	if c.Vault == "" {
		return ErrInvalidRequest.Wrap("vault must be set")
	}
	if c.UnbondingPeriod <= 0 {
		return ErrInvalidRequest.Wrap("unbonding_period must be positive")
	}
	if c.MaxSlashing.IsNil() || c.MaxSlashing.IsNegative() || c.MaxSlashing.GT(math.LegacyOneDec()) {
		return ErrInvalidRequest.Wrap("max_slashing must be within [0,1]")
	}
	return nil
}
