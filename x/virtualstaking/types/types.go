package types

import (
	"cosmossdk.io/math"
)

// Config is a single Virtual-Staking Rebalancer instance's configuration:
// one instance per consumer, paired with the converter it takes deferred
// bond/unbond instructions from and the rewards denom it sweeps.
type Config struct {
	RewardsDenom string `json:"rewards_denom"`
	Converter    string `json:"converter"`
}

// BondedValidator is one entry of the last-applied bonded vector.
type BondedValidator struct {
	Validator string   `json:"validator"`
	Amount    math.Int `json:"amount"`
}

// SlashRequest is one observed native slash awaiting reconciliation against
// bonded/bond_requests at the next epoch.
type SlashRequest struct {
	Validator string   `json:"validator"`
	Amount    math.Int `json:"amount"`
}

// RewardQueue tracks one in-flight reward-sweep round: the remaining
// WithdrawDelegatorReward reply targets, stored in reverse call order so
// popping from the tail replies to validators in the order they were
// withdrawn from, and the running total already attributed this round so
// the reply handler can diff the contract's current balance against it.
type RewardQueue struct {
	Targets      []string `json:"targets"`
	TotalSoFar   math.Int `json:"total_so_far"`
	Batch        []RewardPayment `json:"batch"`
}

// RewardPayment is one validator's attributed reward in a batch forwarded
// to the converter as DistributeRewards.
type RewardPayment struct {
	Validator string   `json:"validator"`
	Amount    math.Int `json:"amount"`
}

// ValsetUpdate mirrors the External-Staking Engine's CRDT batch shape so
// handle_valset_update can both fold it locally (into inactive) and forward
// it to the converter unchanged.
type ValsetUpdate struct {
	Height     int64
	Time       int64
	Additions  []string
	Removals   []string
	Updated    []string
	Jailed     []string
	Unjailed   []string
	Tombstoned []string
	Slashed    []SlashRequest
}
