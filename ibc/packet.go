// Package ibc fixes the wire shape exchanged between a provider's
// External-Staking/Vault and a consumer's Virtual-Staking/Converter: the
// packet payloads, the acknowledgement envelope, and the channel handshake
// version check. The transport itself (an ordered-per-direction,
// unordered-per-packet channel with acks and timeouts) is an external
// collaborator; this package only fixes what goes on the wire, using the
// same conceptual model as github.com/cosmos/ibc-go/v10's channel/ack
// types without depending on their protobuf encoding.
package ibc

import (
	"time"

	"cosmossdk.io/math"
)

// Coin mirrors sdk.Coin's shape without importing the bank module, which is
// out of scope for the core kernel.
type Coin struct {
	Denom  string   `json:"denom"`
	Amount math.Int `json:"amount"`
}

// Default packet timeouts.
const (
	DefaultValsetTimeout = 24 * time.Hour
	DefaultStakingTimeout = 10 * time.Minute
)

// --- Provider -> Consumer packets ---

// StakePacket requests the consumer mint virtual stake for delegator on
// validator.
type StakePacket struct {
	Delegator string `json:"delegator"`
	Validator string `json:"validator"`
	Stake     Coin   `json:"stake"`
	TxID      uint64 `json:"tx_id"`
}

// UnstakePacket requests the consumer begin unbonding virtual stake.
type UnstakePacket struct {
	Delegator string `json:"delegator"`
	Validator string `json:"validator"`
	Unstake   Coin   `json:"unstake"`
	TxID      uint64 `json:"tx_id"`
}

// BurnPacket requests the consumer burn virtual stake from one or more
// validators, issued as part of slashing propagation.
type BurnPacket struct {
	Validators []string `json:"validators"`
	Burn       Coin     `json:"burn"`
}

// TransferRewardsPacket requests the consumer transfer accrued rewards to a
// remote recipient.
type TransferRewardsPacket struct {
	Rewards   Coin   `json:"rewards"`
	Recipient string `json:"recipient"`
	TxID      uint64 `json:"tx_id"`
}

// --- Consumer -> Provider packets ---

// AddValidator describes a validator joining the CRDT's Active set.
type AddValidator struct {
	Valoper string `json:"valoper"`
	PubKey  []byte `json:"pub_key"`
}

// SlashEvent describes a single infraction reported by the consumer.
type SlashEvent struct {
	Address           string    `json:"address"`
	Height            int64     `json:"height"`
	Time              time.Time `json:"time"`
	InfractionHeight  int64     `json:"infraction_height"`
	InfractionTime    time.Time `json:"infraction_time"`
	Power             int64     `json:"power"`
	SlashAmount       math.Int  `json:"slash_amount"`
	SlashRatio        math.LegacyDec `json:"slash_ratio"`
}

// ValsetUpdatePacket carries a batch of validator-set CRDT events, ordered
// by consumer block height. Operation precedence within the batch is
// tombstoned > jailed > removed > added > updated > unjailed.
type ValsetUpdatePacket struct {
	Height     int64          `json:"height"`
	Time       time.Time      `json:"time"`
	Additions  []AddValidator `json:"additions"`
	Removals   []string       `json:"removals"`
	Updated    []AddValidator `json:"updated"`
	Jailed     []string       `json:"jailed"`
	Unjailed   []string       `json:"unjailed"`
	Tombstoned []string       `json:"tombstoned"`
	Slashed    []SlashEvent   `json:"slashed"`
}

// ValidatorReward is one line item of a DistributeBatchPacket.
type ValidatorReward struct {
	Validator string   `json:"validator"`
	Reward    math.Int `json:"reward"`
}

// DistributePacket reports rewards accrued by a single validator.
type DistributePacket struct {
	Validator string `json:"validator"`
	Rewards   Coin   `json:"rewards"`
}

// DistributeBatchPacket reports rewards accrued across many validators in
// one packet.
type DistributeBatchPacket struct {
	Rewards []ValidatorReward `json:"rewards"`
	Denom   string            `json:"denom"`
}

// InternalUnstakePacket is sent by the consumer when a forced unbond occurs
// because the native bond cap dropped to zero at epoch time.
type InternalUnstakePacket struct {
	Delegator       string   `json:"delegator"`
	Validator       string   `json:"validator"`
	NormalizeAmount math.Int `json:"normalize_amount"`
	InvertedAmount  math.Int `json:"inverted_amount"`
}
