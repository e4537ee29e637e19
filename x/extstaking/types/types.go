package types

import (
	"cosmossdk.io/math"

	"github.com/osmosis-labs/mesh-security/pkg/valuerange"
)

// Config is a single External-Staking instance's configuration: one
// instance per consumer.
type Config struct {
	Denom           string         `json:"denom"`
	RewardsDenom    string         `json:"rewards_denom"`
	Vault           string         `json:"vault"`
	UnbondingPeriod int64          `json:"unbonding_period_seconds"`
	MaxSlashing     math.LegacyDec `json:"max_slashing"`
}

// PendingUnbond is one entry of a Stake's pending_unbonds list.
type PendingUnbond struct {
	Amount    math.Int `json:"amount"`
	ReleaseAt int64    `json:"release_at"`
}

// Stake is the External-Staking Engine's per-(user,validator) ledger
// entry.
type Stake struct {
	User            string          `json:"user"`
	Validator       string          `json:"validator"`
	Amount          valuerange.Range `json:"amount"`
	PointsAlignment math.Int        `json:"points_alignment"`
	WithdrawnFunds  math.Int        `json:"withdrawn_funds"`
	PendingUnbonds  []PendingUnbond `json:"pending_unbonds,omitempty"`
}

// NewStake returns a zeroed stake for (user, validator).
func NewStake(user, validator string) Stake {
	return Stake{
		User:            user,
		Validator:       validator,
		Amount:          valuerange.New(math.ZeroInt()),
		PointsAlignment: math.ZeroInt(),
		WithdrawnFunds:  math.ZeroInt(),
	}
}

// Empty reports whether this stake has fully unwound (no amount and no
// unbonds still maturing) and can be pruned from storage.
func (s Stake) Empty() bool {
	return s.Amount.High.IsZero() && len(s.PendingUnbonds) == 0
}

// RewardScale is the fixed-point scale applied to points_per_stake so that
// reward division stays exact across repeated small distributions.
var RewardScale = math.NewInt(1_000_000_000_000_000_000)

// Distribution is the External-Staking Engine's per-validator lazy reward
// accumulator: on reward r over stake S, points_per_stake +=
// (r·SCALE + leftover) / S, leftover = (r·SCALE + leftover) mod S.
type Distribution struct {
	Validator      string   `json:"validator"`
	PointsPerStake math.Int `json:"points_per_stake"`
	PointsLeftover math.Int `json:"points_leftover"`
	TotalStake     math.Int `json:"total_stake"`
}

// NewDistribution returns a zeroed distribution ledger for validator.
func NewDistribution(validator string) Distribution {
	return Distribution{
		Validator:      validator,
		PointsPerStake: math.ZeroInt(),
		PointsLeftover: math.ZeroInt(),
		TotalStake:     math.ZeroInt(),
	}
}

// AddRewards folds reward r, distributed over the validator's current
// total_stake, into points_per_stake, carrying the exact remainder forward
// in points_leftover so repeated small distributions never lose dust.
// A no-op if total_stake is zero: the reward has no recipient and is
// dropped, matching the provider side's "no delegators yet" case.
func (d *Distribution) AddRewards(r math.Int) {
	if !d.TotalStake.IsPositive() {
		return
	}
	points := r.Mul(RewardScale).Add(d.PointsLeftover)
	d.PointsPerStake = d.PointsPerStake.Add(points.Quo(d.TotalStake))
	d.PointsLeftover = points.Mod(d.TotalStake)
}

// Reward computes a stake's unwithdrawn reward against this validator's
// current accumulator: floor((points_per_stake·stake.low +
// alignment) / SCALE) − withdrawn.
func (d Distribution) Reward(stake Stake) math.Int {
	total := d.PointsPerStake.Mul(stake.Amount.Low).Add(stake.PointsAlignment)
	withdrawable := total.Quo(RewardScale)
	if withdrawable.LT(stake.WithdrawnFunds) {
		return math.ZeroInt()
	}
	return withdrawable.Sub(stake.WithdrawnFunds)
}

// ValidatorState is a validator's CRDT state, replicated one-way from the
// consumer. Precedence when multiple events land in one batch:
// tombstoned > jailed > removed > added > updated > unjailed.
type ValidatorState int

const (
	ValidatorUnbonded ValidatorState = iota
	ValidatorActive
	ValidatorJailed
	ValidatorTombstoned
)

// statePrecedence ranks ValidatorState transitions within a single
// valset_update batch: higher wins ties. "removed" and "added"/"updated"
// map onto Unbonded/Active respectively at the call site; unjailed never
// produces a transition.
func statePrecedence(s ValidatorState) int {
	switch s {
	case ValidatorTombstoned:
		return 5
	case ValidatorJailed:
		return 4
	case ValidatorUnbonded:
		return 3
	case ValidatorActive:
		return 1
	default:
		return 0
	}
}

// ValidatorEvent is one entry of a validator's append-only state history,
// indexed by (height, time), used to answer is_active_at(h).
type ValidatorEvent struct {
	Height int64          `json:"height"`
	Time   int64          `json:"time"`
	State  ValidatorState `json:"state"`
}

// ValidatorRecord is the CRDT-replicated state of a single validator plus
// its pruned event history.
type ValidatorRecord struct {
	Address string           `json:"address"`
	State   ValidatorState   `json:"state"`
	Events  []ValidatorEvent `json:"events,omitempty"`
}

// Apply folds a new (height, time, state) observation into the record
// under the CRDT's precedence rule: a tombstoned record is permanently
// frozen; an observation at a new height replaces the state, and within one
// batch (the same height) the higher-precedence state wins. unjailed events
// are passed in by callers with the record's current state, so they never
// transition it.
func (v *ValidatorRecord) Apply(height, t int64, state ValidatorState) {
	if v.State == ValidatorTombstoned {
		return
	}
	sameBatch := len(v.Events) > 0 && v.Events[len(v.Events)-1].Height == height
	if sameBatch && statePrecedence(state) < statePrecedence(v.State) {
		// A lower-precedence event in the same batch loses; still recorded
		// in history for is_active_at, since the event genuinely occurred.
	} else {
		v.State = state
	}
	v.Events = append(v.Events, ValidatorEvent{Height: height, Time: t, State: state})
}

// IsActiveAt reports whether the validator's replicated state was Active at
// height h, by scanning the event history for the last event at or before h.
func (v ValidatorRecord) IsActiveAt(h int64) bool {
	state := ValidatorUnbonded
	found := false
	for _, e := range v.Events {
		if e.Height <= h {
			state = e.State
			found = true
		}
	}
	if !found {
		return v.State == ValidatorActive
	}
	return state == ValidatorActive
}

// Drain prunes events older than now−unbondingPeriod, promoting the state
// at the drain boundary to now−1 so IsActiveAt remains correct for any
// height still within the retained window.
func (v *ValidatorRecord) Drain(now, unbondingPeriod int64) {
	cutoff := now - unbondingPeriod
	var kept []ValidatorEvent
	var promoted *ValidatorEvent
	for i := range v.Events {
		e := v.Events[i]
		if e.Time < cutoff {
			if promoted == nil || e.Time > promoted.Time {
				promoted = &e
			}
			continue
		}
		kept = append(kept, e)
	}
	if promoted != nil {
		kept = append([]ValidatorEvent{{Height: promoted.Height, Time: now - 1, State: promoted.State}}, kept...)
	}
	v.Events = kept
}

// ValsetUpdate bundles one consumer height's worth of validator-set CRDT
// operations, applied in precedence order by valset_update. Unlike the
// Virtual-Staking Rebalancer's valset update, this carries no separate
// slashed list: a tombstoned or jailed validator that was active at this
// update's height is slashed automatically against config.max_slashing.
type ValsetUpdate struct {
	Height     int64
	Time       int64
	Additions  []string
	Removals   []string
	Updated    []string
	Jailed     []string
	Unjailed   []string
	Tombstoned []string
}

// PendingTxKind discriminates the InFlightRemote* variants of PendingTx.
type PendingTxKind int

const (
	PendingStake PendingTxKind = iota
	PendingUnstake
	PendingRewardsTransfer
)

// PendingTx is the External-Staking Engine's tx-journal payload, covering
// its three pending operation kinds. Stakes are journaled under the vault's
// tx-id; unstakes and reward transfers get ids from the engine's journal.
type PendingTx struct {
	Kind      PendingTxKind `json:"kind"`
	User      string        `json:"user"`
	Validator string        `json:"validator"`
	Amount    math.Int      `json:"amount"`
}

// BurnOutcome is one (validator, amount) pair actually burned by
// burn_virtual_stake / distribute_burn, used to build the Burn
// packet sent to the consumer.
type BurnOutcome struct {
	Validator string
	Amount    math.Int
}
