package types

import (
	"cosmossdk.io/math"

	"github.com/osmosis-labs/mesh-security/pkg/valuerange"
)

// Config is the vault's instance configuration.
type Config struct {
	// Denom is the collateral denom this vault custodies.
	Denom string `json:"denom"`
	// LocalStaking is the address of the native local-staking proxy factory,
	// or empty if none is configured.
	LocalStaking string `json:"local_staking,omitempty"`
}

// UserAccount is the vault's per-user collateral ledger.
type UserAccount struct {
	Collateral     math.Int        `json:"collateral"`
	MaxLien        valuerange.Range `json:"max_lien"`
	TotalSlashable valuerange.Range `json:"total_slashable"`
}

// NewUserAccount returns a zeroed account.
func NewUserAccount() UserAccount {
	return UserAccount{
		Collateral:     math.ZeroInt(),
		MaxLien:        valuerange.New(math.ZeroInt()),
		TotalSlashable: valuerange.New(math.ZeroInt()),
	}
}

// FreeCollateral returns the collateral available to unbond or commit to new
// liens, expressed as a range: Low is the pessimistic reading (what is safe
// to let the user withdraw right now), High is the optimistic reading (what
// could be freed once every in-flight operation settles favorably).
func (u UserAccount) FreeCollateral() valuerange.Range {
	lowExposure := maxInt(u.MaxLien.Low, u.TotalSlashable.Low)
	highExposure := maxInt(u.MaxLien.High, u.TotalSlashable.High)
	return valuerange.Range{
		Low:  u.Collateral.Sub(highExposure),
		High: u.Collateral.Sub(lowExposure),
	}
}

// Solvent reports whether the solvency invariant holds: the greater of the
// two worst-case exposures never exceeds collateral.
func (u UserAccount) Solvent() bool {
	exposure := maxInt(u.MaxLien.High, u.TotalSlashable.High)
	return exposure.LTE(u.Collateral)
}

func maxInt(a, b math.Int) math.Int {
	if a.GT(b) {
		return a
	}
	return b
}

// Lien is a claim against a fraction of a user's collateral, held by a
// staking contract (local or cross-chain), parameterized by a slashable
// ratio.
type Lien struct {
	User      string          `json:"user"`
	Holder    string          `json:"holder"`
	Amount    valuerange.Range `json:"amount"`
	Slashable math.LegacyDec  `json:"slashable"`
}

// Empty reports whether the lien has fully unwound and should be removed
// from storage.
func (l Lien) Empty() bool {
	return l.Amount.High.IsZero()
}

// InFlightStaking is the Vault's pending-tx variant, staged during
// stake_remote between prepare and the contract's commit_tx/rollback_tx ack.
type InFlightStaking struct {
	TxID      uint64         `json:"tx_id"`
	User      string         `json:"user"`
	LienHolder string        `json:"lien_holder"`
	Amount    math.Int       `json:"amount"`
	Slashable math.LegacyDec `json:"slashable"`
}

// BurnKind distinguishes a slashing-propagation burn destined for the local
// staking proxy from one destined for a cross-staking contract.
type BurnKind int

const (
	BurnKindLocal BurnKind = iota
	BurnKindCross
)

// BurnRequest is a fire-and-log message emitted by slash() for the caller to
// dispatch to the matching lien holder. Its eventual execution may fail and
// is only logged: failure never rolls back the originating slash.
type BurnRequest struct {
	Kind      BurnKind `json:"kind"`
	Holder    string   `json:"holder"`
	User      string   `json:"user"`
	Amount    math.Int `json:"amount"`
	Validator string   `json:"validator,omitempty"`
}

// SlashInstruction is one (user, slash_amount) pair passed into local_slash
// / cross_slash.
type SlashInstruction struct {
	User   string
	Amount math.Int
}
