// Package valuerange implements the two-phase, ordered pair primitive used
// throughout the mesh-security kernel to stage optimistic in-flight
// mutations without ever violating a solvency invariant before the remote
// side acknowledges.
//
// The low end is the pessimistic reading for the holder of the value (what
// is guaranteed to be theirs right now); the high end is the optimistic
// reading for the obligor (the maximum they could end up owing once every
// in-flight operation settles).
package valuerange

import (
	"fmt"

	"cosmossdk.io/math"
)

// Range is a signed ordered pair (Low, High) with Low <= High.
type Range struct {
	Low  math.Int `json:"low"`
	High math.Int `json:"high"`
}

// New returns a degenerate range with Low == High == value.
func New(value math.Int) Range {
	return Range{Low: value, High: value}
}

// NewRange builds a range from explicit endpoints. Panics if low > high,
// since that can only happen from a programmer error constructing state by
// hand rather than through the prepare/commit/rollback API.
func NewRange(low, high math.Int) Range {
	r := Range{Low: low, High: high}
	r.assertValid()
	return r
}

func (r Range) assertValid() {
	if r.Low.GT(r.High) {
		panic(fmt.Sprintf("valuerange: invalid range, low %s > high %s", r.Low, r.High))
	}
}

// IsValid reports whether Low <= High without panicking.
func (r Range) IsValid() bool {
	return r.Low.LTE(r.High)
}

// Equal reports whether both endpoints coincide at value (a degenerate range).
func (r Range) Equal(value math.Int) bool {
	return r.Low.Equal(r.High) && r.Low.Equal(value)
}

// PrepareAdd reserves the ability to commit (or roll back) an addition of
// delta by optimistically raising the high (obligor) watermark. Never fails.
func (r Range) PrepareAdd(delta math.Int) Range {
	return Range{Low: r.Low, High: r.High.Add(delta)}
}

// RollbackAdd undoes a PrepareAdd of the same delta.
func (r Range) RollbackAdd(delta math.Int) Range {
	out := Range{Low: r.Low, High: r.High.Sub(delta)}
	out.assertValid()
	return out
}

// CommitAdd promotes a previously prepared addition to the pessimistic (low)
// watermark. It saturates at High: if the range's High was reduced by a
// slash between prepare and commit, the committed low never exceeds it.
func (r Range) CommitAdd(delta math.Int) Range {
	target := r.Low.Add(delta)
	if target.GT(r.High) {
		target = r.High
	}
	return Range{Low: target, High: r.High}
}

// ErrUnderflow is returned by PrepareSub when the reservation would push the
// pessimistic watermark below the required floor.
type ErrUnderflow struct {
	Low, Delta, Floor math.Int
}

func (e ErrUnderflow) Error() string {
	return fmt.Sprintf("valuerange: insufficient balance: low %s < delta %s + floor %s", e.Low, e.Delta, e.Floor)
}

// PrepareSub reserves the ability to commit (or roll back) a subtraction of
// delta, failing if doing so would leave less than floor behind on the
// pessimistic (low) watermark.
func (r Range) PrepareSub(delta, floor math.Int) (Range, error) {
	if r.Low.LT(delta.Add(floor)) {
		return r, ErrUnderflow{Low: r.Low, Delta: delta, Floor: floor}
	}
	return Range{Low: r.Low.Sub(delta), High: r.High}, nil
}

// RollbackSub undoes a PrepareSub of the same delta.
func (r Range) RollbackSub(delta math.Int) Range {
	return Range{Low: r.Low.Add(delta), High: r.High}
}

// CommitSub promotes a previously prepared subtraction to the optimistic
// (high) watermark. It is saturating: if slashing shrank the range between
// prepare and commit such that the advertised delta would invert the range,
// only min(delta, High-Low) is actually committed. Returns the range and the
// delta that was actually applied.
func (r Range) CommitSub(delta math.Int) (Range, math.Int) {
	headroom := r.High.Sub(r.Low)
	actual := delta
	if actual.GT(headroom) {
		actual = headroom
	}
	if actual.IsNegative() {
		actual = math.ZeroInt()
	}
	return Range{Low: r.Low, High: r.High.Sub(actual)}, actual
}

// Max returns the range whose endpoints are the pointwise max of a and b,
// used by the Vault to recompute max_lien as the pointwise maximum over
// all of a user's liens' amount ranges.
func Max(a, b Range) Range {
	return Range{Low: maxInt(a.Low, b.Low), High: maxInt(a.High, b.High)}
}

// Spread captures the spread from the lowest Low to the highest High across
// a set of ranges.
func Spread(ranges ...Range) Range {
	if len(ranges) == 0 {
		return Range{Low: math.ZeroInt(), High: math.ZeroInt()}
	}
	out := ranges[0]
	for _, r := range ranges[1:] {
		if r.Low.LT(out.Low) {
			out.Low = r.Low
		}
		if r.High.GT(out.High) {
			out.High = r.High
		}
	}
	return out
}

// Sum adds a set of ranges pointwise.
func Sum(ranges ...Range) Range {
	total := Range{Low: math.ZeroInt(), High: math.ZeroInt()}
	for _, r := range ranges {
		total = Range{Low: total.Low.Add(r.Low), High: total.High.Add(r.High)}
	}
	return total
}

func maxInt(a, b math.Int) math.Int {
	if a.GT(b) {
		return a
	}
	return b
}

// SubClamped subtracts delta from both endpoints, clamping at floor (never
// going negative). Used by slashing propagation where a lien's
// amount range must be reduced without the two-phase prepare/commit
// protocol, since the mutation is driven by a slash rather than a pending
// remote ack.
func (r Range) SubClamped(delta math.Int, floor math.Int) Range {
	low := r.Low.Sub(delta)
	if low.LT(floor) {
		low = floor
	}
	high := r.High.Sub(delta)
	if high.LT(floor) {
		high = floor
	}
	return Range{Low: low, High: high}
}

// Sub reduces both endpoints of an already-settled (non-pending) range by
// delta, failing if that would leave less than floor on the low end. Unlike
// PrepareSub/CommitSub, this is not a two-phase operation: it is used where
// a release or slash applies to an already-committed amount with no
// in-flight remote counterpart (e.g. release_cross_stake, release_local_stake).
func (r Range) Sub(delta, floor math.Int) (Range, error) {
	if r.Low.LT(delta.Add(floor)) {
		return r, ErrUnderflow{Low: r.Low, Delta: delta, Floor: floor}
	}
	return Range{Low: r.Low.Sub(delta), High: r.High.Sub(delta)}, nil
}

// Clip restricts both endpoints to at most max (floored at min), used when
// slashing propagation must cap a lien's range at the user's post-slash
// collateral.
func (r Range) Clip(min, max math.Int) Range {
	low := r.Low
	if low.GT(max) {
		low = max
	}
	if low.LT(min) {
		low = min
	}
	high := r.High
	if high.GT(max) {
		high = max
	}
	if high.LT(min) {
		high = min
	}
	return Range{Low: low, High: high}
}
