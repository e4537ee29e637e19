package valuerange_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/osmosis-labs/mesh-security/pkg/valuerange"
)

func i(n int64) math.Int { return math.NewInt(n) }

func TestPrepareAddRollbackAddIsIdentity(t *testing.T) {
	r := valuerange.New(i(100))
	out := r.PrepareAdd(i(40)).RollbackAdd(i(40))
	require.True(t, out.Low.Equal(r.Low))
	require.True(t, out.High.Equal(r.High))
}

func TestPrepareAddCommitAddShiftsBothEndpoints(t *testing.T) {
	r := valuerange.New(i(100))
	r = r.PrepareAdd(i(40))
	require.Equal(t, i(100), r.Low)
	require.Equal(t, i(140), r.High)
	r = r.CommitAdd(i(40))
	require.Equal(t, i(140), r.Low)
	require.Equal(t, i(140), r.High)
}

func TestCommitAddSaturatesWhenHighShrankBetweenPrepareAndCommit(t *testing.T) {
	r := valuerange.NewRange(i(100), i(140))
	// simulate a slash reducing High to below Low+delta before commit
	r.High = i(110)
	r = r.CommitAdd(i(40))
	require.True(t, r.Low.Equal(r.High))
	require.Equal(t, i(110), r.Low)
}

func TestPrepareSubFailsBelowFloor(t *testing.T) {
	r := valuerange.New(i(100))
	_, err := r.PrepareSub(i(101), i(0))
	require.Error(t, err)

	_, err = r.PrepareSub(i(50), i(60))
	require.Error(t, err, "floor must be respected")

	ok, err := r.PrepareSub(i(40), i(60))
	require.NoError(t, err)
	require.Equal(t, i(60), ok.Low)
}

func TestCommitSubSaturatesOnSlashedHeadroom(t *testing.T) {
	r := valuerange.NewRange(i(60), i(100))
	// headroom is 40; caller advertises committing 50 (more than available)
	out, actual := r.CommitSub(i(50))
	require.Equal(t, i(40), actual)
	require.Equal(t, i(60), out.High)
	require.Equal(t, i(60), out.Low)
}

func TestRollbackSubReversesPrepareSub(t *testing.T) {
	r := valuerange.New(i(100))
	prepared, err := r.PrepareSub(i(30), i(0))
	require.NoError(t, err)
	back := prepared.RollbackSub(i(30))
	require.True(t, back.Low.Equal(r.Low))
}

func TestMaxAndSpread(t *testing.T) {
	a := valuerange.NewRange(i(0), i(100))
	b := valuerange.NewRange(i(40), i(60))
	m := valuerange.Max(a, b)
	require.Equal(t, i(40), m.Low)
	require.Equal(t, i(100), m.High)

	s := valuerange.Spread(a, b, valuerange.NewRange(i(-10), i(5)))
	require.Equal(t, i(-10), s.Low)
	require.Equal(t, i(100), s.High)
}

func TestSum(t *testing.T) {
	ranges := []valuerange.Range{
		valuerange.New(i(100)),
		valuerange.NewRange(i(0), i(250)),
		valuerange.New(i(200)),
		valuerange.NewRange(i(170), i(380)),
	}
	total := valuerange.Sum(ranges...)
	require.Equal(t, i(470), total.Low)
	require.Equal(t, i(930), total.High)
}

func TestClipClampsToUserCollateral(t *testing.T) {
	r := valuerange.NewRange(i(80), i(150))
	clipped := r.Clip(i(0), i(100))
	require.Equal(t, i(80), clipped.Low)
	require.Equal(t, i(100), clipped.High)
}
