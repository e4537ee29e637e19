package keeper

import (
	"cosmossdk.io/math"

	"github.com/osmosis-labs/mesh-security/pkg/valuerange"
)

func valuerangeZero() valuerange.Range {
	return valuerange.New(math.ZeroInt())
}

func maxRange(a, b valuerange.Range) valuerange.Range {
	return valuerange.Max(a, b)
}
