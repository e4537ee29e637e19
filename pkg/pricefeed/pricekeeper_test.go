package pricefeed_test

import (
	"testing"
	"time"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/osmosis-labs/mesh-security/pkg/pricefeed"
)

func TestHappyPath(t *testing.T) {
	k := pricefeed.NewKeeper(600 * time.Second)
	now := time.Unix(1_700_000_000, 0)

	info := k.Update(nil, now, math.LegacyOneDec())
	price, err := k.Query(&info, now.Add(559*time.Second))
	require.NoError(t, err)
	require.True(t, price.Equal(math.LegacyOneDec()))
}

func TestNoInitialPriceInfo(t *testing.T) {
	k := pricefeed.NewKeeper(600 * time.Second)
	_, err := k.Query(nil, time.Now())
	require.ErrorIs(t, err, pricefeed.ErrNoPriceData{})
}

func TestOutdatedPriceInfo(t *testing.T) {
	k := pricefeed.NewKeeper(600 * time.Second)
	now := time.Unix(1_700_000_000, 0)
	info := k.Update(nil, now, math.LegacyOneDec())

	_, err := k.Query(&info, now.Add(601*time.Second))
	require.Error(t, err)
	var outdated pricefeed.ErrOutdated
	require.ErrorAs(t, err, &outdated)
}

func TestUpdateWithOlderPriceInfoIsIgnored(t *testing.T) {
	k := pricefeed.NewKeeper(600 * time.Second)
	now := time.Unix(1_700_000_000, 0)
	info := k.Update(nil, now, math.LegacyOneDec())
	info = k.Update(&info, now.Add(-1*time.Second), math.LegacyNewDecWithPrec(50, 2))

	price, err := k.Query(&info, now)
	require.NoError(t, err)
	require.True(t, price.Equal(math.LegacyOneDec()))
}
