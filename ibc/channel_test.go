package ibc_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/osmosis-labs/mesh-security/ibc"
)

func TestValidateVersionRejectsMismatch(t *testing.T) {
	require.NoError(t, ibc.ValidateVersion(ibc.Version{Protocol: "mesh-security", Version: ibc.ProtocolVersion}))
	require.Error(t, ibc.ValidateVersion(ibc.Version{Protocol: "mesh-security", Version: "mesh-security-0.9.0"}))
}

func TestValidateOrderingRejectsOrdered(t *testing.T) {
	require.NoError(t, ibc.ValidateOrdering(ibc.OrderingUnordered))
	require.Error(t, ibc.ValidateOrdering(ibc.OrderingOrdered))
}

func TestHandshakeStepRestrictionsPerSide(t *testing.T) {
	require.NoError(t, ibc.ValidateHandshakeStep(ibc.SideProvider, ibc.StepOpenTry, false))
	require.NoError(t, ibc.ValidateHandshakeStep(ibc.SideProvider, ibc.StepOpenConfirm, false))
	err := ibc.ValidateHandshakeStep(ibc.SideProvider, ibc.StepOpenInit, false)
	require.True(t, errors.Is(err, ibc.ErrIbcOpenInitDisallowed))

	require.NoError(t, ibc.ValidateHandshakeStep(ibc.SideConsumer, ibc.StepOpenInit, false))
	require.NoError(t, ibc.ValidateHandshakeStep(ibc.SideConsumer, ibc.StepOpenAck, false))
	err = ibc.ValidateHandshakeStep(ibc.SideConsumer, ibc.StepOpenTry, false)
	require.True(t, errors.Is(err, ibc.ErrIbcOpenTryDisallowed))
}

func TestHandshakeRefusesReopen(t *testing.T) {
	err := ibc.ValidateHandshakeStep(ibc.SideProvider, ibc.StepOpenTry, true)
	require.True(t, errors.Is(err, ibc.ErrIbcChannelAlreadyOpen))
}

func TestAckRoundTrip(t *testing.T) {
	ack, err := ibc.Success(ibc.StakeAck{})
	require.NoError(t, err)
	require.True(t, ack.IsSuccess())

	errAck := ibc.Failure(errors.New("boom"))
	require.False(t, errAck.IsSuccess())
	require.Equal(t, "boom", errAck.Error)
}
