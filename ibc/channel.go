package ibc

import (
	errorsmod "cosmossdk.io/errors"

	channeltypes "github.com/cosmos/ibc-go/v10/modules/core/04-channel/types"
)

// ModuleName is the codespace used for handshake/packet sentinel errors.
const ModuleName = "meshsecurityibc"

var (
	// ErrIbcChannelAlreadyOpen — both ends refuse to re-open while a channel
	// is already stored.
	ErrIbcChannelAlreadyOpen = errorsmod.Register(ModuleName, 1, "ibc channel already open")
	// ErrInvalidIbcVersion — the negotiated version does not
	// range-compatibility-check against ProtocolVersion.
	ErrInvalidIbcVersion = errorsmod.Register(ModuleName, 2, "invalid ibc version")
	// ErrOnlyUnorderedChannel — the channel must be configured Unordered.
	ErrOnlyUnorderedChannel = errorsmod.Register(ModuleName, 3, "channel must be unordered")
	// ErrIbcOpenInitDisallowed — the provider side only accepts OpenTry/OpenConfirm.
	ErrIbcOpenInitDisallowed = errorsmod.Register(ModuleName, 4, "provider side must not initiate channel handshake")
	// ErrIbcOpenTryDisallowed — the consumer side only accepts OpenInit/OpenAck.
	ErrIbcOpenTryDisallowed = errorsmod.Register(ModuleName, 5, "consumer side must not accept OpenTry")
	// ErrIbcChannelNotOpen — a packet was sent before the channel handshake completed.
	ErrIbcChannelNotOpen = errorsmod.Register(ModuleName, 6, "ibc channel not open")
)

// ProtocolVersion is the current protocol identifier negotiated during the
// channel handshake.
const ProtocolVersion = "mesh-security-1.0.0"

// Version is the {protocol,version} pair exchanged during handshake.
type Version struct {
	Protocol string `json:"protocol"`
	Version  string `json:"version"`
}

// Ordering reuses ibc-go's channel Order enum directly rather than
// mirroring it, since the enum itself carries no protobuf-encoding weight
// the rest of this package needs to avoid.
type Ordering = channeltypes.Order

const (
	OrderingUnordered = channeltypes.UNORDERED
	OrderingOrdered   = channeltypes.ORDERED
)

// ValidateVersion checks that a counterparty's proposed version is
// range-compatible with ProtocolVersion: same protocol, and versions are
// compared by exact match (the mesh-security wire format has no
// sub-version negotiation beyond identity today).
func ValidateVersion(proposed Version) error {
	if proposed.Protocol != "mesh-security" || proposed.Version != ProtocolVersion {
		return errorsmod.Wrapf(ErrInvalidIbcVersion, "got %q", proposed.Version)
	}
	return nil
}

// ValidateOrdering enforces that the channel is configured Unordered.
func ValidateOrdering(ordering Ordering) error {
	if ordering != OrderingUnordered {
		return ErrOnlyUnorderedChannel
	}
	return nil
}

// HandshakeStep enumerates the four-step channel handshake.
type HandshakeStep int

const (
	StepOpenInit HandshakeStep = iota
	StepOpenTry
	StepOpenAck
	StepOpenConfirm
)

// Side is which end of the channel a module instance plays.
type Side int

const (
	SideProvider Side = iota
	SideConsumer
)

// ValidateHandshakeStep enforces which steps each side may process:
// the provider only accepts OpenTry/OpenConfirm (it never initiates);
// the consumer only accepts OpenInit/OpenAck (it always initiates).
func ValidateHandshakeStep(side Side, step HandshakeStep, channelAlreadyStored bool) error {
	if channelAlreadyStored {
		return ErrIbcChannelAlreadyOpen
	}
	switch side {
	case SideProvider:
		if step != StepOpenTry && step != StepOpenConfirm {
			return ErrIbcOpenInitDisallowed
		}
	case SideConsumer:
		if step != StepOpenInit && step != StepOpenAck {
			return ErrIbcOpenTryDisallowed
		}
	}
	return nil
}
