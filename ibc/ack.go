package ibc

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Ack is the JSON-tagged union acknowledgement envelope:
// `{result: base64} | {error: string}`. It mirrors the shape of
// channeltypes.Acknowledgement (github.com/cosmos/ibc-go/v10) without
// depending on its protobuf encoding, since acks here are produced/consumed
// purely in-process by the two-phase commit layer.
type Ack struct {
	Result []byte `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Success builds a success acknowledgement wrapping a typed payload (e.g.
// StakeAck{}, UnstakeAck{}, ValsetUpdateAck{}, DistributeAck{},
// TransferRewardsAck{}).
func Success(payload interface{}) (Ack, error) {
	bz, err := json.Marshal(payload)
	if err != nil {
		return Ack{}, err
	}
	return Ack{Result: bz}, nil
}

// Failure builds an error acknowledgement. An error ack is the sole signal
// (alongside a timeout) that triggers the sender's rollback path.
func Failure(err error) Ack {
	return Ack{Error: err.Error()}
}

// IsSuccess reports whether this is a success ack.
func (a Ack) IsSuccess() bool {
	return a.Error == ""
}

// Decode unmarshals a success ack's result payload into dest.
func (a Ack) Decode(dest interface{}) error {
	if !a.IsSuccess() {
		return fmt.Errorf("ibc: cannot decode an error ack: %s", a.Error)
	}
	return json.Unmarshal(a.Result, dest)
}

// MarshalResult base64-encodes an already-marshaled payload the way the
// wire format's `result` field is documented: `{result: base64}`.
func MarshalResult(payload []byte) string {
	return base64.StdEncoding.EncodeToString(payload)
}

// Empty ack payloads, one per packet kind.
type (
	StakeAck           struct{}
	UnstakeAck         struct{}
	BurnAck            struct{}
	ValsetUpdateAck    struct{}
	DistributeAck      struct{}
	DistributeBatchAck struct{}
	TransferRewardsAck struct{}
)
