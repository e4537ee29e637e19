package types

const (
	// ModuleName defines the external-staking module's name. Each consumer
	// gets its own instance of this module, distinguished by the address it
	// is instantiated under, mirroring the one-contract-per-consumer model.
	ModuleName = "extstaking"

	// StoreKey defines the external-staking module's primary store key.
	StoreKey = ModuleName
)

var (
	// ConfigKey stores the instance's Config.
	ConfigKey = []byte{0x01}

	// StakeKeyPrefix stores Stake by (user, validator):
	// StakeKeyPrefix || len(user) || user || validator.
	StakeKeyPrefix = []byte{0x02}

	// DistributionKeyPrefix stores Distribution by validator address.
	DistributionKeyPrefix = []byte{0x03}

	// ValidatorKeyPrefix stores ValidatorRecord by validator address.
	ValidatorKeyPrefix = []byte{0x04}

	// TxCounterKey stores the next tx id to be issued (monotonic,
	// [2^63, 2^64)).
	TxCounterKey = []byte{0x05}

	// PendingTxKeyPrefix stores pending-tx variants by tx id.
	PendingTxKeyPrefix = []byte{0x06}
)

func StakeKey(user, validator string) []byte {
	bz := make([]byte, 0, len(StakeKeyPrefix)+1+len(user)+len(validator))
	bz = append(bz, StakeKeyPrefix...)
	bz = append(bz, byte(len(user)))
	bz = append(bz, []byte(user)...)
	bz = append(bz, []byte(validator)...)
	return bz
}

// StakeUserPrefix returns the key prefix covering all of one user's stakes,
// for prefix-scoped iteration (withdraw_unbonded, burn_virtual_stake).
func StakeUserPrefix(user string) []byte {
	bz := make([]byte, 0, len(StakeKeyPrefix)+1+len(user))
	bz = append(bz, StakeKeyPrefix...)
	bz = append(bz, byte(len(user)))
	bz = append(bz, []byte(user)...)
	return bz
}

func SplitStakeKey(key []byte) (user, validator string, ok bool) {
	if len(key) < len(StakeKeyPrefix)+1 {
		return "", "", false
	}
	rest := key[len(StakeKeyPrefix):]
	n := int(rest[0])
	rest = rest[1:]
	if len(rest) < n {
		return "", "", false
	}
	return string(rest[:n]), string(rest[n:]), true
}

func DistributionKey(validator string) []byte {
	return append(append([]byte{}, DistributionKeyPrefix...), []byte(validator)...)
}

func ValidatorKey(validator string) []byte {
	return append(append([]byte{}, ValidatorKeyPrefix...), []byte(validator)...)
}
