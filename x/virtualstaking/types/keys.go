package types

const (
	// ModuleName defines the virtual-staking module's name. One instance
	// runs per consumer, paired with the native staking authority it holds
	// delegated bonding rights against.
	ModuleName = "virtualstaking"

	// StoreKey defines the virtual-staking module's primary store key.
	StoreKey = ModuleName
)

var (
	// ConfigKey stores the instance's Config.
	ConfigKey = []byte{0x01}

	// BondRequestKeyPrefix stores the per-validator requested bond amount:
	// BondRequestKeyPrefix || validator.
	BondRequestKeyPrefix = []byte{0x02}

	// BondedKey stores the whole last-applied bonded vector as one value,
	// read and written in bulk every epoch rather than keyed per validator.
	BondedKey = []byte{0x03}

	// SlashRequestsKey stores the pending slash-request queue as one value.
	SlashRequestsKey = []byte{0x04}

	// InactiveKey stores the inactive-validator set as one value.
	InactiveKey = []byte{0x05}

	// RewardQueueKey stores the in-flight reward-withdraw reply queue and
	// its running batch total as one value.
	RewardQueueKey = []byte{0x06}
)

func BondRequestKey(validator string) []byte {
	return append(append([]byte{}, BondRequestKeyPrefix...), []byte(validator)...)
}
