package types

const (
	// ModuleName defines the vault's module name.
	ModuleName = "vault"

	// StoreKey defines the vault's primary module store key.
	StoreKey = ModuleName
)

var (
	// ConfigKey stores the vault's Config.
	ConfigKey = []byte{0x01}

	// UserKeyPrefix stores UserAccount by bech32 address:
	// UserKeyPrefix || address.
	UserKeyPrefix = []byte{0x02}

	// LienKeyPrefix stores Lien by (user, lien-holder):
	// LienKeyPrefix || len(user) || user || holder.
	LienKeyPrefix = []byte{0x03}

	// TxCounterKey stores the next tx id to be issued (monotonic, [1, 2^63)).
	TxCounterKey = []byte{0x04}

	// PendingTxKeyPrefix stores InFlightStaking by tx id.
	PendingTxKeyPrefix = []byte{0x05}
)

func UserKey(user string) []byte {
	return append(append([]byte{}, UserKeyPrefix...), []byte(user)...)
}

func LienKey(user, holder string) []byte {
	bz := make([]byte, 0, len(LienKeyPrefix)+1+len(user)+len(holder))
	bz = append(bz, LienKeyPrefix...)
	bz = append(bz, byte(len(user)))
	bz = append(bz, []byte(user)...)
	bz = append(bz, []byte(holder)...)
	return bz
}

// LienUserPrefix returns the key prefix covering all liens of a single user,
// for prefix-scoped iteration (recomputing max_lien, listing claims).
func LienUserPrefix(user string) []byte {
	bz := make([]byte, 0, len(LienKeyPrefix)+1+len(user))
	bz = append(bz, LienKeyPrefix...)
	bz = append(bz, byte(len(user)))
	bz = append(bz, []byte(user)...)
	return bz
}

func SplitLienKey(key []byte) (user, holder string, ok bool) {
	if len(key) < len(LienKeyPrefix)+1 {
		return "", "", false
	}
	rest := key[len(LienKeyPrefix):]
	n := int(rest[0])
	rest = rest[1:]
	if len(rest) < n {
		return "", "", false
	}
	return string(rest[:n]), string(rest[n:]), true
}
