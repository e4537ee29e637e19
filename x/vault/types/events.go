package types

// Event types emitted by the vault keeper.
const (
	EventTypeBonded            = "vault_bonded"
	EventTypeUnbonded          = "vault_unbonded"
	EventTypeStakeLocal        = "vault_stake_local"
	EventTypeStakeRemote       = "vault_stake_remote"
	EventTypeCommitTx          = "vault_commit_tx"
	EventTypeRollbackTx        = "vault_rollback_tx"
	EventTypeReleaseCrossStake = "vault_release_cross_stake"
	EventTypeReleaseLocalStake = "vault_release_local_stake"
	EventTypeSlash             = "vault_slash"
	EventTypeSlashPropagated   = "vault_slash_propagated"

	AttributeKeyUser      = "user"
	AttributeKeyAmount    = "amount"
	AttributeKeyTxID      = "tx_id"
	AttributeKeyLienHolder = "lien_holder"
	AttributeKeyValidator = "validator"
)
