package types

const (
	EventTypeReceiveVirtualStake = "extstaking_receive_virtual_stake"
	EventTypeUnstake             = "extstaking_unstake"
	EventTypeCommitStake         = "extstaking_commit_stake"
	EventTypeRollbackStake       = "extstaking_rollback_stake"
	EventTypeCommitUnstake       = "extstaking_commit_unstake"
	EventTypeRollbackUnstake     = "extstaking_rollback_unstake"
	EventTypeWithdrawUnbonded    = "extstaking_withdraw_unbonded"
	EventTypeWithdrawRewards     = "extstaking_withdraw_rewards"
	EventTypeDistributeRewards   = "extstaking_distribute_rewards"
	EventTypeValsetUpdate        = "extstaking_valset_update"
	EventTypeHandleSlashing      = "extstaking_handle_slashing"
	EventTypeBurnVirtualStake    = "extstaking_burn_virtual_stake"

	AttributeKeyUser      = "user"
	AttributeKeyValidator = "validator"
	AttributeKeyAmount    = "amount"
	AttributeKeyTxID      = "tx_id"
)
