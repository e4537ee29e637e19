package types

const (
	EventTypeBond            = "virtualstaking_bond"
	EventTypeUnbond          = "virtualstaking_unbond"
	EventTypeHandleEpoch     = "virtualstaking_handle_epoch"
	EventTypeRewardReply     = "virtualstaking_reward_reply"
	EventTypeDistributeRewards = "virtualstaking_distribute_rewards"
	EventTypeValsetUpdate    = "virtualstaking_valset_update"
	EventTypeWithdrawFailed  = "virtualstaking_withdraw_failed"

	AttributeKeyValidator = "validator"
	AttributeKeyAmount    = "amount"
)
