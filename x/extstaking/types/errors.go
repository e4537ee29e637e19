package types

import (
	errorsmod "cosmossdk.io/errors"
	grpccodes "google.golang.org/grpc/codes"
)

// x/extstaking sentinel errors.
var (
	ErrInvalidRequest = errorsmod.RegisterWithGRPCCode(ModuleName, 1, grpccodes.InvalidArgument, "invalid request")
	ErrInvalidDenom   = errorsmod.RegisterWithGRPCCode(ModuleName, 2, grpccodes.InvalidArgument, "invalid denom")
	ErrUnauthorized   = errorsmod.RegisterWithGRPCCode(ModuleName, 3, grpccodes.PermissionDenied, "unauthorized: caller is not the configured vault")

	ErrValidatorNotActive  = errorsmod.Register(ModuleName, 4, "validator is not active")
	ErrNotEnoughStake      = errorsmod.Register(ModuleName, 5, "not enough stake to unstake the requested amount")
	ErrNoRewards           = errorsmod.Register(ModuleName, 6, "no rewards to withdraw")
	ErrInsufficientDelegations = errorsmod.Register(ModuleName, 7, "total delegations are insufficient to satisfy the requested burn")

	ErrStakeNotFound   = errorsmod.RegisterWithGRPCCode(ModuleName, 8, grpccodes.NotFound, "stake not found")
	ErrTxNotFound      = errorsmod.RegisterWithGRPCCode(ModuleName, 9, grpccodes.NotFound, "pending tx not found")
	ErrWrongTypeTx     = errorsmod.Register(ModuleName, 10, "pending tx has an unexpected variant")
)
