package types

import (
	errorsmod "cosmossdk.io/errors"
	grpccodes "google.golang.org/grpc/codes"
)

// x/virtualstaking sentinel errors.
var (
	ErrInvalidRequest = errorsmod.RegisterWithGRPCCode(ModuleName, 1, grpccodes.InvalidArgument, "invalid request")
	ErrUnauthorized    = errorsmod.RegisterWithGRPCCode(ModuleName, 2, grpccodes.PermissionDenied, "unauthorized: caller is not the configured converter")

	ErrInsufficientBondRequest = errorsmod.Register(ModuleName, 3, "unbond exceeds the outstanding bond request for this validator")
)
