package types

import (
	errorsmod "cosmossdk.io/errors"
	grpccodes "google.golang.org/grpc/codes"
)

// x/vault sentinel errors.
var (
	ErrInvalidRequest = errorsmod.RegisterWithGRPCCode(ModuleName, 1, grpccodes.InvalidArgument, "invalid request")
	ErrInvalidDenom   = errorsmod.RegisterWithGRPCCode(ModuleName, 2, grpccodes.InvalidArgument, "invalid denom")

	// Queried/hit frequently; map to HTTP 404 instead of a generic 500.
	ErrUserNotFound = errorsmod.RegisterWithGRPCCode(ModuleName, 3, grpccodes.NotFound, "user account not found")
	ErrLienNotFound = errorsmod.RegisterWithGRPCCode(ModuleName, 4, grpccodes.NotFound, "lien not found")
	ErrTxNotFound   = errorsmod.RegisterWithGRPCCode(ModuleName, 5, grpccodes.NotFound, "pending tx not found")

	ErrUnauthorized     = errorsmod.RegisterWithGRPCCode(ModuleName, 6, grpccodes.PermissionDenied, "unauthorized")
	ErrWrongContractTx  = errorsmod.Register(ModuleName, 7, "pending tx belongs to a different contract")
	ErrWrongTypeTx      = errorsmod.Register(ModuleName, 8, "pending tx has an unexpected variant")
	ErrInsufficientBalance = errorsmod.Register(ModuleName, 9, "insufficient balance: stake_remote/stake_local would break the solvency invariant")
	ErrClaimsLocked     = errorsmod.Register(ModuleName, 10, "claims locked: amount exceeds free collateral")
	ErrInsufficientLien = errorsmod.Register(ModuleName, 11, "insufficient lien: release/slash amount exceeds the lien")
	ErrCollateralUnderflow = errorsmod.Register(ModuleName, 12, "slash amount exceeds user collateral")
)
