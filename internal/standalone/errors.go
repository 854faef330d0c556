package standalone

import "errors"

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrBalanceOverflow     = errors.New("balance overflow")
	ErrUnknownToken        = errors.New("unknown token")
	ErrUnknownCommitment   = errors.New("unknown commitment")
	ErrNotOwner            = errors.New("account does not own the asset")
	ErrAlreadyLocked       = errors.New("token already locked")
	ErrNotLocked           = errors.New("token is not locked")
	ErrRoleActive          = errors.New("role must be expired or revocable")
	ErrInvalidExpiration   = errors.New("expiration must be in the future")
	ErrNotAuthorized       = errors.New("account may not revoke this role")
	ErrGranteeMismatch     = errors.New("grantee does not hold the role")
	ErrZeroAmount          = errors.New("amount cannot be zero")
	ErrFeeTooHigh          = errors.New("marketplace fee plus royalty exceeds 100%")
)
