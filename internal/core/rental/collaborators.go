package rental

import (
	"context"
	"time"

	"github.com/LeJamon/goRentald/internal/core/types"
)

//go:generate mockgen -destination=mocks/collaborators.go -package=mocks github.com/LeJamon/goRentald/internal/core/rental FeeToken,FeeConfig,NFTRoleRegistry,SFTRolesRegistry,LegacySFTRolesRegistry,EventSink

// FeeToken moves fee tokens on behalf of the marketplace. A false result and
// an error are both treated as a failed transfer.
type FeeToken interface {
	TransferFrom(ctx context.Context, feeToken, from, to types.AccountID, amount uint64) (bool, error)
}

// RoyaltyInfo is the royalty configured for a token contract.
type RoyaltyInfo struct {
	Creator    types.AccountID `json:"creator"`
	Percentage uint64          `json:"percentage"`
	Treasury   types.AccountID `json:"treasury"`
}

// FeeConfig serves marketplace fees, royalties and offer limits.
type FeeConfig interface {
	MarketplaceFeeOf(ctx context.Context, tokenAddress types.AccountID) (uint64, error)
	RoyaltyInfoOf(ctx context.Context, tokenAddress types.AccountID) (RoyaltyInfo, error)
	IsTrustedFeeToken(ctx context.Context, tokenAddress, feeToken types.AccountID) (bool, error)
	// MaxDuration bounds how far in the future an offer deadline may be.
	MaxDuration(ctx context.Context) (time.Duration, error)
	MarketplaceTreasury(ctx context.Context) (types.AccountID, error)
}

// RoleGrant is a role assignment over an NFT.
type RoleGrant struct {
	Role           types.RoleID
	TokenAddress   types.AccountID
	TokenID        uint64
	Grantor        types.AccountID
	Grantee        types.AccountID
	ExpirationDate uint64
	Revocable      bool
	Data           []byte
}

// RoleRevocation removes a role from an NFT. Revoker is the account the
// engine acts for; registries decide whether it may revoke.
type RoleRevocation struct {
	Role         types.RoleID
	TokenAddress types.AccountID
	TokenID      uint64
	Revoker      types.AccountID
}

// NFTRoleRegistry records role grants over whole tokens and holds the tokens
// deposited by lenders.
type NFTRoleRegistry interface {
	GrantRole(ctx context.Context, grant RoleGrant) error
	RevokeRole(ctx context.Context, rev RoleRevocation) error
	LastGrantee(ctx context.Context, role types.RoleID, tokenAddress types.AccountID, tokenID uint64) (types.AccountID, error)
	RoleExpirationDate(ctx context.Context, role types.RoleID, tokenAddress types.AccountID, tokenID uint64) (uint64, error)
	// OwnerOf returns the depositor of a locked token, or its holder.
	OwnerOf(ctx context.Context, tokenAddress types.AccountID, tokenID uint64) (types.AccountID, error)
	Unlock(ctx context.Context, tokenAddress types.AccountID, tokenID uint64) error
}

// CommitmentGrant is a role assignment over a commitment.
type CommitmentGrant struct {
	CommitmentID   uint64
	Role           types.RoleID
	Grantee        types.AccountID
	ExpirationDate uint64
	Revocable      bool
	Data           []byte
}

// CommitmentRevocation removes a role assigned over a commitment.
type CommitmentRevocation struct {
	CommitmentID uint64
	Role         types.RoleID
	Grantee      types.AccountID
	Revoker      types.AccountID
}

// SFTRolesRegistry is the current registry shape: tokens are locked under a
// lock id that doubles as the commitment id.
type SFTRolesRegistry interface {
	LockTokens(ctx context.Context, owner, tokenAddress types.AccountID, tokenID, amount uint64) (uint64, error)
	UnlockTokens(ctx context.Context, lockID uint64) error
	GrantRole(ctx context.Context, grant CommitmentGrant) error
	RevokeRole(ctx context.Context, rev CommitmentRevocation) error
	OwnerOf(ctx context.Context, lockID uint64) (types.AccountID, error)
	TokenAddressOf(ctx context.Context, lockID uint64) (types.AccountID, error)
	TokenIdOf(ctx context.Context, lockID uint64) (uint64, error)
	TokenAmountOf(ctx context.Context, lockID uint64) (uint64, error)
}

// LegacySFTRolesRegistry is the older registry shape, selected for the
// configured legacy token address.
type LegacySFTRolesRegistry interface {
	CommitTokens(ctx context.Context, grantor, tokenAddress types.AccountID, tokenID, amount uint64) (uint64, error)
	ReleaseTokens(ctx context.Context, commitmentID uint64) error
	GrantRole(ctx context.Context, grant CommitmentGrant) error
	RevokeRole(ctx context.Context, rev CommitmentRevocation) error
	GrantorOf(ctx context.Context, commitmentID uint64) (types.AccountID, error)
	TokenAddressOf(ctx context.Context, commitmentID uint64) (types.AccountID, error)
	TokenIdOf(ctx context.Context, commitmentID uint64) (uint64, error)
	TokenAmountOf(ctx context.Context, commitmentID uint64) (uint64, error)
}

// Journaled is implemented by collaborators whose effects can be rolled
// back. The engine takes a checkpoint when an operation starts and reverts to
// it if the operation fails. Once a top-level operation commits, Commit
// releases everything recorded since its checkpoint.
type Journaled interface {
	Checkpoint() int
	RevertTo(checkpoint int)
	Commit(checkpoint int)
}

// Clock supplies the authoritative current time.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// EventSink receives the events of every committed operation.
type EventSink interface {
	Publish(ctx context.Context, events []Event) error
}
