package rental

import (
	"context"

	"github.com/LeJamon/goRentald/internal/core/ledger/entry"
	"github.com/LeJamon/goRentald/internal/core/types"
)

// OfferRecord returns the record of a created offer, or nil.
func (e *Engine) OfferRecord(ctx context.Context, hash types.Hash) (*entry.OfferRecord, error) {
	return loadOfferRecord(e.viewFor(ctx), hash)
}

// NonceDeadline returns the deadline of (lender, nonce); zero when unused.
func (e *Engine) NonceDeadline(ctx context.Context, lender types.AccountID, nonce uint64) (uint64, error) {
	return loadNonceDeadline(e.viewFor(ctx), lender, nonce)
}

// RoleDeadline returns the reservation of role over an asset. assetID is the
// token id for NFTs and the commitment id for SFTs.
func (e *Engine) RoleDeadline(ctx context.Context, role types.RoleID, tokenAddress types.AccountID, assetID uint64) (uint64, error) {
	return loadRoleDeadline(e.viewFor(ctx), role, tokenAddress, assetID)
}

// Rental returns the rental of an SFT offer, or nil.
func (e *Engine) Rental(ctx context.Context, hash types.Hash) (*entry.Rental, error) {
	return loadRental(e.viewFor(ctx), hash)
}

// CommitmentLink returns the offer backed by a commitment, or nil.
func (e *Engine) CommitmentLink(ctx context.Context, tokenAddress types.AccountID, commitmentID uint64) (*entry.CommitmentLink, error) {
	return loadCommitmentLink(e.viewFor(ctx), tokenAddress, commitmentID)
}
