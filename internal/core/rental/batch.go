package rental

import (
	"context"

	"github.com/LeJamon/goRentald/internal/core/ledger/keylet"
	"github.com/LeJamon/goRentald/internal/core/types"
)

// TokenRelease identifies a commitment to release.
type TokenRelease struct {
	TokenAddress types.AccountID `json:"token_address"`
	CommitmentID uint64          `json:"commitment_id"`
}

// GrantRequest is a direct role grant outside of any offer. For NFTs the
// asset is TokenID; for SFTs it is CommitmentID.
type GrantRequest struct {
	Variant        types.Variant   `json:"variant"`
	TokenAddress   types.AccountID `json:"token_address"`
	TokenID        uint64          `json:"token_id,omitempty"`
	CommitmentID   uint64          `json:"commitment_id,omitempty"`
	Role           types.RoleID    `json:"role"`
	Grantee        types.AccountID `json:"grantee"`
	ExpirationDate uint64          `json:"expiration_date"`
	Revocable      bool            `json:"revocable"`
	Data           types.HexBytes  `json:"data"`
}

func (g *GrantRequest) assetID() uint64 {
	if g.Variant == types.VariantSFT {
		return g.CommitmentID
	}
	return g.TokenID
}

// RevokeRequest removes a role granted over an NFT or a commitment.
type RevokeRequest struct {
	Variant      types.Variant   `json:"variant"`
	TokenAddress types.AccountID `json:"token_address"`
	TokenID      uint64          `json:"token_id,omitempty"`
	CommitmentID uint64          `json:"commitment_id,omitempty"`
	Role         types.RoleID    `json:"role"`
	Grantee      types.AccountID `json:"grantee"`
}

// BatchReleaseTokens returns the given commitments to caller, their grantor.
// Every commitment must be free of live offers and running rentals.
func (e *Engine) BatchReleaseTokens(ctx context.Context, caller types.AccountID, releases []TokenRelease) (*Receipt, error) {
	if len(releases) == 0 {
		return nil, TemEMPTY_BATCH
	}
	items := append([]TokenRelease(nil), releases...)
	return e.execute(ctx, "batch_release_tokens", func(ctx context.Context, f *frame) (*Receipt, error) {
		for _, item := range items {
			reg, err := e.registryFor(item.TokenAddress)
			if err != nil {
				return nil, err
			}
			c, err := reg.Commitment(ctx, item.CommitmentID)
			if err != nil {
				return nil, fail(TefREGISTRY_FAILED, err)
			}
			if c.TokenAddress != item.TokenAddress {
				return nil, TemCOMMITMENT_ADDRESS
			}
			if c.Grantor != caller {
				return nil, TepNOT_GRANTOR
			}
			if err := e.checkCommitmentFree(f, item.TokenAddress, item.CommitmentID); err != nil {
				return nil, err
			}

			k := keylet.CommitmentLink(item.TokenAddress, item.CommitmentID)
			linked, err := f.table.Exists(k)
			if err != nil {
				return nil, err
			}
			if linked {
				if err := f.table.Erase(k); err != nil {
					return nil, err
				}
			}

			if err := reg.Release(ctx, item.CommitmentID); err != nil {
				return nil, fail(TefREGISTRY_FAILED, err)
			}
			f.emit(Event{
				Type:         EventTokensReleased,
				Variant:      types.VariantSFT,
				Timestamp:    f.now,
				Lender:       ptr(caller),
				TokenAddress: ptr(c.TokenAddress),
				TokenID:      c.TokenID,
				TokenAmount:  c.TokenAmount,
				CommitmentID: c.ID,
			})
		}
		return &Receipt{}, nil
	})
}

// BatchGrantRole grants roles directly on assets caller owns. Each role
// must be free of offers and rentals, and is reserved until the grant
// expires.
func (e *Engine) BatchGrantRole(ctx context.Context, caller types.AccountID, grants []GrantRequest) (*Receipt, error) {
	if len(grants) == 0 {
		return nil, TemEMPTY_BATCH
	}
	items := append([]GrantRequest(nil), grants...)
	return e.execute(ctx, "batch_grant_role", func(ctx context.Context, f *frame) (*Receipt, error) {
		for _, g := range items {
			if g.ExpirationDate <= f.now {
				return nil, TemINVALID_EXPIRATION
			}

			var reg commitmentRegistry
			switch g.Variant {
			case types.VariantNFT:
				if err := e.requireNFTOwner(ctx, caller, g.TokenAddress, g.TokenID); err != nil {
					return nil, err
				}
			case types.VariantSFT:
				var err error
				if reg, err = e.requireGrantor(ctx, caller, g.TokenAddress, g.CommitmentID); err != nil {
					return nil, err
				}
			default:
				return nil, TemINVALID_VARIANT
			}

			deadline, err := loadRoleDeadline(f.table, g.Role, g.TokenAddress, g.assetID())
			if err != nil {
				return nil, err
			}
			if f.now <= deadline {
				return nil, TecROLE_DEADLINE_ACTIVE
			}
			if err := storeRoleDeadline(f.table, g.Role, g.TokenAddress, g.assetID(), g.ExpirationDate); err != nil {
				return nil, err
			}

			if g.Variant == types.VariantSFT {
				err = reg.Grant(ctx, CommitmentGrant{
					CommitmentID:   g.CommitmentID,
					Role:           g.Role,
					Grantee:        g.Grantee,
					ExpirationDate: g.ExpirationDate,
					Revocable:      g.Revocable,
					Data:           g.Data,
				})
			} else {
				err = e.nftRegistry.GrantRole(ctx, RoleGrant{
					Role:           g.Role,
					TokenAddress:   g.TokenAddress,
					TokenID:        g.TokenID,
					Grantor:        caller,
					Grantee:        g.Grantee,
					ExpirationDate: g.ExpirationDate,
					Revocable:      g.Revocable,
					Data:           g.Data,
				})
			}
			if err != nil {
				return nil, fail(TefREGISTRY_FAILED, err)
			}

			f.emit(Event{
				Type:           EventRoleGranted,
				Variant:        g.Variant,
				Timestamp:      f.now,
				Lender:         ptr(caller),
				TokenAddress:   ptr(g.TokenAddress),
				TokenID:        g.TokenID,
				CommitmentID:   g.CommitmentID,
				Role:           ptr(g.Role),
				Grantee:        ptr(g.Grantee),
				ExpirationDate: g.ExpirationDate,
				Revocable:      g.Revocable,
			})
		}
		return &Receipt{}, nil
	})
}

// BatchRevokeRole revokes roles on behalf of the asset owner or the
// grantee. Whether a non-revocable grant may go is up to the registry.
func (e *Engine) BatchRevokeRole(ctx context.Context, caller types.AccountID, revocations []RevokeRequest) (*Receipt, error) {
	if len(revocations) == 0 {
		return nil, TemEMPTY_BATCH
	}
	items := append([]RevokeRequest(nil), revocations...)
	return e.execute(ctx, "batch_revoke_role", func(ctx context.Context, f *frame) (*Receipt, error) {
		for _, r := range items {
			grantee := r.Grantee
			switch r.Variant {
			case types.VariantNFT:
				if e.nftRegistry == nil {
					return nil, fail(TefREGISTRY_FAILED, errNoNFTRegistry)
				}
				owner, err := e.nftRegistry.OwnerOf(ctx, r.TokenAddress, r.TokenID)
				if err != nil {
					return nil, fail(TefREGISTRY_FAILED, err)
				}
				if grantee, err = e.nftRegistry.LastGrantee(ctx, r.Role, r.TokenAddress, r.TokenID); err != nil {
					return nil, fail(TefREGISTRY_FAILED, err)
				}
				if caller != owner && caller != grantee {
					return nil, TepNOT_ALLOWED
				}
				err = e.nftRegistry.RevokeRole(ctx, RoleRevocation{
					Role:         r.Role,
					TokenAddress: r.TokenAddress,
					TokenID:      r.TokenID,
					Revoker:      caller,
				})
				if err != nil {
					return nil, fail(TefREGISTRY_FAILED, err)
				}
			case types.VariantSFT:
				reg, err := e.registryFor(r.TokenAddress)
				if err != nil {
					return nil, err
				}
				c, err := reg.Commitment(ctx, r.CommitmentID)
				if err != nil {
					return nil, fail(TefREGISTRY_FAILED, err)
				}
				if caller != c.Grantor && caller != r.Grantee {
					return nil, TepNOT_ALLOWED
				}
				err = reg.Revoke(ctx, CommitmentRevocation{
					CommitmentID: r.CommitmentID,
					Role:         r.Role,
					Grantee:      r.Grantee,
					Revoker:      caller,
				})
				if err != nil {
					return nil, fail(TefREGISTRY_FAILED, err)
				}
			default:
				return nil, TemINVALID_VARIANT
			}

			f.emit(Event{
				Type:         EventRoleRevoked,
				Variant:      r.Variant,
				Timestamp:    f.now,
				TokenAddress: ptr(r.TokenAddress),
				TokenID:      r.TokenID,
				CommitmentID: r.CommitmentID,
				Role:         ptr(r.Role),
				Grantee:      ptr(grantee),
			})
		}
		return &Receipt{}, nil
	})
}

// requireGrantor checks that account is the grantor of the commitment and
// that it belongs to tokenAddress.
func (e *Engine) requireGrantor(ctx context.Context, account, tokenAddress types.AccountID, commitmentID uint64) (commitmentRegistry, error) {
	reg, err := e.registryFor(tokenAddress)
	if err != nil {
		return nil, err
	}
	c, err := reg.Commitment(ctx, commitmentID)
	if err != nil {
		return nil, fail(TefREGISTRY_FAILED, err)
	}
	if c.TokenAddress != tokenAddress {
		return nil, TemCOMMITMENT_ADDRESS
	}
	if c.Grantor != account {
		return nil, TepNOT_GRANTOR
	}
	return reg, nil
}
