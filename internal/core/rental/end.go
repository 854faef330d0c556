package rental

import (
	"context"

	"github.com/LeJamon/goRentald/internal/core/ledger/keylet"
	"github.com/LeJamon/goRentald/internal/core/types"
)

// EndRental terminates caller's running rental of offer early and revokes
// its roles. No fee is refunded.
func (e *Engine) EndRental(ctx context.Context, caller types.AccountID, offer *Offer) (*Receipt, error) {
	if offer == nil {
		return nil, TeeOFFER_NOT_FOUND
	}
	o := offer.Clone()
	return e.execute(ctx, "end_rental", func(ctx context.Context, f *frame) (*Receipt, error) {
		hash := e.HashOffer(o)
		release, err := e.enter(f, hash)
		if err != nil {
			return nil, err
		}
		defer release()

		if _, err := requireOffer(f.table, hash); err != nil {
			return nil, err
		}

		var reg commitmentRegistry
		var expiration uint64
		if o.Variant == types.VariantSFT {
			r, err := loadRental(f.table, hash)
			if err != nil {
				return nil, err
			}
			if r == nil || r.ExpirationDate <= f.now {
				return nil, TeeNO_ACTIVE_RENTAL
			}
			if r.Borrower != caller {
				return nil, TepNOT_BORROWER
			}
			expiration = r.ExpirationDate
			if reg, err = e.registryFor(o.TokenAddress); err != nil {
				return nil, err
			}
			r.ExpirationDate = f.now
			if err := putEntry(f.table, keylet.Rental(hash), r); err != nil {
				return nil, err
			}
		} else {
			if expiration, err = e.nftRentalOf(ctx, f, o, caller); err != nil {
				return nil, err
			}
		}

		nonceDeadline, err := loadNonceDeadline(f.table, o.Lender, o.Nonce)
		if err != nil {
			return nil, err
		}
		if nonceDeadline <= f.now {
			if err := setRoleDeadlines(f.table, o, f.now); err != nil {
				return nil, err
			}
		}

		for _, role := range o.Roles {
			if o.Variant == types.VariantSFT {
				err = reg.Revoke(ctx, CommitmentRevocation{
					CommitmentID: o.CommitmentID,
					Role:         role,
					Grantee:      caller,
					Revoker:      caller,
				})
			} else {
				err = e.nftRegistry.RevokeRole(ctx, RoleRevocation{
					Role:         role,
					TokenAddress: o.TokenAddress,
					TokenID:      o.TokenID,
					Revoker:      caller,
				})
			}
			if err != nil {
				return nil, fail(TefREGISTRY_FAILED, err)
			}
		}

		f.emit(Event{
			Type:           EventRentalEnded,
			Variant:        o.Variant,
			Timestamp:      f.now,
			OfferHash:      ptr(hash),
			Lender:         ptr(o.Lender),
			Borrower:       ptr(caller),
			Nonce:          o.Nonce,
			ExpirationDate: expiration,
		})
		return &Receipt{OfferHash: ptr(hash), Offer: o}, nil
	})
}

// nftRentalOf checks through the registry that caller holds a running grant
// of the offer's first role, and returns its expiration.
func (e *Engine) nftRentalOf(ctx context.Context, f *frame, o *Offer, caller types.AccountID) (uint64, error) {
	if e.nftRegistry == nil {
		return 0, fail(TefREGISTRY_FAILED, errNoNFTRegistry)
	}
	role := o.Roles[0]
	expiration, err := e.nftRegistry.RoleExpirationDate(ctx, role, o.TokenAddress, o.TokenID)
	if err != nil {
		return 0, fail(TefREGISTRY_FAILED, err)
	}
	if expiration <= f.now {
		return 0, TeeNO_ACTIVE_RENTAL
	}
	grantee, err := e.nftRegistry.LastGrantee(ctx, role, o.TokenAddress, o.TokenID)
	if err != nil {
		return 0, fail(TefREGISTRY_FAILED, err)
	}
	if grantee != caller {
		return 0, TepNOT_BORROWER
	}
	return expiration, nil
}
