package rental

import (
	"context"

	"github.com/LeJamon/goRentald/internal/core/types"
	"go.uber.org/zap"
)

// CancelRentalOffer closes offer to new acceptances. A running rental keeps
// its roles until it expires. Custody is not touched.
func (e *Engine) CancelRentalOffer(ctx context.Context, caller types.AccountID, offer *Offer) (*Receipt, error) {
	if offer == nil {
		return nil, TeeOFFER_NOT_FOUND
	}
	o := offer.Clone()
	return e.execute(ctx, "cancel_rental_offer", func(ctx context.Context, f *frame) (*Receipt, error) {
		hash := e.HashOffer(o)
		release, err := e.enter(f, hash)
		if err != nil {
			return nil, err
		}
		defer release()

		active, err := e.cancelOffer(ctx, f, caller, o, hash)
		if err != nil {
			return nil, err
		}
		f.emit(Event{
			Type:            EventOfferCancelled,
			Variant:         o.Variant,
			Timestamp:       f.now,
			OfferHash:       ptr(hash),
			Lender:          ptr(o.Lender),
			Nonce:           o.Nonce,
			HadActiveRental: active,
		})
		return &Receipt{OfferHash: ptr(hash), Offer: o}, nil
	})
}

// DelistRentalOfferAndWithdraw cancels offer and returns the asset to the
// lender: the NFT is unlocked from the registry, or the SFT commitment is
// released. It fails while a rental is running. Custody is only returned
// when the lender still controls the asset.
func (e *Engine) DelistRentalOfferAndWithdraw(ctx context.Context, caller types.AccountID, offer *Offer) (*Receipt, error) {
	if offer == nil {
		return nil, TeeOFFER_NOT_FOUND
	}
	o := offer.Clone()
	return e.execute(ctx, "delist_rental_offer_and_withdraw", func(ctx context.Context, f *frame) (*Receipt, error) {
		hash := e.HashOffer(o)
		release, err := e.enter(f, hash)
		if err != nil {
			return nil, err
		}
		defer release()

		active, err := e.cancelOffer(ctx, f, caller, o, hash)
		if err != nil {
			return nil, err
		}
		if active {
			return nil, TecONGOING_RENTAL
		}

		returned, err := e.withdraw(ctx, o)
		if err != nil {
			return nil, err
		}
		if !returned {
			e.logger.Info("withdraw skipped, lender no longer controls asset",
				zap.Stringer("offer", hash), zap.Stringer("lender", o.Lender))
		}

		f.emit(Event{
			Type:            EventOfferDelisted,
			Variant:         o.Variant,
			Timestamp:       f.now,
			OfferHash:       ptr(hash),
			Lender:          ptr(o.Lender),
			Nonce:           o.Nonce,
			TokenAddress:    ptr(o.TokenAddress),
			TokenID:         o.TokenID,
			CommitmentID:    o.CommitmentID,
			CustodyReturned: returned,
		})
		return &Receipt{OfferHash: ptr(hash), Offer: o}, nil
	})
}

// withdraw returns custody of the offer's asset to the lender when the
// registry still attributes it to them.
func (e *Engine) withdraw(ctx context.Context, o *Offer) (bool, error) {
	if o.Variant == types.VariantSFT {
		reg, err := e.registryFor(o.TokenAddress)
		if err != nil {
			return false, err
		}
		c, err := reg.Commitment(ctx, o.CommitmentID)
		if err != nil {
			return false, fail(TefREGISTRY_FAILED, err)
		}
		if c.Grantor != o.Lender {
			return false, nil
		}
		if err := reg.Release(ctx, o.CommitmentID); err != nil {
			return false, fail(TefREGISTRY_FAILED, err)
		}
		return true, nil
	}

	if e.nftRegistry == nil {
		return false, fail(TefREGISTRY_FAILED, errNoNFTRegistry)
	}
	owner, err := e.nftRegistry.OwnerOf(ctx, o.TokenAddress, o.TokenID)
	if err != nil {
		return false, fail(TefREGISTRY_FAILED, err)
	}
	if owner != o.Lender {
		return false, nil
	}
	if err := e.nftRegistry.Unlock(ctx, o.TokenAddress, o.TokenID); err != nil {
		return false, fail(TefREGISTRY_FAILED, err)
	}
	return true, nil
}
