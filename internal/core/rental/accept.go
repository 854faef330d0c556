package rental

import (
	"context"

	"github.com/LeJamon/goRentald/internal/core/ledger/entry"
	"github.com/LeJamon/goRentald/internal/core/ledger/keylet"
	"github.com/LeJamon/goRentald/internal/core/types"
)

// AcceptRentalOffer rents offer to caller for duration seconds. The fee is
// charged to caller and the offer's roles are granted until now + duration.
func (e *Engine) AcceptRentalOffer(ctx context.Context, caller types.AccountID, offer *Offer, duration uint64) (*Receipt, error) {
	if offer == nil {
		return nil, TeeOFFER_NOT_FOUND
	}
	o := offer.Clone()
	return e.execute(ctx, "accept_rental_offer", func(ctx context.Context, f *frame) (*Receipt, error) {
		hash := e.HashOffer(o)
		release, err := e.enter(f, hash)
		if err != nil {
			return nil, err
		}
		defer release()

		if _, err := requireOffer(f.table, hash); err != nil {
			return nil, err
		}
		if _, err := requireLiveNonce(f.table, o, f.now); err != nil {
			return nil, err
		}
		if o.Deadline < f.now || duration > o.Deadline-f.now {
			return nil, TeeEXPIRATION_BEYOND_DEADLINE
		}
		if duration < o.MinDuration {
			return nil, TemDURATION_TOO_SHORT
		}
		if !o.IsPublic() && caller != o.Borrower {
			return nil, TepNOT_BORROWER
		}

		var reg commitmentRegistry
		if o.Variant == types.VariantSFT {
			r, err := loadRental(f.table, hash)
			if err != nil {
				return nil, err
			}
			if r != nil && r.ExpirationDate > f.now {
				return nil, TecONGOING_RENTAL
			}
			if reg, err = e.registryFor(o.TokenAddress); err != nil {
				return nil, err
			}
			if _, err := e.validateCommitment(ctx, reg, o); err != nil {
				return nil, err
			}
		}

		split, royaltyTreasury, err := e.quote(ctx, o, duration)
		if err != nil {
			return nil, err
		}
		expiration := f.now + duration

		if o.Variant == types.VariantSFT {
			rec := &entry.Rental{Borrower: caller, ExpirationDate: expiration}
			if err := putEntry(f.table, keylet.Rental(hash), rec); err != nil {
				return nil, err
			}
		}
		if err := extendRoleDeadlines(f.table, o, expiration); err != nil {
			return nil, err
		}

		if err := e.payFees(ctx, o, caller, split, royaltyTreasury); err != nil {
			return nil, err
		}
		if err := e.grantRentalRoles(ctx, reg, o, caller, expiration); err != nil {
			return nil, err
		}

		f.emit(Event{
			Type:           EventRentalStarted,
			Variant:        o.Variant,
			Timestamp:      f.now,
			OfferHash:      ptr(hash),
			Lender:         ptr(o.Lender),
			Borrower:       ptr(caller),
			Nonce:          o.Nonce,
			TokenAddress:   ptr(o.TokenAddress),
			TokenID:        o.TokenID,
			CommitmentID:   o.CommitmentID,
			ExpirationDate: expiration,
			Fees:           &split,
		})
		return &Receipt{OfferHash: ptr(hash), Offer: o}, nil
	})
}

// quote computes the fee split for renting o for duration seconds and the
// treasury receiving the royalty share.
func (e *Engine) quote(ctx context.Context, o *Offer, duration uint64) (FeeSplit, types.AccountID, error) {
	var treasury types.AccountID
	total, err := TotalFee(o.FeeAmountPerSecond, duration)
	if err != nil {
		return FeeSplit{}, treasury, err
	}
	if total == 0 {
		return FeeSplit{}, treasury, nil
	}
	marketplaceFee, err := e.fees.MarketplaceFeeOf(ctx, o.TokenAddress)
	if err != nil {
		return FeeSplit{}, treasury, fail(TefCONFIG_FAILED, err)
	}
	royalty, err := e.fees.RoyaltyInfoOf(ctx, o.TokenAddress)
	if err != nil {
		return FeeSplit{}, treasury, fail(TefCONFIG_FAILED, err)
	}
	split, err := SplitFee(total, marketplaceFee, royalty.Percentage)
	return split, royalty.Treasury, err
}

// payFees moves the split from borrower to the marketplace treasury, the
// royalty treasury and the lender, in that order.
func (e *Engine) payFees(ctx context.Context, o *Offer, borrower types.AccountID, split FeeSplit, royaltyTreasury types.AccountID) error {
	if split.Total == 0 {
		return nil
	}
	if split.Marketplace > 0 {
		treasury, err := e.fees.MarketplaceTreasury(ctx)
		if err != nil {
			return fail(TefCONFIG_FAILED, err)
		}
		if err := e.transfer(ctx, o.FeeTokenAddress, borrower, treasury, split.Marketplace); err != nil {
			return err
		}
	}
	if err := e.transfer(ctx, o.FeeTokenAddress, borrower, royaltyTreasury, split.Royalty); err != nil {
		return err
	}
	return e.transfer(ctx, o.FeeTokenAddress, borrower, o.Lender, split.Lender)
}

func (e *Engine) transfer(ctx context.Context, feeToken, from, to types.AccountID, amount uint64) error {
	if amount == 0 {
		return nil
	}
	ok, err := e.tokens.TransferFrom(ctx, feeToken, from, to, amount)
	if err != nil {
		return fail(TefTRANSFER_FAILED, err)
	}
	if !ok {
		return TefTRANSFER_FAILED
	}
	return nil
}

// grantRentalRoles grants every role of o to borrower until expiration, each
// with its paired data. Rental grants are not revocable by the lender.
func (e *Engine) grantRentalRoles(ctx context.Context, reg commitmentRegistry, o *Offer, borrower types.AccountID, expiration uint64) error {
	for i, role := range o.Roles {
		var err error
		if o.Variant == types.VariantSFT {
			err = reg.Grant(ctx, CommitmentGrant{
				CommitmentID:   o.CommitmentID,
				Role:           role,
				Grantee:        borrower,
				ExpirationDate: expiration,
				Data:           o.RolesData[i],
			})
		} else {
			if e.nftRegistry == nil {
				return fail(TefREGISTRY_FAILED, errNoNFTRegistry)
			}
			err = e.nftRegistry.GrantRole(ctx, RoleGrant{
				Role:           role,
				TokenAddress:   o.TokenAddress,
				TokenID:        o.TokenID,
				Grantor:        o.Lender,
				Grantee:        borrower,
				ExpirationDate: expiration,
				Data:           o.RolesData[i],
			})
		}
		if err != nil {
			return fail(TefREGISTRY_FAILED, err)
		}
	}
	return nil
}
