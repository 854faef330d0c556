package rental

import (
	"context"

	"github.com/LeJamon/goRentald/internal/core/ledger/entry"
	"github.com/LeJamon/goRentald/internal/core/ledger/keylet"
	"github.com/LeJamon/goRentald/internal/core/types"
)

// CreateRentalOffer lists offer on behalf of caller. For an SFT offer with a
// zero commitment id the lender's tokens are locked first and the returned
// receipt carries the offer with the new commitment id; that offer, not the
// input, is the one later operations must present.
func (e *Engine) CreateRentalOffer(ctx context.Context, caller types.AccountID, offer *Offer) (*Receipt, error) {
	if offer == nil {
		return nil, TemEMPTY_ROLES
	}
	o := offer.Clone()
	return e.execute(ctx, "create_rental_offer", func(ctx context.Context, f *frame) (*Receipt, error) {
		if err := e.validateCreate(ctx, f, caller, o); err != nil {
			return nil, err
		}

		switch o.Variant {
		case types.VariantNFT:
			if err := e.requireNFTOwner(ctx, o.Lender, o.TokenAddress, o.TokenID); err != nil {
				return nil, err
			}
			if err := checkRolesFree(f.table, o, f.now); err != nil {
				return nil, err
			}
		case types.VariantSFT:
			if o.CommitmentID != 0 {
				reg, err := e.registryFor(o.TokenAddress)
				if err != nil {
					return nil, err
				}
				if _, err := e.validateCommitment(ctx, reg, o); err != nil {
					return nil, err
				}
				if err := e.checkCommitmentFree(f, o.TokenAddress, o.CommitmentID); err != nil {
					return nil, err
				}
				if err := checkRolesFree(f.table, o, f.now); err != nil {
					return nil, err
				}
			}
		}

		if err := storeNonceDeadline(f.table, o.Lender, o.Nonce, o.Deadline); err != nil {
			return nil, err
		}

		if o.Variant == types.VariantSFT && o.CommitmentID == 0 {
			reg, err := e.registryFor(o.TokenAddress)
			if err != nil {
				return nil, err
			}
			id, err := reg.Lock(ctx, o.Lender, o.TokenAddress, o.TokenID, o.TokenAmount)
			if err != nil {
				return nil, fail(TefREGISTRY_FAILED, err)
			}
			o.CommitmentID = id
		}

		hash := e.HashOffer(o)
		release, err := e.enter(f, hash)
		if err != nil {
			return nil, err
		}
		defer release()

		if err := setRoleDeadlines(f.table, o, creationRoleDeadline(o)); err != nil {
			return nil, err
		}
		if err := recordOffer(f.table, o, hash); err != nil {
			return nil, err
		}
		if o.Variant == types.VariantSFT {
			link := &entry.CommitmentLink{Lender: o.Lender, Nonce: o.Nonce, OfferHash: hash}
			if err := putEntry(f.table, keylet.CommitmentLink(o.TokenAddress, o.CommitmentID), link); err != nil {
				return nil, err
			}
		}

		f.emit(offerCreatedEvent(o, hash, f.now))
		return &Receipt{OfferHash: ptr(hash), Offer: o}, nil
	})
}

// requireNFTOwner checks that account controls the token, either holding it
// or having deposited it in the registry.
func (e *Engine) requireNFTOwner(ctx context.Context, account, tokenAddress types.AccountID, tokenID uint64) error {
	if e.nftRegistry == nil {
		return fail(TefREGISTRY_FAILED, errNoNFTRegistry)
	}
	owner, err := e.nftRegistry.OwnerOf(ctx, tokenAddress, tokenID)
	if err != nil {
		return fail(TefREGISTRY_FAILED, err)
	}
	if owner != account {
		return TepNOT_OWNER
	}
	return nil
}

// checkCommitmentFree rejects a commitment still backing another offer whose
// nonce is live or whose rental has not expired.
func (e *Engine) checkCommitmentFree(f *frame, tokenAddress types.AccountID, commitmentID uint64) error {
	link, err := loadCommitmentLink(f.table, tokenAddress, commitmentID)
	if err != nil || link == nil {
		return err
	}
	nonceDeadline, err := loadNonceDeadline(f.table, link.Lender, link.Nonce)
	if err != nil {
		return err
	}
	if nonceDeadline > f.now {
		return TecCOMMITMENT_IN_USE
	}
	r, err := loadRental(f.table, link.OfferHash)
	if err != nil {
		return err
	}
	if r != nil && r.ExpirationDate > f.now {
		return TecCOMMITMENT_IN_USE
	}
	return nil
}
