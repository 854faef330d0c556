package rental

import (
	"context"
	"errors"
	"time"

	"github.com/LeJamon/goRentald/internal/core/ledger/entry"
	"github.com/LeJamon/goRentald/internal/core/ledger/keylet"
	"github.com/LeJamon/goRentald/internal/core/ledger/view"
	"github.com/LeJamon/goRentald/internal/core/types"
)

// validateCreate runs every create precondition that needs no registry.
func (e *Engine) validateCreate(ctx context.Context, f *frame, caller types.AccountID, o *Offer) error {
	if err := o.validateShape(); err != nil {
		return err
	}
	if caller != o.Lender {
		return TepNOT_LENDER
	}

	maxDuration, err := e.fees.MaxDuration(ctx)
	if err != nil {
		return fail(TefCONFIG_FAILED, err)
	}
	if o.Deadline <= f.now {
		return TemDEADLINE_IN_PAST
	}
	if o.Deadline-f.now > uint64(maxDuration/time.Second) {
		return TemDEADLINE_TOO_FAR
	}

	if !o.IsPublic() && o.FeeAmountPerSecond == 0 {
		return TemZERO_FEE
	}
	if !o.IsPublic() && o.Borrower == o.Lender {
		return TemSELF_RENTAL
	}

	trusted, err := e.fees.IsTrustedFeeToken(ctx, o.TokenAddress, o.FeeTokenAddress)
	if err != nil {
		return fail(TefCONFIG_FAILED, err)
	}
	if !trusted {
		return TemUNTRUSTED_FEE_TOKEN
	}

	used, err := loadNonceDeadline(f.table, o.Lender, o.Nonce)
	if err != nil {
		return err
	}
	if used != 0 {
		return TecNONCE_USED
	}
	return nil
}

// recordOffer stages the offer record under its hash. The nonce deadline is
// staged separately, before any registry call.
func recordOffer(t *view.ApplyStateTable, o *Offer, hash types.Hash) error {
	rec := &entry.OfferRecord{
		Created:      true,
		Variant:      o.Variant,
		Lender:       o.Lender,
		Nonce:        o.Nonce,
		TokenAddress: o.TokenAddress,
		TokenID:      o.TokenID,
		CommitmentID: o.CommitmentID,
		Deadline:     o.Deadline,
	}
	data, err := entry.Encode(rec)
	if err != nil {
		return err
	}
	if err := t.Insert(keylet.RentalOffer(hash), data); err != nil {
		if errors.Is(err, view.ErrEntryExists) {
			return TecOFFER_EXISTS
		}
		return err
	}
	return nil
}

// requireOffer loads the record of a created offer.
func requireOffer(v view.LedgerView, hash types.Hash) (*entry.OfferRecord, error) {
	rec, err := loadOfferRecord(v, hash)
	if err != nil {
		return nil, err
	}
	if rec == nil || !rec.Created {
		return nil, TeeOFFER_NOT_FOUND
	}
	return rec, nil
}

// requireLiveNonce fails unless the offer's nonce deadline is in the future.
func requireLiveNonce(v view.LedgerView, o *Offer, now uint64) (uint64, error) {
	deadline, err := loadNonceDeadline(v, o.Lender, o.Nonce)
	if err != nil {
		return 0, err
	}
	if deadline <= now {
		return deadline, TeeNONCE_EXPIRED
	}
	return deadline, nil
}

// cancelOffer closes the offer's nonce and collapses its role deadlines:
// to the active rental's expiration when one is running, to now otherwise.
// It reports whether a rental was active.
func (e *Engine) cancelOffer(ctx context.Context, f *frame, caller types.AccountID, o *Offer, hash types.Hash) (bool, error) {
	if _, err := requireOffer(f.table, hash); err != nil {
		return false, err
	}
	if caller != o.Lender {
		return false, TepNOT_LENDER
	}
	if _, err := requireLiveNonce(f.table, o, f.now); err != nil {
		return false, err
	}

	if err := storeNonceDeadline(f.table, o.Lender, o.Nonce, f.now); err != nil {
		return false, err
	}

	active := false
	for _, role := range o.Roles {
		expiration, err := e.activeExpiration(ctx, f, o, hash, role)
		if err != nil {
			return false, err
		}
		deadline := f.now
		if expiration > f.now {
			active = true
			deadline = expiration
		}
		if err := storeRoleDeadline(f.table, role, o.TokenAddress, o.assetID(), deadline); err != nil {
			return false, err
		}
	}
	return active, nil
}

// activeExpiration returns the expiration of the rental currently holding
// role under the offer, or zero. SFT rentals are tracked locally; NFT roles
// are read from the registry.
func (e *Engine) activeExpiration(ctx context.Context, f *frame, o *Offer, hash types.Hash, role types.RoleID) (uint64, error) {
	if o.Variant == types.VariantSFT {
		r, err := loadRental(f.table, hash)
		if err != nil || r == nil {
			return 0, err
		}
		return r.ExpirationDate, nil
	}
	if e.nftRegistry == nil {
		return 0, fail(TefREGISTRY_FAILED, errNoNFTRegistry)
	}
	exp, err := e.nftRegistry.RoleExpirationDate(ctx, role, o.TokenAddress, o.TokenID)
	if err != nil {
		return 0, fail(TefREGISTRY_FAILED, err)
	}
	return exp, nil
}
