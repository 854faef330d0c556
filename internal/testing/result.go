package testing

import (
	"github.com/LeJamon/goRentald/internal/core/rental"
	"github.com/LeJamon/goRentald/internal/core/types"
)

// OpResult represents the outcome of a marketplace operation.
type OpResult struct {
	// Code is the engine result; TesSUCCESS when the operation applied.
	Code rental.Result

	// Err is the error returned by the engine, nil on success.
	Err error

	// Receipt is set on success.
	Receipt *rental.Receipt
}

// Success reports whether the operation was applied.
func (r OpResult) Success() bool {
	return r.Err == nil
}

// OfferHash returns the hash reported by the receipt.
func (r OpResult) OfferHash() types.Hash {
	if r.Receipt == nil || r.Receipt.OfferHash == nil {
		return types.Hash{}
	}
	return *r.Receipt.OfferHash
}

// Offer returns the offer as stored by the engine. For SFT offers created
// without a commitment it carries the new commitment id.
func (r OpResult) Offer() *rental.Offer {
	if r.Receipt == nil {
		return nil
	}
	return r.Receipt.Offer
}

func newResult(receipt *rental.Receipt, err error) OpResult {
	return OpResult{Code: rental.ResultOf(err), Err: err, Receipt: receipt}
}
