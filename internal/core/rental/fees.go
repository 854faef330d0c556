package rental

import (
	"math/bits"

	"github.com/LeJamon/goRentald/internal/core/types"
)

// PercentageBase represents 100% in fee and royalty percentages.
const PercentageBase = types.PercentageBase

// FeeSplit is the distribution of a rental's total fee.
type FeeSplit struct {
	Total       uint64 `json:"total"`
	Marketplace uint64 `json:"marketplace"`
	Royalty     uint64 `json:"royalty"`
	Lender      uint64 `json:"lender"`
}

// TotalFee returns feePerSecond * duration, or TemFEE_OVERFLOW.
func TotalFee(feePerSecond, duration uint64) (uint64, error) {
	hi, lo := bits.Mul64(feePerSecond, duration)
	if hi != 0 {
		return 0, TemFEE_OVERFLOW
	}
	return lo, nil
}

// percentOf returns floor(amount * percentage / PercentageBase) without
// intermediate overflow. percentage must not exceed PercentageBase.
func percentOf(amount, percentage uint64) uint64 {
	hi, lo := bits.Mul64(amount, percentage)
	q, _ := bits.Div64(hi, lo, PercentageBase)
	return q
}

// SplitFee divides total between marketplace, royalty and lender. The lender
// share is the remainder, so the three shares always sum to total.
func SplitFee(total, marketplaceFee, royaltyPercentage uint64) (FeeSplit, error) {
	if marketplaceFee > PercentageBase || royaltyPercentage > PercentageBase ||
		marketplaceFee+royaltyPercentage > PercentageBase {
		return FeeSplit{}, TemFEE_PERCENTAGE
	}
	s := FeeSplit{Total: total}
	if total == 0 {
		return s, nil
	}
	s.Marketplace = percentOf(total, marketplaceFee)
	s.Royalty = percentOf(total, royaltyPercentage)
	s.Lender = total - s.Royalty - s.Marketplace
	return s, nil
}
