package standalone

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/LeJamon/goRentald/internal/config"
	"github.com/LeJamon/goRentald/internal/core/rental"
	"github.com/LeJamon/goRentald/internal/core/types"
)

type tokenSettings struct {
	fee     uint64
	hasFee  bool
	royalty rental.RoyaltyInfo
	trusted map[types.AccountID]bool
}

// Royalties serves marketplace fees, royalties and trusted fee tokens from
// configuration. Tokens without an entry trust no fee token.
type Royalties struct {
	mu          sync.RWMutex
	treasury    types.AccountID
	defaultFee  uint64
	maxDuration time.Duration
	tokens      map[types.AccountID]*tokenSettings
}

var _ rental.FeeConfig = (*Royalties)(nil)

// NewRoyalties builds the fee configuration from the marketplace section.
func NewRoyalties(cfg config.MarketplaceConfig) (*Royalties, error) {
	r := &Royalties{
		maxDuration: cfg.MaxDuration,
		tokens:      make(map[types.AccountID]*tokenSettings),
	}
	var err error
	if cfg.Treasury != "" {
		if r.treasury, err = types.ParseAccountID(cfg.Treasury); err != nil {
			return nil, fmt.Errorf("marketplace.treasury: %w", err)
		}
	}
	if cfg.DefaultFee != "" {
		if r.defaultFee, err = types.ParsePercentage(cfg.DefaultFee); err != nil {
			return nil, fmt.Errorf("marketplace.default_fee: %w", err)
		}
	}

	for i, tc := range cfg.Tokens {
		if err := r.addToken(tc); err != nil {
			return nil, fmt.Errorf("marketplace.tokens[%d]: %w", i, err)
		}
	}
	return r, nil
}

func (r *Royalties) addToken(tc config.TokenConfig) error {
	address, err := types.ParseAccountID(tc.Address)
	if err != nil {
		return fmt.Errorf("address: %w", err)
	}
	s := &tokenSettings{trusted: make(map[types.AccountID]bool)}
	if tc.Fee != "" {
		if s.fee, err = types.ParsePercentage(tc.Fee); err != nil {
			return fmt.Errorf("fee: %w", err)
		}
		s.hasFee = true
	}
	if tc.RoyaltyPercentage != "" {
		if s.royalty.Percentage, err = types.ParsePercentage(tc.RoyaltyPercentage); err != nil {
			return fmt.Errorf("royalty_percentage: %w", err)
		}
	}
	if tc.RoyaltyCreator != "" {
		if s.royalty.Creator, err = types.ParseAccountID(tc.RoyaltyCreator); err != nil {
			return fmt.Errorf("royalty_creator: %w", err)
		}
	}
	s.royalty.Treasury = s.royalty.Creator
	if tc.RoyaltyTreasury != "" {
		if s.royalty.Treasury, err = types.ParseAccountID(tc.RoyaltyTreasury); err != nil {
			return fmt.Errorf("royalty_treasury: %w", err)
		}
	}
	for _, ft := range tc.TrustedFeeTokens {
		feeToken, err := types.ParseAccountID(ft)
		if err != nil {
			return fmt.Errorf("trusted_fee_tokens: %w", err)
		}
		s.trusted[feeToken] = true
	}

	fee := r.defaultFee
	if s.hasFee {
		fee = s.fee
	}
	if fee+s.royalty.Percentage > types.PercentageBase {
		return ErrFeeTooHigh
	}
	r.tokens[address] = s
	return nil
}

func (r *Royalties) MarketplaceFeeOf(_ context.Context, token types.AccountID) (uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.tokens[token]; ok && s.hasFee {
		return s.fee, nil
	}
	return r.defaultFee, nil
}

func (r *Royalties) RoyaltyInfoOf(_ context.Context, token types.AccountID) (rental.RoyaltyInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.tokens[token]; ok {
		return s.royalty, nil
	}
	return rental.RoyaltyInfo{}, nil
}

func (r *Royalties) IsTrustedFeeToken(_ context.Context, token, feeToken types.AccountID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.tokens[token]
	return ok && s.trusted[feeToken], nil
}

func (r *Royalties) MaxDuration(context.Context) (time.Duration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.maxDuration, nil
}

func (r *Royalties) MarketplaceTreasury(context.Context) (types.AccountID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.treasury, nil
}

// SetMarketplaceFee overrides the fee charged on rentals of token.
func (r *Royalties) SetMarketplaceFee(token types.AccountID, fee uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.settings(token)
	if fee+s.royalty.Percentage > types.PercentageBase {
		return ErrFeeTooHigh
	}
	s.fee, s.hasFee = fee, true
	return nil
}

// SetRoyaltyInfo sets the royalty of token.
func (r *Royalties) SetRoyaltyInfo(token types.AccountID, info rental.RoyaltyInfo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.settings(token)
	fee := r.defaultFee
	if s.hasFee {
		fee = s.fee
	}
	if fee+info.Percentage > types.PercentageBase {
		return ErrFeeTooHigh
	}
	s.royalty = info
	return nil
}

// SetTrustedFeeToken allows or forbids feeToken for offers on token.
func (r *Royalties) SetTrustedFeeToken(token, feeToken types.AccountID, trusted bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.settings(token)
	if trusted {
		s.trusted[feeToken] = true
	} else {
		delete(s.trusted, feeToken)
	}
}

func (r *Royalties) SetMaxDuration(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.maxDuration = d
}

// settings returns the entry for token, creating it. Callers hold mu.
func (r *Royalties) settings(token types.AccountID) *tokenSettings {
	s, ok := r.tokens[token]
	if !ok {
		s = &tokenSettings{trusted: make(map[types.AccountID]bool)}
		r.tokens[token] = s
	}
	return s
}
