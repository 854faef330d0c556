package rental

import (
	"context"

	"github.com/LeJamon/goRentald/internal/core/types"
)

// Commitment is a quantity of an SFT locked in a registry.
type Commitment struct {
	ID           uint64          `json:"commitment_id"`
	Grantor      types.AccountID `json:"grantor"`
	TokenAddress types.AccountID `json:"token_address"`
	TokenID      uint64          `json:"token_id"`
	TokenAmount  uint64          `json:"token_amount"`
}

// commitmentRegistry is the shape-independent view of an SFT registry.
type commitmentRegistry interface {
	Lock(ctx context.Context, owner, tokenAddress types.AccountID, tokenID, amount uint64) (uint64, error)
	Release(ctx context.Context, commitmentID uint64) error
	Grant(ctx context.Context, grant CommitmentGrant) error
	Revoke(ctx context.Context, rev CommitmentRevocation) error
	Commitment(ctx context.Context, commitmentID uint64) (Commitment, error)
}

type currentRegistry struct {
	r SFTRolesRegistry
}

func (c currentRegistry) Lock(ctx context.Context, owner, tokenAddress types.AccountID, tokenID, amount uint64) (uint64, error) {
	return c.r.LockTokens(ctx, owner, tokenAddress, tokenID, amount)
}

func (c currentRegistry) Release(ctx context.Context, id uint64) error {
	return c.r.UnlockTokens(ctx, id)
}

func (c currentRegistry) Grant(ctx context.Context, g CommitmentGrant) error {
	return c.r.GrantRole(ctx, g)
}

func (c currentRegistry) Revoke(ctx context.Context, rev CommitmentRevocation) error {
	return c.r.RevokeRole(ctx, rev)
}

func (c currentRegistry) Commitment(ctx context.Context, id uint64) (Commitment, error) {
	out := Commitment{ID: id}
	var err error
	if out.Grantor, err = c.r.OwnerOf(ctx, id); err != nil {
		return out, err
	}
	if out.TokenAddress, err = c.r.TokenAddressOf(ctx, id); err != nil {
		return out, err
	}
	if out.TokenID, err = c.r.TokenIdOf(ctx, id); err != nil {
		return out, err
	}
	if out.TokenAmount, err = c.r.TokenAmountOf(ctx, id); err != nil {
		return out, err
	}
	return out, nil
}

type legacyRegistry struct {
	r LegacySFTRolesRegistry
}

func (l legacyRegistry) Lock(ctx context.Context, owner, tokenAddress types.AccountID, tokenID, amount uint64) (uint64, error) {
	return l.r.CommitTokens(ctx, owner, tokenAddress, tokenID, amount)
}

func (l legacyRegistry) Release(ctx context.Context, id uint64) error {
	return l.r.ReleaseTokens(ctx, id)
}

func (l legacyRegistry) Grant(ctx context.Context, g CommitmentGrant) error {
	return l.r.GrantRole(ctx, g)
}

func (l legacyRegistry) Revoke(ctx context.Context, rev CommitmentRevocation) error {
	return l.r.RevokeRole(ctx, rev)
}

func (l legacyRegistry) Commitment(ctx context.Context, id uint64) (Commitment, error) {
	out := Commitment{ID: id}
	var err error
	if out.Grantor, err = l.r.GrantorOf(ctx, id); err != nil {
		return out, err
	}
	if out.TokenAddress, err = l.r.TokenAddressOf(ctx, id); err != nil {
		return out, err
	}
	if out.TokenID, err = l.r.TokenIdOf(ctx, id); err != nil {
		return out, err
	}
	if out.TokenAmount, err = l.r.TokenAmountOf(ctx, id); err != nil {
		return out, err
	}
	return out, nil
}

// registryFor selects the registry shape serving tokenAddress.
func (e *Engine) registryFor(tokenAddress types.AccountID) (commitmentRegistry, error) {
	if e.legacyRegistry != nil && !e.legacyToken.IsZero() && tokenAddress == e.legacyToken {
		return legacyRegistry{e.legacyRegistry}, nil
	}
	if e.sftRegistry == nil {
		return nil, fail(TefREGISTRY_FAILED, errNoSFTRegistry)
	}
	return currentRegistry{e.sftRegistry}, nil
}

// checkCommitment compares a stored commitment against the offer's claim.
func checkCommitment(c Commitment, tokenAddress types.AccountID, tokenID, amount uint64, grantor types.AccountID) error {
	if c.TokenAmount != amount {
		return TemCOMMITMENT_AMOUNT
	}
	if c.Grantor != grantor {
		return TemCOMMITMENT_GRANTOR
	}
	if c.TokenAddress != tokenAddress {
		return TemCOMMITMENT_ADDRESS
	}
	if c.TokenID != tokenID {
		return TemCOMMITMENT_TOKEN_ID
	}
	return nil
}

// validateCommitment loads the offer's commitment and checks it against the
// offer.
func (e *Engine) validateCommitment(ctx context.Context, reg commitmentRegistry, o *Offer) (Commitment, error) {
	c, err := reg.Commitment(ctx, o.CommitmentID)
	if err != nil {
		return c, fail(TefREGISTRY_FAILED, err)
	}
	return c, checkCommitment(c, o.TokenAddress, o.TokenID, o.TokenAmount, o.Lender)
}
