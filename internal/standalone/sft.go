package standalone

import (
	"context"
	"sync"

	"github.com/LeJamon/goRentald/internal/core/rental"
	"github.com/LeJamon/goRentald/internal/core/types"
	"github.com/LeJamon/goRentald/internal/journal"
)

type holdingKey struct {
	token   types.AccountID
	id      uint64
	account types.AccountID
}

type commitmentRoleKey struct {
	commitmentID uint64
	role         types.RoleID
}

// commitmentBook is the state shared by both SFT registry shapes: token
// holdings, commitments locked out of them and role grants per commitment.
type commitmentBook struct {
	mu          sync.Mutex
	clock       rental.Clock
	holdings    map[holdingKey]uint64
	commitments map[uint64]rental.Commitment
	roles       map[commitmentRoleKey]roleAssignment
	nextID      uint64
	journal     journal.Journal
}

func (b *commitmentBook) init(clock rental.Clock) {
	b.clock = clock
	b.holdings = make(map[holdingKey]uint64)
	b.commitments = make(map[uint64]rental.Commitment)
	b.roles = make(map[commitmentRoleKey]roleAssignment)
}

// Mint credits SFT units to owner. Minting is not journaled.
func (b *commitmentBook) Mint(token types.AccountID, id uint64, owner types.AccountID, amount uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.holdings[holdingKey{token, id, owner}] += amount
}

// BalanceOf returns the unlocked units owner holds.
func (b *commitmentBook) BalanceOf(token types.AccountID, id uint64, owner types.AccountID) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.holdings[holdingKey{token, id, owner}]
}

func (b *commitmentBook) lock(owner, token types.AccountID, id, amount uint64) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if amount == 0 {
		return 0, ErrZeroAmount
	}
	hk := holdingKey{token, id, owner}
	if b.holdings[hk] < amount {
		return 0, ErrInsufficientBalance
	}
	b.setHolding(hk, b.holdings[hk]-amount)

	b.nextID++
	cid := b.nextID
	b.commitments[cid] = rental.Commitment{ID: cid, Grantor: owner, TokenAddress: token, TokenID: id, TokenAmount: amount}
	b.journal.Record(func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.commitments, cid)
		b.nextID--
	})
	return cid, nil
}

// release returns the committed units to the grantor. Commitments with an
// unexpired non-revocable role cannot be released.
func (b *commitmentBook) release(cid uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.commitments[cid]
	if !ok {
		return ErrUnknownCommitment
	}
	now := nowUnix(b.clock)
	for rk, a := range b.roles {
		if rk.commitmentID == cid && !a.replaceable(now) {
			return ErrRoleActive
		}
	}
	delete(b.commitments, cid)
	b.journal.Record(func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.commitments[cid] = c
	})
	hk := holdingKey{c.TokenAddress, c.TokenID, c.Grantor}
	b.setHolding(hk, b.holdings[hk]+c.TokenAmount)
	return nil
}

func (b *commitmentBook) grant(g rental.CommitmentGrant) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.commitments[g.CommitmentID]
	if !ok {
		return ErrUnknownCommitment
	}
	now := nowUnix(b.clock)
	if g.ExpirationDate <= now {
		return ErrInvalidExpiration
	}
	rk := commitmentRoleKey{g.CommitmentID, g.Role}
	if current, ok := b.roles[rk]; ok && !current.replaceable(now) {
		return ErrRoleActive
	}
	b.setRole(rk, &roleAssignment{
		Grantor:        c.Grantor,
		Grantee:        g.Grantee,
		ExpirationDate: g.ExpirationDate,
		Revocable:      g.Revocable,
		Data:           append([]byte(nil), g.Data...),
	})
	return nil
}

func (b *commitmentBook) revoke(rev rental.CommitmentRevocation) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.commitments[rev.CommitmentID]
	if !ok {
		return ErrUnknownCommitment
	}
	rk := commitmentRoleKey{rev.CommitmentID, rev.Role}
	current, ok := b.roles[rk]
	if !ok || current.Grantee != rev.Grantee {
		return ErrGranteeMismatch
	}
	if rev.Revoker != current.Grantee {
		if rev.Revoker != c.Grantor || !current.replaceable(nowUnix(b.clock)) {
			return ErrNotAuthorized
		}
	}
	b.setRole(rk, nil)
	return nil
}

func (b *commitmentBook) commitment(cid uint64) (rental.Commitment, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.commitments[cid]
	if !ok {
		return rental.Commitment{}, ErrUnknownCommitment
	}
	return c, nil
}

// RoleOf returns the grantee and expiration of a role over a commitment.
func (b *commitmentBook) RoleOf(cid uint64, role types.RoleID) (types.AccountID, uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	a := b.roles[commitmentRoleKey{cid, role}]
	return a.Grantee, a.ExpirationDate
}

// Callers hold mu.
func (b *commitmentBook) setHolding(k holdingKey, v uint64) {
	prev, had := b.holdings[k]
	b.holdings[k] = v
	b.journal.Record(func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if had {
			b.holdings[k] = prev
		} else {
			delete(b.holdings, k)
		}
	})
}

// Callers hold mu.
func (b *commitmentBook) setRole(k commitmentRoleKey, a *roleAssignment) {
	prev, had := b.roles[k]
	if a == nil {
		delete(b.roles, k)
	} else {
		b.roles[k] = *a
	}
	b.journal.Record(func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if had {
			b.roles[k] = prev
		} else {
			delete(b.roles, k)
		}
	})
}

func (b *commitmentBook) Checkpoint() int         { return b.journal.Checkpoint() }
func (b *commitmentBook) RevertTo(checkpoint int) { b.journal.RevertTo(checkpoint) }
func (b *commitmentBook) Commit(checkpoint int)   { b.journal.Commit(checkpoint) }

// SFTRegistry is an in-memory registry of the current shape, where a lock id
// serves as the commitment id.
type SFTRegistry struct {
	commitmentBook
}

var _ rental.SFTRolesRegistry = (*SFTRegistry)(nil)

func NewSFTRegistry(clock rental.Clock) *SFTRegistry {
	r := &SFTRegistry{}
	r.init(clock)
	return r
}

func (r *SFTRegistry) LockTokens(_ context.Context, owner, token types.AccountID, id, amount uint64) (uint64, error) {
	return r.lock(owner, token, id, amount)
}

func (r *SFTRegistry) UnlockTokens(_ context.Context, lockID uint64) error {
	return r.release(lockID)
}

func (r *SFTRegistry) GrantRole(_ context.Context, g rental.CommitmentGrant) error {
	return r.grant(g)
}

func (r *SFTRegistry) RevokeRole(_ context.Context, rev rental.CommitmentRevocation) error {
	return r.revoke(rev)
}

func (r *SFTRegistry) OwnerOf(_ context.Context, lockID uint64) (types.AccountID, error) {
	c, err := r.commitment(lockID)
	return c.Grantor, err
}

func (r *SFTRegistry) TokenAddressOf(_ context.Context, lockID uint64) (types.AccountID, error) {
	c, err := r.commitment(lockID)
	return c.TokenAddress, err
}

func (r *SFTRegistry) TokenIdOf(_ context.Context, lockID uint64) (uint64, error) {
	c, err := r.commitment(lockID)
	return c.TokenID, err
}

func (r *SFTRegistry) TokenAmountOf(_ context.Context, lockID uint64) (uint64, error) {
	c, err := r.commitment(lockID)
	return c.TokenAmount, err
}

// LegacySFTRegistry is an in-memory registry of the older commitment shape.
type LegacySFTRegistry struct {
	commitmentBook
}

var _ rental.LegacySFTRolesRegistry = (*LegacySFTRegistry)(nil)

func NewLegacySFTRegistry(clock rental.Clock) *LegacySFTRegistry {
	r := &LegacySFTRegistry{}
	r.init(clock)
	return r
}

func (r *LegacySFTRegistry) CommitTokens(_ context.Context, grantor, token types.AccountID, id, amount uint64) (uint64, error) {
	return r.lock(grantor, token, id, amount)
}

func (r *LegacySFTRegistry) ReleaseTokens(_ context.Context, commitmentID uint64) error {
	return r.release(commitmentID)
}

func (r *LegacySFTRegistry) GrantRole(_ context.Context, g rental.CommitmentGrant) error {
	return r.grant(g)
}

func (r *LegacySFTRegistry) RevokeRole(_ context.Context, rev rental.CommitmentRevocation) error {
	return r.revoke(rev)
}

func (r *LegacySFTRegistry) GrantorOf(_ context.Context, commitmentID uint64) (types.AccountID, error) {
	c, err := r.commitment(commitmentID)
	return c.Grantor, err
}

func (r *LegacySFTRegistry) TokenAddressOf(_ context.Context, commitmentID uint64) (types.AccountID, error) {
	c, err := r.commitment(commitmentID)
	return c.TokenAddress, err
}

func (r *LegacySFTRegistry) TokenIdOf(_ context.Context, commitmentID uint64) (uint64, error) {
	c, err := r.commitment(commitmentID)
	return c.TokenID, err
}

func (r *LegacySFTRegistry) TokenAmountOf(_ context.Context, commitmentID uint64) (uint64, error) {
	c, err := r.commitment(commitmentID)
	return c.TokenAmount, err
}
