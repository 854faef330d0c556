package standalone

import (
	"context"
	"sync"

	"github.com/LeJamon/goRentald/internal/core/rental"
	"github.com/LeJamon/goRentald/internal/core/types"
	"github.com/LeJamon/goRentald/internal/journal"
)

type nftKey struct {
	token types.AccountID
	id    uint64
}

type nftRoleKey struct {
	nftKey
	role types.RoleID
}

// roleAssignment is a grant held by a registry.
type roleAssignment struct {
	Grantor        types.AccountID
	Grantee        types.AccountID
	ExpirationDate uint64
	Revocable      bool
	Data           []byte
}

// replaceable reports whether a new grant may overwrite a.
func (a roleAssignment) replaceable(now uint64) bool {
	return a.Revocable || a.ExpirationDate <= now
}

// NFTRegistry is an in-memory NFT role registry. Lenders deposit tokens
// into it; it records role grants over deposited or held tokens.
type NFTRegistry struct {
	mu       sync.Mutex
	clock    rental.Clock
	holders  map[nftKey]types.AccountID
	deposits map[nftKey]types.AccountID
	roles    map[nftRoleKey]roleAssignment
	journal  journal.Journal
}

var _ rental.NFTRoleRegistry = (*NFTRegistry)(nil)

func NewNFTRegistry(clock rental.Clock) *NFTRegistry {
	return &NFTRegistry{
		clock:    clock,
		holders:  make(map[nftKey]types.AccountID),
		deposits: make(map[nftKey]types.AccountID),
		roles:    make(map[nftRoleKey]roleAssignment),
	}
}

// Mint assigns a token to owner. Minting is not journaled.
func (r *NFTRegistry) Mint(token types.AccountID, id uint64, owner types.AccountID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.holders[nftKey{token, id}] = owner
}

// Deposit moves a held token into registry custody.
func (r *NFTRegistry) Deposit(_ context.Context, owner, token types.AccountID, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := nftKey{token, id}
	holder, ok := r.holders[k]
	if !ok {
		if _, locked := r.deposits[k]; locked {
			return ErrAlreadyLocked
		}
		return ErrUnknownToken
	}
	if holder != owner {
		return ErrNotOwner
	}
	delete(r.holders, k)
	r.deposits[k] = owner
	r.journal.Record(func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.deposits, k)
		r.holders[k] = owner
	})
	return nil
}

// HolderOf returns who holds the token outside the registry.
func (r *NFTRegistry) HolderOf(token types.AccountID, id uint64) (types.AccountID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.holders[nftKey{token, id}]
	return h, ok
}

func (r *NFTRegistry) OwnerOf(_ context.Context, token types.AccountID, id uint64) (types.AccountID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ownerOf(nftKey{token, id})
}

func (r *NFTRegistry) ownerOf(k nftKey) (types.AccountID, error) {
	if d, ok := r.deposits[k]; ok {
		return d, nil
	}
	if h, ok := r.holders[k]; ok {
		return h, nil
	}
	return types.AccountID{}, ErrUnknownToken
}

// Unlock returns a deposited token to its depositor. Tokens with an
// unexpired non-revocable role stay locked.
func (r *NFTRegistry) Unlock(_ context.Context, token types.AccountID, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := nftKey{token, id}
	owner, ok := r.deposits[k]
	if !ok {
		return ErrNotLocked
	}
	now := nowUnix(r.clock)
	for rk, a := range r.roles {
		if rk.nftKey == k && !a.replaceable(now) {
			return ErrRoleActive
		}
	}
	delete(r.deposits, k)
	r.holders[k] = owner
	r.journal.Record(func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.holders, k)
		r.deposits[k] = owner
	})
	return nil
}

func (r *NFTRegistry) GrantRole(_ context.Context, g rental.RoleGrant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := nftKey{g.TokenAddress, g.TokenID}
	owner, err := r.ownerOf(k)
	if err != nil {
		return err
	}
	if owner != g.Grantor {
		return ErrNotOwner
	}
	now := nowUnix(r.clock)
	if g.ExpirationDate <= now {
		return ErrInvalidExpiration
	}
	rk := nftRoleKey{k, g.Role}
	if current, ok := r.roles[rk]; ok && !current.replaceable(now) {
		return ErrRoleActive
	}
	r.setRole(rk, &roleAssignment{
		Grantor:        g.Grantor,
		Grantee:        g.Grantee,
		ExpirationDate: g.ExpirationDate,
		Revocable:      g.Revocable,
		Data:           append([]byte(nil), g.Data...),
	})
	return nil
}

// RevokeRole removes a grant. The grantee may always give a role up; the
// owner only when the grant is revocable or expired.
func (r *NFTRegistry) RevokeRole(_ context.Context, rev rental.RoleRevocation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := nftKey{rev.TokenAddress, rev.TokenID}
	rk := nftRoleKey{k, rev.Role}
	current, ok := r.roles[rk]
	if !ok {
		return ErrGranteeMismatch
	}
	if rev.Revoker != current.Grantee {
		owner, err := r.ownerOf(k)
		if err != nil {
			return err
		}
		if rev.Revoker != owner || !current.replaceable(nowUnix(r.clock)) {
			return ErrNotAuthorized
		}
	}
	r.setRole(rk, nil)
	return nil
}

func (r *NFTRegistry) LastGrantee(_ context.Context, role types.RoleID, token types.AccountID, id uint64) (types.AccountID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.roles[nftRoleKey{nftKey{token, id}, role}].Grantee, nil
}

func (r *NFTRegistry) RoleExpirationDate(_ context.Context, role types.RoleID, token types.AccountID, id uint64) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.roles[nftRoleKey{nftKey{token, id}, role}].ExpirationDate, nil
}

// RoleData returns the data attached to a grant.
func (r *NFTRegistry) RoleData(role types.RoleID, token types.AccountID, id uint64) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.roles[nftRoleKey{nftKey{token, id}, role}].Data
}

// setRole replaces or, with a nil assignment, deletes a grant. Callers
// hold mu.
func (r *NFTRegistry) setRole(k nftRoleKey, a *roleAssignment) {
	prev, had := r.roles[k]
	if a == nil {
		delete(r.roles, k)
	} else {
		r.roles[k] = *a
	}
	r.journal.Record(func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if had {
			r.roles[k] = prev
		} else {
			delete(r.roles, k)
		}
	})
}

func (r *NFTRegistry) Checkpoint() int         { return r.journal.Checkpoint() }
func (r *NFTRegistry) RevertTo(checkpoint int) { r.journal.RevertTo(checkpoint) }
func (r *NFTRegistry) Commit(checkpoint int)   { r.journal.Commit(checkpoint) }

func nowUnix(c rental.Clock) uint64 {
	t := c.Now().Unix()
	if t < 0 {
		return 0
	}
	return uint64(t)
}
