package standalone

import (
	"context"
	"math/bits"
	"sync"

	"github.com/LeJamon/goRentald/internal/core/types"
	"github.com/LeJamon/goRentald/internal/journal"
)

type balanceKey struct {
	feeToken types.AccountID
	account  types.AccountID
}

// FeeTokenLedger holds fungible fee-token balances. Transfers are journaled
// so a failed operation restores every balance it touched.
type FeeTokenLedger struct {
	mu       sync.Mutex
	balances map[balanceKey]uint64
	journal  journal.Journal
}

func NewFeeTokenLedger() *FeeTokenLedger {
	return &FeeTokenLedger{balances: make(map[balanceKey]uint64)}
}

// Mint credits amount to account. Minting is not journaled.
func (l *FeeTokenLedger) Mint(feeToken, account types.AccountID, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	k := balanceKey{feeToken, account}
	sum, carry := bits.Add64(l.balances[k], amount, 0)
	if carry != 0 {
		return ErrBalanceOverflow
	}
	l.balances[k] = sum
	return nil
}

// BalanceOf returns the balance of account in feeToken.
func (l *FeeTokenLedger) BalanceOf(feeToken, account types.AccountID) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[balanceKey{feeToken, account}]
}

// TransferFrom moves amount from one account to another. It reports false,
// without error, when from cannot cover amount, and fails without moving
// anything when the credit would overflow the receiving balance.
func (l *FeeTokenLedger) TransferFrom(_ context.Context, feeToken, from, to types.AccountID, amount uint64) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	src, dst := balanceKey{feeToken, from}, balanceKey{feeToken, to}
	if l.balances[src] < amount {
		return false, nil
	}
	if src == dst {
		return true, nil
	}
	credited, carry := bits.Add64(l.balances[dst], amount, 0)
	if carry != 0 {
		return false, ErrBalanceOverflow
	}
	l.set(src, l.balances[src]-amount)
	l.set(dst, credited)
	return true, nil
}

// set writes a balance and journals its previous value. Callers hold mu.
func (l *FeeTokenLedger) set(k balanceKey, v uint64) {
	prev, had := l.balances[k]
	l.balances[k] = v
	l.journal.Record(func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if had {
			l.balances[k] = prev
		} else {
			delete(l.balances, k)
		}
	})
}

func (l *FeeTokenLedger) Checkpoint() int         { return l.journal.Checkpoint() }
func (l *FeeTokenLedger) RevertTo(checkpoint int) { l.journal.RevertTo(checkpoint) }
func (l *FeeTokenLedger) Commit(checkpoint int)   { l.journal.Commit(checkpoint) }
