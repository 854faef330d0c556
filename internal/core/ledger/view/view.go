// Package view defines the keylet-addressed state views the rental engine
// reads and writes through, and the sandbox that stages an operation's
// changes before they are committed.
package view

import (
	"github.com/LeJamon/goRentald/internal/core/ledger/keylet"
)

// LedgerView provides keylet-addressed access to marketplace state.
// Read returns (nil, nil) for an absent entry.
type LedgerView interface {
	// Read reads an entry
	Read(k keylet.Keylet) ([]byte, error)

	// Exists checks if an entry exists
	Exists(k keylet.Keylet) (bool, error)

	// Insert adds a new entry
	Insert(k keylet.Keylet, data []byte) error

	// Update modifies an existing entry
	Update(k keylet.Keylet, data []byte) error

	// Erase removes an entry
	Erase(k keylet.Keylet) error
}

// Change is one staged modification of a key.
type Change struct {
	Action Action
	Key    [32]byte
	// Data is the new value; nil for erases.
	Data []byte
}

// Committer is implemented by the root view. CommitChanges must apply all
// changes atomically.
type Committer interface {
	CommitChanges(changes []Change) error
}
