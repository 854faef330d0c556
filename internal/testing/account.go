package testing

import (
	"github.com/LeJamon/goRentald/internal/core/types"
	"github.com/LeJamon/goRentald/internal/crypto"
)

// Account represents a test account with a deterministic secp256k1 key.
type Account struct {
	// Name is a human-readable identifier for the account (used for debugging).
	Name string

	// Key signs requests on behalf of the account.
	Key *crypto.KeyPair

	// ID is the 20-byte account ID derived from the public key.
	ID types.AccountID
}

// NewAccount creates a new test account with a keypair derived from the name.
// Using the same name will always produce the same account, making tests
// reproducible.
func NewAccount(name string) *Account {
	key := crypto.KeyFromSeed([]byte(name))
	return &Account{
		Name: name,
		Key:  key,
		ID:   key.AccountID(),
	}
}

// PublicKey returns the compressed public key.
func (a *Account) PublicKey() []byte {
	return a.Key.PublicKey()
}

// String implements the Stringer interface for debugging.
func (a *Account) String() string {
	return a.Name + " (" + a.ID.String() + ")"
}
