// Package types holds the identifiers shared by the rental engine, storage
// and transport layers.
package types

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"
)

const (
	// AccountIDSize is the size of an account or contract identity in bytes.
	AccountIDSize = 20

	// HashSize is the size of offer hashes, role identifiers and keylet keys.
	HashSize = 32
)

var (
	// ErrInvalidHex is returned when an identifier is not valid hex.
	ErrInvalidHex = errors.New("invalid hex identifier")

	// ErrInvalidLength is returned when a decoded identifier has the wrong size.
	ErrInvalidLength = errors.New("invalid identifier length")
)

// AccountID identifies a lender, borrower, token contract or treasury.
// The zero value stands for "nobody", which on a borrower field means the
// offer is public.
type AccountID [AccountIDSize]byte

// Hash is a 256-bit digest.
type Hash [HashSize]byte

// RoleID identifies a usage capability granted through a role registry.
type RoleID [HashSize]byte

// ZeroAccount is the zero identity.
var ZeroAccount AccountID

// IsZero reports whether the account is the zero identity.
func (a AccountID) IsZero() bool {
	return a == ZeroAccount
}

// String returns the 0x-prefixed lowercase hex form.
func (a AccountID) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// MarshalText implements encoding.TextMarshaler.
func (a AccountID) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *AccountID) UnmarshalText(text []byte) error {
	parsed, err := ParseAccountID(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAccountID decodes a 0x-prefixed (or bare) 40 character hex string.
// The empty string decodes to the zero account.
func ParseAccountID(s string) (AccountID, error) {
	var out AccountID
	if s == "" {
		return out, nil
	}
	if err := decodeFixed(s, out[:]); err != nil {
		return out, fmt.Errorf("account %q: %w", s, err)
	}
	return out, nil
}

// MustParseAccountID is ParseAccountID for constants and tests.
func MustParseAccountID(s string) AccountID {
	a, err := ParseAccountID(s)
	if err != nil {
		panic(err)
	}
	return a
}

// IsZero reports whether every byte of the hash is zero.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// String returns the 0x-prefixed lowercase hex form.
func (h Hash) String() string {
	return "0x" + hex.EncodeToString(h[:])
}

// MarshalText implements encoding.TextMarshaler.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Hash) UnmarshalText(text []byte) error {
	parsed, err := ParseHash(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// ParseHash decodes a 0x-prefixed (or bare) 64 character hex string.
func ParseHash(s string) (Hash, error) {
	var out Hash
	if err := decodeFixed(s, out[:]); err != nil {
		return out, fmt.Errorf("hash %q: %w", s, err)
	}
	return out, nil
}

// String returns the 0x-prefixed lowercase hex form.
func (r RoleID) String() string {
	return "0x" + hex.EncodeToString(r[:])
}

// MarshalText implements encoding.TextMarshaler.
func (r RoleID) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText accepts either a 32-byte hex identifier or a role name such
// as "PLAYER()", which is hashed with RoleFromName.
func (r *RoleID) UnmarshalText(text []byte) error {
	parsed, err := ParseRoleID(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ParseRoleID decodes a hex role identifier, falling back to RoleFromName for
// anything that is not 32 bytes of hex.
func ParseRoleID(s string) (RoleID, error) {
	var out RoleID
	if s == "" {
		return out, fmt.Errorf("role: %w", ErrInvalidLength)
	}
	if err := decodeFixed(s, out[:]); err == nil {
		return out, nil
	}
	return RoleFromName(s), nil
}

// RoleFromName derives a role identifier as keccak256(name), matching the
// convention used by on-chain role registries.
func RoleFromName(name string) RoleID {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(name))
	var out RoleID
	copy(out[:], h.Sum(nil))
	return out
}

func decodeFixed(s string, dst []byte) error {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s) != hex.EncodedLen(len(dst)) {
		return ErrInvalidLength
	}
	if _, err := hex.Decode(dst, []byte(s)); err != nil {
		return ErrInvalidHex
	}
	return nil
}
