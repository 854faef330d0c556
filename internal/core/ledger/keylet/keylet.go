package keylet

import (
	"encoding/binary"

	"github.com/LeJamon/goRentald/internal/core/ledger/entry"
	"github.com/LeJamon/goRentald/internal/core/types"
	crypto "github.com/LeJamon/goRentald/internal/crypto/common"
)

// Space identifiers for keylet generation. Each entry family hashes under its
// own namespace so keys of different families can never collide.
const (
	spaceRentalOffer   uint16 = 'R' // Offer record, keyed by offer hash
	spaceNonceDeadline uint16 = 'n' // (lender, nonce) -> deadline
	spaceRoleDeadline  uint16 = 'd' // (role, token, id) -> deadline
	spaceRental        uint16 = 'L' // Active rental, keyed by offer hash
	spaceCommitment    uint16 = 'c' // Commitment -> owning offer
)

// Keylet represents an addressable location in the marketplace state.
// It combines a type identifier with a 256-bit key.
type Keylet struct {
	Type entry.Type
	Key  [32]byte
}

// indexHash computes a keylet key by hashing the space and provided data.
func indexHash(space uint16, data ...[]byte) [32]byte {
	spaceBytes := make([]byte, 2)
	binary.BigEndian.PutUint16(spaceBytes, space)

	inputs := make([][]byte, 0, len(data)+1)
	inputs = append(inputs, spaceBytes)
	inputs = append(inputs, data...)

	return crypto.Sha512Half(inputs...)
}

func uint64Bytes(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

// RentalOffer returns the keylet for the record of a created offer.
func RentalOffer(offerHash types.Hash) Keylet {
	return Keylet{
		Type: entry.TypeRentalOffer,
		Key:  indexHash(spaceRentalOffer, offerHash[:]),
	}
}

// NonceDeadline returns the keylet for a lender's nonce.
func NonceDeadline(lender types.AccountID, nonce uint64) Keylet {
	return Keylet{
		Type: entry.TypeNonceDeadline,
		Key:  indexHash(spaceNonceDeadline, lender[:], uint64Bytes(nonce)),
	}
}

// RoleDeadline returns the keylet for the exclusivity window of a role over
// one asset.
func RoleDeadline(role types.RoleID, tokenAddress types.AccountID, tokenID uint64) Keylet {
	return Keylet{
		Type: entry.TypeRoleDeadline,
		Key:  indexHash(spaceRoleDeadline, role[:], tokenAddress[:], uint64Bytes(tokenID)),
	}
}

// Rental returns the keylet for the rental started from an offer.
func Rental(offerHash types.Hash) Keylet {
	return Keylet{
		Type: entry.TypeRental,
		Key:  indexHash(spaceRental, offerHash[:]),
	}
}

// CommitmentLink returns the keylet linking a registry commitment to the
// offer currently backed by it. Commitment ids are scoped by token address
// because each token address resolves to exactly one registry.
func CommitmentLink(tokenAddress types.AccountID, commitmentID uint64) Keylet {
	return Keylet{
		Type: entry.TypeCommitmentLink,
		Key:  indexHash(spaceCommitment, tokenAddress[:], uint64Bytes(commitmentID)),
	}
}
