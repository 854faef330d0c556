package crypto

import (
	"crypto/sha256"

	"github.com/LeJamon/goRentald/internal/core/types"
	"github.com/decred/dcrd/crypto/ripemd160"
)

// CalcAccountID computes the account identity of a public key as
// RIPEMD160(SHA256(publicKey)). The compressed secp256k1 encoding is hashed
// as-is, prefix byte included.
func CalcAccountID(publicKey []byte) types.AccountID {
	sha256Hash := sha256.Sum256(publicKey)

	ripemd160Hasher := ripemd160.New()
	ripemd160Hasher.Write(sha256Hash[:])
	ripemd160Hash := ripemd160Hasher.Sum(nil)

	var result types.AccountID
	copy(result[:], ripemd160Hash)
	return result
}
