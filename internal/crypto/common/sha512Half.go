package crypto

import (
	"crypto/sha512"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"
)

// HashFunc digests the concatenation of its inputs into 32 bytes.
type HashFunc func(msgs ...[]byte) [32]byte

// Hash algorithm names accepted by HashByName.
const (
	HashSha512Half = "sha512half"
	HashKeccak256  = "keccak256"
)

// Sha512Half returns the first 32 bytes of the SHA-512 digest of the
// concatenated messages.
func Sha512Half(msgs ...[]byte) [32]byte {
	h := sha512.New()
	for _, m := range msgs {
		h.Write(m)
	}
	var result [32]byte
	copy(result[:], h.Sum(nil)[:32])
	return result
}

// Keccak256 returns the legacy Keccak-256 digest of the concatenated messages.
func Keccak256(msgs ...[]byte) [32]byte {
	h := sha3.NewLegacyKeccak256()
	for _, m := range msgs {
		h.Write(m)
	}
	var result [32]byte
	copy(result[:], h.Sum(nil))
	return result
}

// HashByName resolves a configured hash algorithm. The empty name selects
// Sha512Half.
func HashByName(name string) (HashFunc, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", HashSha512Half:
		return Sha512Half, nil
	case HashKeccak256:
		return Keccak256, nil
	default:
		return nil, fmt.Errorf("unsupported hash algorithm: %s", name)
	}
}
