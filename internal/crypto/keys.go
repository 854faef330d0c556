package crypto

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/LeJamon/goRentald/internal/core/types"
	hashing "github.com/LeJamon/goRentald/internal/crypto/common"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

var (
	// ErrInvalidPrivateKey is returned for malformed private key material.
	ErrInvalidPrivateKey = errors.New("invalid private key format")

	// ErrInvalidPublicKey is returned for malformed public keys.
	ErrInvalidPublicKey = errors.New("invalid public key format")

	// ErrInvalidSignature is returned when a signature does not parse or verify.
	ErrInvalidSignature = errors.New("invalid signature")
)

// KeyPair is a secp256k1 signing key.
type KeyPair struct {
	private *btcec.PrivateKey
}

// GenerateKey creates a fresh random key pair.
func GenerateKey() (*KeyPair, error) {
	priv, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return &KeyPair{private: priv}, nil
}

// KeyFromSeed derives a deterministic key pair from arbitrary seed bytes.
// Intended for tests and local tooling.
func KeyFromSeed(seed []byte) *KeyPair {
	secret := hashing.Sha512Half(seed)
	priv, _ := btcec.PrivKeyFromBytes(secret[:])
	return &KeyPair{private: priv}
}

// KeyFromHex parses a 32-byte hex private key.
func KeyFromHex(s string) (*KeyPair, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(s), "0x"))
	if err != nil || len(raw) != 32 {
		return nil, ErrInvalidPrivateKey
	}
	priv, _ := btcec.PrivKeyFromBytes(raw)
	return &KeyPair{private: priv}, nil
}

// PrivateKeyHex returns the hex encoded private scalar.
func (k *KeyPair) PrivateKeyHex() string {
	return hex.EncodeToString(k.private.Serialize())
}

// PublicKey returns the 33-byte compressed public key.
func (k *KeyPair) PublicKey() []byte {
	return k.private.PubKey().SerializeCompressed()
}

// AccountID returns the identity derived from the public key.
func (k *KeyPair) AccountID() types.AccountID {
	return CalcAccountID(k.PublicKey())
}

// Sign signs a 32-byte digest and returns the DER encoded signature.
func (k *KeyPair) Sign(digest [32]byte) []byte {
	return ecdsa.Sign(k.private, digest[:]).Serialize()
}

// Verify checks a DER signature over digest against a compressed or
// uncompressed secp256k1 public key.
func Verify(publicKey []byte, digest [32]byte, signature []byte) error {
	pub, err := btcec.ParsePubKey(publicKey)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	sig, err := ecdsa.ParseDERSignature(signature)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	if !sig.Verify(digest[:], pub) {
		return ErrInvalidSignature
	}
	return nil
}
