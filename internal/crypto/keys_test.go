package crypto

import (
	"testing"

	hashing "github.com/LeJamon/goRentald/internal/crypto/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerify(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)

	digest := hashing.Sha512Half([]byte("create_rental_offer"))
	sig := key.Sign(digest)

	require.NoError(t, Verify(key.PublicKey(), digest, sig))

	other := hashing.Sha512Half([]byte("cancel_rental_offer"))
	assert.ErrorIs(t, Verify(key.PublicKey(), other, sig), ErrInvalidSignature)

	assert.ErrorIs(t, Verify([]byte{0x02, 0x01}, digest, sig), ErrInvalidPublicKey)
	assert.ErrorIs(t, Verify(key.PublicKey(), digest, []byte{0x30}), ErrInvalidSignature)
}

func TestKeyFromHexRoundTrip(t *testing.T) {
	key := KeyFromSeed([]byte("alice"))
	again, err := KeyFromHex(key.PrivateKeyHex())
	require.NoError(t, err)
	assert.Equal(t, key.AccountID(), again.AccountID())

	_, err = KeyFromHex("abcd")
	assert.ErrorIs(t, err, ErrInvalidPrivateKey)
}

func TestKeyFromSeedDeterministic(t *testing.T) {
	assert.Equal(t, KeyFromSeed([]byte("bob")).PublicKey(), KeyFromSeed([]byte("bob")).PublicKey())
	assert.NotEqual(t, KeyFromSeed([]byte("bob")).AccountID(), KeyFromSeed([]byte("carol")).AccountID())
}
