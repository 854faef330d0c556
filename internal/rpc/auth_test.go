package rpc

import (
	"testing"
	"time"

	"github.com/LeJamon/goRentald/internal/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stepClock struct{ now time.Time }

func (c *stepClock) Now() time.Time { return c.now }

func TestReplayGuardEvictionRaisesFloor(t *testing.T) {
	g := newReplayGuard(2)
	key := crypto.KeyFromSeed([]byte("alice")).AccountID()

	require.True(t, g.claim(key, 1, 150, 100))
	require.True(t, g.claim(key, 2, 120, 100))
	// Evicts nonce 1, which is still live until 150.
	require.True(t, g.claim(key, 3, 200, 100))

	assert.False(t, g.claim(key, 1, 150, 100), "evicted nonce must stay refused")
	assert.False(t, g.claim(key, 4, 140, 100), "expiry under the floor is refused")
	assert.True(t, g.claim(key, 5, 151, 100))
}

func TestReplayGuardIgnoresExpiredEvictions(t *testing.T) {
	g := newReplayGuard(1)
	key := crypto.KeyFromSeed([]byte("alice")).AccountID()

	require.True(t, g.claim(key, 1, 110, 100))
	require.True(t, g.claim(key, 2, 300, 200))
	assert.Zero(t, g.floor)
}

func TestAuthenticateWindow(t *testing.T) {
	clock := &stepClock{now: time.Unix(1_000_000, 0)}
	auth := NewAuthenticator(AuthConfig{RequireSignatures: true, SignatureWindow: time.Minute, Clock: clock})
	key := crypto.KeyFromSeed([]byte("bob"))

	signed := func(expires, nonce uint64) Credentials {
		req := Request{Method: "ping", Expires: expires, RequestNonce: nonce}
		Sign(&req, key)
		return Credentials{PublicKey: req.PublicKey, Signature: req.Signature, Expires: req.Expires, Nonce: req.RequestNonce}
	}

	caller, ok, rpcErr := auth.Authenticate("ping", nil, signed(1_000_030, 7))
	require.Nil(t, rpcErr)
	assert.True(t, ok)
	assert.Equal(t, key.AccountID(), caller)

	_, _, rpcErr = auth.Authenticate("ping", nil, signed(1_000_030, 7))
	require.NotNil(t, rpcErr)
	assert.Equal(t, RpcREPLAYED, rpcErr.Code)

	_, _, rpcErr = auth.Authenticate("ping", nil, signed(1_000_120, 8))
	require.NotNil(t, rpcErr)
	assert.Equal(t, RpcINVALID_PARAMS, rpcErr.Code)

	clock.now = clock.now.Add(31 * time.Second)
	_, _, rpcErr = auth.Authenticate("ping", nil, signed(1_000_030, 9))
	require.NotNil(t, rpcErr)
	assert.Equal(t, RpcEXPIRED, rpcErr.Code)
}
