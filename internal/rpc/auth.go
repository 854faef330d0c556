package rpc

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/LeJamon/goRentald/internal/core/rental"
	"github.com/LeJamon/goRentald/internal/core/types"
	"github.com/LeJamon/goRentald/internal/crypto"
	hashing "github.com/LeJamon/goRentald/internal/crypto/common"
	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	// DefaultSignatureWindow is the longest a signed request stays valid.
	DefaultSignatureWindow = 5 * time.Minute

	// DefaultReplayCacheSize bounds the remembered request nonces.
	DefaultReplayCacheSize = 1 << 16

	// signedRequestTTL is the validity Sign gives a request.
	signedRequestTTL = time.Minute
)

// SigningDigest is the digest a caller signs: SHA-512Half over the method
// name, a zero separator, the big-endian expiry and request nonce, and the
// exact params bytes sent on the wire.
func SigningDigest(method string, params json.RawMessage, expires, nonce uint64) [32]byte {
	var window [16]byte
	binary.BigEndian.PutUint64(window[:8], expires)
	binary.BigEndian.PutUint64(window[8:], nonce)
	return hashing.Sha512Half([]byte(method), []byte{0}, window[:], params)
}

// Credentials are the identity fields of a request.
type Credentials struct {
	Caller    string
	PublicKey string
	Signature string
	// Expires is the unix second after which the signature is refused.
	Expires uint64
	// Nonce makes each signed request single-use.
	Nonce uint64
}

// AuthConfig configures an Authenticator.
type AuthConfig struct {
	// RequireSignatures ignores unsigned caller claims.
	RequireSignatures bool
	// SignatureWindow caps how far in the future Expires may lie.
	SignatureWindow time.Duration
	// ReplayCacheSize bounds the nonces remembered until they expire.
	ReplayCacheSize int
	// Clock defaults to the wall clock.
	Clock rental.Clock
}

// Authenticator resolves the caller of a request and refuses signed
// requests that are stale or already seen.
type Authenticator struct {
	config AuthConfig
	guard  *replayGuard
}

// NewAuthenticator creates an authenticator; zero settings take defaults.
func NewAuthenticator(cfg AuthConfig) *Authenticator {
	if cfg.SignatureWindow <= 0 {
		cfg.SignatureWindow = DefaultSignatureWindow
	}
	if cfg.ReplayCacheSize <= 0 {
		cfg.ReplayCacheSize = DefaultReplayCacheSize
	}
	if cfg.Clock == nil {
		cfg.Clock = rental.SystemClock{}
	}
	return &Authenticator{config: cfg, guard: newReplayGuard(cfg.ReplayCacheSize)}
}

// Authenticate returns the caller of method. A signed request authenticates
// as the account of its public key, must match any explicit caller, must
// not have expired and is accepted once. An unsigned request is anonymous
// unless signatures are optional, in which case the claimed caller is
// trusted.
func (a *Authenticator) Authenticate(method string, params json.RawMessage, cred Credentials) (types.AccountID, bool, *RpcError) {
	var claimed types.AccountID
	if cred.Caller != "" {
		c, err := types.ParseAccountID(cred.Caller)
		if err != nil {
			return types.AccountID{}, false, RpcErrorInvalidField("caller")
		}
		claimed = c
	}

	if cred.Signature == "" && cred.PublicKey == "" {
		if a.config.RequireSignatures {
			return types.AccountID{}, false, nil
		}
		return claimed, false, nil
	}

	pub, err := decodeHex(cred.PublicKey)
	if err != nil || len(pub) == 0 {
		return types.AccountID{}, false, RpcErrorBadPublicKey("public_key must be hex")
	}
	sig, err := decodeHex(cred.Signature)
	if err != nil || len(sig) == 0 {
		return types.AccountID{}, false, RpcErrorBadSignature("signature must be hex")
	}
	if err := crypto.Verify(pub, SigningDigest(method, params, cred.Expires, cred.Nonce), sig); err != nil {
		return types.AccountID{}, false, RpcErrorBadSignature(err.Error())
	}

	caller := crypto.CalcAccountID(pub)
	if !claimed.IsZero() && claimed != caller {
		return types.AccountID{}, false, RpcErrorBadSignature("caller does not match public key")
	}

	if cred.Nonce == 0 {
		return types.AccountID{}, false, RpcErrorMissingField("request_nonce")
	}
	now := unixNow(a.config.Clock)
	if cred.Expires <= now {
		return types.AccountID{}, false, RpcErrorExpired("signed request has expired")
	}
	if cred.Expires > now+uint64(a.config.SignatureWindow/time.Second) {
		return types.AccountID{}, false, RpcErrorInvalidField("expires")
	}
	if !a.guard.claim(caller, cred.Nonce, cred.Expires, now) {
		return types.AccountID{}, false, RpcErrorReplayed("request_nonce already used")
	}
	return caller, true, nil
}

func unixNow(clock rental.Clock) uint64 {
	t := clock.Now().Unix()
	if t < 0 {
		return 0
	}
	return uint64(t)
}

type replayKey struct {
	account types.AccountID
	nonce   uint64
}

// replayGuard remembers (account, nonce) pairs with their expiry. When the
// cache evicts a pair that has not expired yet, floor rises to its expiry
// and every request expiring at or before floor is refused, so an evicted
// request can never be accepted twice.
type replayGuard struct {
	mu    sync.Mutex
	seen  *lru.Cache[replayKey, uint64]
	floor uint64
	now   uint64
}

func newReplayGuard(size int) *replayGuard {
	g := &replayGuard{}
	seen, err := lru.NewWithEvict[replayKey, uint64](size, g.evicted)
	if err != nil {
		panic(fmt.Sprintf("rpc: replay cache: %v", err))
	}
	g.seen = seen
	return g
}

// evicted runs inside claim, with mu held.
func (g *replayGuard) evicted(_ replayKey, expires uint64) {
	if expires > g.now && expires > g.floor {
		g.floor = expires
	}
}

func (g *replayGuard) claim(account types.AccountID, nonce, expires, now uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if expires <= g.floor {
		return false
	}
	key := replayKey{account: account, nonce: nonce}
	if g.seen.Contains(key) {
		return false
	}
	g.now = now
	g.seen.Add(key, expires)
	return true
}

// Sign fills the identity fields of req with a signature by key. A zero
// Expires is set one minute ahead and a zero RequestNonce is drawn at
// random.
func Sign(req *Request, key *crypto.KeyPair) {
	if req.Expires == 0 {
		req.Expires = uint64(time.Now().Add(signedRequestTTL).Unix())
	}
	if req.RequestNonce == 0 {
		req.RequestNonce = randomNonce()
	}
	digest := SigningDigest(req.Method, req.params(), req.Expires, req.RequestNonce)
	req.PublicKey = hex.EncodeToString(key.PublicKey())
	req.Signature = hex.EncodeToString(key.Sign(digest))
	req.Caller = key.AccountID().String()
}

func randomNonce() uint64 {
	var b [8]byte
	for {
		if _, err := rand.Read(b[:]); err != nil {
			panic(fmt.Sprintf("rpc: request nonce: %v", err))
		}
		if n := binary.BigEndian.Uint64(b[:]); n != 0 {
			return n
		}
	}
}

func decodeHex(s string) ([]byte, error) {
	return hex.DecodeString(strings.TrimPrefix(s, "0x"))
}
