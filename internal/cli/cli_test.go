package cli

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/LeJamon/goRentald/internal/config"
	"github.com/LeJamon/goRentald/internal/core/rental"
	"github.com/LeJamon/goRentald/internal/crypto"
	hashing "github.com/LeJamon/goRentald/internal/crypto/common"
	"github.com/LeJamon/goRentald/internal/rpc"
	jtx "github.com/LeJamon/goRentald/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// run executes the root command with args and returns everything written
// to stdout and stderr.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	keygenSeed = ""
	hashAlgorithm = hashing.HashSha512Half
	rpcKey = ""
	eventsLimit = 0

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--env-file="}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func decode(t *testing.T, out string) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &m), out)
	return m
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "rentald version "+rootCmd.Version)
}

func TestKeygenSeed(t *testing.T) {
	out, err := run(t, "", "keygen", "--seed", "alice")
	require.NoError(t, err)
	first := decode(t, out)

	want := crypto.KeyFromSeed([]byte("alice"))
	assert.Equal(t, want.AccountID().String(), first["account"])
	assert.Equal(t, want.PrivateKeyHex(), first["private_key"])

	out, err = run(t, "", "keygen", "--seed", "alice")
	require.NoError(t, err)
	assert.Equal(t, first, decode(t, out))
}

func TestKeygenRandom(t *testing.T) {
	out, err := run(t, "", "keygen")
	require.NoError(t, err)
	info := decode(t, out)

	key, err := crypto.KeyFromHex(info["private_key"].(string))
	require.NoError(t, err)
	assert.Equal(t, key.AccountID().String(), info["account"])
}

func TestHashOffer(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := env.Account("alice")
	offer := jtx.NFTOffer(env, alice, 7).Build()
	raw, err := json.Marshal(offer)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "offer.json")
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	out, err := run(t, "", "hash-offer", path)
	require.NoError(t, err)
	assert.Equal(t, env.Hash(offer).String(), strings.TrimSpace(out))

	wrapped, err := json.Marshal(map[string]interface{}{"offer": offer})
	require.NoError(t, err)
	out, err = run(t, string(wrapped), "hash-offer")
	require.NoError(t, err)
	assert.Equal(t, env.Hash(offer).String(), strings.TrimSpace(out))

	out, err = run(t, string(raw), "hash-offer", "--hash", "keccak256", "-")
	require.NoError(t, err)
	assert.NotEqual(t, env.Hash(offer).String(), strings.TrimSpace(out))

	_, err = run(t, "", "hash-offer", "--hash", "md5", path)
	assert.Error(t, err)
}

func newTestServer(t *testing.T) (*jtx.TestEnv, string) {
	t.Helper()
	env := jtx.NewTestEnv(t)
	services := &rpc.Services{Engine: env.Engine(), Version: "test", StartedAt: time.Now()}
	svc := rpc.NewService(config.ServerConfig{
		Bind:              "127.0.0.1",
		RPCTimeout:        5 * time.Second,
		RequireSignatures: true,
	}, services, zaptest.NewLogger(t))
	server := httptest.NewServer(svc.Handler())
	t.Cleanup(func() {
		svc.Hub().Close()
		server.Close()
	})
	return env, server.URL + "/rpc"
}

func TestRPCSignedPing(t *testing.T) {
	env, url := newTestServer(t)
	alice := env.Account("alice")

	out, err := run(t, "", "rpc", "--url", url, "--key", alice.Key.PrivateKeyHex(), "ping")
	require.NoError(t, err)
	result := decode(t, out)
	assert.Equal(t, alice.ID.String(), result["caller"])
	assert.Equal(t, true, result["signed"])

	t.Setenv(KeyEnv, alice.Key.PrivateKeyHex())
	out, err = run(t, "", "rpc", "--url", url, "ping")
	require.NoError(t, err)
	assert.Equal(t, alice.ID.String(), decode(t, out)["caller"])

	_, err = run(t, "", "rpc", "--url", url, "--key", "zz", "ping")
	assert.Error(t, err)
}

func TestRPCCreateAndQueryOffer(t *testing.T) {
	env, url := newTestServer(t)
	alice := env.Account("alice")
	env.MintNFT(alice, 1)
	offer := jtx.NFTOffer(env, alice, 1).Build()
	raw, err := json.Marshal(offer)
	require.NoError(t, err)
	key := alice.Key.PrivateKeyHex()

	out, err := run(t, string(raw), "rpc", "--url", url, "--key", key, "create_rental_offer")
	require.NoError(t, err)
	created := decode(t, out)
	assert.Equal(t, rental.TesSUCCESS.String(), created["engine_result"])
	assert.Equal(t, env.Hash(offer).String(), created["offer_hash"])

	out, err = run(t, "", "rpc", "--url", url, "offer_info", env.Hash(offer).String())
	require.NoError(t, err)
	assert.Contains(t, out, alice.ID.String())

	// Replaying the same nonce is rejected by the engine, not the transport.
	out, err = run(t, string(raw), "rpc", "--url", url, "--key", key, "create_rental_offer", "-")
	require.NoError(t, err)
	assert.Equal(t, false, decode(t, out)["applied"])
}

func TestRPCErrors(t *testing.T) {
	_, url := newTestServer(t)

	_, err := run(t, "", "rpc", "--url", url, "call", "no_such_method")
	var rpcErr *rpc.RpcError
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, "unknownCmd", rpcErr.ErrorString)

	_, err = run(t, "", "rpc", "--url", url, "call", "hash_offer", "{not json")
	assert.Error(t, err)

	_, err = run(t, "", "rpc", "--url", url, "nonce_deadline", "rAlice", "abc")
	assert.Error(t, err)
}
