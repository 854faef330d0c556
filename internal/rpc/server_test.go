package rpc_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/LeJamon/goRentald/internal/config"
	"github.com/LeJamon/goRentald/internal/core/rental"
	"github.com/LeJamon/goRentald/internal/core/types"
	"github.com/LeJamon/goRentald/internal/rpc"
	"github.com/LeJamon/goRentald/internal/storage/eventlog"
	jtx "github.com/LeJamon/goRentald/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fixture struct {
	env     *jtx.TestEnv
	service *rpc.Service
	server  *httptest.Server
}

func newFixture(t *testing.T, requireSignatures bool, events rpc.EventStore, opts ...jtx.Option) *fixture {
	t.Helper()
	env := jtx.NewTestEnv(t, opts...)
	services := &rpc.Services{Engine: env.Engine(), Events: events, Version: "test", StartedAt: time.Now()}
	cfg := config.ServerConfig{
		Bind:              "127.0.0.1",
		RPCTimeout:        5 * time.Second,
		RequireSignatures: requireSignatures,
	}
	service := rpc.NewService(cfg, services, zaptest.NewLogger(t))
	env.Engine().AddSink(service.Hub())

	server := httptest.NewServer(service.Handler())
	t.Cleanup(func() {
		service.Hub().Close()
		server.Close()
	})
	return &fixture{env: env, service: service, server: server}
}

func (f *fixture) client(acc *jtx.Account) *rpc.Client {
	if acc == nil {
		return rpc.NewClient(f.server.URL+"/rpc", nil)
	}
	return rpc.NewClient(f.server.URL+"/rpc", acc.Key)
}

// post sends a raw request and returns the result object.
func (f *fixture) post(t *testing.T, req rpc.Request) map[string]interface{} {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)
	return f.postRaw(t, body)
}

func (f *fixture) postRaw(t *testing.T, body []byte) map[string]interface{} {
	t.Helper()
	resp, err := http.Post(f.server.URL+"/rpc", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope struct {
		Result map[string]interface{} `json:"result"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope.Result
}

func call(t *testing.T, c *rpc.Client, method string, params interface{}) map[string]interface{} {
	t.Helper()
	raw, err := c.Call(context.Background(), method, params)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func requireEngineResult(t *testing.T, result map[string]interface{}, want rental.Result) {
	t.Helper()
	require.Equal(t, want.String(), result["engine_result"], "engine_result_message: %v", result["engine_result_message"])
	assert.Equal(t, float64(want), result["engine_result_code"])
	assert.Equal(t, want == rental.TesSUCCESS, result["applied"])
}

func TestSignedCreateAndAccept(t *testing.T) {
	f := newFixture(t, true, nil)
	alice := f.env.Account("alice")
	bob := f.env.Account("bob")
	f.env.MintNFT(alice, 1)
	f.env.Fund(bob, 10_000)

	offer := jtx.NFTOffer(f.env, alice, 1).Borrower(bob).Build()
	created := call(t, f.client(alice), "create_rental_offer", map[string]interface{}{"offer": offer})
	requireEngineResult(t, created, rental.TesSUCCESS)
	assert.Equal(t, "success", created["status"])
	assert.Equal(t, f.env.Hash(offer).String(), created["offer_hash"])
	require.NotNil(t, f.env.OfferRecord(offer))

	accepted := call(t, f.client(bob), "accept_rental_offer", map[string]interface{}{"offer": offer, "duration": 3600})
	requireEngineResult(t, accepted, rental.TesSUCCESS)
	events, ok := accepted["events"].([]interface{})
	require.True(t, ok)
	require.Len(t, events, 1)

	jtx.RequireBalance(t, f.env, f.env.Treasury, 180)
	jtx.RequireBalance(t, f.env, f.env.RoyaltyTreasury, 360)
	jtx.RequireBalance(t, f.env, alice, 3060)
}

func TestRejectionIsReportedAsEngineResult(t *testing.T) {
	f := newFixture(t, true, nil)
	alice := f.env.Account("alice")
	bob := f.env.Account("bob")
	f.env.MintNFT(alice, 1)

	offer := jtx.NFTOffer(f.env, alice, 1).Build()
	result := call(t, f.client(bob), "create_rental_offer", map[string]interface{}{"offer": offer})
	requireEngineResult(t, result, rental.TepNOT_LENDER)
	assert.Equal(t, "success", result["status"])
	assert.Nil(t, f.env.OfferRecord(offer))
}

func TestUnsignedCallerIgnoredWhenSignaturesRequired(t *testing.T) {
	f := newFixture(t, true, nil)
	alice := f.env.Account("alice")
	f.env.MintNFT(alice, 1)

	params, err := json.Marshal(map[string]interface{}{"offer": jtx.NFTOffer(f.env, alice, 1).Build()})
	require.NoError(t, err)
	result := f.post(t, rpc.Request{
		Method: "create_rental_offer",
		Params: []json.RawMessage{params},
		Caller: alice.ID.String(),
	})
	assert.Equal(t, "error", result["status"])
	assert.Equal(t, "noCaller", result["error"])
	assert.Equal(t, float64(rpc.RpcNO_CALLER), result["error_code"])
}

func TestUnsignedCallerTrustedWhenSignaturesOptional(t *testing.T) {
	f := newFixture(t, false, nil)
	alice := f.env.Account("alice")
	f.env.MintNFT(alice, 1)

	result := f.post(t, rpc.Request{Method: "ping", Caller: alice.ID.String()})
	assert.Equal(t, "success", result["status"])
	assert.Equal(t, alice.ID.String(), result["caller"])
	assert.Equal(t, false, result["signed"])

	offer := jtx.NFTOffer(f.env, alice, 1).Build()
	params, err := json.Marshal(map[string]interface{}{"offer": offer})
	require.NoError(t, err)
	created := f.post(t, rpc.Request{
		Method: "create_rental_offer",
		Params: []json.RawMessage{params},
		Caller: alice.ID.String(),
	})
	requireEngineResult(t, created, rental.TesSUCCESS)
}

func TestSignedPing(t *testing.T) {
	f := newFixture(t, true, nil)
	alice := f.env.Account("alice")

	result := call(t, f.client(alice), "ping", nil)
	assert.Equal(t, alice.ID.String(), result["caller"])
	assert.Equal(t, true, result["signed"])

	anonymous := call(t, f.client(nil), "ping", nil)
	assert.NotContains(t, anonymous, "caller")
}

func TestBadSignatures(t *testing.T) {
	f := newFixture(t, true, nil)
	alice := f.env.Account("alice")
	bob := f.env.Account("bob")

	params := json.RawMessage(`{"offer_hash":"0x00"}`)
	req := rpc.Request{Method: "ping", Params: []json.RawMessage{params}}
	rpc.Sign(&req, alice.Key)

	t.Run("tampered params", func(t *testing.T) {
		tampered := req
		tampered.Params = []json.RawMessage{json.RawMessage(`{"offer_hash":"0x01"}`)}
		result := f.post(t, tampered)
		assert.Equal(t, "badSignature", result["error"])
	})

	t.Run("other method", func(t *testing.T) {
		other := req
		other.Method = "server_info"
		result := f.post(t, other)
		assert.Equal(t, "badSignature", result["error"])
	})

	t.Run("caller mismatch", func(t *testing.T) {
		mismatch := req
		mismatch.Caller = bob.ID.String()
		result := f.post(t, mismatch)
		assert.Equal(t, "badSignature", result["error"])
	})

	t.Run("malformed public key", func(t *testing.T) {
		bad := req
		bad.PublicKey = "zz"
		result := f.post(t, bad)
		assert.Equal(t, "badPublicKey", result["error"])
	})

	t.Run("valid", func(t *testing.T) {
		result := f.post(t, req)
		assert.Equal(t, "success", result["status"])
		assert.Equal(t, alice.ID.String(), result["caller"])
	})

	t.Run("replayed", func(t *testing.T) {
		result := f.post(t, req)
		assert.Equal(t, "replayedRequest", result["error"])
	})
}

func TestSignedRequestCannotBeReplayed(t *testing.T) {
	f := newFixture(t, true, nil)
	alice := f.env.Account("alice")
	bob := f.env.Account("bob")
	f.env.MintNFT(alice, 1)
	f.env.Fund(bob, 100_000)

	offer := jtx.NFTOffer(f.env, alice, 1).Public().Build()
	requireEngineResult(t, call(t, f.client(alice), "create_rental_offer", map[string]interface{}{"offer": offer}), rental.TesSUCCESS)

	params, err := json.Marshal(map[string]interface{}{"offer": offer, "duration": 3600})
	require.NoError(t, err)
	req := rpc.Request{Method: "accept_rental_offer", Params: []json.RawMessage{params}}
	rpc.Sign(&req, bob.Key)
	body, err := json.Marshal(req)
	require.NoError(t, err)

	first := f.postRaw(t, body)
	requireEngineResult(t, first, rental.TesSUCCESS)
	paid := f.env.Balance(bob)
	assert.Equal(t, uint64(96_400), paid)

	// Once the rental lapses the offer could be accepted again, but not with
	// the same signed bytes.
	f.env.AdvanceSeconds(3601)
	replay := f.postRaw(t, body)
	assert.Equal(t, "error", replay["status"])
	assert.Equal(t, "replayedRequest", replay["error"])
	assert.Equal(t, paid, f.env.Balance(bob))

	// A freshly signed request is still accepted.
	again := call(t, f.client(bob), "accept_rental_offer", map[string]interface{}{"offer": offer, "duration": 3600})
	requireEngineResult(t, again, rental.TesSUCCESS)
	assert.Equal(t, paid-3600, f.env.Balance(bob))
}

func TestSignedRequestWindow(t *testing.T) {
	f := newFixture(t, true, nil)
	alice := f.env.Account("alice")
	now := uint64(time.Now().Unix())

	t.Run("expired", func(t *testing.T) {
		req := rpc.Request{Method: "ping", Expires: now - 1}
		rpc.Sign(&req, alice.Key)
		result := f.post(t, req)
		assert.Equal(t, "expiredRequest", result["error"])
	})

	t.Run("too far ahead", func(t *testing.T) {
		req := rpc.Request{Method: "ping", Expires: now + uint64(time.Hour/time.Second)}
		rpc.Sign(&req, alice.Key)
		result := f.post(t, req)
		assert.Equal(t, "invalidParams", result["error"])
	})

	t.Run("expiry is signed", func(t *testing.T) {
		req := rpc.Request{Method: "ping"}
		rpc.Sign(&req, alice.Key)
		req.Expires++
		result := f.post(t, req)
		assert.Equal(t, "badSignature", result["error"])
	})

	t.Run("nonce is signed", func(t *testing.T) {
		req := rpc.Request{Method: "ping"}
		rpc.Sign(&req, alice.Key)
		req.RequestNonce++
		result := f.post(t, req)
		assert.Equal(t, "badSignature", result["error"])
	})
}

func TestRequestErrors(t *testing.T) {
	f := newFixture(t, false, nil)

	result := f.postRaw(t, []byte(`{"method":`))
	assert.Equal(t, "jsonInvalid", result["error"])

	result = f.postRaw(t, []byte(`{"params":[{}]}`))
	assert.Equal(t, "missingCommand", result["error"])

	result = f.post(t, rpc.Request{Method: "account_info"})
	assert.Equal(t, "unknownCmd", result["error"])
	request, ok := result["request"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "account_info", request["command"])

	result = f.post(t, rpc.Request{Method: "offer_info"})
	assert.Equal(t, "invalidParams", result["error"])

	_, err := f.client(nil).Call(context.Background(), "offer_info", map[string]interface{}{"offer_hash": "0xnothex"})
	var rpcErr *rpc.RpcError
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, rpc.RpcINVALID_PARAMS, rpcErr.Code)
}

func TestBatchLengthMismatch(t *testing.T) {
	f := newFixture(t, true, nil)
	alice := f.env.Account("alice")

	result := call(t, f.client(alice), "batch_release_tokens", map[string]interface{}{
		"token_addresses": []types.AccountID{f.env.SFTToken, f.env.SFTToken},
		"commitment_ids":  []uint64{1},
	})
	requireEngineResult(t, result, rental.TemBATCH_LENGTH_MISMATCH)

	result = call(t, f.client(alice), "batch_grant_role", map[string]interface{}{
		"variant":          "nft",
		"token_addresses":  []types.AccountID{f.env.NFTToken},
		"asset_ids":        []uint64{1},
		"roles":            []types.RoleID{jtx.RoleUser},
		"grantees":         []types.AccountID{},
		"expiration_dates": []uint64{f.env.Now() + 60},
	})
	requireEngineResult(t, result, rental.TemBATCH_LENGTH_MISMATCH)

	result = call(t, f.client(alice), "batch_revoke_role", map[string]interface{}{
		"variant":         "nft",
		"token_addresses": []types.AccountID{},
	})
	requireEngineResult(t, result, rental.TemEMPTY_BATCH)
}

func TestBatchGrantAndRevokeOverRPC(t *testing.T) {
	f := newFixture(t, true, nil)
	alice := f.env.Account("alice")
	bob := f.env.Account("bob")
	f.env.MintNFT(alice, 7)
	expiration := f.env.Now() + 600

	granted := call(t, f.client(alice), "batch_grant_role", map[string]interface{}{
		"variant":          "nft",
		"token_addresses":  []types.AccountID{f.env.NFTToken},
		"asset_ids":        []uint64{7},
		"roles":            []types.RoleID{jtx.RoleUser},
		"grantees":         []types.AccountID{bob.ID},
		"expiration_dates": []uint64{expiration},
	})
	requireEngineResult(t, granted, rental.TesSUCCESS)

	grantee, err := f.env.World().NFTs.LastGrantee(context.Background(), jtx.RoleUser, f.env.NFTToken, 7)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, grantee)

	deadline := call(t, f.client(nil), "role_deadline", map[string]interface{}{
		"role":          jtx.RoleUser,
		"token_address": f.env.NFTToken,
		"asset_id":      7,
	})
	assert.Equal(t, float64(expiration), deadline["deadline"])

	revoked := call(t, f.client(bob), "batch_revoke_role", map[string]interface{}{
		"variant":         "nft",
		"token_addresses": []types.AccountID{f.env.NFTToken},
		"asset_ids":       []uint64{7},
		"roles":           []types.RoleID{jtx.RoleUser},
	})
	requireEngineResult(t, revoked, rental.TesSUCCESS)
	require.Len(t, f.env.OfType(rental.EventRoleRevoked), 1)
}

func TestStateQueries(t *testing.T) {
	f := newFixture(t, true, nil)
	alice := f.env.Account("alice")
	f.env.MintSFT(alice, 3, 100)

	offer := jtx.SFTOffer(f.env, alice, 3, 10).Public().Build()
	hashed := call(t, f.client(nil), "hash_offer", map[string]interface{}{"offer": offer})
	assert.Equal(t, f.env.Hash(offer).String(), hashed["offer_hash"])

	created := call(t, f.client(alice), "create_rental_offer", map[string]interface{}{"offer": offer})
	requireEngineResult(t, created, rental.TesSUCCESS)
	hash := created["offer_hash"].(string)

	stored, ok := created["offer"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), stored["commitment_id"])

	info := call(t, f.client(nil), "offer_info", map[string]interface{}{"offer_hash": hash})
	record, ok := info["offer"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, record["created"])
	assert.Equal(t, alice.ID.String(), record["lender"])
	assert.Equal(t, "sft", record["variant"])

	nonce := call(t, f.client(nil), "nonce_deadline", map[string]interface{}{"lender": alice.ID, "nonce": offer.Nonce})
	assert.Equal(t, float64(offer.Deadline), nonce["deadline"])

	link := call(t, f.client(nil), "commitment_link", map[string]interface{}{"token_address": f.env.SFTToken, "commitment_id": 1})
	linked, ok := link["link"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, hash, linked["offer_hash"])

	_, err := f.client(nil).Call(context.Background(), "rental_info", map[string]interface{}{"offer_hash": hash})
	var rpcErr *rpc.RpcError
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, "objectNotFound", rpcErr.ErrorString)

	_, err = f.client(nil).Call(context.Background(), "offer_info", map[string]interface{}{"offer_hash": types.Hash{1}})
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, "objectNotFound", rpcErr.ErrorString)
}

func TestEventHistoryDisabled(t *testing.T) {
	f := newFixture(t, false, nil)

	_, err := f.client(nil).Call(context.Background(), "recent_events", nil)
	var rpcErr *rpc.RpcError
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, "notEnabled", rpcErr.ErrorString)

	info := call(t, f.client(nil), "server_info", nil)
	assert.Equal(t, "disabled", info["info"].(map[string]interface{})["event_log"])
}

func TestEventHistory(t *testing.T) {
	cfg := config.EventsConfig{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "events.db")}
	log, err := eventlog.Open(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { log.Close() })

	f := newFixture(t, true, log, jtx.WithEngineConfig(func(ec *rental.EngineConfig) {
		ec.Sinks = append(ec.Sinks, log)
	}))
	alice := f.env.Account("alice")
	bob := f.env.Account("bob")
	f.env.MintNFT(alice, 1)
	f.env.Fund(bob, 10_000)

	offer := jtx.NFTOffer(f.env, alice, 1).Borrower(bob).Build()
	requireEngineResult(t, call(t, f.client(alice), "create_rental_offer", map[string]interface{}{"offer": offer}), rental.TesSUCCESS)
	requireEngineResult(t, call(t, f.client(bob), "accept_rental_offer", map[string]interface{}{"offer": offer, "duration": 60}), rental.TesSUCCESS)

	history := call(t, f.client(nil), "events_by_offer", map[string]interface{}{"offer_hash": f.env.Hash(offer)})
	records, ok := history["events"].([]interface{})
	require.True(t, ok)
	require.Len(t, records, 2)
	first := records[0].(map[string]interface{})["event"].(map[string]interface{})
	second := records[1].(map[string]interface{})["event"].(map[string]interface{})
	assert.Equal(t, string(rental.EventOfferCreated), first["type"])
	assert.Equal(t, string(rental.EventRentalStarted), second["type"])
	assert.NotContains(t, history, "marker")

	paged := call(t, f.client(nil), "events_by_offer", map[string]interface{}{"offer_hash": f.env.Hash(offer), "limit": 1})
	require.Len(t, paged["events"], 1)
	assert.Contains(t, paged, "marker")

	recent := call(t, f.client(nil), "recent_events", map[string]interface{}{"limit": 1})
	newest := recent["events"].([]interface{})[0].(map[string]interface{})["event"].(map[string]interface{})
	assert.Equal(t, string(rental.EventRentalStarted), newest["type"])

	_, err = f.client(nil).Call(context.Background(), "recent_events", map[string]interface{}{"limit": eventlog.MaxLimit + 1})
	var rpcErr *rpc.RpcError
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, rpc.RpcINVALID_PARAMS, rpcErr.Code)

	info := call(t, f.client(nil), "server_info", nil)
	assert.Equal(t, "ok", info["info"].(map[string]interface{})["event_log"])
}

func TestGetAndHealth(t *testing.T) {
	f := newFixture(t, false, nil)

	resp, err := http.Get(f.server.URL + "/rpc")
	require.NoError(t, err)
	defer resp.Body.Close()
	var envelope struct {
		Result map[string]interface{} `json:"result"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, "success", envelope.Result["status"])
	info := envelope.Result["info"].(map[string]interface{})
	assert.Equal(t, "test", info["build_version"])

	health, err := http.Get(f.server.URL + "/health")
	require.NoError(t, err)
	defer health.Body.Close()
	body, err := io.ReadAll(health.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
}

func TestMethodList(t *testing.T) {
	f := newFixture(t, false, nil)
	methods := f.service.Server().Registry().List()
	for _, m := range []string{
		"create_rental_offer", "cancel_rental_offer", "delist_rental_offer",
		"accept_rental_offer", "end_rental", "batch_release_tokens",
		"batch_grant_role", "batch_revoke_role", "hash_offer", "offer_info",
		"nonce_deadline", "role_deadline", "rental_info", "commitment_link",
		"events_by_offer", "recent_events", "server_info", "ping",
	} {
		assert.Contains(t, methods, m)
	}
}
