package rpc_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/LeJamon/goRentald/internal/core/rental"
	"github.com/LeJamon/goRentald/internal/core/types"
	"github.com/LeJamon/goRentald/internal/rpc"
	jtx "github.com/LeJamon/goRentald/internal/testing"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, f *fixture) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, msg interface{}) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(msg))
}

func receive(t *testing.T, conn *websocket.Conn) map[string]interface{} {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg map[string]interface{}
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestWebSocketMethodCall(t *testing.T) {
	f := newFixture(t, false, nil)
	alice := f.env.Account("alice")
	conn := dial(t, f)

	send(t, conn, map[string]interface{}{"command": "ping", "id": 1, "caller": alice.ID})
	resp := receive(t, conn)
	assert.Equal(t, "response", resp["type"])
	assert.Equal(t, "success", resp["status"])
	assert.Equal(t, float64(1), resp["id"])
	result := resp["result"].(map[string]interface{})
	assert.Equal(t, alice.ID.String(), result["caller"])

	send(t, conn, map[string]interface{}{"command": "no_such_method", "id": 2})
	resp = receive(t, conn)
	assert.Equal(t, "error", resp["status"])
	assert.Equal(t, "unknownCmd", resp["error"])
	assert.Equal(t, float64(2), resp["id"])

	send(t, conn, map[string]interface{}{"id": 3})
	resp = receive(t, conn)
	assert.Equal(t, "missingCommand", resp["error"])
}

func TestWebSocketSignedCall(t *testing.T) {
	f := newFixture(t, true, nil)
	alice := f.env.Account("alice")
	f.env.MintNFT(alice, 1)
	conn := dial(t, f)

	params, err := json.Marshal(map[string]interface{}{"offer": jtx.NFTOffer(f.env, alice, 1).Build()})
	require.NoError(t, err)
	req := rpc.Request{Method: "create_rental_offer", Params: []json.RawMessage{params}}
	rpc.Sign(&req, alice.Key)

	send(t, conn, map[string]interface{}{
		"command":       req.Method,
		"id":            "create",
		"params":        json.RawMessage(params),
		"public_key":    req.PublicKey,
		"signature":     req.Signature,
		"expires":       req.Expires,
		"request_nonce": req.RequestNonce,
	})
	resp := receive(t, conn)
	assert.Equal(t, "create", resp["id"])
	result := resp["result"].(map[string]interface{})
	assert.Equal(t, rental.TesSUCCESS.String(), result["engine_result"])
}

func TestWebSocketEventStream(t *testing.T) {
	f := newFixture(t, true, nil)
	alice := f.env.Account("alice")
	f.env.MintNFT(alice, 1)
	f.env.MintNFT(alice, 2)

	all := dial(t, f)
	send(t, all, map[string]interface{}{"command": "subscribe", "id": 1})
	assert.Equal(t, true, receive(t, all)["result"].(map[string]interface{})["subscribed"])

	first := jtx.NFTOffer(f.env, alice, 1).Build()
	second := jtx.NFTOffer(f.env, alice, 2).Build()

	filtered := dial(t, f)
	send(t, filtered, map[string]interface{}{
		"command":      "subscribe",
		"offer_hashes": []types.Hash{f.env.Hash(second)},
	})
	receive(t, filtered)
	require.Equal(t, 2, f.service.Hub().Subscribers())

	client := f.client(alice)
	requireEngineResult(t, call(t, client, "create_rental_offer", map[string]interface{}{"offer": first}), rental.TesSUCCESS)
	requireEngineResult(t, call(t, client, "create_rental_offer", map[string]interface{}{"offer": second}), rental.TesSUCCESS)

	for _, offer := range []*rental.Offer{first, second} {
		msg := receive(t, all)
		assert.Equal(t, "rental_event", msg["type"])
		ev := msg["event"].(map[string]interface{})
		assert.Equal(t, string(rental.EventOfferCreated), ev["type"])
		assert.Equal(t, f.env.Hash(offer).String(), ev["offer_hash"])
	}

	msg := receive(t, filtered)
	ev := msg["event"].(map[string]interface{})
	assert.Equal(t, f.env.Hash(second).String(), ev["offer_hash"])

	send(t, all, map[string]interface{}{"command": "unsubscribe", "id": 2})
	assert.Equal(t, true, receive(t, all)["result"].(map[string]interface{})["unsubscribed"])
	assert.Equal(t, 1, f.service.Hub().Subscribers())
}

func TestWebSocketOriginCheck(t *testing.T) {
	f := newFixture(t, false, nil)
	hub := rpc.NewHub(f.service.Server(), []string{"https://app.example"}, nil)
	server := httptest.NewServer(hub)
	t.Cleanup(server.Close)
	url := "ws" + strings.TrimPrefix(server.URL, "http")

	header := http.Header{"Origin": []string{"https://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	header = http.Header{"Origin": []string{"https://app.example"}}
	conn, _, err := websocket.DefaultDialer.DialContext(context.Background(), url, header)
	require.NoError(t, err)
	conn.Close()
	hub.Close()
}
