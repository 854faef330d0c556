package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/LeJamon/goRentald/internal/crypto"
)

// Client calls a rentald JSON-RPC endpoint. With a key every request is
// signed; without one requests are anonymous.
type Client struct {
	endpoint string
	http     *http.Client
	key      *crypto.KeyPair
}

// NewClient creates a client for endpoint, e.g. http://127.0.0.1:5005/rpc.
func NewClient(endpoint string, key *crypto.KeyPair) *Client {
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 30 * time.Second},
		key:      key,
	}
}

// Call runs method with params, which may be nil, and returns the result
// object. Error responses are returned as *RpcError.
func (c *Client) Call(ctx context.Context, method string, params interface{}) (json.RawMessage, error) {
	req := Request{Method: method}
	if params != nil {
		raw, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("encode params: %w", err)
		}
		req.Params = []json.RawMessage{raw}
	}
	if c.key != nil {
		Sign(&req, c.key)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rpc %s: http status %s", method, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("rpc %s: decode response: %w", method, err)
	}
	var status struct {
		Status string `json:"status"`
		RpcError
	}
	if err := json.Unmarshal(envelope.Result, &status); err != nil {
		return nil, fmt.Errorf("rpc %s: decode result: %w", method, err)
	}
	if status.Status == "error" {
		rpcErr := status.RpcError
		return nil, &rpcErr
	}
	return envelope.Result, nil
}
