package rpc

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/LeJamon/goRentald/internal/core/types"
)

// Request is a JSON-RPC request in {"method": ..., "params": [{...}]} form.
// Mutating methods identify their caller either by signing the request or,
// when the server does not require signatures, through Caller.
type Request struct {
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params,omitempty"`

	Caller    string `json:"caller,omitempty"`
	PublicKey string `json:"public_key,omitempty"`
	Signature string `json:"signature,omitempty"`

	// Expires (unix seconds) and RequestNonce are covered by the signature
	// and make a signed request short-lived and single-use.
	Expires      uint64 `json:"expires,omitempty"`
	RequestNonce uint64 `json:"request_nonce,omitempty"`
}

// params returns the first params object, which is the only one used.
func (r *Request) params() json.RawMessage {
	if len(r.Params) == 0 {
		return nil
	}
	return r.Params[0]
}

// RpcContext contains request-specific information
type RpcContext struct {
	Context context.Context

	// Caller is the identity the request was authenticated as. It is the
	// zero account for anonymous requests.
	Caller types.AccountID
	Signed bool

	ClientIP string
}

// HasCaller reports whether the request carries an identity.
func (c *RpcContext) HasCaller() bool {
	return !c.Caller.IsZero()
}

// MethodHandler is implemented by every RPC method.
type MethodHandler interface {
	Handle(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError)

	// RequiresCaller reports whether the method acts on behalf of the caller.
	RequiresCaller() bool
}

// MethodRegistry maps method names to handlers.
type MethodRegistry struct {
	methods map[string]MethodHandler
}

func NewMethodRegistry() *MethodRegistry {
	return &MethodRegistry{
		methods: make(map[string]MethodHandler),
	}
}

func (r *MethodRegistry) Register(name string, handler MethodHandler) {
	r.methods[name] = handler
}

func (r *MethodRegistry) Get(name string) (MethodHandler, bool) {
	handler, exists := r.methods[name]
	return handler, exists
}

// List returns the registered method names in sorted order.
func (r *MethodRegistry) List() []string {
	methods := make([]string, 0, len(r.methods))
	for name := range r.methods {
		methods = append(methods, name)
	}
	sort.Strings(methods)
	return methods
}

// WebSocketResponse is the envelope of a reply to a WebSocket command.
type WebSocketResponse struct {
	Type   string      `json:"type"`
	ID     interface{} `json:"id,omitempty"`
	Status string      `json:"status,omitempty"`
	Result interface{} `json:"result,omitempty"`
}

// StreamMessage is pushed to subscribers for every committed event.
type StreamMessage struct {
	Type  string      `json:"type"`
	Event interface{} `json:"event"`
}
