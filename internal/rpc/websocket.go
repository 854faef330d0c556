package rpc

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/LeJamon/goRentald/internal/core/rental"
	"github.com/LeJamon/goRentald/internal/core/types"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	wsReadLimit    = 512 * 1024
	wsPongWait     = 60 * time.Second
	wsPingInterval = 54 * time.Second
	wsWriteWait    = 10 * time.Second
	wsSendBuffer   = 256
)

// wsCommand is a message sent by a WebSocket client. Method calls carry
// their params object under "params" so that signatures cover the exact
// bytes the client sent.
type wsCommand struct {
	Command string          `json:"command"`
	ID      interface{}     `json:"id,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`

	Caller    string `json:"caller,omitempty"`
	PublicKey string `json:"public_key,omitempty"`
	Signature string `json:"signature,omitempty"`

	Expires      uint64 `json:"expires,omitempty"`
	RequestNonce uint64 `json:"request_nonce,omitempty"`

	// OfferHashes restricts a subscription to these offers.
	OfferHashes []types.Hash `json:"offer_hashes,omitempty"`
}

// Hub serves WebSocket clients: it runs their method calls through the
// server and streams committed events to subscribers. It is a
// rental.EventSink.
type Hub struct {
	upgrader websocket.Upgrader
	server   *Server
	logger   *zap.Logger

	mu          sync.RWMutex
	connections map[string]*wsConnection
}

var _ rental.EventSink = (*Hub)(nil)

// wsConnection represents a single WebSocket connection
type wsConnection struct {
	id     string
	conn   *websocket.Conn
	send   chan []byte
	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.RWMutex
	subscribed bool
	// offers filters the stream; empty means every offer.
	offers map[types.Hash]struct{}
}

// NewHub creates a hub dispatching method calls to server. origins lists
// the allowed browser origins; empty or "*" allows any.
func NewHub(server *Server, origins []string, logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: originChecker(origins),
		},
		server:      server,
		logger:      logger.Named("ws"),
		connections: make(map[string]*wsConnection),
	}
}

func originChecker(origins []string) func(r *http.Request) bool {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		allowed[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return len(allowed) == 0 || origin == "" || allowed[origin]
	}
}

// ServeHTTP upgrades the request and starts the connection pumps.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}

	// The request context ends when ServeHTTP returns.
	ctx, cancel := context.WithCancel(context.Background())
	c := &wsConnection{
		id:     uuid.NewString(),
		conn:   conn,
		send:   make(chan []byte, wsSendBuffer),
		ctx:    ctx,
		cancel: cancel,
		offers: make(map[types.Hash]struct{}),
	}

	h.mu.Lock()
	h.connections[c.id] = c
	h.mu.Unlock()
	h.logger.Debug("websocket connected", zap.String("conn", c.id), zap.String("client", getClientIP(r)))

	go h.readPump(c, getClientIP(r))
	go h.writePump(c)
}

// Publish streams committed events to matching subscribers.
func (h *Hub) Publish(_ context.Context, events []rental.Event) error {
	h.mu.RLock()
	conns := make([]*wsConnection, 0, len(h.connections))
	for _, c := range h.connections {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, ev := range events {
		data, err := json.Marshal(StreamMessage{Type: "rental_event", Event: ev})
		if err != nil {
			return err
		}
		for _, c := range conns {
			if c.wants(ev) {
				h.enqueue(c, data)
			}
		}
	}
	return nil
}

// Subscribers returns the number of subscribed connections.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, c := range h.connections {
		c.mu.RLock()
		if c.subscribed {
			n++
		}
		c.mu.RUnlock()
	}
	return n
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.RLock()
	conns := make([]*wsConnection, 0, len(h.connections))
	for _, c := range h.connections {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, c := range conns {
		h.closeConnection(c)
	}
}

func (c *wsConnection) wants(ev rental.Event) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.subscribed {
		return false
	}
	if len(c.offers) == 0 {
		return true
	}
	if ev.OfferHash == nil {
		return false
	}
	_, ok := c.offers[*ev.OfferHash]
	return ok
}

func (h *Hub) readPump(c *wsConnection, clientIP string) {
	defer h.closeConnection(c)

	c.conn.SetReadLimit(wsReadLimit)
	c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("websocket read failed", zap.String("conn", c.id), zap.Error(err))
			}
			return
		}
		h.handleMessage(c, clientIP, message)
	}
}

func (h *Hub) writePump(c *wsConnection) {
	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			c.conn.Close()
			return
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				h.logger.Debug("websocket send failed", zap.String("conn", c.id), zap.Error(err))
				h.closeConnection(c)
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.closeConnection(c)
			}
		}
	}
}

// handleMessage processes a single message from a client.
func (h *Hub) handleMessage(c *wsConnection, clientIP string, message []byte) {
	var cmd wsCommand
	if err := json.Unmarshal(message, &cmd); err != nil {
		h.sendError(c, NewRpcError(RpcPARSE_ERROR, "jsonInvalid", "jsonInvalid", "Invalid JSON: "+err.Error()), nil)
		return
	}
	if cmd.Command == "" {
		h.sendError(c, RpcErrorMissingCommand(), cmd.ID)
		return
	}

	switch cmd.Command {
	case "subscribe":
		c.mu.Lock()
		c.subscribed = true
		for _, hash := range cmd.OfferHashes {
			c.offers[hash] = struct{}{}
		}
		c.mu.Unlock()
		h.sendResult(c, cmd.ID, map[string]interface{}{"subscribed": true})
		return
	case "unsubscribe":
		c.mu.Lock()
		if len(cmd.OfferHashes) == 0 {
			c.subscribed = false
			c.offers = make(map[types.Hash]struct{})
		}
		for _, hash := range cmd.OfferHashes {
			delete(c.offers, hash)
		}
		c.mu.Unlock()
		h.sendResult(c, cmd.ID, map[string]interface{}{"unsubscribed": true})
		return
	}

	cred := Credentials{
		Caller:    cmd.Caller,
		PublicKey: cmd.PublicKey,
		Signature: cmd.Signature,
		Expires:   cmd.Expires,
		Nonce:     cmd.RequestNonce,
	}
	result, rpcErr := h.server.Dispatch(c.ctx, cmd.Command, cmd.Params, cred, clientIP)
	if rpcErr != nil {
		h.sendError(c, rpcErr, cmd.ID)
		return
	}
	h.sendResult(c, cmd.ID, result)
}

func (h *Hub) sendResult(c *wsConnection, id interface{}, result interface{}) {
	data, err := json.Marshal(WebSocketResponse{
		Type:   "response",
		ID:     id,
		Status: "success",
		Result: result,
	})
	if err != nil {
		h.logger.Error("failed to marshal websocket response", zap.Error(err))
		return
	}
	h.enqueue(c, data)
}

// sendError sends an error response with flat error fields.
func (h *Hub) sendError(c *wsConnection, rpcErr *RpcError, id interface{}) {
	response := map[string]interface{}{
		"type":          "response",
		"status":        "error",
		"error":         rpcErr.ErrorString,
		"error_code":    rpcErr.Code,
		"error_message": rpcErr.Message,
	}
	if id != nil {
		response["id"] = id
	}

	data, err := json.Marshal(response)
	if err != nil {
		h.logger.Error("failed to marshal websocket error", zap.Error(err))
		return
	}
	h.enqueue(c, data)
}

// enqueue hands data to the write pump. A client that cannot keep up is
// disconnected.
func (h *Hub) enqueue(c *wsConnection, data []byte) {
	select {
	case c.send <- data:
	case <-c.ctx.Done():
	default:
		h.logger.Warn("websocket send buffer full, closing connection", zap.String("conn", c.id))
		h.closeConnection(c)
	}
}

func (h *Hub) closeConnection(c *wsConnection) {
	c.cancel()

	h.mu.Lock()
	_, ok := h.connections[c.id]
	delete(h.connections, c.id)
	h.mu.Unlock()

	if ok {
		h.logger.Debug("websocket disconnected", zap.String("conn", c.id))
	}
}
