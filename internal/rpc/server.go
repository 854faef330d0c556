package rpc

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// maxRequestBody bounds a single JSON-RPC request.
const maxRequestBody = 1 << 20

// Server handles HTTP JSON-RPC requests.
type Server struct {
	registry *MethodRegistry
	auth     *Authenticator
	timeout  time.Duration
	logger   *zap.Logger
}

// NewServer creates a server exposing the marketplace methods over services.
func NewServer(services *Services, auth *Authenticator, timeout time.Duration, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if auth == nil {
		auth = NewAuthenticator(AuthConfig{})
	}
	server := &Server{
		registry: NewMethodRegistry(),
		auth:     auth,
		timeout:  timeout,
		logger:   logger.Named("rpc"),
	}

	server.registerAllMethods(services)

	return server
}

// Registry returns the method registry, shared with the WebSocket hub.
func (s *Server) Registry() *MethodRegistry {
	return s.registry
}

// ServeHTTP implements http.Handler. CORS is handled by the router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method == http.MethodGet {
		s.handleGetRequest(w, r)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.handlePostRequest(w, r)
}

// handleGetRequest serves parameterless queries such as server_info.
func (s *Server) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	method := r.URL.Query().Get("command")
	if method == "" {
		method = "server_info"
	}

	result, rpcErr := s.Dispatch(r.Context(), method, nil, Credentials{}, getClientIP(r))
	s.writeResponse(w, map[string]interface{}{"command": method}, result, rpcErr)
}

// handlePostRequest processes {"method": ..., "params": [{...}]} requests.
func (s *Server) handlePostRequest(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		s.writeError(w, nil, RpcErrorInternal("Failed to read request body"))
		return
	}
	defer r.Body.Close()

	var request Request
	if err := json.Unmarshal(body, &request); err != nil {
		s.writeError(w, nil, NewRpcError(RpcPARSE_ERROR, "jsonInvalid", "jsonInvalid", "Invalid JSON: "+err.Error()))
		return
	}
	if request.Method == "" {
		s.writeError(w, nil, RpcErrorMissingCommand())
		return
	}

	params := request.params()
	cred := Credentials{
		Caller:    request.Caller,
		PublicKey: request.PublicKey,
		Signature: request.Signature,
		Expires:   request.Expires,
		Nonce:     request.RequestNonce,
	}
	result, rpcErr := s.Dispatch(r.Context(), request.Method, params, cred, getClientIP(r))

	requestObj := map[string]interface{}{"command": request.Method}
	if params != nil {
		var reqMap map[string]interface{}
		if err := json.Unmarshal(params, &reqMap); err == nil {
			reqMap["command"] = request.Method
			requestObj = reqMap
		}
	}
	s.writeResponse(w, requestObj, result, rpcErr)
}

// Dispatch authenticates and runs one method call. It is shared by the HTTP
// and WebSocket transports.
func (s *Server) Dispatch(ctx context.Context, method string, params json.RawMessage, cred Credentials, clientIP string) (interface{}, *RpcError) {
	handler, exists := s.registry.Get(method)
	if !exists {
		return nil, RpcErrorMethodNotFound(method)
	}

	caller, signed, rpcErr := s.auth.Authenticate(method, params, cred)
	if rpcErr != nil {
		s.logger.Info("rejected request credentials",
			zap.String("method", method),
			zap.String("client", clientIP),
			zap.String("error", rpcErr.ErrorString))
		return nil, rpcErr
	}
	if handler.RequiresCaller() && caller.IsZero() {
		return nil, RpcErrorNoCaller(method)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	rpcCtx := &RpcContext{
		Context:  ctx,
		Caller:   caller,
		Signed:   signed,
		ClientIP: clientIP,
	}
	return handler.Handle(rpcCtx, params)
}

// writeResponse writes result in the {"result": {"status": ...}} envelope.
// Error details live inside result next to the echoed request.
func (s *Server) writeResponse(w http.ResponseWriter, request interface{}, result interface{}, rpcErr *RpcError) {
	if rpcErr != nil {
		s.writeError(w, request, rpcErr)
		return
	}

	var resultObj map[string]interface{}
	if resultMap, ok := result.(map[string]interface{}); ok {
		resultObj = resultMap
	} else {
		resultObj = map[string]interface{}{"data": result}
	}
	resultObj["status"] = "success"
	s.write(w, map[string]interface{}{"result": resultObj})
}

func (s *Server) writeError(w http.ResponseWriter, request interface{}, rpcErr *RpcError) {
	resultObj := map[string]interface{}{
		"status":        "error",
		"error":         rpcErr.ErrorString,
		"error_code":    rpcErr.Code,
		"error_message": rpcErr.Message,
	}
	if request != nil {
		resultObj["request"] = request
	}
	s.write(w, map[string]interface{}{"result": resultObj})
}

func (s *Server) write(w http.ResponseWriter, response map[string]interface{}) {
	responseData, err := json.Marshal(response)
	if err != nil {
		s.logger.Error("failed to marshal response", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(responseData); err != nil {
		s.logger.Debug("failed to write response", zap.Error(err))
	}
}

// getClientIP extracts the client IP from the request
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[0])
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}

	return ip
}
