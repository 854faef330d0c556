package rpc

import (
	"encoding/json"
	"time"
)

// ServerInfoMethod handles server_info.
type ServerInfoMethod struct {
	publicMethod
	services *Services
}

func (m *ServerInfoMethod) Handle(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	info := map[string]interface{}{
		"build_version": m.services.Version,
		"time":          time.Now().UTC().Format(time.RFC3339),
		"event_log":     "disabled",
	}
	if !m.services.StartedAt.IsZero() {
		info["uptime"] = int64(time.Since(m.services.StartedAt).Seconds())
	}
	if m.services.Events != nil {
		info["event_log"] = "ok"
		if err := m.services.Events.Ping(ctx.Context); err != nil {
			info["event_log"] = "unavailable"
		}
	}
	return map[string]interface{}{"info": info}, nil
}

// PingMethod handles ping. It echoes the authenticated caller, which makes
// it useful to check signing setups.
type PingMethod struct {
	publicMethod
}

func (m *PingMethod) Handle(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	result := map[string]interface{}{}
	if ctx.HasCaller() {
		result["caller"] = ctx.Caller.String()
		result["signed"] = ctx.Signed
	}
	return result, nil
}
