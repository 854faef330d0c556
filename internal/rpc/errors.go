package rpc

import (
	"github.com/LeJamon/goRentald/internal/core/rental"
)

// RpcError represents an RPC error with code and message. Engine rejections
// are not RpcErrors: they are reported as an engine_result inside a
// successful response.
type RpcError struct {
	Code        int    `json:"error_code"`
	ErrorString string `json:"error"`
	Type        string `json:"type"`
	Message     string `json:"error_message,omitempty"`
}

func (e RpcError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.ErrorString
}

const (
	// Universal errors
	RpcUNKNOWN          = -1
	RpcJSON_RPC         = -32600
	RpcMETHOD_NOT_FOUND = -32601
	RpcINVALID_PARAMS   = -32602
	RpcINTERNAL         = -32603
	RpcPARSE_ERROR      = -32700

	// General purpose errors
	RpcGENERAL           = 1
	RpcMISSING_COMMAND   = 2
	RpcCOMMAND_UNTRUSTED = 3
	RpcTOO_BUSY          = 6
	RpcSHUT_DOWN         = 11

	// Lookups
	RpcOBJECT_NOT_FOUND = 29
	RpcNOT_ENABLED      = 31

	// Authentication
	RpcBAD_SIGNATURE  = 40
	RpcBAD_PUBLIC_KEY = 41
	RpcNO_CALLER      = 42
	RpcEXPIRED        = 43
	RpcREPLAYED       = 44
)

func NewRpcError(code int, error, errorType, message string) *RpcError {
	return &RpcError{
		Code:        code,
		ErrorString: error,
		Type:        errorType,
		Message:     message,
	}
}

func RpcErrorInvalidParams(message string) *RpcError {
	return NewRpcError(RpcINVALID_PARAMS, "invalidParams", "invalidParams", message)
}

func RpcErrorMethodNotFound(method string) *RpcError {
	return NewRpcError(RpcMETHOD_NOT_FOUND, "unknownCmd", "unknownCmd", "Unknown method: "+method)
}

func RpcErrorMissingCommand() *RpcError {
	return NewRpcError(RpcMISSING_COMMAND, "missingCommand", "missingCommand", "Missing method field")
}

func RpcErrorInternal(message string) *RpcError {
	return NewRpcError(RpcINTERNAL, "internal", "internal", message)
}

func RpcErrorObjectNotFound(message string) *RpcError {
	return NewRpcError(RpcOBJECT_NOT_FOUND, "objectNotFound", "objectNotFound", message)
}

func RpcErrorNotEnabled(feature string) *RpcError {
	return NewRpcError(RpcNOT_ENABLED, "notEnabled", "notEnabled", feature+" is not enabled")
}

func RpcErrorMissingField(field string) *RpcError {
	return RpcErrorInvalidParams("Missing field '" + field + "'")
}

func RpcErrorInvalidField(field string) *RpcError {
	return RpcErrorInvalidParams("Invalid field '" + field + "'")
}

func RpcErrorBadSignature(message string) *RpcError {
	return NewRpcError(RpcBAD_SIGNATURE, "badSignature", "badSignature", message)
}

func RpcErrorBadPublicKey(message string) *RpcError {
	return NewRpcError(RpcBAD_PUBLIC_KEY, "badPublicKey", "badPublicKey", message)
}

func RpcErrorNoCaller(method string) *RpcError {
	return NewRpcError(RpcNO_CALLER, "noCaller", "noCaller", "Method '"+method+"' requires an authenticated caller")
}

func RpcErrorExpired(message string) *RpcError {
	return NewRpcError(RpcEXPIRED, "expiredRequest", "expiredRequest", message)
}

func RpcErrorReplayed(message string) *RpcError {
	return NewRpcError(RpcREPLAYED, "replayedRequest", "replayedRequest", message)
}

// engineResult renders the outcome of a mutating engine call the way
// submit-style responses carry it: the symbolic code, its number and a
// message. err is the error returned by the engine.
func engineResult(err error) map[string]interface{} {
	code := rental.ResultOf(err)
	message := code.Message()
	if err != nil {
		message = err.Error()
	}
	return map[string]interface{}{
		"engine_result":         code.String(),
		"engine_result_code":    int(code),
		"engine_result_message": message,
		"applied":               err == nil,
	}
}
