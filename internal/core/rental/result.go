package rental

import (
	"errors"
	"fmt"
)

// Result represents an operation result code.
//
// Codes are organized by category:
//
//	tes  0            success
//	tem  -299..-200   malformed input
//	tef  -199..-100   external collaborator failure
//	tec  100..199     conflict with existing state
//	tep  200..299     caller not permitted
//	tee  300..399     offer, nonce or rental expired or unknown
type Result int

const (
	TesSUCCESS Result = 0

	// Validation
	TemINVALID_NONCE         Result = -299
	TemEMPTY_ROLES           Result = -298
	TemROLES_DATA_MISMATCH   Result = -297
	TemDEADLINE_IN_PAST      Result = -296
	TemDEADLINE_TOO_FAR      Result = -295
	TemZERO_FEE              Result = -294
	TemUNTRUSTED_FEE_TOKEN   Result = -293
	TemDURATION_TOO_SHORT    Result = -292
	TemFEE_OVERFLOW          Result = -291
	TemFEE_PERCENTAGE        Result = -290
	TemINVALID_VARIANT       Result = -289
	TemNFT_AMOUNT            Result = -288
	TemNFT_COMMITMENT        Result = -287
	TemSFT_AMOUNT            Result = -286
	TemCOMMITMENT_AMOUNT     Result = -285
	TemCOMMITMENT_GRANTOR    Result = -284
	TemCOMMITMENT_ADDRESS    Result = -283
	TemCOMMITMENT_TOKEN_ID   Result = -282
	TemEMPTY_BATCH           Result = -281
	TemBATCH_LENGTH_MISMATCH Result = -280
	TemINVALID_EXPIRATION    Result = -279
	TemSELF_RENTAL           Result = -278

	// External failures
	TefTRANSFER_FAILED Result = -199
	TefREGISTRY_FAILED Result = -198
	TefCONFIG_FAILED   Result = -197
	TefINTERNAL        Result = -100

	// Conflicts
	TecNONCE_USED           Result = 100
	TecROLE_DEADLINE_ACTIVE Result = 101
	TecCOMMITMENT_IN_USE    Result = 102
	TecONGOING_RENTAL       Result = 103
	TecREENTRANT            Result = 104
	TecOFFER_EXISTS         Result = 105

	// Authorization
	TepNOT_LENDER   Result = 200
	TepNOT_BORROWER Result = 201
	TepNOT_OWNER    Result = 202
	TepNOT_GRANTOR  Result = 203
	TepNOT_ALLOWED  Result = 204

	// Staleness
	TeeOFFER_NOT_FOUND            Result = 300
	TeeNONCE_EXPIRED              Result = 301
	TeeEXPIRATION_BEYOND_DEADLINE Result = 302
	TeeNO_ACTIVE_RENTAL           Result = 303
)

var resultNames = map[Result]string{
	TesSUCCESS:                    "tesSUCCESS",
	TemINVALID_NONCE:              "temINVALID_NONCE",
	TemEMPTY_ROLES:                "temEMPTY_ROLES",
	TemROLES_DATA_MISMATCH:        "temROLES_DATA_MISMATCH",
	TemDEADLINE_IN_PAST:           "temDEADLINE_IN_PAST",
	TemDEADLINE_TOO_FAR:           "temDEADLINE_TOO_FAR",
	TemZERO_FEE:                   "temZERO_FEE",
	TemUNTRUSTED_FEE_TOKEN:        "temUNTRUSTED_FEE_TOKEN",
	TemDURATION_TOO_SHORT:         "temDURATION_TOO_SHORT",
	TemFEE_OVERFLOW:               "temFEE_OVERFLOW",
	TemFEE_PERCENTAGE:             "temFEE_PERCENTAGE",
	TemINVALID_VARIANT:            "temINVALID_VARIANT",
	TemNFT_AMOUNT:                 "temNFT_AMOUNT",
	TemNFT_COMMITMENT:             "temNFT_COMMITMENT",
	TemSFT_AMOUNT:                 "temSFT_AMOUNT",
	TemCOMMITMENT_AMOUNT:          "temCOMMITMENT_AMOUNT",
	TemCOMMITMENT_GRANTOR:         "temCOMMITMENT_GRANTOR",
	TemCOMMITMENT_ADDRESS:         "temCOMMITMENT_ADDRESS",
	TemCOMMITMENT_TOKEN_ID:        "temCOMMITMENT_TOKEN_ID",
	TemEMPTY_BATCH:                "temEMPTY_BATCH",
	TemBATCH_LENGTH_MISMATCH:      "temBATCH_LENGTH_MISMATCH",
	TemINVALID_EXPIRATION:         "temINVALID_EXPIRATION",
	TemSELF_RENTAL:                "temSELF_RENTAL",
	TefTRANSFER_FAILED:            "tefTRANSFER_FAILED",
	TefREGISTRY_FAILED:            "tefREGISTRY_FAILED",
	TefCONFIG_FAILED:              "tefCONFIG_FAILED",
	TefINTERNAL:                   "tefINTERNAL",
	TecNONCE_USED:                 "tecNONCE_USED",
	TecROLE_DEADLINE_ACTIVE:       "tecROLE_DEADLINE_ACTIVE",
	TecCOMMITMENT_IN_USE:          "tecCOMMITMENT_IN_USE",
	TecONGOING_RENTAL:             "tecONGOING_RENTAL",
	TecREENTRANT:                  "tecREENTRANT",
	TecOFFER_EXISTS:               "tecOFFER_EXISTS",
	TepNOT_LENDER:                 "tepNOT_LENDER",
	TepNOT_BORROWER:               "tepNOT_BORROWER",
	TepNOT_OWNER:                  "tepNOT_OWNER",
	TepNOT_GRANTOR:                "tepNOT_GRANTOR",
	TepNOT_ALLOWED:                "tepNOT_ALLOWED",
	TeeOFFER_NOT_FOUND:            "teeOFFER_NOT_FOUND",
	TeeNONCE_EXPIRED:              "teeNONCE_EXPIRED",
	TeeEXPIRATION_BEYOND_DEADLINE: "teeEXPIRATION_BEYOND_DEADLINE",
	TeeNO_ACTIVE_RENTAL:           "teeNO_ACTIVE_RENTAL",
}

var resultMessages = map[Result]string{
	TesSUCCESS:                    "The operation was applied.",
	TemINVALID_NONCE:              "nonce cannot be zero",
	TemEMPTY_ROLES:                "roles cannot be empty",
	TemROLES_DATA_MISMATCH:        "roles and rolesData must have the same length",
	TemDEADLINE_IN_PAST:           "deadline must be in the future",
	TemDEADLINE_TOO_FAR:           "deadline exceeds the maximum duration",
	TemZERO_FEE:                   "feeAmountPerSecond must be greater than zero for private offers",
	TemUNTRUSTED_FEE_TOKEN:        "fee token is not trusted for this token",
	TemDURATION_TOO_SHORT:         "duration is less than the offer minimum duration",
	TemFEE_OVERFLOW:               "fee amount overflows",
	TemFEE_PERCENTAGE:             "marketplace fee plus royalty exceeds 100%",
	TemINVALID_VARIANT:            "unknown offer variant",
	TemNFT_AMOUNT:                 "token amount must be zero for NFT offers",
	TemNFT_COMMITMENT:             "commitment id must be zero for NFT offers",
	TemSFT_AMOUNT:                 "token amount cannot be zero",
	TemCOMMITMENT_AMOUNT:          "commitment amount does not match offer",
	TemCOMMITMENT_GRANTOR:         "commitment grantor does not match offer lender",
	TemCOMMITMENT_ADDRESS:         "commitment token address does not match offer",
	TemCOMMITMENT_TOKEN_ID:        "commitment token id does not match offer",
	TemEMPTY_BATCH:                "batch cannot be empty",
	TemBATCH_LENGTH_MISMATCH:      "batch arrays must have the same length",
	TemINVALID_EXPIRATION:         "expiration must be in the future",
	TemSELF_RENTAL:                "lender cannot rent their own offer",
	TefTRANSFER_FAILED:            "transfer failed",
	TefREGISTRY_FAILED:            "role registry call failed",
	TefCONFIG_FAILED:              "fee configuration lookup failed",
	TefINTERNAL:                   "internal error",
	TecNONCE_USED:                 "nonce already used",
	TecROLE_DEADLINE_ACTIVE:       "role is reserved by another offer or rental",
	TecCOMMITMENT_IN_USE:          "commitment is tied to an active offer",
	TecONGOING_RENTAL:             "this offer has an ongoing rental",
	TecREENTRANT:                  "offer is already being processed",
	TecOFFER_EXISTS:               "offer already created",
	TepNOT_LENDER:                 "only the lender can perform this action",
	TepNOT_BORROWER:               "sender is not the borrower",
	TepNOT_OWNER:                  "sender is not the token owner",
	TepNOT_GRANTOR:                "sender is not the commitment grantor",
	TepNOT_ALLOWED:                "sender is neither owner nor grantee",
	TeeOFFER_NOT_FOUND:            "offer not created",
	TeeNONCE_EXPIRED:              "nonce expired or not used yet",
	TeeEXPIRATION_BEYOND_DEADLINE: "expiration date is greater than offer deadline",
	TeeNO_ACTIVE_RENTAL:           "no active rental",
}

// String returns the string representation of the Result
func (r Result) String() string {
	if name, ok := resultNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Result(%d)", int(r))
}

// Message returns a human-readable message for the result
func (r Result) Message() string {
	if msg, ok := resultMessages[r]; ok {
		return msg
	}
	return "unknown result"
}

// Error implements error so a Result can be returned directly.
func (r Result) Error() string {
	return r.String() + ": " + r.Message()
}

// IsSuccess returns true if the operation succeeded
func (r Result) IsSuccess() bool {
	return r == TesSUCCESS
}

// IsTem returns true if this is a tem (malformed) code
func (r Result) IsTem() bool {
	return r >= -299 && r <= -200
}

// IsTef returns true if this is a tef (external failure) code
func (r Result) IsTef() bool {
	return r >= -199 && r <= -100
}

// IsTec returns true if this is a tec (conflict) code
func (r Result) IsTec() bool {
	return r >= 100 && r <= 199
}

// IsTep returns true if this is a tep (permission) code
func (r Result) IsTep() bool {
	return r >= 200 && r <= 299
}

// IsTee returns true if this is a tee (expired) code
func (r Result) IsTee() bool {
	return r >= 300 && r <= 399
}

// Failure is a Result caused by an underlying error, typically a failed
// collaborator call. errors.Is matches both the code and the cause.
type Failure struct {
	Code  Result
	Cause error
}

func (f *Failure) Error() string {
	if f.Cause == nil {
		return f.Code.Error()
	}
	return f.Code.Error() + ": " + f.Cause.Error()
}

func (f *Failure) Unwrap() []error {
	if f.Cause == nil {
		return []error{f.Code}
	}
	return []error{f.Code, f.Cause}
}

// fail wraps cause under code. A cause that already carries a result, such
// as a rejection from a nested engine call, is returned unchanged.
func fail(code Result, cause error) error {
	var f *Failure
	var r Result
	if errors.As(cause, &f) || errors.As(cause, &r) {
		return cause
	}
	return &Failure{Code: code, Cause: cause}
}

// ResultOf extracts the result code carried by err. Errors without a code
// map to TefINTERNAL; nil maps to TesSUCCESS.
func ResultOf(err error) Result {
	if err == nil {
		return TesSUCCESS
	}
	var f *Failure
	if errors.As(err, &f) {
		return f.Code
	}
	var r Result
	if errors.As(err, &r) {
		return r
	}
	return TefINTERNAL
}
