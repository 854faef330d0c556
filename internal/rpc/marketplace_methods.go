package rpc

import (
	"encoding/json"

	"github.com/LeJamon/goRentald/internal/core/rental"
	"github.com/LeJamon/goRentald/internal/core/types"
)

type offerParams struct {
	Offer *rental.Offer `json:"offer"`
}

func parseOffer(params json.RawMessage) (*rental.Offer, *RpcError) {
	var p offerParams
	if err := parseParams(params, &p); err != nil {
		return nil, err
	}
	if p.Offer == nil {
		return nil, RpcErrorMissingField("offer")
	}
	return p.Offer, nil
}

// callerMethod is embedded by methods acting on behalf of the caller.
type callerMethod struct{}

func (callerMethod) RequiresCaller() bool { return true }

// CreateRentalOfferMethod handles create_rental_offer.
type CreateRentalOfferMethod struct {
	callerMethod
	engine *rental.Engine
}

func (m *CreateRentalOfferMethod) Handle(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	offer, rpcErr := parseOffer(params)
	if rpcErr != nil {
		return nil, rpcErr
	}
	return receiptResult(m.engine.CreateRentalOffer(ctx.Context, ctx.Caller, offer)), nil
}

// CancelRentalOfferMethod handles cancel_rental_offer.
type CancelRentalOfferMethod struct {
	callerMethod
	engine *rental.Engine
}

func (m *CancelRentalOfferMethod) Handle(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	offer, rpcErr := parseOffer(params)
	if rpcErr != nil {
		return nil, rpcErr
	}
	return receiptResult(m.engine.CancelRentalOffer(ctx.Context, ctx.Caller, offer)), nil
}

// DelistRentalOfferMethod handles delist_rental_offer, which cancels an
// offer and returns the asset to the lender.
type DelistRentalOfferMethod struct {
	callerMethod
	engine *rental.Engine
}

func (m *DelistRentalOfferMethod) Handle(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	offer, rpcErr := parseOffer(params)
	if rpcErr != nil {
		return nil, rpcErr
	}
	return receiptResult(m.engine.DelistRentalOfferAndWithdraw(ctx.Context, ctx.Caller, offer)), nil
}

// AcceptRentalOfferMethod handles accept_rental_offer.
type AcceptRentalOfferMethod struct {
	callerMethod
	engine *rental.Engine
}

func (m *AcceptRentalOfferMethod) Handle(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	var p struct {
		Offer    *rental.Offer `json:"offer"`
		Duration *uint64       `json:"duration"`
	}
	if err := parseParams(params, &p); err != nil {
		return nil, err
	}
	if p.Offer == nil {
		return nil, RpcErrorMissingField("offer")
	}
	if p.Duration == nil {
		return nil, RpcErrorMissingField("duration")
	}
	return receiptResult(m.engine.AcceptRentalOffer(ctx.Context, ctx.Caller, p.Offer, *p.Duration)), nil
}

// EndRentalMethod handles end_rental.
type EndRentalMethod struct {
	callerMethod
	engine *rental.Engine
}

func (m *EndRentalMethod) Handle(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	offer, rpcErr := parseOffer(params)
	if rpcErr != nil {
		return nil, rpcErr
	}
	return receiptResult(m.engine.EndRental(ctx.Context, ctx.Caller, offer)), nil
}

// BatchReleaseTokensMethod handles batch_release_tokens. The commitments
// are given as parallel arrays.
type BatchReleaseTokensMethod struct {
	callerMethod
	engine *rental.Engine
}

func (m *BatchReleaseTokensMethod) Handle(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	var p struct {
		TokenAddresses []types.AccountID `json:"token_addresses"`
		CommitmentIDs  []uint64          `json:"commitment_ids"`
	}
	if err := parseParams(params, &p); err != nil {
		return nil, err
	}
	if len(p.TokenAddresses) != len(p.CommitmentIDs) {
		return engineResult(rental.TemBATCH_LENGTH_MISMATCH), nil
	}

	releases := make([]rental.TokenRelease, len(p.TokenAddresses))
	for i := range releases {
		releases[i] = rental.TokenRelease{
			TokenAddress: p.TokenAddresses[i],
			CommitmentID: p.CommitmentIDs[i],
		}
	}
	return receiptResult(m.engine.BatchReleaseTokens(ctx.Context, ctx.Caller, releases)), nil
}

// BatchGrantRoleMethod handles batch_grant_role. asset_ids holds token ids
// for NFTs and commitment ids for SFTs. revocables and data may be omitted,
// defaulting to revocable grants without data.
type BatchGrantRoleMethod struct {
	callerMethod
	engine *rental.Engine
}

func (m *BatchGrantRoleMethod) Handle(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	var p struct {
		Variant         types.Variant     `json:"variant"`
		TokenAddresses  []types.AccountID `json:"token_addresses"`
		AssetIDs        []uint64          `json:"asset_ids"`
		Roles           []types.RoleID    `json:"roles"`
		Grantees        []types.AccountID `json:"grantees"`
		ExpirationDates []uint64          `json:"expiration_dates"`
		Revocables      []bool            `json:"revocables"`
		Data            []types.HexBytes  `json:"data"`
	}
	if err := parseParams(params, &p); err != nil {
		return nil, err
	}
	n := len(p.TokenAddresses)
	if !sameLength(n, len(p.AssetIDs), len(p.Roles), len(p.Grantees), len(p.ExpirationDates)) ||
		!optionalLength(n, len(p.Revocables)) || !optionalLength(n, len(p.Data)) {
		return engineResult(rental.TemBATCH_LENGTH_MISMATCH), nil
	}

	grants := make([]rental.GrantRequest, n)
	for i := range grants {
		g := rental.GrantRequest{
			Variant:        p.Variant,
			TokenAddress:   p.TokenAddresses[i],
			Role:           p.Roles[i],
			Grantee:        p.Grantees[i],
			ExpirationDate: p.ExpirationDates[i],
			Revocable:      true,
		}
		setAsset(p.Variant, p.AssetIDs[i], &g.TokenID, &g.CommitmentID)
		if len(p.Revocables) > 0 {
			g.Revocable = p.Revocables[i]
		}
		if len(p.Data) > 0 {
			g.Data = p.Data[i]
		}
		grants[i] = g
	}
	return receiptResult(m.engine.BatchGrantRole(ctx.Context, ctx.Caller, grants)), nil
}

// BatchRevokeRoleMethod handles batch_revoke_role. grantees may be omitted
// for NFTs, whose grantee is looked up in the registry.
type BatchRevokeRoleMethod struct {
	callerMethod
	engine *rental.Engine
}

func (m *BatchRevokeRoleMethod) Handle(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	var p struct {
		Variant        types.Variant     `json:"variant"`
		TokenAddresses []types.AccountID `json:"token_addresses"`
		AssetIDs       []uint64          `json:"asset_ids"`
		Roles          []types.RoleID    `json:"roles"`
		Grantees       []types.AccountID `json:"grantees"`
	}
	if err := parseParams(params, &p); err != nil {
		return nil, err
	}
	n := len(p.TokenAddresses)
	if !sameLength(n, len(p.AssetIDs), len(p.Roles)) || !optionalLength(n, len(p.Grantees)) {
		return engineResult(rental.TemBATCH_LENGTH_MISMATCH), nil
	}

	revocations := make([]rental.RevokeRequest, n)
	for i := range revocations {
		r := rental.RevokeRequest{
			Variant:      p.Variant,
			TokenAddress: p.TokenAddresses[i],
			Role:         p.Roles[i],
		}
		setAsset(p.Variant, p.AssetIDs[i], &r.TokenID, &r.CommitmentID)
		if len(p.Grantees) > 0 {
			r.Grantee = p.Grantees[i]
		}
		revocations[i] = r
	}
	return receiptResult(m.engine.BatchRevokeRole(ctx.Context, ctx.Caller, revocations)), nil
}

func sameLength(n int, lengths ...int) bool {
	for _, l := range lengths {
		if l != n {
			return false
		}
	}
	return true
}

// optionalLength accepts an omitted array or one of length n.
func optionalLength(n, l int) bool {
	return l == 0 || l == n
}

func setAsset(v types.Variant, id uint64, tokenID, commitmentID *uint64) {
	if v == types.VariantSFT {
		*commitmentID = id
		return
	}
	*tokenID = id
}
