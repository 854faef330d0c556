package rpc

import (
	"encoding/json"

	"github.com/LeJamon/goRentald/internal/core/rental"
	"github.com/LeJamon/goRentald/internal/core/types"
	"github.com/LeJamon/goRentald/internal/storage/eventlog"
)

// publicMethod is embedded by read-only methods.
type publicMethod struct{}

func (publicMethod) RequiresCaller() bool { return false }

// HashOfferMethod handles hash_offer.
type HashOfferMethod struct {
	publicMethod
	engine *rental.Engine
}

func (m *HashOfferMethod) Handle(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	offer, rpcErr := parseOffer(params)
	if rpcErr != nil {
		return nil, rpcErr
	}
	return map[string]interface{}{
		"offer_hash": m.engine.HashOffer(offer).String(),
	}, nil
}

type hashParams struct {
	OfferHash *types.Hash `json:"offer_hash"`
}

func parseOfferHash(params json.RawMessage) (types.Hash, *RpcError) {
	var p hashParams
	if err := parseParams(params, &p); err != nil {
		return types.Hash{}, err
	}
	if p.OfferHash == nil {
		return types.Hash{}, RpcErrorMissingField("offer_hash")
	}
	return *p.OfferHash, nil
}

// OfferInfoMethod handles offer_info.
type OfferInfoMethod struct {
	publicMethod
	engine *rental.Engine
}

func (m *OfferInfoMethod) Handle(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	hash, rpcErr := parseOfferHash(params)
	if rpcErr != nil {
		return nil, rpcErr
	}
	record, err := m.engine.OfferRecord(ctx.Context, hash)
	if err != nil {
		return nil, RpcErrorInternal(err.Error())
	}
	if record == nil {
		return nil, RpcErrorObjectNotFound("Offer not found")
	}
	return map[string]interface{}{
		"offer_hash": hash.String(),
		"offer":      record,
	}, nil
}

// NonceDeadlineMethod handles nonce_deadline. A zero deadline means the
// nonce was never used.
type NonceDeadlineMethod struct {
	publicMethod
	engine *rental.Engine
}

func (m *NonceDeadlineMethod) Handle(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	var p struct {
		Lender *types.AccountID `json:"lender"`
		Nonce  uint64           `json:"nonce"`
	}
	if err := parseParams(params, &p); err != nil {
		return nil, err
	}
	if p.Lender == nil {
		return nil, RpcErrorMissingField("lender")
	}
	deadline, err := m.engine.NonceDeadline(ctx.Context, *p.Lender, p.Nonce)
	if err != nil {
		return nil, RpcErrorInternal(err.Error())
	}
	return map[string]interface{}{
		"lender":   p.Lender.String(),
		"nonce":    p.Nonce,
		"deadline": deadline,
	}, nil
}

// RoleDeadlineMethod handles role_deadline. asset_id is the token id for
// NFTs and the commitment id for SFTs.
type RoleDeadlineMethod struct {
	publicMethod
	engine *rental.Engine
}

func (m *RoleDeadlineMethod) Handle(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	var p struct {
		Role         *types.RoleID    `json:"role"`
		TokenAddress *types.AccountID `json:"token_address"`
		AssetID      uint64           `json:"asset_id"`
	}
	if err := parseParams(params, &p); err != nil {
		return nil, err
	}
	if p.Role == nil {
		return nil, RpcErrorMissingField("role")
	}
	if p.TokenAddress == nil {
		return nil, RpcErrorMissingField("token_address")
	}
	deadline, err := m.engine.RoleDeadline(ctx.Context, *p.Role, *p.TokenAddress, p.AssetID)
	if err != nil {
		return nil, RpcErrorInternal(err.Error())
	}
	return map[string]interface{}{
		"role":          p.Role.String(),
		"token_address": p.TokenAddress.String(),
		"asset_id":      p.AssetID,
		"deadline":      deadline,
	}, nil
}

// RentalInfoMethod handles rental_info for SFT offers.
type RentalInfoMethod struct {
	publicMethod
	engine *rental.Engine
}

func (m *RentalInfoMethod) Handle(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	hash, rpcErr := parseOfferHash(params)
	if rpcErr != nil {
		return nil, rpcErr
	}
	r, err := m.engine.Rental(ctx.Context, hash)
	if err != nil {
		return nil, RpcErrorInternal(err.Error())
	}
	if r == nil {
		return nil, RpcErrorObjectNotFound("Rental not found")
	}
	return map[string]interface{}{
		"offer_hash": hash.String(),
		"rental":     r,
	}, nil
}

// CommitmentLinkMethod handles commitment_link.
type CommitmentLinkMethod struct {
	publicMethod
	engine *rental.Engine
}

func (m *CommitmentLinkMethod) Handle(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	var p struct {
		TokenAddress *types.AccountID `json:"token_address"`
		CommitmentID uint64           `json:"commitment_id"`
	}
	if err := parseParams(params, &p); err != nil {
		return nil, err
	}
	if p.TokenAddress == nil {
		return nil, RpcErrorMissingField("token_address")
	}
	link, err := m.engine.CommitmentLink(ctx.Context, *p.TokenAddress, p.CommitmentID)
	if err != nil {
		return nil, RpcErrorInternal(err.Error())
	}
	if link == nil {
		return nil, RpcErrorObjectNotFound("Commitment is not linked to an offer")
	}
	return map[string]interface{}{
		"token_address": p.TokenAddress.String(),
		"commitment_id": p.CommitmentID,
		"link":          link,
	}, nil
}

const defaultEventLimit = 200

// EventsByOfferMethod handles events_by_offer. Pages are walked by passing
// the last seen seq as marker.
type EventsByOfferMethod struct {
	publicMethod
	events EventStore
}

func (m *EventsByOfferMethod) Handle(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	if m.events == nil {
		return nil, RpcErrorNotEnabled("Event log")
	}
	var p struct {
		OfferHash *types.Hash `json:"offer_hash"`
		Marker    int64       `json:"marker"`
		Limit     int         `json:"limit"`
	}
	if err := parseParams(params, &p); err != nil {
		return nil, err
	}
	if p.OfferHash == nil {
		return nil, RpcErrorMissingField("offer_hash")
	}
	limit, rpcErr := eventLimit(p.Limit)
	if rpcErr != nil {
		return nil, rpcErr
	}

	records, err := m.events.ByOffer(ctx.Context, *p.OfferHash, p.Marker, limit)
	if err != nil {
		return nil, RpcErrorInternal(err.Error())
	}
	result := map[string]interface{}{
		"offer_hash": p.OfferHash.String(),
		"events":     records,
		"limit":      limit,
	}
	if len(records) == limit {
		result["marker"] = records[len(records)-1].Seq
	}
	return result, nil
}

// RecentEventsMethod handles recent_events, newest first.
type RecentEventsMethod struct {
	publicMethod
	events EventStore
}

func (m *RecentEventsMethod) Handle(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	if m.events == nil {
		return nil, RpcErrorNotEnabled("Event log")
	}
	var p struct {
		Limit int `json:"limit"`
	}
	if len(params) > 0 {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, RpcErrorInvalidParams("Invalid parameters: " + err.Error())
		}
	}
	limit, rpcErr := eventLimit(p.Limit)
	if rpcErr != nil {
		return nil, rpcErr
	}

	records, err := m.events.Recent(ctx.Context, limit)
	if err != nil {
		return nil, RpcErrorInternal(err.Error())
	}
	return map[string]interface{}{
		"events": records,
		"limit":  limit,
	}, nil
}

func eventLimit(limit int) (int, *RpcError) {
	switch {
	case limit == 0:
		return defaultEventLimit, nil
	case limit < 0 || limit > eventlog.MaxLimit:
		return 0, RpcErrorInvalidField("limit")
	}
	return limit, nil
}
