package rpc

import (
	"encoding/json"

	"github.com/LeJamon/goRentald/internal/core/rental"
)

// registerAllMethods registers all marketplace RPC methods.
// This function is called by NewServer to set up the complete method registry
func (s *Server) registerAllMethods(services *Services) {
	// Server information
	s.registry.Register("server_info", &ServerInfoMethod{services: services})
	s.registry.Register("ping", &PingMethod{})

	// Offer lifecycle
	s.registry.Register("create_rental_offer", &CreateRentalOfferMethod{engine: services.Engine})
	s.registry.Register("cancel_rental_offer", &CancelRentalOfferMethod{engine: services.Engine})
	s.registry.Register("delist_rental_offer", &DelistRentalOfferMethod{engine: services.Engine})
	s.registry.Register("accept_rental_offer", &AcceptRentalOfferMethod{engine: services.Engine})
	s.registry.Register("end_rental", &EndRentalMethod{engine: services.Engine})

	// Direct role management
	s.registry.Register("batch_release_tokens", &BatchReleaseTokensMethod{engine: services.Engine})
	s.registry.Register("batch_grant_role", &BatchGrantRoleMethod{engine: services.Engine})
	s.registry.Register("batch_revoke_role", &BatchRevokeRoleMethod{engine: services.Engine})

	// State queries
	s.registry.Register("hash_offer", &HashOfferMethod{engine: services.Engine})
	s.registry.Register("offer_info", &OfferInfoMethod{engine: services.Engine})
	s.registry.Register("nonce_deadline", &NonceDeadlineMethod{engine: services.Engine})
	s.registry.Register("role_deadline", &RoleDeadlineMethod{engine: services.Engine})
	s.registry.Register("rental_info", &RentalInfoMethod{engine: services.Engine})
	s.registry.Register("commitment_link", &CommitmentLinkMethod{engine: services.Engine})

	// Event history
	s.registry.Register("events_by_offer", &EventsByOfferMethod{events: services.Events})
	s.registry.Register("recent_events", &RecentEventsMethod{events: services.Events})
}

// parseParams decodes the params object into v.
func parseParams(params json.RawMessage, v interface{}) *RpcError {
	if len(params) == 0 {
		return RpcErrorInvalidParams("Missing params")
	}
	if err := json.Unmarshal(params, v); err != nil {
		return RpcErrorInvalidParams("Invalid parameters: " + err.Error())
	}
	return nil
}

// receiptResult renders the outcome of a mutating engine call. Rejections
// are successful responses whose engine_result names the code.
func receiptResult(receipt *rental.Receipt, err error) map[string]interface{} {
	result := engineResult(err)
	if err != nil || receipt == nil {
		return result
	}
	if receipt.OfferHash != nil {
		result["offer_hash"] = receipt.OfferHash.String()
	}
	if receipt.Offer != nil {
		result["offer"] = receipt.Offer
	}
	result["events"] = receipt.Events
	if receipt.Metadata != nil {
		result["meta"] = receipt.Metadata
	}
	return result
}
