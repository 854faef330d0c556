package rental

import (
	"github.com/LeJamon/goRentald/internal/core/types"
)

// EventType names a marketplace notification.
type EventType string

const (
	EventOfferCreated   EventType = "offer_created"
	EventRentalStarted  EventType = "rental_started"
	EventRentalEnded    EventType = "rental_ended"
	EventOfferCancelled EventType = "offer_cancelled"
	EventOfferDelisted  EventType = "offer_delisted"
	EventTokensReleased EventType = "tokens_released"
	EventRoleGranted    EventType = "role_granted"
	EventRoleRevoked    EventType = "role_revoked"
)

// Event is the durable record of a state transition. Only the fields
// relevant to Type are set.
type Event struct {
	Type      EventType     `json:"type"`
	Variant   types.Variant `json:"variant,omitempty"`
	Timestamp uint64        `json:"timestamp"`

	OfferHash    *types.Hash      `json:"offer_hash,omitempty"`
	Lender       *types.AccountID `json:"lender,omitempty"`
	Borrower     *types.AccountID `json:"borrower,omitempty"`
	Nonce        uint64           `json:"nonce,omitempty"`
	TokenAddress *types.AccountID `json:"token_address,omitempty"`
	TokenID      uint64           `json:"token_id,omitempty"`
	TokenAmount  uint64           `json:"token_amount,omitempty"`
	CommitmentID uint64           `json:"commitment_id,omitempty"`

	FeeTokenAddress    *types.AccountID `json:"fee_token_address,omitempty"`
	FeeAmountPerSecond uint64           `json:"fee_amount_per_second,omitempty"`
	Deadline           uint64           `json:"deadline,omitempty"`
	MinDuration        uint64           `json:"min_duration,omitempty"`
	Roles              []types.RoleID   `json:"roles,omitempty"`
	RolesData          []types.HexBytes `json:"roles_data,omitempty"`

	Role           *types.RoleID    `json:"role,omitempty"`
	Grantee        *types.AccountID `json:"grantee,omitempty"`
	ExpirationDate uint64           `json:"expiration_date,omitempty"`
	Revocable      bool             `json:"revocable,omitempty"`

	Fees            *FeeSplit `json:"fees,omitempty"`
	HadActiveRental bool      `json:"had_active_rental,omitempty"`
	CustodyReturned bool      `json:"custody_returned,omitempty"`
}

func ptr[T any](v T) *T { return &v }

func offerCreatedEvent(o *Offer, hash types.Hash, now uint64) Event {
	return Event{
		Type:               EventOfferCreated,
		Variant:            o.Variant,
		Timestamp:          now,
		OfferHash:          ptr(hash),
		Lender:             ptr(o.Lender),
		Borrower:           ptr(o.Borrower),
		Nonce:              o.Nonce,
		TokenAddress:       ptr(o.TokenAddress),
		TokenID:            o.TokenID,
		TokenAmount:        o.TokenAmount,
		CommitmentID:       o.CommitmentID,
		FeeTokenAddress:    ptr(o.FeeTokenAddress),
		FeeAmountPerSecond: o.FeeAmountPerSecond,
		Deadline:           o.Deadline,
		MinDuration:        o.MinDuration,
		Roles:              append([]types.RoleID(nil), o.Roles...),
		RolesData:          append([]types.HexBytes(nil), o.RolesData...),
	}
}
