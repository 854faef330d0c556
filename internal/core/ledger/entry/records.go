package entry

import (
	"github.com/LeJamon/goRentald/internal/core/types"
)

// OfferRecord marks an offer hash as created. It carries enough of the offer
// to identify it in reads and audits; full offer bodies are not stored.
type OfferRecord struct {
	Created      bool            `codec:"created" json:"created"`
	Variant      types.Variant   `codec:"variant" json:"variant"`
	Lender       types.AccountID `codec:"lender" json:"lender"`
	Nonce        uint64          `codec:"nonce" json:"nonce"`
	TokenAddress types.AccountID `codec:"token_address" json:"token_address"`
	TokenID      uint64          `codec:"token_id" json:"token_id"`
	CommitmentID uint64          `codec:"commitment_id,omitempty" json:"commitment_id,omitempty"`
	Deadline     uint64          `codec:"deadline" json:"deadline"`
}

func (*OfferRecord) EntryType() Type { return TypeRentalOffer }

// NonceDeadline holds the deadline assigned to a (lender, nonce) pair.
type NonceDeadline struct {
	Deadline uint64 `codec:"deadline" json:"deadline"`
}

func (*NonceDeadline) EntryType() Type { return TypeNonceDeadline }

// RoleDeadline holds the time until which a role over an asset is reserved.
type RoleDeadline struct {
	Deadline uint64 `codec:"deadline" json:"deadline"`
}

func (*RoleDeadline) EntryType() Type { return TypeRoleDeadline }

// Rental is the active (or last) rental of an SFT offer.
type Rental struct {
	Borrower       types.AccountID `codec:"borrower" json:"borrower"`
	ExpirationDate uint64          `codec:"expiration_date" json:"expiration_date"`
}

func (*Rental) EntryType() Type { return TypeRental }

// CommitmentLink ties a registry commitment to the offer it backs.
type CommitmentLink struct {
	Lender    types.AccountID `codec:"lender" json:"lender"`
	Nonce     uint64          `codec:"nonce" json:"nonce"`
	OfferHash types.Hash      `codec:"offer_hash" json:"offer_hash"`
}

func (*CommitmentLink) EntryType() Type { return TypeCommitmentLink }
