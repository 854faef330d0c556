package entry

import (
	"fmt"
)

// Type represents a marketplace state entry type
type Type uint16

// All known entry types
const (
	TypeRentalOffer    Type = 0x0052 // Offer records keyed by content hash
	TypeRental         Type = 0x004c // Active rentals (SFT)
	TypeCommitmentLink Type = 0x0063 // Commitment -> offer links (SFT)
	TypeRoleDeadline   Type = 0x0064 // Role exclusivity windows
	TypeNonceDeadline  Type = 0x006e // Lender nonce deadlines
)

// String returns the string representation of the Type
func (t Type) String() string {
	switch t {
	case TypeRentalOffer:
		return "RentalOffer"
	case TypeRental:
		return "Rental"
	case TypeCommitmentLink:
		return "CommitmentLink"
	case TypeRoleDeadline:
		return "RoleDeadline"
	case TypeNonceDeadline:
		return "NonceDeadline"
	default:
		return fmt.Sprintf("Unknown(0x%04x)", uint16(t))
	}
}

// Entry is implemented by every value stored in marketplace state.
type Entry interface {
	EntryType() Type
}
