package rental

import (
	"encoding/binary"

	"github.com/LeJamon/goRentald/internal/core/types"
)

// offerHashPrefix domain-separates offer hashes from every other digest.
var offerHashPrefix = [4]byte{'R', 'N', 'T', 0x00}

// Offer is a rental offer. Its identity is the content hash; the body itself
// is never stored.
type Offer struct {
	Variant            types.Variant    `json:"variant"`
	Lender             types.AccountID  `json:"lender"`
	Borrower           types.AccountID  `json:"borrower"`
	TokenAddress       types.AccountID  `json:"token_address"`
	TokenID            uint64           `json:"token_id"`
	TokenAmount        uint64           `json:"token_amount,omitempty"`
	FeeTokenAddress    types.AccountID  `json:"fee_token_address"`
	FeeAmountPerSecond uint64           `json:"fee_amount_per_second"`
	Nonce              uint64           `json:"nonce"`
	CommitmentID       uint64           `json:"commitment_id,omitempty"`
	Deadline           uint64           `json:"deadline"`
	MinDuration        uint64           `json:"min_duration"`
	Roles              []types.RoleID   `json:"roles"`
	RolesData          []types.HexBytes `json:"roles_data"`
}

// IsPublic reports whether any account may accept the offer.
func (o *Offer) IsPublic() bool {
	return o.Borrower.IsZero()
}

// Clone returns a deep copy.
func (o *Offer) Clone() *Offer {
	c := *o
	c.Roles = append([]types.RoleID(nil), o.Roles...)
	c.RolesData = make([]types.HexBytes, len(o.RolesData))
	for i, d := range o.RolesData {
		c.RolesData[i] = append(types.HexBytes(nil), d...)
	}
	return &c
}

// assetID is the id component of role deadline keys: the token id for NFTs
// and the commitment for SFTs, since an SFT lender rents out a commitment
// rather than a whole token id.
func (o *Offer) assetID() uint64 {
	if o.Variant == types.VariantSFT {
		return o.CommitmentID
	}
	return o.TokenID
}

// Serialize returns the canonical encoding hashed by HashOffer: the prefix,
// then every field in declaration order, big-endian, with roles and role data
// length-prefixed.
func (o *Offer) Serialize() []byte {
	size := 4 + 1 + 3*types.AccountIDSize + types.AccountIDSize + 8*7 + 4 + len(o.Roles)*types.HashSize + 4
	for _, d := range o.RolesData {
		size += 4 + len(d)
	}
	buf := make([]byte, 0, size)

	buf = append(buf, offerHashPrefix[:]...)
	buf = append(buf, byte(o.Variant))
	buf = append(buf, o.Lender[:]...)
	buf = append(buf, o.Borrower[:]...)
	buf = append(buf, o.TokenAddress[:]...)
	buf = binary.BigEndian.AppendUint64(buf, o.TokenID)
	buf = binary.BigEndian.AppendUint64(buf, o.TokenAmount)
	buf = append(buf, o.FeeTokenAddress[:]...)
	buf = binary.BigEndian.AppendUint64(buf, o.FeeAmountPerSecond)
	buf = binary.BigEndian.AppendUint64(buf, o.Nonce)
	buf = binary.BigEndian.AppendUint64(buf, o.CommitmentID)
	buf = binary.BigEndian.AppendUint64(buf, o.Deadline)
	buf = binary.BigEndian.AppendUint64(buf, o.MinDuration)

	buf = binary.BigEndian.AppendUint32(buf, uint32(len(o.Roles)))
	for _, r := range o.Roles {
		buf = append(buf, r[:]...)
	}
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(o.RolesData)))
	for _, d := range o.RolesData {
		buf = binary.BigEndian.AppendUint32(buf, uint32(len(d)))
		buf = append(buf, d...)
	}
	return buf
}

// validateShape checks the structural invariants that hold regardless of
// state.
func (o *Offer) validateShape() error {
	if o.Nonce == 0 {
		return TemINVALID_NONCE
	}
	if len(o.Roles) == 0 {
		return TemEMPTY_ROLES
	}
	if len(o.Roles) != len(o.RolesData) {
		return TemROLES_DATA_MISMATCH
	}
	switch o.Variant {
	case types.VariantNFT:
		if o.TokenAmount != 0 {
			return TemNFT_AMOUNT
		}
		if o.CommitmentID != 0 {
			return TemNFT_COMMITMENT
		}
	case types.VariantSFT:
		if o.TokenAmount == 0 {
			return TemSFT_AMOUNT
		}
	default:
		return TemINVALID_VARIANT
	}
	return nil
}
