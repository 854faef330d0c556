package testing

import (
	"time"

	"github.com/LeJamon/goRentald/internal/core/rental"
	"github.com/LeJamon/goRentald/internal/core/types"
)

// RoleUser is the role most tests rent out.
var RoleUser = types.RoleFromName("UNIQUE_ROLE")

// OfferBuilder provides a fluent interface for building rental offers.
type OfferBuilder struct {
	offer rental.Offer
}

// NFTOffer starts a private-by-default NFT offer of NFTToken id, with a
// fresh nonce, a one day deadline and a fee of one token per second.
func NFTOffer(env *TestEnv, lender *Account, tokenID uint64) *OfferBuilder {
	return &OfferBuilder{offer: rental.Offer{
		Variant:            types.VariantNFT,
		Lender:             lender.ID,
		TokenAddress:       env.NFTToken,
		TokenID:            tokenID,
		FeeTokenAddress:    env.FeeToken,
		FeeAmountPerSecond: 1,
		Nonce:              env.NextNonce(),
		Deadline:           env.Now() + uint64((24 * time.Hour).Seconds()),
		Roles:              []types.RoleID{RoleUser},
		RolesData:          []types.HexBytes{{}},
	}}
}

// SFTOffer starts an SFT offer of amount units of SFTToken id. Without
// Commitment the engine locks the units itself.
func SFTOffer(env *TestEnv, lender *Account, tokenID, amount uint64) *OfferBuilder {
	b := NFTOffer(env, lender, tokenID)
	b.offer.Variant = types.VariantSFT
	b.offer.TokenAddress = env.SFTToken
	b.offer.TokenAmount = amount
	return b
}

// Borrower restricts the offer to acc.
func (b *OfferBuilder) Borrower(acc *Account) *OfferBuilder {
	b.offer.Borrower = acc.ID
	return b
}

// Public lets anyone accept the offer.
func (b *OfferBuilder) Public() *OfferBuilder {
	b.offer.Borrower = types.AccountID{}
	return b
}

// FeePerSecond sets the rental price.
func (b *OfferBuilder) FeePerSecond(fee uint64) *OfferBuilder {
	b.offer.FeeAmountPerSecond = fee
	return b
}

// FeeToken sets the token fees are paid in.
func (b *OfferBuilder) FeeToken(token types.AccountID) *OfferBuilder {
	b.offer.FeeTokenAddress = token
	return b
}

// Token overrides the token contract.
func (b *OfferBuilder) Token(token types.AccountID) *OfferBuilder {
	b.offer.TokenAddress = token
	return b
}

// Nonce sets the nonce explicitly.
func (b *OfferBuilder) Nonce(nonce uint64) *OfferBuilder {
	b.offer.Nonce = nonce
	return b
}

// Deadline sets the deadline in unix seconds.
func (b *OfferBuilder) Deadline(deadline uint64) *OfferBuilder {
	b.offer.Deadline = deadline
	return b
}

// MinDuration sets the shortest rental accepted, in seconds.
func (b *OfferBuilder) MinDuration(d uint64) *OfferBuilder {
	b.offer.MinDuration = d
	return b
}

// Commitment uses an existing commitment.
func (b *OfferBuilder) Commitment(id uint64) *OfferBuilder {
	b.offer.CommitmentID = id
	return b
}

// Roles replaces the offered roles, each with empty data.
func (b *OfferBuilder) Roles(roles ...types.RoleID) *OfferBuilder {
	b.offer.Roles = roles
	b.offer.RolesData = make([]types.HexBytes, len(roles))
	for i := range b.offer.RolesData {
		b.offer.RolesData[i] = types.HexBytes{}
	}
	return b
}

// RolesData replaces the data paired with the roles.
func (b *OfferBuilder) RolesData(data ...types.HexBytes) *OfferBuilder {
	b.offer.RolesData = data
	return b
}

// Build returns a copy of the offer.
func (b *OfferBuilder) Build() *rental.Offer {
	return b.offer.Clone()
}
