package types

import (
	"fmt"
	"strings"
)

// Variant distinguishes the two asset classes an offer can rent out.
type Variant uint8

const (
	// VariantNFT is a non-fungible asset rented whole.
	VariantNFT Variant = iota + 1
	// VariantSFT is a quantity of a semi-fungible asset locked in a commitment.
	VariantSFT
)

func (v Variant) String() string {
	switch v {
	case VariantNFT:
		return "nft"
	case VariantSFT:
		return "sft"
	default:
		return fmt.Sprintf("Variant(%d)", uint8(v))
	}
}

// ParseVariant accepts "nft" or "sft" in any case.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nft":
		return VariantNFT, nil
	case "sft":
		return VariantSFT, nil
	}
	return 0, fmt.Errorf("unknown variant %q", s)
}

func (v Variant) MarshalText() ([]byte, error) {
	if v == 0 {
		return []byte{}, nil
	}
	if v != VariantNFT && v != VariantSFT {
		return nil, fmt.Errorf("invalid variant %d", uint8(v))
	}
	return []byte(v.String()), nil
}

func (v *Variant) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*v = 0
		return nil
	}
	parsed, err := ParseVariant(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
