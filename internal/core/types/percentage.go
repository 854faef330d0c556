package types

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

const (
	// PercentageBase represents 100%.
	PercentageBase uint64 = 1e18

	// OnePercent is PercentageBase / 100.
	OnePercent uint64 = PercentageBase / 100

	percentDecimals = 16
)

var ErrInvalidPercentage = errors.New("invalid percentage")

// ParsePercentage converts a decimal percent string ("5", "2.5", "0.01") into
// PercentageBase units. At most 16 fractional digits are accepted and the
// value may not exceed 100.
func ParsePercentage(s string) (uint64, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidPercentage)
	}

	whole, frac, _ := strings.Cut(s, ".")
	if len(frac) > percentDecimals {
		return 0, fmt.Errorf("%w: %q has more than %d decimals", ErrInvalidPercentage, s, percentDecimals)
	}
	if whole == "" {
		whole = "0"
	}
	w, err := strconv.ParseUint(whole, 10, 64)
	if err != nil || w > 100 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPercentage, s)
	}

	var f uint64
	if frac != "" {
		padded := frac + strings.Repeat("0", percentDecimals-len(frac))
		f, err = strconv.ParseUint(padded, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidPercentage, s)
		}
	}

	v := w*OnePercent + f
	if v > PercentageBase {
		return 0, fmt.Errorf("%w: %q exceeds 100", ErrInvalidPercentage, s)
	}
	return v, nil
}

// FormatPercentage renders a PercentageBase value as a decimal percent string.
func FormatPercentage(v uint64) string {
	r := new(big.Rat).SetFrac(new(big.Int).SetUint64(v), new(big.Int).SetUint64(OnePercent))
	out := r.FloatString(percentDecimals)
	out = strings.TrimRight(out, "0")
	return strings.TrimSuffix(out, ".")
}
