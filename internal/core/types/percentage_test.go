package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePercentage(t *testing.T) {
	tests := []struct {
		in   string
		want uint64
	}{
		{"5", 5 * OnePercent},
		{"10%", 10 * OnePercent},
		{"2.5", 25 * OnePercent / 10},
		{"0.01", OnePercent / 100},
		{".5", OnePercent / 2},
		{"100", PercentageBase},
		{"0", 0},
		{"0.0000000000000001", 1},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePercentage(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePercentageRejects(t *testing.T) {
	for _, in := range []string{"", "abc", "101", "100.5", "-1", "1.00000000000000001"} {
		_, err := ParsePercentage(in)
		assert.ErrorIs(t, err, ErrInvalidPercentage, in)
	}
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "5", FormatPercentage(5*OnePercent))
	assert.Equal(t, "2.5", FormatPercentage(25*OnePercent/10))
	assert.Equal(t, "0", FormatPercentage(0))
}
