package rental

import (
	"testing"

	"github.com/LeJamon/goRentald/internal/core/types"
	"github.com/stretchr/testify/assert"
)

func TestCheckCommitment(t *testing.T) {
	grantor := types.MustParseAccountID("0x1111111111111111111111111111111111111111")
	token := types.MustParseAccountID("0x2222222222222222222222222222222222222222")
	other := types.MustParseAccountID("0x3333333333333333333333333333333333333333")

	c := Commitment{ID: 1, Grantor: grantor, TokenAddress: token, TokenID: 7, TokenAmount: 10}

	assert.NoError(t, checkCommitment(c, token, 7, 10, grantor))
	assert.ErrorIs(t, checkCommitment(c, token, 7, 11, grantor), TemCOMMITMENT_AMOUNT)
	assert.ErrorIs(t, checkCommitment(c, token, 7, 10, other), TemCOMMITMENT_GRANTOR)
	assert.ErrorIs(t, checkCommitment(c, other, 7, 10, grantor), TemCOMMITMENT_ADDRESS)
	assert.ErrorIs(t, checkCommitment(c, token, 8, 10, grantor), TemCOMMITMENT_TOKEN_ID)
}
