package crypto

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalcAccountID(t *testing.T) {
	// Genesis account of the XRP Ledger: rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh.
	pub, err := hex.DecodeString("0330E7FC9D56BB25D6893BA3F317AE5BCF33B3291BD63DB32654A313222F7FD020")
	require.NoError(t, err)

	id := CalcAccountID(pub)
	assert.Equal(t, "0xb5f762798a53d543a014caf8b297cff8f2f937e8", id.String())
}

func TestCalcAccountIDDeterministic(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)
	assert.Equal(t, CalcAccountID(key.PublicKey()), CalcAccountID(key.PublicKey()))
	assert.Equal(t, key.AccountID(), CalcAccountID(key.PublicKey()))
}
