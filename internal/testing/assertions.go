package testing

import (
	"testing"

	"github.com/LeJamon/goRentald/internal/core/rental"
	"github.com/stretchr/testify/require"
)

// RequireSuccess asserts that an operation was applied.
func RequireSuccess(t *testing.T, result OpResult) {
	t.Helper()
	require.NoError(t, result.Err,
		"Expected success, got %s", result.Code)
	require.Equal(t, rental.TesSUCCESS, result.Code)
}

// RequireResult asserts that an operation failed with a specific code.
func RequireResult(t *testing.T, result OpResult, expected rental.Result) {
	t.Helper()
	require.Error(t, result.Err,
		"Expected failure with code %s, but the operation succeeded", expected)
	require.Equal(t, expected, result.Code,
		"Expected failure code %s, got %s: %v", expected, result.Code, result.Err)
}

// RequireBalance asserts the fee-token balance of an account.
func RequireBalance(t *testing.T, env *TestEnv, acc *Account, expected uint64) {
	t.Helper()
	actual := env.Balance(acc)
	require.Equal(t, expected, actual,
		"Account %s balance mismatch: expected %d, got %d", acc.Name, expected, actual)
}

// AssertBalanceChange runs a function and asserts the expected balance change.
// The change can be positive (increase) or negative (decrease).
func AssertBalanceChange(t *testing.T, env *TestEnv, acc *Account, expectedChange int64, fn func()) {
	t.Helper()
	before := env.Balance(acc)
	fn()
	after := env.Balance(acc)

	actualChange := int64(after) - int64(before)
	require.Equal(t, expectedChange, actualChange,
		"Account %s balance change mismatch: expected %d, got %d (before: %d, after: %d)",
		acc.Name, expectedChange, actualChange, before, after)
}

// AssertNoBalanceChange runs a function and asserts the balance stays the same.
func AssertNoBalanceChange(t *testing.T, env *TestEnv, acc *Account, fn func()) {
	t.Helper()
	AssertBalanceChange(t, env, acc, 0, fn)
}

// RequireNoStateChange runs fn and asserts that committed state is
// byte-for-byte unchanged.
func RequireNoStateChange(t *testing.T, env *TestEnv, fn func()) {
	t.Helper()
	before := env.DB().Snapshot()
	fn()
	require.Equal(t, before, env.DB().Snapshot(), "committed state changed")
}
