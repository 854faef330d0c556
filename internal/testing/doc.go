// Package testing provides test infrastructure for the rental marketplace.
//
// It follows the shape of a jtx-style framework: a deterministic
// environment, named accounts, fluent builders and result assertions.
//
// # Basic Usage
//
//	func TestRent(t *testing.T) {
//	    env := jtx.NewTestEnv(t)
//
//	    alice := env.Account("alice")
//	    bob := env.Account("bob")
//	    env.MintNFT(alice, 1)
//	    env.Fund(bob, 10_000)
//
//	    offer := jtx.NFTOffer(env, alice, 1).Borrower(bob).FeePerSecond(1).Build()
//	    jtx.RequireSuccess(t, env.Create(alice, offer))
//	    jtx.RequireSuccess(t, env.Accept(bob, offer, 3600))
//	}
//
// # TestEnv
//
// TestEnv wires a rental engine over an in-memory database, the standalone
// collaborators and a ManualClock. Tokens, the fee token and the treasuries
// are fixed accounts exposed as fields.
//
//	env.Fund(bob, 1000)          // credit fee tokens
//	env.MintNFT(alice, 7)        // give alice NFT #7
//	env.MintSFT(alice, 3, 100)   // give alice 100 units of SFT #3
//	env.Advance(time.Hour)       // move the clock
//	env.Now()                    // current unix time
//
// # Assertions
//
//	jtx.RequireSuccess(t, result)
//	jtx.RequireResult(t, result, rental.TecNONCE_USED)
//	jtx.RequireBalance(t, env, bob, 640)
package testing
