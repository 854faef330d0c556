package testing

import (
	"context"
	"testing"
	"time"

	"github.com/LeJamon/goRentald/internal/config"
	"github.com/LeJamon/goRentald/internal/core/ledger/entry"
	"github.com/LeJamon/goRentald/internal/core/rental"
	"github.com/LeJamon/goRentald/internal/core/types"
	"github.com/LeJamon/goRentald/internal/standalone"
	"github.com/LeJamon/goRentald/internal/storage/database"
	"github.com/LeJamon/goRentald/internal/storage/state"
	"go.uber.org/zap/zaptest"
)

type settings struct {
	cfg    *config.Config
	engine []func(*rental.EngineConfig)
}

// Option adjusts how a TestEnv is built.
type Option func(*settings)

// WithMarketplaceFee sets the default marketplace fee, as a percent string.
func WithMarketplaceFee(fee string) Option {
	return func(s *settings) { s.cfg.Marketplace.DefaultFee = fee }
}

// WithRoyalty sets the royalty percentage of every test token.
func WithRoyalty(percentage string) Option {
	return func(s *settings) {
		for i := range s.cfg.Marketplace.Tokens {
			s.cfg.Marketplace.Tokens[i].RoyaltyPercentage = percentage
		}
	}
}

// WithEngineConfig edits the engine configuration before the engine is
// created, typically to swap a standalone collaborator for a mock.
func WithEngineConfig(fn func(*rental.EngineConfig)) Option {
	return func(s *settings) { s.engine = append(s.engine, fn) }
}

// TestEnv manages a marketplace engine for tests. It provides a simplified
// interface for creating accounts, funding them, submitting operations and
// verifying results.
type TestEnv struct {
	t        *testing.T
	clock    *ManualClock
	db       *database.MemoryDB
	store    *state.StoreView
	world    *standalone.Environment
	engine   *rental.Engine
	recorder *EventRecorder
	accounts map[string]*Account
	nonce    uint64

	// Token contracts configured with royalties and FeeToken as trusted
	// fee token.
	NFTToken       types.AccountID
	SFTToken       types.AccountID
	LegacySFTToken types.AccountID
	FeeToken       types.AccountID

	Treasury        *Account
	RoyaltyCreator  *Account
	RoyaltyTreasury *Account
}

// NewTestEnv creates a new environment with a 5% marketplace fee and a 10%
// royalty on every test token.
func NewTestEnv(t *testing.T, opts ...Option) *TestEnv {
	t.Helper()

	env := &TestEnv{
		t:               t,
		clock:           NewManualClock(),
		db:              database.NewMemoryDB(),
		recorder:        &EventRecorder{},
		accounts:        make(map[string]*Account),
		NFTToken:        NewAccount("nft-token").ID,
		SFTToken:        NewAccount("sft-token").ID,
		LegacySFTToken:  NewAccount("legacy-sft-token").ID,
		FeeToken:        NewAccount("fee-token").ID,
		Treasury:        NewAccount("treasury"),
		RoyaltyCreator:  NewAccount("creator"),
		RoyaltyTreasury: NewAccount("royalty-treasury"),
	}

	set := &settings{cfg: env.defaultConfig()}
	for _, opt := range opts {
		opt(set)
	}

	world, err := standalone.New(env.clock, set.cfg)
	if err != nil {
		t.Fatalf("Failed to create standalone collaborators: %v", err)
	}
	env.world = world

	store, err := state.NewStoreView(env.db, state.StoreViewConfig{CacheEntries: 256})
	if err != nil {
		t.Fatalf("Failed to create state view: %v", err)
	}
	env.store = store
	ec := world.EngineConfig(env.store, zaptest.NewLogger(t))
	ec.Sinks = []rental.EventSink{env.recorder}
	for _, fn := range set.engine {
		fn(&ec)
	}
	engine, err := rental.NewEngine(ec)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	env.engine = engine
	return env
}

func (env *TestEnv) defaultConfig() *config.Config {
	token := func(address types.AccountID, kind string) config.TokenConfig {
		return config.TokenConfig{
			Address:           address.String(),
			Kind:              kind,
			RoyaltyCreator:    env.RoyaltyCreator.ID.String(),
			RoyaltyPercentage: "10",
			RoyaltyTreasury:   env.RoyaltyTreasury.ID.String(),
			TrustedFeeTokens:  []string{env.FeeToken.String()},
		}
	}
	return &config.Config{
		Marketplace: config.MarketplaceConfig{
			Treasury:       env.Treasury.ID.String(),
			DefaultFee:     "5",
			MaxDuration:    90 * 24 * time.Hour,
			Hash:           "sha512half",
			LegacySFTToken: env.LegacySFTToken.String(),
			Tokens: []config.TokenConfig{
				token(env.NFTToken, "nft"),
				token(env.SFTToken, "sft"),
				token(env.LegacySFTToken, "sft"),
			},
		},
	}
}

// Account returns the named account, creating it on first use.
func (env *TestEnv) Account(name string) *Account {
	if a, ok := env.accounts[name]; ok {
		return a
	}
	a := NewAccount(name)
	env.accounts[name] = a
	return a
}

// Engine returns the engine under test.
func (env *TestEnv) Engine() *rental.Engine { return env.engine }

// World returns the standalone collaborators.
func (env *TestEnv) World() *standalone.Environment { return env.world }

// DB returns the database holding committed state.
func (env *TestEnv) DB() *database.MemoryDB { return env.db }

// Clock returns the environment clock.
func (env *TestEnv) Clock() *ManualClock { return env.clock }

// Now returns the current time in unix seconds.
func (env *TestEnv) Now() uint64 { return env.clock.Unix() }

// Advance moves the clock forward.
func (env *TestEnv) Advance(d time.Duration) { env.clock.Advance(d) }

// AdvanceSeconds moves the clock forward by s seconds.
func (env *TestEnv) AdvanceSeconds(s uint64) {
	env.clock.Advance(time.Duration(s) * time.Second)
}

// NextNonce returns a fresh nonce.
func (env *TestEnv) NextNonce() uint64 {
	env.nonce++
	return env.nonce
}

// Fund credits fee tokens to acc.
func (env *TestEnv) Fund(acc *Account, amount uint64) {
	env.t.Helper()
	if err := env.world.Tokens.Mint(env.FeeToken, acc.ID, amount); err != nil {
		env.t.Fatalf("Failed to fund %s: %v", acc, err)
	}
}

// Balance returns the fee-token balance of acc.
func (env *TestEnv) Balance(acc *Account) uint64 {
	return env.world.Tokens.BalanceOf(env.FeeToken, acc.ID)
}

// MintNFT gives acc token id of NFTToken.
func (env *TestEnv) MintNFT(acc *Account, id uint64) {
	env.world.NFTs.Mint(env.NFTToken, id, acc.ID)
}

// DepositNFT moves an NFT acc holds into registry custody.
func (env *TestEnv) DepositNFT(acc *Account, id uint64) {
	env.t.Helper()
	if err := env.world.NFTs.Deposit(context.Background(), acc.ID, env.NFTToken, id); err != nil {
		env.t.Fatalf("Failed to deposit NFT %d: %v", id, err)
	}
}

// MintSFT gives acc units of SFTToken id.
func (env *TestEnv) MintSFT(acc *Account, id, amount uint64) {
	env.world.MintSFT(env.SFTToken, id, acc.ID, amount)
}

// MintLegacySFT gives acc units of LegacySFTToken id.
func (env *TestEnv) MintLegacySFT(acc *Account, id, amount uint64) {
	env.world.MintSFT(env.LegacySFTToken, id, acc.ID, amount)
}

// Commit locks SFT units of acc in the registry serving token and returns
// the commitment id.
func (env *TestEnv) Commit(acc *Account, token types.AccountID, id, amount uint64) uint64 {
	env.t.Helper()
	var (
		cid uint64
		err error
	)
	if token == env.LegacySFTToken {
		cid, err = env.world.LegacySFTs.CommitTokens(context.Background(), acc.ID, token, id, amount)
	} else {
		cid, err = env.world.SFTs.LockTokens(context.Background(), acc.ID, token, id, amount)
	}
	if err != nil {
		env.t.Fatalf("Failed to commit tokens: %v", err)
	}
	return cid
}

// Create submits CreateRentalOffer.
func (env *TestEnv) Create(acc *Account, offer *rental.Offer) OpResult {
	return newResult(env.engine.CreateRentalOffer(context.Background(), acc.ID, offer))
}

// Cancel submits CancelRentalOffer.
func (env *TestEnv) Cancel(acc *Account, offer *rental.Offer) OpResult {
	return newResult(env.engine.CancelRentalOffer(context.Background(), acc.ID, offer))
}

// Delist submits DelistRentalOfferAndWithdraw.
func (env *TestEnv) Delist(acc *Account, offer *rental.Offer) OpResult {
	return newResult(env.engine.DelistRentalOfferAndWithdraw(context.Background(), acc.ID, offer))
}

// Accept submits AcceptRentalOffer.
func (env *TestEnv) Accept(acc *Account, offer *rental.Offer, duration uint64) OpResult {
	return newResult(env.engine.AcceptRentalOffer(context.Background(), acc.ID, offer, duration))
}

// End submits EndRental.
func (env *TestEnv) End(acc *Account, offer *rental.Offer) OpResult {
	return newResult(env.engine.EndRental(context.Background(), acc.ID, offer))
}

// Release submits BatchReleaseTokens.
func (env *TestEnv) Release(acc *Account, releases ...rental.TokenRelease) OpResult {
	return newResult(env.engine.BatchReleaseTokens(context.Background(), acc.ID, releases))
}

// Grant submits BatchGrantRole.
func (env *TestEnv) Grant(acc *Account, grants ...rental.GrantRequest) OpResult {
	return newResult(env.engine.BatchGrantRole(context.Background(), acc.ID, grants))
}

// Revoke submits BatchRevokeRole.
func (env *TestEnv) Revoke(acc *Account, revocations ...rental.RevokeRequest) OpResult {
	return newResult(env.engine.BatchRevokeRole(context.Background(), acc.ID, revocations))
}

// Hash returns the hash the engine assigns to offer.
func (env *TestEnv) Hash(offer *rental.Offer) types.Hash {
	return env.engine.HashOffer(offer)
}

// OfferRecord returns the committed record of offer, or nil.
func (env *TestEnv) OfferRecord(offer *rental.Offer) *entry.OfferRecord {
	env.t.Helper()
	rec, err := env.engine.OfferRecord(context.Background(), env.Hash(offer))
	if err != nil {
		env.t.Fatalf("Failed to read offer record: %v", err)
	}
	return rec
}

// NonceDeadline returns the committed nonce deadline of offer.
func (env *TestEnv) NonceDeadline(offer *rental.Offer) uint64 {
	env.t.Helper()
	d, err := env.engine.NonceDeadline(context.Background(), offer.Lender, offer.Nonce)
	if err != nil {
		env.t.Fatalf("Failed to read nonce deadline: %v", err)
	}
	return d
}

// RoleDeadline returns the committed deadline of role over the offer's
// asset.
func (env *TestEnv) RoleDeadline(offer *rental.Offer, role types.RoleID) uint64 {
	env.t.Helper()
	assetID := offer.TokenID
	if offer.Variant == types.VariantSFT {
		assetID = offer.CommitmentID
	}
	d, err := env.engine.RoleDeadline(context.Background(), role, offer.TokenAddress, assetID)
	if err != nil {
		env.t.Fatalf("Failed to read role deadline: %v", err)
	}
	return d
}

// Rental returns the committed rental of an SFT offer, or nil.
func (env *TestEnv) Rental(offer *rental.Offer) *entry.Rental {
	env.t.Helper()
	r, err := env.engine.Rental(context.Background(), env.Hash(offer))
	if err != nil {
		env.t.Fatalf("Failed to read rental: %v", err)
	}
	return r
}

// Events returns every event published since the last ClearEvents.
func (env *TestEnv) Events() []rental.Event {
	return env.recorder.Events()
}

// ClearEvents forgets recorded events.
func (env *TestEnv) ClearEvents() {
	env.recorder.Clear()
}

// OfType returns the recorded events of typ.
func (env *TestEnv) OfType(typ rental.EventType) []rental.Event {
	return env.recorder.OfType(typ)
}
