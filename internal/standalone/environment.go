// Package standalone provides in-process fee tokens, role registries and
// fee configuration, so the marketplace can run without an external chain.
// Every collaborator is journaled: the engine rolls its effects back when an
// operation fails.
package standalone

import (
	"fmt"

	"github.com/LeJamon/goRentald/internal/config"
	"github.com/LeJamon/goRentald/internal/core/ledger/view"
	"github.com/LeJamon/goRentald/internal/core/rental"
	"github.com/LeJamon/goRentald/internal/core/types"
	crypto "github.com/LeJamon/goRentald/internal/crypto/common"
	"go.uber.org/zap"
)

// Environment bundles the standalone collaborators.
type Environment struct {
	Clock       rental.Clock
	Tokens      *FeeTokenLedger
	NFTs        *NFTRegistry
	SFTs        *SFTRegistry
	LegacySFTs  *LegacySFTRegistry
	Fees        *Royalties
	LegacyToken types.AccountID
	Hash        crypto.HashFunc
}

// New creates the collaborators described by cfg and seeds them with the
// configured balances and tokens.
func New(clock rental.Clock, cfg *config.Config) (*Environment, error) {
	if clock == nil {
		clock = rental.SystemClock{}
	}
	fees, err := NewRoyalties(cfg.Marketplace)
	if err != nil {
		return nil, err
	}
	env := &Environment{
		Clock:      clock,
		Tokens:     NewFeeTokenLedger(),
		NFTs:       NewNFTRegistry(clock),
		SFTs:       NewSFTRegistry(clock),
		LegacySFTs: NewLegacySFTRegistry(clock),
		Fees:       fees,
	}
	if cfg.Marketplace.LegacySFTToken != "" {
		if env.LegacyToken, err = types.ParseAccountID(cfg.Marketplace.LegacySFTToken); err != nil {
			return nil, fmt.Errorf("marketplace.legacy_sft_token: %w", err)
		}
	}
	if cfg.Marketplace.Hash != "" {
		if env.Hash, err = crypto.HashByName(cfg.Marketplace.Hash); err != nil {
			return nil, err
		}
	}
	if err := env.seed(&cfg.Standalone); err != nil {
		return nil, err
	}
	return env, nil
}

func (env *Environment) seed(sc *config.StandaloneConfig) error {
	for i, b := range sc.Balances {
		feeToken, err := types.ParseAccountID(b.FeeToken)
		if err != nil {
			return fmt.Errorf("standalone.balances[%d].fee_token: %w", i, err)
		}
		account, err := types.ParseAccountID(b.Account)
		if err != nil {
			return fmt.Errorf("standalone.balances[%d].account: %w", i, err)
		}
		if err := env.Tokens.Mint(feeToken, account, b.Amount); err != nil {
			return fmt.Errorf("standalone.balances[%d]: %w", i, err)
		}
	}
	for i, n := range sc.NFTs {
		token, err := types.ParseAccountID(n.Token)
		if err != nil {
			return fmt.Errorf("standalone.nfts[%d].token: %w", i, err)
		}
		owner, err := types.ParseAccountID(n.Owner)
		if err != nil {
			return fmt.Errorf("standalone.nfts[%d].owner: %w", i, err)
		}
		env.NFTs.Mint(token, n.ID, owner)
	}
	for i, s := range sc.SFTs {
		token, err := types.ParseAccountID(s.Token)
		if err != nil {
			return fmt.Errorf("standalone.sfts[%d].token: %w", i, err)
		}
		owner, err := types.ParseAccountID(s.Owner)
		if err != nil {
			return fmt.Errorf("standalone.sfts[%d].owner: %w", i, err)
		}
		env.MintSFT(token, s.ID, owner, s.Amount)
	}
	return nil
}

// MintSFT credits SFT units in whichever registry serves token.
func (env *Environment) MintSFT(token types.AccountID, id uint64, owner types.AccountID, amount uint64) {
	if !env.LegacyToken.IsZero() && token == env.LegacyToken {
		env.LegacySFTs.Mint(token, id, owner, amount)
		return
	}
	env.SFTs.Mint(token, id, owner, amount)
}

// EngineConfig wires the collaborators into an engine configuration over
// store.
func (env *Environment) EngineConfig(store view.LedgerView, logger *zap.Logger) rental.EngineConfig {
	return rental.EngineConfig{
		Store:             store,
		Clock:             env.Clock,
		Hash:              env.Hash,
		Fees:              env.Fees,
		Tokens:            env.Tokens,
		NFTRegistry:       env.NFTs,
		SFTRegistry:       env.SFTs,
		LegacySFTRegistry: env.LegacySFTs,
		LegacySFTToken:    env.LegacyToken,
		Logger:            logger,
	}
}
