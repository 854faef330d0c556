// Package rental implements the role rental marketplace: rental offers,
// role exclusivity windows, SFT commitments and fee distribution, for both
// non-fungible and semi-fungible assets.
package rental

import (
	"errors"
	"sync"

	"github.com/LeJamon/goRentald/internal/core/ledger/view"
	"github.com/LeJamon/goRentald/internal/core/types"
	crypto "github.com/LeJamon/goRentald/internal/crypto/common"
	"go.uber.org/zap"
)

var (
	errNoStore       = errors.New("rental: engine requires a state view")
	errNoFeeConfig   = errors.New("rental: engine requires a fee configuration")
	errNoFeeToken    = errors.New("rental: engine requires a fee token")
	errNoNFTRegistry = errors.New("rental: no NFT role registry configured")
	errNoSFTRegistry = errors.New("rental: no SFT roles registry configured")
)

// EngineConfig holds the collaborators and settings of an Engine.
type EngineConfig struct {
	// Store is the committed state. It should implement view.Committer so
	// that each operation commits as one batch.
	Store view.LedgerView

	// Clock supplies the current time; SystemClock when nil.
	Clock Clock

	// Hash digests serialized offers; Sha512Half when nil.
	Hash crypto.HashFunc

	Fees   FeeConfig
	Tokens FeeToken

	NFTRegistry       NFTRoleRegistry
	SFTRegistry       SFTRolesRegistry
	LegacySFTRegistry LegacySFTRolesRegistry

	// LegacySFTToken selects LegacySFTRegistry for offers on that token.
	LegacySFTToken types.AccountID

	Sinks  []EventSink
	Logger *zap.Logger
}

// Engine processes marketplace operations against the state view.
type Engine struct {
	// mu serializes top-level operations.
	mu sync.Mutex

	store  view.LedgerView
	clock  Clock
	hash   crypto.HashFunc
	fees   FeeConfig
	tokens FeeToken

	nftRegistry    NFTRoleRegistry
	sftRegistry    SFTRolesRegistry
	legacyRegistry LegacySFTRolesRegistry
	legacyToken    types.AccountID

	sinks  []EventSink
	logger *zap.Logger

	// inTransition holds offers whose operation is still running. Only the
	// goroutine holding mu touches it.
	inTransition map[types.Hash]string
}

// NewEngine creates an engine from config.
func NewEngine(config EngineConfig) (*Engine, error) {
	if config.Store == nil {
		return nil, errNoStore
	}
	if config.Fees == nil {
		return nil, errNoFeeConfig
	}
	if config.Tokens == nil {
		return nil, errNoFeeToken
	}
	if config.Clock == nil {
		config.Clock = SystemClock{}
	}
	if config.Hash == nil {
		config.Hash = crypto.Sha512Half
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}

	return &Engine{
		store:          config.Store,
		clock:          config.Clock,
		hash:           config.Hash,
		fees:           config.Fees,
		tokens:         config.Tokens,
		nftRegistry:    config.NFTRegistry,
		sftRegistry:    config.SFTRegistry,
		legacyRegistry: config.LegacySFTRegistry,
		legacyToken:    config.LegacySFTToken,
		sinks:          config.Sinks,
		logger:         config.Logger.Named("rental"),
		inTransition:   make(map[types.Hash]string),
	}, nil
}

// AddSink registers an additional event sink. It must be called before the
// engine serves operations.
func (e *Engine) AddSink(s EventSink) {
	e.sinks = append(e.sinks, s)
}

// HashOffer returns the content hash identifying o.
func (e *Engine) HashOffer(o *Offer) types.Hash {
	return types.Hash(e.hash(o.Serialize()))
}

// now returns the current time in unix seconds.
func (e *Engine) now() uint64 {
	t := e.clock.Now().Unix()
	if t < 0 {
		return 0
	}
	return uint64(t)
}

// journaled lists the collaborators whose effects can be reverted.
func (e *Engine) journaled() []Journaled {
	var out []Journaled
	seen := make(map[Journaled]bool)
	for _, c := range []any{e.tokens, e.fees, e.nftRegistry, e.sftRegistry, e.legacyRegistry} {
		if j, ok := c.(Journaled); ok && !seen[j] {
			seen[j] = true
			out = append(out, j)
		}
	}
	return out
}
