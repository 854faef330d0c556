package rental

import (
	"context"
	"fmt"

	"github.com/LeJamon/goRentald/internal/core/ledger/view"
	"github.com/LeJamon/goRentald/internal/core/types"
	"go.uber.org/zap"
)

type frameKey struct{}

// frame is the execution context of one operation. The root frame stages
// over the committed store; a frame opened by a collaborator calling back
// into the engine stages over its parent's table.
type frame struct {
	op     string
	parent *frame
	table  *view.ApplyStateTable
	now    uint64
	events []Event
	active bool
}

func frameFrom(ctx context.Context) *frame {
	f, _ := ctx.Value(frameKey{}).(*frame)
	if f == nil || !f.active {
		return nil
	}
	return f
}

func (f *frame) emit(ev Event) {
	f.events = append(f.events, ev)
}

// Receipt describes a successful operation.
type Receipt struct {
	Result    Result         `json:"result"`
	OfferHash *types.Hash    `json:"offer_hash,omitempty"`
	Offer     *Offer         `json:"offer,omitempty"`
	Events    []Event        `json:"events"`
	Metadata  *view.Metadata `json:"metadata"`
}

// execute runs fn inside a new frame. All state staged by fn and all
// journaled collaborator effects are committed together when fn succeeds and
// discarded when it fails.
func (e *Engine) execute(ctx context.Context, op string, fn func(ctx context.Context, f *frame) (*Receipt, error)) (*Receipt, error) {
	parent := frameFrom(ctx)
	var base view.LedgerView
	if parent == nil {
		e.mu.Lock()
		defer e.mu.Unlock()
		base = e.store
	} else {
		base = parent.table
	}

	f := &frame{
		op:     op,
		parent: parent,
		table:  view.NewApplyStateTable(base),
		active: true,
	}
	if parent != nil {
		f.now = parent.now
	} else {
		f.now = e.now()
	}
	defer func() { f.active = false }()

	journals := e.journaled()
	checkpoints := make([]int, len(journals))
	for i, j := range journals {
		checkpoints[i] = j.Checkpoint()
	}
	rollback := func() {
		f.table.Discard()
		for i := len(journals) - 1; i >= 0; i-- {
			journals[i].RevertTo(checkpoints[i])
		}
	}

	receipt, err := e.runGuarded(context.WithValue(ctx, frameKey{}, f), f, fn)
	if err != nil {
		rollback()
		e.logRejected(f, err)
		return nil, err
	}

	md, err := f.table.Apply()
	if err != nil {
		rollback()
		e.logger.Error("commit failed", zap.String("op", op), zap.Error(err))
		return nil, fmt.Errorf("commit %s: %w", op, err)
	}

	if receipt == nil {
		receipt = &Receipt{}
	}
	receipt.Result = TesSUCCESS
	receipt.Events = f.events
	receipt.Metadata = md

	if parent != nil {
		parent.events = append(parent.events, f.events...)
		return receipt, nil
	}

	for i, j := range journals {
		j.Commit(checkpoints[i])
	}

	e.logger.Debug("operation applied",
		zap.String("op", op),
		zap.Int("events", len(f.events)),
		zap.Int("affected", len(md.AffectedNodes)))
	e.publish(ctx, f.events)
	return receipt, nil
}

// runGuarded converts a panic in fn into an internal error so that the
// frame is still rolled back.
func (e *Engine) runGuarded(ctx context.Context, f *frame, fn func(ctx context.Context, f *frame) (*Receipt, error)) (r *Receipt, err error) {
	defer func() {
		if p := recover(); p != nil {
			e.logger.Error("operation panicked", zap.String("op", f.op), zap.Any("panic", p))
			err = fail(TefINTERNAL, fmt.Errorf("panic: %v", p))
		}
	}()
	return fn(ctx, f)
}

func (e *Engine) logRejected(f *frame, err error) {
	code := ResultOf(err)
	fields := []zap.Field{zap.String("op", f.op), zap.Stringer("result", code), zap.Error(err)}
	if f.parent != nil {
		fields = append(fields, zap.Bool("nested", true))
	}
	if code == TefINTERNAL {
		e.logger.Error("operation failed", fields...)
		return
	}
	e.logger.Info("operation rejected", fields...)
}

func (e *Engine) publish(ctx context.Context, events []Event) {
	if len(events) == 0 {
		return
	}
	for _, s := range e.sinks {
		if err := s.Publish(ctx, events); err != nil {
			e.logger.Error("event sink failed", zap.Error(err))
		}
	}
}

// enter marks an offer as mid-transition for the rest of the frame. A second
// operation on the same offer before the first completes is a conflict.
func (e *Engine) enter(f *frame, hash types.Hash) (release func(), err error) {
	if op, busy := e.inTransition[hash]; busy {
		e.logger.Warn("re-entrant call rejected",
			zap.Stringer("offer", hash), zap.String("running", op), zap.String("op", f.op))
		return nil, TecREENTRANT
	}
	e.inTransition[hash] = f.op
	return func() { delete(e.inTransition, hash) }, nil
}

// viewFor returns the view reads should use: the running frame's table, or
// the committed store.
func (e *Engine) viewFor(ctx context.Context) view.LedgerView {
	if f := frameFrom(ctx); f != nil {
		return f.table
	}
	return e.store
}
