// Package execution owns the per-arb LegState machine and drives order
// placement through the two venue adapter interfaces it defines, picking leg
// order and timeouts based on which pair of venues an arb spans.
package execution

import (
	"context"
	"time"

	"github.com/caesar-terminal/arbiter/internal/bookkeeping"
	"github.com/caesar-terminal/arbiter/internal/money"
)

// FillStatus is the outcome of a submitted order, as reported by either
// venue adapter.
type FillStatus uint8

const (
	FillNone FillStatus = iota
	FillPartial
	FillFull
	FillRejected
	FillTimedOut
)

// OrderResult reports what happened to one submitted leg.
type OrderResult struct {
	Status   FillStatus
	FilledQty money.Quantity
	AvgPrice  money.Cents
	Err       error
}

// KalshiOrderAdapter places aggressive limit/IOC orders and reports fills via
// callback; Kalshi's REST+WS API does not return a synchronous match result.
type KalshiOrderAdapter interface {
	// PlaceIOC submits a limit order priced at px for qty contracts with
	// immediate-or-cancel semantics, returning once the venue acknowledges
	// acceptance (not fill) or rejects the order outright.
	PlaceIOC(ctx context.Context, marketID string, side bookkeeping.Side, px money.Cents, qty money.Quantity) (orderID string, err error)
	// Await blocks, bounded by ctx's deadline, until the order reaches a
	// terminal fill state (full, partial-then-expired, or rejected).
	Await(ctx context.Context, orderID string) OrderResult
	// Cancel best-effort cancels an order still resting on the book.
	Cancel(ctx context.Context, orderID string) error
}

// PolymarketOrderAdapter submits FOK orders and learns the filled quantity
// synchronously once the CLOB matcher resolves the order.
type PolymarketOrderAdapter interface {
	// PlaceFOK submits a fill-or-kill order and blocks until the matcher
	// resolves it (filled in full or expired unfilled).
	PlaceFOK(ctx context.Context, marketID string, side bookkeeping.Side, px money.Cents, qty money.Quantity) OrderResult
}

// Timeouts holds the three leg1-inflight deadlines, one per venue pairing.
type Timeouts struct {
	PolymarketOnly time.Duration // default 500ms
	KalshiOnly     time.Duration // default 2s
	CrossPlatform  time.Duration // default 5s
}

// DefaultTimeouts returns the production-tuned defaults.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		PolymarketOnly: 500 * time.Millisecond,
		KalshiOnly:     2 * time.Second,
		CrossPlatform:  5 * time.Second,
	}
}

func (t Timeouts) forPair(venue1, venue2 bookkeeping.Venue) time.Duration {
	if venue1 == bookkeeping.VenuePolymarket && venue2 == bookkeeping.VenuePolymarket {
		return t.PolymarketOnly
	}
	if venue1 == bookkeeping.VenueKalshi && venue2 == bookkeeping.VenueKalshi {
		return t.KalshiOnly
	}
	return t.CrossPlatform
}
