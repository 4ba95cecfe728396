// Package bookkeeping maintains the unified order book model: one OrderBook
// per (venue, market), fed by venue-specific adapters and published to the
// strategy engine as totally-ordered per-market snapshots. It owns Kalshi's
// synthetic-ask reconstruction — the only place the 1.00-reflection identity
// is applied.
package bookkeeping

import (
	"errors"
	"time"

	"github.com/caesar-terminal/arbiter/internal/money"
)

// Venue identifies the source of a market.
type Venue string

const (
	VenueKalshi     Venue = "kalshi"
	VenuePolymarket Venue = "polymarket"
)

// Side is one leg of a binary market.
type Side uint8

const (
	Yes Side = iota + 1
	No
)

func (s Side) String() string {
	if s == Yes {
		return "yes"
	}
	if s == No {
		return "no"
	}
	return "unknown"
}

// Opposite returns the other side of the pair.
func (s Side) Opposite() Side {
	if s == Yes {
		return No
	}
	return Yes
}

// BookLevel is a single (price, aggregated quantity) tick.
type BookLevel struct {
	Price money.Cents
	Qty   money.Quantity
}

var (
	// ErrCrossedBook is returned when best_bid > best_ask - tick on a ladder.
	ErrCrossedBook = errors.New("bookkeeping: crossed book")
	// ErrSeqGap is returned when an update's sequence number skips past the
	// next expected value; stale or duplicate sequence numbers are ignored.
	ErrSeqGap = errors.New("bookkeeping: sequence gap, resnapshot required")
	// ErrUnknownMarket is returned for deltas referencing a market with no
	// prior snapshot.
	ErrUnknownMarket = errors.New("bookkeeping: delta for unknown market")
)

// MarketKey identifies a market on a single venue.
type MarketKey struct {
	Venue    Venue
	MarketID string
}

// OrderBook is the unified per-market book. For Kalshi, YesAsks/NoAsks are
// synthetic, derived strictly from the opposing bid ladder; for Polymarket
// all four ladders are native.
type OrderBook struct {
	Venue         Venue
	MarketID      string
	LastUpdateSeq int64
	LastUpdateTS  time.Time
	IsProvisional bool

	// Descending by price: best bid first.
	YesBids []BookLevel
	NoBids  []BookLevel
	// Ascending by price: best ask first.
	YesAsks []BookLevel
	NoAsks  []BookLevel
}

// BestAsk returns the top-of-book ask for side, or (money.Inf, 0, false) if
// the ladder is empty.
func (ob *OrderBook) BestAsk(side Side) (money.Cents, money.Quantity, bool) {
	ladder := ob.YesAsks
	if side == No {
		ladder = ob.NoAsks
	}
	if len(ladder) == 0 {
		return money.Inf, 0, false
	}
	return ladder[0].Price, ladder[0].Qty, true
}

// BestBid returns the top-of-book bid for side, or (0, 0, false) if empty.
func (ob *OrderBook) BestBid(side Side) (money.Cents, money.Quantity, bool) {
	ladder := ob.YesBids
	if side == No {
		ladder = ob.NoBids
	}
	if len(ladder) == 0 {
		return 0, 0, false
	}
	return ladder[0].Price, ladder[0].Qty, true
}

// Validate checks the no-cross invariant on every ladder that has both a bid
// and an ask: best_bid <= best_ask - tick (tick = 1 basis-cent).
func (ob *OrderBook) Validate() error {
	for _, side := range []Side{Yes, No} {
		bid, _, hasBid := ob.BestBid(side)
		ask, _, hasAsk := ob.BestAsk(side)
		if hasBid && hasAsk && !ask.IsInf() && bid > ask-1 {
			return ErrCrossedBook
		}
	}
	return nil
}

// Snapshot is the stable publication token emitted to the Strategy engine
// after every consistent update. It carries a defensive copy of the book so
// the Strategy can read it without racing the Normalizer.
type Snapshot struct {
	Book OrderBook
	TS   time.Time
}
