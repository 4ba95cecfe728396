// Package storage persists the outcome of every arb the Coordinator runs to
// a terminal LegState, plus the resulting venue positions: the same shape
// the Coordinator already carries in memory (ArbSignal, Decision, LegState),
// written out so a restart or an external reconciliation job can recover it.
package storage

import (
	"context"
	"time"

	"github.com/caesar-terminal/arbiter/internal/bookkeeping"
	"github.com/caesar-terminal/arbiter/internal/legstate"
	"github.com/caesar-terminal/arbiter/internal/money"
)

// LegFill records what actually happened to one leg of an arb.
type LegFill struct {
	Venue     bookkeeping.Venue
	MarketID  string
	Side      bookkeeping.Side
	AskPrice  money.Cents
	FilledQty money.Quantity
}

// TradeRecord is the append-only row persisted for every arb the
// Coordinator carries to a terminal state: both legs as submitted, what
// filled, fees and gas charged against the edge, the CTF merge transaction
// if one was attempted, and the realized PnL once the position is closed
// out (merged, hedged, or abandoned at a loss).
type TradeRecord struct {
	ID          string
	DetectedAt  time.Time
	ClosedAt    time.Time
	Leg1        LegFill
	Leg2        LegFill
	FinalState  legstate.State
	FeesCents   money.Cents
	GasCents    money.Cents
	MergeTxHash string // "condition:<id>" after a confirmed Polymarket CTF merge, empty otherwise
	RealizedPnL money.Cents
}

// Position is one venue's current resolved-or-unresolved holding in a
// market: venue, market ID, side, quantity, average cost, and acquisition
// time. The Coordinator does not track running positions itself
// (Balances tracks reserved capital, not holdings) — Storage is the system
// of record for a position until the market resolves or the leg is merged
// away by the CTF contract.
type Position struct {
	Venue      bookkeeping.Venue
	MarketID   string
	Side       bookkeeping.Side
	Qty        money.Quantity
	AvgCost    money.Cents
	AcquiredAt time.Time
}

// Storage is the persistence boundary the Coordinator writes through once an
// arb reaches a terminal LegState. Implementations must not block the
// Coordinator's hot path for long; both implementations below are
// synchronous and cheap (a single INSERT, or a stdout write).
type Storage interface {
	// RecordTrade persists one terminal arb outcome.
	RecordTrade(ctx context.Context, rec *TradeRecord) error

	// UpsertPosition records the current holding for one venue/market/side,
	// replacing any prior row for the same key.
	UpsertPosition(ctx context.Context, pos *Position) error

	// Close releases any underlying connection.
	Close() error
}
