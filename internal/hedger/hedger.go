// Package hedger resolves an orphaned leg: activated only
// from HEDGE_NEEDED, it receives the filled leg's market, side, and
// unhedged quantity, and must return a terminal {HEDGED_TO_NEUTRAL,
// CLOSED_AT_LOSS} outcome within its configured budget. It is a message-
// passing subordinate of the Execution Coordinator: it never calls back
// into Coordinator internals, only the venue order adapter it was given.
package hedger

import (
	"context"
	"time"

	"github.com/caesar-terminal/arbiter/internal/bookkeeping"
	"github.com/caesar-terminal/arbiter/internal/execution"
	"github.com/caesar-terminal/arbiter/internal/money"
	"go.uber.org/zap"
)

// BookSource lets the Hedger read live ask-side depth to chase through, by
// market/side.
type BookSource interface {
	Asks(venue bookkeeping.Venue, marketID string, side bookkeeping.Side) []bookkeeping.BookLevel
}

// OrderAdapter is the narrow order-placement surface the Hedger drives,
// shared across both venues via IOC semantics.
type OrderAdapter interface {
	PlaceIOC(ctx context.Context, venue bookkeeping.Venue, marketID string, side bookkeeping.Side, px money.Cents, qty money.Quantity) execution.OrderResult
	PlaceLimit(ctx context.Context, venue bookkeeping.Venue, marketID string, side bookkeeping.Side, px money.Cents, qty money.Quantity, ttl time.Duration) execution.OrderResult
}

// Config holds the Hedger's budget and strategy-selection tunables.
type Config struct {
	MaxHedgeLossPerContract money.Cents
	HedgeTimeout            time.Duration // fade's passive-wait budget before escalating to chase
	WideSpreadThreshold     money.Cents   // spread >= this selects Fade over Chase
}

// Hedger implements execution.Hedger.
type Hedger struct {
	cfg    Config
	books  BookSource
	orders OrderAdapter
	logger *zap.Logger
}

// New constructs a Hedger.
func New(cfg Config, books BookSource, orders OrderAdapter, logger *zap.Logger) *Hedger {
	return &Hedger{cfg: cfg, books: books, orders: orders, logger: logger}
}

// Hedge selects Chase or Fade based on current book depth/spread and drives
// the chosen strategy to a terminal outcome.
func (h *Hedger) Hedge(ctx context.Context, req execution.HedgeRequest) execution.HedgeOutcome {
	asks := h.books.Asks(req.Venue, req.MarketID, req.Side)
	maxPrice := 100 - req.Leg1Cost - h.cfg.MaxHedgeLossPerContract

	if h.shouldFade(asks, maxPrice) {
		outcome := h.fade(ctx, req, maxPrice)
		if outcome.Neutralized || outcome.FilledQty >= req.UnhedgedQty {
			return outcome
		}
		// Escalate unfilled remainder to chase.
		remainder := req
		remainder.UnhedgedQty = req.UnhedgedQty - outcome.FilledQty
		chased := h.chase(ctx, remainder, maxPrice)
		chased.FilledQty += outcome.FilledQty
		chased.Neutralized = chased.FilledQty >= req.UnhedgedQty
		return chased
	}

	return h.chase(ctx, req, maxPrice)
}

// shouldFade selects Fade when the max acceptable price sits at least
// WideSpreadThreshold above the best ask. Depth at the touch is not
// considered.
func (h *Hedger) shouldFade(asks []bookkeeping.BookLevel, maxPrice money.Cents) bool {
	if len(asks) == 0 {
		return false
	}
	return maxPrice-asks[0].Price >= h.cfg.WideSpreadThreshold
}

// chase crosses the spread with successive IOC orders stepping through book
// levels, stopping on full fill or price-ceiling breach.
func (h *Hedger) chase(ctx context.Context, req execution.HedgeRequest, maxPrice money.Cents) execution.HedgeOutcome {
	asks := h.books.Asks(req.Venue, req.MarketID, req.Side)

	var filled money.Quantity
	var notional money.Cents
	remaining := req.UnhedgedQty

	for _, level := range asks {
		if remaining <= 0 {
			break
		}
		if level.Price > maxPrice {
			break
		}
		chunk := level.Qty
		if chunk > remaining {
			chunk = remaining
		}
		res := h.orders.PlaceIOC(ctx, req.Venue, req.MarketID, req.Side, level.Price, chunk)
		if res.FilledQty <= 0 {
			continue
		}
		filled += res.FilledQty
		notional += res.AvgPrice * money.Cents(res.FilledQty)
		remaining -= res.FilledQty
	}

	outcome := execution.HedgeOutcome{FilledQty: filled}
	if filled > 0 {
		outcome.AvgPrice = notional / money.Cents(filled)
	}
	outcome.Neutralized = remaining <= 0
	if !outcome.Neutralized && h.logger != nil {
		h.logger.Warn("hedger: chase exhausted book or price ceiling before full fill",
			zap.String("market", req.MarketID), zap.Int64("unhedged_remaining", int64(remaining)))
	}
	return outcome
}

// fade places a single passive limit order at the target price and waits up
// to hedge_timeout_ms for it to fill.
func (h *Hedger) fade(ctx context.Context, req execution.HedgeRequest, maxPrice money.Cents) execution.HedgeOutcome {
	target := maxPrice
	fadeCtx, cancel := context.WithTimeout(ctx, h.cfg.HedgeTimeout)
	defer cancel()

	res := h.orders.PlaceLimit(fadeCtx, req.Venue, req.MarketID, req.Side, target, req.UnhedgedQty, h.cfg.HedgeTimeout)
	return execution.HedgeOutcome{
		Neutralized: res.FilledQty >= req.UnhedgedQty,
		FilledQty:   res.FilledQty,
		AvgPrice:    res.AvgPrice,
	}
}
