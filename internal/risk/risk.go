// Package risk implements the gate order and position sizer that stand
// between a detected ArbSignal and order placement: venue liveness, open-leg
// check, cross-platform whitelist, then size computation (per-trade cap,
// balance fraction, cross-venue haircut), and last the capital reservation
// for the sized quantity. A cross-platform signal outside the whitelist is
// rejected before its cap or capital is examined. The engine is purely
// functional over its
// inputs and the current Balances/OpenLegIndex snapshot; it never suspends.
package risk

import (
	"errors"

	"github.com/caesar-terminal/arbiter/internal/bookkeeping"
	"github.com/caesar-terminal/arbiter/internal/legstate"
	"github.com/caesar-terminal/arbiter/internal/money"
	"github.com/caesar-terminal/arbiter/internal/strategy"
	"go.uber.org/zap"
)

// RejectReason names the gate a signal failed at, used for metrics labels.
type RejectReason string

const (
	RejectNone        RejectReason = ""
	RejectVenueDown   RejectReason = "venue_down"
	RejectOpenLeg     RejectReason = "open_leg"
	RejectCapital     RejectReason = "capital"
	RejectPerTradeCap RejectReason = "per_trade_cap"
	RejectWhitelist   RejectReason = "cross_platform_whitelist_miss"
	RejectZeroSize    RejectReason = "zero_size"
)

// ErrRejected is the sentinel wrapped by Decision.Err when a signal fails
// any gate; callers should inspect Decision.Reason rather than match on it.
var ErrRejected = errors.New("risk: signal rejected")

// LivenessChecker reports whether a venue's trading connection is currently
// healthy enough to accept new orders.
type LivenessChecker interface {
	IsLive(venue bookkeeping.Venue) bool
}

// AlwaysLive is a LivenessChecker that never rejects on liveness; useful in
// tests and for venues with no separate health signal.
type AlwaysLive struct{}

// IsLive implements LivenessChecker.
func (AlwaysLive) IsLive(bookkeeping.Venue) bool { return true }

// Metrics is the narrow set of counters the Risk Engine reports through.
type Metrics interface {
	Rejected(reason RejectReason)
	Approved(qty money.Quantity)
}

type noopMetrics struct{}

func (noopMetrics) Rejected(RejectReason)    {}
func (noopMetrics) Approved(money.Quantity)  {}

// Config holds the sizer's tunables.
type Config struct {
	MaxPositionSizeCents int64 // max_position_size_usd, in basis-cents
	BalanceFraction      float64 // defaults to 0.02 if zero
	CrossVenueRiskFactor float64 // 0..1 haircut applied to cross-platform sizing; defaults to 1.0 if zero
}

func (c Config) balanceFraction() float64 {
	if c.BalanceFraction <= 0 {
		return 0.02
	}
	return c.BalanceFraction
}

func (c Config) crossVenueFactor() float64 {
	if c.CrossVenueRiskFactor <= 0 {
		return 1.0
	}
	return c.CrossVenueRiskFactor
}

// Decision is the outcome of evaluating one ArbSignal.
type Decision struct {
	Approved bool
	Qty      money.Quantity
	Reason   RejectReason

	// ReservedPerVenue is the capital reserved against each venue's
	// Balances counter; populated only when Approved is true. The
	// Coordinator calls Balances.Release with these exact amounts when the
	// arb ends, except after a failed CTF merge, where the position and its
	// reservation are retained.
	ReservedPerVenue map[bookkeeping.Venue]money.Cents
}

// Engine is the gate + sizer.
type Engine struct {
	cfg       Config
	balances  *Balances
	openLegs  *legstate.OpenLegIndex
	liveness  LivenessChecker
	whitelist *strategy.CrossVenueWhitelist
	logger    *zap.Logger
	metrics   Metrics
}

// NewEngine constructs a risk Engine.
func NewEngine(cfg Config, balances *Balances, openLegs *legstate.OpenLegIndex, liveness LivenessChecker, whitelist *strategy.CrossVenueWhitelist, logger *zap.Logger, metrics Metrics) *Engine {
	if liveness == nil {
		liveness = AlwaysLive{}
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Engine{
		cfg:       cfg,
		balances:  balances,
		openLegs:  openLegs,
		liveness:  liveness,
		whitelist: whitelist,
		logger:    logger,
		metrics:   metrics,
	}
}

// Evaluate runs the full gate order against sig and, if approved, reserves
// capital on both venues before returning.
func (e *Engine) Evaluate(sig strategy.ArbSignal) Decision {
	// Gate 1: venue liveness.
	if !e.liveness.IsLive(sig.Leg1.Venue) || !e.liveness.IsLive(sig.Leg2.Venue) {
		return e.reject(RejectVenueDown)
	}

	// Gate 2: open-leg check — only one in-flight arb per (venue, market).
	vm1 := legstate.VenueMarket{Venue: string(sig.Leg1.Venue), MarketID: sig.Leg1.MarketID}
	vm2 := legstate.VenueMarket{Venue: string(sig.Leg2.Venue), MarketID: sig.Leg2.MarketID}
	if e.openLegs.IsOpen(vm1) || e.openLegs.IsOpen(vm2) {
		return e.reject(RejectOpenLeg)
	}

	// Gate 5 (whitelist) is evaluated before sizing but after the cheaper
	// checks above; cross-platform signals with no matching whitelist
	// entry should never have been emitted by Strategy, but Risk re-checks
	// independently since it owns the authoritative policy.
	if sig.CrossPlatform {
		kalshiLeg, polyLeg := sig.Leg1, sig.Leg2
		if kalshiLeg.Venue != bookkeeping.VenueKalshi {
			kalshiLeg, polyLeg = polyLeg, kalshiLeg
		}
		listed := false
		for _, partner := range e.whitelist.PartnersOfKalshi(kalshiLeg.MarketID) {
			if partner == polyLeg.MarketID {
				listed = true
			}
		}
		if !listed {
			return e.reject(RejectWhitelist)
		}
	}

	// Gates 3/4/6: capital, per-trade cap, and size computation are
	// intertwined — the sizer must know the capped qty before it can
	// attempt a capital reservation for that exact qty.
	qty, reservePerVenue, reason := e.size(sig)
	if reason != RejectNone {
		return e.reject(reason)
	}

	// reservePerVenue is keyed by distinct venue, already coalescing both
	// legs' cost when they share a venue (intra-market signals) — reserve
	// each distinct venue exactly once.
	reserved := make([]bookkeeping.Venue, 0, 2)
	for venue, amount := range reservePerVenue {
		if !e.balances.Reserve(venue, amount) {
			for _, done := range reserved {
				e.balances.Release(done, reservePerVenue[done])
			}
			return e.reject(RejectCapital)
		}
		reserved = append(reserved, venue)
	}

	e.metrics.Approved(qty)
	return Decision{Approved: true, Qty: qty, ReservedPerVenue: reservePerVenue}
}

// size computes qty = min(signal.max_qty, cap_qty, balance_qty), applying
// the cross-venue risk factor haircut for cross-platform signals, and
// returns the basis-cent cost that must be reserved on each leg's venue.
func (e *Engine) size(sig strategy.ArbSignal) (money.Quantity, map[bookkeeping.Venue]money.Cents, RejectReason) {
	costPerContract := sig.Leg1.AskPrice + sig.Leg2.AskPrice + sig.EstFeesPerContract + sig.EstGasPerContract
	if costPerContract <= 0 {
		return 0, nil, RejectZeroSize
	}

	qty := sig.MaxQty

	maxPositionCap := e.cfg.MaxPositionSizeCents
	if maxPositionCap > 0 {
		byNotional := money.Quantity(money.Cents(maxPositionCap) / costPerContract)
		if byNotional < qty {
			qty = byNotional
		}
	}

	venue1Balance := e.balances.Free(sig.Leg1.Venue)
	venue2Balance := e.balances.Free(sig.Leg2.Venue)
	smallerBalance := venue1Balance
	if venue2Balance < smallerBalance {
		smallerBalance = venue2Balance
	}
	byBalanceFraction := money.Cents(float64(smallerBalance) * e.cfg.balanceFraction())
	if byBalanceFraction > 0 {
		byBalanceQty := money.Quantity(byBalanceFraction / costPerContract)
		if byBalanceQty < qty {
			qty = byBalanceQty
		}
	}

	if sig.CrossPlatform {
		qty = money.Quantity(float64(qty) * e.cfg.crossVenueFactor())
	}

	if qty <= 0 {
		return 0, nil, RejectZeroSize
	}

	feesAndGas := (sig.EstFeesPerContract + sig.EstGasPerContract) * money.Cents(qty)
	// Intra-market signals have both legs on the same venue, so the two
	// reservations must accumulate into a single counter rather than
	// overwrite one another.
	reserve := make(map[bookkeeping.Venue]money.Cents, 2)
	reserve[sig.Leg1.Venue] += sig.Leg1.AskPrice * money.Cents(qty)
	reserve[sig.Leg2.Venue] += sig.Leg2.AskPrice*money.Cents(qty) + feesAndGas
	return qty, reserve, RejectNone
}

func (e *Engine) reject(reason RejectReason) Decision {
	e.metrics.Rejected(reason)
	if e.logger != nil {
		e.logger.Debug("risk: signal rejected", zap.String("reason", string(reason)))
	}
	return Decision{Approved: false, Reason: reason}
}
