package execution

import (
	"context"
	"sync"
	"time"

	"github.com/caesar-terminal/arbiter/internal/bookkeeping"
	"github.com/caesar-terminal/arbiter/internal/engine"
	"github.com/caesar-terminal/arbiter/internal/legstate"
	"github.com/caesar-terminal/arbiter/internal/money"
	"github.com/caesar-terminal/arbiter/internal/risk"
	"github.com/caesar-terminal/arbiter/internal/strategy"
	"go.uber.org/zap"
)

// Merger performs the CTF mergePositions call once both legs of a
// Polymarket-Yes+No arb are filled; implemented by internal/ctf.
type Merger interface {
	Merge(ctx context.Context, conditionID string, qty money.Quantity) error
}

// HedgeRequest describes the unhedged leg handed to the Hedger on
// HEDGE_NEEDED.
type HedgeRequest struct {
	Venue      bookkeeping.Venue
	MarketID   string
	Side       bookkeeping.Side
	UnhedgedQty money.Quantity
	Leg1Cost   money.Cents // the filled leg's actual per-contract cost, for the Hedger's max-acceptable-price calc
}

// HedgeOutcome is the Hedger's terminal result for one request.
type HedgeOutcome struct {
	Neutralized bool // true => HEDGED_TO_NEUTRAL, false => CLOSED_AT_LOSS
	FilledQty   money.Quantity
	AvgPrice    money.Cents
}

// Hedger is invoked synchronously from HEDGE_NEEDED and must return a
// terminal outcome; implemented by internal/hedger.
type Hedger interface {
	Hedge(ctx context.Context, req HedgeRequest) HedgeOutcome
}

// Metrics is the narrow set of counters the Coordinator reports through.
type Metrics interface {
	LegFilled(venue bookkeeping.Venue, status FillStatus)
	ArbTerminal(state legstate.State)
}

// TradeRecorder is the persistence boundary the Coordinator writes a trade
// record through once an arb reaches a terminal LegState; implemented by
// internal/storage.Storage. Optional: a nil TradeRecorder skips persistence
// entirely (used in tests).
type TradeRecorder interface {
	RecordTrade(ctx context.Context, rec *TradeRecord) error
}

// TradeRecord mirrors storage.TradeRecord without importing internal/storage
// from internal/execution, which would create an import cycle (storage
// depends on nothing in execution, but execution must stay free to build
// without a database driver wired). Callers passing a real Storage adapt it
// on the other side of the TradeRecorder interface.
type TradeRecord struct {
	Leg1Venue, Leg2Venue         bookkeeping.Venue
	Leg1MarketID, Leg2MarketID   string
	Leg1Side, Leg2Side           bookkeeping.Side
	Leg1AskPrice, Leg2AskPrice   money.Cents
	Leg1FilledQty, Leg2FilledQty money.Quantity
	FinalState                   legstate.State
	FeesCents                    money.Cents
	GasCents                     money.Cents
	MergeTxHash                  string
	RealizedPnL                  money.Cents
	DetectedAt                   time.Time
	ClosedAt                     time.Time
}

// PreflightValidator runs the last structural and circuit-breaker checks on
// a leg immediately before it is submitted to a venue adapter; implemented
// by internal/engine.Validator. Optional: a nil PreflightValidator skips
// this check.
type PreflightValidator interface {
	Validate(order *engine.Order) error
}

type noopMetrics struct{}

func (noopMetrics) LegFilled(bookkeeping.Venue, FillStatus) {}
func (noopMetrics) ArbTerminal(legstate.State)              {}

// Coordinator owns the LegState machine for every in-flight arb. Each arb
// runs on its own goroutine for the duration of Execute; the shared
// OpenLegIndex and Balances are the only cross-goroutine state, and both are
// internally synchronized.
type Coordinator struct {
	kalshi    KalshiOrderAdapter
	poly      PolymarketOrderAdapter
	balances  *risk.Balances
	openLegs  *legstate.OpenLegIndex
	merger    Merger
	hedger    Hedger
	timeouts  Timeouts
	logger    *zap.Logger
	metrics   Metrics
	validator PreflightValidator
	recorder  TradeRecorder

	minViableQty money.Quantity

	inflight sync.WaitGroup
}

// WithValidator attaches a PreflightValidator run immediately before each
// leg submission. Optional; returns c for chaining.
func (c *Coordinator) WithValidator(v PreflightValidator) *Coordinator {
	c.validator = v
	return c
}

// WithRecorder attaches a TradeRecorder that persists a TradeRecord every
// time an arb reaches a terminal LegState. Optional; returns c for chaining.
func (c *Coordinator) WithRecorder(r TradeRecorder) *Coordinator {
	c.recorder = r
	return c
}

// WithMinViableQty sets the partial-fill floor: a leg1 fill below this
// quantity aborts the arb instead of chasing a dust-sized hedge whose fees
// would exceed any recoverable edge. Optional; returns c for chaining.
func (c *Coordinator) WithMinViableQty(qty money.Quantity) *Coordinator {
	c.minViableQty = qty
	return c
}

// NewCoordinator constructs a Coordinator.
func NewCoordinator(kalshi KalshiOrderAdapter, poly PolymarketOrderAdapter, balances *risk.Balances, openLegs *legstate.OpenLegIndex, merger Merger, hedger Hedger, timeouts Timeouts, logger *zap.Logger, metrics Metrics) *Coordinator {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Coordinator{
		kalshi: kalshi, poly: poly, balances: balances, openLegs: openLegs,
		merger: merger, hedger: hedger, timeouts: timeouts, logger: logger, metrics: metrics,
	}
}

// Drain blocks until every in-flight arb has reached a terminal LegState or
// ctx expires. The caller must have stopped feeding Execute new signals
// first; Drain does not refuse them itself.
func (c *Coordinator) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		c.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Execute runs one approved arb to a terminal LegState. It blocks the
// calling goroutine for the arb's full lifetime; callers invoke it in its own
// goroutine per approved Decision.
func (c *Coordinator) Execute(ctx context.Context, sig strategy.ArbSignal, dec risk.Decision, conditionID string) legstate.State {
	c.inflight.Add(1)
	defer c.inflight.Done()

	// Cross-platform arbs always submit the Kalshi leg first: Kalshi's IOC
	// fill is known immediately, so the Polymarket FOK leg only ever goes out
	// once leg1 is confirmed. Strategy picks Leg1/Leg2 by whichever venue's
	// book just updated, so the assignment needs normalizing here rather
	// than trusting signal order.
	if sig.CrossPlatform && sig.Leg1.Venue == bookkeeping.VenuePolymarket {
		sig.Leg1, sig.Leg2 = sig.Leg2, sig.Leg1
	}

	vm1 := legstate.VenueMarket{Venue: string(sig.Leg1.Venue), MarketID: sig.Leg1.MarketID}
	vm2 := legstate.VenueMarket{Venue: string(sig.Leg2.Venue), MarketID: sig.Leg2.MarketID}

	release := func() {
		for venue, amount := range dec.ReservedPerVenue {
			c.balances.Release(venue, amount)
		}
	}

	state := legstate.Idle
	state, _ = legstate.Transition(state, legstate.EventApproved)
	c.openLegs.Set(vm1, state)
	c.openLegs.Set(vm2, state)

	timeout := c.timeouts.forPair(sig.Leg1.Venue, sig.Leg2.Venue)
	leg1Ctx, cancel1 := context.WithTimeout(ctx, timeout)
	defer cancel1()

	leg1Result, leg1Qty := c.submitLeg(leg1Ctx, sig.Leg1.Venue, sig.Leg1.MarketID, sig.Leg1.Side, sig.Leg1.AskPrice, dec.Qty)
	c.metrics.LegFilled(sig.Leg1.Venue, leg1Result.Status)

	if leg1Result.Status == FillPartial && leg1Qty < c.minViableQty {
		// A dust fill is not worth pairing or hedging; abort, keep the few
		// contracts for settlement, and release the reserved capital.
		if c.logger != nil {
			c.logger.Warn("execution: leg1 fill below min viable qty, aborting",
				zap.String("market", sig.Leg1.MarketID),
				zap.Int64("filled", int64(leg1Qty)),
				zap.Int64("min_viable", int64(c.minViableQty)))
		}
		leg1Result.Status = FillRejected
	}

	switch leg1Result.Status {
	case FillFull, FillPartial:
		state, _ = legstate.Transition(state, leg1Event(leg1Result.Status))
	default:
		state, _ = legstate.Transition(state, legstate.EventLeg1Rejected)
		release()
		c.openLegs.Set(vm1, state)
		c.openLegs.Set(vm2, state)
		c.metrics.ArbTerminal(state)
		c.recordTerminal(sig, state, leg1Qty, 0, "", 0)
		return state
	}
	c.openLegs.Set(vm1, state)
	c.openLegs.Set(vm2, state)

	leg2Qty := leg1Qty // leg2 is shrunk to match leg1's actual fill
	leg2Ctx, cancel2 := context.WithTimeout(ctx, timeout)
	defer cancel2()
	leg2Result, leg2Qty2 := c.submitLeg(leg2Ctx, sig.Leg2.Venue, sig.Leg2.MarketID, sig.Leg2.Side, sig.Leg2.AskPrice, leg2Qty)
	c.metrics.LegFilled(sig.Leg2.Venue, leg2Result.Status)

	if leg2Result.Status == FillFull && leg2Qty2 == leg2Qty {
		state, _ = legstate.Transition(state, legstate.EventLeg2Filled)
		c.openLegs.Set(vm1, state)
		c.openLegs.Set(vm2, state)

		var mergeTxHash string
		if sig.Leg1.Venue == bookkeeping.VenuePolymarket && sig.Leg2.Venue == bookkeeping.VenuePolymarket && c.merger != nil {
			if err := c.merger.Merge(ctx, conditionID, leg1Qty); err != nil {
				state, _ = legstate.Transition(state, legstate.EventMergeFailed)
				if c.logger != nil {
					c.logger.Error("execution: merge failed, retaining position", zap.Error(err), zap.String("condition", conditionID))
				}
			} else {
				state, _ = legstate.Transition(state, legstate.EventMergeConfirmed)
				// Merger.Merge reports only success/failure, not the
				// transaction hash; record the condition ID it merged
				// so the trade record is still traceable back to the
				// on-chain position.
				mergeTxHash = "condition:" + conditionID
				release()
			}
		} else {
			// Cross-platform or Kalshi-only both-filled positions settle
			// independently at each venue's resolution; no merge call.
			state, _ = legstate.Transition(state, legstate.EventMergeConfirmed)
			release()
		}
		c.openLegs.Clear(vm1)
		c.openLegs.Clear(vm2)
		c.metrics.ArbTerminal(state)
		c.recordTerminal(sig, state, leg1Qty, leg2Qty2, mergeTxHash, sig.NetEdgePerContract*money.Cents(leg1Qty))
		return state
	}

	// Partial or rejected leg2: orphaned leg1 quantity needs a Hedger.
	state, _ = legstate.Transition(state, legstate.EventLeg2PartialOrRejected)
	c.openLegs.Set(vm1, state)
	c.openLegs.Set(vm2, state)

	unhedged := leg1Qty - leg2Result.FilledQty
	if unhedged <= 0 || c.hedger == nil {
		release()
		c.openLegs.Clear(vm1)
		c.openLegs.Clear(vm2)
		c.metrics.ArbTerminal(state)
		c.recordTerminal(sig, state, leg1Qty, leg2Qty2, "", 0)
		return state
	}

	outcome := c.hedger.Hedge(ctx, HedgeRequest{
		Venue:       sig.Leg1.Venue,
		MarketID:    sig.Leg1.MarketID,
		Side:        sig.Leg1.Side.Opposite(),
		UnhedgedQty: unhedged,
		Leg1Cost:    sig.Leg1.AskPrice,
	})
	var realizedPnL money.Cents
	if outcome.Neutralized {
		state, _ = legstate.Transition(state, legstate.EventHedgeResolvedNeutral)
		realizedPnL = (sig.Leg1.AskPrice.Reflect() - outcome.AvgPrice) * money.Cents(outcome.FilledQty)
	} else {
		state, _ = legstate.Transition(state, legstate.EventHedgeResolvedLoss)
		if c.logger != nil {
			c.logger.Warn("execution: position closed at loss", zap.String("market", sig.Leg1.MarketID))
		}
		realizedPnL = (sig.Leg1.AskPrice.Reflect() - outcome.AvgPrice) * money.Cents(outcome.FilledQty)
	}
	release()
	c.openLegs.Clear(vm1)
	c.openLegs.Clear(vm2)
	c.metrics.ArbTerminal(state)
	c.recordTerminal(sig, state, leg1Qty, leg2Result.FilledQty+outcome.FilledQty, "", realizedPnL)
	return state
}

// recordTerminal persists a TradeRecord for the arb's terminal outcome, if a
// TradeRecorder is attached. Logged and swallowed on failure: a storage
// write must never unwind an already-settled LegState transition.
func (c *Coordinator) recordTerminal(sig strategy.ArbSignal, state legstate.State, leg1Filled, leg2Filled money.Quantity, mergeTxHash string, realizedPnL money.Cents) {
	if c.recorder == nil {
		return
	}

	rec := &TradeRecord{
		Leg1Venue: sig.Leg1.Venue, Leg1MarketID: sig.Leg1.MarketID, Leg1Side: sig.Leg1.Side,
		Leg1AskPrice: sig.Leg1.AskPrice, Leg1FilledQty: leg1Filled,
		Leg2Venue: sig.Leg2.Venue, Leg2MarketID: sig.Leg2.MarketID, Leg2Side: sig.Leg2.Side,
		Leg2AskPrice: sig.Leg2.AskPrice, Leg2FilledQty: leg2Filled,
		FinalState:  state,
		FeesCents:   sig.EstFeesPerContract * money.Cents(leg1Filled),
		GasCents:    sig.EstGasPerContract * money.Cents(leg1Filled),
		MergeTxHash: mergeTxHash,
		RealizedPnL: realizedPnL,
		DetectedAt:  sig.DetectedAt,
		ClosedAt:    time.Now(),
	}

	recordCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.recorder.RecordTrade(recordCtx, rec); err != nil && c.logger != nil {
		c.logger.Error("execution: failed to persist trade record", zap.Error(err), zap.String("state", state.String()))
	}
}

func leg1Event(status FillStatus) legstate.Event {
	if status == FillPartial {
		return legstate.EventLeg1PartialTimeout
	}
	return legstate.EventLeg1Filled
}

// submitLeg runs the preflight validator (if any), then dispatches to the
// venue-appropriate adapter and returns a normalized OrderResult plus the
// quantity actually filled.
func (c *Coordinator) submitLeg(ctx context.Context, venue bookkeeping.Venue, marketID string, side bookkeeping.Side, px money.Cents, qty money.Quantity) (OrderResult, money.Quantity) {
	if c.validator != nil {
		order := &engine.Order{
			Venue:    venue,
			MarketID: marketID,
			Side:     engine.Buy,
			Type:     engine.Limit,
			Price:    px,
			Quantity: qty,
			Status:   engine.StatusNew,
		}
		if err := c.validator.Validate(order); err != nil {
			return OrderResult{Status: FillRejected, Err: err}, 0
		}
	}

	if venue == bookkeeping.VenuePolymarket {
		res := c.poly.PlaceFOK(ctx, marketID, side, px, qty)
		return res, res.FilledQty
	}

	orderID, err := c.kalshi.PlaceIOC(ctx, marketID, side, px, qty)
	if err != nil {
		return OrderResult{Status: FillRejected, Err: err}, 0
	}
	res := c.kalshi.Await(ctx, orderID)
	if res.Status == FillNone || res.Status == FillTimedOut {
		_ = c.kalshi.Cancel(context.Background(), orderID)
	}
	return res, res.FilledQty
}
