package execution

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/caesar-terminal/arbiter/internal/bookkeeping"
	"github.com/caesar-terminal/arbiter/internal/legstate"
	"github.com/caesar-terminal/arbiter/internal/money"
	"github.com/caesar-terminal/arbiter/internal/risk"
	"github.com/caesar-terminal/arbiter/internal/strategy"
)

type fakePoly struct {
	result OrderResult
}

func (f fakePoly) PlaceFOK(ctx context.Context, marketID string, side bookkeeping.Side, px money.Cents, qty money.Quantity) OrderResult {
	return f.result
}

type fakeKalshi struct {
	placeErr error
	await    OrderResult
}

func (f fakeKalshi) PlaceIOC(ctx context.Context, marketID string, side bookkeeping.Side, px money.Cents, qty money.Quantity) (string, error) {
	if f.placeErr != nil {
		return "", f.placeErr
	}
	return "order-1", nil
}
func (f fakeKalshi) Await(ctx context.Context, orderID string) OrderResult { return f.await }
func (f fakeKalshi) Cancel(ctx context.Context, orderID string) error      { return nil }

type fakeMerger struct{ err error }

func (f fakeMerger) Merge(ctx context.Context, conditionID string, qty money.Quantity) error {
	return f.err
}

type fakeHedger struct{ outcome HedgeOutcome }

func (f fakeHedger) Hedge(ctx context.Context, req HedgeRequest) HedgeOutcome { return f.outcome }

func approvedDecision(qty money.Quantity, leg1Venue, leg2Venue bookkeeping.Venue) risk.Decision {
	return risk.Decision{
		Approved: true,
		Qty:      qty,
		ReservedPerVenue: map[bookkeeping.Venue]money.Cents{
			leg1Venue: 1000,
			leg2Venue: 1000,
		},
	}
}

func TestExecute_BothLegsFilled_PolymarketMerges(t *testing.T) {
	poly := fakePoly{result: OrderResult{Status: FillFull, FilledQty: 10, AvgPrice: 40}}
	balances := risk.NewBalances(map[bookkeeping.Venue]money.Cents{bookkeeping.VenuePolymarket: 10000})
	balances.Reserve(bookkeeping.VenuePolymarket, 2000)

	c := NewCoordinator(nil, poly, balances, legstate.NewOpenLegIndex(), fakeMerger{}, nil, DefaultTimeouts(), nil, nil)

	sig := strategy.ArbSignal{
		Leg1: strategy.Leg{Venue: bookkeeping.VenuePolymarket, MarketID: "m1", Side: bookkeeping.Yes, AskPrice: 40},
		Leg2: strategy.Leg{Venue: bookkeeping.VenuePolymarket, MarketID: "m1", Side: bookkeeping.No, AskPrice: 45},
	}
	dec := approvedDecision(10, bookkeeping.VenuePolymarket, bookkeeping.VenuePolymarket)
	dec.ReservedPerVenue = map[bookkeeping.Venue]money.Cents{bookkeeping.VenuePolymarket: 2000}

	final := c.Execute(context.Background(), sig, dec, "cond-1")
	if final != legstate.Merged {
		t.Fatalf("final state = %v, want Merged", final)
	}
	if got := balances.Free(bookkeeping.VenuePolymarket); got != 10000 {
		t.Fatalf("balance after merge = %v, want fully released to 10000", got)
	}
}

func TestExecute_Leg1Rejected_Aborts(t *testing.T) {
	kalshi := fakeKalshi{placeErr: nil, await: OrderResult{Status: FillRejected}}
	balances := risk.NewBalances(map[bookkeeping.Venue]money.Cents{bookkeeping.VenueKalshi: 10000, bookkeeping.VenuePolymarket: 10000})
	balances.Reserve(bookkeeping.VenueKalshi, 400)
	balances.Reserve(bookkeeping.VenuePolymarket, 550)

	c := NewCoordinator(kalshi, fakePoly{}, balances, legstate.NewOpenLegIndex(), nil, nil, DefaultTimeouts(), nil, nil)

	sig := strategy.ArbSignal{
		Leg1: strategy.Leg{Venue: bookkeeping.VenueKalshi, MarketID: "k1", Side: bookkeeping.Yes, AskPrice: 40},
		Leg2: strategy.Leg{Venue: bookkeeping.VenuePolymarket, MarketID: "p1", Side: bookkeeping.No, AskPrice: 45},
	}
	dec := risk.Decision{
		Approved: true, Qty: 10,
		ReservedPerVenue: map[bookkeeping.Venue]money.Cents{bookkeeping.VenueKalshi: 400, bookkeeping.VenuePolymarket: 550},
	}

	final := c.Execute(context.Background(), sig, dec, "")
	if final != legstate.Aborted {
		t.Fatalf("final state = %v, want Aborted", final)
	}
	if got := balances.Free(bookkeeping.VenueKalshi); got != 10000 {
		t.Fatalf("kalshi balance = %v, want released to 10000", got)
	}
}

func TestExecute_Leg2Rejected_InvokesHedger(t *testing.T) {
	kalshi := fakeKalshi{await: OrderResult{Status: FillFull, FilledQty: 10}}
	poly := fakePoly{result: OrderResult{Status: FillRejected}}
	balances := risk.NewBalances(map[bookkeeping.Venue]money.Cents{bookkeeping.VenueKalshi: 10000, bookkeeping.VenuePolymarket: 10000})
	hedger := fakeHedger{outcome: HedgeOutcome{Neutralized: true, FilledQty: 10}}

	c := NewCoordinator(kalshi, poly, balances, legstate.NewOpenLegIndex(), nil, hedger, DefaultTimeouts(), nil, nil)

	sig := strategy.ArbSignal{
		Leg1: strategy.Leg{Venue: bookkeeping.VenueKalshi, MarketID: "k1", Side: bookkeeping.Yes, AskPrice: 40},
		Leg2: strategy.Leg{Venue: bookkeeping.VenuePolymarket, MarketID: "p1", Side: bookkeeping.No, AskPrice: 45},
	}
	dec := risk.Decision{
		Approved: true, Qty: 10,
		ReservedPerVenue: map[bookkeeping.Venue]money.Cents{bookkeeping.VenueKalshi: 400, bookkeeping.VenuePolymarket: 550},
	}

	final := c.Execute(context.Background(), sig, dec, "")
	if final != legstate.Merged {
		t.Fatalf("final state = %v, want Merged (hedge neutralized)", final)
	}
}

type fakeRecorder struct {
	rec *TradeRecord
	err error
}

func (f *fakeRecorder) RecordTrade(ctx context.Context, rec *TradeRecord) error {
	f.rec = rec
	return f.err
}

func TestExecute_RecordsTradeOnPolymarketMerge(t *testing.T) {
	poly := fakePoly{result: OrderResult{Status: FillFull, FilledQty: 10, AvgPrice: 40}}
	balances := risk.NewBalances(map[bookkeeping.Venue]money.Cents{bookkeeping.VenuePolymarket: 10000})
	balances.Reserve(bookkeeping.VenuePolymarket, 2000)

	recorder := &fakeRecorder{}
	c := NewCoordinator(nil, poly, balances, legstate.NewOpenLegIndex(), fakeMerger{}, nil, DefaultTimeouts(), nil, nil).
		WithRecorder(recorder)

	sig := strategy.ArbSignal{
		Leg1:               strategy.Leg{Venue: bookkeeping.VenuePolymarket, MarketID: "m1", Side: bookkeeping.Yes, AskPrice: 40},
		Leg2:               strategy.Leg{Venue: bookkeeping.VenuePolymarket, MarketID: "m1", Side: bookkeeping.No, AskPrice: 45},
		NetEdgePerContract: 5,
	}
	dec := approvedDecision(10, bookkeeping.VenuePolymarket, bookkeeping.VenuePolymarket)
	dec.ReservedPerVenue = map[bookkeeping.Venue]money.Cents{bookkeeping.VenuePolymarket: 2000}

	final := c.Execute(context.Background(), sig, dec, "cond-1")
	if final != legstate.Merged {
		t.Fatalf("final state = %v, want Merged", final)
	}

	if recorder.rec == nil {
		t.Fatal("expected a TradeRecord to be recorded")
	}
	if recorder.rec.FinalState != legstate.Merged {
		t.Fatalf("recorded FinalState = %v, want Merged", recorder.rec.FinalState)
	}
	if recorder.rec.Leg1FilledQty != 10 || recorder.rec.Leg2FilledQty != 10 {
		t.Fatalf("recorded filled qtys = %v/%v, want 10/10", recorder.rec.Leg1FilledQty, recorder.rec.Leg2FilledQty)
	}
	if recorder.rec.MergeTxHash != "condition:cond-1" {
		t.Fatalf("recorded MergeTxHash = %q, want %q", recorder.rec.MergeTxHash, "condition:cond-1")
	}
	if recorder.rec.RealizedPnL != 50 {
		t.Fatalf("recorded RealizedPnL = %v, want 50", recorder.rec.RealizedPnL)
	}
}

func TestExecute_RecorderErrorDoesNotAffectFinalState(t *testing.T) {
	kalshi := fakeKalshi{await: OrderResult{Status: FillFull, FilledQty: 10}}
	poly := fakePoly{result: OrderResult{Status: FillRejected}}
	balances := risk.NewBalances(map[bookkeeping.Venue]money.Cents{bookkeeping.VenueKalshi: 10000, bookkeeping.VenuePolymarket: 10000})
	hedger := fakeHedger{outcome: HedgeOutcome{Neutralized: true, FilledQty: 10}}
	recorder := &fakeRecorder{err: errors.New("db unavailable")}

	c := NewCoordinator(kalshi, poly, balances, legstate.NewOpenLegIndex(), nil, hedger, DefaultTimeouts(), nil, nil).
		WithRecorder(recorder)

	sig := strategy.ArbSignal{
		Leg1: strategy.Leg{Venue: bookkeeping.VenueKalshi, MarketID: "k1", Side: bookkeeping.Yes, AskPrice: 40},
		Leg2: strategy.Leg{Venue: bookkeeping.VenuePolymarket, MarketID: "p1", Side: bookkeeping.No, AskPrice: 45},
	}
	dec := risk.Decision{
		Approved: true, Qty: 10,
		ReservedPerVenue: map[bookkeeping.Venue]money.Cents{bookkeeping.VenueKalshi: 400, bookkeeping.VenuePolymarket: 550},
	}

	final := c.Execute(context.Background(), sig, dec, "")
	if final != legstate.Merged {
		t.Fatalf("final state = %v, want Merged despite recorder error", final)
	}
	if recorder.rec == nil {
		t.Fatal("expected RecordTrade to still be called even though it errors")
	}
}

func TestExecute_Leg1DustFill_AbortsInsteadOfHedging(t *testing.T) {
	kalshi := fakeKalshi{await: OrderResult{Status: FillPartial, FilledQty: 2}}
	balances := risk.NewBalances(map[bookkeeping.Venue]money.Cents{bookkeeping.VenueKalshi: 10000, bookkeeping.VenuePolymarket: 10000})
	balances.Reserve(bookkeeping.VenueKalshi, 400)
	balances.Reserve(bookkeeping.VenuePolymarket, 550)
	hedger := fakeHedger{outcome: HedgeOutcome{Neutralized: true, FilledQty: 2}}
	recorder := &fakeRecorder{}

	c := NewCoordinator(kalshi, fakePoly{}, balances, legstate.NewOpenLegIndex(), nil, hedger, DefaultTimeouts(), nil, nil).
		WithRecorder(recorder).
		WithMinViableQty(5)

	sig := strategy.ArbSignal{
		Leg1: strategy.Leg{Venue: bookkeeping.VenueKalshi, MarketID: "k1", Side: bookkeeping.Yes, AskPrice: 40},
		Leg2: strategy.Leg{Venue: bookkeeping.VenuePolymarket, MarketID: "p1", Side: bookkeeping.No, AskPrice: 45},
	}
	dec := risk.Decision{
		Approved: true, Qty: 10,
		ReservedPerVenue: map[bookkeeping.Venue]money.Cents{bookkeeping.VenueKalshi: 400, bookkeeping.VenuePolymarket: 550},
	}

	final := c.Execute(context.Background(), sig, dec, "")
	if final != legstate.Aborted {
		t.Fatalf("final state = %v, want Aborted for dust fill", final)
	}
	if got := balances.Free(bookkeeping.VenueKalshi); got != 10000 {
		t.Fatalf("kalshi balance = %v, want released", got)
	}
	if recorder.rec == nil || recorder.rec.Leg1FilledQty != 2 {
		t.Fatalf("dust fill not recorded: %+v", recorder.rec)
	}
}

func TestExecute_Leg1PartialAboveFloor_ShrinksLeg2(t *testing.T) {
	kalshi := fakeKalshi{await: OrderResult{Status: FillPartial, FilledQty: 7}}
	poly := &capturingPoly{result: OrderResult{Status: FillFull, FilledQty: 7, AvgPrice: 45}}
	balances := risk.NewBalances(map[bookkeeping.Venue]money.Cents{bookkeeping.VenueKalshi: 10000, bookkeeping.VenuePolymarket: 10000})

	c := NewCoordinator(kalshi, poly, balances, legstate.NewOpenLegIndex(), nil, nil, DefaultTimeouts(), nil, nil).
		WithMinViableQty(5)

	sig := strategy.ArbSignal{
		Leg1: strategy.Leg{Venue: bookkeeping.VenueKalshi, MarketID: "k1", Side: bookkeeping.Yes, AskPrice: 40},
		Leg2: strategy.Leg{Venue: bookkeeping.VenuePolymarket, MarketID: "p1", Side: bookkeeping.No, AskPrice: 45},
	}
	dec := risk.Decision{
		Approved: true, Qty: 10,
		ReservedPerVenue: map[bookkeeping.Venue]money.Cents{bookkeeping.VenueKalshi: 400, bookkeeping.VenuePolymarket: 550},
	}

	final := c.Execute(context.Background(), sig, dec, "")
	if final != legstate.Merged {
		t.Fatalf("final state = %v, want Merged", final)
	}
	if poly.qty != 7 {
		t.Fatalf("leg2 qty = %d, want shrunk to 7", poly.qty)
	}
}

type capturingPoly struct {
	result OrderResult
	qty    money.Quantity
}

func (c *capturingPoly) PlaceFOK(ctx context.Context, marketID string, side bookkeeping.Side, px money.Cents, qty money.Quantity) OrderResult {
	c.qty = qty
	res := c.result
	if res.FilledQty > qty {
		res.FilledQty = qty
	}
	return res
}

type blockingHedger struct {
	entered chan struct{}
	release chan struct{}
}

func (b blockingHedger) Hedge(ctx context.Context, req HedgeRequest) HedgeOutcome {
	close(b.entered)
	<-b.release
	return HedgeOutcome{Neutralized: true, FilledQty: req.UnhedgedQty}
}

func TestDrainWaitsForInflightArbs(t *testing.T) {
	kalshi := fakeKalshi{await: OrderResult{Status: FillFull, FilledQty: 5}}
	poly := fakePoly{result: OrderResult{Status: FillRejected}}
	balances := risk.NewBalances(map[bookkeeping.Venue]money.Cents{bookkeeping.VenueKalshi: 10000, bookkeeping.VenuePolymarket: 10000})
	hedger := blockingHedger{entered: make(chan struct{}), release: make(chan struct{})}

	c := NewCoordinator(kalshi, poly, balances, legstate.NewOpenLegIndex(), nil, hedger, DefaultTimeouts(), nil, nil)

	sig := strategy.ArbSignal{
		Leg1: strategy.Leg{Venue: bookkeeping.VenueKalshi, MarketID: "k1", Side: bookkeeping.Yes, AskPrice: 40},
		Leg2: strategy.Leg{Venue: bookkeeping.VenuePolymarket, MarketID: "p1", Side: bookkeeping.No, AskPrice: 45},
	}
	dec := risk.Decision{
		Approved: true, Qty: 5,
		ReservedPerVenue: map[bookkeeping.Venue]money.Cents{bookkeeping.VenueKalshi: 200, bookkeeping.VenuePolymarket: 250},
	}

	done := make(chan legstate.State, 1)
	go func() { done <- c.Execute(context.Background(), sig, dec, "") }()
	<-hedger.entered

	// While the hedger blocks, Drain must time out.
	shortCtx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := c.Drain(shortCtx); err == nil {
		t.Fatal("expected Drain to time out while an arb is in flight")
	}

	close(hedger.release)
	<-done

	if err := c.Drain(context.Background()); err != nil {
		t.Fatalf("Drain after completion: %v", err)
	}
}
