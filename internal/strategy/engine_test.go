package strategy

import (
	"testing"
	"time"

	"github.com/caesar-terminal/arbiter/internal/bookkeeping"
	"github.com/caesar-terminal/arbiter/internal/feemodel"
	"github.com/caesar-terminal/arbiter/internal/money"
)

type staticInfo struct {
	tags map[bookkeeping.MarketKey]feemodel.MarketTags
}

func (s staticInfo) Tags(venue bookkeeping.Venue, marketID string) feemodel.MarketTags {
	return s.tags[bookkeeping.MarketKey{Venue: venue, MarketID: marketID}]
}

func (s staticInfo) FeeModel(venue bookkeeping.Venue, marketID string) feemodel.Model {
	return feemodel.Model{Venue: venue, Tags: s.Tags(venue, marketID), Gas: feemodel.ZeroGasOracle{}}
}

func newTestEngine(cfg Config, wl *CrossVenueWhitelist) *Engine {
	info := staticInfo{tags: map[bookkeeping.MarketKey]feemodel.MarketTags{}}
	return NewEngine(cfg, info, wl, nil, nil)
}

func book(venue bookkeeping.Venue, marketID string, yesAsks, noAsks []bookkeeping.BookLevel) bookkeeping.OrderBook {
	return bookkeeping.OrderBook{Venue: venue, MarketID: marketID, YesAsks: yesAsks, NoAsks: noAsks}
}

func TestEvaluateIntraMarket_EmitsOnNegativeSpread(t *testing.T) {
	e := newTestEngine(Config{BaselineThresholdCents: 2, CryptoThresholdCents: 4, CapacityCapQty: 1000}, nil)

	ob := book(bookkeeping.VenuePolymarket, "poly-1",
		[]bookkeeping.BookLevel{{Price: 40, Qty: 100}},
		[]bookkeeping.BookLevel{{Price: 45, Qty: 100}},
	)
	e.evaluateIntraMarket(ob)

	select {
	case sig := <-e.Signals():
		if sig.MaxQty != 100 {
			t.Fatalf("MaxQty = %v, want 100", sig.MaxQty)
		}
		if sig.NetEdgePerContract < 2 {
			t.Fatalf("NetEdgePerContract = %v, want >= 2", sig.NetEdgePerContract)
		}
		if sig.CrossPlatform {
			t.Fatal("intra-market signal must not be marked cross-platform")
		}
	default:
		t.Fatal("expected a signal, got none")
	}
}

func TestEvaluateIntraMarket_NoSignalWhenBelowThreshold(t *testing.T) {
	e := newTestEngine(Config{BaselineThresholdCents: 2, CryptoThresholdCents: 4, CapacityCapQty: 1000}, nil)

	ob := book(bookkeeping.VenuePolymarket, "poly-1",
		[]bookkeeping.BookLevel{{Price: 49, Qty: 100}},
		[]bookkeeping.BookLevel{{Price: 50, Qty: 100}},
	)
	e.evaluateIntraMarket(ob)

	select {
	case sig := <-e.Signals():
		t.Fatalf("expected no signal, got %+v", sig)
	default:
	}
}

func TestEvaluatePair_GreedyWalkStopsBeforeUnprofitableLevel(t *testing.T) {
	e := newTestEngine(Config{BaselineThresholdCents: 2, CryptoThresholdCents: 4, CapacityCapQty: 10000}, nil)

	// Level 1: 40+45=85, edge 15 (profitable). Level 2: 46+46=92, edge 8
	// (still profitable). Level 3: 49+50=99, edge 1 (below threshold) -
	// the walk must stop accumulating at level 2's cumulative quantity.
	asks1 := []bookkeeping.BookLevel{{Price: 40, Qty: 10}, {Price: 46, Qty: 10}, {Price: 49, Qty: 10}}
	asks2 := []bookkeeping.BookLevel{{Price: 45, Qty: 10}, {Price: 46, Qty: 10}, {Price: 50, Qty: 10}}

	model := feemodel.Model{Venue: bookkeeping.VenuePolymarket, Gas: feemodel.ZeroGasOracle{}}
	sig, ok := e.evaluatePair(
		Leg{Venue: bookkeeping.VenuePolymarket, MarketID: "m"},
		Leg{Venue: bookkeeping.VenuePolymarket, MarketID: "m"},
		asks1, asks2, model, model, feemodel.MarketTags{}, false,
	)
	if !ok {
		t.Fatal("expected a profitable signal")
	}
	if sig.MaxQty != 20 {
		t.Fatalf("MaxQty = %v, want 20 (stops before the unprofitable third level)", sig.MaxQty)
	}
}

func TestEvaluateCrossPlatform_RequiresWhitelist(t *testing.T) {
	wl := NewCrossVenueWhitelist([]WhitelistEntry{{KalshiMarket: "K1", PolyMarket: "P1"}})
	e := newTestEngine(Config{BaselineThresholdCents: 2, CryptoThresholdCents: 4, CapacityCapQty: 1000}, wl)

	kalshiBook := book(bookkeeping.VenueKalshi, "K1",
		[]bookkeeping.BookLevel{{Price: 40, Qty: 50}},
		[]bookkeeping.BookLevel{{Price: 50, Qty: 50}},
	)
	polyBook := book(bookkeeping.VenuePolymarket, "P1",
		[]bookkeeping.BookLevel{{Price: 55, Qty: 50}},
		[]bookkeeping.BookLevel{{Price: 40, Qty: 50}},
	)

	e.onSnapshot(bookkeeping.Snapshot{Book: kalshiBook, TS: time.Now()})
	// Drain the intra-market signal from the Kalshi book itself (40+50=90,
	// edge 6 after Kalshi's 2c+2c fees) before inspecting the cross-platform
	// pairing.
	<-e.Signals()

	e.onSnapshot(bookkeeping.Snapshot{Book: polyBook, TS: time.Now()})

	found := false
	for i := 0; i < 4; i++ {
		select {
		case sig := <-e.Signals():
			if sig.CrossPlatform {
				found = true
			}
		default:
		}
	}
	if !found {
		t.Fatal("expected a cross-platform signal once both whitelisted markets are known")
	}
}

func TestEvaluateCrossPlatform_NoWhitelistNoSignal(t *testing.T) {
	e := newTestEngine(Config{BaselineThresholdCents: 2, CryptoThresholdCents: 4, CapacityCapQty: 1000}, nil)

	kalshiBook := book(bookkeeping.VenueKalshi, "K1", nil, nil)
	e.onSnapshot(bookkeeping.Snapshot{Book: kalshiBook, TS: time.Now()})

	select {
	case sig := <-e.Signals():
		t.Fatalf("expected no signal without a whitelist, got %+v", sig)
	default:
	}
}

func TestArbSignal_RawSpread(t *testing.T) {
	sig := ArbSignal{Leg1: Leg{AskPrice: 40}, Leg2: Leg{AskPrice: 45}}
	if got := sig.RawSpread(); got != money.Cents(15) {
		t.Fatalf("RawSpread = %v, want 15", got)
	}
}
