package adapter

import (
	"context"
	"sync"
	"time"

	"github.com/caesar-terminal/arbiter/internal/bookkeeping"
	"github.com/caesar-terminal/arbiter/internal/money"
)

// MarketPair links the same real-world event across the two venues — the
// operator-curated whitelist entry required before any cross-platform
// pairing is considered. Shared by UnifiedBook's coarse preview and the
// Registry's fee-aware strategy.MarketInfo lookup.
type MarketPair struct {
	Name           string // human-readable label, e.g. "BTC > $100k"
	PolyMarketID   string // Polymarket market / condition ID
	KalshiMarketID string // Kalshi market ticker
}

// CrossedBook is emitted when one venue's Yes bid crosses the other's Yes
// ask for a paired market.
type CrossedBook struct {
	Pair        MarketPair
	BidVenue    bookkeeping.Venue // venue with the higher bid
	AskVenue    bookkeeping.Venue // venue with the lower ask
	Bid         money.Cents       // best Yes bid on the bid venue
	Ask         money.Cents       // best Yes ask on the ask venue
	SpreadCents money.Cents       // bid − ask (positive = crossed)
	Timestamp   time.Time
}

// venueTop holds the latest best Yes bid/ask snapshot for one venue.
type venueTop struct {
	BestBid money.Cents
	BestAsk money.Cents
	HasBid  bool
	HasAsk  bool
	Updated time.Time
}

// pairState is the merged view for a single market pair.
type pairState struct {
	Pair   MarketPair
	Poly   venueTop
	Kalshi venueTop
}

// UnifiedBook merges published snapshots from both venues for paired
// markets and flags crossed books in real time. This is a coarse, fee-blind
// operator preview over top-of-book (dashboards, alerting) — the
// authoritative, fee- and gas-aware negative-spread detector that gates
// order placement is strategy.Engine. Everything here stays in exact
// basis-cents; the only thing it omits is the cost model.
type UnifiedBook struct {
	bc        *Broadcaster
	threshold money.Cents // a crossed spread must exceed this to emit an event

	mu     sync.RWMutex
	states map[string]*pairState // keyed by MarketPair.Name

	events chan CrossedBook
}

// NewUnifiedBook creates a UnifiedBook. A CrossedBook is emitted only when
// the spread (bid − ask) is strictly greater than threshold; 0 emits on any
// crossed book.
func NewUnifiedBook(bc *Broadcaster, threshold money.Cents) *UnifiedBook {
	return &UnifiedBook{
		bc:        bc,
		threshold: threshold,
		states:    make(map[string]*pairState),
		events:    make(chan CrossedBook, 256),
	}
}

// Events returns the channel of detected crossed books.
func (ub *UnifiedBook) Events() <-chan CrossedBook {
	return ub.events
}

// AddPair registers a market pair. Must be called before Run.
func (ub *UnifiedBook) AddPair(pair MarketPair) {
	ub.mu.Lock()
	ub.states[pair.Name] = &pairState{Pair: pair}
	ub.mu.Unlock()
}

// Snapshot returns the current merged state for a pair, or false if not found.
func (ub *UnifiedBook) Snapshot(pairName string) (pairState, bool) {
	ub.mu.RLock()
	defer ub.mu.RUnlock()
	ps, ok := ub.states[pairName]
	if !ok {
		return pairState{}, false
	}
	return *ps, true
}

// Run subscribes to both venues for every registered pair and processes
// snapshots. It blocks until ctx is cancelled.
func (ub *UnifiedBook) Run(ctx context.Context) {
	ub.mu.RLock()
	pairs := make([]MarketPair, 0, len(ub.states))
	for _, ps := range ub.states {
		pairs = append(pairs, ps.Pair)
	}
	ub.mu.RUnlock()

	var wg sync.WaitGroup

	for _, pair := range pairs {
		polyCh := ub.bc.Subscribe(bookkeeping.VenuePolymarket, pair.PolyMarketID)
		kalshiCh := ub.bc.Subscribe(bookkeeping.VenueKalshi, pair.KalshiMarketID)

		wg.Add(2)
		go func(p MarketPair, ch <-chan bookkeeping.Snapshot) {
			defer wg.Done()
			ub.consumeVenue(ctx, p, ch)
		}(pair, polyCh)

		go func(p MarketPair, ch <-chan bookkeeping.Snapshot) {
			defer wg.Done()
			ub.consumeVenue(ctx, p, ch)
		}(pair, kalshiCh)
	}

	wg.Wait()
}

func (ub *UnifiedBook) consumeVenue(ctx context.Context, pair MarketPair, ch <-chan bookkeeping.Snapshot) {
	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-ch:
			if !ok {
				return
			}
			ub.applySnapshot(pair, snap)
		}
	}
}

func (ub *UnifiedBook) applySnapshot(pair MarketPair, snap bookkeeping.Snapshot) {
	top := venueTop{Updated: snap.TS}
	top.BestBid, _, top.HasBid = snap.Book.BestBid(bookkeeping.Yes)
	if ask, _, ok := snap.Book.BestAsk(bookkeeping.Yes); ok && !ask.IsInf() {
		top.BestAsk = ask
		top.HasAsk = true
	}

	ub.mu.Lock()
	ps := ub.states[pair.Name]
	switch snap.Book.Venue {
	case bookkeeping.VenuePolymarket:
		ps.Poly = top
	case bookkeeping.VenueKalshi:
		ps.Kalshi = top
	}
	poly := ps.Poly
	kalshi := ps.Kalshi
	ub.mu.Unlock()

	ub.checkCrossed(pair, poly, kalshi)
}

func (ub *UnifiedBook) checkCrossed(pair MarketPair, poly, kalshi venueTop) {
	// Direction 1: Polymarket bid over Kalshi ask.
	if poly.HasBid && kalshi.HasAsk {
		spread := poly.BestBid - kalshi.BestAsk
		if spread > ub.threshold {
			ub.emit(CrossedBook{
				Pair:        pair,
				BidVenue:    bookkeeping.VenuePolymarket,
				AskVenue:    bookkeeping.VenueKalshi,
				Bid:         poly.BestBid,
				Ask:         kalshi.BestAsk,
				SpreadCents: spread,
				Timestamp:   time.Now(),
			})
		}
	}

	// Direction 2: Kalshi bid over Polymarket ask.
	if kalshi.HasBid && poly.HasAsk {
		spread := kalshi.BestBid - poly.BestAsk
		if spread > ub.threshold {
			ub.emit(CrossedBook{
				Pair:        pair,
				BidVenue:    bookkeeping.VenueKalshi,
				AskVenue:    bookkeeping.VenuePolymarket,
				Bid:         kalshi.BestBid,
				Ask:         poly.BestAsk,
				SpreadCents: spread,
				Timestamp:   time.Now(),
			})
		}
	}
}

func (ub *UnifiedBook) emit(ev CrossedBook) {
	select {
	case ub.events <- ev:
	default:
		// Events channel full, drop to keep the hot path moving.
	}
}
