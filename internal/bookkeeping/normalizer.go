package bookkeeping

import (
	"sort"
	"sync"
	"time"

	"github.com/caesar-terminal/arbiter/internal/money"
	"go.uber.org/zap"
)

// Ladder identifies which of the four price ladders a Delta mutates.
type Ladder uint8

const (
	LadderYesBid Ladder = iota
	LadderNoBid
	LadderYesAsk
	LadderNoAsk
)

// Delta is a single price-level mutation delivered by a venue adapter.
// Kalshi only ever delivers LadderYesBid/LadderNoBid; Polymarket delivers
// all four natively.
type Delta struct {
	Venue    Venue
	MarketID string
	Seq      int64
	TS       time.Time
	Ladder   Ladder
	Price    money.Cents
	NewQty   money.Quantity // absolute resulting quantity at Price, 0 removes the level
}

// RawSnapshot is a full-book snapshot delivered by a venue adapter.
type RawSnapshot struct {
	Venue         Venue
	MarketID      string
	Seq           int64
	TS            time.Time
	IsProvisional bool
	YesBids       []BookLevel
	NoBids        []BookLevel
	// YesAsks/NoAsks are only meaningful for Polymarket; Kalshi snapshots
	// leave them empty and the Normalizer derives them synthetically.
	YesAsks []BookLevel
	NoAsks  []BookLevel
}

// bookState is the mutable internal representation: maps give O(1) delta
// application; the public OrderBook's sorted slices are materialized lazily
// on publish.
type bookState struct {
	venue         Venue
	marketID      string
	seq           int64
	ts            time.Time
	isProvisional bool

	yesBids map[money.Cents]money.Quantity
	noBids  map[money.Cents]money.Quantity
	yesAsks map[money.Cents]money.Quantity // native, Polymarket only
	noAsks  map[money.Cents]money.Quantity // native, Polymarket only
}

func newBookState(venue Venue, marketID string) *bookState {
	return &bookState{
		venue:    venue,
		marketID: marketID,
		yesBids:  make(map[money.Cents]money.Quantity),
		noBids:   make(map[money.Cents]money.Quantity),
		yesAsks:  make(map[money.Cents]money.Quantity),
		noAsks:   make(map[money.Cents]money.Quantity),
	}
}

// Normalizer maintains one OrderBook per (venue, market), applies deltas and
// snapshots in sequence order, reconstructs Kalshi's synthetic asks, and
// publishes a stable Snapshot token to the Strategy after every consistent
// update. Books flagged IsProvisional are held but never published.
type Normalizer struct {
	logger *zap.Logger

	mu     sync.Mutex
	states map[MarketKey]*bookState

	published chan Snapshot
}

// NewNormalizer creates a Normalizer. The returned Published channel must be
// drained by the Strategy engine.
func NewNormalizer(logger *zap.Logger) *Normalizer {
	return &Normalizer{
		logger:    logger,
		states:    make(map[MarketKey]*bookState),
		published: make(chan Snapshot, 4096),
	}
}

// Published returns the channel of stable, consistent book snapshots.
func (n *Normalizer) Published() <-chan Snapshot { return n.published }

// ApplySnapshot installs a full book snapshot, replacing any prior state for
// that market and resetting the sequence baseline.
func (n *Normalizer) ApplySnapshot(snap RawSnapshot) {
	key := MarketKey{Venue: snap.Venue, MarketID: snap.MarketID}

	st := newBookState(snap.Venue, snap.MarketID)
	st.seq = snap.Seq
	st.ts = snap.TS
	st.isProvisional = snap.IsProvisional
	for _, l := range snap.YesBids {
		st.yesBids[l.Price] = l.Qty
	}
	for _, l := range snap.NoBids {
		st.noBids[l.Price] = l.Qty
	}
	for _, l := range snap.YesAsks {
		st.yesAsks[l.Price] = l.Qty
	}
	for _, l := range snap.NoAsks {
		st.noAsks[l.Price] = l.Qty
	}

	n.mu.Lock()
	n.states[key] = st
	ob := n.materialize(st)
	n.mu.Unlock()

	n.publish(ob)
}

// Book materializes the current OrderBook for one market, with Kalshi
// synthetic asks reconstructed, or false if no consistent state is held.
// The Hedger reads live ask depth through this; the Strategy engine gets
// its books pushed through Published instead.
func (n *Normalizer) Book(venue Venue, marketID string) (OrderBook, bool) {
	key := MarketKey{Venue: venue, MarketID: marketID}
	n.mu.Lock()
	st, ok := n.states[key]
	if !ok {
		n.mu.Unlock()
		return OrderBook{}, false
	}
	ob := n.materialize(st)
	n.mu.Unlock()
	return ob, true
}

// Discard drops all in-flight state for a market, used when a sequence gap
// is detected and a resnapshot has been requested. Subsequent deltas for
// this market are rejected with ErrUnknownMarket until the next snapshot.
func (n *Normalizer) Discard(venue Venue, marketID string) {
	key := MarketKey{Venue: venue, MarketID: marketID}
	n.mu.Lock()
	delete(n.states, key)
	n.mu.Unlock()
}

// ApplyDelta applies a single price-level mutation. On a sequence gap the
// book is discarded and ErrSeqGap is returned; the caller must request a
// resnapshot. On success, for Kalshi bid-ladder deltas the opposing
// synthetic ask ladder is fully recomputed before publication.
func (n *Normalizer) ApplyDelta(d Delta) error {
	key := MarketKey{Venue: d.Venue, MarketID: d.MarketID}

	n.mu.Lock()
	st, ok := n.states[key]
	if !ok {
		n.mu.Unlock()
		return ErrUnknownMarket
	}

	if d.Seq <= st.seq {
		// Duplicate or out-of-order — ignore silently, not a gap.
		n.mu.Unlock()
		return nil
	}
	if d.Seq != st.seq+1 {
		delete(n.states, key)
		n.mu.Unlock()
		if n.logger != nil {
			n.logger.Warn("bookkeeping: sequence gap, discarding book",
				zap.String("venue", string(d.Venue)),
				zap.String("market", d.MarketID),
				zap.Int64("expected", st.seq+1),
				zap.Int64("got", d.Seq))
		}
		return ErrSeqGap
	}

	st.seq = d.Seq
	st.ts = d.TS
	applyLevel(ladderMap(st, d.Ladder), d.Price, d.NewQty)
	ob := n.materialize(st)
	n.mu.Unlock()

	n.publish(ob)
	return nil
}

func ladderMap(st *bookState, l Ladder) map[money.Cents]money.Quantity {
	switch l {
	case LadderYesBid:
		return st.yesBids
	case LadderNoBid:
		return st.noBids
	case LadderYesAsk:
		return st.yesAsks
	case LadderNoAsk:
		return st.noAsks
	}
	return nil
}

func applyLevel(m map[money.Cents]money.Quantity, price money.Cents, qty money.Quantity) {
	if qty <= 0 {
		delete(m, price)
		return
	}
	m[price] = qty
}

// publish validates the no-cross invariant and sends the materialized book
// downstream unless the market is provisional. The book is already a
// defensive copy, so subscribers never race the Normalizer's map state.
func (n *Normalizer) publish(ob OrderBook) {
	if err := ob.Validate(); err != nil {
		if n.logger != nil {
			n.logger.Warn("bookkeeping: rejecting crossed book, awaiting resnapshot",
				zap.String("venue", string(ob.Venue)),
				zap.String("market", ob.MarketID),
				zap.Error(err))
		}
		// A cross that no pending delta explains means the mirror is
		// corrupt; discard it so the feed adapter's next delta fails with
		// ErrUnknownMarket and forces a fresh snapshot.
		n.Discard(ob.Venue, ob.MarketID)
		return
	}

	if ob.IsProvisional {
		return
	}

	select {
	case n.published <- Snapshot{Book: ob, TS: ob.LastUpdateTS}:
	default:
		if n.logger != nil {
			n.logger.Error("bookkeeping: published channel full, dropping snapshot",
				zap.String("venue", string(ob.Venue)),
				zap.String("market", ob.MarketID))
		}
	}
}

// materialize builds the sorted public OrderBook from internal map state,
// reconstructing Kalshi's synthetic asks from the opposing bid ladders.
func (n *Normalizer) materialize(st *bookState) OrderBook {
	ob := OrderBook{
		Venue:         st.venue,
		MarketID:      st.marketID,
		LastUpdateSeq: st.seq,
		LastUpdateTS:  st.ts,
		IsProvisional: st.isProvisional,
		YesBids:       sortedDesc(st.yesBids),
		NoBids:        sortedDesc(st.noBids),
	}

	if st.venue == VenueKalshi {
		ob.YesAsks = syntheticAsks(st.noBids)
		ob.NoAsks = syntheticAsks(st.yesBids)
	} else {
		ob.YesAsks = sortedAsc(st.yesAsks)
		ob.NoAsks = sortedAsc(st.noAsks)
	}
	return ob
}

// syntheticAsks reconstructs a Kalshi ask ladder from the opposing bid
// ladder via the 1.00-reflection identity: Ask(px) = 1.00 - Bid(1.00-px),
// quantity equal to the opposing bid-level quantity. An empty opposing bid
// ladder yields no levels, which BestAsk reports as Inf.
func syntheticAsks(oppositeBids map[money.Cents]money.Quantity) []BookLevel {
	if len(oppositeBids) == 0 {
		return nil
	}
	levels := make([]BookLevel, 0, len(oppositeBids))
	for bidPrice, qty := range oppositeBids {
		levels = append(levels, BookLevel{Price: bidPrice.Reflect(), Qty: qty})
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i].Price < levels[j].Price })
	return levels
}

func sortedDesc(m map[money.Cents]money.Quantity) []BookLevel {
	out := make([]BookLevel, 0, len(m))
	for p, q := range m {
		out = append(out, BookLevel{Price: p, Qty: q})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	return out
}

func sortedAsc(m map[money.Cents]money.Quantity) []BookLevel {
	out := make([]BookLevel, 0, len(m))
	for p, q := range m {
		out = append(out, BookLevel{Price: p, Qty: q})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	return out
}
