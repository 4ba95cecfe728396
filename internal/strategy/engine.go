package strategy

import (
	"context"
	"sync"
	"time"

	"github.com/caesar-terminal/arbiter/internal/bookkeeping"
	"github.com/caesar-terminal/arbiter/internal/feemodel"
	"github.com/caesar-terminal/arbiter/internal/money"
	"go.uber.org/zap"
)

// MarketInfo supplies the per-market metadata the engine needs to price fees
// and pick a threshold: tags (crypto/short-duration) and a ready-to-use fee
// Model. Callers typically back this with a config-seeded registry plus the
// shared gas oracle.
type MarketInfo interface {
	Tags(venue bookkeeping.Venue, marketID string) feemodel.MarketTags
	FeeModel(venue bookkeeping.Venue, marketID string) feemodel.Model
}

// Metrics is the narrow set of counters the engine reports through; nil is a
// valid no-op implementation.
type Metrics interface {
	SignalEmitted(crossPlatform bool)
	SignalSuppressed(reason string)
}

type noopMetrics struct{}

func (noopMetrics) SignalEmitted(bool)    {}
func (noopMetrics) SignalSuppressed(string) {}

// Config holds the threshold and sizing policy for the engine.
type Config struct {
	BaselineThresholdCents int64
	CryptoThresholdCents   int64
	// CapacityCapQty bounds the quantity considered for any single signal,
	// independent of ladder depth; the Risk engine applies its own caps
	// downstream, this is strictly a detection-side sanity bound.
	CapacityCapQty money.Quantity
}

// Engine consumes normalized book snapshots and emits ArbSignals.
type Engine struct {
	cfg       Config
	info      MarketInfo
	whitelist *CrossVenueWhitelist
	logger    *zap.Logger
	metrics   Metrics

	mu     sync.RWMutex
	latest map[bookkeeping.MarketKey]bookkeeping.OrderBook

	signals chan ArbSignal
}

// NewEngine constructs an Engine. whitelist may be nil, in which case no
// cross-platform pairings are ever considered.
func NewEngine(cfg Config, info MarketInfo, whitelist *CrossVenueWhitelist, logger *zap.Logger, metrics Metrics) *Engine {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Engine{
		cfg:       cfg,
		info:      info,
		whitelist: whitelist,
		logger:    logger,
		metrics:   metrics,
		latest:    make(map[bookkeeping.MarketKey]bookkeeping.OrderBook),
		signals:   make(chan ArbSignal, 1024),
	}
}

// Signals returns the channel of emitted ArbSignals, consumed by Risk.
func (e *Engine) Signals() <-chan ArbSignal { return e.signals }

// Run drains snapshots until ctx is cancelled or the channel closes. Each
// snapshot update triggers re-evaluation of that market's intra-market pair
// and any whitelisted cross-platform pairs touching it.
func (e *Engine) Run(ctx context.Context, snapshots <-chan bookkeeping.Snapshot) {
	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-snapshots:
			if !ok {
				return
			}
			e.onSnapshot(snap)
		}
	}
}

func (e *Engine) onSnapshot(snap bookkeeping.Snapshot) {
	key := bookkeeping.MarketKey{Venue: snap.Book.Venue, MarketID: snap.Book.MarketID}

	e.mu.Lock()
	e.latest[key] = snap.Book
	e.mu.Unlock()

	e.evaluateIntraMarket(snap.Book)
	e.evaluateCrossPlatform(key)
}

// evaluateIntraMarket checks a single market's own Yes ask against its own No
// ask — the common case on both venues, and the only case on Kalshi once
// synthetic asks are reconstructed.
func (e *Engine) evaluateIntraMarket(ob bookkeeping.OrderBook) {
	tags := e.info.Tags(ob.Venue, ob.MarketID)
	model := e.info.FeeModel(ob.Venue, ob.MarketID)

	sig, ok := e.evaluatePair(
		Leg{Venue: ob.Venue, MarketID: ob.MarketID, Side: bookkeeping.Yes},
		Leg{Venue: ob.Venue, MarketID: ob.MarketID, Side: bookkeeping.No},
		ob.YesAsks, ob.NoAsks,
		model, model, tags, false,
	)
	if ok {
		e.emit(sig)
	}
}

// evaluateCrossPlatform checks every whitelisted partner of the market that
// just updated, in both combinations (Yes here + No there, No here + Yes
// there) since the two venues may phrase the same event's sides differently.
func (e *Engine) evaluateCrossPlatform(updated bookkeeping.MarketKey) {
	if e.whitelist == nil {
		return
	}

	var partners []bookkeeping.MarketKey
	switch updated.Venue {
	case bookkeeping.VenueKalshi:
		for _, p := range e.whitelist.PartnersOfKalshi(updated.MarketID) {
			partners = append(partners, bookkeeping.MarketKey{Venue: bookkeeping.VenuePolymarket, MarketID: p})
		}
	case bookkeeping.VenuePolymarket:
		for _, p := range e.whitelist.PartnersOfPoly(updated.MarketID) {
			partners = append(partners, bookkeeping.MarketKey{Venue: bookkeeping.VenueKalshi, MarketID: p})
		}
	}

	for _, partner := range partners {
		e.mu.RLock()
		a, aok := e.latest[updated]
		b, bok := e.latest[partner]
		e.mu.RUnlock()
		if !aok || !bok {
			continue
		}
		e.evaluateCrossPair(a, b)
	}
}

func (e *Engine) evaluateCrossPair(a, b bookkeeping.OrderBook) {
	aModel := e.info.FeeModel(a.Venue, a.MarketID)
	bModel := e.info.FeeModel(b.Venue, b.MarketID)
	aTags := e.info.Tags(a.Venue, a.MarketID)
	bTags := e.info.Tags(b.Venue, b.MarketID)
	tags := mergeTags(aTags, bTags)

	// Combo 1: buy Yes on a, buy No on b.
	if sig, ok := e.evaluatePair(
		Leg{Venue: a.Venue, MarketID: a.MarketID, Side: bookkeeping.Yes},
		Leg{Venue: b.Venue, MarketID: b.MarketID, Side: bookkeeping.No},
		a.YesAsks, b.NoAsks,
		aModel, bModel, tags, true,
	); ok {
		e.emit(sig)
	}

	// Combo 2: buy No on a, buy Yes on b.
	if sig, ok := e.evaluatePair(
		Leg{Venue: a.Venue, MarketID: a.MarketID, Side: bookkeeping.No},
		Leg{Venue: b.Venue, MarketID: b.MarketID, Side: bookkeeping.Yes},
		a.NoAsks, b.YesAsks,
		aModel, bModel, tags, true,
	); ok {
		e.emit(sig)
	}
}

func mergeTags(a, b feemodel.MarketTags) feemodel.MarketTags {
	return feemodel.MarketTags{
		IsCrypto:             a.IsCrypto || b.IsCrypto,
		IsShortDuration:      a.IsShortDuration || b.IsShortDuration,
		DynamicFeeCeilingBps: maxInt64(a.DynamicFeeCeilingBps, b.DynamicFeeCeilingBps),
	}
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

// evaluatePair walks matching ladder depth between two ask ladders (leg1's
// and leg2's) and returns the largest monotone-profitable quantity: the
// greedy walk accumulates quantity level by level, in increasing price order,
// and stops at the first level pair whose own per-contract net edge is below
// threshold — it never crosses into a level that turns the trade
// unprofitable.
func (e *Engine) evaluatePair(
	leg1, leg2 Leg,
	asks1, asks2 []bookkeeping.BookLevel,
	model1, model2 feemodel.Model,
	tags feemodel.MarketTags,
	crossPlatform bool,
) (ArbSignal, bool) {
	if len(asks1) == 0 || len(asks2) == 0 {
		e.metrics.SignalSuppressed("empty_ladder")
		return ArbSignal{}, false
	}

	threshold := feemodel.Threshold(tags, crossPlatform, e.cfg.BaselineThresholdCents, e.cfg.CryptoThresholdCents)

	var bestQty money.Quantity
	var bestFee, bestGas, bestEdge money.Cents
	var bestPx1, bestPx2 money.Cents

	remaining1 := make([]money.Quantity, len(asks1))
	for idx, lvl := range asks1 {
		remaining1[idx] = lvl.Qty
	}
	remaining2 := make([]money.Quantity, len(asks2))
	for idx, lvl := range asks2 {
		remaining2[idx] = lvl.Qty
	}

	i, j := 0, 0
	var cumQty money.Quantity
	for i < len(asks1) && j < len(asks2) {
		if e.cfg.CapacityCapQty > 0 && cumQty >= e.cfg.CapacityCapQty {
			break
		}

		px1, px2 := asks1[i].Price, asks2[j].Price
		chunk := remaining1[i]
		if remaining2[j] < chunk {
			chunk = remaining2[j]
		}
		if e.cfg.CapacityCapQty > 0 && cumQty+chunk > e.cfg.CapacityCapQty {
			chunk = e.cfg.CapacityCapQty - cumQty
		}
		if chunk <= 0 {
			break
		}

		fee1, gas1, err1 := model1.FeeAndGasPerContract(context.Background(), chunk, px1)
		fee2, gas2, err2 := model2.FeeAndGasPerContract(context.Background(), chunk, px2)
		if err1 != nil || err2 != nil {
			e.metrics.SignalSuppressed("fee_model_error")
			break
		}

		feePerContract := fee1 + fee2
		gasPerContract := gas1 + gas2
		edge := 100 - px1 - px2 - feePerContract - gasPerContract

		if edge < threshold {
			// Deeper levels only get worse as price walks away from the
			// touch; stop the greedy walk here.
			break
		}

		cumQty += chunk
		bestQty = cumQty
		bestFee = feePerContract
		bestGas = gasPerContract
		bestEdge = edge
		bestPx1, bestPx2 = px1, px2

		remaining1[i] -= chunk
		remaining2[j] -= chunk
		if remaining1[i] == 0 {
			i++
		}
		if remaining2[j] == 0 {
			j++
		}
	}

	if bestQty <= 0 {
		e.metrics.SignalSuppressed("below_threshold")
		return ArbSignal{}, false
	}

	leg1.AskPrice = bestPx1
	leg2.AskPrice = bestPx2

	return ArbSignal{
		Leg1:               leg1,
		Leg2:               leg2,
		CrossPlatform:      crossPlatform,
		MaxQty:             bestQty,
		EstFeesPerContract: bestFee,
		EstGasPerContract:  bestGas,
		NetEdgePerContract: bestEdge,
		DetectedAt:         time.Now(),
	}, true
}

func (e *Engine) emit(sig ArbSignal) {
	select {
	case e.signals <- sig:
		e.metrics.SignalEmitted(sig.CrossPlatform)
	default:
		e.metrics.SignalSuppressed("signals_channel_full")
		if e.logger != nil {
			e.logger.Error("strategy: signal channel full, dropping signal",
				zap.String("leg1_market", sig.Leg1.MarketID),
				zap.String("leg2_market", sig.Leg2.MarketID))
		}
	}
}
