package adapter

import (
	"sync"

	"github.com/caesar-terminal/arbiter/internal/bookkeeping"
	"github.com/caesar-terminal/arbiter/internal/feemodel"
	"github.com/caesar-terminal/arbiter/internal/strategy"
)

// Registry holds the configured market pairs and per-market fee tags, and
// serves as the strategy.MarketInfo implementation wired into the Strategy
// engine. It replaces ad hoc float spread-checking with a lookup table that
// feeds the exact-arithmetic Strategy/Risk pipeline.
type Registry struct {
	gas feemodel.GasOracle

	mu    sync.RWMutex
	pairs []MarketPair
	tags  map[bookkeeping.MarketKey]feemodel.MarketTags
}

// NewRegistry creates an empty Registry. gas may be nil, in which case
// feemodel.ZeroGasOracle is used for every Polymarket fee computation.
func NewRegistry(gas feemodel.GasOracle) *Registry {
	if gas == nil {
		gas = feemodel.ZeroGasOracle{}
	}
	return &Registry{
		gas:  gas,
		tags: make(map[bookkeeping.MarketKey]feemodel.MarketTags),
	}
}

// RegisterPair adds a resolution-equivalent market pair. Must be called
// before Whitelist is read by the Strategy engine.
func (r *Registry) RegisterPair(p MarketPair) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pairs = append(r.pairs, p)
}

// SetTags records the crypto/short-duration fee tags for one (venue,
// market), typically loaded once at startup from configuration.
func (r *Registry) SetTags(venue bookkeeping.Venue, marketID string, tags feemodel.MarketTags) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tags[bookkeeping.MarketKey{Venue: venue, MarketID: marketID}] = tags
}

// Tags implements strategy.MarketInfo.
func (r *Registry) Tags(venue bookkeeping.Venue, marketID string) feemodel.MarketTags {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tags[bookkeeping.MarketKey{Venue: venue, MarketID: marketID}]
}

// FeeModel implements strategy.MarketInfo.
func (r *Registry) FeeModel(venue bookkeeping.Venue, marketID string) feemodel.Model {
	return feemodel.Model{Venue: venue, Tags: r.Tags(venue, marketID), Gas: r.gas}
}

// Whitelist builds the strategy.CrossVenueWhitelist from every registered
// pair. Safe to call repeatedly; the Strategy engine can be reconstructed if
// pairs change at runtime (pairs are expected to be stable per process).
func (r *Registry) Whitelist() *strategy.CrossVenueWhitelist {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := make([]strategy.WhitelistEntry, 0, len(r.pairs))
	for _, p := range r.pairs {
		entries = append(entries, strategy.WhitelistEntry{KalshiMarket: p.KalshiMarketID, PolyMarket: p.PolyMarketID})
	}
	return strategy.NewCrossVenueWhitelist(entries)
}

// Pairs returns a defensive copy of the registered pairs, used at startup to
// drive adapter subscriptions for both legs of every pair.
func (r *Registry) Pairs() []MarketPair {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]MarketPair, len(r.pairs))
	copy(out, r.pairs)
	return out
}

var _ strategy.MarketInfo = (*Registry)(nil)
