package adapter

import (
	"context"
	"sync"
	"time"

	"github.com/caesar-terminal/arbiter/internal/bookkeeping"
)

// CircuitBreakerConfig holds tunable parameters for the CircuitBreaker.
type CircuitBreakerConfig struct {
	// StaleThreshold is the maximum age of a published snapshot before the
	// market is considered stale. Default: 1000ms.
	StaleThreshold time.Duration

	// CoolOff is the duration of continuous healthy data required after a
	// reconnection before trading is re-enabled. Default: 2s.
	CoolOff time.Duration

	// PollInterval is not read by the breaker: state is updated as each
	// snapshot arrives and CanTrade evaluates on demand. Default: 100ms.
	PollInterval time.Duration
}

// DefaultCircuitBreakerConfig returns production-tuned defaults.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		StaleThreshold: 1000 * time.Millisecond,
		CoolOff:        2 * time.Second,
		PollInterval:   100 * time.Millisecond,
	}
}

// marketState tracks health for a single (venue, market).
type marketState struct {
	LastUpdate time.Time
	// RecoveredAt is set when a market transitions from unhealthy to
	// healthy; trading stays blocked until CoolOff has elapsed since.
	RecoveredAt time.Time
	Healthy     bool
}

// CircuitBreaker monitors venue connections and book freshness, gating
// order submission behind CanTrade. It enforces:
//   - Connection health via each venue WSClient's Circuit()
//   - Book staleness via published snapshot timestamps
//   - A cool-off period after recovery
//   - A manual emergency halt
type CircuitBreaker struct {
	cfg  CircuitBreakerConfig
	feed <-chan bookkeeping.Snapshot

	// Venue connections tracked for heartbeat monitoring.
	connMu sync.RWMutex
	conns  map[bookkeeping.Venue]*WSClient

	// Per-market health state.
	mu      sync.RWMutex
	markets map[subKey]*marketState

	// Global manual halt.
	haltMu sync.RWMutex
	halted bool

	nowFunc func() time.Time // injectable clock for testing
}

// NewCircuitBreaker creates a CircuitBreaker that monitors the given
// snapshot feed (typically Broadcaster.SubscribeAll) for staleness. Venue
// WSClients are registered separately via WatchConnection.
func NewCircuitBreaker(cfg CircuitBreakerConfig, feed <-chan bookkeeping.Snapshot) *CircuitBreaker {
	return &CircuitBreaker{
		cfg:     cfg,
		feed:    feed,
		conns:   make(map[bookkeeping.Venue]*WSClient),
		markets: make(map[subKey]*marketState),
		nowFunc: time.Now,
	}
}

// WatchConnection registers a venue's WSClient so its circuit state is
// consulted by CanTrade and VenueHealthy.
func (cb *CircuitBreaker) WatchConnection(venue bookkeeping.Venue, ws *WSClient) {
	cb.connMu.Lock()
	cb.conns[venue] = ws
	cb.connMu.Unlock()
}

// ManualHalt blocks all trading until Resume is called.
func (cb *CircuitBreaker) ManualHalt() {
	cb.haltMu.Lock()
	cb.halted = true
	cb.haltMu.Unlock()
}

// Resume clears the manual halt. Markets still need fresh data and an
// elapsed cool-off before CanTrade returns true again.
func (cb *CircuitBreaker) Resume() {
	cb.haltMu.Lock()
	cb.halted = false
	cb.haltMu.Unlock()
}

// CanTrade returns true only if ALL of the following hold:
//  1. No manual halt is active.
//  2. The venue's connection circuit is closed (healthy).
//  3. The last snapshot for this market is within StaleThreshold.
//  4. The cool-off period has elapsed since recovery.
func (cb *CircuitBreaker) CanTrade(venue bookkeeping.Venue, marketID string) bool {
	if !cb.VenueHealthy(venue) {
		return false
	}

	key := subKey{Venue: venue, MarketID: marketID}
	now := cb.nowFunc()

	cb.mu.RLock()
	ms, exists := cb.markets[key]
	cb.mu.RUnlock()

	if !exists {
		return false // no data received yet
	}

	if now.Sub(ms.LastUpdate) > cb.cfg.StaleThreshold {
		return false
	}

	if !ms.RecoveredAt.IsZero() && now.Sub(ms.RecoveredAt) < cb.cfg.CoolOff {
		return false
	}

	return true
}

// VenueHealthy reports whether a venue is fit to trade at the venue level:
// no manual halt and its connection circuit is not open. It ignores any
// single market's staleness — that is CanTrade's narrower concern. This is
// the Risk Engine's first gate.
func (cb *CircuitBreaker) VenueHealthy(venue bookkeeping.Venue) bool {
	cb.haltMu.RLock()
	halted := cb.halted
	cb.haltMu.RUnlock()
	if halted {
		return false
	}

	cb.connMu.RLock()
	ws, ok := cb.conns[venue]
	cb.connMu.RUnlock()
	if ok && ws.Circuit() == CircuitOpen {
		return false
	}
	return true
}

// Run consumes the snapshot feed, updating per-market health state. It
// blocks until ctx is cancelled.
func (cb *CircuitBreaker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-cb.feed:
			if !ok {
				return
			}
			cb.recordUpdate(snap)
		}
	}
}

func (cb *CircuitBreaker) recordUpdate(snap bookkeeping.Snapshot) {
	key := subKey{Venue: snap.Book.Venue, MarketID: snap.Book.MarketID}
	now := cb.nowFunc()

	cb.mu.Lock()
	ms, exists := cb.markets[key]
	if !exists {
		ms = &marketState{}
		cb.markets[key] = ms
	}

	wasHealthy := ms.Healthy
	ms.LastUpdate = now
	ms.Healthy = true

	if !wasHealthy {
		ms.RecoveredAt = now
	}

	cb.mu.Unlock()
}

// MarkStale forces a market into an unhealthy state, used when the
// Normalizer discards a desynced book and awaits a resnapshot.
func (cb *CircuitBreaker) MarkStale(venue bookkeeping.Venue, marketID string) {
	key := subKey{Venue: venue, MarketID: marketID}

	cb.mu.Lock()
	ms, exists := cb.markets[key]
	if exists {
		ms.Healthy = false
	}
	cb.mu.Unlock()
}
