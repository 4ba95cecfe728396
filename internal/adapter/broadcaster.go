package adapter

import (
	"context"
	"sync"

	"github.com/caesar-terminal/arbiter/internal/bookkeeping"
	"go.uber.org/zap"
)

// SnapshotSource is anything that publishes consistent order book snapshots;
// satisfied by *bookkeeping.Normalizer.
type SnapshotSource interface {
	Published() <-chan bookkeeping.Snapshot
}

// subKey identifies a filtered subscription by venue and market.
type subKey struct {
	Venue    bookkeeping.Venue
	MarketID string
}

// Broadcaster is a many-to-many hub between the Normalizer and everything
// downstream of it: the Strategy engine, the circuit breaker's staleness
// monitor, the Redis dashboard writer, and the cross-venue book preview all
// read the same stream of published snapshots without contending on the
// Normalizer's single output channel.
type Broadcaster struct {
	sources []<-chan bookkeeping.Snapshot
	logger  *zap.Logger

	// Filtered subscribers keyed by (venue, marketID).
	mu   sync.RWMutex
	subs map[subKey][]chan bookkeeping.Snapshot

	// allMu guards the unified subscriber list.
	allMu  sync.RWMutex
	allSub []chan bookkeeping.Snapshot
}

// NewBroadcaster creates a Broadcaster ready for source registration.
func NewBroadcaster(logger *zap.Logger) *Broadcaster {
	return &Broadcaster{
		logger: logger,
		subs:   make(map[subKey][]chan bookkeeping.Snapshot),
	}
}

// Register adds a snapshot source. Must be called before Run.
func (b *Broadcaster) Register(source SnapshotSource) {
	b.sources = append(b.sources, source.Published())
}

// Subscribe returns a buffered channel that receives snapshots for the
// given venue and market. The caller must drain the channel; a full channel
// drops the newest snapshot rather than blocking the hub.
func (b *Broadcaster) Subscribe(venue bookkeeping.Venue, marketID string) <-chan bookkeeping.Snapshot {
	ch := make(chan bookkeeping.Snapshot, 256)
	key := subKey{Venue: venue, MarketID: marketID}

	b.mu.Lock()
	b.subs[key] = append(b.subs[key], ch)
	b.mu.Unlock()

	return ch
}

// SubscribeAll returns a buffered channel that receives every published
// snapshot regardless of venue or market.
func (b *Broadcaster) SubscribeAll() <-chan bookkeeping.Snapshot {
	ch := make(chan bookkeeping.Snapshot, 1024)

	b.allMu.Lock()
	b.allSub = append(b.allSub, ch)
	b.allMu.Unlock()

	return ch
}

// Run consumes from all registered sources and distributes snapshots until
// ctx is cancelled. Each source gets its own goroutine, so per-market
// ordering within one source is preserved.
func (b *Broadcaster) Run(ctx context.Context) {
	var wg sync.WaitGroup

	for _, src := range b.sources {
		wg.Add(1)
		go func(ch <-chan bookkeeping.Snapshot) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case snap, ok := <-ch:
					if !ok {
						return
					}
					b.distribute(snap)
				}
			}
		}(src)
	}

	wg.Wait()
}

// distribute sends a snapshot to all matching filtered subscribers and all
// unified subscribers. Non-blocking: a slow consumer loses the snapshot but
// never stalls the hub, and the next snapshot for the market supersedes it.
func (b *Broadcaster) distribute(snap bookkeeping.Snapshot) {
	key := subKey{Venue: snap.Book.Venue, MarketID: snap.Book.MarketID}

	b.mu.RLock()
	if subs, ok := b.subs[key]; ok {
		for _, ch := range subs {
			select {
			case ch <- snap:
			default:
				if b.logger != nil {
					b.logger.Warn("broadcaster: dropping snapshot for slow subscriber",
						zap.String("venue", string(snap.Book.Venue)),
						zap.String("market", snap.Book.MarketID))
				}
			}
		}
	}
	b.mu.RUnlock()

	b.allMu.RLock()
	for _, ch := range b.allSub {
		select {
		case ch <- snap:
		default:
			// Slow unified subscriber loses this snapshot.
		}
	}
	b.allMu.RUnlock()
}
