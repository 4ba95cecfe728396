package adapter

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/caesar-terminal/arbiter/internal/bookkeeping"
)

// PrivateFeed is an authenticated WebSocket session carrying the operator's
// own account data for one venue: order acknowledgements, fills, and
// cancellations. Credentials live only in the handshake headers.
type PrivateFeed struct {
	Venue  bookkeeping.Venue
	ws     *WSClient
	cancel context.CancelFunc
	msgs   <-chan []byte
}

// Messages returns the channel of raw inbound frames for this feed.
func (f *PrivateFeed) Messages() <-chan []byte { return f.msgs }

// Send enqueues a frame on the feed's connection.
func (f *PrivateFeed) Send(data []byte) { f.ws.Send(data) }

// PrivateFeedConfig holds the parameters needed to open a private feed.
type PrivateFeedConfig struct {
	Venue   bookkeeping.Venue
	URL     string
	Headers http.Header // auth headers: RSA-PSS for Kalshi, API-key for Polymarket
}

// PrivateFeedManager owns one authenticated session per venue. cmd/arbiter's
// fill tape logs the order-update frames received here; the order clients
// learn their fills through their own REST calls, and market data never
// flows through a private feed.
type PrivateFeedManager struct {
	mu    sync.Mutex
	feeds map[bookkeeping.Venue]*PrivateFeed
}

// NewPrivateFeedManager creates a PrivateFeedManager.
func NewPrivateFeedManager() *PrivateFeedManager {
	return &PrivateFeedManager{
		feeds: make(map[bookkeeping.Venue]*PrivateFeed),
	}
}

// Open establishes the private session for a venue. Any existing session
// for that venue is closed first.
func (m *PrivateFeedManager) Open(ctx context.Context, cfg PrivateFeedConfig) (*PrivateFeed, error) {
	m.mu.Lock()
	if existing, ok := m.feeds[cfg.Venue]; ok {
		existing.close()
		delete(m.feeds, cfg.Venue)
	}
	m.mu.Unlock()

	wsCfg := DefaultWSConfig(cfg.URL)
	wsCfg.Headers = cfg.Headers

	ws := NewWSClient(wsCfg, nil)
	msgs := ws.Subscribe()

	feedCtx, cancel := context.WithCancel(ctx)
	if err := ws.Connect(feedCtx); err != nil {
		cancel()
		return nil, fmt.Errorf("private feed: connect %s: %w", cfg.Venue, err)
	}

	f := &PrivateFeed{
		Venue:  cfg.Venue,
		ws:     ws,
		cancel: cancel,
		msgs:   msgs,
	}

	m.mu.Lock()
	m.feeds[cfg.Venue] = f
	m.mu.Unlock()

	return f, nil
}

// Get returns the active feed for a venue, or nil.
func (m *PrivateFeedManager) Get(venue bookkeeping.Venue) *PrivateFeed {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.feeds[venue]
}

// Close tears down the private session for one venue.
func (m *PrivateFeedManager) Close(venue bookkeeping.Venue) {
	m.mu.Lock()
	f, ok := m.feeds[venue]
	if ok {
		delete(m.feeds, venue)
	}
	m.mu.Unlock()

	if ok {
		f.close()
	}
}

// CloseAll tears down every active session.
func (m *PrivateFeedManager) CloseAll() {
	m.mu.Lock()
	feeds := m.feeds
	m.feeds = make(map[bookkeeping.Venue]*PrivateFeed)
	m.mu.Unlock()

	for _, f := range feeds {
		f.close()
	}
}

func (f *PrivateFeed) close() {
	f.cancel()
	f.ws.Close()
}
