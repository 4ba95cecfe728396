package adapter

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/caesar-terminal/arbiter/internal/bookkeeping"
	"github.com/caesar-terminal/arbiter/internal/money"
)

// RedisClient abstracts the Redis operations used by RedisWriter.
// In production this is satisfied by GoRedisClient; in tests by a mock.
type RedisClient interface {
	HSet(ctx context.Context, key string, values ...any) error
}

// topOfBook holds the last-written tops for a market so duplicate writes
// can be suppressed.
type topOfBook struct {
	YesBid, YesAsk, NoBid, NoAsk string
}

// RedisWriter subscribes to the Broadcaster's unified snapshot stream and
// persists the top of all four ladders per market for the operator
// dashboard, using the schema:
//
//	Key:    book:{venue}:{market_id}
//	Fields: yes_bid, yes_ask, no_bid, no_ask, seq, ts
//
// Prices are written as decimal dollar strings; an empty ladder writes
// "-" for a bid top and "inf" for an ask top (no liquidity). Writes are
// non-blocking: snapshots are buffered internally and flushed by a
// dedicated goroutine, and unchanged tops are skipped.
type RedisWriter struct {
	client RedisClient
	feed   <-chan bookkeeping.Snapshot
	buf    chan bookkeeping.Snapshot

	mu   sync.Mutex
	last map[string]topOfBook // keyed by Redis key
}

// NewRedisWriter creates a RedisWriter reading from the given snapshot feed
// (typically Broadcaster.SubscribeAll).
func NewRedisWriter(client RedisClient, feed <-chan bookkeeping.Snapshot) *RedisWriter {
	return &RedisWriter{
		client: client,
		feed:   feed,
		buf:    make(chan bookkeeping.Snapshot, 1024),
		last:   make(map[string]topOfBook),
	}
}

// Run starts two goroutines: one draining the feed into the internal
// buffer so the Broadcaster is never blocked, one flushing buffered
// snapshots to Redis. It blocks until ctx is cancelled.
func (rw *RedisWriter) Run(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case snap, ok := <-rw.feed:
				if !ok {
					return
				}
				select {
				case rw.buf <- snap:
				default:
					// Buffer full, drop; the next snapshot supersedes.
				}
			}
		}
	}()

	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case snap, ok := <-rw.buf:
				if !ok {
					return
				}
				rw.write(ctx, snap)
			}
		}
	}()

	wg.Wait()
}

// write extracts the four ladder tops, checks for duplicates, and issues a
// single HSET.
func (rw *RedisWriter) write(ctx context.Context, snap bookkeeping.Snapshot) {
	book := snap.Book
	top := topOfBook{
		YesBid: bidTop(&book, bookkeeping.Yes),
		YesAsk: askTop(&book, bookkeeping.Yes),
		NoBid:  bidTop(&book, bookkeeping.No),
		NoAsk:  askTop(&book, bookkeeping.No),
	}

	key := fmt.Sprintf("book:%s:%s", book.Venue, book.MarketID)

	rw.mu.Lock()
	prev, exists := rw.last[key]
	if exists && prev == top {
		rw.mu.Unlock()
		return
	}
	rw.last[key] = top
	rw.mu.Unlock()

	ts := strconv.FormatInt(book.LastUpdateTS.UnixMilli(), 10)
	rw.client.HSet(ctx, key,
		"yes_bid", top.YesBid,
		"yes_ask", top.YesAsk,
		"no_bid", top.NoBid,
		"no_ask", top.NoAsk,
		"seq", strconv.FormatInt(book.LastUpdateSeq, 10),
		"ts", ts)
}

func bidTop(book *bookkeeping.OrderBook, side bookkeeping.Side) string {
	px, _, ok := book.BestBid(side)
	if !ok {
		return "-"
	}
	return px.Dollars()
}

func askTop(book *bookkeeping.OrderBook, side bookkeeping.Side) string {
	px, _, ok := book.BestAsk(side)
	if !ok || px == money.Inf {
		return "inf"
	}
	return px.Dollars()
}
