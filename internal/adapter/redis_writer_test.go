package adapter

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/caesar-terminal/arbiter/internal/bookkeeping"
	"github.com/caesar-terminal/arbiter/internal/money"
)

// mockRedis records HSet calls.
type mockRedis struct {
	mu    sync.Mutex
	calls []map[string]string
	keys  []string
}

func (m *mockRedis) HSet(_ context.Context, key string, values ...any) error {
	fields := make(map[string]string, len(values)/2)
	for i := 0; i+1 < len(values); i += 2 {
		fields[values[i].(string)] = values[i+1].(string)
	}
	m.mu.Lock()
	m.keys = append(m.keys, key)
	m.calls = append(m.calls, fields)
	m.mu.Unlock()
	return nil
}

func (m *mockRedis) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func fullSnap(venue bookkeeping.Venue, marketID string, yesBid, yesAsk money.Cents) bookkeeping.Snapshot {
	return bookkeeping.Snapshot{
		Book: bookkeeping.OrderBook{
			Venue:         venue,
			MarketID:      marketID,
			LastUpdateSeq: 7,
			LastUpdateTS:  time.UnixMilli(1700000000000),
			YesBids:       []bookkeeping.BookLevel{{Price: yesBid, Qty: 5}},
			YesAsks:       []bookkeeping.BookLevel{{Price: yesAsk, Qty: 5}},
			NoBids:        []bookkeeping.BookLevel{{Price: yesAsk.Reflect(), Qty: 5}},
			NoAsks:        []bookkeeping.BookLevel{{Price: yesBid.Reflect(), Qty: 5}},
		},
		TS: time.UnixMilli(1700000000000),
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.After(time.Second)
	for !cond() {
		select {
		case <-deadline:
			t.Fatal("condition never met")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestRedisWriterWritesFourLadderTops(t *testing.T) {
	feed := make(chan bookkeeping.Snapshot, 4)
	rdb := &mockRedis{}
	rw := NewRedisWriter(rdb, feed)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go rw.Run(ctx)

	feed <- fullSnap(bookkeeping.VenueKalshi, "MKT-A", 44, 46)
	waitFor(t, func() bool { return rdb.count() == 1 })

	rdb.mu.Lock()
	defer rdb.mu.Unlock()
	if rdb.keys[0] != "book:kalshi:MKT-A" {
		t.Fatalf("unexpected key %q", rdb.keys[0])
	}
	got := rdb.calls[0]
	if got["yes_bid"] != "0.44" || got["yes_ask"] != "0.46" {
		t.Fatalf("yes tops wrong: %v", got)
	}
	if got["no_bid"] != "0.54" || got["no_ask"] != "0.56" {
		t.Fatalf("no tops wrong: %v", got)
	}
	if got["seq"] != "7" || got["ts"] != "1700000000000" {
		t.Fatalf("seq/ts wrong: %v", got)
	}
}

func TestRedisWriterSuppressesDuplicates(t *testing.T) {
	feed := make(chan bookkeeping.Snapshot, 8)
	rdb := &mockRedis{}
	rw := NewRedisWriter(rdb, feed)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go rw.Run(ctx)

	feed <- fullSnap(bookkeeping.VenueKalshi, "MKT-A", 44, 46)
	feed <- fullSnap(bookkeeping.VenueKalshi, "MKT-A", 44, 46) // identical tops
	feed <- fullSnap(bookkeeping.VenueKalshi, "MKT-A", 45, 46) // bid moved

	waitFor(t, func() bool { return rdb.count() == 2 })
	time.Sleep(20 * time.Millisecond)
	if rdb.count() != 2 {
		t.Fatalf("expected 2 writes, got %d", rdb.count())
	}
}

func TestRedisWriterEmptyLadders(t *testing.T) {
	feed := make(chan bookkeeping.Snapshot, 2)
	rdb := &mockRedis{}
	rw := NewRedisWriter(rdb, feed)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go rw.Run(ctx)

	feed <- bookkeeping.Snapshot{
		Book: bookkeeping.OrderBook{
			Venue:    bookkeeping.VenueKalshi,
			MarketID: "MKT-E",
			YesBids:  []bookkeeping.BookLevel{{Price: 40, Qty: 1}},
			// No asks at all: opposing bid side empty.
		},
	}
	waitFor(t, func() bool { return rdb.count() == 1 })

	rdb.mu.Lock()
	defer rdb.mu.Unlock()
	got := rdb.calls[0]
	if got["yes_ask"] != "inf" {
		t.Fatalf("expected inf yes_ask, got %q", got["yes_ask"])
	}
	if got["no_bid"] != "-" {
		t.Fatalf("expected - no_bid, got %q", got["no_bid"])
	}
}
