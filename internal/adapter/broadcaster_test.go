package adapter

import (
	"context"
	"testing"
	"time"

	"github.com/caesar-terminal/arbiter/internal/bookkeeping"
	"github.com/caesar-terminal/arbiter/internal/money"
)

// fakeSource is a SnapshotSource backed by a plain channel.
type fakeSource struct {
	ch chan bookkeeping.Snapshot
}

func newFakeSource() *fakeSource {
	return &fakeSource{ch: make(chan bookkeeping.Snapshot, 16)}
}

func (f *fakeSource) Published() <-chan bookkeeping.Snapshot { return f.ch }

func snapFor(venue bookkeeping.Venue, marketID string, yesAsk money.Cents) bookkeeping.Snapshot {
	return bookkeeping.Snapshot{
		Book: bookkeeping.OrderBook{
			Venue:    venue,
			MarketID: marketID,
			YesAsks:  []bookkeeping.BookLevel{{Price: yesAsk, Qty: 10}},
		},
		TS: time.Now(),
	}
}

func recvSnap(t *testing.T, ch <-chan bookkeeping.Snapshot) bookkeeping.Snapshot {
	t.Helper()
	select {
	case s := <-ch:
		return s
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for snapshot")
		return bookkeeping.Snapshot{}
	}
}

func TestBroadcasterFilteredSubscription(t *testing.T) {
	src := newFakeSource()
	b := NewBroadcaster(nil)
	b.Register(src)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Run(ctx)

	sub := b.Subscribe(bookkeeping.VenueKalshi, "MKT-A")

	src.ch <- snapFor(bookkeeping.VenueKalshi, "MKT-A", 45)
	src.ch <- snapFor(bookkeeping.VenueKalshi, "MKT-B", 50) // different market, filtered out
	src.ch <- snapFor(bookkeeping.VenuePolymarket, "MKT-A", 55)

	got := recvSnap(t, sub)
	if got.Book.MarketID != "MKT-A" || got.Book.Venue != bookkeeping.VenueKalshi {
		t.Fatalf("unexpected snapshot: %s/%s", got.Book.Venue, got.Book.MarketID)
	}

	select {
	case extra := <-sub:
		t.Fatalf("filtered subscription received extra snapshot: %s/%s", extra.Book.Venue, extra.Book.MarketID)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBroadcasterSubscribeAll(t *testing.T) {
	src := newFakeSource()
	b := NewBroadcaster(nil)
	b.Register(src)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Run(ctx)

	all := b.SubscribeAll()

	src.ch <- snapFor(bookkeeping.VenueKalshi, "MKT-A", 45)
	src.ch <- snapFor(bookkeeping.VenuePolymarket, "MKT-B", 50)

	seen := map[string]bool{}
	for i := 0; i < 2; i++ {
		s := recvSnap(t, all)
		seen[s.Book.MarketID] = true
	}
	if !seen["MKT-A"] || !seen["MKT-B"] {
		t.Fatalf("SubscribeAll missed snapshots: %v", seen)
	}
}

func TestBroadcasterMultipleSubscribersSameMarket(t *testing.T) {
	src := newFakeSource()
	b := NewBroadcaster(nil)
	b.Register(src)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Run(ctx)

	sub1 := b.Subscribe(bookkeeping.VenueKalshi, "MKT-A")
	sub2 := b.Subscribe(bookkeeping.VenueKalshi, "MKT-A")

	src.ch <- snapFor(bookkeeping.VenueKalshi, "MKT-A", 45)

	if got := recvSnap(t, sub1); got.Book.MarketID != "MKT-A" {
		t.Fatalf("sub1 got %s", got.Book.MarketID)
	}
	if got := recvSnap(t, sub2); got.Book.MarketID != "MKT-A" {
		t.Fatalf("sub2 got %s", got.Book.MarketID)
	}
}

func TestBroadcasterSlowSubscriberDoesNotBlock(t *testing.T) {
	src := newFakeSource()
	b := NewBroadcaster(nil)
	b.Register(src)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Run(ctx)

	// Never drained: fills up and starts dropping.
	_ = b.Subscribe(bookkeeping.VenueKalshi, "MKT-A")
	live := b.SubscribeAll()

	for i := 0; i < 400; i++ {
		src.ch <- snapFor(bookkeeping.VenueKalshi, "MKT-A", money.Cents(i%99+1))
		// Keep the live subscriber drained so only the silent one backs up.
		select {
		case <-live:
		default:
		}
	}

	// The hub must still be responsive.
	src.ch <- snapFor(bookkeeping.VenuePolymarket, "MKT-Z", 33)
	deadline := time.After(time.Second)
	for {
		select {
		case s := <-live:
			if s.Book.MarketID == "MKT-Z" {
				return
			}
		case <-deadline:
			t.Fatal("hub stalled behind a slow subscriber")
		}
	}
}
