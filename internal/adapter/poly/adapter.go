// Package poly adapts Polymarket's CLOB WebSocket feed and REST order API
// into the engine's exact-integer order book and order contracts. All four
// ladders are native on Polymarket; prices arrive as decimal strings and
// are parsed exactly into basis-cents, never through a float.
package poly

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/caesar-terminal/arbiter/internal/adapter"
	"github.com/caesar-terminal/arbiter/internal/bookkeeping"
	"github.com/caesar-terminal/arbiter/internal/money"
)

// subscribeMsg is the Polymarket market-channel subscription envelope.
type subscribeMsg struct {
	Type      string   `json:"type"`
	AssetsIDs []string `json:"assets_ids"`
}

// rawBookEvent is a full book snapshot for one outcome token.
type rawBookEvent struct {
	EventType string          `json:"event_type"`
	AssetID   string          `json:"asset_id"`
	Market    string          `json:"market"`
	Bids      []rawPriceLevel `json:"bids"`
	Asks      []rawPriceLevel `json:"asks"`
	Timestamp string          `json:"timestamp"`
	Hash      string          `json:"hash"`
}

type rawPriceLevel struct {
	Price string `json:"price"`
	Size  string `json:"size"`
}

// rawEnvelope is used for event-type detection before full parsing.
type rawEnvelope struct {
	EventType string `json:"event_type"`
}

// marketBook accumulates the two outcome tokens' ladders for one market;
// a book event only ever covers one token, so the adapter holds the other
// side's last state to publish a complete four-ladder snapshot.
type marketBook struct {
	seq     int64
	yesBids []bookkeeping.BookLevel
	yesAsks []bookkeeping.BookLevel
	noBids  []bookkeeping.BookLevel
	noAsks  []bookkeeping.BookLevel
}

// Feed consumes the CLOB market channel and drives the bookkeeping
// Normalizer with native snapshots. Polymarket identifies outcome tokens by
// asset ID, not by (market, side); callers register the mapping for every
// token they subscribe to.
type Feed struct {
	ws     *adapter.WSClient
	norm   *bookkeeping.Normalizer
	logger *zap.Logger

	raw <-chan []byte

	mu     sync.Mutex
	assets map[string]assetBinding // asset_id → (market, side)
	books  map[string]*marketBook  // market → accumulated ladders
	subs   []string                // subscribed asset IDs, replayed on reconnect
}

type assetBinding struct {
	MarketID string
	Side     bookkeeping.Side
}

// NewFeed creates a Feed backed by the given WSClient, publishing into
// norm. It subscribes to the WSClient fan-out immediately so no frames are
// missed, and re-sends all subscriptions after every reconnect.
func NewFeed(ws *adapter.WSClient, norm *bookkeeping.Normalizer, logger *zap.Logger) *Feed {
	f := &Feed{
		ws:     ws,
		norm:   norm,
		logger: logger,
		raw:    ws.Subscribe(),
		assets: make(map[string]assetBinding),
		books:  make(map[string]*marketBook),
	}
	ws.OnReconnect(f.resubscribe)
	return f
}

// Bind registers which market and side an outcome token belongs to. Must be
// called before Subscribe for that token.
func (f *Feed) Bind(assetID, marketID string, side bookkeeping.Side) {
	f.mu.Lock()
	f.assets[assetID] = assetBinding{MarketID: marketID, Side: side}
	f.mu.Unlock()
}

// Subscribe sends a market-channel subscription for the given token ID.
func (f *Feed) Subscribe(assetID string) {
	f.mu.Lock()
	f.subs = append(f.subs, assetID)
	f.mu.Unlock()
	f.sendSubscribe([]string{assetID})
}

func (f *Feed) resubscribe() {
	f.mu.Lock()
	ids := make([]string, len(f.subs))
	copy(ids, f.subs)
	f.mu.Unlock()
	if len(ids) > 0 {
		f.sendSubscribe(ids)
	}
}

func (f *Feed) sendSubscribe(assetIDs []string) {
	msg, _ := json.Marshal(subscribeMsg{Type: "market", AssetsIDs: assetIDs})
	f.ws.Send(msg)
}

// Run reads frames from the WSClient fan-out and applies book events until
// ctx is cancelled.
func (f *Feed) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case raw, ok := <-f.raw:
			if !ok {
				return
			}
			f.handleMessage(raw)
		}
	}
}

func (f *Feed) handleMessage(raw []byte) {
	var env rawEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		f.logger.Warn("poly: invalid JSON frame", zap.Error(err))
		return
	}

	switch env.EventType {
	case "book":
		f.handleBook(raw)
	case "error":
		f.logger.Warn("poly: exchange error", zap.ByteString("frame", raw))
	default:
		// price_change, tick_size_change, last_trade_price ignored; the
		// book channel re-sends a full snapshot on every change we act on.
	}
}

func (f *Feed) handleBook(raw []byte) {
	var ev rawBookEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		f.logger.Warn("poly: failed to parse book event", zap.Error(err))
		return
	}

	f.mu.Lock()
	binding, known := f.assets[ev.AssetID]
	if !known {
		f.mu.Unlock()
		return // not a token we subscribed to
	}

	book, ok := f.books[binding.MarketID]
	if !ok {
		book = &marketBook{}
		f.books[binding.MarketID] = book
	}

	bids := parseLevels(ev.Bids)
	asks := parseLevels(ev.Asks)
	switch binding.Side {
	case bookkeeping.Yes:
		book.yesBids, book.yesAsks = bids, asks
	case bookkeeping.No:
		book.noBids, book.noAsks = bids, asks
	}
	// The CLOB feed re-snapshots per token rather than numbering deltas;
	// the adapter's own counter gives the Normalizer a monotonic sequence.
	book.seq++

	snap := bookkeeping.RawSnapshot{
		Venue:    bookkeeping.VenuePolymarket,
		MarketID: binding.MarketID,
		Seq:      book.seq,
		TS:       parseTimestamp(ev.Timestamp),
		YesBids:  book.yesBids,
		NoBids:   book.noBids,
		YesAsks:  book.yesAsks,
		NoAsks:   book.noAsks,
	}
	f.mu.Unlock()

	f.norm.ApplySnapshot(snap)
}

// parseLevels converts raw decimal price/size strings into exact
// basis-cent levels. Prices that don't land on a whole cent, or that fail
// to parse, are dropped — a sub-cent tick would silently break the
// synthetic-ask reflection and the cross-venue comparison.
func parseLevels(raw []rawPriceLevel) []bookkeeping.BookLevel {
	if len(raw) == 0 {
		return nil
	}
	levels := make([]bookkeeping.BookLevel, 0, len(raw))
	for _, r := range raw {
		price, err := decimal.NewFromString(r.Price)
		if err != nil {
			continue
		}
		size, err := decimal.NewFromString(r.Size)
		if err != nil {
			continue
		}

		cents := price.Mul(decimal.NewFromInt(100))
		if !cents.IsInteger() {
			continue
		}
		qty := size.Floor()

		levels = append(levels, bookkeeping.BookLevel{
			Price: money.Cents(cents.IntPart()),
			Qty:   money.Quantity(qty.IntPart()),
		})
	}
	return levels
}

// parseTimestamp converts a Unix-millisecond string to time.Time.
func parseTimestamp(s string) time.Time {
	ms, err := decimal.NewFromString(s)
	if err != nil {
		return time.Now()
	}
	return time.UnixMilli(ms.IntPart())
}
