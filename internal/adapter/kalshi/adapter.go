// Package kalshi adapts Kalshi's WebSocket delta feed and REST order API
// into the engine's exact-integer order book and order contracts. Kalshi
// delivers only bid ladders; the Normalizer derives the synthetic asks.
package kalshi

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/caesar-terminal/arbiter/internal/adapter"
	"github.com/caesar-terminal/arbiter/internal/bookkeeping"
	"github.com/caesar-terminal/arbiter/internal/money"
)

const wsPath = "/trade-api/ws/v2"

// command is the Kalshi WebSocket command envelope.
type command struct {
	ID     int           `json:"id"`
	Cmd    string        `json:"cmd"`
	Params commandParams `json:"params"`
}

type commandParams struct {
	Channels     []string `json:"channels"`
	MarketTicker string   `json:"market_ticker"`
}

// --- Raw wire types ---

type rawEnvelope struct {
	Type string `json:"type"`
}

type rawSnapshot struct {
	Type string `json:"type"`
	SID  int    `json:"sid"`
	Seq  int64  `json:"seq"`
	Msg  struct {
		MarketTicker  string   `json:"market_ticker"`
		MarketID      string   `json:"market_id"`
		IsProvisional bool     `json:"is_provisional"`
		Yes           [][2]int `json:"yes"`
		No            [][2]int `json:"no"`
	} `json:"msg"`
}

type rawDelta struct {
	Type string `json:"type"`
	SID  int    `json:"sid"`
	Seq  int64  `json:"seq"`
	Msg  struct {
		MarketTicker string `json:"market_ticker"`
		MarketID     string `json:"market_id"`
		Price        int    `json:"price"`
		Delta        int    `json:"delta"`
		Side         string `json:"side"`
		Ts           string `json:"ts"`
	} `json:"msg"`
}

// marketRef remembers how to address a market on both the wire (ticker)
// and in the book store (market ID), plus the bid mirror needed to turn
// Kalshi's relative deltas into the absolute quantities the Normalizer
// applies.
type marketRef struct {
	Ticker        string
	MarketID      string
	IsProvisional bool
	Yes           map[int]int // price (cents) → quantity
	No            map[int]int
}

// Feed consumes the orderbook_delta channel and drives the bookkeeping
// Normalizer. Sequence gaps are handled here: the stale book is discarded
// and a fresh subscription is issued, which makes Kalshi re-send a full
// snapshot.
type Feed struct {
	ws     *adapter.WSClient
	norm   *bookkeeping.Normalizer
	logger *zap.Logger

	raw <-chan []byte

	mu      sync.Mutex
	markets map[string]*marketRef // keyed by market_ticker
	subs    []string              // subscribed tickers, replayed on reconnect
	cmdID   int
}

// NewFeed creates a Feed backed by the given WSClient, publishing into
// norm. It subscribes to the WSClient fan-out immediately so no frames are
// missed, and re-sends all subscriptions after every reconnect.
func NewFeed(ws *adapter.WSClient, norm *bookkeeping.Normalizer, logger *zap.Logger) *Feed {
	f := &Feed{
		ws:      ws,
		norm:    norm,
		logger:  logger,
		raw:     ws.Subscribe(),
		markets: make(map[string]*marketRef),
	}
	ws.OnReconnect(f.resubscribe)
	return f
}

// Subscribe sends an orderbook_delta subscription for the given ticker.
func (f *Feed) Subscribe(ticker string) {
	f.mu.Lock()
	f.subs = append(f.subs, ticker)
	f.mu.Unlock()
	f.sendSubscribe(ticker)
}

func (f *Feed) sendSubscribe(ticker string) {
	f.mu.Lock()
	f.cmdID++
	id := f.cmdID
	f.mu.Unlock()

	msg, _ := json.Marshal(command{
		ID:  id,
		Cmd: "subscribe",
		Params: commandParams{
			Channels:     []string{"orderbook_delta"},
			MarketTicker: ticker,
		},
	})
	f.ws.Send(msg)
}

func (f *Feed) resubscribe() {
	f.mu.Lock()
	tickers := make([]string, len(f.subs))
	copy(tickers, f.subs)
	f.mu.Unlock()
	for _, t := range tickers {
		f.sendSubscribe(t)
	}
}

// Run reads frames from the WSClient fan-out and applies snapshots and
// deltas until ctx is cancelled.
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
		f.logger.Warn("kalshi: invalid JSON frame", zap.Error(err))
		return
	}

	switch env.Type {
	case "orderbook_snapshot":
		f.handleSnapshot(raw)
	case "orderbook_delta":
		f.handleDelta(raw)
	case "error":
		f.logger.Warn("kalshi: exchange error", zap.ByteString("frame", raw))
	default:
		// Subscription acks and heartbeats ignored.
	}
}

func (f *Feed) handleSnapshot(raw []byte) {
	var snap rawSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		f.logger.Warn("kalshi: failed to parse snapshot", zap.Error(err))
		return
	}

	ref := &marketRef{
		Ticker:        snap.Msg.MarketTicker,
		MarketID:      snap.Msg.MarketID,
		IsProvisional: snap.Msg.IsProvisional,
		Yes:           make(map[int]int, len(snap.Msg.Yes)),
		No:            make(map[int]int, len(snap.Msg.No)),
	}
	for _, level := range snap.Msg.Yes {
		ref.Yes[level[0]] = level[1]
	}
	for _, level := range snap.Msg.No {
		ref.No[level[0]] = level[1]
	}

	f.mu.Lock()
	f.markets[snap.Msg.MarketTicker] = ref
	f.mu.Unlock()

	f.norm.ApplySnapshot(bookkeeping.RawSnapshot{
		Venue:         bookkeeping.VenueKalshi,
		MarketID:      ref.MarketID,
		Seq:           snap.Seq,
		TS:            time.Now(),
		IsProvisional: ref.IsProvisional,
		YesBids:       centsToBookLevels(ref.Yes),
		NoBids:        centsToBookLevels(ref.No),
	})
}

func (f *Feed) handleDelta(raw []byte) {
	var delta rawDelta
	if err := json.Unmarshal(raw, &delta); err != nil {
		f.logger.Warn("kalshi: failed to parse delta", zap.Error(err))
		return
	}

	f.mu.Lock()
	ref, ok := f.markets[delta.Msg.MarketTicker]
	if !ok {
		f.mu.Unlock()
		return // delta before any snapshot; the subscription ack resnapshots
	}

	side := ref.Yes
	ladder := bookkeeping.LadderYesBid
	if delta.Msg.Side == "no" {
		side = ref.No
		ladder = bookkeeping.LadderNoBid
	}

	newQty := side[delta.Msg.Price] + delta.Msg.Delta
	if newQty <= 0 {
		delete(side, delta.Msg.Price)
		newQty = 0
	} else {
		side[delta.Msg.Price] = newQty
	}
	marketID := ref.MarketID
	ticker := ref.Ticker
	f.mu.Unlock()

	err := f.norm.ApplyDelta(bookkeeping.Delta{
		Venue:    bookkeeping.VenueKalshi,
		MarketID: marketID,
		Seq:      delta.Seq,
		TS:       time.Now(),
		Ladder:   ladder,
		Price:    money.Cents(delta.Msg.Price),
		NewQty:   money.Quantity(newQty),
	})
	switch {
	case err == nil:
	case errors.Is(err, bookkeeping.ErrSeqGap), errors.Is(err, bookkeeping.ErrUnknownMarket):
		// The stale mirror can't be patched either; drop it and force a
		// fresh snapshot from the exchange.
		f.logger.Warn("kalshi: sequence gap, requesting resnapshot",
			zap.String("market", ticker), zap.Int64("seq", delta.Seq))
		f.mu.Lock()
		delete(f.markets, ticker)
		f.mu.Unlock()
		f.sendSubscribe(ticker)
	default:
		f.logger.Warn("kalshi: normalizer rejected delta",
			zap.String("market", ticker), zap.Error(err))
	}
}

// centsToBookLevels converts a cents→quantity mirror into exact-integer
// book levels for the Normalizer, with no float conversion anywhere.
func centsToBookLevels(m map[int]int) []bookkeeping.BookLevel {
	if len(m) == 0 {
		return nil
	}
	out := make([]bookkeeping.BookLevel, 0, len(m))
	for price, qty := range m {
		out = append(out, bookkeeping.BookLevel{Price: money.Cents(price), Qty: money.Quantity(qty)})
	}
	return out
}
