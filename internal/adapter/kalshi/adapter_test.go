package kalshi

import (
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/caesar-terminal/arbiter/internal/adapter"
	"github.com/caesar-terminal/arbiter/internal/bookkeeping"
)

func testLogger() *zap.Logger { return zap.NewNop() }

// generateTestKey creates an RSA key pair and returns the PEM-encoded
// private key plus the public half for verification.
func generateTestKey(t *testing.T) ([]byte, *rsa.PublicKey) {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	der, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		t.Fatalf("marshal key: %v", err)
	}
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
	return pemBytes, &priv.PublicKey
}

func TestAuthHeaders(t *testing.T) {
	pemKey, _ := generateTestKey(t)

	headers, err := AuthHeaders("test-api-key", pemKey)
	if err != nil {
		t.Fatalf("AuthHeaders: %v", err)
	}

	if headers.Get("KALSHI-ACCESS-KEY") != "test-api-key" {
		t.Fatalf("expected API key 'test-api-key', got %q", headers.Get("KALSHI-ACCESS-KEY"))
	}
	if headers.Get("KALSHI-ACCESS-TIMESTAMP") == "" {
		t.Fatal("missing KALSHI-ACCESS-TIMESTAMP")
	}
	if headers.Get("KALSHI-ACCESS-SIGNATURE") == "" {
		t.Fatal("missing KALSHI-ACCESS-SIGNATURE")
	}
}

func TestRequestSignerSignatureVerifies(t *testing.T) {
	pemKey, pub := generateTestKey(t)
	signer, err := NewRequestSigner("key", pemKey)
	if err != nil {
		t.Fatalf("NewRequestSigner: %v", err)
	}

	ts := time.UnixMilli(1700000000000)
	sigB64, err := signer.Sign(ts, "GET", wsPath)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	sig, err := base64.StdEncoding.DecodeString(sigB64)
	if err != nil {
		t.Fatalf("decode signature: %v", err)
	}

	msg := "1700000000000GET" + wsPath
	h := sha256.Sum256([]byte(msg))
	if err := rsa.VerifyPSS(pub, crypto.SHA256, h[:], sig, &rsa.PSSOptions{
		SaltLength: rsa.PSSSaltLengthEqualsHash,
	}); err != nil {
		t.Fatalf("signature does not verify: %v", err)
	}
}

func TestRequestSignerRejectsNonRSAKey(t *testing.T) {
	if _, err := NewRequestSigner("key", []byte("not a pem")); err == nil {
		t.Fatal("expected error for garbage key")
	}
}

// captureServer upgrades to WS and records every client frame.
type captureServer struct {
	srv *httptest.Server

	mu     sync.Mutex
	frames []string
}

func newCaptureServer(t *testing.T) *captureServer {
	t.Helper()
	cs := &captureServer{}
	upgrader := websocket.Upgrader{}
	cs.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		for {
			_, msg, err := c.ReadMessage()
			if err != nil {
				return
			}
			cs.mu.Lock()
			cs.frames = append(cs.frames, string(msg))
			cs.mu.Unlock()
		}
	}))
	return cs
}

func (cs *captureServer) url() string {
	return "ws" + strings.TrimPrefix(cs.srv.URL, "http")
}

func (cs *captureServer) frameCount() int {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return len(cs.frames)
}

func connectedFeed(t *testing.T, cs *captureServer) (*Feed, *bookkeeping.Normalizer, func()) {
	t.Helper()
	cfg := adapter.DefaultWSConfig(cs.url())
	cfg.HeartbeatTimeout = 5 * time.Second
	ws := adapter.NewWSClient(cfg, nil)

	norm := bookkeeping.NewNormalizer(nil)
	feed := NewFeed(ws, norm, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	if err := ws.Connect(ctx); err != nil {
		cancel()
		t.Fatalf("connect: %v", err)
	}
	go feed.Run(ctx)

	return feed, norm, func() {
		cancel()
		ws.Close()
		cs.srv.Close()
	}
}

func TestFeedSubscribeSendsCommand(t *testing.T) {
	cs := newCaptureServer(t)
	feed, _, done := connectedFeed(t, cs)
	defer done()

	feed.Subscribe("KX-BTC-100K")

	deadline := time.After(2 * time.Second)
	for cs.frameCount() == 0 {
		select {
		case <-deadline:
			t.Fatal("no subscription frame sent")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cs.mu.Lock()
	frame := cs.frames[0]
	cs.mu.Unlock()

	var cmd command
	if err := json.Unmarshal([]byte(frame), &cmd); err != nil {
		t.Fatalf("bad subscription frame: %v", err)
	}
	if cmd.Cmd != "subscribe" || cmd.Params.MarketTicker != "KX-BTC-100K" {
		t.Fatalf("unexpected command: %+v", cmd)
	}
	if len(cmd.Params.Channels) != 1 || cmd.Params.Channels[0] != "orderbook_delta" {
		t.Fatalf("unexpected channels: %v", cmd.Params.Channels)
	}
}

func snapshotFrame(ticker, marketID string, seq int64, yes, no [][2]int) []byte {
	frame := map[string]any{
		"type": "orderbook_snapshot",
		"seq":  seq,
		"msg": map[string]any{
			"market_ticker": ticker,
			"market_id":     marketID,
			"yes":           yes,
			"no":            no,
		},
	}
	b, _ := json.Marshal(frame)
	return b
}

func deltaFrame(ticker, marketID string, seq int64, price, delta int, side string) []byte {
	frame := map[string]any{
		"type": "orderbook_delta",
		"seq":  seq,
		"msg": map[string]any{
			"market_ticker": ticker,
			"market_id":     marketID,
			"price":         price,
			"delta":         delta,
			"side":          side,
		},
	}
	b, _ := json.Marshal(frame)
	return b
}

func TestFeedSnapshotProducesSyntheticAsks(t *testing.T) {
	norm := bookkeeping.NewNormalizer(nil)
	feed := feedWithoutSocket(norm)

	feed.handleMessage(snapshotFrame("KX-T", "MKT-1", 3,
		[][2]int{{44, 20}}, [][2]int{{52, 15}}))

	ob, ok := norm.Book(bookkeeping.VenueKalshi, "MKT-1")
	if !ok {
		t.Fatal("no book installed")
	}
	if bid, _, _ := ob.BestBid(bookkeeping.Yes); bid != 44 {
		t.Fatalf("yes bid wrong: %d", bid)
	}
	// Ask_Yes = 100 - Bid_No(100-px): the 52c no-bid reflects to a 48c
	// yes-ask with the no-bid's quantity.
	if ask, qty, _ := ob.BestAsk(bookkeeping.Yes); ask != 48 || qty != 15 {
		t.Fatalf("synthetic yes ask wrong: %d x %d", ask, qty)
	}
	if ask, qty, _ := ob.BestAsk(bookkeeping.No); ask != 56 || qty != 20 {
		t.Fatalf("synthetic no ask wrong: %d x %d", ask, qty)
	}
}

func TestFeedDeltaUpdatesMirrorAndBook(t *testing.T) {
	norm := bookkeeping.NewNormalizer(nil)
	feed := feedWithoutSocket(norm)

	feed.handleMessage(snapshotFrame("KX-T", "MKT-1", 3,
		[][2]int{{44, 20}}, [][2]int{{52, 15}}))
	feed.handleMessage(deltaFrame("KX-T", "MKT-1", 4, 52, -15, "no"))

	ob, _ := norm.Book(bookkeeping.VenueKalshi, "MKT-1")
	// The only no-bid vanished; the synthetic yes ask must be gone (Inf).
	if _, _, ok := ob.BestAsk(bookkeeping.Yes); ok {
		t.Fatal("expected empty synthetic yes ask ladder after no-bid removal")
	}
}

func TestFeedEmptyNoBidsYieldInfYesAsk(t *testing.T) {
	norm := bookkeeping.NewNormalizer(nil)
	feed := feedWithoutSocket(norm)

	feed.handleMessage(snapshotFrame("KX-T", "MKT-2", 1, [][2]int{{30, 5}}, nil))

	ob, ok := norm.Book(bookkeeping.VenueKalshi, "MKT-2")
	if !ok {
		t.Fatal("no book installed")
	}
	if ask, _, hasAsk := ob.BestAsk(bookkeeping.Yes); hasAsk || !ask.IsInf() {
		t.Fatalf("expected Inf yes ask, got %v (has=%v)", ask, hasAsk)
	}
}

func TestFeedSeqGapResubscribes(t *testing.T) {
	cs := newCaptureServer(t)
	feed, norm, done := connectedFeed(t, cs)
	defer done()

	feed.handleMessage(snapshotFrame("KX-T", "MKT-1", 3,
		[][2]int{{44, 20}}, [][2]int{{52, 15}}))
	// Seq jumps 3 → 7: the book must be discarded and a fresh subscribe
	// issued so Kalshi re-sends a snapshot.
	feed.handleMessage(deltaFrame("KX-T", "MKT-1", 7, 44, 1, "yes"))

	if _, ok := norm.Book(bookkeeping.VenueKalshi, "MKT-1"); ok {
		t.Fatal("desynced book not discarded")
	}

	deadline := time.After(2 * time.Second)
	for cs.frameCount() == 0 {
		select {
		case <-deadline:
			t.Fatal("no resubscribe frame sent after gap")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

// feedWithoutSocket builds a Feed whose WSClient is never connected — fine
// for exercising the message handlers directly.
func feedWithoutSocket(norm *bookkeeping.Normalizer) *Feed {
	ws := adapter.NewWSClient(adapter.DefaultWSConfig("ws://unused"), nil)
	return NewFeed(ws, norm, testLogger())
}
