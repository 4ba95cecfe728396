package kalshi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/caesar-terminal/arbiter/internal/bookkeeping"
	"github.com/caesar-terminal/arbiter/internal/execution"
)

// orderServer fakes the Kalshi portfolio orders API.
type orderServer struct {
	srv *httptest.Server

	mu        sync.Mutex
	created   []createOrderRequest
	statuses  []orderResource // served in sequence on GET
	statusIdx int
	cancelled []string
}

func newOrderServer(t *testing.T) *orderServer {
	t.Helper()
	os := &orderServer{}
	mux := http.NewServeMux()
	mux.HandleFunc(ordersPath, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if r.Header.Get("KALSHI-ACCESS-SIGNATURE") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var req createOrderRequest
		json.NewDecoder(r.Body).Decode(&req)
		os.mu.Lock()
		os.created = append(os.created, req)
		os.mu.Unlock()
		json.NewEncoder(w).Encode(orderEnvelope{Order: orderResource{OrderID: "ord-1", Status: "resting"}})
	})
	mux.HandleFunc(ordersPath+"/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			os.mu.Lock()
			res := os.statuses[min(os.statusIdx, len(os.statuses)-1)]
			os.statusIdx++
			os.mu.Unlock()
			json.NewEncoder(w).Encode(orderEnvelope{Order: res})
		case http.MethodDelete:
			os.mu.Lock()
			os.cancelled = append(os.cancelled, r.URL.Path)
			os.mu.Unlock()
			w.WriteHeader(http.StatusOK)
		}
	})
	os.srv = httptest.NewServer(mux)
	return os
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func testOrderClient(t *testing.T, srv *orderServer) *OrderClient {
	t.Helper()
	pemKey, _ := generateTestKey(t)
	signer, err := NewRequestSigner("api-key", pemKey)
	if err != nil {
		t.Fatalf("signer: %v", err)
	}
	c := NewOrderClient(srv.srv.URL, signer, testLogger())
	c.pollInterval = 5 * time.Millisecond
	return c
}

func TestPlaceIOCSubmitsSignedOrder(t *testing.T) {
	srv := newOrderServer(t)
	defer srv.srv.Close()
	c := testOrderClient(t, srv)

	orderID, err := c.PlaceIOC(context.Background(), "KX-BTC", bookkeeping.Yes, 45, 10)
	if err != nil {
		t.Fatalf("PlaceIOC: %v", err)
	}
	if orderID != "ord-1" {
		t.Fatalf("unexpected order ID %q", orderID)
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()
	req := srv.created[0]
	if req.Ticker != "KX-BTC" || req.Side != "yes" || req.Action != "buy" {
		t.Fatalf("unexpected order body: %+v", req)
	}
	if req.YesPrice != 45 || req.NoPrice != 0 {
		t.Fatalf("price fields wrong: %+v", req)
	}
	if req.Count != 10 || req.Type != "limit" || req.TimeInForce != "immediate_or_cancel" {
		t.Fatalf("order params wrong: %+v", req)
	}
	if req.ClientOrderID == "" {
		t.Fatal("missing client_order_id")
	}
}

func TestPlaceIOCNoSidePricesNoField(t *testing.T) {
	srv := newOrderServer(t)
	defer srv.srv.Close()
	c := testOrderClient(t, srv)

	if _, err := c.PlaceIOC(context.Background(), "KX-BTC", bookkeeping.No, 55, 3); err != nil {
		t.Fatalf("PlaceIOC: %v", err)
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()
	req := srv.created[0]
	if req.NoPrice != 55 || req.YesPrice != 0 {
		t.Fatalf("expected no_price=55, got %+v", req)
	}
}

func TestAwaitFullFill(t *testing.T) {
	srv := newOrderServer(t)
	defer srv.srv.Close()
	srv.statuses = []orderResource{
		{OrderID: "ord-1", Status: "resting", Count: 10, RemainingCount: 10},
		{OrderID: "ord-1", Status: "executed", Count: 10, RemainingCount: 0, TakerFillCount: 10, TakerFillCost: 450},
	}
	c := testOrderClient(t, srv)

	res := c.Await(context.Background(), "ord-1")
	if res.Status != execution.FillFull {
		t.Fatalf("expected FillFull, got %v", res.Status)
	}
	if res.FilledQty != 10 || res.AvgPrice != 45 {
		t.Fatalf("fill details wrong: %+v", res)
	}
}

func TestAwaitPartialThenCancelled(t *testing.T) {
	srv := newOrderServer(t)
	defer srv.srv.Close()
	srv.statuses = []orderResource{
		{OrderID: "ord-1", Status: "canceled", Count: 10, RemainingCount: 6, TakerFillCount: 4, TakerFillCost: 180},
	}
	c := testOrderClient(t, srv)

	res := c.Await(context.Background(), "ord-1")
	if res.Status != execution.FillPartial {
		t.Fatalf("expected FillPartial, got %v", res.Status)
	}
	if res.FilledQty != 4 || res.AvgPrice != 45 {
		t.Fatalf("fill details wrong: %+v", res)
	}
}

func TestAwaitZeroFill(t *testing.T) {
	srv := newOrderServer(t)
	defer srv.srv.Close()
	srv.statuses = []orderResource{
		{OrderID: "ord-1", Status: "canceled", Count: 10, RemainingCount: 10},
	}
	c := testOrderClient(t, srv)

	res := c.Await(context.Background(), "ord-1")
	if res.Status != execution.FillNone {
		t.Fatalf("expected FillNone, got %v", res.Status)
	}
}

func TestAwaitTimesOutWithDeadline(t *testing.T) {
	srv := newOrderServer(t)
	defer srv.srv.Close()
	srv.statuses = []orderResource{
		{OrderID: "ord-1", Status: "resting", Count: 10, RemainingCount: 10},
	}
	c := testOrderClient(t, srv)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	res := c.Await(ctx, "ord-1")
	if res.Status != execution.FillTimedOut {
		t.Fatalf("expected FillTimedOut, got %v", res.Status)
	}
}

func TestCancelIssuesDelete(t *testing.T) {
	srv := newOrderServer(t)
	defer srv.srv.Close()
	c := testOrderClient(t, srv)

	if err := c.Cancel(context.Background(), "ord-9"); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	srv.mu.Lock()
	defer srv.mu.Unlock()
	if len(srv.cancelled) != 1 || srv.cancelled[0] != ordersPath+"/ord-9" {
		t.Fatalf("cancel not issued: %v", srv.cancelled)
	}
}
