package kalshi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/caesar-terminal/arbiter/internal/bookkeeping"
	"github.com/caesar-terminal/arbiter/internal/execution"
	"github.com/caesar-terminal/arbiter/internal/money"
)

const ordersPath = "/trade-api/v2/portfolio/orders"

// OrderClient places limit/IOC orders over Kalshi's REST API, signing each
// request with the account's RSA-PSS key. Kalshi acknowledges acceptance
// synchronously but reports fills asynchronously, so Await polls the order
// resource until it reaches a terminal status or the deadline passes.
type OrderClient struct {
	baseURL    string
	signer     *RequestSigner
	httpClient *http.Client
	logger     *zap.Logger

	// pollInterval between order-status reads during Await.
	pollInterval time.Duration
}

// NewOrderClient creates an OrderClient against baseURL (no trailing slash).
func NewOrderClient(baseURL string, signer *RequestSigner, logger *zap.Logger) *OrderClient {
	return &OrderClient{
		baseURL:      baseURL,
		signer:       signer,
		httpClient:   &http.Client{Timeout: 5 * time.Second},
		logger:       logger,
		pollInterval: 100 * time.Millisecond,
	}
}

var _ execution.KalshiOrderAdapter = (*OrderClient)(nil)

type createOrderRequest struct {
	Ticker        string `json:"ticker"`
	ClientOrderID string `json:"client_order_id"`
	Action        string `json:"action"`
	Side          string `json:"side"`
	Count         int64  `json:"count"`
	Type          string `json:"type"`
	YesPrice      int64  `json:"yes_price,omitempty"`
	NoPrice       int64  `json:"no_price,omitempty"`
	TimeInForce   string `json:"time_in_force"`
}

type orderResource struct {
	OrderID        string `json:"order_id"`
	Status         string `json:"status"`
	Count          int64  `json:"count"`
	RemainingCount int64  `json:"remaining_count"`
	TakerFillCount int64  `json:"taker_fill_count"`
	TakerFillCost  int64  `json:"taker_fill_cost"` // cents
}

type orderEnvelope struct {
	Order orderResource `json:"order"`
}

// PlaceIOC submits a buy limit order priced at px with immediate-or-cancel
// semantics and returns the venue-assigned order ID once accepted.
func (c *OrderClient) PlaceIOC(ctx context.Context, marketID string, side bookkeeping.Side, px money.Cents, qty money.Quantity) (string, error) {
	req := createOrderRequest{
		Ticker:        marketID,
		ClientOrderID: uuid.NewString(),
		Action:        "buy",
		Side:          side.String(),
		Count:         int64(qty),
		Type:          "limit",
		TimeInForce:   "immediate_or_cancel",
	}
	if side == bookkeeping.Yes {
		req.YesPrice = int64(px)
	} else {
		req.NoPrice = int64(px)
	}

	var env orderEnvelope
	if err := c.do(ctx, http.MethodPost, ordersPath, req, &env); err != nil {
		return "", err
	}
	if env.Order.OrderID == "" {
		return "", fmt.Errorf("kalshi: order accepted without an order_id")
	}
	return env.Order.OrderID, nil
}

// Await polls the order resource until it reaches a terminal status or ctx
// expires, then reports the fill.
func (c *OrderClient) Await(ctx context.Context, orderID string) execution.OrderResult {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		var env orderEnvelope
		err := c.do(ctx, http.MethodGet, ordersPath+"/"+orderID, nil, &env)
		if err == nil {
			if res, terminal := fillResult(env.Order); terminal {
				return res
			}
		} else if ctx.Err() == nil && c.logger != nil {
			c.logger.Warn("kalshi: order status read failed", zap.String("order", orderID), zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return execution.OrderResult{Status: execution.FillTimedOut, Err: ctx.Err()}
		case <-ticker.C:
		}
	}
}

// Cancel best-effort cancels an order still resting on the book.
func (c *OrderClient) Cancel(ctx context.Context, orderID string) error {
	return c.do(ctx, http.MethodDelete, ordersPath+"/"+orderID, nil, nil)
}

// fillResult maps a terminal order resource onto an OrderResult; the second
// return is false while the order is still working.
func fillResult(o orderResource) (execution.OrderResult, bool) {
	switch o.Status {
	case "executed", "canceled":
	default:
		return execution.OrderResult{}, false
	}

	filled := money.Quantity(o.TakerFillCount)
	if filled <= 0 && o.Count > 0 {
		filled = money.Quantity(o.Count - o.RemainingCount)
	}

	res := execution.OrderResult{FilledQty: filled}
	switch {
	case filled <= 0:
		res.Status = execution.FillNone
	case int64(filled) < o.Count:
		res.Status = execution.FillPartial
	default:
		res.Status = execution.FillFull
	}
	if filled > 0 && o.TakerFillCost > 0 {
		res.AvgPrice = money.Cents(o.TakerFillCost) / money.Cents(filled)
	}
	return res, true
}

// do signs and performs one REST round-trip, decoding the JSON body into
// out when non-nil. Non-2xx statuses are returned as errors with the body
// included for the operator log.
func (c *OrderClient) do(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("kalshi: encode request: %w", err)
		}
		rdr = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("kalshi: build request: %w", err)
	}

	headers, err := c.signer.Headers(method, path)
	if err != nil {
		return err
	}
	req.Header = headers
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("kalshi: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("kalshi: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("kalshi: %s %s: status %d: %s", method, path, resp.StatusCode, raw)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("kalshi: decode response: %w", err)
		}
	}
	return nil
}
