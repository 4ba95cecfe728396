package poly

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/caesar-terminal/arbiter/internal/bookkeeping"
	"github.com/caesar-terminal/arbiter/internal/execution"
	"github.com/caesar-terminal/arbiter/internal/money"
)

// ctfExchangeAddress is the Polymarket CTF Exchange contract the EIP-712
// domain verifies against on Polygon.
const ctfExchangeAddress = "0x4bFb41d5B3570DeFd03C39a9A4D8dE6Bd8B8982E"

// usdcScale converts whole USDC into the token's 6-decimal atomic units.
const usdcScale = 1_000_000

// OrderSigner produces the EIP-712 signature for one CLOB order. Satisfied
// by signer.Client, which forwards the request to the isolated signer
// process over its Unix socket — the engine never holds the key.
type OrderSigner interface {
	SignOrder(ctx context.Context, req SignRequest) (SignedOrder, error)
}

// SignRequest carries the order fields the signer hashes.
type SignRequest struct {
	TokenID     string
	MakerAmount int64 // USDC atomic units offered
	TakerAmount int64 // outcome-token atomic units requested
	Expiration  int64 // unix seconds; 0 = no expiration
	Nonce       int64
	FeeRateBps  int64
	Buy         bool
	Contract    string // verifying contract address
}

// SignedOrder is the signer's response.
type SignedOrder struct {
	Signature string // 0x-prefixed
	Maker     string // signer address
}

// OrderClient submits fill-or-kill orders to the Polymarket CLOB REST API.
// The matcher resolves a FOK synchronously: the response already says
// whether the order matched in full or died.
type OrderClient struct {
	baseURL    string
	apiKey     string
	signer     OrderSigner
	httpClient *http.Client
	logger     *zap.Logger

	mu     sync.Mutex
	tokens map[tokenKey]string // (market, side) → outcome token ID
	nonce  int64
}

type tokenKey struct {
	MarketID string
	Side     bookkeeping.Side
}

// NewOrderClient creates an OrderClient against baseURL (no trailing slash).
func NewOrderClient(baseURL, apiKey string, signer OrderSigner, logger *zap.Logger) *OrderClient {
	return &OrderClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		signer:     signer,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		logger:     logger,
		tokens:     make(map[tokenKey]string),
	}
}

var _ execution.PolymarketOrderAdapter = (*OrderClient)(nil)

// Bind registers the outcome token ID for a (market, side), mirroring the
// feed-side binding; orders are addressed by token, not by market.
func (c *OrderClient) Bind(marketID string, side bookkeeping.Side, tokenID string) {
	c.mu.Lock()
	c.tokens[tokenKey{MarketID: marketID, Side: side}] = tokenID
	c.mu.Unlock()
}

type wireOrder struct {
	Salt          int64  `json:"salt"`
	Maker         string `json:"maker"`
	Signer        string `json:"signer"`
	Taker         string `json:"taker"`
	TokenID       string `json:"tokenId"`
	MakerAmount   string `json:"makerAmount"`
	TakerAmount   string `json:"takerAmount"`
	Expiration    string `json:"expiration"`
	Nonce         string `json:"nonce"`
	FeeRateBps    string `json:"feeRateBps"`
	Side          string `json:"side"`
	SignatureType int    `json:"signatureType"`
	Signature     string `json:"signature"`
}

type createOrderRequest struct {
	Order     wireOrder `json:"order"`
	Owner     string    `json:"owner"`
	OrderType string    `json:"orderType"`
}

type createOrderResponse struct {
	Success      bool   `json:"success"`
	ErrorMsg     string `json:"errorMsg"`
	OrderID      string `json:"orderID"`
	Status       string `json:"status"`
	TakingAmount string `json:"takingAmount"`
	MakingAmount string `json:"makingAmount"`
}

// PlaceFOK signs and submits a fill-or-kill buy of qty outcome tokens at
// px, blocking until the matcher resolves it. FOK is all-or-nothing: the
// result is either a full fill at px or no fill at all.
func (c *OrderClient) PlaceFOK(ctx context.Context, marketID string, side bookkeeping.Side, px money.Cents, qty money.Quantity) execution.OrderResult {
	c.mu.Lock()
	tokenID, bound := c.tokens[tokenKey{MarketID: marketID, Side: side}]
	c.nonce++
	nonce := c.nonce
	c.mu.Unlock()
	if !bound {
		return execution.OrderResult{
			Status: execution.FillRejected,
			Err:    fmt.Errorf("poly: no outcome token bound for %s/%s", marketID, side),
		}
	}

	// makerAmount: USDC offered = qty * px; px is basis-cents so one
	// contract at px costs px * 10^4 atomic units.
	makerAmount := int64(qty) * int64(px) * (usdcScale / 100)
	takerAmount := int64(qty) * usdcScale

	signed, err := c.signer.SignOrder(ctx, SignRequest{
		TokenID:     tokenID,
		MakerAmount: makerAmount,
		TakerAmount: takerAmount,
		Nonce:       nonce,
		Buy:         true,
		Contract:    ctfExchangeAddress,
	})
	if err != nil {
		return execution.OrderResult{Status: execution.FillRejected, Err: fmt.Errorf("poly: sign order: %w", err)}
	}

	req := createOrderRequest{
		Order: wireOrder{
			Maker:       signed.Maker,
			Signer:      signed.Maker,
			Taker:       "0x0000000000000000000000000000000000000000",
			TokenID:     tokenID,
			MakerAmount: fmt.Sprintf("%d", makerAmount),
			TakerAmount: fmt.Sprintf("%d", takerAmount),
			Expiration:  "0",
			Nonce:       fmt.Sprintf("%d", nonce),
			FeeRateBps:  "0",
			Side:        "BUY",
			Signature:   signed.Signature,
		},
		Owner:     c.apiKey,
		OrderType: "FOK",
	}

	var resp createOrderResponse
	if err := c.post(ctx, "/order", req, &resp); err != nil {
		return execution.OrderResult{Status: execution.FillRejected, Err: err}
	}

	if !resp.Success || resp.Status != "matched" {
		if c.logger != nil {
			c.logger.Info("poly: FOK did not match",
				zap.String("market", marketID), zap.String("status", resp.Status),
				zap.String("error", resp.ErrorMsg))
		}
		return execution.OrderResult{Status: execution.FillNone}
	}

	return execution.OrderResult{
		Status:    execution.FillFull,
		FilledQty: qty,
		AvgPrice:  px,
	}
}

func (c *OrderClient) post(ctx context.Context, path string, body, out any) error {
	buf, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("poly: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return fmt.Errorf("poly: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("POLY-API-KEY", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("poly: POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("poly: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("poly: POST %s: status %d: %s", path, resp.StatusCode, raw)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("poly: decode response: %w", err)
	}
	return nil
}
