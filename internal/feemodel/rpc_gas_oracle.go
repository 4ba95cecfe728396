package feemodel

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/caesar-terminal/arbiter/internal/money"
	"github.com/shopspring/decimal"
)

// HTTPGasOracle queries an external gas-price snapshot endpoint (a Polygon
// gas station API) and converts the reported price into a per-transaction
// USDC basis-cents estimate. The endpoint's price fields come back as
// decimal strings (gwei, with fractional gas prices common on Polygon);
// shopspring/decimal parses them exactly rather than through a lossy float
// round-trip, matching how balances are rendered elsewhere at this API
// boundary.
type HTTPGasOracle struct {
	url        string
	gasLimit   int64 // gas units per mergePositions/splitPosition call
	httpClient *http.Client
}

// NewHTTPGasOracle creates an oracle that polls url for a gas price snapshot
// and scales it by gasLimit gas units per call.
func NewHTTPGasOracle(url string, gasLimit int64) *HTTPGasOracle {
	return &HTTPGasOracle{
		url:        url,
		gasLimit:   gasLimit,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// gasSnapshot mirrors the subset of a Polygon gas-station response this
// oracle needs: the "standard" priority fee tier, in gwei.
type gasSnapshot struct {
	Standard struct {
		MaxFee string `json:"maxFee"`
	} `json:"standard"`
}

// Estimate implements GasOracle by fetching the current snapshot and
// converting gwei-per-gas-unit * gasLimit into USDC basis-cents at a fixed
// MATIC/USDC reference rate. A failed or malformed fetch returns an error;
// CachingGasOracle then keeps serving its last good value or its configured
// fallback.
func (o *HTTPGasOracle) Estimate(ctx context.Context) (money.Cents, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.url, nil)
	if err != nil {
		return 0, fmt.Errorf("gasoracle: build request: %w", err)
	}

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("gasoracle: fetch snapshot: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("gasoracle: read snapshot: %w", err)
	}

	var snap gasSnapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return 0, fmt.Errorf("gasoracle: decode snapshot: %w", err)
	}

	gweiPerUnit, err := decimal.NewFromString(snap.Standard.MaxFee)
	if err != nil {
		return 0, fmt.Errorf("gasoracle: parse max fee %q: %w", snap.Standard.MaxFee, err)
	}

	// gwei -> MATIC: divide by 1e9. MATIC -> USD: reference rate, fixed
	// here rather than sourced live since the oracle's job is a
	// conservative per-contract gas allowance, not a price feed.
	const maticUSD = "0.50"
	maticRate, _ := decimal.NewFromString(maticUSD)

	totalGwei := gweiPerUnit.Mul(decimal.NewFromInt(o.gasLimit))
	totalMatic := totalGwei.Div(decimal.NewFromInt(1_000_000_000))
	totalUSD := totalMatic.Mul(maticRate)
	totalCents := totalUSD.Mul(decimal.NewFromInt(100))

	return money.Cents(totalCents.Ceil().IntPart()), nil
}

var _ GasOracle = (*HTTPGasOracle)(nil)
