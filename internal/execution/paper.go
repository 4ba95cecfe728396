package execution

import (
	"context"

	"github.com/caesar-terminal/arbiter/internal/bookkeeping"
	"github.com/caesar-terminal/arbiter/internal/money"
)

// PaperAdapter implements both venue order interfaces without placing any
// real order: every leg is reported rejected with zero fill. It backs
// `enable_live_trading: false` — signals are still detected, gated, and
// recorded, but no order ever reaches a venue — letting the rest of the
// pipeline (Strategy, Risk, LegState bookkeeping) run unchanged in a
// dry-run deployment.
type PaperAdapter struct{}

var (
	_ KalshiOrderAdapter     = PaperAdapter{}
	_ PolymarketOrderAdapter = PaperAdapter{}
)

// PlaceIOC implements KalshiOrderAdapter by refusing to place anything.
func (PaperAdapter) PlaceIOC(ctx context.Context, marketID string, side bookkeeping.Side, px money.Cents, qty money.Quantity) (string, error) {
	return "", errDryRun
}

// Await implements KalshiOrderAdapter; unreachable since PlaceIOC always
// errors, kept to satisfy the interface.
func (PaperAdapter) Await(ctx context.Context, orderID string) OrderResult {
	return OrderResult{Status: FillRejected, Err: errDryRun}
}

// Cancel implements KalshiOrderAdapter as a no-op.
func (PaperAdapter) Cancel(ctx context.Context, orderID string) error { return nil }

// PlaceFOK implements PolymarketOrderAdapter by refusing to place anything.
func (PaperAdapter) PlaceFOK(ctx context.Context, marketID string, side bookkeeping.Side, px money.Cents, qty money.Quantity) OrderResult {
	return OrderResult{Status: FillRejected, Err: errDryRun}
}

var errDryRun = dryRunError{}

type dryRunError struct{}

func (dryRunError) Error() string { return "execution: live trading disabled, signal recorded only" }
