package feemodel

import (
	"context"
	"testing"

	"github.com/caesar-terminal/arbiter/internal/bookkeeping"
	"github.com/caesar-terminal/arbiter/internal/money"
)

func TestKalshiFee_RoundsUp(t *testing.T) {
	fee := money.KalshiFee(10, 50) // 0.07*10*0.5*0.5 = 0.175 -> ceil to 18 basis-cents... compute exactly
	if fee <= 0 {
		t.Fatalf("expected positive fee, got %v", fee)
	}
}

func TestModel_Kalshi_NoGas(t *testing.T) {
	m := Model{Venue: bookkeeping.VenueKalshi}
	fee, gas, err := m.FeeAndGasPerContract(context.Background(), 10, 45)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gas != 0 {
		t.Fatalf("kalshi gas must be 0, got %v", gas)
	}
	if fee <= 0 {
		t.Fatalf("expected positive kalshi fee, got %v", fee)
	}
}

type fixedGas money.Cents

func (f fixedGas) Estimate(context.Context) (money.Cents, error) { return money.Cents(f), nil }

func TestModel_Polymarket_NonCryptoZeroFee(t *testing.T) {
	m := Model{Venue: bookkeeping.VenuePolymarket, Gas: fixedGas(5)}
	fee, gas, err := m.FeeAndGasPerContract(context.Background(), 10, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fee != 0 {
		t.Fatalf("non-crypto polymarket fee should be 0, got %v", fee)
	}
	if gas <= 0 {
		t.Fatalf("expected positive gas allowance, got %v", gas)
	}
}

func TestModel_Polymarket_CryptoShortDurationFeeScalesAndCaps(t *testing.T) {
	m := Model{
		Venue: bookkeeping.VenuePolymarket,
		Tags:  MarketTags{IsCrypto: true, IsShortDuration: true},
		Gas:   fixedGas(0),
	}
	feeAtMid, _, _ := m.FeeAndGasPerContract(context.Background(), 100, 50)
	feeAtEdge, _, _ := m.FeeAndGasPerContract(context.Background(), 100, 5)
	if feeAtMid <= feeAtEdge {
		t.Fatalf("fee at $0.50 (%v) should exceed fee near the edge (%v)", feeAtMid, feeAtEdge)
	}
	bps := money.PolymarketFeeBps(50)
	if bps > 300 {
		t.Fatalf("fee must never exceed the 3%% ceiling, got %d bps", bps)
	}
}

func TestThreshold_Defaults(t *testing.T) {
	if got := Threshold(MarketTags{}, false, 2, 4); got != 2 {
		t.Fatalf("baseline threshold = %v, want 2", got)
	}
	if got := Threshold(MarketTags{IsCrypto: true, IsShortDuration: true}, false, 2, 4); got != 4 {
		t.Fatalf("crypto short-duration threshold = %v, want 4", got)
	}
}
