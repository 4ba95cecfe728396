// Package feemodel computes per-venue, per-market trading fees and exposes
// the external gas-oracle snapshot used for Polymarket transaction costs.
package feemodel

import (
	"context"

	"github.com/caesar-terminal/arbiter/internal/bookkeeping"
	"github.com/caesar-terminal/arbiter/internal/money"
)

// MarketTags describes the properties of a market that affect fee and
// threshold computation.
type MarketTags struct {
	IsCrypto            bool
	IsShortDuration      bool // 15m or 1h expiry
	DynamicFeeCeilingBps int64
}

// GasOracle supplies an external estimate of the per-transaction gas cost
// for a Polymarket split/merge/trade call, expressed in USDC basis-cents.
type GasOracle interface {
	Estimate(ctx context.Context) (money.Cents, error)
}

// ZeroGasOracle always reports zero gas cost. A Polymarket Model with no Gas
// oracle falls back to it; Kalshi models never consult an oracle.
type ZeroGasOracle struct{}

// Estimate implements GasOracle.
func (ZeroGasOracle) Estimate(context.Context) (money.Cents, error) { return 0, nil }

// Model computes fees for one (venue, market).
type Model struct {
	Venue bookkeeping.Venue
	Tags  MarketTags
	Gas   GasOracle
}

// FeeAndGasPerContract returns the taker fee and gas cost per contract for a
// trade at the given ask price, matching's FeeModel:
//   - Kalshi: exact integer ceil(0.07 * qty * P * (1-P)) formula.
//   - Polymarket: 0 for most markets; for crypto + short-duration markets,
//     a dynamic fee scaled by proximity to $0.50, capped at 3%.
//   - Gas (Polymarket only): external oracle snapshot.
func (m Model) FeeAndGasPerContract(ctx context.Context, qty money.Quantity, askPrice money.Cents) (fee, gas money.Cents, err error) {
	switch m.Venue {
	case bookkeeping.VenueKalshi:
		return perContract(money.KalshiFee(qty, askPrice), qty), 0, nil
	case bookkeeping.VenuePolymarket:
		feeBps := int64(0)
		if m.Tags.IsCrypto && m.Tags.IsShortDuration {
			feeBps = money.PolymarketFeeBps(askPrice)
			ceiling := m.Tags.DynamicFeeCeilingBps
			if ceiling == 0 {
				ceiling = 300
			}
			if feeBps > ceiling {
				feeBps = ceiling
			}
		}
		fee = perContract(money.PolymarketFee(qty, askPrice, feeBps), qty)
		oracle := m.Gas
		if oracle == nil {
			oracle = ZeroGasOracle{}
		}
		gasTotal, gerr := oracle.Estimate(ctx)
		if gerr != nil {
			return 0, 0, gerr
		}
		gas = perContract(gasTotal, qty)
		return fee, gas, nil
	default:
		return 0, 0, nil
	}
}

// perContract divides a total charge across qty contracts, rounding up so
// the per-contract allowance never under-provisions the actual total owed.
func perContract(total money.Cents, qty money.Quantity) money.Cents {
	if qty <= 0 {
		return 0
	}
	per := total / money.Cents(qty)
	if total%money.Cents(qty) != 0 {
		per++
	}
	return per
}

// Threshold returns the minimum viable spread (MVS), in basis-cents per
// contract, required before a signal is approved: $0.02 baseline, $0.04 for
// dynamic-fee crypto markets.
func Threshold(tags MarketTags, crossPlatform bool, baselineCents, cryptoCents int64) money.Cents {
	if tags.IsCrypto && tags.IsShortDuration {
		return money.Cents(cryptoCents)
	}
	if crossPlatform {
		// Cross-platform pairings carry additional counterparty and
		// settlement-timing risk; elevate to at least the crypto threshold.
		if cryptoCents > baselineCents {
			return money.Cents(cryptoCents)
		}
	}
	return money.Cents(baselineCents)
}
