// Package strategy implements negative-spread detection: it consumes
// normalized order book snapshots and emits ArbSignals wherever buying both
// sides of a binary outcome pair costs strictly less than $1.00 after fees
// and gas.
package strategy

import (
	"time"

	"github.com/caesar-terminal/arbiter/internal/bookkeeping"
	"github.com/caesar-terminal/arbiter/internal/money"
)

// Leg is one side of a candidate arbitrage pair: a venue, market, and side to
// buy. AskPrice is the price of the deepest ask level the greedy walk
// accepted, which is the top-of-book ask when only one level is taken.
type Leg struct {
	Venue    bookkeeping.Venue
	MarketID string
	Side     bookkeeping.Side
	AskPrice money.Cents
}

// ArbSignal is a detected negative-spread opportunity, sized to the largest
// quantity the engine found profitable across matching ladder depth.
type ArbSignal struct {
	Leg1 Leg
	Leg2 Leg

	// CrossPlatform is true when Leg1 and Leg2 are on different venues.
	CrossPlatform bool

	MaxQty money.Quantity

	// EstFeesPerContract and EstGasPerContract are the combined per-contract
	// costs deducted from the raw spread to produce NetEdgePerContract.
	EstFeesPerContract money.Cents
	EstGasPerContract  money.Cents

	// NetEdgePerContract = 1.00 - Leg1.AskPrice - Leg2.AskPrice - fees - gas.
	// A positive value is required to emit a signal at all.
	NetEdgePerContract money.Cents

	DetectedAt time.Time
}

// RawSpread returns 1.00 - Leg1.AskPrice - Leg2.AskPrice, before fees and gas.
func (s ArbSignal) RawSpread() money.Cents {
	return 100 - s.Leg1.AskPrice - s.Leg2.AskPrice
}
