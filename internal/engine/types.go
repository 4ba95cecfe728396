// Package engine provides a pre-submission order validator shared by both
// venues' execution paths: it catches malformed orders (bad side/type,
// out-of-range price, sub-lot quantity) and re-checks the circuit breaker's
// trading gate immediately before the Execution Coordinator calls into a
// venue adapter.
package engine

import (
	"time"

	"github.com/caesar-terminal/arbiter/internal/bookkeeping"
	"github.com/caesar-terminal/arbiter/internal/money"
)

// Side represents the direction of an order.
type Side uint8

const (
	Buy Side = iota + 1
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return "unknown"
	}
}

// OrderType distinguishes execution semantics.
type OrderType uint8

const (
	Limit OrderType = iota + 1
	Market
	StopLoss
)

func (t OrderType) String() string {
	switch t {
	case Limit:
		return "limit"
	case Market:
		return "market"
	case StopLoss:
		return "stop-loss"
	default:
		return "unknown"
	}
}

// Status tracks the lifecycle of an order.
type Status uint8

const (
	StatusNew Status = iota + 1
	StatusValidated
	StatusPending
	StatusFilled
	StatusCancelled
	StatusRejected
)

func (s Status) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusValidated:
		return "validated"
	case StatusPending:
		return "pending"
	case StatusFilled:
		return "filled"
	case StatusCancelled:
		return "cancelled"
	case StatusRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Order is the unified pre-submission order representation for both
// Polymarket and Kalshi legs. Price and Quantity are exact integers
// (basis-cents, whole contracts) — this type carries the same arb leg a
// strategy.ArbSignal produced, just validated one step closer to the wire.
type Order struct {
	OrderID   string
	Venue     bookkeeping.Venue
	MarketID  string
	AssetID   string
	Side      Side
	Type      OrderType
	Price     money.Cents
	Quantity  money.Quantity
	Status    Status
	CreatedAt time.Time
}
