package engine

import (
	"errors"
	"fmt"

	"github.com/caesar-terminal/arbiter/internal/bookkeeping"
	"github.com/caesar-terminal/arbiter/internal/money"
)

// Sentinel errors returned by Validate.
var (
	ErrInvalidSide     = errors.New("invalid order side")
	ErrInvalidType     = errors.New("invalid order type")
	ErrPriceOutOfRange = errors.New("price out of valid range")
	ErrQuantityTooLow  = errors.New("quantity below minimum lot size")
	ErrCircuitOpen     = errors.New("circuit breaker: trading disabled for market")
)

// VenueConstraints defines per-venue validation limits, in basis-cents
// and whole contracts.
type VenueConstraints struct {
	MinPrice   money.Cents
	MaxPrice   money.Cents
	MinLotSize money.Quantity
}

// DefaultConstraints maps each venue to its validation rules: both
// venues trade on the same 0..100 basis-cent price axis.
var DefaultConstraints = map[bookkeeping.Venue]VenueConstraints{
	bookkeeping.VenuePolymarket: {
		MinPrice:   0,
		MaxPrice:   100,
		MinLotSize: 1,
	},
	bookkeeping.VenueKalshi: {
		MinPrice:   0,
		MaxPrice:   100,
		MinLotSize: 1,
	},
}

// TradingGate is the interface for checking whether trading is allowed.
// Satisfied by adapter.CircuitBreaker.
type TradingGate interface {
	CanTrade(venue bookkeeping.Venue, marketID string) bool
}

// AlwaysTradable is a TradingGate that never blocks; used where no circuit
// breaker is wired (e.g. unit tests of the arb math in isolation).
type AlwaysTradable struct{}

// CanTrade implements TradingGate.
func (AlwaysTradable) CanTrade(bookkeeping.Venue, string) bool { return true }

// Validator performs pre-flight checks on orders before they enter the
// execution pipeline. It fails fast: the first failing check returns
// an error and the order is rejected.
type Validator struct {
	gate        TradingGate
	constraints map[bookkeeping.Venue]VenueConstraints
}

// NewValidator creates a Validator with the given circuit breaker gate
// and default exchange constraints. gate may be nil, defaulting to
// AlwaysTradable.
func NewValidator(gate TradingGate) *Validator {
	if gate == nil {
		gate = AlwaysTradable{}
	}
	return &Validator{
		gate:        gate,
		constraints: DefaultConstraints,
	}
}

// Validate runs all pre-flight checks on the order. On success the order
// status is advanced to StatusValidated. On failure an error is returned
// and the status is set to StatusRejected.
func (v *Validator) Validate(order *Order) error {
	if err := v.validate(order); err != nil {
		order.Status = StatusRejected
		return err
	}
	order.Status = StatusValidated
	return nil
}

func (v *Validator) validate(order *Order) error {
	if order.Side != Buy && order.Side != Sell {
		return ErrInvalidSide
	}
	if order.Type != Limit && order.Type != Market && order.Type != StopLoss {
		return ErrInvalidType
	}

	ec, ok := v.constraints[order.Venue]
	if !ok {
		return fmt.Errorf("unknown venue: %s", order.Venue)
	}

	if order.Type == Limit || order.Type == StopLoss {
		if order.Price <= ec.MinPrice || order.Price >= ec.MaxPrice {
			return fmt.Errorf("%w: %s not in (%s, %s)",
				ErrPriceOutOfRange, order.Price.Dollars(), ec.MinPrice.Dollars(), ec.MaxPrice.Dollars())
		}
	}

	if order.Quantity < ec.MinLotSize {
		return fmt.Errorf("%w: %d < minimum %d", ErrQuantityTooLow, order.Quantity, ec.MinLotSize)
	}

	if !v.gate.CanTrade(order.Venue, order.MarketID) {
		return ErrCircuitOpen
	}

	return nil
}
