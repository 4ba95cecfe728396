package risk

import (
	"github.com/caesar-terminal/arbiter/internal/bookkeeping"
)

// VenueHealthChecker is the venue-level health surface the circuit breaker
// exposes; satisfied by *adapter.CircuitBreaker.
type VenueHealthChecker interface {
	VenueHealthy(venue bookkeeping.Venue) bool
}

// CircuitBreakerLiveness adapts a VenueHealthChecker into the Risk Engine's
// LivenessChecker — the first gate in Evaluate's gate order.
type CircuitBreakerLiveness struct {
	cb VenueHealthChecker
}

// NewCircuitBreakerLiveness wraps cb as a LivenessChecker.
func NewCircuitBreakerLiveness(cb VenueHealthChecker) CircuitBreakerLiveness {
	return CircuitBreakerLiveness{cb: cb}
}

// IsLive implements LivenessChecker.
func (c CircuitBreakerLiveness) IsLive(venue bookkeeping.Venue) bool {
	if c.cb == nil {
		return true
	}
	return c.cb.VenueHealthy(venue)
}
