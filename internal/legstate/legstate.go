// Package legstate implements the LegState finite-state machine that the
// Execution Coordinator owns for the lifetime of a single arb, and the
// open-leg index the Risk Engine consults before approving a new signal.
package legstate

import (
	"errors"
	"sync"
)

// State is one node of the per-arb lifecycle.
type State uint8

const (
	Idle State = iota
	Leg1Submitted
	Leg1Filled
	Aborted
	BothFilled
	HedgeNeeded
	Merged
	ClosedAtLoss
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Leg1Submitted:
		return "leg1_submitted"
	case Leg1Filled:
		return "leg1_filled"
	case Aborted:
		return "aborted"
	case BothFilled:
		return "both_filled"
	case HedgeNeeded:
		return "hedge_needed"
	case Merged:
		return "merged"
	case ClosedAtLoss:
		return "closed_at_loss"
	default:
		return "unknown"
	}
}

// Terminal reports whether a State has no further outbound transitions.
func (s State) Terminal() bool {
	switch s {
	case Aborted, Merged, ClosedAtLoss:
		return true
	default:
		return false
	}
}

// Open reports whether a State counts as an in-flight leg for the purposes
// of the Risk Engine's open-leg check: LEG1_SUBMITTED and HEDGE_NEEDED.
func (s State) Open() bool {
	return s == Leg1Submitted || s == HedgeNeeded
}

// Event is a transition trigger delivered by the Coordinator.
type Event uint8

const (
	EventApproved Event = iota
	EventLeg1Filled
	EventLeg1PartialTimeout
	EventLeg1Rejected
	EventLeg2Filled
	EventLeg2PartialOrRejected
	EventMergeConfirmed
	EventMergeFailed
	EventHedgeResolvedNeutral
	EventHedgeResolvedLoss
)

// ErrInvalidTransition is returned by Transition for an (State, Event) pair
// with no entry in the table.
var ErrInvalidTransition = errors.New("legstate: invalid transition")

// Transition implements the LegState (State, Event) table as a pure function.
// The Coordinator is the only caller that mutates State; this function has
// no side effects.
func Transition(from State, ev Event) (State, error) {
	switch from {
	case Idle:
		if ev == EventApproved {
			return Leg1Submitted, nil
		}
	case Leg1Submitted:
		switch ev {
		case EventLeg1Filled, EventLeg1PartialTimeout:
			return Leg1Filled, nil
		case EventLeg1Rejected:
			return Aborted, nil
		}
	case Leg1Filled:
		switch ev {
		case EventLeg2Filled:
			return BothFilled, nil
		case EventLeg2PartialOrRejected:
			return HedgeNeeded, nil
		}
	case BothFilled:
		switch ev {
		case EventMergeConfirmed:
			return Merged, nil
		case EventMergeFailed:
			return ClosedAtLoss, nil
		}
	case HedgeNeeded:
		switch ev {
		case EventHedgeResolvedNeutral:
			return Merged, nil
		case EventHedgeResolvedLoss:
			return ClosedAtLoss, nil
		}
	}
	return from, ErrInvalidTransition
}

// VenueMarket identifies one side touched by an arb for open-leg tracking.
type VenueMarket struct {
	Venue    string
	MarketID string
}

// OpenLegIndex tracks the current State of every in-flight arb's touched
// markets. The Coordinator is the sole writer; the Risk Engine is a reader.
// Guarded by a mutex: although each engine is conceptually single-loop, the
// index is shared across the Coordinator's per-arb goroutines, so every
// access must still be synchronized.
type OpenLegIndex struct {
	mu    sync.RWMutex
	state map[VenueMarket]State
}

// NewOpenLegIndex creates an empty index.
func NewOpenLegIndex() *OpenLegIndex {
	return &OpenLegIndex{state: make(map[VenueMarket]State)}
}

// IsOpen reports whether any in-flight arb currently holds vm in an Open
// state (LEG1_SUBMITTED or HEDGE_NEEDED).
func (idx *OpenLegIndex) IsOpen(vm VenueMarket) bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.state[vm].Open()
}

// Set records the current State for vm.
func (idx *OpenLegIndex) Set(vm VenueMarket, s State) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if s.Terminal() {
		delete(idx.state, vm)
		return
	}
	idx.state[vm] = s
}

// Clear removes vm from the index unconditionally, used once a terminal
// state's bookkeeping (PnL recording, capital release) has completed.
func (idx *OpenLegIndex) Clear(vm VenueMarket) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	delete(idx.state, vm)
}
